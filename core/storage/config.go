package storage

import (
	"fmt"
	"time"
)

// Config holds the object storage connection and read limits.
type Config struct {
	// Endpoint is host:port of the S3-compatible service. A scheme prefix is stripped.
	Endpoint  string `mapstructure:"endpoint" default:"localhost:9000"`
	AccessKey string `mapstructure:"access_key" default:"minioadmin"`
	SecretKey string `mapstructure:"secret_key" default:"minioadmin"`
	UseSSL    bool   `mapstructure:"use_ssl" default:"false"`
	// Bucket resolves s3://key references that name no bucket.
	Bucket string `mapstructure:"bucket" default:"datasets"`
	Region string `mapstructure:"region" default:""`
	// Timeout bounds dialing, the TLS handshake and the wait for response headers.
	Timeout time.Duration `mapstructure:"timeout" default:"30s"`
	// MaxObjectMB caps the size of a dataset object read into memory.
	MaxObjectMB int64 `mapstructure:"max_object_mb" default:"512"`
}

// ObjectLimit returns the object size cap in bytes. Zero selects MaxObjectSize.
func (c Config) ObjectLimit() int64 {
	if c.MaxObjectMB <= 0 {
		return MaxObjectSize
	}
	return c.MaxObjectMB << 20
}

// Validate reports whether the limits are usable.
func (c Config) Validate() error {
	if c.Timeout < 0 {
		return fmt.Errorf("storage timeout must not be negative, got %s", c.Timeout)
	}
	if c.MaxObjectMB < 0 {
		return fmt.Errorf("storage max_object_mb must not be negative, got %d", c.MaxObjectMB)
	}
	return nil
}
