package server_test

import (
	"testing"
	"time"

	"dataset-reconciler/core/server"

	"github.com/stretchr/testify/assert"
)

func TestConfig_Addr(t *testing.T) {
	tests := []struct {
		name string
		port string
		want string
	}{
		{"Port only", "8080", ":8080"},
		{"Host and port", "127.0.0.1:9000", "127.0.0.1:9000"},
		{"Empty", "", ":"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := server.Config{Port: tt.port}
			assert.Equal(t, tt.want, c.Addr())
		})
	}
}

func TestConfig_Limits(t *testing.T) {
	assert.Equal(t, 4<<20, server.Config{}.BodyLimit())
	assert.Equal(t, 16<<20, server.Config{BodyLimitMB: 16}.BodyLimit())
	assert.Equal(t, 10*time.Second, server.Config{}.ShutdownTimeout())
	assert.Equal(t, 2*time.Second, server.Config{ShutdownTimeoutSeconds: 2}.ShutdownTimeout())
}
