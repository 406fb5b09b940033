package storage

import (
	"context"
	"errors"
	"fmt"
	"io"
	"path"
	"strings"

	"github.com/minio/minio-go/v7"
)

// ErrObjectNotFound is returned when a bucket or object does not exist.
var ErrObjectNotFound = errors.New("object not found")

// ErrObjectTooLarge is returned when an object exceeds the read limit.
var ErrObjectTooLarge = errors.New("object too large")

// MaxObjectSize is the default cap on objects read into memory.
const MaxObjectSize = 512 << 20

// DatasetExtensions are the object extensions recognized as datasets.
var DatasetExtensions = []string{".csv", ".tsv", ".json"}

// ReadObject downloads an object into memory. Objects larger than limit
// bytes are refused; a limit of zero or less selects MaxObjectSize.
func ReadObject(ctx context.Context, client Client, bucket, key string, limit int64) ([]byte, error) {
	if limit <= 0 {
		limit = MaxObjectSize
	}
	info, err := client.StatObject(ctx, bucket, key, minio.StatObjectOptions{})
	if err != nil {
		return nil, wrapNotFound(err, bucket, key)
	}
	if info.Size > limit {
		return nil, fmt.Errorf("%w: %s/%s is %d bytes, limit is %d", ErrObjectTooLarge, bucket, key, info.Size, limit)
	}

	obj, err := client.GetObject(ctx, bucket, key, minio.GetObjectOptions{})
	if err != nil {
		return nil, wrapNotFound(err, bucket, key)
	}
	defer obj.Close()

	data, err := io.ReadAll(io.LimitReader(obj, limit+1))
	if err != nil {
		return nil, wrapNotFound(err, bucket, key)
	}
	if int64(len(data)) > limit {
		return nil, fmt.Errorf("%w: %s/%s exceeds %d bytes", ErrObjectTooLarge, bucket, key, limit)
	}
	return data, nil
}

// ListDatasets returns the keys under prefix whose extension is a dataset extension.
func ListDatasets(ctx context.Context, client Client, bucket, prefix string) ([]string, error) {
	var keys []string
	for obj := range client.ListObjects(ctx, bucket, minio.ListObjectsOptions{Prefix: prefix, Recursive: true}) {
		if obj.Err != nil {
			return nil, wrapNotFound(obj.Err, bucket, prefix)
		}
		ext := strings.ToLower(path.Ext(obj.Key))
		for _, want := range DatasetExtensions {
			if ext == want {
				keys = append(keys, obj.Key)
				break
			}
		}
	}
	return keys, nil
}

// IsNotFound reports whether err denotes a missing bucket or object.
func IsNotFound(err error) bool {
	if errors.Is(err, ErrObjectNotFound) {
		return true
	}
	switch minio.ToErrorResponse(err).Code {
	case "NoSuchKey", "NoSuchBucket", "NotFound":
		return true
	}
	return false
}

func wrapNotFound(err error, bucket, key string) error {
	if IsNotFound(err) {
		return fmt.Errorf("%w: %s/%s", ErrObjectNotFound, bucket, key)
	}
	return fmt.Errorf("storage %s/%s: %w", bucket, key, err)
}
