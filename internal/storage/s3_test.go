package storage

import (
	"alcyxob/coachy/internal/config"
	"context"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestStorage(t *testing.T) FileStorage {
	t.Helper()
	fs, err := NewS3Storage(context.Background(), config.S3Config{
		Endpoint:        "http://localhost:9000",
		Region:          "us-east-1",
		AccessKeyID:     "test-key",
		SecretAccessKey: "test-secret",
		BucketName:      "coachy-media",
	}, nil)
	require.NoError(t, err)
	return fs
}

func TestNewS3Storage_RequiresBucket(t *testing.T) {
	_, err := NewS3Storage(context.Background(), config.S3Config{Region: "us-east-1"}, nil)
	assert.Error(t, err)
}

// Presigning is local computation; no server needs to be listening.
func TestS3Storage_PresignedURLsArePathStyle(t *testing.T) {
	fs := newTestStorage(t)
	ctx := context.Background()

	put, err := fs.GeneratePresignedUploadURL(ctx, "exercises/1/a.mp4", "video/mp4", time.Minute)
	require.NoError(t, err)
	u, err := url.Parse(put)
	require.NoError(t, err)
	assert.Equal(t, "localhost:9000", u.Host)
	assert.Equal(t, "/coachy-media/exercises/1/a.mp4", u.Path)
	assert.Equal(t, "60", u.Query().Get("X-Amz-Expires"))

	get, err := fs.GeneratePresignedDownloadURL(ctx, "exercises/1/a.mp4", 0)
	require.NoError(t, err)
	assert.True(t, strings.Contains(get, "X-Amz-Expires=900"), get)
}

func TestS3Storage_BareEndpointHonorsUseSSL(t *testing.T) {
	tests := []struct {
		name   string
		useSSL bool
		scheme string
	}{
		{"plain", false, "http"},
		{"tls", true, "https"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fs, err := NewS3Storage(context.Background(), config.S3Config{
				Endpoint:        "localhost:9000",
				Region:          "us-east-1",
				AccessKeyID:     "test-key",
				SecretAccessKey: "test-secret",
				BucketName:      "coachy-media",
				UseSSL:          tt.useSSL,
			}, nil)
			require.NoError(t, err)

			get, err := fs.GeneratePresignedDownloadURL(context.Background(), "exercises/1/a.mp4", time.Minute)
			require.NoError(t, err)
			u, err := url.Parse(get)
			require.NoError(t, err)
			assert.Equal(t, tt.scheme, u.Scheme)
			assert.Equal(t, "localhost:9000", u.Host)
		})
	}
}

func TestEndpointURL_KeepsExplicitScheme(t *testing.T) {
	assert.Equal(t, "http://minio:9000", endpointURL("http://minio:9000", true))
}
