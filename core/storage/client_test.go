package storage_test

import (
	"bytes"
	"context"
	"io"
	"testing"

	"sheet-merger/core/storage"
	"sheet-merger/core/storage/mocks"

	"github.com/minio/minio-go/v7"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestNewClient(t *testing.T) {
	t.Run("ValidConfig", func(t *testing.T) {
		cfg := storage.Config{
			Endpoint:  "localhost:9000",
			AccessKey: "testkey",
			SecretKey: "testsecret",
			Bucket:    "test-bucket",
			Region:    "us-east-1",
		}

		client, err := storage.NewClient(cfg)
		assert.NoError(t, err)
		assert.NotNil(t, client)
	})

	t.Run("EndpointWithHTTPS", func(t *testing.T) {
		cfg := storage.Config{
			Endpoint:  "https://s3.amazonaws.com",
			AccessKey: "testkey",
			SecretKey: "testsecret",
			UseSSL:    true,
			Region:    "us-east-1",
		}

		client, err := storage.NewClient(cfg)
		assert.NoError(t, err)
		assert.NotNil(t, client)
	})
}

func TestEnsureBucket(t *testing.T) {
	ctx := context.Background()

	t.Run("Exists", func(t *testing.T) {
		m := new(mocks.Client)
		m.On("BucketExists", mock.Anything, "b").Return(true, nil)

		require.NoError(t, storage.EnsureBucket(ctx, m, "b", ""))
		m.AssertNotCalled(t, "MakeBucket", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("Creates", func(t *testing.T) {
		m := new(mocks.Client)
		m.On("BucketExists", mock.Anything, "b").Return(false, nil)
		m.On("MakeBucket", mock.Anything, "b", minio.MakeBucketOptions{Region: "eu"}).Return(nil)

		require.NoError(t, storage.EnsureBucket(ctx, m, "b", "eu"))
		m.AssertExpectations(t)
	})

	t.Run("CheckFails", func(t *testing.T) {
		m := new(mocks.Client)
		m.On("BucketExists", mock.Anything, "b").Return(false, assert.AnError)

		assert.ErrorIs(t, storage.EnsureBucket(ctx, m, "b", ""), assert.AnError)
	})
}

func TestUploadDownload(t *testing.T) {
	ctx := context.Background()
	m := new(mocks.Client)
	data := []byte("payload")

	m.On("PutObject", mock.Anything, "b", "k", mock.Anything, int64(len(data)), minio.PutObjectOptions{ContentType: "text/plain"}).
		Return(minio.UploadInfo{Key: "k"}, nil)
	m.On("GetObject", mock.Anything, "b", "k", mock.Anything).
		Return(io.NopCloser(bytes.NewReader(data)), nil)

	require.NoError(t, storage.Upload(ctx, m, "b", "k", data, "text/plain"))
	got, err := storage.Download(ctx, m, "b", "k")
	require.NoError(t, err)
	assert.Equal(t, data, got)

	m.On("GetObject", mock.Anything, "b", "missing", mock.Anything).Return(nil, assert.AnError)
	_, err = storage.Download(ctx, m, "b", "missing")
	assert.ErrorIs(t, err, assert.AnError)
}
