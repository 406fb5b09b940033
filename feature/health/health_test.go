package health

import (
	"context"
	"encoding/json"
	"net/http/httptest"
	"testing"

	"dataset-reconciler/core/storage/mocks"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/gofiber/fiber/v2"
	"github.com/minio/minio-go/v7"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
)

func setupMockDB(t *testing.T, pingErr error) *gorm.DB {
	db, mock, err := sqlmock.New(sqlmock.MonitorPingsOption(true))
	if err != nil {
		t.Fatalf("Failed to open mock sql db: %v", err)
	}
	mock.ExpectPing()
	mock.ExpectPing().WillReturnError(pingErr)

	dialector := mysql.New(mysql.Config{
		Conn:                      db,
		SkipInitializeWithVersion: true,
	})

	gormDB, err := gorm.Open(dialector, &gorm.Config{})
	if err != nil {
		t.Fatalf("Failed to open gorm db: %v", err)
	}
	return gormDB
}

func setupTestApp(t *testing.T, client *mocks.Client, db *gorm.DB) *fiber.App {
	app := fiber.New()
	f := NewFeature(client, "datasets", db, zap.NewNop())
	require.NoError(t, f.Load(app))
	return app
}

func TestCheckStorage(t *testing.T) {
	ctx := context.Background()

	t.Run("Disabled", func(t *testing.T) {
		assert.Equal(t, StatusDisabled, CheckStorage(ctx, nil, "datasets").Status)
	})

	t.Run("MissingBucket", func(t *testing.T) {
		client := new(mocks.Client)
		client.On("BucketExists", ctx, "datasets").Return(false, nil)

		r := CheckStorage(ctx, client, "datasets")
		assert.Equal(t, StatusError, r.Status)
		assert.Equal(t, "bucket datasets does not exist", r.Error)
	})

	t.Run("BucketError", func(t *testing.T) {
		client := new(mocks.Client)
		client.On("BucketExists", ctx, "datasets").Return(false, assert.AnError)

		r := CheckStorage(ctx, client, "datasets")
		assert.Equal(t, StatusError, r.Status)
		assert.Contains(t, r.Error, "failed to check bucket existence")
	})

	t.Run("CountsDatasets", func(t *testing.T) {
		client := new(mocks.Client)
		client.On("BucketExists", ctx, "datasets").Return(true, nil)
		client.On("ListObjects", mock.Anything, "datasets", mock.Anything).
			Return(mocks.Objects(minio.ObjectInfo{Key: "a.csv"}, minio.ObjectInfo{Key: "b.json"}, minio.ObjectInfo{Key: "c.txt"}))

		r := CheckStorage(ctx, client, "datasets")
		assert.Equal(t, StatusOK, r.Status)
		assert.Equal(t, 2, r.Detail["datasets"])
	})
}

func TestCheckDatabase(t *testing.T) {
	ctx := context.Background()

	assert.Equal(t, StatusDisabled, CheckDatabase(ctx, nil).Status)

	r := CheckDatabase(ctx, setupMockDB(t, nil))
	assert.Equal(t, StatusOK, r.Status)
	assert.Equal(t, "mysql", r.Detail["driver"])

	r = CheckDatabase(ctx, setupMockDB(t, assert.AnError))
	assert.Equal(t, StatusError, r.Status)
	assert.Contains(t, r.Error, "failed to ping database")
}

func TestHandleHealth(t *testing.T) {
	t.Run("NothingConfigured", func(t *testing.T) {
		app := fiber.New()
		require.NoError(t, NewFeature(nil, "", nil, zap.NewNop()).Load(app))

		resp, err := app.Test(httptest.NewRequest("GET", "/health", nil))
		require.NoError(t, err)
		assert.Equal(t, fiber.StatusOK, resp.StatusCode)

		var report Report
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&report))
		assert.Equal(t, StatusOK, report.Status)
		assert.Equal(t, StatusDisabled, report.Storage.Status)
		assert.Equal(t, StatusDisabled, report.Database.Status)
	})

	t.Run("StorageDown", func(t *testing.T) {
		client := new(mocks.Client)
		client.On("BucketExists", mock.Anything, "datasets").Return(false, assert.AnError)
		app := setupTestApp(t, client, setupMockDB(t, nil))

		resp, err := app.Test(httptest.NewRequest("GET", "/health", nil), 2000)
		require.NoError(t, err)
		assert.Equal(t, fiber.StatusServiceUnavailable, resp.StatusCode)

		var report Report
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&report))
		assert.Equal(t, StatusError, report.Storage.Status)
		assert.Equal(t, StatusOK, report.Database.Status)
	})

	t.Run("SingleChecks", func(t *testing.T) {
		client := new(mocks.Client)
		client.On("BucketExists", mock.Anything, "datasets").Return(true, nil)
		client.On("ListObjects", mock.Anything, "datasets", mock.Anything).Return(mocks.Objects())
		app := setupTestApp(t, client, setupMockDB(t, assert.AnError))

		resp, err := app.Test(httptest.NewRequest("GET", "/health/storage", nil))
		require.NoError(t, err)
		assert.Equal(t, fiber.StatusOK, resp.StatusCode)

		resp, err = app.Test(httptest.NewRequest("GET", "/health/database", nil))
		require.NoError(t, err)
		assert.Equal(t, fiber.StatusServiceUnavailable, resp.StatusCode)
	})
}

func TestLoader(t *testing.T) {
	mockClient := new(mocks.Client)
	// Nil db: the database check reports disabled
	feature := NewFeature(mockClient, "test-bucket", nil, zap.NewNop())

	assert.Equal(t, "health", feature.Name())
	assert.True(t, feature.IsEnabled())

	app := fiber.New()
	err := feature.Load(app)
	assert.NoError(t, err)
}
