package storage

import (
	"context"
	"testing"

	"github.com/fitlog/fitlog/backend/go-services/internal/activity/service"
	"github.com/fitlog/fitlog/backend/go-services/internal/config"
	"github.com/stretchr/testify/require"
)

// MinIOStorage is what the export endpoint uploads through.
var _ service.ObjectStore = (*MinIOStorage)(nil)

func TestNewMinIOStorage_RequiresEndpoint(t *testing.T) {
	_, err := NewMinIOStorage(context.Background(), config.ObjectStoreConfig{Bucket: "exports"})
	require.ErrorIs(t, err, ErrNoEndpoint)

	_, err = NewMinIOStorage(context.Background(), config.ObjectStoreConfig{Endpoint: "localhost:9000"})
	require.Error(t, err)
}
