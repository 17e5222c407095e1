package service

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/fitlog/fitlog/backend/go-services/internal/activity"
	"github.com/fitlog/fitlog/backend/go-services/pkg/logger"
)

// ErrExportUnavailable is returned by ExportToObjectStore when no object store is wired.
var ErrExportUnavailable = errors.New("object storage not configured")

// ObjectStore receives uploaded exports and hands out time-limited links to them.
type ObjectStore interface {
	UploadFile(ctx context.Context, key string, reader io.Reader, size int64, contentType string) error
	GetPresignedURL(ctx context.Context, key string, expires time.Duration) (string, error)
}

// ExportResult locates an uploaded export.
type ExportResult struct {
	Key string `json:"key"`
	URL string `json:"url"`
}

// WithObjectStore enables ExportToObjectStore; links stay valid for ttl.
func WithObjectStore(o ObjectStore, ttl time.Duration) Option {
	return func(s *Service) {
		s.objects = o
		s.linkTTL = ttl
	}
}

// ExportCSV writes every activity of userID to w as CSV, newest first.
func (s *Service) ExportCSV(ctx context.Context, userID string, w io.Writer) error {
	list, err := s.List(ctx, userID)
	if err != nil {
		return err
	}
	return activity.WriteCSV(w, list)
}

// ExportToObjectStore renders the CSV export and uploads it under
// exports/<userId>/<unix nanos>.csv.
func (s *Service) ExportToObjectStore(ctx context.Context, userID string) (*ExportResult, error) {
	if s.objects == nil {
		return nil, fmt.Errorf("%w: %w", activity.ErrStorage, ErrExportUnavailable)
	}
	var buf bytes.Buffer
	if err := s.ExportCSV(ctx, userID, &buf); err != nil {
		return nil, err
	}

	key := fmt.Sprintf("exports/%s/%d.csv", userID, s.now().UnixNano())
	if err := s.objects.UploadFile(ctx, key, bytes.NewReader(buf.Bytes()), int64(buf.Len()), "text/csv"); err != nil {
		logger.Errorw("export upload failed", "userId", userID, "key", key, "error", err)
		return nil, fmt.Errorf("%w: upload export: %w", activity.ErrStorage, err)
	}
	url, err := s.objects.GetPresignedURL(ctx, key, s.linkTTL)
	if err != nil {
		logger.Errorw("export presign failed", "userId", userID, "key", key, "error", err)
		return nil, fmt.Errorf("%w: presign export: %w", activity.ErrStorage, err)
	}
	logger.Infow("activities exported", "userId", userID, "key", key, "bytes", buf.Len())
	return &ExportResult{Key: key, URL: url}, nil
}
