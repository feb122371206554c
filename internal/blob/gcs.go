package blob

import (
	"context"
	"io"

	"github.com/cockroachdb/errors"
	"google.golang.org/api/googleapi"
	"google.golang.org/api/option"
	storage "google.golang.org/api/storage/v1"
)

// DefaultGCSBaseURL serves public objects when no CDN base URL is configured.
const DefaultGCSBaseURL = "https://storage.googleapis.com"

// GCSStore uploads objects to a Google Cloud Storage bucket through the JSON API.
type GCSStore struct {
	svc     *storage.Service
	bucket  string
	baseURL string
}

// NewGCSStore creates a store for bucket. An empty publicBaseURL serves objects
// from storage.googleapis.com/<bucket>.
func NewGCSStore(ctx context.Context, bucket, publicBaseURL string, opts ...option.ClientOption) (*GCSStore, error) {
	if bucket == "" {
		return nil, errors.New("gcs bucket is required")
	}
	svc, err := storage.NewService(ctx, opts...)
	if err != nil {
		return nil, errors.Wrap(err, "failed to create storage service")
	}
	if publicBaseURL == "" {
		publicBaseURL = joinURL(DefaultGCSBaseURL, bucket)
	}
	return &GCSStore{svc: svc, bucket: bucket, baseURL: publicBaseURL}, nil
}

// Put uploads r as key with the given content type.
func (s *GCSStore) Put(ctx context.Context, key, contentType string, r io.Reader) (string, error) {
	obj := &storage.Object{Name: key, ContentType: contentType}
	_, err := s.svc.Objects.Insert(s.bucket, obj).
		Media(r, googleapi.ContentType(contentType)).
		Context(ctx).
		Do()
	if err != nil {
		return "", errors.Wrapf(err, "failed to upload %s to gcs", key)
	}
	return joinURL(s.baseURL, key), nil
}
