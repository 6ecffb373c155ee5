package objectstore

import (
	"context"
	"errors"
	"fmt"

	"cloud-connectivity-check/config"
	"cloud-connectivity-check/internal/core/domain"
	"cloud-connectivity-check/pkg/apperror"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/smithy-go"
	"github.com/rs/zerolog"
)

// HealthCheck implements ports.Checker for an S3-compatible bucket.
type HealthCheck struct {
	cfg       config.ObjectStoreConfig
	newClient ClientFactory
	log       zerolog.Logger
}

// NewHealthCheck creates an object store checker using the R2 S3 client.
func NewHealthCheck(cfg config.ObjectStoreConfig, log zerolog.Logger) *HealthCheck {
	return NewHealthCheckWithFactory(cfg, NewClient, log)
}

// NewHealthCheckWithFactory creates an object store checker with a custom client factory.
func NewHealthCheckWithFactory(cfg config.ObjectStoreConfig, newClient ClientFactory, log zerolog.Logger) *HealthCheck {
	return &HealthCheck{cfg: cfg, newClient: newClient, log: log}
}

// Name returns the check name.
func (h *HealthCheck) Name() domain.CheckName {
	return domain.CheckObjectStore
}

// Check lists at most one object of the configured bucket.
func (h *HealthCheck) Check(ctx context.Context) domain.Result {
	if missing := h.cfg.Missing(); len(missing) > 0 {
		return domain.Failure(h.Name(), apperror.ErrMissingConfig(missing...))
	}

	h.log.Debug().
		Str("endpoint", h.cfg.Endpoint()).
		Str("bucket", h.cfg.BucketName).
		Msg("listing bucket")

	client := h.newClient(h.cfg)
	out, err := client.ListObjectsV2(ctx, &s3.ListObjectsV2Input{
		Bucket:  aws.String(h.cfg.BucketName),
		MaxKeys: aws.Int32(1),
	})
	if err != nil {
		var apiErr smithy.APIError
		if errors.As(err, &apiErr) {
			return domain.Failure(h.Name(), apperror.ErrServiceAPI(apiErr.ErrorCode(), err))
		}
		return domain.Failure(h.Name(), apperror.ErrConnection(err))
	}

	details := []string{fmt.Sprintf("Bucket '%s' is accessible.", h.cfg.BucketName)}
	if key, ok := firstKey(out); ok {
		details = append(details, "Sample object: "+key)
	} else {
		details = append(details, "Bucket is empty.")
	}
	return domain.Success(h.Name(), details...)
}

func firstKey(out *s3.ListObjectsV2Output) (string, bool) {
	if out == nil || len(out.Contents) == 0 {
		return "", false
	}
	return aws.ToString(out.Contents[0].Key), true
}
