package ports

import (
	"context"

	"cloud-connectivity-check/internal/core/domain"

	"github.com/aws/aws-sdk-go-v2/service/s3"
)

//go:generate mockgen -destination=mocks/mock_ports.go -package=mocks . Checker,ResultRecorder,CheckService,ObjectLister

// CheckService runs the registered checks.
type CheckService interface {
	// Run executes every check sequentially in registration order.
	Run(ctx context.Context) domain.Report
	// RunOne executes a single check by name.
	RunOne(ctx context.Context, name domain.CheckName) (domain.Result, error)
}

// ObjectLister is the subset of the S3 API used by the object store check.
type ObjectLister interface {
	ListObjectsV2(ctx context.Context, params *s3.ListObjectsV2Input, optFns ...func(*s3.Options)) (*s3.ListObjectsV2Output, error)
}
