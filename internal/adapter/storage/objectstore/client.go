package objectstore

import (
	"cloud-connectivity-check/config"
	"cloud-connectivity-check/internal/core/ports"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

// Region is the pseudo-region R2 expects from S3 clients.
const Region = "auto"

// ClientFactory builds an S3-compatible lister from the credentials.
type ClientFactory func(cfg config.ObjectStoreConfig) ports.ObjectLister

// NewClient creates an S3 client pointed at the account's R2 endpoint.
// Static credentials only: no shared config files or instance metadata.
func NewClient(cfg config.ObjectStoreConfig) ports.ObjectLister {
	return s3.New(s3.Options{
		Region:       Region,
		BaseEndpoint: aws.String(cfg.Endpoint()),
		Credentials:  credentials.NewStaticCredentialsProvider(cfg.AccessKeyID, cfg.SecretAccessKey, ""),
	})
}
