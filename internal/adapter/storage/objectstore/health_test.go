package objectstore

import (
	"context"
	"errors"
	"testing"

	"cloud-connectivity-check/config"
	"cloud-connectivity-check/internal/core/domain"
	"cloud-connectivity-check/internal/core/ports"
	"cloud-connectivity-check/internal/core/ports/mocks"
	"cloud-connectivity-check/pkg/apperror"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
	"github.com/aws/smithy-go"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func validConfig() config.ObjectStoreConfig {
	return config.ObjectStoreConfig{
		AccessKeyID:     "ak_test",
		SecretAccessKey: "sk_test",
		BucketName:      "assets",
		AccountID:       "acc123",
	}
}

func factoryFor(lister ports.ObjectLister, calls *int) ClientFactory {
	return func(cfg config.ObjectStoreConfig) ports.ObjectLister {
		*calls++
		return lister
	}
}

func TestHealthCheck_Name(t *testing.T) {
	h := NewHealthCheck(validConfig(), zerolog.Nop())
	assert.Equal(t, domain.CheckObjectStore, h.Name())
}

func TestHealthCheck_MissingCredentials_NoClient(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	lister := mocks.NewMockObjectLister(ctrl)
	lister.EXPECT().ListObjectsV2(gomock.Any(), gomock.Any()).Times(0)

	tests := []struct {
		name   string
		mutate func(*config.ObjectStoreConfig)
		want   string
	}{
		{"access key", func(c *config.ObjectStoreConfig) { c.AccessKeyID = "" }, "R2_ACCESS_KEY_ID"},
		{"secret key", func(c *config.ObjectStoreConfig) { c.SecretAccessKey = "" }, "R2_SECRET_ACCESS_KEY"},
		{"bucket", func(c *config.ObjectStoreConfig) { c.BucketName = "" }, "R2_BUCKET_NAME"},
		{"account", func(c *config.ObjectStoreConfig) { c.AccountID = "" }, "R2_ACCOUNT_ID"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validConfig()
			tt.mutate(&cfg)
			calls := 0
			h := NewHealthCheckWithFactory(cfg, factoryFor(lister, &calls), zerolog.Nop())

			res := h.Check(context.Background())

			assert.False(t, res.OK)
			require.NotNil(t, res.Err)
			assert.Equal(t, apperror.KindConfig, res.Err.Kind)
			assert.Contains(t, res.Err.Message, tt.want)
			assert.Equal(t, 0, calls, "client must not be built with missing credentials")
		})
	}
}

func TestHealthCheck_SampleObject(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	lister := mocks.NewMockObjectLister(ctrl)
	lister.EXPECT().ListObjectsV2(gomock.Any(), gomock.Any()).DoAndReturn(
		func(ctx context.Context, in *s3.ListObjectsV2Input, _ ...func(*s3.Options)) (*s3.ListObjectsV2Output, error) {
			assert.Equal(t, "assets", aws.ToString(in.Bucket))
			assert.Equal(t, int32(1), aws.ToInt32(in.MaxKeys))
			return &s3.ListObjectsV2Output{
				Contents: []types.Object{{Key: aws.String("images/logo.png")}},
			}, nil
		},
	)

	calls := 0
	h := NewHealthCheckWithFactory(validConfig(), factoryFor(lister, &calls), zerolog.Nop())

	res := h.Check(context.Background())

	assert.True(t, res.OK)
	assert.Equal(t, []string{"Bucket 'assets' is accessible.", "Sample object: images/logo.png"}, res.Details)
	assert.Equal(t, 1, calls)
}

func TestHealthCheck_EmptyBucket_IsSuccess(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	lister := mocks.NewMockObjectLister(ctrl)
	lister.EXPECT().ListObjectsV2(gomock.Any(), gomock.Any()).Return(&s3.ListObjectsV2Output{}, nil)

	calls := 0
	h := NewHealthCheckWithFactory(validConfig(), factoryFor(lister, &calls), zerolog.Nop())

	res := h.Check(context.Background())

	assert.True(t, res.OK)
	assert.Nil(t, res.Err)
	assert.Equal(t, []string{"Bucket 'assets' is accessible.", "Bucket is empty."}, res.Details)
}

func TestHealthCheck_APIError(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	apiErr := &smithy.GenericAPIError{Code: "NoSuchBucket", Message: "The specified bucket does not exist"}
	lister := mocks.NewMockObjectLister(ctrl)
	lister.EXPECT().ListObjectsV2(gomock.Any(), gomock.Any()).Return(nil, apiErr)

	calls := 0
	h := NewHealthCheckWithFactory(validConfig(), factoryFor(lister, &calls), zerolog.Nop())

	res := h.Check(context.Background())

	assert.False(t, res.OK)
	require.NotNil(t, res.Err)
	assert.Equal(t, "NET_002", res.Err.Code)
	assert.Equal(t, apperror.KindTransport, res.Err.Kind)
	assert.Contains(t, res.Err.Message, "NoSuchBucket")
}

func TestHealthCheck_GenericError(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	netErr := errors.New("dial tcp: i/o timeout")
	lister := mocks.NewMockObjectLister(ctrl)
	lister.EXPECT().ListObjectsV2(gomock.Any(), gomock.Any()).Return(nil, netErr)

	calls := 0
	h := NewHealthCheckWithFactory(validConfig(), factoryFor(lister, &calls), zerolog.Nop())

	res := h.Check(context.Background())

	assert.False(t, res.OK)
	require.NotNil(t, res.Err)
	assert.Equal(t, "NET_001", res.Err.Code)
	assert.ErrorIs(t, res.Err, netErr)
}

func TestNewClient_Options(t *testing.T) {
	client, ok := NewClient(validConfig()).(*s3.Client)
	require.True(t, ok)

	opts := client.Options()
	assert.Equal(t, Region, opts.Region)
	assert.Equal(t, "https://acc123.r2.cloudflarestorage.com", aws.ToString(opts.BaseEndpoint))

	creds, err := opts.Credentials.Retrieve(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "ak_test", creds.AccessKeyID)
	assert.Equal(t, "sk_test", creds.SecretAccessKey)
}
