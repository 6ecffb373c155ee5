package integration

import (
	"context"
	"sort"
	"sync"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
	"github.com/aws/smithy-go"
)

// inMemoryBuckets is a minimal ListObjectsV2 backend.
type inMemoryBuckets struct {
	mu      sync.Mutex
	buckets map[string][]string
	calls   int
}

func newInMemoryBuckets() *inMemoryBuckets {
	return &inMemoryBuckets{buckets: map[string][]string{}}
}

func (b *inMemoryBuckets) put(bucket string, keys ...string) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.buckets[bucket] = append(b.buckets[bucket], keys...)
	sort.Strings(b.buckets[bucket])
}

func (b *inMemoryBuckets) ListObjectsV2(ctx context.Context, in *s3.ListObjectsV2Input, _ ...func(*s3.Options)) (*s3.ListObjectsV2Output, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.calls++

	keys, ok := b.buckets[aws.ToString(in.Bucket)]
	if !ok {
		return nil, &smithy.GenericAPIError{Code: "NoSuchBucket", Message: "The specified bucket does not exist"}
	}

	limit := len(keys)
	if in.MaxKeys != nil && int(*in.MaxKeys) < limit {
		limit = int(*in.MaxKeys)
	}
	out := &s3.ListObjectsV2Output{KeyCount: aws.Int32(int32(limit))}
	for _, k := range keys[:limit] {
		out.Contents = append(out.Contents, types.Object{Key: aws.String(k)})
	}
	return out, nil
}
