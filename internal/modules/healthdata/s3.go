package healthdata

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"

	"github.com/aristath/pulse/internal/modules/wellness"
)

// ObjectGetter is the part of the S3 client used by S3Source
type ObjectGetter interface {
	GetObject(ctx context.Context, params *s3.GetObjectInput, optFns ...func(*s3.Options)) (*s3.GetObjectOutput, error)
}

// S3Source reads the dataset from a CSV object in S3 on every Load
type S3Source struct {
	client ObjectGetter
	bucket string
	key    string
	clock  Clock
}

// NewS3Source creates an S3-backed source.
func NewS3Source(client ObjectGetter, bucket, key string, clock Clock) *S3Source {
	if clock == nil {
		clock = time.Now
	}
	return &S3Source{client: client, bucket: bucket, key: key, clock: clock}
}

// NewS3Client builds an S3 client from the default AWS credential chain.
func NewS3Client(ctx context.Context, region string) (*s3.Client, error) {
	cfg, err := awsconfig.LoadDefaultConfig(ctx, awsconfig.WithRegion(region))
	if err != nil {
		return nil, fmt.Errorf("failed to load AWS config: %w", err)
	}
	return s3.NewFromConfig(cfg), nil
}

// Name returns a description of the source for logs.
func (s *S3Source) Name() string {
	return fmt.Sprintf("s3://%s/%s", s.bucket, s.key)
}

// Load downloads the object and parses it as CSV.
func (s *S3Source) Load(ctx context.Context) (wellness.Dataset, error) {
	out, err := s.client.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(s.key),
	})
	if err != nil {
		var noSuchKey *types.NoSuchKey
		var noSuchBucket *types.NoSuchBucket
		if errors.As(err, &noSuchKey) || errors.As(err, &noSuchBucket) {
			return wellness.Dataset{}, fmt.Errorf("%w: %s", ErrSourceNotFound, s.Name())
		}
		return wellness.Dataset{}, fmt.Errorf("failed to get %s: %w", s.Name(), err)
	}
	defer out.Body.Close()

	return ParseCSV(out.Body, s.clock())
}
