package healthdata

import (
	"context"
	"errors"
	"io"
	"strings"
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeObjectGetter struct {
	body  string
	err   error
	input *s3.GetObjectInput
}

func (f *fakeObjectGetter) GetObject(ctx context.Context, params *s3.GetObjectInput, optFns ...func(*s3.Options)) (*s3.GetObjectOutput, error) {
	f.input = params
	if f.err != nil {
		return nil, f.err
	}
	return &s3.GetObjectOutput{Body: io.NopCloser(strings.NewReader(f.body))}, nil
}

func TestS3Source_Load(t *testing.T) {
	getter := &fakeObjectGetter{body: headerRow + "2000,2000,400,60,50\n2100,1900,420,59,52\n"}
	source := NewS3Source(getter, "health-bucket", "exports/metrics.csv", nil)

	ds, err := source.Load(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 2, ds.Len())
	assert.Equal(t, "health-bucket", aws.ToString(getter.input.Bucket))
	assert.Equal(t, "exports/metrics.csv", aws.ToString(getter.input.Key))
	assert.Equal(t, "s3://health-bucket/exports/metrics.csv", source.Name())
}

func TestS3Source_NoSuchKey(t *testing.T) {
	source := NewS3Source(&fakeObjectGetter{err: &types.NoSuchKey{}}, "b", "k", nil)

	_, err := source.Load(context.Background())
	assert.ErrorIs(t, err, ErrSourceNotFound)
}

func TestS3Source_OtherError(t *testing.T) {
	boom := errors.New("access denied")
	source := NewS3Source(&fakeObjectGetter{err: boom}, "b", "k", nil)

	_, err := source.Load(context.Background())
	assert.ErrorIs(t, err, boom)
	assert.NotErrorIs(t, err, ErrSourceNotFound)
}
