package export

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/cockroachdb/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFileSink_Write(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "exports")
	sink := FileSink{Dir: dir}

	location, err := sink.Write(context.Background(), FileName, []byte("id,age\nx,30"))
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, FileName), location)

	got, err := os.ReadFile(location)
	require.NoError(t, err)
	assert.Equal(t, "id,age\nx,30", string(got))
}

func TestFileSink_WriteStripsDirectories(t *testing.T) {
	dir := t.TempDir()
	sink := FileSink{Dir: dir}

	location, err := sink.Write(context.Background(), "../escape.csv", []byte("x"))
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "escape.csv"), location)
}

type fakeS3 struct {
	input *s3.PutObjectInput
	body  []byte
	err   error
}

func (f *fakeS3) PutObject(_ context.Context, in *s3.PutObjectInput, _ ...func(*s3.Options)) (*s3.PutObjectOutput, error) {
	if f.err != nil {
		return nil, f.err
	}
	f.input = in
	body, err := io.ReadAll(in.Body)
	if err != nil {
		return nil, err
	}
	f.body = body
	return &s3.PutObjectOutput{}, nil
}

func TestS3Sink_Write(t *testing.T) {
	client := &fakeS3{}
	sink := NewS3SinkWithClient(client, "nutri-exports", "daily")

	location, err := sink.Write(context.Background(), FileName, []byte("id,age"))
	require.NoError(t, err)

	assert.Equal(t, "s3://nutri-exports/daily/nutri_submissions.csv", location)
	assert.Equal(t, "nutri-exports", aws.ToString(client.input.Bucket))
	assert.Equal(t, "daily/nutri_submissions.csv", aws.ToString(client.input.Key))
	assert.Equal(t, "text/csv", aws.ToString(client.input.ContentType))
	assert.Equal(t, "id,age", string(client.body))
}

func TestS3Sink_WriteError(t *testing.T) {
	sink := NewS3SinkWithClient(&fakeS3{err: errors.New("access denied")}, "b", "")

	_, err := sink.Write(context.Background(), FileName, []byte("x"))
	assert.ErrorContains(t, err, "failed to upload nutri_submissions.csv to bucket b")
}

func TestNewS3Sink_RequiresBucket(t *testing.T) {
	_, err := NewS3Sink(context.Background(), S3Options{Region: "us-east-1"})
	assert.ErrorContains(t, err, "s3 bucket is required")
}
