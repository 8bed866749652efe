package storage

import (
	"context"
	"errors"
	"io"
	"testing"

	"delit-api/internal/apperror"
	"delit-api/internal/config"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/stretchr/testify/require"
)

type fakeS3 struct {
	objects   map[string][]byte
	deleteErr error
}

func (f *fakeS3) PutObject(ctx context.Context, in *s3.PutObjectInput, _ ...func(*s3.Options)) (*s3.PutObjectOutput, error) {
	body, err := io.ReadAll(in.Body)
	if err != nil {
		return nil, err
	}
	f.objects[aws.ToString(in.Key)] = body
	return &s3.PutObjectOutput{}, nil
}

func (f *fakeS3) DeleteObject(ctx context.Context, in *s3.DeleteObjectInput, _ ...func(*s3.Options)) (*s3.DeleteObjectOutput, error) {
	if f.deleteErr != nil {
		return nil, f.deleteErr
	}
	delete(f.objects, aws.ToString(in.Key))
	return &s3.DeleteObjectOutput{}, nil
}

func TestS3UploadAndDelete(t *testing.T) {
	fake := &fakeS3{objects: map[string][]byte{}}
	store := NewS3Store(fake, config.S3Config{Bucket: "delit", Endpoint: "http://minio:9000/"})

	link, err := store.Upload(context.Background(), []byte("%PDF-1.4"), "abc_issue.pdf")
	require.NoError(t, err)
	require.Equal(t, "http://minio:9000/delit/abc_issue.pdf", link)
	require.Equal(t, []byte("%PDF-1.4"), fake.objects["abc_issue.pdf"])

	require.NoError(t, store.Delete(context.Background(), link))
	require.Empty(t, fake.objects)
}

func TestS3DeleteForeignLink(t *testing.T) {
	store := NewS3Store(&fakeS3{objects: map[string][]byte{}}, config.S3Config{Bucket: "delit", Region: "eu-west-1"})

	err := store.Delete(context.Background(), "https://github.com/delit/assets/blob/main/x.png")
	require.True(t, apperror.Is(err, apperror.KindNotFound), "got %v", err)
}

func TestS3DeleteRefused(t *testing.T) {
	fake := &fakeS3{objects: map[string][]byte{}, deleteErr: errors.New("access denied")}
	store := NewS3Store(fake, config.S3Config{Bucket: "delit", PublicBaseURL: "https://cdn.example"})

	err := store.Delete(context.Background(), "https://cdn.example/abc_x.png")
	require.True(t, apperror.Is(err, apperror.KindConflict), "got %v", err)
}
