package cloud

import (
	"bytes"
	"context"
	"errors"
	"io"
	"testing"

	"github.com/aws/aws-sdk-go-v2/feature/s3/manager"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	s3types "github.com/aws/aws-sdk-go-v2/service/s3/types"
	"github.com/aws/smithy-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeS3 struct {
	getErrs    []error
	getBody    []byte
	getCalls   int
	delErr     error
	delCalls   int
	lastGetKey string
}

func (f *fakeS3) GetObject(ctx context.Context, in *s3.GetObjectInput, opts ...func(*s3.Options)) (*s3.GetObjectOutput, error) {
	f.getCalls++
	f.lastGetKey = *in.Key
	if len(f.getErrs) > 0 {
		err := f.getErrs[0]
		f.getErrs = f.getErrs[1:]
		if err != nil {
			return nil, err
		}
	}
	return &s3.GetObjectOutput{Body: io.NopCloser(bytes.NewReader(f.getBody))}, nil
}

func (f *fakeS3) DeleteObject(ctx context.Context, in *s3.DeleteObjectInput, opts ...func(*s3.Options)) (*s3.DeleteObjectOutput, error) {
	f.delCalls++
	if f.delErr != nil {
		return nil, f.delErr
	}
	return &s3.DeleteObjectOutput{}, nil
}

type fakeUploader struct {
	errs    []error
	calls   int
	lastKey string
	body    []byte
}

func (f *fakeUploader) Upload(ctx context.Context, in *s3.PutObjectInput, opts ...func(*manager.Uploader)) (*manager.UploadOutput, error) {
	f.calls++
	f.lastKey = *in.Key
	f.body, _ = io.ReadAll(in.Body)
	if len(f.errs) > 0 {
		err := f.errs[0]
		f.errs = f.errs[1:]
		if err != nil {
			return nil, err
		}
	}
	return &manager.UploadOutput{}, nil
}

func expiredTokenErr() error {
	return &smithy.GenericAPIError{Code: "ExpiredToken", Message: "the provided token has expired"}
}

func TestUploadRetriesOnExpiredCredentials(t *testing.T) {
	up := &fakeUploader{errs: []error{expiredTokenErr(), nil}}
	c := &S3Client{bucket: "nimbus-blobs", api: &fakeS3{}, uploader: up}

	err := c.Upload(context.Background(), "101/5/blob-1", bytes.NewReader([]byte("payload")))
	require.Nil(t, err)
	assert.Equal(t, 2, up.calls)
	assert.Equal(t, "101/5/blob-1", up.lastKey)
	assert.Equal(t, []byte("payload"), up.body)
}

func TestUploadDoesNotRetryOtherErrors(t *testing.T) {
	up := &fakeUploader{errs: []error{errors.New("connection reset")}}
	c := &S3Client{bucket: "nimbus-blobs", api: &fakeS3{}, uploader: up}

	err := c.Upload(context.Background(), "101/5/blob-1", bytes.NewReader(nil))
	require.NotNil(t, err)
	assert.ErrorIs(t, err, ErrStorage)
	assert.Equal(t, 1, up.calls)
}

func TestUploadGivesUpAfterRepeatedExpiry(t *testing.T) {
	up := &fakeUploader{errs: []error{expiredTokenErr(), expiredTokenErr()}}
	c := &S3Client{bucket: "nimbus-blobs", api: &fakeS3{}, uploader: up}

	err := c.Upload(context.Background(), "101/5/blob-1", bytes.NewReader(nil))
	require.NotNil(t, err)
	assert.ErrorIs(t, err, ErrStorage)
	assert.Equal(t, authRetryAttempts, up.calls)
}

func TestDownload(t *testing.T) {
	api := &fakeS3{getBody: []byte("hello")}
	c := &S3Client{bucket: "nimbus-blobs", api: api, uploader: &fakeUploader{}}

	data, err := c.Download(context.Background(), "101/5/blob-1")
	require.Nil(t, err)
	assert.Equal(t, []byte("hello"), data)
	assert.Equal(t, "101/5/blob-1", api.lastGetKey)
}

func TestDownloadNotFound(t *testing.T) {
	api := &fakeS3{getErrs: []error{&s3types.NoSuchKey{}}}
	c := &S3Client{bucket: "nimbus-blobs", api: api, uploader: &fakeUploader{}}

	_, err := c.Download(context.Background(), "101/5/missing")
	assert.ErrorIs(t, err, ErrBlobNotFound)
	assert.Equal(t, 1, api.getCalls)
}

func TestDownloadRetriesOnExpiredCredentials(t *testing.T) {
	api := &fakeS3{getErrs: []error{expiredTokenErr(), nil}, getBody: []byte("v2")}
	c := &S3Client{bucket: "nimbus-blobs", api: api, uploader: &fakeUploader{}}

	data, err := c.Download(context.Background(), "101/5/blob-1")
	require.Nil(t, err)
	assert.Equal(t, []byte("v2"), data)
	assert.Equal(t, 2, api.getCalls)
}

func TestDelete(t *testing.T) {
	api := &fakeS3{}
	c := &S3Client{bucket: "nimbus-blobs", api: api, uploader: &fakeUploader{}}
	require.Nil(t, c.Delete(context.Background(), "101/5/blob-1"))
	assert.Equal(t, 1, api.delCalls)

	// stores that report missing keys on delete are treated as success
	api.delErr = &smithy.GenericAPIError{Code: "NotFound"}
	require.Nil(t, c.Delete(context.Background(), "101/5/missing"))

	api.delErr = errors.New("connection reset")
	assert.ErrorIs(t, c.Delete(context.Background(), "101/5/blob-1"), ErrStorage)
}

func TestNewS3ClientRequiresBucket(t *testing.T) {
	_, err := NewS3Client(context.Background(), S3Options{})
	assert.ErrorIs(t, err, ErrCloudError)
}

func TestIsAuthExpired(t *testing.T) {
	assert.True(t, isAuthExpired(expiredTokenErr()))
	assert.True(t, isAuthExpired(&smithy.GenericAPIError{Code: "InvalidToken"}))
	assert.False(t, isAuthExpired(&smithy.GenericAPIError{Code: "AccessDenied"}))
	assert.False(t, isAuthExpired(errors.New("plain")))
	assert.False(t, isAuthExpired(nil))
}
