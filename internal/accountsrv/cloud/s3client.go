package cloud

import (
	"bytes"
	"context"
	"errors"
	"io"

	"github.com/avast/retry-go/v4"
	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/feature/s3/manager"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	s3types "github.com/aws/aws-sdk-go-v2/service/s3/types"
	"github.com/aws/smithy-go"
	smithyhttp "github.com/aws/smithy-go/transport/http"
	"github.com/rs/zerolog/log"

	"github.com/nimbusworks/nimbus/internal/common/apperrors"
)

// authRetryAttempts bounds how often an operation is replayed after the SDK
// reports expired credentials. The SDK refreshes credentials on the next
// attempt, so one replay normally suffices.
const authRetryAttempts = 2

type s3API interface {
	GetObject(ctx context.Context, in *s3.GetObjectInput, opts ...func(*s3.Options)) (*s3.GetObjectOutput, error)
	DeleteObject(ctx context.Context, in *s3.DeleteObjectInput, opts ...func(*s3.Options)) (*s3.DeleteObjectOutput, error)
}

type uploadAPI interface {
	Upload(ctx context.Context, in *s3.PutObjectInput, opts ...func(*manager.Uploader)) (*manager.UploadOutput, error)
}

// S3Client implements StorageClient on an S3-compatible object store.
type S3Client struct {
	bucket   string
	api      s3API
	uploader uploadAPI
}

var _ StorageClient = (*S3Client)(nil)

// S3Options configures NewS3Client. Endpoint is optional and overrides the
// SDK default, which is how tests and S3-compatible stores are pointed at.
type S3Options struct {
	Bucket   string
	Region   string
	Endpoint string
}

// NewS3Client builds a client for the given bucket, resolving credentials
// through the SDK default chain.
func NewS3Client(ctx context.Context, opts S3Options) (*S3Client, apperrors.Error) {
	if opts.Bucket == "" {
		return nil, ErrCloudError.Msg("bucket must be configured")
	}
	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, awsconfig.WithRegion(opts.Region))
	if err != nil {
		return nil, ErrCloudError.Msg("failed to load aws configuration").Err(err)
	}
	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		if opts.Endpoint != "" {
			o.BaseEndpoint = aws.String(opts.Endpoint)
			o.UsePathStyle = true
		}
	})
	return &S3Client{
		bucket:   opts.Bucket,
		api:      client,
		uploader: manager.NewUploader(client),
	}, nil
}

func (c *S3Client) Upload(ctx context.Context, path string, body io.Reader) apperrors.Error {
	// buffered so a retried attempt replays the full body
	data, rerr := io.ReadAll(body)
	if rerr != nil {
		return ErrStorage.Msg("failed to read upload body").Err(rerr)
	}
	err := retry.Do(
		func() error {
			_, err := c.uploader.Upload(ctx, &s3.PutObjectInput{
				Bucket: aws.String(c.bucket),
				Key:    aws.String(path),
				Body:   bytes.NewReader(data),
			})
			return err
		},
		retryOptions(ctx, "upload", path)...,
	)
	if err != nil {
		return ErrStorage.Msg("upload failed").Err(err)
	}
	return nil
}

func (c *S3Client) Download(ctx context.Context, path string) ([]byte, apperrors.Error) {
	var data []byte
	err := retry.Do(
		func() error {
			out, err := c.api.GetObject(ctx, &s3.GetObjectInput{
				Bucket: aws.String(c.bucket),
				Key:    aws.String(path),
			})
			if err != nil {
				return err
			}
			defer out.Body.Close()
			data, err = io.ReadAll(out.Body)
			return err
		},
		retryOptions(ctx, "download", path)...,
	)
	if err != nil {
		if isNotFound(err) {
			return nil, ErrBlobNotFound.Msg(path)
		}
		return nil, ErrStorage.Msg("download failed").Err(err)
	}
	return data, nil
}

func (c *S3Client) Delete(ctx context.Context, path string) apperrors.Error {
	err := retry.Do(
		func() error {
			_, err := c.api.DeleteObject(ctx, &s3.DeleteObjectInput{
				Bucket: aws.String(c.bucket),
				Key:    aws.String(path),
			})
			return err
		},
		retryOptions(ctx, "delete", path)...,
	)
	if err != nil {
		// S3 delete of a missing key already succeeds; this covers stores
		// that surface it anyway.
		if isNotFound(err) {
			return nil
		}
		return ErrStorage.Msg("delete failed").Err(err)
	}
	return nil
}

func retryOptions(ctx context.Context, op, path string) []retry.Option {
	return []retry.Option{
		retry.Context(ctx),
		retry.Attempts(authRetryAttempts),
		retry.LastErrorOnly(true),
		retry.RetryIf(isAuthExpired),
		retry.OnRetry(func(n uint, err error) {
			log.Warn().Err(err).Uint("attempt", n).
				Str("op", op).Str("path", path).
				Msg("retrying storage operation after credential expiry")
		}),
	}
}

// isAuthExpired reports whether the error indicates credentials that expired
// mid-flight. These are retried once so the SDK can refresh them.
func isAuthExpired(err error) bool {
	var apiErr smithy.APIError
	if errors.As(err, &apiErr) {
		switch apiErr.ErrorCode() {
		case "ExpiredToken", "ExpiredTokenException", "InvalidToken", "TokenRefreshRequired":
			return true
		}
	}
	var respErr *smithyhttp.ResponseError
	if errors.As(err, &respErr) && respErr.HTTPStatusCode() == 403 {
		return true
	}
	return false
}

func isNotFound(err error) bool {
	var noKey *s3types.NoSuchKey
	if errors.As(err, &noKey) {
		return true
	}
	var apiErr smithy.APIError
	return errors.As(err, &apiErr) && apiErr.ErrorCode() == "NotFound"
}
