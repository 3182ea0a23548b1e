package storage

import (
	"context"
	"errors"
	"fmt"
	"io"
	"path"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	awshttp "github.com/aws/aws-sdk-go-v2/aws/transport/http"
	s3Config "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"bimbingan_service/internal/config"
	"bimbingan_service/internal/logging"
)

const keyPrefix = "bimbingan"

func NewClient(ctx context.Context, cfg *config.Config) (*s3.Client, error) {
	s3Cfg, err := s3Config.LoadDefaultConfig(ctx,
		s3Config.WithRegion(cfg.S3Region),
		s3Config.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(
				cfg.S3AccessKeyID,
				cfg.S3SecretAccessKey,
				"",
			),
		),
	)
	if err != nil {
		return nil, err
	}
	s3Client := s3.NewFromConfig(s3Cfg, func(o *s3.Options) {
		o.BaseEndpoint = aws.String(cfg.S3Endpoint)
		o.UsePathStyle = true
	})
	return s3Client, nil
}

// BlobStore keeps uploaded documents in a single bucket.
type BlobStore struct {
	client *s3.Client
	bucket string
	urlTTL time.Duration
	logger *logging.Logger
}

func NewBlobStore(client *s3.Client, bucket string, urlTTL time.Duration, logger *logging.Logger) *BlobStore {
	return &BlobStore{client: client, bucket: bucket, urlTTL: urlTTL, logger: logger}
}

// EnsureBucket creates the bucket, treating "already exists" as success.
func (b *BlobStore) EnsureBucket(ctx context.Context) error {
	_, err := b.client.CreateBucket(ctx, &s3.CreateBucketInput{Bucket: aws.String(b.bucket)})
	if err != nil {
		var opErr *awshttp.ResponseError
		if errors.As(err, &opErr) && opErr.HTTPStatusCode() == 409 {
			b.logger.Info(ctx, "Bucket already exists", zap.String("bucket", b.bucket))
			return nil
		}
		return fmt.Errorf("create bucket %s: %w", b.bucket, err)
	}
	return nil
}

func (b *BlobStore) Put(ctx context.Context, key string, body io.Reader, size int64, contentType string) error {
	_, err := b.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:        aws.String(b.bucket),
		Key:           aws.String(key),
		Body:          body,
		ContentLength: aws.Int64(size),
		ContentType:   aws.String(contentType),
	})
	if err != nil {
		return fmt.Errorf("put object %s: %w", key, err)
	}
	return nil
}

func (b *BlobStore) Delete(ctx context.Context, key string) error {
	_, err := b.client.DeleteObject(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(b.bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		return fmt.Errorf("delete object %s: %w", key, err)
	}
	return nil
}

// PresignGet returns a time-limited download URL for key.
func (b *BlobStore) PresignGet(ctx context.Context, key string) (string, error) {
	presigner := s3.NewPresignClient(b.client)

	req, err := presigner.PresignGetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(b.bucket),
		Key:    aws.String(key),
	},
		s3.WithPresignExpires(b.urlTTL),
	)
	if err != nil {
		return "", fmt.Errorf("presign %s: %w", key, err)
	}
	return req.URL, nil
}

// DocumentKey builds the object key for a document uploaded by owner.
// The original extension is kept, lower-cased.
func DocumentKey(owner uuid.UUID, originalName string) (string, error) {
	id, err := uuid.NewV7()
	if err != nil {
		return "", err
	}
	ext := strings.ToLower(path.Ext(path.Base(strings.ReplaceAll(originalName, "\\", "/"))))
	return path.Join(keyPrefix, owner.String(), id.String()+ext), nil
}
