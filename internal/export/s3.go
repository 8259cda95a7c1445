package export

import (
	"bytes"
	"context"
	"fmt"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

// Archiver stores a copy of each export.
type Archiver interface {
	Archive(ctx context.Context, at time.Time, data []byte) (string, error)
}

type putObjectAPI interface {
	PutObject(ctx context.Context, in *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
}

type S3Config struct {
	Bucket    string
	Region    string
	Endpoint  string
	AccessKey string
	SecretKey string
}

type S3Archiver struct {
	client putObjectAPI
	bucket string
}

// NewS3Archiver builds a client from static credentials. A custom endpoint
// switches to path-style addressing for S3-compatible stores.
func NewS3Archiver(cfg S3Config) *S3Archiver {
	opts := s3.Options{
		Region: cfg.Region,
	}
	if cfg.AccessKey != "" {
		opts.Credentials = aws.NewCredentialsCache(
			credentials.NewStaticCredentialsProvider(cfg.AccessKey, cfg.SecretKey, ""),
		)
	}
	if cfg.Endpoint != "" {
		opts.BaseEndpoint = aws.String(cfg.Endpoint)
		opts.UsePathStyle = true
	}

	return &S3Archiver{
		client: s3.New(opts),
		bucket: cfg.Bucket,
	}
}

var _ Archiver = (*S3Archiver)(nil)

// ArchiveKey is exports/<timestamp>.xlsx.
func ArchiveKey(at time.Time) string {
	return fmt.Sprintf("exports/%s.xlsx", at.UTC().Format("20060102T150405Z"))
}

func (a *S3Archiver) Archive(ctx context.Context, at time.Time, data []byte) (string, error) {
	key := ArchiveKey(at)

	_, err := a.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:        aws.String(a.bucket),
		Key:           aws.String(key),
		Body:          bytes.NewReader(data),
		ContentLength: aws.Int64(int64(len(data))),
		ContentType:   aws.String(ContentType),
	})
	if err != nil {
		return "", fmt.Errorf("put %s: %w", key, err)
	}
	return key, nil
}
