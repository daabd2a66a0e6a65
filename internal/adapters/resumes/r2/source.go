// Package r2 reads uploaded resumes from a Cloudflare R2 bucket through the S3 API.
package r2

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

// MaxResumeBytes bounds a single download.
const MaxResumeBytes = 10 << 20

type Config struct {
	AccountID string
	AccessKey string
	SecretKey string
	Bucket    string
}

func (c Config) Endpoint() string {
	return fmt.Sprintf("https://%s.r2.cloudflarestorage.com", c.AccountID)
}

// objectGetter is the part of *s3.Client the source needs.
type objectGetter interface {
	GetObject(ctx context.Context, in *s3.GetObjectInput, optFns ...func(*s3.Options)) (*s3.GetObjectOutput, error)
}

type Source struct {
	client objectGetter
	bucket string
}

// New builds a source with static credentials against the account's R2 endpoint.
func New(ctx context.Context, cfg Config) (*Source, error) {
	if cfg.AccountID == "" || cfg.Bucket == "" {
		return nil, errors.New("r2 account id and bucket must be set")
	}

	awsConfig, err := config.LoadDefaultConfig(ctx,
		config.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(cfg.AccessKey, cfg.SecretKey, "")),
		config.WithRegion("auto"),
	)
	if err != nil {
		return nil, fmt.Errorf("error creating aws config: %w", err)
	}

	client := s3.NewFromConfig(awsConfig, func(o *s3.Options) {
		o.BaseEndpoint = aws.String(cfg.Endpoint())
	})
	return NewWithClient(client, cfg.Bucket), nil
}

func NewWithClient(client objectGetter, bucket string) *Source {
	return &Source{client: client, bucket: bucket}
}

// FetchResume implements domain.ResumeSource.
func (s *Source) FetchResume(ctx context.Context, key string) ([]byte, error) {
	out, err := s.client.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to get object: %w", err)
	}
	defer out.Body.Close()

	buf := new(bytes.Buffer)
	n, err := io.Copy(buf, io.LimitReader(out.Body, MaxResumeBytes+1))
	if err != nil {
		return nil, fmt.Errorf("failed to read object body: %w", err)
	}
	if n > MaxResumeBytes {
		return nil, fmt.Errorf("object %q exceeds %d bytes", key, MaxResumeBytes)
	}
	return buf.Bytes(), nil
}
