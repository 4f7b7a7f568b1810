// Package objectstore uploads receipt photos to S3-compatible object storage.
package objectstore

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"

	"github.com/gustavo230282-a11y/controle-de-retiradas/internal/config"
	domainErrors "github.com/gustavo230282-a11y/controle-de-retiradas/internal/domain/errors"
	"github.com/gustavo230282-a11y/controle-de-retiradas/internal/storage/objectkey"
)

type putObjectAPI interface {
	PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
}

// Uploader stores receipts in a bucket and returns their public URLs.
type Uploader struct {
	client    putObjectAPI
	bucket    string
	region    string
	endpoint  string
	publicURL string
	logger    *slog.Logger
	now       func() time.Time
}

// NewUploader builds an S3 client from cfg. Static credentials are used when
// given, otherwise the default AWS credential chain applies.
func NewUploader(ctx context.Context, cfg config.S3Config, logger *slog.Logger) (*Uploader, error) {
	opts := []func(*awsconfig.LoadOptions) error{awsconfig.WithRegion(cfg.Region)}
	if cfg.AccessKeyID != "" {
		opts = append(opts, awsconfig.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(cfg.AccessKeyID, cfg.SecretAccessKey, "")))
	}

	sdkConfig, err := awsconfig.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("load aws config: %w", err)
	}

	client := s3.NewFromConfig(sdkConfig, func(o *s3.Options) {
		if cfg.Endpoint != "" {
			o.BaseEndpoint = aws.String(cfg.Endpoint)
			o.UsePathStyle = true
		}
	})

	return newUploader(client, cfg, logger), nil
}

func newUploader(client putObjectAPI, cfg config.S3Config, logger *slog.Logger) *Uploader {
	return &Uploader{
		client:    client,
		bucket:    cfg.Bucket,
		region:    cfg.Region,
		endpoint:  strings.TrimRight(cfg.Endpoint, "/"),
		publicURL: strings.TrimRight(cfg.PublicURL, "/"),
		logger:    logger,
		now:       time.Now,
	}
}

func (u *Uploader) Upload(ctx context.Context, data []byte, originalName string) (string, error) {
	key := objectkey.New(originalName, u.now())
	_, err := u.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:        aws.String(u.bucket),
		Key:           aws.String(key),
		Body:          bytes.NewReader(data),
		ContentLength: aws.Int64(int64(len(data))),
		ContentType:   aws.String(objectkey.ContentType(data)),
	})
	if err != nil {
		return "", domainErrors.Storage("upload receipt", err)
	}

	u.logger.Debug("receipt uploaded", slog.String("bucket", u.bucket), slog.String("key", key))
	return u.objectURL(key), nil
}

func (u *Uploader) objectURL(key string) string {
	switch {
	case u.publicURL != "":
		return u.publicURL + "/" + key
	case u.endpoint != "":
		return u.endpoint + "/" + u.bucket + "/" + key
	default:
		return fmt.Sprintf("https://%s.s3.%s.amazonaws.com/%s", u.bucket, u.region, key)
	}
}
