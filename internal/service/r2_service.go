package service

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"strings"
	"sync"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	cfg "github.com/maheshrc27/postcal/configs"
)

// R2Service archives files to Cloudflare R2 through its S3-compatible API.
type R2Service struct {
	config     cfg.R2
	loadConfig func(ctx context.Context) (aws.Config, error)

	mu     sync.Mutex
	client *s3.Client
}

func NewR2Service(c cfg.Config) *R2Service {
	r := &R2Service{config: c.R2}
	r.loadConfig = func(ctx context.Context) (aws.Config, error) {
		return config.LoadDefaultConfig(ctx,
			config.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(r.config.AccessKey, r.config.SecretKey, "")),
			config.WithRegion("auto"),
		)
	}
	return r
}

func (r *R2Service) Enabled() bool {
	return r.config.Enabled()
}

// R2Client builds the S3 client on first use. A failed build is retried on the
// next call.
func (r *R2Service) R2Client(ctx context.Context) (*s3.Client, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.client != nil {
		return r.client, nil
	}

	awsCfg, err := r.loadConfig(ctx)
	if err != nil {
		slog.Info(err.Error())
		return nil, err
	}

	r.client = s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		o.BaseEndpoint = aws.String(fmt.Sprintf("https://%s.r2.cloudflarestorage.com", r.config.AccountID))
	})
	return r.client, nil
}

// ObjectURL is the public address of key, or "" when no public bucket URL is set.
func (r *R2Service) ObjectURL(key string) string {
	if r.config.PublicURL == "" {
		return ""
	}
	return strings.TrimRight(r.config.PublicURL, "/") + "/" + strings.TrimLeft(key, "/")
}

// UploadToR2 stores file under key in the configured bucket.
func (r *R2Service) UploadToR2(ctx context.Context, key string, file []byte, contentType string) error {
	client, err := r.R2Client(ctx)
	if err != nil {
		return err
	}

	input := &s3.PutObjectInput{
		Bucket:      aws.String(r.config.BucketName),
		Key:         aws.String(key),
		Body:        bytes.NewReader(file),
		ContentType: aws.String(contentType),
	}

	_, err = client.PutObject(ctx, input)
	if err != nil {
		slog.Info(err.Error())
		return err
	}

	return nil
}
