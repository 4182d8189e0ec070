package s3

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"

	appcfg "github.com/5w1tchy/pwstrength/internal/config"
)

// putter is the slice of the S3 API the exporter needs.
type putter interface {
	PutObject(ctx context.Context, in *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
}

type S3Client struct {
	Client putter
	Bucket string
	Prefix string
}

// NewClient initializes an S3-compatible client (AWS or Cloudflare R2).
func NewClient(ctx context.Context, c appcfg.S3) (*S3Client, error) {
	creds := credentials.NewStaticCredentialsProvider(c.AccessKey, c.SecretKey, "")

	cfg, err := config.LoadDefaultConfig(ctx,
		config.WithRegion(c.Region),
		config.WithCredentialsProvider(creds),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to load AWS config: %w", err)
	}

	client := s3.NewFromConfig(cfg, func(o *s3.Options) {
		if c.Endpoint != "" {
			o.BaseEndpoint = aws.String(c.Endpoint)
		}
		o.UsePathStyle = false
	})

	return &S3Client{
		Client: client,
		Bucket: c.Bucket,
		Prefix: c.Prefix,
	}, nil
}

// PutJSON uploads v as a JSON object under Prefix/key.
func (s *S3Client) PutJSON(ctx context.Context, key string, v any) (string, error) {
	body, err := json.Marshal(v)
	if err != nil {
		return "", fmt.Errorf("s3: encode %s: %w", key, err)
	}
	full := applyPrefix(s.Prefix, key)
	_, err = s.Client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(s.Bucket),
		Key:         aws.String(full),
		Body:        bytes.NewReader(body),
		ContentType: aws.String("application/json"),
	})
	if err != nil {
		return "", fmt.Errorf("s3: put object %s: %w", full, err)
	}
	return full, nil
}

func applyPrefix(prefix, key string) string {
	prefix = strings.Trim(prefix, "/")
	key = strings.TrimLeft(key, "/")
	if prefix == "" {
		return key
	}
	return prefix + "/" + key
}
