package aws

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"mime"
	"os"
	"path/filepath"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

// S3API is the subset of the S3 API used by S3Client
type S3API interface {
	PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
	GetObject(ctx context.Context, params *s3.GetObjectInput, optFns ...func(*s3.Options)) (*s3.GetObjectOutput, error)
}

// S3Client struct for S3 client
type S3Client struct {
	client S3API
	bucket string
}

// NewS3Client creates a new S3Client. bucket is the default target of Upload.
func NewS3Client(client S3API, bucket string) *S3Client {
	return &S3Client{
		client: client,
		bucket: bucket,
	}
}

// NewS3ClientFromConfig creates a new S3Client from a loaded AWS config
func NewS3ClientFromConfig(cfg aws.Config, bucket string) *S3Client {
	client := s3.NewFromConfig(cfg, func(o *s3.Options) {
		o.UsePathStyle = true
	})
	return NewS3Client(client, bucket)
}

// URI returns the s3:// location of key in the default bucket
func (c *S3Client) URI(key string) string {
	return fmt.Sprintf("s3://%s/%s", c.bucket, key)
}

// Upload stores body under key in the default bucket
func (c *S3Client) Upload(ctx context.Context, key string, body []byte) error {
	return c.PutObject(ctx, c.bucket, key, body)
}

// UploadFile stores the file at path in the default bucket under its base name.
// It returns the object key and the number of bytes written.
func (c *S3Client) UploadFile(ctx context.Context, path string) (string, int, error) {
	key := filepath.Base(path)

	body, err := os.ReadFile(path)
	if err != nil {
		return key, 0, fmt.Errorf("error reading %s: %w", path, err)
	}

	if err := c.Upload(ctx, key, body); err != nil {
		return key, 0, err
	}
	return key, len(body), nil
}

// PutObject stores body under bucket/key
func (c *S3Client) PutObject(ctx context.Context, bucket, key string, body []byte) error {
	input := &s3.PutObjectInput{
		Bucket:        aws.String(bucket),
		Key:           aws.String(key),
		Body:          bytes.NewReader(body),
		ContentLength: aws.Int64(int64(len(body))),
	}
	if contentType := mime.TypeByExtension(filepath.Ext(key)); contentType != "" {
		input.ContentType = aws.String(contentType)
	}

	if _, err := c.client.PutObject(ctx, input); err != nil {
		return fmt.Errorf("error uploading s3://%s/%s: %w", bucket, key, err)
	}
	return nil
}

// GetObject reads the full content of bucket/key
func (c *S3Client) GetObject(ctx context.Context, bucket, key string) ([]byte, error) {
	resp, err := c.client.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		return nil, fmt.Errorf("error downloading s3://%s/%s: %w", bucket, key, err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("error reading s3://%s/%s: %w", bucket, key, err)
	}
	return data, nil
}
