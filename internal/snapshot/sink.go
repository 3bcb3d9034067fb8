package snapshot

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

const contentType = "application/zstd"

// Sink is where an encoded snapshot ends up.
type Sink interface {
	Write(ctx context.Context, data []byte) error
	String() string
}

// FileSink writes the snapshot to a local file, replacing it atomically.
type FileSink struct {
	Path string
}

func (f FileSink) Write(ctx context.Context, data []byte) error {
	dir := filepath.Dir(f.Path)
	err := os.MkdirAll(dir, 0777)
	if err != nil {
		return fmt.Errorf("write snapshot: %w", err)
	}

	tmp, err := os.CreateTemp(dir, filepath.Base(f.Path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("write snapshot: %w", err)
	}
	defer os.Remove(tmp.Name())

	_, err = tmp.Write(data)
	if err == nil {
		err = tmp.Close()
	} else {
		tmp.Close()
	}
	if err != nil {
		return fmt.Errorf("write snapshot: %w", err)
	}
	err = os.Rename(tmp.Name(), f.Path)
	if err != nil {
		return fmt.Errorf("write snapshot: %w", err)
	}
	return nil
}

func (f FileSink) String() string {
	return f.Path
}

// ObjectPutter is the part of the s3 client S3Sink uses.
type ObjectPutter interface {
	PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
}

// S3Sink uploads the snapshot to an S3 object.
type S3Sink struct {
	client ObjectPutter
	Bucket string
	Key    string
}

func NewS3SinkWithClient(client ObjectPutter, bucket, key string) S3Sink {
	return S3Sink{client: client, Bucket: bucket, Key: key}
}

// NewS3Sink loads the default aws configuration, AWS_ENDPOINT_URL points the
// client at an s3 compatible service instead.
func NewS3Sink(ctx context.Context, region, bucket, key string) (S3Sink, error) {
	var opts []func(*awsconfig.LoadOptions) error
	if region != "" {
		opts = append(opts, awsconfig.WithRegion(region))
	}
	cfg, err := awsconfig.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		return S3Sink{}, fmt.Errorf("load aws config: %w", err)
	}
	endpoint := os.Getenv("AWS_ENDPOINT_URL")
	client := s3.NewFromConfig(cfg, func(o *s3.Options) {
		if endpoint != "" {
			o.BaseEndpoint = aws.String(endpoint)
			o.UsePathStyle = true
		}
	})
	return NewS3SinkWithClient(client, bucket, key), nil
}

func (s S3Sink) Write(ctx context.Context, data []byte) error {
	_, err := s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:        aws.String(s.Bucket),
		Key:           aws.String(s.Key),
		Body:          bytes.NewReader(data),
		ContentLength: aws.Int64(int64(len(data))),
		ContentType:   aws.String(contentType),
	})
	if err != nil {
		return fmt.Errorf("upload snapshot to s3://%s/%s: %w", s.Bucket, s.Key, err)
	}
	return nil
}

func (s S3Sink) String() string {
	return fmt.Sprintf("s3://%s/%s", s.Bucket, s.Key)
}
