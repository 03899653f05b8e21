package keystore

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
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
	"github.com/aws/smithy-go"
)

// maxKeyObjectSize bounds how much of the object is read. Key material is a
// few dozen bytes; anything larger is not ours.
const maxKeyObjectSize = 4096

// S3Config holds the settings needed to reach an S3-compatible bucket.
type S3Config struct {
	Bucket       string
	Object       string
	Region       string
	BaseEndpoint string
	AccessKey    string
	SecretKey    string
}

// s3API is the subset of *s3.Client used by S3Store.
type s3API interface {
	GetObject(ctx context.Context, in *s3.GetObjectInput, optFns ...func(*s3.Options)) (*s3.GetObjectOutput, error)
	PutObject(ctx context.Context, in *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
}

// S3Store keeps key material in one object of an S3-compatible bucket.
type S3Store struct {
	client s3API
	bucket string
	object string
}

// newS3ClientFromConfig is a seam for tests.
var newS3ClientFromConfig = func(cfg aws.Config, optFns ...func(*s3.Options)) s3API {
	return s3.NewFromConfig(cfg, optFns...)
}

// NewS3Store builds an S3 client from static credentials and returns a store
// bound to c.Bucket/c.Object.
func NewS3Store(ctx context.Context, c S3Config) (*S3Store, error) {
	if c.Bucket == "" || c.Object == "" {
		return nil, errors.New("s3 key store: bucket and object are required")
	}

	cfg, err := config.LoadDefaultConfig(ctx,
		config.WithRegion(c.Region),
		config.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(
			c.AccessKey,
			c.SecretKey,
			"",
		)))
	if err != nil {
		return nil, fmt.Errorf("load aws config: %w", err)
	}

	client := newS3ClientFromConfig(cfg, func(o *s3.Options) {
		if c.BaseEndpoint != "" {
			o.BaseEndpoint = aws.String(c.BaseEndpoint)
			o.UsePathStyle = true
		}
	})

	return &S3Store{client: client, bucket: c.Bucket, object: c.Object}, nil
}

func (s *S3Store) Read(ctx context.Context) ([]byte, error) {
	out, err := s.client.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(s.object),
	})
	if err != nil {
		if isNotFound(err) {
			return nil, ErrKeyNotFound
		}
		return nil, fmt.Errorf("get %s: %w", s.Location(), err)
	}
	defer out.Body.Close()

	b, err := io.ReadAll(io.LimitReader(out.Body, maxKeyObjectSize+1))
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", s.Location(), err)
	}
	if len(b) > maxKeyObjectSize {
		return nil, fmt.Errorf("read %s: object larger than %d bytes", s.Location(), maxKeyObjectSize)
	}
	return b, nil
}

// Write uploads b only if the object does not exist yet (If-None-Match: *).
func (s *S3Store) Write(ctx context.Context, b []byte) error {
	_, err := s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(s.bucket),
		Key:         aws.String(s.object),
		Body:        bytes.NewReader(b),
		IfNoneMatch: aws.String("*"),
	})
	if err != nil {
		return fmt.Errorf("put %s: %w", s.Location(), err)
	}
	return nil
}

func (s *S3Store) Location() string {
	return "s3://" + s.bucket + "/" + s.object
}

func isNotFound(err error) bool {
	var nsk *types.NoSuchKey
	if errors.As(err, &nsk) {
		return true
	}
	var apiErr smithy.APIError
	if errors.As(err, &apiErr) {
		switch apiErr.ErrorCode() {
		case "NoSuchKey", "NotFound":
			return true
		}
	}
	return false
}
