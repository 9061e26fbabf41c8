// Package s3 implements the file store on an S3-compatible bucket.
package s3

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"path"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	s3types "github.com/aws/aws-sdk-go-v2/service/s3/types"
)

// Options configures the S3 file store. AccessKey/SecretKey and BaseEndpoint
// support self-hosted S3-compatible backends (MinIO); leave them empty to use
// the default AWS credential chain.
type Options struct {
	Bucket       string
	Prefix       string
	Region       string
	BaseEndpoint string
	AccessKey    string
	SecretKey    string
}

// Store keeps uploaded files as objects under a key prefix.
type Store struct {
	client *s3.Client
	bucket string
	prefix string
}

// New creates an S3-backed file store.
func New(ctx context.Context, opts Options) (*Store, error) {
	if opts.Bucket == "" {
		return nil, fmt.Errorf("s3 bucket is required")
	}

	loadOpts := []func(*awsconfig.LoadOptions) error{}
	if opts.Region != "" {
		loadOpts = append(loadOpts, awsconfig.WithRegion(opts.Region))
	}
	if opts.AccessKey != "" {
		loadOpts = append(loadOpts, awsconfig.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(opts.AccessKey, opts.SecretKey, "")))
	}

	cfg, err := awsconfig.LoadDefaultConfig(ctx, loadOpts...)
	if err != nil {
		return nil, fmt.Errorf("load aws config: %w", err)
	}

	client := s3.NewFromConfig(cfg, func(o *s3.Options) {
		if opts.BaseEndpoint != "" {
			o.BaseEndpoint = aws.String(opts.BaseEndpoint)
			o.UsePathStyle = true
		}
	})

	return &Store{client: client, bucket: opts.Bucket, prefix: normalizePrefix(opts.Prefix)}, nil
}

func (s *Store) Save(ctx context.Context, storedName string, r io.Reader) (int64, error) {
	key, err := s.key(storedName)
	if err != nil {
		return 0, err
	}

	// collision probe before the write; Save callers regenerate on fs.ErrExist
	_, err = s.client.HeadObject(ctx, &s3.HeadObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(key),
	})
	if err == nil {
		return 0, fmt.Errorf("object %s: %w", storedName, fs.ErrExist)
	}
	var notFound *s3types.NotFound
	if !errors.As(err, &notFound) {
		return 0, fmt.Errorf("head object %s: %w", storedName, err)
	}

	counter := &countingReader{r: r}
	_, err = s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(key),
		Body:   counter,
	})
	if err != nil {
		return 0, fmt.Errorf("put object %s: %w", storedName, err)
	}
	return counter.n, nil
}

func (s *Store) Open(ctx context.Context, storedName string) (io.ReadCloser, error) {
	key, err := s.key(storedName)
	if err != nil {
		return nil, err
	}
	out, err := s.client.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		var noKey *s3types.NoSuchKey
		if errors.As(err, &noKey) {
			return nil, fmt.Errorf("object %s: %w", storedName, fs.ErrNotExist)
		}
		return nil, fmt.Errorf("get object %s: %w", storedName, err)
	}
	return out.Body, nil
}

func (s *Store) Remove(ctx context.Context, storedName string) error {
	key, err := s.key(storedName)
	if err != nil {
		return err
	}
	_, err = s.client.DeleteObject(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		return fmt.Errorf("delete object %s: %w", storedName, err)
	}
	return nil
}

func (s *Store) key(storedName string) (string, error) {
	if storedName == "" || storedName != path.Base(storedName) || strings.HasPrefix(storedName, ".") {
		return "", fmt.Errorf("invalid stored name %q: %w", storedName, fs.ErrInvalid)
	}
	return s.prefix + storedName, nil
}

func normalizePrefix(p string) string {
	p = strings.Trim(p, "/")
	if p == "" {
		return ""
	}
	return p + "/"
}

type countingReader struct {
	r io.Reader
	n int64
}

func (c *countingReader) Read(p []byte) (int, error) {
	n, err := c.r.Read(p)
	c.n += int64(n)
	return n, err
}
