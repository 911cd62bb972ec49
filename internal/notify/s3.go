package notify

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"

	"github.com/cwbudde/bandpower/internal/config"
)

// PutObjectAPI is the subset of *s3.Client the uploader needs.
type PutObjectAPI interface {
	PutObject(ctx context.Context, in *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
}

// S3Upload copies every written file to a bucket under Prefix.
type S3Upload struct {
	Client PutObjectAPI
	Bucket string
	Prefix string
}

// NewS3Upload builds an uploader from the notify.s3 settings. Endpoint and
// PathStyle target S3-compatible stores such as MinIO or LocalStack.
func NewS3Upload(ctx context.Context, c config.S3Config) (*S3Upload, error) {
	if c.Bucket == "" {
		return nil, errors.New("s3 bucket is required")
	}

	var loaders []func(*awsconfig.LoadOptions) error
	if c.Region != "" {
		loaders = append(loaders, awsconfig.WithRegion(c.Region))
	}
	if c.AccessKeyID != "" {
		loaders = append(loaders, awsconfig.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(c.AccessKeyID, c.SecretAccessKey, ""),
		))
	}
	cfg, err := awsconfig.LoadDefaultConfig(ctx, loaders...)
	if err != nil {
		return nil, fmt.Errorf("load aws config: %w", err)
	}

	cli := s3.NewFromConfig(cfg, func(o *s3.Options) {
		o.UsePathStyle = c.PathStyle
		if c.Endpoint != "" {
			o.BaseEndpoint = aws.String(c.Endpoint)
		}
	})
	return &S3Upload{Client: cli, Bucket: c.Bucket, Prefix: c.Prefix}, nil
}

func (*S3Upload) Name() string { return "s3" }

func (u *S3Upload) Notify(ctx context.Context, r Result) error {
	var failed []error
	for _, file := range r.Files {
		if err := ctx.Err(); err != nil {
			return err
		}
		if err := u.put(ctx, file); err != nil {
			failed = append(failed, err)
		}
	}
	return errors.Join(failed...)
}

func (u *S3Upload) put(ctx context.Context, file string) error {
	f, err := os.Open(file)
	if err != nil {
		return err
	}
	defer f.Close()

	key := u.Key(file)
	_, err = u.Client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(u.Bucket),
		Key:         aws.String(key),
		Body:        f,
		ContentType: aws.String(contentType(file)),
	})
	if err != nil {
		return fmt.Errorf("put s3://%s/%s: %w", u.Bucket, key, err)
	}
	return nil
}

// Key is the object key for a local file: Prefix joined with its base name.
func (u *S3Upload) Key(file string) string {
	base := filepath.Base(file)
	prefix := strings.Trim(u.Prefix, "/")
	if prefix == "" {
		return base
	}
	return path.Join(prefix, base)
}

func contentType(file string) string {
	switch strings.ToLower(filepath.Ext(file)) {
	case ".csv":
		return "text/csv"
	case ".xlsx":
		return "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	default:
		return "application/octet-stream"
	}
}

// FromConfig builds the configured notifiers. An S3 uploader that cannot be
// built is returned as an error next to the notifiers that could.
func FromConfig(ctx context.Context, c config.NotifyConfig) ([]Notifier, error) {
	var ns []Notifier
	if c.OpenFolder {
		ns = append(ns, OpenFolder{})
	}
	if c.S3.Bucket == "" {
		return ns, nil
	}
	up, err := NewS3Upload(ctx, c.S3)
	if err != nil {
		return ns, err
	}
	return append(ns, up), nil
}
