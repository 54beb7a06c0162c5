package dataset

import (
	"context"
	"fmt"
	"net/url"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/de-tools/sales-atlas/pkg/models/domain"
)

const DefaultRegion = "us-east-1"

// ObjectGetter is the subset of the S3 client used to fetch a dataset object.
type ObjectGetter interface {
	GetObject(ctx context.Context, params *s3.GetObjectInput, optFns ...func(*s3.Options)) (*s3.GetObjectOutput, error)
}

type s3Loader struct {
	client   ObjectGetter
	bucket   string
	key      string
	encoding string
}

func NewS3Loader(client ObjectGetter, bucket, key, encoding string) Loader {
	return &s3Loader{client: client, bucket: bucket, key: key, encoding: encoding}
}

// NewS3LoaderFromURI builds a loader for an s3://bucket/key location using the
// shared AWS configuration of the given profile.
func NewS3LoaderFromURI(ctx context.Context, uri, profile, encoding string) (Loader, error) {
	bucket, key, err := ParseS3URI(uri)
	if err != nil {
		return nil, err
	}

	opts := []func(*config.LoadOptions) error{config.WithDefaultRegion(DefaultRegion)}
	if profile != "" {
		opts = append(opts, config.WithSharedConfigProfile(profile))
	}
	awsCfg, err := config.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("unable to load AWS SDK config: %w", err)
	}

	return NewS3Loader(s3.NewFromConfig(awsCfg), bucket, key, encoding), nil
}

func ParseS3URI(uri string) (string, string, error) {
	u, err := url.Parse(uri)
	if err != nil {
		return "", "", fmt.Errorf("parse s3 uri: %w", err)
	}
	key := strings.TrimPrefix(u.Path, "/")
	if u.Scheme != "s3" || u.Host == "" || key == "" {
		return "", "", fmt.Errorf("%w: expected s3://bucket/key, got %q", domain.ErrUnsupportedSource, uri)
	}
	return u.Host, key, nil
}

func (l *s3Loader) Load(ctx context.Context) (domain.Dataset, error) {
	out, err := l.client.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(l.bucket),
		Key:    aws.String(l.key),
	})
	if err != nil {
		return domain.Dataset{}, fmt.Errorf("get s3 object %s/%s: %w", l.bucket, l.key, err)
	}
	defer out.Body.Close()

	return ParseCSV(ctx, out.Body, l.encoding)
}

func (l *s3Loader) Source() string {
	return "s3://" + l.bucket + "/" + l.key
}
