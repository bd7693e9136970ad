package origin

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/awserr"
	"github.com/aws/aws-sdk-go/aws/request"
	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/aws/aws-sdk-go/service/s3"
)

// S3API is the part of the S3 client used by S3Store.
type S3API interface {
	GetObjectWithContext(aws.Context, *s3.GetObjectInput, ...request.Option) (*s3.GetObjectOutput, error)
}

// S3Store serves objects from an S3 bucket.
type S3Store struct {
	client S3API
	bucket string
	prefix string
}

var _ Store = (*S3Store)(nil)

// NewS3Store creates a store for the bucket, using the default AWS
// credential chain.
func NewS3Store(config Config) (*S3Store, error) {
	awsConfig := aws.NewConfig()
	if config.Region != "" {
		awsConfig = awsConfig.WithRegion(config.Region)
	}

	sess, err := session.NewSession(awsConfig)
	if err != nil {
		return nil, err
	}

	return NewS3StoreWithClient(s3.New(sess), config), nil
}

// NewS3StoreWithClient creates a store using the given client.
func NewS3StoreWithClient(client S3API, config Config) *S3Store {
	return &S3Store{
		client: client,
		bucket: config.Bucket,
		prefix: strings.Trim(config.Prefix, "/"),
	}
}

func (s *S3Store) Get(ctx context.Context, key string) (*Object, error) {
	objectKey, err := s.objectKey(key)
	if err != nil {
		return nil, err
	}

	out, err := s.client.GetObjectWithContext(ctx, &s3.GetObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(objectKey),
	})
	if err != nil {
		return nil, mapS3Error(err)
	}

	ct := aws.StringValue(out.ContentType)
	if ct == "" {
		ct = contentType(objectKey)
	}

	return &Object{
		Body:          out.Body,
		ContentType:   ct,
		ContentLength: aws.Int64Value(out.ContentLength),
		ETag:          aws.StringValue(out.ETag),
		LastModified:  aws.TimeValue(out.LastModified),
	}, nil
}

// objectKey turns a uri path into an object key below the prefix.
func (s *S3Store) objectKey(key string) (string, error) {
	key, err := decodeKey(key)
	if err != nil {
		return "", err
	}

	key = strings.TrimPrefix(key, "/")
	if s.prefix == "" {
		return key, nil
	}

	return s.prefix + "/" + key, nil
}

func mapS3Error(err error) error {
	var reqErr awserr.RequestFailure
	if errors.As(err, &reqErr) {
		switch reqErr.StatusCode() {
		case http.StatusNotFound:
			return ErrNotFound
		case http.StatusForbidden:
			return ErrForbidden
		}
	}

	var awsErr awserr.Error
	if errors.As(err, &awsErr) && awsErr.Code() == s3.ErrCodeNoSuchKey {
		return ErrNotFound
	}

	return err
}
