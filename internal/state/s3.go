package state

import (
	"bytes"
	"context"
	"errors"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
	"github.com/aws/smithy-go"
	"gopkg.in/yaml.v3"

	"github.com/imamik/cbdctl/internal/config"
	"github.com/imamik/cbdctl/internal/util/naming"
	"github.com/imamik/cbdctl/internal/retry"
)

// S3Store persists records as objects in an S3-compatible bucket, so
// apply on one machine and destroy on another see the same cluster id.
type S3Store struct {
	client *s3.Client
	bucket string

	// retryOpts tune the backoff on reads; tests shorten the delays.
	retryOpts []retry.Option
}

// NewS3Store creates a store for the configured bucket using static
// credentials.
func NewS3Store(cfg config.S3Config) (*S3Store, error) {
	awsCfg, err := awsconfig.LoadDefaultConfig(context.Background(),
		awsconfig.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(cfg.AccessKey, cfg.SecretKey, "")),
		awsconfig.WithRegion(cfg.Region),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to load AWS config: %w", err)
	}

	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		o.BaseEndpoint = aws.String(cfg.Endpoint)
		o.UsePathStyle = true // path style for S3-compatible endpoints
	})

	return &S3Store{client: client, bucket: cfg.Bucket}, nil
}

// Save writes the record to the cluster's state object, creating the
// bucket on first use.
func (s *S3Store) Save(ctx context.Context, rec *Record) error {
	data, err := yaml.Marshal(rec)
	if err != nil {
		return fmt.Errorf("failed to marshal state record: %w", err)
	}

	if err := s.ensureBucket(ctx); err != nil {
		return err
	}

	key := naming.StateObject(rec.ClusterName)
	_, err = s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:        aws.String(s.bucket),
		Key:           aws.String(key),
		Body:          bytes.NewReader(data),
		ContentLength: aws.Int64(int64(len(data))),
	})
	if err != nil {
		return fmt.Errorf("failed to put state object %s: %w", key, err)
	}
	return nil
}

// Load reads the cluster's state object. Fetch failures are retried; a
// missing object maps to ErrNotFound without retrying.
func (s *S3Store) Load(ctx context.Context, clusterName string) (*Record, error) {
	key := naming.StateObject(clusterName)

	var data []byte
	err := retry.WithExponentialBackoff(ctx, func() error {
		result, err := s.client.GetObject(ctx, &s3.GetObjectInput{
			Bucket: aws.String(s.bucket),
			Key:    aws.String(key),
		})
		if err != nil {
			if isNotFoundError(err) {
				return retry.Fatal(ErrNotFound)
			}
			return fmt.Errorf("failed to get state object %s: %w", key, err)
		}
		defer result.Body.Close()

		var buf bytes.Buffer
		if _, err := buf.ReadFrom(result.Body); err != nil {
			return fmt.Errorf("failed to read state object %s: %w", key, err)
		}
		data = buf.Bytes()
		return nil
	}, s.retryOpts...)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	var rec Record
	if err := yaml.Unmarshal(data, &rec); err != nil {
		return nil, fmt.Errorf("failed to parse state object %s: %w", key, err)
	}
	return &rec, nil
}

// Delete removes the cluster's state object. Deleting a missing object
// succeeds.
func (s *S3Store) Delete(ctx context.Context, clusterName string) error {
	key := naming.StateObject(clusterName)
	_, err := s.client.DeleteObject(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		return fmt.Errorf("failed to delete state object %s: %w", key, err)
	}
	return nil
}

// ensureBucket creates the state bucket. A bucket that already exists
// and is owned by us is fine.
func (s *S3Store) ensureBucket(ctx context.Context) error {
	_, err := s.client.CreateBucket(ctx, &s3.CreateBucketInput{
		Bucket: aws.String(s.bucket),
	})
	if err != nil {
		if isBucketAlreadyOwnedByYou(err) {
			return nil
		}
		return fmt.Errorf("failed to create bucket %s: %w", s.bucket, err)
	}
	return nil
}

func isBucketAlreadyOwnedByYou(err error) bool {
	if err == nil {
		return false
	}

	var baoby *types.BucketAlreadyOwnedByYou
	if errors.As(err, &baoby) {
		return true
	}

	var bae *types.BucketAlreadyExists
	if errors.As(err, &bae) {
		return true
	}

	// Fall back to API error codes for S3-compatible services that do
	// not return the exact SDK error types.
	var apiErr smithy.APIError
	if errors.As(err, &apiErr) {
		code := apiErr.ErrorCode()
		return code == "BucketAlreadyOwnedByYou" || code == "BucketAlreadyExists"
	}

	return false
}

func isNotFoundError(err error) bool {
	if err == nil {
		return false
	}

	var nsk *types.NoSuchKey
	if errors.As(err, &nsk) {
		return true
	}

	var nsb *types.NoSuchBucket
	if errors.As(err, &nsb) {
		return true
	}

	var nf *types.NotFound
	if errors.As(err, &nf) {
		return true
	}

	var apiErr smithy.APIError
	if errors.As(err, &apiErr) {
		code := apiErr.ErrorCode()
		return code == "NoSuchKey" || code == "NoSuchBucket" || code == "NotFound" || code == "404"
	}

	return false
}
