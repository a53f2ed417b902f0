// Package ingestion - S3 row source
package ingestion

import (
	"context"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"

	"github.com/varshaad-neenopal/automotive-damage-processing/core/kb"
	"github.com/varshaad-neenopal/automotive-damage-processing/internal/errors"
)

// S3API is the subset of the S3 client the source needs
type S3API interface {
	GetObject(ctx context.Context, params *s3.GetObjectInput, optFns ...func(*s3.Options)) (*s3.GetObjectOutput, error)
}

// S3Source reads the knowledge base CSV from an S3 object
type S3Source struct {
	Bucket string
	Key    string

	client S3API
}

// NewS3Source creates a source using the default AWS credential chain
func NewS3Source(ctx context.Context, bucket, key, region string) (*S3Source, error) {
	cfg, err := awsconfig.LoadDefaultConfig(ctx, awsconfig.WithRegion(region))
	if err != nil {
		return nil, errors.DataSource("failed to load AWS config", err)
	}
	return &S3Source{
		Bucket: bucket,
		Key:    key,
		client: s3.NewFromConfig(cfg),
	}, nil
}

// NewS3SourceWithClient creates a source with an explicit client
func NewS3SourceWithClient(bucket, key string, client S3API) *S3Source {
	return &S3Source{Bucket: bucket, Key: key, client: client}
}

// Fetch implements kb.RowSource
func (s *S3Source) Fetch(ctx context.Context) ([]kb.RawRow, error) {
	out, err := s.client.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(s.Bucket),
		Key:    aws.String(s.Key),
	})
	if err != nil {
		return nil, errors.DataSource("failed to read knowledge base object", err).
			WithContext("bucket", s.Bucket).
			WithContext("key", s.Key)
	}
	defer out.Body.Close()
	return ReadCSV(out.Body)
}
