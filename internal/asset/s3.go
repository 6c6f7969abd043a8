package asset

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"

	appconfig "github.com/migfernandes01/places-share-API/internal/common/config"
	commoncrypto "github.com/migfernandes01/places-share-API/internal/common/crypto"
	"github.com/migfernandes01/places-share-API/internal/common/logger"
	"github.com/migfernandes01/places-share-API/internal/observability/metrics"
)

// S3Store stages images as objects in a bucket; the reference is the object
// key.
type S3Store struct {
	client      *s3.Client
	bucket      string
	idGenerator commoncrypto.IDGenerator
	log         *logger.Logger
}

func NewS3Store(ctx context.Context, cfg appconfig.Config, idGenerator commoncrypto.IDGenerator, log *logger.Logger) (*S3Store, error) {
	awsCfg, err := awsconfig.LoadDefaultConfig(ctx,
		awsconfig.WithRegion(cfg.S3Region),
		awsconfig.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(
			cfg.S3AccessKeyID,
			cfg.S3SecretAccessKey,
			"",
		)))
	if err != nil {
		return nil, fmt.Errorf("failed to load aws config: %w", err)
	}

	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		if cfg.S3BaseEndpoint != "" {
			o.BaseEndpoint = aws.String(cfg.S3BaseEndpoint)
		}
	})

	return &S3Store{
		client:      client,
		bucket:      cfg.S3Bucket,
		idGenerator: idGenerator,
		log:         log,
	}, nil
}

func (s *S3Store) Stage(ctx context.Context, upload io.Reader) (string, error) {
	data, ext, err := readImage(upload)
	if err != nil {
		return "", err
	}

	id, err := s.idGenerator.NewID()
	if err != nil {
		return "", err
	}

	key := fmt.Sprintf("images/%s/%s.%s", time.Now().UTC().Format("2006/01/02"), id, ext)

	_, err = s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(key),
		Body:   bytes.NewReader(data),
	})
	if err != nil {
		return "", err
	}

	metrics.AssetsStaged.Inc()
	return key, nil
}

func (s *S3Store) Discard(ctx context.Context, ref string) {
	if ref == "" {
		return
	}

	// Head first so a missing object is logged as such rather than as a
	// failed delete.
	_, err := s.client.HeadObject(ctx, &s3.HeadObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(ref),
	})
	if err != nil {
		metrics.AssetDiscardFailures.Inc()
		s.log.Warnf("asset not found in bucket, skipping discard: %s: %v", ref, err)
		return
	}

	_, err = s.client.DeleteObject(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(ref),
	})
	if err != nil {
		metrics.AssetDiscardFailures.Inc()
		s.log.Errorf("failed to discard asset %s: %v", ref, err)
		return
	}

	metrics.AssetsDiscarded.Inc()
	s.log.Infof("asset discarded: %s", ref)
}
