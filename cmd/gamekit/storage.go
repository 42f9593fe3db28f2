package main

import (
	"context"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"

	"github.com/gamekit-dev/gamekit/internal/config"
	gkerrors "github.com/gamekit-dev/gamekit/internal/errors"
	"github.com/gamekit-dev/gamekit/pkg/storage"
)

// openStorage builds the storage backend selected in gamekit.json,
// wrapped with tracing.
func openStorage(ctx context.Context, cfg *config.Config) (storage.Storage, error) {
	var store storage.Storage
	switch cfg.Storage.Backend {
	case config.BackendS3:
		awsCfg, err := loadAWSConfig(ctx, cfg.Storage)
		if err != nil {
			return nil, err
		}
		client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
			if cfg.Storage.Endpoint != "" {
				o.BaseEndpoint = aws.String(cfg.Storage.Endpoint)
				o.UsePathStyle = true
			}
		})
		store = storage.NewS3(client, cfg.Storage.Bucket, cfg.Storage.Prefix)
	default:
		disk, err := storage.NewDisk(cfg.StorageDir())
		if err != nil {
			return nil, err
		}
		store = disk
	}
	return storage.NewTraced(store, storage.WithBackendName(cfg.Storage.Backend)), nil
}

// loadAWSConfig resolves region and credentials through the SDK's default
// chain (environment, shared config and profiles, SSO, instance roles).
// storage.region in gamekit.json overrides the resolved region.
func loadAWSConfig(ctx context.Context, sc config.StorageConfig) (aws.Config, error) {
	var opts []func(*awsconfig.LoadOptions) error
	if sc.Region != "" {
		opts = append(opts, awsconfig.WithRegion(sc.Region))
	}
	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		return aws.Config{}, gkerrors.New("E032").
			WithDetail("loading AWS configuration").
			Wrap(err)
	}
	if awsCfg.Region == "" {
		return aws.Config{}, gkerrors.New("E122").
			WithDetail("no AWS region for the s3 backend").
			WithSuggestion("Set storage.region in gamekit.json or AWS_REGION")
	}
	return awsCfg, nil
}
