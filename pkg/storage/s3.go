package storage

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
)

// S3API is the subset of *s3.Client used by S3.
type S3API interface {
	PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
	GetObject(ctx context.Context, params *s3.GetObjectInput, optFns ...func(*s3.Options)) (*s3.GetObjectOutput, error)
	HeadObject(ctx context.Context, params *s3.HeadObjectInput, optFns ...func(*s3.Options)) (*s3.HeadObjectOutput, error)
	DeleteObject(ctx context.Context, params *s3.DeleteObjectInput, optFns ...func(*s3.Options)) (*s3.DeleteObjectOutput, error)
	DeleteObjects(ctx context.Context, params *s3.DeleteObjectsInput, optFns ...func(*s3.Options)) (*s3.DeleteObjectsOutput, error)
	ListObjectsV2(ctx context.Context, params *s3.ListObjectsV2Input, optFns ...func(*s3.Options)) (*s3.ListObjectsV2Output, error)
}

// S3 stores files as objects under a key prefix in a bucket.
//
// Example usage:
//
//	cfg, err := config.LoadDefaultConfig(ctx)
//	client := s3.NewFromConfig(cfg)
//	store := storage.NewS3(client, "my-bucket", "games/BadRPGGame")
type S3 struct {
	client S3API
	bucket string
	prefix string
}

// NewS3 creates an S3 storage. The prefix acts as the root directory.
func NewS3(client S3API, bucket, prefix string) *S3 {
	return &S3{
		client: client,
		bucket: bucket,
		prefix: normalizePrefix(prefix),
	}
}

// Bucket returns the bucket name.
func (s *S3) Bucket() string {
	return s.bucket
}

// Prefix returns the key prefix, ending in "/" unless empty.
func (s *S3) Prefix() string {
	return s.prefix
}

func normalizePrefix(prefix string) string {
	prefix = strings.Trim(prefix, "/")
	if prefix == "" {
		return ""
	}
	return prefix + "/"
}

func (s *S3) key(cleaned string) string {
	return s.prefix + cleaned
}

func (s *S3) dirPrefix(cleaned string) string {
	if cleaned == "" {
		return s.prefix
	}
	return s.prefix + cleaned + "/"
}

func isNotFound(err error) bool {
	var noSuchKey *types.NoSuchKey
	var notFound *types.NotFound
	return errors.As(err, &noSuchKey) || errors.As(err, &notFound)
}

// Read returns the contents of the named object.
func (s *S3) Read(ctx context.Context, name string) ([]byte, error) {
	cleaned, err := cleanName(name)
	if err != nil {
		return nil, err
	}
	out, err := s.client.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(s.key(cleaned)),
	})
	if err != nil {
		if isNotFound(err) {
			return nil, notFound(cleaned)
		}
		return nil, backendError("read", cleaned, err)
	}
	defer out.Body.Close()

	data, err := io.ReadAll(out.Body)
	if err != nil {
		return nil, backendError("read", cleaned, err)
	}
	return data, nil
}

// Write uploads the named object.
func (s *S3) Write(ctx context.Context, name string, data []byte) error {
	cleaned, err := cleanName(name)
	if err != nil {
		return err
	}
	_, err = s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:        aws.String(s.bucket),
		Key:           aws.String(s.key(cleaned)),
		Body:          bytes.NewReader(data),
		ContentLength: aws.Int64(int64(len(data))),
	})
	if err != nil {
		return backendError("write", cleaned, err)
	}
	return nil
}

// Exists reports whether the named object exists.
func (s *S3) Exists(ctx context.Context, name string) (bool, error) {
	cleaned, err := cleanName(name)
	if err != nil {
		return false, err
	}
	_, err = s.client.HeadObject(ctx, &s3.HeadObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(s.key(cleaned)),
	})
	if err != nil {
		if isNotFound(err) {
			return false, nil
		}
		return false, backendError("stat", cleaned, err)
	}
	return true, nil
}

// Delete removes the named object. S3 deletes are idempotent, so the
// object is checked first to report ErrNotFound like Disk does.
func (s *S3) Delete(ctx context.Context, name string) error {
	cleaned, err := cleanName(name)
	if err != nil {
		return err
	}
	ok, err := s.Exists(ctx, cleaned)
	if err != nil {
		return err
	}
	if !ok {
		return notFound(cleaned)
	}
	_, err = s.client.DeleteObject(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(s.key(cleaned)),
	})
	if err != nil {
		return backendError("delete", cleaned, err)
	}
	return nil
}

// List returns the immediate children of dir using "/" as the delimiter.
func (s *S3) List(ctx context.Context, dir string) ([]Entry, error) {
	cleaned, err := cleanDir(dir)
	if err != nil {
		return nil, err
	}
	prefix := s.dirPrefix(cleaned)

	paginator := s3.NewListObjectsV2Paginator(s.client, &s3.ListObjectsV2Input{
		Bucket:    aws.String(s.bucket),
		Prefix:    aws.String(prefix),
		Delimiter: aws.String("/"),
	})

	var entries []Entry
	for paginator.HasMorePages() {
		page, err := paginator.NextPage(ctx)
		if err != nil {
			return nil, backendError("list", cleaned, err)
		}
		for _, cp := range page.CommonPrefixes {
			name := strings.TrimSuffix(strings.TrimPrefix(aws.ToString(cp.Prefix), prefix), "/")
			if name != "" {
				entries = append(entries, Entry{Name: name, IsDir: true})
			}
		}
		for _, obj := range page.Contents {
			name := strings.TrimPrefix(aws.ToString(obj.Key), prefix)
			if name != "" {
				entries = append(entries, Entry{Name: name})
			}
		}
	}

	sort.Slice(entries, func(i, j int) bool {
		return entries[i].Name < entries[j].Name
	})
	return entries, nil
}

// maxDeleteBatch is the most keys a single DeleteObjects call accepts.
const maxDeleteBatch = 1000

// DeleteDirectory removes every object under dir, in batches.
func (s *S3) DeleteDirectory(ctx context.Context, dir string) error {
	cleaned, err := cleanDir(dir)
	if err != nil {
		return err
	}

	paginator := s3.NewListObjectsV2Paginator(s.client, &s3.ListObjectsV2Input{
		Bucket: aws.String(s.bucket),
		Prefix: aws.String(s.dirPrefix(cleaned)),
	})

	var keys []string
	for paginator.HasMorePages() {
		page, err := paginator.NextPage(ctx)
		if err != nil {
			return backendError("list", cleaned, err)
		}
		for _, obj := range page.Contents {
			keys = append(keys, aws.ToString(obj.Key))
		}
	}

	for start := 0; start < len(keys); start += maxDeleteBatch {
		batch := keys[start:min(start+maxDeleteBatch, len(keys))]
		ids := make([]types.ObjectIdentifier, len(batch))
		for i, key := range batch {
			ids[i] = types.ObjectIdentifier{Key: aws.String(key)}
		}
		out, err := s.client.DeleteObjects(ctx, &s3.DeleteObjectsInput{
			Bucket: aws.String(s.bucket),
			Delete: &types.Delete{Objects: ids, Quiet: aws.Bool(true)},
		})
		if err != nil {
			return backendError("delete", cleaned, err)
		}
		if len(out.Errors) > 0 {
			first := out.Errors[0]
			return backendError("delete", aws.ToString(first.Key),
				fmt.Errorf("%s: %s (%d keys failed)", aws.ToString(first.Code), aws.ToString(first.Message), len(out.Errors)))
		}
	}
	return nil
}

// Sub returns an S3 storage sharing the client and bucket with the
// prefix extended by dir.
func (s *S3) Sub(dir string) (Storage, error) {
	cleaned, err := cleanDir(dir)
	if err != nil {
		return nil, err
	}
	return &S3{
		client: s.client,
		bucket: s.bucket,
		prefix: s.dirPrefix(cleaned),
	}, nil
}
