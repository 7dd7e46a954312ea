// Package contentsync uploads local site content to the deployment's S3
// bucket with correct Content-Type headers. S3 does not sniff content types,
// and a website bucket serving "binary/octet-stream" HTML renders as a
// download, so every object gets an explicit type derived from its extension.
package contentsync

import (
	"context"
	"io/fs"
	"mime"
	"os"
	"path"
	"path/filepath"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/cockroachdb/errors"
	"go.uber.org/zap"
)

// fallbackContentType is used when the extension is unknown.
const fallbackContentType = "application/octet-stream"

// Object is one file scheduled for upload.
type Object struct {
	// Key is the bucket key, always forward-slash separated.
	Key string
	// Path is the absolute local file path.
	Path string
	// ContentType is the MIME type derived from the file extension.
	ContentType string
}

// PutObjectAPI is the slice of the S3 client used here.
type PutObjectAPI interface {
	PutObject(ctx context.Context, params *s3.PutObjectInput,
		optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
}

// NewClient builds an S3 client for the given region using the default
// credential chain.
func NewClient(ctx context.Context, region string) (*s3.Client, error) {
	cfg, err := awsconfig.LoadDefaultConfig(ctx, awsconfig.WithRegion(region))
	if err != nil {
		return nil, errors.Wrap(err, "loading AWS config")
	}
	return s3.NewFromConfig(cfg), nil
}

// Plan walks dir and returns the objects an upload would create, sorted in
// walk order. Hidden files and directories (dot-prefixed) are skipped.
func Plan(dir string) ([]Object, error) {
	absDir, err := filepath.Abs(dir)
	if err != nil {
		return nil, errors.Wrapf(err, "resolving %s", dir)
	}

	var objects []Object
	err = filepath.WalkDir(absDir, func(name string, entry fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		base := entry.Name()
		if entry.IsDir() {
			if name != absDir && base[0] == '.' {
				return filepath.SkipDir
			}
			return nil
		}
		if base[0] == '.' {
			return nil
		}

		rel, err := filepath.Rel(absDir, name)
		if err != nil {
			return err
		}

		key := filepath.ToSlash(rel)
		contentType := mime.TypeByExtension(path.Ext(key))
		if contentType == "" {
			contentType = fallbackContentType
		}

		objects = append(objects, Object{Key: key, Path: name, ContentType: contentType})
		return nil
	})
	if err != nil {
		return nil, errors.Wrapf(err, "walking %s", dir)
	}

	if len(objects) == 0 {
		return nil, errors.Newf("no content found in %s", dir)
	}
	return objects, nil
}

// Upload puts every planned object into the bucket.
func Upload(ctx context.Context, api PutObjectAPI, bucket string, objects []Object, log *zap.Logger) error {
	for _, obj := range objects {
		f, err := os.Open(obj.Path)
		if err != nil {
			return errors.Wrapf(err, "opening %s", obj.Path)
		}

		_, err = api.PutObject(ctx, &s3.PutObjectInput{
			Bucket:      aws.String(bucket),
			Key:         aws.String(obj.Key),
			Body:        f,
			ContentType: aws.String(obj.ContentType),
		})
		f.Close()
		if err != nil {
			return errors.Wrapf(err, "uploading %s to s3://%s/%s", obj.Path, bucket, obj.Key)
		}

		log.Info("uploaded object",
			zap.String("bucket", bucket),
			zap.String("key", obj.Key),
			zap.String("content_type", obj.ContentType))
	}
	return nil
}
