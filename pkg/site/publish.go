package site

import (
	"bytes"
	"context"
	"io/fs"
	"mime"
	"os"
	"path"
	"path/filepath"
	"sort"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"

	"github.com/vango-dev/soar/internal/config"
	"github.com/vango-dev/soar/internal/errors"
)

// Uploader is the subset of *s3.Client Publish needs.
type Uploader interface {
	PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
}

// PublishResult describes a finished upload.
type PublishResult struct {
	// Keys are the uploaded object keys, sorted.
	Keys []string

	// Bytes is the total size uploaded.
	Bytes int64
}

// Publish uploads every file under outdir to bucket. Object keys are the
// file paths relative to outdir, in slash form, behind prefix. Pages are
// uploaded with a text/html content type; other files get the type of
// their extension.
func Publish(ctx context.Context, up Uploader, bucket, prefix, outdir string) (*PublishResult, error) {
	if bucket == "" {
		return nil, errors.New("E202").WithDetail("no bucket given")
	}

	var files []string
	err := filepath.WalkDir(outdir, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() {
			files = append(files, p)
		}
		return nil
	})
	if err != nil {
		return nil, errors.New("E202").WithDetail("cannot read build output " + outdir).Wrap(err)
	}
	sort.Strings(files)

	result := &PublishResult{}
	for _, file := range files {
		if err := ctx.Err(); err != nil {
			return result, err
		}

		rel, err := filepath.Rel(outdir, file)
		if err != nil {
			return result, errors.New("E202").Wrap(err)
		}
		data, err := os.ReadFile(file)
		if err != nil {
			return result, errors.New("E202").Wrap(err)
		}

		key := ObjectKey(prefix, filepath.ToSlash(rel))
		_, err = up.PutObject(ctx, &s3.PutObjectInput{
			Bucket:      aws.String(bucket),
			Key:         aws.String(key),
			Body:        bytes.NewReader(data),
			ContentType: aws.String(ContentType(rel)),
		})
		if err != nil {
			return result, errors.New("E202").WithDetail("upload of " + key + " failed").Wrap(err)
		}
		result.Keys = append(result.Keys, key)
		result.Bytes += int64(len(data))
	}
	return result, nil
}

// ObjectKey joins prefix and a slash-separated relative path.
func ObjectKey(prefix, rel string) string {
	prefix = strings.Trim(prefix, "/")
	if prefix == "" {
		return rel
	}
	return path.Join(prefix, rel)
}

// ContentType returns the content type for a file name.
func ContentType(name string) string {
	switch ext := strings.ToLower(filepath.Ext(name)); ext {
	case ".html", ".htm":
		return "text/html; charset=utf-8"
	case ".css":
		return "text/css; charset=utf-8"
	case ".js", ".mjs":
		return "text/javascript; charset=utf-8"
	case ".json":
		return "application/json"
	case ".svg":
		return "image/svg+xml"
	default:
		if ct := mime.TypeByExtension(ext); ct != "" {
			return ct
		}
		return "application/octet-stream"
	}
}

// NewS3Client builds an S3 client from the publish settings. Credentials
// are read from AWS_ACCESS_KEY_ID, AWS_SECRET_ACCESS_KEY and
// AWS_SESSION_TOKEN.
func NewS3Client(cfg config.PublishConfig) *s3.Client {
	opts := s3.Options{
		Region:      cfg.Region,
		Credentials: aws.NewCredentialsCache(aws.CredentialsProviderFunc(envCredentials)),
	}
	if opts.Region == "" {
		opts.Region = os.Getenv("AWS_REGION")
	}
	if cfg.Endpoint != "" {
		opts.BaseEndpoint = aws.String(cfg.Endpoint)
		opts.UsePathStyle = true
	}
	return s3.New(opts)
}

func envCredentials(context.Context) (aws.Credentials, error) {
	creds := aws.Credentials{
		AccessKeyID:     os.Getenv("AWS_ACCESS_KEY_ID"),
		SecretAccessKey: os.Getenv("AWS_SECRET_ACCESS_KEY"),
		SessionToken:    os.Getenv("AWS_SESSION_TOKEN"),
		Source:          "environment",
	}
	if creds.AccessKeyID == "" || creds.SecretAccessKey == "" {
		return aws.Credentials{}, errors.New("E202").
			WithDetail("AWS credentials are not set").
			WithSuggestion("Export AWS_ACCESS_KEY_ID and AWS_SECRET_ACCESS_KEY")
	}
	return creds, nil
}
