package storage

import (
	"context"
	"errors"
	"fmt"
	"mime/multipart"
	"path"
	"slices"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/gabriel-vasile/mimetype"
)

const MaxUploadSize = 5 << 20

var AllowImage = []string{"image/jpeg", "image/png", "image/webp", "image/gif"}

var (
	ErrFileTooLarge        = errors.New("file too large")
	ErrUnsupportedFileType = errors.New("unsupported file type")
)

// ObjectStore keeps uploaded images. Keys are returned by UploadFile and
// turned into public links with GetPublicLinkKey.
type ObjectStore interface {
	UploadFile(ctx context.Context, name string, file *multipart.FileHeader, folder string, allowed ...string) (string, error)
	DeleteFile(ctx context.Context, key string) error
	GetPublicLinkKey(key string) string
	GetObjectKeyFromLink(link string) string
}

type S3Config struct {
	Bucket    string
	Region    string
	AccessKey string
	SecretKey string
}

type AwsS3 struct {
	client *s3.Client
	bucket string
	region string
}

func NewAwsS3(ctx context.Context, cfg S3Config) (*AwsS3, error) {
	opts := []func(*awsconfig.LoadOptions) error{awsconfig.WithRegion(cfg.Region)}
	if cfg.AccessKey != "" {
		opts = append(opts, awsconfig.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(cfg.AccessKey, cfg.SecretKey, ""),
		))
	}

	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("load aws config: %w", err)
	}

	return &AwsS3{
		client: s3.NewFromConfig(awsCfg),
		bucket: cfg.Bucket,
		region: cfg.Region,
	}, nil
}

func (s *AwsS3) UploadFile(ctx context.Context, name string, file *multipart.FileHeader, folder string, allowed ...string) (string, error) {
	if file.Size > MaxUploadSize {
		return "", fmt.Errorf("%w: max %d bytes", ErrFileTooLarge, MaxUploadSize)
	}

	src, err := file.Open()
	if err != nil {
		return "", fmt.Errorf("open upload: %w", err)
	}
	defer src.Close()

	mtype, err := mimetype.DetectReader(src)
	if err != nil {
		return "", fmt.Errorf("detect content type: %w", err)
	}
	contentType := mtype.String()
	if i := strings.Index(contentType, ";"); i >= 0 {
		contentType = contentType[:i]
	}
	if len(allowed) > 0 && !slices.Contains(allowed, contentType) {
		return "", fmt.Errorf("%w: %s", ErrUnsupportedFileType, contentType)
	}
	if _, err := src.Seek(0, 0); err != nil {
		return "", fmt.Errorf("rewind upload: %w", err)
	}

	key := path.Join(folder, name+mtype.Extension())
	_, err = s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(s.bucket),
		Key:         aws.String(key),
		Body:        src,
		ContentType: aws.String(contentType),
	})
	if err != nil {
		return "", fmt.Errorf("put object %s: %w", key, err)
	}
	return key, nil
}

func (s *AwsS3) DeleteFile(ctx context.Context, key string) error {
	if key == "" {
		return nil
	}
	_, err := s.client.DeleteObject(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		return fmt.Errorf("delete object %s: %w", key, err)
	}
	return nil
}

func (s *AwsS3) GetPublicLinkKey(key string) string {
	return fmt.Sprintf("%s/%s", s.baseURL(), key)
}

func (s *AwsS3) GetObjectKeyFromLink(link string) string {
	return strings.TrimPrefix(link, s.baseURL()+"/")
}

func (s *AwsS3) baseURL() string {
	return fmt.Sprintf("https://%s.s3.%s.amazonaws.com", s.bucket, s.region)
}

// IsRejected reports whether an upload failed because of the file itself
// rather than the storage backend.
func IsRejected(err error) bool {
	return errors.Is(err, ErrFileTooLarge) || errors.Is(err, ErrUnsupportedFileType)
}
