package utils

import (
	"bytes"
	"fmt"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/credentials"
	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/aws/aws-sdk-go/service/s3"
	"github.com/google/uuid"
)

// S3Storage uploads bottle photos to an S3-compatible object store and hands
// back the public URL stored on the listing.
type S3Storage struct {
	bucket    string
	publicURL string
	client    *s3.S3
}

type S3Config struct {
	AccessKey string
	SecretKey string
	Bucket    string
	Region    string
	Endpoint  string
	PublicURL string
}

func NewS3Storage(cfg S3Config) *S3Storage {
	sess := session.Must(session.NewSession(&aws.Config{
		Region:      aws.String(cfg.Region),
		Endpoint:    aws.String(cfg.Endpoint),
		Credentials: credentials.NewStaticCredentials(cfg.AccessKey, cfg.SecretKey, ""),
	}))
	return &S3Storage{
		bucket:    cfg.Bucket,
		publicURL: cfg.PublicURL,
		client:    s3.New(sess),
	}
}

func extensionFor(contentType string) string {
	switch contentType {
	case "image/png":
		return ".png"
	case "image/webp":
		return ".webp"
	default:
		return ".jpg"
	}
}

// UploadListingImage stores the image under a random object name and returns
// the URL it will be served from.
func (s *S3Storage) UploadListingImage(image []byte, contentType string) (string, error) {
	key := fmt.Sprintf("listings/%s%s", uuid.New().String(), extensionFor(contentType))

	_, err := s.client.PutObject(&s3.PutObjectInput{
		Bucket:        aws.String(s.bucket),
		Key:           aws.String(key),
		Body:          bytes.NewReader(image),
		ContentLength: aws.Int64(int64(len(image))),
		ContentType:   aws.String(contentType),
		ACL:           aws.String("public-read"),
	})
	if err != nil {
		return "", fmt.Errorf("unable to upload file to S3: %v", err)
	}

	return fmt.Sprintf("%s/%s", s.publicURL, key), nil
}
