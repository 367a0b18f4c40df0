package s3

import (
	"errors"
	"fmt"
	"time"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/aws/aws-sdk-go/service/s3"
	"github.com/aws/aws-sdk-go/service/s3/s3iface"
)

const defaultPresignExpiry = 15 * time.Minute

// ItfS3 hands out temporary read URLs for objects the liveness service wrote
// to the configured output bucket.
type ItfS3 interface {
	PresignObject(bucket, key, version string) (string, error)
}

type s3Client struct {
	client s3iface.S3API
	expiry time.Duration
}

func New(sess *session.Session) ItfS3 {
	return NewWithAPI(s3.New(sess), defaultPresignExpiry)
}

func NewWithAPI(api s3iface.S3API, expiry time.Duration) ItfS3 {
	if expiry <= 0 {
		expiry = defaultPresignExpiry
	}
	return &s3Client{
		client: api,
		expiry: expiry,
	}
}

func (s *s3Client) PresignObject(bucket, key, version string) (string, error) {
	if bucket == "" || key == "" {
		return "", errors.New("bucket and key are required to presign an object")
	}

	input := &s3.GetObjectInput{
		Bucket: aws.String(bucket),
		Key:    aws.String(key),
	}
	if version != "" {
		input.VersionId = aws.String(version)
	}

	req, _ := s.client.GetObjectRequest(input)

	urlStr, err := req.Presign(s.expiry)
	if err != nil {
		return "", fmt.Errorf("failed to presign s3://%s/%s: %w", bucket, key, err)
	}

	return urlStr, nil
}
