package storage

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/feature/s3/manager"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

const (
	// maxAvatarSize caps a downloaded avatar at 5 MB.
	maxAvatarSize int64 = 5 << 20

	// mirrorTimeout bounds the whole download+upload of one avatar.
	mirrorTimeout = 10 * time.Second
)

// s3Mirror implements AvatarMirror against an S3-compatible endpoint.
type s3Mirror struct {
	cfg        ServiceConfig
	uploader   *manager.Uploader
	httpClient *http.Client
}

// newS3Mirror initializes the S3 client using a custom endpoint with path-style
// addressing, which works with both AWS and S3-compatible providers.
func newS3Mirror(cfg ServiceConfig) (*s3Mirror, error) {
	sdkCfg, err := config.LoadDefaultConfig(context.TODO(),
		config.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(
			cfg.S3AccessKeyID,
			cfg.S3SecretAccessKey,
			"",
		)),
		config.WithRegion("auto"),
	)
	if err != nil {
		return nil, fmt.Errorf("storage: load S3 SDK config: %w", err)
	}

	client := s3.NewFromConfig(sdkCfg, func(o *s3.Options) {
		o.BaseEndpoint = aws.String(cfg.S3Endpoint)
		o.UsePathStyle = true
	})

	return &s3Mirror{
		cfg:        cfg,
		uploader:   manager.NewUploader(client),
		httpClient: &http.Client{},
	}, nil
}

// Mirror downloads the avatar and uploads it under avatars/{userID}.
func (m *s3Mirror) Mirror(ctx context.Context, userID, srcURL string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, mirrorTimeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, srcURL, nil)
	if err != nil {
		return "", fmt.Errorf("storage: build avatar request: %w", err)
	}

	res, err := m.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("storage: download avatar: %w", err)
	}
	defer res.Body.Close()

	if res.StatusCode != http.StatusOK {
		return "", fmt.Errorf("storage: avatar download returned status %d", res.StatusCode)
	}

	if res.ContentLength > maxAvatarSize {
		return "", errors.New("storage: avatar exceeds size limit")
	}

	contentType := res.Header.Get("Content-Type")
	if contentType == "" {
		contentType = "application/octet-stream"
	}

	key := "avatars/" + userID

	_, err = m.uploader.Upload(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(m.cfg.S3BucketName),
		Key:         aws.String(key),
		Body:        io.LimitReader(res.Body, maxAvatarSize),
		ContentType: aws.String(contentType),
	})
	if err != nil {
		return "", fmt.Errorf("storage: upload avatar for %s: %w", userID, err)
	}

	return m.publicURL(key), nil
}

// publicURL builds the path-style object URL for a stored key.
func (m *s3Mirror) publicURL(key string) string {
	endpoint := strings.TrimSuffix(m.cfg.S3Endpoint, "/")
	return endpoint + "/" + m.cfg.S3BucketName + "/" + key
}
