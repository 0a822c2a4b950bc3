/*
Package storage provides the optional avatar mirror.

Profile pictures returned by the chat platform live on its CDN and may expire. When
an S3-compatible bucket is configured, the avatar fetched at first sight is copied
into the bucket and the mirrored URL is stored instead. Mirroring is best-effort:
any failure falls back to storing the upstream URL unchanged.
*/
package storage

import "context"

// ServiceConfig holds the settings for the S3-compatible bucket.
type ServiceConfig struct {
	S3BucketName      string
	S3Endpoint        string
	S3AccessKeyID     string
	S3SecretAccessKey string
}

// Enabled reports whether all settings required for mirroring are present.
func (c ServiceConfig) Enabled() bool {
	return c.S3BucketName != "" && c.S3Endpoint != "" && c.S3AccessKeyID != "" && c.S3SecretAccessKey != ""
}

// AvatarMirror copies a user's avatar into durable storage.
type AvatarMirror interface {
	// Mirror downloads srcURL and stores it under a key derived from userID,
	// returning the URL of the stored copy.
	Mirror(ctx context.Context, userID, srcURL string) (string, error)
}

// NewAvatarMirror is the factory for AvatarMirror. An incomplete configuration
// yields the disabled mirror, which passes source URLs through untouched.
func NewAvatarMirror(cfg ServiceConfig) (AvatarMirror, error) {
	if !cfg.Enabled() {
		return disabledMirror{}, nil
	}
	return newS3Mirror(cfg)
}

type disabledMirror struct{}

func (disabledMirror) Mirror(ctx context.Context, userID, srcURL string) (string, error) {
	return srcURL, nil
}
