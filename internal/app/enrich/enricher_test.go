package enrich_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"linewatch/internal/app/enrich"
	"linewatch/internal/lineapi"
)

type stubSource struct {
	result lineapi.ProfileResult
}

func (s stubSource) FetchProfile(ctx context.Context, userID string) lineapi.ProfileResult {
	return s.result
}

type stubMirror struct {
	url    string
	err    error
	called bool
}

func (m *stubMirror) Mirror(ctx context.Context, userID, srcURL string) (string, error) {
	m.called = true
	if m.err != nil {
		return "", m.err
	}
	return m.url, nil
}

func TestEnricherProfile(t *testing.T) {
	ctx := context.Background()

	t.Run("found profile is passed through", func(t *testing.T) {
		source := stubSource{result: lineapi.ProfileResult{Profile: lineapi.Profile{
			DisplayName:   "Bob",
			StatusMessage: "busy",
		}}}
		mirror := &stubMirror{}

		profile := enrich.New(source, mirror).Profile(ctx, "U1")

		assert.Equal(t, "Bob", profile.DisplayName)
		assert.Equal(t, "busy", profile.StatusMessage)
		assert.False(t, mirror.called, "no avatar, nothing to mirror")
	})

	t.Run("unavailable lookup collapses to the zero profile", func(t *testing.T) {
		source := stubSource{result: lineapi.ProfileResult{Err: errors.New("status 503")}}
		mirror := &stubMirror{}

		profile := enrich.New(source, mirror).Profile(ctx, "U1")

		require.True(t, profile.IsZero())
		assert.False(t, mirror.called)
	})

	t.Run("avatar URL is replaced by the mirrored copy", func(t *testing.T) {
		source := stubSource{result: lineapi.ProfileResult{Profile: lineapi.Profile{
			DisplayName: "Bob",
			PictureURL:  "https://cdn.example/p.png",
		}}}
		mirror := &stubMirror{url: "https://bucket.example/avatars/U1"}

		profile := enrich.New(source, mirror).Profile(ctx, "U1")

		require.True(t, mirror.called)
		assert.Equal(t, "https://bucket.example/avatars/U1", profile.PictureURL)
	})

	t.Run("mirror failure keeps the upstream URL", func(t *testing.T) {
		source := stubSource{result: lineapi.ProfileResult{Profile: lineapi.Profile{
			DisplayName: "Bob",
			PictureURL:  "https://cdn.example/p.png",
		}}}
		mirror := &stubMirror{err: errors.New("bucket unreachable")}

		profile := enrich.New(source, mirror).Profile(ctx, "U1")

		assert.Equal(t, "https://cdn.example/p.png", profile.PictureURL)
	})
}
