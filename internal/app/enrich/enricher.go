/*
Package enrich builds the first-sight profile for a newly seen user.

It chains the LINE profile lookup with the optional avatar mirror and collapses all
failures into "no profile data" at the boundary, so stores never see an error from
enrichment. Unavailability reasons are logged, not surfaced.
*/
package enrich

import (
	"context"

	"linewatch/internal/app/seen"
	"linewatch/internal/app/storage"
	"linewatch/internal/lineapi"
	"linewatch/internal/pkg/logx"
)

// ProfileSource is the LINE API surface Enricher depends on.
type ProfileSource interface {
	FetchProfile(ctx context.Context, userID string) lineapi.ProfileResult
}

// Enricher implements seen.ProfileFetcher.
type Enricher struct {
	source ProfileSource
	mirror storage.AvatarMirror
}

// New wires a profile source and an avatar mirror into an Enricher.
func New(source ProfileSource, mirror storage.AvatarMirror) *Enricher {
	return &Enricher{source: source, mirror: mirror}
}

// Profile fetches the display profile for userID. When the lookup fails the zero
// profile is returned and the reason logged. A fetched avatar is mirrored into
// durable storage when configured; mirror failures keep the upstream URL.
func (e *Enricher) Profile(ctx context.Context, userID string) seen.Profile {
	result := e.source.FetchProfile(ctx, userID)
	if !result.Found() {
		logx.Warn("profile lookup unavailable", "user_id", userID, "reason", result.Err.Error())
		return seen.Profile{}
	}

	profile := seen.Profile{
		DisplayName:   result.Profile.DisplayName,
		PictureURL:    result.Profile.PictureURL,
		StatusMessage: result.Profile.StatusMessage,
	}

	if profile.PictureURL != "" {
		mirrored, err := e.mirror.Mirror(ctx, userID, profile.PictureURL)
		if err != nil {
			logx.Warn("avatar mirror failed, keeping upstream URL", "user_id", userID, "reason", err.Error())
		} else {
			profile.PictureURL = mirrored
		}
	}

	return profile
}
