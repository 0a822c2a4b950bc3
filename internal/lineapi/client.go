package lineapi

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"time"
)

const (
	// DefaultBaseURL is the production LINE Messaging API endpoint.
	DefaultBaseURL = "https://api.line.me"

	// ProfileTimeout bounds a single profile lookup. Profile enrichment is
	// best-effort and must never stall webhook ingestion for long.
	ProfileTimeout = 7 * time.Second

	// ReplyTimeout bounds a single reply call.
	ReplyTimeout = 10 * time.Second
)

// ErrNoAccessToken is the Unavailable reason when LINE_CHANNEL_ACCESS_TOKEN is not set.
var ErrNoAccessToken = errors.New("lineapi: no channel access token configured")

// Profile is the display profile of a LINE user as returned by the profile endpoint.
type Profile struct {
	DisplayName   string `json:"displayName"`
	PictureURL    string `json:"pictureUrl"`
	StatusMessage string `json:"statusMessage"`
}

// ProfileResult is the outcome of a profile lookup: either a found profile or an
// unavailability reason. Callers that only care about "profile or nothing" check
// Found(); the reason stays available for logging and tests.
type ProfileResult struct {
	Profile Profile

	// Err is nil when the profile was found. Any non-nil value (missing token,
	// network error, timeout, non-200 status) means the lookup degraded to
	// "no profile data".
	Err error
}

// Found reports whether the lookup produced a profile.
func (r ProfileResult) Found() bool {
	return r.Err == nil
}

// Client calls the LINE Messaging API with a channel access token.
// The zero BaseURL and HTTPClient default to production values in NewClient.
type Client struct {
	Token      string
	BaseURL    string
	HTTPClient *http.Client
}

// NewClient returns a Client for the production API. An empty token is allowed;
// every profile lookup then reports ErrNoAccessToken and every reply fails.
func NewClient(channelAccessToken string) *Client {
	return &Client{
		Token:      channelAccessToken,
		BaseURL:    DefaultBaseURL,
		HTTPClient: &http.Client{},
	}
}

// FetchProfile resolves userID into a display profile.
// It never returns an error to the caller: all failure modes collapse into an
// Unavailable result so that ingestion is never blocked by the upstream API.
func (c *Client) FetchProfile(ctx context.Context, userID string) ProfileResult {
	if c.Token == "" {
		return ProfileResult{Err: ErrNoAccessToken}
	}

	ctx, cancel := context.WithTimeout(ctx, ProfileTimeout)
	defer cancel()

	endpoint := c.BaseURL + "/v2/bot/profile/" + url.PathEscape(userID)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return ProfileResult{Err: fmt.Errorf("lineapi: build profile request: %w", err)}
	}
	req.Header.Set("Authorization", "Bearer "+c.Token)

	res, err := c.HTTPClient.Do(req)
	if err != nil {
		return ProfileResult{Err: fmt.Errorf("lineapi: profile request failed: %w", err)}
	}
	defer res.Body.Close()

	if res.StatusCode != http.StatusOK {
		return ProfileResult{Err: fmt.Errorf("lineapi: profile API returned status %d", res.StatusCode)}
	}

	var profile Profile
	if err := json.NewDecoder(res.Body).Decode(&profile); err != nil {
		return ProfileResult{Err: fmt.Errorf("lineapi: decode profile response: %w", err)}
	}

	return ProfileResult{Profile: profile}
}

// TextMessage is a plain text reply message.
type TextMessage struct {
	Type string `json:"type"`
	Text string `json:"text"`
}

// NewTextMessage builds a text message payload.
func NewTextMessage(text string) TextMessage {
	return TextMessage{Type: "text", Text: text}
}

// Reply sends messages in response to the event that produced replyToken.
// Replies are best-effort acknowledgements; callers log the error and move on.
func (c *Client) Reply(ctx context.Context, replyToken string, messages []TextMessage) error {
	if c.Token == "" {
		return ErrNoAccessToken
	}

	ctx, cancel := context.WithTimeout(ctx, ReplyTimeout)
	defer cancel()

	payload := struct {
		ReplyToken string        `json:"replyToken"`
		Messages   []TextMessage `json:"messages"`
	}{
		ReplyToken: replyToken,
		Messages:   messages,
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("lineapi: encode reply payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.BaseURL+"/v2/bot/message/reply", bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("lineapi: build reply request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.Token)
	req.Header.Set("Content-Type", "application/json")

	res, err := c.HTTPClient.Do(req)
	if err != nil {
		return fmt.Errorf("lineapi: reply request failed: %w", err)
	}
	defer res.Body.Close()

	if res.StatusCode != http.StatusOK {
		return fmt.Errorf("lineapi: reply API returned status %d", res.StatusCode)
	}

	return nil
}
