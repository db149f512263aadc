package strava

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"strings"
	"time"

	"github.com/nir0k/igc2strava/internal/config"
	"golang.org/x/oauth2"
)

// ErrUploadRejected is returned when Strava answers an upload with a non-2xx status.
var ErrUploadRejected = errors.New("strava rejected upload")

const (
	DefaultBaseURL  = "https://www.strava.com/api/v3"
	DefaultTokenURL = "https://www.strava.com/oauth/token"
	DefaultAuthURL  = "https://www.strava.com/oauth/authorize"
)

// Upload is a single activity file to create on Strava.
type Upload struct {
	Name        string
	Description string
	GPX         []byte
}

// Response is the raw answer to an upload request.
type Response struct {
	StatusCode int
	Text       string
}

// Client talks to the Strava API.
type Client struct {
	baseURL    string
	tokenURL   string
	httpClient *http.Client
}

// NewClient creates a Strava client. Empty URLs fall back to the public endpoints.
func NewClient(baseURL, tokenURL string, timeout time.Duration) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	if tokenURL == "" {
		tokenURL = DefaultTokenURL
	}
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		tokenURL:   tokenURL,
		httpClient: &http.Client{Timeout: timeout},
	}
}

// AccessToken returns a usable access token, refreshing it through the OAuth
// token endpoint when the stored one is missing or expired. Refreshed values
// are written into cfg so the caller can persist them.
func (c *Client) AccessToken(ctx context.Context, cfg *config.Config) (string, error) {
	oauthCfg := &oauth2.Config{
		ClientID:     cfg.ClientID,
		ClientSecret: cfg.ClientSecret,
		Endpoint: oauth2.Endpoint{
			AuthURL:   DefaultAuthURL,
			TokenURL:  c.tokenURL,
			AuthStyle: oauth2.AuthStyleInParams,
		},
	}
	expiry := cfg.Expiry()
	if expiry.IsZero() && cfg.RefreshToken != "" {
		// oauth2 treats a zero expiry as never expiring.
		expiry = time.Unix(1, 0)
	}
	current := &oauth2.Token{
		AccessToken:  cfg.AccessToken,
		RefreshToken: cfg.RefreshToken,
		TokenType:    "Bearer",
		Expiry:       expiry,
	}

	ctx = context.WithValue(ctx, oauth2.HTTPClient, c.httpClient)
	tok, err := oauthCfg.TokenSource(ctx, current).Token()
	if err != nil {
		return "", fmt.Errorf("obtain access token: %w", err)
	}

	cfg.AccessToken = tok.AccessToken
	if tok.RefreshToken != "" {
		cfg.RefreshToken = tok.RefreshToken
	}
	if !tok.Expiry.IsZero() {
		cfg.ExpiresAt = tok.Expiry.Unix()
	}
	return tok.AccessToken, nil
}

// Upload posts a GPX file to the uploads endpoint. The response is returned
// verbatim; a non-2xx status is also reported as ErrUploadRejected.
func (c *Client) Upload(ctx context.Context, token string, up Upload) (*Response, error) {
	body, contentType, err := encodeUpload(up)
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/uploads", body)
	if err != nil {
		return nil, fmt.Errorf("create upload request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+token)
	req.Header.Set("Content-Type", contentType)
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("upload activity: %w", err)
	}
	defer resp.Body.Close()

	text, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read upload response: %w", err)
	}

	out := &Response{StatusCode: resp.StatusCode, Text: string(text)}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return out, fmt.Errorf("%w: status %d", ErrUploadRejected, resp.StatusCode)
	}
	return out, nil
}

func encodeUpload(up Upload) (*bytes.Buffer, string, error) {
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)

	fields := [][2]string{
		{"data_type", "gpx"},
		{"name", up.Name},
		{"description", up.Description},
	}
	for _, f := range fields {
		if err := w.WriteField(f[0], f[1]); err != nil {
			return nil, "", fmt.Errorf("write field %s: %w", f[0], err)
		}
	}

	part, err := w.CreateFormFile("file", "activity.gpx")
	if err != nil {
		return nil, "", fmt.Errorf("create file part: %w", err)
	}
	if _, err := part.Write(up.GPX); err != nil {
		return nil, "", fmt.Errorf("write file part: %w", err)
	}
	if err := w.Close(); err != nil {
		return nil, "", fmt.Errorf("close multipart body: %w", err)
	}
	return &buf, w.FormDataContentType(), nil
}
