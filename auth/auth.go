package auth

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"path/filepath"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
	drive "google.golang.org/api/drive/v3"
	"google.golang.org/api/option"
	sheets "google.golang.org/api/sheets/v4"
)

// Scopes are the OAuth scopes the drive wrapper needs: full Drive
// access for file management and spreadsheet access for the worksheet
// reordering done during exports.
var Scopes = []string{
	drive.DriveScope,
	sheets.SpreadsheetsScope,
}

// outOfBandRedirect is the manual copy/paste OAuth flow.
const outOfBandRedirect = "urn:ietf:wg:oauth:2.0:oob"

// Config holds the OAuth2 application credentials and the location of
// the cached token.
type Config struct {
	ClientID     string
	ClientSecret string

	// TokenFile is the path of the cached token. Defaults to
	// sheetdrive/google.token under the user cache directory.
	TokenFile string

	// RedirectURL defaults to the out-of-band flow.
	RedirectURL string
}

func (c Config) oauthConfig() *oauth2.Config {
	redirect := c.RedirectURL
	if redirect == "" {
		redirect = outOfBandRedirect
	}
	return &oauth2.Config{
		ClientID:     c.ClientID,
		ClientSecret: c.ClientSecret,
		Endpoint:     google.Endpoint,
		RedirectURL:  redirect,
		Scopes:       Scopes,
	}
}

func (c Config) tokenFile() string {
	if c.TokenFile != "" {
		return c.TokenFile
	}
	cacheDir, err := os.UserCacheDir()
	if err != nil {
		cacheDir = "."
	}
	return filepath.Join(cacheDir, "sheetdrive", "google.token")
}

// HasToken checks whether a cached token exists. It does not validate
// the token; an expired refresh token is only detected on first use.
func (c Config) HasToken() bool {
	_, err := os.Stat(c.tokenFile())
	return err == nil
}

// AuthCodeURL returns the URL the user must visit to authorize access.
func (c Config) AuthCodeURL() string {
	return c.oauthConfig().AuthCodeURL("state", oauth2.AccessTypeOffline)
}

// SaveToken exchanges an authorization code for tokens and caches them.
func (c Config) SaveToken(ctx context.Context, authCode string) error {
	token, err := c.oauthConfig().Exchange(ctx, authCode)
	if err != nil {
		return fmt.Errorf("failed to exchange auth code: %w", err)
	}
	return c.writeToken(token)
}

func (c Config) writeToken(token *oauth2.Token) error {
	file := c.tokenFile()
	if err := os.MkdirAll(filepath.Dir(file), 0700); err != nil {
		return fmt.Errorf("failed to create token directory: %w", err)
	}

	data, err := json.Marshal(token)
	if err != nil {
		return fmt.Errorf("failed to encode token: %w", err)
	}
	if err := os.WriteFile(file, data, 0600); err != nil {
		return fmt.Errorf("failed to write token file: %w", err)
	}
	return nil
}

func (c Config) readToken() (*oauth2.Token, error) {
	data, err := os.ReadFile(c.tokenFile())
	if err != nil {
		return nil, fmt.Errorf("no cached Google OAuth token found: %w", err)
	}

	var token oauth2.Token
	if err := json.Unmarshal(data, &token); err != nil {
		return nil, fmt.Errorf("invalid token file format: %w", err)
	}
	return &token, nil
}

// TokenSource returns an auto-refreshing token source backed by the
// cached token.
func (c Config) TokenSource(ctx context.Context) (oauth2.TokenSource, error) {
	token, err := c.readToken()
	if err != nil {
		return nil, err
	}
	return c.oauthConfig().TokenSource(ctx, token), nil
}

// HTTPClient returns an HTTP client that authenticates requests with
// the cached token.
func (c Config) HTTPClient(ctx context.Context) (*http.Client, error) {
	ts, err := c.TokenSource(ctx)
	if err != nil {
		return nil, err
	}
	return oauth2.NewClient(ctx, ts), nil
}

// NewServices builds the Drive and Sheets services from one
// authenticated HTTP client.
func NewServices(ctx context.Context, cfg Config) (*drive.Service, *sheets.Service, error) {
	client, err := cfg.HTTPClient(ctx)
	if err != nil {
		return nil, nil, fmt.Errorf("no valid Google OAuth token found, authorize access first: %w", err)
	}

	driveSvc, err := drive.NewService(ctx, option.WithHTTPClient(client))
	if err != nil {
		return nil, nil, fmt.Errorf("failed to create Drive service: %w", err)
	}
	sheetsSvc, err := sheets.NewService(ctx, option.WithHTTPClient(client))
	if err != nil {
		return nil, nil, fmt.Errorf("failed to create Sheets service: %w", err)
	}

	return driveSvc, sheetsSvc, nil
}
