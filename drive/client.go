package drive

import (
	"context"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
	"google.golang.org/api/drive/v3"
	"google.golang.org/api/option"
)

// OAuthConfig returns the OAuth client configuration for Drive access.
// The app only touches its own files and the hidden appDataFolder.
func OAuthConfig(clientID, clientSecret string) *oauth2.Config {
	return &oauth2.Config{
		ClientID:     clientID,
		ClientSecret: clientSecret,
		Scopes:       []string{drive.DriveAppdataScope, drive.DriveFileScope},
		Endpoint:     google.Endpoint,
	}
}

// Client wraps the Google Drive API client and handles authentication
type Client struct {
	service     *drive.Service
	tokenSource oauth2.TokenSource
}

// NewClient creates a new Drive client with the given OAuth token
func NewClient(ctx context.Context, oauthConfig *oauth2.Config, token *oauth2.Token) (*Client, error) {
	// Create a token source that will automatically refresh the token
	tokenSource := oauthConfig.TokenSource(ctx, token)
	httpClient := oauth2.NewClient(ctx, tokenSource)

	srv, err := drive.NewService(ctx, option.WithHTTPClient(httpClient))
	if err != nil {
		return nil, err
	}

	return &Client{
		service:     srv,
		tokenSource: tokenSource,
	}, nil
}

// NewClientWithOptions creates a client from explicit API options, with no token handling
func NewClientWithOptions(ctx context.Context, opts ...option.ClientOption) (*Client, error) {
	srv, err := drive.NewService(ctx, opts...)
	if err != nil {
		return nil, err
	}
	return &Client{service: srv}, nil
}

// GetCurrentToken returns the current (possibly refreshed) OAuth token
func (c *Client) GetCurrentToken() (*oauth2.Token, error) {
	if c.tokenSource == nil {
		return nil, nil
	}
	return c.tokenSource.Token()
}

// Service returns the underlying Google Drive service for direct API access
func (c *Client) Service() *drive.Service {
	return c.service
}
