// Package rest implements storage.Backend against a hosted PostgREST-style
// record service such as Supabase.
package rest

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"golang.org/x/oauth2"
)

// APIError is a non-2xx response from the record service
type APIError struct {
	StatusCode int    `json:"-"`
	Code       string `json:"code"`
	Message    string `json:"message"`
	Details    string `json:"details"`
	Hint       string `json:"hint"`
}

func (e *APIError) Error() string {
	if e.Code != "" {
		return fmt.Sprintf("rest: %d %s: %s", e.StatusCode, e.Code, e.Message)
	}
	return fmt.Sprintf("rest: %d: %s", e.StatusCode, e.Message)
}

// Client talks to <baseURL>/rest/v1/<collection>
type Client struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
}

// NewClient creates a client authenticating every request with apiKey.
// The key is sent both as the apikey header and as a bearer token.
func NewClient(ctx context.Context, baseURL, apiKey string) *Client {
	tokenSource := oauth2.StaticTokenSource(&oauth2.Token{AccessToken: apiKey, TokenType: "Bearer"})

	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		apiKey:     apiKey,
		httpClient: oauth2.NewClient(ctx, tokenSource),
	}
}

func (c *Client) collectionURL(collection string, query url.Values) string {
	u := c.baseURL + "/rest/v1/" + collection
	if len(query) > 0 {
		u += "?" + query.Encode()
	}
	return u
}

func idFilter(id int64) url.Values {
	return url.Values{"id": []string{"eq." + strconv.FormatInt(id, 10)}}
}

// do sends a request and decodes a JSON response body into out when out is non-nil
func (c *Client) do(ctx context.Context, method, rawURL string, body interface{}, out interface{}) error {
	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return err
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, rawURL, reader)
	if err != nil {
		return err
	}
	req.Header.Set("apikey", c.apiKey)
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if out != nil && method == http.MethodPost {
		req.Header.Set("Prefer", "return=representation")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return err
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return parseAPIError(resp.StatusCode, respBody)
	}

	if out == nil || len(bytes.TrimSpace(respBody)) == 0 {
		return nil
	}
	return json.Unmarshal(respBody, out)
}

func parseAPIError(status int, body []byte) *APIError {
	apiErr := &APIError{StatusCode: status}
	if err := json.Unmarshal(body, apiErr); err != nil || apiErr.Message == "" {
		apiErr.Message = strings.TrimSpace(string(body))
		if apiErr.Message == "" {
			apiErr.Message = http.StatusText(status)
		}
	}
	return apiErr
}
