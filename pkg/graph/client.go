// Package graph is a thin client for the Facebook Graph API, covering the
// page/Instagram endpoints this service needs: account listing, profile and
// media reads and the comment/reply edges. It carries no business logic;
// access tokens come in as arguments on every call and go out as query
// parameters, which is the scheme the Graph API uses.
package graph

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"time"
)

// Version pins the Graph API version every request uses.
const Version = "v23.0"

const defaultBaseURL = "https://graph.facebook.com"

const commentFields = "id,text,username,timestamp"

// HTTPClient lets tests swap the transport.
type HTTPClient interface {
	Do(req *http.Request) (*http.Response, error)
}

// Option configures a Client.
type Option func(*Client)

// WithBaseURL points the client at a different host (httptest servers).
func WithBaseURL(u string) Option {
	return func(c *Client) { c.baseURL = u }
}

// WithHTTPClient sets a custom HTTP client.
func WithHTTPClient(httpClient HTTPClient) Option {
	return func(c *Client) { c.httpClient = httpClient }
}

// Client talks to the Graph API.
type Client struct {
	baseURL    string
	httpClient HTTPClient
}

// NewClient creates a Graph API client.
func NewClient(opts ...Option) *Client {
	c := &Client{
		baseURL:    defaultBaseURL,
		httpClient: &http.Client{Timeout: 10 * time.Second},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// ListAccounts returns the Facebook Pages the user token can manage,
// in the order the Graph API returns them.
func (c *Client) ListAccounts(ctx context.Context, userToken string) ([]Account, error) {
	params := url.Values{
		"access_token": {userToken},
		"fields":       {"id,name,access_token"},
	}

	var result struct {
		Data   []Account `json:"data"`
		Paging *Paging   `json:"paging"`
	}
	if err := c.get(ctx, "me/accounts", params, &result); err != nil {
		return nil, err
	}
	return result.Data, nil
}

// GetLinkedAccount resolves the Instagram Business account id connected to
// a Facebook Page. Returns "" when the page has no linked account.
func (c *Client) GetLinkedAccount(ctx context.Context, pageID, pageToken string) (string, error) {
	params := url.Values{
		"access_token": {pageToken},
		"fields":       {"instagram_business_account"},
	}

	var result struct {
		Instagram *struct {
			ID string `json:"id"`
		} `json:"instagram_business_account"`
	}
	if err := c.get(ctx, pageID, params, &result); err != nil {
		return "", err
	}
	if result.Instagram == nil {
		return "", nil
	}
	return result.Instagram.ID, nil
}

// GetProfile reads an Instagram Business account profile.
func (c *Client) GetProfile(ctx context.Context, accountID, token string) (*Profile, error) {
	params := url.Values{
		"access_token": {token},
		"fields":       {"username,profile_picture_url,followers_count,media_count"},
	}

	var profile Profile
	if err := c.get(ctx, accountID, params, &profile); err != nil {
		return nil, err
	}
	if profile.ID == "" {
		profile.ID = accountID
	}
	return &profile, nil
}

// ListMedia reads the account's media edge, newest first, including the
// inline first-level comment preview. after requests the page following
// that cursor; the returned cursor is empty on the last page.
func (c *Client) ListMedia(ctx context.Context, accountID, token, after string) ([]Media, string, error) {
	params := url.Values{
		"access_token": {token},
		"fields":       {"id,caption,media_url,media_type,timestamp,likes_count,comments_count,comments{" + commentFields + "}"},
	}
	if after != "" {
		params.Set("after", after)
	}

	var result struct {
		Data   []Media `json:"data"`
		Paging *Paging `json:"paging"`
	}
	if err := c.get(ctx, accountID+"/media", params, &result); err != nil {
		return nil, "", err
	}
	return result.Data, result.Paging.AfterCursor(), nil
}

// ListComments reads a media object's top-level comment edge.
func (c *Client) ListComments(ctx context.Context, mediaID, token, after string) ([]Comment, string, error) {
	return c.listCommentEdge(ctx, mediaID+"/comments", token, after)
}

// ListReplies reads the reply edge of a top-level comment.
func (c *Client) ListReplies(ctx context.Context, commentID, token, after string) ([]Comment, string, error) {
	return c.listCommentEdge(ctx, commentID+"/replies", token, after)
}

func (c *Client) listCommentEdge(ctx context.Context, edge, token, after string) ([]Comment, string, error) {
	params := url.Values{
		"access_token": {token},
		"fields":       {commentFields},
	}
	if after != "" {
		params.Set("after", after)
	}

	var result CommentEdge
	if err := c.get(ctx, edge, params, &result); err != nil {
		return nil, "", err
	}
	return result.Data, result.Paging.AfterCursor(), nil
}

// CreateComment posts a new top-level comment on a media object and
// returns the new comment's id.
func (c *Client) CreateComment(ctx context.Context, mediaID, message, token string) (string, error) {
	return c.createOnEdge(ctx, mediaID+"/comments", message, token)
}

// CreateReply posts a reply under an existing top-level comment. The Graph
// API has no third nesting level; replying "to a reply" lands here too, as
// a sibling under the same parent.
func (c *Client) CreateReply(ctx context.Context, commentID, message, token string) (string, error) {
	return c.createOnEdge(ctx, commentID+"/replies", message, token)
}

func (c *Client) createOnEdge(ctx context.Context, edge, message, token string) (string, error) {
	params := url.Values{
		"access_token": {token},
		"message":      {message},
	}

	var result struct {
		ID string `json:"id"`
	}
	if err := c.post(ctx, edge, params, &result); err != nil {
		return "", err
	}
	return result.ID, nil
}

func (c *Client) get(ctx context.Context, path string, params url.Values, result interface{}) error {
	return c.do(ctx, http.MethodGet, path, params, result)
}

func (c *Client) post(ctx context.Context, path string, params url.Values, result interface{}) error {
	return c.do(ctx, http.MethodPost, path, params, result)
}

func (c *Client) do(ctx context.Context, method, path string, params url.Values, result interface{}) error {
	reqURL := fmt.Sprintf("%s/%s/%s?%s", c.baseURL, Version, path, params.Encode())

	req, err := http.NewRequestWithContext(ctx, method, reqURL, nil)
	if err != nil {
		return fmt.Errorf("graph: creating request: %w", err)
	}

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("graph: %s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("graph: reading response body: %w", err)
	}
	slog.Debug("graph request", "method", method, "path", path, "status", resp.StatusCode, "took", time.Since(start))

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return newAPIError(resp.StatusCode, body)
	}

	if result == nil {
		return nil
	}
	if err := json.Unmarshal(body, result); err != nil {
		return fmt.Errorf("graph: parsing response: %w", err)
	}
	return nil
}
