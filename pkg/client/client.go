package client

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/anonto42/socialite/backend/internal/models"
	"github.com/anonto42/socialite/backend/internal/services"
)

// Client talks to the socialite HTTP API on behalf of one user.
type Client struct {
	baseURL    string
	token      string
	httpClient *http.Client
}

// New creates a client for baseURL. token may be empty for anonymous calls.
func New(baseURL, token string) *Client {
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		token:      token,
		httpClient: &http.Client{},
	}
}

// APIError is a non-2xx answer from the API.
type APIError struct {
	Status  int
	Message string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("api returned %d: %s", e.Status, e.Message)
}

type envelope struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data"`
	Message string          `json:"message"`
}

// SearchUsers returns the users matching query.
func (c *Client) SearchUsers(ctx context.Context, query string) ([]models.UserCompact, error) {
	var out struct {
		Users []models.UserCompact `json:"users"`
	}
	err := c.do(ctx, http.MethodGet, "/api/v1/users/search?q="+url.QueryEscape(query), &out)
	return out.Users, err
}

// Feed returns the home feed, or the profile feed of username when set.
func (c *Client) Feed(ctx context.Context, username string) ([]services.FeedItem, error) {
	path := "/api/v1/feed"
	if username != "" {
		path = "/api/v1/users/" + url.PathEscape(username) + "/feed"
	}
	var out struct {
		Items []services.FeedItem `json:"items"`
	}
	err := c.do(ctx, http.MethodGet, path, &out)
	return out.Items, err
}

// Stories returns the stories visible to the caller.
func (c *Client) Stories(ctx context.Context) ([]services.StoryView, error) {
	var out struct {
		Stories []services.StoryView `json:"stories"`
	}
	err := c.do(ctx, http.MethodGet, "/api/v1/stories", &out)
	return out.Stories, err
}

// ToggleStoryLike toggles the caller's like and returns the new count.
func (c *Client) ToggleStoryLike(ctx context.Context, storyID uint) (int64, error) {
	var out struct {
		LikesCount int64 `json:"likes_count"`
	}
	err := c.do(ctx, http.MethodPost, fmt.Sprintf("/api/v1/stories/%d/like", storyID), &out)
	return out.LikesCount, err
}

// SwitchPostLike toggles the caller's like and reports whether it is now liked.
func (c *Client) SwitchPostLike(ctx context.Context, postID uint) (bool, error) {
	var out struct {
		Liked bool `json:"liked"`
	}
	err := c.do(ctx, http.MethodPost, fmt.Sprintf("/api/v1/posts/%d/like", postID), &out)
	return out.Liked, err
}

// SwitchFollow advances the follow state toward userID.
func (c *Client) SwitchFollow(ctx context.Context, userID string) (services.FollowState, error) {
	var out struct {
		State services.FollowState `json:"state"`
	}
	err := c.do(ctx, http.MethodPost, "/api/v1/users/"+url.PathEscape(userID)+"/follow", &out)
	return out.State, err
}

func (c *Client) do(ctx context.Context, method, path string, out interface{}) error {
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, nil)
	if err != nil {
		return err
	}
	req.Header.Set("Accept", "application/json")
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("failed to call %s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response: %w", err)
	}

	var env envelope
	if len(body) > 0 {
		if err := json.Unmarshal(body, &env); err != nil {
			return fmt.Errorf("failed to decode response: %w", err)
		}
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return &APIError{Status: resp.StatusCode, Message: env.Message}
	}
	if out == nil || len(env.Data) == 0 || string(env.Data) == "null" {
		return nil
	}
	return json.Unmarshal(env.Data, out)
}
