package graph

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"insta-scheduler/pkg/config"
)

const defaultBaseURL = "https://graph.facebook.com"

// ErrNoMediaID is returned when a publish step responds without an id field.
var ErrNoMediaID = errors.New("No media ID returned from Instagram")

// APIError is the Graph API error envelope. Its message is what ends up in a
// failed post's error_message column.
type APIError struct {
	Message string `json:"message"`
	Type    string `json:"type"`
	Code    int    `json:"code"`
}

func (e *APIError) Error() string {
	return e.Message
}

type Client struct {
	baseURL    string
	version    string
	appID      string
	appSecret  string
	httpClient *http.Client
}

func NewClient(cfg *config.Config) *Client {
	return &Client{
		baseURL:   defaultBaseURL,
		version:   cfg.FBGraphVersion,
		appID:     cfg.FBAppID,
		appSecret: cfg.FBAppSecret,
		httpClient: &http.Client{
			Timeout: 15 * time.Second,
		},
	}
}

// CreateMediaContainer performs step one of the publish protocol: it registers
// the image URL and caption with Instagram and returns the container id.
func (c *Client) CreateMediaContainer(ctx context.Context, igUserID, accessToken, imageURL, caption string) (string, error) {
	params := url.Values{}
	params.Set("image_url", imageURL)
	params.Set("caption", caption)
	params.Set("access_token", accessToken)

	var res struct {
		ID string `json:"id"`
	}
	if err := c.postForm(ctx, igUserID+"/media", params, &res); err != nil {
		return "", err
	}
	if res.ID == "" {
		return "", ErrNoMediaID
	}
	return res.ID, nil
}

// PublishMedia performs step two: it publishes a previously created container
// and returns the id of the published media.
func (c *Client) PublishMedia(ctx context.Context, igUserID, accessToken, creationID string) (string, error) {
	params := url.Values{}
	params.Set("creation_id", creationID)
	params.Set("access_token", accessToken)

	var res struct {
		ID string `json:"id"`
	}
	if err := c.postForm(ctx, igUserID+"/media_publish", params, &res); err != nil {
		return "", err
	}
	if res.ID == "" {
		return "", ErrNoMediaID
	}
	return res.ID, nil
}

type Token struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
	ExpiresIn   int64  `json:"expires_in"`
}

// ExchangeCode trades an OAuth authorization code for a short-lived user token.
func (c *Client) ExchangeCode(ctx context.Context, code, redirectURI string) (*Token, error) {
	params := url.Values{}
	params.Set("client_id", c.appID)
	params.Set("client_secret", c.appSecret)
	params.Set("redirect_uri", redirectURI)
	params.Set("code", code)

	var token Token
	if err := c.get(ctx, "oauth/access_token", params, &token); err != nil {
		return nil, err
	}
	if token.AccessToken == "" {
		return nil, errors.New("no access token in response")
	}
	return &token, nil
}

// ExchangeLongLivedToken trades a short-lived user token for a long-lived one.
func (c *Client) ExchangeLongLivedToken(ctx context.Context, shortToken string) (*Token, error) {
	params := url.Values{}
	params.Set("grant_type", "fb_exchange_token")
	params.Set("client_id", c.appID)
	params.Set("client_secret", c.appSecret)
	params.Set("fb_exchange_token", shortToken)

	var token Token
	if err := c.get(ctx, "oauth/access_token", params, &token); err != nil {
		return nil, err
	}
	if token.AccessToken == "" {
		return nil, errors.New("no access token in response")
	}
	return &token, nil
}

type Profile struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

func (c *Client) GetProfile(ctx context.Context, accessToken string) (*Profile, error) {
	params := url.Values{}
	params.Set("fields", "id,name")
	params.Set("access_token", accessToken)

	var profile Profile
	if err := c.get(ctx, "me", params, &profile); err != nil {
		return nil, err
	}
	return &profile, nil
}

type InstagramAccount struct {
	ID       string `json:"id"`
	Username string `json:"username"`
}

type Page struct {
	ID                       string            `json:"id"`
	Name                     string            `json:"name"`
	AccessToken              string            `json:"access_token"`
	InstagramBusinessAccount *InstagramAccount `json:"instagram_business_account"`
}

// ListPages returns the user's Facebook Pages, including any linked Instagram
// business account and the page access token used for publishing.
func (c *Client) ListPages(ctx context.Context, userToken string) ([]Page, error) {
	params := url.Values{}
	params.Set("fields", "id,name,instagram_business_account{id,username},access_token")
	params.Set("access_token", userToken)

	var res struct {
		Data []Page `json:"data"`
	}
	if err := c.get(ctx, "me/accounts", params, &res); err != nil {
		return nil, err
	}
	return res.Data, nil
}

func (c *Client) endpoint(path string) string {
	return fmt.Sprintf("%s/%s/%s", c.baseURL, c.version, path)
}

func (c *Client) postForm(ctx context.Context, path string, params url.Values, out interface{}) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint(path), strings.NewReader(params.Encode()))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	return c.do(req, out)
}

func (c *Client) get(ctx context.Context, path string, params url.Values, out interface{}) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.endpoint(path)+"?"+params.Encode(), nil)
	if err != nil {
		return err
	}
	return c.do(req, out)
}

func (c *Client) do(req *http.Request, out interface{}) error {
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read graph api response: %w", err)
	}

	// The API-level error message is preferred over a generic HTTP status,
	// since it is what gets recorded against a failed post.
	var envelope struct {
		Error *APIError `json:"error"`
	}
	if err := json.Unmarshal(body, &envelope); err == nil && envelope.Error != nil {
		return envelope.Error
	}

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		return fmt.Errorf("graph api returned status %d", resp.StatusCode)
	}

	if out != nil {
		if err := json.Unmarshal(body, out); err != nil {
			return fmt.Errorf("failed to decode graph api response: %w", err)
		}
	}
	return nil
}
