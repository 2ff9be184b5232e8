package graph

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"insta-scheduler/pkg/config"

	"github.com/stretchr/testify/assert"
)

func newTestClient(serverURL string) *Client {
	cfg := &config.Config{
		FBAppID:        "app-id",
		FBAppSecret:    "app-secret",
		FBGraphVersion: "v21.0",
	}
	c := NewClient(cfg)
	c.baseURL = serverURL
	return c
}

func TestCreateMediaContainer_Success(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v21.0/17841/media", r.URL.Path)
		assert.Equal(t, http.MethodPost, r.Method)

		r.ParseForm()
		assert.Equal(t, "https://x/y.jpg", r.PostForm.Get("image_url"))
		assert.Equal(t, "hi", r.PostForm.Get("caption"))
		assert.Equal(t, "TOK", r.PostForm.Get("access_token"))

		w.Write([]byte(`{"id":"container123"}`))
	}))
	defer server.Close()

	client := newTestClient(server.URL)
	id, err := client.CreateMediaContainer(context.Background(), "17841", "TOK", "https://x/y.jpg", "hi")

	assert.NoError(t, err)
	assert.Equal(t, "container123", id)
}

func TestCreateMediaContainer_MissingID(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{}`))
	}))
	defer server.Close()

	client := newTestClient(server.URL)
	id, err := client.CreateMediaContainer(context.Background(), "17841", "TOK", "https://x/y.jpg", "hi")

	assert.Empty(t, id)
	assert.ErrorIs(t, err, ErrNoMediaID)
	assert.Equal(t, "No media ID returned from Instagram", err.Error())
}

func TestCreateMediaContainer_APIError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		w.Write([]byte(`{"error":{"message":"Invalid OAuth access token","type":"OAuthException","code":190}}`))
	}))
	defer server.Close()

	client := newTestClient(server.URL)
	_, err := client.CreateMediaContainer(context.Background(), "17841", "BAD", "https://x/y.jpg", "hi")

	assert.Error(t, err)
	// The API-level message is surfaced verbatim, not a generic failure string
	assert.Equal(t, "Invalid OAuth access token", err.Error())

	var apiErr *APIError
	assert.ErrorAs(t, err, &apiErr)
	assert.Equal(t, 190, apiErr.Code)
}

func TestPublishMedia_Success(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v21.0/17841/media_publish", r.URL.Path)

		r.ParseForm()
		assert.Equal(t, "container123", r.PostForm.Get("creation_id"))
		assert.Equal(t, "TOK", r.PostForm.Get("access_token"))

		w.Write([]byte(`{"id":"ig999"}`))
	}))
	defer server.Close()

	client := newTestClient(server.URL)
	id, err := client.PublishMedia(context.Background(), "17841", "TOK", "container123")

	assert.NoError(t, err)
	assert.Equal(t, "ig999", id)
}

func TestPublishMedia_APIError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		w.Write([]byte(`{"error":{"message":"Media ID is not available","type":"OAuthException","code":9007}}`))
	}))
	defer server.Close()

	client := newTestClient(server.URL)
	_, err := client.PublishMedia(context.Background(), "17841", "TOK", "container123")

	assert.Error(t, err)
	assert.Equal(t, "Media ID is not available", err.Error())
}

func TestPublishMedia_TransportError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	server.Close() // connection refused

	client := newTestClient(server.URL)
	_, err := client.PublishMedia(context.Background(), "17841", "TOK", "container123")

	assert.Error(t, err)
}

func TestExchangeCode(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v21.0/oauth/access_token", r.URL.Path)
		assert.Equal(t, "app-id", r.URL.Query().Get("client_id"))
		assert.Equal(t, "app-secret", r.URL.Query().Get("client_secret"))
		assert.Equal(t, "the-code", r.URL.Query().Get("code"))

		w.Write([]byte(`{"access_token":"short-token","token_type":"bearer","expires_in":5183944}`))
	}))
	defer server.Close()

	client := newTestClient(server.URL)
	token, err := client.ExchangeCode(context.Background(), "the-code", "http://localhost:8080/auth/facebook/callback")

	assert.NoError(t, err)
	assert.Equal(t, "short-token", token.AccessToken)
	assert.Equal(t, int64(5183944), token.ExpiresIn)
}

func TestExchangeLongLivedToken(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "fb_exchange_token", r.URL.Query().Get("grant_type"))
		assert.Equal(t, "short-token", r.URL.Query().Get("fb_exchange_token"))

		w.Write([]byte(`{"access_token":"long-token","token_type":"bearer","expires_in":5183944}`))
	}))
	defer server.Close()

	client := newTestClient(server.URL)
	token, err := client.ExchangeLongLivedToken(context.Background(), "short-token")

	assert.NoError(t, err)
	assert.Equal(t, "long-token", token.AccessToken)
}

func TestListPages_FiltersHandledByCaller(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v21.0/me/accounts", r.URL.Path)
		w.Write([]byte(`{"data":[
			{"id":"page1","name":"Page One","access_token":"PTOK1","instagram_business_account":{"id":"17841","username":"shop_one"}},
			{"id":"page2","name":"Page Two","access_token":"PTOK2"}
		]}`))
	}))
	defer server.Close()

	client := newTestClient(server.URL)
	pages, err := client.ListPages(context.Background(), "user-token")

	assert.NoError(t, err)
	assert.Len(t, pages, 2)
	assert.NotNil(t, pages[0].InstagramBusinessAccount)
	assert.Equal(t, "17841", pages[0].InstagramBusinessAccount.ID)
	assert.Nil(t, pages[1].InstagramBusinessAccount)
}

func TestGetProfile(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v21.0/me", r.URL.Path)
		w.Write([]byte(`{"id":"fb-user-1","name":"Jess"}`))
	}))
	defer server.Close()

	client := newTestClient(server.URL)
	profile, err := client.GetProfile(context.Background(), "user-token")

	assert.NoError(t, err)
	assert.Equal(t, "fb-user-1", profile.ID)
	assert.Equal(t, "Jess", profile.Name)
}
