package server_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/SwSsinha/NEXUS/internal/config"
	"github.com/SwSsinha/NEXUS/internal/server"
)

// TestServer_FullFlow drives the assembled server through one complete
// user journey: signup, signin, save a link (with real metadata scraping
// against a local page), list, share, read the public view anonymously,
// delete, and watch the shared view follow.
func TestServer_FullFlow(t *testing.T) {
	// A page for the scraper to fetch metadata from.
	page := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html")
		fmt.Fprint(w, `<html><head>
			<title>A Scraped Title</title>
			<meta name="description" content="a scraped description">
		</head><body></body></html>`)
	}))
	defer page.Close()

	cfg := &config.Config{
		Port:           0,
		DatabasePath:   ":memory:",
		JWTSecret:      "e2e-test-secret-1234567890",
		LogLevel:       "error",
		TokenTTL:       time.Hour,
		ScrapeTimeout:  2 * time.Second,
		AllowedOrigins: []string{"*"},
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelError}))

	srv, err := server.New(cfg, logger)
	require.NoError(t, err)

	api := httptest.NewServer(srv.Router())
	defer api.Close()

	do := func(method, path, token string, body interface{}) (*http.Response, map[string]interface{}) {
		t.Helper()
		var reader io.Reader
		if body != nil {
			b, err := json.Marshal(body)
			require.NoError(t, err)
			reader = bytes.NewReader(b)
		}
		req, err := http.NewRequest(method, api.URL+path, reader)
		require.NoError(t, err)
		req.Header.Set("Content-Type", "application/json")
		if token != "" {
			req.Header.Set("Authorization", "Bearer "+token)
		}
		res, err := http.DefaultClient.Do(req)
		require.NoError(t, err)
		defer res.Body.Close()

		var decoded map[string]interface{}
		raw, err := io.ReadAll(res.Body)
		require.NoError(t, err)
		if len(raw) > 0 {
			require.NoError(t, json.Unmarshal(raw, &decoded), "body: %s", raw)
		}
		return res, decoded
	}

	// signup
	res, _ := do(http.MethodPost, "/api/v1/signup", "", map[string]string{
		"email": "a@x.com", "password": "secret1", "firstName": "A", "lastName": "A",
	})
	require.Equal(t, http.StatusCreated, res.StatusCode)

	// signin
	res, body := do(http.MethodPost, "/api/v1/signin", "", map[string]string{
		"email": "a@x.com", "password": "secret1",
	})
	require.Equal(t, http.StatusOK, res.StatusCode)
	token, _ := body["token"].(string)
	require.NotEmpty(t, token)

	// save a link; the scraper fills in metadata from the page, and the
	// blank title falls back to the scraped one
	res, body = do(http.MethodPost, "/api/v1/content", token, map[string]interface{}{
		"link": page.URL, "type": "article", "tags": []string{"e2e"},
	})
	require.Equal(t, http.StatusCreated, res.StatusCode)
	saved := body["content"].(map[string]interface{})
	assert.Equal(t, "A Scraped Title", saved["title"])
	assert.Equal(t, "a scraped description", saved["scrapedDescription"])
	contentID := saved["id"].(string)

	// list
	res, body = do(http.MethodGet, "/api/v1/content", token, nil)
	require.Equal(t, http.StatusOK, res.StatusCode)
	require.Len(t, body["content"], 1)

	// enable sharing
	res, body = do(http.MethodPost, "/api/v1/brain/share", token, map[string]bool{"share": true})
	require.Equal(t, http.StatusOK, res.StatusCode)
	hash, _ := body["hash"].(string)
	require.NotEmpty(t, hash)

	// the public view needs no token
	res, body = do(http.MethodGet, "/api/v1/brain/"+hash, "", nil)
	require.Equal(t, http.StatusOK, res.StatusCode)
	assert.Equal(t, "A A", body["username"])
	require.Len(t, body["content"], 1)

	// delete the item; the shared view follows immediately
	res, _ = do(http.MethodDelete, "/api/v1/content", token, map[string]string{"contentId": contentID})
	require.Equal(t, http.StatusOK, res.StatusCode)

	res, body = do(http.MethodGet, "/api/v1/brain/"+hash, "", nil)
	require.Equal(t, http.StatusOK, res.StatusCode)
	require.Len(t, body["content"], 0)

	// healthz
	res, _ = do(http.MethodGet, "/healthz", "", nil)
	assert.Equal(t, http.StatusOK, res.StatusCode)
}
