package genie

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"
)

// authProvider injects credentials into outgoing requests.
type authProvider interface {
	authorize(ctx context.Context, req *http.Request) error
}

// tokenAuth uses a personal access token as a bearer token.
type tokenAuth struct {
	token string
}

func (a *tokenAuth) authorize(_ context.Context, req *http.Request) error {
	req.Header.Set("Authorization", "Bearer "+a.token)
	return nil
}

// oauthAuth implements the OAuth M2M client-credentials flow against the
// workspace token endpoint, caching the access token until shortly
// before it expires.
type oauthAuth struct {
	tokenURL     string
	clientID     string
	clientSecret string
	httpClient   *http.Client

	mu      sync.Mutex
	token   string
	expires time.Time
}

func newOAuthAuth(host, clientID, clientSecret string, httpClient *http.Client) *oauthAuth {
	return &oauthAuth{
		tokenURL:     strings.TrimRight(host, "/") + "/oidc/v1/token",
		clientID:     clientID,
		clientSecret: clientSecret,
		httpClient:   httpClient,
	}
}

func (a *oauthAuth) authorize(ctx context.Context, req *http.Request) error {
	token, err := a.accessToken(ctx)
	if err != nil {
		return err
	}
	req.Header.Set("Authorization", "Bearer "+token)
	return nil
}

func (a *oauthAuth) accessToken(ctx context.Context) (string, error) {
	a.mu.Lock()
	defer a.mu.Unlock()

	// Refresh a minute early so in-flight requests don't race expiry.
	if a.token != "" && time.Now().Before(a.expires.Add(-time.Minute)) {
		return a.token, nil
	}

	form := url.Values{}
	form.Set("grant_type", "client_credentials")
	form.Set("scope", "all-apis")

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, a.tokenURL, strings.NewReader(form.Encode()))
	if err != nil {
		return "", fmt.Errorf("building token request: %w", err)
	}
	req.SetBasicAuth(a.clientID, a.clientSecret)
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := a.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("fetching OAuth token: %w", err)
	}
	defer resp.Body.Close()

	body, _ := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if resp.StatusCode != http.StatusOK {
		return "", translateError(resp.StatusCode, string(body))
	}

	var payload struct {
		AccessToken string `json:"access_token"`
		ExpiresIn   int    `json:"expires_in"`
	}
	if err := json.Unmarshal(body, &payload); err != nil {
		return "", fmt.Errorf("parsing OAuth token response: %w", err)
	}
	if payload.AccessToken == "" {
		return "", &AuthenticationError{Message: "OAuth token endpoint returned no access token. Check DATABRICKS_CLIENT_ID/DATABRICKS_CLIENT_SECRET."}
	}

	a.token = payload.AccessToken
	a.expires = time.Now().Add(time.Duration(payload.ExpiresIn) * time.Second)
	return a.token, nil
}
