// Package google verifies Google sign-in ID tokens through the tokeninfo endpoint.
package google

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	identityapp "github.com/swiftsupply/backend/internal/application/identity"
	"github.com/swiftsupply/backend/internal/infrastructure/config"
)

// DefaultTokenInfoURL is Google's public tokeninfo endpoint
const DefaultTokenInfoURL = "https://oauth2.googleapis.com/tokeninfo"

// maxResponseSize bounds the tokeninfo response body
const maxResponseSize = 64 * 1024

// Tolerated clock difference when checking expiry
const clockSkew = 5 * time.Minute

var (
	ErrNotConfigured    = errors.New("google: client id not configured")
	ErrInvalidToken     = errors.New("google: invalid id token")
	ErrAudienceMismatch = errors.New("google: token audience mismatch")
	ErrEmailUnverified  = errors.New("google: email not verified by google")
)

var validIssuers = map[string]bool{
	"accounts.google.com":         true,
	"https://accounts.google.com": true,
}

// tokenInfo is the tokeninfo response. Google encodes booleans and numbers as strings.
type tokenInfo struct {
	Issuer        string `json:"iss"`
	Audience      string `json:"aud"`
	Subject       string `json:"sub"`
	Email         string `json:"email"`
	EmailVerified string `json:"email_verified"`
	Name          string `json:"name"`
	Expiry        string `json:"exp"`
}

// Verifier validates ID tokens for one OAuth client
type Verifier struct {
	clientID   string
	endpoint   string
	httpClient *http.Client
	now        func() time.Time
}

// NewVerifier creates a verifier from config
func NewVerifier(cfg config.GoogleConfig) *Verifier {
	endpoint := cfg.TokenInfoURL
	if endpoint == "" {
		endpoint = DefaultTokenInfoURL
	}
	return &Verifier{
		clientID:   cfg.ClientID,
		endpoint:   endpoint,
		httpClient: &http.Client{Timeout: 10 * time.Second},
		now:        time.Now,
	}
}

// Verify checks the token with Google and returns the identity it carries
func (v *Verifier) Verify(ctx context.Context, idToken string) (*identityapp.GoogleIdentity, error) {
	if v.clientID == "" {
		return nil, ErrNotConfigured
	}
	if idToken == "" {
		return nil, ErrInvalidToken
	}

	reqURL := v.endpoint + "?" + url.Values{"id_token": {idToken}}.Encode()
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, fmt.Errorf("google: build request: %w", err)
	}

	resp, err := v.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("google: tokeninfo request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseSize))
	if err != nil {
		return nil, fmt.Errorf("google: read response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: tokeninfo returned %d", ErrInvalidToken, resp.StatusCode)
	}

	var info tokenInfo
	if err := json.Unmarshal(body, &info); err != nil {
		return nil, fmt.Errorf("google: decode response: %w", err)
	}
	return v.check(info)
}

func (v *Verifier) check(info tokenInfo) (*identityapp.GoogleIdentity, error) {
	if info.Audience != v.clientID {
		return nil, ErrAudienceMismatch
	}
	if !validIssuers[info.Issuer] {
		return nil, fmt.Errorf("%w: issuer %q", ErrInvalidToken, info.Issuer)
	}
	exp, err := strconv.ParseInt(info.Expiry, 10, 64)
	if err != nil {
		return nil, fmt.Errorf("%w: bad exp", ErrInvalidToken)
	}
	if v.now().After(time.Unix(exp, 0).Add(clockSkew)) {
		return nil, fmt.Errorf("%w: expired", ErrInvalidToken)
	}
	if info.EmailVerified != "true" {
		return nil, ErrEmailUnverified
	}
	return &identityapp.GoogleIdentity{
		Subject:       info.Subject,
		Email:         info.Email,
		EmailVerified: true,
		Name:          info.Name,
	}, nil
}

var _ identityapp.GoogleVerifier = (*Verifier)(nil)
