package service

import (
	"context"
	"sync"
	"time"

	"billpay-settlement/internal/errx"
	"billpay-settlement/internal/model"
	"billpay-settlement/pkg/logger"
)

// DefaultTokenLifetime applies when the vendor omits expires_in
const DefaultTokenLifetime = 86400 * time.Second

type tokenState int

const (
	tokenStale tokenState = iota
	tokenFresh
	tokenRefreshing
)

// refreshCall is one in-flight credential exchange shared by every waiting caller
type refreshCall struct {
	done  chan struct{}
	token string
	err   error
}

type credential struct {
	token     string
	expiresAt time.Time
	inflight  *refreshCall
}

// TokenCache keeps one vendor bearer token per audience.
type TokenCache struct {
	exchanger       TokenExchanger
	primaryAudience string
	buffer          time.Duration
	now             func() time.Time
	logger          *logger.Logger

	mu    sync.Mutex
	creds map[string]*credential
}

// NewTokenCache creates a token cache. Tokens within buffer of expiry are refreshed.
func NewTokenCache(exchanger TokenExchanger, primaryAudience string, buffer time.Duration, log *logger.Logger) *TokenCache {
	return &TokenCache{
		exchanger:       exchanger,
		primaryAudience: primaryAudience,
		buffer:          buffer,
		now:             time.Now,
		logger:          log,
		creds:           make(map[string]*credential),
	}
}

// Token returns a bearer token for audience. A secondary audience that cannot be
// authenticated falls back to the primary audience before failing.
func (c *TokenCache) Token(ctx context.Context, audience string) (string, error) {
	token, err := c.token(ctx, audience)
	if err == nil || audience == c.primaryAudience || c.primaryAudience == "" {
		return token, err
	}

	c.logger.Warn("Vendor token unavailable, falling back to primary audience",
		"audience", audience,
		"primary_audience", c.primaryAudience,
		"error", err,
	)
	return c.token(ctx, c.primaryAudience)
}

func (c *TokenCache) token(ctx context.Context, audience string) (string, error) {
	c.mu.Lock()
	cred, ok := c.creds[audience]
	if !ok {
		cred = &credential{}
		c.creds[audience] = cred
	}

	switch c.state(cred) {
	case tokenFresh:
		token := cred.token
		c.mu.Unlock()
		return token, nil
	case tokenRefreshing:
		call := cred.inflight
		c.mu.Unlock()
		return c.wait(ctx, call)
	}

	call := c.beginRefresh(cred)
	c.mu.Unlock()

	// the exchange outlives the caller that started it; the exchanger's
	// client timeout bounds it
	go c.refresh(context.WithoutCancel(ctx), audience, cred, call)

	return c.wait(ctx, call)
}

func (c *TokenCache) refresh(ctx context.Context, audience string, cred *credential, call *refreshCall) {
	c.logger.Info("Fetching new vendor access token", "audience", audience)
	vt, err := c.exchanger.Exchange(ctx, audience)
	c.completeRefresh(audience, cred, call, vt, err)
}

// Invalidate forgets token after the vendor rejected it. Credentials already
// replaced by a newer token are left alone.
func (c *TokenCache) Invalidate(audience, token string) {
	if token == "" {
		return
	}

	c.mu.Lock()
	dropped := 0
	for _, cred := range c.creds {
		if cred.token == token {
			cred.token = ""
			cred.expiresAt = time.Time{}
			dropped++
		}
	}
	c.mu.Unlock()

	if dropped > 0 {
		c.logger.Warn("Vendor access token invalidated", "audience", audience)
	}
}

// state must be called with mu held
func (c *TokenCache) state(cred *credential) tokenState {
	if cred.inflight != nil {
		return tokenRefreshing
	}
	if cred.token != "" && c.now().Before(cred.expiresAt.Add(-c.buffer)) {
		return tokenFresh
	}
	return tokenStale
}

// beginRefresh moves a stale credential to refreshing; mu must be held
func (c *TokenCache) beginRefresh(cred *credential) *refreshCall {
	call := &refreshCall{done: make(chan struct{})}
	cred.inflight = call
	return call
}

// completeRefresh stores the exchange outcome and releases waiters.
// On failure the previous token and expiry are left as they were.
func (c *TokenCache) completeRefresh(audience string, cred *credential, call *refreshCall, vt *model.VendorToken, err error) {
	if err == nil && (vt == nil || vt.AccessToken == "") {
		err = errx.New(errx.KindAuthenticationFailure, "vendor returned an empty access token")
	}
	if err != nil && !errx.Is(err, errx.KindAuthenticationFailure) {
		err = errx.Wrap(errx.KindAuthenticationFailure, err, "could not authenticate with vendor")
	}

	c.mu.Lock()
	if err == nil {
		lifetime := vt.ExpiresIn
		if lifetime <= 0 {
			lifetime = DefaultTokenLifetime
		}
		cred.token = vt.AccessToken
		cred.expiresAt = c.now().Add(lifetime)
		call.token = vt.AccessToken
	}
	call.err = err
	cred.inflight = nil
	expiresAt := cred.expiresAt
	c.mu.Unlock()

	close(call.done)

	if err != nil {
		c.logger.Error("Vendor authentication failed", "audience", audience, "error", err)
		return
	}
	c.logger.Info("Vendor access token refreshed",
		"audience", audience,
		"expires_at", expiresAt.Format(time.RFC3339),
	)
}

func (c *TokenCache) wait(ctx context.Context, call *refreshCall) (string, error) {
	select {
	case <-call.done:
		return call.token, call.err
	case <-ctx.Done():
		return "", errx.Wrap(errx.KindTransportError, ctx.Err(), "gave up waiting for vendor token refresh")
	}
}
