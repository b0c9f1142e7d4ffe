package siigo

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

	"golang.org/x/exp/slog"
)

const (
	tokenPath = "/auth/oauth2/token"
	// если Siigo не вернул expires_in
	defaultTokenLifetime = 3600 * time.Second
)

// Token bearer-токен и момент его истечения
type Token struct {
	AccessToken string    `json:"access_token"`
	ExpiresAt   time.Time `json:"expires_at"`
}

// Valid токен пригоден, пока now строго раньше ExpiresAt
func (t *Token) Valid(now time.Time) bool {
	return t != nil && t.AccessToken != "" && now.Before(t.ExpiresAt)
}

// TokenStore хранилище сессионного токена.
// Load возвращает nil, nil если токена нет.
type TokenStore interface {
	Load(ctx context.Context) (*Token, error)
	Save(ctx context.Context, token *Token) error
}

// MemoryTokenStore хранит токен в памяти процесса
type MemoryTokenStore struct {
	mu    sync.RWMutex
	token *Token
}

func NewMemoryTokenStore() *MemoryTokenStore {
	return &MemoryTokenStore{}
}

func (s *MemoryTokenStore) Load(_ context.Context) (*Token, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.token == nil {
		return nil, nil
	}
	t := *s.token
	return &t, nil
}

func (s *MemoryTokenStore) Save(_ context.Context, token *Token) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	t := *token
	s.token = &t
	return nil
}

type tokenResponse struct {
	AccessToken string      `json:"access_token"`
	ExpiresIn   json.Number `json:"expires_in"`
}

// Authenticator кэш токена. Ходит в /auth только если токена нет
// или он истек; проверка и обновление выполняются под мьютексом.
type Authenticator struct {
	client       *http.Client
	tokenURL     string
	clientID     string
	clientSecret string
	store        TokenStore
	now          func() time.Time
	log          *slog.Logger

	mu     sync.Mutex
	cached *Token
}

func newAuthenticator(client *http.Client, baseURL, clientID, clientSecret string, store TokenStore, now func() time.Time, log *slog.Logger) *Authenticator {
	return &Authenticator{
		client:       client,
		tokenURL:     baseURL + tokenPath,
		clientID:     clientID,
		clientSecret: clientSecret,
		store:        store,
		now:          now,
		log:          log,
	}
}

// EnsureValid возвращает действующий bearer-токен, при необходимости
// выполняя ровно один запрос аутентификации.
func (a *Authenticator) EnsureValid(ctx context.Context) (string, error) {
	a.mu.Lock()
	defer a.mu.Unlock()

	now := a.now()
	if a.cached.Valid(now) {
		return a.cached.AccessToken, nil
	}

	// Токен мог обновить другой экземпляр сервиса
	stored, err := a.store.Load(ctx)
	if err != nil {
		a.log.Warn("failed to load token from store", "error", err)
	} else if stored.Valid(now) {
		a.cached = stored
		return stored.AccessToken, nil
	}

	token, err := a.authenticate(ctx)
	if err != nil {
		return "", err
	}

	if err := a.store.Save(ctx, token); err != nil {
		return "", &AuthenticationError{Err: fmt.Errorf("save token: %w", err)}
	}
	a.cached = token

	a.log.Debug("siigo token refreshed", "expires_at", token.ExpiresAt)

	return token.AccessToken, nil
}

func (a *Authenticator) authenticate(ctx context.Context) (*Token, error) {
	form := url.Values{}
	form.Set("client_id", a.clientID)
	form.Set("client_secret", a.clientSecret)
	form.Set("grant_type", "client_credentials")

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, a.tokenURL, strings.NewReader(form.Encode()))
	if err != nil {
		return nil, &AuthenticationError{Err: fmt.Errorf("create token request: %w", err)}
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.Header.Set("Accept", "application/json")

	requestedAt := a.now()

	resp, err := a.client.Do(req)
	if err != nil {
		return nil, &AuthenticationError{Err: err}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &AuthenticationError{Err: fmt.Errorf("read token response: %w", err)}
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, &AuthenticationError{StatusCode: resp.StatusCode, Body: string(body)}
	}

	var tr tokenResponse
	if err := json.Unmarshal(body, &tr); err != nil {
		return nil, &AuthenticationError{Body: string(body), Err: fmt.Errorf("parse token response: %w", err)}
	}
	if tr.AccessToken == "" {
		return nil, &AuthenticationError{Body: string(body), Err: ErrMissingToken}
	}

	lifetime := defaultTokenLifetime
	if secs, err := tr.ExpiresIn.Int64(); err == nil && secs > 0 {
		lifetime = time.Duration(secs) * time.Second
	}

	return &Token{
		AccessToken: tr.AccessToken,
		ExpiresAt:   requestedAt.Add(lifetime),
	}, nil
}
