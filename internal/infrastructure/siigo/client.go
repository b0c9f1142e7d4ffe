package siigo

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"golang.org/x/exp/slog"
	"golang.org/x/time/rate"

	"siigosync/internal/config"
)

const (
	partnerHeader = "Partner-Id"
	userAgent     = "siigosync/1.0"
)

// Client HTTP клиент Siigo. Каждый вызов: проверка токена, затем ровно
// один запрос без повторов.
type Client struct {
	client           *http.Client
	auth             *Authenticator
	baseURL          string
	partnerID        string
	productsResponse string
	limiter          *rate.Limiter
	observer         RequestObserver
	log              *slog.Logger
}

// RequestObserver получает код ответа и длительность каждого запроса к API.
// status 0 - ответ не получен.
type RequestObserver interface {
	ObserveRequest(method string, status int, d time.Duration)
}

type Option func(*options)

type options struct {
	httpClient *http.Client
	store      TokenStore
	observer   RequestObserver
	now        func() time.Time
}

// WithHTTPClient подменяет транспорт (тесты, прокси)
func WithHTTPClient(c *http.Client) Option {
	return func(o *options) { o.httpClient = c }
}

// WithTokenStore задает хранилище токена, по умолчанию память процесса
func WithTokenStore(s TokenStore) Option {
	return func(o *options) { o.store = s }
}

func WithClock(now func() time.Time) Option {
	return func(o *options) { o.now = now }
}

func WithRequestObserver(obs RequestObserver) Option {
	return func(o *options) { o.observer = obs }
}

func New(cfg config.Siigo, log *slog.Logger, opts ...Option) *Client {
	o := options{
		httpClient: &http.Client{Timeout: cfg.HTTPTimeout},
		store:      NewMemoryTokenStore(),
		now:        time.Now,
	}
	for _, opt := range opts {
		opt(&o)
	}

	log = log.With("component", "siigo_client")

	productsResponse := cfg.ProductsResponse
	if productsResponse == "" {
		productsResponse = config.ProductsResponseAuto
	}

	var limiter *rate.Limiter
	if cfg.RateLimit > 0 {
		limiter = rate.NewLimiter(rate.Limit(cfg.RateLimit), 1)
	}

	return &Client{
		client:           o.httpClient,
		auth:             newAuthenticator(o.httpClient, cfg.BaseURL, cfg.ClientID, cfg.ClientSecret, o.store, o.now, log),
		baseURL:          cfg.BaseURL,
		partnerID:        cfg.PartnerID,
		productsResponse: productsResponse,
		limiter:          limiter,
		observer:         o.observer,
		log:              log,
	}
}

// Authenticator доступ к кэшу токена
func (c *Client) Authenticator() *Authenticator {
	return c.auth
}

// Call выполняет авторизованный запрос. body сериализуется в JSON если не nil,
// ответ 2xx декодируется в out если out не nil.
func (c *Client) Call(ctx context.Context, method, path string, body, out any) error {
	token, err := c.auth.EnsureValid(ctx)
	if err != nil {
		return err
	}

	if c.limiter != nil {
		if err := c.limiter.Wait(ctx); err != nil {
			return &TransportError{Method: method, URL: c.baseURL + path, Err: err}
		}
	}

	resp, err := c.doRequest(ctx, method, path, body, token)
	if err != nil {
		return err
	}

	return c.parseResponse(method, resp, out)
}

func (c *Client) doRequest(ctx context.Context, method, path string, body any, token string) (*http.Response, error) {
	var reqBody io.Reader
	if body != nil {
		jsonData, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("%w: marshal body: %w", ErrInvalidRequest, err)
		}
		reqBody = bytes.NewReader(jsonData)
	}

	url := c.baseURL + path
	req, err := http.NewRequestWithContext(ctx, method, url, reqBody)
	if err != nil {
		return nil, fmt.Errorf("%w: %s %s: %w", ErrInvalidRequest, method, path, err)
	}

	req.Header.Set("Authorization", "Bearer "+token)
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", userAgent)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.partnerID != "" {
		req.Header.Set(partnerHeader, c.partnerID)
	}

	c.log.Debug("sending request", "method", method, "url", url)

	start := time.Now()
	resp, err := c.client.Do(req)
	if err != nil {
		c.observe(method, 0, start)
		return nil, &TransportError{Method: method, URL: url, Err: err}
	}
	c.observe(method, resp.StatusCode, start)

	return resp, nil
}

func (c *Client) parseResponse(method string, resp *http.Response, out any) error {
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return &TransportError{Method: method, URL: resp.Request.URL.String(), Err: err}
	}

	c.log.Debug("response received",
		"status", resp.StatusCode,
		"size", len(body),
	)

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return &APIError{StatusCode: resp.StatusCode, Body: string(body)}
	}

	if out == nil || len(bytes.TrimSpace(body)) == 0 {
		return nil
	}

	if err := json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("%w: %v", ErrUnexpectedPayload, err)
	}

	return nil
}

func (c *Client) observe(method string, status int, start time.Time) {
	if c.observer != nil {
		c.observer.ObserveRequest(method, status, time.Since(start))
	}
}
