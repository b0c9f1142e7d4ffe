package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"golang.org/x/exp/slog"

	orderAPI "siigosync/internal/app/server/api/http/order"
	syncAPI "siigosync/internal/app/server/api/http/sync"
	"siigosync/internal/domain/order"
	"siigosync/internal/domain/sync"
)

// HTTPClient запускает проходы синхронизации на удаленном сервисе siigosync
type HTTPClient struct {
	client    *http.Client
	log       *slog.Logger
	baseURL   string
	token     string
	userAgent string
}

func NewHTTPClient(serverURL, token string, log *slog.Logger) *HTTPClient {
	client := &http.Client{
		Timeout: 5 * time.Minute,
		Transport: &http.Transport{
			MaxIdleConns:        10,
			IdleConnTimeout:     90 * time.Second,
			MaxIdleConnsPerHost: 2,
		},
	}

	baseURL := strings.TrimRight(serverURL, "/")
	if !strings.Contains(baseURL, "://") {
		baseURL = "http://" + baseURL
	}

	return &HTTPClient{
		client:    client,
		log:       log.With("component", "siigosync_http_client"),
		baseURL:   baseURL,
		token:     token,
		userAgent: "siigosync-cli/1.0",
	}
}

// HealthCheck проверяет доступность сервера
func (h *HTTPClient) HealthCheck(ctx context.Context) error {
	resp, err := h.doRequest(ctx, http.MethodGet, "/api/v1/health", nil)
	if err != nil {
		return err
	}
	return h.parseResponse(resp, nil)
}

func (h *HTTPClient) SyncInventory(ctx context.Context) (*sync.Result, error) {
	return h.trigger(ctx, "/api/v1/sync/inventory", nil)
}

func (h *HTTPClient) PullProducts(ctx context.Context) (*sync.Result, error) {
	return h.trigger(ctx, "/api/v1/sync/products/pull", nil)
}

func (h *HTTPClient) PushProducts(ctx context.Context) (*sync.Result, error) {
	return h.trigger(ctx, "/api/v1/sync/products/push", nil)
}

func (h *HTTPClient) ResyncInvoices(ctx context.Context, events []order.Event) (*sync.Result, error) {
	req := syncAPI.ResyncRequest{Orders: make([]orderAPI.EventRequest, 0, len(events))}
	for _, e := range events {
		req.Orders = append(req.Orders, orderAPI.FromEvent(e))
	}
	return h.trigger(ctx, "/api/v1/invoices/resync", req)
}

func (h *HTTPClient) ApplyOrder(ctx context.Context, event order.Event) ([]order.Outcome, error) {
	resp, err := h.doRequest(ctx, http.MethodPost, "/api/v1/orders/events", orderAPI.FromEvent(event))
	if err != nil {
		return nil, err
	}

	var out orderAPI.Response
	if err := h.parseResponse(resp, &out); err != nil {
		return nil, err
	}
	if out.Status != "Ok" {
		return out.Outcomes, fmt.Errorf("server error: %s", out.Error)
	}

	return out.Outcomes, nil
}

func (h *HTTPClient) trigger(ctx context.Context, path string, body interface{}) (*sync.Result, error) {
	resp, err := h.doRequest(ctx, http.MethodPost, path, body)
	if err != nil {
		return nil, err
	}

	var out syncAPI.Response
	if err := h.parseResponse(resp, &out); err != nil {
		return nil, err
	}

	res := out.Result
	if out.Status != "Ok" {
		return &res, fmt.Errorf("server error: %s", out.Error)
	}

	return &res, nil
}

func (h *HTTPClient) doRequest(ctx context.Context, method, path string, body interface{}) (*http.Response, error) {
	var reqBody io.Reader
	if body != nil {
		jsonData, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("marshal request body: %w", err)
		}
		reqBody = bytes.NewBuffer(jsonData)
	}

	req, err := http.NewRequestWithContext(ctx, method, h.baseURL+path, reqBody)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}

	req.Header.Set("User-Agent", h.userAgent)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if h.token != "" {
		req.Header.Set("Authorization", "Bearer "+h.token)
	}

	h.log.Debug("sending request", "method", method, "url", req.URL.String())

	resp, err := h.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("server unavailable: %w", err)
	}

	return resp, nil
}

func (h *HTTPClient) parseResponse(resp *http.Response, result interface{}) error {
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("read response: %w", err)
	}

	h.log.Debug("response received", "status", resp.StatusCode, "size", len(body))

	if resp.StatusCode >= 400 {
		var errResp struct {
			Error  string `json:"error"`
			Detail string `json:"detail"`
		}
		if err := json.Unmarshal(body, &errResp); err == nil {
			if errResp.Error != "" {
				return fmt.Errorf("server error (%d): %s", resp.StatusCode, errResp.Error)
			}
			if errResp.Detail != "" {
				return fmt.Errorf("server error (%d): %s", resp.StatusCode, errResp.Detail)
			}
		}
		return fmt.Errorf("server error: status %d", resp.StatusCode)
	}

	if result != nil {
		if err := json.Unmarshal(body, result); err != nil {
			return fmt.Errorf("parse response: %w", err)
		}
	}

	return nil
}
