package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strconv"
	"sync"
	"time"

	"golang.org/x/exp/slog"

	"budgetkeeper/internal/app/client/config"
	"budgetkeeper/internal/model"
)

const sessionCookieName = "bk_session"

// APIClient talks to the budgetkeeper server. The session cookie obtained at
// login is kept in memory and, when a data directory is configured, persisted
// to disk so separate CLI invocations stay authenticated.
type APIClient struct {
	client      *http.Client
	log         *slog.Logger
	baseURL     string
	sessionFile string

	mu    sync.RWMutex
	token string
}

func NewAPIClient(cfg *config.Config, log *slog.Logger) (*APIClient, error) {
	c := &APIClient{
		client: &http.Client{
			Timeout: 30 * time.Second,
			Transport: &http.Transport{
				MaxIdleConns:        100,
				IdleConnTimeout:     90 * time.Second,
				MaxIdleConnsPerHost: 10,
			},
		},
		log:     log,
		baseURL: cfg.ServerURL,
	}
	if cfg.DataDir != "" {
		c.sessionFile = filepath.Join(cfg.DataDir, "session")
		if data, err := os.ReadFile(c.sessionFile); err == nil {
			c.token = string(bytes.TrimSpace(data))
		}
	}
	return c, nil
}

func (c *APIClient) sessionToken() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.token
}

func (c *APIClient) setSessionToken(token string) {
	c.mu.Lock()
	c.token = token
	c.mu.Unlock()

	if c.sessionFile == "" {
		return
	}
	if token == "" {
		if err := os.Remove(c.sessionFile); err != nil && !os.IsNotExist(err) {
			c.log.Warn("failed to remove session file", "error", err)
		}
		return
	}
	if err := os.WriteFile(c.sessionFile, []byte(token), 0o600); err != nil {
		c.log.Warn("failed to persist session", "error", err)
	}
}

// Ping checks server reachability; the connectivity monitor uses it as probe.
func (c *APIClient) Ping(ctx context.Context) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/api/v1/health", nil)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	resp, err := c.client.Do(req)
	if err != nil {
		return fmt.Errorf("server unreachable: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("server returned status: %d", resp.StatusCode)
	}
	return nil
}

// Login establishes the session and captures the session cookie.
func (c *APIClient) Login(ctx context.Context, email, password string) error {
	body := struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}{Email: email, Password: password}

	resp, err := c.do(ctx, http.MethodPost, "/api/v1/auth/login", body, nil)
	if err != nil {
		return err
	}
	for _, cookie := range resp.Cookies() {
		if cookie.Name == sessionCookieName {
			c.setSessionToken(cookie.Value)
		}
	}
	return c.parse(resp, nil)
}

// Register creates a new server account.
func (c *APIClient) Register(ctx context.Context, email, name, password string) error {
	body := struct {
		Email    string `json:"email"`
		Name     string `json:"name,omitempty"`
		Password string `json:"password"`
	}{Email: email, Name: name, Password: password}

	resp, err := c.do(ctx, http.MethodPost, "/api/v1/auth/register", body, nil)
	if err != nil {
		return err
	}
	return c.parse(resp, nil)
}

func (c *APIClient) ChangePassword(ctx context.Context, oldPassword, newPassword string) error {
	body := struct {
		OldPassword string `json:"old_password"`
		NewPassword string `json:"new_password"`
	}{OldPassword: oldPassword, NewPassword: newPassword}

	resp, err := c.do(ctx, http.MethodPost, "/api/v1/auth/change-password", body, nil)
	if err != nil {
		return err
	}
	return c.parse(resp, nil)
}

func (c *APIClient) Logout(ctx context.Context) error {
	resp, err := c.do(ctx, http.MethodPost, "/api/v1/auth/logout", nil, nil)
	if err != nil {
		return err
	}
	c.setSessionToken("")
	return c.parse(resp, nil)
}

func (c *APIClient) FetchAccounts(ctx context.Context) ([]model.Account, error) {
	var out struct {
		Accounts []model.Account `json:"accounts"`
	}
	if err := c.getJSON(ctx, "/api/v1/accounts?includeInactive=true", &out); err != nil {
		return nil, err
	}
	return out.Accounts, nil
}

func (c *APIClient) FetchCategories(ctx context.Context) ([]model.Category, error) {
	var out struct {
		Categories []model.Category `json:"categories"`
	}
	if err := c.getJSON(ctx, "/api/v1/categories", &out); err != nil {
		return nil, err
	}
	return out.Categories, nil
}

func (c *APIClient) FetchCategoryGroups(ctx context.Context) ([]model.CategoryGroup, error) {
	var out struct {
		Groups []model.CategoryGroup `json:"groups"`
	}
	if err := c.getJSON(ctx, "/api/v1/category-groups", &out); err != nil {
		return nil, err
	}
	return out.Groups, nil
}

func (c *APIClient) FetchPayees(ctx context.Context) ([]model.Payee, error) {
	var out struct {
		Payees []model.Payee `json:"payees"`
	}
	if err := c.getJSON(ctx, "/api/v1/payees", &out); err != nil {
		return nil, err
	}
	return out.Payees, nil
}

func (c *APIClient) FetchTransactions(ctx context.Context, accountID *int64) ([]model.Transaction, error) {
	path := "/api/v1/transactions"
	if accountID != nil {
		path += "?accountId=" + strconv.FormatInt(*accountID, 10)
	}
	var out struct {
		Transactions []model.Transaction `json:"transactions"`
	}
	if err := c.getJSON(ctx, path, &out); err != nil {
		return nil, err
	}
	return out.Transactions, nil
}

// CreateTransaction posts a new transaction and returns the server id.
func (c *APIClient) CreateTransaction(ctx context.Context, tx model.Transaction) (int64, error) {
	resp, err := c.do(ctx, http.MethodPost, "/api/v1/transactions", tx, nil)
	if err != nil {
		return 0, err
	}
	var out struct {
		ID int64 `json:"id"`
	}
	if err := c.parse(resp, &out); err != nil {
		return 0, err
	}
	return out.ID, nil
}

func (c *APIClient) UpdateTransaction(ctx context.Context, id int64, tx model.Transaction) error {
	resp, err := c.do(ctx, http.MethodPut, "/api/v1/transactions/"+strconv.FormatInt(id, 10), tx, nil)
	if err != nil {
		return err
	}
	return c.parse(resp, nil)
}

func (c *APIClient) DeleteTransaction(ctx context.Context, id int64) error {
	resp, err := c.do(ctx, http.MethodDelete, "/api/v1/transactions/"+strconv.FormatInt(id, 10), nil, nil)
	if err != nil {
		return err
	}
	return c.parse(resp, nil)
}

// Replay issues a previously queued request verbatim. The response is handed
// back unparsed so the queue processor can act on the status class; err is
// non-nil only for transport-level failures.
func (c *APIClient) Replay(ctx context.Context, method, path string, body []byte, headers map[string]string) (*http.Response, error) {
	var reader io.Reader
	if len(body) > 0 {
		reader = bytes.NewReader(body)
	}
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if token := c.sessionToken(); token != "" {
		req.AddCookie(&http.Cookie{Name: sessionCookieName, Value: token})
	}
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to send request: %w", err)
	}
	return resp, nil
}

func (c *APIClient) getJSON(ctx context.Context, path string, result any) error {
	resp, err := c.do(ctx, http.MethodGet, path, nil, nil)
	if err != nil {
		return err
	}
	return c.parse(resp, result)
}

func (c *APIClient) do(ctx context.Context, method, path string, body any, headers map[string]string) (*http.Response, error) {
	var reqBody io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("failed to marshal request body: %w", err)
		}
		reqBody = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reqBody)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if token := c.sessionToken(); token != "" {
		req.AddCookie(&http.Cookie{Name: sessionCookieName, Value: token})
	}
	for k, v := range headers {
		req.Header.Set(k, v)
	}

	c.log.Debug("sending request", "method", method, "url", req.URL.String())

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to send request: %w", err)
	}
	return resp, nil
}

func (c *APIClient) parse(resp *http.Response, result any) error {
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response: %w", err)
	}
	if resp.StatusCode >= 400 {
		var errResp struct {
			Error string `json:"error"`
		}
		if err := json.Unmarshal(data, &errResp); err == nil && errResp.Error != "" {
			return fmt.Errorf("server error: %s", errResp.Error)
		}
		return fmt.Errorf("server returned status: %d", resp.StatusCode)
	}
	if result != nil {
		if err := json.Unmarshal(data, result); err != nil {
			return fmt.Errorf("failed to decode response: %w", err)
		}
	}
	return nil
}

// BaseURL reports the configured server URL.
func (c *APIClient) BaseURL() string {
	return c.baseURL
}
