package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"
)

// DefaultTimeout bounds every portal request so a hung backend cannot block
// the CLI indefinitely
const DefaultTimeout = 10 * time.Second

// Client represents an HTTP client for the Storekeep portal API
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// New creates a new API client. creds supplies the bearer token for
// protected endpoints and may be nil for unauthenticated use (login, store
// locator). onUnauthorized is invoked at most once, on the first 401
// observed on an authenticated request.
func New(baseURL string, timeout time.Duration, creds TokenSource, onUnauthorized func(detail string)) *Client {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}

	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{
			Timeout: timeout,
			Transport: &authTransport{
				base:           http.DefaultTransport,
				creds:          creds,
				onUnauthorized: onUnauthorized,
			},
		},
	}
}

// SetHTTPClient sets a custom HTTP client
func (c *Client) SetHTTPClient(httpClient *http.Client) {
	c.httpClient = httpClient
}

// LoginRequest represents the login request body
type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// LoginResponse represents the login response
type LoginResponse struct {
	AccessToken string  `json:"access_token"`
	TokenType   string  `json:"token_type"`
	UserRole    string  `json:"user_role"`
	StoreID     *int64  `json:"store_id"`
	StoreName   *string `json:"store_name"`
}

// Login authenticates the user and returns the bearer token and identity
func (c *Client) Login(ctx context.Context, username, password string) (*LoginResponse, error) {
	reqBody := LoginRequest{
		Username: username,
		Password: password,
	}

	jsonData, err := json.Marshal(reqBody)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(
		ctx,
		http.MethodPost,
		fmt.Sprintf("%s/api/login", c.baseURL),
		bytes.NewBuffer(jsonData),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, apiErrorFromResponse(resp)
	}

	var loginResp LoginResponse
	if err := json.NewDecoder(resp.Body).Decode(&loginResp); err != nil {
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}

	return &loginResp, nil
}

// ListOptions scopes list requests. StoreID > 0 is sent as the store_id
// query parameter; the server ignores it for store-manager tokens.
type ListOptions struct {
	StoreID int64
}

func (o ListOptions) query() url.Values {
	query := url.Values{}
	if o.StoreID > 0 {
		query.Set("store_id", strconv.FormatInt(o.StoreID, 10))
	}
	return query
}

// Product represents a catalog product
type Product struct {
	ID       int64   `json:"id"`
	SKU      string  `json:"sku"`
	Name     string  `json:"name"`
	Category string  `json:"category"`
	Price    float64 `json:"price"`
}

// ListProducts returns the product catalog
func (c *Client) ListProducts(ctx context.Context, opts ListOptions) ([]Product, error) {
	var products []Product
	if err := c.get(ctx, "/api/products", opts.query(), &products); err != nil {
		return nil, fmt.Errorf("failed to list products: %w", err)
	}
	return products, nil
}

// InventoryItem represents stock of one product at one store
type InventoryItem struct {
	ID           int64  `json:"id"`
	ProductID    int64  `json:"product_id"`
	ProductName  string `json:"product_name"`
	StoreID      int64  `json:"store_id"`
	StoreName    string `json:"store_name"`
	Quantity     int    `json:"quantity"`
	ReorderLevel int    `json:"reorder_level"`
	UpdatedAt    string `json:"updated_at"`
}

// ListInventory returns inventory rows, scoped server-side by role
func (c *Client) ListInventory(ctx context.Context, opts ListOptions) ([]InventoryItem, error) {
	var items []InventoryItem
	if err := c.get(ctx, "/api/inventory", opts.query(), &items); err != nil {
		return nil, fmt.Errorf("failed to list inventory: %w", err)
	}
	return items, nil
}

// Supplier represents a product supplier
type Supplier struct {
	ID          int64  `json:"id"`
	Name        string `json:"name"`
	ContactName string `json:"contact_name"`
	Email       string `json:"email"`
	Phone       string `json:"phone"`
}

// ListSuppliers returns all suppliers visible to the caller
func (c *Client) ListSuppliers(ctx context.Context, opts ListOptions) ([]Supplier, error) {
	var suppliers []Supplier
	if err := c.get(ctx, "/api/suppliers", opts.query(), &suppliers); err != nil {
		return nil, fmt.Errorf("failed to list suppliers: %w", err)
	}
	return suppliers, nil
}

// DashboardSummary represents the aggregate figures shown on the dashboard
type DashboardSummary struct {
	TotalProducts  int     `json:"total_products"`
	TotalSuppliers int     `json:"total_suppliers"`
	TotalStock     int     `json:"total_stock"`
	LowStockItems  int     `json:"low_stock_items"`
	InventoryValue float64 `json:"inventory_value"`
}

// Dashboard returns the aggregate dashboard figures
func (c *Client) Dashboard(ctx context.Context, opts ListOptions) (*DashboardSummary, error) {
	var summary DashboardSummary
	if err := c.get(ctx, "/api/dashboard", opts.query(), &summary); err != nil {
		return nil, fmt.Errorf("failed to load dashboard: %w", err)
	}
	return &summary, nil
}

// Store represents a retail store location
type Store struct {
	ID      int64  `json:"id"`
	Name    string `json:"name"`
	Address string `json:"address"`
	City    string `json:"city"`
	Phone   string `json:"phone"`
}

// ListStores returns all store locations. This endpoint is public.
func (c *Client) ListStores(ctx context.Context) ([]Store, error) {
	var stores []Store
	if err := c.get(ctx, "/api/stores", nil, &stores); err != nil {
		return nil, fmt.Errorf("failed to list stores: %w", err)
	}
	return stores, nil
}

// get performs a GET request and decodes the JSON response into out
func (c *Client) get(ctx context.Context, path string, query url.Values, out any) error {
	endpoint := c.baseURL + path
	if len(query) > 0 {
		endpoint += "?" + query.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return apiErrorFromResponse(resp)
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}

	return nil
}

// apiErrorFromResponse builds an APIError from a non-2xx response,
// preserving the server-supplied detail message when the body has one
func apiErrorFromResponse(resp *http.Response) *APIError {
	apiErr := &APIError{Status: resp.StatusCode}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return apiErr
	}

	var body struct {
		Detail string `json:"detail"`
	}
	if err := json.Unmarshal(data, &body); err == nil && body.Detail != "" {
		apiErr.Detail = body.Detail
	} else if len(data) > 0 {
		apiErr.Detail = strings.TrimSpace(string(data))
	}

	return apiErr
}
