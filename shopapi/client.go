// Package shopapi is the typed client for the remote commerce API. The remote
// API owns all business truth (inventory, pricing, users, orders); this
// service only orchestrates calls against it.
package shopapi

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"time"

	"emporia/models"
)

const genericErrMsg = "Something went wrong. Please try again."

type Client struct {
	BaseURL string
	HTTP    *http.Client
}

// New builds a client for the given base URL. An empty baseURL falls back to
// UPSTREAM_API_URL, then localhost.
func New(baseURL string) *Client {
	if baseURL == "" {
		baseURL = os.Getenv("UPSTREAM_API_URL")
	}
	if baseURL == "" {
		baseURL = "http://localhost:8090"
	}
	return &Client{
		BaseURL: baseURL,
		HTTP:    &http.Client{Timeout: 15 * time.Second},
	}
}

// Envelope is the common response wrapper the commerce API uses.
type Envelope struct {
	Status        int                   `json:"status,omitempty"`
	Message       string                `json:"message,omitempty"`
	Token         string                `json:"token,omitempty"`
	ProductID     int64                 `json:"productId,omitempty"`
	User          *models.User          `json:"user,omitempty"`
	Category      *models.Category      `json:"category,omitempty"`
	CategoryList  []models.Category     `json:"categoryList,omitempty"`
	Product       *models.Product       `json:"product,omitempty"`
	ProductList   []models.Product      `json:"productList,omitempty"`
	OrderItemList []models.OrderItem    `json:"orderItemList,omitempty"`
	Data          []models.ProductImage `json:"data,omitempty"`
}

// APIError carries the message resolved from an upstream failure:
// server-provided body message, else the transport error, else a generic one.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string { return e.Message }

// ResolveMessage applies the storefront's error-message fallback chain.
func ResolveMessage(err error) string {
	if err == nil {
		return ""
	}
	if ae, ok := err.(*APIError); ok && ae.Message != "" {
		return ae.Message
	}
	if msg := err.Error(); msg != "" {
		return msg
	}
	return genericErrMsg
}

func (c *Client) do(ctx context.Context, method, path, token string, body io.Reader, contentType string) (*Envelope, error) {
	req, err := http.NewRequestWithContext(ctx, method, c.BaseURL+path, body)
	if err != nil {
		return nil, err
	}
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.HTTP.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return nil, err
	}

	var env Envelope
	if len(raw) > 0 {
		// Some endpoints return bare payloads; a decode failure on a 2xx
		// is surfaced, on an error status the body may be anything.
		if jerr := json.Unmarshal(raw, &env); jerr != nil && resp.StatusCode < 400 {
			return nil, jerr
		}
	}

	if resp.StatusCode >= 400 {
		msg := env.Message
		if msg == "" {
			msg = genericErrMsg
		}
		return &env, &APIError{StatusCode: resp.StatusCode, Message: msg}
	}
	return &env, nil
}

func (c *Client) doJSON(ctx context.Context, method, path, token string, payload any) (*Envelope, error) {
	var body io.Reader
	if payload != nil {
		data, err := json.Marshal(payload)
		if err != nil {
			return nil, err
		}
		body = bytes.NewReader(data)
	}
	return c.do(ctx, method, path, token, body, "application/json")
}

// --- Auth and user ---

func (c *Client) Register(ctx context.Context, req models.RegistrationRequest) (*Envelope, error) {
	return c.doJSON(ctx, http.MethodPost, "/auth/register", "", req)
}

// RegisterAdmin creates an admin account; the commerce API enforces that the
// caller is the root admin, our guard checks it up front as well.
func (c *Client) RegisterAdmin(ctx context.Context, token string, req models.RegistrationRequest) (*Envelope, error) {
	return c.doJSON(ctx, http.MethodPost, "/auth/register-admin", token, req)
}

func (c *Client) Login(ctx context.Context, req models.LoginRequest) (string, error) {
	env, err := c.doJSON(ctx, http.MethodPost, "/auth/login", "", req)
	if err != nil {
		return "", err
	}
	return env.Token, nil
}

// MyInfo fetches the caller's profile. Role gating always goes through here;
// locally cached role strings are never trusted.
func (c *Client) MyInfo(ctx context.Context, token string) (*models.User, error) {
	env, err := c.do(ctx, http.MethodGet, "/user/my-info", token, nil, "")
	if err != nil {
		return nil, err
	}
	if env.User == nil {
		return nil, &APIError{StatusCode: http.StatusBadGateway, Message: genericErrMsg}
	}
	return env.User, nil
}

func (c *Client) SaveAddress(ctx context.Context, token string, addr models.Address) (*Envelope, error) {
	return c.doJSON(ctx, http.MethodPost, "/address/save", token, addr)
}

// --- Categories ---

type CategoryRequest struct {
	Name  string `json:"name"`
	Image string `json:"image,omitempty"`
}

func (c *Client) Categories(ctx context.Context) ([]models.Category, error) {
	env, err := c.do(ctx, http.MethodGet, "/category/get-all", "", nil, "")
	if err != nil {
		return nil, err
	}
	return env.CategoryList, nil
}

func (c *Client) CategoryByID(ctx context.Context, id int64) (*models.Category, error) {
	env, err := c.do(ctx, http.MethodGet, fmt.Sprintf("/category/id/%d", id), "", nil, "")
	if err != nil {
		return nil, err
	}
	return env.Category, nil
}

func (c *Client) CreateCategory(ctx context.Context, token string, req CategoryRequest) (*Envelope, error) {
	return c.doJSON(ctx, http.MethodPost, "/category/create", token, req)
}

func (c *Client) UpdateCategory(ctx context.Context, token string, id int64, req CategoryRequest) (*Envelope, error) {
	return c.doJSON(ctx, http.MethodPut, fmt.Sprintf("/category/update/%d", id), token, req)
}

func (c *Client) DeleteCategory(ctx context.Context, token string, id int64) (*Envelope, error) {
	return c.do(ctx, http.MethodDelete, fmt.Sprintf("/category/delete/%d", id), token, nil, "")
}

// --- Products ---

type CreateProductRequest struct {
	CategoryID  int64    `json:"categoryId"`
	ImageURL    string   `json:"imageUrl"`
	Name        string   `json:"name"`
	Description string   `json:"description"`
	Price       float64  `json:"price"`
	Mrp         float64  `json:"mrp"`
	Qty         int      `json:"qty"`
	ProductSize string   `json:"productSize"`
	Tags        []string `json:"tags"`
}

func (c *Client) AllProducts(ctx context.Context) ([]models.Product, error) {
	env, err := c.do(ctx, http.MethodGet, "/product/get-all", "", nil, "")
	if err != nil {
		return nil, err
	}
	return env.ProductList, nil
}

func (c *Client) SearchProducts(ctx context.Context, searchValue string) ([]models.Product, error) {
	env, err := c.do(ctx, http.MethodGet, "/product/search?searchValue="+url.QueryEscape(searchValue), "", nil, "")
	if err != nil {
		return nil, err
	}
	return env.ProductList, nil
}

func (c *Client) ProductsByCategory(ctx context.Context, categoryID int64) ([]models.Product, error) {
	env, err := c.do(ctx, http.MethodGet, fmt.Sprintf("/product/get-by-category-id/%d", categoryID), "", nil, "")
	if err != nil {
		return nil, err
	}
	return env.ProductList, nil
}

func (c *Client) ProductByID(ctx context.Context, id int64) (*models.Product, error) {
	env, err := c.do(ctx, http.MethodGet, fmt.Sprintf("/product/id/%d", id), "", nil, "")
	if err != nil {
		return nil, err
	}
	return env.Product, nil
}

func (c *Client) CreateProduct(ctx context.Context, token string, req CreateProductRequest) (*Envelope, error) {
	return c.doJSON(ctx, http.MethodPost, "/product/createtg", token, req)
}

// UpdateProduct forwards the admin console's multipart form as-is; the form
// carries the product fields plus tags[] entries.
func (c *Client) UpdateProduct(ctx context.Context, token string, productID int64, form io.Reader, contentType string) (*Envelope, error) {
	return c.do(ctx, http.MethodPut, fmt.Sprintf("/product/updatetg?productId=%d", productID), token, form, contentType)
}

func (c *Client) DeleteProduct(ctx context.Context, token string, id int64) (*Envelope, error) {
	return c.do(ctx, http.MethodDelete, fmt.Sprintf("/product/delete/%d", id), token, nil, "")
}

func (c *Client) ProductImages(ctx context.Context, productID int64) ([]models.ProductImage, error) {
	env, err := c.do(ctx, http.MethodGet, fmt.Sprintf("/product/%d/images", productID), "", nil, "")
	if err != nil {
		return nil, err
	}
	return env.Data, nil
}

func (c *Client) AddProductImages(ctx context.Context, token string, productID int64, imageURLs []string) (*Envelope, error) {
	payload := map[string][]string{"imageUrls": imageURLs}
	return c.doJSON(ctx, http.MethodPost, fmt.Sprintf("/product/%d/add-images", productID), token, payload)
}

func (c *Client) DeleteProductImage(ctx context.Context, token string, productID, imageID int64) (*Envelope, error) {
	return c.do(ctx, http.MethodDelete, fmt.Sprintf("/product/%d/delete-image/%d", productID, imageID), token, nil, "")
}

// --- Orders ---

func (c *Client) PlaceOrder(ctx context.Context, token string, order models.OrderRequest) (*Envelope, error) {
	return c.doJSON(ctx, http.MethodPut, "/order/place", token, order)
}

// FilterOrders queries order items; itemID and status are both optional.
func (c *Client) FilterOrders(ctx context.Context, token, itemID, status string) ([]models.OrderItem, error) {
	q := url.Values{}
	if itemID != "" {
		q.Set("itemId", itemID)
	}
	if status != "" {
		q.Set("status", status)
	}
	path := "/order/filter"
	if len(q) > 0 {
		path += "?" + q.Encode()
	}
	env, err := c.do(ctx, http.MethodGet, path, token, nil, "")
	if err != nil {
		return nil, err
	}
	return env.OrderItemList, nil
}

func (c *Client) UpdateOrderItemStatus(ctx context.Context, token, itemID, status string) (*Envelope, error) {
	return c.do(ctx, http.MethodPut,
		fmt.Sprintf("/order/update-item-status/%s?status=%s", url.PathEscape(itemID), url.QueryEscape(status)),
		token, nil, "")
}

// --- Analytics ---

// RevenueTrends returns [timestamp, revenue] pairs for the date range.
func (c *Client) RevenueTrends(ctx context.Context, token, startDate, endDate string) ([][2]float64, error) {
	q := url.Values{}
	q.Set("startDate", startDate)
	q.Set("endDate", endDate)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.BaseURL+"/analytics/revenue-trends?"+q.Encode(), nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Authorization", "Bearer "+token)

	resp, err := c.HTTP.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		var env Envelope
		_ = json.NewDecoder(resp.Body).Decode(&env)
		msg := env.Message
		if msg == "" {
			msg = genericErrMsg
		}
		return nil, &APIError{StatusCode: resp.StatusCode, Message: msg}
	}

	var pairs [][2]float64
	if err := json.NewDecoder(resp.Body).Decode(&pairs); err != nil {
		return nil, err
	}
	return pairs, nil
}
