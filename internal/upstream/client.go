// Package upstream talks to the remote product service: add-to-cart
// bookkeeping, favorite toggles, and product search. Responses are validated
// into tagged success/error variants at this boundary instead of being
// trusted at the point of use.
package upstream

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/cookiejar"
	"net/url"
	"time"
)

const (
	csrfCookieName = "csrftoken"
	csrfHeaderName = "X-CSRFToken"
)

// ErrRejected tags a well-formed upstream response that reports failure.
var ErrRejected = errors.New("upstream rejected request")

type Client struct {
	baseURL string
	http    *http.Client
}

func NewClient(baseURL string, timeout time.Duration) *Client {
	jar, _ := cookiejar.New(nil)
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &Client{
		baseURL: baseURL,
		http: &http.Client{
			Timeout: timeout,
			Jar:     jar,
		},
	}
}

type AddToCartRequest struct {
	ProductoID string `json:"producto_id"`
	Quantity   int    `json:"quantity"`
	VariantID  string `json:"variant_id"`
	Color      string `json:"color"`
}

type addToCartResponse struct {
	Mensaje string `json:"mensaje"`
	Error   string `json:"error"`
}

// AddToCart informs the server of an add-to-cart action and returns its
// confirmation message. The caller's local cart state is already updated;
// failures only feed user feedback.
func (c *Client) AddToCart(ctx context.Context, req AddToCartRequest) (string, error) {
	var resp addToCartResponse
	if err := c.postJSON(ctx, "/agregar-al-carrito/", req, &resp); err != nil {
		return "", err
	}
	if resp.Error != "" {
		return "", fmt.Errorf("%w: %s", ErrRejected, resp.Error)
	}
	return resp.Mensaje, nil
}

// ToggleResult is the server's authoritative answer to a favorite toggle.
// IsFavorito is nil when the endpoint variant omits it.
type ToggleResult struct {
	Message    string
	IsFavorito *bool
}

type toggleFavoritoResponse struct {
	Success    bool   `json:"success"`
	Message    string `json:"message"`
	IsFavorito *bool  `json:"is_favorito"`
}

func (c *Client) ToggleFavorite(ctx context.Context, productID string) (*ToggleResult, error) {
	body := map[string]string{"producto_id": productID}
	var resp toggleFavoritoResponse
	if err := c.postJSON(ctx, "/toggle-favorito/", body, &resp); err != nil {
		return nil, err
	}
	if !resp.Success {
		return nil, fmt.Errorf("%w: %s", ErrRejected, resp.Message)
	}
	return &ToggleResult{Message: resp.Message, IsFavorito: resp.IsFavorito}, nil
}

// Product is one search hit.
type Product struct {
	ID     json.Number `json:"id"`
	Nombre string      `json:"nombre"`
	Precio float64     `json:"precio"`
	Imagen string      `json:"imagen"`
	URL    string      `json:"url"`
}

type searchResponse struct {
	Productos []Product `json:"productos"`
}

func (c *Client) Search(ctx context.Context, query string) ([]Product, error) {
	u := c.baseURL + "/api/buscar-productos/?q=" + url.QueryEscape(query)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, err
	}
	res, err := c.http.Do(req)
	if err != nil {
		return nil, err
	}
	defer res.Body.Close()

	if res.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("search: unexpected status %d", res.StatusCode)
	}
	var resp searchResponse
	if err := json.NewDecoder(res.Body).Decode(&resp); err != nil {
		return nil, fmt.Errorf("search: decode response: %w", err)
	}
	return resp.Productos, nil
}

func (c *Client) postJSON(ctx context.Context, path string, body, out any) error {
	token, err := c.csrfToken(ctx)
	if err != nil {
		return fmt.Errorf("fetch csrf token: %w", err)
	}

	payload, err := json.Marshal(body)
	if err != nil {
		return err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(payload))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set(csrfHeaderName, token)
	}

	res, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer res.Body.Close()

	if res.StatusCode >= http.StatusInternalServerError {
		return fmt.Errorf("%s: unexpected status %d", path, res.StatusCode)
	}
	if err := json.NewDecoder(res.Body).Decode(out); err != nil {
		return fmt.Errorf("%s: decode response: %w", path, err)
	}
	return nil
}

// csrfToken returns the upstream csrftoken cookie, priming the jar with a GET
// to the base URL on first use.
func (c *Client) csrfToken(ctx context.Context) (string, error) {
	base, err := url.Parse(c.baseURL)
	if err != nil {
		return "", err
	}
	if token := cookieValue(c.http.Jar.Cookies(base), csrfCookieName); token != "" {
		return token, nil
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/", nil)
	if err != nil {
		return "", err
	}
	res, err := c.http.Do(req)
	if err != nil {
		return "", err
	}
	res.Body.Close()

	return cookieValue(c.http.Jar.Cookies(base), csrfCookieName), nil
}

func cookieValue(cookies []*http.Cookie, name string) string {
	for _, c := range cookies {
		if c.Name == name {
			return c.Value
		}
	}
	return ""
}
