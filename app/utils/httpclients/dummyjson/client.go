package dummyjson

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"menlo.ai/catalog-admin/app/utils/httpclients"
	"resty.dev/v3"
)

// APIError is returned for every non-2xx response.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	return e.Message
}

type errorBody struct {
	Message string `json:"message"`
}

type Client struct {
	rest *resty.Client
}

func NewClient(baseURL string) *Client {
	return &Client{
		rest: httpclients.NewClient("DummyJSONClient", strings.TrimRight(baseURL, "/")),
	}
}

func pageQuery(limit, skip int) map[string]string {
	return map[string]string{
		"limit": strconv.Itoa(limit),
		"skip":  strconv.Itoa(skip),
	}
}

func (c *Client) ListProducts(ctx context.Context, limit, skip int) (*ProductList, error) {
	var result ProductList
	if err := c.get(ctx, "/products", pageQuery(limit, skip), &result); err != nil {
		return nil, err
	}
	return &result, nil
}

func (c *Client) SearchProducts(ctx context.Context, q string, limit, skip int) (*ProductList, error) {
	params := pageQuery(limit, skip)
	params["q"] = q
	var result ProductList
	if err := c.get(ctx, "/products/search", params, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

func (c *Client) ListProductsByCategory(ctx context.Context, category string, limit, skip int) (*ProductList, error) {
	var result ProductList
	path := "/products/category/" + url.PathEscape(category)
	if err := c.get(ctx, path, pageQuery(limit, skip), &result); err != nil {
		return nil, err
	}
	return &result, nil
}

func (c *Client) GetProduct(ctx context.Context, id int) (*Product, error) {
	var result Product
	if err := c.get(ctx, "/products/"+strconv.Itoa(id), nil, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

func (c *Client) ListUsers(ctx context.Context, limit, skip int) (*UserList, error) {
	var result UserList
	if err := c.get(ctx, "/users", pageQuery(limit, skip), &result); err != nil {
		return nil, err
	}
	return &result, nil
}

func (c *Client) SearchUsers(ctx context.Context, q string, limit, skip int) (*UserList, error) {
	params := pageQuery(limit, skip)
	params["q"] = q
	var result UserList
	if err := c.get(ctx, "/users/search", params, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

func (c *Client) GetUser(ctx context.Context, id int) (*User, error) {
	var result User
	if err := c.get(ctx, "/users/"+strconv.Itoa(id), nil, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// Login exchanges credentials for the remote access and refresh tokens.
func (c *Client) Login(ctx context.Context, request LoginRequest) (*LoginResponse, error) {
	var result LoginResponse
	req := c.rest.R().
		SetContext(ctx).
		SetHeader("Content-Type", "application/json").
		SetBody(request)
	if err := c.execute(req, http.MethodPost, "/auth/login", &result); err != nil {
		return nil, err
	}
	return &result, nil
}

func (c *Client) get(ctx context.Context, path string, params map[string]string, out any) error {
	req := c.rest.R().SetContext(ctx)
	if len(params) > 0 {
		req.SetQueryParams(params)
	}
	return c.execute(req, http.MethodGet, path, out)
}

// execute decodes a 2xx body into out as JSON whatever its Content-Type. Any
// status >= 400 becomes an APIError, even when its body could not be decoded.
func (c *Client) execute(req *resty.Request, method, path string, out any) error {
	resp, err := req.
		SetForceResponseContentType("application/json").
		SetResult(out).
		SetError(&errorBody{}).
		Execute(method, path)
	if resp != nil && resp.IsError() {
		return apiErrorFromResponse(resp)
	}
	if err != nil {
		return fmt.Errorf("dummyjson: %s %s failed: %w", method, path, err)
	}
	return nil
}

func apiErrorFromResponse(resp *resty.Response) *APIError {
	status := resp.StatusCode()
	if body, ok := resp.Error().(*errorBody); ok && body != nil && body.Message != "" {
		return &APIError{StatusCode: status, Message: body.Message}
	}
	return &APIError{
		StatusCode: status,
		Message:    fmt.Sprintf("request failed with status %d %s", status, http.StatusText(status)),
	}
}
