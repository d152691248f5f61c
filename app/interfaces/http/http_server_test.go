package http_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"github.com/gin-gonic/gin"
	"menlo.ai/catalog-admin/app/domain/auth"
	"menlo.ai/catalog-admin/app/domain/workspace"
	"menlo.ai/catalog-admin/app/infrastructure/cache"
	server "menlo.ai/catalog-admin/app/interfaces/http"
	"menlo.ai/catalog-admin/app/interfaces/http/routes/landing"
	v1 "menlo.ai/catalog-admin/app/interfaces/http/routes/v1"
	authroute "menlo.ai/catalog-admin/app/interfaces/http/routes/v1/auth"
	"menlo.ai/catalog-admin/app/interfaces/http/routes/v1/products"
	"menlo.ai/catalog-admin/app/interfaces/http/routes/v1/users"
	"menlo.ai/catalog-admin/app/utils/httpclients/dummyjson"
	"menlo.ai/catalog-admin/config/environment_variables"
)

type upstream struct {
	mu    sync.Mutex
	calls map[string]int
	fail  bool
}

func (u *upstream) count(path string) int {
	u.mu.Lock()
	defer u.mu.Unlock()
	return u.calls[path]
}

func (u *upstream) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	u.mu.Lock()
	u.calls[r.URL.Path]++
	fail := u.fail
	u.mu.Unlock()

	w.Header().Set("Content-Type", "application/json")
	switch {
	case r.URL.Path == "/auth/login":
		var req dummyjson.LoginRequest
		_ = json.NewDecoder(r.Body).Decode(&req)
		if req.Username != "emilys" || req.Password != "emilyspass" {
			w.WriteHeader(http.StatusBadRequest)
			_, _ = w.Write([]byte(`{"message":"Invalid credentials"}`))
			return
		}
		_, _ = w.Write([]byte(`{"id":1,"username":"emilys","firstName":"Emily","lastName":"Johnson","email":"emily@x.dummyjson.com","accessToken":"remote-access","refreshToken":"remote-refresh"}`))
	case fail:
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte(`{"message":"catalog offline"}`))
	case r.URL.Path == "/products":
		_, _ = w.Write([]byte(`{"products":[{"id":1,"title":"Essence Mascara","price":9.99,"category":"beauty","thumbnail":"t.png"}],"total":194,"skip":0,"limit":10}`))
	case r.URL.Path == "/products/search":
		_, _ = w.Write([]byte(`{"products":[{"id":2,"title":"Phone","price":299,"category":"smartphones","images":["a.png"]}],"total":1,"skip":0,"limit":10}`))
	case r.URL.Path == "/products/1":
		_, _ = w.Write([]byte(`{"id":1,"title":"Essence Mascara","price":9.99,"category":"beauty"}`))
	case r.URL.Path == "/products/404":
		w.WriteHeader(http.StatusNotFound)
		_, _ = w.Write([]byte(`{"message":"Product with id '404' not found"}`))
	case r.URL.Path == "/users":
		_, _ = w.Write([]byte(`{"users":[{"id":1,"firstName":"Emily","lastName":"Johnson","email":"emily@x.dummyjson.com"}],"total":208,"skip":0,"limit":10}`))
	default:
		w.WriteHeader(http.StatusNotFound)
		_, _ = w.Write([]byte(`{"message":"not found"}`))
	}
}

type fixture struct {
	handler  http.Handler
	upstream *upstream
	registry *workspace.Registry
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	gin.SetMode(gin.TestMode)
	environment_variables.EnvironmentVariables.JWT_SECRET = []byte("test-secret")

	up := &upstream{calls: make(map[string]int)}
	remote := httptest.NewServer(up)
	t.Cleanup(remote.Close)

	client := dummyjson.NewClient(remote.URL)
	authService := auth.NewAuthService(client, cache.NewMemorySessionRepository(), auth.DefaultSessionTTL)
	registry := workspace.NewRegistry(client)
	v1Route := v1.NewV1Route(
		authroute.NewAuthRoute(authService, registry),
		products.NewProductsRoute(),
		users.NewUsersRoute(),
	)
	httpServer := server.NewHttpServer(v1Route, landing.NewLandingRoute(), authService, registry)
	return &fixture{
		handler:  httpServer.Handler(),
		upstream: up,
		registry: registry,
	}
}

func (f *fixture) do(method, path string, body []byte, cookie *http.Cookie) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, bytes.NewReader(body))
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if cookie != nil {
		req.AddCookie(cookie)
	}
	w := httptest.NewRecorder()
	f.handler.ServeHTTP(w, req)
	return w
}

func sessionCookie(t *testing.T, w *httptest.ResponseRecorder) *http.Cookie {
	t.Helper()
	for _, c := range w.Result().Cookies() {
		if c.Name == auth.SessionCookieKey && c.Value != "" {
			return c
		}
	}
	t.Fatalf("expected %s cookie in response", auth.SessionCookieKey)
	return nil
}

func (f *fixture) login(t *testing.T) (*http.Cookie, authroute.LoginResponse) {
	t.Helper()
	w := f.do(http.MethodPost, "/v1/auth/login", []byte(`{"username":"emilys","password":"emilyspass"}`), nil)
	if w.Code != http.StatusOK {
		t.Fatalf("login expected 200, got %d: %s", w.Code, w.Body.String())
	}
	var resp authroute.LoginResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode login response: %v", err)
	}
	return sessionCookie(t, w), resp
}

type listBody struct {
	Items []struct {
		ID    int    `json:"id"`
		Title string `json:"title"`
		Name  string `json:"name"`
		Price string `json:"price"`
	} `json:"items"`
	Total      int     `json:"total"`
	TotalPages int     `json:"total_pages"`
	Loading    bool    `json:"loading"`
	Error      *string `json:"error"`
}

func decodeList(t *testing.T, w *httptest.ResponseRecorder) listBody {
	t.Helper()
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}
	var body listBody
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode list: %v", err)
	}
	return body
}

func TestLoginRedirectsToDashboardOnce(t *testing.T) {
	f := newFixture(t)

	cookie, resp := f.login(t)
	if !resp.Authenticated || resp.Redirect != workspace.DashboardPath {
		t.Fatalf("expected authenticated login with dashboard redirect, got %+v", resp)
	}
	if resp.Profile.Name != "Emily Johnson" {
		t.Fatalf("unexpected profile %+v", resp.Profile)
	}
	if !cookie.HttpOnly {
		t.Fatalf("session cookie must be http only")
	}

	w := f.do(http.MethodGet, "/", nil, cookie)
	if w.Code != http.StatusFound || w.Header().Get("Location") != workspace.DashboardPath {
		t.Fatalf("expected redirect to dashboard, got %d %q", w.Code, w.Header().Get("Location"))
	}

	w = f.do(http.MethodGet, "/dashboard", nil, cookie)
	if w.Code != http.StatusOK {
		t.Fatalf("dashboard expected 200, got %d", w.Code)
	}

	w = f.do(http.MethodGet, "/v1/auth/session", nil, cookie)
	if w.Code != http.StatusOK {
		t.Fatalf("session expected 200, got %d", w.Code)
	}
	if strings.Contains(w.Body.String(), "remote-access") {
		t.Fatalf("session response must not expose tokens: %s", w.Body.String())
	}
	var session authroute.SessionResponse
	if err := json.Unmarshal(w.Body.Bytes(), &session); err != nil {
		t.Fatalf("decode session: %v", err)
	}
	if !session.Authenticated || !session.HasAccessToken || !session.HasRefreshToken {
		t.Fatalf("unexpected session %+v", session)
	}
}

func TestLoginRejectsBadCredentials(t *testing.T) {
	f := newFixture(t)

	w := f.do(http.MethodPost, "/v1/auth/login", []byte(`{"username":"emilys","password":"nope"}`), nil)
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", w.Code)
	}
	w = f.do(http.MethodPost, "/v1/auth/login", []byte(`{"username":"emilys"}`), nil)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", w.Code)
	}
	if f.registry.Len() != 0 {
		t.Fatalf("failed logins must not create workspaces")
	}
}

func TestAnonymousRequests(t *testing.T) {
	f := newFixture(t)

	w := f.do(http.MethodGet, "/", nil, nil)
	if w.Code != http.StatusOK || !strings.Contains(w.Body.String(), `"authenticated":false`) {
		t.Fatalf("unexpected landing %d %s", w.Code, w.Body.String())
	}
	w = f.do(http.MethodGet, "/dashboard", nil, nil)
	if w.Code != http.StatusFound || w.Header().Get("Location") != landing.LoginPath {
		t.Fatalf("expected redirect to login, got %d %q", w.Code, w.Header().Get("Location"))
	}
	w = f.do(http.MethodGet, "/v1/products", nil, nil)
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", w.Code)
	}
	w = f.do(http.MethodGet, "/v1/users", nil, &http.Cookie{Name: auth.SessionCookieKey, Value: "forged"})
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 for forged cookie, got %d", w.Code)
	}
}

func TestProductListingIsCachedPerQuery(t *testing.T) {
	f := newFixture(t)
	cookie, _ := f.login(t)

	first := decodeList(t, f.do(http.MethodGet, "/v1/products?limit=10", nil, cookie))
	if len(first.Items) != 1 || first.Total != 194 || first.TotalPages != 20 || first.Loading || first.Error != nil {
		t.Fatalf("unexpected first page %+v", first)
	}
	if first.Items[0].Price != "9.99" {
		t.Fatalf("unexpected price %q", first.Items[0].Price)
	}

	decodeList(t, f.do(http.MethodGet, "/v1/products?limit=10&skip=0", nil, cookie))
	if got := f.upstream.count("/products"); got != 1 {
		t.Fatalf("expected one upstream list call, got %d", got)
	}

	search := decodeList(t, f.do(http.MethodGet, "/v1/products?q=phone&category=beauty", nil, cookie))
	if len(search.Items) != 1 || search.Items[0].ID != 2 {
		t.Fatalf("search must win over category, got %+v", search)
	}
	if f.upstream.count("/products/category/beauty") != 0 {
		t.Fatalf("category endpoint must not be called while searching")
	}

	w := f.do(http.MethodGet, "/v1/products?limit=0", nil, cookie)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for invalid limit, got %d", w.Code)
	}
}

func TestProductListingKeepsItemsOnFailure(t *testing.T) {
	f := newFixture(t)
	cookie, _ := f.login(t)

	decodeList(t, f.do(http.MethodGet, "/v1/products", nil, cookie))

	f.upstream.mu.Lock()
	f.upstream.fail = true
	f.upstream.mu.Unlock()

	failed := decodeList(t, f.do(http.MethodGet, "/v1/products?skip=10", nil, cookie))
	if failed.Error == nil || *failed.Error != "catalog offline" {
		t.Fatalf("expected recorded error, got %+v", failed.Error)
	}
	if len(failed.Items) != 1 || failed.Items[0].ID != 1 || failed.Loading {
		t.Fatalf("expected stale items after failure, got %+v", failed)
	}
}

func TestDetailsAndUsers(t *testing.T) {
	f := newFixture(t)
	cookie, _ := f.login(t)

	w := f.do(http.MethodGet, "/v1/products/1", nil, cookie)
	if w.Code != http.StatusOK || !strings.Contains(w.Body.String(), "Essence Mascara") {
		t.Fatalf("unexpected product detail %d %s", w.Code, w.Body.String())
	}
	w = f.do(http.MethodGet, "/v1/products/404", nil, cookie)
	if w.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", w.Code)
	}
	w = f.do(http.MethodGet, "/v1/products/abc", nil, cookie)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", w.Code)
	}

	list := decodeList(t, f.do(http.MethodGet, "/v1/users?category=beauty", nil, cookie))
	if len(list.Items) != 1 || list.Items[0].Name != "Emily Johnson" || list.Total != 208 {
		t.Fatalf("unexpected users %+v", list)
	}
}

func TestLogoutDropsWorkspace(t *testing.T) {
	f := newFixture(t)
	cookie, _ := f.login(t)
	if f.registry.Len() != 1 {
		t.Fatalf("expected one workspace, got %d", f.registry.Len())
	}

	w := f.do(http.MethodPost, "/v1/auth/logout", nil, cookie)
	if w.Code != http.StatusOK {
		t.Fatalf("logout expected 200, got %d", w.Code)
	}
	if f.registry.Len() != 0 {
		t.Fatalf("expected workspace removed on logout")
	}

	w = f.do(http.MethodGet, "/v1/products", nil, cookie)
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 after logout, got %d", w.Code)
	}
}

func TestHealthcheckAndVersion(t *testing.T) {
	f := newFixture(t)

	w := f.do(http.MethodGet, "/healthcheck", nil, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("healthcheck expected 200, got %d", w.Code)
	}
	w = f.do(http.MethodGet, "/v1/version", nil, nil)
	if w.Code != http.StatusOK || !strings.Contains(w.Body.String(), `"version"`) {
		t.Fatalf("unexpected version response %d %s", w.Code, w.Body.String())
	}
}
