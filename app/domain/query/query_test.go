package query

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"menlo.ai/catalog-admin/app/utils/ptr"
)

func TestBuildKeyIsDeterministic(t *testing.T) {
	a := Params{Q: "phone", Skip: 10, Limit: 10, Category: ptr.ToString("laptops")}
	b := Params{Category: ptr.ToString("laptops"), Limit: 10, Skip: 10, Q: "phone"}
	if BuildKey("products", a) != BuildKey("products", b) {
		t.Fatalf("expected identical keys for identical params")
	}
}

func TestBuildKeyNormalizesCategory(t *testing.T) {
	base := Params{Skip: 0, Limit: 10}
	withAll := Params{Skip: 0, Limit: 10, Category: ptr.ToString("all")}
	withEmpty := Params{Skip: 0, Limit: 10, Category: ptr.ToString("")}

	key := BuildKey("products", base)
	if BuildKey("products", withAll) != key {
		t.Fatalf("category all should collide with a missing category")
	}
	if BuildKey("products", withEmpty) != key {
		t.Fatalf("empty category should collide with a missing category")
	}
}

func TestBuildKeyDistinguishesQueries(t *testing.T) {
	cases := []struct {
		name string
		a, b Params
	}{
		{
			name: "dash in query vs skip",
			a:    Params{Q: "a-1", Skip: 0, Limit: 10},
			b:    Params{Q: "a", Skip: 1, Limit: 10},
		},
		{
			name: "delimiter in query",
			a:    Params{Q: `a|skip=1`, Skip: 0, Limit: 10},
			b:    Params{Q: "a", Skip: 1, Limit: 10},
		},
		{
			name: "quote in query",
			a:    Params{Q: `a"|q="b`, Skip: 0, Limit: 10},
			b:    Params{Q: "a", Skip: 0, Limit: 10, Category: ptr.ToString("b")},
		},
		{
			name: "skip vs limit",
			a:    Params{Skip: 10, Limit: 20},
			b:    Params{Skip: 20, Limit: 10},
		},
		{
			name: "category",
			a:    Params{Limit: 10, Category: ptr.ToString("laptops")},
			b:    Params{Limit: 10, Category: ptr.ToString("skincare")},
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if BuildKey("products", tc.a) == BuildKey("products", tc.b) {
				t.Fatalf("expected distinct keys, both were %s", BuildKey("products", tc.a))
			}
		})
	}

	if BuildKey("products", Params{Limit: 10}) == BuildKey("users", Params{Limit: 10}) {
		t.Fatalf("expected resource kind to be part of the key")
	}
}

func TestCategoryFilter(t *testing.T) {
	if _, ok := (Params{}).CategoryFilter(); ok {
		t.Fatalf("missing category should not filter")
	}
	if _, ok := (Params{Category: ptr.ToString("all")}).CategoryFilter(); ok {
		t.Fatalf("category all should not filter")
	}
	category, ok := (Params{Category: ptr.ToString("laptops")}).CategoryFilter()
	if !ok || category != "laptops" {
		t.Fatalf("expected laptops filter, got %q %v", category, ok)
	}
}

func TestValidate(t *testing.T) {
	if err := (Params{Skip: 0, Limit: 1}).Validate(); err != nil {
		t.Fatalf("expected valid params, got %v", err)
	}
	if err := (Params{Skip: -1, Limit: 10}).Validate(); err == nil {
		t.Fatalf("expected negative skip to fail")
	}
	if err := (Params{Skip: 0, Limit: 0}).Validate(); err == nil {
		t.Fatalf("expected zero limit to fail")
	}
}

func TestGetParamsFromQuery(t *testing.T) {
	gin.SetMode(gin.TestMode)
	cases := []struct {
		url          string
		expectErr    bool
		expectSkip   int
		expectLimit  int
		expectQ      string
		expectFilter string
	}{
		{url: "/products", expectSkip: 0, expectLimit: DefaultLimit},
		{url: "/products?page=3", expectSkip: 20, expectLimit: DefaultLimit},
		{url: "/products?page=2&limit=5", expectSkip: 5, expectLimit: 5},
		{url: "/products?skip=7&page=3", expectSkip: 7, expectLimit: DefaultLimit},
		{url: "/products?q=phone&category=laptops", expectLimit: DefaultLimit, expectQ: "phone", expectFilter: "laptops"},
		{url: "/products?limit=0", expectErr: true},
		{url: "/products?skip=-1", expectErr: true},
		{url: "/products?page=zero", expectErr: true},
	}
	for _, tc := range cases {
		recorder := httptest.NewRecorder()
		ctx, _ := gin.CreateTestContext(recorder)
		ctx.Request, _ = http.NewRequest(http.MethodGet, tc.url, nil)

		params, err := GetParamsFromQuery(ctx)
		if tc.expectErr {
			if err == nil {
				t.Fatalf("%s: expected error", tc.url)
			}
			continue
		}
		if err != nil {
			t.Fatalf("%s: unexpected error %v", tc.url, err)
		}
		if params.Skip != tc.expectSkip || params.Limit != tc.expectLimit || params.Q != tc.expectQ {
			t.Fatalf("%s: unexpected params %+v", tc.url, params)
		}
		filter, _ := params.CategoryFilter()
		if filter != tc.expectFilter {
			t.Fatalf("%s: expected filter %q, got %q", tc.url, tc.expectFilter, filter)
		}
	}
}

func TestTotalPages(t *testing.T) {
	if TotalPages(0, 10) != 1 {
		t.Fatalf("expected one page for an empty result")
	}
	if TotalPages(194, 10) != 20 {
		t.Fatalf("expected 20 pages")
	}
	if TotalPages(30, 10) != 3 {
		t.Fatalf("expected 3 pages")
	}
}
