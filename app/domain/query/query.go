package query

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
)

const (
	// DefaultLimit matches the page size of the dashboard listings.
	DefaultLimit = 10
	// CategoryAll selects the unfiltered listing.
	CategoryAll = "all"
)

var validate = validator.New()

// Params selects one page of a resource.
type Params struct {
	Q        string  `form:"q"`
	Skip     int     `form:"skip" validate:"gte=0"`
	Limit    int     `form:"limit" validate:"gt=0"`
	Category *string `form:"category"`
}

func (p Params) Validate() error {
	if err := validate.Struct(p); err != nil {
		return fmt.Errorf("invalid query parameters: %w", err)
	}
	return nil
}

// NormalizedCategory folds a missing or empty category into CategoryAll.
func (p Params) NormalizedCategory() string {
	if p.Category == nil || *p.Category == "" {
		return CategoryAll
	}
	return *p.Category
}

// CategoryFilter returns the category when it narrows the listing.
func (p Params) CategoryFilter() (string, bool) {
	category := p.NormalizedCategory()
	if category == CategoryAll {
		return "", false
	}
	return category, true
}

// BuildKey encodes kind and params as kind|q|skip|limit|category. String fields
// are quoted so a delimiter inside a value never lines up with a field boundary.
func BuildKey(kind string, p Params) string {
	var b strings.Builder
	b.WriteString(strconv.Quote(kind))
	b.WriteString("|q=")
	b.WriteString(strconv.Quote(p.Q))
	b.WriteString("|skip=")
	b.WriteString(strconv.Itoa(p.Skip))
	b.WriteString("|limit=")
	b.WriteString(strconv.Itoa(p.Limit))
	b.WriteString("|category=")
	b.WriteString(strconv.Quote(p.NormalizedCategory()))
	return b.String()
}

// GetParamsFromQuery reads q, skip, limit and category from the request. A
// 1-based page is accepted instead of skip.
func GetParamsFromQuery(reqCtx *gin.Context) (*Params, error) {
	limitStr := reqCtx.DefaultQuery("limit", strconv.Itoa(DefaultLimit))
	skipStr := reqCtx.Query("skip")
	pageStr := reqCtx.Query("page")

	limit, err := strconv.Atoi(limitStr)
	if err != nil || limit < 1 {
		return nil, fmt.Errorf("invalid limit number")
	}

	skip := 0
	if skipStr != "" {
		skip, err = strconv.Atoi(skipStr)
		if err != nil || skip < 0 {
			return nil, fmt.Errorf("invalid skip number")
		}
	} else if pageStr != "" {
		page, err := strconv.Atoi(pageStr)
		if err != nil || page < 1 {
			return nil, fmt.Errorf("invalid page number")
		}
		skip = (page - 1) * limit
	}

	params := &Params{
		Q:     reqCtx.Query("q"),
		Skip:  skip,
		Limit: limit,
	}
	if category, ok := reqCtx.GetQuery("category"); ok {
		params.Category = &category
	}
	return params, nil
}

// TotalPages is the number of pages of size limit needed for total items, at least one.
func TotalPages(total int, limit int) int {
	if total <= 0 || limit <= 0 {
		return 1
	}
	return (total + limit - 1) / limit
}
