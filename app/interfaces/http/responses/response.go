package responses

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"menlo.ai/catalog-admin/app/domain/common"
	"menlo.ai/catalog-admin/app/utils/httpclients/dummyjson"
	"menlo.ai/catalog-admin/config"
)

type ErrorResponse struct {
	Code          string `json:"code"`
	Error         string `json:"error"`
	ErrorInstance error  `json:"-"`
}

type GeneralResponse[T any] struct {
	Status string `json:"status"`
	Result T      `json:"result"`
}

// ListResponse mirrors the visible state of a resource store.
type ListResponse[T any] struct {
	Status     string  `json:"status"`
	Items      []T     `json:"items"`
	Total      int     `json:"total"`
	Skip       int     `json:"skip"`
	Limit      int     `json:"limit"`
	TotalPages int     `json:"total_pages"`
	Loading    bool    `json:"loading"`
	Error      *string `json:"error"`
}

const ResponseCodeOk = "000000"

// AbortWithError writes err as an ErrorResponse with the given status.
func AbortWithError(reqCtx *gin.Context, status int, err *common.Error) {
	reqCtx.AbortWithStatusJSON(status, ErrorResponse{
		Code:          err.Code,
		Error:         err.Error(),
		ErrorInstance: err.Err,
	})
}

// RemoteStatus maps a catalog API failure to the status returned to the caller.
func RemoteStatus(err error) int {
	var apiErr *dummyjson.APIError
	if errors.As(err, &apiErr) && apiErr.StatusCode == http.StatusNotFound {
		return http.StatusNotFound
	}
	return http.StatusBadGateway
}

func NewCookieWithSecurity(name string, value string, expires time.Time) *http.Cookie {
	if config.IsDev() {
		return &http.Cookie{
			Name:     name,
			Value:    value,
			Expires:  expires,
			HttpOnly: true,
			Secure:   false,
			Path:     "/",
			SameSite: http.SameSiteLaxMode,
		}
	}
	return &http.Cookie{
		Name:     name,
		Value:    value,
		Expires:  expires,
		HttpOnly: true,
		Secure:   true,
		Path:     "/",
		SameSite: http.SameSiteStrictMode,
	}
}

// ExpiredCookie removes the named cookie from the browser.
func ExpiredCookie(name string) *http.Cookie {
	cookie := NewCookieWithSecurity(name, "", time.Unix(0, 0))
	cookie.MaxAge = -1
	return cookie
}
