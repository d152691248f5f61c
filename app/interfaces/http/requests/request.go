package requests

import (
	"fmt"
	"strconv"

	"github.com/gin-gonic/gin"
)

func GetIntParam(reqCtx *gin.Context, paramName string) (int, error) {
	param := reqCtx.Param(paramName)
	if param == "" {
		return 0, fmt.Errorf("invalid param")
	}
	value, err := strconv.Atoi(param)
	if err != nil || value < 1 {
		return 0, fmt.Errorf("invalid param %s", paramName)
	}
	return value, nil
}

func GetCookie(reqCtx *gin.Context, name string) (string, bool) {
	value, err := reqCtx.Cookie(name)
	if err != nil || value == "" {
		return "", false
	}
	return value, true
}
