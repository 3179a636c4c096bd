package handler

import (
	"errors"
	"net/http"

	"github.com/blues/launchpad/internal/logger"
	"github.com/blues/launchpad/internal/logic"
	"github.com/blues/launchpad/internal/store"
	"github.com/blues/launchpad/internal/validation"
	"github.com/gin-gonic/gin"
)

// SuccessResponse 成功响应
func SuccessResponse(c *gin.Context, statusCode int, message string, data interface{}) {
	c.JSON(statusCode, Response{
		Success: true,
		Message: message,
		Data:    data,
	})
}

// ErrorResponse 错误响应
func ErrorResponse(c *gin.Context, statusCode int, message string) {
	c.JSON(statusCode, Response{
		Success: false,
		Message: message,
		Data:    nil,
	})
}

// ValidationErrorResponse 校验失败响应，data 为逐字段的错误列表
func ValidationErrorResponse(c *gin.Context, result validation.Result) {
	c.JSON(http.StatusBadRequest, Response{
		Success: false,
		Message: "validation failed",
		Data:    result,
	})
}

// handleError 将logic层错误映射为HTTP响应，未识别的错误统一返回 fallback 文案
func handleError(c *gin.Context, err error, fallback string) {
	var verr *validation.Error
	switch {
	case errors.As(err, &verr):
		ValidationErrorResponse(c, verr.Result)
	case errors.Is(err, logic.ErrWalletRequired):
		ErrorResponse(c, http.StatusUnauthorized, "Please connect your wallet")
	case errors.Is(err, store.ErrProjectNotFound):
		ErrorResponse(c, http.StatusNotFound, "Project not found")
	case errors.Is(err, logic.ErrProjectNotActive):
		ErrorResponse(c, http.StatusConflict, "Project is not accepting contributions")
	case errors.Is(err, store.ErrLoading):
		ErrorResponse(c, http.StatusServiceUnavailable, "Projects are still loading. Please try again.")
	case errors.Is(err, logic.ErrInvalidCurrency), errors.Is(err, logic.ErrInvalidStatus):
		ErrorResponse(c, http.StatusBadRequest, err.Error())
	default:
		logger.Error("%s %s: %v", c.Request.Method, c.FullPath(), err)
		ErrorResponse(c, http.StatusInternalServerError, fallback)
	}
}
