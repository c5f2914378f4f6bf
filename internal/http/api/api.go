package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Nixie-Tech-LLC/athan-widget/internal/http/middleware"
)

type APIError struct {
	Code    int
	Message string
}

type HandlerFuncWithPlatform func(ctx *gin.Context, platform string) (any, *APIError)
type HandlerFunc func(ctx *gin.Context) (any, *APIError)

func ResolveEndpointWithPlatform(h HandlerFuncWithPlatform) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		platform, ok := middleware.GetPlatform(ctx)
		if !ok {
			ctx.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
			return
		}

		result, apiErr := h(ctx, platform)
		if apiErr != nil {
			ctx.JSON(apiErr.Code, gin.H{"error": apiErr.Message})
			return
		}

		ctx.JSON(http.StatusOK, result)
	}
}

func ResolveEndpoint(h HandlerFunc) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		result, apiErr := h(ctx)
		if apiErr != nil {
			ctx.JSON(apiErr.Code, gin.H{"error": apiErr.Message})
			return
		}

		ctx.JSON(http.StatusOK, result)
	}
}
