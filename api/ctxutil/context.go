package ctxutil

import (
	"context"

	"forum/api/response"
	"forum/infrastructure/persistence"

	"github.com/gin-gonic/gin"
)

// WithRequestID 把 gin 上的请求 ID 带进 context，GORM 日志会取出它
func WithRequestID(ctx *gin.Context) context.Context {
	requestID := response.GetRequestID(ctx)
	return persistence.ContextWithRequestID(ctx.Request.Context(), requestID)
}

func RequestIDFromContext(ctx context.Context) string {
	return persistence.RequestIDFromContext(ctx)
}
