/*
Package httputil 控制器共用的参数解析
*/
package httputil

import (
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
)

// UserIDHeader 调用者身份；鉴权不在本服务内，由网关注入
const UserIDHeader = "X-User-ID"

// ActorID 调用者 ID：请求头优先，其次是请求体中的字段
func ActorID(ctx *gin.Context, fromBody string) string {
	if id := strings.TrimSpace(ctx.GetHeader(UserIDHeader)); id != "" {
		return id
	}
	return strings.TrimSpace(fromBody)
}

// Page 解析 ?page=，缺省为 1
// 小于 1 的页码原样传给仓储，由仓储返回空页
func Page(ctx *gin.Context) (int, error) {
	raw := ctx.Query("page")
	if raw == "" {
		return 1, nil
	}
	return strconv.Atoi(raw)
}
