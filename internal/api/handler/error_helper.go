package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	pkgerrors "rotation-status/backend/pkg/errors"
	"rotation-status/backend/pkg/response"
)

// 业务错误码
const (
	codeInvalidParam = 10001
	codeInvalidDate  = 20001
	codeNotFound     = 20401
	codeInternal     = 50000
)

// writeError 按错误类型映射 HTTP 状态码：InvalidInput → 400，NotFound → 404，其余 → 500
// 500 时直接返回底层错误信息
func writeError(c *gin.Context, err error) {
	_ = c.Error(err)
	switch pkgerrors.KindOf(err) {
	case pkgerrors.KindInvalidInput:
		response.BadRequest(c, codeInvalidDate, err.Error())
	case pkgerrors.KindNotFound:
		response.NotFound(c, codeNotFound, err.Error())
	default:
		response.Error(c, http.StatusInternalServerError, codeInternal, err.Error())
	}
}
