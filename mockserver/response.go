package mockserver

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// Envelope codes and messages the backend answers with. Failures still use
// HTTP 200; the code carries the outcome.
const (
	CodeOK           = 200
	CodeBadRequest   = 400
	CodeUnauthorized = 401
	CodeNotFound     = 404
	CodeServerError  = 500

	MsgOK           = "操作成功"
	MsgUnauthorized = "未授权"
	MsgOutOfStock   = "库存不足"
	MsgServerError  = "服务器内部错误"
)

// Response is the standard envelope.
type Response struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
	Data    any    `json:"data"`
}

// Page is a paged listing.
type Page struct {
	List      any   `json:"list"`
	Total     int64 `json:"total"`
	Page      int   `json:"page"`
	PageSize  int   `json:"pageSize"`
	TotalPage int   `json:"totalPage"`
}

// respondOK sends code 200 wrapping data.
func respondOK(c *gin.Context, data any) {
	c.JSON(http.StatusOK, Response{Code: CodeOK, Message: MsgOK, Data: data})
}

// respondMessage sends code 200 with a custom message.
func respondMessage(c *gin.Context, message string, data any) {
	c.JSON(http.StatusOK, Response{Code: CodeOK, Message: message, Data: data})
}

// respondCreated answers a create with HTTP 201. The envelope code stays 200.
func respondCreated(c *gin.Context, message string, data any) {
	c.JSON(http.StatusCreated, Response{Code: CodeOK, Message: message, Data: data})
}

// respondPage sends a page of items.
func respondPage(c *gin.Context, list any, total int64, page, pageSize int) {
	totalPage := int(total) / pageSize
	if int(total)%pageSize > 0 {
		totalPage++
	}
	respondOK(c, Page{List: list, Total: total, Page: page, PageSize: pageSize, TotalPage: totalPage})
}

// respondFail sends a failure envelope and aborts the chain.
func respondFail(c *gin.Context, code int, message string) {
	c.AbortWithStatusJSON(http.StatusOK, Response{Code: code, Message: message})
}
