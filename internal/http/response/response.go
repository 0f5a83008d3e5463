package response

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// requestIDKey 与路由中间件写入的上下文键一致
const requestIDKey = "request_id"

// Response 统一响应信封，HTTP 状态恒为 200，业务结果看 status_code
type Response struct {
	StatusCode int         `json:"status_code"`
	Msg        string      `json:"msg"`
	Data       interface{} `json:"data"`
	Pagination *Pagination `json:"pagination,omitempty"`
}

// Pagination 分页信息
type Pagination struct {
	Page      int   `json:"page"`
	PageSize  int   `json:"page_size"`
	Total     int64 `json:"total"`
	TotalPage int64 `json:"total_page"`
}

func write(c *gin.Context, body Response) {
	c.JSON(http.StatusOK, body)
}

// Success 成功响应
func Success(c *gin.Context, data interface{}) {
	write(c, Response{StatusCode: CodeOK, Msg: "success", Data: data})
}

// SuccessWithPage 列表响应，附带分页信息
func SuccessWithPage(c *gin.Context, data interface{}, pagination Pagination) {
	write(c, Response{StatusCode: CodeOK, Msg: "success", Data: data, Pagination: &pagination})
}

// Error 失败响应，data 中带上 request_id 便于排查
func Error(c *gin.Context, statusCode int, msg string) {
	write(c, Response{StatusCode: statusCode, Msg: msg, Data: requestIDData(c)})
}

func Unauthorized(c *gin.Context, msg string) {
	Error(c, CodeUnauthorized, msg)
}

func Forbidden(c *gin.Context, msg string) {
	Error(c, CodeForbidden, msg)
}

// NewPagination 由总数推算总页数；pageSize<=0 时总页数为 0
func NewPagination(page, pageSize int, total int64) Pagination {
	p := Pagination{Page: page, PageSize: pageSize, Total: total}
	if pageSize > 0 {
		size := int64(pageSize)
		p.TotalPage = (total + size - 1) / size
	}
	return p
}

func requestIDData(c *gin.Context) interface{} {
	if c == nil {
		return nil
	}
	id := c.GetString(requestIDKey)
	if id == "" {
		return nil
	}
	return gin.H{requestIDKey: id}
}
