package shared

import (
	"github.com/chowline/internal/http/response"

	"github.com/gin-gonic/gin"
)

// GetContextUintWithKeys 读取鉴权中间件写入的账号 ID，缺失返回 401，类型异常返回对应错误键
func GetContextUintWithKeys(c *gin.Context, key, invalidKey, typeInvalidKey string) (uint, bool) {
	value, exists := c.Get(key)
	if !exists {
		RespondError(c, response.CodeUnauthorized, "error.unauthorized", nil)
		return 0, false
	}
	id, known, valid := toUint(value)
	switch {
	case !known:
		RespondError(c, response.CodeInternal, typeInvalidKey, nil)
		return 0, false
	case !valid:
		RespondError(c, response.CodeBadRequest, invalidKey, nil)
		return 0, false
	}
	return id, true
}

// toUint 返回 (值, 类型可识别, 值合法)
func toUint(value interface{}) (uint, bool, bool) {
	switch v := value.(type) {
	case uint:
		return v, true, v > 0
	case uint64:
		return uint(v), true, v > 0
	case int:
		return uint(v), true, v > 0
	case float64:
		return uint(v), true, v > 0 && v == float64(uint(v))
	default:
		return 0, false, false
	}
}
