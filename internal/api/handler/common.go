package handler

import (
	"Microblog/internal/pkg/response"
	"Microblog/internal/pkg/util"
	"Microblog/internal/service"

	"github.com/gin-gonic/gin"
)

// idParam 读取并校验路径中的实体 id，校验失败时已写入响应
func idParam(c *gin.Context, name string) (string, bool) {
	id := c.Param(name)
	if !util.ValidateID(id) {
		response.Error(c, service.ErrParamInvalid)
		return "", false
	}
	return id, true
}
