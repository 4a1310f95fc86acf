// Package param はパスパラメータのバインドを提供します。
package param

import (
	"github.com/gin-gonic/gin"
	"github.com/oapi-codegen/runtime"

	"account_backend/internal/platform/apperr"
)

// PathID はパスパラメータ name を非負整数のIDとしてバインドします。
// 失敗した場合は name をフィールド名とするリクエスト検証エラーを返します。
func PathID(c *gin.Context, name string) (uint, error) {
	var id int64
	err := runtime.BindStyledParameterWithOptions("simple", name, c.Param(name), &id,
		runtime.BindStyledParameterOptions{
			ParamLocation: runtime.ParamLocationPath,
			Explode:       false,
			Required:      true,
		})
	if err != nil || id < 0 {
		return 0, apperr.InvalidParam(name, "must be a non-negative integer")
	}
	return uint(id), nil
}
