package response

import "github.com/gin-gonic/gin"

// Write serializes env with the status it carries.
func Write(c *gin.Context, env Envelope) {
	c.JSON(env.HTTPStatus(), env)
}

// Abort serializes env and stops the remaining handlers.
func Abort(c *gin.Context, env Envelope) {
	c.AbortWithStatusJSON(env.HTTPStatus(), env)
}
