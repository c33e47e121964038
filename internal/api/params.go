package api

import (
	"strconv"

	"github.com/gin-gonic/gin"
)

// ParamID parses a positive integer path parameter, writing a 400 when it is not one.
func ParamID(c *gin.Context, name string) (int, bool) {
	id, err := strconv.Atoi(c.Param(name))
	if err != nil || id <= 0 {
		BadRequest(c, "invalid "+name)
		return 0, false
	}
	return id, true
}
