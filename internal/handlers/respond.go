package handlers

import (
	"strconv"

	apierrors "github.com/6631503004KanyanatSawatdiwong/RoomieRules/internal/errors"
	"github.com/gin-gonic/gin"
)

// respondData wraps a payload in the `{success:true, data}` envelope.
func respondData(c *gin.Context, status int, data gin.H) {
	c.JSON(status, gin.H{
		"success": true,
		"data":    data,
	})
}

// paramID parses a numeric :id path parameter. On failure it writes a 400
// response and returns false.
func paramID(c *gin.Context, name, label string) (uint64, bool) {
	id, err := strconv.ParseUint(c.Param(name), 10, 64)
	if err != nil {
		apierrors.BadRequest(c, "Invalid "+label+" ID")
		return 0, false
	}
	return id, true
}
