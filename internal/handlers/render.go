package handlers

import (
	"net/http"
	"strconv"

	"sitesketch-service/pkg/common"

	"github.com/gin-gonic/gin"
)

func respondError(c *gin.Context, err error) {
	appErr := common.AsAppError(err)
	c.JSON(appErr.Status, common.NewAppErrorResponse(appErr))
}

func pathId(c *gin.Context, name string) (int, bool) {
	id, err := strconv.Atoi(c.Param(name))
	if err != nil || id <= 0 {
		c.JSON(http.StatusBadRequest, common.NewErrorResponse("Invalid "+name, http.StatusBadRequest))
		return 0, false
	}
	return id, true
}

func queryInt(c *gin.Context, name string) int {
	v, _ := strconv.Atoi(c.Query(name))
	return v
}
