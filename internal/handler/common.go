package handler

import (
	"errors"
	"log"
	"net/http"
	"strconv"

	"backend/pkg/apperror"
	"backend/pkg/response"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// pathID parses the :id path parameter. On failure it writes the 400 itself
// and reports false.
func pathID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, "invalid id: "+c.Param("id")))
		return 0, false
	}
	return id, true
}

// respondError maps a service error to a transport status. Domain errors keep
// their message; anything unexpected becomes an opaque 500.
func respondError(c *gin.Context, err error) {
	switch {
	case apperror.IsReferenceNotFound(err):
		c.JSON(http.StatusNotFound, response.Error(http.StatusNotFound, err.Error()))
	case apperror.IsConflict(err):
		c.JSON(http.StatusConflict, response.Error(http.StatusConflict, err.Error()))
	case apperror.IsValidation(err):
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, err.Error()))
	case errors.Is(err, gorm.ErrDuplicatedKey):
		c.JSON(http.StatusConflict, response.Error(http.StatusConflict, "duplicate value violates a uniqueness constraint"))
	default:
		log.Printf("internal error: %v", err)
		c.JSON(http.StatusInternalServerError, response.Error(http.StatusInternalServerError, "internal server error"))
	}
}

func respondNotFound(c *gin.Context, what string, id int64) {
	c.JSON(http.StatusNotFound, response.Error(http.StatusNotFound, what+" "+strconv.FormatInt(id, 10)+" not found"))
}

func respondBadRequest(c *gin.Context, err error) {
	c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, "invalid request payload: "+err.Error()))
}
