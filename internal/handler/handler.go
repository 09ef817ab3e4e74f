package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/klasurapp/backend/internal/model"
	"github.com/klasurapp/backend/internal/repository"
	"github.com/klasurapp/backend/internal/response"
	"github.com/klasurapp/backend/internal/service"
)

// failFromError maps service and repository errors onto the API error
// vocabulary.
func failFromError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, repository.ErrNotFound), errors.Is(err, repository.ErrNoRowsAffected):
		response.Fail(c, http.StatusNotFound, response.ErrNotFound)
	case errors.Is(err, repository.ErrConstraint):
		response.Fail(c, http.StatusConflict, response.ErrConflict)
	case errors.Is(err, model.ErrUnknownTaskFormat):
		response.Fail(c, http.StatusBadRequest, response.ErrInvalidTaskFormat)
	case errors.Is(err, model.ErrInvalidClosedTaskType):
		response.Fail(c, http.StatusBadRequest, response.ErrInvalidClosedType)
	case errors.Is(err, service.ErrFormatMismatch):
		response.Fail(c, http.StatusBadRequest, response.ErrFormatMismatch)
	default:
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
	}
}

// paramID parses the :id path parameter. On failure it writes the error
// response and reports false.
func paramID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.Fail(c, http.StatusBadRequest, response.ErrInvalidID)
		return 0, false
	}
	return id, true
}
