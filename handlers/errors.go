package handlers

import (
	"errors"
	"net/http"

	"github.com/K9173A/todoapp/models"
	"github.com/K9173A/todoapp/pagination"
	"github.com/K9173A/todoapp/templates"
	"github.com/K9173A/todoapp/utils"
	"github.com/gin-gonic/gin"
)

// statusFor maps an error to the HTTP status and the message shown to the
// user.
func statusFor(err error) (int, string) {
	var sortErr *pagination.UnknownSortKeyError
	var verr *models.ValidationError

	switch {
	case errors.Is(err, models.ErrNotFound):
		return http.StatusNotFound, "Task not found"
	case errors.As(err, &sortErr):
		return http.StatusBadRequest, "Unknown sort order " + sortErr.Key
	case errors.As(err, &verr):
		return http.StatusBadRequest, verr.Error()
	default:
		return http.StatusInternalServerError, "Something went wrong, please try again later"
	}
}

// failFragment answers a script request with {"error": ...}.
func (h *TaskHandler) failFragment(c *gin.Context, err error) {
	_ = c.Error(err)
	status, msg := statusFor(err)
	utils.ResponseWithError(c, status, msg)
}

// failPage renders the HTML error page.
func (h *TaskHandler) failPage(c *gin.Context, err error) {
	_ = c.Error(err)
	status, msg := statusFor(err)
	c.HTML(status, templates.Error, gin.H{
		"Status":  status,
		"Title":   http.StatusText(status),
		"Message": msg,
	})
	c.Abort()
}
