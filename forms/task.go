// Package forms binds and validates the task form submitted by the browser.
package forms

import (
	"errors"
	"fmt"
	"strings"

	"github.com/K9173A/todoapp/models"
	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

// Keys of form level messages in TaskForm.Errors.
const (
	FormErrorKey = "form"
	CSRFFieldKey = "csrf_token"
)

const (
	msgRequired    = "This field is required."
	msgTitleLength = "Field must be between 3 and 48 characters long."
	msgChoice      = "Not a valid choice."
	msgCSRF        = "The CSRF token is missing or invalid."
	msgMalformed   = "The submitted form could not be read."
)

// TokenValidator checks the anti-forgery token of a submission.
type TokenValidator interface {
	Validate(token string) error
}

// TaskForm is the create/edit form for a task.
type TaskForm struct {
	Title       string          `form:"title" binding:"required,min=3,max=48"`
	Description string          `form:"description"`
	Status      models.Status   `form:"status" binding:"min=1,max=3"`
	Priority    models.Priority `form:"priority" binding:"min=0,max=4"`
	CSRFToken   string          `form:"csrf_token"`

	Errors map[string][]string `form:"-"`
}

// New returns a blank form with the default choices selected.
func New() *TaskForm {
	return &TaskForm{
		Status:   models.StatusTodo,
		Priority: models.PriorityNotSet,
	}
}

// FromTask returns a form prepopulated with t.
func FromTask(t models.Task) *TaskForm {
	return &TaskForm{
		Title:       t.Title,
		Description: t.Description,
		Status:      t.Status,
		Priority:    t.Priority,
	}
}

// Bind fills f from the submitted form body and validates it. It reports
// whether the form is valid; messages are left in f.Errors.
func (f *TaskForm) Bind(c *gin.Context, tokens TokenValidator) bool {
	f.Errors = nil

	err := c.ShouldBindWith(f, binding.Form)
	f.collect(err)

	if tokens != nil {
		if err := tokens.Validate(f.CSRFToken); err != nil {
			f.addError(CSRFFieldKey, msgCSRF)
		}
	}

	if err == nil {
		var verr *models.ValidationError
		if errors.As(f.Fields().Validate(), &verr) {
			f.Merge(verr)
		}
	}

	return f.Valid()
}

// Valid reports whether no messages were recorded.
func (f *TaskForm) Valid() bool {
	return len(f.Errors) == 0
}

// Fields returns the values to store.
func (f *TaskForm) Fields() models.TaskFields {
	return models.TaskFields{
		Title:       strings.TrimSpace(f.Title),
		Description: strings.TrimSpace(f.Description),
		Status:      f.Status,
		Priority:    f.Priority,
	}
}

// Merge adds the messages of verr that are not already present.
func (f *TaskForm) Merge(verr *models.ValidationError) {
	for field, msgs := range verr.Fields {
		for _, msg := range msgs {
			f.addError(field, msg)
		}
	}
}

// FieldErrors returns the messages recorded for field.
func (f *TaskForm) FieldErrors(field string) []string {
	return f.Errors[field]
}

func (f *TaskForm) addError(field, msg string) {
	if f.Errors == nil {
		f.Errors = map[string][]string{}
	}
	for _, existing := range f.Errors[field] {
		if existing == msg {
			return
		}
	}
	f.Errors[field] = append(f.Errors[field], msg)
}

func (f *TaskForm) collect(err error) {
	if err == nil {
		return
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		f.addError(FormErrorKey, msgMalformed)
		return
	}

	for _, fe := range verrs {
		field := strings.ToLower(fe.Field())
		f.addError(field, message(field, fe))
	}
}

func message(field string, fe validator.FieldError) string {
	switch {
	case fe.Tag() == "required":
		return msgRequired
	case field == "title":
		return msgTitleLength
	case field == "status" || field == "priority":
		return msgChoice
	default:
		return fmt.Sprintf("Invalid value (%s).", fe.Tag())
	}
}
