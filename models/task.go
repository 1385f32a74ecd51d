package models

import (
	"strings"
	"unicode/utf8"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Title length bounds enforced by both the form and the repository.
const (
	TitleMinLength = 3
	TitleMaxLength = 48
)

// Task is the stored shape of a to-do entry. Status and Priority are kept as
// integer codes; labels are only produced by Present.
type Task struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Title       string             `bson:"title" json:"title"`
	Description string             `bson:"description" json:"description"`
	Status      Status             `bson:"status" json:"status"`
	Priority    Priority           `bson:"priority" json:"priority"`
	DateAdded   int64              `bson:"date_added" json:"date_added"`
}

// TaskFields holds the user editable part of a task.
type TaskFields struct {
	Title       string
	Description string
	Status      Status
	Priority    Priority
}

// Fields returns the editable fields of t.
func (t Task) Fields() TaskFields {
	return TaskFields{
		Title:       t.Title,
		Description: t.Description,
		Status:      t.Status,
		Priority:    t.Priority,
	}
}

// Validate checks the invariants every stored task must satisfy.
func (f TaskFields) Validate() error {
	verr := &ValidationError{}

	title := strings.TrimSpace(f.Title)
	switch n := utf8.RuneCountInString(title); {
	case n == 0:
		verr.Add("title", "This field is required.")
	case n < TitleMinLength || n > TitleMaxLength:
		verr.Add("title", "Field must be between 3 and 48 characters long.")
	}
	if !f.Status.Valid() {
		verr.Add("status", "Not a valid choice.")
	}
	if !f.Priority.Valid() {
		verr.Add("priority", "Not a valid choice.")
	}

	if verr.Empty() {
		return nil
	}
	return verr
}
