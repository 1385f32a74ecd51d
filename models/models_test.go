package models_test

import (
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/K9173A/todoapp/models"
	"github.com/stretchr/testify/assert"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestStatusLabels(t *testing.T) {
	t.Parallel()

	assert := assert.New(t)

	assert.Equal("TODO", models.StatusTodo.Label())
	assert.Equal("In Process", models.StatusInProgress.Label())
	assert.Equal("Complete", models.StatusComplete.Label())
	assert.Equal("Unknown", models.Status(0).Label())
	assert.Equal("Unknown", models.Status(4).Label())

	assert.False(models.Status(0).Valid())
	assert.True(models.StatusComplete.Valid())
}

func TestPriorityLabels(t *testing.T) {
	t.Parallel()

	assert := assert.New(t)

	want := []string{"Not set", "Low", "Normal", "High", "Top"}
	for code, label := range want {
		assert.Equal(label, models.Priority(code).Label())
		assert.True(models.Priority(code).Valid())
	}

	assert.False(models.Priority(-1).Valid())
	assert.False(models.Priority(5).Valid())
	assert.Equal("Unknown", models.Priority(5).Label())
}

func TestTaskFieldsValidate(t *testing.T) {
	t.Parallel()

	valid := models.TaskFields{
		Title:    "buy milk",
		Status:   models.StatusTodo,
		Priority: models.PriorityNotSet,
	}

	tests := []struct {
		name   string
		mutate func(f *models.TaskFields)
		fields []string
	}{
		{name: "valid", mutate: func(f *models.TaskFields) {}},
		{name: "empty title", mutate: func(f *models.TaskFields) { f.Title = "" }, fields: []string{"title"}},
		{name: "blank title", mutate: func(f *models.TaskFields) { f.Title = "   " }, fields: []string{"title"}},
		{name: "short title", mutate: func(f *models.TaskFields) { f.Title = "ab" }, fields: []string{"title"}},
		{name: "long title", mutate: func(f *models.TaskFields) { f.Title = strings.Repeat("x", 49) }, fields: []string{"title"}},
		{name: "max title", mutate: func(f *models.TaskFields) { f.Title = strings.Repeat("x", 48) }},
		{name: "bad status", mutate: func(f *models.TaskFields) { f.Status = 7 }, fields: []string{"status"}},
		{
			name:   "bad status and priority",
			mutate: func(f *models.TaskFields) { f.Status = 0; f.Priority = 9 },
			fields: []string{"status", "priority"},
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			assert := assert.New(t)

			f := valid
			tt.mutate(&f)

			err := f.Validate()
			if len(tt.fields) == 0 {
				assert.NoError(err)
				return
			}

			var verr *models.ValidationError
			assert.True(errors.As(err, &verr))
			assert.Len(verr.Fields, len(tt.fields))
			for _, field := range tt.fields {
				assert.Contains(verr.Fields, field)
			}
		})
	}
}

func TestValidationErrorMessage(t *testing.T) {
	t.Parallel()

	verr := &models.ValidationError{}
	verr.Add("title", "This field is required.")
	verr.Add("priority", "Not a valid choice.")

	assert.Equal(t, "invalid task: priority: Not a valid choice.; title: This field is required.", verr.Error())
}

func TestStoreErrorUnwrap(t *testing.T) {
	t.Parallel()

	cause := errors.New("connection reset")
	err := error(&models.StoreError{Op: "find tasks", Err: cause})

	assert.ErrorIs(t, err, cause)
	assert.Equal(t, "error during find tasks: connection reset", err.Error())
}

func TestPresent(t *testing.T) {
	t.Parallel()

	assert := assert.New(t)

	now := time.Date(2024, 3, 10, 12, 0, 0, 0, time.UTC)
	id := primitive.NewObjectID()
	task := models.Task{
		ID:          id,
		Title:       "write report",
		Description: "quarterly",
		Status:      models.StatusInProgress,
		Priority:    models.PriorityHigh,
		DateAdded:   now.Add(-3 * time.Hour).Unix(),
	}

	view := models.Present(task, now)

	assert.Equal(id.Hex(), view.ID)
	assert.Equal("write report", view.Title)
	assert.Equal("In Process", view.StatusLabel)
	assert.Equal("High", view.PriorityLabel)
	assert.Equal(time.Unix(task.DateAdded, 0).Format("2006-01-02 15:04"), view.DateAdded)
	assert.Equal("3 hours ago", view.Added)
}

func TestPresentWithoutDate(t *testing.T) {
	t.Parallel()

	view := models.Present(models.Task{Title: "legacy", Status: models.StatusTodo}, time.Now())

	assert.Empty(t, view.DateAdded)
	assert.Empty(t, view.Added)
	assert.Len(t, models.PresentAll([]models.Task{{}, {}}, time.Now()), 2)
}
