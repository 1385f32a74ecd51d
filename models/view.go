package models

import (
	"time"

	"github.com/dustin/go-humanize"
)

const dateLayout = "2006-01-02 15:04"

// TaskView is the display-ready projection of a Task.
type TaskView struct {
	ID            string
	Title         string
	Description   string
	Status        Status
	StatusLabel   string
	Priority      Priority
	PriorityLabel string
	DateAdded     string
	Added         string
}

// Present decodes the stored codes of t into labels. now is used for the
// relative "added" text.
func Present(t Task, now time.Time) TaskView {
	view := TaskView{
		ID:            t.ID.Hex(),
		Title:         t.Title,
		Description:   t.Description,
		Status:        t.Status,
		StatusLabel:   t.Status.Label(),
		Priority:      t.Priority,
		PriorityLabel: t.Priority.Label(),
	}
	if t.DateAdded > 0 {
		added := time.Unix(t.DateAdded, 0)
		view.DateAdded = added.Format(dateLayout)
		view.Added = humanize.RelTime(added, now, "ago", "from now")
	}
	return view
}

// PresentAll maps Present over tasks.
func PresentAll(tasks []Task, now time.Time) []TaskView {
	views := make([]TaskView, 0, len(tasks))
	for _, t := range tasks {
		views = append(views, Present(t, now))
	}
	return views
}
