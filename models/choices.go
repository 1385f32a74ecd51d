package models

// Status is the stored code of a task's progress.
type Status int

// Priority is the stored code of a task's urgency.
type Priority int

const (
	StatusTodo       Status = 1
	StatusInProgress Status = 2
	StatusComplete   Status = 3
)

const (
	PriorityNotSet Priority = 0
	PriorityLow    Priority = 1
	PriorityNormal Priority = 2
	PriorityHigh   Priority = 3
	PriorityTop    Priority = 4
)

// Choice pairs a stored code with its display label.
type Choice struct {
	Value int
	Label string
}

// StatusChoices and PriorityChoices are the only code to label tables in the
// application. Forms render their <select> options from them too.
var (
	StatusChoices = []Choice{
		{int(StatusTodo), "TODO"},
		{int(StatusInProgress), "In Process"},
		{int(StatusComplete), "Complete"},
	}
	PriorityChoices = []Choice{
		{int(PriorityNotSet), "Not set"},
		{int(PriorityLow), "Low"},
		{int(PriorityNormal), "Normal"},
		{int(PriorityHigh), "High"},
		{int(PriorityTop), "Top"},
	}
)

func lookup(choices []Choice, value int) (string, bool) {
	for _, c := range choices {
		if c.Value == value {
			return c.Label, true
		}
	}
	return "", false
}

// Valid reports whether s is one of the known status codes.
func (s Status) Valid() bool {
	_, ok := lookup(StatusChoices, int(s))
	return ok
}

// Label returns the display name, or "Unknown" for codes outside the table.
func (s Status) Label() string {
	if label, ok := lookup(StatusChoices, int(s)); ok {
		return label
	}
	return "Unknown"
}

// Valid reports whether p is one of the known priority codes.
func (p Priority) Valid() bool {
	_, ok := lookup(PriorityChoices, int(p))
	return ok
}

// Label returns the display name, or "Unknown" for codes outside the table.
func (p Priority) Label() string {
	if label, ok := lookup(PriorityChoices, int(p)); ok {
		return label
	}
	return "Unknown"
}
