package pagination

import "fmt"

// Sort tokens accepted in the "sort" query parameter.
const (
	Newest          = "Newest"
	Oldest          = "Oldest"
	HighestStatus   = "HighestStatus"
	LowestStatus    = "LowestStatus"
	HighestPriority = "HighestPriority"
	LowestPriority  = "LowestPriority"
)

// Sort directions, matching the document store's convention.
const (
	Ascending  = 1
	Descending = -1
)

// Sort is a resolved sort token.
type Sort struct {
	Key       string
	Label     string
	Field     string
	Direction int
}

var sortKeys = []string{Newest, Oldest, HighestStatus, LowestStatus, HighestPriority, LowestPriority}

var sorts = map[string]Sort{
	Newest:          {Newest, "Newest", "date_added", Descending},
	Oldest:          {Oldest, "Oldest", "date_added", Ascending},
	HighestStatus:   {HighestStatus, "Highest status", "status", Descending},
	LowestStatus:    {LowestStatus, "Lowest status", "status", Ascending},
	HighestPriority: {HighestPriority, "Highest priority", "priority", Descending},
	LowestPriority:  {LowestPriority, "Lowest priority", "priority", Ascending},
}

// UnknownSortKeyError reports a sort token outside the supported set.
type UnknownSortKeyError struct {
	Key string
}

func (e *UnknownSortKeyError) Error() string {
	return fmt.Sprintf("unknown sort key %q", e.Key)
}

// SortKeys lists the supported tokens in display order.
func SortKeys() []string {
	keys := make([]string, len(sortKeys))
	copy(keys, sortKeys)
	return keys
}

// Sorts lists the supported sorts in display order.
func Sorts() []Sort {
	out := make([]Sort, 0, len(sortKeys))
	for _, key := range sortKeys {
		out = append(out, sorts[key])
	}
	return out
}

// ResolveSort maps a token to its field and direction. An empty token means
// Newest; any other unknown token is an error.
func ResolveSort(key string) (Sort, error) {
	if key == "" {
		return sorts[Newest], nil
	}
	s, ok := sorts[key]
	if !ok {
		return Sort{}, &UnknownSortKeyError{Key: key}
	}
	return s, nil
}
