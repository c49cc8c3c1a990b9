package domain

import "strconv"

// Priority is the incident priority of a request, fetched from a
// side-channel attribute. The zero value is the unknown sentinel,
// which is distinct from every concrete value and sorts after all of
// them.
type Priority struct {
	value int
	known bool
}

// NewPriority wraps a concrete priority value.
func NewPriority(value int) Priority {
	return Priority{value: value, known: true}
}

// UnknownPriority returns the sentinel used when the attribute is
// missing or could not be fetched.
func UnknownPriority() Priority {
	return Priority{}
}

// Known reports whether the priority carries a concrete value.
func (p Priority) Known() bool {
	return p.known
}

// Value returns the concrete priority. Only meaningful when Known.
func (p Priority) Value() int {
	return p.value
}

// Less orders priorities for report sorting: higher values (more
// urgent incidents) first, unknown last.
func (p Priority) Less(other Priority) bool {
	if p.known != other.known {
		return p.known
	}

	return p.value > other.value
}

func (p Priority) String() string {
	if !p.known {
		return "None"
	}

	return strconv.Itoa(p.value)
}
