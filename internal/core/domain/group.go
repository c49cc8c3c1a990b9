package domain

import "strings"

// Groups that carry the qam-prefix but never require a manual review:
// qam-auto designates automated checks, qam-openqa is driven by openQA.
var ignoredQAMGroups = map[string]struct{}{
	"qam-auto":   {},
	"qam-openqa": {},
}

// Group is a named reviewer team on the build service. Identity is the
// name alone; Title is a display field.
type Group struct {
	Name  string
	Title string
}

// IsQAMGroup reports whether the group takes part in the QAM review
// workflow.
func (g Group) IsQAMGroup() bool {
	if _, ignored := ignoredQAMGroups[g.Name]; ignored {
		return false
	}

	return strings.HasPrefix(g.Name, "qam")
}

func (g Group) String() string {
	return g.Name
}

// User is a build service account. Identity is the login alone.
type User struct {
	Login    string
	Realname string
	Email    string
}

func (u User) String() string {
	if u.Realname == "" {
		return u.Login
	}

	return u.Realname + " (" + u.Email + ")"
}

// QAMGroups filters the given groups down to the ones participating in
// the QAM workflow.
func QAMGroups(groups []Group) []Group {
	qam := make([]Group, 0, len(groups))
	for _, group := range groups {
		if group.IsQAMGroup() {
			qam = append(qam, group)
		}
	}

	return qam
}
