package domain

// Assignment records that a user has been designated to satisfy a
// group's review on a request. Equality is structural: same login,
// same group name.
type Assignment struct {
	User  User
	Group Group
}

// Equal compares assignments by their natural keys.
func (a Assignment) Equal(other Assignment) bool {
	return a.User.Login == other.User.Login && a.Group.Name == other.Group.Name
}

func (a Assignment) String() string {
	return a.User.Login + " -> " + a.Group.Name
}
