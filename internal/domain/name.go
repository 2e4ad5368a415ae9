package domain

import "strings"

// SplitName splits a full display name into first and last components.
// The first whitespace-separated token is the first name; the remaining
// tokens, joined by single spaces, form the last name.
func SplitName(fullName string) (first, last string) {
	parts := strings.Fields(fullName)
	switch len(parts) {
	case 0:
		return "", ""
	case 1:
		return parts[0], ""
	default:
		return parts[0], strings.Join(parts[1:], " ")
	}
}

// NewRow builds a roster row for username from an optional full name.
func NewRow(username, fullName string) Row {
	first, last := SplitName(fullName)
	return Row{Username: username, FirstName: first, LastName: last}
}
