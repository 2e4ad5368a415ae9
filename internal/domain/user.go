package domain

// UserProfile represents a user profile from the hosting platform.
type UserProfile struct {
	Username string
	// Name is the display name; nil when the platform returned none.
	Name *string
}

// FullName returns the display name, or "" when absent.
func (p *UserProfile) FullName() string {
	if p == nil || p.Name == nil {
		return ""
	}
	return *p.Name
}
