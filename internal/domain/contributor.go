package domain

// ContributorTypeBot is the account type GitHub reports for app accounts.
const ContributorTypeBot = "Bot"

// Contributor represents one entry of a repository's contributor list.
type Contributor struct {
	Login string
	Type  string // "User", "Bot", ...
}

// IsBot reports whether the contributor is an automation account.
func (c Contributor) IsBot() bool {
	return c.Type == ContributorTypeBot
}

// Repository identifies a repository by owner and name.
type Repository struct {
	Owner string
	Name  string
}

// FullName returns the "owner/name" form used in API paths.
func (r Repository) FullName() string {
	return r.Owner + "/" + r.Name
}
