package domain

// Row is one line of the roster table.
type Row struct {
	Username  string
	FirstName string
	LastName  string
}

// Record returns the row as CSV fields, in header order.
func (r Row) Record() []string {
	return []string{r.Username, r.FirstName, r.LastName}
}

// Outcome tags how a contributor's name was resolved.
type Outcome int

const (
	// OutcomeResolved means the profile was fetched and carried a name.
	OutcomeResolved Outcome = iota
	// OutcomeNoName means the profile was fetched but had no usable name.
	OutcomeNoName
	// OutcomeFetchFailed means the profile could not be fetched.
	OutcomeFetchFailed
)

// String returns a readable outcome name for logs.
func (o Outcome) String() string {
	switch o {
	case OutcomeResolved:
		return "resolved"
	case OutcomeNoName:
		return "no_name"
	case OutcomeFetchFailed:
		return "fetch_failed"
	default:
		return "unknown"
	}
}

// Resolution is the result of resolving one handle.
// Row is always populated; on OutcomeFetchFailed its name fields are empty
// and Err holds the cause.
type Resolution struct {
	Row     Row
	Outcome Outcome
	Err     error
}
