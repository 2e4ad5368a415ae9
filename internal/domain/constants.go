package domain

// CSV header columns, in output order.
const (
	ColumnUsername  = "username"
	ColumnFirstName = "first_name"
	ColumnLastName  = "last_name"
)

// Header returns the fixed header row of the roster table.
func Header() []string {
	return []string{ColumnUsername, ColumnFirstName, ColumnLastName}
}
