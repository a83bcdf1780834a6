package aggregates

// LockScope names the unit a write serializes on before checking its rules.
type LockScope string

const (
	// LockNone relies on unique constraints alone.
	LockNone LockScope = "none"
	// LockOwnerRow locks the owner row so role and cascade checks see a stable roster.
	LockOwnerRow LockScope = "owner_row"
	// LockEmployeeRow locks the employee row before detaching or removing it.
	LockEmployeeRow LockScope = "employee_row"
	// LockEmployeeDay serializes every writer touching one employee on one calendar day.
	LockEmployeeDay LockScope = "employee_day"
)

// Boundary describes what one aggregate commits atomically.
type Boundary struct {
	Name string
	// Writes lists the tables the aggregate inserts, updates or deletes rows in.
	Writes []string
	Locks  LockScope
	Notes  string
}

// Aggregate is the common marker for all aggregate contracts.
type Aggregate interface {
	Boundary() Boundary
}

// OwnsTable reports whether table is written by the aggregate.
func (b Boundary) OwnsTable(table string) bool {
	for _, t := range b.Writes {
		if t == table {
			return true
		}
	}
	return false
}
