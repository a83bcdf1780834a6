package aggregates

import (
	"strings"

	"github.com/google/uuid"

	domainagg "github.com/yungbote/shiftplan-backend/internal/domain/aggregates"
)

// RequireIDs rejects nil identifiers; names pairs up with ids positionally.
func RequireIDs(op string, names []string, ids ...uuid.UUID) error {
	var missing []string
	for i, id := range ids {
		if id != uuid.Nil {
			continue
		}
		name := "id"
		if i < len(names) {
			name = names[i]
		}
		missing = append(missing, name)
	}
	if len(missing) > 0 {
		return domainagg.NewError(domainagg.CodeValidation, op, "missing "+strings.Join(missing, ", "), nil)
	}
	return nil
}

// OwnedBy reports whether a row owned by rowOwner is visible to caller.
// A nil caller is unscoped and sees every row.
func OwnedBy(rowOwner, caller uuid.UUID) bool {
	return caller == uuid.Nil || rowOwner == caller
}

// RequireRowsAffected converts a write that matched no rows into a conflict:
// the row disappeared between the read and the write.
func RequireRowsAffected(n int64, message string) error {
	if n > 0 {
		return nil
	}
	return ConflictError(strings.TrimSpace(message))
}
