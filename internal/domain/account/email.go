package account

import "strings"

// NormalizeEmail lower-cases the domain part. The local part is kept as given
// since it may be case sensitive. Callers trim input whitespace beforehand.
func NormalizeEmail(email string) string {
	at := strings.LastIndex(email, "@")
	if at < 0 {
		return email
	}
	return email[:at] + "@" + strings.ToLower(email[at+1:])
}
