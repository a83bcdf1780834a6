package account

import (
	"math"
	"strings"
)

// CompletionPercentage reports how much of the contact/billing profile is filled,
// rounded to two decimals. The two mail fields share one slot, as do the two phones.
func CompletionPercentage(a *Account) float64 {
	if a == nil {
		return 0
	}
	slots := []bool{
		filled(a.Email) || filled(a.LegalMail),
		filled(a.MobilePhone) || filled(a.Phone),
		filled(a.CompanyName),
		filled(a.FirstName),
		filled(a.LastName),
		filled(a.StreetName),
		filled(a.StreetNumber),
		filled(a.City),
		filled(a.ZipCode),
		filled(a.ProvinceName),
		filled(a.RegionName),
		filled(a.CountryName),
		filled(a.SocialSecurityNumber),
		filled(a.VATNumber),
		filled(a.BillingCode),
	}
	n := 0
	for _, ok := range slots {
		if ok {
			n++
		}
	}
	pct := float64(n) / float64(len(slots)) * 100
	return math.Round(pct*100) / 100
}

func filled(s string) bool { return strings.TrimSpace(s) != "" }
