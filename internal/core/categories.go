package core

// Other is the catch-all category permitted for every type.
const Other = "Lainnya"

// Investment is the expense category counted by the investment headline.
const Investment = "Investasi"

var categories = map[TxType][]string{
	Income:  {"Gaji", "Dividen", "Bonus", Other},
	Expense: {"Operasional Bulanan", Investment, "Kebutuhan Pokok", "Hiburan", Other},
}

// Categories returns the allowed categories of a type in display order.
// Unknown types have no categories.
func Categories(t TxType) []string {
	return append([]string(nil), categories[t]...)
}

// CategoryAllowed reports whether category c may be used with type t.
func CategoryAllowed(t TxType, c string) bool {
	if !t.IsValid() {
		return false
	}
	if c == Other {
		return true
	}
	for _, allowed := range categories[t] {
		if allowed == c {
			return true
		}
	}
	return false
}
