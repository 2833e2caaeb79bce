package domain

// HolidayMap maps YYYY-MM-DD to the holiday name.
type HolidayMap map[string]string

// Has is nil-safe.
func (m HolidayMap) Has(date string) bool {
	if m == nil {
		return false
	}
	_, ok := m[date]
	return ok
}
