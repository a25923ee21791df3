package valueobject

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"
)

// monthStartLayout is the canonical wire and storage format for a month
// bucket: the first day of the month at midnight, written as a literal.
// The value is never reinterpreted through a timezone, so the bucket
// boundary cannot drift.
const monthStartLayout = "2006-01-02 15:04:05"

// MonthStart is a value object identifying one calendar month.
// It is immutable and serializes deterministically as
// "YYYY-MM-01 00:00:00".
type MonthStart struct {
	year  int
	month time.Month
}

// NewMonthStart creates a MonthStart from a year and month
func NewMonthStart(year int, month time.Month) (MonthStart, error) {
	if year < 1 || year > 9999 {
		return MonthStart{}, fmt.Errorf("invalid year %d", year)
	}
	if month < time.January || month > time.December {
		return MonthStart{}, fmt.Errorf("invalid month %d", int(month))
	}
	return MonthStart{year: year, month: month}, nil
}

// ParseMonthStart parses the strict "YYYY-MM-01 00:00:00" literal.
// Anything else is rejected, including valid timestamps that do not
// fall exactly on the first of the month at midnight.
func ParseMonthStart(s string) (MonthStart, error) {
	t, err := time.Parse(monthStartLayout, s)
	if err != nil {
		return MonthStart{}, fmt.Errorf("invalid month format %q: expected YYYY-MM-01 00:00:00", s)
	}
	if t.Day() != 1 || t.Hour() != 0 || t.Minute() != 0 || t.Second() != 0 || t.Nanosecond() != 0 {
		return MonthStart{}, fmt.Errorf("invalid month value %q: expected YYYY-MM-01 00:00:00", s)
	}
	// time.Parse normalizes overflowed components (e.g. month 13 becomes
	// January of the next year), so round-trip to catch them.
	if t.Format(monthStartLayout) != s {
		return MonthStart{}, fmt.Errorf("invalid month value %q: expected YYYY-MM-01 00:00:00", s)
	}
	return MonthStart{year: t.Year(), month: t.Month()}, nil
}

// MonthStartOf returns the month bucket containing t
func MonthStartOf(t time.Time) MonthStart {
	return MonthStart{year: t.Year(), month: t.Month()}
}

// Year returns the calendar year
func (m MonthStart) Year() int {
	return m.year
}

// Month returns the calendar month
func (m MonthStart) Month() time.Month {
	return m.month
}

// IsZero reports whether the value is the zero MonthStart
func (m MonthStart) IsZero() bool {
	return m.year == 0 && m.month == 0
}

// String returns the canonical "YYYY-MM-01 00:00:00" literal
func (m MonthStart) String() string {
	return fmt.Sprintf("%04d-%02d-01 00:00:00", m.year, int(m.month))
}

// Equal reports whether two MonthStart values identify the same month
func (m MonthStart) Equal(other MonthStart) bool {
	return m.year == other.year && m.month == other.month
}

// Next returns the following month
func (m MonthStart) Next() MonthStart {
	if m.month == time.December {
		return MonthStart{year: m.year + 1, month: time.January}
	}
	return MonthStart{year: m.year, month: m.month + 1}
}

// Value implements driver.Valuer, storing the canonical literal
func (m MonthStart) Value() (driver.Value, error) {
	if m.IsZero() {
		return nil, nil
	}
	return m.String(), nil
}

// Scan implements sql.Scanner
func (m *MonthStart) Scan(value any) error {
	if value == nil {
		*m = MonthStart{}
		return nil
	}
	switch v := value.(type) {
	case string:
		parsed, err := ParseMonthStart(v)
		if err != nil {
			return err
		}
		*m = parsed
		return nil
	case []byte:
		parsed, err := ParseMonthStart(string(v))
		if err != nil {
			return err
		}
		*m = parsed
		return nil
	case time.Time:
		*m = MonthStartOf(v)
		return nil
	default:
		return fmt.Errorf("cannot scan %T into MonthStart", value)
	}
}

// MarshalJSON implements json.Marshaler
func (m MonthStart) MarshalJSON() ([]byte, error) {
	return json.Marshal(m.String())
}

// UnmarshalJSON implements json.Unmarshaler
func (m *MonthStart) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	parsed, err := ParseMonthStart(s)
	if err != nil {
		return err
	}
	*m = parsed
	return nil
}
