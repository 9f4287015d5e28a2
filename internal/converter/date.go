package converter

import (
	"errors"
	"time"

	"gorm.io/datatypes"
)

const dateLayout = "2006-01-02"

var ErrInvalidDateFormat = errors.New("invalid date format, use YYYY-MM-DD")

// parseOptionalDate returns nil for empty input.
func parseOptionalDate(s string) (*datatypes.Date, error) {
	if s == "" {
		return nil, nil
	}
	d, err := parseDate(s)
	if err != nil {
		return nil, err
	}
	return &d, nil
}

func parseDate(s string) (datatypes.Date, error) {
	t, err := time.Parse(dateLayout, s)
	if err != nil {
		return datatypes.Date{}, ErrInvalidDateFormat
	}
	return datatypes.Date(t), nil
}

func formatOptionalDate(d *datatypes.Date) string {
	if d == nil {
		return ""
	}
	return formatDate(*d)
}

func formatDate(d datatypes.Date) string {
	return time.Time(d).Format(dateLayout)
}
