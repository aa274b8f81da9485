package importers

import (
	"strings"
	"time"

	"github.com/jinzhu/now"
)

// orderDates accepts the date shapes seen in exported order data.
// Values without a zone are read as UTC.
var orderDates = &now.Config{
	TimeLocation: time.UTC,
	TimeFormats: []string{
		time.RFC3339Nano,
		time.RFC3339,
		"2006-01-02T15:04:05",
		"2006-01-02 15:04:05",
		"2006-01-02 15:04",
		"2006-01-02",
		"2006/01/02",
		"2006.01.02",
		"02.01.2006",
		"01/02/2006",
	},
}

// parseOrderDate returns nil for blank or unparseable input.
func parseOrderDate(value string) *time.Time {
	value = strings.TrimSpace(value)
	if value == "" {
		return nil
	}
	t, err := orderDates.Parse(value)
	if err != nil {
		return nil
	}
	return &t
}
