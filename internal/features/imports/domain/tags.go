package domain

import (
	"regexp"
	"strconv"
	"strings"
	"time"
)

var (
	timeWindowPattern = regexp.MustCompile(`(?i)\d{1,2}:\d{2}\s*[AP]M\s*-\s*\d{1,2}:\d{2}\s*[AP]M`)
	datePattern       = regexp.MustCompile(`^\d{1,2}\s+\w{3,}\s+\d{4}$`)
)

// orderTypePhrases are matched as case-insensitive substrings, in this order.
var orderTypePhrases = []string{"local delivery", "store pickup", "shipping", "delivery", "pickup"}

// monthPrefixes maps the first three letters of a month word to the month, so
// "Sep", "Sept" and "September" all resolve.
var monthPrefixes = map[string]time.Month{
	"jan": time.January, "feb": time.February, "mar": time.March, "apr": time.April,
	"may": time.May, "jun": time.June, "jul": time.July, "aug": time.August,
	"sep": time.September, "oct": time.October, "nov": time.November, "dec": time.December,
}

// Status tags written back to the source order.
const (
	TagImported = "Cybake-Imported"
	TagFailed   = "Cybake-Failed"
	TagPending  = "Cybake-Pending"
)

// TagMetadata is the structured reading of an order's free-text tags. Every field is optional.
type TagMetadata struct {
	OrderType  string
	DateString string
	// DeliveryDate is set only when DateString parsed as a calendar date (UTC midnight).
	DeliveryDate *time.Time
	DayOfWeek    string
	TimeWindow   string
	Location     string
}

// isStatusTag reports whether the tag is one of the bridge's own status tags.
func isStatusTag(tag string) bool {
	switch strings.ToLower(tag) {
	case strings.ToLower(TagImported), strings.ToLower(TagFailed), strings.ToLower(TagPending):
		return true
	}
	return false
}

// ParseTags classifies tags in a single left-to-right pass. Each tag goes to the first
// matching bucket: time window, date, order type, location. Later time windows and
// dates replace earlier ones; the first order type and the first unclassified tag win
// and later candidates are dropped. Ambiguous tags land in whichever bucket matches first.
func ParseTags(tags []string) TagMetadata {
	var meta TagMetadata

	for _, tag := range tags {
		trimmed := strings.TrimSpace(tag)
		if trimmed == "" || isStatusTag(trimmed) {
			continue
		}

		switch {
		case timeWindowPattern.MatchString(trimmed):
			meta.TimeWindow = trimmed
		case datePattern.MatchString(trimmed):
			meta.DateString = trimmed
			meta.DeliveryDate = nil
			meta.DayOfWeek = ""
			if parsed, ok := parseTagDate(trimmed); ok {
				meta.DeliveryDate = &parsed
				meta.DayOfWeek = parsed.Weekday().String()
			}
		case isOrderType(trimmed):
			if meta.OrderType == "" {
				meta.OrderType = trimmed
			}
		case meta.Location == "":
			meta.Location = trimmed
		}
	}

	return meta
}

func isOrderType(tag string) bool {
	lower := strings.ToLower(tag)
	for _, phrase := range orderTypePhrases {
		if strings.Contains(lower, phrase) {
			return true
		}
	}
	return false
}

// parseTagDate reads "<day> <month word> <year>". Days past the end of the month roll
// over into the next one, so "31 February 2025" is 3 March 2025.
func parseTagDate(s string) (time.Time, bool) {
	fields := strings.Fields(s)
	if len(fields) != 3 || len(fields[1]) < 3 {
		return time.Time{}, false
	}

	day, err := strconv.Atoi(fields[0])
	if err != nil || day < 1 || day > 31 {
		return time.Time{}, false
	}

	month, ok := monthPrefixes[strings.ToLower(fields[1][:3])]
	if !ok {
		return time.Time{}, false
	}

	year, err := strconv.Atoi(fields[2])
	if err != nil {
		return time.Time{}, false
	}

	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC), true
}
