package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseTags_DeliveryTags(t *testing.T) {
	meta := ParseTags([]string{"Local Delivery", "15 June 2025", "Tuesday run"})

	assert.Equal(t, "Local Delivery", meta.OrderType)
	assert.Equal(t, "15 June 2025", meta.DateString)
	assert.Equal(t, "Sunday", meta.DayOfWeek)
	assert.Equal(t, "Tuesday run", meta.Location)
	assert.Empty(t, meta.TimeWindow)
	require.NotNil(t, meta.DeliveryDate)
	assert.Equal(t, time.Date(2025, time.June, 15, 0, 0, 0, 0, time.UTC), *meta.DeliveryDate)
}

func TestParseTags_Classification(t *testing.T) {
	tests := []struct {
		name     string
		tags     []string
		expected TagMetadata
	}{
		{
			name:     "time window",
			tags:     []string{"9:00 AM - 12:00 PM"},
			expected: TagMetadata{TimeWindow: "9:00 AM - 12:00 PM"},
		},
		{
			name:     "time window case-insensitive and compact",
			tags:     []string{"10:30am-1:00pm"},
			expected: TagMetadata{TimeWindow: "10:30am-1:00pm"},
		},
		{
			name:     "later time window replaces earlier",
			tags:     []string{"9:00 AM - 10:00 AM", "1:00 PM - 2:00 PM"},
			expected: TagMetadata{TimeWindow: "1:00 PM - 2:00 PM"},
		},
		{
			name:     "first order type wins",
			tags:     []string{"Store Pickup", "Shipping"},
			expected: TagMetadata{OrderType: "Store Pickup"},
		},
		{
			name:     "first unclassified tag is location",
			tags:     []string{"Leeds", "Wholesale"},
			expected: TagMetadata{Location: "Leeds"},
		},
		{
			name:     "status tags and blanks are skipped",
			tags:     []string{"cybake-FAILED", "  ", "Cybake-Imported", "Harrogate"},
			expected: TagMetadata{Location: "Harrogate"},
		},
		{
			name:     "four-letter month abbreviation",
			tags:     []string{"15 Sept 2025"},
			expected: TagMetadata{DateString: "15 Sept 2025", DeliveryDate: utcDate(2025, time.September, 15), DayOfWeek: "Monday"},
		},
		{
			name:     "three-letter month abbreviation",
			tags:     []string{"5 Sep 2025"},
			expected: TagMetadata{DateString: "5 Sep 2025", DeliveryDate: utcDate(2025, time.September, 5), DayOfWeek: "Friday"},
		},
		{
			name:     "lowercase month",
			tags:     []string{"1 december 2025"},
			expected: TagMetadata{DateString: "1 december 2025", DeliveryDate: utcDate(2025, time.December, 1), DayOfWeek: "Monday"},
		},
		{
			name:     "day past month end rolls over",
			tags:     []string{"31 February 2025"},
			expected: TagMetadata{DateString: "31 February 2025", DeliveryDate: utcDate(2025, time.March, 3), DayOfWeek: "Monday"},
		},
		{
			name:     "unknown month keeps the string only",
			tags:     []string{"15 Foo 2025"},
			expected: TagMetadata{DateString: "15 Foo 2025"},
		},
		{
			name:     "day out of range keeps the string only",
			tags:     []string{"45 June 2025"},
			expected: TagMetadata{DateString: "45 June 2025"},
		},
		{
			name:     "order type phrase matched as substring",
			tags:     []string{"Free Delivery Zone B"},
			expected: TagMetadata{OrderType: "Free Delivery Zone B"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, ParseTags(tt.tags))
		})
	}
}

func utcDate(year int, month time.Month, day int) *time.Time {
	d := time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
	return &d
}

func TestParseTags_SeptTagDrivesDelivery(t *testing.T) {
	meta := ParseTags([]string{"Local Delivery", "15 Sept 2025", "Tuesday run"})

	require.NotNil(t, meta.DeliveryDate)
	assert.Equal(t, "2025-09-15", meta.DeliveryDate.Format(time.DateOnly))
	assert.Equal(t, "Monday", meta.DayOfWeek)
	assert.Equal(t, "Tuesday run", meta.Location)
}

func TestParseTags_AbbreviatedMonth(t *testing.T) {
	meta := ParseTags([]string{"3 Jan 2025"})

	require.NotNil(t, meta.DeliveryDate)
	assert.Equal(t, "2025-01-03", meta.DeliveryDate.Format(time.DateOnly))
	assert.Equal(t, "Friday", meta.DayOfWeek)
}

func TestParseTags_Empty(t *testing.T) {
	assert.Equal(t, TagMetadata{}, ParseTags(nil))
}
