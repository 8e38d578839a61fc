package domain

import (
	"regexp"
	"strings"

	orderdomain "cybake-bridge/internal/features/orders/domain"
)

var floatSuffixSKU = regexp.MustCompile(`^\d+\.0$`)

// CleanSKU trims the identifier and strips a ".0" suffix left on all-digit SKUs by spreadsheet imports.
func CleanSKU(sku string) string {
	s := strings.TrimSpace(sku)
	if floatSuffixSKU.MatchString(s) {
		s = strings.TrimSuffix(s, ".0")
	}
	return s
}

// ConsolidateLines merges line items sharing a normalized SKU. Lines with an empty SKU or a
// non-positive quantity are dropped. Quantities sum, the unit price is fixed at the first
// occurrence and differing display names are appended to the note separated by "; ".
// Output follows first-insertion order of distinct SKUs.
func ConsolidateLines(items []orderdomain.LineItem) []OrderLine {
	lines := make([]OrderLine, 0, len(items))
	index := make(map[string]int, len(items))

	for _, item := range items {
		sku := CleanSKU(item.SKU)
		if sku == "" || item.Quantity <= 0 {
			continue
		}

		if i, ok := index[sku]; ok {
			line := &lines[i]
			line.Quantity += item.Quantity
			switch current := noteText(line.Note); {
			case item.Name == "" || current == item.Name:
			case current == "":
				line.Note = stringPtr(item.Name)
			default:
				line.Note = stringPtr(current + "; " + item.Name)
			}
			continue
		}

		index[sku] = len(lines)
		lines = append(lines, OrderLine{
			ProductIdentifier: sku,
			Quantity:          item.Quantity,
			Price:             item.UnitPrice.InexactFloat64(),
			Note:              optional(item.Name),
		})
	}

	return lines
}

func noteText(note *string) string {
	if note == nil {
		return ""
	}
	return *note
}
