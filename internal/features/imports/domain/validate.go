package domain

import "fmt"

// Validate returns every problem found in the payload, in a stable order. An empty slice means the
// payload may be submitted.
func Validate(p *Payload) []string {
	if p == nil || len(p.Orders) == 0 {
		return []string{"No order data"}
	}

	order := p.Orders[0]
	var errs []string

	if order.Email == "" || order.Email == PlaceholderEmail {
		errs = append(errs, "Missing email")
	}
	if order.AddressLineOne == "" || order.AddressLineOne == PlaceholderAddress {
		errs = append(errs, "Missing address")
	}
	if order.AddressPostcode == "" || order.AddressPostcode == PlaceholderAddress {
		errs = append(errs, "Missing postcode")
	}
	if order.DeliveryDate == "" {
		errs = append(errs, "Could not parse delivery date from tags")
	}
	if len(order.OrderLines) == 0 {
		errs = append(errs, "No valid line items (missing SKUs?)")
	}

	for _, line := range order.OrderLines {
		if line.ProductIdentifier == "" {
			errs = append(errs, fmt.Sprintf("Line item missing SKU: %s", orDefault(noteText(line.Note), "unknown")))
		}
		if line.Quantity <= 0 {
			errs = append(errs, fmt.Sprintf("Invalid quantity for %s", line.ProductIdentifier))
		}
	}

	return errs
}
