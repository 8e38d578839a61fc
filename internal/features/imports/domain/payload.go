package domain

// Sentinels written into the payload when the source order lacks a value.
// Validate treats them as missing.
const (
	PlaceholderEmail   = "noemail@placeholder.com"
	PlaceholderAddress = "N/A"
	UnknownValue       = "Unknown"
)

// OrderSourceShopify is the Cybake order source code used for web orders.
const OrderSourceShopify = 1

// Payload is the body submitted to the Cybake home-order import endpoint.
type Payload struct {
	HomeOrderOptions HomeOrderOptions `json:"HomeOrderOptions"`
	Orders           []HomeOrder      `json:"Orders"`
}

// HomeOrderOptions are fixed per submission.
type HomeOrderOptions struct {
	GroupInvoicesToHeadOffice  bool    `json:"GroupInvoicesToHeadOffice"`
	SendInvoicesToHeadOffice   bool    `json:"SendInvoicesToHeadOffice"`
	ExportInvoicesToHeadOffice bool    `json:"ExportInvoicesToHeadOffice"`
	HeadOfficeCompanyCode      *string `json:"HeadOfficeCompanyCode"`
	OrderSource                int     `json:"OrderSource"`
	GroupOrderItems            bool    `json:"GroupOrderItems"`
}

// DefaultHomeOrderOptions returns the options sent with every order.
func DefaultHomeOrderOptions() HomeOrderOptions {
	return HomeOrderOptions{OrderSource: OrderSourceShopify}
}

// HomeOrder is a single order in Cybake's import schema.
type HomeOrder struct {
	ExternalUniqueIdentifier string      `json:"ExternalUniqueIdentifier"`
	DeliveryCustomer         string      `json:"DeliveryCustomer"`
	DeliveryDate             string      `json:"DeliveryDate"`
	PurchaseOrderNumber      string      `json:"PurchaseOrderNumber"`
	OrderedDate              string      `json:"OrderedDate"`
	OrderNote                *string     `json:"OrderNote"`
	Email                    string      `json:"Email"`
	Telephone                *string     `json:"Telephone"`
	AddressLineOne           string      `json:"AddressLineOne"`
	AddressLineTwo           *string     `json:"AddressLineTwo"`
	AddressLineThree         *string     `json:"AddressLineThree"`
	AddressCity              *string     `json:"AddressCity"`
	AddressCountry           *string     `json:"AddressCountry"`
	AddressCounty            *string     `json:"AddressCounty"`
	AddressPostcode          string      `json:"AddressPostcode"`
	Shipping                 float64     `json:"Shipping"`
	OrderLines               []OrderLine `json:"OrderLines"`
}

// OrderLine is a consolidated product line.
type OrderLine struct {
	ProductIdentifier string  `json:"ProductIdentifier"`
	Quantity          int     `json:"Quantity"`
	Price             float64 `json:"Price"`
	Note              *string `json:"Note"`
}

func stringPtr(s string) *string {
	return &s
}

// optional returns nil for an empty string.
func optional(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
