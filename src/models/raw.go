package models

// Raw payload shapes, one per backend admin endpoint. Older endpoints
// (service orders, catalog products) report prices as display strings like
// "$19.99"; newer ones report integer cents. The field type records which
// representation a payload arrived in, so each amount is converted exactly
// once and the two representations are never conflated.

type RawOwner struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

// RawProductRef is the product nested inside a product order. The reference
// may be missing when the product was deleted after the order was placed.
type RawProductRef struct {
	ID       string `json:"id"`
	Title    string `json:"title"`
	Type     string `json:"type"` // "ebook", "course", "webinar", ...
	Category string `json:"category"`
}

type RawServiceOrder struct {
	ID            string    `json:"id"`
	ServiceName   string    `json:"serviceName"`
	Category      string    `json:"category"`
	Price         string    `json:"price"` // display string, e.g. "$19.99"
	Quantity      int       `json:"quantity"`
	Status        string    `json:"status"`
	CreatedAt     string    `json:"createdAt"`
	User          *RawOwner `json:"user"`
	TransactionID string    `json:"transactionId"`
}

type RawProductOrder struct {
	ID            string         `json:"id"`
	Product       *RawProductRef `json:"product"`
	ItemType      string         `json:"itemType"`
	PriceCents    int64          `json:"priceCents"`
	Quantity      int            `json:"quantity"`
	Status        string         `json:"status"`
	CreatedAt     string         `json:"createdAt"`
	User          *RawOwner      `json:"user"`
	TransactionID string         `json:"transactionId"`
}

type RawPayment struct {
	ID            string    `json:"id"`
	Description   string    `json:"description"`
	AmountCents   int64     `json:"amountCents"`
	Method        string    `json:"method"` // "card", "transfer", ...
	Status        string    `json:"status"`
	CreatedAt     string    `json:"createdAt"`
	User          *RawOwner `json:"user"`
	TransactionID string    `json:"transactionId"`
}

type RawUser struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Email     string `json:"email"`
	Role      string `json:"role"` // "user" | "admin"
	IsActive  bool   `json:"isActive"`
	CreatedAt string `json:"createdAt"`
}

type RawWebinar struct {
	ID         string    `json:"id"`
	Title      string    `json:"title"`
	Category   string    `json:"category"`
	PriceCents int64     `json:"priceCents"`
	Status     string    `json:"status"`
	CreatedAt  string    `json:"createdAt"`
	Host       *RawOwner `json:"host"`
}

type RawCatalogProduct struct {
	ID        string `json:"id"`
	Title     string `json:"title"`
	Type      string `json:"type"`
	Category  string `json:"category"`
	Price     string `json:"price"` // display string, e.g. "$19.99"
	IsActive  bool   `json:"isActive"`
	CreatedAt string `json:"createdAt"`
}
