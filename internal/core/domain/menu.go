package domain

// MenuItem is one entry of the catalog snapshot served to clients.
// Price is in integer cents so cart totals never accumulate float drift.
type MenuItem struct {
	ID    int64  `json:"id"`
	Name  string `json:"name"`
	Price int64  `json:"price"`
	Offer string `json:"offer,omitempty"`
	Image string `json:"image"`
}
