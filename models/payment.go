package models

// CheckoutRequest describes a hosted-checkout link to be created by the
// payment collaborator. Metadata travels to the gateway unchanged.
type CheckoutRequest struct {
	Amount        float64           `json:"amount"`
	CustomerEmail string            `json:"customerEmail"`
	CustomerName  string            `json:"customerName"`
	Category      string            `json:"category"`
	Metadata      map[string]string `json:"metadata,omitempty"`
}
