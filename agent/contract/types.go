package contract

// CartRequest is the payload sent to the cart sink.
type CartRequest struct {
	ProductID int    `json:"productId"`
	Email     string `json:"email"`
	Quantity  int    `json:"quantity"`
}

// CartResult is the cart sink's outcome. Success=false with a non-empty
// Error is a rejected add; transport failures surface as Go errors.
type CartResult struct {
	Success bool   `json:"success"`
	Error   string `json:"error,omitempty"`
}
