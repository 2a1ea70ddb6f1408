package models

// CardInspectRequest is the body of a card inspection request
type CardInspectRequest struct {
	PAN string `json:"pan" validate:"required"`
}

// CardDetailsResponse holds the details of a card that are safe to return.
// The full card number is never included.
type CardDetailsResponse struct {
	Valid     bool   `json:"valid"`
	Brand     string `json:"brand"`
	MaskedPAN string `json:"masked_pan,omitempty"`
	BIN       string `json:"bin,omitempty"`
	LastFour  string `json:"last_four,omitempty"`
}

// Validate checks the request carries a card number
func (request CardInspectRequest) Validate() error {
	return validate.Struct(request)
}
