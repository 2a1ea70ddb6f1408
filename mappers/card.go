package mappers

import (
	"github.com/companieshouse/payments.gateway.ch.gov.uk/card"
	"github.com/companieshouse/payments.gateway.ch.gov.uk/models"
)

// MapToCardDetailsResponse maps the inspected details of a card to its response
func MapToCardDetailsResponse(details card.Details) models.CardDetailsResponse {
	return models.CardDetailsResponse{
		Valid:     details.Valid,
		Brand:     string(details.Brand),
		MaskedPAN: details.Masked,
		BIN:       details.BIN,
		LastFour:  details.LastFour,
	}
}
