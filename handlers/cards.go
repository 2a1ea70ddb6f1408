package handlers

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/companieshouse/chs.go/log"
	"github.com/companieshouse/payments.gateway.ch.gov.uk/card"
	"github.com/companieshouse/payments.gateway.ch.gov.uk/mappers"
	"github.com/companieshouse/payments.gateway.ch.gov.uk/models"
	"github.com/companieshouse/payments.gateway.ch.gov.uk/utils"
)

// HandleInspectCard validates a card number and returns the details that are
// safe to display. Neither the response nor the logs carry the full number.
func HandleInspectCard(w http.ResponseWriter, req *http.Request) {
	var request models.CardInspectRequest
	if err := utils.ReadJSON(req, &request); err != nil {
		// decoder errors can quote the body, so only the empty case is detailed
		if errors.Is(err, utils.ErrEmptyBody) {
			log.ErrorR(req, err)
		} else {
			log.ErrorR(req, fmt.Errorf("request body invalid"))
		}
		utils.WriteJSONWithStatus(w, req, utils.NewMessageResponse("invalid request body"), http.StatusBadRequest)
		return
	}

	if err := request.Validate(); err != nil {
		log.ErrorR(req, fmt.Errorf("card number not supplied"))
		utils.WriteJSONWithStatus(w, req, utils.NewMessageResponse("pan is required"), http.StatusBadRequest)
		return
	}

	details := card.Inspect(request.PAN)

	log.InfoR(req, "card inspected", log.Data{
		"brand":      details.Brand,
		"valid":      details.Valid,
		"masked_pan": details.Masked,
	})
	utils.WriteJSONWithStatus(w, req, mappers.MapToCardDetailsResponse(details), http.StatusOK)
}
