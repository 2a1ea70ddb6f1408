package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/companieshouse/payments.gateway.ch.gov.uk/models"

	. "github.com/smartystreets/goconvey/convey"
)

func TestUnitHandleInspectCard(t *testing.T) {

	Convey("Request Body Empty", t, func() {
		req, _ := http.NewRequest(http.MethodPost, "/private/cards/inspect", nil)
		w := httptest.NewRecorder()
		HandleInspectCard(w, req)
		So(w.Code, ShouldEqual, http.StatusBadRequest)
	})

	Convey("Request Body Invalid", t, func() {
		req := httptest.NewRequest(http.MethodPost, "/private/cards/inspect", strings.NewReader(`{"pan":4111`))
		w := httptest.NewRecorder()
		HandleInspectCard(w, req)
		So(w.Code, ShouldEqual, http.StatusBadRequest)
		So(w.Body.String(), ShouldNotContainSubstring, "4111")
	})

	Convey("Missing card number", t, func() {
		req := httptest.NewRequest(http.MethodPost, "/private/cards/inspect", strings.NewReader(`{"pan":""}`))
		w := httptest.NewRecorder()
		HandleInspectCard(w, req)
		So(w.Code, ShouldEqual, http.StatusBadRequest)
		So(w.Body.String(), ShouldContainSubstring, "pan is required")
	})

	Convey("A valid card is described without its full number", t, func() {
		req := httptest.NewRequest(http.MethodPost, "/private/cards/inspect", strings.NewReader(`{"pan":"4111 1111 1111 1111"}`))
		w := httptest.NewRecorder()
		HandleInspectCard(w, req)

		So(w.Code, ShouldEqual, http.StatusOK)
		So(w.Body.String(), ShouldNotContainSubstring, "4111111111111111")

		var response models.CardDetailsResponse
		So(json.Unmarshal(w.Body.Bytes(), &response), ShouldBeNil)
		So(response, ShouldResemble, models.CardDetailsResponse{
			Valid:     true,
			Brand:     "VISA",
			MaskedPAN: "411111******1111",
			BIN:       "411111",
			LastFour:  "1111",
		})
	})

	Convey("An invalid card is reported as invalid", t, func() {
		req := httptest.NewRequest(http.MethodPost, "/private/cards/inspect", strings.NewReader(`{"pan":"4111111111111112"}`))
		w := httptest.NewRecorder()
		HandleInspectCard(w, req)

		So(w.Code, ShouldEqual, http.StatusOK)
		So(w.Body.String(), ShouldContainSubstring, `"valid":false`)
	})
}
