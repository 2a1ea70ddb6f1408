package handlers

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/companieshouse/chs.go/log"
	"github.com/companieshouse/payments.gateway.ch.gov.uk/scheduler"
	"github.com/companieshouse/payments.gateway.ch.gov.uk/utils"
	"github.com/gorilla/mux"
)

// HandleRunJob runs a periodic job immediately and returns its report
func HandleRunJob(w http.ResponseWriter, req *http.Request) {
	name := mux.Vars(req)["job"]

	report, err := jobRunner.RunNow(req.Context(), name)
	switch {
	case errors.Is(err, scheduler.ErrUnknownJob):
		log.ErrorR(req, fmt.Errorf("error running job: [%v]", err))
		utils.WriteJSONWithStatus(w, req, utils.NewMessageResponse(fmt.Sprintf("job %s not found", name)), http.StatusNotFound)
		return
	case errors.Is(err, scheduler.ErrJobRunning):
		log.InfoR(req, "job already running", log.Data{"job": name})
		utils.WriteJSONWithStatus(w, req, report, http.StatusConflict)
		return
	case err != nil:
		log.ErrorR(req, fmt.Errorf("error running job: [%v]", err), log.Data{"job": name})
		utils.WriteJSONWithStatus(w, req, utils.NewMessageResponse("error running job"), http.StatusInternalServerError)
		return
	}

	log.InfoR(req, "job run on request", log.Data{
		"job":       name,
		"selected":  report.Selected,
		"succeeded": report.Succeeded,
		"failed":    report.Failed,
	})
	utils.WriteJSONWithStatus(w, req, report, http.StatusOK)
}
