package handlers

import (
	"context"
	"net/http"

	"github.com/companieshouse/chs.go/log"
	"github.com/companieshouse/payments.gateway.ch.gov.uk/models"
	"github.com/gorilla/mux"
)

// JobRunner runs a periodic job on demand
type JobRunner interface {
	RunNow(ctx context.Context, name string) (models.ProcessingReport, error)
}

var jobRunner JobRunner

// Register defines the route mappings for the main router and its subrouters
func Register(mainRouter *mux.Router, runner JobRunner) {
	jobRunner = runner

	mainRouter.HandleFunc("/healthcheck", healthCheck).Methods(http.MethodGet).Name("get-healthcheck")

	// operator endpoints, reached only from inside the platform
	privateRouter := mainRouter.PathPrefix("/private").Subrouter()
	privateRouter.HandleFunc("/jobs/{job}/run", HandleRunJob).Methods(http.MethodPost).Name("run-job")
	privateRouter.HandleFunc("/cards/inspect", HandleInspectCard).Methods(http.MethodPost).Name("inspect-card")

	privateRouter.Use(log.Handler)
}

func healthCheck(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusOK)
}
