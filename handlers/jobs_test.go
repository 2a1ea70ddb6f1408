package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/companieshouse/payments.gateway.ch.gov.uk/models"
	"github.com/companieshouse/payments.gateway.ch.gov.uk/scheduler"
	"github.com/gorilla/mux"

	. "github.com/smartystreets/goconvey/convey"
)

type fakeRunner struct {
	name   string
	report models.ProcessingReport
	err    error
}

func (f *fakeRunner) RunNow(_ context.Context, name string) (models.ProcessingReport, error) {
	f.name = name
	return f.report, f.err
}

func serveRunJob(runner *fakeRunner, job string) *httptest.ResponseRecorder {
	router := mux.NewRouter()
	Register(router, runner)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/private/jobs/"+job+"/run", nil))
	return w
}

func TestUnitHandleRunJob(t *testing.T) {
	ranAt := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	Convey("The report of the run is returned", t, func() {
		runner := &fakeRunner{report: models.ProcessingReport{Job: "refund-lifecycle", RanAt: ranAt, Selected: 3, Succeeded: 2, Failed: 1}}

		w := serveRunJob(runner, "refund-lifecycle")

		So(w.Code, ShouldEqual, http.StatusOK)
		So(runner.name, ShouldEqual, "refund-lifecycle")

		var report models.ProcessingReport
		So(json.Unmarshal(w.Body.Bytes(), &report), ShouldBeNil)
		So(report.Selected, ShouldEqual, 3)
		So(report.Succeeded, ShouldEqual, 2)
		So(report.Failed, ShouldEqual, 1)
	})

	Convey("A job already running is a conflict", t, func() {
		runner := &fakeRunner{report: models.ProcessingReport{Job: "webhook-retries", Skipped: true}, err: scheduler.ErrJobRunning}

		w := serveRunJob(runner, "webhook-retries")

		So(w.Code, ShouldEqual, http.StatusConflict)
		So(w.Body.String(), ShouldContainSubstring, `"skipped":true`)
	})

	Convey("An unknown job is not found", t, func() {
		runner := &fakeRunner{err: fmt.Errorf("%w: [nightly]", scheduler.ErrUnknownJob)}

		w := serveRunJob(runner, "nightly")

		So(w.Code, ShouldEqual, http.StatusNotFound)
		So(w.Body.String(), ShouldContainSubstring, "job nightly not found")
	})

	Convey("Any other error is an internal server error", t, func() {
		runner := &fakeRunner{err: errors.New("boom")}

		w := serveRunJob(runner, "refund-lifecycle")

		So(w.Code, ShouldEqual, http.StatusInternalServerError)
	})
}
