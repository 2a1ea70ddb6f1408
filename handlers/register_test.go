package handlers

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gorilla/mux"

	. "github.com/smartystreets/goconvey/convey"
)

func TestUnitRegisterRoutes(t *testing.T) {
	Convey("Register routes", t, func() {
		router := mux.NewRouter()
		Register(router, &fakeRunner{})
		So(router.GetRoute("get-healthcheck"), ShouldNotBeNil)
		So(router.GetRoute("run-job"), ShouldNotBeNil)
		So(router.GetRoute("inspect-card"), ShouldNotBeNil)
	})

	Convey("Healthcheck", t, func() {
		router := mux.NewRouter()
		Register(router, &fakeRunner{})

		w := httptest.NewRecorder()
		router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/healthcheck", nil))
		So(w.Code, ShouldEqual, http.StatusOK)
	})

	Convey("Operator endpoints only accept POST", t, func() {
		router := mux.NewRouter()
		Register(router, &fakeRunner{})

		w := httptest.NewRecorder()
		router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/private/jobs/refund-lifecycle/run", nil))
		So(w.Code, ShouldEqual, http.StatusMethodNotAllowed)
	})
}
