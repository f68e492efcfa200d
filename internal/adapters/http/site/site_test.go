package site

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	. "github.com/smartystreets/goconvey/convey"
)

func TestSiteHandler(t *testing.T) {
	Convey("Given a mux with the admin page", t, func() {
		mux := http.NewServeMux()
		Register(context.Background(), mux)

		Convey("When / is requested", func() {
			w := httptest.NewRecorder()
			mux.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))

			Convey("Then the admin page is served", func() {
				So(w.Code, ShouldEqual, http.StatusOK)
				So(w.Header().Get("Content-Type"), ShouldContainSubstring, "text/html")
				So(w.Body.String(), ShouldContainSubstring, `id="roster"`)
				So(w.Body.String(), ShouldContainSubstring, "/rankings")
				So(w.Body.String(), ShouldContainSubstring, "/import")
			})
		})

		Convey("When an unknown asset is requested", func() {
			w := httptest.NewRecorder()
			mux.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/some-asset", nil))

			Convey("Then it is not found", func() {
				So(w.Code, ShouldEqual, http.StatusNotFound)
			})
		})

		Convey("When / is posted to", func() {
			w := httptest.NewRecorder()
			mux.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/", nil))

			Convey("Then the method is rejected", func() {
				So(w.Code, ShouldEqual, http.StatusMethodNotAllowed)
			})
		})
	})
}

func TestSiteHandlerWithNilMux(t *testing.T) {
	Convey("Given a nil mux", t, func() {
		So(func() { Register(context.Background(), nil) }, ShouldPanic)
	})
}
