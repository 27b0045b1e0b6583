package site

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	. "github.com/smartystreets/goconvey/convey"
)

func TestSiteHandler(t *testing.T) {
	Convey("Given a site handler", t, func() {
		ctx := context.Background()
		r := chi.NewRouter()

		Convey("When registering the site handler", func() {
			Register(ctx, r)

			Convey("Then it should serve the landing page at /", func() {
				req := httptest.NewRequest("GET", "/", nil)
				w := httptest.NewRecorder()
				r.ServeHTTP(w, req)

				So(w.Code, ShouldEqual, http.StatusOK)
				So(w.Header().Get("Content-Type"), ShouldContainSubstring, "text/html")
				So(w.Body.String(), ShouldContainSubstring, `id="projects"`)
				So(w.Body.String(), ShouldContainSubstring, "/static/site.js")
			})

			Convey("And it should serve assets under /static/", func() {
				for path, ctype := range map[string]string{
					"/static/site.css":                           "text/css",
					"/static/site.js":                            "javascript",
					"/static/images/telisik.png":                 "image/png",
					"/static/images/brain-bleeding-detector.png": "image/png",
				} {
					req := httptest.NewRequest("GET", path, nil)
					w := httptest.NewRecorder()
					r.ServeHTTP(w, req)

					So(w.Code, ShouldEqual, http.StatusOK)
					So(w.Header().Get("Content-Type"), ShouldContainSubstring, ctype)
				}
			})

			Convey("And the landing page script should read the API from the same origin", func() {
				req := httptest.NewRequest("GET", "/static/site.js", nil)
				w := httptest.NewRecorder()
				r.ServeHTTP(w, req)

				body, err := io.ReadAll(w.Body)
				So(err, ShouldBeNil)
				So(string(body), ShouldContainSubstring, `"/api/usage"`)
				So(string(body), ShouldContainSubstring, `"/api/projects"`)
				So(string(body), ShouldContainSubstring, `"/api/profile"`)
			})

			Convey("And it should not handle unknown root paths", func() {
				req := httptest.NewRequest("GET", "/some-asset", nil)
				w := httptest.NewRecorder()
				r.ServeHTTP(w, req)

				So(w.Code, ShouldEqual, http.StatusNotFound)
			})

			Convey("And missing assets should be not found", func() {
				req := httptest.NewRequest("GET", "/static/missing.png", nil)
				w := httptest.NewRecorder()
				r.ServeHTTP(w, req)

				So(w.Code, ShouldEqual, http.StatusNotFound)
			})
		})
	})
}

func TestSiteHandlerWithNilRouter(t *testing.T) {
	Convey("Given a nil router", t, func() {
		ctx := context.Background()

		Convey("When registering the site handler", func() {
			Convey("Then it should panic", func() {
				So(func() {
					Register(ctx, nil)
				}, ShouldPanic)
			})
		})
	})
}
