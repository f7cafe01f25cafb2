package site

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"

	. "github.com/smartystreets/goconvey/convey"

	"github.com/okian/medailles/pkg/logger"
)

type fakeRebuilder struct {
	calls atomic.Int32
	err   error
}

func (f *fakeRebuilder) Rebuild(context.Context) error {
	f.calls.Add(1)
	return f.err
}

func TestSiteHandler(t *testing.T) {
	Convey("Given a generated site directory", t, func() {
		dir := t.TempDir()
		So(os.WriteFile(filepath.Join(dir, "index.html"), []byte("<!doctype html><title>France Médailles</title>"), 0o644), ShouldBeNil)
		So(os.MkdirAll(filepath.Join(dir, "exports"), 0o755), ShouldBeNil)
		So(os.WriteFile(filepath.Join(dir, "exports", "a.png"), []byte("\x89PNG"), 0o644), ShouldBeNil)

		mux := http.NewServeMux()
		NewServer(dir, nil).Register(context.Background(), mux)

		Convey("Then / serves the index page", func() {
			w := httptest.NewRecorder()
			mux.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))
			So(w.Code, ShouldEqual, http.StatusOK)
			So(w.Header().Get("Content-Type"), ShouldContainSubstring, "text/html")
			So(w.Body.String(), ShouldContainSubstring, "France Médailles")
		})

		Convey("Then exported images are served", func() {
			w := httptest.NewRecorder()
			mux.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/exports/a.png", nil))
			So(w.Code, ShouldEqual, http.StatusOK)
		})

		Convey("Then unknown files are not found", func() {
			w := httptest.NewRecorder()
			mux.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/missing.html", nil))
			So(w.Code, ShouldEqual, http.StatusNotFound)
		})

		Convey("Then /healthz reports ok without a refresher", func() {
			w := httptest.NewRecorder()
			mux.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/healthz", nil))
			So(w.Code, ShouldEqual, http.StatusOK)
			var body healthResponse
			So(json.Unmarshal(w.Body.Bytes(), &body), ShouldBeNil)
			So(body.Status, ShouldEqual, "ok")
		})

		Convey("Then /metrics exposes the private registry", func() {
			// Populate at least one series first.
			w := httptest.NewRecorder()
			mux.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/healthz", nil))

			w = httptest.NewRecorder()
			mux.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/metrics", nil))
			So(w.Code, ShouldEqual, http.StatusOK)
			So(w.Body.String(), ShouldContainSubstring, "medailles_dashboard_http_requests_total")
		})
	})

	Convey("Given a nil mux", t, func() {
		So(func() { NewServer(".", nil).Register(context.Background(), nil) }, ShouldPanic)
	})
}

func TestRefresher(t *testing.T) {
	ctx := context.Background()
	at := time.Date(2026, 2, 9, 12, 0, 0, 0, time.UTC)
	clock := func() time.Time { return at }

	Convey("Given a rebuilder that fails", t, func() {
		rb := &fakeRebuilder{err: errors.New("disk full")}
		r := NewRefresher(rb, 0, WithRefreshLogger(logger.Nop()), WithRefreshClock(clock))

		Convey("When refreshing", func() {
			err := r.Refresh(ctx)

			Convey("Then the failure is wrapped and recorded", func() {
				So(errors.Is(err, ErrRebuild), ShouldBeTrue)
				st := r.Status()
				So(st.Runs, ShouldEqual, 1)
				So(st.LastRun.Equal(at), ShouldBeTrue)
				So(st.LastError, ShouldNotBeNil)
			})

			Convey("Then /healthz reports degraded", func() {
				mux := http.NewServeMux()
				NewServer(t.TempDir(), r).Register(ctx, mux)
				w := httptest.NewRecorder()
				mux.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/healthz", nil))
				So(w.Code, ShouldEqual, http.StatusServiceUnavailable)

				var body healthResponse
				So(json.Unmarshal(w.Body.Bytes(), &body), ShouldBeNil)
				So(body.Status, ShouldEqual, "degraded")
				So(body.LastBuild, ShouldEqual, "2026-02-09T12:00:00Z")
				So(body.Error, ShouldContainSubstring, "disk full")
			})
		})
	})

	Convey("Given a disabled interval", t, func() {
		rb := &fakeRebuilder{}
		r := NewRefresher(rb, 0, WithRefreshLogger(logger.Nop()))

		Convey("Then Run returns without rebuilding", func() {
			r.Run(ctx)
			So(int(rb.calls.Load()), ShouldEqual, 0)
			So(r.Status().Runs, ShouldEqual, 0)
		})

		Convey("Then Refresh records a success", func() {
			So(r.Refresh(ctx), ShouldBeNil)
			So(r.Status().LastError, ShouldBeNil)
			So(r.Status().Runs, ShouldEqual, 1)
		})
	})

	Convey("Given a short interval", t, func() {
		rb := &fakeRebuilder{}
		r := NewRefresher(rb, 5*time.Millisecond, WithRefreshLogger(logger.Nop()))
		cctx, cancel := context.WithCancel(ctx)
		done := make(chan struct{})
		go func() {
			r.Run(cctx)
			close(done)
		}()

		Convey("Then it keeps rebuilding until canceled", func() {
			deadline := time.Now().Add(2 * time.Second)
			for rb.calls.Load() < 3 && time.Now().Before(deadline) {
				time.Sleep(time.Millisecond)
			}
			cancel()
			<-done
			So(int(rb.calls.Load()), ShouldBeGreaterThanOrEqualTo, 3)
		})
	})
}

func TestGetErrorType(t *testing.T) {
	Convey("Given HTTP status codes", t, func() {
		So(getErrorType(503), ShouldEqual, "server_error")
		So(getErrorType(404), ShouldEqual, "not_found")
		So(getErrorType(400), ShouldEqual, "client_error")
		So(getErrorType(200), ShouldEqual, "unknown")
	})
}
