package mf

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/mf-api/server/pkg/mf/config"
	"github.com/mf-api/server/pkg/mf/container"
)

// bootLogger satisfies config.logger so NewGoDotEnvProvider has somewhere
// to report .env load failures before the real structured Logger exists.
type bootLogger struct{}

func (bootLogger) Log(args ...interface{})                 { fmt.Println(args...) }
func (bootLogger) Warn(args ...interface{})                 { fmt.Println(args...) }
func (bootLogger) Warnf(format string, a ...interface{})    { fmt.Printf(format+"\n", a...) }
func (bootLogger) Error(args ...interface{})                { fmt.Println(args...) }
func (bootLogger) Errorf(format string, a ...interface{})   { fmt.Printf(format+"\n", a...) }
func (bootLogger) Info(args ...interface{})                 { fmt.Println(args...) }
func (bootLogger) Infof(format string, a ...interface{})    { fmt.Printf(format+"\n", a...) }

// Handler is the signature every resource controller (§4.E) implements.
// The response value is whatever the handler wants the Responder to
// marshal (§4.F); a non-nil error short-circuits straight to the error
// responder.
type Handler func(*Context) (any, error)

// App is the top-level server: a router, a shared Container, and the list
// of supported locales used by request negotiation. Modelled on the
// teacher's gofr.New()/app.GET/app.Start, trimmed of the pub/sub, gRPC and
// WebSocket surfaces this service doesn't expose.
type App struct {
	container *container.Container
	router    *mux.Router
	locales   []string
}

// New builds an App, reading config the way the teacher's gofr.New does:
// a .env file if present, overridden by the process environment.
func New() *App {
	conf := config.NewGoDotEnvProvider(bootLogger{}, "configs")
	metrics := NewPrometheusMetrics()
	c := container.NewContainer(conf, metrics)

	a := &App{
		container: c,
		router:    mux.NewRouter(),
		locales:   []string{"en"},
	}

	if registry, ok := metrics.(interface{ Registry() *prometheus.Registry }); ok {
		a.router.Handle("/metrics", promhttp.HandlerFor(registry.Registry(), promhttp.HandlerOpts{}))
	} else {
		a.router.Handle("/metrics", promhttp.Handler())
	}

	return a
}

// SupportedLocales overrides the locale list used for §4.A negotiation.
func (a *App) SupportedLocales(locales ...string) {
	a.locales = locales
}

func (a *App) wrap(h Handler) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()

		pathParams := mux.Vars(r)
		req := NewRequest(r, pathParams, a.locales)
		ctx := newContext(req, a.container)

		resp, err := h(ctx)

		a.container.Metrics().ObserveHistogram("app_http_response", time.Since(start).Seconds(), r.URL.Path, r.Method)

		WriteResponse(w, req, resp, err)
	}
}

func (a *App) GET(path string, h Handler) { a.router.Handle(path, a.wrap(h)).Methods(http.MethodGet) }

func (a *App) POST(path string, h Handler) {
	a.router.Handle(path, a.wrap(h)).Methods(http.MethodPost)
}

func (a *App) PUT(path string, h Handler) { a.router.Handle(path, a.wrap(h)).Methods(http.MethodPut) }

func (a *App) DELETE(path string, h Handler) {
	a.router.Handle(path, a.wrap(h)).Methods(http.MethodDelete)
}

// Container exposes the shared Container, so cmd/mf-server can hand its
// SQL handle to the store and report fatal errors through its Logger.
func (a *App) Container() *container.Container { return a.container }

// Run starts the HTTP server and blocks until ctx is cancelled, then drains
// in-flight requests for up to shutDownTimeout.
func (a *App) Run(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:    addr,
		Handler: a.router,
	}

	errCh := make(chan error, 1)

	go func() {
		a.container.Logger.Infof("listening on %s", addr)

		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutDownTimeout)
		defer cancel()

		return srv.Shutdown(shutdownCtx)
	}
}
