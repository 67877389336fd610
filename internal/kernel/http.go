// Package kernel assembles the HTTP middleware stack and the route table.
package kernel

import (
	"net/http"
	"time"

	"github.com/shashiranjanraj/vitrine/app/routes"
	"github.com/shashiranjanraj/vitrine/pkg/metrics"
	"github.com/shashiranjanraj/vitrine/pkg/middleware"
	"github.com/shashiranjanraj/vitrine/pkg/reqid"
	"github.com/shashiranjanraj/vitrine/pkg/router"
	"github.com/shashiranjanraj/vitrine/pkg/session"
	"github.com/shashiranjanraj/vitrine/pkg/ws"
)

// HTTPKernel owns the router and the global middleware stack.
type HTTPKernel struct {
	router *router.Router
}

// NewHTTPKernel builds the full HTTP stack. Order matters: metrics
// wraps everything, recovery runs before logging so panics are logged
// with a request ID, and the session loads before any controller runs.
func NewHTTPKernel(toastHub *ws.Hub) *HTTPKernel {
	r := router.New()

	r.Use(
		metrics.Middleware(),
		middleware.Recovery,
		reqid.Middleware(),
		middleware.Logger,
		session.Middleware(session.DefaultOptions()),
		middleware.CORS(middleware.DefaultCORSOptions()),
		middleware.RateLimit(200, time.Minute),
	)

	routes.Register(r, toastHub)
	return &HTTPKernel{router: r}
}

// Handler returns the root http.Handler.
func (k *HTTPKernel) Handler() http.Handler {
	return k.router.Handler()
}

// Router exposes the named-route table (used by the routes CLI command).
func (k *HTTPKernel) Router() *router.Router {
	return k.router
}
