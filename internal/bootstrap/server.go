package bootstrap

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/zvrva/transitline/api"
	"github.com/zvrva/transitline/config"
	"github.com/zvrva/transitline/internal/auth"
	"github.com/zvrva/transitline/internal/middleware"
)

// Handlers bundles everything the HTTP surface mounts.
type Handlers struct {
	Auth     *api.AuthHandler
	Bookings *api.BookingHandler
	Trips    *api.TripHandler
	Catalog  *api.CatalogHandler
	Feedback *api.FeedbackHandler
}

// Run starts the HTTP server and blocks until the context is canceled or
// the server fails.
func Run(ctx context.Context, cfg *config.Config, tokens *auth.TokenManager, h Handlers) error {
	router := gin.Default()

	authRequired := middleware.AuthMiddleware(tokens)
	staffOnly := middleware.StaffOnly()

	h.Auth.RegisterPublic(router.Group("/auth"))
	h.Auth.RegisterProtected(router.Group("/", authRequired))

	h.Bookings.Register(router.Group("/bookings", authRequired))
	h.Trips.Register(router.Group("/trips", authRequired), router.Group("/trips", authRequired, staffOnly))
	h.Catalog.Register(router.Group("/", authRequired), router.Group("/", authRequired, staffOnly))
	h.Feedback.Register(router.Group("/", authRequired), router.Group("/staff", authRequired, staffOnly))

	httpSrv := &http.Server{
		Addr:    cfg.HTTP.Address,
		Handler: router,
	}

	errCh := make(chan error, 1)
	go func() { errCh <- httpSrv.ListenAndServe() }()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := httpSrv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("shutdown http server: %w", err)
		}
		return nil
	}
}
