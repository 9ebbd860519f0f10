package bootstrap

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/cors"

	"github.com/geovibes/geovibes/api"
	"github.com/geovibes/geovibes/config"
	"github.com/geovibes/geovibes/internal/catalog"
	"github.com/geovibes/geovibes/internal/service/account"
	"github.com/geovibes/geovibes/internal/service/booking"
)

// Run starts the HTTP server and blocks until the context is canceled or the
// server fails.
func Run(ctx context.Context, cfg *config.Config, accountSvc account.AccountUseCase, bookingSvc booking.BookingUseCase, cat catalog.Catalog) error {
	router := newRouter(accountSvc, bookingSvc, cat)

	// The API is consumed by a static browser frontend served from elsewhere.
	corsOptions := cors.Options{
		AllowedMethods: []string{http.MethodGet, http.MethodPost},
		AllowedHeaders: []string{"Content-Type"},
	}
	if len(cfg.CORS.AllowedOrigins) > 0 {
		corsOptions.AllowedOrigins = cfg.CORS.AllowedOrigins
	}

	httpSrv := &http.Server{
		Addr:         cfg.HTTP.Address,
		Handler:      cors.New(corsOptions).Handler(router),
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
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

func newRouter(accountSvc account.AccountUseCase, bookingSvc booking.BookingUseCase, cat catalog.Catalog) *gin.Engine {
	router := gin.Default()

	apiGroup := router.Group("/api")
	api.NewAccountHandler(accountSvc).Register(apiGroup.Group("/auth"))
	api.NewBookingHandler(bookingSvc).Register(apiGroup.Group("/bookings"))
	api.NewDestinationHandler(cat).Register(apiGroup.Group("/destinations"))

	return router
}
