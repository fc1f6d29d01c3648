package bootstrap

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/chibusonma0x/swiftslot-chibusonma/api"
	"github.com/chibusonma0x/swiftslot-chibusonma/config"
	"github.com/chibusonma0x/swiftslot-chibusonma/internal/service/booking"
	"github.com/chibusonma0x/swiftslot-chibusonma/internal/service/payment"
	"github.com/gin-gonic/gin"
)

// Run starts the HTTP server and blocks until the context is canceled
// or the server fails.
func Run(ctx context.Context, cfg *config.Config, bookingSvc booking.BookingUseCase, paymentSvc payment.PaymentUseCase) error {
	httpSrv := &http.Server{
		Addr:    cfg.HTTP.Address,
		Handler: NewRouter(bookingSvc, paymentSvc),
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

func NewRouter(bookingSvc booking.BookingUseCase, paymentSvc payment.PaymentUseCase) *gin.Engine {
	router := gin.Default()

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "Server is running"})
	})

	api.NewVendorHandler(bookingSvc).Register(router.Group("/api/vendors"))
	api.NewBookingHandler(bookingSvc).Register(router.Group("/api/bookings"))
	api.NewPaymentHandler(paymentSvc).Register(router.Group("/api/payments"))

	return router
}
