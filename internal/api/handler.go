// Package api exposes the payment finalization engine over HTTP. Handlers
// stay thin: they decode, delegate to the services and map errors to statuses.
package api

import (
	"net/http"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/moatasim2013m-byte/official-peekaboo-website--sub001/internal/capitalbank"
	"github.com/moatasim2013m-byte/official-peekaboo-website--sub001/internal/config"
	"github.com/moatasim2013m-byte/official-peekaboo-website--sub001/internal/interfaces"
	"github.com/moatasim2013m-byte/official-peekaboo-website--sub001/internal/services"
)

type Handler struct {
	router    *mux.Router
	checkout  *services.CheckoutService
	finalizer *services.FinalizerService
	referrals *services.ReferralService
	txns      interfaces.TransactionStore
	bookings  interfaces.BookingStore
	verifier  *capitalbank.Verifier
	gateway   config.CapitalBank
	frontend  string
	logger    *zap.Logger
}

func NewHandler(
	checkout *services.CheckoutService,
	finalizer *services.FinalizerService,
	referrals *services.ReferralService,
	txns interfaces.TransactionStore,
	bookings interfaces.BookingStore,
	verifier *capitalbank.Verifier,
	gateway config.CapitalBank,
	frontend string,
	logger *zap.Logger,
) *Handler {
	router := mux.NewRouter()
	h := &Handler{router, checkout, finalizer, referrals, txns, bookings, verifier, gateway, frontend, logger}

	router.Use(MiddlewareMetrics())
	router.Handle("/metrics", promhttp.Handler()).Methods(http.MethodGet)

	router.HandleFunc("/payments/create-checkout", h.CreateCheckoutHandler).Methods(http.MethodPost)
	router.HandleFunc("/payments/capital-bank/notify", h.NotifyHandler).Methods(http.MethodPost)
	router.HandleFunc("/payments/capital-bank/return", h.ReturnHandler).Methods(http.MethodPost)
	router.HandleFunc("/payments/finalize/{sessionId}", h.FinalizeHandler).Methods(http.MethodPost)
	router.HandleFunc("/payments/status/{sessionId}", h.StatusHandler).Methods(http.MethodGet)

	router.HandleFunc("/referrals/redeem", h.RedeemReferralHandler).Methods(http.MethodPost)
	router.HandleFunc("/referrals/my-code", h.MyReferralCodeHandler).Methods(http.MethodGet)

	router.HandleFunc("/subscriptions/consume", h.ConsumeVisitHandler).Methods(http.MethodPost)
	router.HandleFunc("/bookings/checkin", h.CheckInHandler).Methods(http.MethodPost)

	return h
}

func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	h.router.ServeHTTP(w, r)
}

func (h *Handler) Log(msg string, handler string, err error) {
	h.logger.Error(msg,
		zap.String("service", handler),
		zap.Error(err),
	)
}

// userID reads the authenticated user set by the upstream gateway. Session
// mechanics live outside this service.
func userID(r *http.Request) string {
	return r.Header.Get("X-User-ID")
}

// formFields flattens a form-encoded processor payload to single values.
func formFields(r *http.Request) (map[string]string, error) {
	if err := r.ParseForm(); err != nil {
		return nil, err
	}
	fields := make(map[string]string, len(r.PostForm))
	for key, values := range r.PostForm {
		if len(values) > 0 {
			fields[key] = values[0]
		}
	}
	return fields, nil
}
