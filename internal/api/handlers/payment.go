package handlers

import (
	stderrors "errors"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/pratik-mahalle/proftrack/internal/api/dto"
	"github.com/pratik-mahalle/proftrack/internal/api/middleware"
	"github.com/pratik-mahalle/proftrack/internal/domain/payment"
	"github.com/pratik-mahalle/proftrack/internal/pkg/errors"
	"github.com/pratik-mahalle/proftrack/internal/pkg/logger"
	"github.com/pratik-mahalle/proftrack/internal/pkg/utils"
)

const maxWebhookBytes = 1 << 20

// PaymentRedirects are the browser destinations after the provider callback
type PaymentRedirects struct {
	FrontendURL string
	SuccessPath string
	BillingPath string
}

// PaymentHandler serves the payment routes. Unlike the resource APIs these
// use flat {"message"} bodies, which is what the checkout page expects.
type PaymentHandler struct {
	service   payment.Service
	redirects PaymentRedirects
	logger    *logger.Logger
}

// NewPaymentHandler creates a new payment handler
func NewPaymentHandler(service payment.Service, redirects PaymentRedirects, log *logger.Logger) *PaymentHandler {
	redirects.FrontendURL = strings.TrimRight(redirects.FrontendURL, "/")
	return &PaymentHandler{
		service:   service,
		redirects: redirects,
		logger:    log,
	}
}

// Initialize starts a subscription checkout
// @Summary Initialize payment
// @Description Start a hosted checkout for the signed-in user
// @Tags Payments
// @Accept json
// @Produce json
// @Param request body dto.InitializePaymentRequest true "Amount in major currency units"
// @Success 200 {object} dto.InitializePaymentResponse
// @Failure 400 {object} utils.MessageResponse
// @Failure 401 {object} utils.ErrorResponse
// @Failure 502 {object} utils.MessageResponse
// @Security BearerAuth
// @Router /api/payments/initialize [post]
func (h *PaymentHandler) Initialize(w http.ResponseWriter, r *http.Request) {
	principal, ok := middleware.GetPrincipal(r)
	if !ok {
		utils.WriteMessage(w, http.StatusUnauthorized, "Authentication required")
		return
	}

	var req dto.InitializePaymentRequest
	if err := decodeJSON(w, r, &req); err != nil {
		utils.WriteMessage(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	authURL, err := h.service.Initialize(r.Context(), principal.UserID, principal.Email, principal.Subject, req.Amount)
	if err != nil {
		status, msg := http.StatusInternalServerError, "Failed to initialize payment"
		if appErr, ok := errors.AsAppError(err); ok {
			status, msg = appErr.StatusCode, appErr.Message
		}
		utils.WriteMessage(w, status, msg)
		return
	}

	utils.WriteJSON(w, http.StatusOK, dto.InitializePaymentResponse{AuthorizationURL: authURL})
}

// Webhook receives provider events. The raw body is handed over unparsed
// so the signature covers exactly the bytes that were sent.
// @Summary Payment webhook
// @Description Signed provider event delivery
// @Tags Payments
// @Accept json
// @Produce json
// @Param x-paystack-signature header string true "HMAC-SHA512 of the raw body"
// @Success 200 {object} dto.WebhookAck
// @Failure 400 {object} utils.MessageResponse
// @Failure 500 {object} utils.MessageResponse
// @Router /api/payments/webhook [post]
func (h *PaymentHandler) Webhook(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxWebhookBytes))
	if err != nil {
		utils.WriteMessage(w, http.StatusBadRequest, "Unreadable request body")
		return
	}

	err = h.service.HandleWebhook(r.Context(), body, r.Header.Get(payment.SignatureHeader))
	switch {
	case err == nil:
		utils.WriteJSON(w, http.StatusOK, dto.WebhookAck{Received: true})
	case stderrors.Is(err, payment.ErrInvalidSignature):
		utils.WriteMessage(w, http.StatusBadRequest, "Invalid signature")
	case stderrors.Is(err, payment.ErrInvalidPayload):
		utils.WriteMessage(w, http.StatusBadRequest, "Invalid payload")
	default:
		// non-2xx makes the provider retry the delivery
		h.logger.ErrorWithErr(err, "Failed to process webhook")
		utils.WriteMessage(w, http.StatusInternalServerError, "Webhook processing failed")
	}
}

// Verify handles the browser redirect back from the hosted checkout
// @Summary Verify payment
// @Description Look the transaction up and redirect to the success or billing page
// @Tags Payments
// @Param reference query string true "Transaction reference"
// @Success 302
// @Router /api/payments/verify [get]
func (h *PaymentHandler) Verify(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	reference := q.Get("reference")
	if reference == "" {
		reference = q.Get("trxref")
	}

	outcome := h.service.VerifyCallback(r.Context(), reference)

	var target string
	if outcome.Success {
		target = h.redirects.FrontendURL + h.redirects.SuccessPath +
			"?payment=success&reference=" + url.QueryEscape(outcome.Reference)
	} else {
		target = h.redirects.FrontendURL + h.redirects.BillingPath +
			"?payment=failed&reason=" + url.QueryEscape(outcome.Reason)
	}
	http.Redirect(w, r, target, http.StatusFound)
}
