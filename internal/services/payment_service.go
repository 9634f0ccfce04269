package services

import (
	"context"
	stderrors "errors"
	"math"
	"strconv"
	"strings"

	"github.com/pratik-mahalle/proftrack/internal/config"
	"github.com/pratik-mahalle/proftrack/internal/domain/identity"
	"github.com/pratik-mahalle/proftrack/internal/domain/payment"
	"github.com/pratik-mahalle/proftrack/internal/domain/subscription"
	"github.com/pratik-mahalle/proftrack/internal/domain/user"
	"github.com/pratik-mahalle/proftrack/internal/pkg/errors"
	"github.com/pratik-mahalle/proftrack/internal/pkg/logger"
	"github.com/pratik-mahalle/proftrack/internal/pkg/metrics"
)

// Callback failure reasons
const (
	ReasonMissingReference = "missing_reference"
	ReasonVerifyFailed     = "verification_failed"
	ReasonMissingEmail     = "missing_customer_email"
	ReasonActivationFailed = "activation_failed"

	callbackPath = "/api/payments/verify"
	providerName = "payment provider"
)

// PaymentService implements payment.Service. The webhook is the
// authoritative activation path; the verify callback applies the same
// idempotent activation so the user lands on an unlocked page.
type PaymentService struct {
	gateway     payment.Gateway
	ledger      subscription.Ledger
	users       user.Repository
	events      payment.EventLog
	secret      string
	currency    string
	days        int
	callbackURL string
	logger      *logger.Logger
}

// NewPaymentService creates a new payment reconciler
func NewPaymentService(
	gateway payment.Gateway,
	ledger subscription.Ledger,
	users user.Repository,
	events payment.EventLog,
	cfg config.PaymentConfig,
	appBaseURL string,
	log *logger.Logger,
) payment.Service {
	return &PaymentService{
		gateway:     gateway,
		ledger:      ledger,
		users:       users,
		events:      events,
		secret:      cfg.SecretKey,
		currency:    cfg.Currency,
		days:        cfg.SubscriptionDays,
		callbackURL: strings.TrimRight(appBaseURL, "/") + callbackPath,
		logger:      log,
	}
}

// Initialize starts a hosted checkout for the user
func (s *PaymentService) Initialize(ctx context.Context, userID int64, email, subject string, amount float64) (string, error) {
	if math.IsNaN(amount) || math.IsInf(amount, 0) || amount <= 0 {
		return "", errors.ValidationError("Amount must be a positive number", nil)
	}
	email = identity.NormalizeEmail(email)
	if email == "" {
		return "", errors.ValidationError("Email is required", nil)
	}

	checkout, err := s.gateway.Initialize(ctx, payment.CheckoutRequest{
		Email:       email,
		AmountMinor: int64(math.Round(amount * 100)),
		Currency:    s.currency,
		CallbackURL: s.callbackURL,
		Metadata: map[string]string{
			"user_id":          strconv.FormatInt(userID, 10),
			"identity_subject": subject,
			"email":            email,
		},
	})
	if err != nil {
		s.logger.ErrorWithErr(err, "Failed to initialize checkout")
		if _, ok := errors.AsAppError(err); ok {
			return "", err
		}
		return "", errors.Upstream(providerName, err)
	}
	if checkout.AuthorizationURL == "" {
		return "", errors.Upstream(providerName, stderrors.New("checkout without authorization url"))
	}

	s.logger.WithFields(map[string]interface{}{
		"user_id":   userID,
		"reference": checkout.Reference,
	}).Info("Checkout initialized")

	return checkout.AuthorizationURL, nil
}

// HandleWebhook verifies the raw body signature, then applies the event.
// Nothing is read from the body before the signature check passes.
func (s *PaymentService) HandleWebhook(ctx context.Context, body []byte, signature string) error {
	if !payment.VerifySignature(body, signature, s.secret) {
		metrics.RecordWebhook("unknown", "bad_signature")
		s.logger.Warn("Rejected webhook with invalid signature")
		return payment.ErrInvalidSignature
	}

	ev, err := payment.ParseEvent(body)
	if err != nil {
		metrics.RecordWebhook("unknown", "bad_payload")
		s.logger.WithError(err).Warn("Rejected malformed webhook")
		return err
	}

	switch e := ev.(type) {
	case payment.ChargeSucceeded:
		err = s.applyCharge(ctx, e)
	case payment.SubscriptionEnded:
		err = s.applySubscriptionEnded(ctx, e)
	default:
		s.logger.WithFields(map[string]interface{}{
			"event": ev.EventType(),
		}).Debug("Ignoring webhook event")
		metrics.RecordWebhook(ev.EventType(), "ignored")
		return nil
	}

	if err != nil {
		metrics.RecordWebhook(ev.EventType(), "error")
		return err
	}
	metrics.RecordWebhook(ev.EventType(), "applied")
	return nil
}

func (s *PaymentService) applyCharge(ctx context.Context, e payment.ChargeSucceeded) error {
	seen, err := s.events.Seen(ctx, e.Reference)
	if err != nil {
		return err
	}
	if seen {
		s.logger.WithFields(map[string]interface{}{
			"reference": e.Reference,
		}).Info("Duplicate charge event acknowledged")
		return nil
	}

	if _, err := s.ledger.Activate(ctx, e.Email, s.days, e.CustomerCode); err != nil {
		return err
	}
	metrics.RecordActivation("webhook")

	return s.events.Record(ctx, e.Reference, e.EventType(), identity.NormalizeEmail(e.Email))
}

func (s *PaymentService) applySubscriptionEnded(ctx context.Context, e payment.SubscriptionEnded) error {
	u, err := s.findCustomer(ctx, e.Email, e.CustomerCode)
	if err != nil {
		return err
	}
	if u == nil {
		s.logger.WithFields(map[string]interface{}{
			"event":         e.Type,
			"customer_code": e.CustomerCode,
		}).Warn("Subscription event for unknown customer")
		return nil
	}

	return s.ledger.Deactivate(ctx, u.ID)
}

// findCustomer looks a user up by email, then by payment customer code.
// A nil user with a nil error means neither matched.
func (s *PaymentService) findCustomer(ctx context.Context, email, customerCode string) (*user.User, error) {
	if email = identity.NormalizeEmail(email); email != "" {
		u, err := s.users.GetByEmail(ctx, email)
		if err == nil {
			return u, nil
		}
		if !errors.IsNotFound(err) {
			return nil, err
		}
	}

	if customerCode != "" {
		u, err := s.users.GetByCustomerRef(ctx, customerCode)
		if err == nil {
			return u, nil
		}
		if !errors.IsNotFound(err) {
			return nil, err
		}
	}

	return nil, nil
}

// VerifyCallback looks the transaction up and reports where to redirect
func (s *PaymentService) VerifyCallback(ctx context.Context, reference string) payment.VerifyOutcome {
	reference = strings.TrimSpace(reference)
	if reference == "" {
		return payment.VerifyOutcome{Reason: ReasonMissingReference}
	}
	outcome := payment.VerifyOutcome{Reference: reference}

	tx, err := s.gateway.Verify(ctx, reference)
	if err != nil {
		s.logger.WithFields(map[string]interface{}{
			"reference": reference,
		}).WithError(err).Warn("Transaction verification failed")
		outcome.Reason = ReasonVerifyFailed
		return outcome
	}

	if tx.Status != payment.TxSuccess {
		outcome.Reason = failureReason(tx)
		return outcome
	}
	if tx.Email == "" {
		outcome.Reason = ReasonMissingEmail
		return outcome
	}

	seen, err := s.events.Seen(ctx, reference)
	if err != nil {
		s.logger.ErrorWithErr(err, "Failed to check payment event log")
	}
	if !seen {
		if _, err := s.ledger.Activate(ctx, tx.Email, s.days, tx.CustomerCode); err != nil {
			outcome.Reason = ReasonActivationFailed
			return outcome
		}
		metrics.RecordActivation("callback")
		if err := s.events.Record(ctx, reference, payment.EventChargeSuccess, identity.NormalizeEmail(tx.Email)); err != nil {
			s.logger.ErrorWithErr(err, "Failed to record payment event")
		}
	}

	outcome.Success = true
	return outcome
}

func failureReason(tx *payment.Transaction) string {
	if tx.GatewayResponse != "" {
		return tx.GatewayResponse
	}
	if tx.Status != "" {
		return "transaction_" + tx.Status
	}
	return ReasonVerifyFailed
}
