package handler

import (
	"net/http"
	"time"

	"linewatch/internal/pkg/errs"
	"linewatch/internal/pkg/logx"
	"linewatch/internal/pkg/req"
	"linewatch/internal/pkg/resp"
	"linewatch/internal/stripeapi"
)

// checkoutCompletedType is the only Stripe event type this service acts on.
const checkoutCompletedType = "checkout.session.completed"

type stripeEvent struct {
	ID   string `json:"id"`
	Type string `json:"type"`
}

type stripeAck struct {
	OK        bool   `json:"ok"`
	Duplicate bool   `json:"duplicate,omitempty"`
	Ignored   string `json:"ignored,omitempty"`
}

// HandleStripeWebhook verifies and records Stripe payment events.
//
// Stripe retries deliveries, so events are recorded idempotently by event id:
// a replayed event is acknowledged without any further effect. Event types other
// than checkout completion are acknowledged and ignored.
func HandleStripeWebhook(deps *AppDeps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		secret := deps.Config.StripeWebhookSecret
		if secret == "" {
			// Fail closed: without the secret no delivery can be authenticated.
			resp.RespondError(w, r, errs.NewError(errs.ErrStripeNotConfigured))
			return
		}

		body, customErr := req.ReadBody(w, r)
		if customErr != nil {
			resp.RespondError(w, r, customErr)
			return
		}

		header := r.Header.Get(stripeapi.SignatureHeader)
		if header == "" {
			resp.RespondError(w, r, errs.NewError(errs.ErrMissingSignature))
			return
		}

		if err := stripeapi.VerifySignature(body, header, secret, time.Now()); err != nil {
			resp.RespondError(w, r, errs.NewError(errs.ErrInvalidSignature, err))
			return
		}

		var event stripeEvent
		if customErr := req.DecodeJSON(body, &event); customErr != nil {
			resp.RespondError(w, r, customErr)
			return
		}

		if event.ID != "" {
			inserted, err := deps.Ledger.RecordPaymentEvent(r.Context(), event.ID, body)
			if err != nil {
				resp.RespondError(w, r, errs.NewError(errs.ErrStorageUnavailable, err))
				return
			}
			if !inserted {
				resp.RespondRaw(w, r, http.StatusOK, stripeAck{OK: true, Duplicate: true})
				return
			}
		}

		if event.Type != checkoutCompletedType {
			resp.RespondRaw(w, r, http.StatusOK, stripeAck{OK: true, Ignored: event.Type})
			return
		}

		logx.Info("checkout completed", "event_id", event.ID)
		resp.RespondRaw(w, r, http.StatusOK, stripeAck{OK: true})
	}
}
