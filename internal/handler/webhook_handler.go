/*
Package handler provides the HTTP handlers and routing setup for linewatch.

This file implements the LINE webhook ingestion endpoint: verify the request
signature over the raw body, decode the event batch, and record a sighting for
every event that names a user.
*/
package handler

import (
	"errors"
	"net/http"

	"github.com/google/uuid"

	"linewatch/internal/lineapi"
	"linewatch/internal/pkg/errs"
	"linewatch/internal/pkg/logx"
	"linewatch/internal/pkg/req"
	"linewatch/internal/pkg/resp"
)

// unknownEventType is recorded when an event arrives without a type tag.
const unknownEventType = "unknown"

type webhookEvent struct {
	Type       string `json:"type"`
	ReplyToken string `json:"replyToken"`
	Source     struct {
		UserID string `json:"userId"`
	} `json:"source"`
}

type webhookBatch struct {
	Events []webhookEvent `json:"events"`
}

// webhookAck is the wire shape the platform expects on successful delivery.
type webhookAck struct {
	OK       bool `json:"ok"`
	Received int  `json:"received"`
}

// HandleLineWebhook processes an inbound webhook delivery.
//
// Events are isolated from each other: a failing upsert is logged and the loop
// continues with the remaining events, so one poisoned event cannot shadow the
// rest of the batch. The response still acknowledges the full batch size; the
// platform treats any non-2xx as "retry the whole delivery".
func HandleLineWebhook(deps *AppDeps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		body, customErr := req.ReadBody(w, r)
		if customErr != nil {
			resp.RespondError(w, r, customErr)
			return
		}

		signature := r.Header.Get(lineapi.SignatureHeader)
		if err := lineapi.VerifySignature(body, signature, deps.Config.LineChannelSecret); err != nil {
			if errors.Is(err, lineapi.ErrMissingSignature) {
				resp.RespondError(w, r, errs.NewError(errs.ErrMissingSignature))
			} else {
				resp.RespondError(w, r, errs.NewError(errs.ErrInvalidSignature))
			}
			return
		}

		var batch webhookBatch
		if customErr := req.DecodeJSON(body, &batch); customErr != nil {
			resp.RespondError(w, r, customErr)
			return
		}

		ingestID := uuid.New().String()
		recorded, failed, skipped := 0, 0, 0

		for _, event := range batch.Events {
			eventType := event.Type
			if eventType == "" {
				eventType = unknownEventType
			}

			userID := event.Source.UserID
			if userID == "" {
				skipped++
				continue
			}

			if err := deps.Store.Upsert(r.Context(), userID, eventType); err != nil {
				failed++
				logx.Error(err, "event upsert failed",
					"ingest_id", ingestID,
					"user_id", userID,
					"event_type", eventType,
				)
				continue
			}
			recorded++

			if eventType == "follow" && event.ReplyToken != "" {
				greetFollower(deps, r, event.ReplyToken, ingestID)
			}
		}

		logx.Info("webhook batch ingested",
			"ingest_id", ingestID,
			"events", len(batch.Events),
			"recorded", recorded,
			"failed", failed,
			"skipped", skipped,
		)

		resp.RespondRaw(w, r, http.StatusOK, webhookAck{OK: true, Received: len(batch.Events)})
	}
}

// greetFollower sends a best-effort welcome reply to a new follower.
// Reply failures are logged and never affect the webhook response.
func greetFollower(deps *AppDeps, r *http.Request, replyToken, ingestID string) {
	messages := []lineapi.TextMessage{
		lineapi.NewTextMessage("Thanks for following!"),
	}
	if err := deps.Line.Reply(r.Context(), replyToken, messages); err != nil {
		logx.Warn("follow reply failed", "ingest_id", ingestID, "reason", err.Error())
	}
}

// HandleLineWebhookProbe answers the platform's GET liveness probe for the
// webhook URL. No auth, no side effects.
func HandleLineWebhookProbe() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		resp.RespondRaw(w, r, http.StatusOK, map[string]bool{"ok": true})
	}
}
