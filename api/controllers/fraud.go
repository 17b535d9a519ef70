package controllers

import (
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/kiranalabs/kirana-voice-backend/api/responses"
	"github.com/kiranalabs/kirana-voice-backend/api/validators"
	"github.com/kiranalabs/kirana-voice-backend/internal/fraud"
	pkgerrors "github.com/kiranalabs/kirana-voice-backend/pkg/errors"
	"github.com/kiranalabs/kirana-voice-backend/pkg/logger"
	"github.com/kiranalabs/kirana-voice-backend/pkg/metrics"
)

type fraudLookupPayload struct {
	Utterance string `json:"utterance" validate:"required"`
}

type fraudVerifyPayload struct {
	Answer string `json:"answer"`
}

type fraudUpdatePayload struct {
	Status      string `json:"status" validate:"required"`
	OutcomeNote string `json:"outcome_note"`
}

// caseView is the external shape of a fraud case. The stored security answer
// never leaves the service.
type caseView struct {
	CaseID            string       `json:"case_id"`
	Username          string       `json:"username"`
	CustomerName      string       `json:"customer_name"`
	SecurityQuestion  string       `json:"security_question"`
	MaskedCard        string       `json:"masked_card"`
	TransactionAmount string       `json:"transaction_amount,omitempty"`
	MerchantName      string       `json:"merchant_name,omitempty"`
	Location          string       `json:"location,omitempty"`
	Timestamp         string       `json:"timestamp,omitempty"`
	Status            fraud.Status `json:"status"`
	OutcomeNote       string       `json:"outcome_note,omitempty"`
	LastUpdated       string       `json:"last_updated,omitempty"`
}

func viewOfCase(c fraud.Case) caseView {
	return caseView{
		CaseID:            c.CaseID,
		Username:          c.Username,
		CustomerName:      c.CustomerName,
		SecurityQuestion:  c.SecurityQuestion,
		MaskedCard:        c.MaskedCard,
		TransactionAmount: c.TransactionAmount,
		MerchantName:      c.MerchantName,
		Location:          c.Location,
		Timestamp:         c.Timestamp,
		Status:            c.Status,
		OutcomeNote:       c.OutcomeNote,
		LastUpdated:       c.LastUpdated,
	}
}

// FraudLookup extracts a customer identifier from a caller utterance and
// returns the matching case.
func FraudLookup(svc fraud.Service, m *metrics.ToolMetrics, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := logg.WithTool(r.Context(), "fraud_lookup")
		start := time.Now()

		var payload fraudLookupPayload
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			report(m, "fraud_lookup", start, err)
			responses.WriteError(ctx, logg, w, err)
			return
		}

		c, err := svc.LookupByUtterance(payload.Utterance)
		if err != nil {
			report(m, "fraud_lookup", start, err)
			responses.WriteError(ctx, logg, w, err)
			return
		}
		ctx = logg.WithCaseID(ctx, c.CaseID)

		report(m, "fraud_lookup", start, nil)
		responses.WriteSuccess(w, map[string]any{"case": viewOfCase(c)})
	}
}

// FraudVerify compares the caller's spoken answer against the case's stored
// security answer. A mismatch is a normal outcome, not an error.
func FraudVerify(svc fraud.Service, m *metrics.ToolMetrics, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := logg.WithTool(r.Context(), "fraud_verify")
		start := time.Now()

		caseID, err := caseIDParam(r)
		if err != nil {
			report(m, "fraud_verify", start, err)
			responses.WriteError(ctx, logg, w, err)
			return
		}
		ctx = logg.WithCaseID(ctx, caseID)

		var payload fraudVerifyPayload
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			report(m, "fraud_verify", start, err)
			responses.WriteError(ctx, logg, w, err)
			return
		}

		c, err := svc.Get(caseID)
		if err != nil {
			report(m, "fraud_verify", start, err)
			responses.WriteError(ctx, logg, w, err)
			return
		}

		verified := svc.Verify(c, payload.Answer)

		report(m, "fraud_verify", start, nil)
		responses.WriteSuccess(w, map[string]any{
			"case_id":  caseID,
			"verified": verified,
		})
	}
}

// FraudUpdate transitions a case's review status and records the outcome.
func FraudUpdate(svc fraud.Service, m *metrics.ToolMetrics, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := logg.WithTool(r.Context(), "fraud_update")
		start := time.Now()

		caseID, err := caseIDParam(r)
		if err != nil {
			report(m, "fraud_update", start, err)
			responses.WriteError(ctx, logg, w, err)
			return
		}
		ctx = logg.WithCaseID(ctx, caseID)

		var payload fraudUpdatePayload
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			report(m, "fraud_update", start, err)
			responses.WriteError(ctx, logg, w, err)
			return
		}

		updated, err := svc.UpdateCase(caseID, fraud.Status(payload.Status), payload.OutcomeNote)
		if err != nil {
			report(m, "fraud_update", start, err)
			responses.WriteError(ctx, logg, w, err)
			return
		}

		report(m, "fraud_update", start, nil)
		responses.WriteSuccess(w, map[string]any{"case": viewOfCase(updated)})
	}
}

func caseIDParam(r *http.Request) (string, error) {
	caseID := strings.TrimSpace(chi.URLParam(r, "caseID"))
	if caseID == "" {
		return "", pkgerrors.New(pkgerrors.CodeValidation, "case id is required")
	}
	return caseID, nil
}
