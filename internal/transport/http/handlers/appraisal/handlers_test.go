package appraisalhandler

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"appraisal/internal/domain/appraisal"
	"appraisal/internal/transport/http/api"
)

func decodeEnvelope(t *testing.T, rec *httptest.ResponseRecorder) api.Envelope {
	t.Helper()
	var envelope api.Envelope
	if err := json.NewDecoder(rec.Body).Decode(&envelope); err != nil {
		t.Fatalf("decode envelope: %v", err)
	}
	return envelope
}

func TestWriteDomainErrorMapping(t *testing.T) {
	cases := []struct {
		name   string
		err    error
		status int
		code   string
	}{
		{"not found", &appraisal.NotFoundError{Resource: "appraisal", ID: 7}, http.StatusNotFound, "not_found"},
		{"conflict", &appraisal.ConflictError{Reason: "goal is linked elsewhere"}, http.StatusConflict, "conflict"},
		{"forbidden", &appraisal.ForbiddenError{Reason: "not a participant"}, http.StatusForbidden, "forbidden"},
		{"validation", &appraisal.ValidationError{Field: "typeId", Reason: "missing"}, http.StatusBadRequest, "validation_error"},
		{"transition", &appraisal.InvalidTransitionError{From: appraisal.StatusDraft, To: appraisal.StatusComplete}, http.StatusBadRequest, "invalid_transition"},
		{"weightage", &appraisal.WeightageError{Total: 110}, http.StatusBadRequest, "weightage_invalid"},
		{"stage", &appraisal.StageViolationError{Status: appraisal.StatusDraft, Group: appraisal.FieldGroupSelfAssessment}, http.StatusBadRequest, "stage_violation"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			writeDomainError(rec, "req-1", tc.err)
			if rec.Code != tc.status {
				t.Fatalf("expected status %d, got %d", tc.status, rec.Code)
			}
			envelope := decodeEnvelope(t, rec)
			if envelope.Success {
				t.Fatal("expected failure envelope")
			}
			if envelope.Error == nil || envelope.Error.Code != tc.code {
				t.Fatalf("expected code %s, got %+v", tc.code, envelope.Error)
			}
			if envelope.RequestID != "req-1" {
				t.Fatalf("expected request id to be echoed, got %q", envelope.RequestID)
			}
		})
	}
}

func TestWriteDomainErrorTransitionDetails(t *testing.T) {
	rec := httptest.NewRecorder()
	writeDomainError(rec, "req-2", &appraisal.InvalidTransitionError{From: appraisal.StatusSubmitted, To: appraisal.StatusComplete})

	var payload struct {
		Error struct {
			Details struct {
				From string `json:"from"`
				To   string `json:"to"`
			} `json:"details"`
		} `json:"error"`
	}
	if err := json.NewDecoder(rec.Body).Decode(&payload); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if payload.Error.Details.From != "submitted" || payload.Error.Details.To != "complete" {
		t.Fatalf("expected transition endpoints in details, got %+v", payload.Error.Details)
	}
}
