package audithandler

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"

	"appraisal/internal/domain/audit"
	"appraisal/internal/domain/auth"
	"appraisal/internal/transport/http/middleware"
)

func TestParseFilter(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/audit/events?action=appraisal.status&entityType=appraisal&actorId=7", nil)
	filter := parseFilter(req)
	if filter.Action != "appraisal.status" || filter.EntityType != "appraisal" || filter.ActorID != 7 {
		t.Fatalf("unexpected filter: %+v", filter)
	}

	req = httptest.NewRequest(http.MethodGet, "/audit/events?actorId=nope", nil)
	filter = parseFilter(req)
	if filter.ActorID != 0 {
		t.Fatalf("expected malformed actorId to be ignored, got %d", filter.ActorID)
	}
}

func TestListEventsRequiresHR(t *testing.T) {
	const secret = "test-secret"
	router := chi.NewRouter()
	router.Use(middleware.Auth(secret))
	NewHandler(audit.New(nil)).RegisterRoutes(router)

	req := httptest.NewRequest(http.MethodGet, "/audit/events", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 without token, got %d", rec.Code)
	}

	token, err := auth.GenerateToken(secret, auth.Claims{UserID: 1, EmployeeID: 2, RoleName: auth.RoleEmployee}, time.Minute)
	if err != nil {
		t.Fatalf("generate token: %v", err)
	}
	req = httptest.NewRequest(http.MethodGet, "/audit/events", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	if rec.Code != http.StatusForbidden {
		t.Fatalf("expected 403 for non-hr role, got %d", rec.Code)
	}
}
