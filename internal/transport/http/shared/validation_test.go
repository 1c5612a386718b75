package shared

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func TestParseDate(t *testing.T) {
	cases := []struct {
		in   string
		want time.Time
		ok   bool
	}{
		{"2026-01-15", time.Date(2026, 1, 15, 0, 0, 0, 0, time.UTC), true},
		{"2026-01-15T09:30:00Z", time.Date(2026, 1, 15, 9, 30, 0, 0, time.UTC), true},
		{"", time.Time{}, true},
		{"15/01/2026", time.Time{}, false},
	}
	for _, tc := range cases {
		got, err := ParseDate(tc.in)
		if tc.ok && err != nil {
			t.Fatalf("ParseDate(%q): %v", tc.in, err)
		}
		if !tc.ok {
			if err == nil {
				t.Fatalf("ParseDate(%q): expected error", tc.in)
			}
			continue
		}
		if !got.Equal(tc.want) {
			t.Fatalf("ParseDate(%q) = %v, want %v", tc.in, got, tc.want)
		}
	}
}

func TestValidatorCollectsSortedIssues(t *testing.T) {
	v := NewValidator()
	v.Positive("typeId", 0, "is required")
	v.Required("firstName", " ", "is required")
	start, _ := v.Date("startDate", "2026-06-01")
	end, _ := v.Date("endDate", "2026-01-01")
	v.DateOrder("startDate", start, "endDate", end)

	if !v.HasIssues() {
		t.Fatal("expected issues")
	}
	issues := v.Issues()
	if len(issues) != 4 {
		t.Fatalf("expected 4 issues, got %d: %+v", len(issues), issues)
	}
	for i := 1; i < len(issues); i++ {
		if issues[i-1].Field > issues[i].Field {
			t.Fatalf("issues not sorted by field: %+v", issues)
		}
	}
}

func TestValidatorRejectWritesEnvelope(t *testing.T) {
	v := NewValidator()
	v.Add("weightage", "must be between 0 and 100")

	rec := httptest.NewRecorder()
	if !v.Reject(rec, "req-1") {
		t.Fatal("expected Reject to report issues")
	}
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}

	clean := NewValidator()
	rec = httptest.NewRecorder()
	if clean.Reject(rec, "req-1") {
		t.Fatal("expected no rejection without issues")
	}
}

func TestParsePaginationCapsLimit(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/?limit=900&offset=20", nil)
	page := ParsePagination(req, 100, 500)
	if page.Limit != 500 || page.Offset != 20 {
		t.Fatalf("unexpected pagination: %+v", page)
	}

	req = httptest.NewRequest(http.MethodGet, "/?limit=-1&offset=-5", nil)
	page = ParsePagination(req, 100, 500)
	if page.Limit != 100 || page.Offset != 0 {
		t.Fatalf("expected defaults for bad values, got %+v", page)
	}
}
