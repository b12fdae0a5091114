package handler

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/roguepikachu/namesmith/internal/domain"
	"github.com/roguepikachu/namesmith/internal/namegen"
	"github.com/roguepikachu/namesmith/internal/service"
	"github.com/roguepikachu/namesmith/pkg"
	"github.com/roguepikachu/namesmith/pkg/ctxutil"
)

type fakeNameService struct {
	names      []domain.GeneratedName
	err        error
	found      []domain.DomainAvailability
	status     service.QuotaStatus
	gotClient  string
	gotQuery   string
	gotFilters domain.FilterSelection
	gotName    string
}

func (f *fakeNameService) Generate(_ context.Context, clientID, query string, filters domain.FilterSelection) ([]domain.GeneratedName, error) {
	f.gotClient, f.gotQuery, f.gotFilters = clientID, query, filters
	return f.names, f.err
}

func (f *fakeNameService) CheckDomains(_ context.Context, name string) []domain.DomainAvailability {
	f.gotName = name
	return f.found
}

func (f *fakeNameService) QuotaStatus(_ context.Context, clientID string) service.QuotaStatus {
	f.gotClient = clientID
	return f.status
}

func newTestRouter(svc NameService) *gin.Engine {
	gin.SetMode(gin.TestMode)
	h := NewHandler(svc)
	r := gin.New()
	r.Use(func(c *gin.Context) {
		ctx := ctxutil.WithClientID(c.Request.Context(), c.GetHeader("X-Client-ID"))
		c.Request = c.Request.WithContext(ctx)
		c.Next()
	})
	r.POST("/v1/names", h.Generate)
	r.GET("/v1/names/:name/domains", h.Domains)
	r.GET("/v1/quota", h.Quota)
	return r
}

func postNames(r *gin.Engine, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, "/v1/names", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Client-ID", "client-1")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func decodeError(t *testing.T, w *httptest.ResponseRecorder) pkg.ErrorBody {
	t.Helper()
	var resp pkg.ErrorResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to unmarshal error: %v", err)
	}
	return resp.Error
}

func TestGenerate_OK(t *testing.T) {
	svc := &fakeNameService{names: []domain.GeneratedName{{ID: "1", Name: "Lumina", Description: "A bright name."}}}
	r := newTestRouter(svc)

	w := postNames(r, `{"query":"coffee","filters":{"purpose":{"type":"preset","value":"Brand"},"style":{"type":"custom","value":"Cozy"},"specialRequirements":["Rhyming"]}}`)
	if w.Code != http.StatusOK {
		t.Fatalf("want 200, got %d: %s", w.Code, w.Body.String())
	}
	var resp domain.GenerateNamesResponseDTO
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatal(err)
	}
	if len(resp.Items) != 1 || resp.Items[0].Name != "Lumina" {
		t.Fatalf("unexpected items %+v", resp.Items)
	}
	if svc.gotClient != "client-1" || svc.gotQuery != "coffee" {
		t.Fatalf("service got client=%q query=%q", svc.gotClient, svc.gotQuery)
	}
	if svc.gotFilters.Purpose.Value != "Brand" || !svc.gotFilters.Style.IsCustom() {
		t.Fatalf("filters not decoded: %+v", svc.gotFilters)
	}
	if len(svc.gotFilters.SpecialRequirements) != 1 || svc.gotFilters.SpecialRequirements[0] != domain.RequirementRhyming {
		t.Fatalf("special requirements not decoded: %+v", svc.gotFilters.SpecialRequirements)
	}
}

func TestGenerate_DefaultFiltersWhenOmitted(t *testing.T) {
	svc := &fakeNameService{names: []domain.GeneratedName{}}
	r := newTestRouter(svc)
	w := postNames(r, `{"query":"coffee"}`)
	if w.Code != http.StatusOK {
		t.Fatalf("want 200, got %d", w.Code)
	}
	if svc.gotFilters.Purpose.Kind != domain.FilterPreset || !svc.gotFilters.Purpose.IsEmpty() {
		t.Fatalf("want default filters, got %+v", svc.gotFilters)
	}
	if !strings.Contains(w.Body.String(), `"items":[]`) {
		t.Fatalf("want empty items array, got %s", w.Body.String())
	}
}

func TestGenerate_Errors(t *testing.T) {
	tests := []struct {
		name     string
		body     string
		err      error
		wantCode int
		wantErr  string
		wantMsg  string
	}{
		{"malformed json", `{"query":`, nil, http.StatusBadRequest, "bad_request", "invalid request"},
		{"missing query", `{}`, nil, http.StatusBadRequest, "bad_request", "invalid request"},
		{"blank query", `{"query":"   "}`, service.ErrEmptyQuery, http.StatusBadRequest, "bad_request", "query is required"},
		{"invalid filters", `{"query":"x"}`, fmt.Errorf("%w: %w", service.ErrInvalidFilters, domain.ErrInvalidFilter), http.StatusBadRequest, "invalid_filters", "invalid filters"},
		{"quota exceeded", `{"query":"x"}`, service.ErrQuotaExceeded, http.StatusTooManyRequests, "quota_exceeded", "Daily limit reached. Please try again tomorrow!"},
		{"generation failed", `{"query":"x"}`, fmt.Errorf("generate names: %w", &namegen.GenerationError{Err: errors.New("boom")}), http.StatusBadGateway, "generation_failed", namegen.UserMessage},
		{"unexpected", `{"query":"x"}`, errors.New("weird"), http.StatusInternalServerError, "internal_error", "internal server error"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := newTestRouter(&fakeNameService{err: tt.err})
			w := postNames(r, tt.body)
			if w.Code != tt.wantCode {
				t.Fatalf("want %d, got %d: %s", tt.wantCode, w.Code, w.Body.String())
			}
			got := decodeError(t, w)
			if got.Code != tt.wantErr || got.Message != tt.wantMsg {
				t.Fatalf("got error %+v", got)
			}
			if strings.Count(w.Body.String(), `"error"`) != 1 {
				t.Fatalf("want exactly one error object, got %s", w.Body.String())
			}
		})
	}
}

func TestDomains(t *testing.T) {
	svc := &fakeNameService{found: []domain.DomainAvailability{{Zone: ".com", Available: true}}}
	r := newTestRouter(svc)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/v1/names/Lumina/domains", nil))
	if w.Code != http.StatusOK {
		t.Fatalf("want 200, got %d", w.Code)
	}
	var resp domain.DomainAvailabilityResponseDTO
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatal(err)
	}
	if resp.Name != "Lumina" || len(resp.Items) != 1 || resp.Items[0].Zone != ".com" {
		t.Fatalf("unexpected response %+v", resp)
	}
	if svc.gotName != "Lumina" {
		t.Fatalf("service got %q", svc.gotName)
	}
}

func TestDomains_NoneAvailable(t *testing.T) {
	r := newTestRouter(&fakeNameService{})
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/v1/names/x/domains", nil))
	if w.Code != http.StatusOK {
		t.Fatalf("want 200, got %d", w.Code)
	}
	if !strings.Contains(w.Body.String(), `"items":[]`) {
		t.Fatalf("want empty items, got %s", w.Body.String())
	}
}

func TestQuota(t *testing.T) {
	reset := time.Date(2025, 9, 2, 12, 0, 0, 0, time.UTC)
	tests := []struct {
		name      string
		status    service.QuotaStatus
		wantReset bool
	}{
		{"fresh client", service.QuotaStatus{Used: 0, Limit: 10, Remaining: 10}, false},
		{"partially used", service.QuotaStatus{Used: 3, Limit: 10, Remaining: 7, ResetAt: reset}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := &fakeNameService{status: tt.status}
			r := newTestRouter(svc)
			req := httptest.NewRequest(http.MethodGet, "/v1/quota", nil)
			req.Header.Set("X-Client-ID", "client-9")
			w := httptest.NewRecorder()
			r.ServeHTTP(w, req)
			if w.Code != http.StatusOK {
				t.Fatalf("want 200, got %d", w.Code)
			}
			var resp domain.QuotaStatusResponseDTO
			if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
				t.Fatal(err)
			}
			if resp.Used != tt.status.Used || resp.Limit != tt.status.Limit || resp.Remaining != tt.status.Remaining {
				t.Fatalf("unexpected response %+v", resp)
			}
			if (resp.ResetAt != nil) != tt.wantReset {
				t.Fatalf("reset_at presence = %v, want %v", resp.ResetAt != nil, tt.wantReset)
			}
			if tt.wantReset && !resp.ResetAt.Equal(reset) {
				t.Fatalf("reset_at = %v", resp.ResetAt)
			}
			if svc.gotClient != "client-9" {
				t.Fatalf("service got client %q", svc.gotClient)
			}
		})
	}
}
