// Package handler provides HTTP handler functions for the namesmith API.
package handler

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/roguepikachu/namesmith/internal/domain"
	"github.com/roguepikachu/namesmith/internal/namegen"
	"github.com/roguepikachu/namesmith/internal/service"
	"github.com/roguepikachu/namesmith/pkg"
	"github.com/roguepikachu/namesmith/pkg/ctxutil"
	"github.com/roguepikachu/namesmith/pkg/logger"
)

// NameService defines the handler's dependency contract.
type NameService interface {
	Generate(ctx context.Context, clientID, query string, filters domain.FilterSelection) ([]domain.GeneratedName, error)
	CheckDomains(ctx context.Context, name string) []domain.DomainAvailability
	QuotaStatus(ctx context.Context, clientID string) service.QuotaStatus
}

// Handler serves the name generation endpoints.
type Handler struct {
	svc NameService
}

// NewHandler constructs a Handler with the given NameService.
func NewHandler(svc NameService) *Handler {
	return &Handler{svc: svc}
}

// Generate handles POST /v1/names.
func (h *Handler) Generate(c *gin.Context) {
	ctx := c.Request.Context()
	var req domain.GenerateNamesRequestDTO
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Error(ctx, "failed to bind JSON: %s", err.Error())
		body := pkg.NewError("bad_request", "invalid request")
		body.Error.Details = err.Error()
		c.JSON(http.StatusBadRequest, body)
		return
	}
	filters := domain.DefaultFilters()
	if req.Filters != nil {
		filters = *req.Filters
	}

	names, err := h.svc.Generate(ctx, ctxutil.ClientID(ctx), req.Query, filters)
	if err != nil {
		h.writeGenerateError(c, err)
		return
	}
	logger.With(ctx, map[string]any{"count": len(names)}).Info("names generated")
	c.JSON(http.StatusOK, domain.GenerateNamesResponseDTO{Items: names})
}

func (h *Handler) writeGenerateError(c *gin.Context, err error) {
	var genErr *namegen.GenerationError
	switch {
	case errors.Is(err, service.ErrEmptyQuery):
		c.JSON(http.StatusBadRequest, pkg.NewError("bad_request", "query is required"))
	case errors.Is(err, service.ErrInvalidFilters):
		body := pkg.NewError("invalid_filters", "invalid filters")
		body.Error.Details = err.Error()
		c.JSON(http.StatusBadRequest, body)
	case errors.Is(err, service.ErrQuotaExceeded):
		c.JSON(http.StatusTooManyRequests, pkg.NewError("quota_exceeded", service.QuotaExceededMessage))
	case errors.As(err, &genErr):
		c.JSON(http.StatusBadGateway, pkg.NewError("generation_failed", namegen.UserMessage))
	default:
		logger.Error(c.Request.Context(), "failed to generate names: %s", err.Error())
		c.JSON(http.StatusInternalServerError, pkg.NewError("internal_error", "internal server error"))
	}
}

// Domains handles GET /v1/names/:name/domains. It always answers 200.
func (h *Handler) Domains(c *gin.Context) {
	ctx := c.Request.Context()
	name := strings.TrimSpace(c.Param("name"))
	items := h.svc.CheckDomains(ctx, name)
	if items == nil {
		items = []domain.DomainAvailability{}
	}
	logger.With(ctx, map[string]any{"name": name, "available": len(items)}).Debug("domains checked")
	c.JSON(http.StatusOK, domain.DomainAvailabilityResponseDTO{Name: name, Items: items})
}

// Quota handles GET /v1/quota.
func (h *Handler) Quota(c *gin.Context) {
	ctx := c.Request.Context()
	st := h.svc.QuotaStatus(ctx, ctxutil.ClientID(ctx))
	resp := domain.QuotaStatusResponseDTO{Used: st.Used, Limit: st.Limit, Remaining: st.Remaining}
	if !st.ResetAt.IsZero() {
		v := st.ResetAt.UTC()
		resp.ResetAt = &v
	}
	c.JSON(http.StatusOK, resp)
}
