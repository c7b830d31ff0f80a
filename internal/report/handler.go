package report

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/kasira-pos/kasira-pos/internal/platform/httpx"
)

// Handler exposes the sales report endpoint.
type Handler struct {
	logger  *slog.Logger
	service *Service
}

// NewHandler constructs a Handler instance.
func NewHandler(logger *slog.Logger, service *Service) *Handler {
	return &Handler{logger: logger, service: service}
}

// MountRoutes registers report routes on the provided router.
func (h *Handler) MountRoutes(r chi.Router) {
	r.Get("/sales", h.sales)
}

func (h *Handler) sales(w http.ResponseWriter, r *http.Request) {
	period := Period(r.URL.Query().Get("period"))
	if period == "" {
		period = PeriodDaily
	}
	if !period.Valid() {
		httpx.Problem(w, http.StatusBadRequest, "Validation Failed", "period must be daily, weekly, monthly or yearly")
		return
	}

	out, err := h.service.Sales(r.Context(), period)
	if err != nil {
		h.logger.Error("sales report", "error", err, "period", period)
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, out)
}
