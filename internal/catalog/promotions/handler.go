package promotions

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"

	"github.com/kasira-pos/kasira-pos/internal/catalog/shared"
	"github.com/kasira-pos/kasira-pos/internal/platform/httpx"
	internalShared "github.com/kasira-pos/kasira-pos/internal/shared"
)

// Handler manages promotion admin endpoints.
type Handler struct {
	logger    *slog.Logger
	service   *Service
	validator *validator.Validate
}

func NewHandler(logger *slog.Logger, service *Service) *Handler {
	return &Handler{logger: logger, service: service, validator: validator.New()}
}

// MountRoutes registers promotion routes.
func (h *Handler) MountRoutes(r chi.Router) {
	r.Get("/", h.list)
	r.Post("/", h.create)
	r.Get("/{id}", h.show)
	r.Put("/{id}", h.update)
	r.Delete("/{id}", h.delete)
}

type promotionForm struct {
	Code        string `json:"code" validate:"required"`
	Type        string `json:"type" validate:"required,oneof=percent fixed"`
	Value       string `json:"value" validate:"required"`
	Status      string `json:"status" validate:"omitempty,oneof=active inactive"`
	Description string `json:"description"`
}

type promotionJSON struct {
	ID          string    `json:"id"`
	Code        string    `json:"code"`
	Type        string    `json:"type"`
	Value       string    `json:"value"`
	Status      string    `json:"status"`
	Description string    `json:"description"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

func (f promotionForm) toDomain() (Promotion, error) {
	var value int64
	var err error
	switch f.Type {
	case TypePercent:
		value, err = internalShared.ParsePercent(f.Value)
	case TypeFixed:
		value, err = internalShared.ParseAmount(f.Value)
	}
	if err != nil {
		return Promotion{}, fmt.Errorf("value: %w", err)
	}
	return Promotion{
		Code:        f.Code,
		Type:        f.Type,
		Value:       value,
		Status:      f.Status,
		Description: f.Description,
	}, nil
}

func toJSON(p Promotion) promotionJSON {
	value := internalShared.FormatAmount(p.Value)
	if p.Type == TypePercent {
		value = internalShared.FormatPercent(p.Value)
	}
	return promotionJSON{
		ID:          p.ID,
		Code:        p.Code,
		Type:        p.Type,
		Value:       value,
		Status:      p.Status,
		Description: p.Description,
		CreatedAt:   p.CreatedAt,
		UpdatedAt:   p.UpdatedAt,
	}
}

func (h *Handler) list(w http.ResponseWriter, r *http.Request) {
	page, _ := strconv.Atoi(r.URL.Query().Get("page"))
	if page < 1 {
		page = 1
	}
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
	if limit < 1 {
		limit = 10
	}
	filters := shared.ListFilters{
		Page:    page,
		Limit:   limit,
		Search:  r.URL.Query().Get("search"),
		SortBy:  r.URL.Query().Get("sort"),
		SortDir: r.URL.Query().Get("dir"),
	}
	if status := r.URL.Query().Get("status"); status != "" {
		filters.Status = &status
	}

	promotions, total, err := h.service.List(r.Context(), filters)
	if err != nil {
		h.logger.Error("list promotions failed", "error", err)
		httpx.Problem(w, http.StatusInternalServerError, "Internal Error", "failed to load promotions")
		return
	}

	items := make([]promotionJSON, 0, len(promotions))
	for _, p := range promotions {
		items = append(items, toJSON(p))
	}
	httpx.JSON(w, http.StatusOK, map[string]any{
		"items": items,
		"total": total,
		"page":  page,
		"limit": limit,
	})
}

func (h *Handler) show(w http.ResponseWriter, r *http.Request) {
	promotion, err := h.service.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		h.respondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, toJSON(promotion))
}

func (h *Handler) create(w http.ResponseWriter, r *http.Request) {
	var form promotionForm
	if err := httpx.DecodeJSON(r, &form); err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Bad Request", "invalid JSON body")
		return
	}
	if err := h.validator.Struct(form); err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Validation Failed", err.Error())
		return
	}

	promotion, err := form.toDomain()
	if err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Validation Failed", err.Error())
		return
	}

	created, err := h.service.Create(r.Context(), promotion)
	if err != nil {
		h.respondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusCreated, toJSON(created))
}

func (h *Handler) update(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	var form promotionForm
	if err := httpx.DecodeJSON(r, &form); err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Bad Request", "invalid JSON body")
		return
	}
	if err := h.validator.Struct(form); err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Validation Failed", err.Error())
		return
	}

	promotion, err := form.toDomain()
	if err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Validation Failed", err.Error())
		return
	}

	if err := h.service.Update(r.Context(), id, promotion); err != nil {
		h.respondError(w, err)
		return
	}

	updated, err := h.service.Get(r.Context(), id)
	if err != nil {
		h.respondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, toJSON(updated))
}

func (h *Handler) delete(w http.ResponseWriter, r *http.Request) {
	if err := h.service.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		h.respondError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) respondError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, internalShared.ErrNotFound):
		httpx.Problem(w, http.StatusNotFound, "Not Found", "promotion not found")
	case errors.Is(err, ErrDuplicateCode):
		httpx.Problem(w, http.StatusConflict, "Duplicate", err.Error())
	default:
		httpx.Problem(w, http.StatusBadRequest, "Validation Failed", err.Error())
	}
}
