package stores

import (
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"

	"github.com/kasira-pos/kasira-pos/internal/platform/httpx"
	internalShared "github.com/kasira-pos/kasira-pos/internal/shared"
)

// Handler exposes the store profile endpoints.
type Handler struct {
	logger    *slog.Logger
	service   *Service
	validator *validator.Validate
}

func NewHandler(logger *slog.Logger, service *Service) *Handler {
	return &Handler{logger: logger, service: service, validator: validator.New()}
}

// MountRoutes registers store profile routes.
func (h *Handler) MountRoutes(r chi.Router) {
	r.Get("/", h.show)
	r.Put("/", h.save)
}

type storeForm struct {
	Name    string `json:"name" validate:"required"`
	Address string `json:"address"`
	Phone   string `json:"phone"`
}

type storeJSON struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Address   string    `json:"address"`
	Phone     string    `json:"phone"`
	UpdatedAt time.Time `json:"updated_at"`
}

func toJSON(s Store) storeJSON {
	return storeJSON{ID: s.ID, Name: s.Name, Address: s.Address, Phone: s.Phone, UpdatedAt: s.UpdatedAt}
}

func (h *Handler) show(w http.ResponseWriter, r *http.Request) {
	store, err := h.service.Get(r.Context())
	if err != nil {
		if errors.Is(err, internalShared.ErrNotFound) {
			httpx.Problem(w, http.StatusNotFound, "Not Found", "store profile not configured")
			return
		}
		h.logger.Error("get store failed", "error", err)
		httpx.Problem(w, http.StatusInternalServerError, "Internal Error", "failed to load store profile")
		return
	}
	httpx.JSON(w, http.StatusOK, toJSON(store))
}

func (h *Handler) save(w http.ResponseWriter, r *http.Request) {
	var form storeForm
	if err := httpx.DecodeJSON(r, &form); err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Bad Request", "invalid JSON body")
		return
	}
	if err := h.validator.Struct(form); err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Validation Failed", err.Error())
		return
	}

	saved, err := h.service.Save(r.Context(), Store{
		Name:    form.Name,
		Address: form.Address,
		Phone:   form.Phone,
	})
	if err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Validation Failed", err.Error())
		return
	}
	httpx.JSON(w, http.StatusOK, toJSON(saved))
}
