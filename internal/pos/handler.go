package pos

import (
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"

	"github.com/kasira-pos/kasira-pos/internal/platform/httpx"
	"github.com/kasira-pos/kasira-pos/internal/shared"
)

// Handler wires the cashier screen JSON endpoints.
type Handler struct {
	logger    *slog.Logger
	service   *Service
	validator *validator.Validate
}

// NewHandler constructs a Handler instance.
func NewHandler(logger *slog.Logger, service *Service) *Handler {
	return &Handler{
		logger:    logger,
		service:   service,
		validator: validator.New(),
	}
}

// MountRoutes registers POS routes on the provided router.
func (h *Handler) MountRoutes(r chi.Router) {
	r.Get("/catalog", h.catalog)
	r.Get("/cart", h.viewCart)
	r.Post("/cart/items", h.addItem)
	r.Patch("/cart/items/{productID}", h.changeQuantity)
	r.Delete("/cart/items/{productID}", h.removeItem)
	r.Put("/voucher", h.applyVoucher)
	r.Delete("/voucher", h.clearVoucher)
	r.Post("/checkout", h.checkout)
	r.Get("/transactions", h.listTransactions)
	r.Get("/transactions/{id}", h.showTransaction)
}

func (h *Handler) catalog(w http.ResponseWriter, r *http.Request) {
	snap, err := h.service.Snapshot(r.Context())
	if err != nil {
		h.logger.Error("load catalog snapshot", "error", err)
		h.respondError(w, err)
		return
	}

	products := make([]productJSON, 0, len(snap.Products))
	for _, p := range snap.Products {
		products = append(products, toProductJSON(p))
	}
	categories := make([]categoryJSON, 0, len(snap.Categories))
	for _, c := range snap.Categories {
		categories = append(categories, categoryJSON{ID: c.ID, Name: c.Name})
	}
	promotions := make([]promotionJSON, 0, len(snap.Promotions))
	for _, p := range snap.Promotions {
		promotions = append(promotions, toPromotionJSON(p))
	}

	httpx.JSON(w, http.StatusOK, map[string]any{
		"products":   products,
		"categories": categories,
		"promotions": promotions,
	})
}

func (h *Handler) viewCart(w http.ResponseWriter, r *http.Request) {
	httpx.JSON(w, http.StatusOK, toCartJSON(h.service.ViewCart(h.sessionID(r))))
}

type addItemRequest struct {
	ProductID string `json:"product_id" validate:"required"`
}

func (h *Handler) addItem(w http.ResponseWriter, r *http.Request) {
	var req addItemRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Bad Request", "invalid JSON body")
		return
	}
	if err := h.validator.Struct(req); err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Validation Failed", err.Error())
		return
	}

	view, err := h.service.AddItem(r.Context(), h.sessionID(r), req.ProductID)
	if err != nil {
		h.respondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, toCartJSON(view))
}

type changeQuantityRequest struct {
	Delta int64 `json:"delta" validate:"required"`
}

func (h *Handler) changeQuantity(w http.ResponseWriter, r *http.Request) {
	var req changeQuantityRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Bad Request", "invalid JSON body")
		return
	}
	if err := h.validator.Struct(req); err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Validation Failed", err.Error())
		return
	}

	view, err := h.service.ChangeQuantity(h.sessionID(r), chi.URLParam(r, "productID"), req.Delta)
	if err != nil {
		h.respondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, toCartJSON(view))
}

func (h *Handler) removeItem(w http.ResponseWriter, r *http.Request) {
	view, err := h.service.RemoveItem(h.sessionID(r), chi.URLParam(r, "productID"))
	if err != nil {
		h.respondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, toCartJSON(view))
}

type applyVoucherRequest struct {
	Code string `json:"code" validate:"required"`
}

func (h *Handler) applyVoucher(w http.ResponseWriter, r *http.Request) {
	var req applyVoucherRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Bad Request", "invalid JSON body")
		return
	}
	if err := h.validator.Struct(req); err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Validation Failed", err.Error())
		return
	}

	view, err := h.service.ApplyVoucher(r.Context(), h.sessionID(r), req.Code)
	if err != nil {
		h.respondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, toCartJSON(view))
}

func (h *Handler) clearVoucher(w http.ResponseWriter, r *http.Request) {
	view, err := h.service.ClearVoucher(h.sessionID(r))
	if err != nil {
		h.respondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, toCartJSON(view))
}

type checkoutRequest struct {
	PaymentMethod string `json:"payment_method" validate:"required"`
}

func (h *Handler) checkout(w http.ResponseWriter, r *http.Request) {
	var req checkoutRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Bad Request", "invalid JSON body")
		return
	}
	if err := h.validator.Struct(req); err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Validation Failed", err.Error())
		return
	}

	cashier := "Cashier"
	if sess := shared.SessionFromContext(r.Context()); sess != nil && sess.Identity().Name != "" {
		cashier = sess.Identity().Name
	}

	txn, err := h.service.Checkout(r.Context(), h.sessionID(r), PaymentMethod(req.PaymentMethod), cashier)
	if err != nil {
		h.logger.Warn("checkout failed", "error", err)
		h.respondError(w, err)
		return
	}

	receipt, err := h.service.Receipt(r.Context(), txn)
	if err != nil {
		// The sale is committed; a missing receipt header must not fail it.
		h.logger.Warn("render receipt", "error", err)
	}

	httpx.JSON(w, http.StatusCreated, map[string]any{
		"transaction": toTransactionJSON(txn),
		"receipt":     receipt,
	})
}

func (h *Handler) listTransactions(w http.ResponseWriter, r *http.Request) {
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))

	txns, err := h.service.Transactions(r.Context(), limit)
	if err != nil {
		h.logger.Error("list transactions", "error", err)
		h.respondError(w, err)
		return
	}

	items := make([]transactionJSON, 0, len(txns))
	for _, txn := range txns {
		items = append(items, toTransactionJSON(txn))
	}
	httpx.JSON(w, http.StatusOK, map[string]any{"items": items})
}

func (h *Handler) showTransaction(w http.ResponseWriter, r *http.Request) {
	txn, err := h.service.Transaction(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		h.respondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, toTransactionJSON(txn))
}

func (h *Handler) sessionID(r *http.Request) string {
	if sess := shared.SessionFromContext(r.Context()); sess != nil {
		return sess.ID
	}
	return ""
}

func (h *Handler) respondError(w http.ResponseWriter, err error) {
	switch {
	case isOneOf(err, ErrProductNotFound, ErrUnknownVoucher, ErrTransactionNotFound):
		httpx.Problem(w, http.StatusNotFound, "Not Found", err.Error())
	case isOneOf(err, ErrEmptyCart, ErrInvalidPayment):
		httpx.Problem(w, http.StatusBadRequest, "Validation Failed", err.Error())
	case isOneOf(err, ErrCommitInFlight, ErrInsufficientStock):
		httpx.Problem(w, http.StatusConflict, "Conflict", err.Error())
	default:
		httpx.RespondError(w, err)
	}
}
