package handler

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/proledger/proledger/internal/handler/dto"
	"github.com/proledger/proledger/internal/service"
)

// OrderHandler handles HTTP requests for order operations, including the
// cascading user deletion it orchestrates.
type OrderHandler struct {
	svc    *service.OrderService
	logger *slog.Logger
}

// NewOrderHandler creates a new OrderHandler.
func NewOrderHandler(svc *service.OrderService, logger *slog.Logger) *OrderHandler {
	return &OrderHandler{svc: svc, logger: logger}
}

// Create handles POST /order.
func (h *OrderHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req dto.CreateOrderRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "INVALID_JSON", "Invalid request body")
		return
	}

	input := service.CreateOrderInput{
		UserID: req.UserID,
		Items:  dto.ToLineItems(req.Items),
	}

	order, err := h.svc.CreateOrder(r.Context(), input)
	if err != nil {
		handleServiceError(w, h.logger, err)
		return
	}

	h.logger.Info("order_created",
		"order_id", order.ID.Hex(),
		"user_id", order.UserID.Hex(),
		"total_amount", order.TotalAmount,
	)

	writeJSON(w, http.StatusCreated, dto.ToOrderResponse(order))
}

// ListForUser handles GET /orders/{userID}.
func (h *OrderHandler) ListForUser(w http.ResponseWriter, r *http.Request) {
	userID := chi.URLParam(r, "userID")

	orders, err := h.svc.ListOrdersForUser(r.Context(), userID)
	if err != nil {
		handleServiceError(w, h.logger, err)
		return
	}

	writeJSON(w, http.StatusOK, dto.ToOrderResponses(orders))
}

// DeleteUser handles DELETE /users/{id}: the cascading delete composed of
// removing the user's orders first and the user record second.
func (h *OrderHandler) DeleteUser(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	result, err := h.svc.DeleteUserWithOrders(r.Context(), id)
	if err != nil {
		if errors.Is(err, service.ErrCascadeIncomplete) {
			h.logger.Error("cascade_incomplete",
				"user_id", id,
				"orders_deleted", result.OrdersDeleted,
			)
			writeJSON(w, http.StatusInternalServerError, dto.ErrorResponse{
				Error: "Orders were deleted but the user record could not be removed",
				Code:  "CASCADE_INCOMPLETE",
			})
			return
		}
		handleServiceError(w, h.logger, err)
		return
	}

	h.logger.Info("user_deleted",
		"user_id", id,
		"orders_deleted", result.OrdersDeleted,
		"user_existed", result.UserDeleted,
	)

	writeJSON(w, http.StatusOK, dto.CascadeDeleteResponse{
		Message:       "User deleted successfully with orders",
		OrdersDeleted: result.OrdersDeleted,
		UserDeleted:   result.UserDeleted,
	})
}
