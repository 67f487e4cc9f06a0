package handler

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/proledger/proledger/internal/handler/dto"
	"github.com/proledger/proledger/internal/model"
	"github.com/proledger/proledger/internal/service"
)

// UserHandler handles HTTP requests for profile operations.
type UserHandler struct {
	svc    *service.UserService
	logger *slog.Logger
}

// NewUserHandler creates a new UserHandler.
func NewUserHandler(svc *service.UserService, logger *slog.Logger) *UserHandler {
	return &UserHandler{svc: svc, logger: logger}
}

// Create handles POST /users.
func (h *UserHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req dto.CreateUserRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "INVALID_JSON", "Invalid request body")
		return
	}

	input := service.CreateUserInput{
		Name:  req.Name,
		Email: req.Email,
		Age:   req.Age,
	}
	if req.Address != nil {
		input.Address = &model.Address{
			City:    req.Address.City,
			Country: req.Address.Country,
			Zip:     req.Address.Zip,
		}
	}

	user, err := h.svc.CreateUser(r.Context(), input)
	if err != nil {
		handleServiceError(w, h.logger, err)
		return
	}

	h.logger.Info("user_created", "user_id", user.ID.Hex())

	writeJSON(w, http.StatusCreated, dto.ToUserResponse(user))
}

// List handles GET /users.
func (h *UserHandler) List(w http.ResponseWriter, r *http.Request) {
	users, err := h.svc.ListUsers(r.Context())
	if err != nil {
		handleServiceError(w, h.logger, err)
		return
	}

	writeJSON(w, http.StatusOK, dto.ToUserResponses(users))
}
