package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/audiovault/backend/internal/models"
	"github.com/audiovault/backend/internal/services"
	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// UserService is the interface that wraps methods for user business logic.
type UserService interface {
	// Method CreateUser registers a new user and returns it with a freshly generated token.
	//
	// "name" parameter is the unique user name.
	//
	// If such name is already taken, or some other error occurs, the error will be returned together with "nil" value.
	CreateUser(ctx context.Context, name string) (*models.User, error)
	// Method DeleteUser deletes a user together with all audio records the user owns.
	//
	// "userID" parameter identifies the user to delete.
	//
	// If user with such ID does not exist, or some other error occurs, the error will be returned.
	DeleteUser(ctx context.Context, userID int) error
}

// UserHandler handles user-related HTTP requests
type UserHandler struct {
	BaseHandler
	userService UserService
}

// NewUserHandler creates a new user handler
func NewUserHandler(userService UserService, logger *zap.Logger) *UserHandler {
	return &UserHandler{
		BaseHandler: BaseHandler{Logger: logger},
		userService: userService,
	}
}

// RegisterRoutes registers all user handler routes
// Note: This assumes the router is already scoped to /api/v1
func (h *UserHandler) RegisterRoutes(r chi.Router) {
	r.Route("/users", func(r chi.Router) {
		r.Post("/", h.CreateUser)
		r.Delete("/{userId}", h.DeleteUser)
	})
}

// CreateUser handles POST /users
// @Summary Register a new user
// @Description Register a new user with a unique name. Returns the user ID and an upload token.
// @Tags users
// @Accept json
// @Produce json
// @Param request body models.CreateUserRequest true "User name"
// @Success 201 {object} models.CreateUserResponse
// @Failure 400 {object} map[string]string "Invalid request body or name already exists"
// @Failure 500 {object} map[string]string "Internal server error"
// @Router /users [post]
func (h *UserHandler) CreateUser(w http.ResponseWriter, r *http.Request) {
	var req models.CreateUserRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.Logger.Error("failed to decode request body", zap.Error(err))
		h.RespondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	req.Name = strings.TrimSpace(req.Name)
	if req.Name == "" {
		h.RespondError(w, http.StatusBadRequest, "name is required")
		return
	}

	user, err := h.userService.CreateUser(r.Context(), req.Name)
	if err != nil {
		if errors.Is(err, services.ErrNameTaken) {
			h.RespondError(w, http.StatusBadRequest, "username already exists")
			return
		}
		h.Logger.Error("failed to create user", zap.Error(err), zap.String("name", req.Name))
		h.RespondError(w, http.StatusInternalServerError, "failed to create user")
		return
	}

	h.RespondJSON(w, http.StatusCreated, models.CreateUserResponse{
		UserID: user.ID,
		Token:  user.Token,
	})
}

// DeleteUser handles DELETE /users/{userId}
// @Summary Delete a user
// @Description Delete a user and all audio records owned by the user.
// @Tags users
// @Produce json
// @Param userId path int true "User ID"
// @Success 200 {object} map[string]string "User deleted successfully"
// @Failure 400 {object} map[string]string "Invalid user ID"
// @Failure 404 {object} map[string]string "User not found"
// @Failure 500 {object} map[string]string "Internal server error"
// @Router /users/{userId} [delete]
func (h *UserHandler) DeleteUser(w http.ResponseWriter, r *http.Request) {
	userID, err := strconv.Atoi(chi.URLParam(r, "userId"))
	if err != nil {
		h.RespondError(w, http.StatusBadRequest, "invalid user id")
		return
	}

	if err := h.userService.DeleteUser(r.Context(), userID); err != nil {
		if errors.Is(err, services.ErrUserNotFound) {
			h.RespondError(w, http.StatusNotFound, "user not found")
			return
		}
		h.Logger.Error("failed to delete user", zap.Error(err), zap.Int("user_id", userID))
		h.RespondError(w, http.StatusInternalServerError, "failed to delete user")
		return
	}

	h.RespondJSON(w, http.StatusOK, map[string]string{"message": "user deleted successfully"})
}
