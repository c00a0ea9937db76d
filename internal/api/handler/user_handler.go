package handler

import (
	"encoding/json"
	"net/http"

	"taskmanager/internal/app/service"
	"taskmanager/internal/common"

	"github.com/go-chi/chi/v5"
)

type UserHandler struct {
	userService *service.UserService
}

func NewUserHandler(userService *service.UserService) *UserHandler {
	return &UserHandler{userService: userService}
}

// RegisterPublicRoutes mounts the routes that need no token.
func (h *UserHandler) RegisterPublicRoutes(r chi.Router) {
	r.Post("/", h.create)
}

// RegisterProtectedRoutes mounts the routes behind the auth middleware.
func (h *UserHandler) RegisterProtectedRoutes(r chi.Router) {
	r.Get("/{userId}", h.findByID)
}

// create is the user-creation half of registration, used by administrative
// flows. No token is returned.
func (h *UserHandler) create(w http.ResponseWriter, r *http.Request) {
	var req service.RegisterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		common.RespondWithError(w, http.StatusBadRequest, "bad_request", "invalid request payload")
		return
	}

	user, err := h.userService.Create(r.Context(), req)
	if err != nil {
		common.RespondWithDomainError(w, err)
		return
	}
	common.RespondWithJSON(w, http.StatusCreated, user)
}

func (h *UserHandler) findByID(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "userId")

	user, err := h.userService.FindByID(r.Context(), id)
	if err != nil {
		common.RespondWithDomainError(w, err)
		return
	}
	common.RespondWithJSON(w, http.StatusOK, user)
}
