package handler

import (
	"encoding/json"
	"net/http"
	"strconv"

	"taskmanager/internal/api/middleware"
	"taskmanager/internal/app/service"
	"taskmanager/internal/common"

	"github.com/go-chi/chi/v5"
)

type TaskHandler struct {
	taskService *service.TaskService
}

func NewTaskHandler(taskService *service.TaskService) *TaskHandler {
	return &TaskHandler{taskService: taskService}
}

// RegisterRoutes expects to be mounted under /users/{userId}/tasks behind the
// auth middleware.
func (h *TaskHandler) RegisterRoutes(r chi.Router) {
	r.Post("/", h.create)
	r.Get("/", h.list)
	r.Get("/{taskId}", h.findByID)
	r.Put("/{taskId}", h.update)
	r.Delete("/{taskId}", h.delete)
}

func (h *TaskHandler) create(w http.ResponseWriter, r *http.Request) {
	authUserID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		common.RespondWithDomainError(w, common.ErrUnauthorized)
		return
	}

	var req service.TaskRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		common.RespondWithError(w, http.StatusBadRequest, "bad_request", "invalid request payload")
		return
	}

	task, err := h.taskService.Create(r.Context(), chi.URLParam(r, "userId"), authUserID, req)
	if err != nil {
		common.RespondWithDomainError(w, err)
		return
	}
	common.RespondWithJSON(w, http.StatusCreated, task)
}

func (h *TaskHandler) list(w http.ResponseWriter, r *http.Request) {
	authUserID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		common.RespondWithDomainError(w, common.ErrUnauthorized)
		return
	}

	page := queryInt(r, "page", 0)
	size := queryInt(r, "size", 10)
	status := r.URL.Query().Get("status")

	result, err := h.taskService.FindPage(r.Context(), chi.URLParam(r, "userId"), authUserID, status, page, size)
	if err != nil {
		common.RespondWithDomainError(w, err)
		return
	}
	common.RespondWithJSON(w, http.StatusOK, result)
}

func (h *TaskHandler) findByID(w http.ResponseWriter, r *http.Request) {
	authUserID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		common.RespondWithDomainError(w, common.ErrUnauthorized)
		return
	}

	task, err := h.taskService.FindByID(r.Context(), chi.URLParam(r, "taskId"), authUserID)
	if err != nil {
		common.RespondWithDomainError(w, err)
		return
	}
	common.RespondWithJSON(w, http.StatusOK, task)
}

func (h *TaskHandler) update(w http.ResponseWriter, r *http.Request) {
	authUserID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		common.RespondWithDomainError(w, common.ErrUnauthorized)
		return
	}

	var req service.TaskRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		common.RespondWithError(w, http.StatusBadRequest, "bad_request", "invalid request payload")
		return
	}

	task, err := h.taskService.Update(r.Context(), chi.URLParam(r, "taskId"), authUserID, req)
	if err != nil {
		common.RespondWithDomainError(w, err)
		return
	}
	common.RespondWithJSON(w, http.StatusOK, task)
}

func (h *TaskHandler) delete(w http.ResponseWriter, r *http.Request) {
	authUserID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		common.RespondWithDomainError(w, common.ErrUnauthorized)
		return
	}

	if err := h.taskService.Delete(r.Context(), chi.URLParam(r, "taskId"), authUserID); err != nil {
		common.RespondWithDomainError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func queryInt(r *http.Request, key string, fallback int) int {
	if value, err := strconv.Atoi(r.URL.Query().Get(key)); err == nil {
		return value
	}
	return fallback
}
