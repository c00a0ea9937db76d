package service

import (
	"context"
	"time"

	"taskmanager/internal/common"
	"taskmanager/internal/common/security"
	"taskmanager/internal/domain/model"
	"taskmanager/internal/domain/repository"

	"github.com/google/uuid"
)

const (
	defaultPageSize = 10
	maxPageSize     = 100
)

type TaskService struct {
	taskRepo repository.TaskRepository
}

func NewTaskService(taskRepo repository.TaskRepository) *TaskService {
	return &TaskService{taskRepo: taskRepo}
}

type TaskRequest struct {
	Title       string              `json:"title"`
	Description *string             `json:"description,omitempty"`
	Status      *model.TaskStatus   `json:"status,omitempty"`
	Priority    *model.TaskPriority `json:"priority,omitempty"`
	DueDate     *time.Time          `json:"due_date,omitempty"`
}

func validateTaskRequest(req TaskRequest) error {
	var fields []common.FieldError
	if req.Title == "" {
		fields = append(fields, common.FieldError{Field: "title", Message: "title is required"})
	} else if len(req.Title) > 255 {
		fields = append(fields, common.FieldError{Field: "title", Message: "title must be at most 255 characters"})
	}
	if req.Status != nil && !model.ValidStatus(*req.Status) {
		fields = append(fields, common.FieldError{Field: "status", Message: "status must be one of TODO, IN_PROGRESS, DONE"})
	}
	if req.Priority != nil && !model.ValidPriority(*req.Priority) {
		fields = append(fields, common.FieldError{Field: "priority", Message: "priority must be one of LOW, MEDIUM, HIGH"})
	}
	if len(fields) > 0 {
		return common.NewValidationError(fields...)
	}
	return nil
}

// Create adds a task owned by the authenticated user. The path user id is an
// addressing scope; creating inside someone else's scope fails closed.
func (s *TaskService) Create(ctx context.Context, pathUserID, authUserID string, req TaskRequest) (*model.Task, error) {
	if err := security.AssertOwner(pathUserID, authUserID); err != nil {
		return nil, err
	}
	if err := validateTaskRequest(req); err != nil {
		return nil, err
	}

	task := &model.Task{
		ID:          uuid.NewString(),
		Title:       req.Title,
		Description: req.Description,
		Status:      model.StatusTodo,
		Priority:    model.PriorityMedium,
		DueDate:     req.DueDate,
		OwnerID:     authUserID,
	}
	if req.Status != nil {
		task.Status = *req.Status
	}
	if req.Priority != nil {
		task.Priority = *req.Priority
	}

	if err := s.taskRepo.Create(ctx, task); err != nil {
		return nil, err
	}
	return task, nil
}

func (s *TaskService) FindByID(ctx context.Context, taskID, authUserID string) (*model.Task, error) {
	task, err := s.taskRepo.FindByID(ctx, taskID)
	if err != nil {
		return nil, err
	}
	if err := security.AssertOwner(task.OwnerID, authUserID); err != nil {
		return nil, err
	}
	return task, nil
}

// FindPage lists the owner's tasks, newest first, optionally filtered by
// status. statusFilter is the raw query value; empty means no filter.
func (s *TaskService) FindPage(ctx context.Context, pathUserID, authUserID, statusFilter string, page, size int) (model.Page[model.Task], error) {
	var empty model.Page[model.Task]

	if err := security.AssertOwner(pathUserID, authUserID); err != nil {
		return empty, err
	}

	status := model.TaskStatus(statusFilter)
	if statusFilter != "" && !model.ValidStatus(status) {
		return empty, common.NewValidationError(common.FieldError{
			Field: "status", Message: "status must be one of TODO, IN_PROGRESS, DONE",
		})
	}

	if page < 0 {
		page = 0
	}
	if size <= 0 {
		size = defaultPageSize
	}
	if size > maxPageSize {
		size = maxPageSize
	}

	tasks, total, err := s.taskRepo.FindPageByOwner(ctx, authUserID, status, size, page*size)
	if err != nil {
		return empty, err
	}
	return model.NewPage(tasks, page, size, total), nil
}

// Update overwrites title and description and applies status, priority and
// due date only when supplied.
func (s *TaskService) Update(ctx context.Context, taskID, authUserID string, req TaskRequest) (*model.Task, error) {
	task, err := s.taskRepo.FindByID(ctx, taskID)
	if err != nil {
		return nil, err
	}
	if err := security.AssertOwner(task.OwnerID, authUserID); err != nil {
		return nil, err
	}
	if err := validateTaskRequest(req); err != nil {
		return nil, err
	}

	task.Title = req.Title
	task.Description = req.Description
	if req.Status != nil {
		task.Status = *req.Status
	}
	if req.Priority != nil {
		task.Priority = *req.Priority
	}
	if req.DueDate != nil {
		task.DueDate = req.DueDate
	}

	if err := s.taskRepo.Update(ctx, task); err != nil {
		return nil, err
	}
	return task, nil
}

func (s *TaskService) Delete(ctx context.Context, taskID, authUserID string) error {
	task, err := s.taskRepo.FindByID(ctx, taskID)
	if err != nil {
		return err
	}
	if err := security.AssertOwner(task.OwnerID, authUserID); err != nil {
		return err
	}
	return s.taskRepo.Delete(ctx, task.ID)
}
