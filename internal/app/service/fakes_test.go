package service

import (
	"context"
	"sort"
	"sync"
	"testing"

	"taskmanager/internal/common"
	"taskmanager/internal/common/security"
	"taskmanager/internal/domain/model"
	"taskmanager/internal/platform/config"
)

func initSecurityForTest(t *testing.T) {
	t.Helper()
	config.Load()
	security.InitJWT()
}

// fakeUserRepo is an in-memory UserRepository that enforces email uniqueness
// under a lock, mirroring the database's unique constraint.
type fakeUserRepo struct {
	mu      sync.Mutex
	byID    map[string]*model.User
	byEmail map[string]*model.User

	findByIDCalls int
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{
		byID:    make(map[string]*model.User),
		byEmail: make(map[string]*model.User),
	}
}

func (r *fakeUserRepo) Create(ctx context.Context, user *model.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.byEmail[user.Email]; exists {
		return common.ErrConflict
	}
	stored := *user
	r.byID[stored.ID] = &stored
	r.byEmail[stored.Email] = &stored
	return nil
}

func (r *fakeUserRepo) FindByEmail(ctx context.Context, email string) (*model.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	user, ok := r.byEmail[email]
	if !ok {
		return nil, common.ErrNotFound
	}
	copied := *user
	return &copied, nil
}

func (r *fakeUserRepo) FindByID(ctx context.Context, id string) (*model.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.findByIDCalls++
	user, ok := r.byID[id]
	if !ok {
		return nil, common.ErrNotFound
	}
	copied := *user
	return &copied, nil
}

func (r *fakeUserRepo) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	_, ok := r.byEmail[email]
	return ok, nil
}

// fakeTaskRepo is an in-memory TaskRepository.
type fakeTaskRepo struct {
	mu    sync.Mutex
	tasks map[string]*model.Task
}

func newFakeTaskRepo() *fakeTaskRepo {
	return &fakeTaskRepo{tasks: make(map[string]*model.Task)}
}

func (r *fakeTaskRepo) Create(ctx context.Context, task *model.Task) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	stored := *task
	r.tasks[stored.ID] = &stored
	*task = stored
	return nil
}

func (r *fakeTaskRepo) FindByID(ctx context.Context, id string) (*model.Task, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	task, ok := r.tasks[id]
	if !ok {
		return nil, common.ErrNotFound
	}
	copied := *task
	return &copied, nil
}

func (r *fakeTaskRepo) FindPageByOwner(ctx context.Context, ownerID string, status model.TaskStatus, limit, offset int) ([]model.Task, int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var matched []model.Task
	for _, task := range r.tasks {
		if task.OwnerID != ownerID {
			continue
		}
		if status != "" && task.Status != status {
			continue
		}
		matched = append(matched, *task)
	}
	sort.Slice(matched, func(i, j int) bool {
		return matched[i].CreatedAt.After(matched[j].CreatedAt)
	})

	total := int64(len(matched))
	if offset >= len(matched) {
		return nil, total, nil
	}
	end := offset + limit
	if end > len(matched) {
		end = len(matched)
	}
	return matched[offset:end], total, nil
}

func (r *fakeTaskRepo) Update(ctx context.Context, task *model.Task) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.tasks[task.ID]; !ok {
		return common.ErrNotFound
	}
	stored := *task
	r.tasks[stored.ID] = &stored
	return nil
}

func (r *fakeTaskRepo) Delete(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.tasks[id]; !ok {
		return common.ErrNotFound
	}
	delete(r.tasks, id)
	return nil
}
