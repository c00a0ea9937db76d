package service

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net/mail"
	"strings"

	"taskmanager/internal/common"
	"taskmanager/internal/common/security"
	"taskmanager/internal/domain/model"
	"taskmanager/internal/domain/repository"
	"taskmanager/internal/platform/config"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

type UserService struct {
	userRepo repository.UserRepository
	rdb      *redis.Client // optional read cache, may be nil
}

func NewUserService(userRepo repository.UserRepository, rdb *redis.Client) *UserService {
	return &UserService{userRepo: userRepo, rdb: rdb}
}

type RegisterRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// NormalizeEmail lower-cases and trims an email so uniqueness and lookups are
// case-insensitive.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func validateRegisterRequest(req RegisterRequest) error {
	var fields []common.FieldError
	if req.Name == "" {
		fields = append(fields, common.FieldError{Field: "name", Message: "name is required"})
	} else if len(req.Name) > 100 {
		fields = append(fields, common.FieldError{Field: "name", Message: "name must be at most 100 characters"})
	}
	email := NormalizeEmail(req.Email)
	if email == "" {
		fields = append(fields, common.FieldError{Field: "email", Message: "email is required"})
	} else if _, err := mail.ParseAddress(email); err != nil || len(email) > 100 {
		fields = append(fields, common.FieldError{Field: "email", Message: "email must be a valid address"})
	}
	if len(req.Password) < 8 {
		fields = append(fields, common.FieldError{Field: "password", Message: "password must be at least 8 characters"})
	} else if len(req.Password) > 72 {
		fields = append(fields, common.FieldError{Field: "password", Message: "password must be at most 72 characters"})
	}
	if len(fields) > 0 {
		return common.NewValidationError(fields...)
	}
	return nil
}

// Create registers a new account with role USER. The existence pre-check is a
// fast path only; the unique constraint on users.email is what guarantees a
// single winner when two registrations race.
func (s *UserService) Create(ctx context.Context, req RegisterRequest) (*model.User, error) {
	if err := validateRegisterRequest(req); err != nil {
		return nil, err
	}
	email := NormalizeEmail(req.Email)

	exists, err := s.userRepo.ExistsByEmail(ctx, email)
	if err != nil {
		return nil, fmt.Errorf("failed to check email: %w", err)
	}
	if exists {
		return nil, common.Errorf("email %s already registered: %w", email, common.ErrConflict)
	}

	hashedPassword, err := security.HashPassword(req.Password)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := &model.User{
		ID:             uuid.NewString(),
		Name:           req.Name,
		Email:          email,
		HashedPassword: hashedPassword,
		Role:           model.RoleUser, // Default role, not settable via the API
	}

	if err := s.userRepo.Create(ctx, user); err != nil {
		// Repo returns common.ErrConflict on a lost duplicate-email race.
		return nil, err
	}

	user.HashedPassword = ""
	return user, nil
}

// FindByID returns a user summary, read through the cache when one is wired.
// Cache errors are logged and degrade to the repository, never surfaced.
func (s *UserService) FindByID(ctx context.Context, id string) (*model.User, error) {
	key := "user:" + id

	if s.rdb != nil {
		payload, err := s.rdb.Get(ctx, key).Result()
		if err == nil {
			var user model.User
			if err := json.Unmarshal([]byte(payload), &user); err == nil {
				return &user, nil
			}
			log.Printf("user cache: bad payload for %s, falling through", key)
		} else if err != redis.Nil {
			log.Printf("user cache: get %s: %v", key, err)
		}
	}

	user, err := s.userRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	user.HashedPassword = ""

	if s.rdb != nil {
		payload, err := json.Marshal(user)
		if err == nil {
			if err := s.rdb.Set(ctx, key, payload, config.AppConfig.UserCacheTTL).Err(); err != nil {
				log.Printf("user cache: set %s: %v", key, err)
			}
		}
	}
	return user, nil
}
