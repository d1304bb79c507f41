package services

import (
	"context"
	"errors"
	"fmt"

	"checklist_manager/internal/models"
	"checklist_manager/internal/repository"

	"golang.org/x/crypto/bcrypt"
)

// AuthContext is resolved once per request and passed into the checklist
// service; the service never looks up roles itself.
type AuthContext struct {
	Actor *models.User
	// All is set for admins, who see and assign everyone.
	All      bool
	Eligible map[uint]*models.User
}

// NewAuthContext builds a context for actor over the given assignable users.
func NewAuthContext(actor *models.User, all bool, eligible []models.User) *AuthContext {
	ac := &AuthContext{Actor: actor, All: all, Eligible: make(map[uint]*models.User, len(eligible)+1)}
	for i := range eligible {
		ac.Eligible[eligible[i].ID] = &eligible[i]
	}
	if actor != nil {
		ac.Eligible[actor.ID] = actor
	}
	return ac
}

// Assignee returns the eligible user with id, if any.
func (a *AuthContext) Assignee(id uint) (*models.User, bool) {
	u, ok := a.Eligible[id]
	return u, ok
}

// VisibleAssigneeIDs is nil when the actor may see every row.
func (a *AuthContext) VisibleAssigneeIDs() []uint {
	if a.All {
		return nil
	}
	ids := make([]uint, 0, len(a.Eligible))
	for id := range a.Eligible {
		ids = append(ids, id)
	}
	return ids
}

func (a *AuthContext) CanSee(assigneeID uint) bool {
	if a.All {
		return true
	}
	_, ok := a.Eligible[assigneeID]
	return ok
}

// ActorName is recorded as the assigner of generated rows.
func (a *AuthContext) ActorName() string {
	if a.Actor == nil {
		return ""
	}
	return a.Actor.DisplayName()
}

type UserService interface {
	CreateUser(ctx context.Context, user *models.User, password string) error
	GetUserByID(ctx context.Context, id uint) (*models.User, error)
	GetUserByUsername(ctx context.Context, username string) (*models.User, error)
	CheckPassword(user *models.User, password string) bool
	ResolveAuthContext(ctx context.Context, actorID uint) (*AuthContext, error)
}

type userService struct {
	userRepo repository.UserRepository
}

func NewUserService(userRepo repository.UserRepository) UserService {
	return &userService{userRepo: userRepo}
}

func (s *userService) CreateUser(ctx context.Context, user *models.User, password string) error {
	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("hash password: %w", err)
	}
	user.PasswordHash = string(hashedPassword)
	return s.userRepo.Create(ctx, user)
}

func (s *userService) GetUserByID(ctx context.Context, id uint) (*models.User, error) {
	return s.userRepo.GetByID(ctx, id)
}

func (s *userService) GetUserByUsername(ctx context.Context, username string) (*models.User, error) {
	return s.userRepo.GetByUsername(ctx, username)
}

func (s *userService) CheckPassword(user *models.User, password string) bool {
	return bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) == nil
}

// ResolveAuthContext decides who actorID may assign to: admins everyone,
// managers their department, doers and clients only themselves.
func (s *userService) ResolveAuthContext(ctx context.Context, actorID uint) (*AuthContext, error) {
	actor, err := s.userRepo.GetByID(ctx, actorID)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, ErrUnknownActor
	}
	if err != nil {
		return nil, err
	}
	if !actor.IsActive {
		return nil, ErrUnknownActor
	}

	switch models.UserRole(actor.Role) {
	case models.RoleAdmin:
		users, err := s.userRepo.ListActive(ctx)
		if err != nil {
			return nil, err
		}
		return NewAuthContext(actor, true, users), nil
	case models.RoleManager:
		users, err := s.userRepo.ListActiveByDepartment(ctx, actor.Department)
		if err != nil {
			return nil, err
		}
		return NewAuthContext(actor, false, users), nil
	default:
		return NewAuthContext(actor, false, nil), nil
	}
}
