package services

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"testing"
	"time"

	"checklist_manager/internal/database"
	"checklist_manager/internal/models"
	"checklist_manager/internal/redis"
	"checklist_manager/internal/repository"

	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	name := strings.NewReplacer("/", "_", " ", "_").Replace(t.Name())
	db, err := database.Initialize(fmt.Sprintf("sqlite:file:svc_%s?mode=memory&cache=shared", name), "silent")
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	t.Cleanup(func() { sqlDB.Close() })
	return db
}

type fixture struct {
	db       *gorm.DB
	users    UserService
	holidays HolidayService
	svc      ChecklistService
	notifier *recordingNotifier
	admin    *models.User
	manager  *models.User
	doer     *models.User
	outsider *models.User
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	db := newTestDB(t)
	userRepo := repository.NewUserRepository(db)
	f := &fixture{
		db:       db,
		users:    NewUserService(userRepo),
		holidays: NewHolidayService(repository.NewHolidayRepository(db), newMemoryCache(), time.Hour),
		notifier: &recordingNotifier{},
	}
	f.svc = NewChecklistService(repository.NewSubtaskRepository(db), f.holidays, f.notifier, time.UTC)

	ctx := context.Background()
	create := func(username, name, dept string, role models.UserRole) *models.User {
		u := &models.User{Username: username, Name: name, Email: username + "@example.com", Department: dept, Role: string(role), IsActive: true}
		require.NoError(t, userRepo.Create(ctx, u))
		return u
	}
	f.admin = create("admin", "Admin", "Office", models.RoleAdmin)
	f.manager = create("asha", "Asha Rao", "Accounts", models.RoleManager)
	f.doer = create("ravi", "Ravi Kumar", "Accounts", models.RoleDoer)
	f.outsider = create("meena", "Meena Iyer", "Stores", models.RoleDoer)
	return f
}

func (f *fixture) auth(t *testing.T, u *models.User) *AuthContext {
	t.Helper()
	ac, err := f.users.ResolveAuthContext(context.Background(), u.ID)
	require.NoError(t, err)
	return ac
}

func (f *fixture) subtasks(t *testing.T) []models.ChecklistSubtask {
	t.Helper()
	var rows []models.ChecklistSubtask
	require.NoError(t, f.db.Order("planned_date, id").Find(&rows).Error)
	return rows
}

type recordingNotifier struct {
	mu    sync.Mutex
	calls []uint
}

func (n *recordingNotifier) NotifyDelayed(_ context.Context, s *models.ChecklistSubtask, _ string) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.calls = append(n.calls, s.ID)
}

type memoryCache struct {
	dates []string
	sets  int
}

func newMemoryCache() *memoryCache { return &memoryCache{} }

func (c *memoryCache) GetHolidays(context.Context) ([]string, error) {
	if c.dates == nil {
		return nil, redis.ErrCacheMiss
	}
	return c.dates, nil
}

func (c *memoryCache) SetHolidays(_ context.Context, dates []string, _ time.Duration) error {
	c.sets++
	c.dates = append([]string{}, dates...)
	return nil
}

func (c *memoryCache) InvalidateHolidays(context.Context) error {
	c.dates = nil
	return nil
}
