package handler_test

import (
	"context"

	"jobsite/internal/middleware"
	"jobsite/internal/model"
	"jobsite/internal/notify"
	"jobsite/internal/repository"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
)

// Мок репозитория пользователей
type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) Create(ctx context.Context, user *model.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserRepository) FindByUsername(ctx context.Context, username string) (*model.User, error) {
	args := m.Called(ctx, username)
	user := args.Get(0)
	if user == nil {
		return nil, args.Error(1)
	}
	return user.(*model.User), args.Error(1)
}

func (m *MockUserRepository) FindByEmail(ctx context.Context, email string) (*model.User, error) {
	args := m.Called(ctx, email)
	user := args.Get(0)
	if user == nil {
		return nil, args.Error(1)
	}
	return user.(*model.User), args.Error(1)
}

func (m *MockUserRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.User, error) {
	args := m.Called(ctx, id)
	user := args.Get(0)
	if user == nil {
		return nil, args.Error(1)
	}
	return user.(*model.User), args.Error(1)
}

func (m *MockUserRepository) GetAll(ctx context.Context) ([]model.User, error) {
	args := m.Called(ctx)
	users := args.Get(0)
	if users == nil {
		return nil, args.Error(1)
	}
	return users.([]model.User), args.Error(1)
}

func (m *MockUserRepository) GetByRole(ctx context.Context, role string) ([]model.User, error) {
	args := m.Called(ctx, role)
	users := args.Get(0)
	if users == nil {
		return nil, args.Error(1)
	}
	return users.([]model.User), args.Error(1)
}

// Мок репозитория задач
type MockTaskRepository struct {
	mock.Mock
}

func (m *MockTaskRepository) Create(ctx context.Context, task *model.Task) error {
	args := m.Called(ctx, task)
	return args.Error(0)
}

func (m *MockTaskRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.Task, error) {
	args := m.Called(ctx, id)
	task := args.Get(0)
	if task == nil {
		return nil, args.Error(1)
	}
	return task.(*model.Task), args.Error(1)
}

func (m *MockTaskRepository) GetRowByID(ctx context.Context, id uuid.UUID) (*repository.TaskRow, error) {
	args := m.Called(ctx, id)
	row := args.Get(0)
	if row == nil {
		return nil, args.Error(1)
	}
	return row.(*repository.TaskRow), args.Error(1)
}

func (m *MockTaskRepository) List(ctx context.Context, filter repository.TaskFilter) ([]repository.TaskRow, error) {
	args := m.Called(ctx, filter)
	rows := args.Get(0)
	if rows == nil {
		return nil, args.Error(1)
	}
	return rows.([]repository.TaskRow), args.Error(1)
}

func (m *MockTaskRepository) UpdateFields(ctx context.Context, id uuid.UUID, fields map[string]interface{}) error {
	args := m.Called(ctx, id, fields)
	return args.Error(0)
}

func (m *MockTaskRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// Мок репозитория объектов
type MockJobSiteRepository struct {
	mock.Mock
}

func (m *MockJobSiteRepository) Create(ctx context.Context, site *model.JobSite) error {
	args := m.Called(ctx, site)
	return args.Error(0)
}

func (m *MockJobSiteRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.JobSite, error) {
	args := m.Called(ctx, id)
	site := args.Get(0)
	if site == nil {
		return nil, args.Error(1)
	}
	return site.(*model.JobSite), args.Error(1)
}

func (m *MockJobSiteRepository) GetAll(ctx context.Context) ([]model.JobSite, error) {
	args := m.Called(ctx)
	sites := args.Get(0)
	if sites == nil {
		return nil, args.Error(1)
	}
	return sites.([]model.JobSite), args.Error(1)
}

func (m *MockJobSiteRepository) Update(ctx context.Context, site *model.JobSite) error {
	args := m.Called(ctx, site)
	return args.Error(0)
}

func (m *MockJobSiteRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// Мок репозитория заметок
type MockNoteRepository struct {
	mock.Mock
}

func (m *MockNoteRepository) Create(ctx context.Context, note *model.TaskNote) error {
	args := m.Called(ctx, note)
	return args.Error(0)
}

func (m *MockNoteRepository) GetByTaskID(ctx context.Context, taskID uuid.UUID) ([]repository.NoteRow, error) {
	args := m.Called(ctx, taskID)
	rows := args.Get(0)
	if rows == nil {
		return nil, args.Error(1)
	}
	return rows.([]repository.NoteRow), args.Error(1)
}

// Мок диспетчера уведомлений
type MockNotifier struct {
	mock.Mock
}

func (m *MockNotifier) NotifyUser(userID uuid.UUID, ev notify.Event) {
	m.Called(userID, ev)
}

func (m *MockNotifier) NotifyAllAdmins(ctx context.Context, ev notify.Event) {
	m.Called(ctx, ev)
}

// authAs подставляет в контекст данные пользователя вместо JWT middleware
func authAs(userID uuid.UUID, role string) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set(middleware.UserIDKey, userID)
		c.Set(middleware.UserRoleKey, role)
		c.Next()
	}
}
