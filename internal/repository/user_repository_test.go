package repository_test

import (
	"context"
	"testing"

	"jobsite/internal/model"
	"jobsite/internal/repository"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func setupMockDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	db, mock, err := sqlmock.New()
	assert.NoError(t, err)

	dialector := postgres.New(postgres.Config{
		DSN:                  "sqlmock_db_0",
		DriverName:           "postgres",
		Conn:                 db,
		PreferSimpleProtocol: true,
	})

	gormDB, err := gorm.Open(dialector, &gorm.Config{})
	assert.NoError(t, err)

	return gormDB, mock
}

func TestUserRepository_Create(t *testing.T) {
	// Arrange
	gormDB, mock := setupMockDB(t)
	userRepo := repository.NewUserRepository(gormDB)

	userID := uuid.New()
	user := &model.User{
		ID:             userID,
		Username:       "worker",
		Email:          "worker@example.com",
		HashedPassword: "hashed_password",
		Role:           model.RoleUser,
	}

	// Ожидаем SQL запрос на создание пользователя
	mock.ExpectBegin()
	mock.ExpectQuery(`INSERT INTO "users"`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(userID.String()))
	mock.ExpectCommit()

	// Act
	err := userRepo.Create(context.Background(), user)

	// Assert
	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUserRepository_FindByUsername_Found(t *testing.T) {
	// Arrange
	gormDB, mock := setupMockDB(t)
	userRepo := repository.NewUserRepository(gormDB)

	userID := uuid.New()

	// Ожидаем SQL запрос на поиск пользователя по имени
	mock.ExpectQuery(`SELECT .* FROM "users" WHERE username = .*`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "username", "email", "hashed_password", "role"}).
			AddRow(userID.String(), "worker", "worker@example.com", "hashed_password", "user"))

	// Act
	user, err := userRepo.FindByUsername(context.Background(), "worker")

	// Assert
	assert.NoError(t, err)
	assert.NotNil(t, user)
	assert.Equal(t, userID, user.ID)
	assert.Equal(t, "worker", user.Username)
	assert.Equal(t, model.RoleUser, user.Role)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUserRepository_FindByUsername_NotFound(t *testing.T) {
	// Arrange
	gormDB, mock := setupMockDB(t)
	userRepo := repository.NewUserRepository(gormDB)

	mock.ExpectQuery(`SELECT .* FROM "users" WHERE username = .*`).
		WillReturnError(gorm.ErrRecordNotFound)

	// Act
	user, err := userRepo.FindByUsername(context.Background(), "ghost")

	// Assert
	assert.NoError(t, err) // Метод не возвращает ошибку при отсутствии записи
	assert.Nil(t, user)    // Но возвращает nil пользователя
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUserRepository_FindByUsername_Error(t *testing.T) {
	// Arrange
	gormDB, mock := setupMockDB(t)
	userRepo := repository.NewUserRepository(gormDB)

	mock.ExpectQuery(`SELECT .* FROM "users" WHERE username = .*`).
		WillReturnError(assert.AnError)

	// Act
	user, err := userRepo.FindByUsername(context.Background(), "worker")

	// Assert
	assert.Error(t, err)
	assert.Nil(t, user)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUserRepository_GetByRole(t *testing.T) {
	// Arrange
	gormDB, mock := setupMockDB(t)
	userRepo := repository.NewUserRepository(gormDB)

	admin1 := uuid.New()
	admin2 := uuid.New()

	// Ожидаем выборку пользователей по роли
	mock.ExpectQuery(`SELECT .* FROM "users" WHERE role = .*`).
		WithArgs("admin").
		WillReturnRows(sqlmock.NewRows([]string{"id", "username", "role"}).
			AddRow(admin1.String(), "boss", "admin").
			AddRow(admin2.String(), "foreman", "admin"))

	// Act
	admins, err := userRepo.GetByRole(context.Background(), model.RoleAdmin)

	// Assert
	assert.NoError(t, err)
	assert.Len(t, admins, 2)
	assert.Equal(t, admin1, admins[0].ID)
	assert.Equal(t, admin2, admins[1].ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}
