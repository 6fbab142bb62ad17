package handler

import (
	"net/http"
	"time"

	"jobsite/internal/repository"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type UserHandler struct {
	userRepo       repository.UserRepositoryInterface
	assignmentRepo repository.AssignmentRepositoryInterface
}

func NewUserHandler(
	userRepo repository.UserRepositoryInterface,
	assignmentRepo repository.AssignmentRepositoryInterface,
) *UserHandler {
	return &UserHandler{userRepo: userRepo, assignmentRepo: assignmentRepo}
}

// UserResponse представляет пользователя в списке (без хеша пароля)
type UserResponse struct {
	ID        string    `json:"id"`
	Username  string    `json:"username"`
	Email     string    `json:"email"`
	Role      string    `json:"role"`
	CreatedAt time.Time `json:"created_at"`
}

// GetAll возвращает всех пользователей (только для администратора)
func (h *UserHandler) GetAll(c *gin.Context) {
	users, err := h.userRepo.GetAll(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch users"})
		return
	}

	response := make([]UserResponse, 0, len(users))
	for _, u := range users {
		response = append(response, UserResponse{
			ID:        u.ID.String(),
			Username:  u.Username,
			Email:     u.Email,
			Role:      u.Role,
			CreatedAt: u.CreatedAt,
		})
	}

	c.JSON(http.StatusOK, response)
}

// GetJobSites возвращает объекты, на которые назначен пользователь
func (h *UserHandler) GetJobSites(c *gin.Context) {
	userID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid user ID format"})
		return
	}

	sites, err := h.assignmentRepo.GetSitesByUser(c.Request.Context(), userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch user job sites"})
		return
	}

	c.JSON(http.StatusOK, sites)
}
