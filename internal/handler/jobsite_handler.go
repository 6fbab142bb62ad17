package handler

import (
	"errors"
	"net/http"

	"jobsite/internal/model"
	"jobsite/internal/repository"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type JobSiteHandler struct {
	siteRepo       repository.JobSiteRepositoryInterface
	assignmentRepo repository.AssignmentRepositoryInterface
}

func NewJobSiteHandler(
	siteRepo repository.JobSiteRepositoryInterface,
	assignmentRepo repository.AssignmentRepositoryInterface,
) *JobSiteHandler {
	return &JobSiteHandler{siteRepo: siteRepo, assignmentRepo: assignmentRepo}
}

// JobSiteRequest представляет запрос на создание или обновление объекта
type JobSiteRequest struct {
	Name        string `json:"name" binding:"required"`
	Address     string `json:"address"`
	Description string `json:"description"`
}

// AssignUserRequest представляет запрос на назначение пользователя на объект
type AssignUserRequest struct {
	UserID string `json:"user_id" binding:"required,uuid"`
}

// Create создает новый объект
func (h *JobSiteHandler) Create(c *gin.Context) {
	var req JobSiteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Name is required"})
		return
	}

	site := &model.JobSite{
		Name:        req.Name,
		Address:     req.Address,
		Description: req.Description,
	}

	if err := h.siteRepo.Create(c.Request.Context(), site); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create job site"})
		return
	}

	c.JSON(http.StatusCreated, site)
}

// GetAll возвращает все объекты
func (h *JobSiteHandler) GetAll(c *gin.Context) {
	sites, err := h.siteRepo.GetAll(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch job sites"})
		return
	}

	c.JSON(http.StatusOK, sites)
}

// Update обновляет объект
func (h *JobSiteHandler) Update(c *gin.Context) {
	siteID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid job site ID format"})
		return
	}

	var req JobSiteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Name is required"})
		return
	}

	site, err := h.siteRepo.GetByID(c.Request.Context(), siteID)
	if err != nil {
		if errors.Is(err, repository.ErrJobSiteNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Job site not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve job site"})
		return
	}

	site.Name = req.Name
	site.Address = req.Address
	site.Description = req.Description

	if err := h.siteRepo.Update(c.Request.Context(), site); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update job site"})
		return
	}

	c.JSON(http.StatusOK, site)
}

// Delete удаляет объект вместе с его задачами и назначениями
func (h *JobSiteHandler) Delete(c *gin.Context) {
	siteID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid job site ID format"})
		return
	}

	if err := h.siteRepo.Delete(c.Request.Context(), siteID); err != nil {
		if errors.Is(err, repository.ErrJobSiteNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Job site not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete job site"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Job site deleted successfully"})
}

// AssignUser назначает пользователя на объект. Повторное назначение — no-op.
func (h *JobSiteHandler) AssignUser(c *gin.Context) {
	siteID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid job site ID format"})
		return
	}

	var req AssignUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}
	userID, _ := uuid.Parse(req.UserID)

	if err := h.assignmentRepo.Assign(c.Request.Context(), userID, siteID); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to assign user to job site"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "User assigned to job site successfully"})
}

// UnassignUser снимает пользователя с объекта
func (h *JobSiteHandler) UnassignUser(c *gin.Context) {
	siteID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid job site ID format"})
		return
	}

	userID, err := uuid.Parse(c.Param("user_id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid user ID format"})
		return
	}

	if err := h.assignmentRepo.Unassign(c.Request.Context(), userID, siteID); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to remove user from job site"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "User removed from job site successfully"})
}
