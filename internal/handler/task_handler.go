package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"jobsite/internal/model"
	"jobsite/internal/notify"
	"jobsite/internal/repository"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type TaskHandler struct {
	taskRepo repository.TaskRepositoryInterface
	siteRepo repository.JobSiteRepositoryInterface
	userRepo repository.UserRepositoryInterface
	notifier Notifier
	cache    TaskCache
}

func NewTaskHandler(
	taskRepo repository.TaskRepositoryInterface,
	siteRepo repository.JobSiteRepositoryInterface,
	userRepo repository.UserRepositoryInterface,
	notifier Notifier,
	cache TaskCache,
) *TaskHandler {
	return &TaskHandler{
		taskRepo: taskRepo,
		siteRepo: siteRepo,
		userRepo: userRepo,
		notifier: notifier,
		cache:    cache,
	}
}

// TaskCreateRequest представляет запрос на создание задачи
type TaskCreateRequest struct {
	Title          string     `json:"title" binding:"required"`
	Description    string     `json:"description"`
	JobSiteID      string     `json:"job_site_id" binding:"required,uuid"`
	AssignedUserID string     `json:"assigned_user_id" binding:"required,uuid"`
	Priority       string     `json:"priority" binding:"omitempty,oneof=low medium high"`
	DueDate        *time.Time `json:"due_date"`
	EstimatedHours *int       `json:"estimated_hours"`
}

// TaskUpdateRequest — частичное обновление: nil-поля не трогаются
type TaskUpdateRequest struct {
	Title          *string    `json:"title"`
	Description    *string    `json:"description"`
	Status         *string    `json:"status" binding:"omitempty,oneof=pending in_progress needs_supplies complete"`
	Priority       *string    `json:"priority" binding:"omitempty,oneof=low medium high"`
	DueDate        *time.Time `json:"due_date"`
	EstimatedHours *int       `json:"estimated_hours"`
}

// TaskResponse представляет задачу вместе с именем объекта и исполнителя
type TaskResponse struct {
	ID               string     `json:"id"`
	Title            string     `json:"title"`
	Description      string     `json:"description"`
	JobSiteID        string     `json:"job_site_id"`
	JobSiteName      string     `json:"job_site_name,omitempty"`
	AssignedUserID   string     `json:"assigned_user_id"`
	AssignedUsername string     `json:"assigned_username,omitempty"`
	Status           string     `json:"status"`
	Priority         string     `json:"priority"`
	DueDate          *time.Time `json:"due_date,omitempty"`
	EstimatedHours   *int       `json:"estimated_hours,omitempty"`
	CreatedAt        time.Time  `json:"created_at"`
	UpdatedAt        time.Time  `json:"updated_at"`
}

func taskRowResponse(row repository.TaskRow) TaskResponse {
	return TaskResponse{
		ID:               row.ID.String(),
		Title:            row.Title,
		Description:      row.Description,
		JobSiteID:        row.JobSiteID.String(),
		JobSiteName:      row.JobSiteName,
		AssignedUserID:   row.AssignedUserID.String(),
		AssignedUsername: row.AssignedUsername,
		Status:           row.Status,
		Priority:         row.Priority,
		DueDate:          row.DueDate,
		EstimatedHours:   row.EstimatedHours,
		CreatedAt:        row.CreatedAt,
		UpdatedAt:        row.UpdatedAt,
	}
}

// Create создает новую задачу (только администратор) и уведомляет исполнителя
func (h *TaskHandler) Create(c *gin.Context) {
	var req TaskCreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Title, job site, and assigned user are required"})
		return
	}

	jobSiteID, _ := uuid.Parse(req.JobSiteID)
	assignedUserID, _ := uuid.Parse(req.AssignedUserID)

	// Проверяем существование объекта
	if _, err := h.siteRepo.GetByID(c.Request.Context(), jobSiteID); err != nil {
		if errors.Is(err, repository.ErrJobSiteNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Job site not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve job site"})
		return
	}

	// Проверяем существование исполнителя
	assignee, err := h.userRepo.GetByID(c.Request.Context(), assignedUserID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve user"})
		return
	}
	if assignee == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Assigned user not found"})
		return
	}

	task := &model.Task{
		Title:          req.Title,
		Description:    req.Description,
		JobSiteID:      jobSiteID,
		AssignedUserID: assignedUserID,
		Status:         model.StatusPending,
		Priority:       req.Priority,
		DueDate:        req.DueDate,
		EstimatedHours: req.EstimatedHours,
	}
	if task.Priority == "" {
		task.Priority = model.PriorityMedium
	}

	if err := h.taskRepo.Create(c.Request.Context(), task); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create task"})
		return
	}

	if h.cache != nil {
		h.cache.Invalidate(c.Request.Context())
	}

	// Уведомляем только исполнителя; администраторы узнают о задаче
	// по смене ее статуса
	h.notifier.NotifyUser(assignedUserID, notify.NewTaskEvent(task.ID, task.Title))

	c.JSON(http.StatusCreated, TaskResponse{
		ID:               task.ID.String(),
		Title:            task.Title,
		Description:      task.Description,
		JobSiteID:        task.JobSiteID.String(),
		AssignedUserID:   task.AssignedUserID.String(),
		AssignedUsername: assignee.Username,
		Status:           task.Status,
		Priority:         task.Priority,
		DueDate:          task.DueDate,
		EstimatedHours:   task.EstimatedHours,
		CreatedAt:        task.CreatedAt,
		UpdatedAt:        task.UpdatedAt,
	})
}

// List возвращает задачи: администратору — все, остальным — только свои.
// Поддерживает фильтры ?status= и ?job_site_id=.
func (h *TaskHandler) List(c *gin.Context) {
	userID, role, ok := currentUser(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Not authenticated"})
		return
	}

	filter := repository.TaskFilter{Status: c.Query("status")}
	scope := "all"
	if role != model.RoleAdmin {
		filter.AssignedUserID = &userID
		scope = userID.String()
	}
	if rawSiteID := c.Query("job_site_id"); rawSiteID != "" {
		siteID, err := uuid.Parse(rawSiteID)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid job site ID format"})
			return
		}
		filter.JobSiteID = &siteID
	}

	var cacheKey string
	if h.cache != nil {
		cacheKey = h.cache.Key(c.Request.Context(), scope, filter.Status, c.Query("job_site_id"))
		if payload, hit := h.cache.Get(c.Request.Context(), cacheKey); hit {
			c.Data(http.StatusOK, "application/json; charset=utf-8", payload)
			return
		}
	}

	rows, err := h.taskRepo.List(c.Request.Context(), filter)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch tasks"})
		return
	}

	response := make([]TaskResponse, 0, len(rows))
	for _, row := range rows {
		response = append(response, taskRowResponse(row))
	}

	if h.cache != nil {
		if payload, err := json.Marshal(response); err == nil {
			h.cache.Set(c.Request.Context(), cacheKey, payload)
		}
	}

	c.JSON(http.StatusOK, response)
}

// GetByID возвращает задачу по ID
func (h *TaskHandler) GetByID(c *gin.Context) {
	taskID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid task ID format"})
		return
	}

	row, err := h.taskRepo.GetRowByID(c.Request.Context(), taskID)
	if err != nil {
		if errors.Is(err, repository.ErrTaskNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Task not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve task"})
		return
	}

	c.JSON(http.StatusOK, taskRowResponse(*row))
}

// Update применяет частичное обновление задачи. Обновлять может администратор
// или исполнитель; права не зависят от набора полей. Смена статуса рассылает
// администраторам ровно одно уведомление — уже после записи в БД, так что
// сбой доставки не откатывает обновление.
func (h *TaskHandler) Update(c *gin.Context) {
	userID, role, ok := currentUser(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Not authenticated"})
		return
	}

	taskID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid task ID format"})
		return
	}

	var req TaskUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	task, err := h.taskRepo.GetByID(c.Request.Context(), taskID)
	if err != nil {
		if errors.Is(err, repository.ErrTaskNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Task not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve task"})
		return
	}

	if role != model.RoleAdmin && task.AssignedUserID != userID {
		c.JSON(http.StatusForbidden, gin.H{"error": "Not authorized to update this task"})
		return
	}

	oldStatus := task.Status

	fields := map[string]interface{}{}
	if req.Title != nil {
		fields["title"] = *req.Title
	}
	if req.Description != nil {
		fields["description"] = *req.Description
	}
	if req.Status != nil {
		fields["status"] = *req.Status
	}
	if req.Priority != nil {
		fields["priority"] = *req.Priority
	}
	if req.DueDate != nil {
		fields["due_date"] = *req.DueDate
	}
	if req.EstimatedHours != nil {
		fields["estimated_hours"] = *req.EstimatedHours
	}

	if err := h.taskRepo.UpdateFields(c.Request.Context(), taskID, fields); err != nil {
		if errors.Is(err, repository.ErrTaskNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Task not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update task"})
		return
	}

	if h.cache != nil {
		h.cache.Invalidate(c.Request.Context())
	}

	// Текст уведомления строится по заголовку, прочитанному до обновления
	if req.Status != nil && *req.Status != oldStatus {
		if ev, notifiable := notify.StatusEvent(taskID, task.Title, *req.Status); notifiable {
			h.notifier.NotifyAllAdmins(c.Request.Context(), ev)
		}
	}

	c.JSON(http.StatusOK, gin.H{"message": "Task updated successfully"})
}

// Delete удаляет задачу вместе с ее заметками (только администратор)
func (h *TaskHandler) Delete(c *gin.Context) {
	taskID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid task ID format"})
		return
	}

	if err := h.taskRepo.Delete(c.Request.Context(), taskID); err != nil {
		if errors.Is(err, repository.ErrTaskNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Task not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete task"})
		return
	}

	if h.cache != nil {
		h.cache.Invalidate(c.Request.Context())
	}

	c.JSON(http.StatusOK, gin.H{"message": "Task deleted successfully"})
}
