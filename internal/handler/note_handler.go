package handler

import (
	"errors"
	"net/http"
	"time"

	"jobsite/internal/model"
	"jobsite/internal/notify"
	"jobsite/internal/repository"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type NoteHandler struct {
	noteRepo repository.NoteRepositoryInterface
	taskRepo repository.TaskRepositoryInterface
	notifier Notifier
}

func NewNoteHandler(
	noteRepo repository.NoteRepositoryInterface,
	taskRepo repository.TaskRepositoryInterface,
	notifier Notifier,
) *NoteHandler {
	return &NoteHandler{noteRepo: noteRepo, taskRepo: taskRepo, notifier: notifier}
}

// NoteRequest представляет запрос на добавление заметки
type NoteRequest struct {
	NoteText string `json:"note_text" binding:"required"`
	NoteType string `json:"note_type" binding:"omitempty,oneof=status_update supply_request time_request"`
}

// NoteResponse представляет заметку вместе с именем автора
type NoteResponse struct {
	ID        string    `json:"id"`
	TaskID    string    `json:"task_id"`
	UserID    string    `json:"user_id"`
	Username  string    `json:"username,omitempty"`
	NoteText  string    `json:"note_text"`
	NoteType  string    `json:"note_type"`
	CreatedAt time.Time `json:"created_at"`
}

// Create добавляет заметку к задаче и уведомляет администраторов
func (h *NoteHandler) Create(c *gin.Context) {
	userID, _, ok := currentUser(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Not authenticated"})
		return
	}

	taskID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid task ID format"})
		return
	}

	var req NoteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Note text is required"})
		return
	}
	if req.NoteType == "" {
		req.NoteType = model.NoteStatusUpdate
	}

	// Проверяем существование задачи
	if _, err := h.taskRepo.GetByID(c.Request.Context(), taskID); err != nil {
		if errors.Is(err, repository.ErrTaskNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Task not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve task"})
		return
	}

	note := &model.TaskNote{
		TaskID:   taskID,
		UserID:   userID,
		NoteText: req.NoteText,
		NoteType: req.NoteType,
	}

	if err := h.noteRepo.Create(c.Request.Context(), note); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create note"})
		return
	}

	// Заметки адресованы администраторам, исполнителю отдельное уведомление
	// не шлется
	h.notifier.NotifyAllAdmins(c.Request.Context(), notify.NewNoteEvent(taskID))

	c.JSON(http.StatusCreated, NoteResponse{
		ID:        note.ID.String(),
		TaskID:    note.TaskID.String(),
		UserID:    note.UserID.String(),
		NoteText:  note.NoteText,
		NoteType:  note.NoteType,
		CreatedAt: note.CreatedAt,
	})
}

// GetByTask возвращает заметки задачи, новые первыми
func (h *NoteHandler) GetByTask(c *gin.Context) {
	taskID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid task ID format"})
		return
	}

	rows, err := h.noteRepo.GetByTaskID(c.Request.Context(), taskID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch notes"})
		return
	}

	response := make([]NoteResponse, 0, len(rows))
	for _, row := range rows {
		response = append(response, NoteResponse{
			ID:        row.ID.String(),
			TaskID:    row.TaskID.String(),
			UserID:    row.UserID.String(),
			Username:  row.Username,
			NoteText:  row.NoteText,
			NoteType:  row.NoteType,
			CreatedAt: row.CreatedAt,
		})
	}

	c.JSON(http.StatusOK, response)
}
