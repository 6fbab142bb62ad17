package notify

import (
	"fmt"

	"jobsite/internal/model"

	"github.com/google/uuid"
)

// Типы событий уведомлений
const (
	EventNewTask       = "new_task"
	EventNewNote       = "new_note"
	EventTaskCompleted = "task_completed"
	EventNeedsSupplies = "task_needs_supplies"
	EventInProgress    = "task_in_progress"
)

// Event — полезная нагрузка одного уведомления
type Event struct {
	Type    string    `json:"type"`
	Message string    `json:"message"`
	TaskID  uuid.UUID `json:"taskId"`
}

// NewTaskEvent уведомляет назначенного пользователя о новой задаче
func NewTaskEvent(taskID uuid.UUID, title string) Event {
	return Event{
		Type:    EventNewTask,
		Message: fmt.Sprintf("New task assigned: %s", title),
		TaskID:  taskID,
	}
}

// NewNoteEvent уведомляет администраторов о новой заметке
func NewNoteEvent(taskID uuid.UUID) Event {
	return Event{
		Type:    EventNewNote,
		Message: "New note added to task",
		TaskID:  taskID,
	}
}

// StatusEvent maps an effective status change to its admin-broadcast event.
// Only complete, needs_supplies and in_progress are notifiable; moving a task
// back to pending returns ok=false and nothing is sent.
func StatusEvent(taskID uuid.UUID, title, newStatus string) (Event, bool) {
	switch newStatus {
	case model.StatusComplete:
		return Event{
			Type:    EventTaskCompleted,
			Message: fmt.Sprintf("Task %q has been completed", title),
			TaskID:  taskID,
		}, true
	case model.StatusNeedsSupplies:
		return Event{
			Type:    EventNeedsSupplies,
			Message: fmt.Sprintf("Task %q needs supplies", title),
			TaskID:  taskID,
		}, true
	case model.StatusInProgress:
		return Event{
			Type:    EventInProgress,
			Message: fmt.Sprintf("Task %q is now in progress", title),
			TaskID:  taskID,
		}, true
	default:
		return Event{}, false
	}
}
