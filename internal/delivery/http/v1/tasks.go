package v1

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/adanyl0v/go-task-manager/internal/models"
	"github.com/adanyl0v/go-task-manager/internal/services"
)

type createTaskRequest struct {
	Project     string   `json:"project" binding:"required"`
	Title       string   `json:"title" binding:"required"`
	Description *string  `json:"description,omitempty"`
	DueDate     *dueDate `json:"dueDate,omitempty"`
}

func (h *handlerImpl) HandleCreateTask(c *gin.Context) {
	var req createTaskRequest
	err := bindJSON(c, &req)
	if err != nil {
		h.logger.Error().
			Err(err).
			Msg("failed to bind json")
		abort(c, newInternalError(err.Error()))
		return
	}

	params := services.CreateTaskParams{
		ActorID:   actingUserID(c),
		ProjectID: req.Project,
		Title:     req.Title,
		DueDate:   req.DueDate.timePtr(),
	}
	if req.Description != nil {
		params.Description = *req.Description
	}

	task, err := h.tasks.CreateTask(c, params)
	if err != nil {
		h.logger.Error().
			Err(err).
			Msg("failed to create task")
		abort(c, toAPIError(err))
		return
	}

	c.JSON(http.StatusCreated, task)
}

// HandleGetTasks serves GET /api/tasks/:id where the id is a project id.
func (h *handlerImpl) HandleGetTasks(c *gin.Context) {
	tasks, err := h.tasks.GetTasks(c, services.GetTasksParams{
		ActorID:   actingUserID(c),
		ProjectID: c.Param("id"),
		Status:    c.Query("status"),
	})
	if err != nil {
		h.logger.Error().
			Err(err).
			Msg("failed to get tasks")
		abort(c, toAPIError(err))
		return
	}

	c.JSON(http.StatusOK, tasks)
}

type updateTaskRequest struct {
	Title       *string  `json:"title,omitempty"`
	Description *string  `json:"description,omitempty"`
	Status      *string  `json:"status,omitempty"`
	DueDate     *dueDate `json:"dueDate,omitempty"`
}

func (h *handlerImpl) HandleUpdateTask(c *gin.Context) {
	var req updateTaskRequest
	err := bindJSON(c, &req)
	if err != nil {
		h.logger.Error().
			Err(err).
			Msg("failed to bind json")
		abort(c, newInternalError(err.Error()))
		return
	}

	task, err := h.tasks.UpdateTask(c, services.UpdateTaskParams{
		ActorID: actingUserID(c),
		ID:      c.Param("id"),
		Update: models.TaskUpdate{
			Title:       req.Title,
			Description: req.Description,
			Status:      req.Status,
			DueDate:     req.DueDate.timePtr(),
		},
	})
	if err != nil {
		h.logger.Error().
			Err(err).
			Msg("failed to update task")
		abort(c, toAPIError(err))
		return
	}

	c.JSON(http.StatusOK, task)
}

func (h *handlerImpl) HandleDeleteTask(c *gin.Context) {
	err := h.tasks.DeleteTask(c, actingUserID(c), c.Param("id"))
	if err != nil {
		h.logger.Error().
			Err(err).
			Msg("failed to delete task")
		abort(c, toAPIError(err))
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Task deleted"})
}
