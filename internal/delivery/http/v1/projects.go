package v1

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/adanyl0v/go-task-manager/internal/models"
	"github.com/adanyl0v/go-task-manager/internal/services"
)

type createProjectRequest struct {
	Title       string  `json:"title" binding:"required"`
	Description *string `json:"description,omitempty"`
}

func (h *handlerImpl) HandleCreateProject(c *gin.Context) {
	var req createProjectRequest
	err := bindJSON(c, &req)
	if err != nil {
		h.logger.Error().
			Err(err).
			Msg("failed to bind json")
		abort(c, newInternalError(err.Error()))
		return
	}

	params := services.CreateProjectParams{
		UserID: actingUserID(c),
		Title:  req.Title,
	}
	if req.Description != nil {
		params.Description = *req.Description
	}

	project, err := h.projects.CreateProject(c, params)
	if err != nil {
		h.logger.Error().
			Err(err).
			Msg("failed to create project")
		abort(c, toAPIError(err))
		return
	}

	c.JSON(http.StatusCreated, project)
}

func (h *handlerImpl) HandleGetProjects(c *gin.Context) {
	projects, err := h.projects.GetProjects(c, actingUserID(c))
	if err != nil {
		h.logger.Error().
			Err(err).
			Msg("failed to get projects")
		abort(c, toAPIError(err))
		return
	}

	c.JSON(http.StatusOK, projects)
}

type updateProjectRequest struct {
	Title       *string `json:"title,omitempty"`
	Description *string `json:"description,omitempty"`
	Status      *string `json:"status,omitempty"`
}

func (h *handlerImpl) HandleUpdateProject(c *gin.Context) {
	var req updateProjectRequest
	err := bindJSON(c, &req)
	if err != nil {
		h.logger.Error().
			Err(err).
			Msg("failed to bind json")
		abort(c, newInternalError(err.Error()))
		return
	}

	project, err := h.projects.UpdateProject(c, services.UpdateProjectParams{
		ID:     c.Param("id"),
		UserID: actingUserID(c),
		Update: models.ProjectUpdate{
			Title:       req.Title,
			Description: req.Description,
			Status:      req.Status,
		},
	})
	if err != nil {
		h.logger.Error().
			Err(err).
			Msg("failed to update project")
		abort(c, toAPIError(err))
		return
	}

	c.JSON(http.StatusOK, project)
}

func (h *handlerImpl) HandleDeleteProject(c *gin.Context) {
	err := h.projects.DeleteProject(c, actingUserID(c), c.Param("id"))
	if err != nil {
		h.logger.Error().
			Err(err).
			Msg("failed to delete project")
		abort(c, toAPIError(err))
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Project deleted"})
}
