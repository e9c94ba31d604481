package v1

import (
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/adanyl0v/go-task-manager/internal/services"
)

type Handler interface {
	HandleRegister(c *gin.Context)
	HandleLogin(c *gin.Context)
	HandleGetProfile(c *gin.Context)
	HandleAuthMiddleware(c *gin.Context)

	HandleCreateProject(c *gin.Context)
	HandleGetProjects(c *gin.Context)
	HandleUpdateProject(c *gin.Context)
	HandleDeleteProject(c *gin.Context)

	HandleCreateTask(c *gin.Context)
	HandleGetTasks(c *gin.Context)
	HandleUpdateTask(c *gin.Context)
	HandleDeleteTask(c *gin.Context)

	HandleHealth(c *gin.Context)
}

type handlerImpl struct {
	logger   zerolog.Logger
	users    services.UserService
	projects services.ProjectService
	tasks    services.TaskService
}

func New(
	logger zerolog.Logger,
	userService services.UserService,
	projectService services.ProjectService,
	taskService services.TaskService,
) Handler {
	return &handlerImpl{
		logger:   logger,
		users:    userService,
		projects: projectService,
		tasks:    taskService,
	}
}

type RouteOptions struct {
	// TasksRequireAuth puts the task routes behind HandleAuthMiddleware.
	TasksRequireAuth bool
}

func RegisterRoutes(router gin.IRouter, h Handler, opts RouteOptions) {
	router.GET("/healthz", h.HandleHealth)

	api := router.Group("/api")

	usersRouter := api.Group("/users")
	usersRouter.POST("/register", h.HandleRegister)
	usersRouter.POST("/login", h.HandleLogin)
	usersRouter.GET("/profile", h.HandleAuthMiddleware, h.HandleGetProfile)

	projectsRouter := api.Group("/projects", h.HandleAuthMiddleware)
	projectsRouter.POST("", h.HandleCreateProject)
	projectsRouter.GET("", h.HandleGetProjects)
	projectsRouter.PUT("/:id", h.HandleUpdateProject)
	projectsRouter.DELETE("/:id", h.HandleDeleteProject)

	tasksRouter := api.Group("/tasks")
	if opts.TasksRequireAuth {
		tasksRouter.Use(h.HandleAuthMiddleware)
	}
	tasksRouter.POST("", h.HandleCreateTask)
	tasksRouter.GET("/:id", h.HandleGetTasks)
	tasksRouter.PUT("/:id", h.HandleUpdateTask)
	tasksRouter.DELETE("/:id", h.HandleDeleteTask)
}
