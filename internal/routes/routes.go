package routes

import (
	"task-planner-api/internal/handlers"
	"task-planner-api/internal/middleware"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// SetupRoutes wires every handler against the given database handle and
// returns the assembled engine.
func SetupRoutes(db *gorm.DB) *gin.Engine {
	// Create a new GIN Router
	ginRouter := gin.Default()

	// CORS middleware (for frontend integration)
	ginRouter.Use(func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Credentials", "true")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Content-Length, Accept-Encoding, X-CSRF-Token, Authorization, accept, origin, Cache-Control, X-Requested-With")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "POST, OPTIONS, GET, PUT, DELETE, PATCH")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}

		c.Next()
	})

	// Health check endpoint
	ginRouter.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status": "ok",
		})
	})

	authHandler := handlers.NewAuthHandler(db)
	userHandler := handlers.NewUserHandler(db)
	projectHandler := handlers.NewProjectHandler(db)
	taskHandler := handlers.NewTaskHandler(db)
	subTaskHandler := handlers.NewSubTaskHandler(db)
	meetingHandler := handlers.NewMeetingHandler(db)

	// Public routes (no authentication required)
	api := ginRouter.Group("/api")
	{
		api.POST("/auth/register", authHandler.Register)
		api.POST("/auth/login", authHandler.Login)
	}

	// Protected routes (authentication required)
	protectedRoutes := api.Group("")
	protectedRoutes.Use(middleware.JWTAuthMiddleware())
	{
		// Project endpoints
		protectedRoutes.POST("/projects", projectHandler.CreateProject)
		protectedRoutes.GET("/projects", projectHandler.GetProjects)
		protectedRoutes.GET("/projects/:id", projectHandler.GetProjectByID)
		protectedRoutes.DELETE("/projects/:id", projectHandler.DeleteProject)

		// Task endpoints
		protectedRoutes.GET("/tasks", taskHandler.GetTasks)
		protectedRoutes.GET("/tasks/:id", taskHandler.GetTaskByID)
		protectedRoutes.POST("/tasks", taskHandler.CreateTask)
		protectedRoutes.PATCH("/tasks/:id", taskHandler.UpdateTask)
		protectedRoutes.DELETE("/tasks/:id", taskHandler.DeleteTask)
		protectedRoutes.POST("/tasks/:id/access", taskHandler.GrantAccess)

		// SubTask endpoints
		protectedRoutes.POST("/subtasks", subTaskHandler.CreateSubTask)
		protectedRoutes.GET("/subtasks", subTaskHandler.GetSubTasks)
		protectedRoutes.GET("/subtasks/:task_id", subTaskHandler.GetSubTasksWithAssignees)
		protectedRoutes.PATCH("/subtasks/:task_id/:id", subTaskHandler.UpdateSubTask)
		protectedRoutes.DELETE("/subtasks/:task_id/:id", subTaskHandler.DeleteSubTask)

		// Meeting endpoints
		protectedRoutes.POST("/meetings", meetingHandler.CreateMeeting)
		protectedRoutes.GET("/meetings", meetingHandler.GetMeetings)
		protectedRoutes.GET("/meetings/:id", meetingHandler.GetMeetingByID)
		protectedRoutes.PATCH("/meetings/:id", meetingHandler.UpdateMeeting)
		protectedRoutes.DELETE("/meetings/:id", meetingHandler.DeleteMeeting)

		// Users endpoint
		protectedRoutes.GET("/users", userHandler.GetAllUsers)

		// Realtime events
		protectedRoutes.GET("/ws", handlers.WebSocketHandler)
	}

	return ginRouter
}
