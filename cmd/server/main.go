package main

import (
	"task-planner-api/internal/config"
	"task-planner-api/internal/database"
	"task-planner-api/internal/logging"
	"task-planner-api/internal/routes"
)

func main() {
	cfg := config.Load()

	logging.Init("task-planner-api", cfg.LogFile, cfg.LogLevel)

	db, err := database.Open(cfg.DBPath)
	if err != nil {
		logging.Logger.Fatal("Failed to connect to database: ", err)
	}

	ginRoutes := routes.SetupRoutes(db)

	logging.Logger.Infof("Server starting on port %s", cfg.Port)
	if err := ginRoutes.Run(cfg.Port); err != nil {
		logging.Logger.Fatal("Failed to start server: ", err)
	}
}
