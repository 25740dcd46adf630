package main

import (
	"time"

	"civic-report/config"
	"civic-report/database"
	"civic-report/logger"
	"civic-report/routes"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
)

func main() {
	app := fiber.New(fiber.Config{
		ReadBufferSize:  32768, // 32KB read buffer
		WriteBufferSize: 32768, // 32KB write buffer
		ReadTimeout:     time.Second * 30,
		WriteTimeout:    time.Second * 30,
		BodyLimit:       50 * 1024 * 1024, // 50MB body limit
	})

	cfg, err := config.Load()
	if err != nil {
		logger.Fatal("Invalid configuration: " + err.Error())
	}

	logger.Success("Server is running on ip: " + cfg.AppHost + " port: " + cfg.AppPort +
		"\n\t\t\t\t\t\t******************************************************************************************\n")

	db, err := database.InitDB(cfg)
	if err != nil {
		logger.Error("Failed to connect to the database", err)
		return
	}

	if err := database.Seed(db, cfg.AdminDefaultPassword); err != nil {
		logger.Error("Failed to seed the database", err)
		return
	}

	app.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.FrontendURL,
		AllowMethods:     "GET,POST,PUT,DELETE,OPTIONS",
		AllowHeaders:     "Origin, Content-Type, Accept, Authorization",
		AllowCredentials: true,
	}))

	routes.SetupRoutes(app, db, cfg)

	if err := app.Listen(cfg.AppHost + ":" + cfg.AppPort); err != nil {
		logger.Fatal("Server stopped: " + err.Error())
	}
}
