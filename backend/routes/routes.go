package routes

import (
	"finquest/backend/controllers"
	_ "finquest/backend/docs"
	"finquest/backend/services"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	fiberSwagger "github.com/swaggo/fiber-swagger"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

func SetupRoutes(app *fiber.App, db *gorm.DB, log *zap.Logger) {
	scores := services.NewScoreService(db, log)
	progress := services.NewProgressService(db, scores, log)
	students := services.NewStudentService(db, progress, log)

	// Health & metrics
	healthController := controllers.NewHealthController(db)
	app.Get("/healthz", healthController.Health)
	app.Get("/metrics", adaptor.HTTPHandler(promhttp.Handler()))
	app.Get("/swagger/*", fiberSwagger.WrapHandler)

	// Auth routes
	authController := controllers.NewAuthController(students)
	auth := app.Group("/api/auth")
	auth.Post("/register", authController.Register)
	auth.Get("/login/:nip", authController.Login)
	auth.Post("/logout/:session_id", authController.Logout)
	auth.Get("/student/:nip", authController.GetStudent)
	auth.Get("/students", authController.ListStudents)
	auth.Get("/students/export", authController.ExportStudents)

	// Game routes
	gameController := controllers.NewGameController(progress, scores)
	game := app.Group("/api/game")
	game.Get("/progress/:user_id", gameController.GetProgress)
	game.Post("/progress/:user_id", gameController.UpdateProgress)
	game.Post("/complete-module/:user_id/:module_id", gameController.CompleteModule)
	game.Post("/activity/:user_id", gameController.SaveActivity)
	game.Get("/activities/:user_id", gameController.GetActivities)
	game.Get("/modules", gameController.GetModules)
	game.Get("/leaderboard", gameController.GetLeaderboard)
	game.Post("/reset/:user_id", gameController.ResetProgress)
	game.Get("/highscores", gameController.GetHighScores)
}
