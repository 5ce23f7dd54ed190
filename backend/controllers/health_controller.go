package controllers

import (
	"context"
	"time"

	"finquest/backend/metrics"
	"finquest/backend/utils"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

type HealthController struct {
	DB *gorm.DB
}

func NewHealthController(db *gorm.DB) *HealthController {
	return &HealthController{DB: db}
}

// Health pings the database.
func (hc *HealthController) Health(c *fiber.Ctx) error {
	ctx, cancel := context.WithTimeout(c.UserContext(), 800*time.Millisecond)
	defer cancel()

	sqlDB, err := hc.DB.DB()
	if err == nil {
		t0 := time.Now()
		if err = sqlDB.PingContext(ctx); err == nil {
			metrics.ObserveDBPing(time.Since(t0))
			return utils.Success(c, fiber.Map{"status": "ok"})
		}
	}

	c.Locals(utils.LocalsErrorKey, err)
	return c.Status(fiber.StatusServiceUnavailable).JSON(utils.ErrorResponse{
		Success: false,
		Error:   "db not ok: " + err.Error(),
	})
}
