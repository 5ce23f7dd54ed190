package utils

import (
	"finquest/backend/apperr"
	"finquest/backend/observability"

	"github.com/gofiber/fiber/v2"
)

// LocalsErrorKey holds the error of a failed request for the logging middleware.
const LocalsErrorKey = "finquest.error"

// SuccessResponse is the envelope for successful responses.
type SuccessResponse struct {
	Success bool        `json:"success"`
	Data    interface{} `json:"data"`
	Message string      `json:"message,omitempty"`
}

// ErrorResponse is the envelope for failed requests.
type ErrorResponse struct {
	Success bool   `json:"success"`
	Error   string `json:"error"`
}

// Success writes a 200 envelope carrying data.
func Success(c *fiber.Ctx, data interface{}) error {
	return c.Status(fiber.StatusOK).JSON(SuccessResponse{
		Success: true,
		Data:    data,
	})
}

// SuccessMessage writes data together with a message.
func SuccessMessage(c *fiber.Ctx, data interface{}, message string) error {
	return c.Status(fiber.StatusOK).JSON(SuccessResponse{
		Success: true,
		Data:    data,
		Message: message,
	})
}

// SuccessWith merges endpoint-specific top-level fields (total, coins_earned,
// new_badges) into the envelope.
func SuccessWith(c *fiber.Ctx, data interface{}, extra fiber.Map) error {
	body := fiber.Map{
		"success": true,
		"data":    data,
	}
	for k, v := range extra {
		body[k] = v
	}
	return c.Status(fiber.StatusOK).JSON(body)
}

// MessageOnly writes a message without data.
func MessageOnly(c *fiber.Ctx, message string) error {
	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"success": true,
		"message": message,
	})
}

// Error writes the error envelope. The status comes from the error kind and
// internal failures are reported to Sentry.
func Error(c *fiber.Ctx, err error) error {
	status := apperr.Status(err)
	if status >= fiber.StatusInternalServerError {
		observability.CaptureErr(err)
	}
	c.Locals(LocalsErrorKey, err)
	return c.Status(status).JSON(ErrorResponse{
		Success: false,
		Error:   err.Error(),
	})
}

// NotFound writes a 404 envelope.
func NotFound(c *fiber.Ctx, message string) error {
	return Error(c, apperr.NotFound("http", message))
}

// BadRequest writes a 400 envelope.
func BadRequest(c *fiber.Ctx, message string) error {
	return Error(c, apperr.Validation("http", "%s", message))
}

// ErrorHandler is the fiber.Config ErrorHandler: unmatched routes, body limit
// errors and recovered panics get the same envelope as handler errors.
func ErrorHandler(c *fiber.Ctx, err error) error {
	if fe, ok := err.(*fiber.Error); ok {
		c.Locals(LocalsErrorKey, err)
		return c.Status(fe.Code).JSON(ErrorResponse{
			Success: false,
			Error:   fe.Message,
		})
	}
	return Error(c, apperr.Wrap("http", err))
}
