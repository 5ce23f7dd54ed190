package controllers

import (
	"finquest/backend/models"
	"finquest/backend/services"
	"finquest/backend/utils"

	"github.com/gofiber/fiber/v2"
)

type GameController struct {
	Progress *services.ProgressService
	Scores   *services.ScoreService
}

func NewGameController(progress *services.ProgressService, scores *services.ScoreService) *GameController {
	return &GameController{Progress: progress, Scores: scores}
}

// GetProgress godoc
// @Summary Game progress
// @Description Returns the user's progress, creating the defaults on first use
// @Tags game
// @Produce json
// @Param user_id path string true "User ID"
// @Success 200 {object} utils.SuccessResponse
// @Failure 500 {object} utils.ErrorResponse
// @Router /game/progress/{user_id} [get]
func (gc *GameController) GetProgress(c *fiber.Ctx) error {
	progress, err := gc.Progress.GetOrCreate(c.UserContext(), c.Params("user_id"))
	if err != nil {
		return utils.Error(c, err)
	}
	return utils.Success(c, progress)
}

// UpdateProgress godoc
// @Summary Overwrite progress fields
// @Tags game
// @Accept json
// @Produce json
// @Param user_id path string true "User ID"
// @Param progress body services.ProgressUpdate true "Fields to overwrite"
// @Success 200 {object} utils.SuccessResponse
// @Failure 400 {object} utils.ErrorResponse
// @Router /game/progress/{user_id} [post]
func (gc *GameController) UpdateProgress(c *fiber.Ctx) error {
	var in services.ProgressUpdate
	if err := decodeJSON(c, &in); err != nil {
		return utils.BadRequest(c, "cannot parse JSON")
	}

	progress, err := gc.Progress.Update(c.UserContext(), c.Params("user_id"), in)
	if err != nil {
		return utils.Error(c, err)
	}
	return utils.Success(c, progress)
}

type completeModuleRequest struct {
	Score int `json:"score"`
}

// CompleteModule godoc
// @Summary Complete a module
// @Description Awards coins, milestone badges and level for a finished module
// @Tags game
// @Accept json
// @Produce json
// @Param user_id path string true "User ID"
// @Param module_id path int true "Module ID"
// @Param result body completeModuleRequest false "Module score"
// @Success 200 {object} utils.SuccessResponse
// @Failure 404 {object} utils.ErrorResponse
// @Router /game/complete-module/{user_id}/{module_id} [post]
func (gc *GameController) CompleteModule(c *fiber.Ctx) error {
	moduleID, ok := idParam(c, "module_id")
	if !ok {
		return utils.NotFound(c, "module not found")
	}

	var in completeModuleRequest
	if err := decodeJSON(c, &in); err != nil {
		return utils.BadRequest(c, "cannot parse JSON")
	}

	res, err := gc.Progress.CompleteModule(c.UserContext(), c.Params("user_id"), int(moduleID), in.Score)
	if err != nil {
		return utils.Error(c, err)
	}
	return utils.SuccessWith(c, res.Progress, fiber.Map{
		"coins_earned": res.CoinsEarned,
		"new_badges":   res.NewBadges,
	})
}

// SaveActivity godoc
// @Summary Record an activity attempt
// @Tags game
// @Accept json
// @Produce json
// @Param user_id path string true "User ID"
// @Param activity body services.ActivityInput true "Activity"
// @Success 200 {object} utils.SuccessResponse
// @Failure 400 {object} utils.ErrorResponse
// @Router /game/activity/{user_id} [post]
func (gc *GameController) SaveActivity(c *fiber.Ctx) error {
	var in services.ActivityInput
	if err := decodeJSON(c, &in); err != nil {
		return utils.BadRequest(c, "cannot parse JSON")
	}

	activity, err := gc.Progress.SaveActivity(c.UserContext(), c.Params("user_id"), in)
	if err != nil {
		return utils.Error(c, err)
	}
	return utils.Success(c, activity)
}

// GetActivities godoc
// @Summary Activity log
// @Tags game
// @Produce json
// @Param user_id path string true "User ID"
// @Success 200 {object} utils.SuccessResponse
// @Router /game/activities/{user_id} [get]
func (gc *GameController) GetActivities(c *fiber.Ctx) error {
	activities, err := gc.Progress.ListActivities(c.UserContext(), c.Params("user_id"))
	if err != nil {
		return utils.Error(c, err)
	}
	return utils.Success(c, activities)
}

// GetModules godoc
// @Summary Module catalog
// @Tags game
// @Produce json
// @Success 200 {object} utils.SuccessResponse
// @Router /game/modules [get]
func (gc *GameController) GetModules(c *fiber.Ctx) error {
	return utils.Success(c, models.Modules())
}

// GetLeaderboard godoc
// @Summary Users ranked by coins
// @Tags game
// @Produce json
// @Param limit query int false "Rows to return (default 10, max 100)"
// @Success 200 {object} utils.SuccessResponse
// @Failure 400 {object} utils.ErrorResponse
// @Router /game/leaderboard [get]
func (gc *GameController) GetLeaderboard(c *fiber.Ctx) error {
	limit, ok := parseLimit(c)
	if !ok {
		return utils.BadRequest(c, "limit must be a positive integer")
	}
	board, err := gc.Progress.Leaderboard(c.UserContext(), limit)
	if err != nil {
		return utils.Error(c, err)
	}
	return utils.Success(c, board)
}

// ResetProgress godoc
// @Summary Reset progress
// @Description Deletes the user's progress and activity log
// @Tags game
// @Produce json
// @Param user_id path string true "User ID"
// @Success 200 {object} map[string]interface{}
// @Router /game/reset/{user_id} [post]
func (gc *GameController) ResetProgress(c *fiber.Ctx) error {
	if err := gc.Progress.Reset(c.UserContext(), c.Params("user_id")); err != nil {
		return utils.Error(c, err)
	}
	return utils.MessageOnly(c, "Progreso reiniciado exitosamente")
}

// GetHighScores godoc
// @Summary Best module attempts
// @Tags game
// @Produce json
// @Param limit query int false "Rows to return (default 10, max 100)"
// @Success 200 {object} utils.SuccessResponse
// @Failure 400 {object} utils.ErrorResponse
// @Router /game/highscores [get]
func (gc *GameController) GetHighScores(c *fiber.Ctx) error {
	limit, ok := parseLimit(c)
	if !ok {
		return utils.BadRequest(c, "limit must be a positive integer")
	}
	scores, err := gc.Scores.TopScores(c.UserContext(), limit)
	if err != nil {
		return utils.Error(c, err)
	}
	return utils.Success(c, scores)
}
