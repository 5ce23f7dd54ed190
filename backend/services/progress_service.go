package services

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"time"

	"finquest/backend/apperr"
	"finquest/backend/metrics"
	"finquest/backend/models"

	"go.uber.org/zap"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// ProgressUpdate carries the fields a client may overwrite. Nil fields are
// left untouched.
type ProgressUpdate struct {
	Coins            *int      `json:"coins"`
	Level            *int      `json:"level"`
	CompletedModules *[]int    `json:"completed_modules"`
	Badges           *[]string `json:"badges"`
	CurrentModule    *int      `json:"current_module"`
}

type CompletionResult struct {
	Progress    *models.GameProgress
	CoinsEarned int
	// NewBadges holds the milestone badge this completion added, if any.
	NewBadges []string
}

type ActivityInput struct {
	ModuleID     *int            `json:"module_id"`
	ActivityType string          `json:"activity_type"`
	Score        int             `json:"score"`
	Completed    bool            `json:"completed"`
	ActivityData json.RawMessage `json:"activity_data"`
}

type LeaderboardEntry struct {
	Rank             int    `json:"rank"`
	UserID           string `json:"user_id"`
	Coins            int    `json:"coins"`
	Level            int    `json:"level"`
	CompletedModules int    `json:"completed_modules"`
}

// ProgressService tracks per-user game state and the activity log.
type ProgressService struct {
	db     *gorm.DB
	scores *ScoreService
	log    *zap.Logger
	now    func() time.Time
}

func NewProgressService(db *gorm.DB, scores *ScoreService, log *zap.Logger) *ProgressService {
	return &ProgressService{db: db, scores: scores, log: log.Named("progress"), now: utcNow}
}

// GetOrCreate returns the user's progress, persisting defaults on first use.
func (s *ProgressService) GetOrCreate(ctx context.Context, userID string) (*models.GameProgress, error) {
	p, err := s.getOrCreate(s.db.WithContext(ctx), userID)
	if err != nil {
		return nil, apperr.Internal("progress.GetOrCreate", err)
	}
	return p, nil
}

func (s *ProgressService) getOrCreate(tx *gorm.DB, userID string) (*models.GameProgress, error) {
	var p models.GameProgress
	err := tx.Where("user_id = ?", userID).First(&p).Error
	if err == nil {
		p.Normalize()
		return &p, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	created := models.NewGameProgress(userID)
	if err := tx.Create(created).Error; err != nil {
		return nil, err
	}
	return created, nil
}

// startFresh leaves exactly one progress row for userID, holding the starting
// defaults. A row left over from play before registration is overwritten.
func (s *ProgressService) startFresh(tx *gorm.DB, userID string) (*models.GameProgress, error) {
	existing, err := s.find(tx, userID)
	if err != nil {
		return nil, err
	}
	fresh := models.NewGameProgress(userID)
	if existing == nil {
		if err := tx.Create(fresh).Error; err != nil {
			return nil, err
		}
		return fresh, nil
	}

	fresh.ID, fresh.CreatedAt = existing.ID, existing.CreatedAt
	fresh.UpdatedAt = s.now()
	if err := tx.Save(fresh).Error; err != nil {
		return nil, err
	}
	return fresh, nil
}

// find returns nil without error when the user has no progress yet.
func (s *ProgressService) find(tx *gorm.DB, userID string) (*models.GameProgress, error) {
	var p models.GameProgress
	err := tx.Where("user_id = ?", userID).First(&p).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	p.Normalize()
	return &p, nil
}

// Update overwrites the given fields. updated_at is stamped even when nothing
// changed.
func (s *ProgressService) Update(ctx context.Context, userID string, in ProgressUpdate) (*models.GameProgress, error) {
	var out *models.GameProgress
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		p, err := s.getOrCreate(tx, userID)
		if err != nil {
			return err
		}
		if in.Coins != nil {
			p.Coins = *in.Coins
		}
		if in.Level != nil {
			p.Level = *in.Level
		}
		if in.CompletedModules != nil {
			p.SetCompletedModules(*in.CompletedModules)
		}
		if in.Badges != nil {
			p.SetBadges(*in.Badges)
		}
		if in.CurrentModule != nil {
			p.CurrentModule = *in.CurrentModule
		}
		p.UpdatedAt = s.now()
		if err := tx.Save(p).Error; err != nil {
			return err
		}
		out = p
		return nil
	})
	if err != nil {
		return nil, apperr.Wrap("progress.Update", err)
	}
	return out, nil
}

// CompleteModule rewards a module completion. Only the completed-set insert is
// idempotent: repeats still pay coins and log a high score.
func (s *ProgressService) CompleteModule(ctx context.Context, userID string, moduleID, score int) (*CompletionResult, error) {
	const op = "progress.CompleteModule"
	module, ok := models.FindModule(moduleID)
	if !ok {
		return nil, apperr.NotFound(op, "module not found")
	}

	res := &CompletionResult{NewBadges: []string{}}
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		p, err := s.getOrCreate(tx, userID)
		if err != nil {
			return err
		}

		p.AddCompletedModule(module.ID)
		res.CoinsEarned = module.Reward(score)
		p.Coins += res.CoinsEarned

		completed := len(p.CompletedModules)
		if badge, ok := models.MilestoneBadge(completed); ok && p.AddBadge(badge) {
			res.NewBadges = append(res.NewBadges, badge)
		}
		if lvl := models.LevelFor(completed); lvl > p.Level {
			p.Level = lvl
		}
		p.UpdatedAt = s.now()
		if err := tx.Save(p).Error; err != nil {
			return err
		}

		if _, err := s.scores.RecordScore(ctx, tx, userID, module.ID, score); err != nil {
			return err
		}
		res.Progress = p
		return nil
	})
	if err != nil {
		return nil, apperr.Wrap(op, err)
	}

	metrics.ObserveModuleCompletion(module.ID)
	s.log.Info("module completed",
		zap.String("user_id", userID),
		zap.Int("module_id", module.ID),
		zap.Int("score", score),
		zap.Int("coins_earned", res.CoinsEarned),
		zap.Strings("new_badges", res.NewBadges))
	return res, nil
}

// SaveActivity appends one activity attempt. Progress is not touched.
func (s *ProgressService) SaveActivity(ctx context.Context, userID string, in ActivityInput) (*models.ModuleActivity, error) {
	const op = "progress.SaveActivity"
	if in.ModuleID == nil {
		return nil, apperr.Validation(op, "field module_id is required")
	}
	if strings.TrimSpace(in.ActivityType) == "" {
		return nil, apperr.Validation(op, "field activity_type is required")
	}

	data := datatypes.JSON("{}")
	if raw := strings.TrimSpace(string(in.ActivityData)); raw != "" && raw != "null" {
		data = datatypes.JSON(raw)
	}

	a := &models.ModuleActivity{
		UserID:       userID,
		ModuleID:     *in.ModuleID,
		ActivityType: in.ActivityType,
		ActivityData: data,
		Score:        in.Score,
		Completed:    in.Completed,
	}
	if in.Completed {
		at := s.now()
		a.CompletedAt = &at
	}
	if err := s.db.WithContext(ctx).Create(a).Error; err != nil {
		return nil, apperr.Internal(op, err)
	}
	return a, nil
}

func (s *ProgressService) ListActivities(ctx context.Context, userID string) ([]models.ModuleActivity, error) {
	activities := []models.ModuleActivity{}
	if err := s.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("id ASC").
		Find(&activities).Error; err != nil {
		return nil, apperr.Internal("progress.ListActivities", err)
	}
	return activities, nil
}

// Reset drops the user's progress and activity log. Students, sessions and
// high scores are kept.
func (s *ProgressService) Reset(ctx context.Context, userID string) error {
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("user_id = ?", userID).Delete(&models.GameProgress{}).Error; err != nil {
			return err
		}
		return tx.Where("user_id = ?", userID).Delete(&models.ModuleActivity{}).Error
	})
	if err != nil {
		return apperr.Internal("progress.Reset", err)
	}
	s.log.Info("progress reset", zap.String("user_id", userID))
	return nil
}

// Leaderboard ranks users by coins.
func (s *ProgressService) Leaderboard(ctx context.Context, limit int) ([]LeaderboardEntry, error) {
	var rows []models.GameProgress
	if err := s.db.WithContext(ctx).
		Order("coins DESC").
		Order("id ASC").
		Limit(clampLimit(limit)).
		Find(&rows).Error; err != nil {
		return nil, apperr.Internal("progress.Leaderboard", err)
	}

	entries := make([]LeaderboardEntry, 0, len(rows))
	for i, p := range rows {
		entries = append(entries, LeaderboardEntry{
			Rank:             i + 1,
			UserID:           p.UserID,
			Coins:            p.Coins,
			Level:            p.Level,
			CompletedModules: len(p.CompletedModules),
		})
	}
	return entries, nil
}
