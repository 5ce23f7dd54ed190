package services

import (
	"context"
	"strings"
	"time"

	"finquest/backend/apperr"
	"finquest/backend/models"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

const (
	DefaultLeaderboardLimit = 10
	MaxLeaderboardLimit     = 100
)

type HighScoreEntry struct {
	Rank       int       `json:"rank"`
	StudentNIP string    `json:"student_nip"`
	Score      int       `json:"score"`
	ModuleID   int       `json:"module_id"`
	AchievedAt time.Time `json:"achieved_at"`
}

// ScoreService keeps the append-only log of scored module attempts.
type ScoreService struct {
	db  *gorm.DB
	log *zap.Logger
	now func() time.Time
}

func NewScoreService(db *gorm.DB, log *zap.Logger) *ScoreService {
	return &ScoreService{db: db, log: log.Named("scores"), now: utcNow}
}

// RecordScore appends a high score for the student behind userID, inside tx.
// User ids that do not belong to a registered student are skipped and nil is
// returned.
func (s *ScoreService) RecordScore(ctx context.Context, tx *gorm.DB, userID string, moduleID, score int) (*models.HighScore, error) {
	const op = "scores.RecordScore"
	if tx == nil {
		tx = s.db
	}
	nip := strings.TrimPrefix(userID, models.UserIDPrefix)

	var n int64
	if err := tx.WithContext(ctx).Model(&models.Student{}).Where("nip = ?", nip).Count(&n).Error; err != nil {
		return nil, apperr.Internal(op, err)
	}
	if n == 0 {
		s.log.Debug("skipping high score for unregistered user",
			zap.String("user_id", userID), zap.Int("module_id", moduleID))
		return nil, nil
	}

	hs := &models.HighScore{
		StudentNIP: nip,
		Score:      score,
		ModuleID:   moduleID,
		AchievedAt: s.now(),
	}
	if err := tx.WithContext(ctx).Create(hs).Error; err != nil {
		return nil, apperr.Internal(op, err)
	}
	return hs, nil
}

// TopScores ranks individual attempts by score. Ties keep insertion order.
func (s *ScoreService) TopScores(ctx context.Context, limit int) ([]HighScoreEntry, error) {
	var rows []models.HighScore
	if err := s.db.WithContext(ctx).
		Order("score DESC").
		Order("id ASC").
		Limit(clampLimit(limit)).
		Find(&rows).Error; err != nil {
		return nil, apperr.Internal("scores.TopScores", err)
	}

	entries := make([]HighScoreEntry, 0, len(rows))
	for i, hs := range rows {
		entries = append(entries, HighScoreEntry{
			Rank:       i + 1,
			StudentNIP: hs.StudentNIP,
			Score:      hs.Score,
			ModuleID:   hs.ModuleID,
			AchievedAt: hs.AchievedAt,
		})
	}
	return entries, nil
}

func clampLimit(limit int) int {
	switch {
	case limit <= 0:
		return DefaultLeaderboardLimit
	case limit > MaxLeaderboardLimit:
		return MaxLeaderboardLimit
	default:
		return limit
	}
}

func utcNow() time.Time { return time.Now().UTC() }
