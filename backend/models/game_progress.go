package models

import (
	"time"

	"gorm.io/datatypes"
)

const (
	DefaultCoins = 100
	DefaultLevel = 1
)

// GameProgress is the mutable game state of one user. CompletedModules and
// Badges keep insertion order and never hold duplicates.
type GameProgress struct {
	ID               uint                        `gorm:"primaryKey" json:"id"`
	UserID           string                      `gorm:"type:varchar(100);uniqueIndex;not null" json:"user_id"`
	Coins            int                         `gorm:"not null;default:100" json:"coins"`
	Level            int                         `gorm:"not null;default:1" json:"level"`
	CompletedModules datatypes.JSONSlice[int]    `json:"completed_modules"`
	Badges           datatypes.JSONSlice[string] `json:"badges"`
	CurrentModule    int                         `gorm:"not null;default:0" json:"current_module"`
	CreatedAt        time.Time                   `json:"created_at"`
	UpdatedAt        time.Time                   `json:"updated_at"`
}

func (GameProgress) TableName() string { return "game_progress" }

// NewGameProgress returns the defaults a user starts the game with.
func NewGameProgress(userID string) *GameProgress {
	return &GameProgress{
		UserID:           userID,
		Coins:            DefaultCoins,
		Level:            DefaultLevel,
		CompletedModules: datatypes.JSONSlice[int]{},
		Badges:           datatypes.JSONSlice[string]{},
	}
}

// AddCompletedModule appends id unless present and reports whether it was added.
func (p *GameProgress) AddCompletedModule(id int) bool {
	for _, m := range p.CompletedModules {
		if m == id {
			return false
		}
	}
	p.CompletedModules = append(p.CompletedModules, id)
	return true
}

// AddBadge appends name unless present and reports whether it was added.
func (p *GameProgress) AddBadge(name string) bool {
	for _, b := range p.Badges {
		if b == name {
			return false
		}
	}
	p.Badges = append(p.Badges, name)
	return true
}

func (p *GameProgress) SetCompletedModules(ids []int) {
	p.CompletedModules = datatypes.JSONSlice[int](unique(ids))
}

func (p *GameProgress) SetBadges(names []string) {
	p.Badges = datatypes.JSONSlice[string](unique(names))
}

// Normalize replaces NULL list columns with empty lists.
func (p *GameProgress) Normalize() {
	if p.CompletedModules == nil {
		p.CompletedModules = datatypes.JSONSlice[int]{}
	}
	if p.Badges == nil {
		p.Badges = datatypes.JSONSlice[string]{}
	}
}

func unique[T comparable](in []T) []T {
	out := make([]T, 0, len(in))
	seen := make(map[T]struct{}, len(in))
	for _, v := range in {
		if _, ok := seen[v]; ok {
			continue
		}
		seen[v] = struct{}{}
		out = append(out, v)
	}
	return out
}

// ModuleActivity is one attempt at an activity inside a module. Append-only.
type ModuleActivity struct {
	ID           uint           `gorm:"primaryKey" json:"id"`
	UserID       string         `gorm:"type:varchar(100);index;not null" json:"user_id"`
	ModuleID     int            `gorm:"not null" json:"module_id"`
	ActivityType string         `gorm:"type:varchar(50);not null" json:"activity_type"` // quiz, game, decision
	ActivityData datatypes.JSON `json:"activity_data"`
	Score        int            `gorm:"not null;default:0" json:"score"`
	Completed    bool           `gorm:"not null;default:false" json:"completed"`
	CompletedAt  *time.Time     `json:"completed_at"`
	CreatedAt    time.Time      `json:"created_at"`
}

// HighScore is one scored module attempt of a registered student.
type HighScore struct {
	ID         uint      `gorm:"primaryKey" json:"id"`
	StudentNIP string    `gorm:"column:student_nip;type:varchar(6);index;not null" json:"student_nip"`
	Student    *Student  `gorm:"foreignKey:StudentNIP;references:NIP" json:"-"`
	Score      int       `gorm:"not null" json:"score"`
	ModuleID   int       `gorm:"not null" json:"module_id"`
	AchievedAt time.Time `gorm:"not null" json:"achieved_at"`
}
