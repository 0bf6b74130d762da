package models

import (
	"time"

	"github.com/google/uuid"
)

// Level names, lowest tier first. Points and Level are only ever written by
// the gamification service; Level is always recomputed from Points.
const (
	LevelRookie              = "Rookie"
	LevelBugHunter           = "Bug Hunter"
	LevelEthicalHacker       = "Ethical Hacker"
	LevelMasterCryptographer = "Master Cryptographer"
)

type User struct {
	ID           uuid.UUID `gorm:"type:uuid;primary_key;default:gen_random_uuid()"`
	Name         string    `gorm:"not null"`
	Email        string    `gorm:"unique;not null"`
	PasswordHash string    `gorm:"not null"`
	Level        string    `gorm:"type:varchar(50);not null;default:'Rookie'"`
	Points       int       `gorm:"not null;default:0"`
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
