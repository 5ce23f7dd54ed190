package models

import (
	"encoding/json"
	"time"

	"gorm.io/datatypes"
)

// UserIDPrefix links a student's NIP to its game progress rows.
const UserIDPrefix = "student_"

const dateLayout = "2006-01-02"

type Student struct {
	ID         uint      `gorm:"primaryKey"`
	NIP        string    `gorm:"column:nip;type:varchar(6);uniqueIndex;not null"`
	FirstName  string    `gorm:"type:varchar(100);not null"`
	Surnames   string    `gorm:"type:varchar(100);not null"`
	Age        int       `gorm:"not null"`
	School     string    `gorm:"type:varchar(200);not null"`
	Grade      string    `gorm:"type:varchar(50);not null"`
	BirthDate  time.Time `gorm:"type:date;not null"`
	TutorName  string    `gorm:"type:varchar(100);not null"`
	TutorEmail string    `gorm:"type:varchar(100);not null"`
	Active     bool      `gorm:"not null;default:true"`
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// UserID is the progress key for this student.
func (s *Student) UserID() string {
	return UserIDPrefix + s.NIP
}

func (s *Student) FullName() string {
	return s.FirstName + " " + s.Surnames
}

// StudentView is the JSON shape of a student.
type StudentView struct {
	ID         uint      `json:"id"`
	NIP        string    `json:"nip"`
	FirstName  string    `json:"nombre"`
	Surnames   string    `json:"apellidos"`
	FullName   string    `json:"nombre_completo"`
	Age        int       `json:"edad"`
	School     string    `json:"escuela"`
	Grade      string    `json:"grado"`
	BirthDate  string    `json:"fecha_nacimiento"`
	TutorName  string    `json:"nombre_tutor"`
	TutorEmail string    `json:"email_tutor"`
	Active     bool      `json:"activo"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

func (s Student) View() StudentView {
	return StudentView{
		ID:         s.ID,
		NIP:        s.NIP,
		FirstName:  s.FirstName,
		Surnames:   s.Surnames,
		FullName:   s.FullName(),
		Age:        s.Age,
		School:     s.School,
		Grade:      s.Grade,
		BirthDate:  s.BirthDate.Format(dateLayout),
		TutorName:  s.TutorName,
		TutorEmail: s.TutorEmail,
		Active:     s.Active,
		CreatedAt:  s.CreatedAt,
		UpdatedAt:  s.UpdatedAt,
	}
}

func (s Student) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.View())
}

// StudentSession is one login of a student. DurationMinutes stays nil until
// the session is closed.
type StudentSession struct {
	ID                  uint                     `gorm:"primaryKey" json:"id"`
	StudentID           uint                     `gorm:"not null;index" json:"student_id"`
	Student             *Student                 `gorm:"constraint:OnDelete:CASCADE;foreignKey:StudentID;references:ID" json:"-"`
	SessionStart        time.Time                `gorm:"not null" json:"session_start"`
	SessionEnd          *time.Time               `json:"session_end"`
	DurationMinutes     *int                     `json:"duration_minutes"`
	ModulesCompleted    datatypes.JSONSlice[int] `json:"modules_completed"`
	ActivitiesCompleted int                      `gorm:"not null;default:0" json:"activities_completed"`
	CoinsEarned         int                      `gorm:"not null;default:0" json:"coins_earned"`
}

// End closes the session at now and stores the whole minutes elapsed.
func (s *StudentSession) End(now time.Time) {
	s.SessionEnd = &now
	minutes := int(now.Sub(s.SessionStart).Seconds() / 60)
	s.DurationMinutes = &minutes
}
