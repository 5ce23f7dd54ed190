package services

import (
	"context"
	"errors"
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"
	"time"
	"unicode/utf8"

	"finquest/backend/apperr"
	"finquest/backend/metrics"
	"finquest/backend/models"

	"go.uber.org/zap"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

const (
	NIPLength = 6
	MinAge    = 6
	MaxAge    = 17
)

var emailPattern = regexp.MustCompile(`^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`)

// RegistrationInput holds the raw registration form. Age arrives as text so
// that both JSON numbers and strings are accepted.
type RegistrationInput struct {
	Name       string
	Surnames   string
	Age        string
	School     string
	Grade      string
	BirthDate  string
	TutorName  string
	TutorEmail string
}

// field order matches the registration form
func (in RegistrationInput) fields() [][2]string {
	return [][2]string{
		{"nombre", in.Name},
		{"apellidos", in.Surnames},
		{"edad", in.Age},
		{"escuela", in.School},
		{"grado", in.Grade},
		{"fechaNacimiento", in.BirthDate},
		{"nombreTutor", in.TutorName},
		{"emailTutor", in.TutorEmail},
	}
}

type LogoutInput struct {
	ModulesCompleted    *[]int `json:"modules_completed"`
	ActivitiesCompleted *int   `json:"activities_completed"`
	CoinsEarned         *int   `json:"coins_earned"`
}

type LoginResult struct {
	Student   *models.Student      `json:"student"`
	Progress  *models.GameProgress `json:"progress"`
	SessionID uint                 `json:"session_id"`
}

type SessionStats struct {
	TotalSessions      int64   `json:"total_sessions"`
	TotalTimeMinutes   int64   `json:"total_time_minutes"`
	AverageSessionTime float64 `json:"average_session_time"`
}

type StudentInfo struct {
	Student    *models.Student      `json:"student"`
	Progress   *models.GameProgress `json:"progress"`
	Statistics SessionStats         `json:"statistics"`
}

// StudentSummary is a row of the active students list.
type StudentSummary struct {
	models.StudentView
	Progress      *models.GameProgress `json:"progress"`
	TotalSessions int64                `json:"total_sessions"`
}

// StudentService manages student records, their login codes and sessions.
type StudentService struct {
	db       *gorm.DB
	progress *ProgressService
	log      *zap.Logger
	now      func() time.Time
}

func NewStudentService(db *gorm.DB, progress *ProgressService, log *zap.Logger) *StudentService {
	return &StudentService{db: db, progress: progress, log: log.Named("students"), now: utcNow}
}

// GenerateNIP builds the login code: initials of the first name and the first
// surname followed by the birth day and month, e.g. "AG0703".
func GenerateNIP(name, surnames string, birthDate time.Time) string {
	initials := firstRune(name)
	if parts := strings.Fields(surnames); len(parts) > 0 {
		initials += firstRune(parts[0])
	}
	return strings.ToUpper(initials) + fmt.Sprintf("%02d%02d", birthDate.Day(), int(birthDate.Month()))
}

func firstRune(s string) string {
	r, size := utf8.DecodeRuneInString(strings.TrimSpace(s))
	if size == 0 {
		return ""
	}
	return string(r)
}

// Register validates the form, stores the student and resets its progress to
// the starting defaults in one transaction.
func (s *StudentService) Register(ctx context.Context, in RegistrationInput) (*models.Student, error) {
	const op = "students.Register"
	for _, f := range in.fields() {
		if strings.TrimSpace(f[1]) == "" {
			return nil, apperr.Validation(op, "field %s is required", f[0])
		}
	}

	age, err := strconv.Atoi(strings.TrimSpace(in.Age))
	if err != nil {
		return nil, apperr.Validation(op, "age must be a whole number")
	}
	if age < MinAge || age > MaxAge {
		return nil, apperr.Validation(op, "age must be between %d and %d", MinAge, MaxAge)
	}

	email := strings.ToLower(strings.TrimSpace(in.TutorEmail))
	if !emailPattern.MatchString(email) {
		return nil, apperr.Validation(op, "tutor email is not valid")
	}

	birthDate, err := time.Parse("2006-01-02", strings.TrimSpace(in.BirthDate))
	if err != nil {
		return nil, apperr.DateFormat(op, "invalid date format, expected YYYY-MM-DD", err)
	}

	student := &models.Student{
		NIP:        GenerateNIP(in.Name, in.Surnames, birthDate),
		FirstName:  strings.TrimSpace(in.Name),
		Surnames:   strings.TrimSpace(in.Surnames),
		Age:        age,
		School:     strings.TrimSpace(in.School),
		Grade:      strings.TrimSpace(in.Grade),
		BirthDate:  birthDate,
		TutorName:  strings.TrimSpace(in.TutorName),
		TutorEmail: email,
		Active:     true,
	}

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var n int64
		if err := tx.Model(&models.Student{}).Where("nip = ?", student.NIP).Count(&n).Error; err != nil {
			return err
		}
		if n > 0 {
			return apperr.Conflict(op, "a student with this NIP already exists, check the data or contact the administrator")
		}
		if err := tx.Create(student).Error; err != nil {
			return err
		}
		_, err := s.progress.startFresh(tx, student.UserID())
		return err
	})
	if err != nil {
		return nil, apperr.Wrap(op, err)
	}

	metrics.Registrations.Inc()
	s.log.Info("student registered", zap.String("nip", student.NIP), zap.Uint("id", student.ID))
	return student, nil
}

// Login opens a session for an active student.
func (s *StudentService) Login(ctx context.Context, nip string) (*LoginResult, error) {
	const op = "students.Login"
	if utf8.RuneCountInString(nip) != NIPLength {
		return nil, apperr.Validation(op, "NIP must have %d characters", NIPLength)
	}

	res := &LoginResult{}
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		student, err := s.findActive(tx, nip)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return apperr.NotFound(op, "NIP not found or account inactive")
			}
			return err
		}

		session := &models.StudentSession{
			StudentID:        student.ID,
			SessionStart:     s.now(),
			ModulesCompleted: datatypes.JSONSlice[int]{},
		}
		if err := tx.Create(session).Error; err != nil {
			return err
		}

		progress, err := s.progress.getOrCreate(tx, student.UserID())
		if err != nil {
			return err
		}
		res.Student, res.Progress, res.SessionID = student, progress, session.ID
		return nil
	})
	if err != nil {
		return nil, apperr.Wrap(op, err)
	}

	metrics.Logins.Inc()
	s.log.Info("student logged in", zap.String("nip", res.Student.NIP), zap.Uint("session_id", res.SessionID))
	return res, nil
}

// Logout records the session totals and closes it.
func (s *StudentService) Logout(ctx context.Context, sessionID uint, in LogoutInput) (*models.StudentSession, error) {
	const op = "students.Logout"
	var session models.StudentSession
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&session, sessionID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return apperr.NotFound(op, "session not found")
			}
			return err
		}
		if in.ModulesCompleted != nil {
			session.ModulesCompleted = datatypes.JSONSlice[int](*in.ModulesCompleted)
		}
		if in.ActivitiesCompleted != nil {
			session.ActivitiesCompleted = *in.ActivitiesCompleted
		}
		if in.CoinsEarned != nil {
			session.CoinsEarned = *in.CoinsEarned
		}
		if session.ModulesCompleted == nil {
			session.ModulesCompleted = datatypes.JSONSlice[int]{}
		}
		session.End(s.now())
		return tx.Save(&session).Error
	})
	if err != nil {
		return nil, apperr.Wrap(op, err)
	}
	return &session, nil
}

// GetInfo returns an active student's profile, progress and session totals.
func (s *StudentService) GetInfo(ctx context.Context, nip string) (*StudentInfo, error) {
	const op = "students.GetInfo"
	db := s.db.WithContext(ctx)

	student, err := s.findActive(db, nip)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound(op, "student not found")
		}
		return nil, apperr.Internal(op, err)
	}

	var stats SessionStats
	if err := db.Model(&models.StudentSession{}).
		Select("COUNT(*) AS total_sessions, COALESCE(SUM(duration_minutes), 0) AS total_time_minutes").
		Where("student_id = ?", student.ID).
		Scan(&stats).Error; err != nil {
		return nil, apperr.Internal(op, err)
	}
	if stats.TotalSessions > 0 {
		avg := float64(stats.TotalTimeMinutes) / float64(stats.TotalSessions)
		stats.AverageSessionTime = math.Round(avg*10) / 10
	}

	progress, err := s.progress.find(db, student.UserID())
	if err != nil {
		return nil, apperr.Internal(op, err)
	}
	return &StudentInfo{Student: student, Progress: progress, Statistics: stats}, nil
}

// ListActive returns active students, newest first, with their progress and
// session counts.
func (s *StudentService) ListActive(ctx context.Context) ([]StudentSummary, error) {
	const op = "students.ListActive"
	db := s.db.WithContext(ctx)

	var students []models.Student
	if err := db.Where("active = ?", true).
		Order("created_at DESC").
		Order("id DESC").
		Find(&students).Error; err != nil {
		return nil, apperr.Internal(op, err)
	}
	summaries := make([]StudentSummary, 0, len(students))
	if len(students) == 0 {
		return summaries, nil
	}

	userIDs := make([]string, 0, len(students))
	studentIDs := make([]uint, 0, len(students))
	for i := range students {
		userIDs = append(userIDs, students[i].UserID())
		studentIDs = append(studentIDs, students[i].ID)
	}

	var progress []models.GameProgress
	if err := db.Where("user_id IN ?", userIDs).Find(&progress).Error; err != nil {
		return nil, apperr.Internal(op, err)
	}
	byUser := make(map[string]*models.GameProgress, len(progress))
	for i := range progress {
		progress[i].Normalize()
		byUser[progress[i].UserID] = &progress[i]
	}

	var counts []struct {
		StudentID uint
		Total     int64
	}
	if err := db.Model(&models.StudentSession{}).
		Select("student_id, COUNT(*) AS total").
		Where("student_id IN ?", studentIDs).
		Group("student_id").
		Scan(&counts).Error; err != nil {
		return nil, apperr.Internal(op, err)
	}
	sessions := make(map[uint]int64, len(counts))
	for _, c := range counts {
		sessions[c.StudentID] = c.Total
	}

	for i := range students {
		summaries = append(summaries, StudentSummary{
			StudentView:   students[i].View(),
			Progress:      byUser[students[i].UserID()],
			TotalSessions: sessions[students[i].ID],
		})
	}
	return summaries, nil
}

func (s *StudentService) findActive(tx *gorm.DB, nip string) (*models.Student, error) {
	var student models.Student
	if err := tx.Where("nip = ? AND active = ?", strings.ToUpper(nip), true).First(&student).Error; err != nil {
		return nil, err
	}
	return &student, nil
}
