package services

import (
	"context"
	"testing"
	"time"

	"finquest/backend/apperr"
	"finquest/backend/models"
	"finquest/backend/testutil/testdb"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type fixture struct {
	db       *gorm.DB
	students *StudentService
	progress *ProgressService
	scores   *ScoreService
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	db := testdb.NewSQLite(t)
	log := zap.NewNop()
	scores := NewScoreService(db, log)
	progress := NewProgressService(db, scores, log)
	return &fixture{
		db:       db,
		students: NewStudentService(db, progress, log),
		progress: progress,
		scores:   scores,
	}
}

func validRegistration() RegistrationInput {
	return RegistrationInput{
		Name:       "Ana",
		Surnames:   "García López",
		Age:        "10",
		School:     "Escuela Benito Juárez",
		Grade:      "5",
		BirthDate:  "2015-03-07",
		TutorName:  "María López",
		TutorEmail: "  Maria.Lopez@Example.com ",
	}
}

func TestGenerateNIP(t *testing.T) {
	cases := []struct {
		name, surnames, birth, want string
	}{
		{"Ana", "García López", "2015-03-07", "AG0703"},
		{"Luis", "Pérez Gómez", "2016-11-05", "LP0511"},
		{"ángel", "ñúñez", "2012-12-31", "ÁÑ3112"},
		{" sofía ", "  ruiz", "2014-01-09", "SR0901"},
	}
	for _, tc := range cases {
		birth, err := time.Parse("2006-01-02", tc.birth)
		require.NoError(t, err)
		assert.Equal(t, tc.want, GenerateNIP(tc.name, tc.surnames, birth))
	}
}

func TestRegister(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	student, err := f.students.Register(ctx, validRegistration())
	require.NoError(t, err)
	assert.Equal(t, "AG0703", student.NIP)
	assert.Equal(t, "maria.lopez@example.com", student.TutorEmail)
	assert.True(t, student.Active)
	assert.Equal(t, 10, student.Age)

	var progress []models.GameProgress
	require.NoError(t, f.db.Where("user_id = ?", "student_AG0703").Find(&progress).Error)
	require.Len(t, progress, 1)
	assert.Equal(t, models.DefaultCoins, progress[0].Coins)
	assert.Equal(t, models.DefaultLevel, progress[0].Level)
	assert.Empty(t, progress[0].CompletedModules)
	assert.Empty(t, progress[0].Badges)
}

func TestRegisterResetsEarlierProgress(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	_, err := f.progress.CompleteModule(ctx, "student_AG0703", 1, 85)
	require.NoError(t, err)

	_, err = f.students.Register(ctx, validRegistration())
	require.NoError(t, err)

	var rows []models.GameProgress
	require.NoError(t, f.db.Where("user_id = ?", "student_AG0703").Find(&rows).Error)
	require.Len(t, rows, 1)
	assert.Equal(t, models.DefaultCoins, rows[0].Coins)
	assert.Equal(t, models.DefaultLevel, rows[0].Level)
	assert.Empty(t, rows[0].CompletedModules)
	assert.Empty(t, rows[0].Badges)
	assert.Zero(t, rows[0].CurrentModule)
}

func TestRegisterConflict(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	_, err := f.students.Register(ctx, validRegistration())
	require.NoError(t, err)

	// same initials and birthday, different person
	other := validRegistration()
	other.Name = "Alberto"
	other.Surnames = "Gómez"
	other.BirthDate = "2013-03-07"
	_, err = f.students.Register(ctx, other)
	assert.ErrorIs(t, err, apperr.ErrConflict)

	var n int64
	require.NoError(t, f.db.Model(&models.Student{}).Count(&n).Error)
	assert.Equal(t, int64(1), n)
}

func TestRegisterConflictWithInactiveStudent(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	_, err := f.students.Register(ctx, validRegistration())
	require.NoError(t, err)
	require.NoError(t, f.db.Model(&models.Student{}).Where("nip = ?", "AG0703").Update("active", false).Error)

	_, err = f.students.Register(ctx, validRegistration())
	assert.ErrorIs(t, err, apperr.ErrConflict)
}

func TestRegisterValidation(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	cases := []struct {
		name   string
		mutate func(*RegistrationInput)
		kind   error
	}{
		{"missing name", func(in *RegistrationInput) { in.Name = "" }, apperr.ErrValidation},
		{"blank school", func(in *RegistrationInput) { in.School = "   " }, apperr.ErrValidation},
		{"missing email", func(in *RegistrationInput) { in.TutorEmail = "" }, apperr.ErrValidation},
		{"age not a number", func(in *RegistrationInput) { in.Age = "diez" }, apperr.ErrValidation},
		{"too young", func(in *RegistrationInput) { in.Age = "5" }, apperr.ErrValidation},
		{"too old", func(in *RegistrationInput) { in.Age = "18" }, apperr.ErrValidation},
		{"bad email", func(in *RegistrationInput) { in.TutorEmail = "maria@example" }, apperr.ErrValidation},
		{"bad date", func(in *RegistrationInput) { in.BirthDate = "07/03/2015" }, apperr.ErrDateFormat},
		{"impossible date", func(in *RegistrationInput) { in.BirthDate = "2015-02-30" }, apperr.ErrDateFormat},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			in := validRegistration()
			tc.mutate(&in)
			_, err := f.students.Register(ctx, in)
			assert.ErrorIs(t, err, tc.kind)
		})
	}

	var n int64
	require.NoError(t, f.db.Model(&models.Student{}).Count(&n).Error)
	assert.Zero(t, n)
}

func TestRegisterMissingFieldMessage(t *testing.T) {
	f := newFixture(t)
	in := validRegistration()
	in.Grade = ""
	_, err := f.students.Register(context.Background(), in)
	require.Error(t, err)
	assert.Equal(t, "field grado is required", err.Error())
}

func TestLogin(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	_, err := f.students.Register(ctx, validRegistration())
	require.NoError(t, err)

	res, err := f.students.Login(ctx, "ag0703")
	require.NoError(t, err)
	assert.Equal(t, "AG0703", res.Student.NIP)
	assert.Equal(t, "student_AG0703", res.Progress.UserID)
	assert.NotZero(t, res.SessionID)

	var session models.StudentSession
	require.NoError(t, f.db.First(&session, res.SessionID).Error)
	assert.Nil(t, session.SessionEnd)
	assert.Nil(t, session.DurationMinutes)
}

func TestLoginCreatesMissingProgress(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	_, err := f.students.Register(ctx, validRegistration())
	require.NoError(t, err)
	require.NoError(t, f.progress.Reset(ctx, "student_AG0703"))

	res, err := f.students.Login(ctx, "AG0703")
	require.NoError(t, err)
	assert.Equal(t, models.DefaultCoins, res.Progress.Coins)
}

func TestLoginErrors(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	_, err := f.students.Register(ctx, validRegistration())
	require.NoError(t, err)

	_, err = f.students.Login(ctx, "AG07")
	assert.ErrorIs(t, err, apperr.ErrValidation)
	_, err = f.students.Login(ctx, "AG07031")
	assert.ErrorIs(t, err, apperr.ErrValidation)
	_, err = f.students.Login(ctx, "ZZ0101")
	assert.ErrorIs(t, err, apperr.ErrNotFound)

	require.NoError(t, f.db.Model(&models.Student{}).Where("nip = ?", "AG0703").Update("active", false).Error)
	_, err = f.students.Login(ctx, "AG0703")
	assert.ErrorIs(t, err, apperr.ErrNotFound)

	var n int64
	require.NoError(t, f.db.Model(&models.StudentSession{}).Count(&n).Error)
	assert.Zero(t, n)
}

func TestLogout(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	_, err := f.students.Register(ctx, validRegistration())
	require.NoError(t, err)
	res, err := f.students.Login(ctx, "AG0703")
	require.NoError(t, err)

	var session models.StudentSession
	require.NoError(t, f.db.First(&session, res.SessionID).Error)
	f.students.now = func() time.Time { return session.SessionStart.Add(42*time.Minute + 30*time.Second) }

	modules := []int{1, 2}
	activities, coins := 5, 45
	closed, err := f.students.Logout(ctx, res.SessionID, LogoutInput{
		ModulesCompleted:    &modules,
		ActivitiesCompleted: &activities,
		CoinsEarned:         &coins,
	})
	require.NoError(t, err)
	require.NotNil(t, closed.SessionEnd)
	require.NotNil(t, closed.DurationMinutes)
	assert.Equal(t, 42, *closed.DurationMinutes)
	assert.Equal(t, int(closed.SessionEnd.Sub(closed.SessionStart).Minutes()), *closed.DurationMinutes)
	assert.Equal(t, []int{1, 2}, []int(closed.ModulesCompleted))
	assert.Equal(t, 5, closed.ActivitiesCompleted)
	assert.Equal(t, 45, closed.CoinsEarned)

	var stored models.StudentSession
	require.NoError(t, f.db.First(&stored, res.SessionID).Error)
	require.NotNil(t, stored.DurationMinutes)
	assert.Equal(t, 42, *stored.DurationMinutes)
}

func TestLogoutWithoutBody(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	_, err := f.students.Register(ctx, validRegistration())
	require.NoError(t, err)
	res, err := f.students.Login(ctx, "AG0703")
	require.NoError(t, err)

	closed, err := f.students.Logout(ctx, res.SessionID, LogoutInput{})
	require.NoError(t, err)
	require.NotNil(t, closed.DurationMinutes)
	assert.Zero(t, *closed.DurationMinutes)
	assert.Empty(t, closed.ModulesCompleted)
}

func TestLogoutUnknownSession(t *testing.T) {
	f := newFixture(t)
	_, err := f.students.Logout(context.Background(), 999, LogoutInput{})
	assert.ErrorIs(t, err, apperr.ErrNotFound)
}

func TestGetInfo(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	_, err := f.students.Register(ctx, validRegistration())
	require.NoError(t, err)

	info, err := f.students.GetInfo(ctx, "ag0703")
	require.NoError(t, err)
	assert.Equal(t, "AG0703", info.Student.NIP)
	require.NotNil(t, info.Progress)
	assert.Equal(t, SessionStats{}, info.Statistics)

	for _, minutes := range []time.Duration{10, 15, 6} {
		res, err := f.students.Login(ctx, "AG0703")
		require.NoError(t, err)
		var s models.StudentSession
		require.NoError(t, f.db.First(&s, res.SessionID).Error)
		start := s.SessionStart
		f.students.now = func() time.Time { return start.Add(minutes * time.Minute) }
		_, err = f.students.Logout(ctx, res.SessionID, LogoutInput{})
		require.NoError(t, err)
		f.students.now = utcNow
	}

	info, err = f.students.GetInfo(ctx, "AG0703")
	require.NoError(t, err)
	assert.Equal(t, int64(3), info.Statistics.TotalSessions)
	assert.Equal(t, int64(31), info.Statistics.TotalTimeMinutes)
	assert.Equal(t, 10.3, info.Statistics.AverageSessionTime)
}

func TestGetInfoWithoutProgress(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	_, err := f.students.Register(ctx, validRegistration())
	require.NoError(t, err)
	require.NoError(t, f.progress.Reset(ctx, "student_AG0703"))

	info, err := f.students.GetInfo(ctx, "AG0703")
	require.NoError(t, err)
	assert.Nil(t, info.Progress)

	_, err = f.students.GetInfo(ctx, "XX0000")
	assert.ErrorIs(t, err, apperr.ErrNotFound)
}

func TestListActive(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	empty, err := f.students.ListActive(ctx)
	require.NoError(t, err)
	assert.NotNil(t, empty)
	assert.Empty(t, empty)

	_, err = f.students.Register(ctx, validRegistration())
	require.NoError(t, err)
	second := validRegistration()
	second.Name, second.Surnames, second.BirthDate = "Luis", "Pérez Gómez", "2016-11-05"
	_, err = f.students.Register(ctx, second)
	require.NoError(t, err)
	third := validRegistration()
	third.Name, third.Surnames, third.BirthDate = "Carla", "Díaz", "2014-06-01"
	_, err = f.students.Register(ctx, third)
	require.NoError(t, err)
	require.NoError(t, f.db.Model(&models.Student{}).Where("nip = ?", "CD0106").Update("active", false).Error)

	_, err = f.students.Login(ctx, "AG0703")
	require.NoError(t, err)
	_, err = f.students.Login(ctx, "AG0703")
	require.NoError(t, err)

	list, err := f.students.ListActive(ctx)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "LP0511", list[0].NIP, "newest first")
	assert.Equal(t, "AG0703", list[1].NIP)
	assert.Equal(t, int64(2), list[1].TotalSessions)
	assert.Zero(t, list[0].TotalSessions)
	require.NotNil(t, list[1].Progress)
	assert.Equal(t, "student_AG0703", list[1].Progress.UserID)
}
