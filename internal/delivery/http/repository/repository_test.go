package repository

import (
	"testing"

	"github.com/evandrarf/numeracy-tutor-be/database"
	"github.com/evandrarf/numeracy-tutor-be/internal/entity"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := database.Open(database.DriverSQLite, ":memory:", false)
	require.NoError(t, err)
	require.NoError(t, database.Migrate(db))
	_, err = database.SeedQuestionBank(db)
	require.NoError(t, err)
	return db
}

func TestStudentRepository(t *testing.T) {
	db := newTestDB(t)
	students := NewStudentRepository(db)
	progress := NewProgressRepository(db)

	s := &entity.Student{Name: "Asha", Grade: 4, Language: "hi", CurrentLevel: 1}
	require.NoError(t, students.Create(nil, s))
	require.NotZero(t, s.ID)

	require.NoError(t, students.AddPoints(nil, s.ID, 10, 2))
	require.NoError(t, students.AddPoints(nil, s.ID, 10, 2))
	require.NoError(t, students.MarkActive(nil, s.ID, "2026-10-17", true))
	require.NoError(t, students.MarkActive(nil, s.ID, "2026-10-18", true))

	got, err := students.FindByID(nil, s.ID)
	require.NoError(t, err)
	assert.Equal(t, 20, got.TotalPoints)
	assert.Equal(t, 2, got.CurrentLevel)
	assert.Equal(t, 2, got.StreakDays)
	assert.Equal(t, "2026-10-18", got.LastActiveDate)

	require.NoError(t, students.MarkActive(nil, s.ID, "2026-10-21", false))
	got, err = students.FindByID(nil, s.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, got.StreakDays)
	assert.Equal(t, "2026-10-21", got.LastActiveDate)

	_, err = students.FindByID(nil, 9999)
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)

	idle := &entity.Student{Name: "Idle", Grade: 2, Language: "en", CurrentLevel: 1}
	require.NoError(t, students.Create(nil, idle))

	require.NoError(t, progress.Create(nil, &entity.Progress{StudentID: s.ID, Topic: "addition", Difficulty: 1, Score: 1}))
	require.NoError(t, progress.Create(nil, &entity.Progress{StudentID: s.ID, Topic: "addition", Difficulty: 2, Score: 0}))
	require.NoError(t, progress.Create(nil, &entity.Progress{StudentID: s.ID, Topic: "division", Difficulty: 1, Score: 1}))

	overview, err := students.FindOverview(nil)
	require.NoError(t, err)
	require.Len(t, overview, 2)

	assert.Equal(t, s.ID, overview[0].ID)
	assert.EqualValues(t, 2, overview[0].TopicsAttempted)
	require.NotNil(t, overview[0].AvgScore)
	assert.InDelta(t, 2.0/3.0, *overview[0].AvgScore, 1e-9)

	assert.Equal(t, idle.ID, overview[1].ID)
	assert.Zero(t, overview[1].TopicsAttempted)
	assert.Nil(t, overview[1].AvgScore)
}

func TestProgressRepository(t *testing.T) {
	db := newTestDB(t)
	repo := NewProgressRepository(db)

	scores := []float64{1, 0, 1, 1}
	for _, score := range scores {
		require.NoError(t, repo.Create(nil, &entity.Progress{StudentID: 1, Topic: "subtraction", Difficulty: 1, Score: score}))
	}
	require.NoError(t, repo.Create(nil, &entity.Progress{StudentID: 1, Topic: "addition", Difficulty: 3, Score: 0}))
	require.NoError(t, repo.Create(nil, &entity.Progress{StudentID: 2, Topic: "addition", Difficulty: 1, Score: 1}))

	t.Run("newest first with limit", func(t *testing.T) {
		rows, err := repo.FindByStudentID(nil, 1, 2)
		require.NoError(t, err)
		require.Len(t, rows, 2)
		assert.Equal(t, "addition", rows[0].Topic)
		assert.Equal(t, 1.0, rows[1].Score)
		assert.Greater(t, rows[0].ID, rows[1].ID)
	})

	t.Run("stats per topic", func(t *testing.T) {
		stats, err := repo.FindStatsByStudentID(nil, 1)
		require.NoError(t, err)
		require.Len(t, stats, 2)

		assert.Equal(t, "addition", stats[0].Topic)
		assert.Equal(t, 0.0, stats[0].AvgScore)
		assert.EqualValues(t, 1, stats[0].Attempts)
		assert.Equal(t, 3, stats[0].MaxDifficulty)

		assert.Equal(t, "subtraction", stats[1].Topic)
		assert.InDelta(t, 0.75, stats[1].AvgScore, 1e-9)
		assert.EqualValues(t, 4, stats[1].Attempts)
	})

	t.Run("achievements", func(t *testing.T) {
		require.NoError(t, repo.CreateAchievement(nil, &entity.Achievement{StudentID: 1, BadgeType: "first_correct", BadgeName: "First Step"}))
		require.NoError(t, repo.CreateAchievement(nil, &entity.Achievement{StudentID: 1, BadgeType: "points_50", BadgeName: "Math Explorer"}))

		got, err := repo.FindAchievementsByStudentID(nil, 1)
		require.NoError(t, err)
		require.Len(t, got, 2)
		assert.Equal(t, "points_50", got[0].BadgeType)

		none, err := repo.FindAchievementsByStudentID(nil, 2)
		require.NoError(t, err)
		assert.Empty(t, none)
	})
}

func TestQuestionRepository(t *testing.T) {
	db := newTestDB(t)
	repo := NewQuestionRepository(db)

	t.Run("random by difficulty honours limit", func(t *testing.T) {
		questions, err := repo.FindRandomByDifficulty(nil, 1, 3)
		require.NoError(t, err)
		assert.Len(t, questions, 3)
		for _, q := range questions {
			assert.Equal(t, 1, q.Difficulty)
		}
	})

	t.Run("random by topic", func(t *testing.T) {
		questions, err := repo.FindRandomByTopic(nil, "addition", 2, 5)
		require.NoError(t, err)
		assert.Len(t, questions, 2)
		for _, q := range questions {
			assert.Equal(t, "addition", q.Topic)
			assert.Equal(t, 2, q.Difficulty)
		}
	})

	t.Run("answers joined with question", func(t *testing.T) {
		q, err := repo.FindByID(nil, 1)
		require.NoError(t, err)

		taken := 7
		require.NoError(t, repo.CreateAnswer(nil, &entity.StudentAnswer{StudentID: 1, QuestionID: q.ID, Answer: "5", IsCorrect: true, TimeTaken: &taken}))
		require.NoError(t, repo.CreateAnswer(nil, &entity.StudentAnswer{StudentID: 1, QuestionID: q.ID, Answer: "4", IsCorrect: false}))

		logs, err := repo.FindAnswersByStudentID(nil, 1, 0)
		require.NoError(t, err)
		require.Len(t, logs, 2)
		assert.Equal(t, "4", logs[0].Answer)
		assert.False(t, logs[0].IsCorrect)
		assert.Nil(t, logs[0].TimeTaken)
		assert.Equal(t, q.Topic, logs[1].Topic)
		assert.Equal(t, q.Difficulty, logs[1].Difficulty)
		require.NotNil(t, logs[1].TimeTaken)
		assert.Equal(t, 7, *logs[1].TimeTaken)
	})
}

func TestStudentRepositoryMarkActive(t *testing.T) {
	db := newTestDB(t)
	students := NewStudentRepository(db)

	s := &entity.Student{Name: "Ravi", Grade: 3, Language: "en", CurrentLevel: 1}
	require.NoError(t, students.Create(nil, s))

	streakOf := func(t *testing.T) int {
		t.Helper()
		got, err := students.FindByID(nil, s.ID)
		require.NoError(t, err)
		return got.StreakDays
	}

	require.NoError(t, students.MarkActive(nil, s.ID, "2026-10-15", false))
	require.NoError(t, students.MarkActive(nil, s.ID, "2026-10-16", true))
	require.NoError(t, students.MarkActive(nil, s.ID, "2026-10-17", true))
	assert.Equal(t, 3, streakOf(t))

	t.Run("same day is counted once", func(t *testing.T) {
		require.NoError(t, students.MarkActive(nil, s.ID, "2026-10-17", true))
		require.NoError(t, students.MarkActive(nil, s.ID, "2026-10-17", true))
		assert.Equal(t, 3, streakOf(t))
	})

	t.Run("gap restarts at one", func(t *testing.T) {
		require.NoError(t, students.MarkActive(nil, s.ID, "2026-10-25", false))
		assert.Equal(t, 1, streakOf(t))

		require.NoError(t, students.MarkActive(nil, s.ID, "2026-10-26", true))
		assert.Equal(t, 2, streakOf(t))
	})
}
