package usecase

import (
	"context"
	"testing"

	"github.com/evandrarf/numeracy-tutor-be/internal/delivery/http/entity"
	internalEntity "github.com/evandrarf/numeracy-tutor-be/internal/entity"
	"github.com/evandrarf/numeracy-tutor-be/internal/pkg/llm"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStudentCreateAndGet(t *testing.T) {
	ctx := context.Background()
	uc := newFixture(t).studentUsecase(nil)

	created, err := uc.Create(ctx, entity.CreateStudentRequest{Name: "  Meena ", Grade: 4})
	require.NoError(t, err)
	assert.Equal(t, "Meena", created.Name)
	assert.Equal(t, "en", created.Language)
	assert.Equal(t, 1, created.CurrentLevel)

	got, err := uc.Get(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, created.ID, got.ID)

	_, err = uc.Get(ctx, 404)
	assert.ErrorIs(t, err, ErrStudentNotFound)

	students, err := uc.List(ctx)
	require.NoError(t, err)
	assert.Len(t, students, 1)
}

func TestStudentProgressAndPerformance(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	uc := f.studentUsecase(nil)
	s := f.student(t, "Ravi")

	empty, err := uc.Progress(ctx, s.ID)
	require.NoError(t, err)
	assert.NotNil(t, empty.Progress)
	assert.Empty(t, empty.Stats)

	for _, score := range []float64{0, 0, 1} {
		require.NoError(t, f.progress.Create(nil, &internalEntity.Progress{StudentID: s.ID, Topic: "division", Difficulty: 1, Score: score}))
	}

	progress, err := uc.Progress(ctx, s.ID)
	require.NoError(t, err)
	assert.Len(t, progress.Progress, 3)
	require.Len(t, progress.Stats, 1)
	assert.InDelta(t, 1.0/3.0, progress.Stats[0].AvgScore, 1e-9)

	perf, err := uc.Performance(ctx, s.ID)
	require.NoError(t, err)
	assert.Equal(t, entity.DecisionDecrease, perf.Decision)
	assert.Equal(t, 1, perf.RecommendedDifficulty)

	achievements, err := uc.Achievements(ctx, s.ID)
	require.NoError(t, err)
	assert.NotNil(t, achievements)
	assert.Empty(t, achievements)

	_, err = uc.Performance(ctx, 999)
	assert.ErrorIs(t, err, ErrStudentNotFound)
}

func TestStudentAgentViewsFallBackWithoutProvider(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	uc := f.studentUsecase(nil)
	s := f.student(t, "Kavya")

	analysis, err := uc.Analysis(ctx, s.ID)
	require.NoError(t, err)
	assert.Equal(t, "slow", analysis.Pace)

	path, err := uc.LearningPath(ctx, s.ID)
	require.NoError(t, err)
	assert.Equal(t, FallbackLearningPath(), path)

	recommended, err := uc.RecommendedQuestions(ctx, s.ID)
	require.NoError(t, err)
	assert.Len(t, recommended, 5)

	coaching, err := uc.Coaching(ctx, s.ID, 0, "")
	require.NoError(t, err)
	assert.Equal(t, fallbackCoaching["en"], coaching.Message)

	_, err = uc.Coaching(ctx, s.ID, 999, "en")
	assert.ErrorIs(t, err, ErrQuestionNotFound)

	_, err = uc.LearningPath(ctx, 999)
	assert.ErrorIs(t, err, ErrStudentNotFound)
}

func TestStudentCoachingUsesProvider(t *testing.T) {
	f := newFixture(t)
	mock := llm.NewMockProvider(llm.MockResponse{Text: "बहुत बढ़िया!"})
	uc := f.studentUsecase(mock)
	s := f.student(t, "Arjun")

	res, err := uc.Coaching(context.Background(), s.ID, seedAdditionID, "hi")
	require.NoError(t, err)
	assert.Equal(t, "बहुत बढ़िया!", res.Message)
	assert.Contains(t, mock.Calls[0].Messages[0].Content, "addition, difficulty 1")
	assert.Contains(t, mock.Calls[0].Messages[0].Content, "Hindi")
}
