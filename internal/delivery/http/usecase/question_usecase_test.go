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

// Question 1 of the seed bank is "2 + 3" at difficulty 1.
const seedAdditionID = 1

func TestSubmitAnswerProgression(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	uc := f.questionUsecase(nil, nil)
	s := f.student(t, "Asha")

	answer := func(value string) *entity.SubmitAnswerResponse {
		t.Helper()
		res, err := uc.SubmitAnswer(ctx, entity.SubmitAnswerRequest{StudentID: s.ID, QuestionID: seedAdditionID, Answer: value})
		require.NoError(t, err)
		return res
	}

	first := answer(" 5 ")
	assert.True(t, first.IsCorrect)
	assert.Equal(t, 10, first.Points)
	assert.Nil(t, first.Explanation)
	assert.Equal(t, []entity.Badge{{Type: BadgeFirstCorrect, Name: "First Step"}}, first.NewBadges)
	assert.Equal(t, entity.DecisionBuilding, first.Performance.Decision)
	assert.Equal(t, 10, first.Student.TotalPoints)
	assert.Equal(t, 1, first.Student.CurrentLevel)
	assert.Equal(t, 1, first.Student.StreakDays)

	second := answer("5")
	assert.Empty(t, second.NewBadges)
	assert.Equal(t, 1, second.Student.CurrentLevel)

	third := answer("5")
	assert.Equal(t, entity.DecisionIncrease, third.Performance.Decision)
	assert.Equal(t, 2, third.Student.CurrentLevel)

	answer("5")
	fifth := answer("5")
	assert.Equal(t, 50, fifth.Student.TotalPoints)
	assert.Equal(t, 3, fifth.Student.CurrentLevel)
	assert.ElementsMatch(t, []string{BadgePoints50, BadgePerfectStreak}, badgeTypes(fifth.NewBadges))
	assert.Equal(t, 1, fifth.Student.StreakDays)

	wrong := answer("4")
	assert.False(t, wrong.IsCorrect)
	assert.Zero(t, wrong.Points)
	assert.Equal(t, "5", wrong.CorrectAnswer)
	require.NotNil(t, wrong.Explanation)
	assert.Equal(t, "The correct answer is 5. Let's break it down step by step!", *wrong.Explanation)
	assert.Empty(t, wrong.NewBadges, "points_50 is already held")
	assert.Equal(t, 50, wrong.Student.TotalPoints)

	achievements, err := f.progress.FindAchievementsByStudentID(nil, s.ID)
	require.NoError(t, err)
	assert.Len(t, achievements, 3)

	logs, err := f.questions.FindAnswersByStudentID(nil, s.ID, 0)
	require.NoError(t, err)
	assert.Len(t, logs, 6)
	assert.Equal(t, "4", logs[0].Answer)
}

func TestSubmitAnswerDailyStreak(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	uc := f.questionUsecase(nil, nil)
	s := f.student(t, "Bala")
	req := entity.SubmitAnswerRequest{StudentID: s.ID, QuestionID: seedAdditionID, Answer: "5"}

	res, err := uc.SubmitAnswer(ctx, req)
	require.NoError(t, err)
	assert.Equal(t, 1, res.Student.StreakDays)

	f.now = f.now.AddDate(0, 0, 1)
	res, err = uc.SubmitAnswer(ctx, req)
	require.NoError(t, err)
	assert.Equal(t, 2, res.Student.StreakDays)

	res, err = uc.SubmitAnswer(ctx, req)
	require.NoError(t, err)
	assert.Equal(t, 2, res.Student.StreakDays)

	f.now = f.now.AddDate(0, 0, 3)
	res, err = uc.SubmitAnswer(ctx, req)
	require.NoError(t, err)
	assert.Equal(t, 1, res.Student.StreakDays)
}

func TestSubmitAnswerUsesExplainer(t *testing.T) {
	f := newFixture(t)
	mock := llm.NewMockProvider(llm.MockResponse{Text: "Two sweets plus three sweets is five sweets."})
	uc := f.questionUsecase(mock, nil)
	s := f.student(t, "Chitra")

	res, err := uc.SubmitAnswer(context.Background(), entity.SubmitAnswerRequest{StudentID: s.ID, QuestionID: seedAdditionID, Answer: "6"})
	require.NoError(t, err)
	require.NotNil(t, res.Explanation)
	assert.Equal(t, "Two sweets plus three sweets is five sweets.", *res.Explanation)
}

func TestSubmitAnswerNotFound(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	uc := f.questionUsecase(nil, nil)
	s := f.student(t, "Dev")

	_, err := uc.SubmitAnswer(ctx, entity.SubmitAnswerRequest{StudentID: s.ID, QuestionID: 999, Answer: "1"})
	assert.ErrorIs(t, err, ErrQuestionNotFound)

	_, err = uc.SubmitAnswer(ctx, entity.SubmitAnswerRequest{StudentID: 999, QuestionID: seedAdditionID, Answer: "1"})
	assert.ErrorIs(t, err, ErrStudentNotFound)
}

func TestListQuestions(t *testing.T) {
	ctx := context.Background()
	uc := newFixture(t).questionUsecase(nil, nil)

	t.Run("by difficulty with capped count", func(t *testing.T) {
		questions, err := uc.List(ctx, "", 1, 50)
		require.NoError(t, err)
		assert.NotEmpty(t, questions)
		assert.LessOrEqual(t, len(questions), MaxQuestionCount)
		for _, q := range questions {
			assert.Equal(t, 1, q.Difficulty)
			assert.NotEmpty(t, q.Text)
		}
	})

	t.Run("default count", func(t *testing.T) {
		questions, err := uc.List(ctx, "", 0, 0)
		require.NoError(t, err)
		assert.Len(t, questions, DefaultQuestionCount)
	})

	t.Run("invalid difficulty means 1", func(t *testing.T) {
		questions, err := uc.List(ctx, "division", 9, 0)
		require.NoError(t, err)
		require.Len(t, questions, 2)
		for _, q := range questions {
			assert.Equal(t, entity.TopicDivision, q.Topic)
			assert.Equal(t, 1, q.Difficulty)
		}
	})

	t.Run("word problems", func(t *testing.T) {
		questions, err := uc.List(ctx, "word_problem", 3, 0)
		require.NoError(t, err)
		require.Len(t, questions, 2)
		assert.Equal(t, internalEntity.QuestionTypeInput, questions[0].QuestionType)
		assert.Empty(t, questions[0].Options)
	})

	t.Run("unknown topic", func(t *testing.T) {
		_, err := uc.List(ctx, "fractions", 1, 0)
		assert.ErrorIs(t, err, ErrInvalidTopic)
	})
}

func TestGenerateQuestionIsPersisted(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	uc := f.questionUsecase(nil, nil)

	q, err := uc.Generate(ctx, entity.GenerateQuestionRequest{Topic: "subtraction", Difficulty: 2})
	require.NoError(t, err)
	assert.NotZero(t, q.ID)
	assert.Equal(t, internalEntity.SourceFallback, q.Source)
	assert.Equal(t, entity.TopicSubtraction, q.Topic)
	assert.Len(t, q.Options, 4)

	stored, err := f.questions.FindByID(nil, q.ID)
	require.NoError(t, err)

	s := f.student(t, "Esha")
	res, err := uc.SubmitAnswer(ctx, entity.SubmitAnswerRequest{StudentID: s.ID, QuestionID: q.ID, Answer: stored.CorrectAnswer})
	require.NoError(t, err)
	assert.True(t, res.IsCorrect)
}

func TestGenerateQuestionFromProviderIsPersisted(t *testing.T) {
	f := newFixture(t)
	mock := llm.NewMockProvider(llm.MockResponse{Text: `{"num1": 9, "num2": 3, "options": [3, 2, 4, 6], "correct_answer": 3}`})
	uc := f.questionUsecase(nil, mock)

	q, err := uc.Generate(context.Background(), entity.GenerateQuestionRequest{Topic: "division", Difficulty: 1})
	require.NoError(t, err)
	assert.Equal(t, internalEntity.SourceAI, q.Source)
	assert.Equal(t, "9 ÷ 3", q.Text)
}

func TestHintUsecase(t *testing.T) {
	ctx := context.Background()
	uc := newFixture(t).questionUsecase(nil, nil)

	res, err := uc.Hint(ctx, entity.HintRequest{QuestionID: seedAdditionID, Language: "hi"})
	require.NoError(t, err)
	assert.Equal(t, fallbackHints["hi"], res.Hint)

	_, err = uc.Hint(ctx, entity.HintRequest{QuestionID: 999})
	assert.ErrorIs(t, err, ErrQuestionNotFound)
}
