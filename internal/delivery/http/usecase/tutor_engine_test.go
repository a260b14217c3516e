package usecase

import (
	"context"
	"errors"
	"strconv"
	"testing"

	"github.com/evandrarf/numeracy-tutor-be/internal/delivery/http/entity"
	internalEntity "github.com/evandrarf/numeracy-tutor-be/internal/entity"
	"github.com/evandrarf/numeracy-tutor-be/internal/pkg/llm"
	"github.com/evandrarf/numeracy-tutor-be/internal/pkg/mapper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func additionQuestion() *internalEntity.Question {
	return &internalEntity.Question{
		ID:            1,
		Topic:         "addition",
		Difficulty:    1,
		QuestionType:  internalEntity.QuestionTypeSelect,
		QuestionData:  `{"num1":2,"num2":3,"options":[5,4,6,3]}`,
		CorrectAnswer: "5",
	}
}

func TestNormalizeLanguage(t *testing.T) {
	assert.Equal(t, "hi", NormalizeLanguage("hi"))
	assert.Equal(t, "ta", NormalizeLanguage(" TA "))
	assert.Equal(t, "en", NormalizeLanguage("fr"))
	assert.Equal(t, "en", NormalizeLanguage(""))
}

func TestExplain(t *testing.T) {
	ctx := context.Background()

	t.Run("uses provider text", func(t *testing.T) {
		mock := llm.NewMockProvider(llm.MockResponse{Text: "  Two apples and three apples make five apples!  "})
		engine := NewTutorEngine(TutorEngineConfig{Log: quietLogger(), Explainer: mock, Seed: 1})

		got := engine.Explain(ctx, additionQuestion(), "4", "en")
		assert.Equal(t, "Two apples and three apples make five apples!", got)
		require.Equal(t, 1, mock.CallCount())
		assert.Contains(t, mock.Calls[0].Messages[0].Content, "2 + 3")
		assert.Contains(t, mock.Calls[0].Messages[0].Content, "English")
	})

	t.Run("falls back in the student's language", func(t *testing.T) {
		mock := llm.NewMockProvider(llm.MockResponse{Err: errors.New("boom")})
		engine := NewTutorEngine(TutorEngineConfig{Log: quietLogger(), Explainer: mock, Seed: 1})

		got := engine.Explain(ctx, additionQuestion(), "4", "hi")
		assert.Equal(t, "सही उत्तर 5 है। आइए इसे चरण दर चरण समझें!", got)
	})

	t.Run("empty response falls back", func(t *testing.T) {
		mock := llm.NewMockProvider(llm.MockResponse{Text: "   "})
		engine := NewTutorEngine(TutorEngineConfig{Log: quietLogger(), Explainer: mock, Seed: 1})

		got := engine.Explain(ctx, additionQuestion(), "4", "xx")
		assert.Equal(t, "The correct answer is 5. Let's break it down step by step!", got)
	})

	t.Run("no provider", func(t *testing.T) {
		engine := NewTutorEngine(TutorEngineConfig{Log: quietLogger(), Seed: 1})
		got := engine.Explain(ctx, additionQuestion(), "4", "te")
		assert.Contains(t, got, "5")
	})
}

func TestHint(t *testing.T) {
	ctx := context.Background()

	mock := llm.NewMockProvider(llm.MockResponse{Text: "Count up from 2."})
	engine := NewTutorEngine(TutorEngineConfig{Log: quietLogger(), Explainer: mock, Seed: 1})
	assert.Equal(t, "Count up from 2.", engine.Hint(ctx, additionQuestion(), "en"))
	assert.Contains(t, mock.Calls[0].Messages[0].Content, "2 + 3")

	engine = NewTutorEngine(TutorEngineConfig{Log: quietLogger(), Seed: 1})
	assert.Equal(t, fallbackHints["ta"], engine.Hint(ctx, additionQuestion(), "ta"))
}

func decodeData(t *testing.T, q *internalEntity.Question) internalEntity.QuestionData {
	t.Helper()
	data, err := mapper.DecodeQuestionData(q.QuestionData)
	require.NoError(t, err)
	return data
}

func TestGenerateQuestionFromProvider(t *testing.T) {
	mock := llm.NewMockProvider(llm.MockResponse{
		Text: "```json\n{\"num1\": 6, \"num2\": 7, \"options\": [42, 41, 42, 48], \"correct_answer\": \"42\"}\n```",
	})
	engine := NewTutorEngine(TutorEngineConfig{Log: quietLogger(), Generator: mock, Seed: 7})

	q := engine.GenerateQuestion(context.Background(), entity.TopicMultiplication, 2, "en")
	require.NotNil(t, q)
	assert.Equal(t, internalEntity.SourceAI, q.Source)
	assert.Equal(t, "multiplication", q.Topic)
	assert.Equal(t, 2, q.Difficulty)
	assert.Equal(t, "42", q.CorrectAnswer)

	data := decodeData(t, q)
	assert.Equal(t, 6, *data.Num1)
	assert.Equal(t, 7, *data.Num2)
	assert.ElementsMatch(t, []int{42, 41, 48}, data.Options)
	assert.True(t, mock.Calls[0].JSON)
}

func TestGenerateQuestionRejectsWrongAnswer(t *testing.T) {
	mock := llm.NewMockProvider(llm.MockResponse{
		Text: `{"num1": 6, "num2": 7, "options": [41, 42, 43, 44], "correct_answer": 41}`,
	})
	engine := NewTutorEngine(TutorEngineConfig{Log: quietLogger(), Generator: mock, Seed: 7})

	q := engine.GenerateQuestion(context.Background(), entity.TopicMultiplication, 2, "en")
	assert.Equal(t, internalEntity.SourceFallback, q.Source)
}

func TestGenerateQuestionSchemaFailureFallsBack(t *testing.T) {
	mock := llm.NewMockProvider(llm.MockResponse{Text: `{"num1": "six"}`})
	engine := NewTutorEngine(TutorEngineConfig{Log: quietLogger(), Generator: mock, Seed: 7})

	q := engine.GenerateQuestion(context.Background(), entity.TopicAddition, 9, "en")
	assert.Equal(t, internalEntity.SourceFallback, q.Source)
	assert.Equal(t, 3, q.Difficulty)
}

func TestGenerateWordProblemFromProvider(t *testing.T) {
	mock := llm.NewMockProvider(llm.MockResponse{
		Text: `Here you go: {"text": "Meena has 4 pencils and gets 5 more. How many now?", "correct_answer": 9}`,
	})
	engine := NewTutorEngine(TutorEngineConfig{Log: quietLogger(), Generator: mock, Seed: 7})

	q := engine.GenerateQuestion(context.Background(), entity.TopicWordProblem, 1, "en")
	assert.Equal(t, internalEntity.SourceAI, q.Source)
	assert.Equal(t, internalEntity.QuestionTypeInput, q.QuestionType)
	assert.Equal(t, "9", q.CorrectAnswer)
	assert.Contains(t, decodeData(t, q).Text, "Meena")
}

func TestFallbackQuestion(t *testing.T) {
	engine := NewTutorEngine(TutorEngineConfig{Log: quietLogger(), Seed: 42}).(*tutorEngine)

	for _, topic := range []entity.Topic{entity.TopicAddition, entity.TopicSubtraction, entity.TopicMultiplication, entity.TopicDivision} {
		for difficulty := 1; difficulty <= 3; difficulty++ {
			t.Run(string(topic)+"/"+strconv.Itoa(difficulty), func(t *testing.T) {
				for i := 0; i < 20; i++ {
					q := engine.FallbackQuestion(topic, difficulty, "en")
					data := decodeData(t, q)

					require.NotNil(t, data.Num1)
					require.NotNil(t, data.Num2)
					assert.GreaterOrEqual(t, *data.Num1, 1)
					assert.LessOrEqual(t, *data.Num1, operandMax[difficulty])
					assert.LessOrEqual(t, *data.Num2, operandMax[difficulty])

					want, ok := solve(topic, *data.Num1, *data.Num2)
					require.True(t, ok)
					assert.Equal(t, strconv.Itoa(want), q.CorrectAnswer)
					assert.ElementsMatch(t, []int{want, want + 1, want - 1, want + 2}, data.Options)
					assert.Equal(t, internalEntity.SourceFallback, q.Source)

					if topic == entity.TopicSubtraction {
						assert.GreaterOrEqual(t, *data.Num1, *data.Num2)
					}
				}
			})
		}
	}
}

func TestFallbackWordProblem(t *testing.T) {
	engine := NewTutorEngine(TutorEngineConfig{Log: quietLogger(), Seed: 3}).(*tutorEngine)

	q := engine.FallbackQuestion(entity.TopicWordProblem, 1, "hi")
	assert.Equal(t, internalEntity.QuestionTypeInput, q.QuestionType)
	assert.Equal(t, "word_problem", q.Topic)
	assert.Contains(t, decodeData(t, q).Text, "रवि")

	answer, err := strconv.Atoi(q.CorrectAnswer)
	require.NoError(t, err)
	assert.GreaterOrEqual(t, answer, 2)
	assert.LessOrEqual(t, answer, 20)
}

func TestSolve(t *testing.T) {
	got, _ := solve(entity.TopicSubtraction, 3, 8)
	assert.Equal(t, 5, got)
	got, _ = solve(entity.TopicDivision, 7, 2)
	assert.Equal(t, 3, got)
	got, _ = solve(entity.TopicDivision, 7, 0)
	assert.Equal(t, 7, got)
	_, ok := solve(entity.TopicWordProblem, 1, 1)
	assert.False(t, ok)
}

func TestDeduplicateOptions(t *testing.T) {
	assert.Equal(t, []int{5, 4, 6}, DeduplicateOptions([]int{4, 5, 4, 6}, 5))
	assert.Equal(t, []int{9}, DeduplicateOptions(nil, 9))
}
