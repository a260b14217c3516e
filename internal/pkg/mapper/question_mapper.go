package mapper

import (
	"encoding/json"
	"fmt"

	"github.com/evandrarf/numeracy-tutor-be/internal/delivery/http/entity"
	dbEntity "github.com/evandrarf/numeracy-tutor-be/internal/entity"
)

var operators = map[entity.Topic]string{
	entity.TopicAddition:       "+",
	entity.TopicSubtraction:    "-",
	entity.TopicMultiplication: "×",
	entity.TopicDivision:       "÷",
}

// DecodeQuestionData - Parse kolom question_data
func DecodeQuestionData(raw string) (dbEntity.QuestionData, error) {
	var data dbEntity.QuestionData
	if err := json.Unmarshal([]byte(raw), &data); err != nil {
		return dbEntity.QuestionData{}, fmt.Errorf("decode question data: %w", err)
	}
	return data, nil
}

func EncodeQuestionData(data dbEntity.QuestionData) (string, error) {
	raw, err := json.Marshal(data)
	if err != nil {
		return "", err
	}
	return string(raw), nil
}

// QuestionText renders a question as the student reads it, e.g. "7 × 8".
// Word problems carry their own text.
func QuestionText(topic entity.Topic, data dbEntity.QuestionData) string {
	if data.Text != "" {
		return data.Text
	}
	if data.Num1 == nil || data.Num2 == nil {
		return ""
	}
	op, ok := operators[topic]
	if !ok {
		op = "+"
	}
	return fmt.Sprintf("%d %s %d", *data.Num1, op, *data.Num2)
}

// ConvertToQuestion - Convert DB entity to the DTO served to students (tanpa jawaban)
func ConvertToQuestion(dbQuestion *dbEntity.Question) (entity.Question, error) {
	data, err := DecodeQuestionData(dbQuestion.QuestionData)
	if err != nil {
		return entity.Question{}, err
	}

	topic := entity.Topic(dbQuestion.Topic)
	return entity.Question{
		ID:           dbQuestion.ID,
		Topic:        topic,
		Difficulty:   dbQuestion.Difficulty,
		QuestionType: dbQuestion.QuestionType,
		Text:         QuestionText(topic, data),
		Num1:         data.Num1,
		Num2:         data.Num2,
		Options:      data.Options,
		Source:       dbQuestion.Source,
	}, nil
}

func ConvertToQuestions(dbQuestions []dbEntity.Question) ([]entity.Question, error) {
	questions := make([]entity.Question, 0, len(dbQuestions))
	for i := range dbQuestions {
		q, err := ConvertToQuestion(&dbQuestions[i])
		if err != nil {
			return nil, fmt.Errorf("question %d: %w", dbQuestions[i].ID, err)
		}
		questions = append(questions, q)
	}
	return questions, nil
}
