package entity

import (
	internalEntity "github.com/evandrarf/numeracy-tutor-be/internal/entity"
)

type Topic string

const (
	TopicAddition       Topic = "addition"
	TopicSubtraction    Topic = "subtraction"
	TopicMultiplication Topic = "multiplication"
	TopicDivision       Topic = "division"
	TopicWordProblem    Topic = "word_problem"
)

var Topics = []Topic{TopicAddition, TopicSubtraction, TopicMultiplication, TopicDivision, TopicWordProblem}

func (t Topic) Valid() bool {
	for _, v := range Topics {
		if v == t {
			return true
		}
	}
	return false
}

const (
	MinDifficulty = 1
	MaxDifficulty = 3
)

// ClampDifficulty maps anything outside 1..3 to the nearest bound.
func ClampDifficulty(d int) int {
	if d < MinDifficulty {
		return MinDifficulty
	}
	if d > MaxDifficulty {
		return MaxDifficulty
	}
	return d
}

// Question as served to a student. The answer is never included.
type Question struct {
	ID           uint   `json:"id"`
	Topic        Topic  `json:"topic"`
	Difficulty   int    `json:"difficulty"`
	QuestionType string `json:"question_type"`
	Text         string `json:"text"`
	Num1         *int   `json:"num1,omitempty"`
	Num2         *int   `json:"num2,omitempty"`
	Options      []int  `json:"options,omitempty"`
	Source       string `json:"source"`
}

type CreateStudentRequest struct {
	Name     string `json:"name" validate:"required,max=100"`
	Grade    int    `json:"grade" validate:"required,min=1,max=12"`
	Language string `json:"language" validate:"omitempty,language"`
}

type SubmitAnswerRequest struct {
	StudentID  uint   `json:"studentId" validate:"required"`
	QuestionID uint   `json:"questionId" validate:"required"`
	Answer     string `json:"answer" validate:"required,max=100"`
	TimeTaken  *int   `json:"timeTaken" validate:"omitempty,min=0"`
}

type SubmitAnswerResponse struct {
	IsCorrect     bool                    `json:"isCorrect"`
	CorrectAnswer string                  `json:"correctAnswer"`
	Points        int                     `json:"points"`
	Explanation   *string                 `json:"explanation"`
	NewBadges     []Badge                 `json:"newBadges"`
	Student       *internalEntity.Student `json:"student"`
	Performance   PerformanceAnalysis     `json:"performance"`
}

type HintRequest struct {
	QuestionID uint   `json:"questionId" validate:"required"`
	Language   string `json:"language" validate:"omitempty,language"`
}

type HintResponse struct {
	Hint string `json:"hint"`
}

type GenerateQuestionRequest struct {
	Topic      string `json:"topic" validate:"required,oneof=addition subtraction multiplication division word_problem"`
	Difficulty int    `json:"difficulty" validate:"omitempty,min=1,max=3"`
	Language   string `json:"language" validate:"omitempty,language"`
}

type Badge struct {
	Type string `json:"type"`
	Name string `json:"name"`
}

type Decision string

const (
	DecisionBuilding Decision = "building"
	DecisionIncrease Decision = "increase"
	DecisionMaintain Decision = "maintain"
	DecisionDecrease Decision = "decrease"
)

// PerformanceAnalysis is the outcome of the rolling-window difficulty heuristic.
type PerformanceAnalysis struct {
	Decision              Decision `json:"decision"`
	Confidence            string   `json:"confidence"`
	Message               string   `json:"message,omitempty"`
	AverageScore          *float64 `json:"averageScore,omitempty"`
	Samples               int      `json:"samples"`
	CurrentDifficulty     int      `json:"currentDifficulty"`
	RecommendedDifficulty int      `json:"recommendedDifficulty"`
}

type LearningGap struct {
	Topic    string  `json:"topic"`
	AvgScore float64 `json:"avgScore"`
	Attempts int64   `json:"attempts"`
	Severity string  `json:"severity"` // high, medium
}

type StudentProgress struct {
	Progress []internalEntity.Progress  `json:"progress"`
	Stats    []internalEntity.TopicStat `json:"stats"`
}

type StudentAnalytics struct {
	Student        *internalEntity.Student      `json:"student"`
	Stats          []internalEntity.TopicStat   `json:"stats"`
	RecentProgress []internalEntity.Progress    `json:"recentProgress"`
	Achievements   []internalEntity.Achievement `json:"achievements"`
	LearningGaps   []LearningGap                `json:"learningGaps"`
	Performance    PerformanceAnalysis          `json:"performance"`
}
