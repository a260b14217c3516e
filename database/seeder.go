package database

import (
	"encoding/json"
	"fmt"

	"github.com/evandrarf/numeracy-tutor-be/internal/entity"
	"gorm.io/gorm"
)

type seedQuestion struct {
	Topic      string
	Difficulty int
	Type       string
	Data       entity.QuestionData
	Answer     string
}

func pair(a, b int, options ...int) entity.QuestionData {
	return entity.QuestionData{Num1: &a, Num2: &b, Options: options}
}

// QuestionBankData - Static data untuk seed
var QuestionBankData = []seedQuestion{
	// Level 1 - Basic Addition
	{"addition", 1, entity.QuestionTypeSelect, pair(2, 3, 5, 4, 6, 3), "5"},
	{"addition", 1, entity.QuestionTypeSelect, pair(1, 4, 5, 6, 4, 3), "5"},
	{"addition", 1, entity.QuestionTypeSelect, pair(3, 2, 5, 4, 6, 7), "5"},

	// Level 2 - Harder Addition
	{"addition", 2, entity.QuestionTypeSelect, pair(12, 8, 20, 19, 21, 18), "20"},
	{"addition", 2, entity.QuestionTypeSelect, pair(15, 7, 22, 23, 21, 20), "22"},

	// Level 1 - Basic Subtraction
	{"subtraction", 1, entity.QuestionTypeSelect, pair(5, 2, 3, 2, 4, 7), "3"},
	{"subtraction", 1, entity.QuestionTypeSelect, pair(8, 3, 5, 6, 4, 11), "5"},

	// Level 2 - Harder Subtraction
	{"subtraction", 2, entity.QuestionTypeSelect, pair(20, 8, 12, 13, 11, 28), "12"},
	{"subtraction", 2, entity.QuestionTypeSelect, pair(25, 9, 16, 15, 17, 34), "16"},

	// Level 1 - Basic Multiplication
	{"multiplication", 1, entity.QuestionTypeSelect, pair(2, 3, 6, 5, 7, 8), "6"},
	{"multiplication", 1, entity.QuestionTypeSelect, pair(3, 3, 9, 6, 12, 8), "9"},

	// Level 2 - Harder Multiplication
	{"multiplication", 2, entity.QuestionTypeSelect, pair(4, 5, 20, 19, 21, 9), "20"},
	{"multiplication", 2, entity.QuestionTypeSelect, pair(6, 7, 42, 41, 43, 13), "42"},

	// Level 1 - Basic Division
	{"division", 1, entity.QuestionTypeSelect, pair(6, 2, 3, 2, 4, 8), "3"},
	{"division", 1, entity.QuestionTypeSelect, pair(10, 5, 2, 3, 5, 15), "2"},

	// Level 3 - Word problems
	{"word_problem", 3, entity.QuestionTypeInput, entity.QuestionData{Text: "Ram has 5 apples. His friend gives him 3 more. How many apples does Ram have now?"}, "8"},
	{"word_problem", 3, entity.QuestionTypeInput, entity.QuestionData{Text: "A box contains 12 chocolates. If you eat 4 chocolates, how many are left?"}, "8"},
}

const (
	DemoStudentName  = "Demo Student"
	DemoTeacherName  = "Demo Teacher"
	DemoTeacherEmail = "teacher@school.gov.in"
)

// SeedQuestionBank inserts the static question bank in one transaction when the
// questions table is empty. It returns the number of inserted rows.
func SeedQuestionBank(db *gorm.DB) (int, error) {
	var count int64
	if err := db.Model(&entity.Question{}).Count(&count).Error; err != nil {
		return 0, fmt.Errorf("failed to count questions: %w", err)
	}
	if count > 0 {
		return 0, nil
	}

	questions := make([]entity.Question, 0, len(QuestionBankData))
	for i, q := range QuestionBankData {
		data, err := json.Marshal(q.Data)
		if err != nil {
			return 0, fmt.Errorf("failed to marshal question data #%d: %w", i, err)
		}
		questions = append(questions, entity.Question{
			Topic:         q.Topic,
			Difficulty:    q.Difficulty,
			QuestionType:  q.Type,
			QuestionData:  string(data),
			CorrectAnswer: q.Answer,
			Source:        entity.SourceSeed,
		})
	}

	err := db.Transaction(func(tx *gorm.DB) error {
		return tx.Create(&questions).Error
	})
	if err != nil {
		return 0, fmt.Errorf("failed to seed questions: %w", err)
	}

	return len(questions), nil
}

// SeedDemoAccounts creates a demo student and a demo teacher when their tables are empty.
func SeedDemoAccounts(db *gorm.DB) error {
	var students int64
	if err := db.Model(&entity.Student{}).Count(&students).Error; err != nil {
		return fmt.Errorf("failed to count students: %w", err)
	}
	if students == 0 {
		demo := entity.Student{Name: DemoStudentName, Grade: 3, Language: "en", CurrentLevel: 1}
		if err := db.Create(&demo).Error; err != nil {
			return fmt.Errorf("failed to seed demo student: %w", err)
		}
	}

	var teachers int64
	if err := db.Model(&entity.Teacher{}).Count(&teachers).Error; err != nil {
		return fmt.Errorf("failed to count teachers: %w", err)
	}
	if teachers == 0 {
		demo := entity.Teacher{Name: DemoTeacherName, Email: DemoTeacherEmail}
		if err := db.Create(&demo).Error; err != nil {
			return fmt.Errorf("failed to seed demo teacher: %w", err)
		}
	}

	return nil
}
