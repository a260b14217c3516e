package repository

import (
	"github.com/evandrarf/numeracy-tutor-be/internal/entity"
	"gorm.io/gorm"
)

type (
	QuestionRepository interface {
		// Question bank
		Create(db *gorm.DB, question *entity.Question) error
		FindByID(db *gorm.DB, id uint) (*entity.Question, error)
		FindRandomByDifficulty(db *gorm.DB, difficulty int, limit int) ([]entity.Question, error)
		FindRandomByTopic(db *gorm.DB, topic string, difficulty int, limit int) ([]entity.Question, error)
		FindRandom(db *gorm.DB, limit int) ([]entity.Question, error)

		// Student answers
		CreateAnswer(db *gorm.DB, answer *entity.StudentAnswer) error
		FindAnswersByStudentID(db *gorm.DB, studentID uint, limit int) ([]entity.AnswerLog, error)
	}

	questionRepository struct {
		db *gorm.DB
	}
)

func NewQuestionRepository(db *gorm.DB) QuestionRepository {
	return &questionRepository{db: db}
}

func (r *questionRepository) Create(db *gorm.DB, question *entity.Question) error {
	if db == nil {
		db = r.db
	}
	return db.Create(question).Error
}

func (r *questionRepository) FindByID(db *gorm.DB, id uint) (*entity.Question, error) {
	if db == nil {
		db = r.db
	}
	var question entity.Question
	err := db.Where("id = ?", id).First(&question).Error
	if err != nil {
		return nil, err
	}
	return &question, nil
}

func (r *questionRepository) FindRandomByDifficulty(db *gorm.DB, difficulty int, limit int) ([]entity.Question, error) {
	if db == nil {
		db = r.db
	}
	var questions []entity.Question
	err := db.Where("difficulty = ?", difficulty).Order("RANDOM()").Limit(limit).Find(&questions).Error
	return questions, err
}

func (r *questionRepository) FindRandomByTopic(db *gorm.DB, topic string, difficulty int, limit int) ([]entity.Question, error) {
	if db == nil {
		db = r.db
	}
	var questions []entity.Question
	err := db.Where("topic = ? AND difficulty = ?", topic, difficulty).Order("RANDOM()").Limit(limit).Find(&questions).Error
	return questions, err
}

func (r *questionRepository) FindRandom(db *gorm.DB, limit int) ([]entity.Question, error) {
	if db == nil {
		db = r.db
	}
	var questions []entity.Question
	err := db.Order("RANDOM()").Limit(limit).Find(&questions).Error
	return questions, err
}

func (r *questionRepository) CreateAnswer(db *gorm.DB, answer *entity.StudentAnswer) error {
	if db == nil {
		db = r.db
	}
	return db.Create(answer).Error
}

// FindAnswersByStudentID returns answers newest-first joined with the question topic and difficulty.
func (r *questionRepository) FindAnswersByStudentID(db *gorm.DB, studentID uint, limit int) ([]entity.AnswerLog, error) {
	if db == nil {
		db = r.db
	}
	var logs []entity.AnswerLog
	query := db.Table("student_answers AS sa").
		Select("sa.id, sa.student_id, sa.question_id, sa.answer, sa.is_correct, sa.time_taken, sa.answered_at, q.topic, q.difficulty").
		Joins("JOIN questions AS q ON sa.question_id = q.id").
		Where("sa.student_id = ?", studentID).
		Order("sa.answered_at DESC").
		Order("sa.id DESC")
	if limit > 0 {
		query = query.Limit(limit)
	}
	err := query.Scan(&logs).Error
	return logs, err
}
