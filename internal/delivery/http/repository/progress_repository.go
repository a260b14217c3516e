package repository

import (
	"github.com/evandrarf/numeracy-tutor-be/internal/entity"
	"gorm.io/gorm"
)

type (
	ProgressRepository interface {
		// Progress rows
		Create(db *gorm.DB, progress *entity.Progress) error
		FindByStudentID(db *gorm.DB, studentID uint, limit int) ([]entity.Progress, error)
		FindStatsByStudentID(db *gorm.DB, studentID uint) ([]entity.TopicStat, error)

		// Achievements
		CreateAchievement(db *gorm.DB, achievement *entity.Achievement) error
		FindAchievementsByStudentID(db *gorm.DB, studentID uint) ([]entity.Achievement, error)
	}

	progressRepository struct {
		db *gorm.DB
	}
)

func NewProgressRepository(db *gorm.DB) ProgressRepository {
	return &progressRepository{db: db}
}

func (r *progressRepository) Create(db *gorm.DB, progress *entity.Progress) error {
	if db == nil {
		db = r.db
	}
	return db.Create(progress).Error
}

// FindByStudentID returns progress newest-first. limit <= 0 returns everything.
func (r *progressRepository) FindByStudentID(db *gorm.DB, studentID uint, limit int) ([]entity.Progress, error) {
	if db == nil {
		db = r.db
	}
	var rows []entity.Progress
	query := db.Where("student_id = ?", studentID).Order("completed_at DESC").Order("id DESC")
	if limit > 0 {
		query = query.Limit(limit)
	}
	err := query.Find(&rows).Error
	return rows, err
}

func (r *progressRepository) FindStatsByStudentID(db *gorm.DB, studentID uint) ([]entity.TopicStat, error) {
	if db == nil {
		db = r.db
	}
	var stats []entity.TopicStat
	err := db.Model(&entity.Progress{}).
		Select("topic, AVG(score) AS avg_score, COUNT(*) AS attempts, MAX(difficulty) AS max_difficulty").
		Where("student_id = ?", studentID).
		Group("topic").
		Order("topic ASC").
		Scan(&stats).Error
	return stats, err
}

func (r *progressRepository) CreateAchievement(db *gorm.DB, achievement *entity.Achievement) error {
	if db == nil {
		db = r.db
	}
	return db.Create(achievement).Error
}

func (r *progressRepository) FindAchievementsByStudentID(db *gorm.DB, studentID uint) ([]entity.Achievement, error) {
	if db == nil {
		db = r.db
	}
	var achievements []entity.Achievement
	err := db.Where("student_id = ?", studentID).Order("earned_at DESC").Order("id DESC").Find(&achievements).Error
	return achievements, err
}
