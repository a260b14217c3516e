package repository

import (
	"github.com/evandrarf/numeracy-tutor-be/internal/entity"
	"gorm.io/gorm"
)

type (
	StudentRepository interface {
		FindAll(db *gorm.DB) ([]entity.Student, error)
		FindByID(db *gorm.DB, id uint) (*entity.Student, error)
		Create(db *gorm.DB, student *entity.Student) error
		AddPoints(db *gorm.DB, id uint, points int, level int) error
		MarkActive(db *gorm.DB, id uint, day string, continued bool) error
		FindOverview(db *gorm.DB) ([]entity.StudentOverview, error)
	}

	studentRepository struct {
		db *gorm.DB
	}
)

func NewStudentRepository(db *gorm.DB) StudentRepository {
	return &studentRepository{db: db}
}

func (r *studentRepository) FindAll(db *gorm.DB) ([]entity.Student, error) {
	if db == nil {
		db = r.db
	}
	var students []entity.Student
	err := db.Order("id ASC").Find(&students).Error
	return students, err
}

func (r *studentRepository) FindByID(db *gorm.DB, id uint) (*entity.Student, error) {
	if db == nil {
		db = r.db
	}
	var student entity.Student
	err := db.Where("id = ?", id).First(&student).Error
	if err != nil {
		return nil, err
	}
	return &student, nil
}

func (r *studentRepository) Create(db *gorm.DB, student *entity.Student) error {
	if db == nil {
		db = r.db
	}
	return db.Create(student).Error
}

// AddPoints adds points to the running total and sets the current level.
func (r *studentRepository) AddPoints(db *gorm.DB, id uint, points int, level int) error {
	if db == nil {
		db = r.db
	}
	return db.Model(&entity.Student{}).
		Where("id = ?", id).
		UpdateColumns(map[string]any{
			"total_points":  gorm.Expr("total_points + ?", points),
			"current_level": level,
		}).Error
}

// MarkActive records day as the last active day. The streak grows by one when
// continued and restarts at 1 otherwise. A student already active on day is
// left untouched, so only the first answer of a day counts.
func (r *studentRepository) MarkActive(db *gorm.DB, id uint, day string, continued bool) error {
	if db == nil {
		db = r.db
	}

	var streak any = 1
	if continued {
		streak = gorm.Expr("streak_days + ?", 1)
	}

	return db.Model(&entity.Student{}).
		Where("id = ? AND (last_active_date IS NULL OR last_active_date <> ?)", id, day).
		UpdateColumns(map[string]any{
			"streak_days":      streak,
			"last_active_date": day,
		}).Error
}

func (r *studentRepository) FindOverview(db *gorm.DB) ([]entity.StudentOverview, error) {
	if db == nil {
		db = r.db
	}
	var rows []entity.StudentOverview
	err := db.Table("students AS s").
		Select(`s.id, s.name, s.grade, s.language, s.current_level, s.total_points, s.streak_days,
			COUNT(DISTINCT p.topic) AS topics_attempted,
			AVG(p.score) AS avg_score`).
		Joins("LEFT JOIN progress AS p ON p.student_id = s.id").
		Group("s.id").
		Order("s.id ASC").
		Scan(&rows).Error
	return rows, err
}
