package repository

import (
	"github.com/evandrarf/numeracy-tutor-be/internal/entity"
	"gorm.io/gorm"
)

type (
	TeacherRepository interface {
		FindAll(db *gorm.DB) ([]entity.Teacher, error)
	}

	teacherRepository struct {
		db *gorm.DB
	}
)

func NewTeacherRepository(db *gorm.DB) TeacherRepository {
	return &teacherRepository{db: db}
}

func (r *teacherRepository) FindAll(db *gorm.DB) ([]entity.Teacher, error) {
	if db == nil {
		db = r.db
	}
	var teachers []entity.Teacher
	err := db.Order("id ASC").Find(&teachers).Error
	return teachers, err
}
