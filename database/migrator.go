package database

import (
	"github.com/evandrarf/numeracy-tutor-be/internal/entity"
	"gorm.io/gorm"
)

func Migrate(db *gorm.DB) error {
	err := db.AutoMigrate(
		&entity.Student{},
		&entity.Teacher{},
		&entity.Progress{},
		&entity.Achievement{},
		&entity.Question{},
		&entity.StudentAnswer{},
	)
	return err
}
