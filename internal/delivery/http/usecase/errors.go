package usecase

import (
	"errors"

	"gorm.io/gorm"
)

var (
	ErrStudentNotFound  = errors.New("student not found")
	ErrQuestionNotFound = errors.New("question not found")
	ErrInvalidTopic     = errors.New("invalid topic")
)

// notFound translates gorm's missing-row error into the domain sentinel.
func notFound(err error, sentinel error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return sentinel
	}
	return err
}
