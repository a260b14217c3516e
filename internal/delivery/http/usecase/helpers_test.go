package usecase

import (
	"testing"
	"time"

	"github.com/evandrarf/numeracy-tutor-be/database"
	"github.com/evandrarf/numeracy-tutor-be/internal/delivery/http/repository"
	internalEntity "github.com/evandrarf/numeracy-tutor-be/internal/entity"
	"github.com/evandrarf/numeracy-tutor-be/internal/pkg/llm"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type fixture struct {
	db        *gorm.DB
	students  repository.StudentRepository
	progress  repository.ProgressRepository
	questions repository.QuestionRepository
	teachers  repository.TeacherRepository
	log       *logrus.Logger
	now       time.Time
}

// quietLogger keeps fallback warnings out of test output.
func quietLogger() *logrus.Logger {
	log := logrus.New()
	log.SetLevel(logrus.PanicLevel)
	return log
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	db, err := database.Open(database.DriverSQLite, ":memory:", false)
	require.NoError(t, err)
	require.NoError(t, database.Migrate(db))
	_, err = database.SeedQuestionBank(db)
	require.NoError(t, err)

	log := quietLogger()

	return &fixture{
		db:        db,
		students:  repository.NewStudentRepository(db),
		progress:  repository.NewProgressRepository(db),
		questions: repository.NewQuestionRepository(db),
		teachers:  repository.NewTeacherRepository(db),
		log:       log,
		now:       time.Date(2026, 10, 18, 9, 0, 0, 0, time.UTC),
	}
}

func (f *fixture) student(t *testing.T, name string) *internalEntity.Student {
	t.Helper()
	s := &internalEntity.Student{Name: name, Grade: 3, Language: "en", CurrentLevel: 1}
	require.NoError(t, f.students.Create(nil, s))
	return s
}

func (f *fixture) questionUsecase(explainer, generator llm.Provider) QuestionUsecase {
	return NewQuestionUsecase(QuestionConfig{
		DB:        f.db,
		Students:  f.students,
		Progress:  f.progress,
		Questions: f.questions,
		Engine:    NewTutorEngine(TutorEngineConfig{Explainer: explainer, Generator: generator, Log: f.log, Seed: 11}),
		Log:       f.log,
		Now:       func() time.Time { return f.now },
	})
}

func (f *fixture) agent(provider llm.Provider) TeachingAgent {
	return NewTeachingAgent(TeachingAgentConfig{Provider: provider, Log: f.log, Seed: 13})
}

func (f *fixture) studentUsecase(provider llm.Provider) StudentUsecase {
	return NewStudentUsecase(StudentConfig{
		DB:        f.db,
		Students:  f.students,
		Progress:  f.progress,
		Questions: f.questions,
		Agent:     f.agent(provider),
		Log:       f.log,
	})
}
