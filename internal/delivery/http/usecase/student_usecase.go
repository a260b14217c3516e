package usecase

import (
	"context"
	"strings"

	"github.com/evandrarf/numeracy-tutor-be/internal/delivery/http/entity"
	"github.com/evandrarf/numeracy-tutor-be/internal/delivery/http/repository"
	internalEntity "github.com/evandrarf/numeracy-tutor-be/internal/entity"
	"github.com/evandrarf/numeracy-tutor-be/internal/pkg/cache"
	"github.com/evandrarf/numeracy-tutor-be/internal/pkg/mapper"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

const (
	// analysisHistory is how many progress rows feed the teaching agent.
	analysisHistory = 20
	// candidatePool is how many bank questions the agent chooses from.
	candidatePool = 100
)

type StudentUsecase interface {
	List(ctx context.Context) ([]internalEntity.Student, error)
	Get(ctx context.Context, id uint) (*internalEntity.Student, error)
	Create(ctx context.Context, req entity.CreateStudentRequest) (*internalEntity.Student, error)
	Progress(ctx context.Context, id uint) (*entity.StudentProgress, error)
	Achievements(ctx context.Context, id uint) ([]internalEntity.Achievement, error)
	Performance(ctx context.Context, id uint) (*entity.PerformanceAnalysis, error)
	Analysis(ctx context.Context, id uint) (*entity.StudentAnalysis, error)
	LearningPath(ctx context.Context, id uint) ([]entity.LearningStep, error)
	Coaching(ctx context.Context, id uint, questionID uint, language string) (*entity.CoachingResponse, error)
	RecommendedQuestions(ctx context.Context, id uint) ([]entity.Question, error)
}

type StudentConfig struct {
	DB        *gorm.DB
	Students  repository.StudentRepository
	Progress  repository.ProgressRepository
	Questions repository.QuestionRepository
	Agent     TeachingAgent
	// Cache holds class insights, dropped when the class changes. Optional.
	Cache cache.Cache
	Rules Rules
	Log   *logrus.Logger
}

type studentUsecase struct {
	cfg StudentConfig
}

func NewStudentUsecase(cfg StudentConfig) StudentUsecase {
	if cfg.Rules.Window == 0 {
		cfg.Rules = DefaultRules()
	}
	if cfg.Log == nil {
		cfg.Log = logrus.New()
	}
	return &studentUsecase{cfg: cfg}
}

func (u *studentUsecase) List(ctx context.Context) ([]internalEntity.Student, error) {
	students, err := u.cfg.Students.FindAll(u.cfg.DB.WithContext(ctx))
	if err != nil {
		return nil, err
	}
	if students == nil {
		students = []internalEntity.Student{}
	}
	return students, nil
}

func (u *studentUsecase) Get(ctx context.Context, id uint) (*internalEntity.Student, error) {
	student, err := u.cfg.Students.FindByID(u.cfg.DB.WithContext(ctx), id)
	if err != nil {
		return nil, notFound(err, ErrStudentNotFound)
	}
	return student, nil
}

func (u *studentUsecase) Create(ctx context.Context, req entity.CreateStudentRequest) (*internalEntity.Student, error) {
	student := &internalEntity.Student{
		Name:         strings.TrimSpace(req.Name),
		Grade:        req.Grade,
		Language:     NormalizeLanguage(req.Language),
		CurrentLevel: entity.MinDifficulty,
	}
	if err := u.cfg.Students.Create(u.cfg.DB.WithContext(ctx), student); err != nil {
		return nil, err
	}

	invalidateInsights(ctx, u.cfg.Cache, u.cfg.Log)

	u.cfg.Log.WithFields(logrus.Fields{"student_id": student.ID, "grade": student.Grade}).Info("student created")
	return student, nil
}

func (u *studentUsecase) Progress(ctx context.Context, id uint) (*entity.StudentProgress, error) {
	db := u.cfg.DB.WithContext(ctx)
	if _, err := u.Get(ctx, id); err != nil {
		return nil, err
	}

	rows, err := u.cfg.Progress.FindByStudentID(db, id, 0)
	if err != nil {
		return nil, err
	}
	stats, err := u.cfg.Progress.FindStatsByStudentID(db, id)
	if err != nil {
		return nil, err
	}

	return &entity.StudentProgress{
		Progress: nonNil(rows),
		Stats:    nonNil(stats),
	}, nil
}

func (u *studentUsecase) Achievements(ctx context.Context, id uint) ([]internalEntity.Achievement, error) {
	if _, err := u.Get(ctx, id); err != nil {
		return nil, err
	}
	achievements, err := u.cfg.Progress.FindAchievementsByStudentID(u.cfg.DB.WithContext(ctx), id)
	if err != nil {
		return nil, err
	}
	return nonNil(achievements), nil
}

func (u *studentUsecase) Performance(ctx context.Context, id uint) (*entity.PerformanceAnalysis, error) {
	student, err := u.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	recent, err := u.cfg.Progress.FindByStudentID(u.cfg.DB.WithContext(ctx), id, u.cfg.Rules.Window)
	if err != nil {
		return nil, err
	}

	analysis := u.cfg.Rules.AnalyzePerformance(student.CurrentLevel, scoresOf(recent))
	return &analysis, nil
}

func (u *studentUsecase) analyze(ctx context.Context, id uint) (*internalEntity.Student, entity.StudentAnalysis, error) {
	student, err := u.Get(ctx, id)
	if err != nil {
		return nil, entity.StudentAnalysis{}, err
	}
	history, err := u.cfg.Progress.FindByStudentID(u.cfg.DB.WithContext(ctx), id, analysisHistory)
	if err != nil {
		return nil, entity.StudentAnalysis{}, err
	}
	return student, u.cfg.Agent.AnalyzeStudent(ctx, student, history), nil
}

func (u *studentUsecase) Analysis(ctx context.Context, id uint) (*entity.StudentAnalysis, error) {
	_, analysis, err := u.analyze(ctx, id)
	if err != nil {
		return nil, err
	}
	return &analysis, nil
}

func (u *studentUsecase) LearningPath(ctx context.Context, id uint) ([]entity.LearningStep, error) {
	student, analysis, err := u.analyze(ctx, id)
	if err != nil {
		return nil, err
	}
	return u.cfg.Agent.LearningPath(ctx, student, analysis), nil
}

// Coaching encourages the student before a question. questionID 0 means no
// particular question; language falls back to the student's own.
func (u *studentUsecase) Coaching(ctx context.Context, id uint, questionID uint, language string) (*entity.CoachingResponse, error) {
	db := u.cfg.DB.WithContext(ctx)
	student, err := u.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	var current *internalEntity.Question
	if questionID != 0 {
		current, err = u.cfg.Questions.FindByID(db, questionID)
		if err != nil {
			return nil, notFound(err, ErrQuestionNotFound)
		}
	}

	previous, err := u.cfg.Questions.FindAnswersByStudentID(db, id, 5)
	if err != nil {
		return nil, err
	}

	if strings.TrimSpace(language) == "" {
		language = student.Language
	}
	return &entity.CoachingResponse{
		Message: u.cfg.Agent.Coaching(ctx, student, current, previous, language),
	}, nil
}

func (u *studentUsecase) RecommendedQuestions(ctx context.Context, id uint) ([]entity.Question, error) {
	student, analysis, err := u.analyze(ctx, id)
	if err != nil {
		return nil, err
	}

	available, err := u.cfg.Questions.FindRandom(u.cfg.DB.WithContext(ctx), candidatePool)
	if err != nil {
		return nil, err
	}

	picked := u.cfg.Agent.SelectNextQuestions(ctx, student, analysis, available)
	return mapper.ConvertToQuestions(picked)
}

func nonNil[T any](rows []T) []T {
	if rows == nil {
		return []T{}
	}
	return rows
}
