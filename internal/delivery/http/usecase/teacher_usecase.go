package usecase

import (
	"context"
	"strings"
	"time"

	"github.com/evandrarf/numeracy-tutor-be/internal/delivery/http/entity"
	"github.com/evandrarf/numeracy-tutor-be/internal/delivery/http/repository"
	internalEntity "github.com/evandrarf/numeracy-tutor-be/internal/entity"
	"github.com/evandrarf/numeracy-tutor-be/internal/pkg/cache"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

const (
	insightsCacheKey = "teacher:insights"
	// recentProgressLimit is how many progress rows the analytics view shows.
	recentProgressLimit = 10
)

type TeacherUsecase interface {
	ListTeachers(ctx context.Context) ([]internalEntity.Teacher, error)
	StudentsOverview(ctx context.Context) ([]internalEntity.StudentOverview, error)
	StudentAnalytics(ctx context.Context, id uint) (*entity.StudentAnalytics, error)
	ClassInsights(ctx context.Context) (*entity.ClassInsights, error)
	Alert(ctx context.Context, id uint, req entity.TeacherAlertRequest) (*entity.TeacherAlertResponse, error)
}

type TeacherConfig struct {
	DB       *gorm.DB
	Teachers repository.TeacherRepository
	Students repository.StudentRepository
	Progress repository.ProgressRepository
	Agent    TeachingAgent
	Cache    cache.Cache
	// InsightsTTL is how long class insights are served from the cache.
	InsightsTTL time.Duration
	Rules       Rules
	Log         *logrus.Logger
}

type teacherUsecase struct {
	cfg TeacherConfig
}

func NewTeacherUsecase(cfg TeacherConfig) TeacherUsecase {
	if cfg.Rules.Window == 0 {
		cfg.Rules = DefaultRules()
	}
	if cfg.Log == nil {
		cfg.Log = logrus.New()
	}
	if cfg.Cache == nil {
		cfg.Cache = cache.NewMemory()
	}
	return &teacherUsecase{cfg: cfg}
}

func (u *teacherUsecase) ListTeachers(ctx context.Context) ([]internalEntity.Teacher, error) {
	teachers, err := u.cfg.Teachers.FindAll(u.cfg.DB.WithContext(ctx))
	if err != nil {
		return nil, err
	}
	return nonNil(teachers), nil
}

func (u *teacherUsecase) StudentsOverview(ctx context.Context) ([]internalEntity.StudentOverview, error) {
	rows, err := u.cfg.Students.FindOverview(u.cfg.DB.WithContext(ctx))
	if err != nil {
		return nil, err
	}
	return nonNil(rows), nil
}

func (u *teacherUsecase) StudentAnalytics(ctx context.Context, id uint) (*entity.StudentAnalytics, error) {
	db := u.cfg.DB.WithContext(ctx)

	student, err := u.cfg.Students.FindByID(db, id)
	if err != nil {
		return nil, notFound(err, ErrStudentNotFound)
	}
	stats, err := u.cfg.Progress.FindStatsByStudentID(db, id)
	if err != nil {
		return nil, err
	}
	recent, err := u.cfg.Progress.FindByStudentID(db, id, recentProgressLimit)
	if err != nil {
		return nil, err
	}
	achievements, err := u.cfg.Progress.FindAchievementsByStudentID(db, id)
	if err != nil {
		return nil, err
	}

	return &entity.StudentAnalytics{
		Student:        student,
		Stats:          nonNil(stats),
		RecentProgress: nonNil(recent),
		Achievements:   nonNil(achievements),
		LearningGaps:   u.cfg.Rules.DetectLearningGaps(stats),
		Performance:    u.cfg.Rules.AnalyzePerformance(student.CurrentLevel, scoresOf(recent)),
	}, nil
}

// ClassInsights returns the agent's view of the whole class. Results are
// cached for InsightsTTL; cache failures only cost a recomputation.
func (u *teacherUsecase) ClassInsights(ctx context.Context) (*entity.ClassInsights, error) {
	var cached entity.ClassInsights
	hit, err := u.cfg.Cache.Get(ctx, insightsCacheKey, &cached)
	if err != nil {
		u.cfg.Log.WithError(err).Warn("insights cache read failed")
	}
	if hit {
		return &cached, nil
	}

	students, err := u.StudentsOverview(ctx)
	if err != nil {
		return nil, err
	}
	insights := u.cfg.Agent.ClassInsights(ctx, students)

	if err := u.cfg.Cache.Set(ctx, insightsCacheKey, insights, u.cfg.InsightsTTL); err != nil {
		u.cfg.Log.WithError(err).Warn("insights cache write failed")
	}
	return &insights, nil
}

// invalidateInsights drops the cached class insights after class data changes.
// A nil cache is a no-op.
func invalidateInsights(ctx context.Context, c cache.Cache, log *logrus.Logger) {
	if c == nil {
		return
	}
	if err := c.Delete(ctx, insightsCacheKey); err != nil {
		log.WithError(err).Warn("insights cache invalidation failed")
	}
}

func (u *teacherUsecase) Alert(ctx context.Context, id uint, req entity.TeacherAlertRequest) (*entity.TeacherAlertResponse, error) {
	student, err := u.cfg.Students.FindByID(u.cfg.DB.WithContext(ctx), id)
	if err != nil {
		return nil, notFound(err, ErrStudentNotFound)
	}

	return &entity.TeacherAlertResponse{
		StudentID: student.ID,
		Alert:     u.cfg.Agent.TeacherAlert(ctx, student, strings.TrimSpace(req.Issue)),
	}, nil
}
