package usecase

import (
	"context"
	"strings"
	"time"

	"github.com/evandrarf/numeracy-tutor-be/internal/delivery/http/entity"
	"github.com/evandrarf/numeracy-tutor-be/internal/delivery/http/repository"
	internalEntity "github.com/evandrarf/numeracy-tutor-be/internal/entity"
	"github.com/evandrarf/numeracy-tutor-be/internal/pkg/cache"
	"github.com/evandrarf/numeracy-tutor-be/internal/pkg/mapper"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

const (
	DefaultQuestionCount = 5
	MaxQuestionCount     = 20
	// TopicQuestionLimit caps topic-filtered retrieval.
	TopicQuestionLimit = 5
)

type QuestionUsecase interface {
	List(ctx context.Context, topic string, difficulty int, count int) ([]entity.Question, error)
	Generate(ctx context.Context, req entity.GenerateQuestionRequest) (*entity.Question, error)
	SubmitAnswer(ctx context.Context, req entity.SubmitAnswerRequest) (*entity.SubmitAnswerResponse, error)
	Hint(ctx context.Context, req entity.HintRequest) (*entity.HintResponse, error)
}

type QuestionConfig struct {
	DB        *gorm.DB
	Students  repository.StudentRepository
	Progress  repository.ProgressRepository
	Questions repository.QuestionRepository
	Engine    TutorEngine
	// Cache holds class insights, dropped after every answer. Optional.
	Cache cache.Cache
	Rules Rules
	Log   *logrus.Logger
	// Now is the clock used for daily streaks.
	Now func() time.Time
}

type questionUsecase struct {
	cfg QuestionConfig
}

func NewQuestionUsecase(cfg QuestionConfig) QuestionUsecase {
	if cfg.Rules.Window == 0 {
		cfg.Rules = DefaultRules()
	}
	if cfg.Log == nil {
		cfg.Log = logrus.New()
	}
	if cfg.Now == nil {
		cfg.Now = time.Now
	}
	return &questionUsecase{cfg: cfg}
}

// List serves practice questions. With a topic it returns up to
// TopicQuestionLimit questions of that topic; otherwise count questions of the
// difficulty. Out-of-range difficulty means 1.
func (u *questionUsecase) List(ctx context.Context, topic string, difficulty int, count int) ([]entity.Question, error) {
	db := u.cfg.DB.WithContext(ctx)
	if difficulty < entity.MinDifficulty || difficulty > entity.MaxDifficulty {
		difficulty = entity.MinDifficulty
	}

	var (
		questions []internalEntity.Question
		err       error
	)
	if topic = strings.TrimSpace(topic); topic != "" {
		if !entity.Topic(topic).Valid() {
			return nil, ErrInvalidTopic
		}
		questions, err = u.cfg.Questions.FindRandomByTopic(db, topic, difficulty, TopicQuestionLimit)
	} else {
		if count <= 0 {
			count = DefaultQuestionCount
		}
		if count > MaxQuestionCount {
			count = MaxQuestionCount
		}
		questions, err = u.cfg.Questions.FindRandomByDifficulty(db, difficulty, count)
	}
	if err != nil {
		return nil, err
	}

	return mapper.ConvertToQuestions(questions)
}

// Generate creates a question with the AI generator (or the local fallback)
// and adds it to the bank so it can be answered.
func (u *questionUsecase) Generate(ctx context.Context, req entity.GenerateQuestionRequest) (*entity.Question, error) {
	generated := u.cfg.Engine.GenerateQuestion(ctx, entity.Topic(req.Topic), req.Difficulty, req.Language)

	if err := u.cfg.Questions.Create(u.cfg.DB.WithContext(ctx), generated); err != nil {
		return nil, err
	}

	u.cfg.Log.WithFields(logrus.Fields{
		"question_id": generated.ID,
		"topic":       generated.Topic,
		"difficulty":  generated.Difficulty,
		"source":      generated.Source,
	}).Info("question generated")

	q, err := mapper.ConvertToQuestion(generated)
	if err != nil {
		return nil, err
	}
	return &q, nil
}

func (u *questionUsecase) SubmitAnswer(ctx context.Context, req entity.SubmitAnswerRequest) (*entity.SubmitAnswerResponse, error) {
	db := u.cfg.DB.WithContext(ctx)
	rules := u.cfg.Rules

	question, err := u.cfg.Questions.FindByID(db, req.QuestionID)
	if err != nil {
		return nil, notFound(err, ErrQuestionNotFound)
	}
	student, err := u.cfg.Students.FindByID(db, req.StudentID)
	if err != nil {
		return nil, notFound(err, ErrStudentNotFound)
	}

	isCorrect := strings.TrimSpace(req.Answer) == strings.TrimSpace(question.CorrectAnswer)
	points, score := Score(isCorrect)

	if err := u.cfg.Questions.CreateAnswer(db, &internalEntity.StudentAnswer{
		StudentID:  student.ID,
		QuestionID: question.ID,
		Answer:     strings.TrimSpace(req.Answer),
		IsCorrect:  isCorrect,
		TimeTaken:  req.TimeTaken,
	}); err != nil {
		return nil, err
	}

	if err := u.cfg.Progress.Create(db, &internalEntity.Progress{
		StudentID:  student.ID,
		Topic:      question.Topic,
		Difficulty: question.Difficulty,
		Score:      score,
	}); err != nil {
		return nil, err
	}

	now := u.cfg.Now()
	if change := NextStreak(student.LastActiveDate, now); change != StreakUnchanged {
		if err := u.cfg.Students.MarkActive(db, student.ID, DayOf(now), change == StreakContinued); err != nil {
			return nil, err
		}
	}

	recent, err := u.cfg.Progress.FindByStudentID(db, student.ID, max(rules.Window, rules.StreakLength))
	if err != nil {
		return nil, err
	}
	scores := scoresOf(recent)

	performance := rules.AnalyzePerformance(student.CurrentLevel, scores)
	if err := u.cfg.Students.AddPoints(db, student.ID, points, performance.RecommendedDifficulty); err != nil {
		return nil, err
	}

	updated, err := u.cfg.Students.FindByID(db, student.ID)
	if err != nil {
		return nil, err
	}

	newBadges, err := u.awardBadges(db, updated, scores)
	if err != nil {
		return nil, err
	}

	invalidateInsights(ctx, u.cfg.Cache, u.cfg.Log)

	var explanation *string
	if !isCorrect {
		text := u.cfg.Engine.Explain(ctx, question, req.Answer, student.Language)
		explanation = &text
	}

	u.cfg.Log.WithFields(logrus.Fields{
		"student_id":  student.ID,
		"question_id": question.ID,
		"correct":     isCorrect,
		"level":       updated.CurrentLevel,
		"badges":      len(newBadges),
	}).Debug("answer recorded")

	return &entity.SubmitAnswerResponse{
		IsCorrect:     isCorrect,
		CorrectAnswer: question.CorrectAnswer,
		Points:        points,
		Explanation:   explanation,
		NewBadges:     newBadges,
		Student:       updated,
		Performance:   performance,
	}, nil
}

// awardBadges persists the badges the student just earned and has not held before.
func (u *questionUsecase) awardBadges(db *gorm.DB, student *internalEntity.Student, scores []float64) ([]entity.Badge, error) {
	achievements, err := u.cfg.Progress.FindAchievementsByStudentID(db, student.ID)
	if err != nil {
		return nil, err
	}
	held := make(map[string]bool, len(achievements))
	for _, a := range achievements {
		held[a.BadgeType] = true
	}

	badges := u.cfg.Rules.CheckBadges(student.TotalPoints, scores, held)
	for _, b := range badges {
		if err := u.cfg.Progress.CreateAchievement(db, &internalEntity.Achievement{
			StudentID: student.ID,
			BadgeType: b.Type,
			BadgeName: b.Name,
		}); err != nil {
			return nil, err
		}
	}
	return badges, nil
}

func (u *questionUsecase) Hint(ctx context.Context, req entity.HintRequest) (*entity.HintResponse, error) {
	question, err := u.cfg.Questions.FindByID(u.cfg.DB.WithContext(ctx), req.QuestionID)
	if err != nil {
		return nil, notFound(err, ErrQuestionNotFound)
	}
	return &entity.HintResponse{Hint: u.cfg.Engine.Hint(ctx, question, req.Language)}, nil
}
