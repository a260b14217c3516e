package config

import (
	"context"
	"errors"
	"time"

	"github.com/evandrarf/numeracy-tutor-be/internal/delivery/http/handler"
	"github.com/evandrarf/numeracy-tutor-be/internal/delivery/http/middleware"
	"github.com/evandrarf/numeracy-tutor-be/internal/delivery/http/repository"
	"github.com/evandrarf/numeracy-tutor-be/internal/delivery/http/route"
	"github.com/evandrarf/numeracy-tutor-be/internal/delivery/http/usecase"
	"github.com/evandrarf/numeracy-tutor-be/internal/pkg/cache"
	"github.com/evandrarf/numeracy-tutor-be/internal/pkg/llm"
	"github.com/evandrarf/numeracy-tutor-be/internal/pkg/validate"
	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"
	"github.com/spf13/viper"
	"gorm.io/gorm"
)

type BootstrapConfig struct {
	Api       *fiber.App
	Config    *viper.Viper
	DB        *gorm.DB
	Log       *logrus.Logger
	Validator *validate.Validator

	// Explainer and Generator override the providers built from llm.* config.
	Explainer llm.Provider
	Generator llm.Provider
	Cache     cache.Cache
}

func Bootstrap(ctx context.Context, config *BootstrapConfig) error {
	rules, err := NewRules(config.Config)
	if err != nil {
		return err
	}

	mid := middleware.NewMiddleware(&middleware.MiddlewareConfig{
		Log:    config.Log,
		Config: config.Config,
	})

	explainer := config.Explainer
	if explainer == nil {
		explainer = newProvider(ctx, config.Config, config.Log, llm.KindOpenAI)
	}
	generator := config.Generator
	if generator == nil {
		generator = newProvider(ctx, config.Config, config.Log, llm.KindGemini)
	}

	store := config.Cache
	if store == nil {
		store = cache.New(ctx, cache.Config{
			RedisAddr:     config.Config.GetString("cache.redis.addr"),
			RedisPassword: config.Config.GetString("cache.redis.password"),
			RedisDB:       config.Config.GetInt("cache.redis.db"),
			Prefix:        config.Config.GetString("cache.prefix"),
		}, config.Log)
	}

	studentRepo := repository.NewStudentRepository(config.DB)
	teacherRepo := repository.NewTeacherRepository(config.DB)
	progressRepo := repository.NewProgressRepository(config.DB)
	questionRepo := repository.NewQuestionRepository(config.DB)

	engine := usecase.NewTutorEngine(usecase.TutorEngineConfig{
		Explainer: explainer,
		Generator: generator,
		Log:       config.Log,
	})
	agent := usecase.NewTeachingAgent(usecase.TeachingAgentConfig{
		Provider: generator,
		Rules:    rules,
		Log:      config.Log,
	})

	studentUsecase := usecase.NewStudentUsecase(usecase.StudentConfig{
		DB:        config.DB,
		Students:  studentRepo,
		Progress:  progressRepo,
		Questions: questionRepo,
		Agent:     agent,
		Cache:     store,
		Rules:     rules,
		Log:       config.Log,
	})
	questionUsecase := usecase.NewQuestionUsecase(usecase.QuestionConfig{
		DB:        config.DB,
		Students:  studentRepo,
		Progress:  progressRepo,
		Questions: questionRepo,
		Engine:    engine,
		Cache:     store,
		Rules:     rules,
		Log:       config.Log,
		Now:       time.Now,
	})
	teacherUsecase := usecase.NewTeacherUsecase(usecase.TeacherConfig{
		DB:          config.DB,
		Teachers:    teacherRepo,
		Students:    studentRepo,
		Progress:    progressRepo,
		Agent:       agent,
		Cache:       store,
		InsightsTTL: config.Config.GetDuration("cache.ttl"),
		Rules:       rules,
		Log:         config.Log,
	})

	route.Setup(&route.RouteConfig{
		Api:             config.Api,
		Middleware:      mid,
		StudentHandler:  handler.NewStudentHandler(config.Validator, config.Log, studentUsecase),
		QuestionHandler: handler.NewQuestionHandler(config.Validator, config.Log, questionUsecase),
		TeacherHandler:  handler.NewTeacherHandler(config.Validator, config.Log, teacherUsecase),
		AccessLog:       config.Config.GetBool("api.access_log"),
	})

	return nil
}

// newProvider returns nil when the provider has no API key or fails to
// initialise; callers then run on local fallbacks.
func newProvider(ctx context.Context, config *viper.Viper, log *logrus.Logger, kind string) llm.Provider {
	retry := llm.DefaultRetryConfig()
	if n := config.GetInt("llm.retry.max_attempts"); n > 0 {
		retry.MaxAttempts = n
	}
	if d := config.GetDuration("llm.retry.initial_wait"); d > 0 {
		retry.InitialWait = d
	}
	if d := config.GetDuration("llm.retry.max_wait"); d > 0 {
		retry.MaxWait = d
	}

	p, err := llm.New(ctx, llm.Config{
		Kind:    kind,
		APIKey:  config.GetString("llm." + kind + ".api_key"),
		Model:   config.GetString("llm." + kind + ".model"),
		BaseURL: config.GetString("llm." + kind + ".base_url"),
		Retry:   retry,
	}, log)
	if errors.Is(err, llm.ErrNotConfigured) {
		log.WithField("provider", kind).Info("llm provider not configured, using fallbacks")
		return nil
	}
	if err != nil {
		log.WithError(err).WithField("provider", kind).Warn("failed to initialise llm provider, using fallbacks")
		return nil
	}
	return p
}
