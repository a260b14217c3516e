package usecase

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/evandrarf/numeracy-tutor-be/internal/delivery/http/entity"
	internalEntity "github.com/evandrarf/numeracy-tutor-be/internal/entity"
	"github.com/evandrarf/numeracy-tutor-be/internal/pkg/llm"
	"github.com/sirupsen/logrus"
)

// LearningPathDays is the length of a generated learning path.
const LearningPathDays = 5

var fallbackCoaching = map[string]string{
	"en": "You're doing great! Keep up the good work and try your best on this question.",
	"hi": "आप बहुत अच्छा कर रहे हैं! अच्छा काम जारी रखें और इस प्रश्न पर अपना सर्वश्रेष्ठ प्रयास करें।",
	"ta": "நீங்கள் நன்றாக செய்கிறீர்கள்! நல்ல வேலையைத் தொடர்ந்து இந்த கேள்வியில் உங்கள் சிறந்த முயற்சியை செய்யுங்கள்.",
	"te": "మీరు చాలా బాగా చేస్తున్నారు! మంచి పనిని కొనసాగించండి మరియు ఈ ప్రశ్నపై మీ ఉత్తమ ప్రయత్నం చేయండి.",
}

var analysisSchema = &llm.Schema{
	Name: "student-analysis",
	Definition: map[string]any{
		"type":     "object",
		"required": []any{"strengths", "weaknesses", "recommendations", "pace", "motivationLevel", "teacherAlert"},
		"properties": map[string]any{
			"strengths":       map[string]any{"type": "array", "items": map[string]any{"type": "string"}},
			"weaknesses":      map[string]any{"type": "array", "items": map[string]any{"type": "string"}},
			"recommendations": map[string]any{"type": "array", "items": map[string]any{"type": "string"}},
			"pace":            map[string]any{"enum": []any{"slow", "moderate", "fast"}},
			"motivationLevel": map[string]any{"enum": []any{"low", "medium", "high"}},
			"teacherAlert":    map[string]any{"type": "boolean"},
			"alertReason":     map[string]any{"type": []any{"string", "null"}},
		},
	},
}

var learningPathSchema = &llm.Schema{
	Name: "learning-path",
	Definition: map[string]any{
		"type":     "array",
		"minItems": 1,
		"items": map[string]any{
			"type":     "object",
			"required": []any{"day", "topic", "difficulty"},
			"properties": map[string]any{
				"day":           map[string]any{"type": "integer"},
				"topic":         map[string]any{"type": "string"},
				"difficulty":    map[string]any{"type": "integer"},
				"focus":         map[string]any{"type": "string"},
				"estimatedTime": map[string]any{"type": "string"},
			},
		},
	},
}

var studentNotesSchema = map[string]any{
	"type": "array",
	"items": map[string]any{
		"type":     "object",
		"required": []any{"studentId"},
		"properties": map[string]any{
			"studentId": map[string]any{"type": "integer", "minimum": 1},
		},
	},
}

var insightsSchema = &llm.Schema{
	Name: "class-insights",
	Definition: map[string]any{
		"type":     "object",
		"required": []any{"immediateAttention", "topPerformers", "recommendations"},
		"properties": map[string]any{
			"immediateAttention": studentNotesSchema,
			"topPerformers":      studentNotesSchema,
			"actionItems":        studentNotesSchema,
			"classWideIssues":    map[string]any{"type": "array", "items": map[string]any{"type": "string"}},
			"recommendations":    map[string]any{"type": "array", "items": map[string]any{"type": "string"}},
		},
	},
}

var selectionSchema = &llm.Schema{
	Name: "question-selection",
	Definition: map[string]any{
		"type": "array",
		"items": map[string]any{
			"type":     "object",
			"required": []any{"topic", "difficulty"},
			"properties": map[string]any{
				"topic":      map[string]any{"type": "string"},
				"difficulty": map[string]any{"type": "integer"},
			},
		},
	},
}

// TeachingAgent coordinates longer-horizon guidance for students and teachers.
// Like TutorEngine it never fails: every method has a deterministic fallback.
type TeachingAgent interface {
	AnalyzeStudent(ctx context.Context, student *internalEntity.Student, history []internalEntity.Progress) entity.StudentAnalysis
	LearningPath(ctx context.Context, student *internalEntity.Student, analysis entity.StudentAnalysis) []entity.LearningStep
	ClassInsights(ctx context.Context, students []internalEntity.StudentOverview) entity.ClassInsights
	SelectNextQuestions(ctx context.Context, student *internalEntity.Student, analysis entity.StudentAnalysis, available []internalEntity.Question) []internalEntity.Question
	Coaching(ctx context.Context, student *internalEntity.Student, current *internalEntity.Question, previous []internalEntity.AnswerLog, language string) string
	TeacherAlert(ctx context.Context, student *internalEntity.Student, issue string) string
}

type TeachingAgentConfig struct {
	Provider llm.Provider
	Rules    Rules
	Log      *logrus.Logger
	Seed     int64
}

type teachingAgent struct {
	cfg TeachingAgentConfig

	mu  sync.Mutex
	rnd *rand.Rand
}

func NewTeachingAgent(cfg TeachingAgentConfig) TeachingAgent {
	if cfg.Seed == 0 {
		cfg.Seed = time.Now().UnixNano()
	}
	if cfg.Log == nil {
		cfg.Log = logrus.New()
	}
	if cfg.Rules.Window == 0 {
		cfg.Rules = DefaultRules()
	}
	return &teachingAgent{
		cfg: cfg,
		rnd: rand.New(rand.NewSource(cfg.Seed)),
	}
}

func (a *teachingAgent) generate(ctx context.Context, purpose string, req llm.Request) (string, error) {
	if a.cfg.Provider == nil {
		return "", llm.ErrNotConfigured
	}
	resp, err := a.cfg.Provider.Generate(llm.WithPurpose(ctx, purpose), req)
	if err != nil {
		return "", err
	}
	text := strings.TrimSpace(resp.Text)
	if text == "" {
		return "", llm.ErrEmptyResponse
	}
	return text, nil
}

func (a *teachingAgent) fellBack(purpose string, err error) {
	entry := a.cfg.Log.WithField("purpose", purpose)
	if errors.Is(err, llm.ErrNotConfigured) {
		entry.Debug("agent provider not configured, using fallback")
		return
	}
	entry.WithError(err).Warn("agent call failed, using fallback")
}

func (a *teachingAgent) AnalyzeStudent(ctx context.Context, student *internalEntity.Student, history []internalEntity.Progress) entity.StudentAnalysis {
	var sb strings.Builder
	for i, p := range history {
		if i == 10 {
			break
		}
		result := "Incorrect"
		if p.Score == 1 {
			result = "Correct"
		}
		fmt.Fprintf(&sb, "- %s (Difficulty %d): %s\n", p.Topic, p.Difficulty, result)
	}

	text, err := a.generate(ctx, "analysis", llm.Request{
		System: "You are an AI teaching assistant analyzing student performance.",
		JSON:   true,
		Messages: llm.UserPrompt(fmt.Sprintf(`Student: %s, grade %d, level %d, %d points, language %s.
Recent answers (newest first):
%s
Return a JSON object with strengths, weaknesses and recommendations (string arrays),
pace (slow|moderate|fast), motivationLevel (low|medium|high), teacherAlert (boolean)
and alertReason (string or null).`,
			student.Name, student.Grade, student.CurrentLevel, student.TotalPoints, student.Language, sb.String())),
		Temperature: 0.7,
	})
	if err == nil {
		var analysis entity.StudentAnalysis
		if err = llm.DecodeObject(text, analysisSchema, &analysis); err == nil {
			return normalizeAnalysis(analysis)
		}
	}
	a.fellBack("analysis", err)
	return a.FallbackAnalysis(history)
}

func normalizeAnalysis(analysis entity.StudentAnalysis) entity.StudentAnalysis {
	if analysis.Strengths == nil {
		analysis.Strengths = []string{}
	}
	if analysis.Weaknesses == nil {
		analysis.Weaknesses = []string{}
	}
	if analysis.Recommendations == nil {
		analysis.Recommendations = []string{}
	}
	if !analysis.TeacherAlert {
		analysis.AlertReason = nil
	}
	return analysis
}

// FallbackAnalysis derives pace, motivation and alerts from the five newest
// scores and strengths/weaknesses from per-topic averages over history.
func (a *teachingAgent) FallbackAnalysis(history []internalEntity.Progress) entity.StudentAnalysis {
	recent := history
	if len(recent) > 5 {
		recent = recent[:5]
	}
	var sum float64
	for _, p := range recent {
		sum += p.Score
	}
	avg := sum / float64(max(len(recent), 1))

	rules := a.cfg.Rules
	analysis := entity.StudentAnalysis{
		Strengths:       []string{},
		Weaknesses:      []string{},
		Recommendations: []string{"Practice regularly", "Review basics"},
		MotivationLevel: "medium",
	}

	for _, stat := range topicAverages(history) {
		switch {
		case stat.AvgScore >= rules.IncreaseThreshold:
			analysis.Strengths = append(analysis.Strengths, stat.Topic)
		case stat.AvgScore < rules.GapThreshold:
			analysis.Weaknesses = append(analysis.Weaknesses, stat.Topic)
		}
	}

	switch {
	case avg >= rules.IncreaseThreshold:
		analysis.Pace = "fast"
	case avg >= rules.MaintainThreshold:
		analysis.Pace = "moderate"
	default:
		analysis.Pace = "slow"
	}
	if len(recent) >= 5 {
		analysis.MotivationLevel = "high"
	}
	if avg < rules.SevereGapThreshold {
		reason := "Student struggling with recent questions"
		analysis.TeacherAlert = true
		analysis.AlertReason = &reason
	}
	return analysis
}

// topicAverages groups progress rows by topic, sorted by topic name.
func topicAverages(history []internalEntity.Progress) []internalEntity.TopicStat {
	byTopic := make(map[string]*internalEntity.TopicStat)
	sums := make(map[string]float64)
	for _, p := range history {
		stat, ok := byTopic[p.Topic]
		if !ok {
			stat = &internalEntity.TopicStat{Topic: p.Topic}
			byTopic[p.Topic] = stat
		}
		stat.Attempts++
		stat.MaxDifficulty = max(stat.MaxDifficulty, p.Difficulty)
		sums[p.Topic] += p.Score
	}

	stats := make([]internalEntity.TopicStat, 0, len(byTopic))
	for topic, stat := range byTopic {
		stat.AvgScore = sums[topic] / float64(stat.Attempts)
		stats = append(stats, *stat)
	}
	sort.Slice(stats, func(i, j int) bool { return stats[i].Topic < stats[j].Topic })
	return stats
}

func (a *teachingAgent) LearningPath(ctx context.Context, student *internalEntity.Student, analysis entity.StudentAnalysis) []entity.LearningStep {
	text, err := a.generate(ctx, "learning_path", llm.Request{
		System: "You are an AI teaching assistant creating a personalized learning path.",
		Messages: llm.UserPrompt(fmt.Sprintf(`Student: %s (grade %d, level %d)
Strengths: %s
Weaknesses: %s
Pace: %s

Create a %d-day learning path that builds on strengths and gradually addresses weaknesses.
Topics: addition, subtraction, multiplication, division, word_problem. Difficulty 1-3.
Return ONLY a JSON array of {"day", "topic", "difficulty", "focus", "estimatedTime"}.`,
			student.Name, student.Grade, student.CurrentLevel,
			strings.Join(analysis.Strengths, ", "), strings.Join(analysis.Weaknesses, ", "), analysis.Pace, LearningPathDays)),
		Temperature: 0.7,
	})
	if err == nil {
		var steps []entity.LearningStep
		if err = llm.DecodeArray(text, learningPathSchema, &steps); err == nil {
			if steps = sanitizeSteps(steps); len(steps) > 0 {
				return steps
			}
			err = &llm.ErrInvalidResponse{Text: text, Err: errors.New("no usable steps")}
		}
	}
	a.fellBack("learning_path", err)
	return FallbackLearningPath()
}

// sanitizeSteps drops steps with unknown topics, clamps difficulty and renumbers days.
func sanitizeSteps(steps []entity.LearningStep) []entity.LearningStep {
	clean := make([]entity.LearningStep, 0, len(steps))
	for _, s := range steps {
		if !entity.Topic(s.Topic).Valid() {
			continue
		}
		s.Difficulty = entity.ClampDifficulty(s.Difficulty)
		s.Day = len(clean) + 1
		clean = append(clean, s)
		if len(clean) == LearningPathDays {
			break
		}
	}
	return clean
}

func FallbackLearningPath() []entity.LearningStep {
	return []entity.LearningStep{
		{Day: 1, Topic: "addition", Difficulty: 1, Focus: "Review basics", EstimatedTime: "15 minutes"},
		{Day: 2, Topic: "addition", Difficulty: 2, Focus: "Build confidence", EstimatedTime: "15 minutes"},
		{Day: 3, Topic: "subtraction", Difficulty: 1, Focus: "Introduction", EstimatedTime: "15 minutes"},
		{Day: 4, Topic: "subtraction", Difficulty: 2, Focus: "Practice", EstimatedTime: "15 minutes"},
		{Day: 5, Topic: "multiplication", Difficulty: 1, Focus: "New concept", EstimatedTime: "15 minutes"},
	}
}

func (a *teachingAgent) ClassInsights(ctx context.Context, students []internalEntity.StudentOverview) entity.ClassInsights {
	var sb strings.Builder
	for i, s := range students {
		if i == 10 {
			break
		}
		avg := 0
		if s.AvgScore != nil {
			avg = int(*s.AvgScore*100 + 0.5)
		}
		fmt.Fprintf(&sb, "- id %d, %s: level %d, %d points, average %d%%\n", s.ID, s.Name, s.CurrentLevel, s.TotalPoints, avg)
	}

	text, err := a.generate(ctx, "class_insights", llm.Request{
		System: "You are an AI teaching assistant helping a teacher manage a classroom.",
		JSON:   true,
		Messages: llm.UserPrompt(fmt.Sprintf(`Class of %d students:
%s
Return a JSON object with immediateAttention [{studentId, reason}], topPerformers [{studentId, achievement}],
classWideIssues [string], recommendations [string] and actionItems [{studentId, action}].`, len(students), sb.String())),
		Temperature: 0.7,
	})
	if err == nil {
		var insights entity.ClassInsights
		if err = llm.DecodeObject(text, insightsSchema, &insights); err == nil {
			return normalizeInsights(insights, students)
		}
	}
	a.fellBack("class_insights", err)
	return a.FallbackInsights(students)
}

// normalizeInsights drops notes about students that are not in the class.
func normalizeInsights(insights entity.ClassInsights, students []internalEntity.StudentOverview) entity.ClassInsights {
	known := make(map[uint]bool, len(students))
	for _, s := range students {
		known[s.ID] = true
	}
	filter := func(notes []entity.StudentNote) []entity.StudentNote {
		out := make([]entity.StudentNote, 0, len(notes))
		for _, n := range notes {
			if known[n.StudentID] {
				out = append(out, n)
			}
		}
		return out
	}

	insights.ImmediateAttention = filter(insights.ImmediateAttention)
	insights.TopPerformers = filter(insights.TopPerformers)
	insights.ActionItems = filter(insights.ActionItems)
	if insights.ClassWideIssues == nil {
		insights.ClassWideIssues = []string{}
	}
	if insights.Recommendations == nil {
		insights.Recommendations = []string{}
	}
	return insights
}

func (a *teachingAgent) FallbackInsights(students []internalEntity.StudentOverview) entity.ClassInsights {
	rules := a.cfg.Rules
	insights := entity.ClassInsights{
		ImmediateAttention: []entity.StudentNote{},
		TopPerformers:      []entity.StudentNote{},
		ClassWideIssues:    []string{"Monitor engagement levels"},
		Recommendations:    []string{"Continue current teaching approach"},
		ActionItems:        []entity.StudentNote{},
	}

	for _, s := range students {
		if s.AvgScore == nil {
			continue
		}
		switch {
		case *s.AvgScore < rules.GapThreshold:
			insights.ImmediateAttention = append(insights.ImmediateAttention, entity.StudentNote{
				StudentID: s.ID,
				Reason:    fmt.Sprintf("Below %d%% average score", int(rules.GapThreshold*100+0.5)),
			})
			insights.ActionItems = append(insights.ActionItems, entity.StudentNote{
				StudentID: s.ID,
				Action:    "Schedule review session",
			})
		case *s.AvgScore >= rules.IncreaseThreshold:
			insights.TopPerformers = append(insights.TopPerformers, entity.StudentNote{
				StudentID:   s.ID,
				Achievement: "Maintaining high performance",
			})
		}
	}
	return insights
}

func (a *teachingAgent) SelectNextQuestions(ctx context.Context, student *internalEntity.Student, analysis entity.StudentAnalysis, available []internalEntity.Question) []internalEntity.Question {
	text, err := a.generate(ctx, "question_selection", llm.Request{
		System: "You are an AI teaching assistant selecting questions for a student.",
		Messages: llm.UserPrompt(fmt.Sprintf(`Student: %s (level %d)
Strengths: %s
Weaknesses: %s
Pace: %s

Topics: addition, subtraction, multiplication, division, word_problem. Difficulty 1 (easy) to 3 (hard).
Select 5 questions that start with confidence builders, gradually introduce weaknesses and end with a challenge.
Return ONLY a JSON array of {"topic", "difficulty", "reason"}.`,
			student.Name, student.CurrentLevel,
			strings.Join(analysis.Strengths, ", "), strings.Join(analysis.Weaknesses, ", "), analysis.Pace)),
		Temperature: 0.7,
	})
	if err == nil {
		var selections []entity.QuestionSelection
		if err = llm.DecodeArray(text, selectionSchema, &selections); err == nil {
			if picked := a.matchSelections(selections, available); len(picked) > 0 {
				return picked
			}
			err = &llm.ErrInvalidResponse{Text: text, Err: errors.New("no selection matched the bank")}
		}
	}
	a.fellBack("question_selection", err)
	return firstN(available, 5)
}

// matchSelections maps each topic/difficulty pick onto a random unused question
// from available. Picks with no match are skipped.
func (a *teachingAgent) matchSelections(selections []entity.QuestionSelection, available []internalEntity.Question) []internalEntity.Question {
	used := make(map[uint]bool)
	picked := make([]internalEntity.Question, 0, len(selections))

	for _, sel := range selections {
		var matching []internalEntity.Question
		for _, q := range available {
			if q.Topic == sel.Topic && q.Difficulty == sel.Difficulty && !used[q.ID] {
				matching = append(matching, q)
			}
		}
		if len(matching) == 0 {
			continue
		}

		a.mu.Lock()
		q := matching[a.rnd.Intn(len(matching))]
		a.mu.Unlock()

		used[q.ID] = true
		picked = append(picked, q)
	}
	return picked
}

func firstN(questions []internalEntity.Question, n int) []internalEntity.Question {
	if len(questions) > n {
		return questions[:n]
	}
	return questions
}

func (a *teachingAgent) Coaching(ctx context.Context, student *internalEntity.Student, current *internalEntity.Question, previous []internalEntity.AnswerLog, language string) string {
	language = NormalizeLanguage(language)

	marks := make([]string, 0, len(previous))
	for _, p := range previous {
		if p.IsCorrect {
			marks = append(marks, "✓")
		} else {
			marks = append(marks, "✗")
		}
	}
	currentDesc := "a new question"
	if current != nil {
		currentDesc = fmt.Sprintf("%s, difficulty %d", current.Topic, current.Difficulty)
	}

	text, err := a.generate(ctx, "coaching", llm.Request{
		System: "You are an encouraging AI tutor.",
		Messages: llm.UserPrompt(fmt.Sprintf(`Student: %s (grade %d)
Current question: %s
Previous answers: %s

In %s, write 2-3 friendly sentences that acknowledge their effort, boost confidence
and encourage them to try the current question.`,
			student.Name, student.Grade, currentDesc, strings.Join(marks, " "), languageNames[language])),
		Temperature: 0.8,
	})
	if err != nil {
		a.fellBack("coaching", err)
		return fallbackCoaching[language]
	}
	return text
}

func (a *teachingAgent) TeacherAlert(ctx context.Context, student *internalEntity.Student, issue string) string {
	issue = strings.TrimSpace(issue)

	text, err := a.generate(ctx, "teacher_alert", llm.Request{
		System: "You are an AI teaching assistant alerting a teacher.",
		Messages: llm.UserPrompt(fmt.Sprintf(`Student: %s (grade %d, level %d, %d points)
Issue: %s

Write a brief professional alert (3-4 sentences) that describes the issue, gives context,
suggests an immediate action and stays encouraging about the student.`,
			student.Name, student.Grade, student.CurrentLevel, student.TotalPoints, issue)),
		Temperature: 0.5,
	})
	if err != nil {
		a.fellBack("teacher_alert", err)
		return fmt.Sprintf("%s needs attention: %s. Please check their progress.", student.Name, issue)
	}
	return text
}
