package usecase

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"math/rand"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/evandrarf/numeracy-tutor-be/internal/delivery/http/entity"
	internalEntity "github.com/evandrarf/numeracy-tutor-be/internal/entity"
	"github.com/evandrarf/numeracy-tutor-be/internal/pkg/llm"
	"github.com/evandrarf/numeracy-tutor-be/internal/pkg/mapper"
	"github.com/sirupsen/logrus"
)

const DefaultLanguage = "en"

var languageNames = map[string]string{
	"en": "English",
	"hi": "Hindi",
	"ta": "Tamil",
	"te": "Telugu",
}

// NormalizeLanguage maps unknown or empty language codes to English.
func NormalizeLanguage(lang string) string {
	lang = strings.ToLower(strings.TrimSpace(lang))
	if _, ok := languageNames[lang]; ok {
		return lang
	}
	return DefaultLanguage
}

var fallbackExplanations = map[string]string{
	"en": "The correct answer is %s. Let's break it down step by step!",
	"hi": "सही उत्तर %s है। आइए इसे चरण दर चरण समझें!",
	"ta": "சரியான பதில் %s. படிப்படியாக புரிந்து கொள்வோம்!",
	"te": "సరైన సమాధానం %s. దశలవారీగా అర్థం చేసుకుందాం!",
}

var fallbackHints = map[string]string{
	"en": "Think carefully about the numbers. You can do it!",
	"hi": "संख्याओं के बारे में ध्यान से सोचें। आप कर सकते हैं!",
	"ta": "எண்களைப் பற்றி கவனமாக சிந்தியுங்கள். உங்களால் முடியும்!",
	"te": "సంఖ్యల గురించి జాగ్రత్తగా ఆలోచించండి. మీరు చేయగలరు!",
}

var wordProblemTemplates = map[string]string{
	"en": "Ravi has %d apples. He buys %d more. How many apples does he have now?",
	"hi": "रवि के पास %d सेब हैं। वह %d और खरीदता है। अब उसके पास कितने सेब हैं?",
	"ta": "ரவியிடம் %d ஆப்பிள்கள் உள்ளன. அவன் மேலும் %d வாங்குகிறான். இப்போது அவனிடம் எத்தனை ஆப்பிள்கள் உள்ளன?",
	"te": "రవి దగ్గర %d ఆపిల్స్ ఉన్నాయి. అతను మరో %d కొంటాడు. ఇప్పుడు అతని దగ్గర ఎన్ని ఆపిల్స్ ఉన్నాయి?",
}

// Largest operand used by generated questions, per difficulty.
var operandMax = map[int]int{1: 10, 2: 20, 3: 50}

var difficultyGuide = map[int]string{
	1: "very easy, single digit numbers (1-10)",
	2: "medium, numbers up to 20",
	3: "harder, numbers up to 50",
}

var operandQuestionSchema = &llm.Schema{
	Name: "operand-question",
	Definition: map[string]any{
		"type":     "object",
		"required": []any{"num1", "num2", "options", "correct_answer"},
		"properties": map[string]any{
			"num1": map[string]any{"type": "integer", "minimum": 0},
			"num2": map[string]any{"type": "integer", "minimum": 0},
			"options": map[string]any{
				"type":     "array",
				"minItems": 2,
				"maxItems": 6,
				"items":    map[string]any{"type": "integer"},
			},
			"correct_answer": map[string]any{"type": []any{"integer", "string"}},
		},
	},
}

var wordProblemSchema = &llm.Schema{
	Name: "word-problem",
	Definition: map[string]any{
		"type":     "object",
		"required": []any{"text", "correct_answer"},
		"properties": map[string]any{
			"text":           map[string]any{"type": "string", "minLength": 10},
			"correct_answer": map[string]any{"type": []any{"integer", "string"}},
		},
	},
}

// TutorEngine wraps the completion providers used while a student practices.
// Every method degrades to canned content so callers never see provider errors.
type TutorEngine interface {
	Explain(ctx context.Context, question *internalEntity.Question, studentAnswer string, language string) string
	Hint(ctx context.Context, question *internalEntity.Question, language string) string
	GenerateQuestion(ctx context.Context, topic entity.Topic, difficulty int, language string) *internalEntity.Question
}

type TutorEngineConfig struct {
	// Explainer answers explanation and hint requests. Nil means fallbacks only.
	Explainer llm.Provider
	// Generator creates new questions. Nil means fallbacks only.
	Generator llm.Provider
	Log       *logrus.Logger
	Seed      int64
}

type tutorEngine struct {
	cfg TutorEngineConfig

	mu  sync.Mutex
	rnd *rand.Rand
}

func NewTutorEngine(cfg TutorEngineConfig) TutorEngine {
	if cfg.Seed == 0 {
		cfg.Seed = time.Now().UnixNano()
	}
	if cfg.Log == nil {
		cfg.Log = logrus.New()
	}
	return &tutorEngine{
		cfg: cfg,
		rnd: rand.New(rand.NewSource(cfg.Seed)),
	}
}

func (t *tutorEngine) intn(n int) int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.rnd.Intn(n)
}

func (t *tutorEngine) shuffle(values []int) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.rnd.Shuffle(len(values), func(i, j int) { values[i], values[j] = values[j], values[i] })
}

func (t *tutorEngine) Explain(ctx context.Context, question *internalEntity.Question, studentAnswer string, language string) string {
	language = NormalizeLanguage(language)
	fallback := fmt.Sprintf(fallbackExplanations[language], question.CorrectAnswer)

	text, err := t.complete(llm.WithPurpose(ctx, "explanation"), t.cfg.Explainer, llm.Request{
		System: "You are a friendly math tutor for elementary school students.",
		Messages: llm.UserPrompt(fmt.Sprintf(`Question: %s
Student's answer: %s
Correct answer: %s

In %s, explain in 2-3 short, encouraging sentences why the correct answer is %s.
Use everyday objects like fruits, toys or sweets.`,
			questionText(question), studentAnswer, question.CorrectAnswer, languageNames[language], question.CorrectAnswer)),
		MaxTokens:   150,
		Temperature: 0.7,
	})
	if err != nil {
		t.logFallback(err, "explanation", question.ID)
		return fallback
	}
	return text
}

func (t *tutorEngine) Hint(ctx context.Context, question *internalEntity.Question, language string) string {
	language = NormalizeLanguage(language)

	text, err := t.complete(llm.WithPurpose(ctx, "hint"), t.cfg.Explainer, llm.Request{
		Messages: llm.UserPrompt(fmt.Sprintf(`Give a very simple hint in %s for this math problem: %s
The hint should help a young student think about the problem without giving away the answer.
Keep it to 1-2 sentences.`, languageNames[language], questionText(question))),
		MaxTokens:   100,
		Temperature: 0.8,
	})
	if err != nil {
		t.logFallback(err, "hint", question.ID)
		return fallbackHints[language]
	}
	return text
}

func (t *tutorEngine) complete(ctx context.Context, provider llm.Provider, req llm.Request) (string, error) {
	if provider == nil {
		return "", llm.ErrNotConfigured
	}
	resp, err := provider.Generate(ctx, req)
	if err != nil {
		return "", err
	}
	text := strings.TrimSpace(resp.Text)
	if text == "" {
		return "", llm.ErrEmptyResponse
	}
	return text, nil
}

func (t *tutorEngine) logFallback(err error, purpose string, questionID uint) {
	entry := t.cfg.Log.WithFields(logrus.Fields{"purpose": purpose, "question_id": questionID})
	if errors.Is(err, llm.ErrNotConfigured) {
		entry.Debug("llm not configured, using fallback")
		return
	}
	entry.WithError(err).Warn("llm call failed, using fallback")
}

// GenerateQuestion asks the generator for a new question and falls back to a
// locally generated one. The returned question is not yet persisted.
func (t *tutorEngine) GenerateQuestion(ctx context.Context, topic entity.Topic, difficulty int, language string) *internalEntity.Question {
	if !topic.Valid() {
		topic = entity.TopicAddition
	}
	difficulty = entity.ClampDifficulty(difficulty)
	language = NormalizeLanguage(language)

	q, err := t.generateFromAI(llm.WithPurpose(ctx, "question"), topic, difficulty, language)
	if err != nil {
		t.cfg.Log.WithFields(logrus.Fields{"topic": topic, "difficulty": difficulty}).
			WithError(err).Debug("question generation fell back")
		return t.FallbackQuestion(topic, difficulty, language)
	}
	return q
}

type generatedOperands struct {
	Num1          int             `json:"num1"`
	Num2          int             `json:"num2"`
	Options       []int           `json:"options"`
	CorrectAnswer json.RawMessage `json:"correct_answer"`
}

type generatedWordProblem struct {
	Text          string          `json:"text"`
	CorrectAnswer json.RawMessage `json:"correct_answer"`
}

func (t *tutorEngine) generateFromAI(ctx context.Context, topic entity.Topic, difficulty int, language string) (*internalEntity.Question, error) {
	if t.cfg.Generator == nil {
		return nil, llm.ErrNotConfigured
	}

	if topic == entity.TopicWordProblem {
		return t.generateWordProblem(ctx, difficulty, language)
	}

	resp, err := t.cfg.Generator.Generate(ctx, llm.Request{
		JSON: true,
		Messages: llm.UserPrompt(fmt.Sprintf(`Generate one %s problem with %s.
Return ONLY a JSON object:
{"num1": <first number>, "num2": <second number>, "options": [<correct>, <wrong>, <wrong>, <wrong>], "correct_answer": <correct>}
Wrong answers must be believable but clearly wrong.`, topic, difficultyGuide[difficulty])),
		Temperature: 0.9,
	})
	if err != nil {
		return nil, err
	}

	var parsed generatedOperands
	if err := llm.DecodeObject(resp.Text, operandQuestionSchema, &parsed); err != nil {
		return nil, err
	}

	answer, err := parseAnswer(parsed.CorrectAnswer)
	if err != nil {
		return nil, err
	}
	if want, ok := solve(topic, parsed.Num1, parsed.Num2); !ok || want != answer {
		return nil, &llm.ErrInvalidResponse{Text: resp.Text, Err: fmt.Errorf("correct_answer %d does not solve %d %s %d", answer, parsed.Num1, topic, parsed.Num2)}
	}

	options := DeduplicateOptions(parsed.Options, answer)
	if len(options) < 2 {
		return nil, &llm.ErrInvalidResponse{Text: resp.Text, Err: errors.New("not enough unique options")}
	}
	t.shuffle(options)

	return newOperandQuestion(topic, difficulty, parsed.Num1, parsed.Num2, options, answer, internalEntity.SourceAI)
}

func (t *tutorEngine) generateWordProblem(ctx context.Context, difficulty int, language string) (*internalEntity.Question, error) {
	resp, err := t.cfg.Generator.Generate(ctx, llm.Request{
		JSON: true,
		Messages: llm.UserPrompt(fmt.Sprintf(`Write one short math word problem in %s for a primary school student, %s.
The answer must be a single whole number.
Return ONLY a JSON object: {"text": "<the problem>", "correct_answer": <number>}`, languageNames[language], difficultyGuide[difficulty])),
		Temperature: 0.9,
	})
	if err != nil {
		return nil, err
	}

	var parsed generatedWordProblem
	if err := llm.DecodeObject(resp.Text, wordProblemSchema, &parsed); err != nil {
		return nil, err
	}
	answer, err := parseAnswer(parsed.CorrectAnswer)
	if err != nil {
		return nil, err
	}

	return newTextQuestion(difficulty, strings.TrimSpace(parsed.Text), answer, internalEntity.SourceAI)
}

// FallbackQuestion builds a question locally with operands bounded by the difficulty.
func (t *tutorEngine) FallbackQuestion(topic entity.Topic, difficulty int, language string) *internalEntity.Question {
	difficulty = entity.ClampDifficulty(difficulty)
	limit := operandMax[difficulty]
	num1 := t.intn(limit) + 1
	num2 := t.intn(limit) + 1

	if topic == entity.TopicWordProblem {
		text := fmt.Sprintf(wordProblemTemplates[NormalizeLanguage(language)], num1, num2)
		q, _ := newTextQuestion(difficulty, text, num1+num2, internalEntity.SourceFallback)
		return q
	}

	if topic == entity.TopicSubtraction && num2 > num1 {
		num1, num2 = num2, num1
	}
	answer, _ := solve(topic, num1, num2)

	options := []int{answer, answer + 1, answer - 1, answer + 2}
	t.shuffle(options)

	q, _ := newOperandQuestion(topic, difficulty, num1, num2, options, answer, internalEntity.SourceFallback)
	return q
}

// solve computes the expected answer for an arithmetic topic. Subtraction
// is the absolute difference and division is integer division.
func solve(topic entity.Topic, a, b int) (int, bool) {
	switch topic {
	case entity.TopicAddition:
		return a + b, true
	case entity.TopicSubtraction:
		if a < b {
			return b - a, true
		}
		return a - b, true
	case entity.TopicMultiplication:
		return a * b, true
	case entity.TopicDivision:
		if b < 1 {
			b = 1
		}
		return a / b, true
	}
	return 0, false
}

func parseAnswer(raw json.RawMessage) (int, error) {
	var n int
	if err := json.Unmarshal(raw, &n); err == nil {
		return n, nil
	}
	var s string
	if err := json.Unmarshal(raw, &s); err != nil {
		return 0, &llm.ErrInvalidResponse{Text: string(raw), Err: err}
	}
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return 0, &llm.ErrInvalidResponse{Text: string(raw), Err: err}
	}
	return n, nil
}

// DeduplicateOptions removes duplicates and makes sure the correct answer is included.
func DeduplicateOptions(options []int, correct int) []int {
	seen := map[int]bool{correct: true}
	unique := []int{correct}
	for _, opt := range options {
		if !seen[opt] {
			unique = append(unique, opt)
			seen[opt] = true
		}
	}
	return unique
}

func newOperandQuestion(topic entity.Topic, difficulty, num1, num2 int, options []int, answer int, source string) (*internalEntity.Question, error) {
	data, err := mapper.EncodeQuestionData(internalEntity.QuestionData{Num1: &num1, Num2: &num2, Options: options})
	if err != nil {
		return nil, err
	}
	return &internalEntity.Question{
		Topic:         string(topic),
		Difficulty:    difficulty,
		QuestionType:  internalEntity.QuestionTypeSelect,
		QuestionData:  data,
		CorrectAnswer: strconv.Itoa(answer),
		Source:        source,
	}, nil
}

func newTextQuestion(difficulty int, text string, answer int, source string) (*internalEntity.Question, error) {
	data, err := mapper.EncodeQuestionData(internalEntity.QuestionData{Text: text})
	if err != nil {
		return nil, err
	}
	return &internalEntity.Question{
		Topic:         string(entity.TopicWordProblem),
		Difficulty:    difficulty,
		QuestionType:  internalEntity.QuestionTypeInput,
		QuestionData:  data,
		CorrectAnswer: strconv.Itoa(answer),
		Source:        source,
	}, nil
}

func questionText(q *internalEntity.Question) string {
	data, err := mapper.DecodeQuestionData(q.QuestionData)
	if err != nil {
		return ""
	}
	return mapper.QuestionText(entity.Topic(q.Topic), data)
}
