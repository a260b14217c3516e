package entity

import "time"

const (
	QuestionTypeSelect = "select"
	QuestionTypeInput  = "input"

	SourceSeed     = "seed"
	SourceAI       = "ai"
	SourceFallback = "fallback"
)

// Question - Bank soal (seed + hasil generate AI)
type Question struct {
	ID            uint      `gorm:"primarykey" json:"id"`
	Topic         string    `gorm:"size:30;not null;index" json:"topic"`
	Difficulty    int       `gorm:"not null;index" json:"difficulty"`
	QuestionType  string    `gorm:"size:10;not null" json:"question_type"`   // select, input
	QuestionData  string    `gorm:"type:text;not null" json:"question_data"` // JSON: {"num1":2,"num2":3,"options":[5,4,6,3]} or {"text":"..."}
	CorrectAnswer string    `gorm:"size:100;not null" json:"correct_answer"`
	Source        string    `gorm:"size:20;not null;default:seed" json:"source"` // seed, ai, fallback
	CreatedAt     time.Time `json:"created_at"`
}

func (Question) TableName() string {
	return "questions"
}

// StudentAnswer - Jawaban siswa untuk setiap soal
type StudentAnswer struct {
	ID         uint      `gorm:"primarykey" json:"id"`
	StudentID  uint      `gorm:"not null;index" json:"student_id"`
	QuestionID uint      `gorm:"not null;index" json:"question_id"`
	Answer     string    `gorm:"size:100;not null" json:"answer"`
	IsCorrect  bool      `gorm:"not null" json:"is_correct"`
	TimeTaken  *int      `json:"time_taken,omitempty"` // seconds
	AnsweredAt time.Time `gorm:"autoCreateTime" json:"answered_at"`
}

func (StudentAnswer) TableName() string {
	return "student_answers"
}

// AnswerLog is a student answer joined with its question's topic and difficulty.
type AnswerLog struct {
	ID         uint      `json:"id"`
	StudentID  uint      `json:"student_id"`
	QuestionID uint      `json:"question_id"`
	Answer     string    `json:"answer"`
	IsCorrect  bool      `json:"is_correct"`
	TimeTaken  *int      `json:"time_taken,omitempty"`
	AnsweredAt time.Time `json:"answered_at"`
	Topic      string    `json:"topic"`
	Difficulty int       `json:"difficulty"`
}

// QuestionData is the JSON payload stored in Question.QuestionData.
type QuestionData struct {
	Num1    *int   `json:"num1,omitempty"`
	Num2    *int   `json:"num2,omitempty"`
	Options []int  `json:"options,omitempty"`
	Text    string `json:"text,omitempty"`
}
