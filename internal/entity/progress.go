package entity

import "time"

// Progress - Satu baris per jawaban: score 1 benar, 0 salah
type Progress struct {
	ID          uint      `gorm:"primarykey" json:"id"`
	StudentID   uint      `gorm:"not null;index" json:"student_id"`
	Topic       string    `gorm:"size:30;not null;index" json:"topic"`
	Difficulty  int       `gorm:"not null" json:"difficulty"`
	Score       float64   `gorm:"not null" json:"score"`
	CompletedAt time.Time `gorm:"autoCreateTime" json:"completed_at"`
}

func (Progress) TableName() string {
	return "progress"
}

// TopicStat is the per-topic aggregate over a student's progress rows.
type TopicStat struct {
	Topic         string  `json:"topic"`
	AvgScore      float64 `json:"avg_score"`
	Attempts      int64   `json:"attempts"`
	MaxDifficulty int     `json:"max_difficulty"`
}

// Achievement - Badge yang sudah didapat siswa
type Achievement struct {
	ID        uint      `gorm:"primarykey" json:"id"`
	StudentID uint      `gorm:"not null;index" json:"student_id"`
	BadgeType string    `gorm:"size:30;not null" json:"badge_type"` // first_correct, points_50, ...
	BadgeName string    `gorm:"size:50;not null" json:"badge_name"`
	EarnedAt  time.Time `gorm:"autoCreateTime" json:"earned_at"`
}

func (Achievement) TableName() string {
	return "achievements"
}
