package entity

import "time"

// Student - Siswa yang berlatih soal
type Student struct {
	ID             uint      `gorm:"primarykey" json:"id"`
	Name           string    `gorm:"size:100;not null" json:"name"`
	Grade          int       `gorm:"not null" json:"grade"`
	Language       string    `gorm:"size:5;not null;default:en" json:"language"` // en, hi, ta, te
	CurrentLevel   int       `gorm:"not null;default:1" json:"current_level"`    // 1..3
	TotalPoints    int       `gorm:"not null;default:0" json:"total_points"`
	StreakDays     int       `gorm:"not null;default:0" json:"streak_days"`
	LastActiveDate string    `gorm:"size:10" json:"last_active_date,omitempty"` // YYYY-MM-DD (UTC)
	CreatedAt      time.Time `json:"created_at"`
}

func (Student) TableName() string {
	return "students"
}

// Teacher - Guru yang melihat analitik kelas
type Teacher struct {
	ID        uint      `gorm:"primarykey" json:"id"`
	Name      string    `gorm:"size:100;not null" json:"name"`
	Email     string    `gorm:"uniqueIndex;size:150;not null" json:"email"`
	CreatedAt time.Time `json:"created_at"`
}

func (Teacher) TableName() string {
	return "teachers"
}

// StudentOverview is one row of the class overview (not a table).
type StudentOverview struct {
	ID              uint     `json:"id"`
	Name            string   `json:"name"`
	Grade           int      `json:"grade"`
	Language        string   `json:"language"`
	CurrentLevel    int      `json:"current_level"`
	TotalPoints     int      `json:"total_points"`
	StreakDays      int      `json:"streak_days"`
	TopicsAttempted int64    `json:"topics_attempted"`
	AvgScore        *float64 `json:"avg_score"`
}
