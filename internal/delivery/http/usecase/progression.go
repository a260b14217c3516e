package usecase

import (
	"fmt"
	"sort"
	"time"

	"github.com/evandrarf/numeracy-tutor-be/internal/delivery/http/entity"
	internalEntity "github.com/evandrarf/numeracy-tutor-be/internal/entity"
)

// PointsPerCorrect is awarded for every correct answer.
const PointsPerCorrect = 10

const (
	BadgeFirstCorrect  = "first_correct"
	BadgePoints50      = "points_50"
	BadgePoints100     = "points_100"
	BadgePerfectStreak = "perfect_streak"
)

// Rules holds the thresholds used for difficulty progression, badges and gap detection.
type Rules struct {
	// Window is how many of the newest scores feed the rolling average.
	Window int
	// IncreaseThreshold and MaintainThreshold split the rolling average into increase/maintain/decrease.
	IncreaseThreshold float64
	MaintainThreshold float64
	// GapThreshold marks a topic as a learning gap; below SevereGapThreshold the gap is "high".
	GapThreshold       float64
	SevereGapThreshold float64
	// StreakLength consecutive correct answers earn the perfect streak badge.
	StreakLength int
}

func DefaultRules() Rules {
	return Rules{
		Window:             3,
		IncreaseThreshold:  0.8,
		MaintainThreshold:  0.6,
		GapThreshold:       0.6,
		SevereGapThreshold: 0.4,
		StreakLength:       5,
	}
}

func (r Rules) Validate() error {
	if r.Window < 1 {
		return fmt.Errorf("rules: window must be >= 1, got %d", r.Window)
	}
	if r.StreakLength < 1 {
		return fmt.Errorf("rules: streak_length must be >= 1, got %d", r.StreakLength)
	}
	if r.MaintainThreshold < 0 || r.IncreaseThreshold > 1 || r.MaintainThreshold > r.IncreaseThreshold {
		return fmt.Errorf("rules: need 0 <= maintain_threshold (%.2f) <= increase_threshold (%.2f) <= 1", r.MaintainThreshold, r.IncreaseThreshold)
	}
	if r.SevereGapThreshold < 0 || r.GapThreshold > 1 || r.SevereGapThreshold > r.GapThreshold {
		return fmt.Errorf("rules: need 0 <= severe_gap_threshold (%.2f) <= gap_threshold (%.2f) <= 1", r.SevereGapThreshold, r.GapThreshold)
	}
	return nil
}

// Score returns the points and the progress score for an answer.
func Score(isCorrect bool) (points int, score float64) {
	if isCorrect {
		return PointsPerCorrect, 1
	}
	return 0, 0
}

// CheckBadges evaluates the badge milestones against the student's updated total
// and progress scores ordered newest-first. Badges in held are never returned.
func (r Rules) CheckBadges(totalPoints int, recent []float64, held map[string]bool) []entity.Badge {
	var candidates []entity.Badge

	if totalPoints == PointsPerCorrect {
		candidates = append(candidates, entity.Badge{Type: BadgeFirstCorrect, Name: "First Step"})
	}
	if totalPoints >= 50 && totalPoints < 60 {
		candidates = append(candidates, entity.Badge{Type: BadgePoints50, Name: "Math Explorer"})
	}
	if totalPoints >= 100 && totalPoints < 110 {
		candidates = append(candidates, entity.Badge{Type: BadgePoints100, Name: "Math Champion"})
	}
	if r.isPerfectStreak(recent) {
		candidates = append(candidates, entity.Badge{Type: BadgePerfectStreak, Name: "Perfect Five"})
	}

	badges := make([]entity.Badge, 0, len(candidates))
	for _, b := range candidates {
		if !held[b.Type] {
			badges = append(badges, b)
		}
	}
	return badges
}

func (r Rules) isPerfectStreak(recent []float64) bool {
	if len(recent) < r.StreakLength {
		return false
	}
	for _, s := range recent[:r.StreakLength] {
		if s != 1 {
			return false
		}
	}
	return true
}

// AnalyzePerformance applies the rolling-average heuristic to the newest Window
// scores (ordered newest-first) and recommends the next difficulty.
func (r Rules) AnalyzePerformance(currentDifficulty int, recent []float64) entity.PerformanceAnalysis {
	current := entity.ClampDifficulty(currentDifficulty)

	if len(recent) < r.Window {
		return entity.PerformanceAnalysis{
			Decision:              entity.DecisionBuilding,
			Confidence:            "building",
			Samples:               len(recent),
			CurrentDifficulty:     current,
			RecommendedDifficulty: current,
		}
	}

	window := recent[:r.Window]
	var sum float64
	for _, s := range window {
		sum += s
	}
	avg := sum / float64(len(window))

	analysis := entity.PerformanceAnalysis{
		AverageScore:      &avg,
		Samples:           len(window),
		CurrentDifficulty: current,
	}

	switch {
	case avg >= r.IncreaseThreshold:
		analysis.Decision = entity.DecisionIncrease
		analysis.Confidence = "high"
		analysis.Message = "Ready for harder questions!"
	case avg >= r.MaintainThreshold:
		analysis.Decision = entity.DecisionMaintain
		analysis.Confidence = "good"
		analysis.Message = "Keep practicing!"
	default:
		analysis.Decision = entity.DecisionDecrease
		analysis.Confidence = "needs_practice"
		analysis.Message = "Let's review the basics"
	}

	analysis.RecommendedDifficulty = NextLevel(current, analysis.Decision)
	return analysis
}

// NextLevel moves one step in the direction of the decision, bounded to 1..3.
func NextLevel(current int, decision entity.Decision) int {
	switch decision {
	case entity.DecisionIncrease:
		return entity.ClampDifficulty(current + 1)
	case entity.DecisionDecrease:
		return entity.ClampDifficulty(current - 1)
	default:
		return entity.ClampDifficulty(current)
	}
}

// DetectLearningGaps returns the topics whose average score is below GapThreshold,
// weakest first.
func (r Rules) DetectLearningGaps(stats []internalEntity.TopicStat) []entity.LearningGap {
	gaps := make([]entity.LearningGap, 0)
	for _, stat := range stats {
		if stat.Attempts == 0 || stat.AvgScore >= r.GapThreshold {
			continue
		}
		severity := "medium"
		if stat.AvgScore < r.SevereGapThreshold {
			severity = "high"
		}
		gaps = append(gaps, entity.LearningGap{
			Topic:    stat.Topic,
			AvgScore: stat.AvgScore,
			Attempts: stat.Attempts,
			Severity: severity,
		})
	}

	sort.SliceStable(gaps, func(i, j int) bool {
		return gaps[i].AvgScore < gaps[j].AvgScore
	})
	return gaps
}

// scoresOf extracts scores from progress rows, keeping their order.
func scoresOf(rows []internalEntity.Progress) []float64 {
	scores := make([]float64, len(rows))
	for i, p := range rows {
		scores[i] = p.Score
	}
	return scores
}

type StreakChange int

const (
	StreakUnchanged StreakChange = iota
	StreakContinued
	StreakRestarted
)

const dayLayout = "2006-01-02"

// DayOf formats t as the UTC calendar day stored in last_active_date.
func DayOf(t time.Time) string {
	return t.UTC().Format(dayLayout)
}

// NextStreak decides how an answer given at now affects the daily streak of a
// student last active on lastActive.
func NextStreak(lastActive string, now time.Time) StreakChange {
	today := DayOf(now)
	switch lastActive {
	case today:
		return StreakUnchanged
	case DayOf(now.UTC().AddDate(0, 0, -1)):
		return StreakContinued
	default:
		return StreakRestarted
	}
}
