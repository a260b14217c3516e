package entity

// StudentAnalysis is the teaching agent's view of one student.
type StudentAnalysis struct {
	Strengths       []string `json:"strengths"`
	Weaknesses      []string `json:"weaknesses"`
	Recommendations []string `json:"recommendations"`
	Pace            string   `json:"pace"`            // slow, moderate, fast
	MotivationLevel string   `json:"motivationLevel"` // low, medium, high
	TeacherAlert    bool     `json:"teacherAlert"`
	AlertReason     *string  `json:"alertReason"`
}

type LearningStep struct {
	Day           int    `json:"day"`
	Topic         string `json:"topic"`
	Difficulty    int    `json:"difficulty"`
	Focus         string `json:"focus"`
	EstimatedTime string `json:"estimatedTime"`
}

type StudentNote struct {
	StudentID   uint   `json:"studentId"`
	Reason      string `json:"reason,omitempty"`
	Achievement string `json:"achievement,omitempty"`
	Action      string `json:"action,omitempty"`
}

type ClassInsights struct {
	ImmediateAttention []StudentNote `json:"immediateAttention"`
	TopPerformers      []StudentNote `json:"topPerformers"`
	ClassWideIssues    []string      `json:"classWideIssues"`
	Recommendations    []string      `json:"recommendations"`
	ActionItems        []StudentNote `json:"actionItems"`
}

type QuestionSelection struct {
	Topic      string `json:"topic"`
	Difficulty int    `json:"difficulty"`
	Reason     string `json:"reason,omitempty"`
}

type CoachingResponse struct {
	Message string `json:"message"`
}

type TeacherAlertRequest struct {
	Issue string `json:"issue" validate:"required,max=500"`
}

type TeacherAlertResponse struct {
	StudentID uint   `json:"studentId"`
	Alert     string `json:"alert"`
}
