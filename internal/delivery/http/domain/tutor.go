package domain

var (
	STUDENT_LIST_SUCCESS                  = "Students retrieved"
	STUDENT_LIST_FAILED                   = "Failed to retrieve students"
	STUDENT_GET_SUCCESS                   = "Student retrieved"
	STUDENT_GET_FAILED                    = "Failed to retrieve student"
	STUDENT_CREATE_SUCCESS                = "Student created"
	STUDENT_CREATE_FAILED                 = "Failed to create student"
	STUDENT_PROGRESS_SUCCESS              = "Progress retrieved"
	STUDENT_PROGRESS_FAILED               = "Failed to retrieve progress"
	STUDENT_ACHIEVEMENTS_SUCCESS          = "Achievements retrieved"
	STUDENT_ACHIEVEMENTS_FAILED           = "Failed to retrieve achievements"
	STUDENT_PERFORMANCE_SUCCESS           = "Performance analyzed"
	STUDENT_PERFORMANCE_FAILED            = "Failed to analyze performance"
	STUDENT_ANALYSIS_SUCCESS              = "Student analysis generated"
	STUDENT_ANALYSIS_FAILED               = "Failed to analyze student"
	STUDENT_LEARNING_PATH_SUCCESS         = "Learning path generated"
	STUDENT_LEARNING_PATH_FAILED          = "Failed to generate learning path"
	STUDENT_COACHING_SUCCESS              = "Coaching message generated"
	STUDENT_COACHING_FAILED               = "Failed to generate coaching message"
	STUDENT_RECOMMENDED_QUESTIONS_SUCCESS = "Recommended questions selected"
	STUDENT_RECOMMENDED_QUESTIONS_FAILED  = "Failed to select recommended questions"

	QUESTION_LIST_SUCCESS     = "Questions retrieved"
	QUESTION_LIST_FAILED      = "Failed to retrieve questions"
	QUESTION_GENERATE_SUCCESS = "Question generated"
	QUESTION_GENERATE_FAILED  = "Failed to generate question"
	ANSWER_SUBMIT_SUCCESS     = "Answer submitted"
	ANSWER_SUBMIT_FAILED      = "Failed to submit answer"
	HINT_SUCCESS              = "Hint generated"
	HINT_FAILED               = "Failed to generate hint"

	TEACHER_LIST_SUCCESS              = "Teachers retrieved"
	TEACHER_LIST_FAILED               = "Failed to retrieve teachers"
	TEACHER_STUDENTS_SUCCESS          = "Class overview retrieved"
	TEACHER_STUDENTS_FAILED           = "Failed to retrieve class overview"
	TEACHER_STUDENT_ANALYTICS_SUCCESS = "Student analytics retrieved"
	TEACHER_STUDENT_ANALYTICS_FAILED  = "Failed to retrieve student analytics"
	TEACHER_INSIGHTS_SUCCESS          = "Class insights generated"
	TEACHER_INSIGHTS_FAILED           = "Failed to generate class insights"
	TEACHER_ALERT_SUCCESS             = "Teacher alert generated"
	TEACHER_ALERT_FAILED              = "Failed to generate teacher alert"

	INVALID_ID = "id must be a positive integer"
)
