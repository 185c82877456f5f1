package models

// Moment keys. A lesson plan always carries exactly these three.
const (
	MomentApertura   = "apertura"
	MomentDesarrollo = "desarrollo"
	MomentCierre     = "cierre"
)

// MomentKeys lists the fixed lesson phases in order.
func MomentKeys() []string {
	return []string{MomentApertura, MomentDesarrollo, MomentCierre}
}

// IsMomentKey reports whether key names one of the three fixed phases.
func IsMomentKey(key string) bool {
	return key == MomentApertura || key == MomentDesarrollo || key == MomentCierre
}

// Moment holds the activities and free text of one lesson phase.
type Moment struct {
	ActivityIDs []int64 `json:"activity_ids"`
	Notes       string  `json:"notes"`
}

// LessonPlan is a teacher's plan for one class of a course-subject.
type LessonPlan struct {
	ID              int64             `json:"id"`
	CourseSubjectID int64             `json:"course_subject_id"`
	ClassNumber     int               `json:"class_number"`
	Moments         map[string]Moment `json:"moments"`
	CategoryIDs     []int64           `json:"category_ids"`
	Status          string            `json:"status"`
}

// MomentType is a backend-defined phase descriptor.
type MomentType struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

// Activity is a reusable classroom activity.
type Activity struct {
	ID           int64  `json:"id"`
	Name         string `json:"name"`
	MomentTypeID int64  `json:"moment_type_id"`
	Description  string `json:"description"`
}
