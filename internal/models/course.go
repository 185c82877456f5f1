package models

// Course is a class group (e.g. "3° A").
type Course struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
	Year int    `json:"year"`
}

// Student belongs to exactly one course.
type Student struct {
	ID       int64  `json:"id"`
	Name     string `json:"name"`
	CourseID int64  `json:"course_id"`
}

// Subject is a taught discipline.
type Subject struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

// CourseSubject joins a course, a subject and the teacher in charge.
// Names are denormalized by the backend for display.
type CourseSubject struct {
	ID          int64  `json:"id"`
	CourseID    int64  `json:"course_id"`
	SubjectID   int64  `json:"subject_id"`
	TeacherID   int64  `json:"teacher_id"`
	CourseName  string `json:"course_name"`
	SubjectName string `json:"subject_name"`
	TeacherName string `json:"teacher_name"`
}

// CoordinationStatus reports whether a course-subject is covered by a
// published coordination document.
type CoordinationStatus struct {
	CourseSubjectID int64  `json:"course_subject_id"`
	Coordinated     bool   `json:"coordinated"`
	DocumentID      *int64 `json:"document_id,omitempty"`
}
