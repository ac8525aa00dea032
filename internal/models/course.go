package models

import (
	"time"

	"github.com/google/uuid"
)

// Topic is one teachable unit inside a subject.
type Topic struct {
	TopicID   string `json:"topic_id"`
	TopicName string `json:"topic_name"`
}

// Subject groups topics under a course level.
type Subject struct {
	Level       string  `json:"level"`
	SubjectID   string  `json:"subject_id"`
	SubjectName string  `json:"subject_name"`
	Topics      []Topic `json:"topics"`
}

// Course is a curriculum with levels and a subject list. SubjectList is
// stored as a JSONB document, mirroring how the console edits it as one
// nested structure.
type Course struct {
	ID          uuid.UUID `json:"id"`
	CourseID    string    `json:"course_id"`
	CourseName  string    `json:"course_name"`
	Description string    `json:"description,omitempty"`
	Levels      []string  `json:"levels"`
	SubjectList []Subject `json:"subject_list"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}
