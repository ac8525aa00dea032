package courses

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/vantutor/admin-backend/internal/models"
	"github.com/vantutor/admin-backend/pkg/response"
)

// Handler handles course management HTTP endpoints.
type Handler struct {
	repo *Repository
}

// NewHandler creates a course handler.
func NewHandler(repo *Repository) *Handler {
	return &Handler{repo: repo}
}

// CreateRequest is the body for POST /courses.
type CreateRequest struct {
	CourseID    string           `json:"course_id" binding:"required"`
	CourseName  string           `json:"course_name" binding:"required"`
	Description string           `json:"description"`
	Levels      []string         `json:"levels" binding:"required,min=1"`
	SubjectList []models.Subject `json:"subject_list"`
}

// Create handles POST /courses.
func (h *Handler) Create(c *gin.Context) {
	var req CreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "invalid request: "+err.Error())
		return
	}
	if req.SubjectList == nil {
		req.SubjectList = []models.Subject{}
	}
	course, err := h.repo.Create(c.Request.Context(), &models.Course{
		CourseID:    req.CourseID,
		CourseName:  req.CourseName,
		Description: req.Description,
		Levels:      req.Levels,
		SubjectList: req.SubjectList,
	})
	if err != nil {
		response.Internal(c, "failed to create course")
		return
	}
	response.Created(c, course)
}

// List handles GET /courses.
func (h *Handler) List(c *gin.Context) {
	list, err := h.repo.List(c.Request.Context())
	if err != nil {
		response.Internal(c, "failed to list courses")
		return
	}
	response.OK(c, gin.H{"courses": list})
}

// GetByID handles GET /courses/:id.
func (h *Handler) GetByID(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "invalid course id")
		return
	}
	course, err := h.repo.GetByID(c.Request.Context(), id)
	if err != nil {
		response.NotFound(c, "course not found")
		return
	}
	response.OK(c, course)
}

// UpdateRequest is the body for PATCH /courses/:id.
type UpdateRequest struct {
	CourseName  string   `json:"course_name" binding:"required"`
	Description string   `json:"description"`
	Levels      []string `json:"levels" binding:"required,min=1"`
}

// Update handles PATCH /courses/:id.
func (h *Handler) Update(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "invalid course id")
		return
	}
	var req UpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "invalid request: "+err.Error())
		return
	}
	if err := h.repo.Update(c.Request.Context(), id, req.CourseName, req.Description, req.Levels); err != nil {
		response.Internal(c, "failed to update course")
		return
	}
	response.OK(c, gin.H{"updated": true})
}

// Delete handles DELETE /courses/:id.
func (h *Handler) Delete(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "invalid course id")
		return
	}
	if err := h.repo.Delete(c.Request.Context(), id); err != nil {
		response.Internal(c, "failed to delete course")
		return
	}
	response.NoContent(c)
}

// SubjectRequest is the body for POST/PUT subject endpoints.
type SubjectRequest struct {
	Level       string         `json:"level" binding:"required"`
	SubjectID   string         `json:"subject_id" binding:"required"`
	SubjectName string         `json:"subject_name" binding:"required"`
	Topics      []models.Topic `json:"topics"`
}

func (s SubjectRequest) toModel() models.Subject {
	topics := s.Topics
	if topics == nil {
		topics = []models.Topic{}
	}
	return models.Subject{Level: s.Level, SubjectID: s.SubjectID, SubjectName: s.SubjectName, Topics: topics}
}

// AddSubject handles POST /courses/:id/subjects.
func (h *Handler) AddSubject(c *gin.Context) {
	h.editSubjects(c, func(subjects []models.Subject, s models.Subject) ([]models.Subject, string) {
		for _, existing := range subjects {
			if existing.SubjectID == s.SubjectID {
				return nil, "subject already exists"
			}
		}
		return append(subjects, s), ""
	})
}

// UpdateSubject handles PUT /courses/:id/subjects/:subjectId.
func (h *Handler) UpdateSubject(c *gin.Context) {
	subjectID := c.Param("subjectId")
	h.editSubjects(c, func(subjects []models.Subject, s models.Subject) ([]models.Subject, string) {
		for i, existing := range subjects {
			if existing.SubjectID == subjectID {
				subjects[i] = s
				return subjects, ""
			}
		}
		return nil, "subject not found"
	})
}

// editSubjects loads the course, applies one mutation to the subject
// list and writes the document back.
func (h *Handler) editSubjects(c *gin.Context, mutate func([]models.Subject, models.Subject) ([]models.Subject, string)) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "invalid course id")
		return
	}
	var req SubjectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "invalid request: "+err.Error())
		return
	}
	course, err := h.repo.GetByID(c.Request.Context(), id)
	if err != nil {
		response.NotFound(c, "course not found")
		return
	}
	subjects, msg := mutate(course.SubjectList, req.toModel())
	if msg != "" {
		response.BadRequest(c, msg)
		return
	}
	if err := h.repo.ReplaceSubjects(c.Request.Context(), id, subjects); err != nil {
		response.Internal(c, "failed to save subjects")
		return
	}
	response.OK(c, gin.H{"subject_list": subjects})
}

// RemoveSubject handles DELETE /courses/:id/subjects/:subjectId.
func (h *Handler) RemoveSubject(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "invalid course id")
		return
	}
	subjectID := c.Param("subjectId")
	course, err := h.repo.GetByID(c.Request.Context(), id)
	if err != nil {
		response.NotFound(c, "course not found")
		return
	}
	kept := make([]models.Subject, 0, len(course.SubjectList))
	for _, s := range course.SubjectList {
		if s.SubjectID != subjectID {
			kept = append(kept, s)
		}
	}
	if len(kept) == len(course.SubjectList) {
		response.NotFound(c, "subject not found")
		return
	}
	if err := h.repo.ReplaceSubjects(c.Request.Context(), id, kept); err != nil {
		response.Internal(c, "failed to save subjects")
		return
	}
	response.OK(c, gin.H{"subject_list": kept})
}

// ImportSubjectsRequest is the body for POST /courses/:id/subjects/import:
// a whole subject list pasted as JSON in the console.
type ImportSubjectsRequest struct {
	Subjects []models.Subject `json:"subjects" binding:"required,min=1"`
}

// ImportSubjects merges a pasted subject list into the course: subjects
// with a known subject_id are replaced, the rest appended in order.
func (h *Handler) ImportSubjects(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "invalid course id")
		return
	}
	var req ImportSubjectsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "invalid request: "+err.Error())
		return
	}
	course, err := h.repo.GetByID(c.Request.Context(), id)
	if err != nil {
		response.NotFound(c, "course not found")
		return
	}
	merged := MergeSubjects(course.SubjectList, req.Subjects)
	if err := h.repo.ReplaceSubjects(c.Request.Context(), id, merged); err != nil {
		response.Internal(c, "failed to save subjects")
		return
	}
	response.OK(c, gin.H{"subject_list": merged, "imported": len(req.Subjects)})
}

// MergeSubjects overlays incoming subjects onto existing ones by
// subject_id, preserving existing order and appending new subjects.
func MergeSubjects(existing, incoming []models.Subject) []models.Subject {
	merged := make([]models.Subject, len(existing))
	copy(merged, existing)
	index := make(map[string]int, len(merged))
	for i, s := range merged {
		index[s.SubjectID] = i
	}
	for _, s := range incoming {
		if s.Topics == nil {
			s.Topics = []models.Topic{}
		}
		if i, ok := index[s.SubjectID]; ok {
			merged[i] = s
			continue
		}
		index[s.SubjectID] = len(merged)
		merged = append(merged, s)
	}
	return merged
}
