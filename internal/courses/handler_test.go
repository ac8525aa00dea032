package courses

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vantutor/admin-backend/internal/models"
)

func subject(id, name string) models.Subject {
	return models.Subject{Level: "L1", SubjectID: id, SubjectName: name, Topics: []models.Topic{}}
}

func TestMergeSubjects(t *testing.T) {
	existing := []models.Subject{subject("math", "Mathematics"), subject("eng", "English")}
	incoming := []models.Subject{subject("eng", "English Language"), subject("sci", "Science")}

	merged := MergeSubjects(existing, incoming)
	require.Len(t, merged, 3)
	assert.Equal(t, "math", merged[0].SubjectID)
	// Existing subject replaced in place, order preserved.
	assert.Equal(t, "English Language", merged[1].SubjectName)
	assert.Equal(t, "sci", merged[2].SubjectID)
}

func TestMergeSubjectsDoesNotMutateExisting(t *testing.T) {
	existing := []models.Subject{subject("math", "Mathematics")}
	_ = MergeSubjects(existing, []models.Subject{subject("math", "Renamed")})
	assert.Equal(t, "Mathematics", existing[0].SubjectName)
}

func TestMergeSubjectsNilTopicsNormalized(t *testing.T) {
	incoming := []models.Subject{{Level: "L1", SubjectID: "sci", SubjectName: "Science"}}
	merged := MergeSubjects(nil, incoming)
	require.Len(t, merged, 1)
	assert.NotNil(t, merged[0].Topics)
}
