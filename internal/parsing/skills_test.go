package parsing

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeSkills_TrimsAndLowercases(t *testing.T) {
	input := []string{" Python ", "SQL", "machine Learning"}
	assert.Equal(t, []string{"machine learning", "python", "sql"}, NormalizeSkills(input))
}

func TestNormalizeSkills_DropsBlanksAndDuplicates(t *testing.T) {
	input := []string{"python", "", "  ", "Python", "PYTHON", "sql"}
	assert.Equal(t, []string{"python", "sql"}, NormalizeSkills(input))
}

func TestNormalizeSkills_Empty(t *testing.T) {
	assert.Empty(t, NormalizeSkills(nil))
	assert.Empty(t, NormalizeSkills([]string{}))
}

func TestNormalizeSkills_Idempotent(t *testing.T) {
	input := []string{" Airflow", "dbt ", "SQL", "sql"}
	once := NormalizeSkills(input)
	twice := NormalizeSkills(once)
	assert.Equal(t, once, twice)
}

func TestIntersect(t *testing.T) {
	cv := []string{"python", "sql"}
	job := []string{"airflow", "python", "sql"}
	assert.Equal(t, []string{"python", "sql"}, Intersect(cv, job))
}

func TestIntersect_NoOverlap(t *testing.T) {
	assert.Empty(t, Intersect([]string{"go"}, []string{"python"}))
}

func TestDifference(t *testing.T) {
	job := []string{"airflow", "python", "sql"}
	cv := []string{"python", "sql"}
	assert.Equal(t, []string{"airflow"}, Difference(job, cv))
}

func TestDifference_EmptySets(t *testing.T) {
	assert.Empty(t, Difference(nil, []string{"python"}))
	assert.Equal(t, []string{"python"}, Difference([]string{"python"}, nil))
}
