package schemas

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/cockroachdb/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateJSON_ValidJSON(t *testing.T) {
	err := ValidateJSON(filepath.Join("testdata", "valid_schema.json"), filepath.Join("testdata", "valid_json.json"))
	assert.NoError(t, err)
}

func TestValidateJSON_Invalid(t *testing.T) {
	tests := []struct {
		name     string
		jsonFile string
	}{
		{"missing field", "invalid_json.json"},
		{"wrong type", "type_mismatch.json"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateJSON(filepath.Join("testdata", "valid_schema.json"), filepath.Join("testdata", tt.jsonFile))
			require.Error(t, err)

			var validationErr *ValidationError
			require.True(t, errors.As(err, &validationErr), "error should be ValidationError type")
			assert.NotEmpty(t, validationErr.Errors)
		})
	}
}

func TestValidateJSON_MissingFiles(t *testing.T) {
	err := ValidateJSON("testdata/nonexistent_schema.json", filepath.Join("testdata", "valid_json.json"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not found")

	err = ValidateJSON(filepath.Join("testdata", "valid_schema.json"), "testdata/nonexistent_json.json")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not found")
}

func TestValidateJSON_MalformedJSON(t *testing.T) {
	malformed := filepath.Join(t.TempDir(), "malformed.json")
	require.NoError(t, os.WriteFile(malformed, []byte("{ invalid json }"), 0o644))

	err := ValidateJSON(filepath.Join("testdata", "valid_schema.json"), malformed)
	var loadErr *SchemaLoadError
	assert.True(t, errors.As(err, &loadErr))
}

func TestValidateJSONString(t *testing.T) {
	schema := `{
		"$schema": "http://json-schema.org/draft-07/schema#",
		"type": "object",
		"required": ["person"],
		"properties": {
			"person": {
				"type": "object",
				"required": ["name"],
				"properties": {"name": {"type": "string"}}
			}
		}
	}`

	assert.NoError(t, ValidateJSONString(schema, `{"person": {"name": "Ada"}}`))

	err := ValidateJSONString(schema, `{"person": {}}`)
	var validationErr *ValidationError
	require.True(t, errors.As(err, &validationErr))
	require.Len(t, validationErr.Errors, 1)
	assert.Contains(t, validationErr.Errors[0].Message, "name")
}

func TestValidationError_Error(t *testing.T) {
	err := &ValidationError{
		Errors: []FieldError{
			{Field: "name", Message: "is required"},
			{Field: "age", Message: "must be a number"},
		},
	}

	msg := err.Error()
	assert.Contains(t, msg, "validation failed")
	assert.Contains(t, msg, "1. name: is required")
	assert.Contains(t, msg, "2. age: must be a number")
}

func TestValidatePostingImport(t *testing.T) {
	doc, err := os.ReadFile(filepath.Join("testdata", "postings_valid.json"))
	require.NoError(t, err)
	assert.NoError(t, ValidatePostingImport(doc))

	tests := []struct {
		name string
		doc  string
	}{
		{"no postings key", `{}`},
		{"empty list", `{"postings": []}`},
		{"missing requirements", `{"postings": [{"title": "A", "description": "B", "location": "C", "job_type": "remote"}]}`},
		{"unknown job type", `{"postings": [{"title": "A", "description": "B", "requirements": "R", "location": "C", "job_type": "gig"}]}`},
		{"negative salary", `{"postings": [{"title": "A", "description": "B", "requirements": "R", "location": "C", "job_type": "remote", "salary_min": -1}]}`},
		{"unknown field", `{"postings": [{"title": "A", "description": "B", "requirements": "R", "location": "C", "job_type": "remote", "status": "closed"}]}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidatePostingImport([]byte(tt.doc))
			var validationErr *ValidationError
			assert.True(t, errors.As(err, &validationErr), "got %v", err)
		})
	}
}
