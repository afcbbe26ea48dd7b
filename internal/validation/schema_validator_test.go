package validation

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"testing/fstest"
)

const personSchema = `{
	"$schema": "http://json-schema.org/draft-07/schema#",
	"type": "object",
	"properties": {
		"name": {"type": "string"},
		"age": {"type": "integer", "minimum": 0}
	},
	"required": ["name"]
}`

func testFS() fstest.MapFS {
	return fstest.MapFS{
		"person.schema.json": &fstest.MapFile{Data: []byte(personSchema)},
		"broken.schema.json": &fstest.MapFile{Data: []byte(`{not json`)},
	}
}

func TestSchemaValidator_ValidateBytes(t *testing.T) {
	validator := NewSchemaValidator(testFS())

	tests := []struct {
		name      string
		data      string
		wantError bool
		errorMsg  string
	}{
		{name: "valid data", data: `{"name": "John", "age": 30}`},
		{name: "valid data without optional field", data: `{"name": "Jane"}`},
		{name: "missing required field", data: `{"age": 25}`, wantError: true, errorMsg: "required"},
		{name: "wrong type for field", data: `{"name": "John", "age": "thirty"}`, wantError: true, errorMsg: "age"},
		{name: "constraint violation", data: `{"name": "John", "age": -5}`, wantError: true, errorMsg: "age"},
		{name: "invalid JSON", data: `{"name": "John", "age": }`, wantError: true, errorMsg: "parse JSON"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := validator.ValidateBytes([]byte(tt.data), "person.schema.json")

			if tt.wantError {
				if err == nil {
					t.Fatal("Expected error but got none")
				}
				if !strings.Contains(err.Error(), tt.errorMsg) {
					t.Errorf("Expected error containing %q, got: %v", tt.errorMsg, err)
				}
				return
			}
			if err != nil {
				t.Errorf("Expected no error, got: %v", err)
			}
		})
	}
}

func TestSchemaValidator_ValidateFile(t *testing.T) {
	validator := NewSchemaValidator(testFS())
	dataPath := filepath.Join(t.TempDir(), "person.json")
	if err := os.WriteFile(dataPath, []byte(`{"name": "Ada"}`), 0o644); err != nil {
		t.Fatalf("Failed to write data file: %v", err)
	}

	if err := validator.ValidateFile(dataPath, "person.schema.json"); err != nil {
		t.Errorf("Expected no error, got: %v", err)
	}

	err := validator.ValidateFile(filepath.Join(t.TempDir(), "missing.json"), "person.schema.json")
	if err == nil || !strings.Contains(err.Error(), "failed to read data file") {
		t.Errorf("Expected read error, got: %v", err)
	}
}

func TestSchemaValidator_SchemaErrors(t *testing.T) {
	validator := NewSchemaValidator(testFS())

	err := validator.ValidateBytes([]byte(`{}`), "missing.schema.json")
	if err == nil || !strings.Contains(err.Error(), "failed to load schema") {
		t.Errorf("Expected load error for missing schema, got: %v", err)
	}

	err = validator.ValidateBytes([]byte(`{}`), "broken.schema.json")
	if err == nil || !strings.Contains(err.Error(), "parse schema JSON") {
		t.Errorf("Expected parse error for broken schema, got: %v", err)
	}
}

func TestSchemaValidator_CachesCompiledSchema(t *testing.T) {
	v := NewSchemaValidator(testFS()).(*validator)

	for i := 0; i < 3; i++ {
		if err := v.ValidateBytes([]byte(`{"name": "x"}`), "person.schema.json"); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	}
	if len(v.schemas) != 1 {
		t.Errorf("Expected one cached schema, got %d", len(v.schemas))
	}
}
