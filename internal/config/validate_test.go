package config

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "taskman.toml")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestValidateFile(t *testing.T) {
	tests := []struct {
		name      string
		content   string
		wantValid bool
		wantPath  string
	}{
		{
			name:      "empty file",
			content:   "",
			wantValid: true,
		},
		{
			name: "valid file",
			content: `storage_url = "sqlite:///tasks.db"
log_level = "debug"
log_format = "json"
log_timestamps = false
flag_completed_overdue = true
`,
			wantValid: true,
		},
		{
			name:      "invalid log level",
			content:   `log_level = "verbose"` + "\n",
			wantValid: false,
			wantPath:  "log_level",
		},
		{
			name:      "invalid log format",
			content:   `log_format = "xml"` + "\n",
			wantValid: false,
			wantPath:  "log_format",
		},
		{
			name:      "wrong type",
			content:   `log_caller = "yes"` + "\n",
			wantValid: false,
			wantPath:  "log_caller",
		},
		{
			name:      "integer where string expected",
			content:   `date_format = 2006` + "\n",
			wantValid: false,
			wantPath:  "date_format",
		},
		{
			name:      "empty storage url",
			content:   `storage_url = ""` + "\n",
			wantValid: false,
			wantPath:  "storage_url",
		},
		{
			name:      "unknown key",
			content:   `todo_file = "to-do.json"` + "\n",
			wantValid: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := ValidateFile(writeConfig(t, tt.content))
			if result.Valid != tt.wantValid {
				t.Fatalf("Valid = %v, want %v (errors: %v)", result.Valid, tt.wantValid, result.Errors)
			}
			if tt.wantValid {
				if len(result.Errors) != 0 {
					t.Errorf("expected no errors, got %v", result.Errors)
				}
				return
			}
			if len(result.Errors) == 0 {
				t.Fatal("expected errors for invalid file")
			}
			if tt.wantPath == "" {
				return
			}
			found := false
			for _, err := range result.Errors {
				var ve *ValidationError
				if errors.As(err, &ve) && ve.Path == tt.wantPath {
					found = true
				}
			}
			if !found {
				t.Errorf("expected an error at %q, got %v", tt.wantPath, result.Errors)
			}
		})
	}
}

func TestValidateFileUnparseable(t *testing.T) {
	result := ValidateFile(writeConfig(t, "log_level = = 1"))
	if result.Valid {
		t.Fatal("expected invalid result")
	}
	if len(result.Errors) != 1 || !strings.Contains(result.Errors[0].Error(), "parse config file") {
		t.Errorf("unexpected errors: %v", result.Errors)
	}
}

func TestValidateFileMissing(t *testing.T) {
	result := ValidateFile(filepath.Join(t.TempDir(), "missing.toml"))
	if result.Valid {
		t.Error("missing file should be invalid")
	}
}

func TestValidationError(t *testing.T) {
	inner := errors.New("bad value")
	err := &ValidationError{Path: "log_level", Err: inner}
	if err.Error() != "log_level: bad value" {
		t.Errorf("Error() = %q", err.Error())
	}
	if !errors.Is(err, inner) {
		t.Error("Unwrap should expose the inner error")
	}
	bare := &ValidationError{Err: inner}
	if bare.Error() != "bad value" {
		t.Errorf("Error() without path = %q", bare.Error())
	}
}

func TestCompileSchema(t *testing.T) {
	if _, err := compileSchema(); err != nil {
		t.Fatalf("embedded schema should compile: %v", err)
	}
}
