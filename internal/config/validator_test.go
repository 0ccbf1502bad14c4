package config

import (
	"strings"
	"testing"
)

func TestValidationError_Error(t *testing.T) {
	err := ValidationError{
		Field:   "test.field",
		Value:   123,
		Message: "must be greater than zero",
	}

	expected := "test.field: must be greater than zero (got: 123)"
	if err.Error() != expected {
		t.Errorf("Error() = %q, want %q", err.Error(), expected)
	}
}

func TestValidationErrors_Error(t *testing.T) {
	t.Run("empty errors", func(t *testing.T) {
		var errs ValidationErrors
		if errs.Error() != "" {
			t.Errorf("Error() for empty = %q, want empty string", errs.Error())
		}
	})

	t.Run("single error", func(t *testing.T) {
		errs := ValidationErrors{
			{Field: "test.field", Value: 123, Message: "is invalid"},
		}
		expected := "test.field: is invalid (got: 123)"
		if errs.Error() != expected {
			t.Errorf("Error() = %q, want %q", errs.Error(), expected)
		}
	})

	t.Run("multiple errors", func(t *testing.T) {
		errs := ValidationErrors{
			{Field: "field1", Value: "bad", Message: "is invalid"},
			{Field: "field2", Value: -1, Message: "must be positive"},
		}
		result := errs.Error()
		if !strings.Contains(result, "2 validation errors") {
			t.Errorf("Error() should mention 2 errors: %s", result)
		}
		if !strings.Contains(result, "field1") || !strings.Contains(result, "field2") {
			t.Errorf("Error() should mention both fields: %s", result)
		}
	})
}

func TestConfig_Validate_DefaultConfig(t *testing.T) {
	cfg := Default()
	errs := cfg.Validate()
	if len(errs) != 0 {
		t.Errorf("Default config should be valid, got errors: %v", errs)
	}
}

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name      string
		modify    func(*Config)
		wantField string
	}{
		{"invalid log level", func(c *Config) { c.Logging.Level = "verbose" }, "logging.level"},
		{"invalid log format", func(c *Config) { c.Logging.Format = "xml" }, "logging.format"},
		{"empty versions config", func(c *Config) { c.Versions.ConfigFile = " " }, "versions.config_file"},
		{"empty devcontainer path", func(c *Config) { c.VSCode.DevcontainerJSON = "" }, "vscode.devcontainer_json"},
		{"empty settings path", func(c *Config) { c.VSCode.SettingsPath = "" }, "vscode.settings_path"},
		{"empty extensions path", func(c *Config) { c.VSCode.ExtensionsPath = "" }, "vscode.extensions_path"},
		{"zero indent", func(c *Config) { c.VSCode.Indent = 0 }, "vscode.indent"},
		{"huge indent", func(c *Config) { c.VSCode.Indent = 17 }, "vscode.indent"},
		{"empty pre-commit config", func(c *Config) { c.PreCommit.ConfigFile = "" }, "precommit.config_file"},
		{"rule path without name", func(c *Config) { c.Load.RulePath = "//x:defs.bzl" }, "load.rule_name"},
		{"rule name without path", func(c *Config) { c.Load.RuleName = "x" }, "load.rule_path"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.modify(cfg)

			errs := cfg.Validate()
			if len(errs) != 1 {
				t.Fatalf("Validate() returned %d errors, want 1: %v", len(errs), errs)
			}
			if errs[0].Field != tt.wantField {
				t.Errorf("Field = %q, want %q", errs[0].Field, tt.wantField)
			}
		})
	}
}

func TestConfig_Validate_AcceptsMixedCase(t *testing.T) {
	cfg := Default()
	cfg.Logging.Level = "DEBUG"
	cfg.Logging.Format = "JSON"
	cfg.Load = LoadRuleConfig{RulePath: "//py:defs.bzl", RuleName: "py_library"}

	if errs := cfg.Validate(); len(errs) != 0 {
		t.Errorf("Validate() = %v, want no errors", errs)
	}
}

func TestConfig_Validate_CollectsAll(t *testing.T) {
	cfg := Default()
	cfg.Logging.Level = "loud"
	cfg.VSCode.Indent = -1
	cfg.PreCommit.ConfigFile = ""

	if errs := cfg.Validate(); len(errs) != 3 {
		t.Errorf("Validate() returned %d errors, want 3: %v", len(errs), errs)
	}
}
