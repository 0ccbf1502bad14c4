package config

import (
	"fmt"
	"slices"
	"strings"
)

// ValidationError represents a single validation failure
type ValidationError struct {
	Field   string // The config field path (e.g., "vscode.indent")
	Value   any    // The invalid value
	Message string // Human-readable error description
}

// Error implements the error interface for ValidationError
func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s (got: %v)", e.Field, e.Message, e.Value)
}

// ValidationErrors is a collection of validation errors
type ValidationErrors []ValidationError

// Error implements the error interface for ValidationErrors
func (e ValidationErrors) Error() string {
	if len(e) == 0 {
		return ""
	}
	if len(e) == 1 {
		return e[0].Error()
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("%d validation errors:\n", len(e)))
	for i, err := range e {
		sb.WriteString(fmt.Sprintf("  %d. %s\n", i+1, err.Error()))
	}
	return sb.String()
}

// MinIndent and MaxIndent bound vscode.indent
const (
	MinIndent = 1
	MaxIndent = 16
)

// ValidLogLevels returns the list of valid log levels
func ValidLogLevels() []string {
	return []string{"debug", "info", "warn", "error"}
}

// ValidLogFormats returns the list of valid log formats
func ValidLogFormats() []string {
	return []string{"text", "json"}
}

// Validate checks the Config for invalid values and returns all validation errors found
func (c *Config) Validate() []ValidationError {
	var errors []ValidationError

	errors = append(errors, c.validateLogging()...)
	errors = append(errors, c.validateVersions()...)
	errors = append(errors, c.validateVSCode()...)
	errors = append(errors, c.validatePreCommit()...)
	errors = append(errors, c.validateLoad()...)

	return errors
}

// validateLogging validates the LoggingConfig
func (c *Config) validateLogging() []ValidationError {
	var errors []ValidationError

	if c.Logging.Level != "" && !slices.Contains(ValidLogLevels(), strings.ToLower(c.Logging.Level)) {
		errors = append(errors, ValidationError{
			Field:   "logging.level",
			Value:   c.Logging.Level,
			Message: fmt.Sprintf("must be one of: %s", strings.Join(ValidLogLevels(), ", ")),
		})
	}

	if c.Logging.Format != "" && !slices.Contains(ValidLogFormats(), strings.ToLower(c.Logging.Format)) {
		errors = append(errors, ValidationError{
			Field:   "logging.format",
			Value:   c.Logging.Format,
			Message: fmt.Sprintf("must be one of: %s", strings.Join(ValidLogFormats(), ", ")),
		})
	}

	return errors
}

// validateVersions validates the VersionsConfig
func (c *Config) validateVersions() []ValidationError {
	if strings.TrimSpace(c.Versions.ConfigFile) == "" {
		return []ValidationError{{
			Field:   "versions.config_file",
			Value:   c.Versions.ConfigFile,
			Message: "must not be empty",
		}}
	}
	return nil
}

// validateVSCode validates the VSCodeConfig
func (c *Config) validateVSCode() []ValidationError {
	var errors []ValidationError

	paths := []struct {
		field string
		value string
	}{
		{"vscode.devcontainer_json", c.VSCode.DevcontainerJSON},
		{"vscode.settings_path", c.VSCode.SettingsPath},
		{"vscode.extensions_path", c.VSCode.ExtensionsPath},
	}
	for _, p := range paths {
		if strings.TrimSpace(p.value) == "" {
			errors = append(errors, ValidationError{
				Field:   p.field,
				Value:   p.value,
				Message: "must not be empty",
			})
		}
	}

	if c.VSCode.Indent < MinIndent || c.VSCode.Indent > MaxIndent {
		errors = append(errors, ValidationError{
			Field:   "vscode.indent",
			Value:   c.VSCode.Indent,
			Message: fmt.Sprintf("must be between %d and %d", MinIndent, MaxIndent),
		})
	}

	return errors
}

// validatePreCommit validates the PreCommitConfig
func (c *Config) validatePreCommit() []ValidationError {
	if strings.TrimSpace(c.PreCommit.ConfigFile) == "" {
		return []ValidationError{{
			Field:   "precommit.config_file",
			Value:   c.PreCommit.ConfigFile,
			Message: "must not be empty",
		}}
	}
	return nil
}

// validateLoad validates the LoadRuleConfig. Rule path and name are only
// meaningful together.
func (c *Config) validateLoad() []ValidationError {
	hasPath := c.Load.RulePath != ""
	hasName := c.Load.RuleName != ""
	if hasPath == hasName {
		return nil
	}

	field, value := "load.rule_name", c.Load.RuleName
	if !hasPath {
		field, value = "load.rule_path", c.Load.RulePath
	}
	return []ValidationError{{
		Field:   field,
		Value:   value,
		Message: "rule_path and rule_name must be set together",
	}}
}
