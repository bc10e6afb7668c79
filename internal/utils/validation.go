package utils

import (
	"strings"

	"github.com/prefeitura-rio/app-contacts/internal/models"
	"golang.org/x/text/cases"
)

// ValidationError represents a validation error with field and message
type ValidationError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// ValidationResult represents the result of validation
type ValidationResult struct {
	IsValid bool              `json:"is_valid"`
	Errors  []ValidationError `json:"errors,omitempty"`
}

// NewValidationResult creates a new validation result
func NewValidationResult() *ValidationResult {
	return &ValidationResult{
		IsValid: true,
		Errors:  []ValidationError{},
	}
}

// AddError adds a validation error to the result
func (vr *ValidationResult) AddError(field, message string) {
	vr.IsValid = false
	vr.Errors = append(vr.Errors, ValidationError{
		Field:   field,
		Message: message,
	})
}

// Message joins all error messages into one line
func (vr *ValidationResult) Message() string {
	msgs := make([]string, 0, len(vr.Errors))
	for _, e := range vr.Errors {
		msgs = append(msgs, e.Message)
	}
	return strings.Join(msgs, "; ")
}

// ValidateRow checks the required fields of a row
func ValidateRow(row models.ParsedRow, cfg models.ValidationConfig) *ValidationResult {
	result := NewValidationResult()

	if cfg.RequireName && SanitizeString(models.StringValue(row.Name)) == "" {
		result.AddError("name", models.ErrMissingName.Error())
	}
	if cfg.RequirePhone && SanitizeString(row.Phone) == "" {
		result.AddError("phone", models.ErrMissingPhone.Error())
	}
	if cfg.RequireRegion && SanitizeString(row.Region) == "" {
		result.AddError("region", models.ErrMissingRegion.Error())
	}

	return result
}

// SanitizeString trims and collapses internal whitespace
func SanitizeString(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

// RegionNameKey is the case-insensitive lookup key of a region name
func RegionNameKey(name string) string {
	return cases.Fold().String(SanitizeString(name))
}
