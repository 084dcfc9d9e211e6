// Package schema validates field definitions and the payloads submitted against them.
package schema

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/formify/core/internal/models"
	"github.com/formify/core/internal/pkg/apperr"
	"github.com/formify/core/internal/pkg/sanitize"
)

// NormalizeFields trims and sanitizes every field. Markup is stripped from
// labels, placeholders and options; options survive only on choice types.
func NormalizeFields(fields []models.Field) []models.Field {
	out := make([]models.Field, len(fields))
	for i, f := range fields {
		out[i] = normalizeField(f)
	}
	return out
}

// NormalizeFormFields is NormalizeFields for fields that carry block tags.
func NormalizeFormFields(fields []models.FormField) []models.FormField {
	out := make([]models.FormField, len(fields))
	for i, f := range fields {
		out[i] = f
		out[i].Field = normalizeField(f.Field)
		out[i].TemplateBlockID = strings.TrimSpace(f.TemplateBlockID)
		out[i].TemplateBlockName = sanitize.Text(f.TemplateBlockName)
		out[i].TemplateBlockCategory = sanitize.Text(f.TemplateBlockCategory)
	}
	return out
}

func normalizeField(f models.Field) models.Field {
	n := f.Normalize()
	n.Label = sanitize.Text(n.Label)
	n.Placeholder = sanitize.Text(n.Placeholder)
	if n.Options != nil {
		n.Options = sanitize.Texts(n.Options)
	}
	if n.Validation != nil {
		n.Validation.Message = sanitize.Text(n.Validation.Message)
	}
	return n
}

// ValidateFields checks a block's field list. Returns a *apperr.ValidationError
// listing every problem, or nil.
func ValidateFields(fields []models.Field) error {
	var issues []apperr.Issue
	seen := make(map[string]struct{}, len(fields))
	for i, f := range fields {
		issues = append(issues, fieldIssues(fmt.Sprintf("fields[%d]", i), f, seen)...)
	}
	return apperr.Invalid(issues...)
}

// ValidateFormFields checks a form's field list.
func ValidateFormFields(fields []models.FormField) error {
	var issues []apperr.Issue
	seen := make(map[string]struct{}, len(fields))
	for i, f := range fields {
		issues = append(issues, fieldIssues(fmt.Sprintf("fields[%d]", i), f.Field, seen)...)
	}
	return apperr.Invalid(issues...)
}

func fieldIssues(path string, f models.Field, seen map[string]struct{}) []apperr.Issue {
	var issues []apperr.Issue
	add := func(attr, msg string) {
		issues = append(issues, apperr.Issue{Field: path + "." + attr, Message: msg})
	}

	if f.ID == "" {
		add("id", "is required")
	} else if _, dup := seen[f.ID]; dup {
		add("id", fmt.Sprintf("duplicate field id %q", f.ID))
	} else {
		seen[f.ID] = struct{}{}
	}
	if !f.Type.Valid() {
		add("type", fmt.Sprintf("unknown field type %q", f.Type))
	}
	if f.Label == "" {
		add("label", "is required")
	}
	if f.Type.IsChoice() && len(f.Options) == 0 {
		add("options", fmt.Sprintf("%s fields need at least one option", f.Type))
	}
	if v := f.Validation; v != nil {
		if v.Pattern != "" {
			if _, err := regexp.Compile(v.Pattern); err != nil {
				add("validation.pattern", "does not compile: "+err.Error())
			}
		}
		if v.Min != nil && v.Max != nil && *v.Min > *v.Max {
			add("validation", "min must not exceed max")
		}
	}
	return issues
}
