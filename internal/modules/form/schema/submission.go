package schema

import (
	"fmt"
	"net/mail"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/formify/core/internal/models"
	"github.com/formify/core/internal/pkg/apperr"
)

const dateLayout = "2006-01-02"

// ValidateSubmission checks data against the form's fields. Keys without a
// matching field are left alone.
func ValidateSubmission(fields []models.FormField, data map[string]any) []apperr.Issue {
	var issues []apperr.Issue
	for _, f := range fields {
		raw, present := data[f.ID]
		if !present || isEmpty(raw) {
			if f.Required {
				issues = append(issues, issue(f.Field, "is required"))
			}
			continue
		}
		if msg := checkValue(f.Field, raw); msg != "" {
			issues = append(issues, issue(f.Field, msg))
		}
	}
	return issues
}

func issue(f models.Field, msg string) apperr.Issue {
	if f.Validation != nil && f.Validation.Message != "" {
		msg = f.Validation.Message
	}
	return apperr.Issue{Field: f.ID, Message: msg}
}

func isEmpty(v any) bool {
	switch t := v.(type) {
	case nil:
		return true
	case string:
		return strings.TrimSpace(t) == ""
	case []any:
		return len(t) == 0
	case []string:
		return len(t) == 0
	}
	return false
}

func checkValue(f models.Field, raw any) string {
	switch f.Type {
	case models.FieldNumber:
		n, ok := toNumber(raw)
		if !ok {
			return "must be a number"
		}
		return checkRange(f.Validation, n)
	case models.FieldEmail:
		s, ok := raw.(string)
		if !ok {
			return "must be a string"
		}
		addr, err := mail.ParseAddress(s)
		if err != nil || addr.Address != strings.TrimSpace(s) {
			return "must be a valid email address"
		}
		return checkPattern(f.Validation, s)
	case models.FieldDate:
		s, ok := raw.(string)
		if !ok {
			return "must be a date string"
		}
		if _, err := time.Parse(dateLayout, strings.TrimSpace(s)); err != nil {
			return "must be a date in YYYY-MM-DD format"
		}
		return ""
	case models.FieldSelect, models.FieldRadio:
		s, ok := raw.(string)
		if !ok {
			return "must be a string"
		}
		if !contains(f.Options, s) {
			return fmt.Sprintf("%q is not one of the allowed options", s)
		}
		return ""
	case models.FieldCheckbox:
		values, ok := toStrings(raw)
		if !ok {
			return "must be a list of options"
		}
		for _, s := range values {
			if !contains(f.Options, s) {
				return fmt.Sprintf("%q is not one of the allowed options", s)
			}
		}
		return ""
	default:
		s, ok := raw.(string)
		if !ok {
			return "must be a string"
		}
		return checkPattern(f.Validation, s)
	}
}

func checkRange(v *models.FieldValidation, n float64) string {
	if v == nil {
		return ""
	}
	if v.Min != nil && n < *v.Min {
		return fmt.Sprintf("must be at least %s", strconv.FormatFloat(*v.Min, 'f', -1, 64))
	}
	if v.Max != nil && n > *v.Max {
		return fmt.Sprintf("must be at most %s", strconv.FormatFloat(*v.Max, 'f', -1, 64))
	}
	return ""
}

func checkPattern(v *models.FieldValidation, s string) string {
	if v == nil || v.Pattern == "" {
		return ""
	}
	re, err := regexp.Compile(v.Pattern)
	if err != nil {
		// Stored before patterns were checked; treat as unconstrained.
		return ""
	}
	if !re.MatchString(s) {
		return "does not match the required format"
	}
	return ""
}

func toNumber(v any) (float64, bool) {
	switch t := v.(type) {
	case float64:
		return t, true
	case float32:
		return float64(t), true
	case int:
		return float64(t), true
	case int64:
		return float64(t), true
	case string:
		n, err := strconv.ParseFloat(strings.TrimSpace(t), 64)
		return n, err == nil
	}
	return 0, false
}

func toStrings(v any) ([]string, bool) {
	switch t := v.(type) {
	case string:
		return []string{t}, true
	case []string:
		return t, true
	case []any:
		out := make([]string, 0, len(t))
		for _, item := range t {
			s, ok := item.(string)
			if !ok {
				return nil, false
			}
			out = append(out, s)
		}
		return out, true
	}
	return nil, false
}

func contains(options []string, s string) bool {
	for _, o := range options {
		if o == s {
			return true
		}
	}
	return false
}
