package models

import "strings"

// FieldType is the closed set of input kinds a field can render as.
type FieldType string

const (
	FieldText     FieldType = "text"
	FieldEmail    FieldType = "email"
	FieldNumber   FieldType = "number"
	FieldTextarea FieldType = "textarea"
	FieldSelect   FieldType = "select"
	FieldRadio    FieldType = "radio"
	FieldCheckbox FieldType = "checkbox"
	FieldDate     FieldType = "date"
)

// FieldTypes lists every supported field type in display order.
var FieldTypes = []FieldType{
	FieldText, FieldEmail, FieldNumber, FieldTextarea,
	FieldSelect, FieldRadio, FieldCheckbox, FieldDate,
}

func (t FieldType) Valid() bool {
	for _, ft := range FieldTypes {
		if t == ft {
			return true
		}
	}
	return false
}

// IsChoice reports whether the type picks from a fixed options list.
func (t FieldType) IsChoice() bool {
	switch t {
	case FieldSelect, FieldRadio, FieldCheckbox:
		return true
	}
	return false
}

// FieldValidation carries optional constraints on a submitted value.
type FieldValidation struct {
	Min     *float64 `json:"min,omitempty"`
	Max     *float64 `json:"max,omitempty"`
	Pattern string   `json:"pattern,omitempty"`
	Message string   `json:"message,omitempty"`
}

// Field is one input element of a block, template or form.
type Field struct {
	ID          string           `json:"id"`
	Type        FieldType        `json:"type"`
	Label       string           `json:"label"`
	Placeholder string           `json:"placeholder,omitempty"`
	Required    bool             `json:"required"`
	Options     []string         `json:"options,omitempty"`
	Validation  *FieldValidation `json:"validation,omitempty"`
}

// Normalize returns a trimmed copy. Options survive only on choice types.
func (f Field) Normalize() Field {
	out := f
	out.ID = strings.TrimSpace(f.ID)
	out.Type = FieldType(strings.ToLower(strings.TrimSpace(string(f.Type))))
	out.Label = strings.TrimSpace(f.Label)
	out.Placeholder = strings.TrimSpace(f.Placeholder)
	out.Options = nil
	if out.Type.IsChoice() {
		for _, opt := range f.Options {
			if v := strings.TrimSpace(opt); v != "" {
				out.Options = append(out.Options, v)
			}
		}
	}
	if f.Validation != nil {
		v := *f.Validation
		v.Pattern = strings.TrimSpace(v.Pattern)
		v.Message = strings.TrimSpace(v.Message)
		if v.Min == nil && v.Max == nil && v.Pattern == "" && v.Message == "" {
			out.Validation = nil
		} else {
			out.Validation = &v
		}
	}
	return out
}

// FormField is a Field as persisted on a form, tagged with the block it came from.
type FormField struct {
	Field
	TemplateBlockID       string `json:"template_block_id,omitempty"`
	TemplateBlockName     string `json:"template_block_name,omitempty"`
	TemplateBlockCategory string `json:"template_block_category,omitempty"`
}
