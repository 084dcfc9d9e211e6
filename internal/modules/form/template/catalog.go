// Package template holds the built-in form templates and expands them into field lists.
package template

import "github.com/formify/core/internal/models"

// CategoryAll matches every template category when used as a filter.
const CategoryAll = "All"

// Categories lists the template categories offered to clients.
var Categories = []string{CategoryAll, "Business", "Events", "HR", "Feedback", "Research", "Health", "Financial"}

// FormTemplate is a starting point for a form: block references followed by
// template-specific fields.
type FormTemplate struct {
	ID               string         `json:"id"`
	Name             string         `json:"name"`
	Description      string         `json:"description"`
	Category         string         `json:"category"`
	BlockIDs         []string       `json:"block_ids"`
	AdditionalFields []models.Field `json:"additional_fields"`
}

// Catalog returns a fresh copy of the built-in templates.
func Catalog() []FormTemplate {
	return []FormTemplate{
		{
			ID:          "contact-form",
			Name:        "Contact Form",
			Description: "Basic contact form for customer inquiries",
			Category:    "Business",
			BlockIDs:    []string{"id-short"},
			AdditionalFields: []models.Field{
				{ID: "subject", Type: models.FieldText, Label: "Subject", Placeholder: "What is this regarding?", Required: true},
				{ID: "message", Type: models.FieldTextarea, Label: "Message", Placeholder: "Please describe your inquiry...", Required: true},
			},
		},
		{
			ID:          "event-registration",
			Name:        "Event Registration",
			Description: "Registration form for events and workshops",
			Category:    "Events",
			BlockIDs:    []string{"id-short"},
			AdditionalFields: []models.Field{
				{ID: "eventDate", Type: models.FieldSelect, Label: "Preferred Event Date", Required: true, Options: []string{"March 15, 2025", "March 22, 2025", "March 29, 2025"}},
				{ID: "dietaryRestrictions", Type: models.FieldCheckbox, Label: "Dietary Restrictions", Options: []string{"Vegetarian", "Vegan", "Gluten-free", "Dairy-free", "None"}},
			},
		},
		{
			ID:          "job-application",
			Name:        "Job Application",
			Description: "Complete job application form with file upload",
			Category:    "HR",
			BlockIDs:    []string{"id-short", "education"},
			AdditionalFields: []models.Field{
				{ID: "position", Type: models.FieldSelect, Label: "Position Applied For", Required: true, Options: []string{"Software Engineer", "Product Manager", "Designer", "Data Scientist", "Marketing Manager"}},
				{ID: "experience", Type: models.FieldSelect, Label: "Years of Experience", Required: true, Options: []string{"0-1 years", "2-3 years", "4-5 years", "6-10 years", "10+ years"}},
				{ID: "availability", Type: models.FieldRadio, Label: "Availability", Required: true, Options: []string{"Immediately", "Within 2 weeks", "Within 1 month", "More than 1 month"}},
				{ID: "coverLetter", Type: models.FieldTextarea, Label: "Cover Letter", Placeholder: "Tell us why you are interested in this position..."},
			},
		},
		{
			ID:          "customer-feedback",
			Name:        "Customer Feedback",
			Description: "Collect customer feedback and satisfaction ratings",
			Category:    "Feedback",
			BlockIDs:    []string{},
			AdditionalFields: []models.Field{
				{ID: "customerName", Type: models.FieldText, Label: "Your Name"},
				{ID: "email", Type: models.FieldEmail, Label: "Email (optional)"},
				{ID: "rating", Type: models.FieldRadio, Label: "Overall Satisfaction", Required: true, Options: []string{"Very Satisfied", "Satisfied", "Neutral", "Dissatisfied", "Very Dissatisfied"}},
				{ID: "recommend", Type: models.FieldRadio, Label: "Would you recommend us to others?", Required: true, Options: []string{"Definitely", "Probably", "Not sure", "Probably not", "Definitely not"}},
				{ID: "improvements", Type: models.FieldCheckbox, Label: "What could we improve?", Options: []string{"Customer Service", "Product Quality", "Pricing", "Website Experience", "Delivery Speed"}},
				{ID: "comments", Type: models.FieldTextarea, Label: "Additional Comments", Placeholder: "Please share any additional feedback..."},
			},
		},
		{
			ID:          "survey-basic",
			Name:        "Basic Survey",
			Description: "Simple survey template for research and data collection",
			Category:    "Research",
			BlockIDs:    []string{},
			AdditionalFields: []models.Field{
				{ID: "age", Type: models.FieldSelect, Label: "Age Group", Required: true, Options: []string{"18-24", "25-34", "35-44", "45-54", "55-64", "65+"}},
				{ID: "gender", Type: models.FieldRadio, Label: "Gender", Options: []string{"Male", "Female", "Non-binary", "Prefer not to say"}},
				{ID: "location", Type: models.FieldText, Label: "Location (City, State)"},
				{ID: "interests", Type: models.FieldCheckbox, Label: "What are your interests?", Options: []string{"Technology", "Sports", "Arts", "Travel", "Food", "Music", "Reading", "Gaming"}},
				{ID: "feedback", Type: models.FieldTextarea, Label: "Additional Thoughts", Placeholder: "Share any additional thoughts or suggestions..."},
			},
		},
		{
			ID:          "medical-consultation",
			Name:        "Medical Consultation",
			Description: "Medical consultation form with patient information",
			Category:    "Health",
			BlockIDs:    []string{"id-long", "medical"},
			AdditionalFields: []models.Field{
				{ID: "emergencyContact", Type: models.FieldText, Label: "Emergency Contact", Placeholder: "Emergency contact name and phone", Required: true},
				{ID: "reason", Type: models.FieldTextarea, Label: "Reason for Visit", Placeholder: "Describe the reason for your visit...", Required: true},
			},
		},
		{
			ID:          "financial-assessment",
			Name:        "Financial Assessment",
			Description: "Comprehensive financial assessment form",
			Category:    "Financial",
			BlockIDs:    []string{"id-short", "financial", "monthly-living-expenses"},
			AdditionalFields: []models.Field{
				{ID: "goals", Type: models.FieldTextarea, Label: "Financial Goals", Placeholder: "Describe your financial goals..."},
			},
		},
	}
}

// Find returns the built-in template with the given id.
func Find(id string) (FormTemplate, bool) {
	for _, t := range Catalog() {
		if t.ID == id {
			return t, true
		}
	}
	return FormTemplate{}, false
}

// List returns templates in catalog order; "" and CategoryAll match every template.
func List(category string) []FormTemplate {
	all := Catalog()
	if category == "" || category == CategoryAll {
		return all
	}
	out := make([]FormTemplate, 0, len(all))
	for _, t := range all {
		if t.Category == category {
			out = append(out, t)
		}
	}
	return out
}
