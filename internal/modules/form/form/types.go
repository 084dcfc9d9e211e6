package form

import (
	"time"

	"github.com/formify/core/internal/models"
)

type CreateFormDTO struct {
	Title       string             `json:"title"       binding:"required"`
	Description string             `json:"description"`
	Fields      []models.FormField `json:"fields"`
	IsPublic    bool               `json:"is_public"`
	IsActive    *bool              `json:"is_active"`
}

type CreateFromTemplateDTO struct {
	TemplateID  string `json:"template_id" binding:"required"`
	Title       string `json:"title"`
	Description string `json:"description"`
	IsPublic    bool   `json:"is_public"`
}

type UpdateFormDTO struct {
	Title       *string            `json:"title"`
	Description *string            `json:"description"`
	Fields      []models.FormField `json:"fields"`
	IsPublic    *bool              `json:"is_public"`
	IsActive    *bool              `json:"is_active"`
}

type SubmitResponseDTO struct {
	Data map[string]interface{} `json:"data" binding:"required"`
}

type formResponse struct {
	ID            string             `json:"id"`
	Title         string             `json:"title"`
	Description   string             `json:"description,omitempty"`
	Fields        []models.FormField `json:"fields"`
	IsPublic      bool               `json:"is_public"`
	IsActive      bool               `json:"is_active"`
	CreatedByID   string             `json:"created_by_id"`
	ResponseCount *int64             `json:"response_count,omitempty"`
	MissingBlocks []string           `json:"missing_blocks,omitempty"`
	Created       time.Time          `json:"created"`
	Modified      time.Time          `json:"modified"`
}

// FormSummary is a listed form with its number of responses.
type FormSummary struct {
	models.FormModel
	ResponseCount int64
}

type respondentSummary struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email,omitempty"`
}

type submissionResponse struct {
	ID         string                 `json:"id"`
	FormID     string                 `json:"form_id"`
	Data       map[string]interface{} `json:"data"`
	Respondent *respondentSummary     `json:"respondent,omitempty"`
	Created    time.Time              `json:"created"`
}

func toResponse(f *models.FormModel) formResponse {
	fields := f.Fields
	if fields == nil {
		fields = []models.FormField{}
	}
	return formResponse{
		ID:          f.ID,
		Title:       f.Title,
		Description: f.Description,
		Fields:      fields,
		IsPublic:    f.IsPublic,
		IsActive:    f.IsActive,
		CreatedByID: f.CreatedByID,
		Created:     f.CreatedAt,
		Modified:    f.UpdatedAt,
	}
}

func toSummaryResponses(items []FormSummary) []formResponse {
	out := make([]formResponse, len(items))
	for i := range items {
		out[i] = toResponse(&items[i].FormModel)
		count := items[i].ResponseCount
		out[i].ResponseCount = &count
	}
	return out
}

func toSubmission(r *models.FormResponseModel) submissionResponse {
	out := submissionResponse{
		ID:      r.ID,
		FormID:  r.FormID,
		Data:    r.Data,
		Created: r.CreatedAt,
	}
	if out.Data == nil {
		out.Data = map[string]interface{}{}
	}
	if r.Respondent != nil {
		name := r.Respondent.Name
		if name == "" {
			name = r.Respondent.Username
		}
		out.Respondent = &respondentSummary{ID: r.Respondent.ID, Name: name, Email: r.Respondent.Email}
	} else if r.RespondentID != nil {
		out.Respondent = &respondentSummary{ID: *r.RespondentID}
	}
	return out
}

func toSubmissions(rows []models.FormResponseModel) []submissionResponse {
	out := make([]submissionResponse, len(rows))
	for i := range rows {
		out[i] = toSubmission(&rows[i])
	}
	return out
}
