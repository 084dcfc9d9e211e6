package block

import (
	"time"

	"github.com/formify/core/internal/models"
)

type CreateBlockDTO struct {
	Name        string         `json:"name"        binding:"required"`
	Description string         `json:"description"`
	Category    string         `json:"category"    binding:"required"`
	Fields      []models.Field `json:"fields"`
	IsPublic    bool           `json:"is_public"`
}

type UpdateBlockDTO struct {
	Name        *string        `json:"name"`
	Description *string        `json:"description"`
	Category    *string        `json:"category"`
	Fields      []models.Field `json:"fields"`
	IsPublic    *bool          `json:"is_public"`
}

type ListQuery struct {
	Category      string `form:"category"`
	IncludeCustom *bool  `form:"include_custom"`
}

type creatorSummary struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email,omitempty"`
}

type blockResponse struct {
	ID          string          `json:"id"`
	Name        string          `json:"name"`
	Description string          `json:"description,omitempty"`
	Category    string          `json:"category"`
	Fields      []models.Field  `json:"fields"`
	IsCustom    bool            `json:"is_custom"`
	IsPublic    bool            `json:"is_public"`
	CreatedByID *string         `json:"created_by_id,omitempty"`
	CreatedBy   *creatorSummary `json:"created_by,omitempty"`
	Created     time.Time       `json:"created"`
	Modified    time.Time       `json:"modified"`
}

func toResponse(b *models.TemplateBlockModel) blockResponse {
	fields := b.Fields
	if fields == nil {
		fields = []models.Field{}
	}
	out := blockResponse{
		ID:          b.ID,
		Name:        b.Name,
		Description: b.Description,
		Category:    b.Category,
		Fields:      fields,
		IsCustom:    b.IsCustom,
		IsPublic:    b.IsPublic,
		CreatedByID: b.CreatedByID,
		Created:     b.CreatedAt,
		Modified:    b.UpdatedAt,
	}
	if u := b.CreatedBy; u != nil {
		out.CreatedBy = &creatorSummary{ID: u.ID, Name: u.Name, Email: u.Email}
	}
	return out
}

func toResponses(blocks []models.TemplateBlockModel) []blockResponse {
	out := make([]blockResponse, len(blocks))
	for i := range blocks {
		out[i] = toResponse(&blocks[i])
	}
	return out
}
