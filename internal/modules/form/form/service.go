package form

import (
	"context"
	"errors"
	"strings"

	"github.com/formify/core/internal/models"
	"github.com/formify/core/internal/modules/form/access"
	"github.com/formify/core/internal/modules/form/schema"
	"github.com/formify/core/internal/modules/form/template"
	"github.com/formify/core/internal/pkg/apperr"
	"github.com/formify/core/internal/pkg/metrics"
	"github.com/formify/core/internal/pkg/pagination"
	"github.com/formify/core/internal/pkg/sanitize"
	"go.uber.org/zap"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// FieldComposer expands a built-in template into tagged form fields.
type FieldComposer interface {
	ComposeFields(ctx context.Context, viewerID, templateID string) (template.FormTemplate, []models.FormField, []string, error)
}

type Service struct {
	db        *gorm.DB
	templates FieldComposer
	logger    *zap.Logger
}

type Option func(*Service)

func WithLogger(logger *zap.Logger) Option {
	return func(s *Service) {
		if logger != nil {
			s.logger = logger.Named("FormService")
		}
	}
}

func WithTemplates(templates FieldComposer) Option {
	return func(s *Service) { s.templates = templates }
}

func NewService(db *gorm.DB, opts ...Option) *Service {
	s := &Service{db: db, logger: zap.NewNop()}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *Service) GetByID(ctx context.Context, id string) (*models.FormModel, error) {
	var f models.FormModel
	if err := s.db.WithContext(ctx).First(&f, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &f, nil
}

// Create stores a new form owned by ownerID.
func (s *Service) Create(ctx context.Context, ownerID string, dto *CreateFormDTO) (*models.FormModel, error) {
	f := models.FormModel{
		Title:       sanitize.Text(dto.Title),
		Description: sanitize.Text(dto.Description),
		Fields:      schema.NormalizeFormFields(dto.Fields),
		IsPublic:    dto.IsPublic,
		IsActive:    true,
		CreatedByID: ownerID,
	}
	if dto.IsActive != nil {
		f.IsActive = *dto.IsActive
	}
	if err := validateForm(f.Title, f.Fields); err != nil {
		return nil, err
	}
	if err := s.insert(ctx, &f); err != nil {
		return nil, err
	}
	return &f, nil
}

// CreateFromTemplate builds a form from a built-in template. Block references
// the owner cannot resolve are skipped and returned.
func (s *Service) CreateFromTemplate(ctx context.Context, ownerID string, dto *CreateFromTemplateDTO) (*models.FormModel, []string, error) {
	if s.templates == nil {
		return nil, nil, errors.New("form service: no template composer configured")
	}
	tpl, fields, missing, err := s.templates.ComposeFields(ctx, ownerID, strings.TrimSpace(dto.TemplateID))
	if err != nil {
		return nil, nil, err
	}

	title := sanitize.Text(dto.Title)
	if title == "" {
		title = tpl.Name
	}
	description := sanitize.Text(dto.Description)
	if description == "" {
		description = tpl.Description
	}

	f := models.FormModel{
		Title:       title,
		Description: description,
		Fields:      fields,
		IsPublic:    dto.IsPublic,
		IsActive:    true,
		CreatedByID: ownerID,
	}
	if err := validateForm(f.Title, f.Fields); err != nil {
		return nil, nil, err
	}
	if err := s.insert(ctx, &f); err != nil {
		return nil, nil, err
	}
	return &f, missing, nil
}

// is_active defaults to true in the schema, so a false value has to be
// written explicitly after the insert omits it.
func (s *Service) insert(ctx context.Context, f *models.FormModel) error {
	active := f.IsActive
	if err := s.db.WithContext(ctx).Create(f).Error; err != nil {
		return err
	}
	if !active {
		if err := s.db.WithContext(ctx).Model(f).Update("is_active", false).Error; err != nil {
			return err
		}
		f.IsActive = false
	}
	s.logger.Info("form created", zap.String("id", f.ID), zap.String("owner", f.CreatedByID))
	return nil
}

// ListMine pages through ownerID's forms, newest first, with response counts.
func (s *Service) ListMine(ctx context.Context, ownerID string, q pagination.Query) ([]FormSummary, string, error) {
	tx := s.db.WithContext(ctx).Model(&models.FormModel{}).Where("created_by_id = ?", ownerID)

	var rows []models.FormModel
	next, err := pagination.Paginate(tx, models.FormModel{}.TableName(), q, &rows, func(f *models.FormModel) string { return f.ID })
	if err != nil {
		return nil, "", err
	}

	items := make([]FormSummary, len(rows))
	if len(rows) == 0 {
		return items, next, nil
	}
	ids := make([]string, len(rows))
	for i := range rows {
		ids[i] = rows[i].ID
		items[i].FormModel = rows[i]
	}

	var counts []struct {
		FormID string
		Count  int64
	}
	err = s.db.WithContext(ctx).Model(&models.FormResponseModel{}).
		Select("form_id, COUNT(*) AS count").
		Where("form_id IN ?", ids).
		Group("form_id").
		Scan(&counts).Error
	if err != nil {
		return nil, "", err
	}
	byForm := make(map[string]int64, len(counts))
	for _, c := range counts {
		byForm[c.FormID] = c.Count
	}
	for i := range items {
		items[i].ResponseCount = byForm[items[i].ID]
	}
	return items, next, nil
}

// Get returns a form readable by actorID.
func (s *Service) Get(ctx context.Context, actorID, id string) (*models.FormModel, error) {
	f, err := s.find(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := access.Authorize(actorID, access.FormResource(f), access.Read); err != nil {
		return nil, err
	}
	return f, nil
}

// Update applies a partial update on behalf of the owner.
func (s *Service) Update(ctx context.Context, actorID, id string, dto *UpdateFormDTO) (*models.FormModel, error) {
	f, err := s.find(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := access.Authorize(actorID, access.FormResource(f), access.Update); err != nil {
		return nil, err
	}

	var columns []string
	if dto.Title != nil {
		f.Title = sanitize.Text(*dto.Title)
		columns = append(columns, "title")
	}
	if dto.Description != nil {
		f.Description = sanitize.Text(*dto.Description)
		columns = append(columns, "description")
	}
	if dto.Fields != nil {
		f.Fields = schema.NormalizeFormFields(dto.Fields)
		columns = append(columns, "fields")
	}
	if dto.IsPublic != nil {
		f.IsPublic = *dto.IsPublic
		columns = append(columns, "is_public")
	}
	if dto.IsActive != nil {
		f.IsActive = *dto.IsActive
		columns = append(columns, "is_active")
	}
	if len(columns) == 0 {
		return f, nil
	}
	if err := validateForm(f.Title, f.Fields); err != nil {
		return nil, err
	}

	if err := s.db.WithContext(ctx).Model(f).Select(columns).Updates(f).Error; err != nil {
		return nil, err
	}
	return f, nil
}

// Delete removes a form and its responses in one transaction.
func (s *Service) Delete(ctx context.Context, actorID, id string) error {
	f, err := s.find(ctx, id)
	if err != nil {
		return err
	}
	if err := access.Authorize(actorID, access.FormResource(f), access.Delete); err != nil {
		return err
	}

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("form_id = ?", f.ID).Delete(&models.FormResponseModel{}).Error; err != nil {
			return err
		}
		return tx.Delete(f).Error
	})
	if err != nil {
		return err
	}
	s.logger.Info("form deleted", zap.String("id", f.ID), zap.String("owner", actorID))
	return nil
}

// SubmitResponse records a submission. Inactive forms are treated as missing;
// private forms need an authenticated respondent.
func (s *Service) SubmitResponse(ctx context.Context, actorID, formID string, data map[string]interface{}) (*models.FormResponseModel, error) {
	f, err := s.GetByID(ctx, formID)
	if err != nil {
		return nil, err
	}
	if f == nil || !f.IsActive {
		return nil, apperr.NotFound("form")
	}
	if !f.IsPublic && actorID == "" {
		return nil, apperr.ErrUnauthenticated
	}
	if err := apperr.Invalid(schema.ValidateSubmission(f.Fields, data)...); err != nil {
		return nil, err
	}

	r := models.FormResponseModel{FormID: f.ID, Data: datatypes.JSONMap(data)}
	if actorID != "" {
		respondent := actorID
		r.RespondentID = &respondent
	}
	if err := s.db.WithContext(ctx).Create(&r).Error; err != nil {
		return nil, err
	}
	metrics.RecordResponseSubmitted(actorID != "")
	return &r, nil
}

// ListResponses pages through a form's responses for its owner, newest first.
func (s *Service) ListResponses(ctx context.Context, actorID, formID string, q pagination.Query) ([]models.FormResponseModel, string, error) {
	f, err := s.find(ctx, formID)
	if err != nil {
		return nil, "", err
	}
	if err := access.Authorize(actorID, access.FormResource(f), access.Manage); err != nil {
		return nil, "", err
	}

	tx := s.db.WithContext(ctx).Model(&models.FormResponseModel{}).
		Where("form_id = ?", f.ID).
		Preload("Respondent", func(db *gorm.DB) *gorm.DB {
			return db.Select("id", "username", "name", "email")
		})

	var rows []models.FormResponseModel
	next, err := pagination.Paginate(tx, models.FormResponseModel{}.TableName(), q, &rows, func(r *models.FormResponseModel) string { return r.ID })
	if err != nil {
		return nil, "", err
	}
	return rows, next, nil
}

func (s *Service) find(ctx context.Context, id string) (*models.FormModel, error) {
	f, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if f == nil {
		return nil, apperr.NotFound("form")
	}
	return f, nil
}

func validateForm(title string, fields []models.FormField) error {
	var issues []apperr.Issue
	if title == "" {
		issues = append(issues, apperr.Issue{Field: "title", Message: "is required"})
	}
	if err := schema.ValidateFormFields(fields); err != nil {
		var verr *apperr.ValidationError
		if errors.As(err, &verr) {
			issues = append(issues, verr.Issues...)
		}
	}
	return apperr.Invalid(issues...)
}
