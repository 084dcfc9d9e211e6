package block

import (
	"context"
	"errors"
	"strings"

	"github.com/formify/core/internal/models"
	"github.com/formify/core/internal/modules/form/access"
	"github.com/formify/core/internal/modules/form/schema"
	"github.com/formify/core/internal/pkg/apperr"
	"github.com/formify/core/internal/pkg/sanitize"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type Service struct {
	db     *gorm.DB
	logger *zap.Logger
}

type Option func(*Service)

func WithLogger(logger *zap.Logger) Option {
	return func(s *Service) {
		if logger != nil {
			s.logger = logger.Named("BlockService")
		}
	}
}

func NewService(db *gorm.DB, opts ...Option) *Service {
	s := &Service{db: db, logger: zap.NewNop()}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Registry loads every block viewerID may see into a fresh snapshot.
func (s *Service) Registry(ctx context.Context, viewerID string) (*Registry, error) {
	tx := s.db.WithContext(ctx).Model(&models.TemplateBlockModel{})
	if viewerID != "" {
		tx = tx.Where("is_custom = ? OR is_public = ? OR created_by_id = ?", false, true, viewerID)
	} else {
		tx = tx.Where("is_custom = ? OR is_public = ?", false, true)
	}

	var rows []models.TemplateBlockModel
	if err := tx.Order("is_custom ASC").Order("name ASC").Find(&rows).Error; err != nil {
		return nil, err
	}
	return NewRegistry(rows), nil
}

// List returns the visible blocks matching f.
func (s *Service) List(ctx context.Context, f Filter) ([]models.TemplateBlockModel, error) {
	reg, err := s.Registry(ctx, f.ViewerID)
	if err != nil {
		return nil, err
	}
	blocks := reg.List(f)
	if err := s.attachCreators(ctx, blocks); err != nil {
		return nil, err
	}
	return blocks, nil
}

// attachCreators loads a summary of each custom block's owner in one query.
func (s *Service) attachCreators(ctx context.Context, blocks []models.TemplateBlockModel) error {
	seen := make(map[string]struct{})
	ids := make([]string, 0)
	for i := range blocks {
		id := blocks[i].OwnerID()
		if _, ok := seen[id]; id == "" || ok {
			continue
		}
		seen[id] = struct{}{}
		ids = append(ids, id)
	}
	if len(ids) == 0 {
		return nil
	}

	var users []models.UserModel
	if err := s.db.WithContext(ctx).
		Select("id", "name", "email").
		Where("id IN ?", ids).
		Find(&users).Error; err != nil {
		return err
	}
	byID := make(map[string]*models.UserModel, len(users))
	for i := range users {
		byID[users[i].ID] = &users[i]
	}
	for i := range blocks {
		blocks[i].CreatedBy = byID[blocks[i].OwnerID()]
	}
	return nil
}

// ListMine returns the custom blocks owned by ownerID, newest first.
func (s *Service) ListMine(ctx context.Context, ownerID string) ([]models.TemplateBlockModel, error) {
	var rows []models.TemplateBlockModel
	err := s.db.WithContext(ctx).
		Where("created_by_id = ? AND is_custom = ?", ownerID, true).
		Order("created_at DESC").
		Find(&rows).Error
	return rows, err
}

func (s *Service) GetByID(ctx context.Context, id string) (*models.TemplateBlockModel, error) {
	var b models.TemplateBlockModel
	if err := s.db.WithContext(ctx).First(&b, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &b, nil
}

// Get returns a block readable by actorID.
func (s *Service) Get(ctx context.Context, actorID, id string) (*models.TemplateBlockModel, error) {
	b, err := s.find(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := access.Authorize(actorID, access.BlockResource(b), access.Read); err != nil {
		return nil, err
	}
	return b, nil
}

// Create stores a custom block owned by ownerID.
func (s *Service) Create(ctx context.Context, ownerID string, dto *CreateBlockDTO) (*models.TemplateBlockModel, error) {
	name := sanitize.Text(dto.Name)
	category := sanitize.Text(dto.Category)
	fields := schema.NormalizeFields(dto.Fields)
	if err := validateBlock(name, category, fields); err != nil {
		return nil, err
	}

	owner := ownerID
	b := models.TemplateBlockModel{
		Name:        name,
		Description: sanitize.Text(dto.Description),
		Category:    category,
		Fields:      fields,
		IsCustom:    true,
		IsPublic:    dto.IsPublic,
		CreatedByID: &owner,
	}
	if err := s.db.WithContext(ctx).Create(&b).Error; err != nil {
		return nil, err
	}
	s.logger.Info("template block created", zap.String("id", b.ID), zap.String("owner", ownerID))
	return &b, nil
}

// Update applies a partial update. Only the owner of a custom block may do so.
func (s *Service) Update(ctx context.Context, actorID, id string, dto *UpdateBlockDTO) (*models.TemplateBlockModel, error) {
	b, err := s.find(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := access.Authorize(actorID, access.BlockResource(b), access.Update); err != nil {
		return nil, err
	}

	var columns []string
	if dto.Name != nil {
		b.Name = sanitize.Text(*dto.Name)
		columns = append(columns, "name")
	}
	if dto.Description != nil {
		b.Description = sanitize.Text(*dto.Description)
		columns = append(columns, "description")
	}
	if dto.Category != nil {
		b.Category = sanitize.Text(*dto.Category)
		columns = append(columns, "category")
	}
	if dto.Fields != nil {
		b.Fields = schema.NormalizeFields(dto.Fields)
		columns = append(columns, "fields")
	}
	if dto.IsPublic != nil {
		b.IsPublic = *dto.IsPublic
		columns = append(columns, "is_public")
	}
	if len(columns) == 0 {
		return b, nil
	}
	if err := validateBlock(b.Name, b.Category, b.Fields); err != nil {
		return nil, err
	}

	if err := s.db.WithContext(ctx).Model(b).Select(columns).Updates(b).Error; err != nil {
		return nil, err
	}
	return b, nil
}

// Delete soft-deletes a custom block owned by actorID.
func (s *Service) Delete(ctx context.Context, actorID, id string) error {
	b, err := s.find(ctx, id)
	if err != nil {
		return err
	}
	if err := access.Authorize(actorID, access.BlockResource(b), access.Delete); err != nil {
		return err
	}
	if err := s.db.WithContext(ctx).Delete(b).Error; err != nil {
		return err
	}
	s.logger.Info("template block deleted", zap.String("id", b.ID), zap.String("owner", actorID))
	return nil
}

func (s *Service) find(ctx context.Context, id string) (*models.TemplateBlockModel, error) {
	b, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if b == nil {
		return nil, apperr.NotFound("template block")
	}
	return b, nil
}

func validateBlock(name, category string, fields []models.Field) error {
	var issues []apperr.Issue
	if name == "" {
		issues = append(issues, apperr.Issue{Field: "name", Message: "is required"})
	}
	switch {
	case category == "":
		issues = append(issues, apperr.Issue{Field: "category", Message: "is required"})
	case strings.EqualFold(category, CategoryAll):
		issues = append(issues, apperr.Issue{Field: "category", Message: `"All" is reserved for filtering`})
	}
	if len(fields) == 0 {
		issues = append(issues, apperr.Issue{Field: "fields", Message: "at least one field is required"})
	}
	if err := schema.ValidateFields(fields); err != nil {
		var verr *apperr.ValidationError
		if errors.As(err, &verr) {
			issues = append(issues, verr.Issues...)
		}
	}
	return apperr.Invalid(issues...)
}
