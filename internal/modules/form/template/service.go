package template

import (
	"context"

	"github.com/formify/core/internal/models"
	"github.com/formify/core/internal/modules/form/block"
	"github.com/formify/core/internal/pkg/apperr"
	"github.com/formify/core/internal/pkg/metrics"
	"go.uber.org/zap"
)

// RegistryLoader builds the block snapshot visible to a viewer.
type RegistryLoader interface {
	Registry(ctx context.Context, viewerID string) (*block.Registry, error)
}

// Detail is a template expanded against the viewer's blocks.
type Detail struct {
	FormTemplate
	Fields        []models.Field     `json:"fields"`
	FormFields    []models.FormField `json:"form_fields"`
	MissingBlocks []string           `json:"missing_blocks"`
}

type Service struct {
	blocks RegistryLoader
	logger *zap.Logger
}

type Option func(*Service)

func WithLogger(logger *zap.Logger) Option {
	return func(s *Service) {
		if logger != nil {
			s.logger = logger.Named("TemplateService")
		}
	}
}

func NewService(blocks RegistryLoader, opts ...Option) *Service {
	s := &Service{blocks: blocks, logger: zap.NewNop()}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Detail resolves template id for viewerID.
func (s *Service) Detail(ctx context.Context, viewerID, id string) (*Detail, error) {
	tpl, ok := Find(id)
	if !ok {
		return nil, apperr.NotFound("template")
	}
	reg, err := s.blocks.Registry(ctx, viewerID)
	if err != nil {
		return nil, err
	}

	res := ResolveFields(tpl, reg)
	formFields, missing := Compose(tpl, reg)
	s.reportMissing(tpl.ID, missing)

	if missing == nil {
		missing = []string{}
	}
	return &Detail{
		FormTemplate:  tpl,
		Fields:        res.Fields,
		FormFields:    formFields,
		MissingBlocks: missing,
	}, nil
}

// ComposeFields returns the tagged form fields for template id and the block
// ids it could not resolve for viewerID.
func (s *Service) ComposeFields(ctx context.Context, viewerID, id string) (FormTemplate, []models.FormField, []string, error) {
	tpl, ok := Find(id)
	if !ok {
		return FormTemplate{}, nil, nil, apperr.NotFound("template")
	}
	reg, err := s.blocks.Registry(ctx, viewerID)
	if err != nil {
		return FormTemplate{}, nil, nil, err
	}
	fields, missing := Compose(tpl, reg)
	s.reportMissing(tpl.ID, missing)
	return tpl, fields, missing, nil
}

func (s *Service) reportMissing(templateID string, missing []string) {
	if len(missing) == 0 {
		return
	}
	s.logger.Warn("template references unknown blocks",
		zap.String("template", templateID),
		zap.Strings("missing", missing),
	)
	metrics.RecordMissingBlocks(templateID, len(missing))
}
