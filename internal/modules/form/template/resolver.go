package template

import "github.com/formify/core/internal/models"

// Synthetic block that carries a template's extra fields once composed into a form.
const (
	AdditionalBlockID       = "additional-fields"
	AdditionalBlockName     = "Additional Fields"
	AdditionalBlockCategory = "Custom"
)

// BlockLookup resolves block ids. *block.Registry satisfies it.
type BlockLookup interface {
	Lookup(id string) (models.TemplateBlockModel, bool)
}

// Resolution is the flat field list of a template plus the block ids it
// referenced that could not be found.
type Resolution struct {
	Fields  []models.Field `json:"fields"`
	Missing []string       `json:"missing_blocks,omitempty"`
}

// ResolveFields concatenates the fields of each referenced block in order,
// then the template's additional fields. Unknown blocks are skipped and
// reported in Missing.
func ResolveFields(tpl FormTemplate, lookup BlockLookup) Resolution {
	res := Resolution{Fields: make([]models.Field, 0, len(tpl.AdditionalFields))}
	for _, id := range tpl.BlockIDs {
		b, ok := lookup.Lookup(id)
		if !ok {
			res.Missing = append(res.Missing, id)
			continue
		}
		res.Fields = append(res.Fields, b.Fields...)
	}
	res.Fields = append(res.Fields, tpl.AdditionalFields...)
	return res
}

// Compose is ResolveFields with each field re-tagged for storage on a form:
// its id becomes "<blockID>-<fieldID>" and it records the source block.
func Compose(tpl FormTemplate, lookup BlockLookup) ([]models.FormField, []string) {
	var (
		out     []models.FormField
		missing []string
	)
	for _, id := range tpl.BlockIDs {
		b, ok := lookup.Lookup(id)
		if !ok {
			missing = append(missing, id)
			continue
		}
		out = append(out, Tag(b.ID, b.Name, b.Category, b.Fields)...)
	}
	out = append(out, Tag(AdditionalBlockID, AdditionalBlockName, AdditionalBlockCategory, tpl.AdditionalFields)...)
	if out == nil {
		out = []models.FormField{}
	}
	return out, missing
}

// Tag converts fields of one block into form fields with composite ids.
func Tag(blockID, blockName, blockCategory string, fields []models.Field) []models.FormField {
	out := make([]models.FormField, len(fields))
	for i, f := range fields {
		f.ID = blockID + "-" + f.ID
		out[i] = models.FormField{
			Field:                 f,
			TemplateBlockID:       blockID,
			TemplateBlockName:     blockName,
			TemplateBlockCategory: blockCategory,
		}
	}
	return out
}
