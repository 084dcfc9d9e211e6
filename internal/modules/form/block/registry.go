package block

import (
	"sort"
	"strings"

	"github.com/formify/core/internal/models"
)

// CategoryAll matches every category when used as a filter.
const CategoryAll = "All"

// Filter narrows a registry listing.
type Filter struct {
	Category      string
	IncludeCustom bool
	ViewerID      string
}

// Registry is an immutable snapshot of template blocks indexed by id.
// Build one per request; it is safe for concurrent reads.
type Registry struct {
	blocks []models.TemplateBlockModel
	byID   map[string]int
}

// NewRegistry keeps the input order. On duplicate ids the first entry wins.
func NewRegistry(blocks []models.TemplateBlockModel) *Registry {
	r := &Registry{
		blocks: make([]models.TemplateBlockModel, len(blocks)),
		byID:   make(map[string]int, len(blocks)),
	}
	copy(r.blocks, blocks)
	for i := range r.blocks {
		if _, ok := r.byID[r.blocks[i].ID]; !ok {
			r.byID[r.blocks[i].ID] = i
		}
	}
	return r
}

// Lookup returns the block with the given id.
func (r *Registry) Lookup(id string) (models.TemplateBlockModel, bool) {
	i, ok := r.byID[id]
	if !ok {
		return models.TemplateBlockModel{}, false
	}
	return r.blocks[i], true
}

// List returns the blocks visible to f.ViewerID that match f, predefined
// blocks first and then by name ignoring case.
func (r *Registry) List(f Filter) []models.TemplateBlockModel {
	out := make([]models.TemplateBlockModel, 0, len(r.blocks))
	for _, b := range r.blocks {
		if !matchesCategory(b.Category, f.Category) {
			continue
		}
		if b.IsCustom && (!f.IncludeCustom || !Visible(&b, f.ViewerID)) {
			continue
		}
		out = append(out, b)
	}
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].IsCustom != out[j].IsCustom {
			return !out[i].IsCustom
		}
		return lessFold(out[i].Name, out[j].Name)
	})
	return out
}

// Visible reports whether viewerID may see b: predefined, owned or public.
func Visible(b *models.TemplateBlockModel, viewerID string) bool {
	if !b.IsCustom || b.IsPublic {
		return true
	}
	return viewerID != "" && b.OwnerID() == viewerID
}

// lessFold orders names case-insensitively, falling back to byte order so
// the result is deterministic for names differing only in case.
func lessFold(a, b string) bool {
	la, lb := strings.ToLower(a), strings.ToLower(b)
	if la != lb {
		return la < lb
	}
	return a < b
}

func matchesCategory(category, filter string) bool {
	return filter == "" || filter == CategoryAll || category == filter
}
