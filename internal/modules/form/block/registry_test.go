package block

import (
	"testing"

	"github.com/formify/core/internal/models"
	"github.com/stretchr/testify/assert"
)

func custom(id, name, category, owner string, public bool) models.TemplateBlockModel {
	return models.TemplateBlockModel{
		Base:        models.Base{ID: id},
		Name:        name,
		Category:    category,
		IsCustom:    true,
		IsPublic:    public,
		CreatedByID: &owner,
	}
}

func ids(blocks []models.TemplateBlockModel) []string {
	out := make([]string, len(blocks))
	for i, b := range blocks {
		out[i] = b.ID
	}
	return out
}

func fixtureRegistry() *Registry {
	blocks := append([]models.TemplateBlockModel{
		custom("c-zeta", "Zeta", "Identity", "alice", false),
		custom("c-alpha", "Alpha", "Identity", "bob", true),
		custom("c-beta", "Beta", "Health", "bob", false),
	}, Predefined()...)
	return NewRegistry(blocks)
}

func TestLookup(t *testing.T) {
	r := fixtureRegistry()

	b, ok := r.Lookup("id-short")
	assert.True(t, ok)
	assert.Equal(t, "ID Short", b.Name)

	_, ok = r.Lookup("does-not-exist")
	assert.False(t, ok)
}

func TestListOrdersPredefinedFirstThenByName(t *testing.T) {
	got := fixtureRegistry().List(Filter{IncludeCustom: true, ViewerID: "alice"})

	assert.Equal(t, []string{
		"class-notes", "education", "financial", "id-long", "id-short",
		"medical", "monthly-living-expenses", "social-media",
		"c-alpha", "c-zeta",
	}, ids(got))
}

func TestListWithoutCustomNeverReturnsCustom(t *testing.T) {
	for _, viewer := range []string{"", "alice", "bob"} {
		for _, b := range fixtureRegistry().List(Filter{IncludeCustom: false, ViewerID: viewer}) {
			assert.False(t, b.IsCustom, "viewer %q got custom block %s", viewer, b.ID)
		}
	}
}

func TestListCategoryFilter(t *testing.T) {
	r := fixtureRegistry()

	identity := r.List(Filter{Category: "Identity", IncludeCustom: true, ViewerID: "bob"})
	assert.Equal(t, []string{"id-long", "id-short", "c-alpha"}, ids(identity))

	all := r.List(Filter{Category: CategoryAll, IncludeCustom: true, ViewerID: "bob"})
	none := r.List(Filter{IncludeCustom: true, ViewerID: "bob"})
	assert.Equal(t, ids(none), ids(all))
	assert.Len(t, all, 8+2)
}

func TestListVisibility(t *testing.T) {
	r := fixtureRegistry()

	anon := r.List(Filter{IncludeCustom: true})
	assert.Contains(t, ids(anon), "c-alpha")
	assert.NotContains(t, ids(anon), "c-zeta")
	assert.NotContains(t, ids(anon), "c-beta")

	bob := r.List(Filter{IncludeCustom: true, ViewerID: "bob"})
	assert.Contains(t, ids(bob), "c-beta")
	assert.NotContains(t, ids(bob), "c-zeta")
}

func TestNewRegistryCopiesInput(t *testing.T) {
	blocks := []models.TemplateBlockModel{{Base: models.Base{ID: "a"}, Name: "A"}}
	r := NewRegistry(blocks)
	blocks[0].Name = "mutated"

	b, _ := r.Lookup("a")
	assert.Equal(t, "A", b.Name)
}

func TestListOrdersNamesIgnoringCase(t *testing.T) {
	r := NewRegistry([]models.TemplateBlockModel{
		custom("c-1", "Zebra", "Misc", "alice", false),
		custom("c-2", "apple", "Misc", "alice", false),
		custom("c-3", "Mango", "Misc", "alice", false),
	})

	got := r.List(Filter{IncludeCustom: true, ViewerID: "alice"})
	assert.Equal(t, []string{"c-2", "c-3", "c-1"}, ids(got))
}
