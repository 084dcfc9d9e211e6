package template

import (
	"testing"

	"github.com/formify/core/internal/models"
	"github.com/formify/core/internal/modules/form/block"
	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fieldIDs(fields []models.Field) []string {
	out := make([]string, len(fields))
	for i, f := range fields {
		out[i] = f.ID
	}
	return out
}

func predefinedRegistry() *block.Registry {
	return block.NewRegistry(block.Predefined())
}

func TestResolveFieldsContactExample(t *testing.T) {
	tpl := FormTemplate{
		ID:       "contact",
		BlockIDs: []string{"id-short"},
		AdditionalFields: []models.Field{
			{ID: "subject", Type: models.FieldText, Label: "Subject", Required: true},
		},
	}

	res := ResolveFields(tpl, predefinedRegistry())
	assert.Equal(t, []string{"name", "phone", "email", "subject"}, fieldIDs(res.Fields))
	assert.Empty(t, res.Missing)
}

func TestResolveFieldsIsBlockConcatenationThenExtras(t *testing.T) {
	reg := predefinedRegistry()
	for _, tpl := range Catalog() {
		t.Run(tpl.ID, func(t *testing.T) {
			var want []models.Field
			for _, id := range tpl.BlockIDs {
				b, ok := reg.Lookup(id)
				require.True(t, ok, "catalog references unknown block %s", id)
				want = append(want, b.Fields...)
			}
			want = append(want, tpl.AdditionalFields...)

			got := ResolveFields(tpl, reg)
			if diff := cmp.Diff(want, got.Fields); diff != "" {
				t.Fatalf("resolved fields mismatch (-want +got):\n%s", diff)
			}
			assert.Empty(t, got.Missing)
		})
	}
}

func TestResolveFieldsIsIdempotent(t *testing.T) {
	reg := predefinedRegistry()
	tpl, ok := Find("financial-assessment")
	require.True(t, ok)

	first := ResolveFields(tpl, reg)
	second := ResolveFields(tpl, reg)
	if diff := cmp.Diff(first, second); diff != "" {
		t.Fatalf("second resolution differs (-first +second):\n%s", diff)
	}
}

func TestResolveFieldsSkipsMissingBlocks(t *testing.T) {
	tpl := FormTemplate{
		BlockIDs:         []string{"ghost", "education", "phantom"},
		AdditionalFields: []models.Field{{ID: "extra", Type: models.FieldText, Label: "Extra"}},
	}

	res := ResolveFields(tpl, predefinedRegistry())
	assert.Equal(t, []string{"schoolName", "degree", "major", "graduationYear", "extra"}, fieldIDs(res.Fields))
	assert.Equal(t, []string{"ghost", "phantom"}, res.Missing)
}

func TestComposeTagsFields(t *testing.T) {
	tpl, ok := Find("contact-form")
	require.True(t, ok)

	fields, missing := Compose(tpl, predefinedRegistry())
	assert.Empty(t, missing)
	require.Len(t, fields, 5)

	assert.Equal(t, models.FormField{
		Field:                 models.Field{ID: "id-short-email", Type: models.FieldEmail, Label: "Email", Placeholder: "Enter email address", Required: true},
		TemplateBlockID:       "id-short",
		TemplateBlockName:     "ID Short",
		TemplateBlockCategory: "Identity",
	}, fields[2])

	assert.Equal(t, "additional-fields-subject", fields[3].ID)
	assert.Equal(t, AdditionalBlockName, fields[3].TemplateBlockName)
	assert.Equal(t, AdditionalBlockCategory, fields[4].TemplateBlockCategory)
}

func TestComposeKeepsCollidingLocalIDsApart(t *testing.T) {
	tpl := FormTemplate{BlockIDs: []string{"id-short", "id-long"}}

	fields, _ := Compose(tpl, predefinedRegistry())
	seen := map[string]bool{}
	for _, f := range fields {
		assert.False(t, seen[f.ID], "duplicate composed id %s", f.ID)
		seen[f.ID] = true
	}
	assert.True(t, seen["id-short-name"])
	assert.True(t, seen["id-long-name"])
}

func TestComposeEmptyTemplate(t *testing.T) {
	fields, missing := Compose(FormTemplate{}, predefinedRegistry())
	assert.NotNil(t, fields)
	assert.Empty(t, fields)
	assert.Nil(t, missing)
}

func TestComposeDoesNotMutateRegistry(t *testing.T) {
	reg := predefinedRegistry()
	tpl, _ := Find("contact-form")
	Compose(tpl, reg)

	b, _ := reg.Lookup("id-short")
	assert.Equal(t, "name", b.Fields[0].ID)
}
