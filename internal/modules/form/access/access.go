// Package access holds the single authorization rule shared by forms and blocks.
package access

import (
	"github.com/formify/core/internal/models"
	"github.com/formify/core/internal/pkg/apperr"
)

type Action int

const (
	Read Action = iota
	Update
	Delete
	// Manage covers owner-only views such as a form's responses.
	Manage
)

func (a Action) String() string {
	switch a {
	case Read:
		return "read"
	case Update:
		return "update"
	case Delete:
		return "delete"
	case Manage:
		return "manage"
	}
	return "unknown"
}

// Resource is the ownership view of a form or block.
// Predefined marks system blocks, which anyone may read and nobody may change.
type Resource struct {
	Kind       string
	OwnerID    string
	Public     bool
	Predefined bool
}

func FormResource(f *models.FormModel) Resource {
	return Resource{Kind: "form", OwnerID: f.CreatedByID, Public: f.IsPublic}
}

func BlockResource(b *models.TemplateBlockModel) Resource {
	return Resource{Kind: "template block", OwnerID: b.OwnerID(), Public: b.IsPublic, Predefined: !b.IsCustom}
}

// Authorize returns nil when actorID may perform action on res, otherwise an
// error matching apperr.ErrForbidden. An empty actorID is an anonymous caller.
func Authorize(actorID string, res Resource, action Action) error {
	owner := actorID != "" && res.OwnerID != "" && actorID == res.OwnerID

	switch action {
	case Read:
		if owner || res.Public || res.Predefined {
			return nil
		}
	case Update, Delete, Manage:
		if owner && !res.Predefined {
			return nil
		}
	}
	return apperr.Forbidden(action.String() + " " + res.Kind)
}
