package models

// TemplateBlockModel is a named, reusable group of fields.
// Predefined blocks have fixed ids, no owner and IsCustom=false.
type TemplateBlockModel struct {
	Base
	Name        string  `json:"name"          gorm:"not null;index"`
	Description string  `json:"description"   gorm:"type:text"`
	Category    string  `json:"category"      gorm:"not null;index"`
	Fields      []Field `json:"fields"        gorm:"type:longtext;serializer:json"`
	IsCustom    bool    `json:"is_custom"     gorm:"not null;default:false;index"`
	IsPublic    bool    `json:"is_public"     gorm:"not null;default:false"`
	CreatedByID *string `json:"created_by_id" gorm:"type:char(36);index"`

	CreatedBy *UserModel `json:"-" gorm:"foreignKey:CreatedByID"`
}

func (TemplateBlockModel) TableName() string { return "template_blocks" }

// OwnerID returns the creator id, or "" for predefined blocks.
func (b *TemplateBlockModel) OwnerID() string {
	if b.CreatedByID == nil {
		return ""
	}
	return *b.CreatedByID
}
