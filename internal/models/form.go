package models

import "gorm.io/datatypes"

// FormModel is a user-built form with its fully resolved field list.
type FormModel struct {
	Base
	Title       string      `json:"title"         gorm:"not null"`
	Description string      `json:"description"   gorm:"type:text"`
	Fields      []FormField `json:"fields"        gorm:"type:longtext;serializer:json"`
	IsPublic    bool        `json:"is_public"     gorm:"not null;default:false"`
	IsActive    bool        `json:"is_active"     gorm:"not null;default:true"`
	CreatedByID string      `json:"created_by_id" gorm:"type:char(36);index;not null"`
}

func (FormModel) TableName() string { return "forms" }

// FormResponseModel is one submission against a form.
type FormResponseModel struct {
	Base
	FormID       string            `json:"form_id"       gorm:"type:char(36);index;not null"`
	Data         datatypes.JSONMap `json:"data"`
	RespondentID *string           `json:"respondent_id" gorm:"type:char(36);index"`
	Respondent   *UserModel        `json:"respondent,omitempty" gorm:"foreignKey:RespondentID"`
}

func (FormResponseModel) TableName() string { return "form_responses" }
