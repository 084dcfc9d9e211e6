package block

import (
	"github.com/formify/core/internal/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Categories lists the block categories offered to clients. CategoryAll is the wildcard.
var Categories = []string{CategoryAll, "Identity", "Financial", "Health", "Academic", "Personal"}

// Predefined returns a fresh copy of the system blocks.
func Predefined() []models.TemplateBlockModel {
	blocks := []models.TemplateBlockModel{
		{
			Base:        models.Base{ID: "id-short"},
			Name:        "ID Short",
			Description: "Basic identification information",
			Category:    "Identity",
			Fields: []models.Field{
				{ID: "name", Type: models.FieldText, Label: "Name", Placeholder: "Enter name", Required: true},
				{ID: "phone", Type: models.FieldText, Label: "Phone Number", Placeholder: "Enter phone number", Required: true},
				{ID: "email", Type: models.FieldEmail, Label: "Email", Placeholder: "Enter email address", Required: true},
			},
		},
		{
			Base:        models.Base{ID: "id-long"},
			Name:        "ID Long",
			Description: "Extended identification information",
			Category:    "Identity",
			Fields: []models.Field{
				{ID: "name", Type: models.FieldText, Label: "Name", Placeholder: "Enter name", Required: true},
				{ID: "phone", Type: models.FieldText, Label: "Phone Number", Placeholder: "Enter phone number", Required: true},
				{ID: "email", Type: models.FieldEmail, Label: "Email", Placeholder: "Enter email address", Required: true},
				{ID: "address", Type: models.FieldTextarea, Label: "Address", Placeholder: "Enter full address"},
				{ID: "dateOfBirth", Type: models.FieldDate, Label: "Date of Birth", Placeholder: "Select date of birth"},
			},
		},
		{
			Base:        models.Base{ID: "monthly-living-expenses"},
			Name:        "Monthly Living Expenses",
			Description: "Track monthly living expenses",
			Category:    "Financial",
			Fields: []models.Field{
				{ID: "food", Type: models.FieldNumber, Label: "Food", Placeholder: "Enter food expenses"},
				{ID: "recreation", Type: models.FieldNumber, Label: "Recreation", Placeholder: "Enter recreation expenses"},
				{ID: "insurances", Type: models.FieldNumber, Label: "Insurances", Placeholder: "Enter insurance costs"},
				{ID: "utilities", Type: models.FieldNumber, Label: "Utilities", Placeholder: "Enter utility costs"},
				{ID: "rent", Type: models.FieldNumber, Label: "Rent", Placeholder: "Enter rent amount"},
				{ID: "debtRepayments", Type: models.FieldNumber, Label: "Debt Repayments", Placeholder: "Enter debt repayment amount"},
			},
		},
		{
			Base:        models.Base{ID: "medical"},
			Name:        "Medical",
			Description: "Medical information and history",
			Category:    "Health",
			Fields: []models.Field{
				{ID: "symptoms", Type: models.FieldTextarea, Label: "Symptoms", Placeholder: "Describe symptoms"},
				{ID: "duration", Type: models.FieldText, Label: "Duration", Placeholder: "How long have symptoms persisted?"},
				{ID: "possibleCauses", Type: models.FieldTextarea, Label: "Possible Causes", Placeholder: "Any suspected causes?"},
				{ID: "allergies", Type: models.FieldTextarea, Label: "Allergies", Placeholder: "List any known allergies"},
				{ID: "currentMedications", Type: models.FieldTextarea, Label: "Current Medications", Placeholder: "List current medications"},
				{ID: "medicalHistory", Type: models.FieldTextarea, Label: "Medical History", Placeholder: "Describe relevant medical history"},
			},
		},
		{
			Base:        models.Base{ID: "education"},
			Name:        "Education",
			Description: "Educational background information",
			Category:    "Academic",
			Fields: []models.Field{
				{ID: "schoolName", Type: models.FieldText, Label: "School Name", Placeholder: "Enter school name"},
				{ID: "degree", Type: models.FieldText, Label: "Degree", Placeholder: "Enter degree type"},
				{ID: "major", Type: models.FieldText, Label: "Major", Placeholder: "Enter major/field of study"},
				{ID: "graduationYear", Type: models.FieldNumber, Label: "Graduation Year", Placeholder: "Enter graduation year"},
			},
		},
		{
			Base:        models.Base{ID: "social-media"},
			Name:        "Social Media",
			Description: "Social media profile information",
			Category:    "Personal",
			Fields: []models.Field{
				{ID: "platform", Type: models.FieldSelect, Label: "Platform", Placeholder: "Select platform", Options: []string{"Facebook", "Instagram", "Twitter", "LinkedIn", "TikTok", "YouTube", "Other"}},
				{ID: "username", Type: models.FieldText, Label: "Username", Placeholder: "Enter username/handle"},
				{ID: "followerCount", Type: models.FieldNumber, Label: "Follower Count", Placeholder: "Enter follower count"},
			},
		},
		{
			Base:        models.Base{ID: "financial"},
			Name:        "Financial",
			Description: "Financial information and status",
			Category:    "Financial",
			Fields: []models.Field{
				{ID: "employment", Type: models.FieldSelect, Label: "Employment", Placeholder: "Select employment status", Options: []string{"Employed", "Self-employed", "Unemployed", "Student", "Retired"}},
				{ID: "netEquity", Type: models.FieldNumber, Label: "Net Equity", Placeholder: "Enter net equity"},
				{ID: "creditScore", Type: models.FieldNumber, Label: "Credit Score", Placeholder: "Enter credit score"},
				{ID: "annualIncome", Type: models.FieldNumber, Label: "Annual Income", Placeholder: "Enter annual income"},
				{ID: "debtServiceCoverageRatio", Type: models.FieldNumber, Label: "Debt Service Coverage Ratio", Placeholder: "Enter debt service coverage ratio"},
			},
		},
		{
			Base:        models.Base{ID: "class-notes"},
			Name:        "Class Notes",
			Description: "Academic class notes and information",
			Category:    "Academic",
			Fields: []models.Field{
				{ID: "class", Type: models.FieldText, Label: "Class", Placeholder: "Enter class name"},
				{ID: "topic", Type: models.FieldText, Label: "Topic", Placeholder: "Enter topic"},
				{ID: "notes", Type: models.FieldTextarea, Label: "Notes", Placeholder: "Enter notes"},
			},
		},
	}
	for i := range blocks {
		blocks[i].IsCustom = false
		blocks[i].IsPublic = true
	}
	return blocks
}

// Seed upserts the predefined blocks so their definitions track the code.
func Seed(db *gorm.DB) error {
	blocks := Predefined()
	return db.Clauses(clause.OnConflict{UpdateAll: true}).Create(&blocks).Error
}
