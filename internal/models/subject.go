package models

import "time"

type Subject struct {
	ID          uint   `json:"id" gorm:"primaryKey"`
	Code        string `json:"code" gorm:"not null;uniqueIndex;size:50" validate:"required,max=50"`
	Name        string `json:"name" gorm:"not null;size:200" validate:"required,max=200"`
	ProgramID   uint   `json:"program_id" gorm:"not null;index"`
	YearLevelID uint   `json:"year_level_id" gorm:"not null;index"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	// Relations
	Questions []Question `json:"questions,omitempty" gorm:"foreignKey:SubjectID"`
}

func (Subject) TableName() string {
	return "subjects"
}
