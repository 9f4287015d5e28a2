package entity

import (
	"time"

	"gorm.io/datatypes"
)

// Visit is a clinical visit owned by exactly one patient
type Visit struct {
	ID           int64          `gorm:"primaryKey;autoIncrement" json:"id"`
	PatientID    int64          `gorm:"not null;index" json:"patient_id"`
	VisitDate    datatypes.Date `gorm:"not null;index" json:"visit_date"`
	Notes        string         `gorm:"type:text" json:"notes,omitempty"`
	Diagnosis    string         `gorm:"type:text" json:"diagnosis,omitempty"`
	Prescription string         `gorm:"type:text" json:"prescription,omitempty"`
	CreatedAt    time.Time      `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt    time.Time      `gorm:"autoUpdateTime" json:"updated_at"`
}

func (Visit) TableName() string {
	return "visits"
}
