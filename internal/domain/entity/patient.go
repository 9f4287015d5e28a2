package entity

import (
	"strings"
	"time"

	"gorm.io/datatypes"
)

// Patient represents a patient record owning zero or more visits
type Patient struct {
	ID        int64           `gorm:"primaryKey;autoIncrement" json:"id"`
	FirstName string          `gorm:"type:varchar(100);not null" json:"first_name"`
	LastName  string          `gorm:"type:varchar(100);not null" json:"last_name"`
	NIC       string          `gorm:"column:nic;type:varchar(20);uniqueIndex;not null" json:"nic"`
	DOB       *datatypes.Date `gorm:"column:date_of_birth" json:"date_of_birth,omitempty"`
	Gender    Gender          `gorm:"type:varchar(10)" json:"gender,omitempty"`
	Phone     string          `gorm:"type:varchar(20)" json:"phone,omitempty"`
	Address   string          `gorm:"type:text" json:"address,omitempty"`
	CreatedAt time.Time       `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time       `gorm:"autoUpdateTime" json:"updated_at"`

	// Relationships
	// Visits are never preloaded; load them with VisitRepository.FindByPatientID.
	Visits []Visit `gorm:"foreignKey:PatientID;constraint:OnDelete:CASCADE" json:"visits,omitempty"`
}

func (Patient) TableName() string {
	return "patients"
}

// IsPersisted checks if the storage layer has assigned an identifier
func (p *Patient) IsPersisted() bool {
	return p.ID != 0
}

// Validate checks the record may be written to storage.
// Required fields are checked in order firstName, lastName, nic.
func (p *Patient) Validate() error {
	required := []struct {
		field string
		value string
	}{
		{"firstName", p.FirstName},
		{"lastName", p.LastName},
		{"nic", p.NIC},
	}
	for _, r := range required {
		if strings.TrimSpace(r.value) == "" {
			return &MissingFieldError{Field: r.field}
		}
	}

	if !p.Gender.IsValid() {
		return ErrInvalidGender
	}

	return nil
}

// AssignIdentity sets the storage identifier. It may be called once per record.
func (p *Patient) AssignIdentity(id int64) error {
	if p.IsPersisted() {
		return ErrIdentityAlreadyAssigned
	}
	p.ID = id
	return nil
}
