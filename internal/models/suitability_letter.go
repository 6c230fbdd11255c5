package models

import (
	"gorm.io/gorm"
)

// SuitabilityLetter is the advice letter drafted for a client
type SuitabilityLetter struct {
	ID       uint         `gorm:"column:id;primaryKey;autoIncrement" json:"id"`
	ClientID string       `gorm:"column:client_id;not null" json:"clientId"`
	Content  *string      `gorm:"column:content" json:"content"`
	PDFPath  *string      `gorm:"column:pdf_path" json:"pdfPath"`
	Status   LetterStatus `gorm:"column:status;not null" json:"status"`
	Timestamps
}

// TableName pins the persisted table name.
func (SuitabilityLetter) TableName() string {
	return "suitability_letters"
}

// IsFinal reports whether the letter has been finalised.
func (l *SuitabilityLetter) IsFinal() bool {
	return l.Status == LetterStatusFinal
}

// BeforeCreate hook to set the default status
func (l *SuitabilityLetter) BeforeCreate(tx *gorm.DB) error {
	l.Status = l.Status.OrDefault()
	return nil
}
