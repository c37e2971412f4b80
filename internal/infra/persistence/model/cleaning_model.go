package model

import "time"

// CleaningModel mirrors the 'cleanings' table. Price is numeric(10,2).
type CleaningModel struct {
	ID           int64   `gorm:"primaryKey;autoIncrement"`
	Name         string  `gorm:"type:text;not null;index"`
	Description  string  `gorm:"type:text"`
	Price        float64 `gorm:"type:numeric(10,2);not null"`
	CleaningType string  `gorm:"type:text;not null"`
	Owner        int64   `gorm:"column:owner;not null;index"`
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// TableName explicitly sets the table name for GORM.
func (CleaningModel) TableName() string {
	return "cleanings"
}

// OfferModel mirrors the 'offers' table. The (cleaning_id, user_id) pair is the primary key.
type OfferModel struct {
	CleaningID int64  `gorm:"primaryKey"`
	UserID     int64  `gorm:"primaryKey"`
	Status     string `gorm:"type:text;not null"`
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// TableName explicitly sets the table name for GORM.
func (OfferModel) TableName() string {
	return "offers"
}

// OfferWithUserModel is the result row of an offer joined with the offering user.
type OfferWithUserModel struct {
	OfferModel
	Username string
}
