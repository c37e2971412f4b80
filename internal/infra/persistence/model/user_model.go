package model

import "time"

// UserModel mirrors the 'users' table.
type UserModel struct {
	ID            int64  `gorm:"primaryKey;autoIncrement"`
	Username      string `gorm:"type:text;uniqueIndex:users_username_key;not null"`
	Email         string `gorm:"type:text;uniqueIndex:users_email_key;not null"`
	EmailVerified bool   `gorm:"not null"`
	Salt          string `gorm:"type:text;not null"`
	Password      string `gorm:"type:text;not null"`
	IsActive      bool   `gorm:"not null"`
	IsSuperuser   bool   `gorm:"not null"`
	CreatedAt     time.Time
	UpdatedAt     time.Time

	Profile *ProfileModel `gorm:"foreignKey:UserID"`
}

// TableName explicitly sets the table name for GORM.
func (UserModel) TableName() string {
	return "users"
}

// ProfileModel mirrors the 'profiles' table. UserID references users.id.
type ProfileModel struct {
	ID          int64  `gorm:"primaryKey;autoIncrement"`
	UserID      int64  `gorm:"uniqueIndex;not null"`
	FullName    string `gorm:"type:text"`
	PhoneNumber string `gorm:"type:text"`
	Bio         string `gorm:"type:text"`
	Image       string `gorm:"type:text"`
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// TableName explicitly sets the table name for GORM.
func (ProfileModel) TableName() string {
	return "profiles"
}

// ProfileWithUserModel is the result row of a profile joined with its owner.
type ProfileWithUserModel struct {
	ProfileModel
	Username string
	Email    string
}
