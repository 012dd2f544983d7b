package models

import "github.com/google/uuid"

// Review is immutable once created; there is no update or delete path.
type Review struct {
	BaseModel
	AuthorID   uuid.UUID `json:"authorID" gorm:"type:uuid;not null;index"`
	MovieTitle string    `json:"movieTitle" gorm:"type:varchar(255);not null"`
	Rating     int       `json:"rating" gorm:"not null"`
	Comment    string    `json:"comment" gorm:"type:text;not null"`

	Author User `json:"author,omitempty" gorm:"foreignKey:AuthorID;references:ID"`
}

func (Review) TableName() string {
	return "reviews"
}
