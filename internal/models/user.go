package models

type User struct {
	BaseModel
	Email           string   `json:"email" gorm:"type:varchar(255);uniqueIndex;not null"`
	PasswordHash    string   `json:"-" gorm:"type:text;not null"`
	FullName        string   `json:"fullName" gorm:"type:varchar(100);not null"`
	Bio             string   `json:"bio" gorm:"type:text"`
	ProfilePic      string   `json:"profilePic" gorm:"type:text"`
	Location        string   `json:"location" gorm:"type:varchar(120)"`
	FavoriteGenres  []string `json:"favoriteGenres" gorm:"type:jsonb;serializer:json"`
	SecondaryGenres []string `json:"secondaryGenres" gorm:"type:jsonb;serializer:json"`
	FavoriteMovies  string   `json:"favoriteMovies" gorm:"type:text"`
	MovieMood       string   `json:"movieMood" gorm:"type:varchar(120)"`
	IsOnboarded     bool     `json:"isOnboarded" gorm:"not null;default:false"`

	Reviews []Review `json:"-" gorm:"foreignKey:AuthorID"`
}

func (User) TableName() string {
	return "users"
}
