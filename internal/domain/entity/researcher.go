package entity

// Researcher is the primary directory entity representing a person profile.
type Researcher struct {
	ID               uint    `gorm:"primaryKey;autoIncrement" json:"id"`
	Name             string  `gorm:"type:varchar(255);not null" json:"name"`
	Field            string  `gorm:"type:varchar(255)" json:"field,omitempty"`
	Institution      string  `gorm:"type:varchar(255)" json:"institution,omitempty"`
	Email            string  `gorm:"type:varchar(255)" json:"email,omitempty"`
	Bio              string  `gorm:"type:text" json:"bio,omitempty"`
	CitationCount    int     `gorm:"not null;default:0" json:"citation_count"`
	PublicationCount int     `gorm:"not null;default:0" json:"publication_count"`
	Photo            *string `gorm:"type:varchar(255)" json:"photo,omitempty"`

	// Relationships
	Profiles []ResearchProfile `gorm:"foreignKey:ResearcherID;constraint:OnDelete:CASCADE" json:"profiles,omitempty"`
}

func (Researcher) TableName() string {
	return "researchers"
}
