package entity

// ResearchProfile is an external profile link (platform + URL) owned by exactly
// one researcher. Rows are only ever written with both fields non-empty.
type ResearchProfile struct {
	ID           uint   `gorm:"primaryKey;autoIncrement" json:"id"`
	ResearcherID uint   `gorm:"not null;index" json:"researcher_id"`
	Platform     string `gorm:"type:varchar(100);not null" json:"platform"`
	URL          string `gorm:"type:text;not null" json:"url"`
}

func (ResearchProfile) TableName() string {
	return "research_profiles"
}
