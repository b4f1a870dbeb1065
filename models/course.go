package models

import "time"

type Course struct {
	ID          string `gorm:"primaryKey" json:"id"`
	Slug        string `gorm:"uniqueIndex;not null" json:"slug"`
	Title       string `gorm:"not null" json:"title"`
	Description string `json:"description"`
	Body        string `json:"body"`
	// Zero means free.
	Price    float64   `gorm:"not null;default:0" json:"price"`
	CoverURL string    `json:"cover_url"`
	Sections []Section `gorm:"constraint:OnDelete:CASCADE" json:"sections"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"-"`
}

func (c *Course) IsFree() bool {
	return c.Price == 0
}

// SectionIDs returns the ids of the course's current sections in study order.
func (c *Course) SectionIDs() []string {
	ids := make([]string, 0, len(c.Sections))
	for _, s := range c.Sections {
		ids = append(ids, s.ID)
	}
	return ids
}

// Section is the atomic unit of course content. Ordering is append-only:
// Position is assigned at creation and never reshuffled.
type Section struct {
	ID       string `gorm:"primaryKey" json:"section_id"`
	CourseID string `gorm:"not null;index" json:"-"`
	Title    string `gorm:"not null" json:"title"`
	Content  string `json:"content"`
	Position int    `gorm:"not null" json:"position"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"-"`
}
