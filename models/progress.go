package models

import (
	"encoding/json"
	"time"

	"gorm.io/datatypes"
)

// CourseProgress is one user's progress in one course. It is its own row,
// keyed (user, course), so updating progress in one course never rewrites
// progress in another: two tabs can only race on the course they are both
// looking at, where last-write-wins is the intended behavior.
type CourseProgress struct {
	ID       string `gorm:"primaryKey" json:"-"`
	UserID   string `gorm:"not null;uniqueIndex:idx_progress_user_course" json:"-"`
	CourseID string `gorm:"not null;uniqueIndex:idx_progress_user_course" json:"course_id"`
	// JSON array of section ids, insertion order = completion order,
	// no duplicates. Ids of since-deleted sections may linger here.
	CompletedSections datatypes.JSON `json:"completed_sections"`
	// Optional physical resume marker; latest write wins.
	ScrollPosition *float64 `json:"scroll_position,omitempty"`

	CreatedAt time.Time `json:"-"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Completed decodes the completed-section list. A row written by this code
// always holds a valid array; anything unreadable is treated as empty.
func (p *CourseProgress) Completed() []string {
	if len(p.CompletedSections) == 0 {
		return nil
	}
	var ids []string
	if err := json.Unmarshal(p.CompletedSections, &ids); err != nil {
		return nil
	}
	return ids
}

func (p *CourseProgress) SetCompleted(ids []string) {
	if ids == nil {
		ids = []string{}
	}
	raw, _ := json.Marshal(ids)
	p.CompletedSections = datatypes.JSON(raw)
}

func (p *CourseProgress) HasCompleted(sectionID string) bool {
	for _, id := range p.Completed() {
		if id == sectionID {
			return true
		}
	}
	return false
}
