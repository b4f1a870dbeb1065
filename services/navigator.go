package services

import (
	"math"

	"github.com/neuronstudy/backend/models"
)

type ResumeKind string

const (
	// No marker at all: render from the top.
	ResumeNone ResumeKind = "none"
	// A raw scroll offset was recorded; it wins over any section marker.
	ResumeScroll ResumeKind = "scroll"
	// Resume at a specific section.
	ResumeSection ResumeKind = "section"
)

type ResumeTarget struct {
	Kind           ResumeKind `json:"type"`
	SectionID      string     `json:"section_id,omitempty"`
	ScrollPosition *float64   `json:"scroll_position,omitempty"`
}

// ResumeTargetFor computes where to reopen a course. Priority:
//  1. a recorded scroll position (physical marker),
//  2. the first section not yet completed (first gap),
//  3. the last completed section (last known-good),
//  4. nothing.
//
// Completed ids that no longer match a current section are treated as
// satisfied: the scan only looks at sections the course still has.
func ResumeTargetFor(course *models.Course, progress *models.CourseProgress) ResumeTarget {
	if progress != nil && progress.ScrollPosition != nil {
		return ResumeTarget{Kind: ResumeScroll, ScrollPosition: progress.ScrollPosition}
	}

	var completed []string
	if progress != nil {
		completed = progress.Completed()
	}
	done := make(map[string]bool, len(completed))
	for _, id := range completed {
		done[id] = true
	}

	for _, section := range course.Sections {
		if !done[section.ID] {
			return ResumeTarget{Kind: ResumeSection, SectionID: section.ID}
		}
	}

	if len(completed) > 0 {
		return ResumeTarget{Kind: ResumeSection, SectionID: completed[len(completed)-1]}
	}
	return ResumeTarget{Kind: ResumeNone}
}

// CompletionPercent is the rounded share of the course's *current* sections
// that the user has completed. Stale ids from deleted sections count for
// neither numerator nor denominator. A course with no sections is 0%.
func CompletionPercent(course *models.Course, progress *models.CourseProgress) int {
	if course == nil || len(course.Sections) == 0 {
		return 0
	}
	current := make(map[string]bool, len(course.Sections))
	for _, section := range course.Sections {
		current[section.ID] = true
	}

	done := 0
	if progress != nil {
		for _, id := range progress.Completed() {
			if current[id] {
				done++
			}
		}
	}
	return int(math.Round(100 * float64(done) / float64(len(course.Sections))))
}
