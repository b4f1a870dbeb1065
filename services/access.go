package services

import "github.com/neuronstudy/backend/models"

// CanStudy reports whether the user may open the course's sections.
// Free courses are open to everyone, including anonymous visitors (nil
// user), who get a read-only preview: viewing is allowed, recording
// progress still requires an identity. Paid courses require the course to
// be in the user's entitlement set, or admin rights.
func CanStudy(course *models.Course, user *models.User, entitlements []string) bool {
	if course == nil {
		return false
	}
	if course.IsFree() {
		return true
	}
	if user == nil {
		return false
	}
	if user.IsAdmin {
		return true
	}
	for _, id := range entitlements {
		if id == course.ID {
			return true
		}
	}
	return false
}
