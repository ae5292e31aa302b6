package constants

import "fmt"

const (
	RoleStudent = "student"
	RoleTeacher = "teacher"
	RoleAdmin   = "admin"
)

// Template pesan error role
const (
	ErrOnlyTeachersCanAccess = "Only teachers or admins can access %s."
	ErrOnlyTeacherCanAccess  = "Only teachers can access %s."
	ErrOnlyStudentsCanAccess = "Only students can access %s."
	ErrOnlyAdminsCanAccess   = "Only admins can access %s."
)

func RoleErrorTeacher(feature string) string {
	return fmt.Sprintf(ErrOnlyTeachersCanAccess, feature)
}

func RoleErrorTeacherOnly(feature string) string {
	return fmt.Sprintf(ErrOnlyTeacherCanAccess, feature)
}

func RoleErrorStudent(feature string) string {
	return fmt.Sprintf(ErrOnlyStudentsCanAccess, feature)
}

func RoleErrorAdmin(feature string) string {
	return fmt.Sprintf(ErrOnlyAdminsCanAccess, feature)
}

// ==========================
// Grouped Role Slices
// ==========================
var (
	AllRoles = []string{RoleStudent, RoleTeacher, RoleAdmin}

	TeacherAndAbove = []string{RoleTeacher, RoleAdmin}

	TeacherOnly = []string{RoleTeacher}

	StudentOnly = []string{RoleStudent}

	AdminOnly = []string{RoleAdmin}
)

// IsValidRole: role yang boleh dipakai saat register.
func IsValidRole(role string) bool {
	for _, r := range AllRoles {
		if r == role {
			return true
		}
	}
	return false
}
