package entity

import "github.com/google/uuid"

// Session holds the authenticated identity for the current request. It is
// built once by the auth middleware from validated token claims and passed
// explicitly into usecases; a nil *Session means no authenticated caller.
// A non-nil session is always fully populated, never partial.
type Session struct {
	UserID   uuid.UUID
	Email    string
	FullName string
	RoleID   int
}

// IsAdmin reports whether the session belongs to an administrator
func (s *Session) IsAdmin() bool {
	return s != nil && s.RoleID == RoleIDAdmin
}

// IsDoctor reports whether the session belongs to a doctor
func (s *Session) IsDoctor() bool {
	return s != nil && s.RoleID == RoleIDDoctor
}

// IsPatient reports whether the session belongs to a patient
func (s *Session) IsPatient() bool {
	return s != nil && s.RoleID == RoleIDPatient
}
