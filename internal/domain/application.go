package domain

import "time"

// ApplicationStatus enumerates review pipeline states. Any state is reachable
// from any other; transitions are admin-only.
type ApplicationStatus string

const (
	ApplicationStatusPending  ApplicationStatus = "pending"
	ApplicationStatusReviewed ApplicationStatus = "reviewed"
	ApplicationStatusAccepted ApplicationStatus = "accepted"
	ApplicationStatusRejected ApplicationStatus = "rejected"
)

// ParseApplicationStatus validates a status string.
func ParseApplicationStatus(s string) (ApplicationStatus, bool) {
	switch ApplicationStatus(s) {
	case ApplicationStatusPending, ApplicationStatusReviewed, ApplicationStatusAccepted, ApplicationStatusRejected:
		return ApplicationStatus(s), true
	}
	return "", false
}

// ApplicationType distinguishes the two public form tracks.
type ApplicationType string

const (
	ApplicationTypeBeginner ApplicationType = "beginner"
	ApplicationTypeExpert   ApplicationType = "expert"
)

// Application is a submitted candidacy record. Beginner submissions carry
// university/age/motivation, expert submissions specialty/portfolio/experience;
// the unused track's fields stay empty.
type Application struct {
	ID         string
	Name       string
	Email      string
	Phone      string
	Type       ApplicationType
	University string
	Age        string
	Motivation string
	Specialty  string
	Portfolio  string
	Experience string
	Status     ApplicationStatus
	CreatedAt  time.Time
}
