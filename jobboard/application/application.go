package application

import (
	"slices"
	"strings"
	"time"

	"github.com/Abraxas-365/devjobs/pkg/kernel"
)

// ============================================================================
// Entity
// ============================================================================

// Application links one individual to one job posting. JobPostingID and
// ApplicantID never change after creation.
type Application struct {
	ID           kernel.ApplicationID `json:"id"`
	JobPostingID kernel.JobPostingID  `json:"job_posting_id"`
	ApplicantID  kernel.UserID        `json:"applicant_id"`
	Status       Status               `json:"status"`
	AppliedAt    time.Time            `json:"applied_at"`
	UpdatedAt    time.Time            `json:"updated_at"`
}

type Status string

const (
	StatusApplied   Status = "APPLIED"
	StatusPassed    Status = "PASSED"
	StatusInterview Status = "INTERVIEW"
	StatusAccepted  Status = "ACCEPTED"
	StatusRejected  Status = "REJECTED"
)

var AllStatuses = []Status{StatusApplied, StatusPassed, StatusInterview, StatusAccepted, StatusRejected}

func (s Status) IsValid() bool {
	return slices.Contains(AllStatuses, s)
}

// ParseStatus accepts a status name in any case.
func ParseStatus(s string) (Status, bool) {
	st := Status(strings.ToUpper(strings.TrimSpace(s)))
	return st, st.IsValid()
}

func NewApplication(postingID kernel.JobPostingID, applicantID kernel.UserID, now time.Time) *Application {
	return &Application{
		JobPostingID: postingID,
		ApplicantID:  applicantID,
		Status:       StatusApplied,
		AppliedAt:    now,
		UpdatedAt:    now,
	}
}

func (a *Application) IsOwnedBy(userID kernel.UserID) bool {
	return a.ApplicantID == userID
}

// PairKey identifies the (posting, applicant) pair an application is unique on.
func PairKey(postingID kernel.JobPostingID, applicantID kernel.UserID) string {
	return "application:" + postingID.String() + ":" + applicantID.String()
}
