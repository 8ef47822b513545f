package application

import (
	"errors"

	"github.com/anud18/scholarship-system-sub000/internal/scholarship"
)

type Status string

const (
	StatusDraft       Status = "draft"
	StatusSubmitted   Status = "submitted"
	StatusUnderReview Status = "under_review"
	StatusApproved    Status = "approved"
	StatusRejected    Status = "rejected"
)

// transitions is the allowed status graph. Submitted drafts may be
// withdrawn back to draft; rejected applications may be reopened and
// resubmitted.
var transitions = map[Status][]Status{
	StatusDraft:       {StatusSubmitted},
	StatusSubmitted:   {StatusUnderReview, StatusDraft},
	StatusUnderReview: {StatusApproved, StatusRejected},
	StatusRejected:    {StatusDraft},
}

func (s Status) CanTransition(to Status) bool {
	for _, t := range transitions[s] {
		if t == to {
			return true
		}
	}
	return false
}

var (
	ErrNotFound      = errors.New("application not found")
	ErrNotEditable   = errors.New("application is not editable")
	ErrNotComplete   = errors.New("application is not complete")
	ErrBadTransition = errors.New("invalid status transition")
)

// Application is one student's application to one scholarship type,
// draft through review.
type Application struct {
	ID              string                  `json:"id"`
	UserID          string                  `json:"user_id"`
	College         string                  `json:"college"`
	ScholarshipCode string                  `json:"scholarship_code"`
	Status          Status                  `json:"status"`
	SubTypes        []string                `json:"sub_types"`
	FormValues      scholarship.FormValues  `json:"form_values"`
	FileValues      scholarship.FileValues  `json:"file_values"`
	AgreeTerms      bool                    `json:"agree_terms"`
	Progress        int                     `json:"progress"`
	ReviewedBy      string                  `json:"reviewed_by,omitempty"`
	ReviewNote      string                  `json:"review_note,omitempty"`
	CreatedAt       int64                   `json:"created_at"`
	SubmittedAt     int64                   `json:"submitted_at,omitempty"`
}
