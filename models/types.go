package models

import "time"

// Option slot names, matching the wire format ("A"|"B"|"C"|"D")
const (
	OptionA = "A"
	OptionB = "B"
	OptionC = "C"
	OptionD = "D"
)

// Request types

type CreatePollRequest struct {
	Question    string `json:"question"`
	Slug        string `json:"slug,omitempty"`
	OptionAText string `json:"optionA_text"`
	OptionBText string `json:"optionB_text"`
	OptionCText string `json:"optionC_text,omitempty"`
	OptionDText string `json:"optionD_text,omitempty"`
}

type VoteRequest struct {
	Option          string `json:"option"`
	VoterIdentifier string `json:"voterIdentifier"`
}

// Domain types

// Poll is the full state of a poll. Every stream event carries a
// complete Poll snapshot, never a delta.
type Poll struct {
	ID           string    `json:"id"`
	Slug         string    `json:"slug"`
	Question     string    `json:"question"`
	OptionAText  string    `json:"optionA_text"`
	OptionBText  string    `json:"optionB_text"`
	OptionCText  *string   `json:"optionC_text,omitempty"`
	OptionDText  *string   `json:"optionD_text,omitempty"`
	OptionAVotes int       `json:"optionA_votes"`
	OptionBVotes int       `json:"optionB_votes"`
	OptionCVotes int       `json:"optionC_votes"`
	OptionDVotes int       `json:"optionD_votes"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

// HasOption reports whether the named option slot is populated on this
// poll. A and B are always populated; C and D only when they carry a label.
func (p *Poll) HasOption(option string) bool {
	switch option {
	case OptionA, OptionB:
		return true
	case OptionC:
		return p.OptionCText != nil && *p.OptionCText != ""
	case OptionD:
		return p.OptionDText != nil && *p.OptionDText != ""
	default:
		return false
	}
}

// TotalVotes is the sum of all option counters. It equals the number of
// anonymous_votes rows for the poll.
func (p *Poll) TotalVotes() int {
	return p.OptionAVotes + p.OptionBVotes + p.OptionCVotes + p.OptionDVotes
}

// VoteRecord is one row of the vote ledger. Immutable once written.
type VoteRecord struct {
	PollID          string    `json:"poll_id"`
	VoterIdentifier string    `json:"-"` // Never expose in JSON
	ChosenOption    string    `json:"chosen_option"`
	CreatedAt       time.Time `json:"created_at"`
}

// Error response

type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}
