package extract

import (
	"strings"

	"github.com/vizitka/card-scanner/internal/entity"
)

// RejectedMissingName is the reason attached to every rejection: a non-empty
// name is the single acceptance rule.
const RejectedMissingName = "missing company name"

// Outcome is the validator's verdict on a candidate.
type Outcome struct {
	Accepted bool
	Record   Candidate // the candidate either way; only Accepted records may be persisted
	Reason   string    // set when rejected
	Warning  string    // non-fatal extraction warning carried through acceptance
}

// Validate applies the acceptance rule. A fallback candidate always has an
// empty name, so "no JSON found" lands in Rejected by construction; the raw
// text survives in the candidate's Description for manual re-entry.
func Validate(c Candidate, diag Diagnostic) Outcome {
	warning := strings.Join(diag.Warnings, "; ")
	if strings.TrimSpace(c.Name) == "" {
		return Outcome{
			Record:  c,
			Reason:  RejectedMissingName,
			Warning: warning,
		}
	}
	return Outcome{
		Accepted: true,
		Record:   c,
		Warning:  warning,
	}
}

// Contact converts a candidate into the persistence entity. The storage
// backend fills in ID and CreatedAt on its own.
func (c Candidate) Contact() entity.Contact {
	return entity.Contact{
		Name:        c.Name,
		Phones:      c.Phones,
		Email:       c.Email,
		Address:     c.Address,
		Description: c.Description,
	}
}
