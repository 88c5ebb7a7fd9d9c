// Package importer reconciles confirmed contact records into user accounts
// and provisions their profile photos as managed assets.
package importer

import "fmt"

type OutcomeKind string

const (
	// Reconciliation outcomes
	OutcomeCreated OutcomeKind = "created"
	OutcomeUpdated OutcomeKind = "updated"
	OutcomeFailed  OutcomeKind = "failed"

	// Photo provisioning outcomes
	OutcomeStored        OutcomeKind = "stored"
	OutcomeUnchanged     OutcomeKind = "unchanged"
	OutcomeReplacedPrior OutcomeKind = "replaced_prior"
)

// Outcome is one discrete notice produced while processing a confirmed
// contact. Failures carry a reason; nothing ever disappears silently.
type Outcome struct {
	Kind   OutcomeKind `json:"kind"`
	Email  string      `json:"email,omitempty"`
	Reason string      `json:"reason,omitempty"`
}

func (o Outcome) String() string {
	if o.Reason != "" {
		return fmt.Sprintf("%s (%s): %s", o.Kind, o.Email, o.Reason)
	}
	return fmt.Sprintf("%s (%s)", o.Kind, o.Email)
}

func failed(email, reason string) Outcome {
	return Outcome{Kind: OutcomeFailed, Email: email, Reason: reason}
}
