package solver

import (
	"fmt"

	"github.com/demi-w/srsdfa/ruleset"
)

// DomainErrorKind classifies why a solver rejected a ruleset at
// construction (spec §7).
type DomainErrorKind int

const (
	// Generating marks a rule whose RHS is longer than its LHS.
	Generating DomainErrorKind = iota
	// Deleting marks a rule whose RHS is shorter than its LHS.
	Deleting
	// Cyclic marks a trivial two-cycle: lhs -> rhs and rhs -> lhs both
	// present in the ruleset.
	Cyclic
)

func (k DomainErrorKind) String() string {
	switch k {
	case Generating:
		return "Generating"
	case Deleting:
		return "Deleting"
	case Cyclic:
		return "Cyclic"
	default:
		return "Unknown"
	}
}

// DomainError is returned at solver construction when a ruleset's shape
// violates that solver's assumptions (Subset and Minkid require
// length-preserving, non-trivially-cyclic rules).
type DomainError struct {
	Kind DomainErrorKind
	Rule ruleset.Rule
}

func (e *DomainError) Error() string {
	return fmt.Sprintf("solver: domain error (%s) on rule %v -> %v", e.Kind, e.Rule.LHS, e.Rule.RHS)
}

// checkLengthPreservingAndAcyclic rejects rulesets that Subset and Minkid
// cannot handle, returning a *DomainError wrapping the offending rule.
func checkLengthPreservingAndAcyclic(rs *ruleset.Ruleset) error {
	if r, ok := rs.HasNonLengthPreservingRule(); ok {
		kind := Generating
		if len(r.RHS) < len(r.LHS) {
			kind = Deleting
		}
		return &DomainError{Kind: kind, Rule: r}
	}
	if r, ok := rs.HasDefinitelyCyclicRule(); ok {
		return &DomainError{Kind: Cyclic, Rule: r}
	}
	return nil
}
