// Package orchestrate implements the k-doubling correctness gate (spec
// §4.7): run a solver at increasing signature depth until two consecutive
// values of k produce language-equal DFAs, optionally certifying the
// result with the proof auditor.
package orchestrate

import (
	"fmt"

	"github.com/demi-w/srsdfa/audit"
	"github.com/demi-w/srsdfa/automaton"
	"github.com/demi-w/srsdfa/ruleset"
	"github.com/demi-w/srsdfa/solver"
)

// Config controls the orchestration loop.
type Config struct {
	// StartK is the initial signature depth (k0).
	StartK int

	// Verify, when true, makes Run increment k and recompute until two
	// consecutive depths agree (spec §4.7 step 2). When false, Run
	// returns the solver's output at StartK directly with no verification.
	Verify bool

	// Certify, when true, runs the proof auditor on the final DFA
	// (spec §4.7 step 3).
	Certify bool

	// MaxK bounds how far k may grow before Run gives up, guarding
	// against a ruleset that never converges within a reasonable depth.
	MaxK int
}

// DefaultConfig returns a Config with verification and certification both
// enabled and MaxK set 64 above startK. The CLI builds its own Config and
// certifies only when --audit is given.
func DefaultConfig(startK int) Config {
	return Config{StartK: startK, Verify: true, Certify: true, MaxK: startK + 64}
}

// Result is the outcome of one orchestration run.
type Result struct {
	DFA        *automaton.DFA
	FinalK     int
	Iterations int
	Verdict    *audit.Verdict // nil unless Config.Certify was set
}

// NotConvergedError is returned when Run exhausts Config.MaxK without two
// consecutive depths agreeing.
type NotConvergedError struct {
	MaxK int
}

func (e *NotConvergedError) Error() string {
	return fmt.Sprintf("orchestrate: did not converge by k=%d", e.MaxK)
}

// Run implements spec §4.7: compute D_k, and if verification is enabled,
// keep computing D_{k+1} and comparing until two consecutive depths are
// language-equal (up to minimization), then optionally certify.
func Run(s solver.Solver, rules *ruleset.Ruleset, goal *automaton.DFA, cfg Config) (Result, error) {
	k := cfg.StartK
	current, err := s.Run(k)
	if err != nil {
		return Result{}, err
	}
	iterations := 1

	if cfg.Verify {
		for {
			if cfg.MaxK > 0 && k >= cfg.MaxK {
				return Result{}, &NotConvergedError{MaxK: cfg.MaxK}
			}
			next, err := s.Run(k + 1)
			if err != nil {
				return Result{}, err
			}
			iterations++
			equal, _ := current.Minimize().LanguageEqual(next.Minimize())
			if equal {
				current = next
				k++
				break
			}
			current = next
			k++
		}
	}

	result := Result{DFA: current, FinalK: k, Iterations: iterations}

	if cfg.Certify {
		verdict, err := audit.Certify(current, rules, goal)
		if err != nil {
			return Result{}, err
		}
		result.Verdict = &verdict
	}

	return result, nil
}
