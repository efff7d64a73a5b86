/*
Srsdfa builds the ancestor-language DFA of a goal automaton under a string
rewriting system.

Usage:

	srsdfa --ruleset rules.txt --goal goal.json [flags]

The flags are:

	--ruleset FILE
	    Path to a ruleset text file (spec §6 line format: "lhs - rhs").

	--goal FILE
	    Path to the goal automaton, as JSON (automaton.SaveJSON's format)
	    or JFLAP XML (detected by a ".jff" extension).

	--k N
	    Signature depth to start from. Overrides --config's start_k.

	--solver bfs|subset|minkid
	    Which construction strategy to run. Overrides --config's solver.

	--verify / --no-verify
	    Enable or disable k-doubling until two consecutive depths agree.

	--config FILE
	    An srsdfa.toml config file providing defaults for any flag not
	    given explicitly on the command line.

	--out FILE
	    Where to write the resulting DFA as JSON. Defaults to stdout.

	--audit
	    Certify the resulting DFA with the proof auditor before exit.

	--verbose
	    Raise log verbosity to debug level.
*/
package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/google/uuid"
	"github.com/projectdiscovery/gologger"
	"github.com/projectdiscovery/gologger/levels"
	"github.com/spf13/pflag"

	"github.com/demi-w/srsdfa/automaton"
	"github.com/demi-w/srsdfa/corpus"
	"github.com/demi-w/srsdfa/orchestrate"
	"github.com/demi-w/srsdfa/ruleset"
	"github.com/demi-w/srsdfa/solver"
)

// corpusAliases maps the short names the "corpus:" ruleset shorthand
// accepts to the canonical corpus.Example.Name values.
var corpusAliases = map[string]string{
	"1dpeg":            "default1dpeg",
	"default1dpeg":     "default1dpeg",
	"threerule1dpeg":   "threerule1dpeg",
	"defaultsolver":    "defaultsolver",
	"threerulesolver":  "threerulesolver",
	"flip":             "flip",
	"flipx3":           "flipx3",
	"2xnswap":          "2xnswap",
}

func corpusExample(name string) (corpus.Example, bool) {
	canonical, ok := corpusAliases[name]
	if !ok {
		return corpus.Example{}, false
	}
	for _, ex := range corpus.All() {
		if ex.Name == canonical {
			return ex, true
		}
	}
	return corpus.Example{}, false
}

// Exit codes, mirroring the error taxonomy of spec §6.
const (
	ExitSuccess = iota
	ExitConfigError
	ExitParseError
	ExitDomainError
	ExitRunError
	ExitNotConverged
)

// fileConfig is the shape of an srsdfa.toml config file (spec §5.2):
// command-line flags override whatever this file sets.
type fileConfig struct {
	Workers int    `toml:"workers"`
	StartK  int    `toml:"start_k"`
	MaxK    int    `toml:"max_k"`
	Verify  bool   `toml:"verify"`
	Solver  string `toml:"solver"`
}

func defaultFileConfig() fileConfig {
	return fileConfig{Workers: 32, StartK: 3, MaxK: 64, Verify: true, Solver: "bfs"}
}

var (
	rulesetPath = pflag.String("ruleset", "", "path to a ruleset text file (required)")
	goalPath    = pflag.String("goal", "", "path to a goal automaton, .json or .jff (required)")
	kFlag       = pflag.Int("k", 0, "signature depth; 0 defers to --config's start_k")
	solverName  = pflag.String("solver", "", "bfs | subset | minkid (overrides --config)")
	verifyFlag  = pflag.Bool("verify", false, "k-double until two depths agree (overrides --config)")
	noVerify    = pflag.Bool("no-verify", false, "disable k-doubling even if --config enables it")
	configPath  = pflag.String("config", "", "path to an srsdfa.toml config file")
	outPath     = pflag.String("out", "", "path to write the resulting DFA as JSON (default: stdout)")
	runAudit    = pflag.Bool("audit", false, "certify the resulting DFA with the proof auditor")
	verbose     = pflag.Bool("verbose", false, "raise log verbosity to debug level")
)

func main() {
	pflag.Parse()
	if *verbose {
		gologger.DefaultLogger.SetMaxLevel(levels.LevelDebug)
	}
	runID := uuid.New().String()

	cfg := defaultFileConfig()
	if *configPath != "" {
		if _, err := toml.DecodeFile(*configPath, &cfg); err != nil {
			gologger.Error().Msgf("[%s] reading config %s: %v", runID, *configPath, err)
			os.Exit(ExitConfigError)
		}
	}
	if *solverName != "" {
		cfg.Solver = *solverName
	}
	if *kFlag != 0 {
		cfg.StartK = *kFlag
	}
	if *verifyFlag {
		cfg.Verify = true
	}
	if *noVerify {
		cfg.Verify = false
	}

	if *rulesetPath == "" {
		gologger.Error().Msgf("[%s] --ruleset is required", runID)
		os.Exit(ExitConfigError)
	}

	var rules *ruleset.Ruleset
	var goal *automaton.DFA

	if name, ok := strings.CutPrefix(*rulesetPath, "corpus:"); ok {
		ex, found := corpusExample(name)
		if !found {
			gologger.Error().Msgf("[%s] unknown corpus example %q", runID, name)
			os.Exit(ExitConfigError)
		}
		rules, goal = ex.Rules, ex.Goal
	} else {
		if *goalPath == "" {
			gologger.Error().Msgf("[%s] --goal is required unless --ruleset=corpus:<name>", runID)
			os.Exit(ExitConfigError)
		}
		rulesText, err := os.ReadFile(*rulesetPath)
		if err != nil {
			gologger.Error().Msgf("[%s] reading ruleset: %v", runID, err)
			os.Exit(ExitConfigError)
		}
		rules, err = ruleset.ParseRuleset(string(rulesText))
		if err != nil {
			gologger.Error().Msgf("[%s] %v", runID, err)
			os.Exit(ExitParseError)
		}
		goal, err = loadGoal(*goalPath, rules)
		if err != nil {
			gologger.Error().Msgf("[%s] loading goal: %v", runID, err)
			os.Exit(ExitParseError)
		}
	}

	solverCfg := solver.DefaultConfig()
	if cfg.Workers > 0 {
		solverCfg.Workers = cfg.Workers
	}
	if err := solverCfg.Validate(); err != nil {
		gologger.Error().Msgf("[%s] %v", runID, err)
		os.Exit(ExitConfigError)
	}

	s, err := buildSolver(cfg.Solver, rules, goal, solverCfg)
	if err != nil {
		gologger.Error().Msgf("[%s] %v", runID, err)
		os.Exit(ExitDomainError)
	}

	gologger.Info().Msgf("[%s] running %s solver at k=%d (verify=%v)", runID, cfg.Solver, cfg.StartK, cfg.Verify)

	ocfg := orchestrate.Config{StartK: cfg.StartK, Verify: cfg.Verify, Certify: *runAudit, MaxK: cfg.MaxK}
	result, err := orchestrate.Run(s, rules, goal, ocfg)
	if err != nil {
		if _, ok := err.(*orchestrate.NotConvergedError); ok {
			gologger.Error().Msgf("[%s] %v", runID, err)
			os.Exit(ExitNotConverged)
		}
		gologger.Error().Msgf("[%s] %v", runID, err)
		os.Exit(ExitRunError)
	}

	gologger.Info().Msgf("[%s] converged at k=%d in %d iteration(s)", runID, result.FinalK, result.Iterations)
	if result.Verdict != nil {
		if result.Verdict.Correct {
			gologger.Info().Msgf("[%s] certified correct (%d proof steps)", runID, len(result.Verdict.Trail.Steps))
		} else {
			gologger.Warning().Msgf("[%s] certification failed: witness=%v", runID, result.Verdict.Witness)
		}
	}

	var out io.Writer = os.Stdout
	if *outPath != "" {
		f, err := os.Create(*outPath)
		if err != nil {
			gologger.Error().Msgf("[%s] opening %s: %v", runID, *outPath, err)
			os.Exit(ExitRunError)
		}
		defer f.Close()
		out = f
	}
	if err := result.DFA.SaveJSON(out); err != nil {
		gologger.Error().Msgf("[%s] writing result: %v", runID, err)
		os.Exit(ExitRunError)
	}
}

func loadGoal(path string, rules *ruleset.Ruleset) (*automaton.DFA, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	if strings.HasSuffix(path, ".jff") {
		return automaton.LoadJFLAP(f, rules.Alphabet)
	}
	return automaton.LoadJSON(f)
}

func buildSolver(name string, rules *ruleset.Ruleset, goal *automaton.DFA, cfg solver.Config) (solver.Solver, error) {
	switch name {
	case "", "bfs":
		return solver.NewBFSSolver(rules, goal, cfg)
	case "subset":
		return solver.NewSubsetSolver(rules, goal, cfg)
	case "minkid":
		return solver.NewMinkidSolver(rules, goal, cfg)
	default:
		return nil, fmt.Errorf("srsdfa: unknown solver %q", name)
	}
}
