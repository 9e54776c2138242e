// Package linter checks Fargate task configurations for likely mistakes.
//
// The checks run on the user configuration before compilation, so they can
// point at the offending task rather than at a generated resource.
//
// Rules:
//
//	WFG001: Task identifiers that normalize to the same logical name
//	WFG002: Task identifiers with no letters or digits
//	WFG003: Images without a pinned tag or digest
//	WFG004: Tasks without an image
//	WFG005: Tasks with a public IP
//	WFG006: Hardcoded secrets in environment values
package linter

import (
	"sort"

	"github.com/lex00/wetwire-fargate-go/internal/config"
)

// Severity levels.
const (
	SeverityError   = "error"
	SeverityWarning = "warning"
	SeverityInfo    = "info"
)

// Issue is a single finding.
type Issue struct {
	Rule       string
	Severity   string
	Message    string
	Suggestion string
	// Path locates the finding in the configuration, e.g. "tasks.worker.image".
	Path string
}

// Result contains the outcome of linting.
type Result struct {
	Success bool
	Issues  []Issue
}

// Options configures the linter.
type Options struct {
	// Rules to enable. If empty, all rules are enabled.
	EnabledRules []string
}

// LintConfig runs the enabled rules over cfg. Success is false only when an
// error-level issue is found.
func LintConfig(cfg *config.Config, opts Options) Result {
	var issues []Issue
	if cfg != nil {
		for _, rule := range getRules(opts) {
			issues = append(issues, rule.Check(cfg)...)
		}
	}

	sort.SliceStable(issues, func(i, j int) bool {
		return issues[i].Path < issues[j].Path
	})

	success := true
	for _, issue := range issues {
		if issue.Severity == SeverityError {
			success = false
		}
	}

	return Result{
		Success: success,
		Issues:  issues,
	}
}

// getRules returns the rules to use based on options.
func getRules(opts Options) []Rule {
	all := AllRules()

	if len(opts.EnabledRules) == 0 {
		return all
	}

	enabled := make(map[string]bool)
	for _, id := range opts.EnabledRules {
		enabled[id] = true
	}

	var filtered []Rule
	for _, r := range all {
		if enabled[r.ID()] {
			filtered = append(filtered, r)
		}
	}

	return filtered
}
