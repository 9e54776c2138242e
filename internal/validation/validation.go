// Package validation runs cfn-lint-go over compiled CloudFormation templates.
package validation

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/lex00/cfn-lint-go/pkg/lint"

	wetwire "github.com/lex00/wetwire-fargate-go"
	"github.com/lex00/wetwire-fargate-go/internal/template"
)

// Severity levels reported on a LintIssue.
const (
	SeverityError   = "error"
	SeverityWarning = "warning"
	SeverityInfo    = "info"
)

// LintTemplate writes t to a scratch file and lints it.
func LintTemplate(t *wetwire.Template) (*wetwire.LintResult, error) {
	data, err := template.ToYAML(t)
	if err != nil {
		return nil, fmt.Errorf("serializing template: %w", err)
	}

	dir, err := os.MkdirTemp("", "wetwire-fargate-lint-")
	if err != nil {
		return nil, fmt.Errorf("creating scratch dir: %w", err)
	}
	defer os.RemoveAll(dir)

	path := filepath.Join(dir, "template.yaml")
	if err := os.WriteFile(path, data, 0644); err != nil {
		return nil, fmt.Errorf("writing template: %w", err)
	}
	return LintFile(path)
}

// LintFile runs cfn-lint-go on the given template file. The result passes
// when no error-level issue is found; warnings are acceptable.
func LintFile(path string) (*wetwire.LintResult, error) {
	if _, err := os.Stat(path); err != nil {
		return nil, fmt.Errorf("template file not found: %s", path)
	}

	linter := lint.New(lint.Options{})
	matches, err := linter.LintFile(path)
	if err != nil {
		return nil, fmt.Errorf("linter error: %w", err)
	}

	result := &wetwire.LintResult{Success: true}
	for _, match := range matches {
		issue := toIssue(match)
		if issue.Severity == SeverityError {
			result.Success = false
		}
		result.Issues = append(result.Issues, issue)
	}
	return result, nil
}

func toIssue(match lint.Match) wetwire.LintIssue {
	return wetwire.LintIssue{
		Rule:     match.Rule.ID,
		Severity: severity(match.Level),
		Message:  match.Message,
		Path:     joinPath(match.Location.Path),
	}
}

func severity(level string) string {
	switch level {
	case "Error":
		return SeverityError
	case "Warning":
		return SeverityWarning
	default:
		return SeverityInfo
	}
}

func joinPath(path []any) string {
	if len(path) == 0 {
		return ""
	}
	parts := make([]string, len(path))
	for i, p := range path {
		parts[i] = fmt.Sprintf("%v", p)
	}
	return strings.Join(parts, "/")
}

// FormatIssue formats an issue for display.
func FormatIssue(issue wetwire.LintIssue) string {
	if issue.Path != "" {
		return fmt.Sprintf("%s: %s (at %s)", issue.Rule, issue.Message, issue.Path)
	}
	return fmt.Sprintf("%s: %s", issue.Rule, issue.Message)
}

// Counts tallies issues by severity.
func Counts(result *wetwire.LintResult) (errors, warnings, info int) {
	if result == nil {
		return 0, 0, 0
	}
	for _, issue := range result.Issues {
		switch issue.Severity {
		case SeverityError:
			errors++
		case SeverityWarning:
			warnings++
		default:
			info++
		}
	}
	return errors, warnings, info
}
