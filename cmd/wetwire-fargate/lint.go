package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	wetwire "github.com/lex00/wetwire-fargate-go"
	"github.com/lex00/wetwire-fargate-go/internal/config"
	"github.com/lex00/wetwire-fargate-go/internal/linter"
	"github.com/lex00/wetwire-fargate-go/internal/schema"
	"github.com/lex00/wetwire-fargate-go/internal/validation"
)

func newLintCmd() *cobra.Command {
	var (
		in           inputs
		outputFormat string
	)

	cmd := &cobra.Command{
		Use:   "lint",
		Short: "Check the task configuration and the compiled template",
		Long: `Lint checks the task configuration, compiles it, and validates the result with cfn-lint.

Configuration rules:
    WFG001: Task identifiers that normalize to the same logical name
    WFG002: Task identifiers with no letters or digits
    WFG003: Images without a pinned tag or digest
    WFG004: Tasks without an image
    WFG005: Tasks with a public IP
    WFG006: Hardcoded secrets in environment values

The compiled resources are also checked offline against the ECS, IAM and
Logs resource shapes before cfn-lint runs.

Exits with status 2 when an error-level issue is found.

Examples:
    wetwire-fargate lint --config serverless.yml
    wetwire-fargate lint -f json`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runLint(in, outputFormat, os.Stdout)
		},
	}

	addInputFlags(cmd, &in)
	cmd.Flags().StringVarP(&outputFormat, "format", "f", "text", "Output format: text or json")

	return cmd
}

func runLint(in inputs, format string, w io.Writer) error {
	if format != "text" && format != "json" {
		return fmt.Errorf("unknown format: %s", format)
	}

	cfg, err := config.Load(in.configPath)
	if err != nil {
		return err
	}
	configIssues := lintConfig(cfg)

	_, tmpl, err := compile(in)
	if err != nil {
		return err
	}

	result, err := validation.LintTemplate(tmpl)
	if err != nil {
		return err
	}

	issues := append(configIssues, schemaIssues(tmpl)...)
	result.Issues = append(issues, result.Issues...)
	for _, issue := range issues {
		if issue.Severity == validation.SeverityError {
			result.Success = false
		}
	}

	errs, warnings, info := validation.Counts(result)
	logger.Debug("Lint finished",
		zap.Int("errors", errs),
		zap.Int("warnings", warnings),
		zap.Int("info", info))

	return outputLintResult(*result, format, w)
}

func outputLintResult(result wetwire.LintResult, format string, w io.Writer) error {
	switch format {
	case "json":
		data, err := json.MarshalIndent(result, "", "  ")
		if err != nil {
			return err
		}
		fmt.Fprintln(w, string(data))

	default:
		if len(result.Issues) == 0 {
			fmt.Fprintln(w, "No issues found.")
		}
		for _, issue := range result.Issues {
			fmt.Fprintf(w, "%s: %s\n", issue.Severity, validation.FormatIssue(issue))
		}
	}

	if !result.Success {
		return errIssuesFound
	}
	return nil
}

// lintConfig runs the configuration rules and converts their findings.
func lintConfig(cfg *config.Config) []wetwire.LintIssue {
	res := linter.LintConfig(cfg, linter.Options{})
	issues := make([]wetwire.LintIssue, 0, len(res.Issues))
	for _, issue := range res.Issues {
		issues = append(issues, wetwire.LintIssue{
			Rule:     issue.Rule,
			Severity: issue.Severity,
			Message:  issue.Message,
			Path:     issue.Path,
		})
	}
	return issues
}

// schemaIssues validates the compiled resources against known resource shapes.
func schemaIssues(tmpl *wetwire.Template) []wetwire.LintIssue {
	var issues []wetwire.LintIssue
	for _, e := range schema.ValidateTemplate(tmpl, schema.Options{}).Errors {
		issues = append(issues, wetwire.LintIssue{
			Rule:     "schema",
			Severity: validation.SeverityError,
			Message:  e.Message,
			Path:     "Resources/" + e.Resource + "/Properties/" + e.Property,
		})
	}
	return issues
}
