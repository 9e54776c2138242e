package main

import (
	"bytes"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"

	wetwire "github.com/lex00/wetwire-fargate-go"
	"github.com/lex00/wetwire-fargate-go/internal/config"
)

func TestNewLintCmd(t *testing.T) {
	cmd := newLintCmd()

	assert.Equal(t, "lint", cmd.Use)
	assert.NotNil(t, cmd.Flags().Lookup("format"))
	assert.Equal(t, "text", cmd.Flags().Lookup("format").DefValue)
}

func TestOutputLintResult(t *testing.T) {
	t.Run("clean", func(t *testing.T) {
		var buf bytes.Buffer
		err := outputLintResult(wetwire.LintResult{Success: true}, "text", &buf)
		assert.NoError(t, err)
		assert.Equal(t, "No issues found.\n", buf.String())
	})

	t.Run("errors exit with issues found", func(t *testing.T) {
		var buf bytes.Buffer
		result := wetwire.LintResult{
			Success: false,
			Issues: []wetwire.LintIssue{{
				Rule:     "E3002",
				Severity: "error",
				Message:  "Invalid property",
				Path:     "Resources/MyworkerTask/Properties",
			}},
		}
		err := outputLintResult(result, "text", &buf)
		assert.True(t, errors.Is(err, errIssuesFound))
		assert.Equal(t, "error: E3002: Invalid property (at Resources/MyworkerTask/Properties)\n", buf.String())
	})

	t.Run("json", func(t *testing.T) {
		var buf bytes.Buffer
		err := outputLintResult(wetwire.LintResult{Success: true}, "json", &buf)
		assert.NoError(t, err)
		assert.JSONEq(t, `{"success": true}`, buf.String())
	})
}

func TestRunLint_UnknownFormat(t *testing.T) {
	assert.Error(t, runLint(inputs{}, "xml", &bytes.Buffer{}))
}

func TestLintConfig_ConvertsIssues(t *testing.T) {
	cfg, err := config.Load(writeConfig(t, workerConfig))
	if err != nil {
		t.Fatal(err)
	}

	issues := lintConfig(cfg)
	assert.Equal(t, []wetwire.LintIssue{{
		Rule:     "WFG003",
		Severity: "warning",
		Message:  `image "123456789012.dkr.ecr.us-east-1.amazonaws.com/worker:latest" is not pinned; redeploying will not pick up new pushes`,
		Path:     "tasks.my-worker.image",
	}}, issues)
}

func TestSchemaIssues(t *testing.T) {
	tmpl := &wetwire.Template{
		Resources: map[string]wetwire.ResourceDef{
			"WorkerService": {
				Type:       "AWS::ECS::Service",
				Properties: map[string]any{"LaunchType": "LAMBDA"},
			},
		},
	}

	issues := schemaIssues(tmpl)
	if assert.Len(t, issues, 1) {
		assert.Equal(t, "schema", issues[0].Rule)
		assert.Equal(t, "Resources/WorkerService/Properties/LaunchType", issues[0].Path)
	}

	result := runBuild(inputs{configPath: writeConfig(t, workerConfig), service: "jobs", stage: "dev"})
	assert.Empty(t, schemaIssues(&result.Template))
}
