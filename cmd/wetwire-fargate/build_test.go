package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lex00/wetwire-fargate-go/internal/template"
)

func TestNewBuildCmd(t *testing.T) {
	cmd := newBuildCmd()

	assert.Equal(t, "build", cmd.Use)
	assert.NotEmpty(t, cmd.Short)

	for _, name := range []string{"config", "template", "service", "stage", "format", "output"} {
		assert.NotNil(t, cmd.Flags().Lookup(name), "missing --%s flag", name)
	}
	assert.Equal(t, "serverless.yml", cmd.Flags().Lookup("config").DefValue)
	assert.Equal(t, "json", cmd.Flags().Lookup("format").DefValue)
}

func TestRunBuild_ProviderSkeleton(t *testing.T) {
	result := runBuild(inputs{
		configPath: writeConfig(t, workerConfig),
		service:    "jobs",
		stage:      "dev",
	})
	require.True(t, result.Success, "errors: %v", result.Errors)

	assert.Equal(t, []string{
		"FargateTasksCluster",
		"FargateTasksLogGroup",
		"IamRoleLambdaExecution",
		"MyworkerService",
		"MyworkerTask",
		"ServerlessDeploymentBucket",
	}, result.Resources)

	role := result.Template.Resources["IamRoleLambdaExecution"]
	assert.Equal(t,
		[]any{"arn:aws:iam::aws:policy/service-role/AmazonECSTaskExecutionRolePolicy"},
		role.Properties["ManagedPolicyArns"])
}

func TestRunBuild_MergesIntoTemplate(t *testing.T) {
	dir := t.TempDir()
	tmplPath := filepath.Join(dir, "cloudformation-template-update-stack.json")
	require.NoError(t, os.WriteFile(tmplPath, []byte(`{
  "AWSTemplateFormatVersion": "2010-09-09",
  "Resources": {
    "HelloLambdaFunction": {"Type": "AWS::Lambda::Function", "Properties": {"Handler": "handler.hello"}}
  }
}`), 0644))

	cfgPath := writeConfig(t, `tasks:
  worker:
    image: worker:latest
    override:
      role: arn:aws:iam::123456789012:role/worker
    network:
      subnets: [subnet-1234]
`)

	result := runBuild(inputs{configPath: cfgPath, templatePath: tmplPath})
	require.True(t, result.Success, "errors: %v", result.Errors)

	assert.Contains(t, result.Resources, "HelloLambdaFunction")
	assert.Contains(t, result.Resources, "WorkerTask")
	assert.Equal(t, "arn:aws:iam::123456789012:role/worker",
		result.Template.Resources["WorkerTask"].Properties["TaskRoleArn"])
}

func TestRunBuild_Errors(t *testing.T) {
	t.Run("missing config", func(t *testing.T) {
		result := runBuild(inputs{configPath: filepath.Join(t.TempDir(), "nope.yml")})
		assert.False(t, result.Success)
		assert.Len(t, result.Errors, 1)
	})

	t.Run("missing network", func(t *testing.T) {
		result := runBuild(inputs{configPath: writeConfig(t, "tasks:\n  worker:\n    image: worker:latest\n")})
		assert.False(t, result.Success)
		require.Len(t, result.Errors, 1)
		assert.Contains(t, result.Errors[0], "tasks.worker.network")
	})

	t.Run("role without trust policy", func(t *testing.T) {
		dir := t.TempDir()
		tmplPath := filepath.Join(dir, "template.yaml")
		require.NoError(t, os.WriteFile(tmplPath, []byte(`Resources:
  IamRoleLambdaExecution:
    Type: AWS::IAM::Role
    Properties: {}
`), 0644))

		result := runBuild(inputs{configPath: writeConfig(t, workerConfig), templatePath: tmplPath})
		assert.False(t, result.Success)
	})
}

func TestOutputResult(t *testing.T) {
	result := runBuild(inputs{configPath: writeConfig(t, workerConfig), service: "jobs", stage: "dev"})
	require.True(t, result.Success)

	out := filepath.Join(t.TempDir(), "template.yaml")
	require.NoError(t, outputResult(result, template.FormatYAML, out))

	loaded, err := template.Load(out)
	require.NoError(t, err)
	assert.Len(t, loaded.Resources, len(result.Resources))

	assert.Error(t, outputResult(runBuild(inputs{configPath: "/nonexistent.yml"}), template.FormatJSON, ""))
}
