package main

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewDiffCmd(t *testing.T) {
	cmd := newDiffCmd()

	assert.Equal(t, "diff", cmd.Use)
	assert.NotEmpty(t, cmd.Short)
	assert.NotNil(t, cmd.Flags().Lookup("format"))
	assert.NotNil(t, cmd.Flags().Lookup("ignore-order"))
}

func TestRunDiff_Text(t *testing.T) {
	var buf bytes.Buffer
	err := runDiff(inputs{configPath: writeConfig(t, workerConfig), service: "jobs", stage: "dev"}, "text", false, &buf)
	require.NoError(t, err)

	out := buf.String()
	assert.Contains(t, out, "+ FargateTasksCluster (AWS::ECS::Cluster)")
	assert.Contains(t, out, "+ MyworkerTask (AWS::ECS::TaskDefinition)")
	assert.Contains(t, out, "~ IamRoleLambdaExecution (AWS::IAM::Role)")
	assert.Contains(t, out, "ManagedPolicyArns added")
	assert.Contains(t, out, "4 added, 1 modified, 0 removed")
}

func TestRunDiff_JSON(t *testing.T) {
	var buf bytes.Buffer
	err := runDiff(inputs{configPath: writeConfig(t, workerConfig), service: "jobs", stage: "dev"}, "json", false, &buf)
	require.NoError(t, err)

	var decoded struct {
		Summary struct {
			Added    int `json:"added"`
			Modified int `json:"modified"`
		} `json:"summary"`
	}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &decoded))
	assert.Equal(t, 4, decoded.Summary.Added)
	assert.Equal(t, 1, decoded.Summary.Modified)
}

func TestRunDiff_UnknownFormat(t *testing.T) {
	err := runDiff(inputs{}, "xml", false, &bytes.Buffer{})
	assert.Error(t, err)
}
