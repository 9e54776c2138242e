package compiler

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lex00/wetwire-fargate-go/internal/config"
)

func TestBuildContainer_MissingImageIsOmitted(t *testing.T) {
	container, err := BuildContainer("worker", config.TaskSpec{}, []KeyValuePair{})
	require.NoError(t, err)

	assert.NotContains(t, container, "Image")
	assert.Equal(t, "worker", container["Name"])
}

func TestBuildContainer_OverrideReplacesPortMappingsOnly(t *testing.T) {
	spec := config.TaskSpec{
		Image:    "worker:latest",
		Override: &config.Override{Container: map[string]any{"PortMappings": []any{map[string]any{"p": 80}}}},
	}
	env := []KeyValuePair{{Name: "A", Value: "1"}}

	container, err := BuildContainer("worker", spec, env)
	require.NoError(t, err)

	assert.Equal(t, []any{map[string]any{"p": 80}}, container["PortMappings"])
	assert.Equal(t, []any{map[string]any{"Name": "A", "Value": "1"}}, container["Environment"])
}

func TestBuildTaskDefinition_DefaultSizing(t *testing.T) {
	res, err := BuildTaskDefinition("worker", config.TaskSpec{}, map[string]any{"Name": "worker"})
	require.NoError(t, err)

	assert.Equal(t, "0.5GB", res.Properties["Memory"])
	assert.Equal(t, 256, res.Properties["Cpu"])
	assert.Equal(t, []any{map[string]any{"Name": "worker"}}, res.Properties["ContainerDefinitions"])
}

func TestBuildTaskDefinition_NullOverrideRoleFallsBack(t *testing.T) {
	override := config.Override{}.WithRole(nil)
	res, err := BuildTaskDefinition("worker", config.TaskSpec{Override: &override}, map[string]any{})
	require.NoError(t, err)

	assert.Equal(t, map[string]any{"Fn::Sub": "${IamRoleLambdaExecution}"}, res.Properties["TaskRoleArn"])
}

func TestBuildService_EmptyNetworkDefaults(t *testing.T) {
	res, err := BuildService("worker", config.TaskSpec{Network: &config.NetworkSpec{}})
	require.NoError(t, err)

	assert.Equal(t, map[string]any{
		"AwsvpcConfiguration": map[string]any{
			"AssignPublicIp": "DISABLED",
			"SecurityGroups": []any{},
			"Subnets":        []any{},
		},
	}, res.Properties["NetworkConfiguration"])
	assert.Equal(t, 1, res.Properties["DesiredCount"])
	assert.Equal(t, []any{}, res.Properties["LoadBalancers"])
}

func TestBuildService_MissingNetwork(t *testing.T) {
	_, err := BuildService("worker", config.TaskSpec{})
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrMissingNetwork)
	assert.Contains(t, err.Error(), "tasks.worker.network")
}
