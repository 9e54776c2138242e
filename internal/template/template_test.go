package template

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	wetwire "github.com/lex00/wetwire-fargate-go"
	"github.com/lex00/wetwire-fargate-go/intrinsics"
)

func sampleTemplate() *wetwire.Template {
	return &wetwire.Template{
		AWSTemplateFormatVersion: "2010-09-09",
		Resources: map[string]wetwire.ResourceDef{
			"FargateTasksCluster": {Type: "AWS::ECS::Cluster"},
			"WorkerService": {
				Type:      "AWS::ECS::Service",
				DependsOn: []any{"WorkerTask"},
				Properties: map[string]any{
					"Cluster":      intrinsics.SubRef("FargateTasksCluster"),
					"DesiredCount": 1,
					"ServiceName":  "true",
				},
			},
		},
	}
}

func TestParseFormat(t *testing.T) {
	f, err := ParseFormat("yaml")
	require.NoError(t, err)
	assert.Equal(t, FormatYAML, f)

	_, err = ParseFormat("xml")
	assert.Error(t, err)
}

func TestToJSON(t *testing.T) {
	data, err := ToJSON(sampleTemplate())
	require.NoError(t, err)

	assert.JSONEq(t, `{
		"AWSTemplateFormatVersion": "2010-09-09",
		"Resources": {
			"FargateTasksCluster": {"Type": "AWS::ECS::Cluster"},
			"WorkerService": {
				"Type": "AWS::ECS::Service",
				"DependsOn": ["WorkerTask"],
				"Properties": {
					"Cluster": {"Fn::Sub": "${FargateTasksCluster}"},
					"DesiredCount": 1,
					"ServiceName": "true"
				}
			}
		}
	}`, string(data))
}

func TestToYAML_RendersIntrinsicsAndBlockStyle(t *testing.T) {
	data, err := ToYAML(sampleTemplate())
	require.NoError(t, err)

	out := string(data)
	assert.Contains(t, out, "Fn::Sub: ${FargateTasksCluster}")
	assert.Contains(t, out, `ServiceName: "true"`)
	assert.NotContains(t, out, "{")
	assert.NotContains(t, out, "String:")
}

func TestParse_JSONAndYAMLAgree(t *testing.T) {
	jsonData, err := ToJSON(sampleTemplate())
	require.NoError(t, err)
	yamlData, err := ToYAML(sampleTemplate())
	require.NoError(t, err)

	fromJSON, err := Parse(jsonData)
	require.NoError(t, err)
	fromYAML, err := Parse(yamlData)
	require.NoError(t, err)

	assert.Equal(t, fromJSON, fromYAML)
	assert.Equal(t, float64(1), fromJSON.Resources["WorkerService"].Properties["DesiredCount"])
}

func TestParse_Invalid(t *testing.T) {
	_, err := Parse([]byte("Resources: [unclosed"))
	assert.Error(t, err)
}

func TestLoadAndMarshal(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "template.yaml")

	data, err := Marshal(sampleTemplate(), FormatYAML)
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(path, data, 0644))

	loaded, err := Load(path)
	require.NoError(t, err)
	assert.Len(t, loaded.Resources, 2)

	_, err = Load(filepath.Join(dir, "missing.json"))
	assert.Error(t, err)

	_, err = Marshal(sampleTemplate(), Format("toml"))
	assert.Error(t, err)
}
