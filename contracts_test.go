package wetwire_fargate

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func TestResourceDef_DependsOnList(t *testing.T) {
	tests := []struct {
		name      string
		dependsOn any
		expected  []string
	}{
		{
			name:      "nil",
			dependsOn: nil,
			expected:  nil,
		},
		{
			name:      "single string",
			dependsOn: "MyBucket",
			expected:  []string{"MyBucket"},
		},
		{
			name:      "string slice",
			dependsOn: []string{"A", "B"},
			expected:  []string{"A", "B"},
		},
		{
			name:      "decoded list",
			dependsOn: []any{"A", 3, "B"},
			expected:  []string{"A", "B"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := ResourceDef{Type: "AWS::ECS::Service", DependsOn: tt.dependsOn}
			assert.Equal(t, tt.expected, res.DependsOnList())
		})
	}
}

func TestTemplate_JSONRoundTrip(t *testing.T) {
	src := `{
		"AWSTemplateFormatVersion": "2010-09-09",
		"Description": "The AWS CloudFormation template for this Serverless application",
		"Resources": {
			"ServerlessDeploymentBucket": {"Type": "AWS::S3::Bucket", "DeletionPolicy": "Retain"},
			"Worker": {"Type": "AWS::ECS::Service", "DependsOn": "Listener"}
		},
		"Outputs": {"ServerlessDeploymentBucketName": {"Value": {"Ref": "ServerlessDeploymentBucket"}}}
	}`

	var tmpl Template
	require.NoError(t, json.Unmarshal([]byte(src), &tmpl))

	assert.Equal(t, "Retain", tmpl.Resources["ServerlessDeploymentBucket"].DeletionPolicy)
	assert.Equal(t, []string{"Listener"}, tmpl.Resources["Worker"].DependsOnList())
	assert.Contains(t, tmpl.Outputs, "ServerlessDeploymentBucketName")

	data, err := json.Marshal(tmpl)
	require.NoError(t, err)
	assert.JSONEq(t, src, string(data))
}

func TestTemplate_YAMLOmitsEmptySections(t *testing.T) {
	tmpl := Template{
		AWSTemplateFormatVersion: "2010-09-09",
		Resources: map[string]ResourceDef{
			"FargateTasksCluster": {Type: "AWS::ECS::Cluster"},
		},
	}

	data, err := yaml.Marshal(tmpl)
	require.NoError(t, err)

	out := string(data)
	assert.Contains(t, out, "FargateTasksCluster")
	assert.NotContains(t, out, "Outputs")
	assert.NotContains(t, out, "Properties")
}
