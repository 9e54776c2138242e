package compiler

import (
	"fmt"

	wetwire "github.com/lex00/wetwire-fargate-go"
	"github.com/lex00/wetwire-fargate-go/intrinsics"
	"github.com/lex00/wetwire-fargate-go/internal/config"
	"github.com/lex00/wetwire-fargate-go/internal/document"
	"github.com/lex00/wetwire-fargate-go/internal/serialize"
)

const (
	// NetworkModeAwsVpc gives every task its own elastic network interface.
	NetworkModeAwsVpc = "awsvpc"

	// LaunchTypeFargate is the serverless container launch type.
	LaunchTypeFargate = "FARGATE"

	// DefaultMemory and DefaultCpu size a task that declares neither.
	DefaultMemory = "0.5GB"
	DefaultCpu    = 256

	// defaultExecutionRoleArn is the account's conventional ECS execution role.
	defaultExecutionRoleArn = "arn:aws:iam::${AWS::AccountId}:role/ecsTaskExecutionRole"
)

// TaskDefinitionProperties are the properties of an AWS::ECS::TaskDefinition.
type TaskDefinitionProperties struct {
	ContainerDefinitions    []map[string]any `json:"ContainerDefinitions"`
	Family                  string           `json:"Family"`
	NetworkMode             string           `json:"NetworkMode"`
	ExecutionRoleArn        any              `json:"ExecutionRoleArn"`
	TaskRoleArn             any              `json:"TaskRoleArn"`
	RequiresCompatibilities []string         `json:"RequiresCompatibilities"`
	Memory                  any              `json:"Memory"`
	Cpu                     any              `json:"Cpu"`
}

// BuildTaskDefinition wraps a container definition into a Fargate task
// definition and applies override.task on top of its properties.
//
// The execution role is the task's `role`, else the account's
// ecsTaskExecutionRole. The task role is `override.role`, else the shared
// execution role of the document.
func BuildTaskDefinition(identifier string, spec config.TaskSpec, container map[string]any) (wetwire.ResourceDef, error) {
	var taskRole any = intrinsics.SubRef(document.ExecutionRoleName)
	if spec.Override.HasRole() && spec.Override.Role != nil {
		taskRole = spec.Override.Role
	}

	base, err := serialize.Properties(TaskDefinitionProperties{
		ContainerDefinitions:    []map[string]any{container},
		Family:                  identifier,
		NetworkMode:             NetworkModeAwsVpc,
		ExecutionRoleArn:        ValueOrDefault(spec.Role, intrinsics.Sub{String: defaultExecutionRoleArn}),
		TaskRoleArn:             taskRole,
		RequiresCompatibilities: []string{LaunchTypeFargate},
		Memory:                  ValueOrDefault(spec.Memory, DefaultMemory),
		Cpu:                     ValueOrDefault(spec.Cpu, DefaultCpu),
	})
	if err != nil {
		return wetwire.ResourceDef{}, fmt.Errorf("task definition %s: %w", identifier, err)
	}

	override, err := overrideProperties(spec.Override, func(o *config.Override) map[string]any { return o.Task })
	if err != nil {
		return wetwire.ResourceDef{}, fmt.Errorf("task definition %s override: %w", identifier, err)
	}

	return wetwire.ResourceDef{
		Type:       "AWS::ECS::TaskDefinition",
		Properties: Merge(base, override),
	}, nil
}
