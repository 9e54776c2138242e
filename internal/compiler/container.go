package compiler

import (
	"fmt"

	"github.com/lex00/wetwire-fargate-go/intrinsics"
	"github.com/lex00/wetwire-fargate-go/internal/config"
	"github.com/lex00/wetwire-fargate-go/internal/serialize"
)

// logStreamPrefix prefixes every container's CloudWatch log stream.
const logStreamPrefix = "fargate"

// ContainerDefinition is the single container of a task definition.
type ContainerDefinition struct {
	Name             string           `json:"Name"`
	Image            any              `json:"Image,omitempty"`
	Environment      []KeyValuePair   `json:"Environment"`
	LogConfiguration LogConfiguration `json:"LogConfiguration"`
	PortMappings     any              `json:"PortMappings"`
}

// LogConfiguration routes container output to a log driver.
type LogConfiguration struct {
	LogDriver string         `json:"LogDriver"`
	Options   map[string]any `json:"Options"`
}

// awsLogs sends container output to the shared log group.
func awsLogs() LogConfiguration {
	return LogConfiguration{
		LogDriver: "awslogs",
		Options: map[string]any{
			"awslogs-region":        intrinsics.Sub{String: "${AWS::Region}"},
			"awslogs-group":         intrinsics.SubRef(LogGroupName),
			"awslogs-stream-prefix": logStreamPrefix,
		},
	}
}

// BuildContainer derives the container definition of a task and applies
// override.container on top. A missing image is left out rather than
// rejected.
func BuildContainer(identifier string, spec config.TaskSpec, env []KeyValuePair) (map[string]any, error) {
	base, err := serialize.Properties(ContainerDefinition{
		Name:             identifier,
		Image:            spec.Image,
		Environment:      env,
		LogConfiguration: awsLogs(),
		PortMappings:     ValueOrDefault(spec.PortMappings, []any{}),
	})
	if err != nil {
		return nil, fmt.Errorf("container %s: %w", identifier, err)
	}

	override, err := overrideProperties(spec.Override, func(o *config.Override) map[string]any { return o.Container })
	if err != nil {
		return nil, fmt.Errorf("container %s override: %w", identifier, err)
	}
	return Merge(base, override), nil
}

// overrideProperties normalizes one section of an override block, which may be absent.
func overrideProperties(o *config.Override, section func(*config.Override) map[string]any) (map[string]any, error) {
	if o == nil {
		return nil, nil
	}
	raw := section(o)
	if raw == nil {
		return nil, nil
	}
	v, err := serialize.Value(raw)
	if err != nil {
		return nil, err
	}
	props, _ := v.(map[string]any)
	return props, nil
}
