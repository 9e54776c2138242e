package compiler

import (
	"fmt"

	wetwire "github.com/lex00/wetwire-fargate-go"
	"github.com/lex00/wetwire-fargate-go/intrinsics"
	"github.com/lex00/wetwire-fargate-go/internal/config"
	"github.com/lex00/wetwire-fargate-go/internal/serialize"
)

const (
	// DefaultDesiredCount is the number of running copies of a task.
	DefaultDesiredCount = 1

	// DefaultAssignPublicIp keeps tasks off the public internet.
	DefaultAssignPublicIp = "DISABLED"
)

// ServiceProperties are the properties of an AWS::ECS::Service.
type ServiceProperties struct {
	Cluster              any                  `json:"Cluster"`
	LaunchType           string               `json:"LaunchType"`
	ServiceName          string               `json:"ServiceName"`
	DesiredCount         any                  `json:"DesiredCount"`
	TaskDefinition       any                  `json:"TaskDefinition"`
	LoadBalancers        any                  `json:"LoadBalancers"`
	NetworkConfiguration NetworkConfiguration `json:"NetworkConfiguration"`
}

// NetworkConfiguration wraps the awsvpc settings of a service.
type NetworkConfiguration struct {
	AwsvpcConfiguration map[string]any `json:"AwsvpcConfiguration"`
}

// AwsVpcConfiguration places a service's tasks in subnets and security groups.
type AwsVpcConfiguration struct {
	AssignPublicIp any `json:"AssignPublicIp"`
	SecurityGroups any `json:"SecurityGroups"`
	Subnets        any `json:"Subnets"`
}

// BuildService derives the service that keeps a task running in the shared
// cluster. override.network is applied to the awsvpc configuration, then
// override.service to the whole property set. The ServiceName is the raw
// identifier, not the normalized resource name.
func BuildService(identifier string, spec config.TaskSpec) (wetwire.ResourceDef, error) {
	if spec.Network == nil {
		return wetwire.ResourceDef{}, &ConfigurationError{
			Path: "tasks." + identifier + ".network",
			Err:  ErrMissingNetwork,
		}
	}

	vpc, err := serialize.Properties(AwsVpcConfiguration{
		AssignPublicIp: ValueOrDefault(spec.Network.PublicIP, DefaultAssignPublicIp),
		SecurityGroups: ValueOrDefault(spec.Network.SecurityGroups, []any{}),
		Subnets:        ValueOrDefault(spec.Network.Subnets, []any{}),
	})
	if err != nil {
		return wetwire.ResourceDef{}, fmt.Errorf("service %s network: %w", identifier, err)
	}

	networkOverride, err := overrideProperties(spec.Override, func(o *config.Override) map[string]any { return o.Network })
	if err != nil {
		return wetwire.ResourceDef{}, fmt.Errorf("service %s network override: %w", identifier, err)
	}

	base, err := serialize.Properties(ServiceProperties{
		Cluster:              intrinsics.SubRef(ClusterName),
		LaunchType:           LaunchTypeFargate,
		ServiceName:          identifier,
		DesiredCount:         ValueOrDefault(spec.Desired, DefaultDesiredCount),
		TaskDefinition:       intrinsics.SubRef(TaskResourceName(identifier)),
		LoadBalancers:        ValueOrDefault(spec.LoadBalancers, []any{}),
		NetworkConfiguration: NetworkConfiguration{AwsvpcConfiguration: Merge(vpc, networkOverride)},
	})
	if err != nil {
		return wetwire.ResourceDef{}, fmt.Errorf("service %s: %w", identifier, err)
	}

	serviceOverride, err := overrideProperties(spec.Override, func(o *config.Override) map[string]any { return o.Service })
	if err != nil {
		return wetwire.ResourceDef{}, fmt.Errorf("service %s override: %w", identifier, err)
	}

	dependsOn, err := serialize.Value(ValueOrDefault(spec.DependsOn, []any{}))
	if err != nil {
		return wetwire.ResourceDef{}, fmt.Errorf("service %s dependsOn: %w", identifier, err)
	}

	return wetwire.ResourceDef{
		Type:       "AWS::ECS::Service",
		DependsOn:  dependsOn,
		Properties: Merge(base, serviceOverride),
	}, nil
}
