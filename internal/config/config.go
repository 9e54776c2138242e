// Package config holds the user-authored Fargate task configuration and the
// runtime options of a compilation.
package config

import "gopkg.in/yaml.v3"

// Config is the `custom.fargate` section of a service definition.
type Config struct {
	// Environment is merged under every task's own environment.
	Environment *OrderedMap[any] `yaml:"environment"`
	// Tasks maps a task identifier to its specification, in declaration order.
	Tasks *OrderedMap[TaskSpec] `yaml:"tasks" validate:"required"`
}

// TaskSpec describes one containerized background task.
//
// Scalar fields are typed `any` because they are copied into the template
// verbatim: a user may write a literal or an intrinsic function.
type TaskSpec struct {
	Image         any              `yaml:"image"`
	Environment   *OrderedMap[any] `yaml:"environment"`
	PortMappings  any              `yaml:"port-mappings"`
	Desired       any              `yaml:"desired"`
	LoadBalancers any              `yaml:"load-balancers"`
	DependsOn     any              `yaml:"dependsOn"`
	Memory        any              `yaml:"memory"`
	Cpu           any              `yaml:"cpu"`
	Role          any              `yaml:"role"`
	Network       *NetworkSpec     `yaml:"network"`
	Override      *Override        `yaml:"override"`

	// hasEnvironment records whether the environment key was present, even
	// with a null value.
	hasEnvironment bool
}

// DeclaredEnvironment returns the task's own environment: nil when the task
// has no environment key, an empty map when the key is present but null.
func (s TaskSpec) DeclaredEnvironment() *OrderedMap[any] {
	if s.Environment == nil && s.hasEnvironment {
		return NewOrderedMap[any]()
	}
	return s.Environment
}

// UnmarshalYAML decodes a task and records the presence of `environment`.
func (s *TaskSpec) UnmarshalYAML(node *yaml.Node) error {
	type rawTaskSpec TaskSpec
	if err := node.Decode((*rawTaskSpec)(s)); err != nil {
		return err
	}
	s.hasEnvironment = hasKey(node, "environment")
	return nil
}

// NetworkSpec is the awsvpc network configuration of a task's service.
type NetworkSpec struct {
	PublicIP       any `yaml:"public-ip"`
	SecurityGroups any `yaml:"security-groups"`
	Subnets        any `yaml:"subnets"`
}

// Override holds partial resource shapes that replace keys of the derived
// resources. Each map is applied with shallow "override replaces" semantics.
type Override struct {
	Container map[string]any `yaml:"container"`
	Task      map[string]any `yaml:"task"`
	Service   map[string]any `yaml:"service"`
	Network   map[string]any `yaml:"network"`
	Role      any            `yaml:"role"`

	// hasRole records whether the role key was present, even with a null value.
	hasRole bool
}

// HasRole reports whether the override declares its own task role.
func (o *Override) HasRole() bool {
	return o != nil && (o.hasRole || o.Role != nil)
}

// WithRole returns a copy of o with the task role set.
func (o Override) WithRole(role any) Override {
	o.Role = role
	o.hasRole = true
	return o
}

// UnmarshalYAML decodes an override block and records the presence of `role`.
func (o *Override) UnmarshalYAML(node *yaml.Node) error {
	type rawOverride Override
	if err := node.Decode((*rawOverride)(o)); err != nil {
		return err
	}
	o.hasRole = hasKey(node, "role")
	return nil
}
