package compiler

import (
	"fmt"

	"github.com/lex00/wetwire-fargate-go/internal/config"
	"github.com/lex00/wetwire-fargate-go/internal/document"
)

const (
	// ECSTasksPrincipal is the service principal ECS uses to assume task roles.
	ECSTasksPrincipal = "ecs-tasks.amazonaws.com"

	// TaskExecutionPolicyArn grants image pull and log delivery to a task execution role.
	TaskExecutionPolicyArn = "arn:aws:iam::aws:policy/service-role/AmazonECSTaskExecutionRolePolicy"
)

// NeedsExecutionRole reports whether any task relies on the shared execution
// role, i.e. declares no override role of its own.
func NeedsExecutionRole(tasks *config.OrderedMap[config.TaskSpec]) bool {
	for _, id := range tasks.Keys() {
		spec, _ := tasks.Get(id)
		if !spec.Override.HasRole() {
			return true
		}
	}
	return false
}

// ReconcilePermissions makes the execution role assumable by ECS tasks and
// attaches the task execution managed policy. Both edits check membership
// first, so repeated calls leave the role unchanged.
func ReconcilePermissions(doc *document.Document) error {
	role, err := doc.Role(document.ExecutionRoleName)
	if err != nil {
		return &ConfigurationError{
			Path: "Resources." + document.ExecutionRoleName,
			Err:  fmt.Errorf("%w: %w", ErrInvalidRole, err),
		}
	}

	role.TrustService(ECSTasksPrincipal)

	if _, err := role.AttachManagedPolicy(TaskExecutionPolicyArn); err != nil {
		return &ConfigurationError{
			Path: "Resources." + role.Name(),
			Err:  fmt.Errorf("%w: %w", ErrInvalidRole, err),
		}
	}
	return nil
}
