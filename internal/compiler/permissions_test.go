package compiler

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lex00/wetwire-fargate-go/internal/config"
	"github.com/lex00/wetwire-fargate-go/internal/document"
)

func TestReconcilePermissions_Idempotent(t *testing.T) {
	doc := document.New(providerTemplate())

	require.NoError(t, ReconcilePermissions(doc))
	require.NoError(t, ReconcilePermissions(doc))

	role, err := doc.Role(document.ExecutionRoleName)
	require.NoError(t, err)

	count := 0
	for _, s := range role.TrustedServices() {
		if s == ECSTasksPrincipal {
			count++
		}
	}
	assert.Equal(t, 1, count)
	assert.Equal(t, []any{TaskExecutionPolicyArn}, role.ManagedPolicyArns())
}

func TestReconcilePermissions_KeepsExistingPolicies(t *testing.T) {
	tmpl := providerTemplate()
	tmpl.Resources[document.ExecutionRoleName].Properties["ManagedPolicyArns"] = []any{"arn:aws:iam::aws:policy/ReadOnlyAccess"}
	doc := document.New(tmpl)

	require.NoError(t, ReconcilePermissions(doc))

	role, err := doc.Role(document.ExecutionRoleName)
	require.NoError(t, err)
	assert.Equal(t, []any{"arn:aws:iam::aws:policy/ReadOnlyAccess", TaskExecutionPolicyArn}, role.ManagedPolicyArns())
}

func TestReconcilePermissions_ManagedPolicyArnsNotAList(t *testing.T) {
	tmpl := providerTemplate()
	tmpl.Resources[document.ExecutionRoleName].Properties["ManagedPolicyArns"] = "arn:aws:iam::aws:policy/ReadOnlyAccess"

	err := ReconcilePermissions(document.New(tmpl))

	var cfgErr *ConfigurationError
	require.True(t, errors.As(err, &cfgErr))
	assert.Equal(t, "Resources."+document.ExecutionRoleName, cfgErr.Path)
	assert.True(t, errors.Is(err, ErrInvalidRole))
}

func TestNeedsExecutionRole(t *testing.T) {
	withRole := config.TaskSpec{Override: &config.Override{Role: "arn:aws:iam::123456789012:role/task"}}
	nullRole := config.Override{}.WithRole(nil)
	withNullRole := config.TaskSpec{Override: &nullRole}
	without := config.TaskSpec{}

	tasks := config.NewOrderedMap[config.TaskSpec]()
	tasks.Set("a", withRole)
	tasks.Set("b", withNullRole)
	assert.False(t, NeedsExecutionRole(tasks))

	tasks.Set("c", without)
	assert.True(t, NeedsExecutionRole(tasks))

	assert.False(t, NeedsExecutionRole(nil))
}
