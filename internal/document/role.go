package document

import (
	"fmt"
)

// ExecutionRoleName is the logical name of the provider-managed execution role.
const ExecutionRoleName = "IamRoleLambdaExecution"

// ShapeError reports a resource that does not have the structure an
// operation expects. Path is a dotted property path below Resources.
type ShapeError struct {
	Path   string
	Reason string
}

func (e *ShapeError) Error() string {
	return fmt.Sprintf("%s: %s", e.Path, e.Reason)
}

// Role is a view over an IAM role resource whose trust policy and managed
// policies can be extended in place.
type Role struct {
	name  string
	props map[string]any
	// principal is the Principal object of the first trust statement.
	principal map[string]any
}

// Role resolves the role resource with the given logical name. The role must
// carry AssumeRolePolicyDocument.Statement[0].Principal.
func (d *Document) Role(name string) (*Role, error) {
	res, ok := d.Get(name)
	if !ok {
		return nil, &ShapeError{Path: name, Reason: "resource not found"}
	}
	if res.Properties == nil {
		return nil, &ShapeError{Path: name + ".Properties", Reason: "missing"}
	}

	path := name + ".Properties.AssumeRolePolicyDocument"
	policy, ok := res.Properties["AssumeRolePolicyDocument"].(map[string]any)
	if !ok {
		return nil, &ShapeError{Path: path, Reason: "missing or not an object"}
	}

	path += ".Statement"
	statements, ok := policy["Statement"].([]any)
	if !ok || len(statements) == 0 {
		return nil, &ShapeError{Path: path, Reason: "missing or empty"}
	}

	path += "[0]"
	statement, ok := statements[0].(map[string]any)
	if !ok {
		return nil, &ShapeError{Path: path, Reason: "not an object"}
	}

	path += ".Principal"
	principal, ok := statement["Principal"].(map[string]any)
	if !ok || principal == nil {
		return nil, &ShapeError{Path: path, Reason: "missing or not an object"}
	}

	return &Role{name: name, props: res.Properties, principal: principal}, nil
}

// Name returns the logical name of the role.
func (r *Role) Name() string {
	return r.name
}

// TrustedServices returns the service principals of the first trust statement.
func (r *Role) TrustedServices() []any {
	switch v := r.principal["Service"].(type) {
	case []any:
		return v
	case []string:
		out := make([]any, len(v))
		for i, service := range v {
			out[i] = service
		}
		return out
	case nil:
		return nil
	default:
		return []any{v}
	}
}

// TrustsService reports whether service is a trusted principal.
func (r *Role) TrustsService(service string) bool {
	return containsString(r.TrustedServices(), service)
}

// TrustService adds service to the trusted principals unless already present.
// It reports whether the trust policy changed.
func (r *Role) TrustService(service string) bool {
	if r.TrustsService(service) {
		return false
	}
	r.principal["Service"] = append(r.TrustedServices(), service)
	return true
}

// ManagedPolicyArns returns the role's managed policy ARNs.
func (r *Role) ManagedPolicyArns() []any {
	arns, _ := r.props["ManagedPolicyArns"].([]any)
	return arns
}

// AttachManagedPolicy adds arn to ManagedPolicyArns, creating the list when
// absent, unless already attached. It reports whether the list changed.
func (r *Role) AttachManagedPolicy(arn string) (bool, error) {
	existing, present := r.props["ManagedPolicyArns"]
	var arns []any
	if present && existing != nil {
		list, ok := existing.([]any)
		if !ok {
			return false, &ShapeError{
				Path:   r.name + ".Properties.ManagedPolicyArns",
				Reason: "not a list",
			}
		}
		arns = list
	}
	if containsString(arns, arn) {
		return false, nil
	}
	if arns == nil {
		arns = []any{}
	}
	r.props["ManagedPolicyArns"] = append(arns, arn)
	return true, nil
}

func containsString(list []any, s string) bool {
	for _, item := range list {
		if str, ok := item.(string); ok && str == s {
			return true
		}
	}
	return false
}
