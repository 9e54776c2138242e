// Package intrinsics provides the CloudFormation intrinsic functions used by
// compiled Fargate resources.
//
// Core types are re-exported from cloudformation-schema-go:
//
//	Ref{LogicalName: "MyBucket"}       → {"Ref": "MyBucket"}
//	Sub{String: "${AWS::Region}"}      → {"Fn::Sub": "${AWS::Region}"}
//	GetAtt{LogicalName: "R", Attribute: "Arn"} → {"Fn::GetAtt": ["R", "Arn"]}
package intrinsics

import (
	"github.com/lex00/cloudformation-schema-go/intrinsics"
)

type (
	// Ref represents a CloudFormation Ref intrinsic function.
	Ref = intrinsics.Ref

	// GetAtt represents a CloudFormation Fn::GetAtt intrinsic function.
	GetAtt = intrinsics.GetAtt

	// Sub represents a CloudFormation Fn::Sub intrinsic function.
	Sub = intrinsics.Sub

	// Join represents a CloudFormation Fn::Join intrinsic function.
	Join = intrinsics.Join
)

// SubRef references a resource of the same template through Fn::Sub.
//
//	SubRef("FargateTasksLogGroup") → {"Fn::Sub": "${FargateTasksLogGroup}"}
func SubRef(logicalName string) Sub {
	return Sub{String: "${" + logicalName + "}"}
}

// SubRefName extracts the logical name from a value produced by SubRef
// after it has been decoded into generic JSON. It returns false for any
// other shape, including Fn::Sub strings that are not a bare reference.
func SubRefName(v any) (string, bool) {
	m, ok := v.(map[string]any)
	if !ok || len(m) != 1 {
		return "", false
	}
	s, ok := m["Fn::Sub"].(string)
	if !ok || len(s) < 4 || s[:2] != "${" || s[len(s)-1] != '}' {
		return "", false
	}
	name := s[2 : len(s)-1]
	for _, r := range name {
		if r == '$' || r == '{' || r == '}' || r == ':' {
			return "", false
		}
	}
	return name, true
}

// RefName extracts the logical name from a decoded {"Ref": name} value.
func RefName(v any) (string, bool) {
	m, ok := v.(map[string]any)
	if !ok || len(m) != 1 {
		return "", false
	}
	s, ok := m["Ref"].(string)
	return s, ok && s != ""
}
