package document

import (
	"fmt"

	wetwire "github.com/lex00/wetwire-fargate-go"
	"github.com/lex00/wetwire-fargate-go/intrinsics"
	"github.com/lex00/wetwire-fargate-go/internal/serialize"
)

// executionRole is the role a serverless provider compiles for its functions.
type executionRole struct {
	AssumeRolePolicyDocument intrinsics.PolicyDocument `json:"AssumeRolePolicyDocument"`
	Policies                 []rolePolicy              `json:"Policies"`
	Path                     string                    `json:"Path"`
	RoleName                 any                       `json:"RoleName"`
}

type rolePolicy struct {
	PolicyName     any                       `json:"PolicyName"`
	PolicyDocument intrinsics.PolicyDocument `json:"PolicyDocument"`
}

// NewProviderTemplate returns the template a serverless provider produces
// before any plugin runs: a deployment bucket and the Lambda execution role.
// It stands in for the host's compiled template when none is supplied.
func NewProviderTemplate(service, stage string) (*wetwire.Template, error) {
	role := executionRole{
		AssumeRolePolicyDocument: intrinsics.NewPolicyDocument(intrinsics.PolicyStatement{
			Effect:    "Allow",
			Principal: intrinsics.ServicePrincipal{"lambda.amazonaws.com"},
			Action:    []any{"sts:AssumeRole"},
		}),
		Policies: []rolePolicy{{
			PolicyName:     intrinsics.Join{Delimiter: "-", Values: []any{service, stage, "lambda"}},
			PolicyDocument: intrinsics.NewPolicyDocument(intrinsics.PolicyStatement{
				Effect:   "Allow",
				Action:   []any{"logs:CreateLogStream", "logs:CreateLogGroup", "logs:PutLogEvents"},
				Resource: []any{intrinsics.Sub{String: "arn:${AWS::Partition}:logs:${AWS::Region}:${AWS::AccountId}:log-group:/aws/lambda/" + service + "-" + stage + "*:*"}},
			}),
		}},
		Path:     "/",
		RoleName: intrinsics.Join{Delimiter: "-", Values: []any{service, stage, intrinsics.AWS_REGION, "lambdaRole"}},
	}

	props, err := serialize.Properties(role)
	if err != nil {
		return nil, fmt.Errorf("serializing %s: %w", ExecutionRoleName, err)
	}

	return &wetwire.Template{
		AWSTemplateFormatVersion: "2010-09-09",
		Description:              "The AWS CloudFormation template for this Serverless application",
		Resources: map[string]wetwire.ResourceDef{
			"ServerlessDeploymentBucket": {
				Type: "AWS::S3::Bucket",
				Properties: map[string]any{
					"BucketEncryption": map[string]any{
						"ServerSideEncryptionConfiguration": []any{
							map[string]any{
								"ServerSideEncryptionByDefault": map[string]any{"SSEAlgorithm": "AES256"},
							},
						},
					},
				},
			},
			ExecutionRoleName: {
				Type:       "AWS::IAM::Role",
				Properties: props,
			},
		},
		Outputs: map[string]any{
			"ServerlessDeploymentBucketName": map[string]any{
				"Value": map[string]any{"Ref": "ServerlessDeploymentBucket"},
			},
		},
	}, nil
}
