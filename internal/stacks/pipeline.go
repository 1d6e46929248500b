// internal/stacks/pipeline.go
//
// CI/CD: GitHub → manual approval → CodeBuild → S3 deploy, then a second
// CodeBuild step that invalidates the CloudFront cache.
package stacks

import (
	"fmt"

	"github.com/aws/aws-cdk-go/awscdk/v2"
	"github.com/aws/aws-cdk-go/awscdk/v2/awscloudfront"
	"github.com/aws/aws-cdk-go/awscdk/v2/awscodebuild"
	"github.com/aws/aws-cdk-go/awscdk/v2/awscodepipeline"
	"github.com/aws/aws-cdk-go/awscdk/v2/awscodepipelineactions"
	"github.com/aws/aws-cdk-go/awscdk/v2/awsiam"
	"github.com/aws/aws-cdk-go/awscdk/v2/awss3"
	"github.com/aws/constructs-go/constructs/v10"
	"github.com/aws/jsii-runtime-go"

	"github.com/yanizio/webstack/internal/deploy"
)

// invalidateCommand runs inside the invalidation project.
const invalidateCommand = `aws cloudfront create-invalidation --distribution-id ${CLOUDFRONT_ID} --paths "/*"`

type PipelineStackProps struct {
	awscdk.StackProps
	Pipeline     deploy.PipelineProps
	Bucket       awss3.IBucket
	Distribution awscloudfront.IDistribution
}

// NewPipelineStack declares the build projects and the four-stage pipeline.
func NewPipelineStack(scope constructs.Construct, props *PipelineStackProps) awscdk.Stack {
	p := props.Pipeline
	stack := awscdk.NewStack(scope, jsii.String(p.StackID), &props.StackProps)

	sourceOutput := awscodepipeline.NewArtifact(nil)
	buildOutput := awscodepipeline.NewArtifact(nil)

	gitHubSource := awscodebuild.Source_GitHub(&awscodebuild.GitHubSourceProps{
		Owner:   jsii.String(p.Owner),
		Repo:    jsii.String(p.Repo),
		Webhook: jsii.Bool(true),
		WebhookFilters: &[]awscodebuild.FilterGroup{
			awscodebuild.FilterGroup_InEventOf(awscodebuild.EventAction_PUSH).
				AndBranchIs(jsii.String(p.Branch)),
		},
	})

	codebuildRole := awsiam.NewRole(stack, jsii.String("CodeBuildRole"), &awsiam.RoleProps{
		RoleName: jsii.String(p.RoleName),
		AssumedBy: awsiam.NewCompositePrincipal(
			awsiam.NewServicePrincipal(jsii.String("codebuild.amazonaws.com"), nil),
			awsiam.NewServicePrincipal(jsii.String("codepipeline.amazonaws.com"), nil),
		),
	})
	codebuildRole.AddToPolicy(awsiam.NewPolicyStatement(&awsiam.PolicyStatementProps{
		Resources: jsii.Strings("*"),
		Actions:   jsii.Strings("s3:*"),
	}))

	buildProject := awscodebuild.NewProject(stack, jsii.String(p.ProjectName), &awscodebuild.ProjectProps{
		ProjectName: jsii.String(p.ProjectName),
		Role:        codebuildRole,
		Badge:       jsii.Bool(true),
		Source:      gitHubSource,
		BuildSpec:   awscodebuild.BuildSpec_FromSourceFilename(jsii.String(p.Buildspec)),
		Environment: &awscodebuild.BuildEnvironment{
			BuildImage: awscodebuild.LinuxBuildImage_STANDARD_5_0(),
		},
		EnvironmentVariables: buildEnvironment(p),
	})
	if len(p.BuildVariables) == 0 {
		noteWarning(stack, "no build variables forwarded to %s", p.ProjectName)
	}

	sourceAction := awscodepipelineactions.NewCodeStarConnectionsSourceAction(&awscodepipelineactions.CodeStarConnectionsSourceActionProps{
		ActionName:    jsii.String("GitHub_Source"),
		Owner:         jsii.String(p.Owner),
		Repo:          jsii.String(p.Repo),
		Branch:        jsii.String(p.Branch),
		Output:        sourceOutput,
		ConnectionArn: jsii.String(p.ConnectionARN),
	})

	approvalAction := awscodepipelineactions.NewManualApprovalAction(&awscodepipelineactions.ManualApprovalActionProps{
		ActionName: jsii.String("BuildApproval"),
	})

	buildAction := awscodepipelineactions.NewCodeBuildAction(&awscodepipelineactions.CodeBuildActionProps{
		ActionName: jsii.String("Build"),
		Project:    buildProject,
		Input:      sourceOutput,
		Outputs:    &[]awscodepipeline.Artifact{buildOutput},
	})

	deployAction := awscodepipelineactions.NewS3DeployAction(&awscodepipelineactions.S3DeployActionProps{
		ActionName: jsii.String("DeployToS3"),
		Input:      buildOutput,
		Bucket:     props.Bucket,
		RunOrder:   jsii.Number(1),
	})

	invalidateProject := awscodebuild.NewPipelineProject(stack, jsii.String(p.InvalidationProjectName), &awscodebuild.PipelineProjectProps{
		ProjectName: jsii.String(p.InvalidationProjectName),
		BuildSpec: awscodebuild.BuildSpec_FromObject(&map[string]interface{}{
			"version": "0.2",
			"phases": map[string]interface{}{
				"build": map[string]interface{}{
					"commands": []string{invalidateCommand},
				},
			},
		}),
		EnvironmentVariables: &map[string]*awscodebuild.BuildEnvironmentVariable{
			"CLOUDFRONT_ID": {Value: props.Distribution.DistributionId()},
		},
	})

	distributionArn := fmt.Sprintf("arn:aws:cloudfront::%s:distribution/%s",
		*stack.Account(), *props.Distribution.DistributionId())
	invalidateProject.AddToRolePolicy(awsiam.NewPolicyStatement(&awsiam.PolicyStatementProps{
		Resources: jsii.Strings(distributionArn),
		Actions:   jsii.Strings("cloudfront:CreateInvalidation"),
	}))

	invalidateAction := awscodepipelineactions.NewCodeBuildAction(&awscodepipelineactions.CodeBuildActionProps{
		ActionName: jsii.String("InvalidateCache"),
		Project:    invalidateProject,
		Input:      buildOutput,
		RunOrder:   jsii.Number(2),
	})

	awscodepipeline.NewPipeline(stack, jsii.String(p.PipelineName), &awscodepipeline.PipelineProps{
		PipelineName: jsii.String(p.PipelineName),
		Stages: &[]*awscodepipeline.StageProps{
			{StageName: jsii.String("Source"), Actions: &[]awscodepipeline.IAction{sourceAction}},
			{StageName: jsii.String("Approve"), Actions: &[]awscodepipeline.IAction{approvalAction}},
			{StageName: jsii.String("Build"), Actions: &[]awscodepipeline.IAction{buildAction}},
			{StageName: jsii.String("Deploy"), Actions: &[]awscodepipeline.IAction{deployAction, invalidateAction}},
		},
	})

	noteInfo(stack, "pipeline %s builds %s/%s@%s", p.PipelineName, p.Owner, p.Repo, p.Branch)
	return stack
}

// buildEnvironment turns the forwarded variables into plaintext build
// environment variables.
func buildEnvironment(p deploy.PipelineProps) *map[string]*awscodebuild.BuildEnvironmentVariable {
	vars := make(map[string]*awscodebuild.BuildEnvironmentVariable, len(p.BuildVariables))
	for _, name := range p.BuildVariableNames() {
		vars[name] = &awscodebuild.BuildEnvironmentVariable{
			Value: jsii.String(p.BuildVariables[name]),
		}
	}
	return &vars
}
