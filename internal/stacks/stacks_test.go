package stacks

import (
	"os/exec"
	"testing"

	"github.com/aws/aws-cdk-go/awscdk/v2"
	"github.com/aws/jsii-runtime-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yanizio/webstack/internal/config"
	"github.com/yanizio/webstack/internal/deploy"
)

// requireNode skips when the jsii runtime cannot start.
func requireNode(t *testing.T) {
	t.Helper()
	if _, err := exec.LookPath("node"); err != nil {
		t.Skip("node not installed; jsii runtime unavailable")
	}
}

func testPlan(t *testing.T) *deploy.Plan {
	t.Helper()
	s := &config.Settings{
		BaseID:        "site",
		Region:        "us-east-1",
		GitHub:        config.GitHub{Owner: "acme", Repo: "web", Branch: "main"},
		ConnectionARN: "arn:aws:codestar-connections:us-east-1:123456789012:connection/abc",
		Route53:       config.Route53{DomainName: "app.example.com", HostedZoneName: "example.com"},
		ACM:           config.ACM{DomainName: "app.example.com", CertificateARN: "arn:aws:acm:us-east-1:123456789012:certificate/xyz"},
		Build:         config.Build{EnvPrefix: "VUE_APP_", Buildspec: "buildspec.yml"},
	}
	p, err := deploy.NewPlan(s, config.Development, "123456789012",
		map[string]string{"VUE_APP_BASE_URL": "https://app.example.com"})
	require.NoError(t, err)
	return p
}

// resourceTypes counts resources by CloudFormation type.
func resourceTypes(t *testing.T, tmpl interface{}) map[string]int {
	t.Helper()
	root, ok := tmpl.(map[string]interface{})
	require.True(t, ok, "template is not an object")
	res, ok := root["Resources"].(map[string]interface{})
	require.True(t, ok, "template has no Resources")

	out := map[string]int{}
	for _, r := range res {
		typ, _ := r.(map[string]interface{})["Type"].(string)
		out[typ]++
	}
	return out
}

func TestStacks_Synth(t *testing.T) {
	requireNode(t)
	plan := testPlan(t)

	app := awscdk.NewApp(nil)
	env := Env(plan.Website.Account, plan.Website.Region)
	web := NewWebsiteStack(app, &WebsiteStackProps{
		StackProps: awscdk.StackProps{Env: env},
		Website:    plan.Website,
	})
	NewPipelineStack(app, &PipelineStackProps{
		StackProps:   awscdk.StackProps{Env: env},
		Pipeline:     plan.Pipeline,
		Bucket:       web.Bucket,
		Distribution: web.Distribution,
	})

	asm := app.Synth(nil)

	webTypes := resourceTypes(t, asm.GetStackByName(jsii.String("site-dev-web")).Template())
	assert.Equal(t, 1, webTypes["AWS::S3::Bucket"])
	assert.Equal(t, 1, webTypes["AWS::CloudFront::Distribution"])
	assert.Equal(t, 1, webTypes["AWS::Route53::RecordSet"])

	cicdTypes := resourceTypes(t, asm.GetStackByName(jsii.String("site-dev-cicd")).Template())
	assert.Equal(t, 2, cicdTypes["AWS::CodeBuild::Project"])
	assert.Equal(t, 1, cicdTypes["AWS::CodePipeline::Pipeline"])
}

func TestEnv_OmitsEmptyAccount(t *testing.T) {
	env := Env("", "us-east-1")
	assert.Nil(t, env.Account)
	assert.Equal(t, "us-east-1", *env.Region)

	env = Env("123456789012", "us-east-1")
	require.NotNil(t, env.Account)
	assert.Equal(t, "123456789012", *env.Account)
}
