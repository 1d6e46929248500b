// cmd/cdk/main.go
//
// webstack – CDK app entry point (`cdk synth`, `cdk deploy`).
//
// Synth life-cycle
// ----------------
//
//  1. Read MODE, WEBSTACK_ENV_DIR, and WEBSTACK_ROOT.
//
//  2. Start the daily rotating logger (tees to stderr in a TTY).
//
//  3. Bootstrap configuration: merged documents first, then the secrets
//     overlay, both for the same mode.
//
//  4. Resolve `vault:` references (only if any exist) and validate the
//     typed settings.
//
//  5. Collect forwarded build variables and derive stack props.
//
//  6. Declare the website and CI/CD stacks, then synth.
//
// Any failure in steps 1 to 5 exits non-zero before a single construct is
// declared.
package main

import (
	"context"
	"log"

	"github.com/aws/aws-cdk-go/awscdk/v2"
	"github.com/aws/jsii-runtime-go"

	"github.com/yanizio/webstack/internal/config"
	"github.com/yanizio/webstack/internal/deploy"
	"github.com/yanizio/webstack/internal/logger"
	"github.com/yanizio/webstack/internal/secrets"
	"github.com/yanizio/webstack/internal/stacks"
)

func main() {
	defer jsii.Close()

	sel, err := config.ReadSelection()
	if err != nil {
		log.Fatalf("read selection: %v", err)
	}
	logOut, err := logger.New(sel.ResolvedRoot(), logger.StderrIsTTY())
	if err != nil {
		log.Fatalf("start logger: %v", err)
	}
	defer func() { _ = logOut.Sync() }()

	//
	// ── 1.  Configuration ───────────────────────────────────────────────
	//
	plan, err := resolvePlan(context.Background(), sel)
	if err != nil {
		logOut.Fatalw("configuration failed", "err", err)
	}

	//
	// ── 2.  Stacks ─────────────────────────────────────────────────────
	//
	app := awscdk.NewApp(nil)
	env := stacks.Env(plan.Website.Account, plan.Website.Region)

	web := stacks.NewWebsiteStack(app, &stacks.WebsiteStackProps{
		StackProps: awscdk.StackProps{
			Env:         env,
			Description: jsii.String("Static website bucket behind CloudFront for " + plan.BaseID),
		},
		Website: plan.Website,
	})

	stacks.NewPipelineStack(app, &stacks.PipelineStackProps{
		StackProps: awscdk.StackProps{
			Env:         env,
			Description: jsii.String("Build and deploy pipeline for " + plan.BaseID),
		},
		Pipeline:     plan.Pipeline,
		Bucket:       web.Bucket,
		Distribution: web.Distribution,
	})

	app.Synth(nil)
	logOut.Infow("synth complete", "mode", plan.Mode.String(), "base_id", plan.BaseID)
}

// resolvePlan runs every configuration step and returns the stack props.
func resolvePlan(ctx context.Context, sel config.Selection) (*deploy.Plan, error) {
	res, err := config.Bootstrap(sel)
	if err != nil {
		return nil, err
	}

	var resolver config.SecretResolver
	if len(res.Document.SecretRefs()) > 0 {
		cli, err := secrets.New()
		if err != nil {
			return nil, err
		}
		resolver = cli
	}

	settings, err := res.Document.Settings(ctx, resolver)
	if err != nil {
		return nil, err
	}

	target, err := config.ReadTarget()
	if err != nil {
		return nil, err
	}
	vars, err := config.BuildVariables(settings.Build.EnvPrefix)
	if err != nil {
		return nil, err
	}

	return deploy.NewPlan(settings, res.Mode, target.Account(), vars)
}
