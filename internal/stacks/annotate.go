// internal/stacks/annotate.go
//
// Synth-time messages.  Each note is attached to the construct as a CDK
// annotation (printed by `cdk synth`) and mirrored to the zap logger.
package stacks

import (
	"fmt"

	"github.com/aws/aws-cdk-go/awscdk/v2"
	"github.com/aws/constructs-go/constructs/v10"
	"github.com/aws/jsii-runtime-go"
	"go.uber.org/zap"
)

func noteInfo(scope constructs.Construct, format string, args ...interface{}) {
	msg := fmt.Sprintf(format, args...)
	awscdk.Annotations_Of(scope).AddInfo(jsii.String(msg))
	zap.S().Infow(msg, "construct", *scope.Node().Path())
}

func noteWarning(scope constructs.Construct, format string, args ...interface{}) {
	msg := fmt.Sprintf(format, args...)
	awscdk.Annotations_Of(scope).AddWarning(jsii.String(msg))
	zap.S().Warnw(msg, "construct", *scope.Node().Path())
}

// Env builds the stack environment.  An empty account is left unset so the
// toolkit can fill it from the active credentials.
func Env(account, region string) *awscdk.Environment {
	env := &awscdk.Environment{Region: jsii.String(region)}
	if account != "" {
		env.Account = jsii.String(account)
	}
	return env
}
