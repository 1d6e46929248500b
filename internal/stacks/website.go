// internal/stacks/website.go
//
// Static website: S3 bucket → CloudFront → Route53 alias, with an existing
// ACM certificate.
package stacks

import (
	"github.com/aws/aws-cdk-go/awscdk/v2"
	"github.com/aws/aws-cdk-go/awscdk/v2/awscertificatemanager"
	"github.com/aws/aws-cdk-go/awscdk/v2/awscloudfront"
	"github.com/aws/aws-cdk-go/awscdk/v2/awscloudfrontorigins"
	"github.com/aws/aws-cdk-go/awscdk/v2/awsroute53"
	"github.com/aws/aws-cdk-go/awscdk/v2/awsroute53targets"
	"github.com/aws/aws-cdk-go/awscdk/v2/awss3"
	"github.com/aws/constructs-go/constructs/v10"
	"github.com/aws/jsii-runtime-go"

	"github.com/yanizio/webstack/internal/deploy"
)

const indexDocument = "index.html"

type WebsiteStackProps struct {
	awscdk.StackProps
	Website deploy.WebsiteProps
}

// WebsiteStack exports what the pipeline stack deploys to and invalidates.
type WebsiteStack struct {
	Stack        awscdk.Stack
	Bucket       awss3.IBucket
	Distribution awscloudfront.IDistribution
}

// NewWebsiteStack declares the hosting bucket, the distribution in front
// of it, and the DNS record pointing at the distribution.
func NewWebsiteStack(scope constructs.Construct, props *WebsiteStackProps) WebsiteStack {
	w := props.Website
	id := w.StackID
	stack := awscdk.NewStack(scope, jsii.String(id), &props.StackProps)

	bucket := awss3.NewBucket(stack, jsii.String(id+"-s3"), &awss3.BucketProps{
		BucketName:           jsii.String(w.BucketName),
		WebsiteIndexDocument: jsii.String(indexDocument),
		WebsiteErrorDocument: jsii.String(indexDocument),
		PublicReadAccess:     jsii.Bool(true),
		BlockPublicAccess:    awss3.BlockPublicAccess_BLOCK_ACLS(),
		RemovalPolicy:        awscdk.RemovalPolicy_DESTROY,
		ObjectOwnership:      awss3.ObjectOwnership_BUCKET_OWNER_PREFERRED,
	})

	hostedZone := awsroute53.HostedZone_FromLookup(stack, jsii.String(id+"-hostedZone"), &awsroute53.HostedZoneProviderProps{
		DomainName: jsii.String(w.HostedZoneName),
	})

	// The certificate is managed outside this app; CloudFront needs it in us-east-1.
	certificate := awscertificatemanager.Certificate_FromCertificateArn(stack, jsii.String(id+"-cert"), jsii.String(w.CertificateARN))
	if w.CertDomainName != w.DomainName {
		noteWarning(stack, "certificate domain %s differs from record %s", w.CertDomainName, w.DomainName)
	}

	distribution := awscloudfront.NewDistribution(stack, jsii.String(id+"-cfdis"), &awscloudfront.DistributionProps{
		DefaultBehavior: &awscloudfront.BehaviorOptions{
			Origin: awscloudfrontorigins.NewS3Origin(bucket, &awscloudfrontorigins.S3OriginProps{
				OriginId: jsii.String(w.OriginID),
			}),
			ViewerProtocolPolicy: awscloudfront.ViewerProtocolPolicy_REDIRECT_TO_HTTPS,
			AllowedMethods:       awscloudfront.AllowedMethods_ALLOW_ALL(),
		},
		// Client-side routes are served by the SPA entry point.
		ErrorResponses: &[]*awscloudfront.ErrorResponse{
			{
				HttpStatus:         jsii.Number(403),
				ResponseHttpStatus: jsii.Number(200),
				ResponsePagePath:   jsii.String("/" + indexDocument),
				Ttl:                awscdk.Duration_Seconds(jsii.Number(10)),
			},
		},
		DefaultRootObject: jsii.String(indexDocument),
		DomainNames:       jsii.Strings(w.DomainName),
		Certificate:       certificate,
	})

	awsroute53.NewARecord(stack, jsii.String(id+"-record"), &awsroute53.ARecordProps{
		Zone:       hostedZone,
		RecordName: jsii.String(w.DomainName),
		Target:     awsroute53.RecordTarget_FromAlias(awsroute53targets.NewCloudFrontTarget(distribution)),
	})

	noteInfo(stack, "website %s served from bucket %s", w.DomainName, w.BucketName)
	return WebsiteStack{Stack: stack, Bucket: bucket, Distribution: distribution}
}
