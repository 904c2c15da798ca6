// Package aws holds the AWS session plumbing used to publish quotes to S3.
package aws

import (
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/credentials/stscreds"
	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/aws/aws-sdk-go/service/sts"

	"coldcalc/internal/logging"
)

const httpTimeout = 30 * time.Second

// NewSession creates a session in region using the shared config and, when
// role is set, credentials from assuming that role.
func NewSession(role, region string) (*session.Session, error) {
	cfg := aws.NewConfig().WithHTTPClient(&http.Client{Timeout: httpTimeout})
	if region != "" {
		cfg = cfg.WithRegion(region)
	}

	sess, err := session.NewSessionWithOptions(session.Options{
		Config:            *cfg,
		SharedConfigState: session.SharedConfigEnable,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create AWS session: %w", err)
	}

	if role == "" {
		return sess, nil
	}

	roleARN := role
	if !IsRoleARN(role) {
		identity, err := sts.New(sess).GetCallerIdentity(&sts.GetCallerIdentityInput{})
		if err != nil {
			return nil, fmt.Errorf("failed to get caller identity: %w", err)
		}
		roleARN = RoleARN(aws.StringValue(identity.Account), role)
	}

	logging.Debug("Assuming role for upload", map[string]interface{}{
		"role_arn": roleARN,
		"region":   region,
	})

	creds := stscreds.NewCredentials(sess, roleARN, func(p *stscreds.AssumeRoleProvider) {
		p.RoleSessionName = fmt.Sprintf("coldcalc-upload-%d", time.Now().Unix())
	})
	assumed, err := session.NewSession(cfg.Copy().WithCredentials(creds))
	if err != nil {
		return nil, fmt.Errorf("failed to assume role %s: %w", roleARN, err)
	}
	return assumed, nil
}

// IsRoleARN reports whether role is already a full IAM role ARN
func IsRoleARN(role string) bool {
	return strings.HasPrefix(role, "arn:aws:iam::")
}

// RoleARN builds the ARN of roleName in accountID
func RoleARN(accountID, roleName string) string {
	return fmt.Sprintf("arn:aws:iam::%s:role/%s", accountID, roleName)
}
