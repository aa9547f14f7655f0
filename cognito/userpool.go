package cognito

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/cognitoidentityprovider"
)

// ErrUserNotFound is returned when the user pool has no user for a subject
var ErrUserNotFound = errors.New("user not found in user pool")

// DirectoryAPI is the subset of the user pool API the services call
type DirectoryAPI interface {
	ListUsers(ctx context.Context, params *cognitoidentityprovider.ListUsersInput, optFns ...func(*cognitoidentityprovider.Options)) (*cognitoidentityprovider.ListUsersOutput, error)
}

// UserPool reads user records from the identity provider
type UserPool struct {
	api        DirectoryAPI
	userPoolID string
}

// NewUserPool creates a UserPool over a user pool API client
func NewUserPool(api DirectoryAPI, userPoolID string) *UserPool {
	return &UserPool{
		api:        api,
		userPoolID: userPoolID,
	}
}

// NewUserPoolFromConfig builds the API client from the default AWS
// credential chain for the given region
func NewUserPoolFromConfig(ctx context.Context, region, userPoolID string) (*UserPool, error) {
	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, awsconfig.WithRegion(region))
	if err != nil {
		return nil, fmt.Errorf("failed to load AWS config: %w", err)
	}
	return NewUserPool(cognitoidentityprovider.NewFromConfig(awsCfg), userPoolID), nil
}

// GetUserAttributes returns the attributes of the user whose sub attribute
// equals subject, keyed by attribute name (custom attributes keep their
// "custom:" prefix). Users are matched on sub, never on username.
func (p *UserPool) GetUserAttributes(ctx context.Context, subject string) (map[string]string, error) {
	if subject == "" || strings.ContainsAny(subject, `"\`) {
		return nil, fmt.Errorf("%w: %q", ErrUserNotFound, subject)
	}

	out, err := p.api.ListUsers(ctx, &cognitoidentityprovider.ListUsersInput{
		UserPoolId: aws.String(p.userPoolID),
		Filter:     aws.String(fmt.Sprintf(`sub = "%s"`, subject)),
		Limit:      aws.Int32(1),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list users in user pool: %w", err)
	}
	if len(out.Users) == 0 {
		return nil, fmt.Errorf("%w: %s", ErrUserNotFound, subject)
	}

	user := out.Users[0]
	attrs := make(map[string]string, len(user.Attributes))
	for _, attr := range user.Attributes {
		name := aws.ToString(attr.Name)
		if name == "" {
			continue
		}
		attrs[name] = aws.ToString(attr.Value)
	}
	return attrs, nil
}
