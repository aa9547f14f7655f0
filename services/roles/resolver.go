// Package roles decides whether a caller holds a privileged role by asking an
// ordered list of sources until one of them is authoritative.
package roles

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/upb/recruitment-platform/cognito"
	"github.com/upb/recruitment-platform/models"
	"github.com/upb/recruitment-platform/repositories"
	"go.uber.org/zap"
)

// Verdict is a single source's answer for a subject
type Verdict int

const (
	// VerdictInconclusive means the source cannot confirm the role; the
	// next source is consulted
	VerdictInconclusive Verdict = iota
	// VerdictPrivileged means the source confirms the role; resolution stops
	VerdictPrivileged
)

func (v Verdict) String() string {
	if v == VerdictPrivileged {
		return "privileged"
	}
	return "inconclusive"
}

// Resolver is one source of role information
type Resolver interface {
	Name() string
	Resolve(ctx context.Context, subject, role string) (Verdict, error)
}

// Decision is the outcome of running the chain for one subject
type Decision struct {
	Privileged bool
	// Source names the resolver that decided, empty when none confirmed
	Source string
	// Err is the lookup failure that forced a denial, if any
	Err error
}

// Chain asks its resolvers in order. The first privileged verdict wins and
// the first error denies.
type Chain struct {
	resolvers []Resolver
	timeout   time.Duration
	logger    *zap.Logger
}

// NewChain creates a chain; timeout bounds each resolver call when positive
func NewChain(logger *zap.Logger, timeout time.Duration, resolvers ...Resolver) *Chain {
	return &Chain{
		resolvers: resolvers,
		timeout:   timeout,
		logger:    logger,
	}
}

// Resolve runs the chain for subject against role
func (c *Chain) Resolve(ctx context.Context, subject, role string) Decision {
	for _, r := range c.resolvers {
		verdict, err := c.lookup(ctx, r, subject, role)
		if err != nil {
			c.logger.Warn("role lookup failed, denying",
				zap.String("resolver", r.Name()),
				zap.String("sub", subject),
				zap.String("role", role),
				zap.Error(err),
			)
			return Decision{Source: r.Name(), Err: err}
		}
		if verdict == VerdictPrivileged {
			c.logger.Debug("role confirmed",
				zap.String("resolver", r.Name()),
				zap.String("sub", subject),
				zap.String("role", role),
			)
			return Decision{Privileged: true, Source: r.Name()}
		}
	}
	return Decision{}
}

// HasRole reports whether subject holds role, failing closed on lookup errors
func (c *Chain) HasRole(ctx context.Context, subject, role string) bool {
	return c.Resolve(ctx, subject, role).Privileged
}

func (c *Chain) lookup(ctx context.Context, r Resolver, subject, role string) (Verdict, error) {
	if c.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.timeout)
		defer cancel()
	}
	return r.Resolve(ctx, subject, role)
}

// AttributeSource reads identity provider user attributes by subject
type AttributeSource interface {
	GetUserAttributes(ctx context.Context, subject string) (map[string]string, error)
}

// AttributeResolver checks a custom attribute on the identity provider's
// user record. A user unknown to the identity provider is inconclusive;
// any other lookup error is returned.
type AttributeResolver struct {
	source    AttributeSource
	attribute string
}

// NewAttributeResolver creates a resolver reading attribute (e.g. "custom:role")
func NewAttributeResolver(source AttributeSource, attribute string) *AttributeResolver {
	return &AttributeResolver{source: source, attribute: attribute}
}

// Name identifies the resolver in logs
func (r *AttributeResolver) Name() string { return "identity_provider" }

// Resolve implements Resolver
func (r *AttributeResolver) Resolve(ctx context.Context, subject, role string) (Verdict, error) {
	attrs, err := r.source.GetUserAttributes(ctx, subject)
	if errors.Is(err, cognito.ErrUserNotFound) {
		return VerdictInconclusive, nil
	}
	if err != nil {
		return VerdictInconclusive, fmt.Errorf("read %s: %w", r.attribute, err)
	}
	if attrs[r.attribute] == role {
		return VerdictPrivileged, nil
	}
	return VerdictInconclusive, nil
}

// UserStore reads platform user records by subject
type UserStore interface {
	GetByID(ctx context.Context, id string) (*models.User, error)
}

// UserRecordResolver checks the role stored on the platform's user record.
// A missing record is inconclusive.
type UserRecordResolver struct {
	users UserStore
}

// NewUserRecordResolver creates a resolver over the users table
func NewUserRecordResolver(users UserStore) *UserRecordResolver {
	return &UserRecordResolver{users: users}
}

// Name identifies the resolver in logs
func (r *UserRecordResolver) Name() string { return "user_record" }

// Resolve implements Resolver
func (r *UserRecordResolver) Resolve(ctx context.Context, subject, role string) (Verdict, error) {
	user, err := r.users.GetByID(ctx, subject)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return VerdictInconclusive, nil
		}
		return VerdictInconclusive, fmt.Errorf("read user record: %w", err)
	}
	if user.HasRole(models.UserRole(role)) {
		return VerdictPrivileged, nil
	}
	return VerdictInconclusive, nil
}
