package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/vilaca/contributor-roster/internal/api"
	"github.com/vilaca/contributor-roster/internal/domain"
	"github.com/vilaca/contributor-roster/internal/logging"
)

// ProfileResolver turns a handle into a roster row via a profile lookup.
type ProfileResolver struct {
	client api.ProfileClient
	logger logging.Logger
}

// NewProfileResolver creates a resolver.
func NewProfileResolver(client api.ProfileClient, logger logging.Logger) *ProfileResolver {
	if logger == nil {
		logger = logging.NewNopLogger()
	}
	return &ProfileResolver{client: client, logger: logger}
}

// Resolve fetches the profile for login and splits its name.
//
// A failed fetch degrades to an empty name with OutcomeFetchFailed and a nil
// error. Malformed profile bodies and context cancellation are returned as
// errors.
func (r *ProfileResolver) Resolve(ctx context.Context, login string) (domain.Resolution, error) {
	profile, err := r.client.GetUserProfile(ctx, login)
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return domain.Resolution{}, fmt.Errorf("resolving %s cancelled: %w", login, ctxErr)
		}
		if api.IsDecodeError(err) {
			return domain.Resolution{}, fmt.Errorf("resolving %s: %w", login, err)
		}
		r.logger.Debug(ctx, "profile fetch failed, leaving name empty", "login", login, "error", err)
		return domain.Resolution{
			Row:     domain.Row{Username: login},
			Outcome: domain.OutcomeFetchFailed,
			Err:     err,
		}, nil
	}

	fullName := profile.FullName()
	if strings.TrimSpace(fullName) == "" {
		return domain.Resolution{
			Row:     domain.Row{Username: login},
			Outcome: domain.OutcomeNoName,
		}, nil
	}

	return domain.Resolution{
		Row:     domain.NewRow(login, fullName),
		Outcome: domain.OutcomeResolved,
	}, nil
}
