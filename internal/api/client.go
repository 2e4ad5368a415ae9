package api

import (
	"context"

	"github.com/vilaca/contributor-roster/internal/domain"
)

// ContributorClient lists a repository's contributors one page at a time.
// Small, focused interface so the lister can be tested against fakes.
type ContributorClient interface {
	// ListContributors returns one page (1-based) of contributors.
	// An empty slice means the page had no entries.
	ListContributors(ctx context.Context, repo domain.Repository, page, perPage int) ([]domain.Contributor, error)
}

// ProfileClient fetches user profiles.
type ProfileClient interface {
	// GetUserProfile returns the profile for a handle.
	GetUserProfile(ctx context.Context, username string) (*domain.UserProfile, error)
}

// Client is implemented by platform clients that support both operations.
type Client interface {
	ContributorClient
	ProfileClient
}

// ClientConfig holds common configuration for API clients.
type ClientConfig struct {
	BaseURL string
	Token   string
}
