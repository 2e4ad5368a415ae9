package github

import (
	"context"
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"github.com/vilaca/contributor-roster/internal/api"
	"github.com/vilaca/contributor-roster/internal/domain"
)

// DefaultBaseURL is the public GitHub REST API endpoint.
const DefaultBaseURL = "https://api.github.com"

var _ api.Client = (*Client)(nil)

// Client implements api.Client for GitHub.
// Follows Single Responsibility Principle - only handles GitHub API communication.
type Client struct {
	base *api.BaseClient
}

// NewClient creates a new GitHub client.
// Uses dependency injection for HTTPClient (IoC).
func NewClient(config api.ClientConfig, httpClient api.HTTPClient) *Client {
	baseURL := strings.TrimRight(config.BaseURL, "/")
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}

	base := api.NewBaseClient(baseURL, config.Token, httpClient)
	base.Headers["Accept"] = "application/vnd.github+json"
	base.Headers["X-GitHub-Api-Version"] = "2022-11-28"

	return &Client{base: base}
}

// ListContributors retrieves one page of a repository's contributors.
func (c *Client) ListContributors(ctx context.Context, repo domain.Repository, page, perPage int) ([]domain.Contributor, error) {
	query := url.Values{}
	query.Set("per_page", strconv.Itoa(perPage))
	query.Set("page", strconv.Itoa(page))

	endpoint := fmt.Sprintf("%s/repos/%s/%s/contributors?%s",
		c.base.BaseURL, url.PathEscape(repo.Owner), url.PathEscape(repo.Name), query.Encode())

	var ghContributors []githubContributor
	if err := c.base.GetJSON(ctx, endpoint, &ghContributors); err != nil {
		return nil, fmt.Errorf("failed to get contributors page %d: %w", page, err)
	}

	return convertContributors(ghContributors), nil
}

// GetUserProfile retrieves the public profile of a user.
func (c *Client) GetUserProfile(ctx context.Context, username string) (*domain.UserProfile, error) {
	endpoint := fmt.Sprintf("%s/users/%s", c.base.BaseURL, url.PathEscape(username))

	var ghUser githubUser
	if err := c.base.GetJSON(ctx, endpoint, &ghUser); err != nil {
		return nil, fmt.Errorf("failed to get user %s: %w", username, err)
	}

	return convertUser(ghUser, username), nil
}

// convertContributors converts GitHub contributors to domain models.
func convertContributors(ghContributors []githubContributor) []domain.Contributor {
	contributors := make([]domain.Contributor, 0, len(ghContributors))
	for _, c := range ghContributors {
		contributors = append(contributors, domain.Contributor{
			Login: c.Login,
			Type:  c.Type,
		})
	}
	return contributors
}

// convertUser converts a GitHub user to a domain profile.
// The requested handle is kept when the response omits login.
func convertUser(u githubUser, requested string) *domain.UserProfile {
	username := u.Login
	if username == "" {
		username = requested
	}
	return &domain.UserProfile{
		Username: username,
		Name:     u.Name,
	}
}

// GitHub API response types
type githubContributor struct {
	Login string `json:"login"`
	Type  string `json:"type"`
}

type githubUser struct {
	Login string  `json:"login"`
	Name  *string `json:"name"`
}
