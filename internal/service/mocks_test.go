package service

import (
	"context"

	"github.com/vilaca/contributor-roster/internal/domain"
)

// mockClient is a test double for api.Client.
// Follows FIRST principles - Independent tests.
type mockClient struct {
	listContributorsFunc func(ctx context.Context, repo domain.Repository, page, perPage int) ([]domain.Contributor, error)
	getUserProfileFunc   func(ctx context.Context, username string) (*domain.UserProfile, error)

	listCalls    []int
	profileCalls []string
}

func (m *mockClient) ListContributors(ctx context.Context, repo domain.Repository, page, perPage int) ([]domain.Contributor, error) {
	m.listCalls = append(m.listCalls, page)
	if m.listContributorsFunc != nil {
		return m.listContributorsFunc(ctx, repo, page, perPage)
	}
	return nil, nil
}

func (m *mockClient) GetUserProfile(ctx context.Context, username string) (*domain.UserProfile, error) {
	m.profileCalls = append(m.profileCalls, username)
	if m.getUserProfileFunc != nil {
		return m.getUserProfileFunc(ctx, username)
	}
	return &domain.UserProfile{Username: username}, nil
}

// pagedContributors serves the given pages in order, then empty pages.
func pagedContributors(pages ...[]string) func(ctx context.Context, repo domain.Repository, page, perPage int) ([]domain.Contributor, error) {
	return func(ctx context.Context, repo domain.Repository, page, perPage int) ([]domain.Contributor, error) {
		if page > len(pages) {
			return []domain.Contributor{}, nil
		}
		return contributors(pages[page-1]...), nil
	}
}

func contributors(logins ...string) []domain.Contributor {
	result := make([]domain.Contributor, len(logins))
	for i, login := range logins {
		result[i] = domain.Contributor{Login: login}
	}
	return result
}

func strPtr(s string) *string {
	return &s
}

var testRepo = domain.Repository{Owner: "gdsfactory", Name: "gdsfactory"}
