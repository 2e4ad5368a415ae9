package service

import (
	"context"
	"fmt"

	"github.com/vilaca/contributor-roster/internal/api"
	"github.com/vilaca/contributor-roster/internal/domain"
	"github.com/vilaca/contributor-roster/internal/logging"
)

// StopReason records why pagination ended.
type StopReason string

const (
	// StopEmptyPage means a page came back with no entries.
	StopEmptyPage StopReason = "empty_page"
	// StopFetchFailed means a page request failed (status or transport).
	StopFetchFailed StopReason = "fetch_failed"
	// StopPageLimit means the page ceiling was reached.
	StopPageLimit StopReason = "page_limit"
)

// Listing is the accumulated result of paging through contributors.
type Listing struct {
	Contributors []domain.Contributor
	// Pages is the number of page requests made, including the last one.
	Pages      int
	StopReason StopReason
	// LastErr is the failure that ended pagination, if any.
	LastErr error
}

// Logins returns the contributor handles in listing order.
func (l *Listing) Logins() []string {
	logins := make([]string, len(l.Contributors))
	for i, c := range l.Contributors {
		logins[i] = c.Login
	}
	return logins
}

// ContributorLister pages through a repository's contributors.
// Follows Single Responsibility Principle - only handles pagination.
type ContributorLister struct {
	client   api.ContributorClient
	pageSize int
	maxPages int
	logger   logging.Logger
}

// NewContributorLister creates a lister. Non-positive pageSize or maxPages
// fall back to api.DefaultPageSize and api.DefaultMaxPages.
func NewContributorLister(client api.ContributorClient, pageSize, maxPages int, logger logging.Logger) *ContributorLister {
	if pageSize <= 0 {
		pageSize = api.DefaultPageSize
	}
	if maxPages <= 0 {
		maxPages = api.DefaultMaxPages
	}
	if logger == nil {
		logger = logging.NewNopLogger()
	}
	return &ContributorLister{
		client:   client,
		pageSize: pageSize,
		maxPages: maxPages,
		logger:   logger,
	}
}

// List requests pages 1, 2, ... until a page is empty or a request fails.
//
// A failed page (non-success status or transport error) ends the listing
// like an empty page does, and what was accumulated is returned without
// error. Only malformed bodies and context cancellation are returned as
// errors.
func (l *ContributorLister) List(ctx context.Context, repo domain.Repository) (*Listing, error) {
	listing := &Listing{Contributors: []domain.Contributor{}}
	log := l.logger.With("repository", repo.FullName())

	for page := 1; ; page++ {
		if page > l.maxPages {
			listing.StopReason = StopPageLimit
			log.Warn(ctx, "page limit reached, stopping", "max_pages", l.maxPages, "contributors", len(listing.Contributors))
			return listing, nil
		}

		contributors, err := l.client.ListContributors(ctx, repo, page, l.pageSize)
		listing.Pages = page
		if err != nil {
			if ctxErr := ctx.Err(); ctxErr != nil {
				return nil, fmt.Errorf("listing contributors cancelled: %w", ctxErr)
			}
			if api.IsDecodeError(err) {
				return nil, fmt.Errorf("listing contributors: %w", err)
			}
			listing.StopReason = StopFetchFailed
			listing.LastErr = err
			log.Debug(ctx, "page request failed, treating as end of data", "page", page, "error", err)
			return listing, nil
		}

		if len(contributors) == 0 {
			listing.StopReason = StopEmptyPage
			log.Debug(ctx, "empty page, listing complete", "page", page, "contributors", len(listing.Contributors))
			return listing, nil
		}

		listing.Contributors = append(listing.Contributors, contributors...)
		log.Debug(ctx, "fetched contributors page", "page", page, "count", len(contributors), "bots", countBots(contributors))
	}
}

func countBots(contributors []domain.Contributor) int {
	bots := 0
	for _, c := range contributors {
		if c.IsBot() {
			bots++
		}
	}
	return bots
}
