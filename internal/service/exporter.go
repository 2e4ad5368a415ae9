package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/vilaca/contributor-roster/internal/domain"
	"github.com/vilaca/contributor-roster/internal/export"
	"github.com/vilaca/contributor-roster/internal/logging"
)

// Stage is the exporter's position in the pipeline.
type Stage int

// The pipeline stages, in order. StageIdle is the zero value, reported
// only before Export has been called.
const (
	StageIdle Stage = iota
	StageListing
	StageResolving
	StageDone
)

func (s Stage) String() string {
	switch s {
	case StageIdle:
		return "IDLE"
	case StageListing:
		return "LISTING"
	case StageResolving:
		return "RESOLVING"
	case StageDone:
		return "DONE"
	default:
		return "UNKNOWN"
	}
}

// Summary reports what an export did.
type Summary struct {
	Repository  domain.Repository
	Pages       int
	StopReason  StopReason
	Listed      int
	Written     int
	Resolved    int
	NoName      int
	FetchFailed int
}

// OpenWriter opens the destination for the roster.
type OpenWriter func() (export.RowWriter, error)

// Exporter runs the list, resolve and write pipeline for one repository.
// Follows Dependency Injection - every collaborator comes in through the constructor.
type Exporter struct {
	lister   *ContributorLister
	resolver *ProfileResolver
	open     OpenWriter
	logger   logging.Logger
	stage    Stage
}

// NewExporter creates an exporter.
func NewExporter(lister *ContributorLister, resolver *ProfileResolver, open OpenWriter, logger logging.Logger) *Exporter {
	if logger == nil {
		logger = logging.NewNopLogger()
	}
	return &Exporter{
		lister:   lister,
		resolver: resolver,
		open:     open,
		logger:   logger,
	}
}

// Stage returns the current pipeline stage.
func (e *Exporter) Stage() Stage {
	return e.stage
}

// Export lists every contributor of repo, resolves each one in listing
// order and writes one row per contributor.
//
// The writer is opened only after listing succeeds. A fatal error while
// resolving stops the run; rows already written stay in the output.
func (e *Exporter) Export(ctx context.Context, repo domain.Repository) (_ *Summary, err error) {
	log := e.logger.With("repository", repo.FullName())

	e.stage = StageListing
	listing, err := e.lister.List(ctx, repo)
	if err != nil {
		return nil, err
	}
	log.Info(ctx, "listed contributors", "count", len(listing.Contributors), "pages", listing.Pages, "stop_reason", listing.StopReason)

	summary := &Summary{
		Repository: repo,
		Pages:      listing.Pages,
		StopReason: listing.StopReason,
		Listed:     len(listing.Contributors),
	}

	writer, err := e.open()
	if err != nil {
		return nil, fmt.Errorf("failed to open output: %w", err)
	}
	defer func() {
		if closeErr := writer.Close(); closeErr != nil {
			err = errors.Join(err, closeErr)
		}
	}()

	if err := writer.WriteHeader(); err != nil {
		return nil, err
	}

	e.stage = StageResolving
	for _, contributor := range listing.Contributors {
		resolution, err := e.resolver.Resolve(ctx, contributor.Login)
		if err != nil {
			return nil, err
		}

		switch resolution.Outcome {
		case domain.OutcomeResolved:
			summary.Resolved++
		case domain.OutcomeNoName:
			summary.NoName++
		case domain.OutcomeFetchFailed:
			summary.FetchFailed++
		}

		if err := writer.Write(resolution.Row); err != nil {
			return nil, err
		}
		summary.Written++
	}

	e.stage = StageDone
	log.Info(ctx, "export complete",
		"written", summary.Written,
		"resolved", summary.Resolved,
		"no_name", summary.NoName,
		"fetch_failed", summary.FetchFailed)

	return summary, nil
}
