package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vilaca/contributor-roster/internal/api"
	"github.com/vilaca/contributor-roster/internal/api/github"
	"github.com/vilaca/contributor-roster/internal/domain"
	"github.com/vilaca/contributor-roster/internal/export"
)

// recordingWriter is a test double for export.RowWriter.
type recordingWriter struct {
	header   bool
	rows     []domain.Row
	closed   bool
	writeErr error
}

func (w *recordingWriter) WriteHeader() error {
	w.header = true
	return nil
}

func (w *recordingWriter) Write(row domain.Row) error {
	if w.writeErr != nil {
		return w.writeErr
	}
	w.rows = append(w.rows, row)
	return nil
}

func (w *recordingWriter) Close() error {
	w.closed = true
	return nil
}

func newTestExporter(client *mockClient, w *recordingWriter) *Exporter {
	return NewExporter(
		NewContributorLister(client, 100, 0, nil),
		NewProfileResolver(client, nil),
		func() (export.RowWriter, error) { return w, nil },
		nil,
	)
}

// TestExport_RowCountMatchesListing tests one row per handle regardless of outcome.
// Follows AAA pattern.
func TestExport_RowCountMatchesListing(t *testing.T) {
	// Arrange
	client := &mockClient{
		listContributorsFunc: pagedContributors([]string{"alice", "bob"}, []string{"carol", "dave"}),
		getUserProfileFunc: func(ctx context.Context, username string) (*domain.UserProfile, error) {
			switch username {
			case "alice":
				return &domain.UserProfile{Username: username, Name: strPtr("Alice Smith")}, nil
			case "bob":
				return nil, &api.StatusError{StatusCode: 404}
			case "carol":
				return &domain.UserProfile{Username: username}, nil
			default:
				return nil, errors.New("timeout")
			}
		},
	}
	w := &recordingWriter{}
	exporter := newTestExporter(client, w)

	// Act
	summary, err := exporter.Export(context.Background(), testRepo)

	// Assert
	require.NoError(t, err)
	assert.True(t, w.header)
	assert.True(t, w.closed)
	assert.Equal(t, []domain.Row{
		{Username: "alice", FirstName: "Alice", LastName: "Smith"},
		{Username: "bob"},
		{Username: "carol"},
		{Username: "dave"},
	}, w.rows)
	assert.Equal(t, []string{"alice", "bob", "carol", "dave"}, client.profileCalls)
	assert.Equal(t, &Summary{
		Repository:  testRepo,
		Pages:       3,
		StopReason:  StopEmptyPage,
		Listed:      4,
		Written:     4,
		Resolved:    1,
		NoName:      1,
		FetchFailed: 2,
	}, summary)
	assert.Equal(t, StageDone, exporter.Stage())
}

func TestExport_EmptyListingWritesHeaderOnly(t *testing.T) {
	client := &mockClient{}
	w := &recordingWriter{}

	summary, err := newTestExporter(client, w).Export(context.Background(), testRepo)

	require.NoError(t, err)
	assert.True(t, w.header)
	assert.Empty(t, w.rows)
	assert.Equal(t, 0, summary.Written)
	assert.Empty(t, client.profileCalls)
}

// TestExport_FatalResolutionKeepsWrittenRows tests that a decode failure aborts mid-run.
func TestExport_FatalResolutionKeepsWrittenRows(t *testing.T) {
	// Arrange
	client := &mockClient{
		listContributorsFunc: pagedContributors([]string{"alice", "bob", "carol"}),
		getUserProfileFunc: func(ctx context.Context, username string) (*domain.UserProfile, error) {
			if username == "bob" {
				return nil, &api.DecodeError{Cause: errors.New("unexpected EOF")}
			}
			return &domain.UserProfile{Username: username, Name: strPtr("Some One")}, nil
		},
	}
	w := &recordingWriter{}
	exporter := newTestExporter(client, w)

	// Act
	summary, err := exporter.Export(context.Background(), testRepo)

	// Assert
	require.Error(t, err)
	assert.Nil(t, summary)
	assert.True(t, api.IsDecodeError(err))
	assert.Equal(t, []domain.Row{{Username: "alice", FirstName: "Some", LastName: "One"}}, w.rows)
	assert.True(t, w.closed)
	assert.Equal(t, StageResolving, exporter.Stage())
	assert.Equal(t, []string{"alice", "bob"}, client.profileCalls)
}

func TestExport_ListingErrorDoesNotOpenWriter(t *testing.T) {
	client := &mockClient{
		listContributorsFunc: func(ctx context.Context, repo domain.Repository, page, perPage int) ([]domain.Contributor, error) {
			return nil, &api.DecodeError{Cause: errors.New("bad json")}
		},
	}
	opened := false
	exporter := NewExporter(
		NewContributorLister(client, 100, 0, nil),
		NewProfileResolver(client, nil),
		func() (export.RowWriter, error) { opened = true; return &recordingWriter{}, nil },
		nil,
	)

	_, err := exporter.Export(context.Background(), testRepo)

	require.Error(t, err)
	assert.False(t, opened)
	assert.Equal(t, StageListing, exporter.Stage())
}

func TestExport_OpenWriterError(t *testing.T) {
	client := &mockClient{listContributorsFunc: pagedContributors([]string{"alice"})}
	exporter := NewExporter(
		NewContributorLister(client, 100, 0, nil),
		NewProfileResolver(client, nil),
		func() (export.RowWriter, error) { return nil, errors.New("permission denied") },
		nil,
	)

	_, err := exporter.Export(context.Background(), testRepo)

	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to open output")
	assert.Empty(t, client.profileCalls)
}

func TestExport_WriteError(t *testing.T) {
	client := &mockClient{listContributorsFunc: pagedContributors([]string{"alice"})}
	w := &recordingWriter{writeErr: errors.New("disk full")}

	_, err := newTestExporter(client, w).Export(context.Background(), testRepo)

	require.Error(t, err)
	assert.Contains(t, err.Error(), "disk full")
	assert.True(t, w.closed)
}

func TestExporter_StageIsIdleBeforeExport(t *testing.T) {
	exporter := newTestExporter(&mockClient{}, &recordingWriter{})

	assert.Equal(t, StageIdle, exporter.Stage())
}

func TestStage_String(t *testing.T) {
	assert.Equal(t, "IDLE", StageIdle.String())
	assert.Equal(t, "LISTING", StageListing.String())
	assert.Equal(t, "RESOLVING", StageResolving.String())
	assert.Equal(t, "DONE", StageDone.String())
	assert.Equal(t, "UNKNOWN", Stage(9).String())
}

// fakeGitHub serves the contributors and users endpoints from fixed data.
type fakeGitHub struct {
	pages        [][]string
	names        map[string]*string
	failedUsers  map[string]int
	userRequests atomic.Int32

	mu          sync.Mutex
	authHeaders []string
}

func (f *fakeGitHub) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	f.mu.Lock()
	f.authHeaders = append(f.authHeaders, r.Header.Get("Authorization"))
	f.mu.Unlock()

	switch {
	case r.URL.Path == "/repos/gdsfactory/gdsfactory/contributors":
		page, _ := strconv.Atoi(r.URL.Query().Get("page"))
		body := []map[string]any{}
		if page >= 1 && page <= len(f.pages) {
			for _, login := range f.pages[page-1] {
				body = append(body, map[string]any{"login": login, "type": "User", "contributions": 1})
			}
		}
		_ = json.NewEncoder(w).Encode(body)
	case strings.HasPrefix(r.URL.Path, "/users/"):
		f.userRequests.Add(1)
		login := strings.TrimPrefix(r.URL.Path, "/users/")
		if status, ok := f.failedUsers[login]; ok {
			http.Error(w, `{"message":"nope"}`, status)
			return
		}
		_ = json.NewEncoder(w).Encode(map[string]any{"login": login, "name": f.names[login]})
	default:
		http.NotFound(w, r)
	}
}

func runEndToEnd(t *testing.T, fake *fakeGitHub) (string, *Summary) {
	t.Helper()
	server := httptest.NewServer(fake)
	t.Cleanup(server.Close)

	client := github.NewClient(api.ClientConfig{BaseURL: server.URL, Token: "fake-token"}, server.Client())
	outPath := filepath.Join(t.TempDir(), "contributors.csv")
	exporter := NewExporter(
		NewContributorLister(client, api.DefaultPageSize, api.DefaultMaxPages, nil),
		NewProfileResolver(client, nil),
		func() (export.RowWriter, error) { return export.Create(outPath) },
		nil,
	)

	summary, err := exporter.Export(context.Background(), testRepo)
	require.NoError(t, err)

	data, err := os.ReadFile(outPath)
	require.NoError(t, err)
	return string(data), summary
}

// TestExport_EndToEnd_AliceAndBob tests the CSV produced against an HTTP fake.
func TestExport_EndToEnd_AliceAndBob(t *testing.T) {
	fake := &fakeGitHub{
		pages:       [][]string{{"alice", "bob"}},
		names:       map[string]*string{"alice": strPtr("Alice Smith")},
		failedUsers: map[string]int{"bob": http.StatusNotFound},
	}

	out, summary := runEndToEnd(t, fake)

	assert.Equal(t, "username,first_name,last_name\nalice,Alice,Smith\nbob,,\n", out)
	assert.Equal(t, 1, summary.FetchFailed)
	fake.mu.Lock()
	defer fake.mu.Unlock()
	require.NotEmpty(t, fake.authHeaders)
	for _, header := range fake.authHeaders {
		assert.Equal(t, "Bearer fake-token", header)
	}
}

// TestExport_EndToEnd_FullPageThenEmpty tests 100 handles on page one and an empty page two.
func TestExport_EndToEnd_FullPageThenEmpty(t *testing.T) {
	handles := make([]string, 100)
	for i := range handles {
		handles[i] = fmt.Sprintf("user%03d", i)
	}
	fake := &fakeGitHub{pages: [][]string{handles}}

	out, summary := runEndToEnd(t, fake)

	lines := strings.Split(strings.TrimSuffix(out, "\n"), "\n")
	require.Len(t, lines, 101)
	assert.Equal(t, "username,first_name,last_name", lines[0])
	assert.Equal(t, "user000,,", lines[1])
	assert.Equal(t, "user099,,", lines[100])
	assert.Equal(t, int32(100), fake.userRequests.Load())
	assert.Equal(t, 100, summary.Listed)
	assert.Equal(t, 100, summary.NoName)
	assert.Equal(t, 2, summary.Pages)
}
