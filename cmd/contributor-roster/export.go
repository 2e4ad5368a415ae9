package main

import (
	"fmt"
	"net/http"
	"time"

	"github.com/spf13/cobra"

	"github.com/vilaca/contributor-roster/internal/api"
	"github.com/vilaca/contributor-roster/internal/api/github"
	"github.com/vilaca/contributor-roster/internal/config"
	"github.com/vilaca/contributor-roster/internal/export"
	"github.com/vilaca/contributor-roster/internal/logging"
	"github.com/vilaca/contributor-roster/internal/service"
)

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Write the contributor roster of a repository to CSV",
	Long:  "Page through the repository's contributors, resolve each contributor's profile name, and write username,first_name,last_name rows in listing order.",
	Args:  cobra.NoArgs,
	RunE:  runExport,
}

var (
	repoFlag   string
	outFlag    string
	configFlag string
	apiURLFlag string
	maxPages   int
	verbose    bool
)

func init() {
	exportCmd.Flags().StringVarP(&repoFlag, "repo", "r", "", "Repository in owner/name form (default "+config.DefaultRepository+")")
	exportCmd.Flags().StringVarP(&outFlag, "out", "o", "", "Output CSV path (default "+config.DefaultOutputPath+")")
	exportCmd.Flags().StringVarP(&configFlag, "config", "c", "", "Optional YAML config file")
	exportCmd.Flags().StringVar(&apiURLFlag, "api-url", "", "GitHub API base URL")
	exportCmd.Flags().IntVar(&maxPages, "max-pages", 0, "Maximum number of contributor pages to request")
	exportCmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "Print debug logs and a run summary")

	rootCmd.AddCommand(exportCmd)
}

// loadConfig merges environment, optional config file and flags, in that order.
func loadConfig() (*config.Config, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}

	if configFlag != "" {
		if err := cfg.LoadFile(configFlag); err != nil {
			return nil, err
		}
	}

	if repoFlag != "" {
		cfg.Repository = repoFlag
	}
	if outFlag != "" {
		cfg.OutputPath = outFlag
	}
	if apiURLFlag != "" {
		cfg.GitHubURL = apiURLFlag
	}
	if maxPages != 0 {
		cfg.MaxPages = maxPages
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func runExport(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	repo, err := cfg.GetRepository()
	if err != nil {
		return err
	}

	ctx := cmd.Context()
	logger := logging.NewTextLogger(cmd.ErrOrStderr(), verbose)
	if !cfg.HasGitHubToken() {
		logger.Warn(ctx, "GITHUB_TOKEN is not set; requests are sent unauthenticated")
	}

	// Wire up dependencies (Dependency Injection / IoC)
	httpClient := &http.Client{
		Timeout: 30 * time.Second,
	}
	client := github.NewClient(api.ClientConfig{
		BaseURL: cfg.GitHubURL,
		Token:   cfg.GitHubToken,
	}, httpClient)

	exporter := service.NewExporter(
		service.NewContributorLister(client, api.DefaultPageSize, cfg.MaxPages, logger),
		service.NewProfileResolver(client, logger),
		func() (export.RowWriter, error) { return export.Create(cfg.OutputPath) },
		logger,
	)

	summary, err := exporter.Export(ctx, repo)
	if err != nil {
		return fmt.Errorf("export of %s failed: %w", repo.FullName(), err)
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "✅ %s has been created.\n", cfg.OutputPath)
	if verbose {
		fmt.Fprintf(out, "%s: %d contributors (%d pages, stopped: %s), %d named, %d without name, %d lookups failed\n",
			repo.FullName(), summary.Written, summary.Pages, summary.StopReason,
			summary.Resolved, summary.NoName, summary.FetchFailed)
	}

	return nil
}
