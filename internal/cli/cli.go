// Package cli implements the keiba-odds command: scrape one race URL or a
// file of race URLs, write the results as JSON, and optionally export
// per-bet-type CSV files.
package cli

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/ymatsuda/keiba-odds/internal/bettype"
	"github.com/ymatsuda/keiba-odds/internal/config"
	"github.com/ymatsuda/keiba-odds/internal/export"
	"github.com/ymatsuda/keiba-odds/internal/logger"
	"github.com/ymatsuda/keiba-odds/internal/scraper"
)

const (
	ExitSuccess = 0
	ExitError   = 1
)

var (
	flagURL      string
	flagURLFile  string
	flagOutput   string
	flagCSVDir   string
	flagBatchDir string
	flagConfig   string
	flagIndent   int
	flagVerbose  bool
)

// NewRootCmd creates the root command
func NewRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "keiba-odds",
		Short: "Scrape netkeiba race entries and betting odds",
		Long: `Scrapes a netkeiba race page for its entries and full odds tables
(all eight bet types), writing the result as JSON and optionally as
per-bet-type CSV files.`,
		RunE:          runScrape,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	cmd.Flags().StringVar(&flagURL, "url", "", "Race page URL")
	cmd.Flags().StringVar(&flagURLFile, "url-file", "", "Text file of race URLs, one per line")
	cmd.Flags().StringVar(&flagOutput, "output", "race_data.json", "Output JSON path (single-URL mode)")
	cmd.Flags().StringVar(&flagCSVDir, "csv-dir", "", "Directory for per-bet-type CSV files (single-URL mode)")
	cmd.Flags().StringVar(&flagBatchDir, "batch-dir", "out/batch", "Output root directory for --url-file mode")
	cmd.Flags().StringVar(&flagConfig, "config", "", "Optional YAML config file")
	cmd.Flags().IntVar(&flagIndent, "indent", 2, "JSON indent width")
	cmd.Flags().BoolVar(&flagVerbose, "verbose", false, "Enable debug logging")

	return cmd
}

// runScrape is the main command logic
func runScrape(cmd *cobra.Command, args []string) error {
	if flagURL == "" && flagURLFile == "" {
		return fmt.Errorf("either --url or --url-file is required")
	}
	if flagURL != "" && flagURLFile != "" {
		return fmt.Errorf("--url and --url-file are mutually exclusive")
	}

	if flagVerbose {
		logger.SetDefault(logger.New(logger.LevelDebug, os.Stderr))
	}

	cfg, err := config.Load(flagConfig)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	sc := scraper.New(cfg)

	if flagURL != "" {
		result, err := sc.Scrape(flagURL)
		if err != nil {
			return fmt.Errorf("scraping %s: %w", flagURL, err)
		}
		return writeSingleResult(result, flagOutput, flagCSVDir, flagIndent)
	}

	urls, err := loadURLFile(flagURLFile)
	if err != nil {
		return err
	}
	if len(urls) == 0 {
		return fmt.Errorf("no usable URLs in %s", flagURLFile)
	}

	seenRaceIDs := make(map[string]int)
	for i, url := range urls {
		result, err := sc.Scrape(url)
		if err != nil {
			return fmt.Errorf("scraping %s: %w", url, err)
		}

		raceID := result.RaceID
		if raceID == "" {
			raceID = fmt.Sprintf("race_%03d", i+1)
		}
		seenRaceIDs[raceID]++
		if n := seenRaceIDs[raceID]; n > 1 {
			raceID = fmt.Sprintf("%s_%02d", raceID, n)
		}

		raceDir := filepath.Join(flagBatchDir, raceID)
		outputPath := filepath.Join(raceDir, "race_data.json")
		csvDir := filepath.Join(raceDir, "csv")
		if err := writeSingleResult(result, outputPath, csvDir, flagIndent); err != nil {
			return err
		}
	}
	return nil
}

// writeSingleResult writes one race's JSON and CSV output and prints the
// per-bet-type status summary.
func writeSingleResult(result *scraper.Result, outputPath, csvDir string, indent int) error {
	if err := export.WriteResultJSON(result, outputPath, indent); err != nil {
		return err
	}
	fmt.Printf("saved: %s\n", outputPath)

	if csvDir != "" {
		written, err := export.WriteOddsCSVFiles(result.Odds, csvDir)
		if err != nil {
			return err
		}
		for _, path := range written {
			fmt.Printf("saved: %s\n", path)
		}
	}

	for _, bt := range bettype.All() {
		status, ok := result.OddsStatus[bt.Label()]
		if !ok {
			continue
		}
		fmt.Printf("odds_status[%s]: %s rows=%d %s\n", bt.Label(), status.Status, status.Rows, status.Message)
	}
	return nil
}

// loadURLFile reads race URLs from a text file, skipping blank lines and
// #-comments.
func loadURLFile(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening url file: %w", err)
	}
	defer f.Close()

	var urls []string
	s := bufio.NewScanner(f)
	for s.Scan() {
		line := strings.TrimSpace(s.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		urls = append(urls, line)
	}
	if err := s.Err(); err != nil {
		return nil, fmt.Errorf("reading url file: %w", err)
	}
	return urls, nil
}

// Execute runs the CLI
func Execute() {
	if err := NewRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(ExitError)
	}
}
