package commands

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/cdtdelta/lastseen/internal/archive"
	"github.com/cdtdelta/lastseen/internal/collect"
	"github.com/cdtdelta/lastseen/internal/export"
	"github.com/cdtdelta/lastseen/internal/sources"
)

var (
	collectView    string
	collectOut     string
	collectFormat  string
	collectArchive bool
)

var CollectCmd = &cobra.Command{
	Use:   "collect",
	Short: "Run a collection pass and print or export the report",
	Long: `Collect runs the evidence extractors over the configured profile and
writes the report to stdout or a file.

Examples:
  lastseenctl collect
  lastseenctl collect --view full --format csv --out report.csv
  lastseenctl collect --view full --archive`,
	RunE: runCollect,
}

func init() {
	CollectCmd.Flags().StringVar(&collectView, "view", "summary", "view to collect (summary or full)")
	CollectCmd.Flags().StringVarP(&collectOut, "out", "o", "", "write the report to a file instead of stdout")
	CollectCmd.Flags().StringVar(&collectFormat, "format", "text", "output format (text, csv, jsonl or tln)")
	CollectCmd.Flags().BoolVar(&collectArchive, "archive", false, "persist the run in the archive")
}

func runCollect(cmd *cobra.Command, args []string) error {
	cfg, log := bootstrap()

	view, err := collect.ParseView(collectView)
	if err != nil {
		return err
	}
	if !export.KnownFormat(collectFormat) {
		return fmt.Errorf("unsupported format: %s", collectFormat)
	}

	loc := sources.New(cfg.Home, cfg.LocatorOptions()...)
	report := collect.New(loc, log).Collect(view)

	if collectArchive {
		store, err := archive.CreateStore(cfg.ArchiveDriver, cfg.ArchiveDSN)
		if err != nil {
			return fmt.Errorf("opening archive: %w", err)
		}
		defer store.Close()

		run := archive.NewRun(view.String())
		if err := store.SaveRun(run, report.Records()); err != nil {
			return fmt.Errorf("archiving report: %w", err)
		}
		fmt.Fprintf(os.Stderr, "Archived run %s (%d records)\n", run.ID, run.RecordCount)
	}

	if collectOut != "" {
		if err := export.WriteFile(collectOut, report, collectFormat); err != nil {
			return err
		}
		fmt.Fprintf(os.Stderr, "Wrote %d records to %s\n", len(report.Records()), collectOut)
		return nil
	}
	return export.Write(os.Stdout, report, collectFormat)
}
