package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/cdtdelta/lastseen/internal/archive"
	"github.com/cdtdelta/lastseen/internal/collect"
)

var RunsCmd = &cobra.Command{
	Use:   "runs [run-id]",
	Short: "List archived runs or show one run's records",
	Long: `Without arguments, runs lists every archived run, newest first. With a
run id it prints that run's records.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runRuns,
}

func runRuns(cmd *cobra.Command, args []string) error {
	cfg, _ := bootstrap()

	store, err := archive.OpenStore(cfg.ArchiveDriver, cfg.ArchiveDSN)
	if err != nil {
		return fmt.Errorf("opening archive: %w", err)
	}
	defer store.Close()

	if len(args) == 1 {
		return showRun(store, args[0])
	}
	return listRuns(store)
}

func listRuns(store archive.Store) error {
	runs, err := store.ListRuns()
	if err != nil {
		return err
	}
	if len(runs) == 0 {
		fmt.Println("No archived runs.")
		return nil
	}

	for _, r := range runs {
		fmt.Printf("%s  %s  %-8s  %-12s  %d records\n",
			r.ID, r.CollectedAt.Local().Format("2006-01-02 15:04:05"),
			r.View, r.Host, r.RecordCount)
	}
	return nil
}

func showRun(store archive.Store, id string) error {
	records, err := store.Records(id)
	if err != nil {
		return err
	}
	if len(records) == 0 {
		return fmt.Errorf("no records for run %s", id)
	}

	for _, rec := range records {
		fmt.Printf("%-24s  %s\n", rec.Category, collect.Line(rec))
	}
	return nil
}
