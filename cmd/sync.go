package cmd

import (
	"context"
	"os"

	"github.com/emrgen/peps/internal/config"
	"github.com/emrgen/peps/internal/ingest"
	"github.com/emrgen/peps/internal/mirror"
	"github.com/emrgen/peps/internal/store"
	"github.com/emrgen/peps/internal/upstream"
	"github.com/fatih/color"
	"github.com/olekukonko/tablewriter"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

func syncCmd() *cobra.Command {
	command := &cobra.Command{
		Use:     "sync",
		Short:   "fetch the upstream index and reconcile the database",
		Example: "peps sync",
		Run: func(cmd *cobra.Command, args []string) {
			cnf := config.LoadConfig()

			pepStore := store.NewGormStore(config.GetDb(cnf))
			if err := pepStore.Migrate(); err != nil {
				logrus.Error(err)
				return
			}

			syncer := ingest.NewSyncer(
				upstream.NewClient(cnf.IndexURL),
				mirror.NewDir(cnf.PepsDir),
				pepStore,
			)

			report, err := syncer.Run(context.Background())
			if err != nil {
				logrus.Error(err)
				return
			}

			color.Green("succeeded: %d of %d", report.Succeeded, report.Total)
			if report.Failed == 0 {
				return
			}
			color.Red("failed: %d", report.Failed)

			table := tablewriter.NewWriter(os.Stdout)
			table.SetHeader([]string{"Document", "Reason"})
			for _, failure := range report.Failures {
				table.Append([]string{failure.Name, failure.Reason})
			}
			table.Render()
		},
	}

	return command
}

func verifyCmd() *cobra.Command {
	command := &cobra.Command{
		Use:     "verify",
		Short:   "check the local mirror against the upstream index",
		Example: "peps verify",
		Run: func(cmd *cobra.Command, args []string) {
			cnf := config.LoadConfig()

			syncer := ingest.NewSyncer(
				upstream.NewClient(cnf.IndexURL),
				mirror.NewDir(cnf.PepsDir),
				nil,
			)

			report, err := syncer.Verify(context.Background())
			if err != nil {
				logrus.Error(err)
				return
			}

			color.Green("present: %d of %d", report.Succeeded, report.Total)
			if report.Failed == 0 {
				return
			}
			color.Red("missing: %d", report.Failed)

			table := tablewriter.NewWriter(os.Stdout)
			table.SetHeader([]string{"Document"})
			for _, name := range report.Missing {
				table.Append([]string{name})
			}
			table.Render()
		},
	}

	return command
}
