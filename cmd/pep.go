package cmd

import (
	"context"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/emrgen/peps"
	"github.com/fatih/color"
	"github.com/olekukonko/tablewriter"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(getPEPCmd())
	rootCmd.AddCommand(listPEPsCmd())
	rootCmd.AddCommand(searchPEPsCmd())
	rootCmd.AddCommand(countPEPsCmd())
}

func getPEPCmd() *cobra.Command {
	var number int

	var required = []string{"number"}

	command := &cobra.Command{
		Use:     "get",
		Short:   "get a pep",
		Example: "peps get -n 8",
		Run: func(cmd *cobra.Command, args []string) {
			if checkMissingFlags(cmd, required) {
				return
			}

			client := peps.NewClient(serverURL())
			pep, err := client.GetPEP(context.Background(), number)
			if err != nil {
				logrus.Error(err)
				return
			}

			table := tablewriter.NewWriter(os.Stdout)
			table.SetHeader([]string{"Number", "Title", "Status", "Type"})
			table.Append([]string{strconv.Itoa(pep.Number), pep.Title, pep.Status, pep.Type})
			table.Render()

			printField("Created", stringOrDash(pep.Created))
			printField("Python", stringOrDash(pep.PythonVersion))
			printField("Authors", authorNames(pep.Authors))
			printField("URL", pep.URL)
		},
	}

	command.Flags().IntVarP(&number, "number", "n", 0, "pep number (required)")
	command.Flags().SortFlags = false

	return command
}

func listPEPsCmd() *cobra.Command {
	var skip int
	var limit int

	command := &cobra.Command{
		Use:     "list",
		Short:   "list peps",
		Example: "peps list --skip 0 --limit 20",
		Run: func(cmd *cobra.Command, args []string) {
			client := peps.NewClient(serverURL())
			res, err := client.ListPEPs(context.Background(), skip, limit)
			if err != nil {
				logrus.Error(err)
				return
			}

			renderPEPTable(res.PEPs)
			printField("Total", strconv.FormatInt(res.Total, 10))
		},
	}

	command.Flags().IntVarP(&skip, "skip", "s", 0, "rows to skip")
	command.Flags().IntVarP(&limit, "limit", "l", 20, "rows per page")
	command.Flags().SortFlags = false

	return command
}

func searchPEPsCmd() *cobra.Command {
	var query string

	var required = []string{"query"}

	command := &cobra.Command{
		Use:     "search",
		Short:   "search peps by title",
		Example: "peps search -q typing",
		Run: func(cmd *cobra.Command, args []string) {
			if checkMissingFlags(cmd, required) {
				return
			}

			client := peps.NewClient(serverURL())
			res, err := client.SearchPEPs(context.Background(), query)
			if err != nil {
				logrus.Error(err)
				return
			}

			if res.Total == 0 {
				color.Yellow("no peps match %q", query)
				return
			}

			renderPEPTable(res.PEPs)
			printField("Total", strconv.Itoa(res.Total))
		},
	}

	command.Flags().StringVarP(&query, "query", "q", "", "title substring (required)")
	command.Flags().SortFlags = false

	return command
}

func countPEPsCmd() *cobra.Command {
	command := &cobra.Command{
		Use:     "count",
		Short:   "count stored peps",
		Example: "peps count",
		Run: func(cmd *cobra.Command, args []string) {
			client := peps.NewClient(serverURL())
			count, err := client.CountPEPs(context.Background())
			if err != nil {
				logrus.Error(err)
				return
			}

			printField("Count", strconv.FormatInt(count, 10))
		},
	}

	return command
}

func renderPEPTable(rows []peps.PEP) {
	table := tablewriter.NewWriter(os.Stdout)
	table.SetHeader([]string{"Number", "Title", "Status", "Type", "Authors"})
	for _, pep := range rows {
		table.Append([]string{
			strconv.Itoa(pep.Number),
			pep.Title,
			pep.Status,
			pep.Type,
			authorNames(pep.Authors),
		})
	}
	table.Render()
}

func authorNames(authors []peps.Author) string {
	names := make([]string, 0, len(authors))
	for _, author := range authors {
		names = append(names, author.Name)
	}

	return strings.Join(names, ", ")
}

func stringOrDash(s *string) string {
	if s == nil || *s == "" {
		return "-"
	}

	return *s
}

func printField(label, value string) {
	color.Set(color.FgCyan)
	fmt.Print(label)
	color.Unset()
	fmt.Printf(": %s\n", value)
}

// checkMissingFlags checks if the required flags are set and returns ok if they are set
func checkMissingFlags(cmd *cobra.Command, flags []string) bool {
	var missingFlags []string
	var providedFlags []string
	for _, required := range flags {
		if cmd.Flag(required).Changed == false {
			missingFlags = append(missingFlags, required)
		} else {
			value := cmd.Flag(required).Value.String()
			providedFlags = append(providedFlags, fmt.Sprintf("--%s=%s", required, value))
		}
	}

	if len(missingFlags) > 0 {
		var msg string
		for _, f := range missingFlags {
			msg += fmt.Sprintf("--%s ", f)
		}

		color.Red("missing: %s\n", msg)
		if len(providedFlags) > 0 {
			provided := strings.Join(providedFlags, " ")
			color.Green("provide: %s\n", provided)
		}

		cmd.Println("")

		cmd.Usage()

		return true
	}

	return false
}
