package cmd

import (
	"github.com/emrgen/peps/internal/config"
	"github.com/emrgen/peps/internal/server"
	"github.com/spf13/cobra"
)

func serveCmd() *cobra.Command {
	var port string

	command := &cobra.Command{
		Use:     "serve",
		Short:   "start the query api server",
		Example: "peps serve -p 4030",
		Run: func(cmd *cobra.Command, args []string) {
			if port == "" {
				port = config.LoadConfig().HTTPPort
			}

			server.NewServer(port).Start()
		},
	}

	command.Flags().StringVarP(&port, "port", "p", "", "http port")
	command.Flags().SortFlags = false

	return command
}
