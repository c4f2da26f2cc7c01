package cmd

import (
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

const (
	configFileName = "peps"
	defaultServer  = "http://localhost:4030"
)

var contextCommand = &cobra.Command{
	Use:   "context",
	Short: "context commands",
}

func init() {
	contextCommand.AddCommand(setContextCommand())
	contextCommand.AddCommand(currentContextCommand())
	contextCommand.AddCommand(resetContextCommand())
}

type Context struct {
	Server string `json:"server"`
}

// saves the context info to the config file in ./.tmp
func setContextCommand() *cobra.Command {
	var server string
	command := &cobra.Command{
		Use:   "set",
		Short: "set context",
		Run: func(cmd *cobra.Command, args []string) {
			if server == "" {
				color.Red(`missing: --server`)
				return
			}

			writeContext(Context{Server: server})
			fmt.Println("context saved")
		},
	}

	command.Flags().StringVarP(&server, "server", "s", "", "server base url")

	return command
}

func currentContextCommand() *cobra.Command {
	command := &cobra.Command{
		Use:   "current",
		Short: "current context",
		Run: func(cmd *cobra.Command, args []string) {
			printField("Server", serverURL())
		},
	}

	return command
}

func resetContextCommand() *cobra.Command {
	command := &cobra.Command{
		Use:   "reset",
		Short: "reset context",
		Run: func(cmd *cobra.Command, args []string) {
			writeContext(Context{})
			fmt.Println("context reset")
		},
	}

	return command
}

// serverURL returns the configured query server, falling back to the
// local default.
func serverURL() string {
	cfg := readContext()
	if cfg.Server == "" {
		return defaultServer
	}

	return cfg.Server
}

func ensureContextFile() {
	if _, err := os.Stat("./.tmp/" + configFileName + ".yml"); os.IsNotExist(err) {
		if err := os.MkdirAll("./.tmp", os.ModePerm); err != nil {
			fmt.Println("error creating config dir: ", err)
			return
		}

		file, err := os.Create("./.tmp/" + configFileName + ".yml")
		if err != nil {
			fmt.Println("error creating config file: ", err)
			return
		}
		err = file.Close()
		if err != nil {
			panic(err)
		}
	}
}

func writeContext(context Context) {
	ensureContextFile()

	viper.SetConfigName(configFileName)
	viper.AddConfigPath("./.tmp")
	viper.SetConfigType("yml")
	viper.Set("context", context)

	if err := viper.WriteConfig(); err != nil {
		fmt.Println("error writing config file: ", err)
	}
}

func readContext() Context {
	var ctx Context

	ensureContextFile()

	viper.SetConfigName(configFileName)
	viper.AddConfigPath("./.tmp")
	viper.SetConfigType("yml")

	if err := viper.ReadInConfig(); err != nil {
		fmt.Println("error reading config file: ", err)
	}

	if err := viper.UnmarshalKey("context", &ctx); err != nil {
		fmt.Println("error unmarshalling config file: ", err)
	}

	return ctx
}
