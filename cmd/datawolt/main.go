// Command datawolt ingests delivery-platform order histories and serves the
// spending dashboards built from them.
//
// @title                       datawolt API
// @version                     1.0
// @description                 Order-history ingestion and spending dashboards for delivery platform users.
// @BasePath                    /
// @securityDefinitions.apikey  BearerAuth
// @in                          header
// @name                        Authorization
package main

import (
	"fmt"
	"os"
	_ "time/tzdata"

	"github.com/spf13/cobra"
)

var Version = "dev"

func main() {
	rootCmd := &cobra.Command{
		Use:           "datawolt",
		Short:         "datawolt - order history ingestion and spending dashboards",
		Version:       Version,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.AddCommand(serveCmd())
	rootCmd.AddCommand(ingestCmd())
	rootCmd.AddCommand(summaryCmd())
	rootCmd.AddCommand(operatorTokenCmd())

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
