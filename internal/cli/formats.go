package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

var formatsCmd = &cobra.Command{
	Use:   "formats",
	Short: "List the registered output formats",
	Run: func(cmd *cobra.Command, args []string) {
		for _, name := range formatters.List() {
			fmt.Println(name)
		}
	},
}

func init() {
	rootCmd.AddCommand(formatsCmd)
}
