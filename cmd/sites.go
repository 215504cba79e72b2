package cmd

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"teachgrab/internal/site"
)

var sitesCmd = &cobra.Command{
	Use:   "sites",
	Short: "List the known course-platform sites",
	RunE: func(cmd *cobra.Command, args []string) error {
		w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
		fmt.Fprintln(w, "HOST\tNAMESPACE")
		for _, host := range site.Known() {
			fmt.Fprintf(w, "%s\t%s\n", host, site.ForHost(host).Namespace)
		}
		if err := w.Flush(); err != nil {
			return err
		}
		fmt.Printf("\nOther hosts work with the %q URL prefix; their namespace is the hostname.\n", site.URLPrefix)
		return nil
	},
}
