package main

import (
	"encoding/json"
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"
)

func newListCommand(opts *rootOptions) *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List registered steering documents",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(opts)
			if err != nil {
				return err
			}

			reg, _, err := loadRegistry(cfg)
			if err != nil {
				return err
			}

			docs := reg.Snapshot().All()

			if asJSON {
				return json.NewEncoder(os.Stdout).Encode(docs)
			}

			w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "ID\tMODE\tRULE\tSIZE\tTITLE")
			for _, doc := range docs {
				rule := "-"
				switch {
				case doc.Pattern != "":
					rule = doc.Pattern
				case doc.Tag != "":
					rule = doc.Tag
				}
				fmt.Fprintf(w, "%s\t%s\t%s\t%d\t%s\n", doc.ID, doc.Mode, rule, doc.Size, doc.Title)
			}
			return w.Flush()
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "output as JSON")

	return cmd
}
