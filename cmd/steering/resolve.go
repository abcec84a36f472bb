package main

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/c360studio/steering/activation"
	"github.com/c360studio/steering/ranker"
)

func newResolveCommand(opts *rootOptions) *cobra.Command {
	var (
		file    string
		tags    []string
		budget  int
		asJSON  bool
		content bool
	)

	cmd := &cobra.Command{
		Use:   "resolve [description...]",
		Short: "Resolve the documents that apply to a task",
		Long: `Resolve computes which steering documents apply to a task:
always-mode documents, file-match documents whose pattern matches --file,
and manual documents whose tag is referenced with --tag. With a budget,
documents are ranked by relevance to the description and truncated to fit.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(opts)
			if err != nil {
				return err
			}

			reg, _, err := loadRegistry(cfg)
			if err != nil {
				return err
			}

			description := strings.Join(args, " ")

			activated := activation.Resolve(reg.Snapshot(), activation.TaskContext{
				ActiveFile:  file,
				Tags:        tags,
				Description: description,
			})

			if budget <= 0 && !content {
				// No budget: print the activation in registry order.
				if asJSON {
					return json.NewEncoder(os.Stdout).Encode(activated.IDs())
				}
				for _, id := range activated.IDs() {
					fmt.Println(id)
				}
				return nil
			}

			if budget <= 0 {
				budget = cfg.Budget.Default
			}
			ranked := ranker.Rank(activated, description, budget)

			if asJSON {
				return json.NewEncoder(os.Stdout).Encode(ranked)
			}

			for _, rd := range ranked {
				if content {
					fmt.Printf("<!-- %s -->\n%s\n\n", rd.Doc.ID, rd.Content)
				} else {
					marker := ""
					if rd.Truncated {
						marker = " (truncated)"
					}
					fmt.Printf("%s\tscore=%.4f\tsize=%d%s\n", rd.Doc.ID, rd.Score, len(rd.Content), marker)
				}
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&file, "file", "f", "", "active file path")
	cmd.Flags().StringSliceVarP(&tags, "tag", "t", nil, "activation tag (repeatable)")
	cmd.Flags().IntVarP(&budget, "budget", "b", 0, "content budget in characters (0 = unranked)")
	cmd.Flags().BoolVar(&asJSON, "json", false, "output as JSON")
	cmd.Flags().BoolVar(&content, "content", false, "print document content instead of identifiers")

	return cmd
}
