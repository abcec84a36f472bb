package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newValidateCommand(opts *rootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "validate",
		Short: "Check all documents for valid inclusion metadata",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(opts)
			if err != nil {
				return err
			}

			reg, invalid, err := loadRegistry(cfg)
			if err != nil {
				return err
			}

			fmt.Printf("%d documents loaded from %s\n", reg.Snapshot().Len(), cfg.Docs.Dir)

			if len(invalid) > 0 {
				return fmt.Errorf("%d documents have invalid metadata", len(invalid))
			}
			return nil
		},
	}

	return cmd
}
