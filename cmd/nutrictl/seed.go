package main

import (
	"github.com/spf13/cobra"

	"github.com/Lixing-Zhang/nutribalance/internal/seed"
)

func newSeedCommand(root *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "seed",
		Short: "Print the seed catalog and recommendations as YAML",
		Long: `Print the seed data as YAML. With --seed the file is validated first,
so this doubles as a check for custom seed files.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := root.seedData()
			if err != nil {
				return err
			}
			return seed.Encode(cmd.OutOrStdout(), data)
		},
	}
}
