package main

import (
	"fmt"

	"alcyxob/coachy/internal/domain"

	"github.com/spf13/cobra"
)

func newBodyPartsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "body-parts <muscle>...",
		Short: "Show the body parts worked by the given muscle groups",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			muscles, err := parseValues(args, "muscle", domain.MuscleGroup.IsValid)
			if err != nil {
				return err
			}
			for _, bp := range domain.DeriveBodyParts(muscles) {
				fmt.Fprintln(cmd.OutOrStdout(), bp)
			}
			return nil
		},
	}
}

func init() {
	rootCmd.AddCommand(newBodyPartsCmd())
}
