package main

import (
	"fmt"
	"io"
	"strings"

	"alcyxob/coachy/internal/domain"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"
)

type listOptions struct {
	search     string
	muscles    []string
	bodyParts  []string
	sources    []string
	customOnly bool
}

func newExercisesCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "exercises",
		Aliases: []string{"ex"},
		Short:   "List or show exercises",
	}
	cmd.AddCommand(newExercisesListCmd(), newExercisesShowCmd())
	return cmd
}

func newExercisesListCmd() *cobra.Command {
	var opts listOptions

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List exercises matching the search and filters",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			filters, err := opts.filters()
			if err != nil {
				return err
			}
			all, err := catalog.ListAll(cmd.Context())
			if err != nil {
				return err
			}
			matched := domain.ApplyFilters(all, filters)
			if len(matched) == 0 {
				if filters.IsActive() || filters.SearchQuery != "" {
					fmt.Fprintln(cmd.OutOrStdout(), "No exercises match your search or filters.")
				} else {
					fmt.Fprintln(cmd.OutOrStdout(), "No exercises available.")
				}
				return nil
			}
			renderExercises(cmd.OutOrStdout(), matched, len(all))
			return nil
		},
	}
	cmd.Flags().StringVarP(&opts.search, "search", "q", "", "search names, descriptions and muscle groups")
	cmd.Flags().StringSliceVarP(&opts.muscles, "muscle", "m", nil, "muscle groups to include (repeatable or comma-separated)")
	cmd.Flags().StringSliceVarP(&opts.bodyParts, "body-part", "b", nil, "body parts to include (repeatable or comma-separated)")
	cmd.Flags().StringSliceVarP(&opts.sources, "source", "s", nil, "sources to include: "+joinValues(domain.AllSources))
	cmd.Flags().BoolVar(&opts.customOnly, "custom-only", false, "only user and community exercises; ignored when --source is set")

	return cmd
}

func (o listOptions) filters() (domain.ExerciseFilters, error) {
	var (
		f   = domain.ExerciseFilters{SearchQuery: strings.TrimSpace(o.search), CustomOnly: o.customOnly}
		err error
	)
	if f.MuscleGroups, err = parseValues(o.muscles, "muscle", domain.MuscleGroup.IsValid); err != nil {
		return f, err
	}
	if f.BodyParts, err = parseValues(o.bodyParts, "body part", domain.BodyPart.IsValid); err != nil {
		return f, err
	}
	if f.Sources, err = parseValues(o.sources, "source", domain.ExerciseSource.IsValid); err != nil {
		return f, err
	}
	return f, nil
}

func newExercisesShowCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show <id>",
		Short: "Show one exercise with its variations and similar exercises",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			details, err := catalog.GetDetails(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			if details == nil {
				return fmt.Errorf("exercise %q not found", args[0])
			}
			renderDetails(cmd.OutOrStdout(), details)
			return nil
		},
	}
}

func renderExercises(w io.Writer, exercises []domain.Exercise, total int) {
	table := tablewriter.NewWriter(w)
	table.SetHeader([]string{"ID", "Name", "Primary", "Body Parts", "Source"})
	table.SetBorder(false)
	table.SetCenterSeparator("")
	table.SetAutoWrapText(false)
	// Keeps header and footer text as written.
	table.SetAutoFormatHeaders(false)

	for _, ex := range exercises {
		table.Append([]string{
			ex.ID,
			ex.Name,
			joinValues(ex.PrimaryMuscles),
			joinValues(ex.BodyParts),
			string(ex.Source),
		})
	}
	table.SetFooter([]string{"", fmt.Sprintf("%d of %d", len(exercises), total), "", "", ""})
	table.Render()
}

func renderDetails(w io.Writer, d *domain.ExerciseDetails) {
	fmt.Fprintf(w, "%s (%s)\n", d.Name, d.ID)
	if d.Description != "" {
		fmt.Fprintf(w, "\n%s\n", d.Description)
	}
	fmt.Fprintf(w, "\nPrimary:    %s\n", joinValues(d.PrimaryMuscles))
	if len(d.SecondaryMuscles) > 0 {
		fmt.Fprintf(w, "Secondary:  %s\n", joinValues(d.SecondaryMuscles))
	}
	fmt.Fprintf(w, "Body parts: %s\n", joinValues(d.BodyParts))
	fmt.Fprintf(w, "Source:     %s\n", d.Source)

	if len(d.Variations) > 0 {
		fmt.Fprintln(w, "\nVariations:")
		for _, v := range d.Variations {
			fmt.Fprintf(w, "  %s  %s\n", v.ID, v.Name)
		}
	}
	if len(d.SimilarExercises) > 0 {
		fmt.Fprintln(w, "\nSimilar:")
		for _, v := range d.SimilarExercises {
			fmt.Fprintf(w, "  %s  %s\n", v.ID, v.Name)
		}
	}
}

func joinValues[T ~string](values []T) string {
	parts := make([]string, len(values))
	for i, v := range values {
		parts[i] = string(v)
	}
	return strings.Join(parts, ", ")
}

func parseValues[T ~string](raw []string, kind string, valid func(T) bool) ([]T, error) {
	var out []T
	for _, r := range raw {
		r = strings.TrimSpace(r)
		if r == "" {
			continue
		}
		v := T(r)
		if !valid(v) {
			return nil, fmt.Errorf("unknown %s %q", kind, r)
		}
		out = append(out, v)
	}
	return out, nil
}

func init() {
	rootCmd.AddCommand(newExercisesCmd())
}
