package main

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/cockroachdb/errors"
	"github.com/spf13/cobra"

	"github.com/Lixing-Zhang/nutribalance/internal/models"
	"github.com/Lixing-Zhang/nutribalance/internal/service"
)

func newAnalyzeCommand(root *rootOptions) *cobra.Command {
	var (
		req      models.AnalysisRequest
		meals    []string
		jsonMode bool
	)

	cmd := &cobra.Command{
		Use:   "analyze",
		Short: "Analyze meals against the daily recommendations",
		Example: `  nutrictl analyze --age 30 --weight 70 --height 175 --meal Apple=2 --meal Egg=1
  nutrictl analyze --db nutri.db --age 9 --weight 28 --height 130 --meal Rice=1.5 --json`,
		RunE: func(cmd *cobra.Command, args []string) error {
			entries, err := parseMeals(meals)
			if err != nil {
				return err
			}
			req.Meals = entries

			log := root.logger(cmd)
			ws, closeFn, err := root.openWorkspace(cmd.Context(), log)
			if err != nil {
				return err
			}
			defer closeFn()

			result, err := service.NewAnalysisService(ws, nil, log).Analyze(cmd.Context(), req)
			if err != nil {
				return err
			}

			if jsonMode {
				enc := json.NewEncoder(cmd.OutOrStdout())
				enc.SetIndent("", "  ")
				return enc.Encode(result)
			}
			printResult(cmd, result)
			return nil
		},
	}

	cmd.Flags().Float64Var(&req.Age, "age", 0, "Age in years (required)")
	cmd.Flags().Float64Var(&req.Weight, "weight", 0, "Weight in kg (required)")
	cmd.Flags().Float64Var(&req.Height, "height", 0, "Height in cm (required)")
	cmd.Flags().StringVar(&req.Activity, "activity", "", "Activity level (default sedentary)")
	cmd.Flags().StringArrayVar(&meals, "meal", nil, "Meal entry as Food=portion, repeatable")
	cmd.Flags().BoolVar(&jsonMode, "json", false, "Print the full result as JSON")

	return cmd
}

// parseMeals turns "Food=portion" flags into meal entries. The food name is
// everything before the last '='.
func parseMeals(raw []string) ([]models.MealEntry, error) {
	entries := make([]models.MealEntry, 0, len(raw))
	for _, m := range raw {
		i := strings.LastIndex(m, "=")
		if i <= 0 {
			return nil, errors.Newf("invalid meal %q: want Food=portion", m)
		}
		portion, err := strconv.ParseFloat(strings.TrimSpace(m[i+1:]), 64)
		if err != nil {
			return nil, errors.Wrapf(err, "invalid portion in meal %q", m)
		}
		entries = append(entries, models.MealEntry{
			Food:    strings.TrimSpace(m[:i]),
			Portion: portion,
		})
	}
	return entries, nil
}

func printResult(cmd *cobra.Command, result *models.AnalysisResult) {
	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Submission %s (%s)\n\n", result.Submission.ID, result.Group)
	fmt.Fprintf(out, "%-10s %10s %12s\n", "NUTRIENT", "INTAKE", "RECOMMENDED")
	for _, row := range result.Chart {
		fmt.Fprintf(out, "%-10s %10.1f %12g\n", row.Name, row.Intake, row.Recommended)
	}

	fmt.Fprintln(out)
	if len(result.Suggestions) == 0 {
		fmt.Fprintln(out, "Intake is within the recommended range.")
		return
	}
	for _, s := range result.Suggestions {
		fmt.Fprintf(out, "- %s\n", s)
	}
}
