package main

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"github.com/uyouii/score-predictor/model"
	"github.com/uyouii/score-predictor/predictor"
	"github.com/uyouii/score-predictor/session"
)

type predictFlags struct {
	scores       string
	mode         string
	dropNegative bool
	point        float64
	low          float64
	high         float64
	seed         uint64
	jsonOutput   bool
}

func newPredictCommand(root *rootOptions) *cobra.Command {
	flags := &predictFlags{}

	cmd := &cobra.Command{
		Use:   "predict",
		Short: "Compute statistics and probabilities for a list of scores",
		Example: `  scorepredict predict --scores 1,2,2,3,3,2,1,4,2,3
  scorepredict predict --scores 0,1,3,2 --mode discrete --point 2 --low 1 --high 3`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := root.cfg
			if cmd.Flags().Changed("mode") {
				cfg.Predictor.Mode = flags.mode
			}
			if cmd.Flags().Changed("drop-negative") {
				cfg.Predictor.DropNegative = &flags.dropNegative
			}
			if cmd.Flags().Changed("seed") {
				cfg.Predictor.Seed = flags.seed
			}
			raw := cfg.DefaultScores
			if cmd.Flags().Changed("scores") {
				raw = flags.scores
			}

			opts, err := cfg.PredictorOptions()
			if err != nil {
				return err
			}

			var in session.Input
			if cmd.Flags().Changed("point") {
				in.Point = &flags.point
			}
			if cmd.Flags().Changed("low") {
				in.Low = &flags.low
			}
			if cmd.Flags().Changed("high") {
				in.High = &flags.high
			}

			// the first call fixes the defaults for raw, the second applies the flags
			p := predictor.New(opts, newSource(cfg.Predictor.Seed))
			state := session.NewState()
			report, err := p.Predict(cmd.Context(), raw, state, session.Input{})
			if err == nil && !in.IsEmpty() {
				report, err = p.Predict(cmd.Context(), raw, state, in)
			}
			if err != nil {
				return fmt.Errorf("An error occurred: %w", err)
			}

			if flags.jsonOutput {
				enc := json.NewEncoder(cmd.OutOrStdout())
				enc.SetIndent("", "  ")
				return enc.Encode(report)
			}
			return writeReport(cmd.OutOrStdout(), report)
		},
	}

	cmd.Flags().StringVar(&flags.scores, "scores", predictor.DefaultScores, "Comma separated past scores")
	cmd.Flags().StringVar(&flags.mode, "mode", string(model.ContinuousMode), "continuous or discrete")
	cmd.Flags().BoolVar(&flags.dropNegative, "drop-negative", false, "Ignore negative scores")
	cmd.Flags().Float64Var(&flags.point, "point", 0, "Score to query")
	cmd.Flags().Float64Var(&flags.low, "low", 0, "Lower bound of the score interval")
	cmd.Flags().Float64Var(&flags.high, "high", 0, "Upper bound of the score interval")
	cmd.Flags().Uint64Var(&flags.seed, "seed", 0, "Random seed for the simulation, 0 seeds from the clock")
	cmd.Flags().BoolVar(&flags.jsonOutput, "json", false, "Print the full report as JSON")

	return cmd
}

func writeReport(w io.Writer, r *model.Report) error {
	lines := []string{
		fmt.Sprintf("Scores: %d values (%s mode)", len(r.Series), r.Mode),
		fmt.Sprintf("Mean (mu) = %s", r.Formatted.Mu),
		fmt.Sprintf("Standard deviation (sigma) = %s", r.Formatted.Sigma),
		fmt.Sprintf("%s for score %v: %s", r.PointLabel(), r.Selection.Point, r.Formatted.Point),
		fmt.Sprintf("Probability that the score is between %v and %v: %s",
			r.Selection.Low, r.Selection.High, r.Formatted.Interval),
	}
	if !r.Chart.IsEmpty() {
		s := r.Chart.Summary
		lines = append(lines, fmt.Sprintf("Simulated: %d draws, median %.2f, 90%% between %.2f and %.2f",
			s.Count, s.Median, s.Q05, s.Q95))
	}

	for _, line := range lines {
		if _, err := fmt.Fprintln(w, line); err != nil {
			return err
		}
	}
	return nil
}
