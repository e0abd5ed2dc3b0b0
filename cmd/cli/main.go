package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"fitcoach/adapters/llm/heuristic"
	"fitcoach/app"
	"fitcoach/domain/plan"
	"fitcoach/domain/quiz"
	"fitcoach/internal/logging"
	"fitcoach/internal/rng"
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "fitcoach-cli",
		Short: "FitCoach CLI for running assessments offline",
	}

	rootCmd.AddCommand(
		newAssessCmd(),
		newFiguresCmd(),
		newAssignCmd(),
	)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func quizFlags(cmd *cobra.Command, q *quiz.Data) {
	var gender, activity, goal string
	cmd.Flags().Float64Var(&q.WeightKG, "weight", 0, "current weight in kg")
	cmd.Flags().Float64Var(&q.HeightCM, "height", 0, "height in cm")
	cmd.Flags().IntVar(&q.Age, "age", 0, "age in years")
	cmd.Flags().StringVar(&gender, "gender", "male", "male or female")
	cmd.Flags().StringVar(&activity, "activity", "moderately_active", "sedentary, lightly_active, moderately_active or very_active")
	cmd.Flags().StringVar(&goal, "goal", "lose_weight", "lose_weight, gain_muscle or get_shredded")
	cmd.Flags().Float64Var(&q.TargetWeightKG, "target-weight", 0, "target weight in kg")
	cmd.Flags().Float64Var(&q.TargetPeriodWeeks, "weeks", 0, "target period in weeks")
	cmd.Flags().IntVar(&q.GymDaysPerWeek, "gym-days", 3, "training days per week")

	cmd.PreRun = func(cmd *cobra.Command, args []string) {
		q.Gender = quiz.Gender(gender)
		q.ActivityLevel = quiz.ActivityLevel(activity)
		q.Goal = quiz.Goal(goal)
	}
}

func newAssessCmd() *cobra.Command {
	var q quiz.Data
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "assess",
		Short: "Run a full offline assessment",
		Long: `Run a full assessment using the offline generator, no API key needed.

Example: fitcoach-cli assess --weight 100 --height 175 --age 30 --target-weight 80 --weeks 8`,
		RunE: func(cmd *cobra.Command, args []string) error {
			gen := heuristic.NewGenerator()
			log := logging.NewNop()
			workout := app.NewWorkoutService(rng.New(), gen, log)
			svc := app.NewAssessmentService(plan.DefaultPolicy(), gen, nil, workout, log)

			a, result, err := svc.RunWithWorkout(context.Background(), q)
			if err != nil {
				return err
			}

			if asJSON {
				out := map[string]interface{}{"assessment": a}
				if result != nil {
					out["workout"] = result
				}
				return json.NewEncoder(os.Stdout).Encode(out)
			}

			fmt.Println(a.Report.ReportMarkdown)
			if result != nil {
				fmt.Printf("\nAssigned trainer: %s\n", result.Trainer.Name)
			}
			return nil
		},
	}
	quizFlags(cmd, &q)
	cmd.Flags().BoolVar(&asJSON, "json", false, "emit JSON instead of markdown")
	return cmd
}

func newFiguresCmd() *cobra.Command {
	var q quiz.Data

	cmd := &cobra.Command{
		Use:   "figures",
		Short: "Run the deterministic calculation only",
		RunE: func(cmd *cobra.Command, args []string) error {
			svc := app.NewAssessmentService(plan.DefaultPolicy(), nil, nil, nil, logging.NewNop())
			numbers, timeline, err := svc.ComputeFigures(q)
			if err != nil {
				return err
			}
			return json.NewEncoder(os.Stdout).Encode(map[string]interface{}{
				"numbers":  numbers,
				"timeline": timeline,
			})
		},
	}
	quizFlags(cmd, &q)
	return cmd
}

func newAssignCmd() *cobra.Command {
	var goal string
	var assessmentID string
	var seed int64

	cmd := &cobra.Command{
		Use:   "assign",
		Short: "Draw a trainer for a goal",
		RunE: func(cmd *cobra.Command, args []string) error {
			var adapter *rng.Adapter
			if seed != 0 {
				adapter = rng.NewSeeded(seed)
			} else {
				adapter = rng.New()
			}

			workout := app.NewWorkoutService(adapter, nil, logging.NewNop())
			assigned, err := workout.AssignTrainer(context.Background(), assessmentID, quiz.Goal(goal))
			if err != nil {
				return err
			}
			return json.NewEncoder(os.Stdout).Encode(assigned)
		},
	}
	cmd.Flags().StringVar(&goal, "goal", "lose_weight", "training goal")
	cmd.Flags().StringVar(&assessmentID, "assessment-id", "", "scope the draw to an assessment")
	cmd.Flags().Int64Var(&seed, "seed", 0, "fixed seed for reproducible draws")
	return cmd
}
