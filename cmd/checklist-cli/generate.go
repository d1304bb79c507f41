package main

import (
	"fmt"
	"strings"

	"checklist_manager/internal/checklist"
	"checklist_manager/internal/config"
	"checklist_manager/internal/repository"
	"checklist_manager/internal/services"

	"github.com/spf13/cobra"
)

var (
	generateActor uint
	generateReq   checklist.Request
)

func generateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Generate dated checklist subtasks for one assignee",
		Long: `Expands a start/end date range into one pending subtask per occurrence
of the frequency, skipping Sundays and holidays.

Examples:
  checklist-cli generate --actor 1 --assignee 7 --start 2024-01-01 --end 2024-03-31 \
    --frequency weekly --duration 00:30:00 --description "Check stock register"`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := config.Load()
			db, err := openDB(cfg)
			if err != nil {
				return err
			}

			userService := services.NewUserService(repository.NewUserRepository(db))
			auth, err := userService.ResolveAuthContext(cmd.Context(), generateActor)
			if err != nil {
				return fmt.Errorf("resolve actor %d: %w", generateActor, err)
			}
			holidays := services.NewHolidayService(repository.NewHolidayRepository(db), nil, 0)
			svc := services.NewChecklistService(repository.NewSubtaskRepository(db), holidays, nil, cfg.Location())

			result, err := svc.Generate(cmd.Context(), auth, generateReq)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			fmt.Fprintln(out, result.Message())
			if len(result.SkippedDates) > 0 {
				fmt.Fprintf(out, "Skipped: %s\n", strings.Join(result.SkippedDates, ", "))
			}
			if len(result.FailedDates) > 0 {
				fmt.Fprintf(out, "Failed: %s\n", strings.Join(result.FailedDates, ", "))
			}
			return nil
		},
	}

	cmd.Flags().UintVar(&generateActor, "actor", 0, "id of the user assigning the task")
	cmd.Flags().UintVar(&generateReq.AssigneeID, "assignee", 0, "id of the user doing the task")
	cmd.Flags().StringVar(&generateReq.StartDate, "start", "", "first date, YYYY-MM-DD")
	cmd.Flags().StringVar(&generateReq.EndDate, "end", "", "last date, YYYY-MM-DD")
	cmd.Flags().StringVar(&generateReq.Frequency, "frequency", "daily", "daily, weekly, fortnightly, monthly, quarterly or yearly")
	cmd.Flags().StringVar(&generateReq.Duration, "duration", "", "time span, HH:MM:SS")
	cmd.Flags().StringVar(&generateReq.Description, "description", "", "task description")
	cmd.MarkFlagRequired("actor")
	return cmd
}
