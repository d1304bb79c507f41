package main

import (
	"fmt"
	"strconv"
	"time"

	"checklist_manager/internal/checklist"
	"checklist_manager/internal/config"
	"checklist_manager/internal/repository"
	"checklist_manager/internal/services"

	"github.com/spf13/cobra"
)

func reconcileCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "reconcile",
		Short: "Recompute delay fields of every pending subtask",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := config.Load()
			db, err := openDB(cfg)
			if err != nil {
				return err
			}
			holidays := services.NewHolidayService(repository.NewHolidayRepository(db), nil, 0)
			svc := services.NewChecklistService(repository.NewSubtaskRepository(db), holidays, nil, cfg.Location())

			updated, err := svc.ReconcilePending(cmd.Context(), time.Now())
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%d subtasks updated\n", updated)
			return nil
		},
	}
}

func delaySecondsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "delay-seconds <text>",
		Short: "Print the seconds a stored delay string normalizes to",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			secs := checklist.DelayToSeconds(args[0])
			fmt.Fprintf(cmd.OutOrStdout(), "%d\t%s\n", secs, checklist.FormatDelay(secs))
			return nil
		},
	}
}

func durationSecondsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "duration-seconds <text>",
		Short: "Print the seconds a duration column value normalizes to",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			fmt.Fprintln(cmd.OutOrStdout(), strconv.FormatInt(checklist.DurationToSeconds(args[0]), 10))
			return nil
		},
	}
}
