package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"timesheet/internal/timerules"
)

func newOvertimeCmd(g *globalFlags) *cobra.Command {
	var user string
	cmd := &cobra.Command{
		Use:   "overtime",
		Short: "Print the running overtime balance of a user",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if user == "" {
				return fmt.Errorf("--user is required")
			}
			application, _, _, err := g.app(cmd.Context(), cmd.ErrOrStderr())
			if err != nil {
				return err
			}
			defer application.Close()

			s, err := application.Timesheet().OvertimeTotal(cmd.Context(), user, user)
			if err != nil {
				return err
			}
			w := cmd.OutOrStdout()
			fmt.Fprintf(w, "User:          %s\n", user)
			fmt.Fprintf(w, "Period:        %s to %s\n", s.From, s.To)
			fmt.Fprintf(w, "Worked:        %s (%d days)\n", timerules.FormatHM(s.WorkedMinutes), s.WorkedDays)
			fmt.Fprintf(w, "Daily target:  %s\n", timerules.FormatHM(s.DailyTarget))
			fmt.Fprintf(w, "Overtime:      %s\n", timerules.FormatHM(s.OvertimeMinutes))
			return nil
		},
	}
	cmd.Flags().StringVar(&user, "user", "", "User id")
	return cmd
}
