package cli

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/m04kA/visa-booking-service/internal/domain"
	"github.com/m04kA/visa-booking-service/internal/service/availability"
)

// Состояние часа в сетке дня
const (
	hourOpen    = "open"
	hourBlocked = "blocked"
	hourTaken   = "booked or passed"
)

func newHoursCommand(appFn func() *app) *cobra.Command {
	var date string

	cmd := &cobra.Command{
		Use:   "hours",
		Short: "Show the 24-hour grid of a date",
		Long: `Show every hour of a date: blocked by a rule, open, or unavailable because it is booked or already passed.

Examples:
  availctl hours --date 2025-12-24`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a := appFn()
			d, err := domain.ParseDate(date)
			if err != nil {
				return err
			}
			if err := a.loadRules(cmd.Context()); err != nil {
				return err
			}

			bookable := availability.BookableHoursFor(d, a.store.Snapshot())

			// Сервер дополнительно учитывает занятые и прошедшие часы
			open, err := a.client.OpenHours(cmd.Context(), d)
			if err != nil {
				a.log.Warn("Could not load booked hours for %s: %v", d, err)
				open = bookable
			}

			state := gridState(bookable, open)
			tw := tabwriter.NewWriter(a.out, 0, 4, 2, ' ', 0)
			defer tw.Flush()

			fmt.Fprintf(tw, "%s (%s)\n", d, d.Weekday())
			for _, h := range domain.AllHours() {
				fmt.Fprintf(tw, "%2d\t%s\t%s\n", h.Hour, h.Label, state[h.Hour])
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&date, "date", "", "date YYYY-MM-DD")
	_ = cmd.MarkFlagRequired("date")
	return cmd
}

// gridState размечает каждый час: закрыт правилом, свободен или занят
func gridState(bookable, open []domain.HourSlot) [domain.HoursPerDay]string {
	var state [domain.HoursPerDay]string
	for i := range state {
		state[i] = hourBlocked
	}
	for _, h := range bookable {
		state[h] = hourTaken
	}
	for _, h := range open {
		if h.Valid() && state[h] == hourTaken {
			state[h] = hourOpen
		}
	}
	return state
}
