package cli

import (
	"fmt"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/m04kA/visa-booking-service/internal/domain"
)

func newRulesCommand(appFn func() *app) *cobra.Command {
	return &cobra.Command{
		Use:   "rules",
		Short: "List weekly and per-date availability blocks",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a := appFn()
			if err := a.loadRules(cmd.Context()); err != nil {
				return err
			}
			rs := a.store.Snapshot()

			tw := tabwriter.NewWriter(a.out, 0, 4, 2, ' ', 0)
			defer tw.Flush()

			fmt.Fprintln(tw, "WEEKDAY\tBLOCKED")
			for d := time.Sunday; d <= time.Saturday; d++ {
				rule, ok := rs.Weekday(d)
				if !ok {
					fmt.Fprintf(tw, "%s\t-\n", d)
					continue
				}
				fmt.Fprintf(tw, "%s\t%s\n", d, describeRule(rule))
			}

			dates := rs.SpecificDates()
			if len(dates) == 0 {
				return nil
			}
			fmt.Fprintln(tw, "\nDATE\tBLOCKED")
			for _, rule := range dates {
				date := rule.Key.Date
				fmt.Fprintf(tw, "%s (%.3s)\t%s\n", date, date.Weekday(), describeRule(rule))
			}
			return nil
		},
	}
}

func describeRule(rule domain.Rule) string {
	if rule.AllDay {
		return "all day"
	}
	if len(rule.UnavailableHours) == 0 {
		return "-"
	}
	labels := make([]string, 0, len(rule.UnavailableHours))
	for _, h := range rule.UnavailableHours {
		labels = append(labels, h.String())
	}
	return strings.Join(labels, ", ")
}
