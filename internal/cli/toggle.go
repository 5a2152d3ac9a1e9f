package cli

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/m04kA/visa-booking-service/internal/domain"
)

// keyFlags --weekday или --date, ровно один
type keyFlags struct {
	weekday string
	date    string
}

func (f *keyFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.weekday, "weekday", "", "weekday: 0-6 (0 = Sunday) or name, e.g. monday")
	cmd.Flags().StringVar(&f.date, "date", "", "date YYYY-MM-DD")
	cmd.MarkFlagsMutuallyExclusive("weekday", "date")
	cmd.MarkFlagsOneRequired("weekday", "date")
}

func (f *keyFlags) key() (domain.RuleKey, error) {
	if f.date != "" {
		d, err := domain.ParseDate(f.date)
		if err != nil {
			return domain.RuleKey{}, err
		}
		return domain.DateKey(d), nil
	}

	day, err := parseWeekday(f.weekday)
	if err != nil {
		return domain.RuleKey{}, err
	}
	return domain.WeekdayKey(day), nil
}

func parseWeekday(s string) (time.Weekday, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	if n, err := strconv.Atoi(s); err == nil {
		key := domain.WeekdayKey(time.Weekday(n))
		if err := key.Validate(); err != nil {
			return 0, err
		}
		return time.Weekday(n), nil
	}
	for d := time.Sunday; d <= time.Saturday; d++ {
		name := strings.ToLower(d.String())
		if s == name || (len(s) >= 3 && strings.HasPrefix(name, s)) {
			return d, nil
		}
	}
	return 0, fmt.Errorf("unknown weekday %q", s)
}

// parseHour принимает 0-23 или подпись "3:00 PM"
func parseHour(s string) (domain.HourSlot, error) {
	s = strings.TrimSpace(s)
	if n, err := strconv.Atoi(s); err == nil {
		h := domain.HourSlot(n)
		if !h.Valid() {
			return 0, domain.ErrInvalidHour
		}
		return h, nil
	}
	return domain.ParseHour24(strings.ToUpper(s))
}

func newToggleHourCommand(appFn func() *app) *cobra.Command {
	var (
		keys keyFlags
		hour string
	)

	cmd := &cobra.Command{
		Use:   "toggle-hour",
		Short: "Block or unblock one hour of a weekday or a date",
		Long: `Block the hour if it is open, open it if it is blocked.

Examples:
  availctl toggle-hour --weekday monday --hour 9
  availctl toggle-hour --date 2025-12-24 --hour "3:00 PM"`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a := appFn()
			key, err := keys.key()
			if err != nil {
				return err
			}
			h, err := parseHour(hour)
			if err != nil {
				return err
			}
			if err := a.loadRules(cmd.Context()); err != nil {
				return err
			}

			rule, err := a.editor.ToggleHour(cmd.Context(), key, h)
			if err != nil {
				return fmt.Errorf("toggle failed: %w", err)
			}

			a.printf("%s: %s\n", key, describeRule(*rule))
			return nil
		},
	}

	keys.register(cmd)
	cmd.Flags().StringVar(&hour, "hour", "", `hour 0-23 or label such as "3:00 PM"`)
	_ = cmd.MarkFlagRequired("hour")
	return cmd
}

func newToggleAllDayCommand(appFn func() *app) *cobra.Command {
	var keys keyFlags

	cmd := &cobra.Command{
		Use:   "toggle-all-day",
		Short: "Block or unblock a whole weekday or date",
		Long: `Switch the all-day block. Turning it on clears the individual blocked hours.

Examples:
  availctl toggle-all-day --weekday sunday
  availctl toggle-all-day --date 2025-12-25`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a := appFn()
			key, err := keys.key()
			if err != nil {
				return err
			}
			if err := a.loadRules(cmd.Context()); err != nil {
				return err
			}

			rule, err := a.editor.ToggleAllDay(cmd.Context(), key)
			if err != nil {
				return fmt.Errorf("toggle failed: %w", err)
			}

			a.printf("%s: %s\n", key, describeRule(*rule))
			return nil
		},
	}

	keys.register(cmd)
	return cmd
}

func newUnblockCommand(appFn func() *app) *cobra.Command {
	var date string

	cmd := &cobra.Command{
		Use:   "unblock",
		Short: "Remove the rule of a date so the weekday rule applies again",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a := appFn()
			d, err := domain.ParseDate(date)
			if err != nil {
				return err
			}

			if err := a.editor.DeleteSpecificDate(cmd.Context(), d); err != nil {
				return fmt.Errorf("unblock failed: %w", err)
			}

			a.printf("%s: date rule removed\n", d)
			return nil
		},
	}

	cmd.Flags().StringVar(&date, "date", "", "date YYYY-MM-DD")
	_ = cmd.MarkFlagRequired("date")
	return cmd
}
