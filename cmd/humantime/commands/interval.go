package commands

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newIntervalCmd(opts *options) *cobra.Command {
	var flags struct {
		Now      string
		Hours    bool
		Fallback bool
	}

	cmd := &cobra.Command{
		Use:     "interval TARGET",
		Short:   "Describe how long ago an instant was",
		GroupID: "format",
		Args:    exactArgs(1),
		Long: `Describe the gap between TARGET and now as "just now" or "N minutes ago", and
with --hours also as "N hours ago" or "N days ago".

When no phrase applies (TARGET is in the future, or an hour or more ago
without --hours) the command exits with status 1, unless --fallback is set,
in which case it prints the calendar rendering that "show" would.

Examples:
  humantime interval "2024-03-10 09:57" --now "2024-03-10 10:00"
  humantime interval 2024-03-01 --hours`,
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := opts.formatter(cmd.Context())
			if err != nil {
				return err
			}
			target, err := opts.parseTime("TARGET", args[0])
			if err != nil {
				return err
			}
			now, err := opts.parseNow(flags.Now)
			if err != nil {
				return err
			}

			text, ok := f.DescribeInterval(target, now, flags.Hours)
			if !ok {
				if !flags.Fallback {
					return ExitWithCode(1, fmt.Errorf("no relative phrase applies to %s seen at %s",
						f.Full(target), f.Full(now)))
				}
				text = f.ShowTime(target, now)
			}
			printf(cmd, "%s\n", text)
			return nil
		},
	}

	cmd.Flags().StringVarP(&flags.Now, "now", "n", "", "Reference instant (default: current time)")
	cmd.Flags().BoolVar(&flags.Hours, "hours", false, "Include the hour and day scales")
	cmd.Flags().BoolVar(&flags.Fallback, "fallback", false, "Print the calendar rendering when no relative phrase applies")
	return cmd
}
