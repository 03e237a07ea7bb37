package commands

import (
	"github.com/spf13/cobra"
)

func newShowCmd(opts *options) *cobra.Command {
	var flags struct {
		Now string
		Tag bool
	}

	cmd := &cobra.Command{
		Use:     "show TARGET",
		Short:   "Render an instant the way a message list shows it",
		GroupID: "format",
		Args:    exactArgs(1),
		Long: `Render TARGET relative to now: "just now" and "N minutes ago" within the hour,
then calendar phrases such as "yesterday 14:30", "09:15 Thursday", "03-21" or
"2016-12-31".

Examples:
  # Relative to the current time
  humantime show "2024-03-09 09:00"

  # Relative to a fixed reference instant, in Chinese
  humantime show 2024-03-09T09:00:00+08:00 --now 2024-03-10T10:00:00+08:00 --locale zh

  # Also print the scenario tag that was chosen
  humantime show 1710064800000 --tag`,
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

			text := f.ShowTime(target, now)
			if flags.Tag {
				printf(cmd, "%s\t%s\n", f.Scenario(target, now), text)
				return nil
			}
			printf(cmd, "%s\n", text)
			return nil
		},
	}

	cmd.Flags().StringVarP(&flags.Now, "now", "n", "", "Reference instant (default: current time)")
	cmd.Flags().BoolVar(&flags.Tag, "tag", false, "Print the scenario tag before the text")
	return cmd
}
