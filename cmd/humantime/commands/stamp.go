package commands

import (
	"github.com/mrled/humantime/pkg/timefmt"
	"github.com/spf13/cobra"
)

func newStampCmd(opts *options) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "stamp [TIME]",
		Short:   "Print the directory name, file name and full form of an instant",
		GroupID: "format",
		Args:    maxArgs(1),
		Long: `Print TIME (default: now) as a date-based directory name (20060102), a
time-of-day file name with milliseconds (150405000) and the phrasebook's full
rendering.

Examples:
  humantime stamp
  humantime stamp "2024-03-10 10:00:00" --locale zh`,
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := opts.formatter(cmd.Context())
			if err != nil {
				return err
			}
			t := opts.clock.Now()
			if len(args) == 1 {
				if t, err = opts.parseTime("TIME", args[0]); err != nil {
					return err
				}
			}

			local := f.Comparator().In(t)
			printf(cmd, "dir:  %s\n", timefmt.DirName(local))
			printf(cmd, "file: %s\n", timefmt.FileName(local))
			printf(cmd, "full: %s\n", f.Full(t))
			return nil
		},
	}
	return cmd
}
