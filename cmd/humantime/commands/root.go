package commands

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/mrled/humantime/internal/logger"
	"github.com/mrled/humantime/internal/model"
	"github.com/mrled/humantime/internal/timeparse"
	"github.com/mrled/humantime/internal/usecase/resolve"
	"github.com/mrled/humantime/pkg/calendar"
	"github.com/mrled/humantime/pkg/clock"
	"github.com/mrled/humantime/pkg/phrasebook"
	"github.com/mrled/humantime/pkg/timefmt"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

const envPrefix = "HUMANTIME"

// Configuration keys; each is also a persistent flag of the root command
const (
	keyConfig     = "config"
	keyLocale     = "locale"
	keyPhrasebook = "phrasebook"
	keyTZ         = "tz"
	keyWeekStart  = "week-start"
	keyLogLevel   = "log-level"
	keyLogFormat  = "log-format"
)

// options is the state shared by every command of one invocation
type options struct {
	v         *viper.Viper
	clock     clock.Clock
	newS3     S3ClientFactory
	log       *slog.Logger
	location  *time.Location
	weekStart *time.Weekday
}

// NewRootCmd builds the humantime command tree around clk
func NewRootCmd(clk clock.Clock) *cobra.Command {
	return newRootCmd(&options{clock: clk, newS3: newS3Client})
}

func newRootCmd(opts *options) *cobra.Command {
	opts.v = viper.New()
	if opts.clock == nil {
		opts.clock = clock.Real{}
	}

	cmd := &cobra.Command{
		Use:   "humantime",
		Short: "Humantime renders timestamps the way people read them",
		Long: `A command-line tool for turning timestamps into phrases like "3 minutes ago",
"yesterday 14:30" or "2016-12-31", and for managing the phrasebooks those
phrases come from.

Settings come from flags, then HUMANTIME_* environment variables, then the
file named by --config.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return opts.setup(cmd)
		},
	}

	pf := cmd.PersistentFlags()
	pf.String(keyConfig, "", "Config file (yaml, json or toml)")
	pf.StringP(keyLocale, "l", resolve.DefaultLocale, "Phrasebook locale")
	pf.String(keyPhrasebook, "", "Phrasebook YAML file, overriding --locale")
	pf.String(keyTZ, "", "Time zone for calendar comparisons (default: local)")
	pf.String(keyWeekStart, "", "First day of the week (default: from the phrasebook)")
	pf.String(keyLogLevel, "warn", "Log level (debug, info, warn, error)")
	pf.String(keyLogFormat, "text", "Log format (text or json)")

	// BindPFlags only fails on a nil flag set
	_ = opts.v.BindPFlags(pf)
	opts.v.SetEnvPrefix(envPrefix)
	opts.v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	opts.v.AutomaticEnv()

	cmd.AddGroup(
		&cobra.Group{ID: "format", Title: "Formatting Commands:"},
		&cobra.Group{ID: "phrasebook", Title: "Phrasebook Commands:"},
	)
	cmd.AddCommand(
		newShowCmd(opts),
		newIntervalCmd(opts),
		newCompareCmd(opts),
		newStampCmd(opts),
		newPhrasebookCmd(opts),
	)
	return cmd
}

// Execute runs the root command
func Execute() error {
	return NewRootCmd(clock.Real{}).Execute()
}

// setup reads the config file, configures logging and validates the shared settings
func (o *options) setup(cmd *cobra.Command) error {
	if path := o.v.GetString(keyConfig); path != "" {
		o.v.SetConfigFile(path)
		if err := o.v.ReadInConfig(); err != nil {
			return usageErrorf("failed to read config file: %w", err)
		}
	}

	o.log = logger.WithExecutable(logger.NewLogger(logger.Config{
		Level:  o.v.GetString(keyLogLevel),
		Format: o.v.GetString(keyLogFormat),
		Output: cmd.ErrOrStderr(),
	}), "humantime")
	logger.SetDefault(o.log)

	o.location = time.Local
	if tz := o.v.GetString(keyTZ); tz != "" {
		loc, err := time.LoadLocation(tz)
		if err != nil {
			return usageErrorf("invalid --tz %q: %w", tz, err)
		}
		o.location = loc
	}

	o.weekStart = nil
	if raw := o.v.GetString(keyWeekStart); raw != "" {
		wd, err := calendar.ParseWeekday(raw)
		if err != nil {
			return usageErrorf("invalid --week-start: %w", err)
		}
		o.weekStart = &wd
	}

	if o.v.ConfigFileUsed() != "" {
		o.log.Debug("Loaded config file", slog.String("path", o.v.ConfigFileUsed()))
	}
	return nil
}

// loadPhrasebook loads the --phrasebook file, or the built-in for --locale
func (o *options) loadPhrasebook(ctx context.Context) (*phrasebook.Phrasebook, error) {
	if path := o.v.GetString(keyPhrasebook); path != "" {
		pb, err := phrasebook.Load(path)
		if err != nil {
			return nil, err
		}
		o.log.Debug("Loaded phrasebook file", slog.String("path", path), slog.String("locale", pb.Locale()))
		return pb, nil
	}

	return o.resolvePhrasebook(ctx, nil, o.v.GetString(keyLocale))
}

// resolvePhrasebook resolves locale against repo (which may be nil) and the built-ins
func (o *options) resolvePhrasebook(ctx context.Context, repo model.PhrasebookRepository, locale string) (*phrasebook.Phrasebook, error) {
	pb, source, err := resolve.NewResolveUseCase(repo).Resolve(ctx, locale)
	if errors.Is(err, phrasebook.ErrUnknownLocale) {
		return nil, usageErrorf("%w (built-in locales: %s)", err, strings.Join(phrasebook.Locales(), ", "))
	}
	if err != nil {
		return nil, err
	}
	logger.WithLocale(o.log, pb.Locale()).Debug("Resolved phrasebook", slog.String("source", string(source)))
	return pb, nil
}

// formatter builds the formatter every formatting command renders with
func (o *options) formatter(ctx context.Context) (*timefmt.Formatter, error) {
	pb, err := o.loadPhrasebook(ctx)
	if err != nil {
		return nil, err
	}

	fopts := []timefmt.Option{
		timefmt.WithPhrasebook(pb),
		timefmt.WithLocation(o.location),
	}
	if o.weekStart != nil {
		fopts = append(fopts, timefmt.WithWeekRule(calendar.StartingOn(*o.weekStart)))
	}
	return timefmt.New(fopts...), nil
}

// parseTime reads a time argument in the configured location
func (o *options) parseTime(name, raw string) (time.Time, error) {
	t, err := timeparse.Parse(raw, o.location)
	if err != nil {
		return time.Time{}, usageErrorf("%s: %w", name, err)
	}
	return t, nil
}

// parseNow reads --now, defaulting to the clock
func (o *options) parseNow(raw string) (time.Time, error) {
	if strings.TrimSpace(raw) == "" {
		return o.clock.Now(), nil
	}
	return o.parseTime("--now", raw)
}

// exactArgs is cobra.ExactArgs reported as a usage error
func exactArgs(n int) cobra.PositionalArgs {
	return func(cmd *cobra.Command, args []string) error {
		if len(args) != n {
			return usageErrorf("%s takes %d argument(s), received %d", cmd.CommandPath(), n, len(args))
		}
		return nil
	}
}

func maxArgs(n int) cobra.PositionalArgs {
	return func(cmd *cobra.Command, args []string) error {
		if len(args) > n {
			return usageErrorf("%s takes at most %d argument(s), received %d", cmd.CommandPath(), n, len(args))
		}
		return nil
	}
}

func printf(cmd *cobra.Command, format string, args ...any) {
	fmt.Fprintf(cmd.OutOrStdout(), format, args...)
}
