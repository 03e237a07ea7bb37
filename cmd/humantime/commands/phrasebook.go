package commands

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/mrled/humantime/internal/model"
	"github.com/mrled/humantime/internal/presenter"
	"github.com/mrled/humantime/pkg/phrasebook"
	"github.com/mrled/humantime/pkg/timefmt"
	"github.com/spf13/cobra"
)

func newPhrasebookCmd(opts *options) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "phrasebook",
		Short:   "Manage stored phrasebooks",
		GroupID: "phrasebook",
		Long: `Manage the phrasebooks humantime renders with.

Phrasebooks are YAML documents holding one phrase pattern per scenario, the
weekday names and the week numbering rule of a locale. They are stored in a
JSON file (--file) or a DynamoDB table (--dynamodb-table), and can be
published to or fetched from S3.`,
	}

	cmd.AddCommand(
		newPhrasebookListCmd(opts),
		newPhrasebookGetCmd(opts),
		newPhrasebookImportCmd(opts),
		newPhrasebookExportCmd(opts),
		newPhrasebookDeleteCmd(opts),
		newPhrasebookPublishCmd(opts),
		newPhrasebookFetchCmd(opts),
	)
	return cmd
}

func newPhrasebookListCmd(opts *options) *cobra.Command {
	var flags struct {
		PersistenceFlags
		Builtin  bool
		Prefix   string
		Contains string
		SortBy   string
	}

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List stored phrasebooks",
		Args:  exactArgs(0),
		Long: `List stored phrasebooks with their revision and last update.

Examples:
  humantime phrasebook list --file ./phrasebooks.json
  humantime phrasebook list --dynamodb-table phrasebooks --sort updated
  humantime phrasebook list --file ./phrasebooks.json --prefix zh
  humantime phrasebook list --builtin`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if flags.Builtin {
				for _, locale := range phrasebook.Locales() {
					pb, err := phrasebook.Builtin(locale)
					if err != nil {
						return err
					}
					printf(cmd, "%-12s %s\n", locale, pb.Description())
				}
				return nil
			}

			ctx := cmd.Context()
			repo, err := flags.repository(ctx)
			if err != nil {
				return err
			}
			records, err := repo.List(ctx)
			if err != nil {
				return fmt.Errorf("failed to list phrasebooks: %w", err)
			}

			filter := model.RecordFilter{}
			if flags.Prefix != "" {
				filter.Locales = []string{flags.Prefix}
			}
			if flags.Contains != "" {
				filter.Contains = []string{flags.Contains}
			}
			records = model.FilterRecords(records, filter)
			model.SortRecords(records, flags.SortBy)

			if len(records) == 0 {
				printf(cmd, "No phrasebooks found.\n")
				return nil
			}

			p := presenter.New(timefmt.New(timefmt.WithLocation(opts.location)), opts.clock)
			printf(cmd, "%-12s %-5s %-12s %s\n", "Locale", "Rev", "Updated", "Description")
			printf(cmd, "%s\n", strings.Repeat("-", 60))
			for _, record := range records {
				description := ""
				if record.Document != nil {
					description = record.Document.Description
				}
				printf(cmd, "%-12s %-5d %-12s %s\n",
					truncateString(record.Locale, 12),
					record.Rev,
					p.TimeSinceCompact(record.UpdatedAt),
					description)
			}
			printf(cmd, "\nTotal phrasebooks: %d\n", len(records))
			return nil
		},
	}

	addPersistenceFlags(cmd, &flags.PersistenceFlags)
	cmd.Flags().BoolVar(&flags.Builtin, "builtin", false, "List the built-in phrasebooks instead")
	cmd.Flags().StringVar(&flags.Prefix, "prefix", "", "Only locales equal to or under this one (\"zh\" matches \"zh-tw\")")
	cmd.Flags().StringVar(&flags.Contains, "contains", "", "Only phrasebooks whose description contains this text")
	cmd.Flags().StringVarP(&flags.SortBy, "sort", "s", "", "Sort by: locale, updated, rev (default: locale)")
	return cmd
}

func newPhrasebookGetCmd(opts *options) *cobra.Command {
	var flags PersistenceFlags

	cmd := &cobra.Command{
		Use:   "get LOCALE",
		Short: "Print a stored phrasebook as YAML",
		Args:  exactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			repo, err := flags.repository(ctx)
			if err != nil {
				return err
			}
			record, err := repo.Get(ctx, args[0])
			if errors.Is(err, model.ErrNotFound) {
				return ExitWithCode(1, fmt.Errorf("phrasebook %s not found", args[0]))
			}
			if err != nil {
				return err
			}
			pb, err := record.Phrasebook()
			if err != nil {
				return fmt.Errorf("stored phrasebook %s: %w", record.Locale, err)
			}
			return writeYAML(cmd, pb, "")
		},
	}

	addPersistenceFlags(cmd, &flags)
	return cmd
}

func newPhrasebookImportCmd(opts *options) *cobra.Command {
	var flags struct {
		PersistenceFlags
		Replace bool
	}

	cmd := &cobra.Command{
		Use:   "import FILE",
		Short: "Validate a phrasebook YAML file and store it",
		Args:  exactArgs(1),
		Long: `Validate a phrasebook YAML file and store it under its locale.
Without --replace an existing phrasebook for the locale is an error.

Examples:
  humantime phrasebook import ./fr.yaml --file ./phrasebooks.json
  humantime phrasebook import ./fr.yaml --dynamodb-table phrasebooks --replace`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			pb, err := phrasebook.Load(args[0])
			if err != nil {
				return err
			}
			repo, err := flags.repository(ctx)
			if err != nil {
				return err
			}

			record := model.NewPhrasebookRecord(pb, opts.clock.Now())
			if flags.Replace {
				err = repo.Put(ctx, record)
			} else {
				err = repo.Store(ctx, record)
			}
			if errors.Is(err, model.ErrAlreadyExists) {
				return ExitWithCode(1, fmt.Errorf("phrasebook %s already exists; use --replace to overwrite it", record.Locale))
			}
			if err != nil {
				return fmt.Errorf("failed to store phrasebook: %w", err)
			}

			stored, err := repo.Get(ctx, record.Locale)
			if err != nil {
				return err
			}
			opts.log.Info("Imported phrasebook", slog.String("locale", stored.Locale), slog.Int64("rev", stored.Rev))
			printf(cmd, "Imported %s (rev %d)\n", stored.Locale, stored.Rev)
			return nil
		},
	}

	addPersistenceFlags(cmd, &flags.PersistenceFlags)
	cmd.Flags().BoolVar(&flags.Replace, "replace", false, "Overwrite an existing phrasebook")
	return cmd
}

func newPhrasebookExportCmd(opts *options) *cobra.Command {
	var flags struct {
		PersistenceFlags
		Output string
	}

	cmd := &cobra.Command{
		Use:   "export LOCALE",
		Short: "Write the phrasebook a locale resolves to as YAML",
		Args:  exactArgs(1),
		Long: `Write the phrasebook LOCALE resolves to, looking at the repository (when one
is given) before the built-ins. Useful as a starting point for a new locale.

Examples:
  humantime phrasebook export en -o ./fr.yaml
  humantime phrasebook export zh-TW --file ./phrasebooks.json`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			repo, err := flags.optionalRepository(ctx)
			if err != nil {
				return err
			}
			pb, err := opts.resolvePhrasebook(ctx, repo, args[0])
			if err != nil {
				return err
			}
			return writeYAML(cmd, pb, flags.Output)
		},
	}

	addPersistenceFlags(cmd, &flags.PersistenceFlags)
	cmd.Flags().StringVarP(&flags.Output, "output", "o", "", "Write to this file instead of stdout")
	return cmd
}

func newPhrasebookDeleteCmd(opts *options) *cobra.Command {
	var flags PersistenceFlags

	cmd := &cobra.Command{
		Use:   "delete LOCALE",
		Short: "Delete a stored phrasebook",
		Args:  exactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			repo, err := flags.repository(ctx)
			if err != nil {
				return err
			}
			if err := repo.Delete(ctx, args[0]); errors.Is(err, model.ErrNotFound) {
				return ExitWithCode(1, fmt.Errorf("phrasebook %s not found", args[0]))
			} else if err != nil {
				return fmt.Errorf("failed to delete phrasebook: %w", err)
			}
			printf(cmd, "Deleted %s\n", model.NormalizeLocale(args[0]))
			return nil
		},
	}

	addPersistenceFlags(cmd, &flags)
	return cmd
}

func newPhrasebookPublishCmd(opts *options) *cobra.Command {
	var flags struct {
		PersistenceFlags
		S3Flags
	}

	cmd := &cobra.Command{
		Use:   "publish LOCALE",
		Short: "Upload the phrasebook a locale resolves to into S3",
		Args:  exactArgs(1),
		Long: `Upload the phrasebook LOCALE resolves to as a YAML object. The key defaults
to phrasebooks/<locale>.yaml.

Examples:
  humantime phrasebook publish zh --bucket my-bucket
  humantime phrasebook publish fr --bucket my-bucket --key i18n/fr.yaml --file ./phrasebooks.json`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			repo, err := flags.optionalRepository(ctx)
			if err != nil {
				return err
			}
			pb, err := opts.resolvePhrasebook(ctx, repo, args[0])
			if err != nil {
				return err
			}

			s3Flags := flags.S3Flags
			if s3Flags.Key == "" {
				s3Flags.Key = "phrasebooks/" + pb.Locale() + ".yaml"
			}
			adapter, err := s3Flags.adapter(ctx, opts.newS3)
			if err != nil {
				return err
			}
			if err := adapter.Save(ctx, pb); err != nil {
				return err
			}
			printf(cmd, "Published %s to s3://%s/%s\n", pb.Locale(), s3Flags.Bucket, s3Flags.Key)
			return nil
		},
	}

	addPersistenceFlags(cmd, &flags.PersistenceFlags)
	addS3Flags(cmd, &flags.S3Flags)
	return cmd
}

func newPhrasebookFetchCmd(opts *options) *cobra.Command {
	var flags struct {
		PersistenceFlags
		S3Flags
		Import bool
	}

	cmd := &cobra.Command{
		Use:   "fetch",
		Short: "Download a phrasebook from S3",
		Args:  exactArgs(0),
		Long: `Download and validate a phrasebook YAML object. It is printed, or stored
(replacing any existing one) with --import.

Examples:
  humantime phrasebook fetch --bucket my-bucket --key phrasebooks/zh.yaml
  humantime phrasebook fetch --bucket my-bucket --key phrasebooks/zh.yaml --import --file ./phrasebooks.json`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			adapter, err := flags.S3Flags.adapter(ctx, opts.newS3)
			if err != nil {
				return err
			}
			pb, err := adapter.Load(ctx)
			if errors.Is(err, model.ErrNotFound) {
				return ExitWithCode(1, err)
			}
			if err != nil {
				return err
			}

			if !flags.Import {
				return writeYAML(cmd, pb, "")
			}

			repo, err := flags.repository(ctx)
			if err != nil {
				return err
			}
			if err := repo.Put(ctx, model.NewPhrasebookRecord(pb, opts.clock.Now())); err != nil {
				return fmt.Errorf("failed to store phrasebook: %w", err)
			}
			printf(cmd, "Imported %s from s3://%s/%s\n", pb.Locale(), flags.Bucket, flags.Key)
			return nil
		},
	}

	addPersistenceFlags(cmd, &flags.PersistenceFlags)
	addS3Flags(cmd, &flags.S3Flags)
	cmd.Flags().BoolVar(&flags.Import, "import", false, "Store the fetched phrasebook instead of printing it")
	return cmd
}

// writeYAML writes pb to path, or to the command's output when path is empty
func writeYAML(cmd *cobra.Command, pb *phrasebook.Phrasebook, path string) error {
	data, err := pb.Encode()
	if err != nil {
		return err
	}
	if path == "" {
		_, err = cmd.OutOrStdout().Write(data)
		return err
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	printf(cmd, "Wrote %s to %s\n", pb.Locale(), path)
	return nil
}

// truncateString truncates a string to the specified length with ellipsis
func truncateString(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	if maxLen < 3 {
		return s[:maxLen]
	}
	return s[:maxLen-3] + "..."
}
