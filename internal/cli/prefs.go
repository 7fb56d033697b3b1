package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/five82/folio/internal/config"
	"github.com/five82/folio/internal/storage"
	"github.com/five82/folio/internal/uistore"
)

// NewPrefsCommand creates the prefs command group.
func NewPrefsCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "prefs",
		Short: "Inspect or reset persisted UI preferences",
	}

	cmd.AddCommand(&cobra.Command{
		Use:           "show",
		Short:         "Print the stored theme and table of contents preference",
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runPrefsShow(rootOpts, cmd)
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:           "reset",
		Short:         "Remove stored preferences so the next start uses defaults",
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runPrefsReset(rootOpts, cmd)
		},
	})

	return cmd
}

func openStorage(opts *RootOptions) (storage.Storage, error) {
	cfg, err := config.Load(opts.ConfigPath)
	if err != nil {
		return nil, fmt.Errorf("load folio config: %w", err)
	}
	store, err := storage.Open(cfg.StorageDriver, cfg.StoragePath)
	if err != nil {
		return nil, fmt.Errorf("open %s storage: %w", cfg.StorageDriver, err)
	}
	return store, nil
}

func runPrefsShow(opts *RootOptions, cmd *cobra.Command) error {
	store, err := openStorage(opts)
	if err != nil {
		return err
	}
	defer store.Close()

	raw, ok, err := store.Get(cmd.Context(), uistore.StorageKey)
	if err != nil {
		return fmt.Errorf("read %s: %w", uistore.StorageKey, err)
	}
	if !ok {
		raw = "{}"
	}
	fmt.Fprintln(cmd.OutOrStdout(), uistore.ParsePrefs(raw).JSON())
	return nil
}

func runPrefsReset(opts *RootOptions, cmd *cobra.Command) error {
	store, err := openStorage(opts)
	if err != nil {
		return err
	}
	defer store.Close()

	var errs []error
	for _, key := range []string{uistore.StorageKey, uistore.LegacyThemeKey} {
		if err := store.Remove(cmd.Context(), key); err != nil {
			errs = append(errs, fmt.Errorf("remove %s: %w", key, err))
		}
	}
	if err := errors.Join(errs...); err != nil {
		return err
	}
	fmt.Fprintln(cmd.OutOrStdout(), "Preferences reset")
	return nil
}
