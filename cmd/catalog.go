package cmd

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"cinema-booking-cli/service"
	"cinema-booking-cli/store"
)

func (a *app) catalogCommand() *cobra.Command {
	catalog := &cobra.Command{
		Use:   "catalog",
		Short: "Manage the saved movie catalog",
		Args:  cobra.NoArgs,
	}

	var force bool
	initCmd := &cobra.Command{
		Use:   "init",
		Short: "Write the built-in catalog to the config directory",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			path, err := store.DefaultCatalogPath()
			if err != nil {
				return fail(err)
			}
			err = store.SaveCatalog(path, service.DefaultCatalog().Document(), force)
			if errors.Is(err, store.ErrCatalogExists) {
				return fail(fmt.Errorf("%w (use --force to overwrite)", err))
			}
			if err != nil {
				return fail(err)
			}
			a.logger.Info("catalog written", "path", path)
			fmt.Fprintf(a.out, "Catalog written to %s\n", path)
			return nil
		},
	}
	initCmd.Flags().BoolVar(&force, "force", false, "overwrite an existing catalog file")

	catalog.AddCommand(initCmd)
	return catalog
}
