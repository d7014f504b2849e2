package main

import (
	"github.com/spf13/cobra"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List the records of the collection",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		c, err := openCatalog(cmd.OutOrStdout())
		if err != nil {
			return err
		}
		sorted, _ := cmd.Flags().GetBool("sort")
		return c.List(cmd.Context(), sorted)
	},
}

var showCmd = &cobra.Command{
	Use:   "show ID",
	Short: "Show one record",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := parseID(args[0])
		if err != nil {
			return err
		}
		c, err := openCatalog(cmd.OutOrStdout())
		if err != nil {
			return err
		}
		return c.Show(cmd.Context(), id)
	},
}

var createCmd = &cobra.Command{
	Use:     "create",
	Short:   "Create a record",
	Example: `  catalog create -s name=Chile -s goals=3 -s logo=https://flagcdn.com/w80/cl.png`,
	Args:    cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		c, err := openCatalog(cmd.OutOrStdout())
		if err != nil {
			return err
		}
		sets, _ := cmd.Flags().GetStringArray("set")
		return c.Create(cmd.Context(), sets)
	},
}

var updateCmd = &cobra.Command{
	Use:     "update ID",
	Short:   "Update a record; fields not given keep their value",
	Example: `  catalog -d planets update 4 -s moons=2 -s "moon_names=Phobos, Deimos"`,
	Args:    cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := parseID(args[0])
		if err != nil {
			return err
		}
		c, err := openCatalog(cmd.OutOrStdout())
		if err != nil {
			return err
		}
		sets, _ := cmd.Flags().GetStringArray("set")
		return c.Update(cmd.Context(), id, sets)
	},
}

var deleteCmd = &cobra.Command{
	Use:   "delete ID",
	Short: "Delete a record",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := parseID(args[0])
		if err != nil {
			return err
		}
		c, err := openCatalog(cmd.OutOrStdout())
		if err != nil {
			return err
		}
		return c.Delete(cmd.Context(), id)
	},
}

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Write the collection as CSV to stdout",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		c, err := openCatalog(cmd.OutOrStdout())
		if err != nil {
			return err
		}
		sorted, _ := cmd.Flags().GetBool("sort")
		return c.Export(cmd.Context(), sorted)
	},
}

var tuiCmd = &cobra.Command{
	Use:   "tui",
	Short: "Browse and edit the collection interactively",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		c, err := openCatalog(cmd.OutOrStdout())
		if err != nil {
			return err
		}
		return c.TUI(cmd.Context())
	},
}
