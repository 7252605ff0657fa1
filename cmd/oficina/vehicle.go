package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/micaelyMelo/OficinaMecanica/internal/shop"
)

var vehicleCmd = &cobra.Command{
	Use:     "vehicle",
	GroupID: "records",
	Short:   "Manage vehicles",
	Long: `Register, update, delete and list vehicles.

A vehicle is identified by its plate and must be registered for an existing
client. Deleting a vehicle keeps its service orders and clears their plate.`,
}

var vehicleAddCmd = &cobra.Command{
	Use:     "add",
	Short:   "Register a vehicle for a client",
	Example: `  oficina vehicle add --plate ABC1234 --model Gol --year 2015 --owner 111.111.111-11`,
	Args:    cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		plate, _ := cmd.Flags().GetString("plate")
		model, _ := cmd.Flags().GetString("model")
		year, _ := cmd.Flags().GetInt("year")
		owner, _ := cmd.Flags().GetString("owner")

		v, err := store.Vehicles().Register(plate, model, year, owner)
		if err != nil {
			return persisted(err)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "%s Registered vehicle %s (%s %d)\n", render.Pass("✓"), v.Plate, v.Model, v.Year)
		return nil
	},
}

var vehicleUpdateCmd = &cobra.Command{
	Use:   "update <plate>",
	Short: "Change the model or year of a vehicle",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		vehicles := store.Vehicles()
		current, ok := vehicles.FindByPlate(args[0])
		if !ok {
			return fmt.Errorf("vehicle %s: %w", args[0], shop.ErrNotFound)
		}

		model, year := current.Model, current.Year
		if cmd.Flags().Changed("model") {
			model, _ = cmd.Flags().GetString("model")
		}
		if cmd.Flags().Changed("year") {
			year, _ = cmd.Flags().GetInt("year")
		}

		v, err := vehicles.Update(args[0], model, year)
		if err != nil {
			return persisted(err)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "%s Updated vehicle %s (%s %d)\n", render.Pass("✓"), v.Plate, v.Model, v.Year)
		return nil
	},
}

var vehicleDeleteCmd = &cobra.Command{
	Use:   "delete <plate>",
	Short: "Delete a vehicle and clear the plate of its orders",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		affected := 0
		for _, o := range store.Orders().List() {
			if o.Plate == args[0] {
				affected++
			}
		}
		if err := store.Vehicles().Delete(args[0]); err != nil {
			return persisted(err)
		}
		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "%s Deleted vehicle %s\n", render.Pass("✓"), args[0])
		if affected > 0 {
			fmt.Fprintf(out, "  %s\n", render.Muted(fmt.Sprintf("%d order(s) left without vehicle", affected)))
		}
		return nil
	},
}

var vehicleListCmd = &cobra.Command{
	Use:   "list",
	Short: "List vehicles in registration order",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		vehicles := store.Vehicles()
		list := vehicles.List()
		if owner, _ := cmd.Flags().GetString("owner"); owner != "" {
			list = vehicles.ListByOwner(owner)
		}
		fmt.Fprintln(cmd.OutOrStdout(), render.VehiclesTable(list, vehicles))
		return nil
	},
}

func init() {
	vehicleAddCmd.Flags().String("plate", "", "Plate")
	vehicleAddCmd.Flags().String("model", "", "Model")
	vehicleAddCmd.Flags().Int("year", 0, "Model year")
	vehicleAddCmd.Flags().String("owner", "", "Tax id (CPF) of a registered client")
	_ = vehicleAddCmd.MarkFlagRequired("plate")
	_ = vehicleAddCmd.MarkFlagRequired("owner")

	vehicleUpdateCmd.Flags().String("model", "", "New model")
	vehicleUpdateCmd.Flags().Int("year", 0, "New model year")
	vehicleUpdateCmd.MarkFlagsOneRequired("model", "year")

	vehicleListCmd.Flags().String("owner", "", "Only vehicles owned by this tax id")

	vehicleCmd.AddCommand(vehicleAddCmd, vehicleUpdateCmd, vehicleDeleteCmd, vehicleListCmd)
	rootCmd.AddCommand(vehicleCmd)
}
