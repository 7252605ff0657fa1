package main

import (
	"fmt"
	"strconv"
	"time"

	"github.com/spf13/cobra"

	"github.com/micaelyMelo/OficinaMecanica/internal/schema"
	"github.com/micaelyMelo/OficinaMecanica/internal/shell"
	"github.com/micaelyMelo/OficinaMecanica/internal/shop"
)

// now is replaced in tests.
var now = time.Now

var orderCmd = &cobra.Command{
	Use:     "order",
	GroupID: "records",
	Short:   "Manage service orders",
	Long: `Open, update, delete and list service orders.

An order is opened for a registered vehicle and starts as "Aguardando
Avaliação". Its status can then be set to any of:

  1  awaiting-evaluation  Aguardando Avaliação
  2  in-repair            Em Reparo
  3  finalized            Finalizado
  4  delivered            Entregue

Statuses are accepted by number, by name or by label.`,
}

var orderOpenCmd = &cobra.Command{
	Use:   "open",
	Short: "Open a service order for a vehicle",
	Example: `  oficina order open --plate ABC1234 --date 10/05/2024 --description "barulho no freio"
  oficina order open --plate ABC1234 --date hoje --description "revisão"`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		plate, _ := cmd.Flags().GetString("plate")
		description, _ := cmd.Flags().GetString("description")
		date, err := entryDate(cmd)
		if err != nil {
			return err
		}

		o, err := store.Orders().Open(plate, date, description)
		if err != nil {
			return persisted(err)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "%s Opened order %s for %s on %s\n",
			render.Pass("✓"), render.Accent(strconv.Itoa(o.ID)), o.Plate, o.EntryDate)
		return nil
	},
}

var orderUpdateCmd = &cobra.Command{
	Use:   "update <id>",
	Short: "Change the description, entry date or status of an order",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := orderID(args[0])
		if err != nil {
			return err
		}
		orders := store.Orders()
		current, ok := orders.Find(id)
		if !ok {
			return fmt.Errorf("order %d: %w", id, shop.ErrNotFound)
		}

		upd := shop.OrderUpdate{Description: current.Description}
		if cmd.Flags().Changed("description") {
			upd.Description, _ = cmd.Flags().GetString("description")
		}
		if cmd.Flags().Changed("date") {
			date, err := entryDate(cmd)
			if err != nil {
				return err
			}
			upd.EntryDate = &date
		}
		if cmd.Flags().Changed("status") {
			text, _ := cmd.Flags().GetString("status")
			st, err := schema.ParseStatus(text)
			if err != nil {
				return fmt.Errorf("%w: %w", shop.ErrInvalidStatus, err)
			}
			upd.Status = &st
		}

		o, err := orders.Update(id, upd)
		if err != nil {
			return persisted(err)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "%s Updated order %d: %s\n", render.Pass("✓"), o.ID, render.Status(o.Status))
		return nil
	},
}

var orderStatusCmd = &cobra.Command{
	Use:     "status <id> <status>",
	Short:   "Move an order to another status",
	Example: `  oficina order status 1 in-repair`,
	Args:    cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := orderID(args[0])
		if err != nil {
			return err
		}
		st, err := schema.ParseStatus(args[1])
		if err != nil {
			return fmt.Errorf("%w: %w", shop.ErrInvalidStatus, err)
		}

		o, err := store.Orders().SetStatus(id, st)
		if err != nil {
			return persisted(err)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "%s Order %d is now %s\n", render.Pass("✓"), o.ID, render.Status(o.Status))
		return nil
	},
}

var orderDeleteCmd = &cobra.Command{
	Use:   "delete <id>",
	Short: "Delete a service order",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := orderID(args[0])
		if err != nil {
			return err
		}
		if err := store.Orders().Delete(id); err != nil {
			return persisted(err)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "%s Deleted order %d\n", render.Pass("✓"), id)
		return nil
	},
}

var orderListCmd = &cobra.Command{
	Use:   "list",
	Short: "List service orders in the order they were opened",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		orders := store.Orders()
		list := orders.List()
		if cmd.Flags().Changed("status") {
			text, _ := cmd.Flags().GetString("status")
			st, err := schema.ParseStatus(text)
			if err != nil {
				return fmt.Errorf("%w: %w", shop.ErrInvalidStatus, err)
			}
			list = orders.ListByStatus(st)
		}
		fmt.Fprintln(cmd.OutOrStdout(), render.OrdersTable(list, orders))
		return nil
	},
}

func init() {
	orderOpenCmd.Flags().String("plate", "", "Plate of a registered vehicle")
	orderOpenCmd.Flags().String("date", "hoje", "Entry date: dd/mm/yyyy or a casual date such as \"ontem\"")
	orderOpenCmd.Flags().String("description", "", "Problem reported by the client")
	_ = orderOpenCmd.MarkFlagRequired("plate")

	orderUpdateCmd.Flags().String("description", "", "New description")
	orderUpdateCmd.Flags().String("date", "", "New entry date")
	orderUpdateCmd.Flags().String("status", "", "New status")
	orderUpdateCmd.MarkFlagsOneRequired("description", "date", "status")

	orderListCmd.Flags().String("status", "", "Only orders in this status")

	orderCmd.AddCommand(orderOpenCmd, orderUpdateCmd, orderStatusCmd, orderDeleteCmd, orderListCmd)
	rootCmd.AddCommand(orderCmd)
}

func orderID(arg string) (int, error) {
	id, err := strconv.Atoi(arg)
	if err != nil {
		return 0, fmt.Errorf("invalid order id %q", arg)
	}
	return id, nil
}

// entryDate reads --date, accepting the same casual dates as the shell.
func entryDate(cmd *cobra.Command) (string, error) {
	text, _ := cmd.Flags().GetString("date")
	date, ok := shell.NormalizeDate(text, now())
	if !ok {
		return "", fmt.Errorf("%q: %w", text, shop.ErrInvalidDate)
	}
	return date, nil
}
