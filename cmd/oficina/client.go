package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/micaelyMelo/OficinaMecanica/internal/shop"
)

var clientCmd = &cobra.Command{
	Use:     "client",
	GroupID: "records",
	Short:   "Manage clients",
	Long: `Register, update, delete and list clients.

A client is identified by its tax id (CPF), which cannot change once
registered. Deleting a client keeps its vehicles and clears their owner.`,
}

var clientAddCmd = &cobra.Command{
	Use:   "add",
	Short: "Register a client",
	Example: `  oficina client add --tax-id 111.111.111-11 --name "Ana Silva" --phone "(11) 99999-0000"`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		name, _ := cmd.Flags().GetString("name")
		taxID, _ := cmd.Flags().GetString("tax-id")
		phone, _ := cmd.Flags().GetString("phone")

		c, err := store.Clients().Register(name, taxID, phone)
		if err != nil {
			return persisted(err)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "%s Registered client %s (%s)\n", render.Pass("✓"), c.TaxID, c.Name)
		return nil
	},
}

var clientUpdateCmd = &cobra.Command{
	Use:   "update <tax-id>",
	Short: "Change the name or phone of a client",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		clients := store.Clients()
		current, ok := clients.FindByTaxID(args[0])
		if !ok {
			return fmt.Errorf("client %s: %w", args[0], shop.ErrNotFound)
		}

		name, phone := current.Name, current.Phone
		if cmd.Flags().Changed("name") {
			name, _ = cmd.Flags().GetString("name")
		}
		if cmd.Flags().Changed("phone") {
			phone, _ = cmd.Flags().GetString("phone")
		}

		c, err := clients.Update(args[0], name, phone)
		if err != nil {
			return persisted(err)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "%s Updated client %s (%s)\n", render.Pass("✓"), c.TaxID, c.Name)
		return nil
	},
}

var clientDeleteCmd = &cobra.Command{
	Use:   "delete <tax-id>",
	Short: "Delete a client and clear the owner of its vehicles",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		owned := len(store.Vehicles().ListByOwner(args[0]))
		if err := store.Clients().Delete(args[0]); err != nil {
			return persisted(err)
		}
		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "%s Deleted client %s\n", render.Pass("✓"), args[0])
		if owned > 0 {
			fmt.Fprintf(out, "  %s\n", render.Muted(fmt.Sprintf("%d vehicle(s) left without owner", owned)))
		}
		return nil
	},
}

var clientListCmd = &cobra.Command{
	Use:   "list",
	Short: "List clients in registration order",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		fmt.Fprintln(cmd.OutOrStdout(), render.ClientsTable(store.Clients().List()))
		return nil
	},
}

func init() {
	clientAddCmd.Flags().String("name", "", "Client name (letters and spaces)")
	clientAddCmd.Flags().String("tax-id", "", "Tax id (CPF): digits, '.' and '-'")
	clientAddCmd.Flags().String("phone", "", "Phone: digits, parentheses, '-' and spaces")
	_ = clientAddCmd.MarkFlagRequired("tax-id")

	clientUpdateCmd.Flags().String("name", "", "New name")
	clientUpdateCmd.Flags().String("phone", "", "New phone")
	clientUpdateCmd.MarkFlagsOneRequired("name", "phone")

	clientCmd.AddCommand(clientAddCmd, clientUpdateCmd, clientDeleteCmd, clientListCmd)
	rootCmd.AddCommand(clientCmd)
}
