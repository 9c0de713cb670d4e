package main

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/dindin-app/dindin/internal/cli"
)

func cardCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "card",
		Short: "Manage credit cards",
		Long:  `Register credit cards and track how much of each limit is in use.`,
	}

	cmd.AddCommand(addCardCmd())
	cmd.AddCommand(listCardsCmd())
	cmd.AddCommand(deleteCardCmd())

	return cmd
}

func addCardCmd() *cobra.Command {
	var color string

	cmd := &cobra.Command{
		Use:   "add <name> <limit>",
		Short: "Register a credit card",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			limit, err := parseAmount(args[1])
			if err != nil {
				return err
			}

			svc, store, err := initLedger(ctx)
			if err != nil {
				return err
			}
			defer func() { _ = store.Close() }()

			card, err := svc.AddCreditCard(ctx, args[0], limit, color)
			if err != nil {
				return err
			}

			fmt.Println(cli.FormatSuccess(fmt.Sprintf("Cartão %q cadastrado com limite de %s.",
				card.Name, cli.FormatCurrency(card.Limit))))
			fmt.Println(cli.SubtleStyle.Render("id: " + card.ID))
			return nil
		},
	}

	cmd.Flags().StringVar(&color, "color", "", "display color (hex, e.g. #820AD1)")

	return cmd
}

func listCardsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List credit cards and usage",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()

			store, err := initStorage(ctx)
			if err != nil {
				return err
			}
			defer func() { _ = store.Close() }()

			cards, err := store.ListCreditCards(ctx)
			if err != nil {
				return fmt.Errorf("failed to list credit cards: %w", err)
			}

			if len(cards) == 0 {
				fmt.Println(cli.InfoStyle.Render("Nenhum cartão cadastrado. Use 'dindin card add' para começar."))
				return nil
			}

			fmt.Println(cli.FormatTitle("Cartões " + cli.CardIcon))

			w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
			defer func() { _ = w.Flush() }()

			fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n",
				cli.BoldStyle.Render("Nome"),
				cli.BoldStyle.Render("Fatura"),
				cli.BoldStyle.Render("Limite"),
				cli.BoldStyle.Render("Uso"),
				cli.BoldStyle.Render("ID"))

			for i := range cards {
				c := &cards[i]
				usage := cli.FormatPercentage(c.Utilization() * 100)
				if c.Utilization() >= 0.8 {
					usage = cli.WarningStyle.Render(usage)
				}
				fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n",
					c.Name, cli.FormatCurrency(c.CurrentAmount),
					cli.FormatCurrency(c.Limit), usage,
					cli.SubtleStyle.Render(c.ID))
			}

			return nil
		},
	}
}

func deleteCardCmd() *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:   "delete <id>",
		Short: "Remove a credit card",
		Long: `Remove a credit card. Expenses already charged to it are kept; only
the card record and its running balance go away.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			if !force {
				confirmer := cli.NewConfirmer(os.Stdin, os.Stdout)
				ok, err := confirmer.Confirm(ctx, "Excluir cartão?")
				if err != nil {
					return err
				}
				if !ok {
					fmt.Println(cli.FormatInfo("Nada foi excluído."))
					return nil
				}
			}

			svc, store, err := initLedger(ctx)
			if err != nil {
				return err
			}
			defer func() { _ = store.Close() }()

			if err := svc.DeleteCreditCard(ctx, args[0]); err != nil {
				return err
			}

			fmt.Println(cli.FormatSuccess("Cartão excluído."))
			return nil
		},
	}

	cmd.Flags().BoolVarP(&force, "force", "f", false, "skip confirmation")

	return cmd
}
