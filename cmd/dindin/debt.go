package main

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/dindin-app/dindin/internal/cli"
	"github.com/dindin-app/dindin/internal/ledger"
)

func debtCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "debt",
		Short: "Manage installment debts",
		Long: `Track debts paid down in monthly installments. Each payment is
recorded as a debit expense and lowers what remains.`,
	}

	cmd.AddCommand(addDebtCmd())
	cmd.AddCommand(listDebtsCmd())
	cmd.AddCommand(payDebtCmd())
	cmd.AddCommand(deleteDebtCmd())

	return cmd
}

func addDebtCmd() *cobra.Command {
	var dueDate int

	cmd := &cobra.Command{
		Use:   "add <name> <total> <monthly>",
		Short: "Register a debt",
		Long: `Register a debt with its total and monthly payment. The number of
installments is derived from the two, rounding up.`,
		Args: cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			total, err := parseAmount(args[1])
			if err != nil {
				return err
			}
			monthly, err := parseAmount(args[2])
			if err != nil {
				return err
			}

			svc, store, err := initLedger(ctx)
			if err != nil {
				return err
			}
			defer func() { _ = store.Close() }()

			debt, err := svc.AddDebt(ctx, ledger.DebtInput{
				Name:           args[0],
				TotalAmount:    total,
				MonthlyPayment: monthly,
				DueDate:        dueDate,
			})
			if err != nil {
				return err
			}

			fmt.Println(cli.FormatSuccess(fmt.Sprintf("Dívida %q registrada: %dx de %s.",
				debt.Name, debt.TotalInstallments, cli.FormatCurrency(debt.MonthlyPayment))))
			fmt.Println(cli.SubtleStyle.Render("id: " + debt.ID))
			return nil
		},
	}

	cmd.Flags().IntVar(&dueDate, "due", 10, "day of the month the payment is due (1-31)")

	return cmd
}

func listDebtsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List debts",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()

			store, err := initStorage(ctx)
			if err != nil {
				return err
			}
			defer func() { _ = store.Close() }()

			debts, err := store.ListDebts(ctx)
			if err != nil {
				return fmt.Errorf("failed to list debts: %w", err)
			}

			if len(debts) == 0 {
				fmt.Println(cli.InfoStyle.Render("Nenhuma dívida registrada."))
				return nil
			}

			fmt.Println(cli.FormatTitle("Dívidas " + cli.DebtIcon))

			w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
			defer func() { _ = w.Flush() }()

			fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%s\n",
				cli.BoldStyle.Render("Nome"),
				cli.BoldStyle.Render("Restante"),
				cli.BoldStyle.Render("Mensal"),
				cli.BoldStyle.Render("Parcelas"),
				cli.BoldStyle.Render("Vence dia"),
				cli.BoldStyle.Render("ID"))

			for i := range debts {
				d := &debts[i]
				remaining := cli.FormatCurrency(d.RemainingAmount)
				if d.IsPaid() {
					remaining = cli.SuccessStyle.Render("quitada")
				}
				fmt.Fprintf(w, "%s\t%s\t%s\t%d/%d\t%d\t%s\n",
					d.Name, remaining, cli.FormatCurrency(d.MonthlyPayment),
					d.PaidInstallments, d.TotalInstallments, d.DueDate,
					cli.SubtleStyle.Render(d.ID))
			}

			return nil
		},
	}
}

func payDebtCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "pay <id>",
		Short: "Record one monthly payment",
		Long: `Record one monthly payment against a debt. The payment is capped at
what remains and shows up as a debit expense.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			svc, store, err := initLedger(ctx)
			if err != nil {
				return err
			}
			defer func() { _ = store.Close() }()

			debt, err := svc.PayDebt(ctx, args[0])
			if err != nil {
				return err
			}

			if debt.IsPaid() {
				fmt.Println(cli.FormatSuccess(fmt.Sprintf("Dívida %q quitada! 🎉", debt.Name)))
			} else {
				fmt.Println(cli.FormatSuccess(fmt.Sprintf(
					"Parcela %d/%d paga. Restam %s.",
					debt.PaidInstallments, debt.TotalInstallments,
					cli.FormatCurrency(debt.RemainingAmount))))
			}
			return nil
		},
	}
}

func deleteDebtCmd() *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:   "delete <id>",
		Short: "Remove a debt",
		Long:  `Remove a debt. Payments already recorded stay in the expense history.`,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			if !force {
				confirmer := cli.NewConfirmer(os.Stdin, os.Stdout)
				ok, err := confirmer.Confirm(ctx, "Excluir dívida?")
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

			if err := svc.DeleteDebt(ctx, args[0]); err != nil {
				return err
			}

			fmt.Println(cli.FormatSuccess("Dívida excluída."))
			return nil
		},
	}

	cmd.Flags().BoolVarP(&force, "force", "f", false, "skip confirmation")

	return cmd
}
