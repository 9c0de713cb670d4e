package main

import (
	"fmt"
	"os"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/dindin-app/dindin/internal/cli"
	"github.com/dindin-app/dindin/internal/ledger"
	"github.com/dindin-app/dindin/internal/model"
)

func expenseCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "expense",
		Short: "Manage expenses",
		Long: `Record, list and delete expenses.

Credit expenses must name a card and may be split into monthly
installments; deleting any installment removes the whole purchase.`,
	}

	cmd.AddCommand(addExpenseCmd())
	cmd.AddCommand(listExpensesCmd())
	cmd.AddCommand(deleteExpenseCmd())

	return cmd
}

func addExpenseCmd() *cobra.Command {
	var (
		description  string
		category     string
		method       string
		cardID       string
		dateStr      string
		installments int
	)

	cmd := &cobra.Command{
		Use:   "add <amount>",
		Short: "Record an expense",
		Long: `Record an expense. Categories: ` + categoryList() + `.
Payment methods: dinheiro, debito, credito, pix.

A credit expense with --installments > 1 is split into equal monthly
slices starting at the purchase date.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			amount, err := parseAmount(args[0])
			if err != nil {
				return err
			}
			date, err := parseDate(dateStr)
			if err != nil {
				return err
			}

			svc, store, err := initLedger(ctx)
			if err != nil {
				return err
			}
			defer func() { _ = store.Close() }()

			created, err := svc.AddExpense(ctx, ledger.ExpenseInput{
				Amount:        amount,
				Description:   description,
				Category:      model.Category(category),
				PaymentMethod: model.PaymentMethod(method),
				CardID:        cardID,
				Date:          date,
				Installments:  installments,
				IsInstallment: installments > 1,
			})
			if err != nil {
				return err
			}

			if len(created) > 1 {
				fmt.Println(cli.FormatSuccess(fmt.Sprintf(
					"Compra de %s parcelada em %dx de %s.",
					cli.FormatCurrency(amount), len(created), cli.FormatCurrency(created[0].Amount))))
			} else {
				fmt.Println(cli.FormatSuccess(fmt.Sprintf("Despesa de %s registrada em %s.",
					cli.FormatCurrency(amount), created[0].Category.Label())))
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&description, "description", "d", "", "what the money went to")
	cmd.Flags().StringVarP(&category, "category", "c", string(model.CategoryOutros), "expense category")
	cmd.Flags().StringVarP(&method, "method", "m", string(model.PaymentPix), "payment method")
	cmd.Flags().StringVar(&cardID, "card", "", "credit card id (required for credito)")
	cmd.Flags().StringVar(&dateStr, "date", "", "expense date (DD/MM/YYYY, default today)")
	cmd.Flags().IntVar(&installments, "installments", 1, "number of monthly installments (credito only)")

	return cmd
}

func listExpensesCmd() *cobra.Command {
	var (
		categoryFilter string
		currentMonth   bool
	)

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List expenses",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()

			store, err := initStorage(ctx)
			if err != nil {
				return err
			}
			defer func() { _ = store.Close() }()

			expenses, err := store.ListExpenses(ctx)
			if err != nil {
				return fmt.Errorf("failed to list expenses: %w", err)
			}

			if currentMonth {
				expenses = ledger.ExpensesThisMonth(expenses, time.Now())
			}
			if categoryFilter != "" {
				filtered := expenses[:0]
				for _, e := range expenses {
					if string(e.Category) == categoryFilter {
						filtered = append(filtered, e)
					}
				}
				expenses = filtered
			}

			if len(expenses) == 0 {
				fmt.Println(cli.InfoStyle.Render("Nenhuma despesa encontrada."))
				return nil
			}

			fmt.Println(cli.FormatTitle("Despesas"))

			w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
			defer func() { _ = w.Flush() }()

			fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%s\n",
				cli.BoldStyle.Render("Data"),
				cli.BoldStyle.Render("Descrição"),
				cli.BoldStyle.Render("Categoria"),
				cli.BoldStyle.Render("Pagamento"),
				cli.BoldStyle.Render("Valor"),
				cli.BoldStyle.Render("ID"))

			var total float64
			for i := range expenses {
				e := &expenses[i]
				desc := e.Description
				if desc == "" {
					desc = cli.SubtleStyle.Render("(sem descrição)")
				}
				fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%s\n",
					cli.FormatDate(e.Date), desc, e.Category.Label(),
					e.PaymentMethod.Label(), cli.FormatCurrency(e.Amount),
					cli.SubtleStyle.Render(e.ID))
				total += e.Amount
			}

			fmt.Fprintf(w, "\t\t\t%s\t%s\t\n",
				cli.BoldStyle.Render("Total"),
				cli.BoldStyle.Render(cli.FormatCurrency(total)))

			return nil
		},
	}

	cmd.Flags().StringVarP(&categoryFilter, "category", "c", "", "only show one category")
	cmd.Flags().BoolVar(&currentMonth, "month", false, "only show the current month")

	return cmd
}

func deleteExpenseCmd() *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete an expense",
		Long: `Delete an expense by id. Deleting one installment of a split credit
purchase removes every installment in the group and reverses the full
amount on the card.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			if !force {
				confirmer := cli.NewConfirmer(os.Stdin, os.Stdout)
				ok, err := confirmer.Confirm(ctx, "Excluir despesa?")
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

			if err := svc.DeleteExpense(ctx, args[0]); err != nil {
				return err
			}

			fmt.Println(cli.FormatSuccess("Despesa excluída."))
			return nil
		},
	}

	cmd.Flags().BoolVarP(&force, "force", "f", false, "skip confirmation")

	return cmd
}

func categoryList() string {
	names := make([]string, 0, len(model.Categories()))
	for _, c := range model.Categories() {
		names = append(names, string(c))
	}
	return strings.Join(names, ", ")
}
