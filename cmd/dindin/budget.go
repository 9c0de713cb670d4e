package main

import (
	"fmt"
	"os"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/dindin-app/dindin/internal/cli"
	"github.com/dindin-app/dindin/internal/ledger"
	"github.com/dindin-app/dindin/internal/model"
)

func budgetCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "budget",
		Short: "Manage category budgets",
		Long: `Set monthly spending caps per category and check how the current
month is tracking against them.`,
	}

	cmd.AddCommand(setBudgetCmd())
	cmd.AddCommand(budgetStatusCmd())
	cmd.AddCommand(deleteBudgetCmd())

	return cmd
}

func setBudgetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "set <category> <amount>",
		Short: "Set the monthly budget for a category",
		Long:  `Set the monthly budget for a category. Setting it again replaces the amount. Categories: ` + categoryList() + `.`,
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			amount, err := parseAmount(args[1])
			if err != nil {
				return err
			}

			svc, store, err := initLedger(ctx)
			if err != nil {
				return err
			}
			defer func() { _ = store.Close() }()

			budget, err := svc.SetBudget(ctx, model.Category(args[0]), amount)
			if err != nil {
				return err
			}

			fmt.Println(cli.FormatSuccess(fmt.Sprintf("Orçamento de %s definido para %s.",
				cli.FormatCurrency(budget.Amount), budget.Category.Label())))
			return nil
		},
	}
}

func budgetStatusCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show budgets against this month's spending",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()

			svc, store, err := initLedger(ctx)
			if err != nil {
				return err
			}
			defer func() { _ = store.Close() }()

			snap, err := svc.LoadAll(ctx)
			if err != nil {
				return err
			}

			if len(snap.Budgets) == 0 {
				fmt.Println(cli.InfoStyle.Render("Nenhum orçamento definido. Use 'dindin budget set' para começar."))
				return nil
			}

			now := time.Now()
			statuses := ledger.BudgetStatuses(snap.Budgets, snap.Expenses, now)

			fmt.Println(cli.FormatTitle("Orçamentos de " + cli.FormatMonth(now)))

			w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
			defer func() { _ = w.Flush() }()

			fmt.Fprintf(w, "%s\t%s\t%s\t%s\n",
				cli.BoldStyle.Render("Categoria"),
				cli.BoldStyle.Render("Gasto"),
				cli.BoldStyle.Render("Orçamento"),
				cli.BoldStyle.Render("Uso"))

			for _, st := range statuses {
				usage := cli.FormatPercentage(st.PercentUsed())
				switch {
				case st.Spent > st.Budgeted:
					usage = cli.ErrorStyle.Render(usage)
				case st.PercentUsed() >= 80:
					usage = cli.WarningStyle.Render(usage)
				}
				fmt.Fprintf(w, "%s\t%s\t%s\t%s\n",
					st.Category.Label(), cli.FormatCurrency(st.Spent),
					cli.FormatCurrency(st.Budgeted), usage)
			}

			return nil
		},
	}
}

func deleteBudgetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "delete <category>",
		Short: "Remove the budget for a category",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			svc, store, err := initLedger(ctx)
			if err != nil {
				return err
			}
			defer func() { _ = store.Close() }()

			if err := svc.DeleteBudget(ctx, model.Category(args[0])); err != nil {
				return err
			}

			fmt.Println(cli.FormatSuccess("Orçamento removido."))
			return nil
		},
	}
}
