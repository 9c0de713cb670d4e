package main

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/dindin-app/dindin/internal/cli"
	"github.com/dindin-app/dindin/internal/ledger"
	"github.com/dindin-app/dindin/internal/model"
)

func summaryCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "summary",
		Short: "Show the financial dashboard",
		Long: `Show the overall picture: income, spending, what is left, credit
card usage and this month's totals per category.`,
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

			summary := ledger.Summarize(snap.Salaries, snap.Expenses, snap.CreditCards)

			var b strings.Builder
			fmt.Fprintf(&b, "Receita total:\t%s\n", cli.FormatCurrency(summary.TotalSalary))
			fmt.Fprintf(&b, "Gasto total:\t%s\n", cli.FormatCurrency(summary.TotalExpenses))

			balance := cli.FormatCurrency(summary.RemainingBalance)
			if summary.RemainingBalance < 0 {
				balance = cli.ErrorStyle.Render(balance)
			}
			fmt.Fprintf(&b, "Saldo:\t%s\n", balance)
			fmt.Fprintf(&b, "Comprometido:\t%s da receita\n", cli.FormatPercentage(summary.ExpensePercentage))

			if summary.TotalCreditLimit > 0 {
				fmt.Fprintf(&b, "Cartões:\t%s de %s\n",
					cli.FormatCurrency(summary.CreditCardUsage),
					cli.FormatCurrency(summary.TotalCreditLimit))
			}

			if salary := snap.CurrentSalary(); salary != nil {
				fmt.Fprintf(&b, "Salário atual:\t%s\n", cli.FormatCurrency(salary.Amount))
			}

			fmt.Println(cli.RenderBox(cli.MoneyIcon+" Resumo financeiro", b.String()))

			printMonthBreakdown(snap, time.Now())
			printRecentExpenses(snap.Expenses)
			return nil
		},
	}
}

// printMonthBreakdown lists this month's spending per category, largest
// first.
func printMonthBreakdown(snap *ledger.Snapshot, now time.Time) {
	monthly := ledger.ExpensesThisMonth(snap.Expenses, now)
	if len(monthly) == 0 {
		return
	}
	totals := ledger.ByCategory(monthly)

	type row struct {
		category string
		amount   float64
	}
	rows := make([]row, 0, len(totals))
	var monthTotal float64
	for c, amount := range totals {
		rows = append(rows, row{category: c.Label(), amount: amount})
		monthTotal += amount
	}
	sort.Slice(rows, func(i, j int) bool { return rows[i].amount > rows[j].amount })

	var b strings.Builder
	for _, r := range rows {
		fmt.Fprintf(&b, "%s\t%s\n", r.category, cli.FormatCurrency(r.amount))
	}
	fmt.Fprintf(&b, "%s\t%s\n", cli.BoldStyle.Render("Total"),
		cli.BoldStyle.Render(cli.FormatCurrency(monthTotal)))

	fmt.Println(cli.RenderBox(cli.ChartIcon+" Gastos de "+cli.FormatMonth(now), b.String()))
}

// printRecentExpenses shows the latest few entries. Expenses arrive most
// recent first.
func printRecentExpenses(expenses []model.Expense) {
	if len(expenses) == 0 {
		return
	}
	const limit = 5
	if len(expenses) > limit {
		expenses = expenses[:limit]
	}

	var b strings.Builder
	for i := range expenses {
		e := &expenses[i]
		desc := e.Description
		if desc == "" {
			desc = e.Category.Label()
		}
		fmt.Fprintf(&b, "%s\t%s\t%s\n",
			cli.FormatDate(e.Date), desc, cli.FormatCurrency(e.Amount))
	}
	fmt.Println(cli.RenderBox("Últimas despesas", b.String()))
}
