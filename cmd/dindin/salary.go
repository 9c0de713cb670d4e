package main

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/dindin-app/dindin/internal/cli"
)

func salaryCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "salary",
		Short: "Manage income entries",
		Long:  `Record salary entries and list income history. The most recent entry is the current salary.`,
	}

	cmd.AddCommand(addSalaryCmd())
	cmd.AddCommand(listSalariesCmd())

	return cmd
}

func addSalaryCmd() *cobra.Command {
	var (
		description string
		dateStr     string
	)

	cmd := &cobra.Command{
		Use:   "add <amount>",
		Short: "Record a salary entry",
		Args:  cobra.ExactArgs(1),
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

			salary, err := svc.AddSalary(ctx, amount, description, date)
			if err != nil {
				return err
			}

			fmt.Println(cli.FormatSuccess(fmt.Sprintf("Salário de %s registrado.",
				cli.FormatCurrency(salary.Amount))))
			return nil
		},
	}

	cmd.Flags().StringVarP(&description, "description", "d", "Salário", "description for the entry")
	cmd.Flags().StringVar(&dateStr, "date", "", "entry date (DD/MM/YYYY, default today)")

	return cmd
}

func listSalariesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List income history",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()

			store, err := initStorage(ctx)
			if err != nil {
				return err
			}
			defer func() { _ = store.Close() }()

			salaries, err := store.ListSalaries(ctx)
			if err != nil {
				return fmt.Errorf("failed to list salaries: %w", err)
			}

			if len(salaries) == 0 {
				fmt.Println(cli.InfoStyle.Render("Nenhum salário registrado. Use 'dindin salary add' para começar."))
				return nil
			}

			fmt.Println(cli.FormatTitle("Salários"))

			w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
			defer func() { _ = w.Flush() }()

			fmt.Fprintf(w, "%s\t%s\t%s\n",
				cli.BoldStyle.Render("Data"),
				cli.BoldStyle.Render("Descrição"),
				cli.BoldStyle.Render("Valor"))

			for i := range salaries {
				s := &salaries[i]
				fmt.Fprintf(w, "%s\t%s\t%s\n",
					cli.FormatDate(s.Date), s.Description, cli.FormatCurrency(s.Amount))
			}

			return nil
		},
	}
}
