package main

import (
	"errors"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/Veraticus/tally/internal/cli"
	"github.com/Veraticus/tally/internal/common"
	"github.com/Veraticus/tally/internal/model"
)

var (
	errEmptyDescription = errors.New("description is required")
	errEmptyCategory    = errors.New("category is required")
)

func addCmd() *cobra.Command {
	var (
		amountInput string
		description string
		category    string
		dateInput   string
	)

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Record a transaction",
		Long: `Record an income or expense transaction.

Positive amounts are income, negative amounts are expenses.`,
		Example: `  tally add --amount 2500 --description Paycheck --category Salary
  tally add --amount=-42.10 --description Groceries --category Food --date 2025-03-02`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			amount, err := cli.ParseAmount(amountInput)
			if err != nil {
				return common.NewUserError("Invalid amount. Please enter a number.", err)
			}
			description = strings.TrimSpace(description)
			if description == "" {
				return common.NewUserError("Description cannot be empty!", errEmptyDescription)
			}
			category = strings.TrimSpace(category)
			if category == "" {
				return common.NewUserError("Category cannot be empty!", errEmptyCategory)
			}

			date := time.Now()
			if dateInput != "" {
				date, err = model.ParseDate(dateInput)
				if err != nil {
					return common.NewUserError("Invalid date. Please use YYYY-MM-DD.", err)
				}
			}

			store := ledgerStore()
			l, err := loadLedger(store)
			if err != nil {
				return err
			}

			t := model.NewTransaction(amount, description, category, date)
			l.Add(t)

			if err := saveLedger(store, l); err != nil {
				return err
			}

			printf(cmd.OutOrStdout(), "%s\n", cli.FormatSuccess(t.Kind()+" transaction added successfully!"))
			return nil
		},
	}

	cmd.Flags().StringVarP(&amountInput, "amount", "a", "", "amount (positive for income, negative for expense)")
	cmd.Flags().StringVarP(&description, "description", "d", "", "what the transaction was for")
	cmd.Flags().StringVarP(&category, "category", "c", "", "category, e.g. Food or Salary")
	cmd.Flags().StringVar(&dateInput, "date", "", "transaction date as YYYY-MM-DD (default: today)")
	_ = cmd.MarkFlagRequired("amount")

	return cmd
}
