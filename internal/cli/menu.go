package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/Veraticus/tally/internal/common"
	"github.com/Veraticus/tally/internal/eventlog"
	"github.com/Veraticus/tally/internal/ledger"
	"github.com/Veraticus/tally/internal/model"
	"github.com/Veraticus/tally/internal/service"
)

// errQuit ends the menu loop, either by choice or because input ran out.
var errQuit = errors.New("quit")

// Menu is the interactive numbered console front-end over a ledger.
type Menu struct {
	writer io.Writer
	reader *LineReader
	store  service.LedgerStore
	events *eventlog.Log
	ledger *ledger.Ledger
	now    func() time.Time
	err    error
}

// MenuOption configures a Menu.
type MenuOption func(*Menu)

// WithEventLog records ledger activity in log instead of a fresh one.
func WithEventLog(log *eventlog.Log) MenuOption {
	return func(m *Menu) {
		m.events = log
	}
}

// WithLedger starts the menu on an existing ledger. The menu attaches its
// event log as the ledger's observer.
func WithLedger(l *ledger.Ledger) MenuOption {
	return func(m *Menu) {
		m.ledger = l
	}
}

// WithMenuClock sets the clock used for the default transaction date.
func WithMenuClock(now func() time.Time) MenuOption {
	return func(m *Menu) {
		m.now = now
	}
}

// NewMenu creates a menu reading commands from reader and writing to writer.
// Options 6 and 7 save to and load from store.
func NewMenu(reader io.Reader, writer io.Writer, store service.LedgerStore, opts ...MenuOption) *Menu {
	if reader == nil {
		reader = os.Stdin
	}
	if writer == nil {
		writer = os.Stdout
	}

	m := &Menu{
		reader: NewLineReader(reader),
		writer: writer,
		store:  store,
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(m)
	}

	if m.events == nil {
		m.events = eventlog.New()
	}
	if m.ledger == nil {
		m.ledger = ledger.New()
	}
	m.ledger.SetObserver(m.events)

	return m
}

// Ledger returns the ledger the menu currently operates on. Loading replaces it.
func (m *Menu) Ledger() *ledger.Ledger {
	return m.ledger
}

// Events returns the menu's activity log.
func (m *Menu) Events() *eventlog.Log {
	return m.events
}

// Run shows the menu until the user quits or input ends, then prints the
// activity log. It returns ErrInputCancelled if ctx is canceled while waiting
// for input.
func (m *Menu) Run(ctx context.Context) error {
	m.writeln("")
	m.writeln(FormatTitle("Welcome to Tally"))

	for {
		m.displayMenu()

		command, err := m.reader.ReadLine(ctx)
		if err != nil {
			if errors.Is(err, io.EOF) {
				break
			}
			return err
		}

		if err := m.execute(ctx, strings.ToLower(command)); err != nil {
			if errors.Is(err, errQuit) {
				break
			}
			return err
		}

		if m.err != nil {
			return m.err
		}
	}

	m.writeln("")
	m.writeln("Goodbye!")
	m.writeln("")
	if _, err := m.events.WriteTo(m.writer); err != nil && m.err == nil {
		m.err = fmt.Errorf("failed to write event log: %w", err)
	}

	return m.err
}

func (m *Menu) displayMenu() {
	m.section("--- Main Menu ---")
	m.writeln("1. Add Transaction")
	m.writeln("2. View All Transactions")
	m.writeln("3. View Financial Summary")
	m.writeln("4. Filter Transactions by Category")
	m.writeln("5. Delete Transaction")
	m.writeln("6. Save Financial History")
	m.writeln("7. Load Financial History")
	m.writeln("8. Quit")
	m.write(FormatPrompt("Please select an option (1-8): "))
}

func (m *Menu) execute(ctx context.Context, command string) error {
	switch command {
	case "1":
		return m.addTransaction(ctx)
	case "2":
		m.viewAll()
	case "3":
		m.viewSummary()
	case "4":
		return m.filterByCategory(ctx)
	case "5":
		return m.deleteTransaction(ctx)
	case "6":
		m.save()
	case "7":
		m.load()
	case "8", "q", "quit":
		return errQuit
	default:
		m.writeln(FormatError("Invalid selection. Please try again."))
	}
	return nil
}

// prompt shows label and reads one line. Running out of input quits the menu.
func (m *Menu) prompt(ctx context.Context, label string) (string, error) {
	m.write(FormatPrompt(label))
	line, err := m.reader.ReadLine(ctx)
	if errors.Is(err, io.EOF) {
		return "", errQuit
	}
	return line, err
}

func (m *Menu) addTransaction(ctx context.Context) error {
	m.section("--- Add New Transaction ---")

	input, err := m.prompt(ctx, "Enter amount (positive for income, negative for expense): $")
	if err != nil {
		return err
	}
	amount, err := ParseAmount(input)
	if err != nil {
		m.writeln(FormatError("Invalid amount. Please enter a number."))
		return nil
	}

	description, err := m.prompt(ctx, "Enter description: ")
	if err != nil {
		return err
	}
	if description == "" {
		m.writeln(FormatError("Description cannot be empty!"))
		return nil
	}

	category, err := m.prompt(ctx, fmt.Sprintf("Enter category (e.g., %s): ",
		strings.Join(model.SuggestedCategories[:4], ", ")))
	if err != nil {
		return err
	}
	if category == "" {
		m.writeln(FormatError("Category cannot be empty!"))
		return nil
	}

	dateInput, err := m.prompt(ctx, "Enter date (YYYY-MM-DD) or press Enter for today: ")
	if err != nil {
		return err
	}
	date := m.now()
	if dateInput != "" {
		date, err = model.ParseDate(dateInput)
		if err != nil {
			m.writeln(FormatError("Invalid date. Please use YYYY-MM-DD."))
			return nil
		}
	}

	t := model.NewTransaction(amount, description, category, date)
	m.ledger.Add(t)
	m.writeln(FormatSuccess(t.Kind() + " transaction added successfully!"))
	return nil
}

func (m *Menu) viewAll() {
	m.section("--- All Transactions ---")

	transactions := m.ledger.All()
	if len(transactions) == 0 {
		m.writeln("No transactions found.")
		return
	}

	m.writeln(fmt.Sprintf("Total transactions: %d", len(transactions)))
	m.writeln("")
	for i, t := range transactions {
		m.writeln(FormatTransactionLine(i+1, t, true))
	}
}

func (m *Menu) viewSummary() {
	m.section("--- Financial Summary ---")
	if m.err == nil {
		m.err = RenderSummary(m.writer, m.ledger.Summarize())
	}
}

func (m *Menu) filterByCategory(ctx context.Context) error {
	m.section("--- Filter by Category ---")

	category, err := m.prompt(ctx, "Enter category to filter by: ")
	if err != nil {
		return err
	}
	if category == "" {
		m.writeln(FormatError("Category cannot be empty!"))
		return nil
	}

	filtered := m.ledger.ByCategory(category)
	if len(filtered) == 0 {
		m.writeln("No transactions found for category: " + category)
		return nil
	}

	m.writeln("")
	m.writeln(fmt.Sprintf("Transactions in category '%s':", category))
	var total float64
	for i, t := range filtered {
		m.writeln(FormatTransactionLine(i+1, t, false))
		total += t.Amount()
	}
	m.writeln("")
	m.writeln("Category Total: $" + FormatMoney(total))
	return nil
}

func (m *Menu) deleteTransaction(ctx context.Context) error {
	m.section("--- Delete Transaction ---")

	transactions := m.ledger.All()
	if len(transactions) == 0 {
		m.writeln("No transactions to delete.")
		return nil
	}

	m.writeln("Select a transaction to delete:")
	for i, t := range transactions {
		m.writeln(FormatTransactionLine(i+1, t, true))
	}

	input, err := m.prompt(ctx, "Enter transaction number to delete (or 0 to cancel): ")
	if err != nil {
		return err
	}

	choice, err := strconv.Atoi(input)
	if err != nil {
		m.writeln(FormatError("Invalid transaction number."))
		return nil
	}
	if choice == 0 {
		m.writeln("Delete cancelled.")
		return nil
	}
	if choice < 1 || choice > len(transactions) {
		m.writeln(FormatError("Invalid transaction number."))
		return nil
	}

	if m.ledger.Remove(transactions[choice-1]) {
		m.writeln(FormatSuccess("Transaction deleted successfully!"))
	} else {
		m.writeln(FormatError("Failed to delete transaction."))
	}
	return nil
}

func (m *Menu) save() {
	if err := m.store.Save(m.ledger); err != nil {
		common.LogError(err, "Failed to save ledger", common.Fields{"path": m.store.Path()})
		m.writeln(FormatError("Unable to write to file: " + m.store.Path()))
		return
	}
	m.writeln(FormatSuccess("Saved Financial History to " + m.store.Path()))
}

func (m *Menu) load() {
	loaded, err := m.store.Load(ledger.WithObserver(m.events))
	if err != nil {
		common.LogError(err, "Failed to load ledger", common.Fields{"path": m.store.Path()})
		m.writeln(FormatError("Unable to read from file: " + m.store.Path()))
		return
	}
	m.ledger = loaded
	m.writeln(FormatSuccess("Loaded Financial History from " + m.store.Path()))
}

func (m *Menu) section(title string) {
	m.writeln("")
	m.writeln(SubtitleStyle.UnsetMargins().Render(title))
}

// write and writeln keep the first write error; Run reports it.
func (m *Menu) write(s string) {
	if m.err != nil {
		return
	}
	if _, err := fmt.Fprint(m.writer, s); err != nil {
		m.err = fmt.Errorf("failed to write output: %w", err)
	}
}

func (m *Menu) writeln(s string) {
	m.write(s + "\n")
}
