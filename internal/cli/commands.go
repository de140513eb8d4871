package cli

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/alwaysmad/bookkeeper/internal/common"
	"github.com/alwaysmad/bookkeeper/internal/model"
)

// CommandKind identifies a parsed command.
type CommandKind int

// Command kinds.
const (
	CommandAddExpense CommandKind = iota + 1
	CommandEditExpense
	CommandAddCategory
	CommandDeleteCategory
	CommandSetBudget
	CommandHelp
	CommandQuit
)

// Editable expense fields.
const (
	FieldAmount   = "amount"
	FieldCategory = "category"
	FieldDate     = "date"
	FieldComment  = "comment"
)

// Parse errors. Both wrap common.ErrInvalidInput.
var (
	ErrUnknownCommand = fmt.Errorf("%w: unknown command", common.ErrInvalidInput)
	ErrUsage          = fmt.Errorf("%w: usage", common.ErrInvalidInput)
)

// dateLayouts are tried in order when parsing dates.
var dateLayouts = []string{"2006-01-02 15:04:05", "2006-01-02 15:04", "2006-01-02"}

// Command is one line of user input.
type Command struct {
	Date   time.Time
	Name   string // category name, or the edited field for CommandEditExpense
	Value  string // raw value for CommandEditExpense
	Amount float64
	PK     int64
	Period int
	Kind   CommandKind
}

// Usage lists the accepted commands.
const Usage = `add <amount> <category>                      record an expense dated now
edit <pk> amount|category|date|comment <v>   change one field of an expense
cat add <name>                               create a category
cat del <name>                               delete a category
budget day|week|month <amount>               change a budget
help                                         show this help
quit                                         leave`

// ParseCommand parses a command line.
func ParseCommand(line string) (Command, error) {
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return Command{}, fmt.Errorf("%w: empty input", ErrUsage)
	}

	switch strings.ToLower(fields[0]) {
	case "add":
		return parseAdd(fields[1:])
	case "edit":
		return parseEdit(fields[1:])
	case "cat", "category":
		return parseCategory(fields[1:])
	case "budget":
		return parseBudget(fields[1:])
	case "help", "?":
		return Command{Kind: CommandHelp}, nil
	case "quit", "exit", "q":
		return Command{Kind: CommandQuit}, nil
	default:
		return Command{}, fmt.Errorf("%w %q", ErrUnknownCommand, fields[0])
	}
}

func parseAdd(args []string) (Command, error) {
	if len(args) < 2 {
		return Command{}, fmt.Errorf("%w: add <amount> <category>", ErrUsage)
	}
	amount, err := ParseAmount(args[0])
	if err != nil {
		return Command{}, err
	}
	return Command{Kind: CommandAddExpense, Amount: amount, Name: strings.Join(args[1:], " ")}, nil
}

func parseEdit(args []string) (Command, error) {
	if len(args) < 2 {
		return Command{}, fmt.Errorf("%w: edit <pk> <field> <value>", ErrUsage)
	}
	pk, err := strconv.ParseInt(args[0], 10, 64)
	if err != nil || pk <= 0 {
		return Command{}, fmt.Errorf("%w: %q is not an expense number", common.ErrInvalidInput, args[0])
	}

	cmd := Command{Kind: CommandEditExpense, PK: pk, Name: strings.ToLower(args[1]), Value: strings.Join(args[2:], " ")}
	switch cmd.Name {
	case FieldAmount:
		if cmd.Amount, err = ParseAmount(cmd.Value); err != nil {
			return Command{}, err
		}
	case FieldDate:
		if cmd.Date, err = ParseDate(cmd.Value); err != nil {
			return Command{}, err
		}
	case FieldCategory:
		if cmd.Value == "" {
			return Command{}, fmt.Errorf("%w: edit <pk> category <name>", ErrUsage)
		}
	case FieldComment:
	default:
		return Command{}, fmt.Errorf("%w: cannot edit %q", common.ErrInvalidInput, args[1])
	}
	return cmd, nil
}

func parseCategory(args []string) (Command, error) {
	if len(args) < 2 {
		return Command{}, fmt.Errorf("%w: cat add|del <name>", ErrUsage)
	}
	name := strings.Join(args[1:], " ")
	switch strings.ToLower(args[0]) {
	case "add":
		return Command{Kind: CommandAddCategory, Name: name}, nil
	case "del", "delete", "rm":
		return Command{Kind: CommandDeleteCategory, Name: name}, nil
	default:
		return Command{}, fmt.Errorf("%w: cat add|del <name>", ErrUsage)
	}
}

func parseBudget(args []string) (Command, error) {
	if len(args) != 2 {
		return Command{}, fmt.Errorf("%w: budget day|week|month <amount>", ErrUsage)
	}
	period, err := ParsePeriod(args[0])
	if err != nil {
		return Command{}, err
	}
	amount, err := ParseAmount(args[1])
	if err != nil {
		return Command{}, err
	}
	return Command{Kind: CommandSetBudget, Period: period, Amount: amount}, nil
}

// ParseAmount parses a non-negative money amount. A comma is accepted as decimal separator.
func ParseAmount(s string) (float64, error) {
	amount, err := strconv.ParseFloat(strings.ReplaceAll(strings.TrimSpace(s), ",", "."), 64)
	if err != nil {
		return 0, fmt.Errorf("%w: %q is not a number", common.ErrInvalidInput, s)
	}
	if amount < 0 {
		return 0, fmt.Errorf("%w: amount must not be negative", common.ErrInvalidInput)
	}
	return amount, nil
}

// ParseDate parses a local date with optional time of day.
func ParseDate(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	for _, layout := range dateLayouts {
		if t, err := time.ParseInLocation(layout, s, time.Local); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("%w: %q is not a date (YYYY-MM-DD [HH:MM[:SS]])", common.ErrInvalidInput, s)
}

// ParsePeriod maps day, week and month to budget periods in days.
func ParsePeriod(s string) (int, error) {
	switch strings.ToLower(s) {
	case "day":
		return model.PeriodDay, nil
	case "week":
		return model.PeriodWeek, nil
	case "month":
		return model.PeriodMonth, nil
	default:
		return 0, fmt.Errorf("%w: unknown budget period %q", common.ErrInvalidInput, s)
	}
}

// IsInputError reports whether err was caused by malformed user input.
func IsInputError(err error) bool {
	return errors.Is(err, common.ErrInvalidInput)
}
