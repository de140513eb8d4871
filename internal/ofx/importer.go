package ofx

import (
	"context"
	"fmt"
	"time"

	"github.com/alwaysmad/bookkeeper/internal/model"
	"github.com/alwaysmad/bookkeeper/internal/repository"
)

// ImportResult counts what an import did.
type ImportResult struct {
	Added      int
	Duplicates int
}

// Importer writes statement entries as expenses of one category.
type Importer struct {
	expenses repository.Repository[model.Expense]
	now      func() time.Time
	// Progress, when set, is called once per processed entry.
	Progress func()
}

// NewImporter creates an importer writing to expenses.
func NewImporter(expenses repository.Repository[model.Expense], now func() time.Time) *Importer {
	if now == nil {
		now = time.Now
	}
	return &Importer{expenses: expenses, now: now}
}

// Import adds every entry as an expense of category. Entries already
// recorded before the import started, with the same amount, date and
// comment, are skipped, so importing the same file twice adds nothing.
// Identical entries within one statement are separate purchases and are
// only skipped while earlier recorded matches remain.
func (im *Importer) Import(ctx context.Context, entries []Entry, category int64) (ImportResult, error) {
	var result ImportResult
	if err := ctx.Err(); err != nil {
		return result, err
	}

	recorded, err := im.recordedMatches(ctx, entries)
	if err != nil {
		return result, err
	}
	added := im.now()

	for _, entry := range entries {
		key := keyOf(entry)
		if recorded[key] > 0 {
			recorded[key]--
			result.Duplicates++
		} else {
			expense := model.NewExpense(entry.Amount, category, entry.Date,
				model.WithComment(entry.Comment()),
				model.WithAddedDate(added),
			)
			if _, err := im.expenses.Add(ctx, expense); err != nil {
				return result, fmt.Errorf("failed to import %s: %w", entry.FITID, err)
			}
			result.Added++
		}
		if im.Progress != nil {
			im.Progress()
		}
	}
	return result, nil
}

// entryKey identifies an entry by what is stored of it.
type entryKey struct {
	comment string
	amount  float64
	unix    int64
}

func keyOf(entry Entry) entryKey {
	return entryKey{comment: entry.Comment(), amount: entry.Amount, unix: entry.Date.Unix()}
}

// recordedMatches counts the stored expenses matching each distinct entry
// before anything is written.
func (im *Importer) recordedMatches(ctx context.Context, entries []Entry) (map[entryKey]int, error) {
	counts := make(map[entryKey]int)
	seen := make(map[entryKey]bool)
	for _, entry := range entries {
		key := keyOf(entry)
		if seen[key] {
			continue
		}
		seen[key] = true

		matches, err := im.expenses.GetAll(ctx, repository.Filter{
			"amount":       entry.Amount,
			"expense_date": entry.Date,
			"comment":      entry.Comment(),
		})
		if err != nil {
			return nil, fmt.Errorf("failed to look up existing expenses: %w", err)
		}
		counts[key] = len(matches)
	}
	return counts, nil
}
