// Package ofx turns OFX/QFX bank and credit card statements into expenses.
package ofx

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"regexp"
	"strings"
	"time"

	"github.com/aclindsa/ofxgo"
)

var (
	severityRegex = regexp.MustCompile(`(?i)<SEVERITY>(Info|Warn|Error)</SEVERITY>`)
	tagFixRegex   = regexp.MustCompile(`(?m)^(\s*<[A-Z][A-Z0-9._]*[A-Z0-9])$`)
)

// Entry is one debit of a statement.
type Entry struct {
	Date        time.Time
	FITID       string
	Account     string
	Description string
	Memo        string
	Amount      float64 // always positive
}

// Comment is the expense comment recorded for the entry.
func (e Entry) Comment() string {
	if e.Memo == "" || e.Memo == e.Description {
		return e.Description
	}
	return e.Description + " (" + e.Memo + ")"
}

// Statement is the result of parsing one file.
type Statement struct {
	Entries []Entry
	// Credits counts deposits and refunds, which are not expenses.
	Credits int
}

// Parser implements OFX/QFX file parsing.
type Parser struct{}

// NewParser creates a new OFX parser.
func NewParser() *Parser {
	return &Parser{}
}

// preprocessOFX fixes common formatting issues in OFX files.
func (p *Parser) preprocessOFX(content string) string {
	content = strings.TrimLeft(content, " \t\r\n")

	// SEVERITY must be upper case.
	content = severityRegex.ReplaceAllStringFunc(content, strings.ToUpper)

	// Some SGML exports drop the closing bracket of a bare opening tag.
	return tagFixRegex.ReplaceAllString(content, "$1>")
}

// ParseFile parses an OFX/QFX file and returns its debits.
func (p *Parser) ParseFile(ctx context.Context, reader io.Reader) (Statement, error) {
	content, err := io.ReadAll(reader)
	if err != nil {
		return Statement{}, fmt.Errorf("failed to read OFX file: %w", err)
	}
	if err := ctx.Err(); err != nil {
		return Statement{}, err
	}

	resp, err := ofxgo.ParseResponse(strings.NewReader(p.preprocessOFX(string(content))))
	if err != nil {
		return Statement{}, fmt.Errorf("failed to parse OFX file: %w", err)
	}

	var stmt Statement
	var bankStmts, ccStmts int

	for _, msg := range resp.Bank {
		if bank, ok := msg.(*ofxgo.StatementResponse); ok && bank.BankTranList != nil {
			bankStmts++
			p.collect(&stmt, bank.BankTranList.Transactions, string(bank.BankAcctFrom.AcctID))
		}
	}

	for _, msg := range resp.CreditCard {
		if cc, ok := msg.(*ofxgo.CCStatementResponse); ok && cc.BankTranList != nil {
			ccStmts++
			p.collect(&stmt, cc.BankTranList.Transactions, string(cc.CCAcctFrom.AcctID))
		}
	}

	slog.Info("Parsed OFX file",
		"debits", len(stmt.Entries),
		"credits", stmt.Credits,
		"bank_statements", bankStmts,
		"cc_statements", ccStmts)

	return stmt, nil
}

// collect appends the debits of txs to stmt. OFX amounts are negative for debits.
func (p *Parser) collect(stmt *Statement, txs []ofxgo.Transaction, account string) {
	for _, tx := range txs {
		amount, _ := tx.TrnAmt.Float64()
		if amount >= 0 {
			stmt.Credits++
			continue
		}

		stmt.Entries = append(stmt.Entries, Entry{
			FITID:       string(tx.FiTID),
			Account:     account,
			Date:        tx.DtPosted.Time.Local().Truncate(time.Second),
			Amount:      -amount,
			Description: p.extractMerchantName(tx),
			Memo:        strings.TrimSpace(string(tx.Memo)),
		})
	}
}

// extractMerchantName tries to get a clean merchant name from OFX data.
func (p *Parser) extractMerchantName(tx ofxgo.Transaction) string {
	// PAYEE is usually the cleanest name.
	if tx.Payee != nil && tx.Payee.Name != "" {
		return string(tx.Payee.Name)
	}

	name := string(tx.Name)
	if tx.Memo != "" && isGenericDescription(name) {
		name = string(tx.Memo)
	}
	name = strings.TrimSpace(name)

	prefixes := []string{
		"POS PURCHASE ",
		"PURCHASE AUTHORIZED ON ",
		"DEBIT CARD PURCHASE ",
		"ACH DEBIT ",
		"CHECK CARD ",
		"VISA PURCHASE ",
		"MC PURCHASE ",
		"DEBIT PURCHASE ",
	}
	for _, prefix := range prefixes {
		if strings.HasPrefix(strings.ToUpper(name), prefix) {
			name = name[len(prefix):]
			break
		}
	}

	// Drop a leading "MM/DD " date.
	if len(name) > 5 && name[2] == '/' && name[5] == ' ' {
		name = strings.TrimSpace(name[6:])
	}

	return name
}

// isGenericDescription checks if a transaction name is too generic.
func isGenericDescription(name string) bool {
	switch strings.ToUpper(name) {
	case "DEBIT", "CREDIT", "PURCHASE", "PAYMENT", "POS TRANSACTION", "CARD PURCHASE":
		return true
	}
	return false
}
