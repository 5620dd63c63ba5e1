// Package storage is the SQLite-backed ledger store. It only implements
// the read shapes the aggregation engine needs: journal lines with their
// account join, third parties and recent entry headers.
package storage

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	"github.com/shopspring/decimal"
	_ "modernc.org/sqlite"

	"digicfo/internal/core"
)

type SQLiteRepository struct {
	db *sql.DB
}

func NewSQLiteRepository(dbPath string) (*SQLiteRepository, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0755); err != nil {
		return nil, fmt.Errorf("create db directory: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	if err := RunMigrations(dbPath); err != nil {
		db.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}

	return &SQLiteRepository{db: db}, nil
}

func (r *SQLiteRepository) Close() error {
	if r.db != nil {
		return r.db.Close()
	}
	return nil
}

// JournalLines implements ledger.LineReader. Only lines belonging to
// approved entries count towards balances. The account join is a LEFT JOIN:
// a line whose code is missing from the chart comes back with empty
// metadata instead of being dropped.
func (r *SQLiteRepository) JournalLines(ctx context.Context) ([]core.JournalLine, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT COALESCE(jl.account_code, ''),
		       jl.debit,
		       jl.credit,
		       COALESCE(a.name, ''),
		       COALESCE(a.type, ''),
		       COALESCE(a.nature, '')
		FROM journal_lines jl
		JOIN journal_entries e ON e.id = jl.entry_id
		LEFT JOIN puc_accounts a ON a.code = jl.account_code
		WHERE e.state = 'APROBADO'`)
	if err != nil {
		return nil, fmt.Errorf("query journal lines: %w", err)
	}
	defer rows.Close()

	var lines []core.JournalLine
	for rows.Next() {
		var (
			line          core.JournalLine
			debit, credit decimal.NullDecimal
			accType       string
			accNature     string
		)
		if err := rows.Scan(&line.AccountCode, &debit, &credit, &line.Account.Name, &accType, &accNature); err != nil {
			return nil, fmt.Errorf("scan journal line: %w", err)
		}
		// NULL amounts mean zero, not a malformed row.
		if debit.Valid {
			line.Debit = debit.Decimal
		}
		if credit.Valid {
			line.Credit = credit.Decimal
		}
		line.Account.Code = line.AccountCode
		line.Account.Type = core.AccountType(accType)
		line.Account.Nature = core.AccountNature(accNature)
		lines = append(lines, line)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate journal lines: %w", err)
	}
	return lines, nil
}

// ThirdParties implements ledger.PartyReader.
func (r *SQLiteRepository) ThirdParties(ctx context.Context) ([]core.ThirdParty, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT full_name, is_client, is_provider, is_employee
		FROM third_parties
		ORDER BY created_at`)
	if err != nil {
		return nil, fmt.Errorf("query third parties: %w", err)
	}
	defer rows.Close()

	var parties []core.ThirdParty
	for rows.Next() {
		var p core.ThirdParty
		if err := rows.Scan(&p.FullName, &p.IsClient, &p.IsProvider, &p.IsEmployee); err != nil {
			return nil, fmt.Errorf("scan third party: %w", err)
		}
		parties = append(parties, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate third parties: %w", err)
	}
	return parties, nil
}

// RecentEntries implements ledger.ActivityReader, newest first.
func (r *SQLiteRepository) RecentEntries(ctx context.Context, limit int) ([]core.JournalEntry, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT date, description, state
		FROM journal_entries
		ORDER BY date DESC
		LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("query journal entries: %w", err)
	}
	defer rows.Close()

	var entries []core.JournalEntry
	for rows.Next() {
		var e core.JournalEntry
		if err := rows.Scan(&e.Date, &e.Description, &e.State); err != nil {
			return nil, fmt.Errorf("scan journal entry: %w", err)
		}
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate journal entries: %w", err)
	}
	return entries, nil
}
