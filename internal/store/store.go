// Package store provides the SQLite-backed ledger: accounts,
// transactions, recurrences, and savings goals.
package store

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/theirongolddev/cashcast/internal/model"

	_ "modernc.org/sqlite" // register sqlite driver
)

// Store wraps the SQLite ledger database.
type Store struct {
	db *sql.DB
}

// Open opens or creates the ledger database at the given path.
func Open(dbPath string) (*Store, error) {
	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0o750); err != nil {
		return nil, fmt.Errorf("creating data dir: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath+"?_pragma=journal_mode(wal)&_pragma=synchronous(normal)&_pragma=foreign_keys(on)")
	if err != nil {
		return nil, fmt.Errorf("opening ledger db: %w", err)
	}

	if _, err := db.Exec(schemaSQL); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("creating schema: %w", err)
	}

	return &Store{db: db}, nil
}

// Close closes the ledger database.
func (s *Store) Close() error {
	return s.db.Close()
}

// SaveAccount inserts or replaces an account.
func (s *Store) SaveAccount(a model.Account) error {
	now := time.Now().UTC().Format(time.RFC3339)
	_, err := s.db.Exec(`INSERT OR REPLACE INTO accounts
		(id, name, type, balance, currency, updated_at)
		VALUES (?, ?, ?, ?, ?, ?)`,
		a.ID, a.Name, string(a.Type), a.Balance, a.Currency, now)
	return err
}

// Accounts returns all accounts ordered by name.
func (s *Store) Accounts() ([]model.Account, error) {
	rows, err := s.db.Query("SELECT id, name, type, balance, currency FROM accounts ORDER BY name")
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	var accounts []model.Account
	for rows.Next() {
		var a model.Account
		var typ string
		if err := rows.Scan(&a.ID, &a.Name, &typ, &a.Balance, &a.Currency); err != nil {
			return nil, err
		}
		a.Type = model.AccountType(typ)
		accounts = append(accounts, a)
	}
	return accounts, rows.Err()
}

// SaveTransactions inserts a batch of transactions inside one transaction.
// Rows with an already-known id are replaced.
func (s *Store) SaveTransactions(txns []model.Transaction) error {
	tx, err := s.db.Begin()
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	stmt, err := tx.Prepare(`INSERT OR REPLACE INTO transactions
		(id, account_id, date, amount, merchant, category)
		VALUES (?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return err
	}
	defer func() { _ = stmt.Close() }()

	for _, t := range txns {
		_, err := stmt.Exec(t.ID, t.AccountID, t.Date.UTC().Format(time.RFC3339),
			t.Amount, t.Merchant, string(t.Category))
		if err != nil {
			return err
		}
	}
	return tx.Commit()
}

// Transactions returns all transactions ordered by date ascending.
func (s *Store) Transactions() ([]model.Transaction, error) {
	rows, err := s.db.Query(`SELECT id, account_id, date, amount, merchant, category
		FROM transactions ORDER BY date`)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	var txns []model.Transaction
	for rows.Next() {
		var t model.Transaction
		var dateStr, category string
		if err := rows.Scan(&t.ID, &t.AccountID, &dateStr, &t.Amount, &t.Merchant, &category); err != nil {
			return nil, err
		}
		t.Date, _ = time.Parse(time.RFC3339, dateStr)
		t.Category = model.Category(category)
		txns = append(txns, t)
	}
	return txns, rows.Err()
}

// TransactionKeys returns the set of date|amount|merchant keys already in
// the ledger, used by the importer to skip duplicates across files.
func (s *Store) TransactionKeys() (map[string]bool, error) {
	rows, err := s.db.Query("SELECT date, amount, merchant FROM transactions")
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	keys := make(map[string]bool)
	for rows.Next() {
		var date, merchant string
		var amount float64
		if err := rows.Scan(&date, &amount, &merchant); err != nil {
			return nil, err
		}
		keys[fmt.Sprintf("%s|%.2f|%s", date, amount, merchant)] = true
	}
	return keys, rows.Err()
}

// SaveRecurrence inserts or replaces a recurrence.
func (s *Store) SaveRecurrence(r model.Recurrence) error {
	_, err := s.db.Exec(`INSERT OR REPLACE INTO recurrences
		(id, name, amount, cadence, next_date, confidence)
		VALUES (?, ?, ?, ?, ?, ?)`,
		r.ID, r.Name, r.Amount, string(r.Cadence),
		r.NextDate.UTC().Format(time.RFC3339), string(r.Confidence))
	return err
}

// Recurrences returns all recurrences ordered by next date.
func (s *Store) Recurrences() ([]model.Recurrence, error) {
	rows, err := s.db.Query(`SELECT id, name, amount, cadence, next_date, confidence
		FROM recurrences ORDER BY next_date`)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	var recs []model.Recurrence
	for rows.Next() {
		var r model.Recurrence
		var cadence, nextStr, conf string
		if err := rows.Scan(&r.ID, &r.Name, &r.Amount, &cadence, &nextStr, &conf); err != nil {
			return nil, err
		}
		r.Cadence = model.Cadence(cadence)
		r.Confidence = model.ConfidenceTier(conf)
		r.NextDate, _ = time.Parse(time.RFC3339, nextStr)
		recs = append(recs, r)
	}
	return recs, rows.Err()
}

// DeleteRecurrence removes a recurrence.
func (s *Store) DeleteRecurrence(id string) error {
	_, err := s.db.Exec("DELETE FROM recurrences WHERE id = ?", id)
	return err
}

// SaveGoal inserts or replaces a savings goal.
func (s *Store) SaveGoal(g model.SavingsGoal) error {
	var deadline sql.NullString
	if g.Deadline != nil {
		deadline = sql.NullString{String: g.Deadline.UTC().Format(time.RFC3339), Valid: true}
	}
	_, err := s.db.Exec(`INSERT OR REPLACE INTO goals
		(id, name, target, saved, deadline, priority, category)
		VALUES (?, ?, ?, ?, ?, ?, ?)`,
		g.ID, g.Name, g.Target, g.Saved, deadline, string(g.Priority), string(g.Category))
	return err
}

// Goals returns all savings goals ordered by name.
func (s *Store) Goals() ([]model.SavingsGoal, error) {
	rows, err := s.db.Query(`SELECT id, name, target, saved, deadline, priority, category
		FROM goals ORDER BY name`)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	var goals []model.SavingsGoal
	for rows.Next() {
		var g model.SavingsGoal
		var deadline sql.NullString
		var priority, category string
		if err := rows.Scan(&g.ID, &g.Name, &g.Target, &g.Saved, &deadline, &priority, &category); err != nil {
			return nil, err
		}
		g.Priority = model.GoalPriority(priority)
		g.Category = model.GoalCategory(category)
		if deadline.Valid && deadline.String != "" {
			if d, err := time.Parse(time.RFC3339, deadline.String); err == nil {
				g.Deadline = &d
			}
		}
		goals = append(goals, g)
	}
	return goals, rows.Err()
}

// DeleteGoal removes a savings goal.
func (s *Store) DeleteGoal(id string) error {
	_, err := s.db.Exec("DELETE FROM goals WHERE id = ?", id)
	return err
}

// UpdateGoalSaved sets the saved amount on a goal.
func (s *Store) UpdateGoalSaved(id string, saved float64) error {
	_, err := s.db.Exec("UPDATE goals SET saved = ? WHERE id = ?", saved, id)
	return err
}

// TransactionCount returns the number of stored transactions.
func (s *Store) TransactionCount() (int, error) {
	var count int
	err := s.db.QueryRow("SELECT COUNT(*) FROM transactions").Scan(&count)
	return count, err
}

// LoadSnapshot assembles an engine snapshot from everything in the ledger.
func (s *Store) LoadSnapshot() (model.Snapshot, error) {
	var snap model.Snapshot
	var err error

	if snap.Accounts, err = s.Accounts(); err != nil {
		return snap, fmt.Errorf("loading accounts: %w", err)
	}
	if snap.Transactions, err = s.Transactions(); err != nil {
		return snap, fmt.Errorf("loading transactions: %w", err)
	}
	if snap.Recurrences, err = s.Recurrences(); err != nil {
		return snap, fmt.Errorf("loading recurrences: %w", err)
	}
	if snap.Goals, err = s.Goals(); err != nil {
		return snap, fmt.Errorf("loading goals: %w", err)
	}
	return snap, nil
}
