package store

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/theirongolddev/cashcast/internal/model"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(filepath.Join(t.TempDir(), "ledger.db"))
	if err != nil {
		t.Fatalf("Open() error = %v", err)
	}
	t.Cleanup(func() { _ = s.Close() })
	return s
}

func TestAccountRoundTrip(t *testing.T) {
	s := openTestStore(t)

	a := model.Account{ID: "chk", Name: "Checking", Type: model.AccountChecking, Balance: 1234.56, Currency: "USD"}
	if err := s.SaveAccount(a); err != nil {
		t.Fatalf("SaveAccount() error = %v", err)
	}

	accounts, err := s.Accounts()
	if err != nil {
		t.Fatalf("Accounts() error = %v", err)
	}
	if len(accounts) != 1 {
		t.Fatalf("len(accounts) = %d, want 1", len(accounts))
	}
	if accounts[0].Balance != 1234.56 {
		t.Errorf("Balance = %v, want 1234.56", accounts[0].Balance)
	}
	if accounts[0].Type != model.AccountChecking {
		t.Errorf("Type = %v, want checking", accounts[0].Type)
	}
}

func TestTransactionBatchAndKeys(t *testing.T) {
	s := openTestStore(t)

	if err := s.SaveAccount(model.Account{ID: "chk", Name: "Checking", Type: model.AccountChecking}); err != nil {
		t.Fatalf("SaveAccount() error = %v", err)
	}

	date := time.Date(2026, time.March, 1, 0, 0, 0, 0, time.UTC)
	txns := []model.Transaction{
		{ID: "t1", AccountID: "chk", Date: date, Amount: -42.50, Merchant: "Grocery Mart", Category: model.CategoryFood},
		{ID: "t2", AccountID: "chk", Date: date.AddDate(0, 0, 1), Amount: -12, Merchant: "Coffee Bar"},
	}
	if err := s.SaveTransactions(txns); err != nil {
		t.Fatalf("SaveTransactions() error = %v", err)
	}

	got, err := s.Transactions()
	if err != nil {
		t.Fatalf("Transactions() error = %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("len(transactions) = %d, want 2", len(got))
	}
	if !got[0].Date.Equal(date) {
		t.Errorf("first date = %v, want %v", got[0].Date, date)
	}
	if got[0].Category != model.CategoryFood {
		t.Errorf("Category = %v, want food", got[0].Category)
	}

	keys, err := s.TransactionKeys()
	if err != nil {
		t.Fatalf("TransactionKeys() error = %v", err)
	}
	if len(keys) != 2 {
		t.Errorf("len(keys) = %d, want 2", len(keys))
	}

	// Replaying the same batch replaces by id rather than duplicating.
	if err := s.SaveTransactions(txns); err != nil {
		t.Fatalf("SaveTransactions() replay error = %v", err)
	}
	count, err := s.TransactionCount()
	if err != nil {
		t.Fatalf("TransactionCount() error = %v", err)
	}
	if count != 2 {
		t.Errorf("TransactionCount() = %d, want 2 after replay", count)
	}
}

func TestRecurrenceRoundTrip(t *testing.T) {
	s := openTestStore(t)

	next := time.Date(2026, time.March, 13, 0, 0, 0, 0, time.UTC)
	r := model.Recurrence{ID: "rent", Name: "Rent", Amount: -2100,
		Cadence: model.CadenceMonthly, NextDate: next, Confidence: model.ConfidenceHigh}
	if err := s.SaveRecurrence(r); err != nil {
		t.Fatalf("SaveRecurrence() error = %v", err)
	}

	recs, err := s.Recurrences()
	if err != nil {
		t.Fatalf("Recurrences() error = %v", err)
	}
	if len(recs) != 1 {
		t.Fatalf("len(recurrences) = %d, want 1", len(recs))
	}
	if recs[0].Cadence != model.CadenceMonthly || !recs[0].NextDate.Equal(next) {
		t.Errorf("got %+v, want cadence monthly on %v", recs[0], next)
	}

	if err := s.DeleteRecurrence("rent"); err != nil {
		t.Fatalf("DeleteRecurrence() error = %v", err)
	}
	recs, _ = s.Recurrences()
	if len(recs) != 0 {
		t.Errorf("len(recurrences) = %d after delete, want 0", len(recs))
	}
}

func TestGoalRoundTrip(t *testing.T) {
	s := openTestStore(t)

	deadline := time.Date(2026, time.September, 1, 0, 0, 0, 0, time.UTC)
	g := model.SavingsGoal{ID: "g1", Name: "Emergency fund", Target: 10000, Saved: 2500,
		Deadline: &deadline, Priority: model.PriorityHigh, Category: model.GoalEmergency}
	if err := s.SaveGoal(g); err != nil {
		t.Fatalf("SaveGoal() error = %v", err)
	}
	if err := s.SaveGoal(model.SavingsGoal{ID: "g2", Name: "Vacation", Target: 3000,
		Priority: model.PriorityLow, Category: model.GoalLifestyle}); err != nil {
		t.Fatalf("SaveGoal() error = %v", err)
	}

	goals, err := s.Goals()
	if err != nil {
		t.Fatalf("Goals() error = %v", err)
	}
	if len(goals) != 2 {
		t.Fatalf("len(goals) = %d, want 2", len(goals))
	}
	if goals[0].Deadline == nil || !goals[0].Deadline.Equal(deadline) {
		t.Errorf("Deadline = %v, want %v", goals[0].Deadline, deadline)
	}
	if goals[1].Deadline != nil {
		t.Errorf("open-ended goal Deadline = %v, want nil", goals[1].Deadline)
	}

	if err := s.UpdateGoalSaved("g1", 3000); err != nil {
		t.Fatalf("UpdateGoalSaved() error = %v", err)
	}
	goals, _ = s.Goals()
	if goals[0].Saved != 3000 {
		t.Errorf("Saved = %v after update, want 3000", goals[0].Saved)
	}
}

func TestLoadSnapshot(t *testing.T) {
	s := openTestStore(t)

	if err := s.SaveAccount(model.Account{ID: "chk", Name: "Checking", Type: model.AccountChecking, Balance: 5000}); err != nil {
		t.Fatalf("SaveAccount() error = %v", err)
	}
	if err := s.SaveTransactions([]model.Transaction{
		{ID: "t1", AccountID: "chk", Date: time.Now().UTC(), Amount: -20, Merchant: "Coffee Bar"},
	}); err != nil {
		t.Fatalf("SaveTransactions() error = %v", err)
	}

	snap, err := s.LoadSnapshot()
	if err != nil {
		t.Fatalf("LoadSnapshot() error = %v", err)
	}
	if len(snap.Accounts) != 1 || len(snap.Transactions) != 1 {
		t.Errorf("snapshot = %d accounts, %d transactions; want 1 and 1",
			len(snap.Accounts), len(snap.Transactions))
	}
}
