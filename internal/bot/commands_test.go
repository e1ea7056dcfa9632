package bot

import (
	"bytes"
	"context"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"github.com/mmynk/pocketbook/internal/budget"
	"github.com/mmynk/pocketbook/internal/models"
	"github.com/mmynk/pocketbook/internal/storage/sqlite"
	"github.com/mmynk/pocketbook/internal/view"
)

const chatUser int64 = 42

func setupTestCommands(t *testing.T) (*Commands, *budget.Service, func()) {
	t.Helper()

	tmpFile, err := os.CreateTemp("", "test-*.db")
	if err != nil {
		t.Fatalf("failed to create temp file: %v", err)
	}
	tmpFile.Close()

	store, err := sqlite.New(tmpFile.Name())
	if err != nil {
		os.Remove(tmpFile.Name())
		t.Fatalf("failed to create store: %v", err)
	}

	svc := budget.NewServiceWithClock(store, nil, func() time.Time {
		return time.Date(2024, time.March, 10, 12, 0, 0, 0, time.Local)
	})
	cmds := NewCommands(svc, view.NewSessionsWithClock(svc.Today))

	cleanup := func() {
		store.Close()
		os.Remove(tmpFile.Name())
	}
	return cmds, svc, cleanup
}

func run(t *testing.T, c *Commands, command, args string) string {
	t.Helper()
	replies, err := c.Handle(context.Background(), chatUser, command, args)
	if err != nil {
		t.Fatalf("/%s %s failed: %v", command, args, err)
	}
	if len(replies) != 1 {
		t.Fatalf("expected one reply, got %d", len(replies))
	}
	return replies[0].Text
}

func TestAddCommand(t *testing.T) {
	c, svc, cleanup := setupTestCommands(t)
	defer cleanup()
	ctx := context.Background()

	if _, err := svc.CreateCategory(ctx, UserID(chatUser), "Food", []string{"Groceries"}); err != nil {
		t.Fatalf("CreateCategory failed: %v", err)
	}

	tests := []struct {
		name string
		args string
		want string
	}{
		{name: "general", args: "food 12,50 lunch out", want: "Added 12.50 to Food / General on 2024-03-10."},
		{name: "subcategory", args: "Food/groceries 3", want: "Added 3.00 to Food / Groceries on 2024-03-10."},
		{name: "unknown category", args: "Cars 3", want: `No category named "Cars"`},
		{name: "bad amount", args: "Food lots", want: "is not an amount"},
		{name: "negative", args: "Food -3", want: "Not saved: amount must not be negative"},
		{name: "unknown subcategory", args: "Food/Toys 3", want: "Not saved:"},
		{name: "usage", args: "Food", want: "Usage: /add"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := run(t, c, "add", tt.args); !strings.Contains(got, tt.want) {
				t.Errorf("expected %q in reply, got %q", tt.want, got)
			}
		})
	}

	snap, err := svc.Snapshot(ctx, UserID(chatUser))
	if err != nil {
		t.Fatalf("Snapshot failed: %v", err)
	}
	if len(snap.Entries) != 2 {
		t.Errorf("expected 2 entries stored, got %d", len(snap.Entries))
	}
	for _, e := range snap.Entries {
		if e.Subcategory == "General" && e.Note != "lunch out" {
			t.Errorf("expected note to be kept, got %q", e.Note)
		}
	}
}

func TestCalendarNavigation(t *testing.T) {
	c, svc, cleanup := setupTestCommands(t)
	defer cleanup()
	ctx := context.Background()
	userID := UserID(chatUser)

	food, err := svc.CreateCategory(ctx, userID, "Food", nil)
	if err != nil {
		t.Fatalf("CreateCategory failed: %v", err)
	}
	for _, d := range []models.Date{models.NewDate(2024, time.March, 1), models.NewDate(2024, time.February, 14)} {
		if _, err := svc.AddEntry(ctx, userID, budget.EntryInput{
			CategoryID: food.ID,
			Amount:     mustDecimal("9.99"),
			Note:       "cake",
			Date:       d,
		}); err != nil {
			t.Fatalf("AddEntry failed: %v", err)
		}
	}

	cal := run(t, c, "cal", "")
	if !strings.Contains(cal, "March 2024: 9.99") || !strings.Contains(cal, " 1*") {
		t.Errorf("unexpected calendar:\n%s", cal)
	}

	day := run(t, c, "day", "1")
	if !strings.Contains(day, " 1>") || !strings.Contains(day, "General 9.99 (cake)") {
		t.Errorf("expected expanded day:\n%s", day)
	}
	collapsed := run(t, c, "day", "1")
	if strings.Contains(collapsed, "(cake)") {
		t.Errorf("expected second toggle to collapse:\n%s", collapsed)
	}

	if got := run(t, c, "day", "32"); !strings.Contains(got, "Usage: /day <1-31>") {
		t.Errorf("unexpected reply %q", got)
	}

	prev := run(t, c, "prev", "")
	if !strings.Contains(prev, "February 2024: 9.99") || !strings.Contains(prev, "14*") {
		t.Errorf("unexpected previous month:\n%s", prev)
	}

	month := run(t, c, "month", "")
	if !strings.Contains(month, "February 2024: 9.99") || !strings.Contains(month, "Food: 9.99") {
		t.Errorf("unexpected month summary:\n%s", month)
	}

	run(t, c, "signout", "")
	if got := run(t, c, "cal", ""); !strings.Contains(got, "March 2024") {
		t.Errorf("expected sign-out to reset to the current month:\n%s", got)
	}
}

func TestChartCommand(t *testing.T) {
	c, svc, cleanup := setupTestCommands(t)
	defer cleanup()
	ctx := context.Background()
	userID := UserID(chatUser)

	if got := run(t, c, "chart", ""); got != "Nothing spent in March 2024." {
		t.Errorf("unexpected empty chart reply %q", got)
	}

	food, err := svc.CreateCategory(ctx, userID, "Food", nil)
	if err != nil {
		t.Fatalf("CreateCategory failed: %v", err)
	}
	if _, err := svc.AddEntry(ctx, userID, budget.EntryInput{
		CategoryID: food.ID,
		Amount:     mustDecimal("5"),
		Date:       models.NewDate(2024, time.March, 2),
	}); err != nil {
		t.Fatalf("AddEntry failed: %v", err)
	}

	replies, err := c.Handle(ctx, chatUser, "chart", "")
	if err != nil {
		t.Fatalf("chart failed: %v", err)
	}
	if len(replies) != 1 || !bytes.HasPrefix(replies[0].Photo, []byte("\x89PNG")) {
		t.Fatalf("expected a PNG reply, got %+v", replies)
	}
}

func TestUnknownCommand(t *testing.T) {
	c, _, cleanup := setupTestCommands(t)
	defer cleanup()

	if got := run(t, c, "frobnicate", ""); !strings.Contains(got, "Unknown command /frobnicate") {
		t.Errorf("unexpected reply %q", got)
	}
	if got := run(t, c, "categories", ""); !strings.Contains(got, "No categories yet") {
		t.Errorf("unexpected reply %q", got)
	}
}

func mustDecimal(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}
