package bot

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/mmynk/pocketbook/internal/budget"
	"github.com/mmynk/pocketbook/internal/export"
	"github.com/mmynk/pocketbook/internal/stats"
	"github.com/mmynk/pocketbook/internal/storage"
	"github.com/mmynk/pocketbook/internal/view"
)

const helpText = `Commands:
/categories - list categories
/add <category>[/<subcategory>] <amount> [note] - record an expense
/month - totals for the month shown
/cal - calendar of the month shown
/next, /prev - move the calendar
/day <n> - show or hide the entries of a day
/chart - pie chart of the month shown
/signout - forget this chat's view state`

// Reply is one outgoing message: text, or a PNG photo with Text as caption.
type Reply struct {
	Text  string
	Photo []byte
}

// Commands interprets chat commands against the budget service. It knows
// nothing about Telegram and is driven by Bot.
type Commands struct {
	budget   *budget.Service
	sessions *view.Sessions
}

// NewCommands creates a command handler. sessions holds each chat's calendar
// position.
func NewCommands(svc *budget.Service, sessions *view.Sessions) *Commands {
	return &Commands{budget: svc, sessions: sessions}
}

// UserID maps a Telegram user to the user ID its data is stored under.
func UserID(telegramID int64) string {
	return "tg:" + strconv.FormatInt(telegramID, 10)
}

// Handle runs command with its argument string for a Telegram user.
// Domain validation failures become a friendly reply; only unexpected errors
// are returned.
func (c *Commands) Handle(ctx context.Context, telegramID int64, command, args string) ([]Reply, error) {
	userID := UserID(telegramID)
	args = strings.TrimSpace(args)

	var (
		replies []Reply
		err     error
	)
	switch command {
	case "start", "help":
		replies = text(helpText)
	case "categories":
		replies, err = c.categories(ctx, userID)
	case "add":
		replies, err = c.add(ctx, userID, args)
	case "month":
		replies, err = c.month(ctx, userID)
	case "cal":
		replies, err = c.calendar(ctx, userID)
	case "next":
		c.sessions.Glance(userID).Next()
		replies, err = c.calendar(ctx, userID)
	case "prev":
		c.sessions.Glance(userID).Prev()
		replies, err = c.calendar(ctx, userID)
	case "day":
		replies, err = c.day(ctx, userID, args)
	case "chart":
		replies, err = c.chart(ctx, userID)
	case "signout":
		c.sessions.SignOut(userID)
		replies = text("Signed out. Your calendar view has been reset.")
	default:
		replies = text("Unknown command /" + command + "\n\n" + helpText)
	}

	if err != nil {
		if msg, ok := userMessage(err); ok {
			return text(msg), nil
		}
		return nil, err
	}
	return replies, nil
}

func (c *Commands) categories(ctx context.Context, userID string) ([]Reply, error) {
	snap, err := c.budget.Snapshot(ctx, userID)
	if err != nil {
		return nil, err
	}
	if len(snap.Categories) == 0 {
		return text("No categories yet. Create them in the app first."), nil
	}

	var b strings.Builder
	for _, cat := range stats.DisplayOrder(snap.Categories) {
		fmt.Fprintf(&b, "%s: %s\n", cat.Name, strings.Join(cat.SubcategoryNames(), ", "))
	}
	return text(b.String()), nil
}

// add parses "<category>[/<subcategory>] <amount> [note]".
func (c *Commands) add(ctx context.Context, userID, args string) ([]Reply, error) {
	fields := strings.Fields(args)
	if len(fields) < 2 {
		return text("Usage: /add <category>[/<subcategory>] <amount> [note]"), nil
	}

	name, sub, _ := strings.Cut(fields[0], "/")
	amount, err := decimal.NewFromString(strings.ReplaceAll(fields[1], ",", "."))
	if err != nil {
		return text(fmt.Sprintf("%q is not an amount.", fields[1])), nil
	}
	note := strings.Join(fields[2:], " ")

	snap, err := c.budget.Snapshot(ctx, userID)
	if err != nil {
		return nil, err
	}
	category, ok := snap.CategoryByName(name)
	if !ok {
		return text(fmt.Sprintf("No category named %q. Try /categories.", name)), nil
	}
	if sub != "" {
		for _, s := range category.SubcategoryNames() {
			if strings.EqualFold(s, sub) {
				sub = s
			}
		}
	}

	entry, err := c.budget.AddEntry(ctx, userID, budget.EntryInput{
		CategoryID:  category.ID,
		Subcategory: sub,
		Amount:      amount,
		Note:        note,
		Date:        c.budget.Today(),
	})
	if err != nil {
		return nil, err
	}
	return text(fmt.Sprintf("Added %s to %s / %s on %s.", entry.Amount.StringFixed(2), category.Name, entry.Subcategory, entry.Date)), nil
}

func (c *Commands) month(ctx context.Context, userID string) ([]Reply, error) {
	snap, err := c.budget.Snapshot(ctx, userID)
	if err != nil {
		return nil, err
	}
	m := c.sessions.Glance(userID).Month

	var b strings.Builder
	fmt.Fprintf(&b, "%s: %s\n", m.Label(), stats.MonthlyTotal(snap.Entries, m.Year, m.Month).StringFixed(2))
	for _, t := range stats.OrderedCategoryTotals(snap.Categories, snap.Entries, m.Year, m.Month) {
		fmt.Fprintf(&b, "  %s: %s\n", t.Name, t.Total.StringFixed(2))
	}
	return text(b.String()), nil
}

func (c *Commands) calendar(ctx context.Context, userID string) ([]Reply, error) {
	snap, err := c.budget.Snapshot(ctx, userID)
	if err != nil {
		return nil, err
	}
	cal := c.sessions.Glance(userID).Render(snap.Categories, snap.Entries, c.budget.Today())
	return text(formatCalendar(cal)), nil
}

func (c *Commands) day(ctx context.Context, userID, args string) ([]Reply, error) {
	n, err := strconv.Atoi(args)
	g := c.sessions.Glance(userID)
	if err != nil || n < 1 || n > g.Month.Days() {
		return text(fmt.Sprintf("Usage: /day <1-%d>", g.Month.Days())), nil
	}
	g.Toggle(n)
	return c.calendar(ctx, userID)
}

func (c *Commands) chart(ctx context.Context, userID string) ([]Reply, error) {
	snap, err := c.budget.Snapshot(ctx, userID)
	if err != nil {
		return nil, err
	}
	m := c.sessions.Glance(userID).Month
	pie := stats.CategoryBreakdown(snap.Categories, stats.EntriesForMonth(snap.Entries, m.Year, m.Month))

	var buf bytes.Buffer
	if err := export.WriteBreakdownChart(&buf, pie); err != nil {
		if errors.Is(err, export.ErrNoData) {
			return text("Nothing spent in " + m.Label() + "."), nil
		}
		return nil, err
	}
	return []Reply{{Text: m.Label() + ": " + pie.Total.StringFixed(2), Photo: buf.Bytes()}}, nil
}

// formatCalendar draws the month as a monospace grid. Days with entries are
// marked with *, the selected day with >.
func formatCalendar(cal stats.Calendar) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s: %s\n", cal.Month.Label(), cal.Total.StringFixed(2))
	for _, w := range stats.Weekdays {
		fmt.Fprintf(&b, "%-4s", w[:2])
	}
	b.WriteString("\n")

	for _, week := range cal.Weeks() {
		for _, cell := range week {
			if cell.IsPadding() {
				b.WriteString("    ")
				continue
			}
			mark := " "
			switch {
			case cell.Selected:
				mark = ">"
			case cell.HasEntries:
				mark = "*"
			}
			fmt.Fprintf(&b, "%2d%s ", cell.Day, mark)
		}
		b.WriteString("\n")
	}

	if d := cal.Detail; d != nil {
		fmt.Fprintf(&b, "\n%s: %s\n", d.Date, d.Total.StringFixed(2))
		for _, g := range d.Groups {
			fmt.Fprintf(&b, "%s: %s\n", g.Name, g.Total.StringFixed(2))
			for _, l := range g.Lines {
				line := fmt.Sprintf("  %s %s", l.Subcategory, l.Amount.StringFixed(2))
				if l.Note != "" {
					line += " (" + l.Note + ")"
				}
				b.WriteString(line + "\n")
			}
		}
	}
	// Inside a MarkdownV2 code block only ` and \ need escaping.
	body := strings.NewReplacer(`\`, `\\`, "`", "\\`").Replace(b.String())
	return "```\n" + body + "```"
}

// userMessage turns validation failures into chat text.
func userMessage(err error) (string, bool) {
	switch {
	case errors.Is(err, budget.ErrInvalid):
		return "Not saved: " + strings.TrimPrefix(err.Error(), budget.ErrInvalid.Error()+": "), true
	case errors.Is(err, storage.ErrNotFound):
		return "Not found.", true
	case errors.Is(err, context.DeadlineExceeded):
		return "That took too long, please try again.", true
	}
	return "", false
}

func text(s string) []Reply {
	return []Reply{{Text: s}}
}
