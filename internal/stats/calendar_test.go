package stats

import (
	"testing"
	"time"

	"github.com/mmynk/pocketbook/internal/models"
)

func TestBuildCalendarEmptyMonth(t *testing.T) {
	// March 2024 starts on a Friday.
	cal := BuildCalendar(testCategories, nil, 2024, time.March, 0, models.Date{})

	if len(cal.Cells)%7 != 0 {
		t.Fatalf("cell count %d is not a multiple of 7", len(cal.Cells))
	}
	if len(cal.Cells) != 42 {
		t.Errorf("cell count = %d, want 42", len(cal.Cells))
	}
	for i := range 5 {
		if !cal.Cells[i].IsPadding() {
			t.Errorf("cell %d should be padding", i)
		}
	}
	if cal.Cells[5].Day != 1 {
		t.Errorf("first day at cell 5 = %d, want 1", cal.Cells[5].Day)
	}
	for _, c := range cal.Cells {
		if len(c.Dots) != 0 || c.HasEntries {
			t.Errorf("day %d has dots or entries in an empty month", c.Day)
		}
	}
	if cal.Detail != nil {
		t.Error("empty month should have no detail")
	}
	if len(cal.Weeks()) != 6 {
		t.Errorf("weeks = %d, want 6", len(cal.Weeks()))
	}
}

func TestBuildCalendarNoPaddingNeeded(t *testing.T) {
	// February 2026 starts on a Sunday and has 28 days.
	cal := BuildCalendar(nil, nil, 2026, time.February, 0, models.Date{})
	if len(cal.Cells) != 28 {
		t.Errorf("cell count = %d, want 28", len(cal.Cells))
	}
}

func TestBuildCalendarDotsAndSelection(t *testing.T) {
	categories := []models.Category{
		{ID: "a", Name: "A", Order: 0},
		{ID: "b", Name: "B", Order: 1},
		{ID: "c", Name: "C", Order: 2},
		{ID: "d", Name: "D", Order: 3},
		{ID: "e", Name: "E", Order: 4},
	}
	entries := []models.Entry{
		entry("1", "e", "General", "1", "2024-03-05"),
		entry("2", "d", "General", "1", "2024-03-05"),
		entry("3", "c", "General", "1", "2024-03-05"),
		entry("4", "b", "General", "1", "2024-03-05"),
		entry("5", "a", "General", "1", "2024-03-05"),
		entry("6", "a", "General", "2.5", "2024-03-05"),
		entry("7", "gone", "General", "10", "2024-03-05"),
	}
	today := mustDate("2024-03-06")

	tests := []struct {
		name         string
		selected     int
		validateFunc func(t *testing.T, cal Calendar)
	}{
		{
			name: "dots capped in display order",
			validateFunc: func(t *testing.T, cal Calendar) {
				cell := cal.Cells[5+4]
				if cell.Day != 5 {
					t.Fatalf("cell day = %d, want 5", cell.Day)
				}
				want := CategoryColors[:MaxDots]
				if len(cell.Dots) != MaxDots {
					t.Fatalf("dots = %v, want %v", cell.Dots, want)
				}
				for i := range want {
					if cell.Dots[i] != want[i] {
						t.Errorf("dot %d = %s, want %s", i, cell.Dots[i], want[i])
					}
				}
				if !cell.Total.Equal(dec("17.5")) {
					t.Errorf("day total = %v, want 17.5", cell.Total)
				}
				if !cal.Cells[5+5].Today {
					t.Error("March 6 should be marked today")
				}
				if cal.Detail != nil {
					t.Error("no selection should give no detail")
				}
			},
		},
		{
			name:     "selected day with entries expands",
			selected: 5,
			validateFunc: func(t *testing.T, cal Calendar) {
				if cal.Detail == nil {
					t.Fatal("expected day detail")
				}
				if !cal.Cells[5+4].Selected {
					t.Error("cell should be selected")
				}
				groups := cal.Detail.Groups
				if len(groups) != 5 {
					t.Fatalf("groups = %d, want 5 (unknown category skipped)", len(groups))
				}
				if groups[0].Name != "A" || len(groups[0].Lines) != 2 || !groups[0].Total.Equal(dec("3.5")) {
					t.Errorf("first group = %+v", groups[0])
				}
			},
		},
		{
			name:     "selected day without entries is ignored",
			selected: 6,
			validateFunc: func(t *testing.T, cal Calendar) {
				if cal.Detail != nil {
					t.Error("day without entries should not expand")
				}
				for _, c := range cal.Cells {
					if c.Selected {
						t.Errorf("day %d unexpectedly selected", c.Day)
					}
				}
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.validateFunc(t, BuildCalendar(categories, entries, 2024, time.March, tt.selected, today))
		})
	}
}

func TestBuildDayDetailNoEntries(t *testing.T) {
	if d := BuildDayDetail(testCategories, nil, mustDate("2024-03-05")); d != nil {
		t.Errorf("BuildDayDetail() = %+v, want nil", d)
	}
}
