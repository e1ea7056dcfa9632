package service

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"time"

	"connectrpc.com/connect"
	"google.golang.org/protobuf/types/known/emptypb"

	"github.com/mmynk/pocketbook/internal/backup"
	"github.com/mmynk/pocketbook/internal/budget"
	"github.com/mmynk/pocketbook/internal/models"
	"github.com/mmynk/pocketbook/internal/stats"
	"github.com/mmynk/pocketbook/pkg/api"
	"github.com/mmynk/pocketbook/pkg/api/apiconnect"
)

// BudgetService implements the Connect BudgetService.
type BudgetService struct {
	apiconnect.UnimplementedBudgetServiceHandler
	budget *budget.Service
}

// NewBudgetService creates a new BudgetService over the budget domain service.
func NewBudgetService(svc *budget.Service) *BudgetService {
	return &BudgetService{budget: svc}
}

// ListCategories returns the caller's categories in display order.
func (s *BudgetService) ListCategories(ctx context.Context, req *connect.Request[api.ListCategoriesRequest]) (*connect.Response[api.ListCategoriesResponse], error) {
	userID, err := requireUser(ctx)
	if err != nil {
		return nil, fail("ListCategories", err)
	}
	slog.Info("ListCategories request received", "user_id", userID)

	snap, err := s.budget.Snapshot(ctx, userID)
	if err != nil {
		return nil, fail("ListCategories", err, "user_id", userID)
	}

	return connect.NewResponse(&api.ListCategoriesResponse{
		Categories: toAPICategories(snap.Categories),
	}), nil
}

// CreateCategory adds a category at the end of the list.
func (s *BudgetService) CreateCategory(ctx context.Context, req *connect.Request[api.CreateCategoryRequest]) (*connect.Response[api.CreateCategoryResponse], error) {
	userID, err := requireUser(ctx)
	if err != nil {
		return nil, fail("CreateCategory", err)
	}
	slog.Info("CreateCategory request received",
		"user_id", userID,
		"name", req.Msg.Name,
		"subcategories_count", len(req.Msg.Subcategories),
	)

	category, err := s.budget.CreateCategory(ctx, userID, req.Msg.Name, req.Msg.Subcategories)
	if err != nil {
		return nil, fail("CreateCategory", err, "user_id", userID)
	}

	slog.Info("Category created", "category_id", category.ID, "order", category.Order)

	return connect.NewResponse(&api.CreateCategoryResponse{
		Category: toAPICategory(*category, stats.CategoryColor(category.Order)),
	}), nil
}

// RenameCategory changes a category's display name.
func (s *BudgetService) RenameCategory(ctx context.Context, req *connect.Request[api.RenameCategoryRequest]) (*connect.Response[emptypb.Empty], error) {
	userID, err := requireUser(ctx)
	if err != nil {
		return nil, fail("RenameCategory", err)
	}
	slog.Info("RenameCategory request received", "user_id", userID, "category_id", req.Msg.CategoryId)

	if err := s.budget.RenameCategory(ctx, userID, req.Msg.CategoryId, req.Msg.Name); err != nil {
		return nil, fail("RenameCategory", err, "category_id", req.Msg.CategoryId)
	}
	return connect.NewResponse(&emptypb.Empty{}), nil
}

// DeleteCategory removes a category together with its entries.
func (s *BudgetService) DeleteCategory(ctx context.Context, req *connect.Request[api.DeleteCategoryRequest]) (*connect.Response[emptypb.Empty], error) {
	userID, err := requireUser(ctx)
	if err != nil {
		return nil, fail("DeleteCategory", err)
	}
	slog.Info("DeleteCategory request received", "user_id", userID, "category_id", req.Msg.CategoryId)

	if err := s.budget.DeleteCategory(ctx, userID, req.Msg.CategoryId); err != nil {
		return nil, fail("DeleteCategory", err, "category_id", req.Msg.CategoryId)
	}

	slog.Info("Category deleted", "category_id", req.Msg.CategoryId)
	return connect.NewResponse(&emptypb.Empty{}), nil
}

// ReorderCategories applies a new display order.
func (s *BudgetService) ReorderCategories(ctx context.Context, req *connect.Request[api.ReorderCategoriesRequest]) (*connect.Response[emptypb.Empty], error) {
	userID, err := requireUser(ctx)
	if err != nil {
		return nil, fail("ReorderCategories", err)
	}
	slog.Info("ReorderCategories request received", "user_id", userID, "count", len(req.Msg.CategoryIds))

	if err := s.budget.ReorderCategories(ctx, userID, req.Msg.CategoryIds); err != nil {
		return nil, fail("ReorderCategories", err, "user_id", userID)
	}
	return connect.NewResponse(&emptypb.Empty{}), nil
}

// AddSubcategory appends a subcategory.
func (s *BudgetService) AddSubcategory(ctx context.Context, req *connect.Request[api.AddSubcategoryRequest]) (*connect.Response[emptypb.Empty], error) {
	userID, err := requireUser(ctx)
	if err != nil {
		return nil, fail("AddSubcategory", err)
	}
	slog.Info("AddSubcategory request received", "user_id", userID, "category_id", req.Msg.CategoryId, "name", req.Msg.Name)

	if err := s.budget.AddSubcategory(ctx, userID, req.Msg.CategoryId, req.Msg.Name); err != nil {
		return nil, fail("AddSubcategory", err, "category_id", req.Msg.CategoryId)
	}
	return connect.NewResponse(&emptypb.Empty{}), nil
}

// RenameSubcategory renames a subcategory on the category and its entries.
func (s *BudgetService) RenameSubcategory(ctx context.Context, req *connect.Request[api.RenameSubcategoryRequest]) (*connect.Response[emptypb.Empty], error) {
	userID, err := requireUser(ctx)
	if err != nil {
		return nil, fail("RenameSubcategory", err)
	}
	slog.Info("RenameSubcategory request received",
		"user_id", userID,
		"category_id", req.Msg.CategoryId,
		"old_name", req.Msg.OldName,
		"new_name", req.Msg.NewName,
	)

	if err := s.budget.RenameSubcategory(ctx, userID, req.Msg.CategoryId, req.Msg.OldName, req.Msg.NewName); err != nil {
		return nil, fail("RenameSubcategory", err, "category_id", req.Msg.CategoryId)
	}
	return connect.NewResponse(&emptypb.Empty{}), nil
}

// DeleteSubcategory removes a subcategory; its entries fall back to General.
func (s *BudgetService) DeleteSubcategory(ctx context.Context, req *connect.Request[api.DeleteSubcategoryRequest]) (*connect.Response[emptypb.Empty], error) {
	userID, err := requireUser(ctx)
	if err != nil {
		return nil, fail("DeleteSubcategory", err)
	}
	slog.Info("DeleteSubcategory request received", "user_id", userID, "category_id", req.Msg.CategoryId, "name", req.Msg.Name)

	if err := s.budget.DeleteSubcategory(ctx, userID, req.Msg.CategoryId, req.Msg.Name); err != nil {
		return nil, fail("DeleteSubcategory", err, "category_id", req.Msg.CategoryId)
	}
	return connect.NewResponse(&emptypb.Empty{}), nil
}

// AddEntry records an expense.
func (s *BudgetService) AddEntry(ctx context.Context, req *connect.Request[api.AddEntryRequest]) (*connect.Response[api.EntryResponse], error) {
	userID, err := requireUser(ctx)
	if err != nil {
		return nil, fail("AddEntry", err)
	}
	slog.Info("AddEntry request received",
		"user_id", userID,
		"category_id", req.Msg.CategoryId,
		"amount", req.Msg.Amount.String(),
	)

	date, err := parseDate(req.Msg.Date)
	if err != nil {
		return nil, fail("AddEntry", err)
	}
	entry, err := s.budget.AddEntry(ctx, userID, budget.EntryInput{
		CategoryID:  req.Msg.CategoryId,
		Subcategory: req.Msg.Subcategory,
		Amount:      req.Msg.Amount,
		Note:        req.Msg.Note,
		Date:        date,
	})
	if err != nil {
		return nil, fail("AddEntry", err, "user_id", userID)
	}

	slog.Info("Entry created", "entry_id", entry.ID, "date", entry.Date.String())

	return connect.NewResponse(&api.EntryResponse{Entry: toAPIEntry(*entry)}), nil
}

// UpdateEntry replaces an entry's editable fields.
func (s *BudgetService) UpdateEntry(ctx context.Context, req *connect.Request[api.UpdateEntryRequest]) (*connect.Response[api.EntryResponse], error) {
	userID, err := requireUser(ctx)
	if err != nil {
		return nil, fail("UpdateEntry", err)
	}
	slog.Info("UpdateEntry request received", "user_id", userID, "entry_id", req.Msg.EntryId)

	date, err := parseDate(req.Msg.Date)
	if err != nil {
		return nil, fail("UpdateEntry", err)
	}
	entry, err := s.budget.UpdateEntry(ctx, userID, req.Msg.EntryId, budget.EntryInput{
		CategoryID:  req.Msg.CategoryId,
		Subcategory: req.Msg.Subcategory,
		Amount:      req.Msg.Amount,
		Note:        req.Msg.Note,
		Date:        date,
	})
	if err != nil {
		return nil, fail("UpdateEntry", err, "entry_id", req.Msg.EntryId)
	}

	return connect.NewResponse(&api.EntryResponse{Entry: toAPIEntry(*entry)}), nil
}

// DeleteEntry removes an entry.
func (s *BudgetService) DeleteEntry(ctx context.Context, req *connect.Request[api.DeleteEntryRequest]) (*connect.Response[emptypb.Empty], error) {
	userID, err := requireUser(ctx)
	if err != nil {
		return nil, fail("DeleteEntry", err)
	}
	slog.Info("DeleteEntry request received", "user_id", userID, "entry_id", req.Msg.EntryId)

	if err := s.budget.DeleteEntry(ctx, userID, req.Msg.EntryId); err != nil {
		return nil, fail("DeleteEntry", err, "entry_id", req.Msg.EntryId)
	}
	return connect.NewResponse(&emptypb.Empty{}), nil
}

// ListEntries returns matching entries, newest first, with their sum.
func (s *BudgetService) ListEntries(ctx context.Context, req *connect.Request[api.ListEntriesRequest]) (*connect.Response[api.ListEntriesResponse], error) {
	userID, err := requireUser(ctx)
	if err != nil {
		return nil, fail("ListEntries", err)
	}
	slog.Info("ListEntries request received",
		"user_id", userID,
		"year", req.Msg.Year,
		"month", req.Msg.Month,
		"category_id", req.Msg.CategoryId,
	)

	snap, err := s.budget.Snapshot(ctx, userID)
	if err != nil {
		return nil, fail("ListEntries", err, "user_id", userID)
	}
	entries, err := filterEntries(snap.Entries, req.Msg.Year, req.Msg.Month, req.Msg.CategoryId)
	if err != nil {
		return nil, fail("ListEntries", err)
	}

	slog.Info("ListEntries successful", "count", len(entries))

	return connect.NewResponse(&api.ListEntriesResponse{
		Entries: toAPIEntries(entries),
		Total:   stats.Sum(entries),
	}), nil
}

// GetSummary returns the month's totals per category and the year's monthly totals.
func (s *BudgetService) GetSummary(ctx context.Context, req *connect.Request[api.GetSummaryRequest]) (*connect.Response[api.GetSummaryResponse], error) {
	userID, err := requireUser(ctx)
	if err != nil {
		return nil, fail("GetSummary", err)
	}
	slog.Info("GetSummary request received", "user_id", userID, "year", req.Msg.Year, "month", req.Msg.Month)

	month, err := requireMonth(req.Msg.Year, req.Msg.Month)
	if err != nil {
		return nil, fail("GetSummary", err)
	}
	snap, err := s.budget.Snapshot(ctx, userID)
	if err != nil {
		return nil, fail("GetSummary", err, "user_id", userID)
	}

	return connect.NewResponse(&api.GetSummaryResponse{
		Total:      stats.MonthlyTotal(snap.Entries, month.Year, month.Month),
		Categories: toAPICategoryTotals(stats.OrderedCategoryTotals(snap.Categories, snap.Entries, month.Year, month.Month)),
		Yearly:     decimals(stats.YearlyTotals(snap.Entries, month.Year)),
	}), nil
}

// GetCalendar returns the month grid and, for a selected day with entries,
// its detail.
func (s *BudgetService) GetCalendar(ctx context.Context, req *connect.Request[api.GetCalendarRequest]) (*connect.Response[api.GetCalendarResponse], error) {
	userID, err := requireUser(ctx)
	if err != nil {
		return nil, fail("GetCalendar", err)
	}
	slog.Info("GetCalendar request received",
		"user_id", userID,
		"year", req.Msg.Year,
		"month", req.Msg.Month,
		"selected_day", req.Msg.SelectedDay,
	)

	month, err := requireMonth(req.Msg.Year, req.Msg.Month)
	if err != nil {
		return nil, fail("GetCalendar", err)
	}
	if req.Msg.SelectedDay < 0 || req.Msg.SelectedDay > month.Days() {
		return nil, fail("GetCalendar", badRequest("day %d is outside %s", req.Msg.SelectedDay, month.Label()))
	}
	snap, err := s.budget.Snapshot(ctx, userID)
	if err != nil {
		return nil, fail("GetCalendar", err, "user_id", userID)
	}

	cal := stats.BuildCalendar(snap.Categories, snap.Entries, month.Year, month.Month, req.Msg.SelectedDay, s.budget.Today())
	return connect.NewResponse(toAPICalendar(cal)), nil
}

// GetBarChart returns one stacked bar per month, newest first.
func (s *BudgetService) GetBarChart(ctx context.Context, req *connect.Request[api.GetBarChartRequest]) (*connect.Response[api.GetBarChartResponse], error) {
	userID, err := requireUser(ctx)
	if err != nil {
		return nil, fail("GetBarChart", err)
	}
	slog.Info("GetBarChart request received", "user_id", userID, "category_id", req.Msg.CategoryId)

	snap, err := s.budget.Snapshot(ctx, userID)
	if err != nil {
		return nil, fail("GetBarChart", err, "user_id", userID)
	}
	rows, err := barChart(snap, req.Msg.CategoryId)
	if err != nil {
		return nil, fail("GetBarChart", err, "category_id", req.Msg.CategoryId)
	}

	return connect.NewResponse(&api.GetBarChartResponse{Rows: toAPIBarRows(rows)}), nil
}

// GetBreakdown returns pie data across categories or one category's subcategories.
func (s *BudgetService) GetBreakdown(ctx context.Context, req *connect.Request[api.GetBreakdownRequest]) (*connect.Response[api.GetBreakdownResponse], error) {
	userID, err := requireUser(ctx)
	if err != nil {
		return nil, fail("GetBreakdown", err)
	}
	slog.Info("GetBreakdown request received",
		"user_id", userID,
		"year", req.Msg.Year,
		"month", req.Msg.Month,
		"category_id", req.Msg.CategoryId,
	)

	snap, err := s.budget.Snapshot(ctx, userID)
	if err != nil {
		return nil, fail("GetBreakdown", err, "user_id", userID)
	}
	view, err := breakdown(snap, req.Msg.Year, req.Msg.Month, req.Msg.CategoryId)
	if err != nil {
		return nil, fail("GetBreakdown", err, "category_id", req.Msg.CategoryId)
	}

	return connect.NewResponse(toAPIBreakdown(view)), nil
}

// ExportBackup returns the caller's budget as a version 1 backup document.
func (s *BudgetService) ExportBackup(ctx context.Context, req *connect.Request[api.ExportBackupRequest]) (*connect.Response[api.ExportBackupResponse], error) {
	userID, err := requireUser(ctx)
	if err != nil {
		return nil, fail("ExportBackup", err)
	}
	slog.Info("ExportBackup request received", "user_id", userID)

	env, err := s.budget.Export(ctx, userID)
	if err != nil {
		return nil, fail("ExportBackup", err, "user_id", userID)
	}
	var buf bytes.Buffer
	if err := backup.Encode(&buf, env); err != nil {
		return nil, fail("ExportBackup", err, "user_id", userID)
	}

	slog.Info("ExportBackup successful", "categories", len(env.Categories), "entries", len(env.Entries))

	return connect.NewResponse(&api.ExportBackupResponse{
		FileName: backupFileName(s.budget.Today()),
		Backup:   buf.Bytes(),
	}), nil
}

// ImportBackup replaces the caller's budget with a backup document. A
// document that fails validation is rejected before anything is written.
// Once writing starts the import is best effort; the first failure is
// returned in the response alongside the counts.
func (s *BudgetService) ImportBackup(ctx context.Context, req *connect.Request[api.ImportBackupRequest]) (*connect.Response[api.ImportBackupResponse], error) {
	userID, err := requireUser(ctx)
	if err != nil {
		return nil, fail("ImportBackup", err)
	}
	slog.Info("ImportBackup request received", "user_id", userID, "size", len(req.Msg.Backup))

	env, err := backup.Decode(bytes.NewReader(req.Msg.Backup))
	if err != nil {
		return nil, fail("ImportBackup", err, "user_id", userID)
	}

	res, err := s.budget.Import(ctx, userID, env, func(written, total int) {
		slog.Debug("Import progress", "user_id", userID, "written", written, "total", total)
	})
	resp := &api.ImportBackupResponse{
		Categories: res.Categories,
		Entries:    res.Entries,
		Failed:     res.Failed,
	}
	if err != nil {
		resp.Error = err.Error()
	}

	slog.Info("ImportBackup finished", "user_id", userID, "written", res.Written(), "failed", res.Failed)

	return connect.NewResponse(resp), nil
}

// filterEntries narrows entries by year, month and category, newest first.
func filterEntries(entries []models.Entry, year, month int, categoryID string) ([]models.Entry, error) {
	switch {
	case month < 0 || month > 12:
		return nil, badRequest("month %d out of range", month)
	case month > 0 && year <= 0:
		return nil, badRequest("month requires a year")
	case year < 0:
		return nil, badRequest("year %d out of range", year)
	}

	var out []models.Entry
	switch {
	case year == 0:
		out = stats.NewestFirst(entries)
	case month == 0:
		out = stats.EntriesForYear(entries, year)
	default:
		out = stats.EntriesForMonth(entries, year, time.Month(month))
	}
	if categoryID != "" {
		out = stats.EntriesForCategory(out, categoryID)
	}
	return out, nil
}

func requireMonth(year, month int) (stats.Month, error) {
	if year <= 0 || month < 1 || month > 12 {
		return stats.Month{}, badRequest("year and month (1-12) are required, got %d-%d", year, month)
	}
	return stats.Month{Year: year, Month: time.Month(month)}, nil
}

func barChart(snap *budget.Snapshot, categoryID string) ([]stats.BarRow, error) {
	if categoryID != "" {
		if _, ok := snap.Category(categoryID); !ok {
			return nil, fmt.Errorf("category %q: %w", categoryID, errCategoryNotFound)
		}
	}
	return stats.BarChart(snap.Categories, snap.Entries, categoryID), nil
}

func breakdown(snap *budget.Snapshot, year, month int, categoryID string) (stats.BreakdownView, error) {
	entries, err := filterEntries(snap.Entries, year, month, "")
	if err != nil {
		return stats.BreakdownView{}, err
	}
	if categoryID == "" {
		return stats.CategoryBreakdown(snap.Categories, entries), nil
	}
	category, ok := snap.Category(categoryID)
	if !ok {
		return stats.BreakdownView{}, fmt.Errorf("category %q: %w", categoryID, errCategoryNotFound)
	}
	return stats.SubcategoryBreakdown(category, entries), nil
}

func backupFileName(today models.Date) string {
	return fmt.Sprintf("budget_backup_%s.json", today)
}
