package apiconnect

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"connectrpc.com/connect"
	"google.golang.org/protobuf/types/known/emptypb"

	"github.com/mmynk/pocketbook/pkg/api"
)

// BudgetServiceName is the fully-qualified name of the BudgetService service.
const BudgetServiceName = "pocketbook.v1.BudgetService"

const (
	BudgetServiceListCategoriesProcedure    = "/pocketbook.v1.BudgetService/ListCategories"
	BudgetServiceCreateCategoryProcedure    = "/pocketbook.v1.BudgetService/CreateCategory"
	BudgetServiceRenameCategoryProcedure    = "/pocketbook.v1.BudgetService/RenameCategory"
	BudgetServiceDeleteCategoryProcedure    = "/pocketbook.v1.BudgetService/DeleteCategory"
	BudgetServiceReorderCategoriesProcedure = "/pocketbook.v1.BudgetService/ReorderCategories"
	BudgetServiceAddSubcategoryProcedure    = "/pocketbook.v1.BudgetService/AddSubcategory"
	BudgetServiceRenameSubcategoryProcedure = "/pocketbook.v1.BudgetService/RenameSubcategory"
	BudgetServiceDeleteSubcategoryProcedure = "/pocketbook.v1.BudgetService/DeleteSubcategory"
	BudgetServiceAddEntryProcedure          = "/pocketbook.v1.BudgetService/AddEntry"
	BudgetServiceUpdateEntryProcedure       = "/pocketbook.v1.BudgetService/UpdateEntry"
	BudgetServiceDeleteEntryProcedure       = "/pocketbook.v1.BudgetService/DeleteEntry"
	BudgetServiceListEntriesProcedure       = "/pocketbook.v1.BudgetService/ListEntries"
	BudgetServiceGetSummaryProcedure        = "/pocketbook.v1.BudgetService/GetSummary"
	BudgetServiceGetCalendarProcedure       = "/pocketbook.v1.BudgetService/GetCalendar"
	BudgetServiceGetBarChartProcedure       = "/pocketbook.v1.BudgetService/GetBarChart"
	BudgetServiceGetBreakdownProcedure      = "/pocketbook.v1.BudgetService/GetBreakdown"
	BudgetServiceExportBackupProcedure      = "/pocketbook.v1.BudgetService/ExportBackup"
	BudgetServiceImportBackupProcedure      = "/pocketbook.v1.BudgetService/ImportBackup"
)

// BudgetServiceHandler is implemented by the server side of BudgetService.
type BudgetServiceHandler interface {
	ListCategories(context.Context, *connect.Request[api.ListCategoriesRequest]) (*connect.Response[api.ListCategoriesResponse], error)
	CreateCategory(context.Context, *connect.Request[api.CreateCategoryRequest]) (*connect.Response[api.CreateCategoryResponse], error)
	RenameCategory(context.Context, *connect.Request[api.RenameCategoryRequest]) (*connect.Response[emptypb.Empty], error)
	DeleteCategory(context.Context, *connect.Request[api.DeleteCategoryRequest]) (*connect.Response[emptypb.Empty], error)
	ReorderCategories(context.Context, *connect.Request[api.ReorderCategoriesRequest]) (*connect.Response[emptypb.Empty], error)
	AddSubcategory(context.Context, *connect.Request[api.AddSubcategoryRequest]) (*connect.Response[emptypb.Empty], error)
	RenameSubcategory(context.Context, *connect.Request[api.RenameSubcategoryRequest]) (*connect.Response[emptypb.Empty], error)
	DeleteSubcategory(context.Context, *connect.Request[api.DeleteSubcategoryRequest]) (*connect.Response[emptypb.Empty], error)
	AddEntry(context.Context, *connect.Request[api.AddEntryRequest]) (*connect.Response[api.EntryResponse], error)
	UpdateEntry(context.Context, *connect.Request[api.UpdateEntryRequest]) (*connect.Response[api.EntryResponse], error)
	DeleteEntry(context.Context, *connect.Request[api.DeleteEntryRequest]) (*connect.Response[emptypb.Empty], error)
	ListEntries(context.Context, *connect.Request[api.ListEntriesRequest]) (*connect.Response[api.ListEntriesResponse], error)
	GetSummary(context.Context, *connect.Request[api.GetSummaryRequest]) (*connect.Response[api.GetSummaryResponse], error)
	GetCalendar(context.Context, *connect.Request[api.GetCalendarRequest]) (*connect.Response[api.GetCalendarResponse], error)
	GetBarChart(context.Context, *connect.Request[api.GetBarChartRequest]) (*connect.Response[api.GetBarChartResponse], error)
	GetBreakdown(context.Context, *connect.Request[api.GetBreakdownRequest]) (*connect.Response[api.GetBreakdownResponse], error)
	ExportBackup(context.Context, *connect.Request[api.ExportBackupRequest]) (*connect.Response[api.ExportBackupResponse], error)
	ImportBackup(context.Context, *connect.Request[api.ImportBackupRequest]) (*connect.Response[api.ImportBackupResponse], error)
}

// NewBudgetServiceHandler builds an HTTP handler from the service
// implementation. It returns the path on which to mount the handler and the
// handler itself.
func NewBudgetServiceHandler(svc BudgetServiceHandler, opts ...connect.HandlerOption) (string, http.Handler) {
	opts = handlerOptions(opts)
	handlers := map[string]http.Handler{
		BudgetServiceListCategoriesProcedure:    connect.NewUnaryHandler(BudgetServiceListCategoriesProcedure, svc.ListCategories, opts...),
		BudgetServiceCreateCategoryProcedure:    connect.NewUnaryHandler(BudgetServiceCreateCategoryProcedure, svc.CreateCategory, opts...),
		BudgetServiceRenameCategoryProcedure:    connect.NewUnaryHandler(BudgetServiceRenameCategoryProcedure, svc.RenameCategory, opts...),
		BudgetServiceDeleteCategoryProcedure:    connect.NewUnaryHandler(BudgetServiceDeleteCategoryProcedure, svc.DeleteCategory, opts...),
		BudgetServiceReorderCategoriesProcedure: connect.NewUnaryHandler(BudgetServiceReorderCategoriesProcedure, svc.ReorderCategories, opts...),
		BudgetServiceAddSubcategoryProcedure:    connect.NewUnaryHandler(BudgetServiceAddSubcategoryProcedure, svc.AddSubcategory, opts...),
		BudgetServiceRenameSubcategoryProcedure: connect.NewUnaryHandler(BudgetServiceRenameSubcategoryProcedure, svc.RenameSubcategory, opts...),
		BudgetServiceDeleteSubcategoryProcedure: connect.NewUnaryHandler(BudgetServiceDeleteSubcategoryProcedure, svc.DeleteSubcategory, opts...),
		BudgetServiceAddEntryProcedure:          connect.NewUnaryHandler(BudgetServiceAddEntryProcedure, svc.AddEntry, opts...),
		BudgetServiceUpdateEntryProcedure:       connect.NewUnaryHandler(BudgetServiceUpdateEntryProcedure, svc.UpdateEntry, opts...),
		BudgetServiceDeleteEntryProcedure:       connect.NewUnaryHandler(BudgetServiceDeleteEntryProcedure, svc.DeleteEntry, opts...),
		BudgetServiceListEntriesProcedure:       connect.NewUnaryHandler(BudgetServiceListEntriesProcedure, svc.ListEntries, opts...),
		BudgetServiceGetSummaryProcedure:        connect.NewUnaryHandler(BudgetServiceGetSummaryProcedure, svc.GetSummary, opts...),
		BudgetServiceGetCalendarProcedure:       connect.NewUnaryHandler(BudgetServiceGetCalendarProcedure, svc.GetCalendar, opts...),
		BudgetServiceGetBarChartProcedure:       connect.NewUnaryHandler(BudgetServiceGetBarChartProcedure, svc.GetBarChart, opts...),
		BudgetServiceGetBreakdownProcedure:      connect.NewUnaryHandler(BudgetServiceGetBreakdownProcedure, svc.GetBreakdown, opts...),
		BudgetServiceExportBackupProcedure:      connect.NewUnaryHandler(BudgetServiceExportBackupProcedure, svc.ExportBackup, opts...),
		BudgetServiceImportBackupProcedure:      connect.NewUnaryHandler(BudgetServiceImportBackupProcedure, svc.ImportBackup, opts...),
	}
	return "/" + BudgetServiceName + "/", routeProcedures(handlers)
}

// BudgetServiceClient is a client for BudgetService.
type BudgetServiceClient struct {
	listCategories    *connect.Client[api.ListCategoriesRequest, api.ListCategoriesResponse]
	createCategory    *connect.Client[api.CreateCategoryRequest, api.CreateCategoryResponse]
	renameCategory    *connect.Client[api.RenameCategoryRequest, emptypb.Empty]
	deleteCategory    *connect.Client[api.DeleteCategoryRequest, emptypb.Empty]
	reorderCategories *connect.Client[api.ReorderCategoriesRequest, emptypb.Empty]
	addSubcategory    *connect.Client[api.AddSubcategoryRequest, emptypb.Empty]
	renameSubcategory *connect.Client[api.RenameSubcategoryRequest, emptypb.Empty]
	deleteSubcategory *connect.Client[api.DeleteSubcategoryRequest, emptypb.Empty]
	addEntry          *connect.Client[api.AddEntryRequest, api.EntryResponse]
	updateEntry       *connect.Client[api.UpdateEntryRequest, api.EntryResponse]
	deleteEntry       *connect.Client[api.DeleteEntryRequest, emptypb.Empty]
	listEntries       *connect.Client[api.ListEntriesRequest, api.ListEntriesResponse]
	getSummary        *connect.Client[api.GetSummaryRequest, api.GetSummaryResponse]
	getCalendar       *connect.Client[api.GetCalendarRequest, api.GetCalendarResponse]
	getBarChart       *connect.Client[api.GetBarChartRequest, api.GetBarChartResponse]
	getBreakdown      *connect.Client[api.GetBreakdownRequest, api.GetBreakdownResponse]
	exportBackup      *connect.Client[api.ExportBackupRequest, api.ExportBackupResponse]
	importBackup      *connect.Client[api.ImportBackupRequest, api.ImportBackupResponse]
}

// NewBudgetServiceClient constructs a client for BudgetService. baseURL is the
// server root, e.g. http://localhost:8080.
func NewBudgetServiceClient(httpClient connect.HTTPClient, baseURL string, opts ...connect.ClientOption) *BudgetServiceClient {
	baseURL = strings.TrimRight(baseURL, "/")
	opts = clientOptions(opts)
	return &BudgetServiceClient{
		listCategories:    connect.NewClient[api.ListCategoriesRequest, api.ListCategoriesResponse](httpClient, baseURL+BudgetServiceListCategoriesProcedure, opts...),
		createCategory:    connect.NewClient[api.CreateCategoryRequest, api.CreateCategoryResponse](httpClient, baseURL+BudgetServiceCreateCategoryProcedure, opts...),
		renameCategory:    connect.NewClient[api.RenameCategoryRequest, emptypb.Empty](httpClient, baseURL+BudgetServiceRenameCategoryProcedure, opts...),
		deleteCategory:    connect.NewClient[api.DeleteCategoryRequest, emptypb.Empty](httpClient, baseURL+BudgetServiceDeleteCategoryProcedure, opts...),
		reorderCategories: connect.NewClient[api.ReorderCategoriesRequest, emptypb.Empty](httpClient, baseURL+BudgetServiceReorderCategoriesProcedure, opts...),
		addSubcategory:    connect.NewClient[api.AddSubcategoryRequest, emptypb.Empty](httpClient, baseURL+BudgetServiceAddSubcategoryProcedure, opts...),
		renameSubcategory: connect.NewClient[api.RenameSubcategoryRequest, emptypb.Empty](httpClient, baseURL+BudgetServiceRenameSubcategoryProcedure, opts...),
		deleteSubcategory: connect.NewClient[api.DeleteSubcategoryRequest, emptypb.Empty](httpClient, baseURL+BudgetServiceDeleteSubcategoryProcedure, opts...),
		addEntry:          connect.NewClient[api.AddEntryRequest, api.EntryResponse](httpClient, baseURL+BudgetServiceAddEntryProcedure, opts...),
		updateEntry:       connect.NewClient[api.UpdateEntryRequest, api.EntryResponse](httpClient, baseURL+BudgetServiceUpdateEntryProcedure, opts...),
		deleteEntry:       connect.NewClient[api.DeleteEntryRequest, emptypb.Empty](httpClient, baseURL+BudgetServiceDeleteEntryProcedure, opts...),
		listEntries:       connect.NewClient[api.ListEntriesRequest, api.ListEntriesResponse](httpClient, baseURL+BudgetServiceListEntriesProcedure, opts...),
		getSummary:        connect.NewClient[api.GetSummaryRequest, api.GetSummaryResponse](httpClient, baseURL+BudgetServiceGetSummaryProcedure, opts...),
		getCalendar:       connect.NewClient[api.GetCalendarRequest, api.GetCalendarResponse](httpClient, baseURL+BudgetServiceGetCalendarProcedure, opts...),
		getBarChart:       connect.NewClient[api.GetBarChartRequest, api.GetBarChartResponse](httpClient, baseURL+BudgetServiceGetBarChartProcedure, opts...),
		getBreakdown:      connect.NewClient[api.GetBreakdownRequest, api.GetBreakdownResponse](httpClient, baseURL+BudgetServiceGetBreakdownProcedure, opts...),
		exportBackup:      connect.NewClient[api.ExportBackupRequest, api.ExportBackupResponse](httpClient, baseURL+BudgetServiceExportBackupProcedure, opts...),
		importBackup:      connect.NewClient[api.ImportBackupRequest, api.ImportBackupResponse](httpClient, baseURL+BudgetServiceImportBackupProcedure, opts...),
	}
}

func (c *BudgetServiceClient) ListCategories(ctx context.Context, req *connect.Request[api.ListCategoriesRequest]) (*connect.Response[api.ListCategoriesResponse], error) {
	return c.listCategories.CallUnary(ctx, req)
}

func (c *BudgetServiceClient) CreateCategory(ctx context.Context, req *connect.Request[api.CreateCategoryRequest]) (*connect.Response[api.CreateCategoryResponse], error) {
	return c.createCategory.CallUnary(ctx, req)
}

func (c *BudgetServiceClient) RenameCategory(ctx context.Context, req *connect.Request[api.RenameCategoryRequest]) (*connect.Response[emptypb.Empty], error) {
	return c.renameCategory.CallUnary(ctx, req)
}

func (c *BudgetServiceClient) DeleteCategory(ctx context.Context, req *connect.Request[api.DeleteCategoryRequest]) (*connect.Response[emptypb.Empty], error) {
	return c.deleteCategory.CallUnary(ctx, req)
}

func (c *BudgetServiceClient) ReorderCategories(ctx context.Context, req *connect.Request[api.ReorderCategoriesRequest]) (*connect.Response[emptypb.Empty], error) {
	return c.reorderCategories.CallUnary(ctx, req)
}

func (c *BudgetServiceClient) AddSubcategory(ctx context.Context, req *connect.Request[api.AddSubcategoryRequest]) (*connect.Response[emptypb.Empty], error) {
	return c.addSubcategory.CallUnary(ctx, req)
}

func (c *BudgetServiceClient) RenameSubcategory(ctx context.Context, req *connect.Request[api.RenameSubcategoryRequest]) (*connect.Response[emptypb.Empty], error) {
	return c.renameSubcategory.CallUnary(ctx, req)
}

func (c *BudgetServiceClient) DeleteSubcategory(ctx context.Context, req *connect.Request[api.DeleteSubcategoryRequest]) (*connect.Response[emptypb.Empty], error) {
	return c.deleteSubcategory.CallUnary(ctx, req)
}

func (c *BudgetServiceClient) AddEntry(ctx context.Context, req *connect.Request[api.AddEntryRequest]) (*connect.Response[api.EntryResponse], error) {
	return c.addEntry.CallUnary(ctx, req)
}

func (c *BudgetServiceClient) UpdateEntry(ctx context.Context, req *connect.Request[api.UpdateEntryRequest]) (*connect.Response[api.EntryResponse], error) {
	return c.updateEntry.CallUnary(ctx, req)
}

func (c *BudgetServiceClient) DeleteEntry(ctx context.Context, req *connect.Request[api.DeleteEntryRequest]) (*connect.Response[emptypb.Empty], error) {
	return c.deleteEntry.CallUnary(ctx, req)
}

func (c *BudgetServiceClient) ListEntries(ctx context.Context, req *connect.Request[api.ListEntriesRequest]) (*connect.Response[api.ListEntriesResponse], error) {
	return c.listEntries.CallUnary(ctx, req)
}

func (c *BudgetServiceClient) GetSummary(ctx context.Context, req *connect.Request[api.GetSummaryRequest]) (*connect.Response[api.GetSummaryResponse], error) {
	return c.getSummary.CallUnary(ctx, req)
}

func (c *BudgetServiceClient) GetCalendar(ctx context.Context, req *connect.Request[api.GetCalendarRequest]) (*connect.Response[api.GetCalendarResponse], error) {
	return c.getCalendar.CallUnary(ctx, req)
}

func (c *BudgetServiceClient) GetBarChart(ctx context.Context, req *connect.Request[api.GetBarChartRequest]) (*connect.Response[api.GetBarChartResponse], error) {
	return c.getBarChart.CallUnary(ctx, req)
}

func (c *BudgetServiceClient) GetBreakdown(ctx context.Context, req *connect.Request[api.GetBreakdownRequest]) (*connect.Response[api.GetBreakdownResponse], error) {
	return c.getBreakdown.CallUnary(ctx, req)
}

func (c *BudgetServiceClient) ExportBackup(ctx context.Context, req *connect.Request[api.ExportBackupRequest]) (*connect.Response[api.ExportBackupResponse], error) {
	return c.exportBackup.CallUnary(ctx, req)
}

func (c *BudgetServiceClient) ImportBackup(ctx context.Context, req *connect.Request[api.ImportBackupRequest]) (*connect.Response[api.ImportBackupResponse], error) {
	return c.importBackup.CallUnary(ctx, req)
}

// UnimplementedBudgetServiceHandler returns CodeUnimplemented from all methods.
type UnimplementedBudgetServiceHandler struct{}

func unimplemented(procedure string) error {
	return connect.NewError(connect.CodeUnimplemented, errors.New(strings.TrimPrefix(procedure, "/")+" is not implemented"))
}

func (UnimplementedBudgetServiceHandler) ListCategories(context.Context, *connect.Request[api.ListCategoriesRequest]) (*connect.Response[api.ListCategoriesResponse], error) {
	return nil, unimplemented(BudgetServiceListCategoriesProcedure)
}

func (UnimplementedBudgetServiceHandler) CreateCategory(context.Context, *connect.Request[api.CreateCategoryRequest]) (*connect.Response[api.CreateCategoryResponse], error) {
	return nil, unimplemented(BudgetServiceCreateCategoryProcedure)
}

func (UnimplementedBudgetServiceHandler) RenameCategory(context.Context, *connect.Request[api.RenameCategoryRequest]) (*connect.Response[emptypb.Empty], error) {
	return nil, unimplemented(BudgetServiceRenameCategoryProcedure)
}

func (UnimplementedBudgetServiceHandler) DeleteCategory(context.Context, *connect.Request[api.DeleteCategoryRequest]) (*connect.Response[emptypb.Empty], error) {
	return nil, unimplemented(BudgetServiceDeleteCategoryProcedure)
}

func (UnimplementedBudgetServiceHandler) ReorderCategories(context.Context, *connect.Request[api.ReorderCategoriesRequest]) (*connect.Response[emptypb.Empty], error) {
	return nil, unimplemented(BudgetServiceReorderCategoriesProcedure)
}

func (UnimplementedBudgetServiceHandler) AddSubcategory(context.Context, *connect.Request[api.AddSubcategoryRequest]) (*connect.Response[emptypb.Empty], error) {
	return nil, unimplemented(BudgetServiceAddSubcategoryProcedure)
}

func (UnimplementedBudgetServiceHandler) RenameSubcategory(context.Context, *connect.Request[api.RenameSubcategoryRequest]) (*connect.Response[emptypb.Empty], error) {
	return nil, unimplemented(BudgetServiceRenameSubcategoryProcedure)
}

func (UnimplementedBudgetServiceHandler) DeleteSubcategory(context.Context, *connect.Request[api.DeleteSubcategoryRequest]) (*connect.Response[emptypb.Empty], error) {
	return nil, unimplemented(BudgetServiceDeleteSubcategoryProcedure)
}

func (UnimplementedBudgetServiceHandler) AddEntry(context.Context, *connect.Request[api.AddEntryRequest]) (*connect.Response[api.EntryResponse], error) {
	return nil, unimplemented(BudgetServiceAddEntryProcedure)
}

func (UnimplementedBudgetServiceHandler) UpdateEntry(context.Context, *connect.Request[api.UpdateEntryRequest]) (*connect.Response[api.EntryResponse], error) {
	return nil, unimplemented(BudgetServiceUpdateEntryProcedure)
}

func (UnimplementedBudgetServiceHandler) DeleteEntry(context.Context, *connect.Request[api.DeleteEntryRequest]) (*connect.Response[emptypb.Empty], error) {
	return nil, unimplemented(BudgetServiceDeleteEntryProcedure)
}

func (UnimplementedBudgetServiceHandler) ListEntries(context.Context, *connect.Request[api.ListEntriesRequest]) (*connect.Response[api.ListEntriesResponse], error) {
	return nil, unimplemented(BudgetServiceListEntriesProcedure)
}

func (UnimplementedBudgetServiceHandler) GetSummary(context.Context, *connect.Request[api.GetSummaryRequest]) (*connect.Response[api.GetSummaryResponse], error) {
	return nil, unimplemented(BudgetServiceGetSummaryProcedure)
}

func (UnimplementedBudgetServiceHandler) GetCalendar(context.Context, *connect.Request[api.GetCalendarRequest]) (*connect.Response[api.GetCalendarResponse], error) {
	return nil, unimplemented(BudgetServiceGetCalendarProcedure)
}

func (UnimplementedBudgetServiceHandler) GetBarChart(context.Context, *connect.Request[api.GetBarChartRequest]) (*connect.Response[api.GetBarChartResponse], error) {
	return nil, unimplemented(BudgetServiceGetBarChartProcedure)
}

func (UnimplementedBudgetServiceHandler) GetBreakdown(context.Context, *connect.Request[api.GetBreakdownRequest]) (*connect.Response[api.GetBreakdownResponse], error) {
	return nil, unimplemented(BudgetServiceGetBreakdownProcedure)
}

func (UnimplementedBudgetServiceHandler) ExportBackup(context.Context, *connect.Request[api.ExportBackupRequest]) (*connect.Response[api.ExportBackupResponse], error) {
	return nil, unimplemented(BudgetServiceExportBackupProcedure)
}

func (UnimplementedBudgetServiceHandler) ImportBackup(context.Context, *connect.Request[api.ImportBackupRequest]) (*connect.Response[api.ImportBackupResponse], error) {
	return nil, unimplemented(BudgetServiceImportBackupProcedure)
}

func routeProcedures(handlers map[string]http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		h, ok := handlers[r.URL.Path]
		if !ok {
			http.NotFound(w, r)
			return
		}
		h.ServeHTTP(w, r)
	})
}
