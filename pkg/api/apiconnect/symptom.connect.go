package apiconnect

import (
	"context"
	"net/http"
	"strings"

	"connectrpc.com/connect"
	"google.golang.org/protobuf/types/known/emptypb"

	"github.com/mmynk/pocketbook/pkg/api"
)

// SymptomServiceName is the fully-qualified name of the SymptomService service.
const SymptomServiceName = "pocketbook.v1.SymptomService"

const (
	SymptomServiceGetDiaryProcedure        = "/pocketbook.v1.SymptomService/GetDiary"
	SymptomServiceCreateSymptomProcedure   = "/pocketbook.v1.SymptomService/CreateSymptom"
	SymptomServiceRenameSymptomProcedure   = "/pocketbook.v1.SymptomService/RenameSymptom"
	SymptomServiceDeleteSymptomProcedure   = "/pocketbook.v1.SymptomService/DeleteSymptom"
	SymptomServiceReorderSymptomsProcedure = "/pocketbook.v1.SymptomService/ReorderSymptoms"
	SymptomServiceLogSymptomProcedure      = "/pocketbook.v1.SymptomService/LogSymptom"
	SymptomServiceClearSymptomProcedure    = "/pocketbook.v1.SymptomService/ClearSymptom"
	SymptomServiceSetNoteProcedure         = "/pocketbook.v1.SymptomService/SetNote"
)

// SymptomServiceHandler is implemented by the server side of SymptomService.
type SymptomServiceHandler interface {
	GetDiary(context.Context, *connect.Request[api.GetDiaryRequest]) (*connect.Response[api.GetDiaryResponse], error)
	CreateSymptom(context.Context, *connect.Request[api.CreateSymptomRequest]) (*connect.Response[api.CreateSymptomResponse], error)
	RenameSymptom(context.Context, *connect.Request[api.RenameSymptomRequest]) (*connect.Response[emptypb.Empty], error)
	DeleteSymptom(context.Context, *connect.Request[api.DeleteSymptomRequest]) (*connect.Response[emptypb.Empty], error)
	ReorderSymptoms(context.Context, *connect.Request[api.ReorderSymptomsRequest]) (*connect.Response[emptypb.Empty], error)
	LogSymptom(context.Context, *connect.Request[api.LogSymptomRequest]) (*connect.Response[api.LogSymptomResponse], error)
	ClearSymptom(context.Context, *connect.Request[api.ClearSymptomRequest]) (*connect.Response[emptypb.Empty], error)
	SetNote(context.Context, *connect.Request[api.SetNoteRequest]) (*connect.Response[emptypb.Empty], error)
}

// NewSymptomServiceHandler builds an HTTP handler from the service
// implementation.
func NewSymptomServiceHandler(svc SymptomServiceHandler, opts ...connect.HandlerOption) (string, http.Handler) {
	opts = handlerOptions(opts)
	handlers := map[string]http.Handler{
		SymptomServiceGetDiaryProcedure:        connect.NewUnaryHandler(SymptomServiceGetDiaryProcedure, svc.GetDiary, opts...),
		SymptomServiceCreateSymptomProcedure:   connect.NewUnaryHandler(SymptomServiceCreateSymptomProcedure, svc.CreateSymptom, opts...),
		SymptomServiceRenameSymptomProcedure:   connect.NewUnaryHandler(SymptomServiceRenameSymptomProcedure, svc.RenameSymptom, opts...),
		SymptomServiceDeleteSymptomProcedure:   connect.NewUnaryHandler(SymptomServiceDeleteSymptomProcedure, svc.DeleteSymptom, opts...),
		SymptomServiceReorderSymptomsProcedure: connect.NewUnaryHandler(SymptomServiceReorderSymptomsProcedure, svc.ReorderSymptoms, opts...),
		SymptomServiceLogSymptomProcedure:      connect.NewUnaryHandler(SymptomServiceLogSymptomProcedure, svc.LogSymptom, opts...),
		SymptomServiceClearSymptomProcedure:    connect.NewUnaryHandler(SymptomServiceClearSymptomProcedure, svc.ClearSymptom, opts...),
		SymptomServiceSetNoteProcedure:         connect.NewUnaryHandler(SymptomServiceSetNoteProcedure, svc.SetNote, opts...),
	}
	return "/" + SymptomServiceName + "/", routeProcedures(handlers)
}

// SymptomServiceClient is a client for SymptomService.
type SymptomServiceClient struct {
	getDiary        *connect.Client[api.GetDiaryRequest, api.GetDiaryResponse]
	createSymptom   *connect.Client[api.CreateSymptomRequest, api.CreateSymptomResponse]
	renameSymptom   *connect.Client[api.RenameSymptomRequest, emptypb.Empty]
	deleteSymptom   *connect.Client[api.DeleteSymptomRequest, emptypb.Empty]
	reorderSymptoms *connect.Client[api.ReorderSymptomsRequest, emptypb.Empty]
	logSymptom      *connect.Client[api.LogSymptomRequest, api.LogSymptomResponse]
	clearSymptom    *connect.Client[api.ClearSymptomRequest, emptypb.Empty]
	setNote         *connect.Client[api.SetNoteRequest, emptypb.Empty]
}

// NewSymptomServiceClient constructs a client for SymptomService.
func NewSymptomServiceClient(httpClient connect.HTTPClient, baseURL string, opts ...connect.ClientOption) *SymptomServiceClient {
	baseURL = strings.TrimRight(baseURL, "/")
	opts = clientOptions(opts)
	return &SymptomServiceClient{
		getDiary:        connect.NewClient[api.GetDiaryRequest, api.GetDiaryResponse](httpClient, baseURL+SymptomServiceGetDiaryProcedure, opts...),
		createSymptom:   connect.NewClient[api.CreateSymptomRequest, api.CreateSymptomResponse](httpClient, baseURL+SymptomServiceCreateSymptomProcedure, opts...),
		renameSymptom:   connect.NewClient[api.RenameSymptomRequest, emptypb.Empty](httpClient, baseURL+SymptomServiceRenameSymptomProcedure, opts...),
		deleteSymptom:   connect.NewClient[api.DeleteSymptomRequest, emptypb.Empty](httpClient, baseURL+SymptomServiceDeleteSymptomProcedure, opts...),
		reorderSymptoms: connect.NewClient[api.ReorderSymptomsRequest, emptypb.Empty](httpClient, baseURL+SymptomServiceReorderSymptomsProcedure, opts...),
		logSymptom:      connect.NewClient[api.LogSymptomRequest, api.LogSymptomResponse](httpClient, baseURL+SymptomServiceLogSymptomProcedure, opts...),
		clearSymptom:    connect.NewClient[api.ClearSymptomRequest, emptypb.Empty](httpClient, baseURL+SymptomServiceClearSymptomProcedure, opts...),
		setNote:         connect.NewClient[api.SetNoteRequest, emptypb.Empty](httpClient, baseURL+SymptomServiceSetNoteProcedure, opts...),
	}
}

func (c *SymptomServiceClient) GetDiary(ctx context.Context, req *connect.Request[api.GetDiaryRequest]) (*connect.Response[api.GetDiaryResponse], error) {
	return c.getDiary.CallUnary(ctx, req)
}

func (c *SymptomServiceClient) CreateSymptom(ctx context.Context, req *connect.Request[api.CreateSymptomRequest]) (*connect.Response[api.CreateSymptomResponse], error) {
	return c.createSymptom.CallUnary(ctx, req)
}

func (c *SymptomServiceClient) RenameSymptom(ctx context.Context, req *connect.Request[api.RenameSymptomRequest]) (*connect.Response[emptypb.Empty], error) {
	return c.renameSymptom.CallUnary(ctx, req)
}

func (c *SymptomServiceClient) DeleteSymptom(ctx context.Context, req *connect.Request[api.DeleteSymptomRequest]) (*connect.Response[emptypb.Empty], error) {
	return c.deleteSymptom.CallUnary(ctx, req)
}

func (c *SymptomServiceClient) ReorderSymptoms(ctx context.Context, req *connect.Request[api.ReorderSymptomsRequest]) (*connect.Response[emptypb.Empty], error) {
	return c.reorderSymptoms.CallUnary(ctx, req)
}

func (c *SymptomServiceClient) LogSymptom(ctx context.Context, req *connect.Request[api.LogSymptomRequest]) (*connect.Response[api.LogSymptomResponse], error) {
	return c.logSymptom.CallUnary(ctx, req)
}

func (c *SymptomServiceClient) ClearSymptom(ctx context.Context, req *connect.Request[api.ClearSymptomRequest]) (*connect.Response[emptypb.Empty], error) {
	return c.clearSymptom.CallUnary(ctx, req)
}

func (c *SymptomServiceClient) SetNote(ctx context.Context, req *connect.Request[api.SetNoteRequest]) (*connect.Response[emptypb.Empty], error) {
	return c.setNote.CallUnary(ctx, req)
}

// UnimplementedSymptomServiceHandler returns CodeUnimplemented from all methods.
type UnimplementedSymptomServiceHandler struct{}

func (UnimplementedSymptomServiceHandler) GetDiary(context.Context, *connect.Request[api.GetDiaryRequest]) (*connect.Response[api.GetDiaryResponse], error) {
	return nil, unimplemented(SymptomServiceGetDiaryProcedure)
}

func (UnimplementedSymptomServiceHandler) CreateSymptom(context.Context, *connect.Request[api.CreateSymptomRequest]) (*connect.Response[api.CreateSymptomResponse], error) {
	return nil, unimplemented(SymptomServiceCreateSymptomProcedure)
}

func (UnimplementedSymptomServiceHandler) RenameSymptom(context.Context, *connect.Request[api.RenameSymptomRequest]) (*connect.Response[emptypb.Empty], error) {
	return nil, unimplemented(SymptomServiceRenameSymptomProcedure)
}

func (UnimplementedSymptomServiceHandler) DeleteSymptom(context.Context, *connect.Request[api.DeleteSymptomRequest]) (*connect.Response[emptypb.Empty], error) {
	return nil, unimplemented(SymptomServiceDeleteSymptomProcedure)
}

func (UnimplementedSymptomServiceHandler) ReorderSymptoms(context.Context, *connect.Request[api.ReorderSymptomsRequest]) (*connect.Response[emptypb.Empty], error) {
	return nil, unimplemented(SymptomServiceReorderSymptomsProcedure)
}

func (UnimplementedSymptomServiceHandler) LogSymptom(context.Context, *connect.Request[api.LogSymptomRequest]) (*connect.Response[api.LogSymptomResponse], error) {
	return nil, unimplemented(SymptomServiceLogSymptomProcedure)
}

func (UnimplementedSymptomServiceHandler) ClearSymptom(context.Context, *connect.Request[api.ClearSymptomRequest]) (*connect.Response[emptypb.Empty], error) {
	return nil, unimplemented(SymptomServiceClearSymptomProcedure)
}

func (UnimplementedSymptomServiceHandler) SetNote(context.Context, *connect.Request[api.SetNoteRequest]) (*connect.Response[emptypb.Empty], error) {
	return nil, unimplemented(SymptomServiceSetNoteProcedure)
}
