package apiconnect

import (
	"context"
	"net/http"
	"strings"

	"connectrpc.com/connect"

	"github.com/mmynk/pocketbook/pkg/api"
)

// HealthServiceName is the fully-qualified name of the HealthService service.
const HealthServiceName = "pocketbook.v1.HealthService"

const (
	HealthServiceGetHealthRecordProcedure  = "/pocketbook.v1.HealthService/GetHealthRecord"
	HealthServiceSaveHealthRecordProcedure = "/pocketbook.v1.HealthService/SaveHealthRecord"
)

// HealthServiceHandler is implemented by the server side of HealthService.
type HealthServiceHandler interface {
	GetHealthRecord(context.Context, *connect.Request[api.GetHealthRecordRequest]) (*connect.Response[api.GetHealthRecordResponse], error)
	SaveHealthRecord(context.Context, *connect.Request[api.SaveHealthRecordRequest]) (*connect.Response[api.SaveHealthRecordResponse], error)
}

// NewHealthServiceHandler builds an HTTP handler from the service
// implementation.
func NewHealthServiceHandler(svc HealthServiceHandler, opts ...connect.HandlerOption) (string, http.Handler) {
	opts = handlerOptions(opts)
	handlers := map[string]http.Handler{
		HealthServiceGetHealthRecordProcedure:  connect.NewUnaryHandler(HealthServiceGetHealthRecordProcedure, svc.GetHealthRecord, opts...),
		HealthServiceSaveHealthRecordProcedure: connect.NewUnaryHandler(HealthServiceSaveHealthRecordProcedure, svc.SaveHealthRecord, opts...),
	}
	return "/" + HealthServiceName + "/", routeProcedures(handlers)
}

// HealthServiceClient is a client for HealthService.
type HealthServiceClient struct {
	getHealthRecord  *connect.Client[api.GetHealthRecordRequest, api.GetHealthRecordResponse]
	saveHealthRecord *connect.Client[api.SaveHealthRecordRequest, api.SaveHealthRecordResponse]
}

// NewHealthServiceClient constructs a client for HealthService.
func NewHealthServiceClient(httpClient connect.HTTPClient, baseURL string, opts ...connect.ClientOption) *HealthServiceClient {
	baseURL = strings.TrimRight(baseURL, "/")
	opts = clientOptions(opts)
	return &HealthServiceClient{
		getHealthRecord:  connect.NewClient[api.GetHealthRecordRequest, api.GetHealthRecordResponse](httpClient, baseURL+HealthServiceGetHealthRecordProcedure, opts...),
		saveHealthRecord: connect.NewClient[api.SaveHealthRecordRequest, api.SaveHealthRecordResponse](httpClient, baseURL+HealthServiceSaveHealthRecordProcedure, opts...),
	}
}

func (c *HealthServiceClient) GetHealthRecord(ctx context.Context, req *connect.Request[api.GetHealthRecordRequest]) (*connect.Response[api.GetHealthRecordResponse], error) {
	return c.getHealthRecord.CallUnary(ctx, req)
}

func (c *HealthServiceClient) SaveHealthRecord(ctx context.Context, req *connect.Request[api.SaveHealthRecordRequest]) (*connect.Response[api.SaveHealthRecordResponse], error) {
	return c.saveHealthRecord.CallUnary(ctx, req)
}

// UnimplementedHealthServiceHandler returns CodeUnimplemented from all methods.
type UnimplementedHealthServiceHandler struct{}

func (UnimplementedHealthServiceHandler) GetHealthRecord(context.Context, *connect.Request[api.GetHealthRecordRequest]) (*connect.Response[api.GetHealthRecordResponse], error) {
	return nil, unimplemented(HealthServiceGetHealthRecordProcedure)
}

func (UnimplementedHealthServiceHandler) SaveHealthRecord(context.Context, *connect.Request[api.SaveHealthRecordRequest]) (*connect.Response[api.SaveHealthRecordResponse], error) {
	return nil, unimplemented(HealthServiceSaveHealthRecordProcedure)
}
