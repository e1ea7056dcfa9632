package service

import (
	"context"
	"log/slog"

	"connectrpc.com/connect"
	"google.golang.org/protobuf/types/known/emptypb"

	"github.com/mmynk/pocketbook/internal/models"
	"github.com/mmynk/pocketbook/internal/symptom"
	"github.com/mmynk/pocketbook/pkg/api"
	"github.com/mmynk/pocketbook/pkg/api/apiconnect"
)

// SymptomService implements the Connect SymptomService.
type SymptomService struct {
	apiconnect.UnimplementedSymptomServiceHandler
	diary *symptom.Service
}

// NewSymptomService creates a new SymptomService over the diary domain service.
func NewSymptomService(svc *symptom.Service) *SymptomService {
	return &SymptomService{diary: svc}
}

// GetDiary returns every symptom, log entry and note of the caller.
func (s *SymptomService) GetDiary(ctx context.Context, req *connect.Request[api.GetDiaryRequest]) (*connect.Response[api.GetDiaryResponse], error) {
	userID, err := requireUser(ctx)
	if err != nil {
		return nil, fail("GetDiary", err)
	}
	slog.Info("GetDiary request received", "user_id", userID)

	diary, err := s.diary.Snapshot(ctx, userID)
	if err != nil {
		return nil, fail("GetDiary", err, "user_id", userID)
	}

	resp := &api.GetDiaryResponse{
		Symptoms: make([]*api.Symptom, len(diary.Symptoms)),
		Entries:  make([]*api.SymptomEntry, len(diary.Entries)),
		Notes:    make([]*api.DailyNote, len(diary.Notes)),
	}
	for i, sym := range diary.Symptoms {
		resp.Symptoms[i] = toAPISymptom(sym)
	}
	for i, e := range diary.Entries {
		resp.Entries[i] = toAPISymptomEntry(e)
	}
	for i, n := range diary.Notes {
		resp.Notes[i] = &api.DailyNote{Date: n.Date.String(), Note: n.Note}
	}

	slog.Info("GetDiary successful",
		"symptoms", len(resp.Symptoms),
		"entries", len(resp.Entries),
		"notes", len(resp.Notes),
	)

	return connect.NewResponse(resp), nil
}

// CreateSymptom starts tracking a symptom.
func (s *SymptomService) CreateSymptom(ctx context.Context, req *connect.Request[api.CreateSymptomRequest]) (*connect.Response[api.CreateSymptomResponse], error) {
	userID, err := requireUser(ctx)
	if err != nil {
		return nil, fail("CreateSymptom", err)
	}
	slog.Info("CreateSymptom request received", "user_id", userID, "name", req.Msg.Name)

	sym, err := s.diary.CreateSymptom(ctx, userID, req.Msg.Name)
	if err != nil {
		return nil, fail("CreateSymptom", err, "user_id", userID)
	}

	slog.Info("Symptom created", "symptom_id", sym.ID)

	return connect.NewResponse(&api.CreateSymptomResponse{Symptom: toAPISymptom(*sym)}), nil
}

// RenameSymptom changes a symptom's name.
func (s *SymptomService) RenameSymptom(ctx context.Context, req *connect.Request[api.RenameSymptomRequest]) (*connect.Response[emptypb.Empty], error) {
	userID, err := requireUser(ctx)
	if err != nil {
		return nil, fail("RenameSymptom", err)
	}
	slog.Info("RenameSymptom request received", "user_id", userID, "symptom_id", req.Msg.SymptomId)

	if err := s.diary.RenameSymptom(ctx, userID, req.Msg.SymptomId, req.Msg.Name); err != nil {
		return nil, fail("RenameSymptom", err, "symptom_id", req.Msg.SymptomId)
	}
	return connect.NewResponse(&emptypb.Empty{}), nil
}

// DeleteSymptom stops tracking a symptom and drops its log.
func (s *SymptomService) DeleteSymptom(ctx context.Context, req *connect.Request[api.DeleteSymptomRequest]) (*connect.Response[emptypb.Empty], error) {
	userID, err := requireUser(ctx)
	if err != nil {
		return nil, fail("DeleteSymptom", err)
	}
	slog.Info("DeleteSymptom request received", "user_id", userID, "symptom_id", req.Msg.SymptomId)

	if err := s.diary.DeleteSymptom(ctx, userID, req.Msg.SymptomId); err != nil {
		return nil, fail("DeleteSymptom", err, "symptom_id", req.Msg.SymptomId)
	}
	return connect.NewResponse(&emptypb.Empty{}), nil
}

// ReorderSymptoms applies a new display order.
func (s *SymptomService) ReorderSymptoms(ctx context.Context, req *connect.Request[api.ReorderSymptomsRequest]) (*connect.Response[emptypb.Empty], error) {
	userID, err := requireUser(ctx)
	if err != nil {
		return nil, fail("ReorderSymptoms", err)
	}
	slog.Info("ReorderSymptoms request received", "user_id", userID, "count", len(req.Msg.SymptomIds))

	if err := s.diary.ReorderSymptoms(ctx, userID, req.Msg.SymptomIds); err != nil {
		return nil, fail("ReorderSymptoms", err, "user_id", userID)
	}
	return connect.NewResponse(&emptypb.Empty{}), nil
}

// LogSymptom sets a symptom's severity on a day.
func (s *SymptomService) LogSymptom(ctx context.Context, req *connect.Request[api.LogSymptomRequest]) (*connect.Response[api.LogSymptomResponse], error) {
	userID, err := requireUser(ctx)
	if err != nil {
		return nil, fail("LogSymptom", err)
	}
	slog.Info("LogSymptom request received",
		"user_id", userID,
		"symptom_id", req.Msg.SymptomId,
		"date", req.Msg.Date,
		"severity", req.Msg.Severity,
	)

	date, err := parseDate(req.Msg.Date)
	if err != nil {
		return nil, fail("LogSymptom", err)
	}
	entry, err := s.diary.Log(ctx, userID, req.Msg.SymptomId, date, req.Msg.Severity)
	if err != nil {
		return nil, fail("LogSymptom", err, "symptom_id", req.Msg.SymptomId)
	}

	return connect.NewResponse(&api.LogSymptomResponse{Entry: toAPISymptomEntry(*entry)}), nil
}

// ClearSymptom removes a logged severity.
func (s *SymptomService) ClearSymptom(ctx context.Context, req *connect.Request[api.ClearSymptomRequest]) (*connect.Response[emptypb.Empty], error) {
	userID, err := requireUser(ctx)
	if err != nil {
		return nil, fail("ClearSymptom", err)
	}
	slog.Info("ClearSymptom request received", "user_id", userID, "symptom_id", req.Msg.SymptomId, "date", req.Msg.Date)

	date, err := requireDate(req.Msg.Date)
	if err != nil {
		return nil, fail("ClearSymptom", err)
	}
	if err := s.diary.Clear(ctx, userID, req.Msg.SymptomId, date); err != nil {
		return nil, fail("ClearSymptom", err, "symptom_id", req.Msg.SymptomId)
	}
	return connect.NewResponse(&emptypb.Empty{}), nil
}

// SetNote replaces a day's note.
func (s *SymptomService) SetNote(ctx context.Context, req *connect.Request[api.SetNoteRequest]) (*connect.Response[emptypb.Empty], error) {
	userID, err := requireUser(ctx)
	if err != nil {
		return nil, fail("SetNote", err)
	}
	slog.Info("SetNote request received", "user_id", userID, "date", req.Msg.Date, "length", len(req.Msg.Note))

	date, err := parseDate(req.Msg.Date)
	if err != nil {
		return nil, fail("SetNote", err)
	}
	if err := s.diary.SetNote(ctx, userID, date, req.Msg.Note); err != nil {
		return nil, fail("SetNote", err, "date", req.Msg.Date)
	}
	return connect.NewResponse(&emptypb.Empty{}), nil
}

func requireDate(s string) (models.Date, error) {
	if s == "" {
		return models.Date{}, badRequest("date is required")
	}
	return parseDate(s)
}
