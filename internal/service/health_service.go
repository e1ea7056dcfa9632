package service

import (
	"context"
	"log/slog"

	"connectrpc.com/connect"

	"github.com/mmynk/pocketbook/internal/health"
	"github.com/mmynk/pocketbook/internal/models"
	"github.com/mmynk/pocketbook/pkg/api"
	"github.com/mmynk/pocketbook/pkg/api/apiconnect"
)

// HealthService implements the Connect HealthService.
type HealthService struct {
	apiconnect.UnimplementedHealthServiceHandler
	health *health.Service
}

// NewHealthService creates a new HealthService over the health domain service.
func NewHealthService(svc *health.Service) *HealthService {
	return &HealthService{health: svc}
}

// GetHealthRecord returns the caller's medications, diagnoses, providers and
// explainers.
func (s *HealthService) GetHealthRecord(ctx context.Context, req *connect.Request[api.GetHealthRecordRequest]) (*connect.Response[api.GetHealthRecordResponse], error) {
	userID, err := requireUser(ctx)
	if err != nil {
		return nil, fail("GetHealthRecord", err)
	}
	slog.Info("GetHealthRecord request received", "user_id", userID)

	record, err := s.health.Record(ctx, userID)
	if err != nil {
		return nil, fail("GetHealthRecord", err, "user_id", userID)
	}
	return connect.NewResponse(&api.GetHealthRecordResponse{Record: toAPIHealthRecord(record)}), nil
}

// SaveHealthRecord replaces the caller's health record.
func (s *HealthService) SaveHealthRecord(ctx context.Context, req *connect.Request[api.SaveHealthRecordRequest]) (*connect.Response[api.SaveHealthRecordResponse], error) {
	userID, err := requireUser(ctx)
	if err != nil {
		return nil, fail("SaveHealthRecord", err)
	}
	if req.Msg.Record == nil {
		return nil, fail("SaveHealthRecord", badRequest("record is required"))
	}
	slog.Info("SaveHealthRecord request received",
		"user_id", userID,
		"medications", len(req.Msg.Record.Medications),
		"providers", len(req.Msg.Record.Providers),
	)

	record := fromAPIHealthRecord(req.Msg.Record)
	if err := s.health.Save(ctx, userID, record); err != nil {
		return nil, fail("SaveHealthRecord", err, "user_id", userID)
	}
	return connect.NewResponse(&api.SaveHealthRecordResponse{Record: toAPIHealthRecord(record)}), nil
}

func toAPIHealthRecord(r *models.HealthRecord) *api.HealthRecord {
	out := &api.HealthRecord{
		Medications: make([]*api.Medication, len(r.Medications)),
		Diagnoses:   make([]*api.Diagnosis, len(r.Diagnoses)),
		Providers:   make([]*api.Provider, len(r.Providers)),
		Explainers:  make([]*api.Explainer, len(r.Explainers)),
		UpdatedAt:   r.UpdatedAt,
	}
	for i, m := range r.Medications {
		out.Medications[i] = &api.Medication{
			Id:               m.ID,
			Name:             m.Name,
			Dose:             m.Dose,
			Purpose:          m.Purpose,
			StartDate:        m.StartDate,
			DateApproximate:  m.DateApproximate,
			Notes:            m.Notes,
			ConcernTags:      m.ConcernTags,
			ExcludeProviders: m.ExcludeProviders,
		}
	}
	for i, d := range r.Diagnoses {
		out.Diagnoses[i] = &api.Diagnosis{
			Id:            d.ID,
			Name:          d.Name,
			Status:        d.Status,
			DiagnosedDate: d.DiagnosedDate,
			Notes:         d.Notes,
			ConcernTags:   d.ConcernTags,
		}
	}
	for i, p := range r.Providers {
		out.Providers[i] = &api.Provider{
			Id:               p.ID,
			Name:             p.Name,
			ConcernTags:      p.ConcernTags,
			ExecutiveSummary: p.ExecutiveSummary,
			VisitNotes:       p.VisitNotes,
		}
	}
	for i, e := range r.Explainers {
		out.Explainers[i] = &api.Explainer{Id: e.ID, Title: e.Title, Content: e.Content, Long: e.Long}
	}
	return out
}

// fromAPIHealthRecord skips nil list items.
func fromAPIHealthRecord(r *api.HealthRecord) *models.HealthRecord {
	out := &models.HealthRecord{}
	for _, m := range r.Medications {
		if m == nil {
			continue
		}
		out.Medications = append(out.Medications, models.Medication{
			ID:               m.Id,
			Name:             m.Name,
			Dose:             m.Dose,
			Purpose:          m.Purpose,
			StartDate:        m.StartDate,
			DateApproximate:  m.DateApproximate,
			Notes:            m.Notes,
			ConcernTags:      m.ConcernTags,
			ExcludeProviders: m.ExcludeProviders,
		})
	}
	for _, d := range r.Diagnoses {
		if d == nil {
			continue
		}
		out.Diagnoses = append(out.Diagnoses, models.Diagnosis{
			ID:            d.Id,
			Name:          d.Name,
			Status:        d.Status,
			DiagnosedDate: d.DiagnosedDate,
			Notes:         d.Notes,
			ConcernTags:   d.ConcernTags,
		})
	}
	for _, p := range r.Providers {
		if p == nil {
			continue
		}
		out.Providers = append(out.Providers, models.Provider{
			ID:               p.Id,
			Name:             p.Name,
			ConcernTags:      p.ConcernTags,
			ExecutiveSummary: p.ExecutiveSummary,
			VisitNotes:       p.VisitNotes,
		})
	}
	for _, e := range r.Explainers {
		if e == nil {
			continue
		}
		out.Explainers = append(out.Explainers, models.Explainer{ID: e.Id, Title: e.Title, Content: e.Content, Long: e.Long})
	}
	return out
}
