package usecase

import (
	"context"
	"time"

	"github.com/digitalstock/digital-stock-api/internal/application/dto"
	"github.com/digitalstock/digital-stock-api/internal/domain/entity"
	"github.com/digitalstock/digital-stock-api/internal/domain/repository"
	"github.com/digitalstock/digital-stock-api/pkg/logger"
)

// AuditUseCase consulta de bitácora y registro de acciones de usuario.
type AuditUseCase struct {
	repo repository.AuditRepository
	log  *logger.Logger
}

// NewAuditUseCase construye el caso de uso.
func NewAuditUseCase(repo repository.AuditRepository, log *logger.Logger) *AuditUseCase {
	return &AuditUseCase{repo: repo, log: log}
}

// Record agrega una entrada a la bitácora. Mejor esfuerzo: un fallo se
// loguea y se descarta, nunca interrumpe la operación que lo originó.
func (uc *AuditUseCase) Record(ctx context.Context, actorID, actorName, action string) {
	entry := &entity.AuditEntry{
		ActorID:    actorID,
		ActorName:  actorName,
		OccurredAt: time.Now(),
		Action:     action,
	}
	if err := uc.repo.Append(ctx, entry); err != nil {
		uc.log.Warn().Err(err).Str("action", action).Msg("registrar en bitácora")
	}
}

// List consulta la bitácora con filtros de acción, búsqueda y límite.
func (uc *AuditUseCase) List(ctx context.Context, filter repository.AuditFilter) (*dto.AuditListResponse, error) {
	entries, err := uc.repo.List(ctx, filter)
	if err != nil {
		return nil, err
	}
	resp := &dto.AuditListResponse{Items: make([]dto.AuditEntryResponse, 0, len(entries))}
	for _, e := range entries {
		resp.Items = append(resp.Items, dto.AuditEntryResponse{
			ID:        e.ID,
			ActorID:   e.ActorID,
			ActorName: e.ActorName,
			Date:      e.OccurredAt.Format("2006-01-02"),
			Time:      e.OccurredAt.Format("15:04:05"),
			Action:    e.Action,
		})
	}
	resp.Count = len(resp.Items)
	return resp, nil
}

// Actions devuelve la lista de acciones distintas registradas.
func (uc *AuditUseCase) Actions(ctx context.Context) ([]string, error) {
	return uc.repo.Actions(ctx)
}
