package app

import (
	"context"

	"github.com/alexandroaldente/events-bot/internal/domain"
)

type CatalogRepository interface {
	ListEvents(ctx context.Context) ([]domain.Event, error)
	ListSlots(ctx context.Context, eventID int64) ([]domain.Slot, error)
	GetSlotDetails(ctx context.Context, slotID int64) (domain.SlotDetails, error)
}

// CatalogService serves the read paths of the selection flow. No locking:
// listings may trail the latest committed reservation by design.
type CatalogService struct {
	repo CatalogRepository
}

func NewCatalogService(repo CatalogRepository) *CatalogService {
	return &CatalogService{repo: repo}
}

func (s *CatalogService) ListEvents(ctx context.Context) ([]domain.Event, error) {
	return s.repo.ListEvents(ctx)
}

func (s *CatalogService) ListSlots(ctx context.Context, eventID int64) ([]domain.Slot, error) {
	if eventID <= 0 {
		return nil, nil
	}
	return s.repo.ListSlots(ctx, eventID)
}

func (s *CatalogService) GetSlot(ctx context.Context, slotID int64) (domain.SlotDetails, error) {
	if slotID <= 0 {
		return domain.SlotDetails{}, domain.ErrSlotNotFound
	}
	return s.repo.GetSlotDetails(ctx, slotID)
}
