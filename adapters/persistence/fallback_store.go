package persistence

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/khoahotran/portfolio-builder/internal/domain/portfolio"
	"github.com/khoahotran/portfolio-builder/pkg/apperror"
	"github.com/khoahotran/portfolio-builder/pkg/logger"
)

// Pinger reports whether a backend is reachable.
type Pinger interface {
	Ping(ctx context.Context) error
}

// FallbackStore tries the durable repository first when one is configured and
// re-runs the call against the ephemeral one on any durable failure.
type FallbackStore struct {
	durable portfolio.Repository
	memory  portfolio.Repository
	logger  logger.Logger
}

// NewFallbackStore wires the selector. A nil durable repository means no
// database is configured and every call goes straight to memory.
func NewFallbackStore(durable, memory portfolio.Repository, log logger.Logger) *FallbackStore {
	return &FallbackStore{durable: durable, memory: memory, logger: log}
}

func (s *FallbackStore) DurableConfigured() bool {
	return s.durable != nil
}

func (s *FallbackStore) Save(ctx context.Context, p *portfolio.Portfolio) (portfolio.Backend, error) {
	ownerID := p.OwnerID().String()

	if s.DurableConfigured() {
		err := s.durable.Save(ctx, p)
		if err == nil {
			return portfolio.BackendDatabase, nil
		}
		s.logger.Warn("Database save failed, falling back to memory",
			zap.String("owner_id", ownerID), zap.Error(err))
	} else {
		s.logger.Debug("No database configured, using memory storage", zap.String("owner_id", ownerID))
	}

	if err := s.memory.Save(ctx, p); err != nil {
		return portfolio.BackendMemory, err
	}
	return portfolio.BackendMemory, nil
}

// FindByOwner reads from the database when configured. A database miss is
// also checked against memory, where writes land after a failed database save.
func (s *FallbackStore) FindByOwner(ctx context.Context, ownerID uuid.UUID) (*portfolio.Portfolio, portfolio.Backend, error) {
	if s.DurableConfigured() {
		p, err := s.durable.FindByOwner(ctx, ownerID)
		switch {
		case err == nil:
			return p, portfolio.BackendDatabase, nil
		case errors.Is(err, apperror.ErrNotFound):
			s.logger.Debug("Portfolio not in database, checking memory", zap.String("owner_id", ownerID.String()))
		default:
			s.logger.Warn("Database fetch failed, trying memory",
				zap.String("owner_id", ownerID.String()), zap.Error(err))
		}
	}

	p, err := s.memory.FindByOwner(ctx, ownerID)
	if err != nil {
		return nil, portfolio.BackendMemory, err
	}
	return p, portfolio.BackendMemory, nil
}

// StorageStatus is the diagnostic view of the durable backend.
type StorageStatus struct {
	Configured bool
	Reachable  bool
	Error      string
}

func (s *FallbackStore) Status(ctx context.Context) StorageStatus {
	if !s.DurableConfigured() {
		return StorageStatus{Error: "DATABASE_URL not configured"}
	}
	pinger, ok := s.durable.(Pinger)
	if !ok {
		return StorageStatus{Configured: true, Reachable: true}
	}
	if err := pinger.Ping(ctx); err != nil {
		return StorageStatus{Configured: true, Error: err.Error()}
	}
	return StorageStatus{Configured: true, Reachable: true}
}
