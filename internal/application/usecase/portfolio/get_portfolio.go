package portfolio

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/zap"

	"github.com/khoahotran/portfolio-builder/internal/domain/portfolio"
	"github.com/khoahotran/portfolio-builder/pkg/apperror"
	"github.com/khoahotran/portfolio-builder/pkg/logger"
)

type GetPortfolioUseCase struct {
	store  portfolio.Store
	logger logger.Logger
}

func NewGetPortfolioUseCase(store portfolio.Store, log logger.Logger) *GetPortfolioUseCase {
	return &GetPortfolioUseCase{store: store, logger: log}
}

type GetPortfolioInput struct {
	OwnerID string
}

type GetPortfolioOutput struct {
	Document *portfolio.Document
	Storage  portfolio.Backend
}

func (uc *GetPortfolioUseCase) Execute(ctx context.Context, input GetPortfolioInput) (*GetPortfolioOutput, error) {
	ctx, span := tracer.Start(ctx, "GetPortfolio")
	defer span.End()

	raw := strings.TrimSpace(input.OwnerID)
	if raw == "" {
		return nil, apperror.NewAppError(apperror.ErrInvalidInput, "Owner ID is required", "owner id path parameter was empty", nil)
	}

	// Owner ids are always UUIDs; anything else cannot exist.
	ownerID, err := uuid.Parse(raw)
	if err != nil {
		return nil, apperror.NewNotFound("portfolio", raw)
	}
	span.SetAttributes(attribute.String("portfolio.owner_id", ownerID.String()))

	p, backend, err := uc.store.FindByOwner(ctx, ownerID)
	if err != nil {
		return nil, err
	}
	span.SetAttributes(attribute.String("portfolio.storage", string(backend)))
	uc.logger.Debug("Portfolio fetched",
		zap.String("owner_id", ownerID.String()),
		zap.String("storage", string(backend)),
	)
	return &GetPortfolioOutput{Document: portfolio.NewDocument(p), Storage: backend}, nil
}
