package service

import (
	"context"
	"fmt"

	"cocodile/internal/accesscode"
	"cocodile/internal/model"
	"cocodile/internal/repository"

	"github.com/rs/zerolog"
)

// wholesalerService implements WholesalerService.
type wholesalerService struct {
	wholesalerRepo repository.WholesalerRepository
	validator      accesscode.Validator
	logger         zerolog.Logger
}

// NewWholesalerService creates a new wholesaler service.
func NewWholesalerService(
	wholesalerRepo repository.WholesalerRepository,
	validator accesscode.Validator,
	logger zerolog.Logger,
) WholesalerService {
	return &wholesalerService{
		wholesalerRepo: wholesalerRepo,
		validator:      validator,
		logger:         logger.With().Str("service", "wholesaler").Logger(),
	}
}

// ValidateCode checks a wholesaler access code against the registry and
// resolves it to the wholesaler it belongs to.
func (s *wholesalerService) ValidateCode(ctx context.Context, code string) (*model.Wholesaler, error) {
	if err := s.validator.Validate(ctx, code); err != nil {
		s.logger.Debug().Str("code", code).Err(err).Msg("access code rejected")
		return nil, err
	}

	wholesaler, err := s.wholesalerRepo.GetByCode(ctx, code)
	if err != nil {
		s.logger.Error().Err(err).Msg("failed to resolve wholesaler by code")
		return nil, fmt.Errorf("failed to resolve wholesaler: %w", err)
	}

	if wholesaler == nil {
		s.logger.Warn().Str("code", code).Msg("access code valid but no wholesaler registered for it")
		return nil, model.ErrInvalidAccessCode
	}

	return wholesaler, nil
}
