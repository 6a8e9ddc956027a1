package accesscode

import (
	"context"
	"fmt"
	"sync"

	"cocodile/internal/model"

	"github.com/rs/zerolog"
)

// validator implements Validator with concurrent registry lookups.
type validator struct {
	codeSets []CodeSet
	minMatch int
	logger   zerolog.Logger
	// No mutex needed - code sets are read-only after initialization
}

// ValidatorConfig holds configuration for the access-code validator.
type ValidatorConfig struct {
	// FilePaths is the list of registry file paths to load.
	FilePaths []string

	// MinMatchCount is the minimum number of registry files a code must
	// appear in. Default: 1
	MinMatchCount int
}

// DefaultValidatorConfig returns the default validator configuration.
func DefaultValidatorConfig() *ValidatorConfig {
	return &ValidatorConfig{
		FilePaths: []string{
			"data/access-codes/registry.gz",
		},
		MinMatchCount: 1,
	}
}

// NewValidator creates a new access-code validator. It loads all registry
// files at initialization time.
func NewValidator(ctx context.Context, config *ValidatorConfig, loader Loader, logger zerolog.Logger) (Validator, error) {
	if config == nil {
		config = DefaultValidatorConfig()
	}
	minMatch := config.MinMatchCount
	if minMatch < 1 {
		minMatch = 1
	}

	logger = logger.With().Str("component", "accesscode-validator").Logger()

	logger.Info().
		Int("file_count", len(config.FilePaths)).
		Int("min_match_count", minMatch).
		Msg("initialising access-code validator")

	v := &validator{
		codeSets: make([]CodeSet, 0, len(config.FilePaths)),
		minMatch: minMatch,
		logger:   logger,
	}

	// Load all registry files concurrently
	type loadResult struct {
		index int
		set   CodeSet
		err   error
	}

	resultChan := make(chan loadResult, len(config.FilePaths))
	var wg sync.WaitGroup

	for i, filePath := range config.FilePaths {
		wg.Add(1)
		go func(index int, path string) {
			defer wg.Done()

			set, err := loader.Load(ctx, path)
			resultChan <- loadResult{
				index: index,
				set:   set,
				err:   err,
			}
		}(i, filePath)
	}

	wg.Wait()
	close(resultChan)

	results := make([]loadResult, len(config.FilePaths))
	for result := range resultChan {
		results[result.index] = result
	}

	for i, result := range results {
		if result.err != nil {
			logger.Error().
				Err(result.err).
				Str("file", config.FilePaths[i]).
				Msg("failed to load registry file")
			return nil, fmt.Errorf("failed to load registry file %s: %w", config.FilePaths[i], result.err)
		}
		v.codeSets = append(v.codeSets, result.set)
		logger.Info().
			Str("file", config.FilePaths[i]).
			Int("size", result.set.Size()).
			Msg("registry file loaded")
	}

	totalCodes := 0
	for _, set := range v.codeSets {
		totalCodes += set.Size()
	}

	logger.Info().
		Int("total_codes", totalCodes).
		Msg("access-code validator initialised successfully")

	return v, nil
}

// Validate checks if an access code is valid.
// A valid access code must:
// - Be between 6 and 16 characters in length
// - Appear in at least MinMatchCount registry files
func (v *validator) Validate(ctx context.Context, code string) error {
	// Validate length first (cheap check)
	if len(code) < 6 || len(code) > 16 {
		v.logger.Debug().
			Str("code", code).
			Int("length", len(code)).
			Msg("access code length invalid")
		return model.ErrInvalidAccessCode
	}

	matchCount := v.countMatches(ctx, code)

	if matchCount < v.minMatch {
		v.logger.Debug().
			Str("code", code).
			Int("match_count", matchCount).
			Msg("access code not found in sufficient registry files")
		return model.ErrInvalidAccessCode
	}

	v.logger.Debug().
		Str("code", code).
		Int("match_count", matchCount).
		Msg("access code validated successfully")

	return nil
}

// countMatches counts how many registry files contain the given code.
// Lookups run concurrently with early termination once enough matches are
// found.
func (v *validator) countMatches(ctx context.Context, code string) int {
	// Buffered channel prevents goroutine leaks on early termination
	resultChan := make(chan bool, len(v.codeSets))
	doneChan := make(chan struct{})
	defer close(doneChan)

	for _, set := range v.codeSets {
		go func(s CodeSet) {
			select {
			case <-doneChan:
				return
			case <-ctx.Done():
				return
			default:
			}

			found := s.Contains(code)

			select {
			case resultChan <- found:
			case <-doneChan:
				return
			case <-ctx.Done():
				return
			}
		}(set)
	}

	matches := 0
	checked := 0

	for checked < len(v.codeSets) {
		select {
		case found := <-resultChan:
			checked++
			if found {
				matches++
				if matches >= v.minMatch {
					return matches
				}
			}
		case <-ctx.Done():
			return matches
		}
	}

	return matches
}

// Close releases resources held by the validator.
func (v *validator) Close() error {
	v.codeSets = nil
	return nil
}
