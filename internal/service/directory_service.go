package service

import (
	"context"
	"fmt"

	"matchwell/internal/model"
	"matchwell/internal/repository"
)

// Match tiers a directory search can resolve at.
const (
	MatchTierPrimary   = 1 // providers listing the modality as a specialty
	MatchTierSecondary = 2 // providers listing it as a secondary offering
	MatchTierRegion    = 3 // any provider matching the remaining filters
)

// DirectoryQuery narrows a provider search. Modality usually comes
// from the decoded results payload's top entry.
type DirectoryQuery struct {
	Modality     model.Modality
	Region       string
	Telehealth   *bool
	AcceptingNew *bool
}

// DirectoryResult is a provider listing plus which fallback tier
// produced it, so the UI can label weaker matches honestly.
type DirectoryResult struct {
	Providers []model.Provider `json:"providers"`
	MatchTier int              `json:"matchTier"`
}

// DirectoryService searches the provider directory with fallback
// tiers: exact specialty first, then secondary offerings, then
// whatever matches the remaining filters.
type DirectoryService struct {
	providers repository.ProviderRepo
}

// NewDirectoryService creates a new directory service
func NewDirectoryService(providers repository.ProviderRepo) *DirectoryService {
	return &DirectoryService{providers: providers}
}

// Search resolves the query at the strongest tier that returns any
// providers. A fully empty directory yields an empty tier-3 result,
// not an error.
func (s *DirectoryService) Search(ctx context.Context, q DirectoryQuery) (*DirectoryResult, error) {
	filter := repository.ProviderFilter{
		Region:       q.Region,
		Telehealth:   q.Telehealth,
		AcceptingNew: q.AcceptingNew,
	}

	if q.Modality != "" {
		if !q.Modality.Valid() {
			return nil, fmt.Errorf("unknown modality %q", q.Modality)
		}

		primary, err := s.providers.ListByModality(ctx, q.Modality, filter)
		if err != nil {
			return nil, fmt.Errorf("primary provider lookup failed: %w", err)
		}
		if len(primary) > 0 {
			return &DirectoryResult{Providers: primary, MatchTier: MatchTierPrimary}, nil
		}

		secondary, err := s.providers.ListBySecondaryModality(ctx, q.Modality, filter)
		if err != nil {
			return nil, fmt.Errorf("secondary provider lookup failed: %w", err)
		}
		if len(secondary) > 0 {
			return &DirectoryResult{Providers: secondary, MatchTier: MatchTierSecondary}, nil
		}
	}

	all, err := s.providers.List(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("provider lookup failed: %w", err)
	}
	return &DirectoryResult{Providers: all, MatchTier: MatchTierRegion}, nil
}
