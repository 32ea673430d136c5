// Package search implements the two-phase nearest-provider search: a cheap
// bounding-box pre-filter against the store, then exact great-circle
// distance ranking over the shortlist.
package search

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"sync"
	"time"

	providerRepo "hirelink/database/repository/provider"
	serviceRepo "hirelink/database/repository/service"
	"hirelink/models"
	"hirelink/services/location"
	"hirelink/utils"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
)

// DefaultMaxResults caps a ranked result list.
const DefaultMaxResults = 20

// DefaultSearchService implements SearchService.
type DefaultSearchService struct {
	ProviderRepo providerRepo.ProviderRepository
	ServiceRepo  serviceRepo.ServiceRepository

	// CacheClient is optional; when set, ranked results are cached for
	// CacheTTL. Staleness of a few seconds is acceptable for search.
	CacheClient *redis.Client
	CacheTTL    time.Duration

	MaxResults int
}

func (s *DefaultSearchService) maxResults() int {
	if s.MaxResults > 0 {
		return s.MaxResults
	}
	return DefaultMaxResults
}

// FindNearby performs the coarse-to-fine search. The repository's bounding
// box scan may admit providers slightly outside the circle; the exact
// distance step here enforces the true radius.
func (s *DefaultSearchService) FindNearby(query NearbyQuery) ([]models.ProviderSummary, error) {
	if query.RadiusKm <= 0 {
		return []models.ProviderSummary{}, nil
	}

	if cached, ok := s.cachedResults(query); ok {
		return cached, nil
	}

	// Category restriction resolves to a provider id shortlist first.
	var providerIDs []string
	if query.CategoryID != "" {
		ids, err := s.ServiceRepo.ProviderIDsWithActiveCategory(query.CategoryID)
		if err != nil {
			return nil, fmt.Errorf("failed to resolve category %s: %w", query.CategoryID, err)
		}
		if len(ids) == 0 {
			return []models.ProviderSummary{}, nil
		}
		providerIDs = ids
	}

	box := location.BoundingBoxAround(query.Latitude, query.Longitude, query.RadiusKm)
	candidates, err := s.ProviderRepo.FindInArea(box.MinLat, box.MaxLat, box.MinLon, box.MaxLon, providerIDs)
	if err != nil {
		return nil, fmt.Errorf("bounding box query failed: %w", err)
	}
	if len(candidates) == 0 {
		return []models.ProviderSummary{}, nil
	}

	ranked := s.rankByDistance(query, candidates)

	s.cacheResults(query, ranked)
	return ranked, nil
}

type rankedProvider struct {
	provider   models.Provider
	distanceKm float64
}

// rankByDistance computes exact distances concurrently, drops anything
// outside the true circle and sorts nearest first.
func (s *DefaultSearchService) rankByDistance(query NearbyQuery, candidates []models.Provider) []models.ProviderSummary {
	resultsCh := make(chan rankedProvider, len(candidates))
	var wg sync.WaitGroup

	for _, p := range candidates {
		wg.Add(1)
		go func(p models.Provider) {
			defer wg.Done()
			d := location.DistanceBetween(&query.Latitude, &query.Longitude, p.BaseLatitude, p.BaseLongitude)
			if d == location.DistanceUnknown || d > query.RadiusKm {
				return
			}
			resultsCh <- rankedProvider{provider: p, distanceKm: d}
		}(p)
	}

	wg.Wait()
	close(resultsCh)

	var ranked []rankedProvider
	for r := range resultsCh {
		ranked = append(ranked, r)
	}

	sort.Slice(ranked, func(i, j int) bool {
		if ranked[i].distanceKm != ranked[j].distanceKm {
			return ranked[i].distanceKm < ranked[j].distanceKm
		}
		// Ties: higher rated first, then id for determinism.
		if ranked[i].provider.AverageRating != ranked[j].provider.AverageRating {
			return ranked[i].provider.AverageRating > ranked[j].provider.AverageRating
		}
		return ranked[i].provider.ID < ranked[j].provider.ID
	})

	if len(ranked) > s.maxResults() {
		ranked = ranked[:s.maxResults()]
	}

	summaries := make([]models.ProviderSummary, 0, len(ranked))
	for _, r := range ranked {
		summary := r.provider.ToSummary()
		d := r.distanceKm
		summary.DistanceKm = &d
		summaries = append(summaries, summary)
	}
	return summaries
}

// FindByPincode is the coordinate-free entry point. Without a distance to
// sort by, ordering is rating descending (stable via the repository).
func (s *DefaultSearchService) FindByPincode(pincode string) ([]models.ProviderSummary, error) {
	if pincode == "" {
		return nil, models.ValidationError{Field: "pincode", Reason: "required"}
	}
	providers, err := s.ProviderRepo.FindByPincode(pincode)
	if err != nil {
		return nil, fmt.Errorf("pincode query failed: %w", err)
	}

	summaries := make([]models.ProviderSummary, 0, len(providers))
	for _, p := range providers {
		summaries = append(summaries, p.ToSummary())
	}
	return summaries, nil
}

func cacheKey(query NearbyQuery) string {
	return fmt.Sprintf("search:nearby:%.4f:%.4f:%.1f:%s",
		query.Latitude, query.Longitude, query.RadiusKm, query.CategoryID)
}

func (s *DefaultSearchService) cachedResults(query NearbyQuery) ([]models.ProviderSummary, bool) {
	if s.CacheClient == nil {
		return nil, false
	}
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	data, err := s.CacheClient.Get(ctx, cacheKey(query)).Result()
	if err != nil {
		return nil, false
	}
	var summaries []models.ProviderSummary
	if err := json.Unmarshal([]byte(data), &summaries); err != nil {
		return nil, false
	}
	return summaries, true
}

func (s *DefaultSearchService) cacheResults(query NearbyQuery, summaries []models.ProviderSummary) {
	if s.CacheClient == nil {
		return
	}
	ttl := s.CacheTTL
	if ttl <= 0 {
		ttl = 30 * time.Second
	}
	data, err := json.Marshal(summaries)
	if err != nil {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	if err := s.CacheClient.Set(ctx, cacheKey(query), data, ttl).Err(); err != nil {
		utils.GetLogger().Warn("failed to cache search results", zap.Error(err))
	}
}
