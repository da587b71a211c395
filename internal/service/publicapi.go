package service

import (
	"context"
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"

	"authsvc/internal/models"
)

// EntriesSource returns the full upstream directory of public APIs.
type EntriesSource interface {
	Entries(ctx context.Context) ([]models.PublicEntry, error)
}

// EntryFilter narrows the upstream directory. Limit is nil when not requested.
type EntryFilter struct {
	Category string
	Limit    *int
}

// PublicAPIService proxies the public API directory with optional filtering.
type PublicAPIService struct {
	source EntriesSource
}

func NewPublicAPIService(source EntriesSource) *PublicAPIService {
	return &PublicAPIService{source: source}
}

// List fetches the directory and applies f. Upstream failures wrap ErrUpstream.
func (s *PublicAPIService) List(ctx context.Context, f EntryFilter) ([]models.PublicEntry, error) {
	entries, err := s.source.Entries(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrUpstream, err)
	}
	return FilterEntries(entries, f), nil
}

// ParseLimit reads the leading integer of the raw limit query value, so
// "2abc" and "2.5" both mean 2. Values without leading digits mean "no limit".
// Out-of-range values saturate.
func ParseLimit(raw string) *int {
	s := strings.TrimSpace(raw)
	end := 0
	if end < len(s) && (s[end] == '+' || s[end] == '-') {
		end++
	}
	digits := end
	for end < len(s) && s[end] >= '0' && s[end] <= '9' {
		end++
	}
	if end == digits {
		return nil
	}

	n, err := strconv.Atoi(s[:end])
	if errors.Is(err, strconv.ErrRange) {
		n = math.MaxInt
		if s[0] == '-' {
			n = math.MinInt
		}
	} else if err != nil {
		return nil
	}
	return &n
}

// FilterEntries keeps entries whose Category equals f.Category ignoring case,
// in source order, then cuts the result to f.Limit. A negative limit drops
// that many entries from the end. The returned slice is never nil.
func FilterEntries(entries []models.PublicEntry, f EntryFilter) []models.PublicEntry {
	out := make([]models.PublicEntry, 0, len(entries))
	for _, e := range entries {
		if f.Category != "" && !strings.EqualFold(e.Category, f.Category) {
			continue
		}
		out = append(out, e)
	}

	if f.Limit == nil {
		return out
	}
	end := *f.Limit
	if end < 0 {
		end += len(out)
	}
	end = max(0, min(end, len(out)))
	return out[:end]
}
