package characters

import (
	"context"
	"fmt"
	"sort"

	"go.uber.org/zap"
)

// DefaultBracketPriority is the tie-break order used when none is configured.
var DefaultBracketPriority = []string{"3v3", "2v2"}

// Selector picks a bounded, deduplicated set of top ranked characters.
type Selector struct {
	store    RankedStore
	brackets []string
	priority map[string]int
	logger   *zap.Logger
}

// NewSelector creates a Selector over the eligible brackets. priority orders
// brackets for tie-breaks, primary first; brackets it does not list rank
// after listed ones, by name.
func NewSelector(store RankedStore, brackets, priority []string, logger *zap.Logger) *Selector {
	if len(priority) == 0 {
		priority = DefaultBracketPriority
	}
	order := make(map[string]int, len(priority))
	for i, b := range priority {
		if _, dup := order[b]; !dup {
			order[b] = i
		}
	}
	return &Selector{store: store, brackets: brackets, priority: order, logger: logger}
}

// Select returns at most limit candidates for date, ordered by selection rank.
func (s *Selector) Select(ctx context.Context, date string, limit int) ([]Candidate, error) {
	if limit < 1 {
		return nil, fmt.Errorf("%w: got %d", ErrInvalidLimit, limit)
	}

	records, err := s.store.RankedRecords(ctx, date, s.brackets)
	if err != nil {
		return nil, err
	}

	eligible := s.filter(records, date)
	if len(eligible) == 0 {
		return nil, fmt.Errorf("%w: date=%s brackets=%v", ErrEmptyDataset, date, s.brackets)
	}

	best := s.dedupe(rankWithinBrackets(eligible))

	sort.Slice(best, func(i, j int) bool {
		a, b := best[i], best[j]
		if a.BracketRank != b.BracketRank {
			return a.BracketRank < b.BracketRank
		}
		if a.BracketID != b.BracketID {
			return s.bracketLess(a.BracketID, b.BracketID)
		}
		return a.EntityID < b.EntityID
	})

	if len(best) > limit {
		best = best[:limit]
	}
	for i := range best {
		best[i].SelectionRank = i + 1
	}
	return best, nil
}

// filter keeps well formed rows of date in an eligible bracket.
func (s *Selector) filter(records []RankedRecord, date string) []RankedRecord {
	allowed := make(map[string]struct{}, len(s.brackets))
	for _, b := range s.brackets {
		allowed[b] = struct{}{}
	}

	out := make([]RankedRecord, 0, len(records))
	skipped := 0
	for _, r := range records {
		if r.ProcessingDate != date {
			continue
		}
		if _, ok := allowed[r.BracketID]; !ok {
			continue
		}
		if reason := malformed(r); reason != "" {
			skipped++
			s.logger.Warn("Skipping malformed ranked record",
				zap.String("reason", reason),
				zap.String("bracket", r.BracketID),
				zap.String("name", r.DisplayName),
				zap.Int("rank", r.Rank))
			continue
		}
		out = append(out, r)
	}
	if skipped > 0 {
		s.logger.Warn("Malformed ranked records skipped", zap.Int("count", skipped), zap.String("date", date))
	}
	return out
}

func malformed(r RankedRecord) string {
	switch {
	case r.EntityID == nil:
		return "missing char_id"
	case r.DisplayName == "":
		return "missing char_name"
	case r.LocationSlug == "":
		return "missing slug_name"
	case r.Rank < 1:
		return "missing ranking"
	default:
		return ""
	}
}

// rankWithinBrackets orders every bracket by rank asc, wins desc, losses asc,
// char id asc and assigns 1-based bracket ranks.
func rankWithinBrackets(records []RankedRecord) []Candidate {
	byBracket := make(map[string][]RankedRecord)
	for _, r := range records {
		byBracket[r.BracketID] = append(byBracket[r.BracketID], r)
	}

	out := make([]Candidate, 0, len(records))
	for _, rows := range byBracket {
		sort.Slice(rows, func(i, j int) bool {
			a, b := rows[i], rows[j]
			if a.Rank != b.Rank {
				return a.Rank < b.Rank
			}
			if a.Wins != b.Wins {
				return a.Wins > b.Wins
			}
			if a.Losses != b.Losses {
				return a.Losses < b.Losses
			}
			return *a.EntityID < *b.EntityID
		})
		for i, r := range rows {
			out = append(out, Candidate{
				EntityID:       *r.EntityID,
				DisplayName:    r.DisplayName,
				LocationSlug:   r.LocationSlug,
				BracketID:      r.BracketID,
				SeasonID:       r.SeasonID,
				ProcessingDate: r.ProcessingDate,
				BracketRank:    i + 1,
			})
		}
	}
	return out
}

// dedupe keeps one candidate per character: the lowest bracket rank, then
// the higher priority bracket.
func (s *Selector) dedupe(ranked []Candidate) []Candidate {
	best := make(map[int64]Candidate, len(ranked))
	for _, c := range ranked {
		cur, seen := best[c.EntityID]
		if !seen || c.BracketRank < cur.BracketRank ||
			(c.BracketRank == cur.BracketRank && s.bracketLess(c.BracketID, cur.BracketID)) {
			best[c.EntityID] = c
		}
	}

	out := make([]Candidate, 0, len(best))
	for _, c := range best {
		out = append(out, c)
	}
	return out
}

func (s *Selector) bracketLess(a, b string) bool {
	pa, okA := s.priority[a]
	pb, okB := s.priority[b]
	switch {
	case okA && okB:
		return pa < pb
	case okA != okB:
		return okA
	default:
		return a < b
	}
}
