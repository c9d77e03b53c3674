package characters

import (
	"sort"

	"go.uber.org/zap"
)

// Assemble turns fetch results into enriched rows ordered by selection rank.
// Results without a payload are logged and dropped. It fails with
// ErrNoEnrichedRecords when nothing survives.
func Assemble(logger *zap.Logger, results []FetchResult) ([]EnrichedRow, error) {
	rows := make([]EnrichedRow, 0, len(results))
	seen := make(map[int64]struct{}, len(results))

	for _, r := range results {
		c := r.Candidate
		if !r.Payload.Present() {
			logger.Info("Dropping character without profile",
				zap.String("realm", c.LocationSlug),
				zap.String("name", c.DisplayName),
				zap.NamedError("cause", r.Err))
			continue
		}
		if _, dup := seen[c.EntityID]; dup {
			continue
		}
		seen[c.EntityID] = struct{}{}

		p := r.Payload
		rows = append(rows, EnrichedRow{
			EntityID:          c.EntityID,
			DisplayName:       c.DisplayName,
			LocationSlug:      c.LocationSlug,
			BracketID:         c.BracketID,
			SeasonID:          c.SeasonID,
			ProcessingDate:    c.ProcessingDate,
			SelectionRank:     c.SelectionRank,
			Faction:           p.String("faction", "name"),
			ClassName:         p.String("character_class", "name"),
			SpecName:          p.String("active_spec", "name"),
			AverageItemLevel:  p.Int("average_item_level"),
			EquippedItemLevel: p.Int("equipped_item_level"),
		})
	}

	if len(rows) == 0 {
		return nil, ErrNoEnrichedRecords
	}

	sort.Slice(rows, func(i, j int) bool { return rows[i].SelectionRank < rows[j].SelectionRank })
	return rows, nil
}
