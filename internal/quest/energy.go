package quest

import (
	"context"

	"lifetracker/internal/store"
)

// MatchesEnergy reports whether a quest fits the given energy level. A quest
// with no energy requirement matches everything, the top-ranked configured
// category matches everything (a high energy day shows all quests), and
// otherwise the quest's required set must contain the level.
func MatchesEnergy(q *store.Quest, level, highCategory string) bool {
	if len(q.EnergyRequired) == 0 || level == "" {
		return true
	}
	if highCategory != "" && level == highCategory {
		return true
	}
	for _, e := range q.EnergyRequired {
		if e == level {
			return true
		}
	}
	return false
}

// QuestsForEnergy returns the partition filtered to quests matching the
// energy level against the configured category ranking.
func (s *Service) QuestsForEnergy(ctx context.Context, typ Type, level string) ([]*store.Quest, error) {
	list, err := s.Quests(ctx, typ)
	if err != nil {
		return nil, err
	}
	settings, err := s.store.Settings(ctx)
	if err != nil {
		return nil, err
	}
	high := settings.HighEnergyCategory()

	out := make([]*store.Quest, 0, len(list))
	for _, q := range list {
		if MatchesEnergy(q, level, high) {
			out = append(out, q)
		}
	}
	return out, nil
}
