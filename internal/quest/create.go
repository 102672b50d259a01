package quest

import (
	"context"
	"fmt"

	"lifetracker/internal/store"
)

// AddQuest validates the draft, assigns an id from the persisted counter,
// stamps the creation date and appends the quest to its partition.
func (s *Service) AddQuest(ctx context.Context, typ Type, draft Draft) (*store.Quest, error) {
	if !typ.IsValid() {
		return nil, ValidationError{Field: "type", Reason: fmt.Sprintf("unknown quest type %q", typ)}
	}
	title, err := normalizeTitle(draft.Title)
	if err != nil {
		return nil, err
	}
	if draft.IsProgressive && draft.ProgressTarget < 1 {
		return nil, ValidationError{Field: "progress_target", Reason: "must be at least 1"}
	}

	doc, err := s.store.Quests(ctx)
	if err != nil {
		return nil, err
	}
	id, err := s.store.GenerateID(ctx)
	if err != nil {
		return nil, err
	}

	q := &store.Quest{
		ID:             id,
		Title:          title,
		TimeSlot:       draft.TimeSlot,
		Category:       draft.Category,
		EnergyRequired: draft.EnergyRequired,
		IsProgressive:  draft.IsProgressive,
		ProgressTarget: draft.ProgressTarget,
		ProgressUnit:   draft.ProgressUnit,
		Created:        s.today(),
	}

	p := partition(doc, typ)
	*p = append(*p, q)
	if err := s.saveQuests(ctx, doc); err != nil {
		return nil, err
	}
	s.log.Info("quest added", zapQuest(typ, q.ID), zapTitle(title))
	return q, nil
}

// UpdateQuest merges the patch into the matching quest via explicit field
// assignment and re-saves the partition. Returns (nil, nil) when the id is
// not in the partition.
func (s *Service) UpdateQuest(ctx context.Context, typ Type, id int64, patch Patch) (*store.Quest, error) {
	if !typ.IsValid() {
		return nil, ValidationError{Field: "type", Reason: fmt.Sprintf("unknown quest type %q", typ)}
	}
	doc, err := s.store.Quests(ctx)
	if err != nil {
		return nil, err
	}
	q := findQuest(*partition(doc, typ), id)
	if q == nil {
		return nil, nil
	}

	if patch.Title != nil {
		title, err := normalizeTitle(*patch.Title)
		if err != nil {
			return nil, err
		}
		q.Title = title
	}
	if patch.TimeSlot != nil {
		q.TimeSlot = *patch.TimeSlot
	}
	if patch.Category != nil {
		q.Category = *patch.Category
	}
	if patch.EnergyRequired != nil {
		q.EnergyRequired = *patch.EnergyRequired
	}
	if patch.ProgressTarget != nil {
		if !q.IsProgressive {
			return nil, ValidationError{Field: "progress_target", Reason: "quest is not progressive"}
		}
		if *patch.ProgressTarget < 1 {
			return nil, ValidationError{Field: "progress_target", Reason: "must be at least 1"}
		}
		q.ProgressTarget = *patch.ProgressTarget
	}
	if patch.ProgressUnit != nil {
		q.ProgressUnit = *patch.ProgressUnit
	}

	if err := s.saveQuests(ctx, doc); err != nil {
		return nil, err
	}
	return q, nil
}

// DeleteQuest removes the quest by id. Returns false when the id is absent;
// deleting twice is not an error. Deletion is immediate and irreversible
// except via backup restore.
func (s *Service) DeleteQuest(ctx context.Context, typ Type, id int64) (bool, error) {
	if !typ.IsValid() {
		return false, ValidationError{Field: "type", Reason: fmt.Sprintf("unknown quest type %q", typ)}
	}
	doc, err := s.store.Quests(ctx)
	if err != nil {
		return false, err
	}
	p := partition(doc, typ)
	for i, q := range *p {
		if q.ID == id {
			*p = append((*p)[:i], (*p)[i+1:]...)
			if err := s.saveQuests(ctx, doc); err != nil {
				return false, err
			}
			s.log.Info("quest deleted", zapQuest(typ, id))
			return true, nil
		}
	}
	return false, nil
}
