package quest

import (
	"context"
	"math/rand"
	"strings"
)

// SetTodayEnergy records today's energy level. Levels are not enforced
// against the configured categories; an orphaned name is tolerated and
// simply matches nothing special.
func (s *Service) SetTodayEnergy(ctx context.Context, level string) error {
	settings, err := s.store.Settings(ctx)
	if err != nil {
		return err
	}
	settings.TodayEnergy = level
	settings.TodayDate = s.today()
	return s.store.SaveSettings(ctx, settings)
}

// TodayEnergy returns the recorded energy level, or "" when none was set
// today. A stale value from an earlier day stops applying on its own.
func (s *Service) TodayEnergy(ctx context.Context) (string, error) {
	settings, err := s.store.Settings(ctx)
	if err != nil {
		return "", err
	}
	if settings.TodayDate != s.today() {
		return "", nil
	}
	return settings.TodayEnergy, nil
}

// Notes returns the persistent notes text.
func (s *Service) Notes(ctx context.Context) (string, error) {
	settings, err := s.store.Settings(ctx)
	if err != nil {
		return "", err
	}
	return settings.PersistentNotes, nil
}

// SaveNotes overwrites the persistent notes text.
func (s *Service) SaveNotes(ctx context.Context, text string) error {
	settings, err := s.store.Settings(ctx)
	if err != nil {
		return err
	}
	settings.PersistentNotes = text
	return s.store.SaveSettings(ctx, settings)
}

// AddQuote appends a quote to the rotation.
func (s *Service) AddQuote(ctx context.Context, text string) error {
	text = strings.TrimSpace(text)
	if text == "" {
		return ValidationError{Field: "quote", Reason: "must not be empty"}
	}
	settings, err := s.store.Settings(ctx)
	if err != nil {
		return err
	}
	settings.Quotes = append(settings.Quotes, text)
	return s.store.SaveSettings(ctx, settings)
}

// RandomQuote returns one quote from the rotation, or "" with quotes
// disabled or none configured.
func (s *Service) RandomQuote(ctx context.Context) (string, error) {
	settings, err := s.store.Settings(ctx)
	if err != nil {
		return "", err
	}
	if !settings.ShowQuotes || len(settings.Quotes) == 0 {
		return "", nil
	}
	return settings.Quotes[rand.Intn(len(settings.Quotes))], nil
}
