package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"outlay/internal/core"
	"outlay/internal/store"
)

// TemplateService manages reusable expense templates.
type TemplateService struct {
	store *store.Store
}

func NewTemplateService(st *store.Store) *TemplateService {
	return &TemplateService{store: st}
}

func (s *TemplateService) List(ctx context.Context) ([]core.Template, error) {
	return s.store.Templates.Load(ctx)
}

func (s *TemplateService) Add(ctx context.Context, t core.Template) (core.Template, error) {
	if strings.TrimSpace(t.Name) == "" {
		return core.Template{}, ErrEmptyEntry
	}
	t.ID = uuid.NewString()
	t.CreatedAt = time.Now().UTC()

	templates, err := s.store.Templates.Load(ctx)
	if err != nil {
		return core.Template{}, err
	}
	templates = append(templates, t)

	if err := s.store.Templates.Save(ctx, templates); err != nil {
		return core.Template{}, err
	}
	return t, nil
}

func (s *TemplateService) Delete(ctx context.Context, id string) error {
	templates, err := s.store.Templates.Load(ctx)
	if err != nil {
		return err
	}

	kept := templates[:0]
	found := false
	for _, t := range templates {
		if t.ID == id {
			found = true
			continue
		}
		kept = append(kept, t)
	}
	if !found {
		return fmt.Errorf("delete template %s: %w", id, ErrNotFound)
	}
	return s.store.Templates.Save(ctx, kept)
}

// ToggleFavorite flips the favorite flag and returns the updated template.
func (s *TemplateService) ToggleFavorite(ctx context.Context, id string) (core.Template, error) {
	templates, err := s.store.Templates.Load(ctx)
	if err != nil {
		return core.Template{}, err
	}

	for i := range templates {
		if templates[i].ID == id {
			templates[i].IsFavorite = !templates[i].IsFavorite
			if err := s.store.Templates.Save(ctx, templates); err != nil {
				return core.Template{}, err
			}
			return templates[i], nil
		}
	}
	return core.Template{}, fmt.Errorf("toggle template %s: %w", id, ErrNotFound)
}

// PresetService manages saved filter presets. Criteria are persisted exactly
// as submitted, "All" sentinels included, so re-applying a preset restores
// the form state verbatim.
type PresetService struct {
	store *store.Store
}

func NewPresetService(st *store.Store) *PresetService {
	return &PresetService{store: st}
}

func (s *PresetService) List(ctx context.Context) ([]core.FilterPreset, error) {
	return s.store.Presets.Load(ctx)
}

func (s *PresetService) Add(ctx context.Context, p core.FilterPreset) (core.FilterPreset, error) {
	if strings.TrimSpace(p.Name) == "" {
		return core.FilterPreset{}, ErrEmptyEntry
	}
	p.ID = uuid.NewString()
	p.CreatedAt = time.Now().UTC()

	presets, err := s.store.Presets.Load(ctx)
	if err != nil {
		return core.FilterPreset{}, err
	}
	presets = append(presets, p)

	if err := s.store.Presets.Save(ctx, presets); err != nil {
		return core.FilterPreset{}, err
	}
	return p, nil
}

func (s *PresetService) Delete(ctx context.Context, id string) error {
	presets, err := s.store.Presets.Load(ctx)
	if err != nil {
		return err
	}

	kept := presets[:0]
	found := false
	for _, p := range presets {
		if p.ID == id {
			found = true
			continue
		}
		kept = append(kept, p)
	}
	if !found {
		return fmt.Errorf("delete preset %s: %w", id, ErrNotFound)
	}
	return s.store.Presets.Save(ctx, kept)
}

func (s *PresetService) ToggleFavorite(ctx context.Context, id string) (core.FilterPreset, error) {
	presets, err := s.store.Presets.Load(ctx)
	if err != nil {
		return core.FilterPreset{}, err
	}

	for i := range presets {
		if presets[i].ID == id {
			presets[i].IsFavorite = !presets[i].IsFavorite
			if err := s.store.Presets.Save(ctx, presets); err != nil {
				return core.FilterPreset{}, err
			}
			return presets[i], nil
		}
	}
	return core.FilterPreset{}, fmt.Errorf("toggle preset %s: %w", id, ErrNotFound)
}
