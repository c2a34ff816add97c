package services

import (
	"context"
	"errors"
	"fmt"
	"io"

	"tasnif/internal/models"
	"tasnif/internal/store"
	"tasnif/pkg/classifier"

	log "github.com/sirupsen/logrus"
	"gopkg.in/yaml.v3"
)

// TaxonomyService exposes the forum's category tree in the shape the
// classification engines consume.
type TaxonomyService struct {
	store store.TaxonomyStore
}

func NewTaxonomyService(st store.TaxonomyStore) *TaxonomyService {
	return &TaxonomyService{store: st}
}

// Snapshot loads the full category tree. Categories without subcategories
// are dropped: the engines classify into pairs and an empty category can
// never be a destination.
func (s *TaxonomyService) Snapshot(ctx context.Context) ([]classifier.Category, error) {
	categories, err := s.store.ListCategories(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load categories: %w", err)
	}
	subs, err := s.store.ListAllSubcategories(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load subcategories: %w", err)
	}

	subsByCategory := make(map[int64][]classifier.Subcategory, len(categories))
	for _, sub := range subs {
		subsByCategory[sub.CategoryID] = append(subsByCategory[sub.CategoryID], classifier.Subcategory{
			ID:   sub.ID,
			Name: sub.Name,
		})
	}

	var snapshot []classifier.Category
	for _, cat := range categories {
		children := subsByCategory[cat.ID]
		if len(children) == 0 {
			continue
		}
		snapshot = append(snapshot, classifier.Category{
			ID:            cat.ID,
			Name:          cat.Name,
			Subcategories: children,
		})
	}
	if len(snapshot) == 0 {
		return nil, fmt.Errorf("taxonomy is empty: %w", models.ErrValidation)
	}
	return snapshot, nil
}

// taxonomyFile is the YAML import format: a list of categories, each with
// its subcategory names in display order.
type taxonomyFile struct {
	Categories []struct {
		Name          string   `yaml:"name"`
		Subcategories []string `yaml:"subcategories"`
	} `yaml:"categories"`
}

// ImportFromYAML creates the categories and subcategories described by the
// YAML document. Entries that already exist are skipped. Returns the number
// of categories and subcategories created.
func (s *TaxonomyService) ImportFromYAML(ctx context.Context, r io.Reader) (int, int, error) {
	var file taxonomyFile
	if err := yaml.NewDecoder(r).Decode(&file); err != nil {
		return 0, 0, fmt.Errorf("failed to parse taxonomy YAML: %w", err)
	}
	if len(file.Categories) == 0 {
		return 0, 0, fmt.Errorf("taxonomy file contains no categories: %w", models.ErrValidation)
	}

	var createdCats, createdSubs int
	for pos, entry := range file.Categories {
		if entry.Name == "" {
			return createdCats, createdSubs, fmt.Errorf("category at position %d has no name: %w", pos, models.ErrValidation)
		}

		category := &models.Category{Name: entry.Name, Position: pos}
		err := s.store.CreateCategory(ctx, category)
		switch {
		case err == nil:
			createdCats++
		case errors.Is(err, store.ErrDuplicate):
			existing, getErr := s.store.GetCategoryByName(ctx, entry.Name)
			if getErr != nil {
				return createdCats, createdSubs, fmt.Errorf("failed to load existing category '%s': %w", entry.Name, getErr)
			}
			category = existing
		default:
			return createdCats, createdSubs, fmt.Errorf("failed to create category '%s': %w", entry.Name, err)
		}

		for subPos, subName := range entry.Subcategories {
			if subName == "" {
				continue
			}
			sub := &models.Subcategory{CategoryID: category.ID, Name: subName, Position: subPos}
			if err := s.store.CreateSubcategory(ctx, sub); err != nil {
				if errors.Is(err, store.ErrDuplicate) {
					log.Debugf("subcategory '%s' already exists under '%s', skipping", subName, entry.Name)
					continue
				}
				return createdCats, createdSubs, fmt.Errorf("failed to create subcategory '%s': %w", subName, err)
			}
			createdSubs++
		}
	}
	return createdCats, createdSubs, nil
}
