package service

import (
	"context"
	"strings"
	"unicode/utf8"

	"github.com/google/uuid"
	"github.com/smallbiznis/scootfleet/internal/clock"
	"github.com/smallbiznis/scootfleet/internal/model/domain"
	"github.com/smallbiznis/scootfleet/pkg/db"
	"github.com/smallbiznis/scootfleet/pkg/db/pagination"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

const (
	minNameLength = 4
	maxNameLength = 50
)

type Params struct {
	fx.In

	DB    *gorm.DB
	Log   *zap.Logger
	Clock clock.Clock
	Repo  domain.Repository
}

type Service struct {
	db    *gorm.DB
	log   *zap.Logger
	clock clock.Clock
	repo  domain.Repository
}

func New(p Params) domain.Service {
	return &Service{
		db:    p.DB,
		log:   p.Log.Named("model.service"),
		clock: p.Clock,
		repo:  p.Repo,
	}
}

func (s *Service) Create(ctx context.Context, req domain.CreateRequest) (*domain.Model, error) {
	name, err := normalizeName(req.Name)
	if err != nil {
		return nil, err
	}

	now := s.clock.Now()
	model := domain.Model{
		ID:        uuid.New(),
		Name:      name,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := s.repo.Insert(ctx, s.db, &model); err != nil {
		if db.IsDuplicateKeyErr(err) {
			return nil, domain.ErrNameTaken
		}
		return nil, err
	}

	s.log.Info("scooter model created", zap.String("model_id", model.ID.String()))
	return &model, nil
}

func (s *Service) Get(ctx context.Context, id string) (*domain.Model, error) {
	modelID, err := parseID(id)
	if err != nil {
		return nil, err
	}

	model, err := s.repo.FindByID(ctx, s.db, modelID)
	if err != nil {
		return nil, err
	}
	if model == nil {
		return nil, domain.ErrNotFound
	}
	return model, nil
}

func (s *Service) List(ctx context.Context, page pagination.Pagination) (*domain.ListResponse, error) {
	items, err := s.repo.List(ctx, s.db, page)
	if err != nil {
		return nil, err
	}

	models, pageInfo, err := pagination.Page(items, page.Limit(), func(m domain.Model) pagination.Cursor {
		return pagination.Cursor{ID: m.ID.String(), CreatedAt: m.CreatedAt}
	})
	if err != nil {
		return nil, err
	}
	return &domain.ListResponse{PageInfo: pageInfo, Models: models}, nil
}

func (s *Service) Update(ctx context.Context, id string, req domain.UpdateRequest) (*domain.Model, error) {
	model, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	name, err := normalizeName(req.Name)
	if err != nil {
		return nil, err
	}

	model.Name = name
	model.UpdatedAt = s.clock.Now()
	updated, err := s.repo.Update(ctx, s.db, model)
	if err != nil {
		if db.IsDuplicateKeyErr(err) {
			return nil, domain.ErrNameTaken
		}
		return nil, err
	}
	if !updated {
		return nil, domain.ErrNotFound
	}
	return model, nil
}

// Delete refuses while any scooter is still of this model.
func (s *Service) Delete(ctx context.Context, id string) error {
	modelID, err := parseID(id)
	if err != nil {
		return err
	}

	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		inUse, err := s.repo.InUse(ctx, tx, modelID)
		if err != nil {
			return err
		}
		if inUse {
			return domain.ErrModelInUse
		}
		deleted, err := s.repo.Delete(ctx, tx, modelID)
		if err != nil {
			return err
		}
		if !deleted {
			return domain.ErrNotFound
		}
		return nil
	})
}

func normalizeName(value string) (string, error) {
	name := strings.TrimSpace(value)
	if n := utf8.RuneCountInString(name); n < minNameLength || n > maxNameLength {
		return "", domain.ErrInvalidName
	}
	return name, nil
}

func parseID(value string) (uuid.UUID, error) {
	id, err := uuid.Parse(strings.TrimSpace(value))
	if err != nil || id == uuid.Nil {
		return uuid.Nil, domain.ErrInvalidID
	}
	return id, nil
}
