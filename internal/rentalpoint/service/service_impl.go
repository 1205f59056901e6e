package service

import (
	"context"
	"fmt"
	"math"
	"sort"
	"strings"

	"github.com/google/uuid"
	"github.com/gosimple/slug"
	accountdomain "github.com/smallbiznis/scootfleet/internal/account/domain"
	"github.com/smallbiznis/scootfleet/internal/clock"
	"github.com/smallbiznis/scootfleet/internal/config"
	"github.com/smallbiznis/scootfleet/internal/rentalpoint/domain"
	scooterdomain "github.com/smallbiznis/scootfleet/internal/scooter/domain"
	"github.com/smallbiznis/scootfleet/pkg/db"
	"github.com/smallbiznis/scootfleet/pkg/db/pagination"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

const maxCodeAttempts = 5

type Params struct {
	fx.In

	DB       *gorm.DB
	Log      *zap.Logger
	Clock    clock.Clock
	Repo     domain.Repository
	Accounts accountdomain.Repository
	Scooters scooterdomain.Repository
	Policy   *config.RentalPolicyHolder `optional:"true"`
}

type Service struct {
	db       *gorm.DB
	log      *zap.Logger
	clock    clock.Clock
	repo     domain.Repository
	accounts accountdomain.Repository
	scooters scooterdomain.Repository
	policy   *config.RentalPolicyHolder
}

func New(p Params) domain.Service {
	return &Service{
		db:       p.DB,
		log:      p.Log.Named("rentalpoint.service"),
		clock:    p.Clock,
		repo:     p.Repo,
		accounts: p.Accounts,
		scooters: p.Scooters,
		policy:   p.Policy,
	}
}

func (s *Service) Create(ctx context.Context, req domain.CreateRequest) (*domain.RentalPoint, error) {
	now := s.clock.Now()
	point := domain.RentalPoint{
		ID:        uuid.New(),
		Name:      strings.TrimSpace(req.Name),
		Latitude:  req.Latitude,
		Longitude: req.Longitude,
		Address:   strings.TrimSpace(req.Address),
		ManagerID: req.ManagerID,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := s.validate(ctx, point); err != nil {
		return nil, err
	}

	code, err := s.uniqueCode(ctx, point.Name)
	if err != nil {
		return nil, err
	}
	point.Code = code

	if err := s.repo.Insert(ctx, s.db, &point); err != nil {
		if db.IsForeignKeyErr(err) {
			return nil, domain.ErrInvalidManager
		}
		return nil, err
	}

	s.log.Info("rental point created", zap.String("rental_point_id", point.ID.String()), zap.String("code", point.Code))
	return &point, nil
}

func (s *Service) Get(ctx context.Context, id string) (*domain.RentalPoint, error) {
	pointID, err := parseID(id)
	if err != nil {
		return nil, err
	}

	point, err := s.repo.FindByID(ctx, s.db, pointID)
	if err != nil {
		return nil, err
	}
	if point == nil {
		return nil, domain.ErrNotFound
	}
	return point, nil
}

func (s *Service) List(ctx context.Context, page pagination.Pagination) (*domain.ListResponse, error) {
	items, err := s.repo.List(ctx, s.db, page)
	if err != nil {
		return nil, err
	}

	points, pageInfo, err := pagination.Page(items, page.Limit(), func(p domain.RentalPoint) pagination.Cursor {
		return pagination.Cursor{ID: p.ID.String(), CreatedAt: p.CreatedAt}
	})
	if err != nil {
		return nil, err
	}
	return &domain.ListResponse{PageInfo: pageInfo, RentalPoints: points}, nil
}

// Update keeps the code stable even when the name changes.
func (s *Service) Update(ctx context.Context, id string, req domain.UpdateRequest) (*domain.RentalPoint, error) {
	point, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		point.Name = strings.TrimSpace(*req.Name)
	}
	if req.Latitude != nil {
		point.Latitude = *req.Latitude
	}
	if req.Longitude != nil {
		point.Longitude = *req.Longitude
	}
	if req.Address != nil {
		point.Address = strings.TrimSpace(*req.Address)
	}
	if req.ManagerID != nil {
		point.ManagerID = req.ManagerID
	}
	if err := s.validate(ctx, *point); err != nil {
		return nil, err
	}
	point.UpdatedAt = s.clock.Now()

	if err := s.repo.Update(ctx, s.db, point); err != nil {
		if db.IsForeignKeyErr(err) {
			return nil, domain.ErrInvalidManager
		}
		return nil, err
	}
	return point, nil
}

// Delete leaves the point's scooters unassigned.
func (s *Service) Delete(ctx context.Context, id string) error {
	pointID, err := parseID(id)
	if err != nil {
		return err
	}

	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := s.repo.DetachScooters(ctx, tx, pointID); err != nil {
			return err
		}
		deleted, err := s.repo.Delete(ctx, tx, pointID)
		if err != nil {
			return err
		}
		if !deleted {
			return domain.ErrNotFound
		}
		return nil
	})
}

// Nearby returns the points within the radius, closest first.
func (s *Service) Nearby(ctx context.Context, req domain.NearbyRequest) ([]domain.NearbyPoint, error) {
	if !validCoordinates(req.Latitude, req.Longitude) {
		return nil, domain.ErrInvalidCoordinates
	}

	policy := s.policy.Get().Nearby
	radius := req.RadiusKm
	if radius == 0 {
		radius = policy.DefaultRadiusKm
	}
	if radius <= 0 || radius > policy.MaxRadiusKm || math.IsNaN(radius) {
		return nil, domain.ErrInvalidRadius
	}

	candidates, err := s.repo.ListInBox(ctx, s.db, domain.BoundingBox(req.Latitude, req.Longitude, radius))
	if err != nil {
		return nil, err
	}

	nearby := make([]domain.NearbyPoint, 0, len(candidates))
	for _, point := range candidates {
		distance := domain.HaversineDistance(req.Latitude, req.Longitude, point.Latitude, point.Longitude)
		if distance > radius {
			continue
		}
		nearby = append(nearby, domain.NearbyPoint{RentalPoint: point, DistanceKm: math.Round(distance*1000) / 1000})
	}
	sort.SliceStable(nearby, func(i, j int) bool {
		if nearby[i].DistanceKm != nearby[j].DistanceKm {
			return nearby[i].DistanceKm < nearby[j].DistanceKm
		}
		return nearby[i].Code < nearby[j].Code
	})
	return nearby, nil
}

func (s *Service) ScootersAt(ctx context.Context, id string, req domain.ScootersRequest) (*scooterdomain.ListResponse, error) {
	point, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if req.Status != "" && !req.Status.Valid() {
		return nil, scooterdomain.ErrInvalidStatus
	}

	items, err := s.scooters.List(ctx, s.db, scooterdomain.ListFilter{
		Status:        req.Status,
		RentalPointID: &point.ID,
	}, req.Pagination)
	if err != nil {
		return nil, err
	}

	scooters, pageInfo, err := pagination.Page(items, req.Limit(), func(sc scooterdomain.Scooter) pagination.Cursor {
		return pagination.Cursor{ID: sc.ID.String(), CreatedAt: sc.CreatedAt}
	})
	if err != nil {
		return nil, err
	}
	return &scooterdomain.ListResponse{PageInfo: pageInfo, Scooters: scooters}, nil
}

func (s *Service) validate(ctx context.Context, point domain.RentalPoint) error {
	if point.Name == "" {
		return domain.ErrInvalidName
	}
	if !validCoordinates(point.Latitude, point.Longitude) {
		return domain.ErrInvalidCoordinates
	}
	if point.ManagerID != nil {
		manager, err := s.accounts.FindByID(ctx, s.db, *point.ManagerID)
		if err != nil {
			return err
		}
		if manager == nil || manager.Role == accountdomain.RoleUser {
			return domain.ErrInvalidManager
		}
	}
	return nil
}

// uniqueCode slugs the name and appends a numeric suffix until the code is free.
func (s *Service) uniqueCode(ctx context.Context, name string) (string, error) {
	base := slug.Make(name)
	if base == "" {
		return "", domain.ErrInvalidName
	}

	code := base
	for attempt := 2; attempt <= maxCodeAttempts+1; attempt++ {
		exists, err := s.repo.CodeExists(ctx, s.db, code)
		if err != nil {
			return "", err
		}
		if !exists {
			return code, nil
		}
		code = fmt.Sprintf("%s-%d", base, attempt)
	}
	return fmt.Sprintf("%s-%s", base, uuid.NewString()[:8]), nil
}

func validCoordinates(lat, lon float64) bool {
	return lat >= -90 && lat <= 90 && lon >= -180 && lon <= 180
}

func parseID(value string) (uuid.UUID, error) {
	id, err := uuid.Parse(strings.TrimSpace(value))
	if err != nil || id == uuid.Nil {
		return uuid.Nil, domain.ErrInvalidID
	}
	return id, nil
}
