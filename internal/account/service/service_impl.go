package service

import (
	"context"
	"errors"
	"net/mail"
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/smallbiznis/scootfleet/internal/account/domain"
	"github.com/smallbiznis/scootfleet/internal/clock"
	"github.com/smallbiznis/scootfleet/internal/config"
	"github.com/smallbiznis/scootfleet/pkg/db"
	"github.com/smallbiznis/scootfleet/pkg/db/pagination"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

const minPasswordLength = 8

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
		log:   p.Log.Named("account.service"),
		clock: p.Clock,
		repo:  p.Repo,
	}
}

func (s *Service) Create(ctx context.Context, req domain.CreateRequest) (*domain.Account, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, domain.ErrInvalidName
	}

	email, err := normalizeEmail(req.Email)
	if err != nil {
		return nil, err
	}

	if len(req.Password) < minPasswordLength {
		return nil, domain.ErrInvalidPassword
	}

	role := req.Role
	if role == "" {
		role = domain.RoleUser
	}
	if !role.Valid() {
		return nil, domain.ErrInvalidRole
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	now := s.clock.Now()
	account := domain.Account{
		ID:           uuid.New(),
		Name:         name,
		Email:        email,
		Phone:        strings.TrimSpace(req.Phone),
		Role:         role,
		PasswordHash: string(hash),
		Balance:      decimal.Zero,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	existing, err := s.repo.FindByEmail(ctx, s.db, email)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, domain.ErrEmailTaken
	}

	if err := s.repo.Insert(ctx, s.db, &account); err != nil {
		if db.IsDuplicateKeyErr(err) {
			return nil, domain.ErrEmailTaken
		}
		return nil, err
	}

	s.log.Info("account created", zap.String("account_id", account.ID.String()), zap.String("role", string(role)))
	return &account, nil
}

func (s *Service) Get(ctx context.Context, id string) (*domain.Account, error) {
	accountID, err := parseID(id)
	if err != nil {
		return nil, err
	}

	account, err := s.repo.FindByID(ctx, s.db, accountID)
	if err != nil {
		return nil, err
	}
	if account == nil {
		return nil, domain.ErrNotFound
	}
	return account, nil
}

func (s *Service) List(ctx context.Context, req domain.ListRequest) (*domain.ListResponse, error) {
	if req.Role != "" && !req.Role.Valid() {
		return nil, domain.ErrInvalidRole
	}

	items, err := s.repo.List(ctx, s.db, domain.ListFilter{Role: req.Role}, req.Pagination)
	if err != nil {
		return nil, err
	}

	accounts, pageInfo, err := pagination.Page(items, req.Limit(), func(a domain.Account) pagination.Cursor {
		return pagination.Cursor{ID: a.ID.String(), CreatedAt: a.CreatedAt}
	})
	if err != nil {
		return nil, err
	}

	return &domain.ListResponse{PageInfo: pageInfo, Accounts: accounts}, nil
}

func (s *Service) Update(ctx context.Context, id string, req domain.UpdateRequest) (*domain.Account, error) {
	account, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		name := strings.TrimSpace(*req.Name)
		if name == "" {
			return nil, domain.ErrInvalidName
		}
		account.Name = name
	}
	if req.Phone != nil {
		account.Phone = strings.TrimSpace(*req.Phone)
	}
	if req.Role != nil {
		if !req.Role.Valid() {
			return nil, domain.ErrInvalidRole
		}
		account.Role = *req.Role
	}
	account.UpdatedAt = s.clock.Now()

	if err := s.repo.Update(ctx, s.db, account); err != nil {
		return nil, err
	}
	return account, nil
}

// Delete refuses to remove an account while one of its rentals is still running.
func (s *Service) Delete(ctx context.Context, id string) error {
	accountID, err := parseID(id)
	if err != nil {
		return err
	}

	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		active, err := s.repo.HasActiveRental(ctx, tx, accountID)
		if err != nil {
			return err
		}
		if active {
			return domain.ErrHasActiveRental
		}

		deleted, err := s.repo.Delete(ctx, tx, accountID)
		if err != nil {
			return err
		}
		if !deleted {
			return domain.ErrNotFound
		}
		return nil
	})
}

// EnsureAdmin creates the admin account unless one with the same email exists.
func (s *Service) EnsureAdmin(ctx context.Context, name, email, password string) (*domain.Account, error) {
	normalized, err := normalizeEmail(email)
	if err != nil {
		return nil, err
	}

	existing, err := s.repo.FindByEmail(ctx, s.db, normalized)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return existing, nil
	}

	if strings.TrimSpace(name) == "" {
		name = "Administrator"
	}
	return s.Create(ctx, domain.CreateRequest{
		Name:     name,
		Email:    normalized,
		Password: password,
		Role:     domain.RoleAdmin,
	})
}

// RegisterBootstrap seeds the configured admin account once the app starts.
func RegisterBootstrap(lc fx.Lifecycle, cfg config.Config, svc domain.Service, log *zap.Logger) {
	if cfg.Bootstrap.AdminEmail == "" {
		return
	}
	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			account, err := svc.EnsureAdmin(ctx, cfg.Bootstrap.AdminName, cfg.Bootstrap.AdminEmail, cfg.Bootstrap.AdminPassword)
			if err != nil {
				if errors.Is(err, domain.ErrInvalidPassword) {
					log.Warn("bootstrap admin skipped: password too short")
					return nil
				}
				return err
			}
			log.Info("bootstrap admin ready", zap.String("account_id", account.ID.String()))
			return nil
		},
	})
}

func normalizeEmail(value string) (string, error) {
	email := strings.ToLower(strings.TrimSpace(value))
	if email == "" {
		return "", domain.ErrInvalidEmail
	}
	addr, err := mail.ParseAddress(email)
	if err != nil || addr.Address != email {
		return "", domain.ErrInvalidEmail
	}
	return email, nil
}

func parseID(value string) (uuid.UUID, error) {
	id, err := uuid.Parse(strings.TrimSpace(value))
	if err != nil || id == uuid.Nil {
		return uuid.Nil, domain.ErrInvalidID
	}
	return id, nil
}
