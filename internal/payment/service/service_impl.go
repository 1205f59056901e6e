package service

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"github.com/oklog/ulid/v2"
	accountdomain "github.com/smallbiznis/scootfleet/internal/account/domain"
	"github.com/smallbiznis/scootfleet/internal/clock"
	"github.com/smallbiznis/scootfleet/internal/observability/logger"
	"github.com/smallbiznis/scootfleet/internal/observability/metrics"
	"github.com/smallbiznis/scootfleet/internal/payment/domain"
	"github.com/smallbiznis/scootfleet/internal/pricing"
	"github.com/smallbiznis/scootfleet/pkg/db/pagination"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

const referencePrefix = "pay_"

type Params struct {
	fx.In

	DB       *gorm.DB
	Log      *zap.Logger
	Clock    clock.Clock
	Repo     domain.Repository
	Accounts accountdomain.Repository
	Metrics  *metrics.Metrics `optional:"true"`
}

type Service struct {
	db       *gorm.DB
	log      *zap.Logger
	clock    clock.Clock
	repo     domain.Repository
	accounts accountdomain.Repository
	metrics  *metrics.Metrics
}

func New(p Params) domain.Service {
	return &Service{
		db:       p.DB,
		log:      p.Log.Named("payment.service"),
		clock:    p.Clock,
		repo:     p.Repo,
		accounts: p.Accounts,
		metrics:  p.Metrics,
	}
}

// MakePayment records a completed top-up and credits the account in one transaction.
func (s *Service) MakePayment(ctx context.Context, req domain.CreateRequest) (*domain.Payment, error) {
	if req.AccountID == uuid.Nil {
		return nil, domain.ErrInvalidID
	}
	amount := req.Amount.Round(pricing.Scale)
	if !amount.IsPositive() {
		return nil, domain.ErrInvalidAmount
	}

	metadata := datatypes.JSONMap{}
	for k, v := range req.Metadata {
		metadata[k] = v
	}

	now := s.clock.Now()
	payment := domain.Payment{
		ID:        uuid.New(),
		AccountID: req.AccountID,
		Amount:    amount,
		Status:    domain.StatusCompleted,
		Reference: referencePrefix + ulid.MustNew(ulid.Timestamp(now), ulid.DefaultEntropy()).String(),
		Metadata:  metadata,
		CreatedAt: now,
		UpdatedAt: now,
	}

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		account, err := s.accounts.FindByID(ctx, tx, req.AccountID)
		if err != nil {
			return err
		}
		if account == nil {
			return domain.ErrAccountNotFound
		}

		if err := s.repo.Insert(ctx, tx, &payment); err != nil {
			return err
		}

		credited, err := s.accounts.Credit(ctx, tx, req.AccountID, amount, now)
		if err != nil {
			return err
		}
		if !credited {
			return domain.ErrAccountNotFound
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.metrics.RecordPayment(ctx, string(payment.Status))
	logger.WithContext(ctx, s.log).Info("payment completed",
		zap.String("payment_id", payment.ID.String()),
		zap.String("account_id", payment.AccountID.String()),
		zap.String("reference", payment.Reference),
		zap.String("amount", amount.StringFixed(pricing.Scale)),
	)
	return &payment, nil
}

func (s *Service) Get(ctx context.Context, id string) (*domain.Payment, error) {
	paymentID, err := parseID(id)
	if err != nil {
		return nil, err
	}

	payment, err := s.repo.FindByID(ctx, s.db, paymentID)
	if err != nil {
		return nil, err
	}
	if payment == nil {
		return nil, domain.ErrNotFound
	}
	return payment, nil
}

func (s *Service) ListByAccount(ctx context.Context, accountID string, page pagination.Pagination) (*domain.ListResponse, error) {
	id, err := parseID(accountID)
	if err != nil {
		return nil, err
	}

	items, err := s.repo.ListByAccount(ctx, s.db, id, page)
	if err != nil {
		return nil, err
	}

	payments, pageInfo, err := pagination.Page(items, page.Limit(), func(p domain.Payment) pagination.Cursor {
		return pagination.Cursor{ID: p.ID.String(), CreatedAt: p.CreatedAt}
	})
	if err != nil {
		return nil, err
	}
	return &domain.ListResponse{PageInfo: pageInfo, Payments: payments}, nil
}

// UpdateStatus applies a status transition and its balance effect:
// PENDING -> COMPLETED credits, COMPLETED -> REFUNDED debits, PENDING -> FAILED changes nothing.
func (s *Service) UpdateStatus(ctx context.Context, id string, status domain.Status) (*domain.Payment, error) {
	if !status.Valid() {
		return nil, domain.ErrInvalidStatus
	}
	paymentID, err := parseID(id)
	if err != nil {
		return nil, err
	}

	var result *domain.Payment
	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		payment, err := s.repo.FindByID(ctx, tx, paymentID)
		if err != nil {
			return err
		}
		if payment == nil {
			return domain.ErrNotFound
		}
		if !allowedTransition(payment.Status, status) {
			return domain.ErrInvalidTransition
		}

		now := s.clock.Now()
		moved, err := s.repo.TransitionStatus(ctx, tx, payment.ID, payment.Status, status, now)
		if err != nil {
			return err
		}
		if !moved {
			return domain.ErrInvalidTransition
		}

		var adjusted bool
		switch status {
		case domain.StatusCompleted:
			adjusted, err = s.accounts.Credit(ctx, tx, payment.AccountID, payment.Amount, now)
		case domain.StatusRefunded:
			adjusted, err = s.accounts.Debit(ctx, tx, payment.AccountID, payment.Amount, now)
		default:
			adjusted = true
		}
		if err != nil {
			return err
		}
		if !adjusted {
			return domain.ErrAccountNotFound
		}

		payment.Status = status
		payment.UpdatedAt = now
		result = payment
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.metrics.RecordPayment(ctx, string(result.Status))
	return result, nil
}

func allowedTransition(from, to domain.Status) bool {
	switch from {
	case domain.StatusPending:
		return to == domain.StatusCompleted || to == domain.StatusFailed
	case domain.StatusCompleted:
		return to == domain.StatusRefunded
	default:
		return false
	}
}

func parseID(value string) (uuid.UUID, error) {
	id, err := uuid.Parse(strings.TrimSpace(value))
	if err != nil || id == uuid.Nil {
		return uuid.Nil, domain.ErrInvalidID
	}
	return id, nil
}
