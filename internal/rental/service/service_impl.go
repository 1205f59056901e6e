package service

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	accountdomain "github.com/smallbiznis/scootfleet/internal/account/domain"
	"github.com/smallbiznis/scootfleet/internal/clock"
	"github.com/smallbiznis/scootfleet/internal/config"
	modeldomain "github.com/smallbiznis/scootfleet/internal/model/domain"
	"github.com/smallbiznis/scootfleet/internal/observability/logger"
	"github.com/smallbiznis/scootfleet/internal/observability/metrics"
	"github.com/smallbiznis/scootfleet/internal/observability/tracing"
	"github.com/smallbiznis/scootfleet/internal/pricing"
	pricingplandomain "github.com/smallbiznis/scootfleet/internal/pricingplan/domain"
	"github.com/smallbiznis/scootfleet/internal/providers/pdf"
	"github.com/smallbiznis/scootfleet/internal/rental/domain"
	scooterdomain "github.com/smallbiznis/scootfleet/internal/scooter/domain"
	"github.com/smallbiznis/scootfleet/pkg/db"
	"github.com/smallbiznis/scootfleet/pkg/db/pagination"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

const tracerName = "scootfleet/rental"

const receiptTimeLayout = "2006-01-02 15:04 MST"

type Params struct {
	fx.In

	DB       *gorm.DB
	Log      *zap.Logger
	Clock    clock.Clock
	Repo     domain.Repository
	Accounts accountdomain.Repository
	Scooters scooterdomain.Repository
	Plans    pricingplandomain.Repository
	Models   modeldomain.Repository
	Metrics  *metrics.Metrics          `optional:"true"`
	Receipts pdf.Provider              `optional:"true"`
	Policy   *config.RentalPolicyHolder `optional:"true"`
}

type Service struct {
	db       *gorm.DB
	log      *zap.Logger
	clock    clock.Clock
	repo     domain.Repository
	accounts accountdomain.Repository
	scooters scooterdomain.Repository
	plans    pricingplandomain.Repository
	models   modeldomain.Repository
	metrics  *metrics.Metrics
	receipts pdf.Provider
	policy   *config.RentalPolicyHolder
}

func New(p Params) domain.Service {
	receipts := p.Receipts
	if receipts == nil {
		receipts = pdf.New()
	}
	return &Service{
		db:       p.DB,
		log:      p.Log.Named("rental.service"),
		clock:    p.Clock,
		repo:     p.Repo,
		accounts: p.Accounts,
		scooters: p.Scooters,
		plans:    p.Plans,
		models:   p.Models,
		metrics:  p.Metrics,
		receipts: receipts,
		policy:   p.Policy,
	}
}

// StartRental reserves the scooter and opens a rental for the account.
// The account balance is not touched until the rental ends.
func (s *Service) StartRental(ctx context.Context, accountID, scooterID uuid.UUID, rentalTypeID int64) (*domain.Rental, error) {
	ctx, span := tracing.Start(ctx, tracerName, "rental.start",
		attribute.String("account.id", accountID.String()),
		attribute.String("scooter.id", scooterID.String()),
		attribute.Int64("rental.type_id", rentalTypeID),
	)
	defer span.End()

	rental, rentalType, err := s.startRental(ctx, accountID, scooterID, rentalTypeID)
	if err != nil {
		if errors.Is(err, domain.ErrConflict) {
			s.metrics.RecordRentalConflict(ctx)
		}
		recordSpanError(span, err)
		logger.WithContext(ctx, s.log).Info("rental start rejected",
			zap.String("account_id", accountID.String()),
			zap.String("scooter_id", scooterID.String()),
			zap.Error(err),
		)
		return nil, err
	}

	span.SetAttributes(tracing.SafeAttributes(attribute.String("rental.id", rental.ID.String()))...)
	s.metrics.RecordRentalStarted(ctx, string(rentalType.Name))
	logger.WithRental(logger.WithContext(ctx, s.log), rental.ID.String(), scooterID.String()).
		Info("rental started",
			zap.String("account_id", accountID.String()),
			zap.String("rental_type", string(rentalType.Name)),
		)
	return rental, nil
}

func (s *Service) startRental(ctx context.Context, accountID, scooterID uuid.UUID, rentalTypeID int64) (*domain.Rental, *domain.RentalType, error) {
	account, err := s.accounts.FindByID(ctx, s.db, accountID)
	if err != nil {
		return nil, nil, err
	}
	if account == nil {
		return nil, nil, domain.NotFound("account")
	}
	if account.Balance.IsNegative() {
		return nil, nil, domain.InvalidState("negative balance")
	}

	scooter, err := s.scooters.FindByID(ctx, s.db, scooterID)
	if err != nil {
		return nil, nil, err
	}
	if scooter == nil {
		return nil, nil, domain.NotFound("scooter")
	}

	rentalType, err := s.repo.FindRentalType(ctx, s.db, rentalTypeID)
	if err != nil {
		return nil, nil, err
	}
	if rentalType == nil {
		return nil, nil, domain.NotFound("rental type")
	}

	now := s.clock.Now()
	rental := domain.Rental{
		ID:           uuid.New(),
		AccountID:    account.ID,
		ScooterID:    scooter.ID,
		RentalTypeID: rentalType.ID,
		Status:       domain.StatusActive,
		StartTime:    now,
		Distance:     decimal.Zero,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		reserved, err := s.scooters.MarkRentedIfAvailable(ctx, tx, scooter.ID, now)
		if err != nil {
			return err
		}
		if !reserved {
			return domain.Conflict("scooter is not available")
		}

		if err := s.repo.Insert(ctx, tx, &rental); err != nil {
			if db.IsDuplicateKeyErr(err) {
				return domain.Conflict("scooter already has an active rental")
			}
			return err
		}
		return nil
	})
	if err != nil {
		return nil, nil, err
	}
	return &rental, rentalType, nil
}

// EndRental charges the account for the ride and puts the scooter back in service.
// The rental, the debit and the scooter release commit together or not at all.
func (s *Service) EndRental(ctx context.Context, rentalID uuid.UUID, distance decimal.Decimal) (*domain.Rental, error) {
	ctx, span := tracing.Start(ctx, tracerName, "rental.end", attribute.String("rental.id", rentalID.String()))
	defer span.End()

	if distance.IsNegative() {
		recordSpanError(span, domain.ErrInvalidDistance)
		return nil, domain.ErrInvalidDistance
	}

	rental, rentalType, err := s.endRental(ctx, rentalID, distance.Round(pricing.Scale))
	if err != nil {
		recordSpanError(span, err)
		logger.WithContext(ctx, s.log).Info("rental end rejected",
			zap.String("rental_id", rentalID.String()),
			zap.Error(err),
		)
		return nil, err
	}

	s.metrics.RecordRentalCompleted(ctx, string(rentalType.Name), rental.TotalPrice.Decimal.InexactFloat64())
	logger.WithRental(logger.WithContext(ctx, s.log), rental.ID.String(), rental.ScooterID.String()).
		Info("rental completed",
			zap.String("account_id", rental.AccountID.String()),
			zap.String("total_price", rental.TotalPrice.Decimal.StringFixed(pricing.Scale)),
			zap.String("distance", rental.Distance.StringFixed(pricing.Scale)),
		)
	return rental, nil
}

func (s *Service) endRental(ctx context.Context, rentalID uuid.UUID, distance decimal.Decimal) (*domain.Rental, *domain.RentalType, error) {
	var (
		result     *domain.Rental
		rentalType *domain.RentalType
	)

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		rental, err := s.repo.FindByIDForUpdate(ctx, tx, rentalID)
		if err != nil {
			return err
		}
		if rental == nil {
			return domain.NotFound("rental")
		}
		if !rental.Active() {
			return domain.InvalidState("rental is not active")
		}

		end := s.clock.Now()
		hours := pricing.HoursFromDuration(end.Sub(rental.StartTime))

		scooter, err := s.scooters.FindByID(ctx, tx, rental.ScooterID)
		if err != nil {
			return err
		}
		if scooter == nil {
			return domain.NotFound("scooter")
		}
		if scooter.PricingPlanID == nil {
			return domain.NotFound("pricing plan")
		}

		plan, err := s.plans.FindByID(ctx, tx, *scooter.PricingPlanID)
		if err != nil {
			return err
		}
		if plan == nil {
			return domain.NotFound("pricing plan")
		}

		rentalType, err = s.repo.FindRentalType(ctx, tx, rental.RentalTypeID)
		if err != nil {
			return err
		}
		if rentalType == nil {
			return domain.NotFound("rental type")
		}

		price, err := pricing.Price(hours, rentalType.Name, plan.Rates())
		if err != nil {
			if errors.Is(err, pricing.ErrUnknownRentalType) {
				return domain.InvalidState("unknown rental type")
			}
			return err
		}
		// the stored total and the debit must be the same cents
		price = pricing.Charge(price)

		completed, err := s.repo.Complete(ctx, tx, rental.ID, domain.Completion{
			EndTime:    end,
			Distance:   distance,
			TotalPrice: price,
		})
		if err != nil {
			return err
		}
		if !completed {
			return domain.InvalidState("rental is not active")
		}

		debited, err := s.accounts.Debit(ctx, tx, rental.AccountID, price, end)
		if err != nil {
			return err
		}
		if !debited {
			return domain.NotFound("account")
		}

		released, err := s.scooters.Release(ctx, tx, scooter.ID, distance, end)
		if err != nil {
			return err
		}
		if !released {
			return domain.NotFound("scooter")
		}

		rental.Status = domain.StatusCompleted
		rental.EndTime = &end
		rental.Distance = distance
		rental.TotalPrice = decimal.NewNullDecimal(price)
		rental.UpdatedAt = end
		result = rental
		return nil
	})
	if err != nil {
		return nil, nil, err
	}
	return result, rentalType, nil
}

func (s *Service) Get(ctx context.Context, id uuid.UUID) (*domain.Rental, error) {
	rental, err := s.repo.FindByID(ctx, s.db, id)
	if err != nil {
		return nil, err
	}
	if rental == nil {
		return nil, domain.NotFound("rental")
	}
	return rental, nil
}

func (s *Service) List(ctx context.Context, req domain.ListRequest) (*domain.ListResponse, error) {
	filter := domain.ListFilter{
		AccountID: req.AccountID,
		ScooterID: req.ScooterID,
		Status:    req.Status,
	}
	items, err := s.repo.List(ctx, s.db, filter, req.Pagination)
	if err != nil {
		return nil, err
	}

	rentals, pageInfo, err := pagination.Page(items, req.Limit(), func(r domain.Rental) pagination.Cursor {
		return pagination.Cursor{ID: r.ID.String(), CreatedAt: r.CreatedAt}
	})
	if err != nil {
		return nil, err
	}
	return &domain.ListResponse{PageInfo: pageInfo, Rentals: rentals}, nil
}

func (s *Service) ListRentalTypes(ctx context.Context) ([]domain.RentalType, error) {
	return s.repo.ListRentalTypes(ctx, s.db)
}

// Receipt works from the stored rental; an account or scooter deleted since the ride
// leaves its fields blank.
func (s *Service) Receipt(ctx context.Context, id uuid.UUID) ([]byte, error) {
	rental, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if rental.Active() || rental.EndTime == nil {
		return nil, domain.InvalidState("rental is not completed")
	}

	policy := s.policy.Get().Receipt
	data := pdf.ReceiptData{
		CompanyName:    policy.CompanyName,
		CompanyAddress: policy.CompanyAddress,
		RentalID:       rental.ID.String(),
		ScooterID:      rental.ScooterID.String(),
		StartedAt:      rental.StartTime.UTC().Format(receiptTimeLayout),
		EndedAt:        rental.EndTime.UTC().Format(receiptTimeLayout),
		Hours:          pricing.HoursFromDuration(rental.EndTime.Sub(rental.StartTime)).StringFixed(pricing.Scale),
		Distance:       rental.Distance.StringFixed(pricing.Scale),
		Total:          rental.TotalPrice.Decimal.StringFixed(pricing.Scale),
	}

	account, err := s.accounts.FindByID(ctx, s.db, rental.AccountID)
	if err != nil {
		return nil, err
	}
	if account != nil {
		data.AccountName = account.Name
		data.AccountEmail = account.Email
	}

	scooter, err := s.scooters.FindByID(ctx, s.db, rental.ScooterID)
	if err != nil {
		return nil, err
	}
	if scooter != nil {
		model, err := s.models.FindByID(ctx, s.db, scooter.ModelID)
		if err != nil {
			return nil, err
		}
		if model != nil {
			data.ScooterModel = model.Name
		}
	}

	rentalType, err := s.repo.FindRentalType(ctx, s.db, rental.RentalTypeID)
	if err != nil {
		return nil, err
	}
	if rentalType != nil {
		data.RentalType = string(rentalType.Name)
	}

	return s.receipts.GenerateRentalReceipt(ctx, data)
}

func recordSpanError(span trace.Span, err error) {
	if kind := domain.KindOf(err); kind != "" {
		span.SetAttributes(tracing.SafeAttributes(attribute.String("error.kind", kind))...)
	}
	safe := tracing.SafeError(err)
	span.RecordError(safe)
	span.SetStatus(codes.Error, safe.Error())
}
