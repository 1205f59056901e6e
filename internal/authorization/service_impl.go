package authorization

import (
	"context"
	_ "embed"
	"fmt"
	"strings"

	"github.com/casbin/casbin/v2"
	"github.com/casbin/casbin/v2/model"
	gormadapter "github.com/casbin/gorm-adapter/v3"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

//go:embed model.conf
var modelText string

const (
	RoleUser    = "user"
	RoleManager = "manager"
	RoleAdmin   = "admin"
)

const (
	ObjectRental      = "rental"
	ObjectScooter     = "scooter"
	ObjectModel       = "scooter_model"
	ObjectPricingPlan = "pricing_plan"
	ObjectRentalPoint = "rental_point"
	ObjectUser        = "user"
	ObjectPayment     = "payment"
)

// Actions ending in "_any" apply to records owned by someone other than the actor.
const (
	ActionView   = "view"
	ActionList   = "list"
	ActionCreate = "create"
	ActionUpdate = "update"
	ActionDelete = "delete"

	ActionViewAny   = "view_any"
	ActionCreateAny = "create_any"
	ActionUpdateAny = "update_any"

	ActionRentalStart    = "start"
	ActionRentalEnd      = "end"
	ActionRentalStartAny = "start_any"
	ActionRentalEndAny   = "end_any"

	ActionUserAssignRole     = "assign_role"
	ActionPaymentUpdateState = "update_status"
)

type Params struct {
	fx.In

	Log      *zap.Logger
	Enforcer *casbin.SyncedEnforcer
}

type ServiceImpl struct {
	log      *zap.Logger
	enforcer *casbin.SyncedEnforcer
}

func NewEnforcer(db *gorm.DB) (*casbin.SyncedEnforcer, error) {
	adapter, err := gormadapter.NewAdapterByDB(db)
	if err != nil {
		return nil, err
	}
	m, err := model.NewModelFromString(modelText)
	if err != nil {
		return nil, err
	}
	enforcer, err := casbin.NewSyncedEnforcer(m, adapter)
	if err != nil {
		return nil, err
	}
	enforcer.EnableAutoSave(true)
	enforcer.EnableAutoBuildRoleLinks(true)
	if err := enforcer.LoadPolicy(); err != nil {
		return nil, err
	}
	if err := seedPolicies(enforcer); err != nil {
		return nil, err
	}
	enforcer.BuildRoleLinks()
	return enforcer, nil
}

func NewService(p Params) Service {
	return &ServiceImpl{
		log:      p.Log.Named("authorization.service"),
		enforcer: p.Enforcer,
	}
}

func (s *ServiceImpl) Authorize(ctx context.Context, role string, object string, action string) error {
	role = strings.ToLower(strings.TrimSpace(role))
	switch role {
	case RoleUser, RoleManager, RoleAdmin:
	default:
		return ErrInvalidRole
	}
	object = strings.TrimSpace(object)
	if object == "" {
		return ErrInvalidObject
	}
	action = strings.TrimSpace(action)
	if action == "" {
		return ErrInvalidAction
	}

	allowed, err := s.enforcer.Enforce(subject(role), object, action)
	if err != nil {
		return err
	}
	if !allowed {
		s.log.Debug("authorization denied",
			zap.String("role", role),
			zap.String("object", object),
			zap.String("action", action),
		)
		return ErrForbidden
	}
	return nil
}

func subject(role string) string {
	return fmt.Sprintf("role:%s", role)
}

func seedPolicies(enforcer *casbin.SyncedEnforcer) error {
	policies := [][]string{
		// Riders
		{subject(RoleUser), ObjectRental, ActionRentalStart},
		{subject(RoleUser), ObjectRental, ActionRentalEnd},
		{subject(RoleUser), ObjectRental, ActionView},
		{subject(RoleUser), ObjectScooter, ActionView},
		{subject(RoleUser), ObjectScooter, ActionList},
		{subject(RoleUser), ObjectPricingPlan, ActionView},
		{subject(RoleUser), ObjectPricingPlan, ActionList},
		{subject(RoleUser), ObjectRentalPoint, ActionView},
		{subject(RoleUser), ObjectRentalPoint, ActionList},
		{subject(RoleUser), ObjectUser, ActionView},
		{subject(RoleUser), ObjectUser, ActionUpdate},
		{subject(RoleUser), ObjectPayment, ActionCreate},
		{subject(RoleUser), ObjectPayment, ActionView},

		// Fleet managers
		{subject(RoleManager), ObjectRental, ActionList},
		{subject(RoleManager), ObjectRental, ActionViewAny},
		{subject(RoleManager), ObjectRental, ActionRentalStartAny},
		{subject(RoleManager), ObjectRental, ActionRentalEndAny},
		{subject(RoleManager), ObjectScooter, ActionCreate},
		{subject(RoleManager), ObjectScooter, ActionUpdate},
		{subject(RoleManager), ObjectScooter, ActionDelete},
		{subject(RoleManager), ObjectModel, ActionView},
		{subject(RoleManager), ObjectModel, ActionList},
		{subject(RoleManager), ObjectModel, ActionCreate},
		{subject(RoleManager), ObjectModel, ActionUpdate},
		{subject(RoleManager), ObjectModel, ActionDelete},
		{subject(RoleManager), ObjectPricingPlan, ActionCreate},
		{subject(RoleManager), ObjectPricingPlan, ActionUpdate},
		{subject(RoleManager), ObjectPricingPlan, ActionDelete},
		{subject(RoleManager), ObjectRentalPoint, ActionCreate},
		{subject(RoleManager), ObjectRentalPoint, ActionUpdate},
		{subject(RoleManager), ObjectRentalPoint, ActionDelete},
		{subject(RoleManager), ObjectUser, ActionList},
		{subject(RoleManager), ObjectUser, ActionCreate},
		{subject(RoleManager), ObjectUser, ActionViewAny},
		{subject(RoleManager), ObjectPayment, ActionViewAny},

		// Administrators
		{subject(RoleAdmin), ObjectUser, ActionUpdateAny},
		{subject(RoleAdmin), ObjectUser, ActionDelete},
		{subject(RoleAdmin), ObjectUser, ActionUserAssignRole},
		{subject(RoleAdmin), ObjectPayment, ActionCreateAny},
		{subject(RoleAdmin), ObjectPayment, ActionPaymentUpdateState},
	}

	for _, policy := range policies {
		if _, err := enforcer.AddPolicy(policy); err != nil {
			return err
		}
	}

	inheritance := [][]string{
		{subject(RoleManager), subject(RoleUser)},
		{subject(RoleAdmin), subject(RoleManager)},
	}
	for _, rule := range inheritance {
		if _, err := enforcer.AddGroupingPolicy(rule); err != nil {
			return err
		}
	}
	return nil
}
