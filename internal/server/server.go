package server

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/smallbiznis/scootfleet/internal/account"
	accountdomain "github.com/smallbiznis/scootfleet/internal/account/domain"
	"github.com/smallbiznis/scootfleet/internal/authorization"
	"github.com/smallbiznis/scootfleet/internal/config"
	"github.com/smallbiznis/scootfleet/internal/model"
	modeldomain "github.com/smallbiznis/scootfleet/internal/model/domain"
	"github.com/smallbiznis/scootfleet/internal/observability"
	obslogger "github.com/smallbiznis/scootfleet/internal/observability/logger"
	obsmetrics "github.com/smallbiznis/scootfleet/internal/observability/metrics"
	obstracing "github.com/smallbiznis/scootfleet/internal/observability/tracing"
	"github.com/smallbiznis/scootfleet/internal/payment"
	paymentdomain "github.com/smallbiznis/scootfleet/internal/payment/domain"
	"github.com/smallbiznis/scootfleet/internal/pricingplan"
	pricingplandomain "github.com/smallbiznis/scootfleet/internal/pricingplan/domain"
	"github.com/smallbiznis/scootfleet/internal/providers"
	"github.com/smallbiznis/scootfleet/internal/ratelimit"
	"github.com/smallbiznis/scootfleet/internal/rental"
	rentaldomain "github.com/smallbiznis/scootfleet/internal/rental/domain"
	"github.com/smallbiznis/scootfleet/internal/rentalpoint"
	rentalpointdomain "github.com/smallbiznis/scootfleet/internal/rentalpoint/domain"
	"github.com/smallbiznis/scootfleet/internal/scooter"
	scooterdomain "github.com/smallbiznis/scootfleet/internal/scooter/domain"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

var Module = fx.Module("http.server",
	fx.Provide(registerGin),
	authorization.Module,
	providers.Module,
	ratelimit.Module,
	account.Module,
	pricingplan.Module,
	model.Module,
	scooter.Module,
	rentalpoint.Module,
	rental.Module,
	payment.Module,
	fx.Invoke(NewServer),
	fx.Invoke(run),
)

func NewEngine(obsCfg observability.Config, httpMetrics *obsmetrics.HTTPMetrics) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(obslogger.GinMiddleware(obslogger.MiddlewareConfig{
		Debug:           obsCfg.Debug(),
		ErrorClassifier: classifyErrorForLog,
	}))
	r.Use(obstracing.GinMiddleware())
	r.Use(obsmetrics.GinMiddleware(httpMetrics))
	r.Use(ErrorHandlingMiddleware())

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	return r
}

func registerGin(obsCfg observability.Config, httpMetrics *obsmetrics.HTTPMetrics) *gin.Engine {
	if !obsCfg.Debug() {
		gin.SetMode(gin.ReleaseMode)
	}
	return NewEngine(obsCfg, httpMetrics)
}

func run(lc fx.Lifecycle, cfg config.Config, r *gin.Engine, log *zap.Logger) {
	srv := &http.Server{
		Addr:              cfg.HTTPAddr,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			go func() {
				log.Info("http server listening", zap.String("addr", srv.Addr))
				if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
					log.Fatal("http server stopped", zap.Error(err))
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			shutdownCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
			defer cancel()
			return srv.Shutdown(shutdownCtx)
		},
	})
}

type Server struct {
	engine         *gin.Engine
	authzSvc       authorization.Service
	accountSvc     accountdomain.Service
	scooterSvc     scooterdomain.Service
	modelSvc       modeldomain.Service
	pricingPlanSvc pricingplandomain.Service
	rentalPointSvc rentalpointdomain.Service
	rentalSvc      rentaldomain.Service
	paymentSvc     paymentdomain.Service
	rentalLimiter  *ratelimit.RentalLimiter
	obsMetrics     *obsmetrics.Metrics
}

type ServerParams struct {
	fx.In

	Gin            *gin.Engine
	AuthzSvc       authorization.Service
	AccountSvc     accountdomain.Service
	ScooterSvc     scooterdomain.Service
	ModelSvc       modeldomain.Service
	PricingPlanSvc pricingplandomain.Service
	RentalPointSvc rentalpointdomain.Service
	RentalSvc      rentaldomain.Service
	PaymentSvc     paymentdomain.Service
	RentalLimiter  *ratelimit.RentalLimiter `optional:"true"`
	ObsMetrics     *obsmetrics.Metrics      `optional:"true"`
}

func NewServer(p ServerParams) *Server {
	svc := &Server{
		engine:         p.Gin,
		authzSvc:       p.AuthzSvc,
		accountSvc:     p.AccountSvc,
		scooterSvc:     p.ScooterSvc,
		modelSvc:       p.ModelSvc,
		pricingPlanSvc: p.PricingPlanSvc,
		rentalPointSvc: p.RentalPointSvc,
		rentalSvc:      p.RentalSvc,
		paymentSvc:     p.PaymentSvc,
		rentalLimiter:  p.RentalLimiter,
		obsMetrics:     p.ObsMetrics,
	}

	svc.registerAPIRoutes()

	return svc
}

func (s *Server) Engine() *gin.Engine {
	return s.engine
}

func (s *Server) registerAPIRoutes() {
	api := s.engine.Group("/api", s.ActorRequired())

	// -------- Rentals --------
	rentals := api.Group("/rentals")
	{
		rentals.POST("/start", s.authorize(authorization.ObjectRental, authorization.ActionRentalStart), s.StartRental)
		rentals.POST("/end", s.authorize(authorization.ObjectRental, authorization.ActionRentalEnd), s.EndRental)
		rentals.GET("", s.authorize(authorization.ObjectRental, authorization.ActionList), s.ListRentals)
		rentals.GET("/:id", s.authorize(authorization.ObjectRental, authorization.ActionView), s.GetRental)
		rentals.GET("/:id/receipt", s.authorize(authorization.ObjectRental, authorization.ActionView), s.GetRentalReceipt)
		rentals.GET("/user/:userId", s.authorize(authorization.ObjectRental, authorization.ActionView), s.ListRentalsByUser)
		rentals.GET("/scooter/:scooterId", s.authorize(authorization.ObjectRental, authorization.ActionList), s.ListRentalsByScooter)
	}
	api.GET("/rental-types", s.ListRentalTypes)

	// -------- Scooters --------
	scooters := api.Group("/scooters")
	{
		scooters.GET("", s.authorize(authorization.ObjectScooter, authorization.ActionList), s.ListScooters)
		scooters.POST("", s.authorize(authorization.ObjectScooter, authorization.ActionCreate), s.CreateScooter)
		scooters.GET("/:id", s.authorize(authorization.ObjectScooter, authorization.ActionView), s.GetScooterByID)
		scooters.PUT("/:id", s.authorize(authorization.ObjectScooter, authorization.ActionUpdate), s.UpdateScooter)
		scooters.DELETE("/:id", s.authorize(authorization.ObjectScooter, authorization.ActionDelete), s.DeleteScooter)
		scooters.GET("/:id/pricing-plan", s.authorize(authorization.ObjectScooter, authorization.ActionView), s.GetScooterPricingPlan)
	}

	// -------- Scooter models --------
	models := api.Group("/models")
	{
		models.GET("", s.authorize(authorization.ObjectModel, authorization.ActionList), s.ListModels)
		models.POST("", s.authorize(authorization.ObjectModel, authorization.ActionCreate), s.CreateModel)
		models.GET("/:id", s.authorize(authorization.ObjectModel, authorization.ActionView), s.GetModelByID)
		models.PUT("/:id", s.authorize(authorization.ObjectModel, authorization.ActionUpdate), s.UpdateModel)
		models.DELETE("/:id", s.authorize(authorization.ObjectModel, authorization.ActionDelete), s.DeleteModel)
	}

	// -------- Pricing plans --------
	plans := api.Group("/pricing-plans")
	{
		plans.GET("", s.authorize(authorization.ObjectPricingPlan, authorization.ActionList), s.ListPricingPlans)
		plans.POST("", s.authorize(authorization.ObjectPricingPlan, authorization.ActionCreate), s.CreatePricingPlan)
		plans.GET("/:id", s.authorize(authorization.ObjectPricingPlan, authorization.ActionView), s.GetPricingPlanByID)
		plans.PUT("/:id", s.authorize(authorization.ObjectPricingPlan, authorization.ActionUpdate), s.UpdatePricingPlan)
		plans.DELETE("/:id", s.authorize(authorization.ObjectPricingPlan, authorization.ActionDelete), s.DeletePricingPlan)
	}

	// -------- Rental points --------
	points := api.Group("/rental-points")
	{
		points.GET("", s.authorize(authorization.ObjectRentalPoint, authorization.ActionList), s.ListRentalPoints)
		points.POST("", s.authorize(authorization.ObjectRentalPoint, authorization.ActionCreate), s.CreateRentalPoint)
		points.GET("/nearby", s.authorize(authorization.ObjectRentalPoint, authorization.ActionList), s.NearbyRentalPoints)
		points.GET("/:id", s.authorize(authorization.ObjectRentalPoint, authorization.ActionView), s.GetRentalPointByID)
		points.PUT("/:id", s.authorize(authorization.ObjectRentalPoint, authorization.ActionUpdate), s.UpdateRentalPoint)
		points.DELETE("/:id", s.authorize(authorization.ObjectRentalPoint, authorization.ActionDelete), s.DeleteRentalPoint)
		points.GET("/:id/scooters", s.authorize(authorization.ObjectRentalPoint, authorization.ActionView), s.ListRentalPointScooters)
	}

	// -------- Users --------
	users := api.Group("/users")
	{
		users.GET("", s.authorize(authorization.ObjectUser, authorization.ActionList), s.ListUsers)
		users.POST("", s.authorize(authorization.ObjectUser, authorization.ActionCreate), s.CreateUser)
		users.GET("/:id", s.authorize(authorization.ObjectUser, authorization.ActionView), s.GetUserByID)
		users.PUT("/:id", s.authorize(authorization.ObjectUser, authorization.ActionUpdate), s.UpdateUser)
		users.DELETE("/:id", s.authorize(authorization.ObjectUser, authorization.ActionDelete), s.DeleteUser)
	}

	// -------- Payments --------
	payments := api.Group("/payments")
	{
		payments.POST("", s.authorize(authorization.ObjectPayment, authorization.ActionCreate), s.MakePayment)
		payments.GET("/:id", s.authorize(authorization.ObjectPayment, authorization.ActionView), s.GetPaymentByID)
		payments.GET("/user/:userId", s.authorize(authorization.ObjectPayment, authorization.ActionView), s.ListPaymentsByUser)
		payments.PUT("/:id/status", s.authorize(authorization.ObjectPayment, authorization.ActionPaymentUpdateState), s.UpdatePaymentStatus)
	}
}
