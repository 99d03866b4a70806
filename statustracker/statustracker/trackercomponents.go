package statustracker

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"

	"github.com/Ethernal-Tech/bridge-status-tracker/api"
	apiCore "github.com/Ethernal-Tech/bridge-status-tracker/api/core"
	apiUtils "github.com/Ethernal-Tech/bridge-status-tracker/api/utils"
	"github.com/Ethernal-Tech/bridge-status-tracker/statustracker/api/controllers"
	"github.com/Ethernal-Tech/bridge-status-tracker/statustracker/core"
	databaseaccess "github.com/Ethernal-Tech/bridge-status-tracker/statustracker/database_access"
	"github.com/Ethernal-Tech/bridge-status-tracker/statustracker/fetchers"
	"github.com/Ethernal-Tech/bridge-status-tracker/statustracker/identity"
	"github.com/Ethernal-Tech/bridge-status-tracker/statustracker/ledger"
	"github.com/Ethernal-Tech/bridge-status-tracker/statustracker/subscribers"
	"github.com/Ethernal-Tech/bridge-status-tracker/statustracker/tracker"
	"github.com/Ethernal-Tech/bridge-status-tracker/telemetry"
	"github.com/hashicorp/go-hclog"
)

const (
	MainComponentName = "statustracker"
)

type StatusTrackerComponentsImpl struct {
	ctx             context.Context
	shouldRunAPI    bool
	db              core.Database
	ledger          *ledger.TransactionLedgerImpl
	tracker         *tracker.StatusTrackerImpl
	telemetryWorker *TelemetryWorker
	api             apiCore.API
	telemetry       *telemetry.Telemetry
	logger          hclog.Logger
	errorCh         chan error
}

var _ core.StatusTrackerComponents = (*StatusTrackerComponentsImpl)(nil)

func NewStatusTrackerComponents(
	ctx context.Context,
	appConfig *core.AppConfig,
	shouldRunAPI bool,
	logger hclog.Logger,
) (*StatusTrackerComponentsImpl, error) {
	db, err := databaseaccess.NewDatabase(filepath.Join(appConfig.Settings.DbsPath, MainComponentName+".db"))
	if err != nil {
		return nil, fmt.Errorf("failed to open status tracker database: %w", err)
	}

	components, err := newStatusTrackerComponents(ctx, appConfig, db, shouldRunAPI, logger)
	if err != nil {
		if errClose := db.Close(); errClose != nil {
			logger.Error("Failed to close status tracker db", "err", errClose)
		}

		return nil, err
	}

	return components, nil
}

func newStatusTrackerComponents(
	ctx context.Context,
	appConfig *core.AppConfig,
	db core.Database,
	shouldRunAPI bool,
	logger hclog.Logger,
) (*StatusTrackerComponentsImpl, error) {
	store := tracker.NewHistoryStore(db, logger.Named("history_store"))
	if err := store.Load(); err != nil {
		return nil, fmt.Errorf("failed to load history. err: %w", err)
	}

	transactionLedger := ledger.NewTransactionLedger(db, logger.Named("transaction_ledger"))
	identityProvider := identity.NewIdentityProvider(appConfig.Identity)
	statusFetcher := fetchers.NewStatusFetcher(appConfig.Fetchers, logger.Named("status_fetcher"))

	lifecycleSubscribers := []core.LifecycleSubscriber{subscribers.NewMetricsSubscriber()}
	for _, webhookConfig := range appConfig.Webhooks {
		lifecycleSubscribers = append(lifecycleSubscribers,
			subscribers.NewWebhookSubscriber(webhookConfig, logger.Named("webhook_subscriber")))
	}

	statusTracker := tracker.NewStatusTracker(
		appConfig.Tracker, store, transactionLedger, statusFetcher, identityProvider,
		lifecycleSubscribers, logger.Named("status_tracker"))

	telemetryWorker := NewTelemetryWorker(
		db, statusTracker, appConfig.Tracker.TelemetryWorkerTime(), logger.Named("telemetry_worker"))

	var apiObj *api.APIImpl

	if shouldRunAPI {
		apiLogger, err := apiUtils.NewAPILogger(appConfig.Settings.Logger)
		if err != nil {
			return nil, err
		}

		apiControllers := []apiCore.APIController{
			controllers.NewHistoryController(statusTracker, apiLogger.Named("history_controller")),
			controllers.NewTrackingController(statusTracker, apiLogger.Named("tracking_controller")),
			controllers.NewLedgerController(transactionLedger, apiLogger.Named("ledger_controller")),
			controllers.NewIdentityController(
				appConfig, identityProvider, statusTracker, apiLogger.Named("identity_controller")),
		}

		apiObj, err = api.NewAPI(ctx, appConfig.APIConfig, apiControllers, apiLogger.Named("api"))
		if err != nil {
			return nil, fmt.Errorf("failed to create api: %w", err)
		}
	}

	return &StatusTrackerComponentsImpl{
		ctx:             ctx,
		shouldRunAPI:    shouldRunAPI,
		db:              db,
		ledger:          transactionLedger,
		tracker:         statusTracker,
		telemetryWorker: telemetryWorker,
		api:             apiObj,
		telemetry:       telemetry.NewTelemetry(appConfig.Telemetry, logger.Named("telemetry")),
		logger:          logger,
	}, nil
}

func (s *StatusTrackerComponentsImpl) Start() error {
	s.logger.Debug("Starting StatusTrackerComponents")

	err := s.telemetry.Start()
	if err != nil {
		return err
	}

	s.tracker.Start(s.ctx)

	resumed := s.tracker.Resume()

	go s.telemetryWorker.Start(s.ctx)

	if s.shouldRunAPI {
		go s.api.Start()
	}

	s.errorCh = make(chan error, 1)

	go s.errorHandler()

	s.logger.Debug("Started StatusTrackerComponents", "resumed", resumed)

	return nil
}

func (s *StatusTrackerComponentsImpl) Dispose() error {
	s.logger.Info("Disposing StatusTrackerComponents")

	errs := make([]error, 0)

	if s.shouldRunAPI {
		if err := s.api.Dispose(); err != nil {
			s.logger.Error("error while disposing api", "err", err)
			errs = append(errs, fmt.Errorf("error while disposing api. err: %w", err))
		}
	}

	if err := s.tracker.Dispose(); err != nil {
		s.logger.Error("error while disposing status tracker", "err", err)
		errs = append(errs, fmt.Errorf("error while disposing status tracker. err: %w", err))
	}

	if err := s.ledger.Dispose(); err != nil {
		s.logger.Error("error while disposing transaction ledger", "err", err)
		errs = append(errs, fmt.Errorf("error while disposing transaction ledger. err: %w", err))
	}

	if err := s.db.Close(); err != nil {
		s.logger.Error("Failed to close statustracker db", "err", err)
		errs = append(errs, fmt.Errorf("failed to close statustracker db. err: %w", err))
	}

	if err := s.telemetry.Close(context.Background()); err != nil {
		s.logger.Error("Failed to close telemetry", "err", err)
		errs = append(errs, fmt.Errorf("failed to close telemetry. err: %w", err))
	}

	if len(errs) > 0 {
		return fmt.Errorf("errors while disposing statustracker. errors: %w", errors.Join(errs...))
	}

	s.logger.Info("StatusTrackerComponents disposed")

	return nil
}

func (s *StatusTrackerComponentsImpl) ErrorCh() <-chan error {
	return s.errorCh
}

func (s *StatusTrackerComponentsImpl) errorHandler() {
outsideloop:
	for {
		select {
		case err := <-s.telemetryWorker.ErrorCh():
			if err != nil {
				s.logger.Error("telemetry worker error", "err", err)
				s.errorCh <- err
			}
		case <-s.ctx.Done():
			break outsideloop
		}
	}

	s.logger.Debug("Exiting statustracker error handler")
}
