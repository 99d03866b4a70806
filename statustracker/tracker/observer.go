package tracker

import (
	"github.com/Ethernal-Tech/bridge-status-tracker/statustracker/core"
	"github.com/Ethernal-Tech/bridge-status-tracker/telemetry"
	"github.com/hashicorp/go-hclog"
)

// ResultObserverImpl logs reconciliation results and reports them as metrics
type ResultObserverImpl struct {
	logger hclog.Logger
}

var _ core.ResultObserver = (*ResultObserverImpl)(nil)

func NewResultObserver(logger hclog.Logger) *ResultObserverImpl {
	return &ResultObserverImpl{
		logger: logger,
	}
}

func (o *ResultObserverImpl) Observe(result core.ReconcileResult) {
	kind := string(result.Kind)

	telemetry.UpdateReconcileOutcomeCounter(kind, string(result.Outcome), 1)

	if sf := result.SoftFailure; sf != nil {
		telemetry.UpdateSoftFailureCounter(kind, string(sf.Kind), 1)

		switch sf.Kind {
		case core.SoftFailureInconsistentHash:
			telemetry.UpdateHashAnomalyCounter(kind, 1)

			o.logger.Warn("Source tx hash anomaly", "itemID", result.ItemID, "err", sf.Err)
		case core.SoftFailurePersistence:
			o.logger.Error("Failed to persist history record", "itemID", result.ItemID, "err", sf.Err)
		default:
			o.logger.Warn("Status reconciliation failed", "itemID", result.ItemID,
				"failure", sf.Kind, "err", sf.Err)
		}
	}

	switch result.Outcome {
	case core.ReconcileOutcomeTerminal:
		o.logger.Info("Item reached terminal status", "itemID", result.ItemID,
			"kind", result.Kind, "status", result.Status)
	case core.ReconcileOutcomeUpdated:
		o.logger.Info("Item status updated", "itemID", result.ItemID,
			"kind", result.Kind, "status", result.Status)
	case core.ReconcileOutcomeMissing:
		o.logger.Debug("Item no longer tracked", "itemID", result.ItemID)
	case core.ReconcileOutcomeHashPending:
		o.logger.Debug("Source tx hash not known yet", "itemID", result.ItemID)
	default:
		o.logger.Debug("Item reconciled", "itemID", result.ItemID, "outcome", result.Outcome)
	}
}
