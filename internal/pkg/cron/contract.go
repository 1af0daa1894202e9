package cron

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/contracthq/contracts-backend-go/internal/domain/contract"
)

// StatusReconciler recomputes and persists contract statuses.
type StatusReconciler interface {
	ReconcileAll(ctx context.Context) ([]contract.StatusUpdate, error)
}

// TokenCleaner removes expired refresh tokens.
type TokenCleaner interface {
	DeleteExpired(ctx context.Context) (int64, error)
}

type ContractJobs struct {
	reconciler StatusReconciler
	tokens     TokenCleaner
}

func NewContractJobs(reconciler StatusReconciler, tokens TokenCleaner) *ContractJobs {
	return &ContractJobs{
		reconciler: reconciler,
		tokens:     tokens,
	}
}

func (j *ContractJobs) RegisterJobs(scheduler *Scheduler) error {
	if err := scheduler.AddJob("reconcile_contract_statuses", "@hourly", j.ReconcileStatuses); err != nil {
		return err
	}
	return scheduler.AddJob("cleanup_expired_tokens", "@daily", j.CleanupExpiredTokens)
}

func (j *ContractJobs) ReconcileStatuses(ctx context.Context) error {
	slog.Info("Cron: Starting contract status reconciliation")

	updates, err := j.reconciler.ReconcileAll(ctx)
	if err != nil {
		return fmt.Errorf("failed to reconcile contract statuses: %w", err)
	}

	if len(updates) == 0 {
		slog.Info("Cron: No contract status changes")
		return nil
	}

	for _, update := range updates {
		slog.Info("Cron: Contract status changed",
			"contract_id", update.ContractID,
			"old_status", update.OldStatus,
			"new_status", update.NewStatus,
			"reason", update.Reason)
	}

	slog.Info("Cron: Contract status reconciliation done", "count", len(updates))
	return nil
}

func (j *ContractJobs) CleanupExpiredTokens(ctx context.Context) error {
	deleted, err := j.tokens.DeleteExpired(ctx)
	if err != nil {
		return fmt.Errorf("failed to clean up expired tokens: %w", err)
	}

	if deleted > 0 {
		slog.Info("Cron: Cleaned up expired refresh tokens", "count", deleted)
	}
	return nil
}
