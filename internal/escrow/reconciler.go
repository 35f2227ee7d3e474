package escrow

import (
	"context"
	"errors"
	"time"

	"github.com/go-co-op/gocron/v2"
	db "github.com/katatrina/workhub-BE/internal/db/sqlc"
	"github.com/rs/zerolog/log"
)

const reconcileBatchSize = 50

// Reconciler periodically re-checks transactions still in created state, for clients
// that paid but never called the confirmation endpoint.
type Reconciler struct {
	service   *Service
	scheduler gocron.Scheduler
	interval  time.Duration
	minAge    time.Duration
}

func NewReconciler(service *Service, interval, minAge time.Duration) (*Reconciler, error) {
	scheduler, err := gocron.NewScheduler()
	if err != nil {
		return nil, err
	}

	return &Reconciler{
		service:   service,
		scheduler: scheduler,
		interval:  interval,
		minAge:    minAge,
	}, nil
}

// Start schedules the reconcile job. Overlapping runs are skipped.
func (r *Reconciler) Start() error {
	_, err := r.scheduler.NewJob(
		gocron.DurationJob(r.interval),
		gocron.NewTask(
			func() {
				escrowed := r.reconcile(context.Background())
				log.Info().
					Str("job", "reconcile_escrow").
					Int("escrowed", escrowed).
					Msg("escrow reconcile finished")
			},
		),
		gocron.WithSingletonMode(gocron.LimitModeReschedule),
	)
	if err != nil {
		return err
	}

	r.scheduler.Start()
	return nil
}

func (r *Reconciler) Stop() error {
	return r.scheduler.Shutdown()
}

// reconcile returns the number of transactions moved into escrow.
func (r *Reconciler) reconcile(ctx context.Context) int {
	transactions, err := r.service.store.ListStaleCreatedTransactions(ctx, db.ListStaleCreatedTransactionsParams{
		CreatedBefore: r.service.now().Add(-r.minAge),
		MaxRows:       reconcileBatchSize,
	})
	if err != nil {
		log.Error().Err(err).Msg("failed to list created transactions")
		return 0
	}

	escrowed := 0
	for _, transaction := range transactions {
		_, err = r.service.Confirm(ctx, transaction.PaymentIntentID)
		switch {
		case err == nil:
			escrowed++
		case errors.Is(err, ErrPaymentNotSettled):
			log.Debug().Str("payment_intent_id", transaction.PaymentIntentID).Msg("payment still not settled")
		default:
			log.Error().Err(err).Str("payment_intent_id", transaction.PaymentIntentID).Msg("failed to reconcile transaction")
		}
	}

	return escrowed
}
