package worker

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/hibiken/asynq"
	db "github.com/katatrina/workhub-BE/internal/db/sqlc"
	"github.com/katatrina/workhub-BE/internal/notification"
	"github.com/katatrina/workhub-BE/internal/util"
	"github.com/rs/zerolog/log"
)

// PayloadEscrowHeld contains all data of the task that we want to store in Redis.
type PayloadEscrowHeld struct {
	TransactionID   uuid.UUID `json:"transaction_id"`
	PaymentIntentID string    `json:"payment_intent_id"`
	ClientID        string    `json:"client_id"`
	FreelancerID    string    `json:"freelancer_id"`
	Amount          int64     `json:"amount"`
	Currency        string    `json:"currency"`
}

func (distributor *RedisTaskDistributor) DistributeTaskEscrowHeld(
	ctx context.Context,
	payload *PayloadEscrowHeld,
	opts ...asynq.Option,
) error {
	jsonPayload, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to marshal task payload: %w", err)
	}

	// Một transaction chỉ có một task thông báo
	taskID := fmt.Sprintf("%s:%s", TaskEscrowHeld, payload.TransactionID.String())
	task := asynq.NewTask(TaskEscrowHeld, jsonPayload, append(opts, asynq.TaskID(taskID))...)
	info, err := distributor.client.EnqueueContext(ctx, task)
	if err != nil {
		if errors.Is(err, asynq.ErrTaskIDConflict) {
			log.Info().Str("task_id", taskID).Msg("escrow held task already enqueued")
			return nil
		}
		return fmt.Errorf("failed to enqueue task: %w", err)
	}

	log.Info().
		Str("type", task.Type()).
		Str("task_id", taskID).
		Str("queue", info.Queue).
		Int("max_retry", info.MaxRetry).
		Msg("task enqueued")

	return nil
}

// NotifyEscrowHeld schedules in-app notifications for both parties of a transaction that was just escrowed.
func (distributor *RedisTaskDistributor) NotifyEscrowHeld(ctx context.Context, transaction db.Transaction) error {
	opts := []asynq.Option{
		asynq.MaxRetry(3),
		asynq.Queue(QueueCritical),
	}

	return distributor.DistributeTaskEscrowHeld(ctx, payloadFromTransaction(transaction), opts...)
}

func payloadFromTransaction(transaction db.Transaction) *PayloadEscrowHeld {
	return &PayloadEscrowHeld{
		TransactionID:   transaction.ID,
		PaymentIntentID: transaction.PaymentIntentID,
		ClientID:        transaction.ClientID,
		FreelancerID:    transaction.FreelancerID,
		Amount:          transaction.Amount,
		Currency:        transaction.Currency,
	}
}

func (processor *RedisTaskProcessor) ProcessTaskEscrowHeld(
	ctx context.Context,
	task *asynq.Task,
) error {
	var payload PayloadEscrowHeld
	if err := json.Unmarshal(task.Payload(), &payload); err != nil {
		return fmt.Errorf("failed to unmarshal payload: %w", asynq.SkipRetry)
	}

	if payload.TransactionID == uuid.Nil || payload.ClientID == "" || payload.FreelancerID == "" {
		return fmt.Errorf("incomplete escrow held payload: %w", asynq.SkipRetry)
	}

	for _, n := range escrowHeldNotifications(payload, time.Now()) {
		if err := processor.writer.Write(ctx, n); err != nil {
			return err
		}
	}

	log.Info().Str("type", task.Type()).
		Str("transaction_id", payload.TransactionID.String()).
		Msg("task processed")

	return nil
}

func escrowHeldNotifications(payload PayloadEscrowHeld, now time.Time) []*notification.Notification {
	amount := util.FormatAmount(payload.Amount, payload.Currency)
	referenceID := payload.TransactionID.String()

	return []*notification.Notification{
		{
			ID:          escrowHeldNotificationID(referenceID, payload.FreelancerID),
			RecipientID: payload.FreelancerID,
			Title:       "Payment secured in escrow",
			Message:     fmt.Sprintf("The client's payment of %s is now held in escrow. You can start working on the project.", amount),
			Type:        notification.TypeEscrowHeld,
			ReferenceID: referenceID,
			CreatedAt:   now,
		},
		{
			ID:          escrowHeldNotificationID(referenceID, payload.ClientID),
			RecipientID: payload.ClientID,
			Title:       "Payment held in escrow",
			Message:     fmt.Sprintf("Your payment of %s is held in escrow until the work is approved.", amount),
			Type:        notification.TypeEscrowHeld,
			ReferenceID: referenceID,
			CreatedAt:   now,
		},
	}
}

// escrowHeldNotificationID is stable across task retries, so a retried task overwrites
// the documents it already wrote.
func escrowHeldNotificationID(transactionID, recipientID string) string {
	return fmt.Sprintf("%s:%s:%s", notification.TypeEscrowHeld, transactionID, recipientID)
}
