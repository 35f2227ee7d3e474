package worker

import (
	"context"

	"github.com/hibiken/asynq"
	db "github.com/katatrina/workhub-BE/internal/db/sqlc"
)

const (
	TaskEscrowHeld = "escrow:held"
)

/*
This file contains the code that creates tasks and distributes them to the Redis queue.
*/

type TaskDistributor interface {
	DistributeTaskEscrowHeld(ctx context.Context, payload *PayloadEscrowHeld, opts ...asynq.Option) error
	NotifyEscrowHeld(ctx context.Context, transaction db.Transaction) error
	Close() error
}

type RedisTaskDistributor struct {
	client *asynq.Client // client sends tasks to redis queue.
}

func NewTaskDistributor(redisOpt asynq.RedisClientOpt) TaskDistributor {
	client := asynq.NewClient(redisOpt)

	return &RedisTaskDistributor{
		client: client,
	}
}

func (distributor *RedisTaskDistributor) Close() error {
	return distributor.client.Close()
}
