package app

import (
	"context"

	"gofo-dispatch/internal/service/dispatch"
	"gofo-dispatch/internal/transport/kafka"
)

// makeOrderIntake adapts the dispatch service to the Kafka order intake.
func makeOrderIntake(svc *dispatch.Service) kafka.HandleFunc {
	return func(_ context.Context, spec dispatch.OrderSpec) error {
		_, err := svc.AddOrder(spec)
		return err
	}
}
