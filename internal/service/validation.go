package service

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"

	"carehub/internal/errors"
	"carehub/internal/events"
	"carehub/internal/logger"
	"carehub/internal/model"
)

func validateCategory(category model.Category) error {
	if !category.Valid() {
		return fmt.Errorf("%w: unknown caregiving category %q", errors.ErrConstraint, category)
	}
	return nil
}

func validateGender(gender *model.Gender) error {
	if gender != nil && !gender.Valid() {
		return fmt.Errorf("%w: unknown gender %q", errors.ErrConstraint, *gender)
	}
	return nil
}

func validateRate(rate decimal.NullDecimal) error {
	if rate.Valid && rate.Decimal.IsNegative() {
		return fmt.Errorf("%w: hourly rate must not be negative", errors.ErrConstraint)
	}
	return nil
}

func validateWorkHours(hours *int) error {
	if hours != nil && *hours < 0 {
		return fmt.Errorf("%w: work hours must not be negative", errors.ErrConstraint)
	}
	return nil
}

// publish delivers an event after the surrounding write committed. Broker failures are logged only.
func publish(ctx context.Context, publisher events.Publisher, log logger.Logger, eventType string, payload interface{}) {
	if err := publisher.Publish(ctx, events.New(eventType, payload)); err != nil {
		log.InternalError("publish event", err, "type", eventType)
	}
}
