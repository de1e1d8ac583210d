package services

import (
	"context"
	"errors"

	"github.com/anonto42/socialite/backend/internal/repositories"
	"github.com/anonto42/socialite/backend/pkg/apperrors"
	"github.com/anonto42/socialite/backend/pkg/metrics"
	"github.com/anonto42/socialite/backend/validators"
	"github.com/sirupsen/logrus"
)

// EventEmitter is satisfied by *events.Bus.
type EventEmitter interface {
	Emit(ctx context.Context, subject string, payload any)
	Invalidate(ctx context.Context, path string)
}

type noopEmitter struct{}

func (noopEmitter) Emit(context.Context, string, any) {}
func (noopEmitter) Invalidate(context.Context, string) {}

// base carries what every action needs besides its repositories.
type base struct {
	log      *logrus.Entry
	metrics  *metrics.Metrics
	validate *validators.CustomValidator
}

func newBase(log *logrus.Entry, m *metrics.Metrics) base {
	if log == nil {
		l := logrus.New()
		l.SetLevel(logrus.PanicLevel)
		log = logrus.NewEntry(l)
	}
	return base{log: log, metrics: m, validate: validators.NewValidator()}
}

func requireCaller(callerID string) error {
	if callerID == "" {
		return apperrors.Unauthenticated()
	}
	return nil
}

// fail logs gateway errors and converts them to the generic persistence
// error. Application errors pass through untouched.
func (b base) fail(action string, err error) error {
	var appErr *apperrors.Error
	if errors.As(err, &appErr) {
		return err
	}
	b.log.WithError(err).WithField("action", action).Error("persistence failure")
	return apperrors.Persistence(err)
}

// done records the action outcome and returns err unchanged.
func (b base) done(action string, err error) error {
	outcome := "ok"
	if err != nil {
		outcome = string(apperrors.KindOf(err))
	}
	b.metrics.ObserveAction(action, outcome)
	return err
}

func (b base) invalid(err error) error {
	return apperrors.Validation(validators.Describe(err), nil)
}

func isNotFound(err error) bool {
	return errors.Is(err, repositories.ErrNotFound)
}
