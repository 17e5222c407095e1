package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/fitlog/fitlog/backend/go-services/internal/activity"
	"github.com/fitlog/fitlog/backend/go-services/internal/activity/repository"
	"github.com/fitlog/fitlog/backend/go-services/pkg/logger"
	"github.com/fitlog/fitlog/backend/go-services/pkg/metrics"
	"github.com/google/uuid"
)

// ErrStoreNotConfigured is wrapped into storage errors when the process
// started without a usable document store connection.
var ErrStoreNotConfigured = repository.ErrNotConfigured

// SummaryWindow is the look-back applied when a summary request has no "from".
const SummaryWindow = 7 * 24 * time.Hour

// Store is the document store gateway. Implementations must be safe for
// concurrent use; every method is a single store call.
type Store interface {
	Insert(ctx context.Context, a *activity.Activity) error
	ListByUser(ctx context.Context, userID string) ([]*activity.Activity, error)
	Query(ctx context.Context, f activity.Filter) ([]*activity.Activity, error)
	Get(ctx context.Context, id, userID string) (*activity.Activity, error)
	Replace(ctx context.Context, a *activity.Activity) error
	Delete(ctx context.Context, id, userID string) error
	Ping(ctx context.Context) error
}

// LogInput is a validated-shape create request. WeightKg is nil when the
// client sent no weight.
type LogInput struct {
	ID              string
	UserID          string
	Type            string
	DurationMinutes int
	Notes           string
	WeightKg        *float64
}

// UpdateInput carries the fields to overwrite; nil means "leave as is".
type UpdateInput struct {
	ActivityID      string
	UserID          string
	Type            *string
	DurationMinutes *int
	Notes           *string
}

// SummaryInput holds the raw summary filters as received.
type SummaryInput struct {
	UserID string
	Type   string
	From   string
	To     string
}

// Service implements the activity operations on top of a Store.
type Service struct {
	store   Store
	now     func() time.Time
	newID   func() string
	objects ObjectStore
	linkTTL time.Duration
}

type Option func(*Service)

// WithClock overrides the time source.
func WithClock(now func() time.Time) Option {
	return func(s *Service) { s.now = now }
}

// WithIDGenerator overrides server-side id generation.
func WithIDGenerator(gen func() string) Option {
	return func(s *Service) { s.newID = gen }
}

func New(store Store, opts ...Option) *Service {
	s := &Service{store: store, now: time.Now, newID: uuid.NewString}
	for _, o := range opts {
		o(s)
	}
	return s
}

func invalid(msg string) error {
	return fmt.Errorf("%w: %s", activity.ErrInvalidRequest, msg)
}

// storeErr records the outcome of a store call and maps it onto the
// service error kinds.
func storeErr(op string, err error) error {
	switch {
	case err == nil:
		metrics.StoreOperations.WithLabelValues(op, "ok").Inc()
		return nil
	case errors.Is(err, repository.ErrNotFound):
		metrics.StoreOperations.WithLabelValues(op, "not_found").Inc()
		return fmt.Errorf("%w: %s", activity.ErrNotFound, op)
	default:
		metrics.StoreOperations.WithLabelValues(op, "error").Inc()
		return fmt.Errorf("%w: %s: %w", activity.ErrStorage, op, err)
	}
}

// Log validates in, estimates calories and stores a new activity.
func (s *Service) Log(ctx context.Context, in LogInput) (*activity.Activity, error) {
	if in.UserID == "" || in.Type == "" {
		return nil, invalid("Missing required fields")
	}
	if in.DurationMinutes <= 0 {
		return nil, invalid("Duration must be a positive integer")
	}
	weight := activity.DefaultWeightKg
	if in.WeightKg != nil {
		if *in.WeightKg <= 0 {
			return nil, invalid("Weight must be a positive number")
		}
		weight = *in.WeightKg
	}

	id := in.ID
	if id == "" {
		id = s.newID()
	}
	now := activity.FormatTime(s.now())
	a := &activity.Activity{
		ID:              id,
		UserID:          in.UserID,
		Type:            in.Type,
		DurationMinutes: in.DurationMinutes,
		Calories:        activity.Calories(in.Type, in.DurationMinutes, weight),
		Notes:           in.Notes,
		Timestamp:       now,
		CreatedAt:       now,
	}

	if err := storeErr("insert", s.store.Insert(ctx, a)); err != nil {
		logger.Errorw("insert activity failed", "userId", a.UserID, "activityId", a.ID, "error", err)
		return nil, err
	}
	metrics.ActivitiesLogged.WithLabelValues(typeLabel(a.Type)).Inc()
	logger.Infow("activity logged", "userId", a.UserID, "activityId", a.ID, "type", a.Type, "minutes", a.DurationMinutes)
	return a, nil
}

// typeLabel bounds metric cardinality to the MET table.
func typeLabel(t string) string {
	if activity.KnownType(t) {
		return t
	}
	return "unknown"
}

// List returns every activity of userID, newest first. No activities is not an error.
func (s *Service) List(ctx context.Context, userID string) ([]*activity.Activity, error) {
	if userID == "" {
		return nil, invalid("Missing userId")
	}
	list, err := s.store.ListByUser(ctx, userID)
	if err := storeErr("list", err); err != nil {
		logger.Errorw("list activities failed", "userId", userID, "error", err)
		return nil, err
	}
	return list, nil
}

// Summary totals a user's activities in [from, to], optionally for one type.
// A missing "from" defaults to SummaryWindow before now and a missing "to" to
// now; each default takes its own reading of the clock.
func (s *Service) Summary(ctx context.Context, in SummaryInput) (*activity.Summary, error) {
	if in.UserID == "" {
		return nil, invalid("Missing userId")
	}
	from, err := s.bound(in.From, "from", func() time.Time { return s.now().Add(-SummaryWindow) })
	if err != nil {
		return nil, err
	}
	to, err := s.bound(in.To, "to", s.now)
	if err != nil {
		return nil, err
	}
	if from > to {
		return nil, invalid("from must not be after to")
	}

	f := activity.Filter{UserID: in.UserID, Type: in.Type, From: from, To: to}
	list, err := s.store.Query(ctx, f)
	if err := storeErr("query", err); err != nil {
		logger.Errorw("summary query failed", "userId", in.UserID, "error", err)
		return nil, err
	}

	sum := &activity.Summary{
		UserID:          in.UserID,
		From:            from,
		To:              to,
		FilterType:      in.Type,
		TotalActivities: len(list),
	}
	if sum.FilterType == "" {
		sum.FilterType = activity.FilterAll
	}
	for _, a := range list {
		sum.TotalMinutes += a.DurationMinutes
		sum.TotalCalories += a.Calories
	}
	return sum, nil
}

func (s *Service) bound(raw, name string, def func() time.Time) (string, error) {
	if raw == "" {
		return activity.FormatTime(def()), nil
	}
	t, err := activity.ParseTime(raw)
	if err != nil {
		return "", invalid(fmt.Sprintf("%s must be an ISO-8601 date or date-time", name))
	}
	return activity.FormatTime(t), nil
}

// Update overwrites the supplied fields of an existing activity. Calories,
// timestamps, id and user are kept as stored, even when the duration changes.
func (s *Service) Update(ctx context.Context, in UpdateInput) (*activity.Activity, error) {
	if in.ActivityID == "" {
		return nil, invalid("Missing activityId")
	}
	if in.UserID == "" {
		return nil, invalid("Missing userId (required for partition key)")
	}
	if in.Type != nil && *in.Type == "" {
		return nil, invalid("type must not be empty")
	}
	if in.DurationMinutes != nil && *in.DurationMinutes <= 0 {
		return nil, invalid("Duration must be a positive integer")
	}

	a, err := s.store.Get(ctx, in.ActivityID, in.UserID)
	if err := storeErr("get", err); err != nil {
		logger.Errorw("read activity failed", "userId", in.UserID, "activityId", in.ActivityID, "error", err)
		return nil, err
	}
	if in.Type != nil {
		a.Type = *in.Type
	}
	if in.DurationMinutes != nil {
		a.DurationMinutes = *in.DurationMinutes
	}
	if in.Notes != nil {
		a.Notes = *in.Notes
	}

	if err := storeErr("replace", s.store.Replace(ctx, a)); err != nil {
		logger.Errorw("replace activity failed", "userId", in.UserID, "activityId", in.ActivityID, "error", err)
		return nil, err
	}
	logger.Infow("activity updated", "userId", a.UserID, "activityId", a.ID)
	return a, nil
}

// Delete removes one activity. userID is required before the store is touched.
func (s *Service) Delete(ctx context.Context, activityID, userID string) error {
	if userID == "" {
		return invalid("Missing userId (required for partition key)")
	}
	if activityID == "" {
		return invalid("Missing activityId")
	}
	if err := storeErr("delete", s.store.Delete(ctx, activityID, userID)); err != nil {
		logger.Errorw("delete activity failed", "userId", userID, "activityId", activityID, "error", err)
		return err
	}
	logger.Infow("activity deleted", "userId", userID, "activityId", activityID)
	return nil
}

// Ready reports whether the store answers.
func (s *Service) Ready(ctx context.Context) error {
	return s.store.Ping(ctx)
}
