package punch

import (
	"context"
	"net/http"
	"sync"
	"time"

	"github.com/Petros-Code/Pointeuse-MeduzaStore/internal/geofence"
	puncherrors "github.com/Petros-Code/Pointeuse-MeduzaStore/internal/punch/errors"
	"github.com/Petros-Code/Pointeuse-MeduzaStore/internal/shared/apperror"
	"github.com/Petros-Code/Pointeuse-MeduzaStore/internal/shared/contextutil"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

var confirmations = map[Action]string{
	ActionStartDay:   "Day started, have a good one!",
	ActionStartBreak: "Break started. Rest well!",
	ActionEndBreak:   "Break over, back to work!",
	ActionEndDay:     "Day complete. See you tomorrow!",
}

//go:generate mockgen -source=punch_service.go -destination=mock/punch_service_mock.go -package=mock
type Service interface {
	// Record validates the action against today's status and appends it.
	// When geofencing is enabled and the request carries coordinates, an
	// out-of-zone position is rejected.
	Record(ctx context.Context, userID, username string, req RecordRequest) (RecordResponse, error)
	Status(ctx context.Context, userID string) (UserStatus, error)
	History(ctx context.Context, userID, date string) ([]EventResponse, error)
}

type service struct {
	repo   Repository
	geo    geofence.Service
	loc    *time.Location
	locks  *userLocks
	now    func() time.Time
	logger *zap.Logger
}

func NewService(repo Repository, geo geofence.Service, loc *time.Location, logger ...*zap.Logger) Service {
	l := zap.L().Named("punch.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("punch.service")
	}
	return &service{
		repo:   repo,
		geo:    geo,
		loc:    loc,
		locks:  newUserLocks(),
		now:    time.Now,
		logger: l,
	}
}

func (s *service) Record(ctx context.Context, userID, username string, req RecordRequest) (RecordResponse, error) {
	rid := contextutil.GetRequestID(ctx)

	action := Action(req.Action)
	if !ValidAction(action) {
		return RecordResponse{}, puncherrors.ErrInvalidAction
	}

	uid, err := uuid.Parse(userID)
	if err != nil {
		return RecordResponse{}, puncherrors.ErrInvalidUserID
	}

	if req.Latitude != nil && req.Longitude != nil {
		result, err := s.geo.Check(ctx, *req.Latitude, *req.Longitude)
		if err != nil {
			return RecordResponse{}, err
		}
		if !result.InZone {
			s.logger.Info("punch rejected out of zone",
				zap.String("request_id", rid),
				zap.String("user_id", userID),
				zap.Int("distance_m", result.Distance),
			)
			return RecordResponse{}, apperror.New(apperror.CodeForbidden, result.Message, http.StatusForbidden)
		}
	}

	// The read-validate-append below must not interleave for one user,
	// otherwise two racing requests could both pass the start_day check.
	unlock := s.locks.lock(userID)
	defer unlock()

	now := s.now().In(s.loc)
	today := now.Format(DateLayout)

	events, err := s.repo.FindByUserAndDate(ctx, userID, today)
	if err != nil {
		return RecordResponse{}, err
	}

	current := ComputeStatus(events)
	if !AllowedFrom(action, current.Status) {
		return RecordResponse{}, transitionError(action)
	}

	event := &ClockEvent{
		ID:        uuid.New(),
		UserID:    uid,
		Username:  username,
		Action:    action,
		Timestamp: now,
		Date:      today,
	}
	if err := s.repo.Append(ctx, event); err != nil {
		return RecordResponse{}, err
	}

	s.logger.Info("punch recorded",
		zap.String("request_id", rid),
		zap.String("user_id", userID),
		zap.String("action", string(action)),
		zap.String("date", today),
	)

	return RecordResponse{
		Message: confirmations[action],
		Event:   mapToEventResponse(*event),
	}, nil
}

func (s *service) Status(ctx context.Context, userID string) (UserStatus, error) {
	if _, err := uuid.Parse(userID); err != nil {
		return UserStatus{}, puncherrors.ErrInvalidUserID
	}

	today := s.now().In(s.loc).Format(DateLayout)
	events, err := s.repo.FindByUserAndDate(ctx, userID, today)
	if err != nil {
		return UserStatus{}, err
	}
	return ComputeStatus(events), nil
}

func (s *service) History(ctx context.Context, userID, date string) ([]EventResponse, error) {
	if _, err := uuid.Parse(userID); err != nil {
		return nil, puncherrors.ErrInvalidUserID
	}

	var (
		events []ClockEvent
		err    error
	)
	if date != "" {
		if _, parseErr := time.Parse(DateLayout, date); parseErr != nil {
			return nil, apperror.InvalidField("Date")
		}
		events, err = s.repo.FindByUserAndDate(ctx, userID, date)
	} else {
		events, err = s.repo.FindByUser(ctx, userID, "", "")
	}
	if err != nil {
		return nil, err
	}

	sorted := SortEvents(events)
	res := make([]EventResponse, len(sorted))
	for i, e := range sorted {
		res[i] = mapToEventResponse(e)
	}
	return res, nil
}

func transitionError(action Action) error {
	switch action {
	case ActionStartDay:
		return puncherrors.ErrAlreadyStarted
	case ActionStartBreak:
		return puncherrors.ErrNotWorking
	case ActionEndBreak:
		return puncherrors.ErrNotOnBreak
	case ActionEndDay:
		return puncherrors.ErrDayEnded
	}
	return puncherrors.ErrInvalidAction
}

func mapToEventResponse(e ClockEvent) EventResponse {
	return EventResponse{
		ID:        e.ID.String(),
		UserID:    e.UserID.String(),
		Username:  e.Username,
		Action:    string(e.Action),
		Timestamp: e.Timestamp.Format(time.RFC3339),
		Date:      e.Date,
	}
}

// userLocks hands out one mutex per user id so punches for different
// users never contend with each other.
type userLocks struct {
	mu    sync.Mutex
	locks map[string]*sync.Mutex
}

func newUserLocks() *userLocks {
	return &userLocks{locks: make(map[string]*sync.Mutex)}
}

func (u *userLocks) lock(key string) func() {
	u.mu.Lock()
	m, ok := u.locks[key]
	if !ok {
		m = &sync.Mutex{}
		u.locks[key] = m
	}
	u.mu.Unlock()

	m.Lock()
	return m.Unlock
}
