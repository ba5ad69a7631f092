package punch

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/Petros-Code/Pointeuse-MeduzaStore/internal/geofence"
	puncherrors "github.com/Petros-Code/Pointeuse-MeduzaStore/internal/punch/errors"
	"github.com/Petros-Code/Pointeuse-MeduzaStore/internal/shared/apperror"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

type fakeRepo struct {
	mu     sync.Mutex
	events []ClockEvent

	appendErr error
	findErr   error
}

func (f *fakeRepo) Append(ctx context.Context, e *ClockEvent) error {
	if f.appendErr != nil {
		return f.appendErr
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.events = append(f.events, *e)
	return nil
}

func (f *fakeRepo) FindByUserAndDate(ctx context.Context, userID, date string) ([]ClockEvent, error) {
	if f.findErr != nil {
		return nil, f.findErr
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []ClockEvent
	for _, e := range f.events {
		if e.UserID.String() == userID && e.Date == date {
			out = append(out, e)
		}
	}
	return out, nil
}

func (f *fakeRepo) FindByUser(ctx context.Context, userID, from, to string) ([]ClockEvent, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []ClockEvent
	for _, e := range f.events {
		if e.UserID.String() == userID {
			out = append(out, e)
		}
	}
	return out, nil
}

func (f *fakeRepo) FindByDate(ctx context.Context, date string) ([]ClockEvent, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []ClockEvent
	for _, e := range f.events {
		if e.Date == date {
			out = append(out, e)
		}
	}
	return out, nil
}

func (f *fakeRepo) FindByMonth(ctx context.Context, year int, month time.Month) ([]ClockEvent, error) {
	return nil, nil
}

func (f *fakeRepo) ArchiveYear(ctx context.Context, year int) ([]ClockEvent, error) {
	return nil, nil
}

func (f *fakeRepo) FindArchivedYear(ctx context.Context, year int) ([]ClockEvent, error) {
	return nil, nil
}

type fakeGeo struct {
	result geofence.Result
	err    error
}

func (f *fakeGeo) Check(ctx context.Context, lat, lon float64) (geofence.Result, error) {
	return f.result, f.err
}

func (f *fakeGeo) GetConfig(ctx context.Context) (geofence.Config, error) {
	return geofence.DefaultConfig(), nil
}

func (f *fakeGeo) UpdateConfig(ctx context.Context, req geofence.UpdateConfigRequest) (geofence.Config, error) {
	return geofence.Config{}, nil
}

func newTestService(repo Repository, geo geofence.Service) *service {
	svc := NewService(repo, geo, time.UTC).(*service)
	svc.now = func() time.Time {
		return time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC)
	}
	return svc
}

func TestService_Record_FullDay(t *testing.T) {
	repo := &fakeRepo{}
	svc := newTestService(repo, &fakeGeo{result: geofence.Result{InZone: true}})
	ctx := context.Background()
	userID := uuid.New().String()

	for _, action := range []Action{ActionStartDay, ActionStartBreak, ActionEndBreak, ActionEndDay} {
		resp, err := svc.Record(ctx, userID, "alice", RecordRequest{Action: string(action)})
		assert.NoError(t, err, "recording %s", action)
		assert.Equal(t, string(action), resp.Event.Action)
		assert.NotEmpty(t, resp.Message)
	}

	assert.Len(t, repo.events, 4)
}

func TestService_Record_RejectsInvalidTransitions(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name    string
		seed    []Action
		action  Action
		wantErr error
	}{
		{"double start_day", []Action{ActionStartDay}, ActionStartDay, puncherrors.ErrAlreadyStarted},
		{"break before start", nil, ActionStartBreak, puncherrors.ErrNotWorking},
		{"break during break", []Action{ActionStartDay, ActionStartBreak}, ActionStartBreak, puncherrors.ErrNotWorking},
		{"end_break while working", []Action{ActionStartDay}, ActionEndBreak, puncherrors.ErrNotOnBreak},
		{"end_day twice", []Action{ActionStartDay, ActionEndDay}, ActionEndDay, puncherrors.ErrDayEnded},
		{"unknown action", nil, Action("lunch"), puncherrors.ErrInvalidAction},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := &fakeRepo{}
			svc := newTestService(repo, &fakeGeo{result: geofence.Result{InZone: true}})
			userID := uuid.New().String()

			for i, a := range tt.seed {
				svc.now = func() time.Time {
					return time.Date(2026, 3, 10, 9+i, 0, 0, 0, time.UTC)
				}
				_, err := svc.Record(ctx, userID, "alice", RecordRequest{Action: string(a)})
				assert.NoError(t, err)
			}

			_, err := svc.Record(ctx, userID, "alice", RecordRequest{Action: string(tt.action)})
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestService_Record_InvalidUserID(t *testing.T) {
	svc := newTestService(&fakeRepo{}, &fakeGeo{result: geofence.Result{InZone: true}})

	_, err := svc.Record(context.Background(), "not-a-uuid", "alice", RecordRequest{Action: string(ActionStartDay)})
	assert.ErrorIs(t, err, puncherrors.ErrInvalidUserID)
}

func TestService_Record_OutOfZone(t *testing.T) {
	repo := &fakeRepo{}
	svc := newTestService(repo, &fakeGeo{result: geofence.Result{
		InZone:   false,
		Distance: 250,
		Message:  "Out of zone (250m > 100m)",
	}})

	lat, lon := 48.86, 2.35
	_, err := svc.Record(context.Background(), uuid.New().String(), "alice", RecordRequest{
		Action:    string(ActionStartDay),
		Latitude:  &lat,
		Longitude: &lon,
	})

	assert.Error(t, err)
	httpErr := apperror.ToHTTP(err)
	assert.Equal(t, 403, httpErr.Status)
	assert.Empty(t, repo.events)
}

func TestService_Record_NoCoordinatesSkipsGeofence(t *testing.T) {
	repo := &fakeRepo{}
	// Geofence service errors if consulted; without coordinates it must
	// not be.
	svc := newTestService(repo, &fakeGeo{err: errors.New("should not be called")})

	_, err := svc.Record(context.Background(), uuid.New().String(), "alice", RecordRequest{Action: string(ActionStartDay)})
	assert.NoError(t, err)
	assert.Len(t, repo.events, 1)
}

func TestService_Record_ConcurrentStartDay(t *testing.T) {
	repo := &fakeRepo{}
	svc := newTestService(repo, &fakeGeo{result: geofence.Result{InZone: true}})
	userID := uuid.New().String()

	const attempts = 20
	var wg sync.WaitGroup
	var successes int64
	var mu sync.Mutex

	for i := 0; i < attempts; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := svc.Record(context.Background(), userID, "alice", RecordRequest{Action: string(ActionStartDay)})
			if err == nil {
				mu.Lock()
				successes++
				mu.Unlock()
			}
		}()
	}
	wg.Wait()

	assert.EqualValues(t, 1, successes)
	assert.Len(t, repo.events, 1)
}

func TestService_Status(t *testing.T) {
	repo := &fakeRepo{}
	svc := newTestService(repo, &fakeGeo{result: geofence.Result{InZone: true}})
	userID := uuid.New().String()
	ctx := context.Background()

	status, err := svc.Status(ctx, userID)
	assert.NoError(t, err)
	assert.Equal(t, StatusNotStarted, status.Status)

	_, err = svc.Record(ctx, userID, "alice", RecordRequest{Action: string(ActionStartDay)})
	assert.NoError(t, err)

	status, err = svc.Status(ctx, userID)
	assert.NoError(t, err)
	assert.Equal(t, StatusWorking, status.Status)
}

func TestService_History(t *testing.T) {
	repo := &fakeRepo{}
	svc := newTestService(repo, &fakeGeo{result: geofence.Result{InZone: true}})
	userID := uuid.New().String()
	ctx := context.Background()

	_, err := svc.Record(ctx, userID, "alice", RecordRequest{Action: string(ActionStartDay)})
	assert.NoError(t, err)

	events, err := svc.History(ctx, userID, "2026-03-10")
	assert.NoError(t, err)
	assert.Len(t, events, 1)
	assert.Equal(t, string(ActionStartDay), events[0].Action)

	all, err := svc.History(ctx, userID, "")
	assert.NoError(t, err)
	assert.Len(t, all, 1)

	_, err = svc.History(ctx, userID, "10/03/2026")
	assert.Error(t, err)
}
