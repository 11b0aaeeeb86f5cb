package engine_test

import (
	"context"
	"sync"

	"github.com/sebasblancogonz/bulkup/internal/models"
)

// fakeStore is an in-memory LedgerStore keyed by record identity, which
// gives it the one-record-per-identity upsert semantics of the real thing.
type fakeStore struct {
	mu        sync.Mutex
	records   map[models.RecordIdentity]models.WeightRecord
	weekErr   map[string]error
	upsertErr error
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		records: make(map[models.RecordIdentity]models.WeightRecord),
		weekErr: make(map[string]error),
	}
}

func (f *fakeStore) FindByIdentity(_ context.Context, id models.RecordIdentity) (*models.WeightRecord, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	rec, ok := f.records[id]
	if !ok {
		return nil, nil
	}
	return &rec, nil
}

func (f *fakeStore) FindByWeek(_ context.Context, userID, weekStart string) ([]models.WeightRecord, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.weekErr[weekStart]; err != nil {
		return nil, err
	}
	var out []models.WeightRecord
	for id, rec := range f.records {
		if id.UserID == userID && id.WeekStart == weekStart {
			out = append(out, rec)
		}
	}
	return out, nil
}

func (f *fakeStore) Upsert(_ context.Context, rec *models.WeightRecord) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.upsertErr != nil {
		return f.upsertErr
	}
	f.records[rec.Identity()] = *rec
	return nil
}

func (f *fakeStore) MarkSynced(_ context.Context, id models.RecordIdentity) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if rec, ok := f.records[id]; ok {
		rec.NeedsSync = false
		f.records[id] = rec
	}
	return nil
}

func (f *fakeStore) FindPendingSync(_ context.Context, userID string) ([]models.WeightRecord, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []models.WeightRecord
	for id, rec := range f.records {
		if id.UserID == userID && rec.NeedsSync {
			out = append(out, rec)
		}
	}
	return out, nil
}

func (f *fakeStore) get(id models.RecordIdentity) (models.WeightRecord, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	rec, ok := f.records[id]
	return rec, ok
}

func (f *fakeStore) put(rec models.WeightRecord) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.records[rec.Identity()] = rec
}

// fakeRemote is an in-memory RemoteClient with per-week canned responses
// and failures. The optional fetchHook runs after the response snapshot is
// taken, so tests can stall one fetch while the data underneath changes.
type fakeRemote struct {
	mu        sync.Mutex
	weeks     map[string][]models.WeightRecord
	fetchErr  map[string]error
	fetched   []string
	pushErr   error
	pushed    []models.WeightRecord
	fetchHook func(week string)
}

func newFakeRemote() *fakeRemote {
	return &fakeRemote{
		weeks:    make(map[string][]models.WeightRecord),
		fetchErr: make(map[string]error),
	}
}

func (f *fakeRemote) FetchWeights(_ context.Context, _, weekStart string) ([]models.WeightRecord, error) {
	f.mu.Lock()
	f.fetched = append(f.fetched, weekStart)
	err := f.fetchErr[weekStart]
	records := append([]models.WeightRecord(nil), f.weeks[weekStart]...)
	hook := f.fetchHook
	f.mu.Unlock()

	if hook != nil {
		hook(weekStart)
	}
	if err != nil {
		return nil, err
	}
	return records, nil
}

func (f *fakeRemote) PushWeights(_ context.Context, rec *models.WeightRecord) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.pushErr != nil {
		return f.pushErr
	}
	f.pushed = append(f.pushed, *rec)
	return nil
}

func (f *fakeRemote) setWeek(week string, records ...models.WeightRecord) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.weeks[week] = records
}

func (f *fakeRemote) setPushErr(err error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.pushErr = err
}

func (f *fakeRemote) fetchCount(week string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	n := 0
	for _, w := range f.fetched {
		if w == week {
			n++
		}
	}
	return n
}

func (f *fakeRemote) totalFetches() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.fetched)
}

func (f *fakeRemote) pushCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.pushed)
}

type fakePlans struct {
	plan *models.TrainingPlan
	err  error
}

func (f *fakePlans) ActivePlan(_ context.Context) (*models.TrainingPlan, error) {
	return f.plan, f.err
}
