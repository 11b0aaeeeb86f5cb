package engine

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"

	"github.com/sebasblancogonz/bulkup/internal/ledger"
	"github.com/sebasblancogonz/bulkup/internal/models"
	"github.com/sebasblancogonz/bulkup/internal/utils"
)

var (
	ErrPlanNotFound     = errors.New("no active training plan")
	ErrExerciseNotFound = errors.New("exercise not found in plan")
)

// LedgerStore is the durable side of the ledger: one record per identity
// tuple, queryable by week. Implemented by internal/storage.
type LedgerStore interface {
	FindByIdentity(ctx context.Context, id models.RecordIdentity) (*models.WeightRecord, error)
	FindByWeek(ctx context.Context, userID, weekStart string) ([]models.WeightRecord, error)
	Upsert(ctx context.Context, rec *models.WeightRecord) error
	MarkSynced(ctx context.Context, id models.RecordIdentity) error
	FindPendingSync(ctx context.Context, userID string) ([]models.WeightRecord, error)
}

// RemoteClient is the remote weight service. Implemented by internal/remote.
type RemoteClient interface {
	FetchWeights(ctx context.Context, userID, weekStart string) ([]models.WeightRecord, error)
	PushWeights(ctx context.Context, rec *models.WeightRecord) error
}

// PlanProvider supplies the active training plan.
type PlanProvider interface {
	ActivePlan(ctx context.Context) (*models.TrainingPlan, error)
}

type WeekDirection string

const (
	WeekPrevious WeekDirection = "previous"
	WeekNext     WeekDirection = "next"
	WeekCurrent  WeekDirection = "current"
)

// Engine owns the weight cache and drives all reads and writes against the
// local store and the remote service. Construct one per session and pass it
// around; there is no shared global instance.
//
// All cache and week-state mutation happens under one mutex: week fetches
// may run concurrently, but their cache writes are serialized through it.
type Engine struct {
	store    LedgerStore
	remote   RemoteClient
	plans    PlanProvider
	userID   string
	lookback int
	log      *logrus.Entry

	mu          sync.Mutex
	cache       *ledger.Cache
	plan        *models.TrainingPlan
	currentWeek string
	generation  uint64
	loadedWeeks map[string]bool
	fullyLoaded bool
}

func New(store LedgerStore, remote RemoteClient, plans PlanProvider, userID string, lookbackWeeks int) *Engine {
	if lookbackWeeks < 0 {
		lookbackWeeks = 0
	}
	return &Engine{
		store:       store,
		remote:      remote,
		plans:       plans,
		userID:      userID,
		lookback:    lookbackWeeks,
		log:         logrus.WithField("component", "engine"),
		cache:       ledger.NewCache(),
		loadedWeeks: make(map[string]bool),
	}
}

// LoadWeek makes the week containing date the current week and warms the
// cache for it plus the lookback window. Only the target week's cache slice
// is cleared first; other weeks keep whatever they already hold.
//
// Per week: remote first, local store on remote failure. A week whose both
// sources fail stays empty and, for the target week only, surfaces as an
// error. A newer LoadWeek supersedes an older in-flight one: the old call's
// results are discarded at cache-write time via the generation counter.
func (e *Engine) LoadWeek(ctx context.Context, date time.Time) error {
	if err := e.bindPlan(ctx); err != nil {
		return err
	}

	week := utils.FormatWeek(date)

	e.mu.Lock()
	e.generation++
	gen := e.generation
	e.currentWeek = week
	e.fullyLoaded = false
	e.cache.ClearWeek(week)
	delete(e.loadedWeeks, week)

	var weeks []string
	for _, w := range utils.LookbackWindow(date, e.lookback) {
		// Lookback weeks already warmed by a previous navigation are
		// skipped; the target week never is, it was just cleared.
		if w != week && e.loadedWeeks[w] {
			continue
		}
		weeks = append(weeks, w)
	}
	e.mu.Unlock()

	var targetErr error
	g, gctx := errgroup.WithContext(ctx)
	for _, w := range weeks {
		w := w
		g.Go(func() error {
			err := e.loadOneWeek(gctx, gen, w, week)
			if err != nil && w == week {
				targetErr = err
			}
			return nil
		})
	}
	g.Wait()

	e.mu.Lock()
	if gen == e.generation {
		e.fullyLoaded = true
	}
	e.mu.Unlock()

	return targetErr
}

// loadOneWeek fetches a single week from the remote service, falling back
// to the local store. It returns an error only when both sources failed;
// the week is then left empty.
func (e *Engine) loadOneWeek(ctx context.Context, gen uint64, week, targetWeek string) error {
	records, err := e.remote.FetchWeights(ctx, e.userID, week)
	if err != nil {
		e.log.WithError(err).WithField("week", week).
			Warn("Remote fetch failed, falling back to local store")

		records, err = e.store.FindByWeek(ctx, e.userID, week)
		if err != nil {
			e.log.WithError(err).WithField("week", week).
				Error("Local fallback failed, week left empty")
			return fmt.Errorf("Failed to load week %s: %w", week, err)
		}
	}

	e.applyWeek(gen, week, targetWeek, records)
	return nil
}

// applyWeek writes one week's records into the cache. Writes from a load
// that has been superseded by a newer one are dropped here.
func (e *Engine) applyWeek(gen uint64, week, targetWeek string, records []models.WeightRecord) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if gen != e.generation {
		e.log.WithField("week", week).Debug("Dropping results of superseded week load")
		return
	}

	for _, rec := range records {
		for _, set := range rec.SortedSets() {
			if set.Weight <= 0 {
				continue
			}
			if rec.ExerciseName == "" {
				// Record from before exercise names entered the key.
				// Readable only through migrate-on-read.
				raw := ledger.LegacyRawKey(rec.PlanID, rec.Day, rec.ExerciseIndex, set.SetNumber, rec.WeekStart)
				e.cache.SetLegacyWeight(raw, set.Weight)
				continue
			}
			k := ledger.NewKey(rec.PlanID, rec.Day, rec.ExerciseIndex, rec.ExerciseName, set.SetNumber, rec.WeekStart)
			e.cache.SetWeight(k, set.Weight)
		}

		// Notes are an editing concern of the week being viewed; lookback
		// weeks only contribute weights.
		if week == targetWeek && rec.Note != "" && rec.ExerciseName != "" {
			noteKey := ledger.NewKey(rec.PlanID, rec.Day, rec.ExerciseIndex, rec.ExerciseName, ledger.NoSet, rec.WeekStart)
			e.cache.SetNote(noteKey, rec.Note)
		}
	}

	e.loadedWeeks[week] = true
	e.log.WithFields(logrus.Fields{
		"week":    week,
		"entries": e.cache.WeekSize(week),
	}).Debug("Week cached")
}

// ChangeWeek navigates relative to the current week and loads the result.
func (e *Engine) ChangeWeek(ctx context.Context, direction WeekDirection) error {
	e.mu.Lock()
	cur := e.currentWeek
	e.mu.Unlock()

	if direction == WeekCurrent {
		return e.LoadWeek(ctx, time.Now())
	}

	// Not positioned yet: navigate relative to this week.
	base := utils.WeekStart(time.Now())
	if cur != "" {
		parsed, err := utils.ParseWeek(cur)
		if err != nil {
			return fmt.Errorf("Invalid current week %q: %w", cur, err)
		}
		base = parsed
	}

	switch direction {
	case WeekPrevious:
		return e.LoadWeek(ctx, utils.AddWeeks(base, -1))
	case WeekNext:
		return e.LoadWeek(ctx, utils.AddWeeks(base, 1))
	default:
		return fmt.Errorf("Unknown week direction %q", direction)
	}
}

// UpdateWeight records a weight for one set of the current week, cache
// only. Zero or negative clears the set. Nothing is persisted until
// SaveWeek.
func (e *Engine) UpdateWeight(day string, exerciseIndex int, exerciseName string, setIndex int, weight float64) {
	e.mu.Lock()
	defer e.mu.Unlock()

	k := ledger.NewKey(e.planIDLocked(), day, exerciseIndex, exerciseName, setIndex, e.currentWeekLocked())
	e.cache.SetWeight(k, weight)
}

// WeightFor reads one set's cached weight for the current week, healing
// legacy-format entries into canonical keys as a side effect.
func (e *Engine) WeightFor(day string, exerciseIndex int, exerciseName string, setIndex int) (float64, bool) {
	e.mu.Lock()
	defer e.mu.Unlock()

	return e.weightAtLocked(e.currentWeekLocked(), day, exerciseIndex, exerciseName, setIndex)
}

// WeightAt is WeightFor for an arbitrary week of the lookback window, for
// historical display.
func (e *Engine) WeightAt(week, day string, exerciseIndex int, exerciseName string, setIndex int) (float64, bool) {
	e.mu.Lock()
	defer e.mu.Unlock()

	return e.weightAtLocked(week, day, exerciseIndex, exerciseName, setIndex)
}

func (e *Engine) weightAtLocked(week, day string, exerciseIndex int, exerciseName string, setIndex int) (float64, bool) {
	k := ledger.NewKey(e.planIDLocked(), day, exerciseIndex, exerciseName, setIndex, week)
	return e.cache.MigrateLegacyRead(k, k.LegacyStrings())
}

// NoteFor reads the cached note of an exercise for the current week.
func (e *Engine) NoteFor(day string, exerciseIndex int, exerciseName string) (string, bool) {
	e.mu.Lock()
	defer e.mu.Unlock()

	k := ledger.NewKey(e.planIDLocked(), day, exerciseIndex, exerciseName, ledger.NoSet, e.currentWeekLocked())
	return e.cache.Note(k)
}

// SaveWeek persists the exercise's current week: a full-length set list is
// built from the cache (missing sets become weight 0 for positional
// integrity), upserted locally with the needs-sync flag, then pushed to the
// remote service. The returned bool reports whether the push succeeded; a
// failed push is not an error, the record stays flagged and readable
// locally until a later retry.
func (e *Engine) SaveWeek(ctx context.Context, day string, exerciseIndex int, exerciseName, note string) (bool, error) {
	if err := e.bindPlan(ctx); err != nil {
		return false, err
	}

	e.mu.Lock()
	plan := e.plan
	week := e.currentWeekLocked()
	e.mu.Unlock()

	ex, ok := plan.FindExercise(day, exerciseIndex, exerciseName)
	if !ok {
		return false, fmt.Errorf("%w: %s #%d on %s", ErrExerciseNotFound, exerciseName, exerciseIndex, day)
	}
	targetReps := ex.TargetReps()

	e.mu.Lock()
	sets := make([]models.WeightEntry, 0, ex.Sets)
	for i := 0; i < ex.Sets; i++ {
		k := ledger.NewKey(plan.ID, day, exerciseIndex, exerciseName, i, week)
		weight, _ := e.cache.MigrateLegacyRead(k, k.LegacyStrings())
		sets = append(sets, models.WeightEntry{SetNumber: i, Weight: weight, Reps: targetReps})
	}
	e.mu.Unlock()

	rec := &models.WeightRecord{
		UserID:        e.userID,
		PlanID:        plan.ID,
		Day:           day,
		ExerciseName:  exerciseName,
		ExerciseIndex: exerciseIndex,
		WeekStart:     week,
		Sets:          sets,
		Note:          note,
		NeedsSync:     true,
		UpdatedAt:     time.Now().UTC(),
	}

	if err := e.store.Upsert(ctx, rec); err != nil {
		// Cache untouched: the failed save must not change what the user sees.
		return false, fmt.Errorf("Failed to persist weight record: %w", err)
	}

	e.mu.Lock()
	noteKey := ledger.NewKey(plan.ID, day, exerciseIndex, exerciseName, ledger.NoSet, week)
	e.cache.SetNote(noteKey, note)
	e.mu.Unlock()

	if err := e.remote.PushWeights(ctx, rec); err != nil {
		e.log.WithError(err).WithField("exercise", exerciseName).
			Warn("Remote push failed, record kept locally for a later sync")
		return false, nil
	}

	if err := e.store.MarkSynced(ctx, rec.Identity()); err != nil {
		// Harmless: the record will simply be pushed again on retry.
		e.log.WithError(err).Warn("Failed to clear needs-sync flag")
	}
	return true, nil
}

// RetryPending re-pushes every record still flagged needs-sync. Returns how
// many synced and how many are still pending.
func (e *Engine) RetryPending(ctx context.Context) (synced, pending int, err error) {
	records, err := e.store.FindPendingSync(ctx, e.userID)
	if err != nil {
		return 0, 0, fmt.Errorf("Failed to list pending records: %w", err)
	}

	for i := range records {
		rec := &records[i]
		if err := e.remote.PushWeights(ctx, rec); err != nil {
			e.log.WithError(err).WithField("week", rec.WeekStart).
				Warn("Push failed, record stays pending")
			pending++
			continue
		}
		if err := e.store.MarkSynced(ctx, rec.Identity()); err != nil {
			e.log.WithError(err).Warn("Failed to clear needs-sync flag")
		}
		synced++
	}
	return synced, pending, nil
}

// IsFullyLoaded reports whether every week of the last LoadWeek's window
// has been attempted. Completion numbers read before this turns true may
// still be partial.
func (e *Engine) IsFullyLoaded() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.fullyLoaded
}

// CurrentWeek returns the canonical week-start the engine is positioned on.
func (e *Engine) CurrentWeek() string {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.currentWeekLocked()
}

// Plan returns the bound training plan, loading it if needed.
func (e *Engine) Plan(ctx context.Context) (*models.TrainingPlan, error) {
	if err := e.bindPlan(ctx); err != nil {
		return nil, err
	}
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.plan, nil
}

// bindPlan resolves the active plan once and keeps it for key generation.
func (e *Engine) bindPlan(ctx context.Context) error {
	e.mu.Lock()
	bound := e.plan != nil
	e.mu.Unlock()
	if bound {
		return nil
	}

	plan, err := e.plans.ActivePlan(ctx)
	if err != nil {
		return fmt.Errorf("Failed to load active plan: %w", err)
	}
	if plan == nil {
		return ErrPlanNotFound
	}

	e.mu.Lock()
	e.plan = plan
	e.mu.Unlock()
	return nil
}

func (e *Engine) planIDLocked() string {
	if e.plan == nil {
		return ""
	}
	return e.plan.ID
}

func (e *Engine) currentWeekLocked() string {
	if e.currentWeek == "" {
		e.currentWeek = utils.FormatWeek(time.Now())
	}
	return e.currentWeek
}
