package storage

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"os"
	"sort"
	"sync"
	"time"

	"github.com/kamyarmaaf/plan1/internal"
)

// FileStorage keeps everything in memory and flushes to JSON files through
// debounced background workers. Writes are atomic (temp file + rename).
type FileStorage struct {
	profiles map[string]*internal.Profile       // userID -> Profile
	goals    map[string]*internal.LongTermGoal  // goalID -> Goal
	plans    map[string]*internal.PlanRecord    // userID|dateKey -> PlanRecord
	mu       sync.RWMutex

	profilesFile string
	goalsFile    string
	plansFile    string

	saveProfilesChan chan struct{}
	saveGoalsChan    chan struct{}
	savePlansChan    chan struct{}
	shutdownChan     chan struct{}
	saveDelay        time.Duration
	logger           internal.Logger
}

func NewFileStorage(profilesFile, goalsFile, plansFile string, logger internal.Logger) (*FileStorage, error) {
	s := &FileStorage{
		profiles:         make(map[string]*internal.Profile),
		goals:            make(map[string]*internal.LongTermGoal),
		plans:            make(map[string]*internal.PlanRecord),
		profilesFile:     profilesFile,
		goalsFile:        goalsFile,
		plansFile:        plansFile,
		saveProfilesChan: make(chan struct{}, 1),
		saveGoalsChan:    make(chan struct{}, 1),
		savePlansChan:    make(chan struct{}, 1),
		shutdownChan:     make(chan struct{}),
		saveDelay:        500 * time.Millisecond,
		logger:           logger,
	}

	if err := s.loadProfiles(); err != nil {
		logger.Errorf("storage: failed to load profiles: %v", err)
		return nil, err
	}
	if err := s.loadGoals(); err != nil {
		logger.Errorf("storage: failed to load goals: %v", err)
		return nil, err
	}
	if err := s.loadPlans(); err != nil {
		logger.Errorf("storage: failed to load plans: %v", err)
		return nil, err
	}

	go s.saveWorker(s.saveProfilesChan, s.saveProfiles, "profiles")
	go s.saveWorker(s.saveGoalsChan, s.saveGoals, "goals")
	go s.saveWorker(s.savePlansChan, s.savePlans, "plans")

	return s, nil
}

func planKey(userID, dateKey string) string {
	return userID + "|" + dateKey
}

func loadJSONFile[T any](path string) ([]T, error) {
	file, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, err
	}
	defer file.Close()

	var items []T
	if err := json.NewDecoder(file).Decode(&items); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, nil
		}
		return nil, err
	}
	return items, nil
}

func (s *FileStorage) loadProfiles() error {
	profiles, err := loadJSONFile[*internal.Profile](s.profilesFile)
	if err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, p := range profiles {
		s.profiles[p.UserID] = p
	}
	return nil
}

func (s *FileStorage) loadGoals() error {
	goals, err := loadJSONFile[*internal.LongTermGoal](s.goalsFile)
	if err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, g := range goals {
		s.goals[g.ID] = g
	}
	return nil
}

func (s *FileStorage) loadPlans() error {
	plans, err := loadJSONFile[*internal.PlanRecord](s.plansFile)
	if err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, p := range plans {
		s.plans[planKey(p.UserID, p.DateKey)] = p
	}
	return nil
}

func atomicWriteFileJSON(filePath string, data interface{}) error {
	tempFile := filePath + ".tmp"
	f, err := os.Create(tempFile)
	if err != nil {
		return err
	}

	enc := json.NewEncoder(f)
	enc.SetIndent("", "  ")
	if err := enc.Encode(data); err != nil {
		f.Close()
		os.Remove(tempFile)
		return err
	}

	if err := f.Sync(); err != nil {
		f.Close()
		os.Remove(tempFile)
		return err
	}

	if err := f.Close(); err != nil {
		os.Remove(tempFile)
		return err
	}

	return os.Rename(tempFile, filePath)
}

func (s *FileStorage) saveProfiles() error {
	s.mu.RLock()
	profiles := make([]*internal.Profile, 0, len(s.profiles))
	for _, p := range s.profiles {
		profiles = append(profiles, p)
	}
	s.mu.RUnlock()
	return atomicWriteFileJSON(s.profilesFile, profiles)
}

func (s *FileStorage) saveGoals() error {
	s.mu.RLock()
	goals := make([]*internal.LongTermGoal, 0, len(s.goals))
	for _, g := range s.goals {
		goals = append(goals, g)
	}
	s.mu.RUnlock()
	return atomicWriteFileJSON(s.goalsFile, goals)
}

func (s *FileStorage) savePlans() error {
	s.mu.RLock()
	plans := make([]*internal.PlanRecord, 0, len(s.plans))
	for _, p := range s.plans {
		plans = append(plans, p)
	}
	s.mu.RUnlock()
	return atomicWriteFileJSON(s.plansFile, plans)
}

func (s *FileStorage) saveWorker(trigger chan struct{}, save func() error, name string) {
	timer := time.NewTimer(s.saveDelay)
	defer timer.Stop()

	for {
		select {
		case <-trigger:
			timer.Reset(s.saveDelay)
		case <-timer.C:
			if err := save(); err != nil {
				s.logger.Errorf("storage: error saving %s: %v", name, err)
			}
		case <-s.shutdownChan:
			return
		}
	}
}

func (s *FileStorage) requestSave(trigger chan struct{}) {
	select {
	case trigger <- struct{}{}:
	default:
	}
}

// Close stops the save workers and flushes pending data synchronously.
func (s *FileStorage) Close() error {
	close(s.shutdownChan)

	if err := s.saveProfiles(); err != nil {
		return err
	}
	if err := s.saveGoals(); err != nil {
		return err
	}
	return s.savePlans()
}

// --- ProfileRepository ---

func (s *FileStorage) GetProfile(ctx context.Context, userID string) (*internal.Profile, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	p, ok := s.profiles[userID]
	if !ok {
		return nil, ErrNotFound
	}
	cp := *p
	return &cp, nil
}

func (s *FileStorage) SaveProfile(ctx context.Context, profile *internal.Profile) error {
	s.mu.Lock()
	cp := *profile
	s.profiles[profile.UserID] = &cp
	s.mu.Unlock()
	s.requestSave(s.saveProfilesChan)
	return nil
}

// --- GoalRepository ---

func (s *FileStorage) ListGoals(ctx context.Context, userID string) ([]internal.LongTermGoal, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var goals []internal.LongTermGoal
	for _, g := range s.goals {
		if g.UserID == userID {
			goals = append(goals, *g)
		}
	}
	sort.Slice(goals, func(i, j int) bool {
		if goals[i].Priority != goals[j].Priority {
			return goals[i].Priority > goals[j].Priority
		}
		return goals[i].CreatedAt.Before(goals[j].CreatedAt)
	})
	return goals, nil
}

func (s *FileStorage) ListActiveGoals(ctx context.Context, userID string) ([]internal.LongTermGoal, error) {
	all, err := s.ListGoals(ctx, userID)
	if err != nil {
		return nil, err
	}
	active := make([]internal.LongTermGoal, 0, len(all))
	for _, g := range all {
		if g.Status == internal.GoalStatusActive {
			active = append(active, g)
		}
	}
	return active, nil
}

func (s *FileStorage) GetGoal(ctx context.Context, goalID string) (*internal.LongTermGoal, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	g, ok := s.goals[goalID]
	if !ok {
		return nil, ErrNotFound
	}
	cp := *g
	return &cp, nil
}

func (s *FileStorage) CreateGoal(ctx context.Context, goal *internal.LongTermGoal) error {
	s.mu.Lock()
	cp := *goal
	s.goals[goal.ID] = &cp
	s.mu.Unlock()
	s.requestSave(s.saveGoalsChan)
	return nil
}

func (s *FileStorage) UpdateGoal(ctx context.Context, goal *internal.LongTermGoal) error {
	s.mu.Lock()
	if _, ok := s.goals[goal.ID]; !ok {
		s.mu.Unlock()
		return ErrNotFound
	}
	cp := *goal
	s.goals[goal.ID] = &cp
	s.mu.Unlock()
	s.requestSave(s.saveGoalsChan)
	return nil
}

// --- PlanRepository ---

func (s *FileStorage) GetPlan(ctx context.Context, userID, dateKey string) (*internal.PlanRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	p, ok := s.plans[planKey(userID, dateKey)]
	if !ok {
		return nil, ErrNotFound
	}
	cp := *p
	return &cp, nil
}

func (s *FileStorage) UpsertPlan(ctx context.Context, record *internal.PlanRecord) error {
	s.mu.Lock()
	cp := *record
	s.plans[planKey(record.UserID, record.DateKey)] = &cp
	s.mu.Unlock()
	s.requestSave(s.savePlansChan)
	return nil
}

// --- Compile-time assertions ---
var _ ProfileRepository = (*FileStorage)(nil)
var _ GoalRepository = (*FileStorage)(nil)
var _ PlanRepository = (*FileStorage)(nil)
