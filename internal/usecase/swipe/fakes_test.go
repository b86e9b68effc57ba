package swipe

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/investmatch/backend/internal/domain"
)

type pair [2]int

type fakeSwipeRepo struct {
	mu        sync.Mutex
	swipes    map[pair]*domain.Swipe
	nextID    int
	upsertErr error
}

func newFakeSwipeRepo() *fakeSwipeRepo {
	return &fakeSwipeRepo{swipes: make(map[pair]*domain.Swipe)}
}

func (f *fakeSwipeRepo) Upsert(_ context.Context, swipe *domain.Swipe) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.upsertErr != nil {
		return f.upsertErr
	}
	key := pair{swipe.SwiperID, swipe.TargetID}
	if existing, ok := f.swipes[key]; ok {
		swipe.ID = existing.ID
	} else {
		f.nextID++
		swipe.ID = f.nextID
	}
	swipe.CreatedAt = time.Now()
	swipe.Undone = false
	stored := *swipe
	f.swipes[key] = &stored
	return nil
}

func (f *fakeSwipeRepo) GetByUsers(_ context.Context, swiperID, targetID int) (*domain.Swipe, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	swipe, ok := f.swipes[pair{swiperID, targetID}]
	if !ok {
		return nil, domain.ErrSwipeNotFound
	}
	copied := *swipe
	return &copied, nil
}

func (f *fakeSwipeRepo) HasActiveLike(_ context.Context, swiperID, targetID int) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	swipe, ok := f.swipes[pair{swiperID, targetID}]
	return ok && swipe.Action == domain.ActionLike && !swipe.Undone, nil
}

func (f *fakeSwipeRepo) ActiveTargetIDs(_ context.Context, swiperID int) ([]int, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var ids []int
	for key, swipe := range f.swipes {
		if key[0] == swiperID && !swipe.Undone {
			ids = append(ids, key[1])
		}
	}
	sort.Ints(ids)
	return ids, nil
}

func (f *fakeSwipeRepo) MarkSkipUndone(_ context.Context, swiperID, targetID int) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	swipe, ok := f.swipes[pair{swiperID, targetID}]
	if !ok || swipe.Action != domain.ActionSkip || swipe.Undone {
		return false, nil
	}
	swipe.Undone = true
	return true, nil
}

type fakeMatchRepo struct {
	mu      sync.Mutex
	matches map[pair]*domain.Match
	nextID  int
}

func newFakeMatchRepo() *fakeMatchRepo {
	return &fakeMatchRepo{matches: make(map[pair]*domain.Match)}
}

func (f *fakeMatchRepo) CreateIfAbsent(_ context.Context, match *domain.Match) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	user1ID, user2ID := domain.CanonicalPair(match.User1ID, match.User2ID)
	match.User1ID, match.User2ID = user1ID, user2ID
	key := pair{user1ID, user2ID}
	if existing, ok := f.matches[key]; ok {
		*match = *existing
		return false, nil
	}
	f.nextID++
	match.ID = f.nextID
	match.CreatedAt = time.Now()
	stored := *match
	f.matches[key] = &stored
	return true, nil
}

func (f *fakeMatchRepo) GetByUsers(_ context.Context, user1ID, user2ID int) (*domain.Match, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	user1ID, user2ID = domain.CanonicalPair(user1ID, user2ID)
	match, ok := f.matches[pair{user1ID, user2ID}]
	if !ok {
		return nil, domain.ErrMatchNotFound
	}
	copied := *match
	return &copied, nil
}

func (f *fakeMatchRepo) GetUserMatches(_ context.Context, userID int, limit, offset int) ([]*domain.Match, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var matches []*domain.Match
	for _, match := range f.matches {
		if match.HasUser(userID) {
			copied := *match
			matches = append(matches, &copied)
		}
	}
	sort.Slice(matches, func(i, j int) bool {
		return matches[i].CreatedAt.After(matches[j].CreatedAt)
	})
	if offset > len(matches) {
		offset = len(matches)
	}
	matches = matches[offset:]
	if limit > 0 && len(matches) > limit {
		matches = matches[:limit]
	}
	return matches, nil
}

func (f *fakeMatchRepo) UpdateInsight(_ context.Context, matchID int, insight string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, match := range f.matches {
		if match.ID == matchID {
			match.Insight = &insight
			return nil
		}
	}
	return domain.ErrMatchNotFound
}

func (f *fakeMatchRepo) count() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.matches)
}

type fakeProfileRepo struct {
	profiles map[int]*domain.Profile
}

func newFakeProfileRepo(profiles ...*domain.Profile) *fakeProfileRepo {
	repo := &fakeProfileRepo{profiles: make(map[int]*domain.Profile)}
	for _, profile := range profiles {
		repo.profiles[profile.UserID] = profile
	}
	return repo
}

func (f *fakeProfileRepo) GetByUserID(_ context.Context, userID int) (*domain.Profile, error) {
	profile, ok := f.profiles[userID]
	if !ok {
		return nil, domain.ErrProfileNotFound
	}
	return profile, nil
}

func (f *fakeProfileRepo) ListEligible(_ context.Context, role domain.Role, excluding []int, limit int) ([]*domain.Profile, error) {
	excluded := make(map[int]struct{}, len(excluding))
	for _, id := range excluding {
		excluded[id] = struct{}{}
	}
	var result []*domain.Profile
	for _, profile := range f.profiles {
		if profile.Role != role {
			continue
		}
		if _, skip := excluded[profile.UserID]; skip {
			continue
		}
		result = append(result, profile)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].UserID < result[j].UserID })
	if limit > 0 && len(result) > limit {
		result = result[:limit]
	}
	return result, nil
}

type walletCall struct {
	userID    int
	amount    int
	reason    string
	reference string
}

type fakeWallet struct {
	mu       sync.Mutex
	balances map[int]int
	debits   []walletCall
	credits  []walletCall
	failWith error
}

func newFakeWallet() *fakeWallet {
	return &fakeWallet{balances: make(map[int]int)}
}

func (f *fakeWallet) Debit(_ context.Context, userID, amount int, reason, reference string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failWith != nil {
		return f.failWith
	}
	if f.balances[userID] < amount {
		return domain.ErrInsufficientPoints
	}
	f.balances[userID] -= amount
	f.debits = append(f.debits, walletCall{userID, amount, reason, reference})
	return nil
}

func (f *fakeWallet) Credit(_ context.Context, userID, amount int, reason, reference string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.balances[userID] += amount
	f.credits = append(f.credits, walletCall{userID, amount, reason, reference})
	return nil
}

type fakeQuotaRepo struct {
	mu     sync.Mutex
	states map[int]domain.QuotaState
}

func newFakeQuotaRepo() *fakeQuotaRepo {
	return &fakeQuotaRepo{states: make(map[int]domain.QuotaState)}
}

func (f *fakeQuotaRepo) Get(_ context.Context, userID int) (domain.QuotaState, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	state, ok := f.states[userID]
	if !ok {
		return domain.QuotaState{UserID: userID}, nil
	}
	return state, nil
}

func (f *fakeQuotaRepo) ConfirmAction(_ context.Context, userID int, day string) (int, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	state := f.states[userID]
	if state.Date != day {
		state = domain.QuotaState{UserID: userID, Date: day}
	}
	state.Actions++
	f.states[userID] = state
	return state.Actions, nil
}

func (f *fakeQuotaRepo) SetLastSkip(_ context.Context, userID int, day string, targetID int, at time.Time) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	state := f.states[userID]
	if state.Date != day {
		state = domain.QuotaState{UserID: userID, Date: day}
	}
	state.LastSkipAt = &at
	state.LastSkipTargetID = &targetID
	state.CanUndo = true
	f.states[userID] = state
	return nil
}

func (f *fakeQuotaRepo) ClearUndo(_ context.Context, userID int) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	state := f.states[userID]
	state.CanUndo = false
	f.states[userID] = state
	return nil
}
