package gamification

import (
	"fmt"
	"math/rand"
	"time"

	"github.com/google/uuid"

	"github.com/ascend-app/ascend/internal/domain"
	"github.com/ascend-app/ascend/internal/infra/sqlite"
)

// Notifier receives fire-and-forget messages after a commit. It must
// never block or fail the transaction that produced the event.
type Notifier interface {
	Emit(domain.Notification)
}

// Service ties the pure progression functions to the store. Every
// multi-row mutation happens inside one transaction; the functions the
// transaction re-invokes on contention are pure, so retries are safe.
type Service struct {
	db      *sqlite.DB
	badges  []domain.BadgeDef
	rewards []domain.Reward
	rng     *rand.Rand
	notify  Notifier
}

// NewService creates a gamification service with the default badge and
// reward catalogs.
func NewService(db *sqlite.DB) *Service {
	return &Service{
		db:      db,
		badges:  DefaultBadges(),
		rewards: DefaultRewards(),
		rng:     rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

// SetNotifier wires the fire-and-forget message sink.
func (s *Service) SetNotifier(n Notifier) { s.notify = n }

// InitProfile creates the profile (xp=0, level=1, no badges).
func (s *Service) InitProfile() error {
	return s.db.InitProfile(time.Now())
}

// Profile returns the current profile.
func (s *Service) Profile() (*domain.UserProfile, error) {
	return s.db.GetProfile()
}

// SubmitLog merges a day's log, accrues XP, applies any pending quest
// penalty, recomputes the level, and unlocks badges in one atomic
// transaction. A missing profile aborts: that is an integrity error, not
// a retryable condition.
func (s *Service) SubmitLog(newLog domain.DailyLog) (Result, error) {
	var res Result

	if !domain.ValidDate(newLog.Date) {
		return res, domain.ErrInvalidDate
	}
	if newLog.StudyHours < 0 || newLog.QuranPages < 0 || newLog.Expenses < 0 {
		return res, domain.ErrNegativeStat
	}

	err := s.db.WithTx(func(tx *sqlite.Tx) error {
		profile, err := tx.GetProfile()
		if err != nil {
			return err
		}

		prev, err := tx.GetDailyLog(newLog.Date)
		if err != nil {
			return fmt.Errorf("load existing log: %w", err)
		}
		// The calorie flag latches: once any meal set it, an edit that
		// omits it must not drop the flag (or its already-paid bonus).
		if prev != nil && prev.CaloriesLogged {
			newLog.CaloriesLogged = true
		}

		history, err := tx.ListDailyLogsAsc()
		if err != nil {
			return fmt.Errorf("load history: %w", err)
		}

		quest, err := tx.GetQuest(domain.PrevDate(newLog.Date))
		if err != nil {
			return fmt.Errorf("load quest: %w", err)
		}

		res = Process(*profile, history, newLog, prev, quest, 0, s.badges)

		if res.PenaltyApplied {
			if err := tx.CompleteQuest(quest.Date); err != nil {
				return fmt.Errorf("resolve quest: %w", err)
			}
		}
		if err := tx.UpsertDailyLog(newLog); err != nil {
			return fmt.Errorf("merge log: %w", err)
		}
		if err := tx.SaveProfile(res.XP, res.Level); err != nil {
			return fmt.Errorf("save profile: %w", err)
		}
		now := time.Now()
		for _, id := range res.NewBadges {
			if _, err := tx.UnlockBadge(id, now); err != nil {
				return fmt.Errorf("unlock badge %s: %w", id, err)
			}
		}
		return nil
	})
	if err != nil {
		return Result{}, err
	}

	s.announce(res)
	return res, nil
}

// AddMeal records a meal and, for the first meal of the date, flips the
// calorie flag on that date's log through the normal submission path so
// the flat bonus is awarded exactly once.
func (s *Service) AddMeal(date, name string, calories int) (domain.Meal, bool, error) {
	if !domain.ValidDate(date) {
		return domain.Meal{}, false, domain.ErrInvalidDate
	}

	meal := domain.Meal{
		ID:       uuid.NewString(),
		Date:     date,
		Name:     name,
		Calories: calories,
		LoggedAt: time.Now(),
	}

	first := false
	err := s.db.WithTx(func(tx *sqlite.Tx) error {
		if err := tx.InsertMeal(meal); err != nil {
			return fmt.Errorf("insert meal: %w", err)
		}

		log, err := tx.GetDailyLog(date)
		if err != nil {
			return err
		}
		if log != nil && log.CaloriesLogged {
			return nil // second meal of the day, bonus already paid
		}
		first = true
		return nil
	})
	if err != nil {
		return domain.Meal{}, false, err
	}

	if first {
		log, err := s.db.GetDailyLog(date)
		if err != nil {
			return meal, false, err
		}
		updated := domain.DailyLog{Date: date}
		if log != nil {
			updated = *log
		}
		updated.CaloriesLogged = true
		if _, err := s.SubmitLog(updated); err != nil {
			return meal, false, err
		}
	}
	return meal, first, nil
}

// AwardXP applies a flat XP amount from a non-daily-log event (e.g. a
// milestone) and keeps level in lockstep.
func (s *Service) AwardXP(amount int64) (Result, error) {
	var res Result
	err := s.db.WithTx(func(tx *sqlite.Tx) error {
		profile, err := tx.GetProfile()
		if err != nil {
			return err
		}
		newXP := profile.XP + amount
		if newXP < 0 {
			newXP = 0
		}
		newLevel := LevelForXP(newXP)
		res = Result{
			XP:        newXP,
			Level:     newLevel,
			LeveledUp: newLevel > profile.Level,
			EarnedXP:  amount,
		}
		return tx.SaveProfile(newXP, newLevel)
	})
	if err != nil {
		return Result{}, err
	}
	s.announce(res)
	return res, nil
}

// Log returns one day's log, nil if the day was never logged.
func (s *Service) Log(date string) (*domain.DailyLog, error) {
	if !domain.ValidDate(date) {
		return nil, domain.ErrInvalidDate
	}
	return s.db.GetDailyLog(date)
}

// Logs returns recent logs, newest first.
func (s *Service) Logs(limit int) ([]domain.DailyLog, error) {
	if limit <= 0 || limit > 365 {
		limit = 30
	}
	return s.db.ListDailyLogs(limit)
}

// Meals returns the meals logged on a date.
func (s *Service) Meals(date string) ([]domain.Meal, error) {
	if !domain.ValidDate(date) {
		return nil, domain.ErrInvalidDate
	}
	return s.db.ListMeals(date)
}

// CurrentStreak computes today's abstinence streak on demand.
func (s *Service) CurrentStreak(today string) (int, error) {
	logs, err := s.db.ListDailyLogs(maxStreakLookback)
	if err != nil {
		return 0, err
	}
	return AbstinenceStreak(logs, today), nil
}

// DrawReward grants one weighted-random unclaimed reward atomically.
// Returns (nil, nil) when every reward is already claimed.
func (s *Service) DrawReward() (*domain.Reward, error) {
	var picked *domain.Reward
	err := s.db.WithTx(func(tx *sqlite.Tx) error {
		granted, err := tx.ListGrantedRewards()
		if err != nil {
			return err
		}
		claimed := make(map[string]bool, len(granted))
		for _, g := range granted {
			claimed[g.ID] = true
		}

		var unclaimed []domain.Reward
		for _, r := range s.rewards {
			if !claimed[r.ID] {
				unclaimed = append(unclaimed, r)
			}
		}

		picked = DrawReward(unclaimed, s.rng)
		if picked == nil {
			return nil
		}
		if _, err := tx.GrantReward(picked.ID, time.Now()); err != nil {
			return fmt.Errorf("grant reward: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	if picked != nil && s.notify != nil {
		s.notify.Emit(domain.Notification{
			Type:  domain.NotifyReward,
			Title: "Reward unlocked",
			Body:  fmt.Sprintf("%s (%s)", picked.Name, picked.Rarity),
		})
	}
	return picked, nil
}

// Rewards returns the catalog plus the user's granted set.
func (s *Service) Rewards() ([]domain.Reward, []domain.UserReward, error) {
	granted, err := s.db.ListGrantedRewards()
	if err != nil {
		return nil, nil, err
	}
	return s.rewards, granted, nil
}

// Badges returns the catalog; unlock state comes from the profile.
func (s *Service) Badges() []domain.BadgeDef { return s.badges }

// CreateQuest registers the unexpected quest for a date.
func (s *Service) CreateQuest(date, description string) error {
	if !domain.ValidDate(date) {
		return domain.ErrInvalidDate
	}
	return s.db.InsertQuest(domain.UnexpectedQuest{
		Date:        date,
		Description: description,
		CreatedAt:   time.Now(),
	})
}

// Quest returns the quest for a date, nil if none exists.
func (s *Service) Quest(date string) (*domain.UnexpectedQuest, error) {
	return s.db.GetQuest(date)
}

// CompleteQuest marks a quest finished by the user, which also shields
// it from the next day's penalty check.
func (s *Service) CompleteQuest(date string) error {
	return s.db.CompleteQuest(date)
}

// announce emits post-commit notifications. Fire-and-forget: the commit
// already happened, nothing here can undo it.
func (s *Service) announce(res Result) {
	if s.notify == nil {
		return
	}
	if res.LeveledUp {
		s.notify.Emit(domain.Notification{
			Type:  domain.NotifyLevelUp,
			Title: "Level up!",
			Body:  fmt.Sprintf("You reached level %d.", res.Level),
		})
	}
	for _, id := range res.NewBadges {
		s.notify.Emit(domain.Notification{
			Type:  domain.NotifyBadge,
			Title: "Badge unlocked",
			Body:  id,
		})
	}
}
