package progress

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/english-learn/backend/internal/models"
)

type Store struct {
	db *sql.DB
}

func NewStore(db *sql.DB) *Store {
	return &Store{db: db}
}

// ── Points ──

// GetOrCreatePoints fetches the user's point balance, creating the row
// at zero if this is the first access.
func (s *Store) GetOrCreatePoints(userID int64) (*models.UserPoints, error) {
	_, err := s.db.Exec(
		`INSERT INTO user_points (user_id) VALUES ($1) ON CONFLICT (user_id) DO NOTHING`,
		userID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to ensure points row: %w", err)
	}

	p := &models.UserPoints{UserID: userID}
	err = s.db.QueryRow(
		`SELECT total_points, level, updated_at FROM user_points WHERE user_id = $1`,
		userID,
	).Scan(&p.TotalPoints, &p.Level, &p.UpdatedAt)
	if err != nil {
		return nil, fmt.Errorf("failed to get points: %w", err)
	}
	return p, nil
}

// AddPoints adds delta to the user's balance in one statement so that
// concurrent awards never lose an update. The level is recomputed from
// the new total inside the same statement.
func (s *Store) AddPoints(userID, delta int64) (*models.UserPoints, error) {
	p := &models.UserPoints{UserID: userID}
	err := s.db.QueryRow(
		`INSERT INTO user_points (user_id, total_points, level, updated_at)
		 VALUES ($1, $2, $2 / 100 + 1, NOW())
		 ON CONFLICT (user_id) DO UPDATE SET
			total_points = user_points.total_points + EXCLUDED.total_points,
			level = (user_points.total_points + EXCLUDED.total_points) / 100 + 1,
			updated_at = NOW()
		 RETURNING total_points, level, updated_at`,
		userID, delta,
	).Scan(&p.TotalPoints, &p.Level, &p.UpdatedAt)
	if err != nil {
		return nil, fmt.Errorf("failed to add points: %w", err)
	}
	return p, nil
}

// ── Streaks ──

func (s *Store) GetOrCreateStreak(userID int64) (*models.UserStreak, error) {
	_, err := s.db.Exec(
		`INSERT INTO user_streaks (user_id) VALUES ($1) ON CONFLICT (user_id) DO NOTHING`,
		userID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to ensure streak row: %w", err)
	}

	st := &models.UserStreak{UserID: userID}
	err = s.db.QueryRow(
		`SELECT current_streak, longest_streak, last_activity_date
		 FROM user_streaks WHERE user_id = $1`,
		userID,
	).Scan(&st.CurrentStreak, &st.LongestStreak, &st.LastActivityDate)
	if err != nil {
		return nil, fmt.Errorf("failed to get streak: %w", err)
	}
	return st, nil
}

// AdvanceStreak applies one day of activity to the user's streak. The
// row is locked for the duration of the transaction so two requests
// landing on the same day cannot both extend the streak.
func (s *Store) AdvanceStreak(userID int64, now time.Time) (*models.UserStreak, StreakUpdate, error) {
	tx, err := s.db.Begin()
	if err != nil {
		return nil, StreakUpdate{}, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.Exec(
		`INSERT INTO user_streaks (user_id) VALUES ($1) ON CONFLICT (user_id) DO NOTHING`,
		userID,
	)
	if err != nil {
		return nil, StreakUpdate{}, fmt.Errorf("failed to ensure streak row: %w", err)
	}

	st := &models.UserStreak{UserID: userID}
	err = tx.QueryRow(
		`SELECT current_streak, longest_streak, last_activity_date
		 FROM user_streaks WHERE user_id = $1 FOR UPDATE`,
		userID,
	).Scan(&st.CurrentStreak, &st.LongestStreak, &st.LastActivityDate)
	if err != nil {
		return nil, StreakUpdate{}, fmt.Errorf("failed to lock streak row: %w", err)
	}

	update := AdvanceStreak(st.CurrentStreak, st.LongestStreak, st.LastActivityDate, now)

	today := utcDate(now)
	_, err = tx.Exec(
		`UPDATE user_streaks
		 SET current_streak = $2, longest_streak = $3, last_activity_date = $4
		 WHERE user_id = $1`,
		userID, update.Current, update.Longest, today,
	)
	if err != nil {
		return nil, StreakUpdate{}, fmt.Errorf("failed to update streak: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return nil, StreakUpdate{}, fmt.Errorf("failed to commit streak: %w", err)
	}

	st.CurrentStreak = update.Current
	st.LongestStreak = update.Longest
	st.LastActivityDate = &today
	return st, update, nil
}

// ── Achievements ──

func (s *Store) GetAchievementByName(name string) (*models.Achievement, error) {
	a := &models.Achievement{}
	err := s.db.QueryRow(
		`SELECT id, name, description, points FROM achievements WHERE name = $1`,
		name,
	).Scan(&a.ID, &a.Name, &a.Description, &a.Points)
	if err != nil {
		return nil, fmt.Errorf("failed to get achievement %q: %w", name, err)
	}
	return a, nil
}

func (s *Store) GetAllAchievements() ([]models.Achievement, error) {
	rows, err := s.db.Query(
		`SELECT id, name, description, points FROM achievements ORDER BY id`,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list achievements: %w", err)
	}
	defer rows.Close()

	var out []models.Achievement
	for rows.Next() {
		var a models.Achievement
		if err := rows.Scan(&a.ID, &a.Name, &a.Description, &a.Points); err != nil {
			return nil, fmt.Errorf("failed to scan achievement: %w", err)
		}
		out = append(out, a)
	}
	return out, rows.Err()
}

func (s *Store) GetUserAchievements(userID int64) ([]models.UserAchievement, error) {
	rows, err := s.db.Query(
		`SELECT ua.id, ua.achievement_id, ua.earned_at, a.name, a.description, a.points
		 FROM user_achievements ua
		 JOIN achievements a ON a.id = ua.achievement_id
		 WHERE ua.user_id = $1
		 ORDER BY ua.earned_at DESC`,
		userID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list user achievements: %w", err)
	}
	defer rows.Close()

	var out []models.UserAchievement
	for rows.Next() {
		ua := models.UserAchievement{UserID: userID, Achievement: &models.Achievement{}}
		err := rows.Scan(
			&ua.ID, &ua.AchievementID, &ua.EarnedAt,
			&ua.Achievement.Name, &ua.Achievement.Description, &ua.Achievement.Points,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan user achievement: %w", err)
		}
		ua.Achievement.ID = ua.AchievementID
		out = append(out, ua)
	}
	return out, rows.Err()
}

// UnlockAchievement awards the named achievement if the user does not
// already have it. The first-unlock decision rides on the insert's
// conflict clause, so two concurrent requests can both call this and
// exactly one observes unlocked == true.
func (s *Store) UnlockAchievement(userID int64, name string) (bool, *models.Achievement, error) {
	a, err := s.GetAchievementByName(name)
	if err != nil {
		return false, nil, err
	}

	res, err := s.db.Exec(
		`INSERT INTO user_achievements (user_id, achievement_id)
		 VALUES ($1, $2)
		 ON CONFLICT (user_id, achievement_id) DO NOTHING`,
		userID, a.ID,
	)
	if err != nil {
		return false, nil, fmt.Errorf("failed to unlock achievement: %w", err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return false, nil, fmt.Errorf("failed to read unlock result: %w", err)
	}
	if n == 0 {
		return false, a, nil
	}
	return true, a, nil
}

// ── Activity counters ──

func (s *Store) CountExerciseResults(userID int64) (int, error) {
	var n int
	err := s.db.QueryRow(
		`SELECT COUNT(*) FROM user_exercise_results WHERE user_id = $1`,
		userID,
	).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("failed to count exercise results: %w", err)
	}
	return n, nil
}

func (s *Store) CountExamResults(userID int64) (int, error) {
	var n int
	err := s.db.QueryRow(
		`SELECT COUNT(*) FROM user_exam_results WHERE user_id = $1`,
		userID,
	).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("failed to count exam results: %w", err)
	}
	return n, nil
}

func (s *Store) CountWordsLearned(userID int64) (int, error) {
	var n int
	err := s.db.QueryRow(
		`SELECT COUNT(*) FROM user_progress WHERE user_id = $1 AND mastery_level > 0`,
		userID,
	).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("failed to count words learned: %w", err)
	}
	return n, nil
}

// ── Mastery ──

// BumpMastery raises the mastery level for an item by one, capped at
// the maximum, creating the row at level one on first contact. The new
// level comes back from the same statement.
func (s *Store) BumpMastery(userID, contentItemID int64) (int, error) {
	var level int
	err := s.db.QueryRow(
		`INSERT INTO user_progress (user_id, content_item_id, mastery_level, last_practiced)
		 VALUES ($1, $2, 1, NOW())
		 ON CONFLICT (user_id, content_item_id) DO UPDATE SET
			mastery_level = LEAST(user_progress.mastery_level + 1, $3),
			last_practiced = NOW()
		 RETURNING mastery_level`,
		userID, contentItemID, models.MaxMasteryLevel,
	).Scan(&level)
	if err != nil {
		return 0, fmt.Errorf("failed to bump mastery: %w", err)
	}
	return level, nil
}

func (s *Store) GetMastery(userID, contentItemID int64) (int, error) {
	var level int
	err := s.db.QueryRow(
		`SELECT mastery_level FROM user_progress
		 WHERE user_id = $1 AND content_item_id = $2`,
		userID, contentItemID,
	).Scan(&level)
	if err == sql.ErrNoRows {
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("failed to get mastery: %w", err)
	}
	return level, nil
}

func (s *Store) GetUserProgress(userID int64) ([]models.UserProgress, error) {
	rows, err := s.db.Query(
		`SELECT id, content_item_id, mastery_level, last_practiced
		 FROM user_progress WHERE user_id = $1
		 ORDER BY last_practiced DESC`,
		userID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list progress: %w", err)
	}
	defer rows.Close()

	var out []models.UserProgress
	for rows.Next() {
		p := models.UserProgress{UserID: userID}
		if err := rows.Scan(&p.ID, &p.ContentItemID, &p.MasteryLevel, &p.LastPracticed); err != nil {
			return nil, fmt.Errorf("failed to scan progress: %w", err)
		}
		out = append(out, p)
	}
	return out, rows.Err()
}
