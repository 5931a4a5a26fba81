package database

import (
	"database/sql"
	"fmt"
	"os"
	"time"

	_ "github.com/lib/pq"
)

func Connect() (*sql.DB, error) {
	host := getEnv("DB_HOST", "localhost")
	port := getEnv("DB_PORT", "5432")
	user := getEnv("DB_USER", "english_user")
	password := getEnv("DB_PASSWORD", "english_password")
	dbname := getEnv("DB_NAME", "english_learn")
	sslmode := getEnv("DB_SSLMODE", "disable")

	dsn := fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		host, port, user, password, dbname, sslmode,
	)

	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(5)

	return db, nil
}

func Migrate(db *sql.DB) error {
	query := `
	CREATE TABLE IF NOT EXISTS users (
		id BIGSERIAL PRIMARY KEY,
		email VARCHAR(255) UNIQUE NOT NULL,
		full_name VARCHAR(255) NOT NULL,
		password VARCHAR(255) NOT NULL,
		created_at TIMESTAMP WITH TIME ZONE DEFAULT NOW(),
		updated_at TIMESTAMP WITH TIME ZONE DEFAULT NOW()
	);

	CREATE INDEX IF NOT EXISTS idx_users_email ON users(email);

	CREATE TABLE IF NOT EXISTS categories (
		id          BIGSERIAL PRIMARY KEY,
		title       VARCHAR(255) UNIQUE NOT NULL,
		description TEXT,
		created_at  TIMESTAMP WITH TIME ZONE DEFAULT NOW()
	);

	CREATE TABLE IF NOT EXISTS difficulty_levels (
		id          BIGSERIAL PRIMARY KEY,
		name        VARCHAR(50) UNIQUE NOT NULL,
		description TEXT
	);

	CREATE TABLE IF NOT EXISTS content_items (
		id             BIGSERIAL PRIMARY KEY,
		word           VARCHAR(255) NOT NULL,
		definition     TEXT NOT NULL,
		part_of_speech VARCHAR(50),
		phonetic       VARCHAR(100),
		audio_url      TEXT,
		image_url      TEXT,
		category_id    BIGINT REFERENCES categories(id),
		difficulty_id  BIGINT REFERENCES difficulty_levels(id),
		created_at     TIMESTAMP WITH TIME ZONE DEFAULT NOW(),
		updated_at     TIMESTAMP WITH TIME ZONE DEFAULT NOW()
	);

	CREATE INDEX IF NOT EXISTS idx_content_category ON content_items(category_id);
	CREATE INDEX IF NOT EXISTS idx_content_difficulty ON content_items(difficulty_id);
	CREATE INDEX IF NOT EXISTS idx_content_word ON content_items(word);

	CREATE TABLE IF NOT EXISTS examples (
		id              BIGSERIAL PRIMARY KEY,
		content_item_id BIGINT NOT NULL REFERENCES content_items(id) ON DELETE CASCADE,
		sentence        TEXT NOT NULL,
		translation     TEXT
	);

	CREATE TABLE IF NOT EXISTS related_words (
		id              BIGSERIAL PRIMARY KEY,
		content_item_id BIGINT NOT NULL REFERENCES content_items(id) ON DELETE CASCADE,
		word            VARCHAR(255) NOT NULL,
		part_of_speech  VARCHAR(50)
	);

	CREATE TABLE IF NOT EXISTS word_lists (
		id          BIGSERIAL PRIMARY KEY,
		title       VARCHAR(255) NOT NULL,
		description TEXT
	);

	CREATE TABLE IF NOT EXISTS word_list_items (
		id              BIGSERIAL PRIMARY KEY,
		word_list_id    BIGINT NOT NULL REFERENCES word_lists(id) ON DELETE CASCADE,
		content_item_id BIGINT NOT NULL REFERENCES content_items(id) ON DELETE CASCADE,
		UNIQUE(word_list_id, content_item_id)
	);

	CREATE TABLE IF NOT EXISTS bookmarks (
		id              BIGSERIAL PRIMARY KEY,
		user_id         BIGINT NOT NULL REFERENCES users(id) ON DELETE CASCADE,
		content_item_id BIGINT NOT NULL REFERENCES content_items(id) ON DELETE CASCADE,
		created_at      TIMESTAMP WITH TIME ZONE DEFAULT NOW(),
		UNIQUE(user_id, content_item_id)
	);

	CREATE TABLE IF NOT EXISTS exercise_types (
		id          BIGSERIAL PRIMARY KEY,
		key         VARCHAR(50) UNIQUE NOT NULL,
		name        VARCHAR(100) NOT NULL,
		description TEXT
	);

	CREATE TABLE IF NOT EXISTS exercises (
		id               BIGSERIAL PRIMARY KEY,
		title            VARCHAR(255) NOT NULL,
		description      TEXT,
		exercise_type_id BIGINT REFERENCES exercise_types(id),
		content_item_id  BIGINT REFERENCES content_items(id),
		difficulty_id    BIGINT REFERENCES difficulty_levels(id),
		created_at       TIMESTAMP WITH TIME ZONE DEFAULT NOW()
	);

	CREATE INDEX IF NOT EXISTS idx_exercises_type ON exercises(exercise_type_id);
	CREATE INDEX IF NOT EXISTS idx_exercises_difficulty ON exercises(difficulty_id);

	CREATE TABLE IF NOT EXISTS exercise_questions (
		id          BIGSERIAL PRIMARY KEY,
		exercise_id BIGINT NOT NULL REFERENCES exercises(id) ON DELETE CASCADE,
		prompt      TEXT NOT NULL,
		type        VARCHAR(50) NOT NULL,
		answer      TEXT
	);

	CREATE TABLE IF NOT EXISTS exercise_options (
		id          BIGSERIAL PRIMARY KEY,
		question_id BIGINT NOT NULL REFERENCES exercise_questions(id) ON DELETE CASCADE,
		text        TEXT NOT NULL,
		is_correct  BOOLEAN NOT NULL DEFAULT FALSE
	);

	CREATE INDEX IF NOT EXISTS idx_options_question ON exercise_options(question_id);

	CREATE TABLE IF NOT EXISTS exercise_match_pairs (
		id          BIGSERIAL PRIMARY KEY,
		question_id BIGINT NOT NULL REFERENCES exercise_questions(id) ON DELETE CASCADE,
		term        TEXT NOT NULL,
		definition  TEXT NOT NULL
	);

	CREATE TABLE IF NOT EXISTS exams (
		id            BIGSERIAL PRIMARY KEY,
		title         VARCHAR(255) NOT NULL,
		description   TEXT,
		time_limit    INT NOT NULL DEFAULT 10,
		difficulty_id BIGINT REFERENCES difficulty_levels(id),
		created_at    TIMESTAMP WITH TIME ZONE DEFAULT NOW()
	);

	CREATE TABLE IF NOT EXISTS exam_questions (
		id            BIGSERIAL PRIMARY KEY,
		exam_id       BIGINT NOT NULL REFERENCES exams(id) ON DELETE CASCADE,
		question      TEXT NOT NULL,
		question_type VARCHAR(50) NOT NULL,
		points        INT NOT NULL DEFAULT 10
	);

	CREATE INDEX IF NOT EXISTS idx_exam_questions_exam ON exam_questions(exam_id);

	CREATE TABLE IF NOT EXISTS exam_question_options (
		id               BIGSERIAL PRIMARY KEY,
		exam_question_id BIGINT NOT NULL REFERENCES exam_questions(id) ON DELETE CASCADE,
		option_text      TEXT NOT NULL,
		is_correct       BOOLEAN NOT NULL DEFAULT FALSE
	);

	CREATE TABLE IF NOT EXISTS stories (
		id            BIGSERIAL PRIMARY KEY,
		title         VARCHAR(255) NOT NULL,
		description   TEXT,
		content       TEXT NOT NULL,
		audio_url     TEXT NOT NULL,
		image_url     TEXT,
		duration      INT NOT NULL DEFAULT 0,
		difficulty_id BIGINT REFERENCES difficulty_levels(id),
		created_at    TIMESTAMP WITH TIME ZONE DEFAULT NOW()
	);

	CREATE TABLE IF NOT EXISTS dialogues (
		id            BIGSERIAL PRIMARY KEY,
		title         VARCHAR(255) NOT NULL,
		description   TEXT,
		content       TEXT NOT NULL,
		audio_url     TEXT NOT NULL,
		image_url     TEXT,
		duration      INT NOT NULL DEFAULT 0,
		difficulty_id BIGINT REFERENCES difficulty_levels(id),
		created_at    TIMESTAMP WITH TIME ZONE DEFAULT NOW()
	);

	CREATE TABLE IF NOT EXISTS user_progress (
		id              BIGSERIAL PRIMARY KEY,
		user_id         BIGINT NOT NULL REFERENCES users(id) ON DELETE CASCADE,
		content_item_id BIGINT NOT NULL REFERENCES content_items(id) ON DELETE CASCADE,
		mastery_level   INT NOT NULL DEFAULT 0 CHECK (mastery_level >= 0 AND mastery_level <= 3),
		last_practiced  TIMESTAMP WITH TIME ZONE DEFAULT NOW(),
		UNIQUE(user_id, content_item_id)
	);

	CREATE INDEX IF NOT EXISTS idx_progress_user ON user_progress(user_id);
	CREATE INDEX IF NOT EXISTS idx_progress_mastery ON user_progress(user_id, mastery_level);

	CREATE TABLE IF NOT EXISTS user_points (
		user_id      BIGINT PRIMARY KEY REFERENCES users(id) ON DELETE CASCADE,
		total_points BIGINT NOT NULL DEFAULT 0 CHECK (total_points >= 0),
		level        INT NOT NULL DEFAULT 1 CHECK (level >= 1),
		updated_at   TIMESTAMP WITH TIME ZONE DEFAULT NOW()
	);

	CREATE TABLE IF NOT EXISTS user_streaks (
		user_id            BIGINT PRIMARY KEY REFERENCES users(id) ON DELETE CASCADE,
		current_streak     INT NOT NULL DEFAULT 0 CHECK (current_streak >= 0),
		longest_streak     INT NOT NULL DEFAULT 0 CHECK (longest_streak >= 0),
		last_activity_date DATE
	);

	CREATE TABLE IF NOT EXISTS user_exercise_results (
		id              BIGSERIAL PRIMARY KEY,
		user_id         BIGINT NOT NULL REFERENCES users(id) ON DELETE CASCADE,
		exercise_id     BIGINT NOT NULL REFERENCES exercises(id) ON DELETE CASCADE,
		score           INT NOT NULL,
		total_questions INT NOT NULL,
		completed_at    TIMESTAMP WITH TIME ZONE DEFAULT NOW(),
		CHECK (score <= total_questions)
	);

	CREATE INDEX IF NOT EXISTS idx_exercise_results_user ON user_exercise_results(user_id, completed_at DESC);

	CREATE TABLE IF NOT EXISTS user_exam_results (
		id           BIGSERIAL PRIMARY KEY,
		user_id      BIGINT NOT NULL REFERENCES users(id) ON DELETE CASCADE,
		exam_id      BIGINT NOT NULL REFERENCES exams(id) ON DELETE CASCADE,
		score        INT NOT NULL,
		total_points INT NOT NULL,
		time_taken   INT NOT NULL DEFAULT 0,
		completed_at TIMESTAMP WITH TIME ZONE DEFAULT NOW(),
		CHECK (score <= total_points)
	);

	CREATE INDEX IF NOT EXISTS idx_exam_results_user ON user_exam_results(user_id, completed_at DESC);

	CREATE TABLE IF NOT EXISTS achievements (
		id          BIGSERIAL PRIMARY KEY,
		name        VARCHAR(100) UNIQUE NOT NULL,
		description TEXT NOT NULL,
		points      INT NOT NULL DEFAULT 0
	);

	CREATE TABLE IF NOT EXISTS user_achievements (
		id             BIGSERIAL PRIMARY KEY,
		user_id        BIGINT NOT NULL REFERENCES users(id) ON DELETE CASCADE,
		achievement_id BIGINT NOT NULL REFERENCES achievements(id) ON DELETE CASCADE,
		earned_at      TIMESTAMP WITH TIME ZONE DEFAULT NOW(),
		UNIQUE(user_id, achievement_id)
	);

	CREATE INDEX IF NOT EXISTS idx_user_achievements_user ON user_achievements(user_id);
	`

	if _, err := db.Exec(query); err != nil {
		return fmt.Errorf("migration failed: %w", err)
	}

	if err := seed(db); err != nil {
		return fmt.Errorf("seed failed: %w", err)
	}

	return nil
}

// seed inserts the fixed catalog rows the application expects:
// difficulty levels, exercise types, and the achievement definitions.
// All inserts are idempotent.
func seed(db *sql.DB) error {
	difficulties := []struct{ name, description string }{
		{"beginner", "Basic everyday vocabulary"},
		{"intermediate", "Common words in varied contexts"},
		{"advanced", "Nuanced and academic vocabulary"},
	}
	for _, d := range difficulties {
		if _, err := db.Exec(
			`INSERT INTO difficulty_levels (name, description) VALUES ($1, $2)
			 ON CONFLICT (name) DO NOTHING`,
			d.name, d.description,
		); err != nil {
			return fmt.Errorf("seed difficulty %q: %w", d.name, err)
		}
	}

	exerciseTypes := []struct{ key, name, description string }{
		{"multiple-choice", "Multiple Choice", "Pick the correct option"},
		{"fill-blanks", "Fill in the Blanks", "Type the missing word"},
		{"matching", "Matching", "Match terms with their definitions"},
		{"audio", "Audio", "Listen and pick what you heard"},
	}
	for _, t := range exerciseTypes {
		if _, err := db.Exec(
			`INSERT INTO exercise_types (key, name, description) VALUES ($1, $2, $3)
			 ON CONFLICT (key) DO NOTHING`,
			t.key, t.name, t.description,
		); err != nil {
			return fmt.Errorf("seed exercise type %q: %w", t.key, err)
		}
	}

	achievements := []struct {
		name, description string
		points            int
	}{
		{"First Login", "Create your account and sign in for the first time", 10},
		{"Streak Warrior", "Reach a 7-day activity streak", 50},
		{"Quiz Whiz", "Complete 5 exams", 50},
		{"Exercise Champion", "Complete 10 exercises", 50},
		{"Perfect Score", "Get a perfect score on an exercise or exam", 25},
		{"Word Master", "Learn 50 words", 100},
	}
	for _, a := range achievements {
		if _, err := db.Exec(
			`INSERT INTO achievements (name, description, points) VALUES ($1, $2, $3)
			 ON CONFLICT (name) DO NOTHING`,
			a.name, a.description, a.points,
		); err != nil {
			return fmt.Errorf("seed achievement %q: %w", a.name, err)
		}
	}

	return nil
}

// RetryRead runs an idempotent read and retries it once after a short
// pause on transient failure. Not for writes: callers must guarantee fn
// has no side effects.
func RetryRead(fn func() error) error {
	err := fn()
	if err == nil || err == sql.ErrNoRows {
		return err
	}
	time.Sleep(100 * time.Millisecond)
	return fn()
}

func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok {
		return value
	}
	return fallback
}
