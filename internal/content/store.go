package content

import (
	"database/sql"
	"fmt"

	"github.com/english-learn/backend/internal/models"
)

type Store struct {
	db *sql.DB
}

func NewStore(db *sql.DB) *Store {
	return &Store{db: db}
}

// ── Catalog ──

func (s *Store) ListCategories() ([]models.Category, error) {
	rows, err := s.db.Query(
		`SELECT id, title, COALESCE(description, ''), created_at FROM categories ORDER BY title`,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list categories: %w", err)
	}
	defer rows.Close()

	var out []models.Category
	for rows.Next() {
		var c models.Category
		if err := rows.Scan(&c.ID, &c.Title, &c.Description, &c.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan category: %w", err)
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

func (s *Store) ListDifficultyLevels() ([]models.DifficultyLevel, error) {
	rows, err := s.db.Query(
		`SELECT id, name, COALESCE(description, '') FROM difficulty_levels ORDER BY id`,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list difficulty levels: %w", err)
	}
	defer rows.Close()

	var out []models.DifficultyLevel
	for rows.Next() {
		var d models.DifficultyLevel
		if err := rows.Scan(&d.ID, &d.Name, &d.Description); err != nil {
			return nil, fmt.Errorf("failed to scan difficulty level: %w", err)
		}
		out = append(out, d)
	}
	return out, rows.Err()
}

// ListContentItems returns catalog items matching the filter. Search
// matches against the word and definition, case-insensitively.
func (s *Store) ListContentItems(f models.ContentFilter) ([]models.ContentItem, error) {
	query := `
		SELECT id, word, definition, part_of_speech, phonetic, audio_url, image_url,
		       category_id, difficulty_id, created_at, updated_at
		FROM content_items
		WHERE 1=1`
	args := []interface{}{}

	if f.CategoryID != nil {
		args = append(args, *f.CategoryID)
		query += fmt.Sprintf(" AND category_id = $%d", len(args))
	}
	if f.DifficultyID != nil {
		args = append(args, *f.DifficultyID)
		query += fmt.Sprintf(" AND difficulty_id = $%d", len(args))
	}
	if f.Search != "" {
		args = append(args, "%"+f.Search+"%")
		query += fmt.Sprintf(" AND (word ILIKE $%d OR definition ILIKE $%d)", len(args), len(args))
	}

	query += " ORDER BY word"
	if f.Limit > 0 {
		args = append(args, f.Limit)
		query += fmt.Sprintf(" LIMIT $%d", len(args))
	}

	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list content items: %w", err)
	}
	defer rows.Close()

	var out []models.ContentItem
	for rows.Next() {
		var item models.ContentItem
		err := rows.Scan(
			&item.ID, &item.Word, &item.Definition, &item.PartOfSpeech, &item.Phonetic,
			&item.AudioURL, &item.ImageURL, &item.CategoryID, &item.DifficultyID,
			&item.CreatedAt, &item.UpdatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan content item: %w", err)
		}
		out = append(out, item)
	}
	return out, rows.Err()
}

// GetContentItemDetails loads an item with its category, difficulty,
// example sentences, and related words. Returns sql.ErrNoRows when the
// item does not exist.
func (s *Store) GetContentItemDetails(id int64) (*models.ContentItemDetails, error) {
	d := &models.ContentItemDetails{}
	var catID sql.NullInt64
	var catTitle sql.NullString
	var diffID sql.NullInt64
	var diffName sql.NullString

	err := s.db.QueryRow(
		`SELECT i.id, i.word, i.definition, i.part_of_speech, i.phonetic,
		        i.audio_url, i.image_url, i.category_id, i.difficulty_id,
		        i.created_at, i.updated_at,
		        c.id, c.title, d.id, d.name
		 FROM content_items i
		 LEFT JOIN categories c ON c.id = i.category_id
		 LEFT JOIN difficulty_levels d ON d.id = i.difficulty_id
		 WHERE i.id = $1`,
		id,
	).Scan(
		&d.ID, &d.Word, &d.Definition, &d.PartOfSpeech, &d.Phonetic,
		&d.AudioURL, &d.ImageURL, &d.CategoryID, &d.DifficultyID,
		&d.CreatedAt, &d.UpdatedAt,
		&catID, &catTitle, &diffID, &diffName,
	)
	if err != nil {
		return nil, err
	}
	if catID.Valid {
		d.Category = &models.Category{ID: catID.Int64, Title: catTitle.String}
	}
	if diffID.Valid {
		d.Difficulty = &models.DifficultyLevel{ID: diffID.Int64, Name: diffName.String}
	}

	d.Examples = []models.Example{}
	exRows, err := s.db.Query(
		`SELECT id, sentence, COALESCE(translation, '') FROM examples
		 WHERE content_item_id = $1 ORDER BY id`,
		id,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to load examples: %w", err)
	}
	for exRows.Next() {
		ex := models.Example{ContentItemID: id}
		if err := exRows.Scan(&ex.ID, &ex.Sentence, &ex.Translation); err != nil {
			exRows.Close()
			return nil, fmt.Errorf("failed to scan example: %w", err)
		}
		d.Examples = append(d.Examples, ex)
	}
	exRows.Close()
	if err := exRows.Err(); err != nil {
		return nil, err
	}

	d.RelatedWords = []models.RelatedWord{}
	rwRows, err := s.db.Query(
		`SELECT id, word, part_of_speech FROM related_words
		 WHERE content_item_id = $1 ORDER BY id`,
		id,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to load related words: %w", err)
	}
	for rwRows.Next() {
		rw := models.RelatedWord{ContentItemID: id}
		if err := rwRows.Scan(&rw.ID, &rw.Word, &rw.PartOfSpeech); err != nil {
			rwRows.Close()
			return nil, fmt.Errorf("failed to scan related word: %w", err)
		}
		d.RelatedWords = append(d.RelatedWords, rw)
	}
	rwRows.Close()
	return d, rwRows.Err()
}

// ── Word lists ──

func (s *Store) ListWordLists() ([]models.WordList, error) {
	rows, err := s.db.Query(
		`SELECT l.id, l.title, COALESCE(l.description, ''),
		        (SELECT COUNT(*) FROM word_list_items i WHERE i.word_list_id = l.id)
		 FROM word_lists l ORDER BY l.title`,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list word lists: %w", err)
	}
	defer rows.Close()

	var out []models.WordList
	for rows.Next() {
		var l models.WordList
		if err := rows.Scan(&l.ID, &l.Title, &l.Description, &l.WordCount); err != nil {
			return nil, fmt.Errorf("failed to scan word list: %w", err)
		}
		out = append(out, l)
	}
	return out, rows.Err()
}

// GetWordListItems returns the items of a list. Returns sql.ErrNoRows
// when the list itself does not exist.
func (s *Store) GetWordListItems(listID int64) (*models.WordList, []models.ContentItem, error) {
	l := &models.WordList{}
	err := s.db.QueryRow(
		`SELECT id, title, COALESCE(description, '') FROM word_lists WHERE id = $1`,
		listID,
	).Scan(&l.ID, &l.Title, &l.Description)
	if err != nil {
		return nil, nil, err
	}

	rows, err := s.db.Query(
		`SELECT i.id, i.word, i.definition, i.part_of_speech, i.phonetic,
		        i.audio_url, i.image_url, i.category_id, i.difficulty_id,
		        i.created_at, i.updated_at
		 FROM word_list_items wi
		 JOIN content_items i ON i.id = wi.content_item_id
		 WHERE wi.word_list_id = $1
		 ORDER BY i.word`,
		listID,
	)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load word list items: %w", err)
	}
	defer rows.Close()

	var items []models.ContentItem
	for rows.Next() {
		var item models.ContentItem
		err := rows.Scan(
			&item.ID, &item.Word, &item.Definition, &item.PartOfSpeech, &item.Phonetic,
			&item.AudioURL, &item.ImageURL, &item.CategoryID, &item.DifficultyID,
			&item.CreatedAt, &item.UpdatedAt,
		)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to scan word list item: %w", err)
		}
		items = append(items, item)
	}
	l.WordCount = len(items)
	return l, items, rows.Err()
}

// ── Bookmarks ──

// ToggleBookmark flips the bookmark state for an item and reports the
// new state. The delete-then-insert order makes concurrent toggles
// settle on one of the two valid states instead of erroring.
func (s *Store) ToggleBookmark(userID, contentItemID int64) (bool, error) {
	res, err := s.db.Exec(
		`DELETE FROM bookmarks WHERE user_id = $1 AND content_item_id = $2`,
		userID, contentItemID,
	)
	if err != nil {
		return false, fmt.Errorf("failed to remove bookmark: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("failed to read bookmark result: %w", err)
	}
	if n > 0 {
		return false, nil
	}

	_, err = s.db.Exec(
		`INSERT INTO bookmarks (user_id, content_item_id) VALUES ($1, $2)
		 ON CONFLICT (user_id, content_item_id) DO NOTHING`,
		userID, contentItemID,
	)
	if err != nil {
		return false, fmt.Errorf("failed to add bookmark: %w", err)
	}
	return true, nil
}

func (s *Store) ListBookmarks(userID int64) ([]models.Bookmark, error) {
	rows, err := s.db.Query(
		`SELECT b.id, b.content_item_id, b.created_at,
		        i.word, i.definition, i.part_of_speech, i.phonetic,
		        i.audio_url, i.image_url, i.category_id, i.difficulty_id,
		        i.created_at, i.updated_at
		 FROM bookmarks b
		 JOIN content_items i ON i.id = b.content_item_id
		 WHERE b.user_id = $1
		 ORDER BY b.created_at DESC`,
		userID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list bookmarks: %w", err)
	}
	defer rows.Close()

	var out []models.Bookmark
	for rows.Next() {
		b := models.Bookmark{UserID: userID, ContentItem: &models.ContentItem{}}
		i := b.ContentItem
		err := rows.Scan(
			&b.ID, &b.ContentItemID, &b.CreatedAt,
			&i.Word, &i.Definition, &i.PartOfSpeech, &i.Phonetic,
			&i.AudioURL, &i.ImageURL, &i.CategoryID, &i.DifficultyID,
			&i.CreatedAt, &i.UpdatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan bookmark: %w", err)
		}
		i.ID = b.ContentItemID
		out = append(out, b)
	}
	return out, rows.Err()
}

// ── Statistics ──

// GetStatistics assembles the dashboard summary: words learned, work
// completed, streak, a mastery breakdown, and recent activity across
// exercises and exams.
func (s *Store) GetStatistics(userID int64) (*models.UserStatistics, error) {
	stats := &models.UserStatistics{RecentActivity: []models.ActivityEntry{}}

	err := s.db.QueryRow(
		`SELECT COUNT(*) FROM user_progress WHERE user_id = $1 AND mastery_level > 0`,
		userID,
	).Scan(&stats.TotalWords)
	if err != nil {
		return nil, fmt.Errorf("failed to count learned words: %w", err)
	}

	err = s.db.QueryRow(
		`SELECT COUNT(*) FROM user_exercise_results WHERE user_id = $1`,
		userID,
	).Scan(&stats.CompletedExercises)
	if err != nil {
		return nil, fmt.Errorf("failed to count exercise results: %w", err)
	}

	err = s.db.QueryRow(
		`SELECT COALESCE(MAX(current_streak), 0) FROM user_streaks WHERE user_id = $1`,
		userID,
	).Scan(&stats.StreakDays)
	if err != nil {
		return nil, fmt.Errorf("failed to read streak: %w", err)
	}

	rows, err := s.db.Query(
		`SELECT mastery_level, COUNT(*) FROM user_progress
		 WHERE user_id = $1 AND mastery_level > 0
		 GROUP BY mastery_level`,
		userID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to read mastery breakdown: %w", err)
	}
	for rows.Next() {
		var level, count int
		if err := rows.Scan(&level, &count); err != nil {
			rows.Close()
			return nil, fmt.Errorf("failed to scan mastery row: %w", err)
		}
		switch level {
		case 1:
			stats.MasteryLevels.Beginner = count
		case 2:
			stats.MasteryLevels.Intermediate = count
		case 3:
			stats.MasteryLevels.Advanced = count
		}
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return nil, err
	}

	actRows, err := s.db.Query(
		`SELECT activity, date, score FROM (
			SELECT e.title AS activity, r.completed_at AS date, r.score AS score
			FROM user_exercise_results r
			JOIN exercises e ON e.id = r.exercise_id
			WHERE r.user_id = $1
			UNION ALL
			SELECT x.title, r.completed_at, r.score
			FROM user_exam_results r
			JOIN exams x ON x.id = r.exam_id
			WHERE r.user_id = $1
		 ) combined
		 ORDER BY date DESC
		 LIMIT 10`,
		userID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to read recent activity: %w", err)
	}
	defer actRows.Close()

	for actRows.Next() {
		var entry models.ActivityEntry
		var when sql.NullTime
		if err := actRows.Scan(&entry.Activity, &when, &entry.Score); err != nil {
			return nil, fmt.Errorf("failed to scan activity row: %w", err)
		}
		if when.Valid {
			entry.Date = when.Time.Format("2006-01-02")
		}
		stats.RecentActivity = append(stats.RecentActivity, entry)
	}
	return stats, actRows.Err()
}

// ── Recommendations ──

// GetRecommendations suggests exercises built on items the user has not
// mastered yet, preferring ones never attempted.
func (s *Store) GetRecommendations(userID int64, limit int) ([]models.RecommendedItem, error) {
	rows, err := s.db.Query(
		`SELECT e.id, e.title, COALESCE(e.description, ''),
		        COALESCE(t.key, ''), COALESCE(d.name, ''), COALESCE(c.title, '')
		 FROM exercises e
		 LEFT JOIN exercise_types t ON t.id = e.exercise_type_id
		 LEFT JOIN difficulty_levels d ON d.id = e.difficulty_id
		 LEFT JOIN content_items i ON i.id = e.content_item_id
		 LEFT JOIN categories c ON c.id = i.category_id
		 WHERE e.id NOT IN (
			SELECT exercise_id FROM user_exercise_results WHERE user_id = $1
		 )
		 AND (e.content_item_id IS NULL OR e.content_item_id NOT IN (
			SELECT content_item_id FROM user_progress
			WHERE user_id = $1 AND mastery_level >= 3
		 ))
		 ORDER BY e.id
		 LIMIT $2`,
		userID, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to load recommendations: %w", err)
	}
	defer rows.Close()

	var out []models.RecommendedItem
	for rows.Next() {
		var item models.RecommendedItem
		err := rows.Scan(
			&item.ID, &item.Title, &item.Description,
			&item.Type, &item.Difficulty, &item.Category,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan recommendation: %w", err)
		}
		out = append(out, item)
	}
	return out, rows.Err()
}
