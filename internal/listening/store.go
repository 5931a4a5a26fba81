package listening

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

func (s *Store) ListStories() ([]models.Story, error) {
	rows, err := s.db.Query(
		`SELECT st.id, st.title, COALESCE(st.description, ''), st.content,
		        st.audio_url, st.image_url, st.duration, st.difficulty_id, st.created_at,
		        d.id, d.name
		 FROM stories st
		 LEFT JOIN difficulty_levels d ON d.id = st.difficulty_id
		 ORDER BY st.id`,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list stories: %w", err)
	}
	defer rows.Close()

	var out []models.Story
	for rows.Next() {
		var st models.Story
		var dID sql.NullInt64
		var dName sql.NullString
		err := rows.Scan(
			&st.ID, &st.Title, &st.Description, &st.Content,
			&st.AudioURL, &st.ImageURL, &st.Duration, &st.DifficultyID, &st.CreatedAt,
			&dID, &dName,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan story: %w", err)
		}
		if dID.Valid {
			st.Difficulty = &models.DifficultyLevel{ID: dID.Int64, Name: dName.String}
		}
		out = append(out, st)
	}
	return out, rows.Err()
}

// GetStory returns sql.ErrNoRows when the story does not exist.
func (s *Store) GetStory(id int64) (*models.Story, error) {
	st := &models.Story{}
	var dID sql.NullInt64
	var dName sql.NullString
	err := s.db.QueryRow(
		`SELECT st.id, st.title, COALESCE(st.description, ''), st.content,
		        st.audio_url, st.image_url, st.duration, st.difficulty_id, st.created_at,
		        d.id, d.name
		 FROM stories st
		 LEFT JOIN difficulty_levels d ON d.id = st.difficulty_id
		 WHERE st.id = $1`,
		id,
	).Scan(
		&st.ID, &st.Title, &st.Description, &st.Content,
		&st.AudioURL, &st.ImageURL, &st.Duration, &st.DifficultyID, &st.CreatedAt,
		&dID, &dName,
	)
	if err != nil {
		return nil, err
	}
	if dID.Valid {
		st.Difficulty = &models.DifficultyLevel{ID: dID.Int64, Name: dName.String}
	}
	return st, nil
}

func (s *Store) ListDialogues() ([]models.Dialogue, error) {
	rows, err := s.db.Query(
		`SELECT dl.id, dl.title, COALESCE(dl.description, ''), dl.content,
		        dl.audio_url, dl.image_url, dl.duration, dl.difficulty_id, dl.created_at,
		        d.id, d.name
		 FROM dialogues dl
		 LEFT JOIN difficulty_levels d ON d.id = dl.difficulty_id
		 ORDER BY dl.id`,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list dialogues: %w", err)
	}
	defer rows.Close()

	var out []models.Dialogue
	for rows.Next() {
		var dl models.Dialogue
		var dID sql.NullInt64
		var dName sql.NullString
		err := rows.Scan(
			&dl.ID, &dl.Title, &dl.Description, &dl.Content,
			&dl.AudioURL, &dl.ImageURL, &dl.Duration, &dl.DifficultyID, &dl.CreatedAt,
			&dID, &dName,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan dialogue: %w", err)
		}
		if dID.Valid {
			dl.Difficulty = &models.DifficultyLevel{ID: dID.Int64, Name: dName.String}
		}
		out = append(out, dl)
	}
	return out, rows.Err()
}

// GetDialogue returns sql.ErrNoRows when the dialogue does not exist.
func (s *Store) GetDialogue(id int64) (*models.Dialogue, error) {
	dl := &models.Dialogue{}
	var dID sql.NullInt64
	var dName sql.NullString
	err := s.db.QueryRow(
		`SELECT dl.id, dl.title, COALESCE(dl.description, ''), dl.content,
		        dl.audio_url, dl.image_url, dl.duration, dl.difficulty_id, dl.created_at,
		        d.id, d.name
		 FROM dialogues dl
		 LEFT JOIN difficulty_levels d ON d.id = dl.difficulty_id
		 WHERE dl.id = $1`,
		id,
	).Scan(
		&dl.ID, &dl.Title, &dl.Description, &dl.Content,
		&dl.AudioURL, &dl.ImageURL, &dl.Duration, &dl.DifficultyID, &dl.CreatedAt,
		&dID, &dName,
	)
	if err != nil {
		return nil, err
	}
	if dID.Valid {
		dl.Difficulty = &models.DifficultyLevel{ID: dID.Int64, Name: dName.String}
	}
	return dl, nil
}
