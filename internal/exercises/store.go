package exercises

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

// ── Exercises ──

func (s *Store) ListExerciseTypes() ([]models.ExerciseType, error) {
	rows, err := s.db.Query(
		`SELECT id, key, name, COALESCE(description, '') FROM exercise_types ORDER BY id`,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list exercise types: %w", err)
	}
	defer rows.Close()

	var out []models.ExerciseType
	for rows.Next() {
		var t models.ExerciseType
		if err := rows.Scan(&t.ID, &t.Key, &t.Name, &t.Description); err != nil {
			return nil, fmt.Errorf("failed to scan exercise type: %w", err)
		}
		out = append(out, t)
	}
	return out, rows.Err()
}

// ListExercises returns exercises, optionally filtered by type key and
// difficulty. Zero values mean no filter.
func (s *Store) ListExercises(typeKey string, difficultyID int64) ([]models.Exercise, error) {
	query := `
		SELECT e.id, e.title, COALESCE(e.description, ''), e.exercise_type_id,
		       e.content_item_id, e.difficulty_id, e.created_at,
		       t.id, t.key, t.name
		FROM exercises e
		LEFT JOIN exercise_types t ON t.id = e.exercise_type_id
		WHERE 1=1`
	args := []interface{}{}

	if typeKey != "" {
		args = append(args, typeKey)
		query += fmt.Sprintf(" AND t.key = $%d", len(args))
	}
	if difficultyID > 0 {
		args = append(args, difficultyID)
		query += fmt.Sprintf(" AND e.difficulty_id = $%d", len(args))
	}
	query += " ORDER BY e.id"

	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list exercises: %w", err)
	}
	defer rows.Close()

	var out []models.Exercise
	for rows.Next() {
		var e models.Exercise
		var tID sql.NullInt64
		var tKey, tName sql.NullString
		err := rows.Scan(
			&e.ID, &e.Title, &e.Description, &e.ExerciseTypeID,
			&e.ContentItemID, &e.DifficultyID, &e.CreatedAt,
			&tID, &tKey, &tName,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan exercise: %w", err)
		}
		if tID.Valid {
			e.ExerciseType = &models.ExerciseType{ID: tID.Int64, Key: tKey.String, Name: tName.String}
		}
		out = append(out, e)
	}
	return out, rows.Err()
}

// GetExercise loads an exercise with its questions, options, and match
// pairs. Returns sql.ErrNoRows when the exercise does not exist.
func (s *Store) GetExercise(id int64) (*models.Exercise, error) {
	e := &models.Exercise{}
	var tID sql.NullInt64
	var tKey, tName sql.NullString
	err := s.db.QueryRow(
		`SELECT e.id, e.title, COALESCE(e.description, ''), e.exercise_type_id,
		        e.content_item_id, e.difficulty_id, e.created_at,
		        t.id, t.key, t.name
		 FROM exercises e
		 LEFT JOIN exercise_types t ON t.id = e.exercise_type_id
		 WHERE e.id = $1`,
		id,
	).Scan(
		&e.ID, &e.Title, &e.Description, &e.ExerciseTypeID,
		&e.ContentItemID, &e.DifficultyID, &e.CreatedAt,
		&tID, &tKey, &tName,
	)
	if err != nil {
		return nil, err
	}
	if tID.Valid {
		e.ExerciseType = &models.ExerciseType{ID: tID.Int64, Key: tKey.String, Name: tName.String}
	}

	questions, err := s.getQuestions(id)
	if err != nil {
		return nil, err
	}
	e.Questions = questions
	return e, nil
}

func (s *Store) getQuestions(exerciseID int64) ([]models.Question, error) {
	rows, err := s.db.Query(
		`SELECT id, prompt, type, COALESCE(answer, '')
		 FROM exercise_questions WHERE exercise_id = $1 ORDER BY id`,
		exerciseID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to load questions: %w", err)
	}
	defer rows.Close()

	var questions []models.Question
	for rows.Next() {
		q := models.Question{ExerciseID: exerciseID}
		if err := rows.Scan(&q.ID, &q.Prompt, &q.Type, &q.Answer); err != nil {
			return nil, fmt.Errorf("failed to scan question: %w", err)
		}
		questions = append(questions, q)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	for i := range questions {
		switch questions[i].Type {
		case models.ExerciseMatching:
			pairs, err := s.getMatchPairs(questions[i].ID)
			if err != nil {
				return nil, err
			}
			questions[i].Pairs = pairs
		case models.ExerciseFillBlanks:
			// Answer key already on the question row.
		default:
			opts, err := s.getOptions(questions[i].ID)
			if err != nil {
				return nil, err
			}
			questions[i].Options = opts
		}
	}
	return questions, nil
}

func (s *Store) getOptions(questionID int64) ([]models.Option, error) {
	rows, err := s.db.Query(
		`SELECT id, text, is_correct FROM exercise_options
		 WHERE question_id = $1 ORDER BY id`,
		questionID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to load options: %w", err)
	}
	defer rows.Close()

	var opts []models.Option
	for rows.Next() {
		o := models.Option{QuestionID: questionID}
		if err := rows.Scan(&o.ID, &o.Text, &o.IsCorrect); err != nil {
			return nil, fmt.Errorf("failed to scan option: %w", err)
		}
		opts = append(opts, o)
	}
	return opts, rows.Err()
}

func (s *Store) getMatchPairs(questionID int64) ([]models.MatchPair, error) {
	rows, err := s.db.Query(
		`SELECT id, term, definition FROM exercise_match_pairs
		 WHERE question_id = $1 ORDER BY id`,
		questionID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to load match pairs: %w", err)
	}
	defer rows.Close()

	var pairs []models.MatchPair
	for rows.Next() {
		p := models.MatchPair{QuestionID: questionID}
		if err := rows.Scan(&p.ID, &p.Term, &p.Definition); err != nil {
			return nil, fmt.Errorf("failed to scan match pair: %w", err)
		}
		pairs = append(pairs, p)
	}
	return pairs, rows.Err()
}

// ── Exams ──

func (s *Store) ListExams() ([]models.Exam, error) {
	rows, err := s.db.Query(
		`SELECT e.id, e.title, COALESCE(e.description, ''), e.time_limit, e.difficulty_id,
		        (SELECT COUNT(*) FROM exam_questions q WHERE q.exam_id = e.id)
		 FROM exams e ORDER BY e.id`,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list exams: %w", err)
	}
	defer rows.Close()

	var out []models.Exam
	for rows.Next() {
		var e models.Exam
		if err := rows.Scan(&e.ID, &e.Title, &e.Description, &e.TimeLimit, &e.DifficultyID, &e.QuestionCount); err != nil {
			return nil, fmt.Errorf("failed to scan exam: %w", err)
		}
		out = append(out, e)
	}
	return out, rows.Err()
}

// GetExam loads an exam with its questions and options. Returns
// sql.ErrNoRows when the exam does not exist.
func (s *Store) GetExam(id int64) (*models.Exam, error) {
	e := &models.Exam{}
	err := s.db.QueryRow(
		`SELECT id, title, COALESCE(description, ''), time_limit, difficulty_id
		 FROM exams WHERE id = $1`,
		id,
	).Scan(&e.ID, &e.Title, &e.Description, &e.TimeLimit, &e.DifficultyID)
	if err != nil {
		return nil, err
	}

	rows, err := s.db.Query(
		`SELECT id, question, question_type, points
		 FROM exam_questions WHERE exam_id = $1 ORDER BY id`,
		id,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to load exam questions: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		q := models.ExamQuestion{ExamID: id}
		if err := rows.Scan(&q.ID, &q.Question, &q.Type, &q.Points); err != nil {
			return nil, fmt.Errorf("failed to scan exam question: %w", err)
		}
		e.Questions = append(e.Questions, q)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	for i := range e.Questions {
		optRows, err := s.db.Query(
			`SELECT id, option_text, is_correct FROM exam_question_options
			 WHERE exam_question_id = $1 ORDER BY id`,
			e.Questions[i].ID,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to load exam options: %w", err)
		}
		for optRows.Next() {
			o := models.ExamOption{QuestionID: e.Questions[i].ID}
			if err := optRows.Scan(&o.ID, &o.Text, &o.IsCorrect); err != nil {
				optRows.Close()
				return nil, fmt.Errorf("failed to scan exam option: %w", err)
			}
			e.Questions[i].Options = append(e.Questions[i].Options, o)
		}
		if err := optRows.Err(); err != nil {
			optRows.Close()
			return nil, err
		}
		optRows.Close()
	}
	return e, nil
}

// ── Results ──

func (s *Store) SaveExerciseResult(userID, exerciseID int64, score, total int) (*models.ExerciseResult, error) {
	r := &models.ExerciseResult{UserID: userID, ExerciseID: exerciseID, Score: score, Total: total}
	err := s.db.QueryRow(
		`INSERT INTO user_exercise_results (user_id, exercise_id, score, total_questions)
		 VALUES ($1, $2, $3, $4)
		 RETURNING id, completed_at`,
		userID, exerciseID, score, total,
	).Scan(&r.ID, &r.CompletedAt)
	if err != nil {
		return nil, fmt.Errorf("failed to save exercise result: %w", err)
	}
	return r, nil
}

func (s *Store) SaveExamResult(userID, examID int64, score, totalPoints, timeTaken int) (*models.ExamResult, error) {
	r := &models.ExamResult{
		UserID: userID, ExamID: examID,
		Score: score, TotalPoints: totalPoints, TimeTaken: timeTaken,
	}
	err := s.db.QueryRow(
		`INSERT INTO user_exam_results (user_id, exam_id, score, total_points, time_taken)
		 VALUES ($1, $2, $3, $4, $5)
		 RETURNING id, completed_at`,
		userID, examID, score, totalPoints, timeTaken,
	).Scan(&r.ID, &r.CompletedAt)
	if err != nil {
		return nil, fmt.Errorf("failed to save exam result: %w", err)
	}
	return r, nil
}

func (s *Store) RecentExerciseResults(userID int64, limit int) ([]models.ExerciseResult, error) {
	rows, err := s.db.Query(
		`SELECT r.id, r.exercise_id, r.score, r.total_questions, r.completed_at, e.title
		 FROM user_exercise_results r
		 JOIN exercises e ON e.id = r.exercise_id
		 WHERE r.user_id = $1
		 ORDER BY r.completed_at DESC
		 LIMIT $2`,
		userID, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list exercise results: %w", err)
	}
	defer rows.Close()

	var out []models.ExerciseResult
	for rows.Next() {
		r := models.ExerciseResult{UserID: userID}
		if err := rows.Scan(&r.ID, &r.ExerciseID, &r.Score, &r.Total, &r.CompletedAt, &r.ExerciseTitle); err != nil {
			return nil, fmt.Errorf("failed to scan exercise result: %w", err)
		}
		out = append(out, r)
	}
	return out, rows.Err()
}

func (s *Store) RecentExamResults(userID int64, limit int) ([]models.ExamResult, error) {
	rows, err := s.db.Query(
		`SELECT id, exam_id, score, total_points, time_taken, completed_at
		 FROM user_exam_results
		 WHERE user_id = $1
		 ORDER BY completed_at DESC
		 LIMIT $2`,
		userID, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list exam results: %w", err)
	}
	defer rows.Close()

	var out []models.ExamResult
	for rows.Next() {
		r := models.ExamResult{UserID: userID}
		if err := rows.Scan(&r.ID, &r.ExamID, &r.Score, &r.TotalPoints, &r.TimeTaken, &r.CompletedAt); err != nil {
			return nil, fmt.Errorf("failed to scan exam result: %w", err)
		}
		out = append(out, r)
	}
	return out, rows.Err()
}
