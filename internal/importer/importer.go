package importer

import (
	"database/sql"
	"encoding/csv"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/english-learn/backend/internal/models"
)

// Config controls one import run. Column order is fixed: word,
// definition, part of speech, phonetic, category, difficulty.
type Config struct {
	FilePath string
	Sheet    string
	StartRow int // 1-based; rows before it are skipped
}

func DefaultConfig(path string) Config {
	return Config{
		FilePath: path,
		Sheet:    "Sheet1",
		StartRow: 2, // skip the header row
	}
}

// Result summarizes an import run.
type Result struct {
	Processed         int
	Created           int
	Updated           int
	Skipped           int
	CategoriesCreated int
	Errors            []string
}

// Row is one parsed spreadsheet line.
type Row struct {
	Word         string
	Definition   string
	PartOfSpeech string
	Phonetic     string
	Category     string
	Difficulty   string
}

type Importer struct {
	db *sql.DB

	categoryIDs   map[string]int64
	difficultyIDs map[string]int64
}

func New(db *sql.DB) *Importer {
	return &Importer{
		db:            db,
		categoryIDs:   make(map[string]int64),
		difficultyIDs: make(map[string]int64),
	}
}

// ImportFile loads vocabulary from an .xlsx or .csv file into the
// catalog. Existing words in the same category are updated in place.
func (im *Importer) ImportFile(cfg Config) (*Result, error) {
	if err := im.loadDifficulties(); err != nil {
		return nil, err
	}

	var rows [][]string
	var err error
	switch strings.ToLower(filepath.Ext(cfg.FilePath)) {
	case ".csv":
		rows, err = readCSV(cfg.FilePath)
	default:
		rows, err = readExcel(cfg.FilePath, cfg.Sheet)
	}
	if err != nil {
		return nil, err
	}

	result := &Result{Errors: []string{}}
	for i, raw := range rows {
		if i < cfg.StartRow-1 {
			continue
		}
		result.Processed++

		row, err := ParseRow(raw)
		if err != nil {
			result.Skipped++
			result.Errors = append(result.Errors, fmt.Sprintf("row %d: %v", i+1, err))
			continue
		}

		if err := im.upsertItem(row, result); err != nil {
			result.Errors = append(result.Errors, fmt.Sprintf("row %d: %v", i+1, err))
		}
	}

	log.Printf("[importer] %s: %d processed, %d created, %d updated, %d skipped, %d errors",
		cfg.FilePath, result.Processed, result.Created, result.Updated, result.Skipped, len(result.Errors))
	return result, nil
}

// ParseRow maps one spreadsheet line onto a Row. Word and definition
// are required; everything else is optional.
func ParseRow(raw []string) (Row, error) {
	get := func(i int) string {
		if i < len(raw) {
			return strings.TrimSpace(raw[i])
		}
		return ""
	}

	row := Row{
		Word:         get(0),
		Definition:   get(1),
		PartOfSpeech: get(2),
		Phonetic:     get(3),
		Category:     get(4),
		Difficulty:   NormalizeDifficulty(get(5)),
	}

	if row.Word == "" {
		return Row{}, fmt.Errorf("missing word")
	}
	if row.Definition == "" {
		return Row{}, fmt.Errorf("missing definition")
	}
	return row, nil
}

// NormalizeDifficulty maps free-form difficulty text onto one of the
// seeded level names, defaulting to intermediate.
func NormalizeDifficulty(s string) string {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case models.DifficultyBeginner, "easy", "a1", "a2", "1":
		return models.DifficultyBeginner
	case models.DifficultyAdvanced, "hard", "c1", "c2", "3":
		return models.DifficultyAdvanced
	default:
		return models.DifficultyIntermediate
	}
}

func readExcel(path, sheet string) ([][]string, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open spreadsheet: %w", err)
	}
	defer f.Close()

	rows, err := f.GetRows(sheet)
	if err != nil {
		return nil, fmt.Errorf("failed to read sheet %q: %w", sheet, err)
	}
	return rows, nil
}

func readCSV(path string) ([][]string, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open CSV file: %w", err)
	}
	defer file.Close()

	reader := csv.NewReader(file)
	reader.FieldsPerRecord = -1

	var rows [][]string
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read CSV: %w", err)
		}
		rows = append(rows, record)
	}
	return rows, nil
}

func (im *Importer) loadDifficulties() error {
	rows, err := im.db.Query(`SELECT id, name FROM difficulty_levels`)
	if err != nil {
		return fmt.Errorf("failed to load difficulty levels: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var id int64
		var name string
		if err := rows.Scan(&id, &name); err != nil {
			return fmt.Errorf("failed to scan difficulty level: %w", err)
		}
		im.difficultyIDs[name] = id
	}
	return rows.Err()
}

func (im *Importer) getOrCreateCategory(title string, result *Result) (int64, error) {
	key := strings.ToLower(title)
	if id, ok := im.categoryIDs[key]; ok {
		return id, nil
	}

	var id int64
	err := im.db.QueryRow(
		`INSERT INTO categories (title) VALUES ($1)
		 ON CONFLICT (title) DO UPDATE SET title = EXCLUDED.title
		 RETURNING id`,
		title,
	).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("failed to upsert category %q: %w", title, err)
	}

	im.categoryIDs[key] = id
	result.CategoriesCreated++
	return id, nil
}

func (im *Importer) upsertItem(row Row, result *Result) error {
	var categoryID *int64
	if row.Category != "" {
		id, err := im.getOrCreateCategory(row.Category, result)
		if err != nil {
			return err
		}
		categoryID = &id
	}

	var difficultyID *int64
	if id, ok := im.difficultyIDs[row.Difficulty]; ok {
		difficultyID = &id
	}

	var partOfSpeech, phonetic *string
	if row.PartOfSpeech != "" {
		partOfSpeech = &row.PartOfSpeech
	}
	if row.Phonetic != "" {
		phonetic = &row.Phonetic
	}

	var existingID int64
	err := im.db.QueryRow(
		`SELECT id FROM content_items
		 WHERE LOWER(word) = LOWER($1)
		   AND (category_id = $2 OR (category_id IS NULL AND $2 IS NULL))`,
		row.Word, categoryID,
	).Scan(&existingID)

	switch {
	case err == sql.ErrNoRows:
		_, err = im.db.Exec(
			`INSERT INTO content_items (word, definition, part_of_speech, phonetic, category_id, difficulty_id)
			 VALUES ($1, $2, $3, $4, $5, $6)`,
			row.Word, row.Definition, partOfSpeech, phonetic, categoryID, difficultyID,
		)
		if err != nil {
			return fmt.Errorf("failed to insert %q: %w", row.Word, err)
		}
		result.Created++
		return nil

	case err != nil:
		return fmt.Errorf("failed to look up %q: %w", row.Word, err)

	default:
		_, err = im.db.Exec(
			`UPDATE content_items
			 SET definition = $2, part_of_speech = $3, phonetic = $4,
			     difficulty_id = $5, updated_at = NOW()
			 WHERE id = $1`,
			existingID, row.Definition, partOfSpeech, phonetic, difficultyID,
		)
		if err != nil {
			return fmt.Errorf("failed to update %q: %w", row.Word, err)
		}
		result.Updated++
		return nil
	}
}
