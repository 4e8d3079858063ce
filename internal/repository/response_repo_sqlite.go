package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"time"

	"creator-quiz/internal/domain"
)

// SQLiteResponseRepository persiste respuestas en una base sqlite local.
type SQLiteResponseRepository struct {
	db *sql.DB
}

func NewSQLiteResponseRepository(db *sql.DB) *SQLiteResponseRepository {
	return &SQLiteResponseRepository{db: db}
}

func (r *SQLiteResponseRepository) Save(ctx context.Context, resp domain.Response) error {
	answers, err := json.Marshal(resp.Answers)
	if err != nil {
		return err
	}
	scores, err := json.Marshal(resp.Scores)
	if err != nil {
		return err
	}
	_, err = r.db.ExecContext(ctx,
		`INSERT INTO quiz_responses (id, user_id, answers_json, primary_type, secondary_type, scores_json, submitted_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		resp.ID, resp.UserID, string(answers), string(resp.Primary), string(resp.Secondary), string(scores), resp.SubmittedAt.UnixNano())
	return err
}

func (r *SQLiteResponseRepository) GetByUserID(ctx context.Context, userID string) (domain.Response, error) {
	var (
		resp               domain.Response
		answers, scores    string
		primary, secondary string
		submitted          int64
	)
	err := r.db.QueryRowContext(ctx,
		`SELECT id, user_id, answers_json, primary_type, secondary_type, scores_json, submitted_at
		 FROM quiz_responses
		 WHERE user_id = ?
		 ORDER BY submitted_at DESC, rowid DESC
		 LIMIT 1`, userID,
	).Scan(&resp.ID, &resp.UserID, &answers, &primary, &secondary, &scores, &submitted)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.Response{}, ErrResponseNotFound
	}
	if err != nil {
		return domain.Response{}, err
	}
	if err := json.Unmarshal([]byte(answers), &resp.Answers); err != nil {
		return domain.Response{}, err
	}
	if err := json.Unmarshal([]byte(scores), &resp.Scores); err != nil {
		return domain.Response{}, err
	}
	resp.Primary = domain.PrimaryType(primary)
	resp.Secondary = domain.SecondaryType(secondary)
	resp.SubmittedAt = time.Unix(0, submitted).UTC()
	return resp, nil
}
