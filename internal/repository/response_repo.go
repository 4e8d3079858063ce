package repository

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	pgvector "github.com/pgvector/pgvector-go"

	"creator-quiz/internal/domain"
)

var ErrResponseNotFound = errors.New("response not found")

// ResponseRepository guarda entregas del cuestionario y las recupera por user_id.
// Si un user_id entrega varias veces, GetByUserID devuelve la ultima.
type ResponseRepository interface {
	Save(ctx context.Context, resp domain.Response) error
	GetByUserID(ctx context.Context, userID string) (domain.Response, error)
}

type PgResponseRepository struct {
	pool *pgxpool.Pool
}

func NewPgResponseRepository(pool *pgxpool.Pool) *PgResponseRepository {
	return &PgResponseRepository{pool: pool}
}

func (r *PgResponseRepository) Save(ctx context.Context, resp domain.Response) error {
	const query = `
		INSERT INTO quiz_responses (id, user_id, answers, primary_type, secondary_type, scores, submitted_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`
	answers := make([]int32, len(resp.Answers))
	for i, a := range resp.Answers {
		answers[i] = int32(a)
	}
	_, err := r.pool.Exec(ctx, query,
		resp.ID,
		resp.UserID,
		answers,
		string(resp.Primary),
		string(resp.Secondary),
		pgvector.NewVector(resp.Scores),
		resp.SubmittedAt,
	)
	return err
}

func (r *PgResponseRepository) GetByUserID(ctx context.Context, userID string) (domain.Response, error) {
	const query = `
		SELECT id, user_id, answers, primary_type, secondary_type, scores, submitted_at
		FROM quiz_responses
		WHERE user_id = $1
		ORDER BY submitted_at DESC
		LIMIT 1
	`
	var (
		resp      domain.Response
		answers   []int32
		primary   string
		secondary string
		scores    pgvector.Vector
		submitted time.Time
	)
	err := r.pool.QueryRow(ctx, query, userID).Scan(
		&resp.ID,
		&resp.UserID,
		&answers,
		&primary,
		&secondary,
		&scores,
		&submitted,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return domain.Response{}, ErrResponseNotFound
	}
	if err != nil {
		return domain.Response{}, err
	}
	resp.Answers = make([]int, len(answers))
	for i, a := range answers {
		resp.Answers[i] = int(a)
	}
	resp.Primary = domain.PrimaryType(primary)
	resp.Secondary = domain.SecondaryType(secondary)
	resp.Scores = scores.Slice()
	resp.SubmittedAt = submitted.UTC()
	return resp, nil
}
