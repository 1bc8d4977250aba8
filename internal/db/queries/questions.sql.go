package queries

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
)

const questionCategoryExists = `-- name: QuestionCategoryExists :one
SELECT EXISTS (SELECT 1 FROM questions WHERE category = $1)
`

func (q *Queries) QuestionCategoryExists(ctx context.Context, category string) (bool, error) {
	row := q.db.QueryRow(ctx, questionCategoryExists, category)
	var exists bool
	err := row.Scan(&exists)
	return exists, err
}

const countQuestionsByCategory = `-- name: CountQuestionsByCategory :one
SELECT count(*) FROM questions WHERE category = $1
`

func (q *Queries) CountQuestionsByCategory(ctx context.Context, category string) (int64, error) {
	row := q.db.QueryRow(ctx, countQuestionsByCategory, category)
	var count int64
	err := row.Scan(&count)
	return count, err
}

type InsertQuestionsParams struct {
	ID        pgtype.UUID `json:"id"`
	Statement string      `json:"statement"`
	Answer    string      `json:"answer"`
	Image     string      `json:"image"`
	Category  string      `json:"category"`
	Options   []string    `json:"options"`
}

// InsertQuestions bulk loads rows with the COPY protocol.
func (q *Queries) InsertQuestions(ctx context.Context, arg []InsertQuestionsParams) (int64, error) {
	return q.db.CopyFrom(ctx,
		pgx.Identifier{"questions"},
		[]string{"id", "statement", "answer", "image", "category", "options"},
		pgx.CopyFromSlice(len(arg), func(i int) ([]interface{}, error) {
			p := arg[i]
			return []interface{}{p.ID, p.Statement, p.Answer, p.Image, p.Category, p.Options}, nil
		}),
	)
}

const sampleQuestions = `-- name: SampleQuestions :many
SELECT id, statement, answer, image, category, options, created_at
FROM questions
WHERE category = $1
ORDER BY random()
LIMIT $2
`

type SampleQuestionsParams struct {
	Category string `json:"category"`
	Limit    int32  `json:"limit"`
}

func (q *Queries) SampleQuestions(ctx context.Context, arg SampleQuestionsParams) ([]Question, error) {
	rows, err := q.db.Query(ctx, sampleQuestions, arg.Category, arg.Limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var items []Question
	for rows.Next() {
		var i Question
		if err := rows.Scan(
			&i.ID,
			&i.Statement,
			&i.Answer,
			&i.Image,
			&i.Category,
			&i.Options,
			&i.CreatedAt,
		); err != nil {
			return nil, err
		}
		items = append(items, i)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return items, nil
}

const deleteQuestion = `-- name: DeleteQuestion :execrows
DELETE FROM questions WHERE id = $1
`

func (q *Queries) DeleteQuestion(ctx context.Context, id pgtype.UUID) (int64, error) {
	result, err := q.db.Exec(ctx, deleteQuestion, id)
	if err != nil {
		return 0, err
	}
	return result.RowsAffected(), nil
}

const deleteQuestions = `-- name: DeleteQuestions :many
DELETE FROM questions WHERE id = ANY($1::uuid[])
RETURNING id
`

// DeleteQuestions returns the ids that were actually removed, so concurrent
// callers racing on the same rows can tell which deletes they won.
func (q *Queries) DeleteQuestions(ctx context.Context, ids []pgtype.UUID) ([]pgtype.UUID, error) {
	rows, err := q.db.Query(ctx, deleteQuestions, ids)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var items []pgtype.UUID
	for rows.Next() {
		var id pgtype.UUID
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		items = append(items, id)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return items, nil
}

const deleteQuestionsByCategory = `-- name: DeleteQuestionsByCategory :execrows
DELETE FROM questions WHERE category = $1
`

func (q *Queries) DeleteQuestionsByCategory(ctx context.Context, category string) (int64, error) {
	result, err := q.db.Exec(ctx, deleteQuestionsByCategory, category)
	if err != nil {
		return 0, err
	}
	return result.RowsAffected(), nil
}

const deleteAllQuestions = `-- name: DeleteAllQuestions :execrows
DELETE FROM questions
`

func (q *Queries) DeleteAllQuestions(ctx context.Context) (int64, error) {
	result, err := q.db.Exec(ctx, deleteAllQuestions)
	if err != nil {
		return 0, err
	}
	return result.RowsAffected(), nil
}
