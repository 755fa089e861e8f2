package db

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"surveybot/survey"
)

// ErrAlreadyArchived is returned when a survey's result was saved before.
var ErrAlreadyArchived = errors.New("db: survey result already archived")

// Summary is one row of the archive listing.
type Summary struct {
	Seq          int64         `json:"seq"`
	SurveyID     string        `json:"survey_id"`
	CreatorName  string        `json:"creator_name"`
	Reason       survey.Reason `json:"reason"`
	Respondents  int           `json:"respondents"`
	Participants int           `json:"participants"`
	ClosedAt     time.Time     `json:"closed_at"`
}

// SaveResult archives a closed survey's result. Each survey is saved once.
func (s *Store) SaveResult(ctx context.Context, r survey.Result) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	var exists int
	err = tx.QueryRowContext(ctx, "SELECT COUNT(1) FROM surveys WHERE id = ?", r.SurveyID).Scan(&exists)
	if err != nil {
		return err
	}
	if exists > 0 {
		return fmt.Errorf("%w: %s", ErrAlreadyArchived, r.SurveyID)
	}

	seq, err := nextSurveySeq(tx)
	if err != nil {
		return fmt.Errorf("db: next survey seq: %w", err)
	}

	_, err = tx.ExecContext(ctx, `INSERT INTO surveys(
		id, seq, creator_id, creator_name, reason, respondents, participants, opened_at, closed_at
	) VALUES(?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		r.SurveyID, seq, r.CreatorID, r.CreatorName, string(r.Reason),
		r.Respondents, r.Participants, r.OpenedAt.UnixMilli(), r.ClosedAt.UnixMilli())
	if err != nil {
		return fmt.Errorf("db: insert survey: %w", err)
	}

	qStmt, err := tx.PrepareContext(ctx, "INSERT INTO survey_questions(survey_id, position, text, total) VALUES(?, ?, ?, ?)")
	if err != nil {
		return err
	}
	defer qStmt.Close()
	oStmt, err := tx.PrepareContext(ctx, "INSERT INTO survey_options(survey_id, question, rank, label, votes, percent) VALUES(?, ?, ?, ?, ?, ?)")
	if err != nil {
		return err
	}
	defer oStmt.Close()

	for i, q := range r.Questions {
		if _, err := qStmt.ExecContext(ctx, r.SurveyID, i, q.Text, q.Total); err != nil {
			return fmt.Errorf("db: insert question %d: %w", i, err)
		}
		for rank, o := range q.Ranked {
			if _, err := oStmt.ExecContext(ctx, r.SurveyID, i, rank, o.Option, o.Votes, o.Percent); err != nil {
				return fmt.Errorf("db: insert option %d/%d: %w", i, rank, err)
			}
		}
	}
	return tx.Commit()
}

// Result loads an archived result. It returns nil, nil when the survey is not
// in the archive.
func (s *Store) Result(ctx context.Context, id string) (*survey.Result, error) {
	var (
		r                  survey.Result
		reason             string
		openedAt, closedAt int64
	)
	err := s.db.QueryRowContext(ctx, `SELECT id, creator_id, creator_name, reason, respondents, participants, opened_at, closed_at
		FROM surveys WHERE id = ?`, id).
		Scan(&r.SurveyID, &r.CreatorID, &r.CreatorName, &reason, &r.Respondents, &r.Participants, &openedAt, &closedAt)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}
	r.Reason = survey.Reason(reason)
	r.OpenedAt = time.UnixMilli(openedAt)
	r.ClosedAt = time.UnixMilli(closedAt)

	rows, err := s.db.QueryContext(ctx, "SELECT text, total FROM survey_questions WHERE survey_id = ? ORDER BY position", id)
	if err != nil {
		return nil, err
	}
	for rows.Next() {
		var q survey.QuestionResult
		if err := rows.Scan(&q.Text, &q.Total); err != nil {
			rows.Close()
			return nil, err
		}
		r.Questions = append(r.Questions, q)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return nil, err
	}

	rows, err = s.db.QueryContext(ctx, "SELECT question, label, votes, percent FROM survey_options WHERE survey_id = ? ORDER BY question, rank", id)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	for rows.Next() {
		var (
			question int
			o        survey.RankedOption
		)
		if err := rows.Scan(&question, &o.Option, &o.Votes, &o.Percent); err != nil {
			return nil, err
		}
		if question < 0 || question >= len(r.Questions) {
			continue
		}
		r.Questions[question].Ranked = append(r.Questions[question].Ranked, o)
	}
	return &r, rows.Err()
}

// Recent lists the latest archived surveys, newest first.
func (s *Store) Recent(ctx context.Context, limit int) ([]Summary, error) {
	if limit <= 0 {
		limit = 20
	}
	rows, err := s.db.QueryContext(ctx, `SELECT seq, id, creator_name, reason, respondents, participants, closed_at
		FROM surveys ORDER BY seq DESC LIMIT ?`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Summary
	for rows.Next() {
		var (
			sum      Summary
			reason   string
			closedAt int64
		)
		if err := rows.Scan(&sum.Seq, &sum.SurveyID, &sum.CreatorName, &reason, &sum.Respondents, &sum.Participants, &closedAt); err != nil {
			return nil, err
		}
		sum.Reason = survey.Reason(reason)
		sum.ClosedAt = time.UnixMilli(closedAt)
		out = append(out, sum)
	}
	return out, rows.Err()
}
