package postgres

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/riskibarqy/league-hub/internal/domain/competition"
	qb "github.com/riskibarqy/league-hub/internal/platform/querybuilder"
)

const competitionColumns = "public_id, name, kind, season, document, version, created_at, updated_at, deleted_at"

type CompetitionRepository struct {
	db *sqlx.DB
}

func NewCompetitionRepository(db *sqlx.DB) *CompetitionRepository {
	return &CompetitionRepository{db: db}
}

func (r *CompetitionRepository) List(ctx context.Context) ([]competition.Competition, error) {
	query, args, err := qb.Select(competitionColumns).From("competitions").
		Where(qb.IsNull("deleted_at")).
		OrderBy("public_id").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build list competitions query: %w", err)
	}

	var rows []competitionTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("list competitions: %w", err)
	}

	out := make([]competition.Competition, 0, len(rows))
	for _, row := range rows {
		item, err := decodeCompetition(row)
		if err != nil {
			return nil, err
		}
		out = append(out, item)
	}
	return out, nil
}

func (r *CompetitionRepository) GetByID(ctx context.Context, id string) (competition.Competition, bool, error) {
	query, args, err := qb.Select(competitionColumns).From("competitions").
		Where(qb.Eq("public_id", strings.TrimSpace(id)), qb.IsNull("deleted_at")).
		Limit(1).
		ToSQL()
	if err != nil {
		return competition.Competition{}, false, fmt.Errorf("build get competition query: %w", err)
	}

	var row competitionTableModel
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		if isNotFound(err) {
			return competition.Competition{}, false, nil
		}
		return competition.Competition{}, false, fmt.Errorf("get competition id=%s: %w", id, err)
	}

	item, err := decodeCompetition(row)
	if err != nil {
		return competition.Competition{}, false, err
	}
	return item, true, nil
}

func (r *CompetitionRepository) Create(ctx context.Context, item competition.Competition) error {
	if err := item.Validate(); err != nil {
		return err
	}

	document, err := encodeCompetitionDocument(item)
	if err != nil {
		return err
	}
	version := item.Version
	if version == 0 {
		version = 1
	}

	query, args, err := qb.InsertModel("competitions", competitionInsertModel{
		ID:       item.ID,
		Name:     item.Name,
		Kind:     string(item.Kind),
		Season:   item.Season,
		Document: document,
		Version:  version,
	}, "")
	if err != nil {
		return fmt.Errorf("build insert competition query: %w", err)
	}

	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("%w: competition %s already exists", competition.ErrConflict, item.ID)
		}
		return fmt.Errorf("insert competition id=%s: %w", item.ID, err)
	}
	return nil
}

// Update locks the row, applies fn and writes the document back guarded by
// the version that was read.
func (r *CompetitionRepository) Update(ctx context.Context, id string, fn competition.MutateFunc) (competition.Competition, error) {
	id = strings.TrimSpace(id)

	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return competition.Competition{}, fmt.Errorf("begin tx update competition: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	selectQuery, selectArgs, err := qb.Select(competitionColumns).From("competitions").
		Where(qb.Eq("public_id", id), qb.IsNull("deleted_at")).
		ForUpdate().
		ToSQL()
	if err != nil {
		return competition.Competition{}, fmt.Errorf("build lock competition query: %w", err)
	}

	var row competitionTableModel
	if err := tx.GetContext(ctx, &row, selectQuery, selectArgs...); err != nil {
		if isNotFound(err) {
			return competition.Competition{}, fmt.Errorf("%w: competition=%s", competition.ErrNotFound, id)
		}
		return competition.Competition{}, fmt.Errorf("lock competition id=%s: %w", id, err)
	}

	current, err := decodeCompetition(row)
	if err != nil {
		return competition.Competition{}, err
	}

	next, err := fn(current.Clone())
	if err != nil {
		return competition.Competition{}, err
	}
	next.ID = current.ID
	if err := next.Validate(); err != nil {
		return competition.Competition{}, fmt.Errorf("validate competition id=%s: %w", id, err)
	}

	document, err := encodeCompetitionDocument(next)
	if err != nil {
		return competition.Competition{}, err
	}

	updateQuery, updateArgs, err := qb.UpdateModel("competitions", competitionUpdateModel{
		Name:     next.Name,
		Kind:     string(next.Kind),
		Season:   next.Season,
		Document: document,
	}).
		SetExpr("version", "version + 1").
		SetExpr("updated_at", "NOW()").
		Where(
			qb.Eq("public_id", id),
			qb.Eq("version", current.Version),
			qb.IsNull("deleted_at"),
		).
		Returning("version", "updated_at").
		ToSQL()
	if err != nil {
		return competition.Competition{}, fmt.Errorf("build update competition query: %w", err)
	}

	var written struct {
		Version   int64     `db:"version"`
		UpdatedAt time.Time `db:"updated_at"`
	}
	if err := tx.GetContext(ctx, &written, updateQuery, updateArgs...); err != nil {
		if isNotFound(err) {
			return competition.Competition{}, fmt.Errorf("%w: competition=%s version=%d", competition.ErrConflict, id, current.Version)
		}
		return competition.Competition{}, fmt.Errorf("update competition id=%s: %w", id, err)
	}

	if err := tx.Commit(); err != nil {
		return competition.Competition{}, fmt.Errorf("commit update competition tx: %w", err)
	}

	next.Version = written.Version
	next.UpdatedAt = written.UpdatedAt.UTC()
	return next, nil
}
