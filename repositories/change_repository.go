package repositories

import (
	"context"
	"encoding/json"

	"github.com/Masterminds/squirrel"
	"github.com/cockroachdb/errors"
	"github.com/google/uuid"

	"github.com/trailmark/trailmark-backend/models"
	"github.com/trailmark/trailmark-backend/repositories/dbmodels"
)

// ChangeRepository is append-only by construction: it exposes no update or
// delete operation on the changes table.
type ChangeRepository interface {
	CreateChange(ctx context.Context, exec Executor, input models.CreateChangeInput) error
	GetChangeById(ctx context.Context, exec Executor, id uuid.UUID) (models.Change, error)
	ListChanges(ctx context.Context, exec Executor, filters models.ChangeFilters,
		pagination models.PaginationAndSorting) ([]models.Change, error)
	FirstChangeOfSubject(ctx context.Context, exec Executor, subjectType, subjectId string) (models.Change, error)
	LastChangeOfSubject(ctx context.Context, exec Executor, subjectType, subjectId string) (models.Change, error)
	NextChange(ctx context.Context, exec Executor, change models.Change) (*models.Change, error)
	PreviousChange(ctx context.Context, exec Executor, change models.Change) (*models.Change, error)
	ListChangesUpTo(ctx context.Context, exec Executor, subjectType, subjectId string,
		upTo models.Change) ([]models.Change, error)
}

type ChangeRepositoryPostgresql struct{}

func (repo ChangeRepositoryPostgresql) CreateChange(
	ctx context.Context,
	exec Executor,
	input models.CreateChangeInput,
) error {
	if err := validateExecutor(exec); err != nil {
		return err
	}

	diff, err := json.Marshal(input.Diff)
	if err != nil {
		return errors.Wrap(err, "can't marshal change diff")
	}

	query := NewQueryBuilder().
		Insert(dbmodels.TABLE_CHANGES).
		Columns(
			"id",
			"subject_type",
			"subject_id",
			"action",
			"diff",
			"actor_id",
			"actor_name",
			"reverted_from_id",
		).
		Values(
			input.Id,
			input.SubjectType,
			input.SubjectId,
			input.Action,
			diff,
			nullIfEmpty(input.ActorId),
			nullIfEmpty(input.ActorName),
			input.RevertedFromId,
		)

	_, err = ExecBuilder(ctx, exec, query)
	if IsUniqueViolationError(err) {
		return errors.Wrap(models.ConflictError, "a change with this id already exists")
	}
	return err
}

func (repo ChangeRepositoryPostgresql) GetChangeById(
	ctx context.Context,
	exec Executor,
	id uuid.UUID,
) (models.Change, error) {
	if err := validateExecutor(exec); err != nil {
		return models.Change{}, err
	}

	return SqlToModel(
		ctx,
		exec,
		NewQueryBuilder().
			Select(dbmodels.SelectChangeColumns...).
			From(dbmodels.TABLE_CHANGES).
			Where(squirrel.Eq{"id": id}),
		dbmodels.AdaptChange,
	)
}

func (repo ChangeRepositoryPostgresql) ListChanges(
	ctx context.Context,
	exec Executor,
	filters models.ChangeFilters,
	pagination models.PaginationAndSorting,
) ([]models.Change, error) {
	if err := validateExecutor(exec); err != nil {
		return nil, err
	}
	pagination = models.WithPaginationDefaults(pagination)

	query := NewQueryBuilder().
		Select(dbmodels.SelectChangeColumns...).
		From(dbmodels.TABLE_CHANGES).
		Limit(uint64(pagination.Limit))

	if pagination.Order == models.SortingOrderAsc {
		query = query.OrderBy("created_at ASC, id ASC")
	} else {
		query = query.OrderBy("created_at DESC, id DESC")
	}

	if filters.SubjectType != "" {
		query = query.Where(squirrel.Eq{"subject_type": filters.SubjectType})
	}
	if filters.SubjectId != "" {
		query = query.Where(squirrel.Eq{"subject_id": filters.SubjectId})
	}
	if filters.Action != "" {
		query = query.Where(squirrel.Eq{"action": filters.Action})
	}
	if filters.ActorId != "" {
		query = query.Where(squirrel.Eq{"actor_id": filters.ActorId})
	}
	if filters.From != nil {
		query = query.Where("created_at >= ?", *filters.From)
	}
	if filters.To != nil {
		query = query.Where("created_at <= ?", *filters.To)
	}

	if pagination.OffsetId != "" {
		cursorId, err := uuid.Parse(pagination.OffsetId)
		if err != nil {
			return nil, errors.Wrap(models.BadParameterError, "invalid cursor id")
		}
		cursor, err := repo.GetChangeById(ctx, exec, cursorId)
		if err != nil {
			return nil, errors.Wrap(err, "could not retrieve cursor change")
		}

		if pagination.Order == models.SortingOrderAsc {
			query = query.Where("(created_at, id) > (?, ?)", cursor.CreatedAt, cursor.Id)
		} else {
			query = query.Where("(created_at, id) < (?, ?)", cursor.CreatedAt, cursor.Id)
		}
	}

	return SqlToListOfModels(ctx, exec, query, dbmodels.AdaptChange)
}

func (repo ChangeRepositoryPostgresql) FirstChangeOfSubject(
	ctx context.Context,
	exec Executor,
	subjectType, subjectId string,
) (models.Change, error) {
	return repo.boundaryChangeOfSubject(ctx, exec, subjectType, subjectId, "created_at ASC, id ASC")
}

func (repo ChangeRepositoryPostgresql) LastChangeOfSubject(
	ctx context.Context,
	exec Executor,
	subjectType, subjectId string,
) (models.Change, error) {
	return repo.boundaryChangeOfSubject(ctx, exec, subjectType, subjectId, "created_at DESC, id DESC")
}

func (repo ChangeRepositoryPostgresql) boundaryChangeOfSubject(
	ctx context.Context,
	exec Executor,
	subjectType, subjectId string,
	order string,
) (models.Change, error) {
	if err := validateExecutor(exec); err != nil {
		return models.Change{}, err
	}

	return SqlToModel(
		ctx,
		exec,
		NewQueryBuilder().
			Select(dbmodels.SelectChangeColumns...).
			From(dbmodels.TABLE_CHANGES).
			Where(squirrel.Eq{"subject_type": subjectType, "subject_id": subjectId}).
			OrderBy(order).
			Limit(1),
		dbmodels.AdaptChange,
	)
}

// NextChange returns the change right after the given one in the subject's
// history, or nil when the given change is the latest.
func (repo ChangeRepositoryPostgresql) NextChange(
	ctx context.Context,
	exec Executor,
	change models.Change,
) (*models.Change, error) {
	if err := validateExecutor(exec); err != nil {
		return nil, err
	}

	query := NewQueryBuilder().
		Select(dbmodels.SelectChangeColumns...).
		From(dbmodels.TABLE_CHANGES).
		Where(squirrel.Eq{"subject_type": change.SubjectType, "subject_id": change.SubjectId}).
		Where("(created_at, id) > (?, ?)", change.CreatedAt, change.Id).
		OrderBy("created_at ASC, id ASC").
		Limit(1)

	return SqlToOptionalModel(ctx, exec, query, dbmodels.AdaptChange)
}

// PreviousChange returns the change right before the given one in the
// subject's history, or nil when the given change is the first.
func (repo ChangeRepositoryPostgresql) PreviousChange(
	ctx context.Context,
	exec Executor,
	change models.Change,
) (*models.Change, error) {
	if err := validateExecutor(exec); err != nil {
		return nil, err
	}

	query := NewQueryBuilder().
		Select(dbmodels.SelectChangeColumns...).
		From(dbmodels.TABLE_CHANGES).
		Where(squirrel.Eq{"subject_type": change.SubjectType, "subject_id": change.SubjectId}).
		Where("(created_at, id) < (?, ?)", change.CreatedAt, change.Id).
		OrderBy("created_at DESC, id DESC").
		Limit(1)

	return SqlToOptionalModel(ctx, exec, query, dbmodels.AdaptChange)
}

// ListChangesUpTo returns the subject's history from its first change up to
// and including the given one, in chronological order.
func (repo ChangeRepositoryPostgresql) ListChangesUpTo(
	ctx context.Context,
	exec Executor,
	subjectType, subjectId string,
	upTo models.Change,
) ([]models.Change, error) {
	if err := validateExecutor(exec); err != nil {
		return nil, err
	}

	query := NewQueryBuilder().
		Select(dbmodels.SelectChangeColumns...).
		From(dbmodels.TABLE_CHANGES).
		Where(squirrel.Eq{"subject_type": subjectType, "subject_id": subjectId}).
		Where("(created_at, id) <= (?, ?)", upTo.CreatedAt, upTo.Id).
		OrderBy("created_at ASC, id ASC")

	return SqlToListOfModels(ctx, exec, query, dbmodels.AdaptChange)
}

func nullIfEmpty(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
