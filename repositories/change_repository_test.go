package repositories

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/trailmark/trailmark-backend/models"
	"github.com/trailmark/trailmark-backend/repositories/dbmodels"
)

func newChangeRepositoryFixture(t *testing.T) (ChangeRepositoryPostgresql, pgxmock.PgxPoolIface, Executor) {
	t.Helper()
	pool, err := pgxmock.NewPool()
	require.NoError(t, err)
	t.Cleanup(pool.Close)

	return ChangeRepositoryPostgresql{}, pool, NewPgExecutor(pool)
}

func changeRows() *pgxmock.Rows {
	return pgxmock.NewRows(dbmodels.SelectChangeColumns)
}

func TestChangeRepository_CreateChange(t *testing.T) {
	repo, pool, exec := newChangeRepositoryFixture(t)

	input := models.CreateChangeInput{
		Id:          uuid.New(),
		SubjectType: "user",
		SubjectId:   "42",
		Action:      models.ChangeActionUpdate,
		Diff: models.ChangeDiff{
			"status": {Old: "active", New: "blocked"},
		},
		ActorId:   "actor-1",
		ActorName: "Alice",
	}

	actorId := "actor-1"
	actorName := "Alice"
	pool.ExpectExec("INSERT INTO changes").
		WithArgs(
			input.Id,
			"user",
			"42",
			models.ChangeActionUpdate,
			[]byte(`{"status":{"old":"active","new":"blocked"}}`),
			&actorId,
			&actorName,
			(*uuid.UUID)(nil),
		).
		WillReturnResult(pgxmock.NewResult("INSERT", 1))

	err := repo.CreateChange(context.Background(), exec, input)

	assert.NoError(t, err)
	assert.NoError(t, pool.ExpectationsWereMet())
}

func TestChangeRepository_CreateChange_anonymousActor(t *testing.T) {
	repo, pool, exec := newChangeRepositoryFixture(t)

	input := models.CreateChangeInput{
		Id:          uuid.New(),
		SubjectType: "user",
		SubjectId:   "42",
		Action:      models.ChangeActionCreate,
		Diff:        models.ChangeDiff{"name": {New: "alice"}},
	}

	pool.ExpectExec("INSERT INTO changes").
		WithArgs(
			input.Id,
			"user",
			"42",
			models.ChangeActionCreate,
			[]byte(`{"name":{"new":"alice"}}`),
			(*string)(nil),
			(*string)(nil),
			(*uuid.UUID)(nil),
		).
		WillReturnResult(pgxmock.NewResult("INSERT", 1))

	err := repo.CreateChange(context.Background(), exec, input)

	assert.NoError(t, err)
	assert.NoError(t, pool.ExpectationsWereMet())
}

func TestChangeRepository_CreateChange_duplicateId(t *testing.T) {
	repo, pool, exec := newChangeRepositoryFixture(t)

	input := models.CreateChangeInput{
		Id:          uuid.New(),
		SubjectType: "user",
		SubjectId:   "42",
		Action:      models.ChangeActionCreate,
		Diff:        models.ChangeDiff{"name": {New: "alice"}},
	}

	pool.ExpectExec("INSERT INTO changes").
		WithArgs(
			input.Id,
			"user",
			"42",
			models.ChangeActionCreate,
			[]byte(`{"name":{"new":"alice"}}`),
			(*string)(nil),
			(*string)(nil),
			(*uuid.UUID)(nil),
		).
		WillReturnError(&pgconn.PgError{Code: pgerrcode.UniqueViolation})

	err := repo.CreateChange(context.Background(), exec, input)

	assert.ErrorIs(t, err, models.ConflictError)
	assert.NoError(t, pool.ExpectationsWereMet())
}

func TestChangeRepository_GetChangeById(t *testing.T) {
	repo, pool, exec := newChangeRepositoryFixture(t)

	id := uuid.New()
	createdAt := time.Now()
	pool.ExpectQuery("SELECT .* FROM changes WHERE id =").
		WithArgs(id).
		WillReturnRows(changeRows().AddRow(
			id, "user", "42", "update",
			[]byte(`{"status":{"old":"active","new":"blocked"}}`),
			nil, nil, nil, createdAt,
		))

	change, err := repo.GetChangeById(context.Background(), exec, id)

	assert.NoError(t, err)
	assert.Equal(t, models.Change{
		Id:          id,
		SubjectType: "user",
		SubjectId:   "42",
		Action:      models.ChangeActionUpdate,
		Diff:        models.ChangeDiff{"status": {Old: "active", New: "blocked"}},
		CreatedAt:   createdAt,
	}, change)
	assert.NoError(t, pool.ExpectationsWereMet())
}

func TestChangeRepository_GetChangeById_notFound(t *testing.T) {
	repo, pool, exec := newChangeRepositoryFixture(t)

	id := uuid.New()
	pool.ExpectQuery("SELECT .* FROM changes WHERE id =").
		WithArgs(id).
		WillReturnRows(changeRows())

	_, err := repo.GetChangeById(context.Background(), exec, id)

	assert.ErrorIs(t, err, models.NotFoundError)
}

func TestChangeRepository_ListChanges_subjectFilter(t *testing.T) {
	repo, pool, exec := newChangeRepositoryFixture(t)

	id := uuid.New()
	createdAt := time.Now()
	pool.ExpectQuery(`SELECT .* FROM changes WHERE subject_type = \$1 AND subject_id = \$2 ORDER BY created_at DESC, id DESC LIMIT 25`).
		WithArgs("user", "42").
		WillReturnRows(changeRows().AddRow(
			id, "user", "42", "create",
			[]byte(`{"name":{"new":"alice"}}`),
			nil, nil, nil, createdAt,
		))

	changes, err := repo.ListChanges(context.Background(), exec,
		models.ChangeFilters{SubjectType: "user", SubjectId: "42"},
		models.PaginationAndSorting{})

	assert.NoError(t, err)
	require.Len(t, changes, 1)
	assert.Equal(t, id, changes[0].Id)
	assert.NoError(t, pool.ExpectationsWereMet())
}

func TestChangeRepository_ListChanges_cursor(t *testing.T) {
	repo, pool, exec := newChangeRepositoryFixture(t)

	cursorId := uuid.New()
	cursorCreatedAt := time.Now().Add(-time.Hour)
	pool.ExpectQuery("SELECT .* FROM changes WHERE id =").
		WithArgs(cursorId).
		WillReturnRows(changeRows().AddRow(
			cursorId, "user", "42", "create",
			[]byte(`{}`), nil, nil, nil, cursorCreatedAt,
		))
	pool.ExpectQuery(`SELECT .* FROM changes WHERE \(created_at, id\) < \(\$1, \$2\)`).
		WithArgs(cursorCreatedAt, cursorId).
		WillReturnRows(changeRows())

	changes, err := repo.ListChanges(context.Background(), exec,
		models.ChangeFilters{},
		models.PaginationAndSorting{OffsetId: cursorId.String(), Order: models.SortingOrderDesc})

	assert.NoError(t, err)
	assert.Empty(t, changes)
	assert.NoError(t, pool.ExpectationsWereMet())
}

func TestChangeRepository_ListChanges_invalidCursor(t *testing.T) {
	repo, _, exec := newChangeRepositoryFixture(t)

	_, err := repo.ListChanges(context.Background(), exec,
		models.ChangeFilters{},
		models.PaginationAndSorting{OffsetId: "not-a-uuid"})

	assert.ErrorIs(t, err, models.BadParameterError)
}

func TestChangeRepository_NextChange_atTail(t *testing.T) {
	repo, pool, exec := newChangeRepositoryFixture(t)

	change := models.Change{
		Id:          uuid.New(),
		SubjectType: "user",
		SubjectId:   "42",
		CreatedAt:   time.Now(),
	}
	pool.ExpectQuery(`SELECT .* FROM changes WHERE subject_id = \$1 AND subject_type = \$2 AND \(created_at, id\) > \(\$3, \$4\)`).
		WithArgs("42", "user", change.CreatedAt, change.Id).
		WillReturnRows(changeRows())

	next, err := repo.NextChange(context.Background(), exec, change)

	assert.NoError(t, err)
	assert.Nil(t, next)
	assert.NoError(t, pool.ExpectationsWereMet())
}

func TestChangeRepository_ListChangesUpTo(t *testing.T) {
	repo, pool, exec := newChangeRepositoryFixture(t)

	upTo := models.Change{
		Id:          uuid.New(),
		SubjectType: "user",
		SubjectId:   "42",
		CreatedAt:   time.Now(),
	}
	firstId := uuid.New()
	pool.ExpectQuery(`SELECT .* FROM changes WHERE subject_id = \$1 AND subject_type = \$2 AND \(created_at, id\) <= \(\$3, \$4\) ORDER BY created_at ASC, id ASC`).
		WithArgs("42", "user", upTo.CreatedAt, upTo.Id).
		WillReturnRows(changeRows().
			AddRow(firstId, "user", "42", "create",
				[]byte(`{"name":{"new":"alice"}}`), nil, nil, nil,
				upTo.CreatedAt.Add(-time.Hour)).
			AddRow(upTo.Id, "user", "42", "update",
				[]byte(`{"name":{"old":"alice","new":"bob"}}`), nil, nil, nil,
				upTo.CreatedAt))

	changes, err := repo.ListChangesUpTo(context.Background(), exec, "user", "42", upTo)

	assert.NoError(t, err)
	require.Len(t, changes, 2)
	assert.Equal(t, firstId, changes[0].Id)
	assert.Equal(t, upTo.Id, changes[1].Id)
	assert.NoError(t, pool.ExpectationsWereMet())
}

func TestChangeRepository_nilExecutor(t *testing.T) {
	repo := ChangeRepositoryPostgresql{}

	_, err := repo.GetChangeById(context.Background(), nil, uuid.New())

	assert.Error(t, err)
}
