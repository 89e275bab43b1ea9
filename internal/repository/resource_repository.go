package repository // repository holds data access logic for domain entities

import (
	"context"      // context is used to manage deadlines and cancellation
	"database/sql" // sql provides DB primitives
	"errors"
	"strings"

	"github.com/iliyamo/workspace-reservation/internal/model"
)

// resourceColumns is the column list shared by every resource SELECT so
// scans stay in one place.
const resourceColumns = `id, code, name, type, capacity, is_enabled, x, y, width, height, created_at, updated_at`

// ResourceRepo provides methods to create and retrieve bookable
// resources (desks, rooms, the event hall, restaurant tables).  It
// embeds a database handle to perform queries and commands.
type ResourceRepo struct {
	db *sql.DB // db is the underlying database connection
}

// NewResourceRepo constructs a ResourceRepo with the given DB handle.
func NewResourceRepo(db *sql.DB) *ResourceRepo {
	return &ResourceRepo{db: db}
}

// DB exposes the underlying database handle so callers can open
// transactions that span the resource and reservation tables.
func (r *ResourceRepo) DB() *sql.DB { return r.db }

func scanResource(row interface{ Scan(...any) error }) (*model.Resource, error) {
	var res model.Resource
	err := row.Scan(&res.ID, &res.Code, &res.Name, &res.Type, &res.Capacity, &res.Enabled,
		&res.X, &res.Y, &res.Width, &res.Height, &res.CreatedAt, &res.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &res, nil
}

// GetByID retrieves a resource by its ID regardless of enabled state.
// It returns ErrResourceNotFound when no row is found.
func (r *ResourceRepo) GetByID(ctx context.Context, id uint64) (*model.Resource, error) {
	const q = `SELECT ` + resourceColumns + ` FROM resources WHERE id = ?`
	res, err := scanResource(r.db.QueryRowContext(ctx, q, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrResourceNotFound
		}
		return nil, err
	}
	return res, nil
}

// LookupManyForUpdateTx resolves all given resource ids to enabled
// resources inside the provided transaction and locks the matching rows
// (SELECT ... FOR UPDATE) until the transaction ends.  The lock is what
// serialises two concurrent carts fighting over the same resource+day:
// whichever transaction acquires the rows first sees a stable occupancy
// count, and the loser blocks here until the winner commits.  Rows are
// locked in ascending id order so two carts sharing resources cannot
// deadlock.  Ids that do not resolve are simply absent from the result
// map; the caller decides whether that aborts the operation.
func (r *ResourceRepo) LookupManyForUpdateTx(ctx context.Context, tx *sql.Tx, ids []uint64) (map[uint64]*model.Resource, error) {
	if len(ids) == 0 {
		return map[uint64]*model.Resource{}, nil
	}
	placeholders := make([]string, 0, len(ids))
	args := make([]interface{}, 0, len(ids))
	for _, id := range ids {
		placeholders = append(placeholders, "?")
		args = append(args, id)
	}
	q := `SELECT ` + resourceColumns + `
	      FROM resources
	      WHERE id IN (` + strings.Join(placeholders, ",") + `) AND is_enabled = 1
	      ORDER BY id
	      FOR UPDATE`
	rows, err := tx.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make(map[uint64]*model.Resource, len(ids))
	for rows.Next() {
		res, err := scanResource(rows)
		if err != nil {
			return nil, err
		}
		out[res.ID] = res
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

// ListEnabled returns every enabled resource ordered by id.  Used by
// the floor map endpoint; geometry fields are included so the client
// can render the plan without a second round trip.
func (r *ResourceRepo) ListEnabled(ctx context.Context) ([]*model.Resource, error) {
	const q = `SELECT ` + resourceColumns + ` FROM resources WHERE is_enabled = 1 ORDER BY id`
	return r.listQuery(ctx, q)
}

// ListEnabledByType returns enabled resources of one type tag ordered
// by id, e.g. all restaurant tables.
func (r *ResourceRepo) ListEnabledByType(ctx context.Context, typ string) ([]*model.Resource, error) {
	const q = `SELECT ` + resourceColumns + ` FROM resources WHERE is_enabled = 1 AND type = ? ORDER BY id`
	return r.listQuery(ctx, q, typ)
}

func (r *ResourceRepo) listQuery(ctx context.Context, q string, args ...interface{}) ([]*model.Resource, error) {
	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []*model.Resource
	for rows.Next() {
		res, err := scanResource(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, res)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

// Create inserts a new resource.  Code, Name, Type and Capacity must be
// set; geometry may be zero.  After insert the struct is re-read so the
// ID, enabled flag and timestamps reflect what the database stored.
func (r *ResourceRepo) Create(ctx context.Context, res *model.Resource) error {
	const qInsert = `INSERT INTO resources (code, name, type, capacity, x, y, width, height)
	                 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`
	result, err := r.db.ExecContext(ctx, qInsert, res.Code, res.Name, res.Type, res.Capacity,
		res.X, res.Y, res.Width, res.Height)
	if err != nil {
		return err
	}
	id, err := result.LastInsertId()
	if err != nil {
		return err
	}
	res.ID = uint64(id)

	const qSelect = `SELECT ` + resourceColumns + ` FROM resources WHERE id = ?`
	stored, err := scanResource(r.db.QueryRowContext(ctx, qSelect, res.ID))
	if err != nil {
		return err
	}
	*res = *stored
	return nil
}

// Update rewrites the mutable attributes of a resource: name, type,
// capacity and floor-map geometry.  The code is immutable once created.
// It returns ErrResourceNotFound when the id does not exist.
func (r *ResourceRepo) Update(ctx context.Context, res *model.Resource) error {
	const q = `UPDATE resources SET name = ?, type = ?, capacity = ?, x = ?, y = ?, width = ?, height = ?
	           WHERE id = ?`
	result, err := r.db.ExecContext(ctx, q, res.Name, res.Type, res.Capacity,
		res.X, res.Y, res.Width, res.Height, res.ID)
	if err != nil {
		return err
	}
	n, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		// RowsAffected is 0 both for a missing row and for a no-op
		// update; distinguish with a cheap existence probe.
		if _, err := r.GetByID(ctx, res.ID); err != nil {
			return err
		}
	}
	return nil
}

// SetEnabled flips the soft-disable flag.  Disabled resources stay in
// the catalog (history keeps referencing them) but no longer resolve
// during booking.
func (r *ResourceRepo) SetEnabled(ctx context.Context, id uint64, enabled bool) error {
	const q = `UPDATE resources SET is_enabled = ? WHERE id = ?`
	result, err := r.db.ExecContext(ctx, q, enabled, id)
	if err != nil {
		return err
	}
	n, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		if _, err := r.GetByID(ctx, id); err != nil {
			return err
		}
	}
	return nil
}

// HasAny reports whether the catalog contains at least one resource.
// The demo seeder uses it to avoid re-seeding an initialized database.
func (r *ResourceRepo) HasAny(ctx context.Context) (bool, error) {
	var n int
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM resources`).Scan(&n); err != nil {
		return false, err
	}
	return n > 0, nil
}
