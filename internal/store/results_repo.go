package store

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"entgo.io/ent/dialect"
	entsql "entgo.io/ent/dialect/sql"

	"github.com/abhisek/memoriz/internal/results"
)

// now is the clock used for row timestamps.
var now = func() time.Time { return time.Now().UTC() }

// resultRepo implements ResultRepo as JSON arrays in the kv_entries table.
type resultRepo struct {
	drv *entsql.Driver
}

func (r *resultRepo) AppendResult(ctx context.Context, res results.TestResult) error {
	tx, err := r.drv.Tx(ctx)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	list, err := loadCollection(ctx, tx, CollectionResults)
	if err != nil {
		tx.Rollback()
		return err
	}
	list = append(list, res)
	if err := saveCollection(ctx, tx, CollectionResults, list); err != nil {
		tx.Rollback()
		return err
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit append: %w", err)
	}
	return nil
}

func (r *resultRepo) Results(ctx context.Context) ([]results.TestResult, error) {
	return loadCollection(ctx, r.drv, CollectionResults)
}

func (r *resultRepo) ReplaceDataset(ctx context.Context, rs []results.TestResult) error {
	return saveCollection(ctx, r.drv, CollectionDataset, rs)
}

func (r *resultRepo) Dataset(ctx context.Context) ([]results.TestResult, error) {
	return loadCollection(ctx, r.drv, CollectionDataset)
}

func (r *resultRepo) Combined(ctx context.Context) ([]results.TestResult, error) {
	local, err := r.Results(ctx)
	if err != nil {
		return nil, err
	}
	uploaded, err := r.Dataset(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]results.TestResult, 0, len(local)+len(uploaded))
	out = append(out, local...)
	return append(out, uploaded...), nil
}

func (r *resultRepo) ClearCollection(ctx context.Context, key string) error {
	query, args := builder().Delete(kvTable).Where(entsql.EQ("key", key)).Query()
	if err := r.drv.Exec(ctx, query, args, nil); err != nil {
		return fmt.Errorf("clear %s: %w", key, err)
	}
	return nil
}

// loadCollection decodes the JSON array stored under key. A missing key is
// an empty collection.
func loadCollection(ctx context.Context, q dialect.ExecQuerier, key string) ([]results.TestResult, error) {
	query, args := builder().
		Select("value").
		From(entsql.Table(kvTable)).
		Where(entsql.EQ("key", key)).
		Query()

	var rows entsql.Rows
	if err := q.Query(ctx, query, args, &rows); err != nil {
		return nil, fmt.Errorf("query %s: %w", key, err)
	}
	defer rows.Close()

	if !rows.Next() {
		return nil, rows.Err()
	}
	var raw string
	if err := rows.Scan(&raw); err != nil {
		return nil, fmt.Errorf("scan %s: %w", key, err)
	}
	var list []results.TestResult
	if err := json.Unmarshal([]byte(raw), &list); err != nil {
		return nil, fmt.Errorf("decode %s: %w", key, err)
	}
	return list, nil
}

// saveCollection upserts the JSON encoding of list under key.
func saveCollection(ctx context.Context, ex dialect.ExecQuerier, key string, list []results.TestResult) error {
	if list == nil {
		list = []results.TestResult{}
	}
	b, err := json.Marshal(list)
	if err != nil {
		return fmt.Errorf("encode %s: %w", key, err)
	}
	query, args := builder().
		Insert(kvTable).
		Columns("key", "value", "updated_at").
		Values(key, string(b), now()).
		OnConflict(entsql.ConflictColumns("key"), entsql.ResolveWithNewValues()).
		Query()
	if err := ex.Exec(ctx, query, args, nil); err != nil {
		return fmt.Errorf("save %s: %w", key, err)
	}
	return nil
}
