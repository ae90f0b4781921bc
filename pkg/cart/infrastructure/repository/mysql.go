package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/pkg/errors"

	"storefront/pkg/cart/domain/model"
)

type snapshotRow struct {
	Name      string    `db:"name"`
	Payload   []byte    `db:"payload"`
	ItemCount int       `db:"item_count"`
	UpdatedAt time.Time `db:"updated_at"`
}

type MySQLRepository struct {
	db *sqlx.DB
}

func NewMySQLRepository(db *sqlx.DB) *MySQLRepository {
	return &MySQLRepository{db: db}
}

func (r *MySQLRepository) Load(ctx context.Context, name string) (model.Snapshot, error) {
	var row snapshotRow
	err := r.db.GetContext(ctx, &row,
		`SELECT name, payload, item_count FROM cart_snapshot WHERE name = ?`, name)
	if errors.Is(err, sql.ErrNoRows) {
		return model.Snapshot{}, model.ErrSnapshotNotFound
	}
	if err != nil {
		return model.Snapshot{}, errors.Wrapf(err, "select snapshot %q", name)
	}

	var snapshot model.Snapshot
	if err := json.Unmarshal(row.Payload, &snapshot); err != nil {
		return model.Snapshot{}, errors.Wrapf(err, "decode snapshot %q", name)
	}
	return snapshot, nil
}

func (r *MySQLRepository) Save(ctx context.Context, name string, snapshot model.Snapshot) error {
	if snapshot.Items == nil {
		snapshot.Items = []model.LineItem{}
	}
	payload, err := json.Marshal(snapshot)
	if err != nil {
		return errors.Wrap(err, "encode snapshot")
	}

	_, err = r.db.NamedExecContext(ctx, `
		INSERT INTO cart_snapshot (name, payload, item_count, updated_at)
		VALUES (:name, :payload, :item_count, :updated_at)
		ON DUPLICATE KEY UPDATE
			payload = VALUES(payload),
			item_count = VALUES(item_count),
			updated_at = VALUES(updated_at)`,
		snapshotRow{
			Name:      name,
			Payload:   payload,
			ItemCount: snapshot.ItemCount,
			UpdatedAt: time.Now().UTC(),
		})
	return errors.Wrapf(err, "upsert snapshot %q", name)
}
