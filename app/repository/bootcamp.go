package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"time"

	"github.com/huynhdieutuong/DevCamper-API/app/entity"
)

type BootcampRepository struct {
	db DBTX
}

func NewBootcampRepository(db DBTX) *BootcampRepository {
	return &BootcampRepository{db: db}
}

const bootcampColumns = `id, name, description, website, phone, email, address, careers,
		       housing, average_cost, user_id, created_at, updated_at`

func marshalCareers(careers []string) ([]byte, error) {
	if careers == nil {
		careers = []string{}
	}
	return json.Marshal(careers)
}

func (r *BootcampRepository) Create(ctx context.Context, bootcamp *entity.Bootcamp) error {
	careers, err := marshalCareers(bootcamp.Careers)
	if err != nil {
		return err
	}

	query := `
		INSERT INTO bootcamps (name, description, website, phone, email, address, careers, housing, average_cost, user_id, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`
	result, err := r.db.ExecContext(ctx, query,
		bootcamp.Name,
		bootcamp.Description,
		bootcamp.Website,
		bootcamp.Phone,
		bootcamp.Email,
		bootcamp.Address,
		careers,
		bootcamp.Housing,
		bootcamp.AverageCost,
		bootcamp.UserID,
		bootcamp.CreatedAt,
		bootcamp.UpdatedAt,
	)
	if err != nil {
		return translateError(err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return err
	}
	bootcamp.ID = uint64(id)
	return nil
}

func scanBootcamp(scan func(dest ...any) error) (*entity.Bootcamp, error) {
	bootcamp := &entity.Bootcamp{}
	var careers []byte
	err := scan(
		&bootcamp.ID,
		&bootcamp.Name,
		&bootcamp.Description,
		&bootcamp.Website,
		&bootcamp.Phone,
		&bootcamp.Email,
		&bootcamp.Address,
		&careers,
		&bootcamp.Housing,
		&bootcamp.AverageCost,
		&bootcamp.UserID,
		&bootcamp.CreatedAt,
		&bootcamp.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	if len(careers) > 0 {
		if err := json.Unmarshal(careers, &bootcamp.Careers); err != nil {
			return nil, err
		}
	}
	return bootcamp, nil
}

func (r *BootcampRepository) FindByID(ctx context.Context, id uint64) (*entity.Bootcamp, error) {
	query := `
		SELECT ` + bootcampColumns + `
		FROM bootcamps WHERE id = ?
	`
	bootcamp, err := scanBootcamp(r.db.QueryRowContext(ctx, query, id).Scan)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return bootcamp, nil
}

func (r *BootcampRepository) List(ctx context.Context, limit, offset int) ([]*entity.Bootcamp, error) {
	query := `
		SELECT ` + bootcampColumns + `
		FROM bootcamps ORDER BY id LIMIT ? OFFSET ?
	`
	rows, err := r.db.QueryContext(ctx, query, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var bootcamps []*entity.Bootcamp
	for rows.Next() {
		bootcamp, err := scanBootcamp(rows.Scan)
		if err != nil {
			return nil, err
		}
		bootcamps = append(bootcamps, bootcamp)
	}
	return bootcamps, rows.Err()
}

func (r *BootcampRepository) Count(ctx context.Context) (int, error) {
	var count int
	err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM bootcamps`).Scan(&count)
	return count, err
}

func (r *BootcampRepository) Update(ctx context.Context, bootcamp *entity.Bootcamp) error {
	careers, err := marshalCareers(bootcamp.Careers)
	if err != nil {
		return err
	}

	query := `
		UPDATE bootcamps SET
			name = ?,
			description = ?,
			website = ?,
			phone = ?,
			email = ?,
			address = ?,
			careers = ?,
			housing = ?,
			average_cost = ?,
			updated_at = ?
		WHERE id = ?
	`
	bootcamp.UpdatedAt = time.Now()
	_, err = r.db.ExecContext(ctx, query,
		bootcamp.Name,
		bootcamp.Description,
		bootcamp.Website,
		bootcamp.Phone,
		bootcamp.Email,
		bootcamp.Address,
		careers,
		bootcamp.Housing,
		bootcamp.AverageCost,
		bootcamp.UpdatedAt,
		bootcamp.ID,
	)
	return translateError(err)
}

func (r *BootcampRepository) Delete(ctx context.Context, id uint64) (int64, error) {
	result, err := r.db.ExecContext(ctx, `DELETE FROM bootcamps WHERE id = ?`, id)
	if err != nil {
		return 0, err
	}
	return result.RowsAffected()
}
