package hostel

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

type Repository interface {
	Create(ctx context.Context, h *Hostel) error
	GetByID(ctx context.Context, id string) (*Hostel, error)
	// GetByRoomID resolves the owning hostel of a room through the
	// room -> floor -> hostel foreign key chain.
	GetByRoomID(ctx context.Context, roomID string) (*Hostel, error)
	List(ctx context.Context, filter Filter) ([]*Hostel, int, error)
	Update(ctx context.Context, h *Hostel) error
	SetCancellationPolicy(ctx context.Context, id string, policy CancellationPolicy) error
	Delete(ctx context.Context, id string) error

	CreateFloor(ctx context.Context, f *Floor) error
	GetFloorByID(ctx context.Context, id string) (*Floor, error)
	ListFloors(ctx context.Context, hostelID string) ([]*Floor, error)
	DeleteFloor(ctx context.Context, id string) error

	AddImage(ctx context.Context, img *Image) error
	GetImageByID(ctx context.Context, id string) (*Image, error)
	ListImages(ctx context.Context, hostelID string) ([]*Image, error)
	DeleteImage(ctx context.Context, id string) error
}

type pgxRepository struct {
	pool *pgxpool.Pool
}

func NewPgxRepository(pool *pgxpool.Pool) Repository {
	return &pgxRepository{pool: pool}
}

var hostelColumns = []string{
	"h.id", "h.owner_id", "h.name", "h.address", "h.description",
	"h.contact_number", "h.email", "h.city", "h.state", "h.zip_code",
	"h.google_maps_link", "h.established_year",
	"h.wifi", "h.parking", "h.laundry", "h.security_guard", "h.mess_service",
	"h.attached_bathroom", "h.air_conditioning", "h.heater", "h.balcony",
	"h.rent_min", "h.rent_max", "h.security_deposit",
	"h.smoking_allowed", "h.alcohol_allowed", "h.pets_allowed", "h.visiting_hours",
	"h.nearby_colleges", "h.nearby_markets", "h.cancellation_policy",
	"h.created_at", "h.updated_at",
}

func scanHostel(row pgx.Row) (*Hostel, error) {
	var h Hostel
	var policyRaw []byte
	if err := row.Scan(
		&h.ID, &h.OwnerID, &h.Name, &h.Address, &h.Description,
		&h.ContactNumber, &h.Email, &h.City, &h.State, &h.ZipCode,
		&h.GoogleMapsLink, &h.EstablishedYear,
		&h.Wifi, &h.Parking, &h.Laundry, &h.SecurityGuard, &h.MessService,
		&h.AttachedBathroom, &h.AirConditioning, &h.Heater, &h.Balcony,
		&h.RentMin, &h.RentMax, &h.SecurityDeposit,
		&h.SmokingAllowed, &h.AlcoholAllowed, &h.PetsAllowed, &h.VisitingHours,
		&h.NearbyColleges, &h.NearbyMarkets, &policyRaw,
		&h.CreatedAt, &h.UpdatedAt,
	); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("scan hostel failed: %w", err)
	}

	if len(policyRaw) > 0 {
		if err := json.Unmarshal(policyRaw, &h.CancellationPolicy); err != nil {
			return nil, fmt.Errorf("decode cancellation policy failed: %w", err)
		}
	}
	return &h, nil
}

func (r *pgxRepository) Create(ctx context.Context, h *Hostel) error {
	policyRaw, err := json.Marshal(h.CancellationPolicy)
	if err != nil {
		return fmt.Errorf("encode cancellation policy failed: %w", err)
	}

	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query, args, err := psql.Insert("public.hostels").
		Columns(
			"owner_id", "name", "address", "description",
			"contact_number", "email", "city", "state", "zip_code",
			"google_maps_link", "established_year",
			"wifi", "parking", "laundry", "security_guard", "mess_service",
			"attached_bathroom", "air_conditioning", "heater", "balcony",
			"rent_min", "rent_max", "security_deposit",
			"smoking_allowed", "alcohol_allowed", "pets_allowed", "visiting_hours",
			"nearby_colleges", "nearby_markets", "cancellation_policy",
		).
		Values(
			h.OwnerID, h.Name, h.Address, h.Description,
			h.ContactNumber, h.Email, h.City, h.State, h.ZipCode,
			h.GoogleMapsLink, h.EstablishedYear,
			h.Wifi, h.Parking, h.Laundry, h.SecurityGuard, h.MessService,
			h.AttachedBathroom, h.AirConditioning, h.Heater, h.Balcony,
			h.RentMin, h.RentMax, h.SecurityDeposit,
			h.SmokingAllowed, h.AlcoholAllowed, h.PetsAllowed, h.VisitingHours,
			h.NearbyColleges, h.NearbyMarkets, policyRaw,
		).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()
	if err != nil {
		return fmt.Errorf("build create hostel query failed: %w", err)
	}

	return r.pool.QueryRow(ctx, query, args...).
		Scan(&h.ID, &h.CreatedAt, &h.UpdatedAt)
}

func (r *pgxRepository) GetByID(ctx context.Context, id string) (*Hostel, error) {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query, args, err := psql.Select(hostelColumns...).
		From("public.hostels h").
		Where(squirrel.Eq{"h.id": id}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build get hostel query failed: %w", err)
	}

	return scanHostel(r.pool.QueryRow(ctx, query, args...))
}

func (r *pgxRepository) GetByRoomID(ctx context.Context, roomID string) (*Hostel, error) {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query, args, err := psql.Select(hostelColumns...).
		From("public.hostels h").
		Join("public.floors f ON f.hostel_id = h.id").
		Join("public.rooms r ON r.floor_id = f.id").
		Where(squirrel.Eq{"r.id": roomID}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build get hostel by room query failed: %w", err)
	}

	return scanHostel(r.pool.QueryRow(ctx, query, args...))
}

func (r *pgxRepository) List(ctx context.Context, filter Filter) ([]*Hostel, int, error) {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	cols := append(append([]string{}, hostelColumns...), "count(*) OVER() as total_count")
	query := psql.Select(cols...).From("public.hostels h")

	if filter.OwnerID != "" {
		query = query.Where(squirrel.Eq{"h.owner_id": filter.OwnerID})
	}
	if filter.City != "" {
		query = query.Where(squirrel.ILike{"h.city": filter.City})
	}
	if filter.Keyword != "" {
		kw := "%" + filter.Keyword + "%"
		query = query.Where(squirrel.Or{
			squirrel.ILike{"h.name": kw},
			squirrel.ILike{"h.address": kw},
			squirrel.ILike{"h.description": kw},
		})
	}

	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.PageSize < 1 {
		filter.PageSize = 20
	}
	offset := (filter.Page - 1) * filter.PageSize

	query = query.OrderBy("h.created_at DESC").
		Limit(uint64(filter.PageSize)).
		Offset(uint64(offset))

	sql, args, err := query.ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("build list hostels query failed: %w", err)
	}

	rows, err := r.pool.Query(ctx, sql, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("list hostels failed: %w", err)
	}
	defer rows.Close()

	var hostels []*Hostel
	var total int

	for rows.Next() {
		var h Hostel
		var policyRaw []byte
		if err := rows.Scan(
			&h.ID, &h.OwnerID, &h.Name, &h.Address, &h.Description,
			&h.ContactNumber, &h.Email, &h.City, &h.State, &h.ZipCode,
			&h.GoogleMapsLink, &h.EstablishedYear,
			&h.Wifi, &h.Parking, &h.Laundry, &h.SecurityGuard, &h.MessService,
			&h.AttachedBathroom, &h.AirConditioning, &h.Heater, &h.Balcony,
			&h.RentMin, &h.RentMax, &h.SecurityDeposit,
			&h.SmokingAllowed, &h.AlcoholAllowed, &h.PetsAllowed, &h.VisitingHours,
			&h.NearbyColleges, &h.NearbyMarkets, &policyRaw,
			&h.CreatedAt, &h.UpdatedAt, &total,
		); err != nil {
			return nil, 0, fmt.Errorf("scan hostel failed: %w", err)
		}
		if len(policyRaw) > 0 {
			if err := json.Unmarshal(policyRaw, &h.CancellationPolicy); err != nil {
				return nil, 0, fmt.Errorf("decode cancellation policy failed: %w", err)
			}
		}
		hostels = append(hostels, &h)
	}

	return hostels, total, nil
}

func (r *pgxRepository) Update(ctx context.Context, h *Hostel) error {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query, args, err := psql.Update("public.hostels").
		Set("name", h.Name).
		Set("address", h.Address).
		Set("description", h.Description).
		Set("contact_number", h.ContactNumber).
		Set("email", h.Email).
		Set("city", h.City).
		Set("state", h.State).
		Set("zip_code", h.ZipCode).
		Set("google_maps_link", h.GoogleMapsLink).
		Set("established_year", h.EstablishedYear).
		Set("wifi", h.Wifi).
		Set("parking", h.Parking).
		Set("laundry", h.Laundry).
		Set("security_guard", h.SecurityGuard).
		Set("mess_service", h.MessService).
		Set("attached_bathroom", h.AttachedBathroom).
		Set("air_conditioning", h.AirConditioning).
		Set("heater", h.Heater).
		Set("balcony", h.Balcony).
		Set("rent_min", h.RentMin).
		Set("rent_max", h.RentMax).
		Set("security_deposit", h.SecurityDeposit).
		Set("smoking_allowed", h.SmokingAllowed).
		Set("alcohol_allowed", h.AlcoholAllowed).
		Set("pets_allowed", h.PetsAllowed).
		Set("visiting_hours", h.VisitingHours).
		Set("nearby_colleges", h.NearbyColleges).
		Set("nearby_markets", h.NearbyMarkets).
		Set("updated_at", squirrel.Expr("now()")).
		Where(squirrel.Eq{"id": h.ID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("build update hostel query failed: %w", err)
	}

	ct, err := r.pool.Exec(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("update hostel failed: %w", err)
	}
	if ct.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *pgxRepository) SetCancellationPolicy(ctx context.Context, id string, policy CancellationPolicy) error {
	policyRaw, err := json.Marshal(policy)
	if err != nil {
		return fmt.Errorf("encode cancellation policy failed: %w", err)
	}

	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query, args, err := psql.Update("public.hostels").
		Set("cancellation_policy", policyRaw).
		Set("updated_at", squirrel.Expr("now()")).
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("build set cancellation policy query failed: %w", err)
	}

	ct, err := r.pool.Exec(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("set cancellation policy failed: %w", err)
	}
	if ct.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *pgxRepository) Delete(ctx context.Context, id string) error {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query, args, err := psql.Delete("public.hostels").
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("build delete hostel query failed: %w", err)
	}

	ct, err := r.pool.Exec(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("delete hostel failed: %w", err)
	}
	if ct.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *pgxRepository) CreateFloor(ctx context.Context, f *Floor) error {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query, args, err := psql.Insert("public.floors").
		Columns("hostel_id", "floor_number", "description").
		Values(f.HostelID, f.FloorNumber, f.Description).
		Suffix("RETURNING id").
		ToSql()
	if err != nil {
		return fmt.Errorf("build create floor query failed: %w", err)
	}

	if err := r.pool.QueryRow(ctx, query, args...).Scan(&f.ID); err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgerrcode.UniqueViolation {
			return ErrDuplicateFloor
		}
		return fmt.Errorf("create floor failed: %w", err)
	}
	return nil
}

func (r *pgxRepository) GetFloorByID(ctx context.Context, id string) (*Floor, error) {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query, args, err := psql.Select("id", "hostel_id", "floor_number", "description").
		From("public.floors").
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build get floor query failed: %w", err)
	}

	var f Floor
	if err := r.pool.QueryRow(ctx, query, args...).
		Scan(&f.ID, &f.HostelID, &f.FloorNumber, &f.Description); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrFloorNotFound
		}
		return nil, fmt.Errorf("get floor failed: %w", err)
	}
	return &f, nil
}

func (r *pgxRepository) ListFloors(ctx context.Context, hostelID string) ([]*Floor, error) {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query, args, err := psql.Select("id", "hostel_id", "floor_number", "description").
		From("public.floors").
		Where(squirrel.Eq{"hostel_id": hostelID}).
		OrderBy("floor_number ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build list floors query failed: %w", err)
	}

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list floors failed: %w", err)
	}
	defer rows.Close()

	var floors []*Floor
	for rows.Next() {
		var f Floor
		if err := rows.Scan(&f.ID, &f.HostelID, &f.FloorNumber, &f.Description); err != nil {
			return nil, fmt.Errorf("scan floor failed: %w", err)
		}
		floors = append(floors, &f)
	}
	return floors, nil
}

func (r *pgxRepository) DeleteFloor(ctx context.Context, id string) error {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query, args, err := psql.Delete("public.floors").
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("build delete floor query failed: %w", err)
	}

	ct, err := r.pool.Exec(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("delete floor failed: %w", err)
	}
	if ct.RowsAffected() == 0 {
		return ErrFloorNotFound
	}
	return nil
}

func (r *pgxRepository) AddImage(ctx context.Context, img *Image) error {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query, args, err := psql.Insert("public.hostel_images").
		Columns("hostel_id", "path", "thumb_path", "position").
		Values(img.HostelID, img.Path, img.ThumbPath, img.Position).
		Suffix("RETURNING id, created_at").
		ToSql()
	if err != nil {
		return fmt.Errorf("build add hostel image query failed: %w", err)
	}

	return r.pool.QueryRow(ctx, query, args...).Scan(&img.ID, &img.CreatedAt)
}

func (r *pgxRepository) GetImageByID(ctx context.Context, id string) (*Image, error) {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query, args, err := psql.Select("id", "hostel_id", "path", "thumb_path", "position", "created_at").
		From("public.hostel_images").
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build get hostel image query failed: %w", err)
	}

	var img Image
	if err := r.pool.QueryRow(ctx, query, args...).
		Scan(&img.ID, &img.HostelID, &img.Path, &img.ThumbPath, &img.Position, &img.CreatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrImageNotFound
		}
		return nil, fmt.Errorf("get hostel image failed: %w", err)
	}
	return &img, nil
}

func (r *pgxRepository) ListImages(ctx context.Context, hostelID string) ([]*Image, error) {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query, args, err := psql.Select("id", "hostel_id", "path", "thumb_path", "position", "created_at").
		From("public.hostel_images").
		Where(squirrel.Eq{"hostel_id": hostelID}).
		OrderBy("position ASC", "created_at ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build list hostel images query failed: %w", err)
	}

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list hostel images failed: %w", err)
	}
	defer rows.Close()

	var images []*Image
	for rows.Next() {
		var img Image
		if err := rows.Scan(&img.ID, &img.HostelID, &img.Path, &img.ThumbPath, &img.Position, &img.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan hostel image failed: %w", err)
		}
		images = append(images, &img)
	}
	return images, nil
}

func (r *pgxRepository) DeleteImage(ctx context.Context, id string) error {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query, args, err := psql.Delete("public.hostel_images").
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("build delete hostel image query failed: %w", err)
	}

	ct, err := r.pool.Exec(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("delete hostel image failed: %w", err)
	}
	if ct.RowsAffected() == 0 {
		return ErrImageNotFound
	}
	return nil
}
