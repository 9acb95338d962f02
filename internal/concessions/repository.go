package concessions

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"gorm.io/gorm"
)

// selectColumns is the shared read projection. Geometry and centroid are
// decoded by the store into GeoJSON and point text so callers needing either
// form are served without a second query.
const selectColumns = "id, name, owner, size, permit_type, status, permit_expiry_date, " +
	"district, region, contact_phone, contact_email, contact_address, " +
	"undertaking, raw_attributes, " +
	"ST_AsGeoJSON(geometry) AS geometry, ST_AsText(centroid) AS centroid, " +
	"created_at, updated_at"

// Repository performs all concession persistence against an injected pooled
// handle. Every operation is a single blocking statement round trip; writes
// derive geometry and centroid in the same statement, so no half-written
// spatial state is ever observable.
type Repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// ListAll returns every concession ordered by name ascending.
func (r *Repository) ListAll(ctx context.Context) ([]ConcessionRecord, error) {
	return r.query(ctx, "", nil)
}

// Search returns concessions matching the composed filter, in the same
// projection and order as ListAll. Zero criteria match everything.
func (r *Repository) Search(ctx context.Context, c SearchCriteria) ([]ConcessionRecord, error) {
	where, args := BuildFilter(c)
	return r.query(ctx, where, args)
}

// Count returns the total number of concessions.
func (r *Repository) Count(ctx context.Context) (int64, error) {
	var n int64
	if err := r.db.WithContext(ctx).Raw(`SELECT COUNT(*) FROM concessions`).Scan(&n).Error; err != nil {
		return 0, classify("count concessions", err)
	}
	return n, nil
}

// FindByPoint returns all concessions whose boundary contains the given
// coordinate, via a PostGIS point-in-polygon query.
func (r *Repository) FindByPoint(ctx context.Context, lat, lng float64) ([]ConcessionRecord, error) {
	where := "WHERE ST_Contains(geometry, ST_SetSRID(ST_MakePoint($1, $2), 4326))"
	return r.query(ctx, where, []interface{}{lng, lat})
}

func (r *Repository) query(ctx context.Context, where string, args []interface{}) ([]ConcessionRecord, error) {
	stmt := "SELECT " + selectColumns + " FROM concessions"
	if where != "" {
		stmt += " " + where
	}
	stmt += " ORDER BY name ASC"

	rows, err := r.db.WithContext(ctx).Raw(stmt, args...).Rows()
	if err != nil {
		return nil, classify("query concessions", err)
	}
	defer rows.Close()

	records := []ConcessionRecord{}
	for rows.Next() {
		rec, err := scanRecord(rows)
		if err != nil {
			return nil, err
		}
		records = append(records, *rec)
	}
	if err := rows.Err(); err != nil {
		return nil, classify("read concessions", err)
	}
	return records, nil
}

func scanRecord(rows *sql.Rows) (*ConcessionRecord, error) {
	var (
		rec      ConcessionRecord
		contact  ContactInfo
		attrs    JSONB
		geomRaw  sql.NullString
		centroid sql.NullString
	)
	if err := rows.Scan(
		&rec.ID, &rec.Name, &rec.Owner, &rec.Size, &rec.PermitType, &rec.Status,
		&rec.PermitExpiryDate, &rec.District, &rec.Region,
		&contact.Phone, &contact.Email, &contact.Address,
		&rec.Undertaking, &attrs,
		&geomRaw, &centroid,
		&rec.CreatedAt, &rec.UpdatedAt,
	); err != nil {
		return nil, fmt.Errorf("scan concession: %w", err)
	}

	rec.RawAttributes = attrs
	if contact.Phone != nil || contact.Email != nil || contact.Address != nil {
		rec.ContactInfo = &contact
	}
	if geomRaw.Valid {
		g, ring, err := DecodeGeometry(geomRaw.String)
		if err != nil {
			return nil, err
		}
		rec.Geometry = g
		rec.Coordinates = ring
	}
	if centroid.Valid {
		rec.Centroid = centroid.String
	}
	return &rec, nil
}

// Create persists a new concession under the caller-supplied id. The
// boundary and its centroid are derived from the submitted ring inside one
// INSERT. Fails with ErrDuplicateID when the id exists and InvalidGeometry
// when the ring is rejected locally or by the store.
func (r *Repository) Create(ctx context.Context, in ConcessionInput) (string, error) {
	geom, err := EncodeRing(in.Coordinates)
	if err != nil {
		return "", err
	}
	attrs, err := marshalAttributes(in.RawAttributes)
	if err != nil {
		return "", err
	}
	phone, email, address := flattenContact(in.ContactInfo)

	stmt := `
		INSERT INTO concessions (
			id, name, owner, size, permit_type, status, permit_expiry_date,
			district, region, contact_phone, contact_email, contact_address,
			undertaking, raw_attributes, geometry, centroid, created_at, updated_at
		) VALUES (
			$1, $2, $3, $4, $5, $6, $7::date,
			$8, $9, $10, $11, $12,
			$13, $14::jsonb,
			ST_SetSRID(ST_GeomFromGeoJSON($15), 4326),
			ST_Centroid(ST_SetSRID(ST_GeomFromGeoJSON($15), 4326)),
			NOW(), NOW()
		)`
	res := r.db.WithContext(ctx).Exec(stmt,
		in.ID, in.Name, in.Owner, in.Size, in.PermitType, in.Status, in.PermitExpiryDate,
		in.District, in.Region, phone, email, address,
		ExtractUndertaking(in.RawAttributes), attrs, geom,
	)
	if res.Error != nil {
		return "", classify("create concession", res.Error)
	}
	return in.ID, nil
}

// Update replaces every scalar field and re-derives geometry and centroid
// from the supplied ring; updated_at is refreshed. This is a total
// overwrite, not a patch. Fails with ErrNotFound when no record matches.
func (r *Repository) Update(ctx context.Context, id string, in ConcessionInput) error {
	geom, err := EncodeRing(in.Coordinates)
	if err != nil {
		return err
	}
	attrs, err := marshalAttributes(in.RawAttributes)
	if err != nil {
		return err
	}
	phone, email, address := flattenContact(in.ContactInfo)

	stmt := `
		UPDATE concessions SET
			name = $1, owner = $2, size = $3, permit_type = $4, status = $5,
			permit_expiry_date = $6::date, district = $7, region = $8,
			contact_phone = $9, contact_email = $10, contact_address = $11,
			undertaking = $12, raw_attributes = $13::jsonb,
			geometry = ST_SetSRID(ST_GeomFromGeoJSON($14), 4326),
			centroid = ST_Centroid(ST_SetSRID(ST_GeomFromGeoJSON($14), 4326)),
			updated_at = NOW()
		WHERE id = $15`
	res := r.db.WithContext(ctx).Exec(stmt,
		in.Name, in.Owner, in.Size, in.PermitType, in.Status,
		in.PermitExpiryDate, in.District, in.Region,
		phone, email, address,
		ExtractUndertaking(in.RawAttributes), attrs, geom, id,
	)
	if res.Error != nil {
		return classify("update concession", res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// Delete removes the record; fails with ErrNotFound when nothing matched.
func (r *Repository) Delete(ctx context.Context, id string) error {
	res := r.db.WithContext(ctx).Exec(`DELETE FROM concessions WHERE id = $1`, id)
	if res.Error != nil {
		return classify("delete concession", res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func marshalAttributes(attrs map[string]interface{}) (JSONB, error) {
	if attrs == nil {
		return JSONB("{}"), nil
	}
	buf, err := json.Marshal(attrs)
	if err != nil {
		return nil, fmt.Errorf("marshal raw attributes: %w", err)
	}
	return JSONB(buf), nil
}

func flattenContact(c *ContactInfo) (phone, email, address *string) {
	if c == nil {
		return nil, nil, nil
	}
	return c.Phone, c.Email, c.Address
}
