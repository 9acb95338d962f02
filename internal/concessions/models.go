package concessions

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"
)

// JSONB wraps json.RawMessage with Scanner/Valuer for GORM JSONB columns.
// Empty values default to an empty object.
type JSONB json.RawMessage

func (j JSONB) Value() (driver.Value, error) {
	if len(j) == 0 {
		return "{}", nil
	}
	return string(j), nil
}

func (j *JSONB) Scan(value interface{}) error {
	if value == nil {
		*j = JSONB("{}")
		return nil
	}
	switch v := value.(type) {
	case []byte:
		*j = append((*j)[0:0], v...)
	case string:
		*j = JSONB(v)
	default:
		return fmt.Errorf("unsupported type: %T", value)
	}
	return nil
}

func (j JSONB) MarshalJSON() ([]byte, error) {
	if len(j) == 0 {
		return []byte("{}"), nil
	}
	return json.RawMessage(j).MarshalJSON()
}

func (j *JSONB) UnmarshalJSON(data []byte) error {
	if j == nil {
		return fmt.Errorf("JSONB: UnmarshalJSON on nil pointer")
	}
	*j = append((*j)[0:0], data...)
	return nil
}

// ContactInfo is the nested client shape; persisted flattened into three
// independent nullable columns.
type ContactInfo struct {
	Phone   *string `json:"phone"`
	Email   *string `json:"email"`
	Address *string `json:"address"`
}

// Concession is the persistence model. Geometry and centroid are PostGIS
// columns derived from the submitted ring on every write, never supplied
// directly.
type Concession struct {
	ID               string     `gorm:"primaryKey;size:64" json:"id"`
	Name             string     `gorm:"index" json:"name"`
	Owner            string     `json:"owner"`
	Size             float64    `json:"size"`
	PermitType       string     `json:"permit_type"`
	Status           string     `gorm:"index" json:"status"`
	PermitExpiryDate *time.Time `gorm:"type:date" json:"permit_expiry_date,omitempty"`
	District         string     `json:"district"`
	Region           string     `gorm:"index" json:"region"`

	ContactPhone   *string `json:"contact_phone,omitempty"`
	ContactEmail   *string `json:"contact_email,omitempty"`
	ContactAddress *string `json:"contact_address,omitempty"`

	// undertaking mirrors raw_attributes->>'undertaking' for queryability;
	// the full blob is retained alongside.
	Undertaking   *string `gorm:"index" json:"undertaking,omitempty"`
	RawAttributes JSONB   `gorm:"type:jsonb;default:'{}'" json:"raw_attributes"`

	Geometry string `gorm:"type:geometry(Polygon,4326)" json:"-"`
	Centroid string `gorm:"type:geometry(Point,4326)" json:"-"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (Concession) TableName() string {
	return "concessions"
}

// ConcessionInput is the full-record payload for create and update. Update is
// a total overwrite: omitted fields become nulls/empties, not "leave
// unchanged". permitExpiryDate travels as a YYYY-MM-DD string and is cast by
// the store.
type ConcessionInput struct {
	ID               string                 `json:"id"`
	Name             string                 `json:"name"`
	Owner            string                 `json:"owner"`
	Size             float64                `json:"size"`
	PermitType       string                 `json:"permitType"`
	Status           string                 `json:"status"`
	PermitExpiryDate *string                `json:"permitExpiryDate"`
	District         string                 `json:"district"`
	Region           string                 `json:"region"`
	ContactInfo      *ContactInfo           `json:"contactInfo"`
	RawAttributes    map[string]interface{} `json:"rawAttributes"`
	Coordinates      Ring                   `json:"coordinates"`
}

// ConcessionRecord is the read projection: all scalar columns plus the
// decoded geometry, the original ring, and the centroid in point-text form.
type ConcessionRecord struct {
	ID               string          `json:"id"`
	Name             string          `json:"name"`
	Owner            string          `json:"owner"`
	Size             float64         `json:"size"`
	PermitType       string          `json:"permitType"`
	Status           string          `json:"status"`
	PermitExpiryDate *time.Time      `json:"permitExpiryDate"`
	District         string          `json:"district"`
	Region           string          `json:"region"`
	ContactInfo      *ContactInfo    `json:"contactInfo"`
	Undertaking      *string         `json:"undertaking"`
	RawAttributes    JSONB           `json:"rawAttributes"`
	Coordinates      Ring            `json:"coordinates"`
	Geometry         *PolygonGeoJSON `json:"geometry"`
	Centroid         string          `json:"centroid"`
	CreatedAt        time.Time       `json:"createdAt"`
	UpdatedAt        time.Time       `json:"updatedAt"`
}

// ExtractUndertaking mirrors rawAttributes["undertaking"] into its own column
// value. Pure and idempotent; returns nil when the key is absent or not a
// non-empty string, even if other keys exist.
func ExtractUndertaking(attrs map[string]interface{}) *string {
	if attrs == nil {
		return nil
	}
	v, ok := attrs["undertaking"]
	if !ok {
		return nil
	}
	s, ok := v.(string)
	if !ok || s == "" {
		return nil
	}
	return &s
}
