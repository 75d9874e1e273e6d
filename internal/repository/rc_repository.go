package repository

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"rc-service/internal/domain/rc"
	"rc-service/internal/utils"
)

var ErrNotFound = errors.New("record not found")

type RCRepository struct {
	db *gorm.DB
}

func NewRCRepository(db *gorm.DB) *RCRepository {
	return &RCRepository{db: db}
}

type RCRecord struct {
	ID              uuid.UUID                            `gorm:"type:uuid;primaryKey"`
	ClientID        *string                              `gorm:"column:client_id"`
	RegNo           string                               `gorm:"not null"`
	NormalizedRegNo string                               `gorm:"not null;index"`
	ChassisNo       string                               `gorm:"not null"`
	OwnerName       string                               `gorm:"not null"`
	OCRConfidence   float64                              `gorm:"column:ocr_confidence;not null"`
	FieldsFound     int                                  `gorm:"not null"`
	Record          datatypes.JSONType[rc.ParsedRecord]  `gorm:"type:jsonb;not null"`
	Quality         datatypes.JSONType[rc.QualityReport] `gorm:"type:jsonb;not null"`
	ParseError      *string                              `gorm:"column:parse_error"`
	ManuallyEdited  bool                                 `gorm:"not null"`
	ExtractedAt     time.Time                            `gorm:"not null"`
	CreatedAt       time.Time                            `gorm:"not null"`
	UpdatedAt       time.Time                            `gorm:"not null"`
}

func (RCRecord) TableName() string {
	return "rc_records"
}

func toRow(rec *rc.StoredRecord) RCRecord {
	row := RCRecord{
		ID:              rec.ID,
		RegNo:           rec.Record.RegNo,
		NormalizedRegNo: utils.NormalizePlate(rec.Record.RegNo),
		ChassisNo:       rec.Record.ChassisNo,
		OwnerName:       rec.Record.OwnerName,
		OCRConfidence:   rec.Record.OCRConfidence,
		FieldsFound:     rec.Quality.FieldsFound,
		Record:          datatypes.NewJSONType(rec.Record),
		Quality:         datatypes.NewJSONType(rec.Quality),
		ManuallyEdited:  rec.ManuallyEdited,
		ExtractedAt:     rec.Record.ExtractedDate,
		CreatedAt:       rec.CreatedAt,
		UpdatedAt:       rec.UpdatedAt,
	}
	if rec.ClientID != "" {
		row.ClientID = &rec.ClientID
	}
	if rec.Record.ParseError != "" {
		row.ParseError = &rec.Record.ParseError
	}
	return row
}

func fromRow(row RCRecord) rc.StoredRecord {
	rec := rc.StoredRecord{
		ID:             row.ID,
		Record:         row.Record.Data(),
		Quality:        row.Quality.Data(),
		ManuallyEdited: row.ManuallyEdited,
		CreatedAt:      row.CreatedAt,
		UpdatedAt:      row.UpdatedAt,
	}
	if row.ClientID != nil {
		rec.ClientID = *row.ClientID
	}
	return rec
}

func (r *RCRepository) CreateRecord(ctx context.Context, rec *rc.StoredRecord) error {
	if rec.ID == uuid.Nil {
		rec.ID = uuid.New()
	}
	now := time.Now().UTC()
	rec.CreatedAt = now
	rec.UpdatedAt = now

	row := toRow(rec)
	return r.db.WithContext(ctx).Create(&row).Error
}

func (r *RCRepository) GetRecord(ctx context.Context, id uuid.UUID) (*rc.StoredRecord, error) {
	var row RCRecord
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&row).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}

	rec := fromRow(row)
	return &rec, nil
}

func (r *RCRepository) ListRecords(ctx context.Context, normalizedRegNo *string, limit, offset int) ([]rc.StoredRecord, error) {
	query := r.db.WithContext(ctx).Model(&RCRecord{})

	if normalizedRegNo != nil {
		query = query.Where("normalized_reg_no = ?", *normalizedRegNo)
	}

	query = query.Order("created_at DESC")

	if limit > 0 {
		query = query.Limit(limit)
	}
	if offset > 0 {
		query = query.Offset(offset)
	}

	var rows []RCRecord
	if err := query.Find(&rows).Error; err != nil {
		return nil, err
	}

	result := make([]rc.StoredRecord, 0, len(rows))
	for _, row := range rows {
		result = append(result, fromRow(row))
	}
	return result, nil
}

// UpdateRecord rewrites the searchable columns and payloads of an existing
// record. CreatedAt is left untouched.
func (r *RCRepository) UpdateRecord(ctx context.Context, rec *rc.StoredRecord) error {
	rec.UpdatedAt = time.Now().UTC()
	row := toRow(rec)

	res := updateQuery(r.db.WithContext(ctx), &row)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// updatedColumns are rewritten by UpdateRecord. A NULL parse_error clears a
// failure once the record has been corrected by hand.
var updatedColumns = []string{
	"reg_no", "normalized_reg_no", "chassis_no", "owner_name", "fields_found",
	"record", "quality", "parse_error", "manually_edited", "updated_at",
}

func updateQuery(tx *gorm.DB, row *RCRecord) *gorm.DB {
	return tx.Model(&RCRecord{}).
		Where("id = ?", row.ID).
		Select(updatedColumns).
		Updates(row)
}

func (r *RCRepository) DeleteRecord(ctx context.Context, id uuid.UUID) error {
	res := r.db.WithContext(ctx).Where("id = ?", id).Delete(&RCRecord{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// DeleteRecordsOlderThan removes records created before cutoff and returns how
// many were removed.
func (r *RCRepository) DeleteRecordsOlderThan(ctx context.Context, cutoff time.Time) (int64, error) {
	res := r.db.WithContext(ctx).Where("created_at < ?", cutoff).Delete(&RCRecord{})
	return res.RowsAffected, res.Error
}
