package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"rc-service/internal/domain/rc"
	"rc-service/internal/metrics"
	"rc-service/internal/parser"
	"rc-service/internal/repository"
	"rc-service/internal/utils"
)

var (
	ErrInvalidInput = errors.New("invalid input")
	ErrNotFound     = errors.New("not found")
)

const (
	MaxTextBytes    = 64 << 10
	maxFieldLength  = 256
	defaultPageSize = 50
	maxPageSize     = 100
)

// RecordStore persists parsed records. It returns repository.ErrNotFound for
// unknown ids.
type RecordStore interface {
	CreateRecord(ctx context.Context, rec *rc.StoredRecord) error
	GetRecord(ctx context.Context, id uuid.UUID) (*rc.StoredRecord, error)
	ListRecords(ctx context.Context, normalizedRegNo *string, limit, offset int) ([]rc.StoredRecord, error)
	UpdateRecord(ctx context.Context, rec *rc.StoredRecord) error
	DeleteRecord(ctx context.Context, id uuid.UUID) error
	DeleteRecordsOlderThan(ctx context.Context, cutoff time.Time) (int64, error)
}

type RCService struct {
	store  RecordStore
	parser *parser.Parser
	log    zerolog.Logger
	now    func() time.Time
}

func NewRCService(store RecordStore, p *parser.Parser, log zerolog.Logger) *RCService {
	return &RCService{
		store:  store,
		parser: p,
		log:    log,
		now:    time.Now,
	}
}

// Parse extracts a record from req without storing it.
func (s *RCService) Parse(ctx context.Context, req rc.ParseRequest) (*rc.ParseResult, error) {
	if err := validateParseRequest(req); err != nil {
		return nil, err
	}

	start := time.Now()
	rec := s.parser.Parse(req.Text, *req.Confidence)
	metrics.RecordParse(rec, time.Since(start).Seconds())

	quality := parser.Assess(rec, *req.Confidence)

	if rec.ParseError != "" {
		s.log.Warn().
			Str("client_id", req.ClientID).
			Str("parse_error", rec.ParseError).
			Msg("RC text could not be parsed")
	} else {
		s.log.Debug().
			Str("client_id", req.ClientID).
			Str("reg_no", rec.RegNo).
			Int("fields_found", quality.FieldsFound).
			Str("confidence_tier", quality.ConfidenceTier).
			Msg("parsed RC text")
	}

	return &rc.ParseResult{Record: rec, Quality: quality}, nil
}

// Save parses req and stores the result.
func (s *RCService) Save(ctx context.Context, req rc.ParseRequest) (*rc.StoredRecord, error) {
	result, err := s.Parse(ctx, req)
	if err != nil {
		return nil, err
	}

	stored := &rc.StoredRecord{
		ClientID: strings.TrimSpace(req.ClientID),
		Record:   result.Record,
		Quality:  result.Quality,
	}
	if err := s.store.CreateRecord(ctx, stored); err != nil {
		s.log.Error().
			Err(err).
			Str("reg_no", result.Record.RegNo).
			Msg("failed to create RC record")
		return nil, fmt.Errorf("failed to create RC record: %w", err)
	}

	s.log.Info().
		Str("record_id", stored.ID.String()).
		Str("reg_no", stored.Record.RegNo).
		Int("fields_found", stored.Quality.FieldsFound).
		Float64("confidence", stored.Record.OCRConfidence).
		Msg("saved RC record to database")

	return stored, nil
}

func (s *RCService) Get(ctx context.Context, id string) (*rc.StoredRecord, error) {
	recordID, err := parseID(id)
	if err != nil {
		return nil, err
	}

	rec, err := s.store.GetRecord(ctx, recordID)
	if err != nil {
		return nil, storeError(err, recordID, "failed to get RC record")
	}
	return rec, nil
}

// List returns stored records, newest first. A non-empty regNo restricts the
// result to records whose registration number normalises to the same plate.
func (s *RCService) List(ctx context.Context, regNo *string, limit, offset int) ([]rc.StoredRecord, error) {
	var normalized *string
	if regNo != nil {
		if n := utils.NormalizePlate(*regNo); n != "" {
			normalized = &n
		}
	}

	if limit <= 0 {
		limit = defaultPageSize
	}
	if limit > maxPageSize {
		limit = maxPageSize
	}
	if offset < 0 {
		offset = 0
	}

	records, err := s.store.ListRecords(ctx, normalized, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to list RC records: %w", err)
	}
	return records, nil
}

// Update applies manually corrected field values and recomputes the quality
// report. An empty value clears the field.
func (s *RCService) Update(ctx context.Context, id string, req rc.UpdateRequest) (*rc.StoredRecord, error) {
	recordID, err := parseID(id)
	if err != nil {
		return nil, err
	}
	if len(req.Fields) == 0 {
		return nil, fmt.Errorf("%w: fields are required", ErrInvalidInput)
	}

	changes := make(map[rc.Field]string, len(req.Fields))
	for name, value := range req.Fields {
		f, ok := rc.ParseField(name)
		if !ok {
			return nil, fmt.Errorf("%w: unknown field %q", ErrInvalidInput, name)
		}
		value = strings.TrimSpace(value)
		if len(value) > maxFieldLength {
			return nil, fmt.Errorf("%w: field %q is longer than %d bytes", ErrInvalidInput, name, maxFieldLength)
		}
		changes[f] = value
	}

	stored, err := s.store.GetRecord(ctx, recordID)
	if err != nil {
		return nil, storeError(err, recordID, "failed to get RC record")
	}

	for f, value := range changes {
		stored.Record.Set(f, value)
	}
	stored.Record.ParseError = ""
	stored.ManuallyEdited = true
	stored.Quality = parser.Assess(stored.Record, stored.Record.OCRConfidence)

	if err := s.store.UpdateRecord(ctx, stored); err != nil {
		return nil, storeError(err, recordID, "failed to update RC record")
	}

	s.log.Info().
		Str("record_id", recordID.String()).
		Int("changed_fields", len(changes)).
		Int("fields_found", stored.Quality.FieldsFound).
		Msg("updated RC record")

	return stored, nil
}

func (s *RCService) Delete(ctx context.Context, id string) error {
	recordID, err := parseID(id)
	if err != nil {
		return err
	}

	if err := s.store.DeleteRecord(ctx, recordID); err != nil {
		return storeError(err, recordID, "failed to delete RC record")
	}

	s.log.Info().Str("record_id", recordID.String()).Msg("deleted RC record")
	return nil
}

// PurgeOldRecords deletes records stored more than days days ago.
func (s *RCService) PurgeOldRecords(ctx context.Context, days int) (int64, error) {
	if days <= 0 {
		return 0, fmt.Errorf("%w: retention days must be positive", ErrInvalidInput)
	}

	cutoff := s.now().UTC().AddDate(0, 0, -days)
	deleted, err := s.store.DeleteRecordsOlderThan(ctx, cutoff)
	if err != nil {
		s.log.Error().Err(err).Int("days", days).Msg("failed to purge old RC records")
		return 0, err
	}
	metrics.RecordPurged(deleted)
	if deleted > 0 {
		s.log.Info().Int64("deleted_count", deleted).Int("days", days).Msg("purged old RC records")
	}
	return deleted, nil
}

// RunRetention purges old records every interval until ctx is cancelled.
func (s *RCService) RunRetention(ctx context.Context, days int, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		if _, err := s.PurgeOldRecords(ctx, days); err != nil && ctx.Err() == nil {
			s.log.Warn().Err(err).Msg("retention pass failed")
		}
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
		}
	}
}

func validateParseRequest(req rc.ParseRequest) error {
	if strings.TrimSpace(req.Text) == "" {
		return fmt.Errorf("%w: text is required", ErrInvalidInput)
	}
	if len(req.Text) > MaxTextBytes {
		return fmt.Errorf("%w: text is longer than %d bytes", ErrInvalidInput, MaxTextBytes)
	}
	if req.Confidence == nil {
		return fmt.Errorf("%w: confidence is required", ErrInvalidInput)
	}
	return nil
}

func parseID(id string) (uuid.UUID, error) {
	recordID, err := uuid.Parse(strings.TrimSpace(id))
	if err != nil {
		return uuid.Nil, fmt.Errorf("%w: invalid record id", ErrInvalidInput)
	}
	return recordID, nil
}

func storeError(err error, id uuid.UUID, msg string) error {
	if errors.Is(err, repository.ErrNotFound) {
		return fmt.Errorf("%w: record %s", ErrNotFound, id)
	}
	return fmt.Errorf("%s: %w", msg, err)
}
