package timescaledb

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/cenkalti/backoff"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog/log"

	"media-insight-dashboard/config"
	"media-insight-dashboard/internal/model"
	"media-insight-dashboard/internal/repository"
)

const (
	colDate        = "date"
	colPlatform    = "platform"
	colSentiment   = "sentiment"
	colMediaType   = "media_type"
	colLocation    = "location"
	colEngagements = "engagements"
	// TIMESTAMPTZ drops the written offset; it is kept so the calendar day survives a round trip.
	colUTCOffset = "utc_offset"
)

var mentionColumns = []string{colDate, colPlatform, colSentiment, colMediaType, colLocation, colEngagements, colUTCOffset}

// MentionStore reads and writes media mentions in a TimescaleDB (or plain Postgres) table.
type MentionStore struct {
	pool      *pgxpool.Pool
	tableName string
	maxRows   int
}

func NewMentionStore(ctx context.Context, cfg *config.Config) (*MentionStore, error) {
	poolConfig, err := pgxpool.ParseConfig(cfg.TimescaleDB.DSN)
	if err != nil {
		log.Error().Err(err).Msg("Failed to parse TimescaleDB DSN")
		return nil, fmt.Errorf("invalid TimescaleDB DSN: %w", err)
	}

	pool, err := pgxpool.NewWithConfig(ctx, poolConfig)
	if err != nil {
		log.Error().Err(err).Msg("Unable to create connection pool to TimescaleDB")
		return nil, fmt.Errorf("failed to connect to TimescaleDB: %w", err)
	}

	ping := func() error {
		pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
		defer cancel()
		if err := pool.Ping(pingCtx); err != nil {
			log.Warn().Err(err).Msg("Attempt failed: TimescaleDB ping")
			return err
		}
		return nil
	}
	pingBackoff := backoff.NewExponentialBackOff()
	pingBackoff.InitialInterval = time.Second
	pingBackoff.MaxElapsedTime = 30 * time.Second
	if err := backoff.Retry(ping, backoff.WithContext(pingBackoff, ctx)); err != nil {
		pool.Close()
		log.Error().Err(err).Msg("Failed to ping TimescaleDB")
		return nil, fmt.Errorf("failed to ping TimescaleDB: %w", err)
	}
	log.Info().Msg("TimescaleDB connection pool created and verified.")

	return &MentionStore{
		pool:      pool,
		tableName: cfg.TimescaleDB.Table,
		maxRows:   cfg.Dataset.MaxRows,
	}, nil
}

func createTableSQL(table string) string {
	return fmt.Sprintf(`
		CREATE TABLE IF NOT EXISTS %s (
			%s TIMESTAMPTZ NOT NULL,
			%s TEXT NOT NULL,
			%s TEXT,
			%s TEXT,
			%s TEXT,
			%s BIGINT NOT NULL DEFAULT 0,
			%s INTEGER NOT NULL DEFAULT 0
		);`,
		pgx.Identifier{table}.Sanitize(), colDate, colPlatform, colSentiment, colMediaType, colLocation, colEngagements, colUTCOffset)
}

// Tables created before the offset column existed are upgraded in place.
func addOffsetColumnSQL(table string) string {
	return fmt.Sprintf("ALTER TABLE %s ADD COLUMN IF NOT EXISTS %s INTEGER NOT NULL DEFAULT 0;",
		pgx.Identifier{table}.Sanitize(), colUTCOffset)
}

// EnsureTable creates the mentions table and, when the extension is available, turns it into a hypertable.
func (s *MentionStore) EnsureTable(ctx context.Context) error {
	if _, err := s.pool.Exec(ctx, createTableSQL(s.tableName)); err != nil {
		return fmt.Errorf("failed to create base table %s: %w", s.tableName, err)
	}
	if _, err := s.pool.Exec(ctx, addOffsetColumnSQL(s.tableName)); err != nil {
		return fmt.Errorf("failed to add %s column to %s: %w", colUTCOffset, s.tableName, err)
	}
	log.Info().Str("table", s.tableName).Msg("Ensured base table exists.")

	var isHypertable bool
	checkHyperSQL := `SELECT EXISTS (
        SELECT 1 FROM timescaledb_information.hypertables WHERE hypertable_name = $1
    );`
	if err := s.pool.QueryRow(ctx, checkHyperSQL, s.tableName).Scan(&isHypertable); err != nil {
		log.Warn().Err(err).Msg("TimescaleDB catalog not available, keeping a plain table")
		return nil
	}
	if isHypertable {
		log.Info().Str("table", s.tableName).Msg("Table is already a hypertable.")
		return nil
	}

	createHyperSQL := fmt.Sprintf(
		"SELECT create_hypertable('%s', '%s', if_not_exists => TRUE, chunk_time_interval => INTERVAL '7 days');",
		s.tableName, colDate,
	)
	if _, err := s.pool.Exec(ctx, createHyperSQL); err != nil && !strings.Contains(err.Error(), "already a hypertable") {
		log.Warn().Err(err).Str("table", s.tableName).Msg("Failed to create hypertable (continuing with plain table)")
		return nil
	}
	log.Info().Str("table", s.tableName).Msg("Successfully ensured hypertable.")
	return nil
}

func (s *MentionStore) Describe() string {
	return "postgres:" + s.tableName
}

// loadQuery selects every mention, oldest first. With a row limit one extra row is read so that
// an oversized table is detected instead of silently cut.
func loadQuery(table string, maxRows int) (string, []interface{}) {
	query := fmt.Sprintf("SELECT %s FROM %s ORDER BY %s ASC",
		strings.Join(mentionColumns, ", "), pgx.Identifier{table}.Sanitize(), colDate)
	if maxRows <= 0 {
		return query, nil
	}
	return query + " LIMIT $1", []interface{}{maxRows + 1}
}

// LoadDataset reads every mention in the table. It fails with a LoadError when the table holds
// more rows than DATASET_MAX_ROWS allows.
func (s *MentionStore) LoadDataset(ctx context.Context) (*model.Dataset, error) {
	query, args := loadQuery(s.tableName, s.maxRows)

	rows, err := s.pool.Query(ctx, query, args...)
	if err != nil {
		log.Error().Err(err).Str("query", query).Msg("Failed to query mentions")
		return nil, &model.LoadError{Path: s.Describe(), Err: fmt.Errorf("failed to query mentions: %w", err)}
	}
	records, err := pgx.CollectRows(rows, scanRecord)
	if err != nil {
		log.Error().Err(err).Msg("Failed to scan mention rows")
		return nil, &model.LoadError{Path: s.Describe(), Err: fmt.Errorf("failed to scan mentions: %w", err)}
	}
	if err := repository.CheckRowLimit(s.Describe(), len(records), s.maxRows); err != nil {
		log.Error().Err(err).Int("max_rows", s.maxRows).Msg("Mention table exceeds the row limit")
		return nil, err
	}

	log.Debug().Int("count", len(records)).Str("table", s.tableName).Msg("Loaded mentions from TimescaleDB")
	return model.NewDataset(s.Describe(), model.KnownColumns, records), nil
}

func scanRecord(row pgx.CollectableRow) (model.Record, error) {
	var r model.Record
	var sentiment, mediaType, location *string
	var offset int32
	if err := row.Scan(&r.Date, &r.Platform, &sentiment, &mediaType, &location, &r.Engagements, &offset); err != nil {
		return r, err
	}
	r.Date = withOffset(r.Date, int(offset))
	r.Sentiment = deref(sentiment)
	r.MediaType = deref(mediaType)
	r.Location = deref(location)
	return r, nil
}

func withOffset(t time.Time, offsetSeconds int) time.Time {
	if offsetSeconds == 0 {
		return t.UTC()
	}
	return t.In(time.FixedZone("", offsetSeconds))
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

// StoreRecords bulk inserts records with COPY.
func (s *MentionStore) StoreRecords(ctx context.Context, records []model.Record) (int64, error) {
	if len(records) == 0 {
		return 0, nil
	}

	source := pgx.CopyFromSlice(len(records), func(i int) ([]interface{}, error) {
		return recordValues(records[i]), nil
	})

	copyCount, err := s.pool.CopyFrom(ctx, pgx.Identifier{s.tableName}, mentionColumns, source)
	if err != nil {
		log.Error().Err(err).Msg("Failed to bulk insert mentions into TimescaleDB")
		return 0, fmt.Errorf("timescaledb copyfrom failed: %w", err)
	}

	if int(copyCount) != len(records) {
		log.Warn().Int64("inserted", copyCount).Int("expected", len(records)).Msg("TimescaleDB CopyFrom record count mismatch")
	} else {
		log.Debug().Int64("count", copyCount).Msg("Successfully inserted mentions into TimescaleDB")
	}
	return copyCount, nil
}

func recordValues(r model.Record) []interface{} {
	_, offset := r.Date.Zone()
	return []interface{}{r.Date, r.Platform, r.Sentiment, r.MediaType, r.Location, r.Engagements, int32(offset)}
}

func (s *MentionStore) Close() {
	log.Info().Msg("Closing TimescaleDB connection pool...")
	s.pool.Close()
}
