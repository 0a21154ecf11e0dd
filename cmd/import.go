package main

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"media-insight-dashboard/internal/dataset"
	"media-insight-dashboard/internal/elasticsearch"
	"media-insight-dashboard/internal/model"
	"media-insight-dashboard/internal/repository"
	"media-insight-dashboard/internal/timescaledb"
)

var (
	importTarget    string
	importBatchSize int
)

var importCmd = &cobra.Command{
	Use:   "import",
	Short: "Copy a dataset file into Postgres or Elasticsearch",
	Long: `Loads the dataset file (--dataset or DATASET_PATH) and writes every record to the chosen
store, so that DATASET_SOURCE=postgres or DATASET_SOURCE=elasticsearch can serve it.`,
	RunE: runImport,
}

func init() {
	importCmd.Flags().StringVarP(&importTarget, "target", "t", "postgres", "target store (postgres or elasticsearch)")
	importCmd.Flags().IntVar(&importBatchSize, "batch-size", 1000, "records written per batch")
}

func runImport(cmd *cobra.Command, args []string) error {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Minute)
	defer cancel()

	ds, err := dataset.Load(cfg.Dataset.FilePath)
	if err != nil {
		return err
	}
	if err := ds.Require(model.KnownColumns...); err != nil {
		return err
	}

	var writer repository.RecordWriter
	switch importTarget {
	case "postgres", "timescaledb":
		mentionStore, err := timescaledb.NewMentionStore(ctx, cfg)
		if err != nil {
			return err
		}
		defer mentionStore.Close()
		if err := mentionStore.EnsureTable(ctx); err != nil {
			return err
		}
		writer = mentionStore
	case "elasticsearch":
		client, err := elasticsearch.Connect(ctx, cfg.Elasticsearch, 90*time.Second)
		if err != nil {
			return err
		}
		writer = elasticsearch.NewElasticMentionStore(client, cfg.Elasticsearch)
	default:
		return fmt.Errorf("unsupported import target %q", importTarget)
	}

	written, err := importRecords(ctx, writer, ds.Records, importBatchSize)
	if err != nil {
		return err
	}
	log.Info().Str("target", importTarget).Int64("written", written).Int("records", ds.Len()).Msg("Import finished")
	fmt.Fprintf(cmd.OutOrStdout(), "Imported %d of %d records into %s\n", written, ds.Len(), importTarget)
	return nil
}

func importRecords(ctx context.Context, writer repository.RecordWriter, records []model.Record, batchSize int) (int64, error) {
	if batchSize <= 0 {
		batchSize = len(records)
	}
	var written int64
	for start := 0; start < len(records); start += batchSize {
		end := start + batchSize
		if end > len(records) {
			end = len(records)
		}
		n, err := writer.StoreRecords(ctx, records[start:end])
		written += n
		if err != nil {
			return written, fmt.Errorf("batch %d-%d: %w", start, end, err)
		}
		log.Debug().Int("from", start).Int("to", end).Int64("written", n).Msg("Imported batch")
	}
	return written, nil
}
