package elasticsearch

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/cenkalti/backoff"
	"github.com/elastic/go-elasticsearch/v8"
	"github.com/rs/zerolog/log"

	"media-insight-dashboard/config"
)

func clientConfig(cfg config.ElasticsearchConfig) elasticsearch.Config {
	transport := &http.Transport{
		MaxIdleConnsPerHost:   10,
		ResponseHeaderTimeout: time.Second * 10,
		DialContext:           (&net.Dialer{Timeout: 5 * time.Second}).DialContext,
		TLSHandshakeTimeout:   5 * time.Second,
	}
	return elasticsearch.Config{
		Addresses: cfg.Addresses,
		Username:  cfg.Username,
		Password:  cfg.Password,
		Transport: transport,
	}
}

// Connect creates a client and retries Info() with exponential backoff until the cluster answers.
func Connect(ctx context.Context, cfg config.ElasticsearchConfig, maxElapsed time.Duration) (*elasticsearch.Client, error) {
	if len(cfg.Addresses) == 0 {
		log.Error().Msg("Elasticsearch addresses are not configured.")
		return nil, errors.New("elasticsearch configuration missing")
	}

	var esClient *elasticsearch.Client
	operation := func() error {
		client, err := elasticsearch.NewClient(clientConfig(cfg))
		if err != nil {
			log.Warn().Err(err).Msg("Attempt failed: Error creating the Elasticsearch client")
			return err
		}

		res, err := client.Info(client.Info.WithContext(ctx))
		if err != nil {
			log.Warn().Err(err).Msg("Attempt failed: Error during Elasticsearch Info() call (transport level)")
			return err
		}
		defer res.Body.Close()
		if res.IsError() {
			errMsg := fmt.Errorf("elasticsearch Info() returned error status: %s", res.Status())
			log.Warn().Err(errMsg).Msg("Attempt failed: Elasticsearch ping returned error status")
			return errMsg
		}
		esClient = client
		log.Info().Strs("addresses", cfg.Addresses).Msg("Elasticsearch client initialized and connection verified!")
		return nil
	}

	connectBackoff := backoff.NewExponentialBackOff()
	connectBackoff.InitialInterval = 2 * time.Second
	connectBackoff.MaxInterval = 15 * time.Second
	connectBackoff.MaxElapsedTime = maxElapsed

	log.Info().Msg("Attempting to connect to Elasticsearch with retries...")
	if err := backoff.Retry(operation, backoff.WithContext(connectBackoff, ctx)); err != nil {
		log.Error().Err(err).Msg("Failed to connect to Elasticsearch after multiple retries")
		return nil, err
	}
	return esClient, nil
}
