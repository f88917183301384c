package ingest

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/go-resty/resty/v2"
	"github.com/hashicorp/go-hclog"

	"github.com/custodia-labs/reposcout/internal/core/domain"
	"github.com/custodia-labs/reposcout/internal/core/ports/driven"
)

// Ensure Sink implements the interface.
var _ driven.IndexSink = (*Sink)(nil)

const (
	// HeaderAPIKey carries the ingest endpoint credential.
	HeaderAPIKey = "X-Api-Key"

	// HeaderRunID tags each request with the run that produced it.
	HeaderRunID = "X-Run-Id"
)

// Sink writes records to a Logstash ingest endpoint and looks documents up
// in the Elasticsearch index behind it.
type Sink struct {
	client *resty.Client
	cfg    domain.IngestConfig
	runID  string
}

// NewSink creates an index sink. runID is sent with every ingest request.
func NewSink(cfg domain.IngestConfig, runID string, logger hclog.Logger) *Sink {
	return &Sink{
		client: newRestyClient(logger, cfg.Timeout()),
		cfg:    cfg,
		runID:  runID,
	}
}

// DocumentExists issues HEAD {index_url}/{index}/_doc/{id}.
// 200 means present, 404 absent; anything else is an error.
func (s *Sink) DocumentExists(ctx context.Context, index, id string) (bool, error) {
	if id == "" {
		return false, domain.NewOpError("document exists", domain.KindInvalidInput, domain.ErrMissingCommit)
	}

	docURL := fmt.Sprintf("%s/%s/_doc/%s",
		strings.TrimRight(s.cfg.IndexURL, "/"), url.PathEscape(index), url.PathEscape(id))

	resp, err := s.client.R().SetContext(ctx).Head(docURL)
	if err != nil {
		return false, domain.NewOpError("document exists", domain.KindTransport, err)
	}

	switch resp.StatusCode() {
	case http.StatusOK:
		return true, nil
	case http.StatusNotFound:
		return false, nil
	default:
		return false, domain.NewOpError("document exists", domain.KindTransport,
			fmt.Errorf("unexpected status %s", resp.Status()))
	}
}

// Ingest posts record as a JSON document. Empty records are refused.
func (s *Sink) Ingest(ctx context.Context, record *domain.OutputRecord) (string, error) {
	if record == nil || record.IsEmpty() {
		return "", domain.NewOpError("ingest", domain.KindInvalidInput, domain.ErrEmptyRecord)
	}

	req := s.client.R().
		SetContext(ctx).
		SetHeader("Content-Type", "application/json").
		SetBody(record)
	if s.cfg.APIKey != "" {
		req.SetHeader(HeaderAPIKey, s.cfg.APIKey)
	}
	if s.runID != "" {
		req.SetHeader(HeaderRunID, s.runID)
	}

	resp, err := req.Post(s.cfg.Endpoint)
	if err != nil {
		return "", domain.NewOpError("ingest", domain.KindTransport, err)
	}
	if !resp.IsSuccess() {
		return "", domain.NewOpError("ingest", domain.KindTransport,
			fmt.Errorf("ingest failed: %s - %s", resp.Status(), resp.String()))
	}

	return fmt.Sprintf("Status: %s, Body: %s", resp.Status(), resp.String()), nil
}
