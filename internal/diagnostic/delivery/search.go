package delivery

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/elastic/go-elasticsearch/v8"

	"monpro-diagnostic/internal/common/logger"
	"monpro-diagnostic/internal/models"
)

var ErrSearchIndexFailed = errors.New("SEARCH_INDEX_FAILED")

// SearchSink indexes battlecards into Elasticsearch so the operator
// can search past leads by brand, answers or recommendations.
type SearchSink struct {
	client *elasticsearch.Client
	index  string
	logger logger.Logger
}

func NewSearchSink(client *elasticsearch.Client, index string, log logger.Logger) *SearchSink {
	if index == "" {
		index = "battlecards"
	}
	return &SearchSink{client: client, index: index, logger: log}
}

func (s *SearchSink) Name() string { return "search" }

func (s *SearchSink) Deliver(ctx context.Context, card *models.Battlecard) error {
	body, err := json.Marshal(card)
	if err != nil {
		return fmt.Errorf("%w: encode battlecard: %v", ErrSearchIndexFailed, err)
	}

	res, err := s.client.Index(
		s.index,
		bytes.NewReader(body),
		s.client.Index.WithDocumentID(card.LeadID),
		s.client.Index.WithContext(ctx),
	)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrSearchIndexFailed, err)
	}
	defer res.Body.Close()

	if res.IsError() {
		return fmt.Errorf("%w: %s", ErrSearchIndexFailed, res.Status())
	}
	return nil
}
