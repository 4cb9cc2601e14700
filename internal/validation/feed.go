package validation

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/osse101/CityProduction_Go/internal/domain"
)

// Feed is a decoded contribution feed: one city, or a turn of cities
type Feed struct {
	Turn   int
	IsTurn bool
	Cities []domain.CityContributions
}

type turnFeed struct {
	Turn   int                        `json:"turn"`
	Cities []domain.CityContributions `json:"cities"`
}

// FeedDecoder validates feeds against the contributions schema before decoding
type FeedDecoder struct {
	validator  SchemaValidator
	schemaPath string
}

// NewFeedDecoder creates a decoder bound to a schema file
func NewFeedDecoder(v SchemaValidator, schemaPath string) *FeedDecoder {
	return &FeedDecoder{validator: v, schemaPath: schemaPath}
}

// DecodeFile reads, validates and decodes a feed file.
// Feeds exported as .gz or .zst are decompressed first.
func (d *FeedDecoder) DecodeFile(path string) (*Feed, error) {
	data, err := readFeed(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read feed %s: %w", path, err)
	}
	return d.Decode(data)
}

// Decode validates and decodes feed bytes
func (d *FeedDecoder) Decode(data []byte) (*Feed, error) {
	if err := d.validator.ValidateBytes(data, d.schemaPath); err != nil {
		return nil, err
	}

	var peek map[string]json.RawMessage
	if err := json.Unmarshal(data, &peek); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrInvalidInput, err)
	}

	dec := json.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()

	if _, ok := peek["cities"]; ok {
		var tf turnFeed
		if err := dec.Decode(&tf); err != nil {
			return nil, fmt.Errorf("%w: %v", domain.ErrInvalidInput, err)
		}
		return &Feed{Turn: tf.Turn, IsTurn: true, Cities: tf.Cities}, nil
	}

	var city domain.CityContributions
	if err := dec.Decode(&city); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrInvalidInput, err)
	}
	return &Feed{Turn: city.Turn, Cities: []domain.CityContributions{city}}, nil
}
