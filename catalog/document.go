package catalog

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"protoforge/prototype"
)

type rawHeader struct {
	Type *string `json:"type"`
	Name *string `json:"name"`
}

// ParseDocument splits a raw JSON document into typed prototype instances. The
// document is either a single record object or an array of record objects. A
// malformed record aborts only itself: siblings keep decoding and every
// per-record error is collected alongside the successfully decoded records.
func ParseDocument(table *prototype.Table, path string, data []byte) ([]prototype.Prototype, []error) {
	bodies, err := splitDocument(data)
	if err != nil {
		return nil, []error{fmt.Errorf("catalog: failed parsing %s: %w", path, err)}
	}
	var records []prototype.Prototype
	var errs []error
	for i, body := range bodies {
		record, err := parseRecord(table, body)
		if err != nil {
			errs = append(errs, fmt.Errorf("catalog: %s record %d: %w", path, i, err))
			continue
		}
		records = append(records, record)
	}
	return records, errs
}

// splitDocument normalizes the two accepted document shapes into a sequence of
// raw record bodies. A lone object is a one-element batch.
func splitDocument(data []byte) ([]json.RawMessage, error) {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 {
		return nil, nil
	}
	switch trimmed[0] {
	case '[':
		var bodies []json.RawMessage
		if err := json.Unmarshal(trimmed, &bodies); err != nil {
			return nil, err
		}
		return bodies, nil
	case '{':
		return []json.RawMessage{json.RawMessage(trimmed)}, nil
	default:
		return nil, fmt.Errorf("unexpected json token %q", string(trimmed[:1]))
	}
}

func parseRecord(table *prototype.Table, body json.RawMessage) (prototype.Prototype, error) {
	var header rawHeader
	if err := json.Unmarshal(body, &header); err != nil {
		return nil, err
	}
	if header.Type == nil || strings.TrimSpace(*header.Type) == "" {
		return nil, prototype.ErrMissingDiscriminant
	}
	desc, ok := table.Lookup(*header.Type)
	if !ok {
		return nil, &prototype.UnknownTypeError{Type: *header.Type}
	}
	if header.Name == nil || strings.TrimSpace(*header.Name) == "" {
		return nil, prototype.ErrMissingIdentifier
	}
	record, err := desc.Decode(body)
	if err != nil {
		var decodeErr *prototype.FieldDecodeError
		if errors.As(err, &decodeErr) && decodeErr.Name == "" {
			decodeErr.Name = *header.Name
		}
		return nil, err
	}
	return record, nil
}
