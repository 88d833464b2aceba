package store

import (
	"encoding/json"
	"fmt"
	"sort"
	"time"
)

// JSON document helpers shared by the memory and SQL backends. Documents are
// stored in their JSON form with the identifier under "id".

type document map[string]interface{}

func toDocument(v interface{}) (document, error) {
	b, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("encode document: %w", err)
	}
	var doc document
	if err := json.Unmarshal(b, &doc); err != nil {
		return nil, fmt.Errorf("document must be an object: %w", err)
	}
	if doc == nil {
		doc = document{}
	}
	return doc, nil
}

func (d document) merge(fields map[string]interface{}) error {
	patch, err := toDocument(fields)
	if err != nil {
		return err
	}
	for k, v := range patch {
		if k == "id" {
			continue
		}
		d[k] = v
	}
	return nil
}

func decodeDocument(raw []byte, out interface{}) error {
	if err := json.Unmarshal(raw, out); err != nil {
		return fmt.Errorf("decode document: %w", err)
	}
	return nil
}

// decodeList orders docs per q and unmarshals them into out.
func decodeList(docs []document, q Query, out interface{}) error {
	ordered := orderDocuments(docs, q)
	b, err := json.Marshal(ordered)
	if err != nil {
		return fmt.Errorf("encode list: %w", err)
	}
	if err := json.Unmarshal(b, out); err != nil {
		return fmt.Errorf("decode list: %w", err)
	}
	return nil
}

func orderDocuments(docs []document, q Query) []document {
	ordered := make([]document, len(docs))
	copy(ordered, docs)
	if q.OrderBy != "" {
		sort.SliceStable(ordered, func(i, j int) bool {
			c := compareValues(ordered[i][q.OrderBy], ordered[j][q.OrderBy])
			if q.Descending {
				return c > 0
			}
			return c < 0
		})
	}
	if q.Limit > 0 && len(ordered) > q.Limit {
		ordered = ordered[:q.Limit]
	}
	return ordered
}

// compareValues orders missing values first, then numbers, timestamps and strings.
func compareValues(a, b interface{}) int {
	switch {
	case a == nil && b == nil:
		return 0
	case a == nil:
		return -1
	case b == nil:
		return 1
	}
	if fa, ok := a.(float64); ok {
		if fb, ok := b.(float64); ok {
			switch {
			case fa < fb:
				return -1
			case fa > fb:
				return 1
			}
			return 0
		}
	}
	sa, sb := fmt.Sprint(a), fmt.Sprint(b)
	ta, errA := time.Parse(time.RFC3339Nano, sa)
	tb, errB := time.Parse(time.RFC3339Nano, sb)
	if errA == nil && errB == nil {
		return ta.Compare(tb)
	}
	switch {
	case sa < sb:
		return -1
	case sa > sb:
		return 1
	}
	return 0
}
