package docstore

import (
	"encoding/json"
	"time"

	perr "caseline/internal/platform/errors"
)

// Encode turns a tagged struct into Fields; id and timestamps are dropped
func Encode(v any) (Fields, error) {
	b, err := json.Marshal(v)
	if err != nil {
		return nil, perr.Wrap(err, perr.ErrorCodeJSON, "docstore: encode")
	}
	var f Fields
	if err := json.Unmarshal(b, &f); err != nil {
		return nil, perr.Wrap(err, perr.ErrorCodeJSON, "docstore: encode")
	}
	delete(f, FieldID)
	delete(f, FieldCreatedAt)
	delete(f, FieldUpdatedAt)
	return f, nil
}

// Decode fills T from a document, exposing id, createdAt and updatedAt as payload keys
func Decode[T any](d Doc) (T, error) {
	var out T
	m := make(Fields, len(d.Data)+3)
	for k, v := range d.Data {
		m[k] = v
	}
	m[FieldID] = d.ID
	m[FieldCreatedAt] = d.CreatedAt
	m[FieldUpdatedAt] = d.UpdatedAt
	b, err := json.Marshal(m)
	if err != nil {
		return out, perr.Wrap(err, perr.ErrorCodeJSON, "docstore: decode")
	}
	if err := json.Unmarshal(b, &out); err != nil {
		return out, perr.Wrapf(err, perr.ErrorCodeJSON, "docstore: decode %s", d.Ref().Path())
	}
	return out, nil
}

// DecodeAll maps Decode over docs
func DecodeAll[T any](docs []Doc) ([]T, error) {
	out := make([]T, 0, len(docs))
	for _, d := range docs {
		v, err := Decode[T](d)
		if err != nil {
			return nil, err
		}
		out = append(out, v)
	}
	return out, nil
}

// canon brings a value into its JSON shape (numbers become float64, structs become maps)
func canon(v any) (any, error) {
	switch x := v.(type) {
	case nil, string, bool, float64:
		return x, nil
	case time.Time:
		return x, nil
	}
	b, err := json.Marshal(v)
	if err != nil {
		return nil, perr.Wrap(err, perr.ErrorCodeJSON, "docstore: value")
	}
	var out any
	if err := json.Unmarshal(b, &out); err != nil {
		return nil, perr.Wrap(err, perr.ErrorCodeJSON, "docstore: value")
	}
	return out, nil
}

// canonFields validates and copies a payload, rejecting reserved keys and sentinels
func canonFields(in Fields) (Fields, error) {
	out := make(Fields, len(in))
	for k, v := range in {
		if isReserved(k) {
			continue
		}
		if _, ok := v.(increment); ok {
			return nil, perr.InvalidArgf("docstore: Inc is only valid in updates (%s)", k)
		}
		c, err := canon(v)
		if err != nil {
			return nil, perr.WithField(err, k)
		}
		out[k] = c
	}
	return out, nil
}

// lookup walks a dotted path through nested maps
func lookup(data Fields, path []string) (any, bool) {
	var cur any = data
	for _, p := range path {
		m, ok := cur.(map[string]any)
		if !ok {
			return nil, false
		}
		if cur, ok = m[p]; !ok {
			return nil, false
		}
	}
	return cur, true
}

// assign writes v at path, creating intermediate maps
func assign(data Fields, path []string, v any) {
	m := data
	for _, p := range path[:len(path)-1] {
		next, ok := m[p].(map[string]any)
		if !ok {
			next = map[string]any{}
			m[p] = next
		}
		m = next
	}
	m[path[len(path)-1]] = v
}

// merge applies an update patch onto a deep copy of data
func merge(data, patch Fields) (Fields, error) {
	out, err := clone(data)
	if err != nil {
		return nil, err
	}
	for k, v := range patch {
		if isReserved(k) {
			return nil, perr.InvalidArgf("docstore: %s cannot be updated", k)
		}
		path := fieldPath(k)
		if inc, ok := v.(increment); ok {
			cur, _ := lookup(out, path)
			n, isNum := cur.(float64)
			if cur != nil && !isNum {
				return nil, perr.WithField(perr.InvalidArgf("docstore: cannot increment non-numeric field %s", k), k)
			}
			assign(out, path, n+inc.by)
			continue
		}
		c, err := canon(v)
		if err != nil {
			return nil, perr.WithField(err, k)
		}
		assign(out, path, c)
	}
	return out, nil
}

func clone(f Fields) (Fields, error) {
	if f == nil {
		return Fields{}, nil
	}
	b, err := json.Marshal(f)
	if err != nil {
		return nil, perr.Wrap(err, perr.ErrorCodeJSON, "docstore: clone")
	}
	var out Fields
	if err := json.Unmarshal(b, &out); err != nil {
		return nil, perr.Wrap(err, perr.ErrorCodeJSON, "docstore: clone")
	}
	return out, nil
}
