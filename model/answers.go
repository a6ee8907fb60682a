package model

import (
	"bytes"
	"encoding/json"
	"errors"
)

// AnswerSet is a field-keyed answer map that remembers the key order of the
// JSON object it was decoded from. Review views show answers in whatever
// order the respondent's client submitted them, so the order is part of the
// data; a plain map would lose it.
type AnswerSet struct {
	Order  []string
	Values map[string]any
}

func (a AnswerSet) Len() int { return len(a.Order) }

// Set appends the field if new, overwrites in place otherwise.
func (a *AnswerSet) Set(field string, value any) {
	if a.Values == nil {
		a.Values = map[string]any{}
	}
	if _, ok := a.Values[field]; !ok {
		a.Order = append(a.Order, field)
	}
	a.Values[field] = value
}

func (a *AnswerSet) UnmarshalJSON(data []byte) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	tok, err := dec.Token()
	if err != nil {
		return err
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return errors.New("answers: not a JSON object")
	}

	a.Order = nil
	a.Values = map[string]any{}
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return err
		}
		key := tok.(string)

		var value any
		if err := dec.Decode(&value); err != nil {
			return err
		}
		a.Set(key, value)
	}

	_, err = dec.Token()
	return err
}

func (a AnswerSet) MarshalJSON() ([]byte, error) {
	buf := bytes.Buffer{}
	buf.WriteByte('{')
	for i, key := range a.Order {
		if i > 0 {
			buf.WriteByte(',')
		}
		k, err := json.Marshal(key)
		if err != nil {
			return nil, err
		}
		buf.Write(k)
		buf.WriteByte(':')

		v, err := json.Marshal(a.Values[key])
		if err != nil {
			return nil, err
		}
		buf.Write(v)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}
