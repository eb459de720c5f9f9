package model

import (
	"bytes"
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

// TaskValue is either a whole number or raw text.
type TaskValue struct {
	num     int
	text    string
	numeric bool
}

func IntValue(n int) TaskValue     { return TaskValue{num: n, numeric: true} }
func TextValue(s string) TaskValue { return TaskValue{text: s} }

func (v TaskValue) IsNumeric() bool { return v.numeric }

// Int coerces the value to an integer. Text converts when it is a base-10
// integer once surrounding whitespace is trimmed.
func (v TaskValue) Int() (int, bool) {
	if v.numeric {
		return v.num, true
	}
	n, err := strconv.Atoi(strings.TrimSpace(v.text))
	if err != nil {
		return 0, false
	}
	return n, true
}

func (v TaskValue) String() string {
	if v.numeric {
		return strconv.Itoa(v.num)
	}
	return v.text
}

func (v TaskValue) Equal(o TaskValue) bool {
	if v.numeric != o.numeric {
		return false
	}
	if v.numeric {
		return v.num == o.num
	}
	return v.text == o.text
}

// Cell returns the value as a spreadsheet cell: int for numbers, string otherwise.
func (v TaskValue) Cell() any {
	if v.numeric {
		return v.num
	}
	return v.text
}

func (v TaskValue) MarshalJSON() ([]byte, error) {
	if v.numeric {
		return []byte(strconv.Itoa(v.num)), nil
	}
	return json.Marshal(v.text)
}

func (v *TaskValue) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if len(b) == 0 {
		return fmt.Errorf("empty task value")
	}
	switch b[0] {
	case '"':
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		*v = TextValue(s)
	case '{', '[':
		return fmt.Errorf("task value must be a scalar, got %s", b)
	default:
		if n, err := strconv.Atoi(string(b)); err == nil {
			*v = IntValue(n)
		} else {
			*v = TextValue(string(b))
		}
	}
	return nil
}

type TaskEntry struct {
	Key   string
	Value TaskValue
}

// Tasks is an ordered key/value list persisted as a JSON object.
type Tasks []TaskEntry

func (t Tasks) Get(key string) (TaskValue, bool) {
	for _, e := range t {
		if e.Key == key {
			return e.Value, true
		}
	}
	return TaskValue{}, false
}

// Set overwrites an existing entry in place or appends a new one.
func (t *Tasks) Set(key string, v TaskValue) {
	for i := range *t {
		if (*t)[i].Key == key {
			(*t)[i].Value = v
			return
		}
	}
	*t = append(*t, TaskEntry{Key: key, Value: v})
}

func (t Tasks) Keys() []string {
	keys := make([]string, len(t))
	for i, e := range t {
		keys[i] = e.Key
	}
	return keys
}

func (t Tasks) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, e := range t {
		if i > 0 {
			buf.WriteByte(',')
		}
		k, err := json.Marshal(e.Key)
		if err != nil {
			return nil, err
		}
		buf.Write(k)
		buf.WriteByte(':')
		val, err := e.Value.MarshalJSON()
		if err != nil {
			return nil, err
		}
		buf.Write(val)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// UnmarshalJSON keeps the key order of the document. Null members are skipped.
func (t *Tasks) UnmarshalJSON(b []byte) error {
	dec := json.NewDecoder(bytes.NewReader(b))
	tok, err := dec.Token()
	if err != nil {
		return err
	}
	if tok == nil {
		*t = nil
		return nil
	}
	if d, ok := tok.(json.Delim); !ok || d != '{' {
		return fmt.Errorf("tasks: expected object, got %v", tok)
	}
	out := Tasks{}
	for dec.More() {
		keyTok, err := dec.Token()
		if err != nil {
			return err
		}
		key, ok := keyTok.(string)
		if !ok {
			return fmt.Errorf("tasks: expected key, got %v", keyTok)
		}
		var raw json.RawMessage
		if err := dec.Decode(&raw); err != nil {
			return fmt.Errorf("tasks: value of %q: %w", key, err)
		}
		if string(raw) == "null" {
			continue
		}
		var v TaskValue
		if err := v.UnmarshalJSON(raw); err != nil {
			return fmt.Errorf("tasks: value of %q: %w", key, err)
		}
		out.Set(key, v)
	}
	if _, err := dec.Token(); err != nil {
		return err
	}
	*t = out
	return nil
}

func (t Tasks) Value() (driver.Value, error) {
	b, err := t.MarshalJSON()
	if err != nil {
		return nil, err
	}
	return string(b), nil
}

func (t *Tasks) Scan(src any) error {
	switch v := src.(type) {
	case nil:
		*t = nil
		return nil
	case []byte:
		return t.UnmarshalJSON(v)
	case string:
		return t.UnmarshalJSON([]byte(v))
	}
	return fmt.Errorf("scan tasks: unsupported type %T", src)
}
