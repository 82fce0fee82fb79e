package outline

import (
	"bytes"
	"encoding/json"
	"errors"
)

// Entry is one heading in the outline.
type Entry struct {
	Level string `json:"level"`
	Text  string `json:"text"`
	Page  int    `json:"page"`
}

// Outline is the inferred structure of one document.
type Outline struct {
	Title   string  `json:"title"`
	Entries []Entry `json:"outline"`
}

// MarshalJSON always emits "outline" as an array.
func (o Outline) MarshalJSON() ([]byte, error) {
	type plain Outline
	if o.Entries == nil {
		o.Entries = []Entry{}
	}
	return marshalRaw(plain(o))
}

// marshalRaw encodes v without HTML escaping. Callers that want escaping
// get it from their own encoder, which re-escapes marshaler output.
func marshalRaw(v any) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(v); err != nil {
		return nil, err
	}
	return bytes.TrimSuffix(buf.Bytes(), []byte("\n")), nil
}

// Build runs the whole inference pipeline over one document's segments.
func Build(segs []Segment, h Heuristics) Outline {
	lines := GroupLines(segs, h)
	title := DetectTitle(lines, h)
	cands, _ := SelectCandidates(lines, title, h)
	return AssignLevels(cands, title)
}

// ErrorRecord replaces the outline of a document that could not be processed.
type ErrorRecord struct {
	Error string `json:"error"`
	File  string `json:"file"`
}

// Result is either an Outline or an ErrorRecord, never both.
type Result struct {
	Outline *Outline
	Err     *ErrorRecord
}

// Success wraps an outline.
func Success(o Outline) Result { return Result{Outline: &o} }

// Failure wraps a processing error for file.
func Failure(file string, err error) Result {
	return Result{Err: &ErrorRecord{Error: err.Error(), File: file}}
}

// OK reports whether the result carries an outline.
func (r Result) OK() bool { return r.Err == nil && r.Outline != nil }

func (r Result) MarshalJSON() ([]byte, error) {
	if r.Err != nil {
		return marshalRaw(r.Err)
	}
	if r.Outline != nil {
		return marshalRaw(r.Outline)
	}
	return nil, errors.New("empty result")
}

// UnmarshalJSON tells the two shapes apart by the "error" key.
func (r *Result) UnmarshalJSON(data []byte) error {
	var keys map[string]json.RawMessage
	if err := json.Unmarshal(data, &keys); err != nil {
		return err
	}
	if _, ok := keys["error"]; ok {
		var e ErrorRecord
		if err := json.Unmarshal(data, &e); err != nil {
			return err
		}
		*r = Result{Err: &e}
		return nil
	}
	var o Outline
	if err := json.Unmarshal(data, &o); err != nil {
		return err
	}
	*r = Result{Outline: &o}
	return nil
}
