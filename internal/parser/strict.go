package parser

import (
	"io"
	"strconv"
	"strings"

	j "github.com/goccy/go-json"

	"github.com/reoring/jsonish/value"
)

// parseStrict decodes text as exactly one well-formed JSON document using the
// go-json token stream. Anything else, including trailing data, reports
// ok=false so the lenient stages can take over.
func parseStrict(text string) (*value.Value, bool) {
	dec := j.NewDecoder(strings.NewReader(text))
	dec.UseNumber()
	tok, err := dec.Token()
	if err != nil {
		return nil, false
	}
	v, err := decodeToken(dec, tok)
	if err != nil {
		return nil, false
	}
	if _, err := dec.Token(); err != io.EOF {
		return nil, false
	}
	return v, true
}

func decodeToken(dec *j.Decoder, tok j.Token) (*value.Value, error) {
	switch t := tok.(type) {
	case j.Delim:
		switch t {
		case '{':
			return decodeObject(dec)
		case '[':
			return decodeArray(dec)
		}
		return nil, io.ErrUnexpectedEOF
	case string:
		return value.String(t, value.Complete), nil
	case j.Number:
		return value.Number(string(t), value.Complete), nil
	case float64:
		return value.Number(strconv.FormatFloat(t, 'g', -1, 64), value.Complete), nil
	case bool:
		return value.Bool(t), nil
	case nil:
		return value.Null(), nil
	}
	return nil, io.ErrUnexpectedEOF
}

func decodeObject(dec *j.Decoder) (*value.Value, error) {
	obj := value.NewObject()
	for {
		tok, err := dec.Token()
		if err != nil {
			return nil, err
		}
		if d, ok := tok.(j.Delim); ok && d == '}' {
			return value.ObjectOf(obj, value.Complete), nil
		}
		key, ok := tok.(string)
		if !ok {
			return nil, io.ErrUnexpectedEOF
		}
		vt, err := dec.Token()
		if err != nil {
			return nil, err
		}
		v, err := decodeToken(dec, vt)
		if err != nil {
			return nil, err
		}
		obj.Set(key, v)
	}
}

func decodeArray(dec *j.Decoder) (*value.Value, error) {
	var items []*value.Value
	for {
		tok, err := dec.Token()
		if err != nil {
			return nil, err
		}
		if d, ok := tok.(j.Delim); ok && d == ']' {
			return value.Array(items, value.Complete), nil
		}
		v, err := decodeToken(dec, tok)
		if err != nil {
			return nil, err
		}
		items = append(items, v)
	}
}
