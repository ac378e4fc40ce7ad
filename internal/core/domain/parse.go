package domain

import (
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
)

// WordRow maps one word id to the verse that owns it.
type WordRow struct {
	ID    WordID
	Verse VerseKey
}

type columnSpec struct {
	name     string
	aliases  []string
	optional bool
}

var lineColumns = []columnSpec{
	{name: "page", aliases: []string{"page_number", "page"}},
	{name: "line", aliases: []string{"line_number", "line"}},
	{name: "type", aliases: []string{"line_type", "type"}},
	{name: "centered", aliases: []string{"is_centered", "centered"}},
	{name: "first_word", aliases: []string{"first_word_id", "first_word"}},
	{name: "last_word", aliases: []string{"last_word_id", "last_word"}},
	{name: "surah", aliases: []string{"surah_number", "surah"}},
}

const (
	colPage = iota
	colLine
	colType
	colCentered
	colFirstWord
	colLastWord
	colSurah
)

// ParseLineRows validates the page layout table and returns typed rows in
// source order. Columns are matched by name, or by position when the table
// declares none (page, line, type, centered, first word, last word, surah).
func ParseLineRows(t Table) ([]AyahLineRow, error) {
	idx, width, err := resolveColumns(t, lineColumns)
	if err != nil {
		return nil, err
	}
	out := make([]AyahLineRow, 0, len(t.Rows))
	for i, row := range t.Rows {
		if err := checkWidth(t, i, row, width); err != nil {
			return nil, err
		}
		r, err := parseLineRow(t.Name, i, row, idx)
		if err != nil {
			return nil, err
		}
		out = append(out, r)
	}
	return out, nil
}

func parseLineRow(table string, i int, row []any, idx []int) (AyahLineRow, error) {
	bad := func(format string, args ...any) error {
		return &BuildError{Kind: ErrMalformedRow, Table: table, Row: i, Detail: fmt.Sprintf(format, args...)}
	}

	page, null, ok := asInt(row[idx[colPage]])
	if !ok || null || page < 1 {
		return AyahLineRow{}, bad("page %v is not a positive integer", row[idx[colPage]])
	}
	line, null, ok := asInt(row[idx[colLine]])
	if !ok || null || line < 1 {
		return AyahLineRow{}, bad("line %v is not a positive integer", row[idx[colLine]])
	}
	typ, ok := asString(row[idx[colType]])
	lt := LineType(strings.TrimSpace(typ))
	if !ok || !lt.Valid() {
		return AyahLineRow{}, bad("unknown line type %v", row[idx[colType]])
	}
	centered, ok := asBool(row[idx[colCentered]])
	if !ok {
		return AyahLineRow{}, bad("centered flag %v is not boolean", row[idx[colCentered]])
	}
	surah, surahNull, ok := asInt(row[idx[colSurah]])
	if !ok || (!surahNull && (surah < 0 || surah > MaxSurah)) {
		return AyahLineRow{}, bad("surah %v is not a surah number", row[idx[colSurah]])
	}

	r := AyahLineRow{Page: page, Line: line, Type: lt, Centered: centered, Surah: surah}
	switch lt {
	case LineAyah:
		first, firstNull, okFirst := asInt(row[idx[colFirstWord]])
		last, lastNull, okLast := asInt(row[idx[colLastWord]])
		if !okFirst || !okLast || firstNull || lastNull || first < 1 || last < 1 || int64(last) > math.MaxUint32 {
			return AyahLineRow{}, bad("ayah line needs positive word ids, got %v-%v",
				row[idx[colFirstWord]], row[idx[colLastWord]])
		}
		if first > last {
			return AyahLineRow{}, &BuildError{
				Kind: ErrInconsistentWordRange, Table: table, Row: i, Page: page,
				Detail: fmt.Sprintf("line %d has reversed word range %d-%d", line, first, last),
			}
		}
		r.Words = WordRange{First: WordID(first), Last: WordID(last)}
	case LineSurahName:
		if surahNull || surah < 1 {
			return AyahLineRow{}, bad("surah_name line without surah number")
		}
	}
	return r, nil
}

var wordColumns = []columnSpec{
	{name: "id", aliases: []string{"word_id", "id", "word_index"}},
	{name: "verse_key", aliases: []string{"verse_key"}, optional: true},
	{name: "surah", aliases: []string{"surah", "surah_number"}, optional: true},
	{name: "ayah", aliases: []string{"ayah", "ayah_number"}, optional: true},
	{name: "location", aliases: []string{"location"}, optional: true},
}

// ParseWordRows validates an optional word table. The owning verse is read
// from a verse_key column, surah/ayah columns, or a "surah:ayah:word"
// location column, in that order of preference.
func ParseWordRows(t Table) ([]WordRow, error) {
	if len(t.Rows) == 0 {
		return nil, nil
	}
	if len(t.Columns) == 0 {
		return nil, NewBuildError(ErrMalformedRow, t.Name, "word table needs named columns")
	}
	idx, width, err := resolveColumns(t, wordColumns)
	if err != nil {
		return nil, err
	}
	if idx[1] < 0 && (idx[2] < 0 || idx[3] < 0) && idx[4] < 0 {
		return nil, NewBuildError(ErrMalformedRow, t.Name, "word table has no verse_key, surah/ayah or location column")
	}
	out := make([]WordRow, 0, len(t.Rows))
	for i, row := range t.Rows {
		if err := checkWidth(t, i, row, width); err != nil {
			return nil, err
		}
		id, null, ok := asInt(row[idx[0]])
		if !ok || null || id < 1 || int64(id) > math.MaxUint32 {
			return nil, &BuildError{Kind: ErrMalformedRow, Table: t.Name, Row: i,
				Detail: fmt.Sprintf("word id %v is not a positive integer", row[idx[0]])}
		}
		key, err := wordVerse(row, idx)
		if err != nil {
			return nil, &BuildError{Kind: ErrMalformedRow, Table: t.Name, Row: i, Detail: err.Error()}
		}
		out = append(out, WordRow{ID: WordID(id), Verse: key})
	}
	return out, nil
}

func wordVerse(row []any, idx []int) (VerseKey, error) {
	if idx[1] >= 0 {
		if s, ok := asString(row[idx[1]]); ok && s != "" {
			return ParseVerseKey(s)
		}
	}
	if idx[2] >= 0 && idx[3] >= 0 {
		surah, sNull, sOK := asInt(row[idx[2]])
		ayah, aNull, aOK := asInt(row[idx[3]])
		if sOK && aOK && !sNull && !aNull {
			return NewVerseKey(surah, ayah)
		}
	}
	if idx[4] >= 0 {
		if s, ok := asString(row[idx[4]]); ok {
			parts := strings.Split(s, ":")
			if len(parts) == 3 {
				return ParseVerseKey(parts[0] + ":" + parts[1])
			}
		}
	}
	return VerseKey{}, errors.New("row has no usable verse reference")
}

// ParseTextTable converts a verse-keyed text table into typed keys.
func ParseTextTable(name string, tt TextTable) (map[VerseKey]string, error) {
	out := make(map[VerseKey]string, len(tt))
	for k, text := range tt {
		key, err := ParseVerseKey(k)
		if err != nil {
			return nil, NewBuildError(ErrMalformedRow, name, "bad verse key %q", k)
		}
		out[key] = text
	}
	return out, nil
}

func resolveColumns(t Table, specs []columnSpec) ([]int, int, error) {
	idx := make([]int, len(specs))
	if len(t.Columns) == 0 {
		for i := range specs {
			idx[i] = i
		}
		return idx, len(specs), nil
	}
	byName := make(map[string]int, len(t.Columns))
	for i, c := range t.Columns {
		byName[strings.ToLower(strings.TrimSpace(c))] = i
	}
	for i, spec := range specs {
		idx[i] = -1
		for _, alias := range spec.aliases {
			if j, ok := byName[alias]; ok {
				idx[i] = j
				break
			}
		}
		if idx[i] < 0 && !spec.optional {
			return nil, 0, NewBuildError(ErrMalformedRow, t.Name, "missing column %q", spec.name)
		}
	}
	return idx, len(t.Columns), nil
}

func checkWidth(t Table, i int, row []any, width int) error {
	if len(t.Columns) > 0 && len(row) != width {
		return &BuildError{Kind: ErrMalformedRow, Table: t.Name, Row: i,
			Detail: fmt.Sprintf("row has %d cells, table declares %d columns", len(row), width)}
	}
	if len(row) < width {
		return &BuildError{Kind: ErrMalformedRow, Table: t.Name, Row: i,
			Detail: fmt.Sprintf("row has %d cells, need at least %d", len(row), width)}
	}
	return nil
}

// asInt coerces a decoded cell to int. null reports a SQL/JSON null or an
// empty string; ok is false for values of the wrong type.
func asInt(v any) (n int, null bool, ok bool) {
	switch x := v.(type) {
	case nil:
		return 0, true, true
	case int:
		return x, false, true
	case int32:
		return int(x), false, true
	case int64:
		return int(x), false, true
	case uint32:
		return int(x), false, true
	case uint64:
		if x > math.MaxUint32 {
			return 0, false, false
		}
		return int(x), false, true
	case float64:
		if x != math.Trunc(x) {
			return 0, false, false
		}
		return int(x), false, true
	case float32:
		return asInt(float64(x))
	case json.Number:
		i, err := x.Int64()
		if err != nil {
			return 0, false, false
		}
		return int(i), false, true
	case []byte:
		return asInt(string(x))
	case string:
		s := strings.TrimSpace(x)
		if s == "" {
			return 0, true, true
		}
		i, err := strconv.Atoi(s)
		if err != nil {
			return 0, false, false
		}
		return i, false, true
	default:
		return 0, false, false
	}
}

func asBool(v any) (bool, bool) {
	switch x := v.(type) {
	case nil:
		return false, true
	case bool:
		return x, true
	case string:
		switch strings.ToLower(strings.TrimSpace(x)) {
		case "", "0", "false":
			return false, true
		case "1", "true":
			return true, true
		}
		return false, false
	}
	n, null, ok := asInt(v)
	if !ok {
		return false, false
	}
	if null {
		return false, true
	}
	return n != 0, n == 0 || n == 1
}

func asString(v any) (string, bool) {
	switch x := v.(type) {
	case string:
		return x, true
	case []byte:
		return string(x), true
	default:
		return "", false
	}
}
