package jsonfile

import (
	"encoding/json"
	"errors"
	"fmt"
	"slices"
	"sort"
	"strconv"

	"github.com/custodia-labs/mushaf/internal/core/domain"
)

// dump is a SQLite database exported as JSON:
//
//	{"objects":[{"type":"table","name":"pages","columns":[{"name":"page_number"},...],"rows":[[1,1,"ayah",0,1,7,null],...]}]}
type dump struct {
	Objects []dumpObject `json:"objects"`
}

type dumpObject struct {
	Type    string            `json:"type"`
	Name    string            `json:"name"`
	Columns []json.RawMessage `json:"columns"`
	Rows    [][]any           `json:"rows"`
}

// table returns the named table of the dump.
func (d *dump) table(name string) (domain.Table, bool, error) {
	for _, obj := range d.Objects {
		if obj.Name != name || (obj.Type != "" && obj.Type != "table") {
			continue
		}
		cols, err := columnNames(obj.Columns)
		if err != nil {
			return domain.Table{}, false, fmt.Errorf("table %s: %w", name, err)
		}
		return domain.Table{Name: name, Columns: cols, Rows: obj.Rows}, true, nil
	}
	return domain.Table{}, false, nil
}

// columnNames accepts columns as plain strings or as {"name": ...} objects.
func columnNames(raw []json.RawMessage) ([]string, error) {
	cols := make([]string, 0, len(raw))
	for _, r := range raw {
		var s string
		if err := json.Unmarshal(r, &s); err == nil {
			cols = append(cols, s)
			continue
		}
		var obj struct {
			Name string `json:"name"`
		}
		if err := json.Unmarshal(r, &obj); err != nil || obj.Name == "" {
			return nil, fmt.Errorf("column %s has no name", string(r))
		}
		cols = append(cols, obj.Name)
	}
	return cols, nil
}

// objectsTable turns a list of JSON objects into a table whose columns are
// the sorted union of the object keys.
func objectsTable(name string, objs []map[string]any) domain.Table {
	seen := make(map[string]bool)
	for _, o := range objs {
		for k := range o {
			seen[k] = true
		}
	}
	cols := make([]string, 0, len(seen))
	for k := range seen {
		cols = append(cols, k)
	}
	sort.Strings(cols)

	t := domain.Table{Name: name, Columns: cols, Rows: make([][]any, 0, len(objs))}
	for _, o := range objs {
		row := make([]any, len(cols))
		for i, c := range cols {
			row[i] = o[c]
		}
		t.Rows = append(t.Rows, row)
	}
	return t
}

// objectList accepts an array of objects, an object of objects keyed by
// id, or an object wrapping either under one of wrappers. Keyed entries
// come back in numeric key order when the keys are numbers.
func objectList(doc any, wrappers ...string) ([]map[string]any, error) {
	switch v := doc.(type) {
	case []any:
		out := make([]map[string]any, 0, len(v))
		for i, item := range v {
			obj, ok := item.(map[string]any)
			if !ok {
				return nil, fmt.Errorf("entry %d is not an object", i)
			}
			out = append(out, obj)
		}
		return out, nil
	case map[string]any:
		for _, w := range wrappers {
			if inner, ok := v[w]; ok {
				return objectList(inner)
			}
		}
		keys := make([]string, 0, len(v))
		for k := range v {
			keys = append(keys, k)
		}
		sortKeys(keys)
		out := make([]map[string]any, 0, len(v))
		for _, k := range keys {
			obj, ok := v[k].(map[string]any)
			if !ok {
				return nil, fmt.Errorf("entry %q is not an object", k)
			}
			out = append(out, obj)
		}
		return out, nil
	default:
		return nil, errors.New("expected an array or object")
	}
}

func sortKeys(keys []string) {
	slices.SortFunc(keys, func(a, b string) int {
		ai, aerr := strconv.Atoi(a)
		bi, berr := strconv.Atoi(b)
		if aerr == nil && berr == nil {
			return ai - bi
		}
		if a < b {
			return -1
		}
		if a > b {
			return 1
		}
		return 0
	})
}

// textTable reads verse-keyed text in any of the shapes the corpus uses:
//
//	{"1:1": "text"}
//	{"1:1": {"text": "text"}}
//	{"1": {"verse_key": "1:1", "text": "text"}}
//	{"verses": [{"verse_key": "1:1", "text": "text"}]}
func textTable(doc any) (domain.TextTable, error) {
	obj, isObj := doc.(map[string]any)
	if isObj {
		if _, wrapped := obj["verses"]; !wrapped {
			return keyedText(obj)
		}
	}
	list, err := objectList(doc, "verses")
	if err != nil {
		return nil, err
	}
	out := make(domain.TextTable, len(list))
	for i, item := range list {
		key, ok := item["verse_key"].(string)
		if !ok {
			return nil, fmt.Errorf("entry %d has no verse_key", i)
		}
		text, _ := item["text"].(string)
		out[key] = text
	}
	return out, nil
}

func keyedText(obj map[string]any) (domain.TextTable, error) {
	out := make(domain.TextTable, len(obj))
	for k, v := range obj {
		switch x := v.(type) {
		case string:
			out[k] = x
		case map[string]any:
			key := k
			if vk, ok := x["verse_key"].(string); ok {
				key = vk
			}
			text, ok := x["text"].(string)
			if !ok {
				return nil, fmt.Errorf("entry %q has no text", k)
			}
			out[key] = text
		default:
			return nil, fmt.Errorf("entry %q is neither text nor an object", k)
		}
	}
	return out, nil
}

// surahList reads surah metadata from an array, an object keyed by
// number, or a {"chapters": [...]} wrapper.
func surahList(doc any) ([]domain.SurahInfo, error) {
	list, err := objectList(doc, "chapters")
	if err != nil {
		return nil, err
	}
	out := make([]domain.SurahInfo, 0, len(list))
	for i, item := range list {
		raw, err := json.Marshal(item)
		if err != nil {
			return nil, err
		}
		var s domain.SurahInfo
		if err := json.Unmarshal(raw, &s); err != nil {
			return nil, fmt.Errorf("surah entry %d: %w", i, err)
		}
		if _, ok := item["bismillah_pre"]; !ok {
			s.BismillahPre = s.Number != 1 && s.Number != 9
		}
		out = append(out, s)
	}
	return out, nil
}
