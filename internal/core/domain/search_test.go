package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseSearchField(t *testing.T) {
	for in, want := range map[string]SearchField{
		"":                FieldText,
		"text":            FieldText,
		" Translation ":   FieldTranslation,
		"TRANSLITERATION": FieldTransliteration,
	} {
		got, err := ParseSearchField(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got, in)
	}

	_, err := ParseSearchField("tafsir")
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestSearchQuery_Validate(t *testing.T) {
	tests := []struct {
		name    string
		query   SearchQuery
		wantErr bool
	}{
		{"plain", SearchQuery{Text: "mercy"}, false},
		{"all options", SearchQuery{Text: "mercy", Field: FieldTranslation, Surah: 114, Fuzzy: true, Limit: NoLimit}, false},
		{"zero limit", SearchQuery{Text: "mercy", Limit: 0}, false},
		{"blank", SearchQuery{Text: "  "}, true},
		{"bad field", SearchQuery{Text: "x", Field: "notes"}, true},
		{"surah too high", SearchQuery{Text: "x", Surah: 115}, true},
		{"negative surah", SearchQuery{Text: "x", Surah: -1}, true},
		{"limit below no limit", SearchQuery{Text: "x", Limit: -2}, true},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			err := tc.query.Validate()
			if tc.wantErr {
				assert.ErrorIs(t, err, ErrInvalidInput)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}
