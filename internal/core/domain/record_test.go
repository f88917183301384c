package domain

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func strPtr(s string) *string { return &s }

func TestOutputRecord_IsEmpty(t *testing.T) {
	tests := []struct {
		name   string
		record OutputRecord
		want   bool
	}{
		{"zero value", OutputRecord{}, true},
		{"empty keyword map", OutputRecord{KeywordCounts: RepoKeywordMap{}}, true},
		{"optional set to empty string", OutputRecord{Location: strPtr("")}, true},
		{"owner only", OutputRecord{Owner: "x"}, false},
		{"optional set", OutputRecord{Wallet: strPtr("abc")}, false},
		{"keyword counts", OutputRecord{KeywordCounts: RepoKeywordMap{"k": {Count: 1}}}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.record.IsEmpty())
		})
	}
}

func TestOutputRecord_Backfill(t *testing.T) {
	columns := Columns{
		"location":     {"Berlin", "Lisbon"},
		"snapshot_url": {"https://github.com/a/b", "https://github.com/c/d"},
		"contact":      {"@alice"},
	}

	t.Run("fills empty and unset fields", func(t *testing.T) {
		r := OutputRecord{Owner: "acme"}

		r.Backfill(columns, []string{"location", "snapshot_url"}, 1)

		require.NotNil(t, r.Location)
		assert.Equal(t, "Lisbon", *r.Location)
		assert.Equal(t, "https://github.com/c/d", r.SnapshotURL)
	})

	t.Run("never overwrites non-empty fields", func(t *testing.T) {
		r := OutputRecord{SnapshotURL: "https://github.com/acme/widgets/tree/abc", Location: strPtr("Paris")}

		r.Backfill(columns, []string{"location", "snapshot_url"}, 0)

		assert.Equal(t, "Paris", *r.Location)
		assert.Equal(t, "https://github.com/acme/widgets/tree/abc", r.SnapshotURL)
	})

	t.Run("overwrites optional set to empty string", func(t *testing.T) {
		r := OutputRecord{Location: strPtr("")}

		r.Backfill(columns, []string{"location"}, 0)

		assert.Equal(t, "Berlin", *r.Location)
	})

	t.Run("ignores out of range rows and unknown fields", func(t *testing.T) {
		r := OutputRecord{}

		r.Backfill(columns, []string{"contact", "owner", "nonexistent"}, 1)

		assert.Nil(t, r.Contact)
		assert.Empty(t, r.Owner)
	})

	t.Run("skips blank cells", func(t *testing.T) {
		r := OutputRecord{}

		r.Backfill(Columns{"location": {""}}, []string{"location"}, 0)

		assert.Nil(t, r.Location)
	})

	t.Run("ignores missing columns", func(t *testing.T) {
		r := OutputRecord{}

		r.Backfill(columns, []string{"wallet"}, 0)

		assert.Nil(t, r.Wallet)
	})
}

func TestIsEnrichableField(t *testing.T) {
	assert.True(t, IsEnrichableField("snapshot_url"))
	assert.True(t, IsEnrichableField("wallet"))
	assert.False(t, IsEnrichableField("commit_sha"))
}

func TestOutputRecord_JSONFieldNames(t *testing.T) {
	r := OutputRecord{
		CommitSHA:      "abc",
		Owner:          "acme",
		RepoName:       "widgets",
		KeywordMatches: "1",
		KeywordCounts:  RepoKeywordMap{"k": {Count: 2, Files: []string{"f"}}},
	}

	data, err := json.Marshal(&r)
	require.NoError(t, err)

	var got map[string]any
	require.NoError(t, json.Unmarshal(data, &got))
	assert.Equal(t, "abc", got["commit_sha"])
	assert.Equal(t, "widgets", got["repo_name"])
	assert.Equal(t, "1", got["keyword_matches"])
	assert.Contains(t, got, "location")
	assert.Nil(t, got["location"])
	assert.Equal(t, map[string]any{"count": float64(2), "files": []any{"f"}}, got["keyword_counts"].(map[string]any)["k"])
}

func TestColumns_Value(t *testing.T) {
	c := Columns{"a": {"x", "y"}}

	v, ok := c.Value("a", 1)
	assert.True(t, ok)
	assert.Equal(t, "y", v)

	_, ok = c.Value("a", 2)
	assert.False(t, ok)
	_, ok = c.Value("a", -1)
	assert.False(t, ok)
	_, ok = c.Value("b", 0)
	assert.False(t, ok)
}
