package rules

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func TestBuildRuleRegexp(t *testing.T) {
	t.Parallel()

	tests := map[string]struct {
		rule Pattern
		want []string
	}{
		"simple pattern is returned unchanged": {
			rule: Simple(`sub-([a-zA-Z0-9]+)`),
			want: []string{`sub-([a-zA-Z0-9]+)`},
		},
		"extension family concatenates base and suffix": {
			rule: Family("foo", ".tsv", ".json"),
			want: []string{"foo.tsv", "foo.json"},
		},
		"several bases produce the cartesian product": {
			rule: ExtensionFamily{Bases: []string{"a_", "b_"}, Extensions: []string{"x", "y", "z"}},
			want: []string{"a_x", "a_y", "a_z", "b_x", "b_y", "b_z"},
		},
		"family without extensions expands to nothing": {
			rule: ExtensionFamily{Bases: []string{"foo"}},
			want: []string{},
		},
	}

	for name, tt := range tests {
		tt := tt
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, BuildRuleRegexp(tt.rule))
		})
	}
}

func TestExpandAll(t *testing.T) {
	t.Parallel()

	got := ExpandAll([]Pattern{
		Family("foo", ".tsv", ".json"),
		Simple("README"),
	})
	assert.Equal(t, []string{"foo.tsv", "foo.json", "README"}, got)
}

func TestSearch(t *testing.T) {
	t.Parallel()

	tests := map[string]struct {
		pattern   string
		candidate string
		want      bool
		wantErr   bool
	}{
		"exact name": {
			pattern:   `participants\.tsv`,
			candidate: "participants.tsv",
			want:      true,
		},
		"match anywhere in the name": {
			pattern:   `sub-([a-zA-Z0-9]+)`,
			candidate: "old_sub-01_backup",
			want:      true,
		},
		"no match": {
			pattern:   `sub-([a-zA-Z0-9]+)`,
			candidate: "subject-01",
			want:      false,
		},
		"unescaped dot matches any character": {
			pattern:   "foo.tsv",
			candidate: "foo_tsv",
			want:      true,
		},
		"invalid expression": {
			pattern:   "sub-(",
			candidate: "sub-01",
			wantErr:   true,
		},
	}

	for name, tt := range tests {
		tt := tt
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			got, err := Search(tt.pattern, tt.candidate)
			if tt.wantErr {
				require.ErrorIs(t, err, ErrInvalidPattern)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestFromList(t *testing.T) {
	t.Parallel()

	tests := map[string]struct {
		raw     any
		want    Pattern
		wantErr bool
	}{
		"bare string": {
			raw:  "README",
			want: SimplePattern{Base: "README"},
		},
		"single element list": {
			raw:  []any{"ephys"},
			want: SimplePattern{Base: "ephys"},
		},
		"base with extensions": {
			raw:  []any{"foo", []any{".tsv", ".json"}},
			want: ExtensionFamily{Bases: []string{"foo"}, Extensions: []string{".tsv", ".json"}},
		},
		"several bases with extensions": {
			raw:  []any{"a", "b", []any{".tsv"}},
			want: ExtensionFamily{Bases: []string{"a", "b"}, Extensions: []string{".tsv"}},
		},
		"string slice": {
			raw:  []string{"ephys"},
			want: SimplePattern{Base: "ephys"},
		},
		"empty list": {
			raw:     []any{},
			wantErr: true,
		},
		"several bases without extension list": {
			raw:     []any{"a", "b"},
			wantErr: true,
		},
		"extension list alone": {
			raw:     []any{[]any{".tsv"}},
			wantErr: true,
		},
		"non string base": {
			raw:     []any{42, []any{".tsv"}},
			wantErr: true,
		},
		"unsupported type": {
			raw:     42,
			wantErr: true,
		},
	}

	for name, tt := range tests {
		tt := tt
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			got, err := FromList(tt.raw)
			if tt.wantErr {
				require.ErrorIs(t, err, ErrInvalidPattern)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestPattern_String(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "[README]", Simple("README").String())
	assert.Equal(t, "[foo, [.tsv, .json]]", Family("foo", ".tsv", ".json").String())
}

func TestPatternList_YAML(t *testing.T) {
	t.Parallel()

	doc := `
- "README"
- ["ephys"]
- ["participants", [".tsv", ".json"]]
`
	var list PatternList
	require.NoError(t, yaml.Unmarshal([]byte(doc), &list))
	require.Len(t, list, 3)
	assert.Equal(t, Simple("README"), list[0])
	assert.Equal(t, Simple("ephys"), list[1])
	assert.Equal(t, Family("participants", ".tsv", ".json"), list[2])

	out, err := yaml.Marshal(list)
	require.NoError(t, err)

	var again PatternList
	require.NoError(t, yaml.Unmarshal(out, &again))
	assert.Equal(t, list, again)
}

func TestPatternList_YAMLInvalid(t *testing.T) {
	t.Parallel()

	var list PatternList
	err := yaml.Unmarshal([]byte(`- ["a", "b"]`), &list)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrInvalidPattern)
}
