package rules

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testTable() *Table {
	return NewTable("test", "",
		RuleSet{
			AuthorizedFolders:       PatternList{Simple(`sub-([0-9]+)`)},
			AuthorizedMetadataFiles: PatternList{Family("participants", `\.tsv`, `\.json`)},
			AuthorizedDataFiles:     PatternList{Family("data", `\.bin`)},
			MandatoryFiles:          PatternList{Family("participants", `\.tsv`), Simple("README")},
			MandatoryFolders:        PatternList{Simple(`sub-([0-9]+)`)},
		},
		RuleSet{},
	)
}

func TestCompile(t *testing.T) {
	t.Parallel()

	c, err := Compile(testTable())
	require.NoError(t, err)
	assert.Equal(t, 2, c.Depth())
	assert.False(t, c.Anchored())
	assert.True(t, c.HasLevel(0))
	assert.True(t, c.HasLevel(1))
	assert.False(t, c.HasLevel(2))
	assert.False(t, c.HasLevel(-1))
	assert.Equal(t, "test", c.Table().Name())
	assert.Len(t, c.Rules(0, CategoryMandatoryFiles), 2)
	assert.Nil(t, c.Rules(5, CategoryMandatoryFiles))
}

func TestCompile_InvalidExpression(t *testing.T) {
	t.Parallel()

	table := NewTable("broken", "", RuleSet{AuthorizedFolders: PatternList{Simple("sub-(")}})
	_, err := Compile(table)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrInvalidPattern)
	assert.Contains(t, err.Error(), "level 0")
	assert.Contains(t, err.Error(), string(CategoryAuthorizedFolders))
}

func TestCompiled_MatchAny(t *testing.T) {
	t.Parallel()

	tests := map[string]struct {
		anchored bool
		depth    int
		name     string
		cats     []Category
		want     bool
	}{
		"authorized folder": {
			depth: 0, name: "sub-01",
			cats: []Category{CategoryAuthorizedFolders},
			want: true,
		},
		"unauthorized folder": {
			depth: 0, name: "subject-01",
			cats: []Category{CategoryAuthorizedFolders},
			want: false,
		},
		"substring hit passes when unanchored": {
			depth: 0, name: "old-sub-01-copy",
			cats: []Category{CategoryAuthorizedFolders},
			want: true,
		},
		"substring hit fails when anchored": {
			anchored: true,
			depth:    0, name: "old-sub-01-copy",
			cats: []Category{CategoryAuthorizedFolders},
			want: false,
		},
		"anchored exact name": {
			anchored: true,
			depth:    0, name: "participants.json",
			cats: []Category{CategoryAuthorizedMetadata, CategoryAuthorizedData},
			want: true,
		},
		"union of metadata and data": {
			depth: 0, name: "data.bin",
			cats: []Category{CategoryAuthorizedMetadata, CategoryAuthorizedData},
			want: true,
		},
		"empty category never matches": {
			depth: 1, name: "anything",
			cats: []Category{CategoryAuthorizedFolders},
			want: false,
		},
		"depth outside table": {
			depth: 7, name: "sub-01",
			cats: []Category{CategoryAuthorizedFolders},
			want: false,
		},
	}

	for name, tt := range tests {
		tt := tt
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			c, err := Compile(testTable(), WithAnchored(tt.anchored))
			require.NoError(t, err)
			assert.Equal(t, tt.want, c.MatchAny(tt.depth, tt.name, tt.cats...))
		})
	}
}

func TestCompiled_Satisfied(t *testing.T) {
	t.Parallel()

	c := MustCompile(testTable())

	got := c.Satisfied(0, CategoryMandatoryFiles, []string{"participants.tsv", "notes.txt"})
	assert.Equal(t, []bool{true, false}, got)

	got = c.Satisfied(0, CategoryMandatoryFiles, nil)
	assert.Equal(t, []bool{false, false}, got)

	assert.Empty(t, c.Satisfied(1, CategoryMandatoryFiles, []string{"README"}))
	assert.Nil(t, c.Satisfied(3, CategoryMandatoryFiles, []string{"README"}))
}

func TestCompiled_ConcurrentUse(t *testing.T) {
	t.Parallel()

	c := MustCompile(Ephys())

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 100; j++ {
				assert.True(t, c.MatchAny(1, "ses-01", CategoryAuthorizedFolders))
			}
		}()
	}
	wg.Wait()
}

func TestMustCompile_Panics(t *testing.T) {
	t.Parallel()

	assert.Panics(t, func() {
		MustCompile(NewTable("broken", "", RuleSet{MandatoryFolders: PatternList{Simple("(")}}))
	})
}
