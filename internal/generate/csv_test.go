package generate

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFromCSV(t *testing.T) {
	t.Parallel()

	sheet, err := FromCSV(strings.NewReader(
		"subject_id,session_id,species,sex\n" +
			"sub-01,ses-a,mus musculus,F\n" +
			"01,b,,\n" +
			",,,\n" +
			"rat2,ses-1,rattus norvegicus,M\n"))
	require.NoError(t, err)

	assert.Equal(t, []string{"species", "sex"}, sheet.Attributes)
	assert.Equal(t, []string{"01", "rat2"}, sheet.Subjects())
	assert.Equal(t, []string{"a", "b"}, sheet.Sessions("01"))
	require.Len(t, sheet.Entries, 3)
	assert.Equal(t, map[string]string{"species": "mus musculus", "sex": "F"}, sheet.Entries[1].Attributes,
		"attributes are merged across rows of the same subject")
	assert.Equal(t, "rat2", sheet.Entries[2].Subject)
	assert.Equal(t, "1", sheet.Entries[2].Session)
}

func TestFromCSV_HeaderIsCaseInsensitive(t *testing.T) {
	t.Parallel()

	sheet, err := FromCSV(strings.NewReader(" Session_ID , SUBJECT_ID \nx,y\n"))
	require.NoError(t, err)
	require.Len(t, sheet.Entries, 1)
	assert.Equal(t, "y", sheet.Entries[0].Subject)
	assert.Equal(t, "x", sheet.Entries[0].Session)
	assert.Empty(t, sheet.Attributes)
}

func TestFromCSV_Errors(t *testing.T) {
	t.Parallel()

	tests := map[string]struct {
		input   string
		wantErr []string
	}{
		"empty input": {
			input:   "",
			wantErr: []string{"empty sheet"},
		},
		"missing session column": {
			input:   "subject_id,species\n01,mouse\n",
			wantErr: []string{"header must contain subject_id and session_id"},
		},
		"duplicate attribute column": {
			input:   "subject_id,session_id,age,AGE\n",
			wantErr: []string{`duplicate column "age"`},
		},
		"unnamed column": {
			input:   "subject_id,session_id,\n01,01,x\n",
			wantErr: []string{"column 3 has no name"},
		},
		"header only": {
			input:   "subject_id,session_id\n",
			wantErr: []string{"no sessions"},
		},
		"every bad row is reported": {
			input: "subject_id,session_id\n" +
				"sub_01,01\n" +
				"02,\n" +
				"03,01\n" +
				"03,ses-01\n",
			wantErr: []string{
				`line 2: subject_id: label "sub_01" must be alphanumeric`,
				"line 3: session_id: missing label",
				"line 5: sub-03 ses-01 already defined on line 4",
			},
		},
		"conflicting participant attributes": {
			input:   "subject_id,session_id,sex\n01,01,F\n01,02,M\n",
			wantErr: []string{`line 3: sub-01 has conflicting sex values "F" and "M"`},
		},
	}

	for name, tt := range tests {
		tt := tt
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			_, err := FromCSV(strings.NewReader(tt.input))
			require.Error(t, err)
			assert.ErrorIs(t, err, ErrInvalidMetadata)
			for _, want := range tt.wantErr {
				assert.Contains(t, err.Error(), want)
			}
		})
	}
}
