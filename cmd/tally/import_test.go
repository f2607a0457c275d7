package main

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Veraticus/tally/internal/common"
	"github.com/Veraticus/tally/internal/ledger"
	"github.com/Veraticus/tally/internal/model"
	"github.com/Veraticus/tally/internal/testutil"
)

const testStatement = `OFXHEADER:100
DATA:OFXSGML
VERSION:102
SECURITY:NONE
ENCODING:USASCII
CHARSET:1252
COMPRESSION:NONE
OLDFILEUID:NONE
NEWFILEUID:NONE

<OFX>
<SIGNONMSGSRSV1>
<SONRS>
<STATUS>
<CODE>0
<SEVERITY>INFO
</STATUS>
<DTSERVER>20250315120000[0:GMT]
<LANGUAGE>ENG
</SONRS>
</SIGNONMSGSRSV1>
<BANKMSGSRSV1>
<STMTTRNRS>
<TRNUID>1
<STATUS>
<CODE>0
<SEVERITY>INFO
</STATUS>
<STMTRS>
<CURDEF>USD
<BANKACCTFROM>
<BANKID>123456789
<ACCTID>5555
<ACCTTYPE>SAVINGS
</BANKACCTFROM>
<BANKTRANLIST>
<DTSTART>20250301120000[0:GMT]
<DTEND>20250331120000[0:GMT]
<STMTTRN>
<TRNTYPE>INT
<DTPOSTED>20250331120000[0:GMT]
<TRNAMT>3.21
<FITID>S1
<NAME>INTEREST PAYMENT
</STMTTRN>
<STMTTRN>
<TRNTYPE>FEE
<DTPOSTED>20250310120000[0:GMT]
<TRNAMT>-5.00
<FITID>S2
<NAME>MONTHLY SERVICE FEE
</STMTTRN>
</BANKTRANLIST>
<LEDGERBAL>
<BALAMT>1938.21
<DTASOF>20250331120000[0:GMT]
</LEDGERBAL>
</STMTRS>
</STMTTRNRS>
</BANKMSGSRSV1>
</OFX>`

func writeFiles(t *testing.T, dir string, files map[string]string) {
	t.Helper()

	for name, content := range files {
		path := filepath.Join(dir, name)
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0750))
		require.NoError(t, os.WriteFile(path, []byte(content), 0600))
	}
}

func TestCollectStatementFiles(t *testing.T) {
	dir := t.TempDir()
	writeFiles(t, dir, map[string]string{
		"checking.ofx":           "x",
		"savings.OFX":            "x",
		"credit.qfx":             "x",
		"report.pdf":             "x",
		"subdir/another.ofx":     "x",
		"subdir/nested/deep.QFX": "x",
	})

	tests := []struct {
		name    string
		args    []string
		want    []string
		wantErr bool
	}{
		{
			name: "directory is walked recursively",
			args: []string{dir},
			want: []string{
				filepath.Join(dir, "checking.ofx"),
				filepath.Join(dir, "credit.qfx"),
				filepath.Join(dir, "savings.OFX"),
				filepath.Join(dir, "subdir", "another.ofx"),
				filepath.Join(dir, "subdir", "nested", "deep.QFX"),
			},
		},
		{
			name: "glob pattern",
			args: []string{filepath.Join(dir, "*.ofx")},
			want: []string{filepath.Join(dir, "checking.ofx")},
		},
		{
			name: "explicit file is taken as is",
			args: []string{filepath.Join(dir, "report.pdf")},
			want: []string{filepath.Join(dir, "report.pdf")},
		},
		{
			name: "duplicates collapse",
			args: []string{filepath.Join(dir, "credit.qfx"), filepath.Join(dir, "credit.qfx")},
			want: []string{filepath.Join(dir, "credit.qfx")},
		},
		{
			name:    "nothing found",
			args:    []string{filepath.Join(dir, "missing", "*.ofx")},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := collectStatementFiles(tt.args)
			if tt.wantErr {
				require.Error(t, err)
				assert.ErrorIs(t, err, common.ErrNotFound)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestImportStatements(t *testing.T) {
	dir := t.TempDir()
	writeFiles(t, dir, map[string]string{
		"march.ofx":  testStatement,
		"broken.ofx": "not an ofx file",
	})
	files := []string{filepath.Join(dir, "march.ofx"), filepath.Join(dir, "broken.ofx")}

	t.Run("adds and reports per file", func(t *testing.T) {
		l := ledger.New()
		results := importStatements(context.Background(), l, files, true, nil)

		require.Len(t, results, 2)
		assert.Equal(t, "march.ofx", results[0].Name)
		assert.Equal(t, 2, results[0].Found)
		assert.Equal(t, 2, results[0].Added)
		assert.NoError(t, results[0].Err)
		assert.Error(t, results[1].Err)
		assert.Equal(t, 2, l.Count())
	})

	t.Run("skips transactions already in the ledger", func(t *testing.T) {
		l := ledger.New()
		importStatements(context.Background(), l, files[:1], true, nil)
		results := importStatements(context.Background(), l, files[:1], true, nil)

		assert.Equal(t, 0, results[0].Added)
		assert.Equal(t, 2, results[0].Duplicates)
		assert.Equal(t, 2, l.Count())
	})

	t.Run("allow duplicates", func(t *testing.T) {
		l := ledger.New()
		importStatements(context.Background(), l, files[:1], false, nil)
		importStatements(context.Background(), l, files[:1], false, nil)

		assert.Equal(t, 4, l.Count())
	})

	t.Run("canceled context stops early", func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		l := ledger.New()
		results := importStatements(ctx, l, files, true, nil)
		assert.Empty(t, results)
		assert.Equal(t, 0, l.Count())
	})
}

func TestDedupKeyKeepsFieldsApart(t *testing.T) {
	date := testutil.Date(t, "2025-03-01")

	a := model.NewTransaction(-5, "a|b", "c", date)
	b := model.NewTransaction(-5, "a", "b|c", date)
	assert.NotEqual(t, dedupKey(a), dedupKey(b))
	assert.Equal(t, dedupKey(a), dedupKey(model.NewTransaction(-5, "a|b", "c", date)))

	existing := map[importKey]int{dedupKey(a): 1}
	assert.Zero(t, existing[dedupKey(b)], "a pipe in a field must not match another transaction")
}

func TestImportCommand(t *testing.T) {
	t.Run("imports and saves", func(t *testing.T) {
		path := setupPaths(t)
		seedLedger(t, path)
		dir := t.TempDir()
		writeFiles(t, dir, map[string]string{"march.ofx": testStatement})

		out, err := runCommand(t, importCmd(), "", dir)
		require.NoError(t, err)
		assert.Contains(t, out, "march.ofx: 2 found, 2 added, 0 duplicates")
		assert.Contains(t, out, "Imported 2 transactions")

		all := readLedger(t, path).All()
		require.Len(t, all, 5)
		assert.InDelta(t, 3.21, all[3].Amount(), 0.001)
		assert.InDelta(t, -5.00, all[4].Amount(), 0.001)

		out, err = runCommand(t, importCmd(), "", dir)
		require.NoError(t, err)
		assert.Contains(t, out, "Nothing new to import.")
		assert.Equal(t, 5, readLedger(t, path).Count())
	})

	t.Run("dry run does not save", func(t *testing.T) {
		path := setupPaths(t)
		dir := t.TempDir()
		writeFiles(t, dir, map[string]string{"march.qfx": testStatement})

		out, err := runCommand(t, importCmd(), "", "--dry-run", dir)
		require.NoError(t, err)
		assert.Contains(t, out, "Dry run: 2 transactions would be added.")

		_, statErr := os.Stat(path)
		assert.True(t, os.IsNotExist(statErr))
	})

	t.Run("no files", func(t *testing.T) {
		setupPaths(t)

		_, err := runCommand(t, importCmd(), "", filepath.Join(t.TempDir(), "*.ofx"))
		require.Error(t, err)
		assert.Equal(t, "No statement files found to import.", common.UserMessage(err))
	})
}
