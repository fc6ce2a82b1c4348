package gazetteer_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/yearspans/internal/gazetteer"
	"github.com/roach88/yearspans/internal/store"
	"github.com/roach88/yearspans/internal/testutil"
)

func openIndex(t *testing.T) (*store.Store, *gazetteer.Index) {
	t.Helper()
	st, err := store.Open(
		filepath.Join(t.TempDir(), "periods.db"),
		store.WithIDGenerator(testutil.NewSequentialIDGenerator("")),
	)
	require.NoError(t, err)
	t.Cleanup(func() { st.Close() })
	return st, gazetteer.NewIndex(st)
}

func TestImportTable(t *testing.T) {
	st, idx := openIndex(t)
	ctx := context.Background()

	files, err := gazetteer.BuiltinTables()
	require.NoError(t, err)
	var en *gazetteer.TableFile
	for _, f := range files {
		if f.Language == "en" {
			en = f
		}
	}
	require.NotNil(t, en)

	imp, err := gazetteer.ImportTable(ctx, st, "en.yaml", "", en)
	require.NoError(t, err)
	assert.Equal(t, "import-0001", imp.ID)
	assert.Equal(t, "p0kh9ds", imp.AuthorityID)
	assert.Equal(t, len(en.Periods), imp.PeriodCount)

	s, err := idx.Lookup(ctx, "  victorian", "p0kh9ds")
	require.NoError(t, err)
	assert.Equal(t, "1837/1901", s.SpanString())

	_, err = idx.Lookup(ctx, "Victorian", "p02chr4")
	assert.True(t, gazetteer.IsNotFound(err))

	_, err = idx.Lookup(ctx, "Hanoverian", "p0kh9ds")
	assert.True(t, gazetteer.IsNotFound(err))
}

func TestImportTable_AuthorityOverride(t *testing.T) {
	st, idx := openIndex(t)
	ctx := context.Background()

	f := &gazetteer.TableFile{Authority: "a1", Language: "en", Periods: []gazetteer.Period{
		{Label: "Hanoverian", Min: 1714, Max: 1837},
	}}
	imp, err := gazetteer.ImportTable(ctx, st, "local.yaml", "local", f)
	require.NoError(t, err)
	assert.Equal(t, "local", imp.AuthorityID)

	s, err := idx.Lookup(ctx, "Hanoverian", "local")
	require.NoError(t, err)
	assert.Equal(t, "1714/1837", s.SpanString())

	_, err = idx.Lookup(ctx, "Hanoverian", "a1")
	assert.True(t, gazetteer.IsNotFound(err))
}

func TestIndex_AuthorityIndependent(t *testing.T) {
	st, idx := openIndex(t)
	ctx := context.Background()

	_, err := gazetteer.ImportTable(ctx, st, "any.yaml", "", &gazetteer.TableFile{
		Periods: []gazetteer.Period{{Label: "Viking", Min: 793, Max: 1066}},
	})
	require.NoError(t, err)

	s, err := idx.Lookup(ctx, "VIKING", "p0kh9ds")
	require.NoError(t, err)
	assert.Equal(t, "0793/1066", s.SpanString())
}

func TestImportEntries(t *testing.T) {
	st, idx := openIndex(t)
	ctx := context.Background()

	data, err := os.Open(filepath.Join("testdata", "p0kh9ds.json"))
	require.NoError(t, err)
	defer data.Close()
	entries, err := gazetteer.ParsePeriodO(data)
	require.NoError(t, err)

	imp, err := gazetteer.ImportEntries(ctx, st, "p0kh9ds.json", "p0kh9ds", entries)
	require.NoError(t, err)
	assert.Equal(t, 4, imp.PeriodCount)
	assert.Equal(t, 0, imp.Skipped)

	s, err := idx.Lookup(ctx, "Romano-British", "p0kh9ds")
	require.NoError(t, err)
	assert.Equal(t, "0043/0410", s.SpanString())

	p, err := st.FindPeriod(ctx, "p0kh9ds", "romain")
	require.NoError(t, err)
	assert.Equal(t, "fr", p.Language)
	assert.Equal(t, gazetteer.DefaultPeriodOBaseURL+"p0kh9dsr0m", p.URI)

	again, err := gazetteer.ImportEntries(ctx, st, "p0kh9ds.json", "p0kh9ds", entries)
	require.NoError(t, err)
	assert.Equal(t, 0, again.PeriodCount)
	assert.Equal(t, 4, again.Skipped)
}
