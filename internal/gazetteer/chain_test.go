package gazetteer_test

import (
	"context"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/yearspans/internal/gazetteer"
	"github.com/roach88/yearspans/internal/testutil"
)

func TestChain(t *testing.T) {
	first := testutil.NewFakeGazetteer(map[string][2]int{"Roman": {43, 410}})
	second := testutil.NewFakeGazetteer(map[string][2]int{"Roman": {-27, 476}, "Viking": {793, 1066}})
	chain := gazetteer.Chain{nil, first, second}
	ctx := context.Background()

	s, err := chain.Lookup(ctx, "Roman", "")
	require.NoError(t, err)
	assert.Equal(t, "0043/0410", s.SpanString())
	assert.Equal(t, 0, second.Calls())

	s, err = chain.Lookup(ctx, "Viking", "")
	require.NoError(t, err)
	assert.Equal(t, "0793/1066", s.SpanString())

	_, err = chain.Lookup(ctx, "Atlantean", "")
	assert.True(t, gazetteer.IsNotFound(err))
}

func TestChain_FailureDoesNotHideLaterHit(t *testing.T) {
	broken := testutil.NewFakeGazetteer(nil)
	broken.Err = errors.New("database is locked")
	good := testutil.NewFakeGazetteer(map[string][2]int{"Tudor": {1485, 1603}})
	chain := gazetteer.Chain{broken, good}
	ctx := context.Background()

	s, err := chain.Lookup(ctx, "Tudor", "")
	require.NoError(t, err)
	assert.Equal(t, "1485/1603", s.SpanString())

	_, err = chain.Lookup(ctx, "Atlantean", "")
	require.Error(t, err)
	assert.EqualError(t, err, "database is locked")
}

func TestChain_Empty(t *testing.T) {
	_, err := gazetteer.Chain{}.Lookup(context.Background(), "Roman", "")
	assert.True(t, gazetteer.IsNotFound(err))
}

func TestChain_CancelledContext(t *testing.T) {
	fake := testutil.NewFakeGazetteer(map[string][2]int{"Roman": {43, 410}})
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := gazetteer.Chain{fake}.Lookup(ctx, "Roman", "")
	assert.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, 0, fake.Calls())
}
