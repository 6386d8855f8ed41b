package corpus_test

import (
	"context"
	"math"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/oklog/ulid/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cognicore/tokensim/pkg/tokensim/corpus"
	"github.com/cognicore/tokensim/pkg/tokensim/corpus/memstore"
	"github.com/cognicore/tokensim/pkg/tokensim/internalerr"
	"github.com/cognicore/tokensim/pkg/tokensim/tokenize"
)

func newCorpus(t *testing.T) *corpus.Corpus {
	t.Helper()
	c, err := corpus.New(memstore.New(), tokenize.NewWords(nil))
	require.NoError(t, err)
	return c
}

func TestIDF(t *testing.T) {
	ctx := context.Background()
	c := newCorpus(t)

	for _, text := range []string{"the red fox", "the grey wolf", "a red kite", "the end"} {
		_, err := c.AddDocument(ctx, text)
		require.NoError(t, err)
	}

	n, err := c.DocumentCount(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(4), n)

	idf, err := c.IDF(ctx, "the")
	require.NoError(t, err)
	assert.InDelta(t, math.Log1p(5.0/3), idf, 1e-12)

	idf, err = c.IDF(ctx, "wolf")
	require.NoError(t, err)
	assert.InDelta(t, math.Log(6), idf, 1e-12)

	idf, err = c.IDF(ctx, "zebra")
	require.NoError(t, err)
	assert.Equal(t, 0.0, idf, "unknown tokens have no weight")
}

func TestIDFEmptyCorpus(t *testing.T) {
	idf, err := newCorpus(t).IDF(context.Background(), "anything")
	require.NoError(t, err)
	assert.Equal(t, 0.0, idf)
}

func TestRepeatedTokensCountOncePerDocument(t *testing.T) {
	ctx := context.Background()
	c := newCorpus(t)

	id, err := c.AddDocument(ctx, "buffalo buffalo buffalo")
	require.NoError(t, err)

	df, err := c.DocumentFrequency(ctx, "buffalo")
	require.NoError(t, err)
	assert.Equal(t, int64(1), df)

	doc, err := c.Store().Document(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, []string{"buffalo"}, doc.Tokens)
	assert.Equal(t, 3, doc.Length)
}

func TestDocumentIDsAreMonotonicULIDs(t *testing.T) {
	ctx := context.Background()
	fixed := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	c, err := corpus.New(memstore.New(), nil, corpus.WithClock(func() time.Time { return fixed }))
	require.NoError(t, err)

	var ids []string
	for i := 0; i < 5; i++ {
		id, err := c.AddDocument(ctx, "same text")
		require.NoError(t, err)
		ids = append(ids, id)
	}

	for i, id := range ids {
		parsed, err := ulid.ParseStrict(id)
		require.NoError(t, err)
		assert.Equal(t, ulid.Timestamp(fixed), parsed.Time())
		if i > 0 {
			assert.Less(t, ids[i-1], id, "ids sort in insertion order")
		}
	}

	doc, err := c.Store().Document(ctx, ids[0])
	require.NoError(t, err)
	assert.True(t, fixed.Equal(doc.AddedAt))
}

func TestConcurrentAdds(t *testing.T) {
	ctx := context.Background()
	c := newCorpus(t)

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := c.AddDocument(ctx, "shared token")
			assert.NoError(t, err)
		}()
	}
	wg.Wait()

	df, err := c.DocumentFrequency(ctx, "shared")
	require.NoError(t, err)
	assert.Equal(t, int64(20), df)
}

func TestAddHTML(t *testing.T) {
	ctx := context.Background()
	c := newCorpus(t)

	page := `<html><head><title>Fox news</title><style>p{color:red}</style></head>
<body><p>The quick <b>brown</b> fox</p><script>var jumps = 1;</script></body></html>`
	id, err := c.AddHTML(ctx, strings.NewReader(page))
	require.NoError(t, err)

	doc, err := c.Store().Document(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, []string{"fox", "news", "the", "quick", "brown"}, doc.Tokens)
}

func TestExtractText(t *testing.T) {
	text, err := corpus.ExtractText(strings.NewReader(`<div>alpha<span> beta </span><noscript>x</noscript>gamma</div>`))
	require.NoError(t, err)
	assert.Equal(t, "alpha beta gamma", text)
}

func TestNewRequiresStore(t *testing.T) {
	_, err := corpus.New(nil, nil)
	assert.ErrorIs(t, err, internalerr.ErrInvalidConfig)
}

func TestMissingDocument(t *testing.T) {
	_, err := newCorpus(t).Store().Document(context.Background(), "01HZZZZZZZZZZZZZZZZZZZZZZZ")
	assert.ErrorIs(t, err, internalerr.ErrNotFound)
}

func TestDistinct(t *testing.T) {
	assert.Equal(t, []string{"b", "a"}, corpus.Distinct([]string{"b", "", "a", "b"}))
	assert.Nil(t, corpus.Distinct(nil))
}
