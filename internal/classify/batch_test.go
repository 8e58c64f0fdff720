package classify

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tallydesk/docintake/constants"
)

func TestDetectBatch(t *testing.T) {
	items := []BatchItem{
		{Text: dividendText, Path: "a.pdf"},
		{Text: "zzz qqq", Path: "b.txt"},
		{Text: "this agreement is made between the parties", Path: "c.pdf"},
	}

	c := NewClassifier(nil)
	results := c.DetectBatch(context.Background(), items, 2)

	require.Len(t, results, 3)
	for i, r := range results {
		assert.Equal(t, items[i].Path, r.Path)
		assert.NoError(t, r.Err)
	}
	assert.Equal(t, constants.DocTypeDividendStatement, results[0].Result.Type)
	assert.Equal(t, constants.DocTypeUnknown, results[1].Result.Type)
	assert.Equal(t, constants.MethodFallback, results[1].Result.Method)
	assert.Equal(t, constants.DocTypeContract, results[2].Result.Type)
}

func TestDetectBatchMatchesSequential(t *testing.T) {
	texts := []string{
		dividendText,
		"invoice with gst and amount due",
		"receipt cash change",
		"no signal here",
		"this agreement is made between the parties",
	}
	var items []BatchItem
	for i := 0; i < 50; i++ {
		items = append(items, BatchItem{
			Text: texts[i%len(texts)],
			Path: fmt.Sprintf("doc-%02d.txt", i),
		})
	}

	c := NewClassifier(nil)
	results := c.DetectBatch(context.Background(), items, 8)

	require.Len(t, results, len(items))
	for i, r := range results {
		require.NoError(t, r.Err)
		want := c.Detect(items[i].Text, items[i].Path)
		assert.Equal(t, want, r.Result, items[i].Path)
	}
}

func TestDetectBatchEmpty(t *testing.T) {
	c := NewClassifier(nil)
	assert.Empty(t, c.DetectBatch(context.Background(), nil, 4))
}

func TestDetectBatchCancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	items := []BatchItem{
		{Text: dividendText, Path: "a.txt"},
		{Text: dividendText, Path: "b.txt"},
	}
	c := NewClassifier(nil)
	results := c.DetectBatch(ctx, items, 2)

	require.Len(t, results, 2)
	for i, r := range results {
		assert.Equal(t, items[i].Path, r.Path)
		assert.ErrorIs(t, r.Err, context.Canceled)
	}
}
