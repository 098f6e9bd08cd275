package distill

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mvp-joe/distill/internal/language"
)

// Test Plan for Distiller:
// - Distill runs dispatch plus aggregation and stamps a unique run ID
// - Run IDs differ between runs
// - A cancelled run still returns the aggregated partial result

func goFactory() *language.Registry {
	r := language.NewEmptyRegistry()
	r.Register(language.NewGoExtractor())
	return r
}

func TestDistill_EndToEnd(t *testing.T) {
	// Test: files in, aggregated result out
	files := []FileInput{
		{Path: "pkg/user.go", Content: []byte("package pkg\n\ntype User struct {\n\tName string\n}\n")},
		{Path: "pkg/user_store.go", Content: []byte("package pkg\n\nfunc Save(u User) error { return nil }\n")},
		{Path: "NOTES.txt", Content: []byte("not source code")},
	}

	d := NewDistiller(4, language.ProcessingOptions{}, WithRegistryFactory(goFactory))
	result, err := d.Distill(context.Background(), files)

	require.NoError(t, err)
	require.NotNil(t, result)
	assert.NotEmpty(t, result.RunID)
	assert.Equal(t, 3, result.Structure.FileCount)
	assert.Len(t, result.APIs, 2)
	assert.Equal(t, map[string]int{"go": 2}, result.Structure.Languages)
	assert.Positive(t, result.Metadata.OriginalTokens)
}

func TestDistill_RunIDsAreUnique(t *testing.T) {
	// Test: each run gets its own identifier
	d := NewDistiller(1, language.ProcessingOptions{}, WithRegistryFactory(goFactory))

	first, err := d.Distill(context.Background(), nil)
	require.NoError(t, err)
	second, err := d.Distill(context.Background(), nil)
	require.NoError(t, err)

	assert.NotEqual(t, first.RunID, second.RunID)
}

func TestDistill_CancelledRunStillAggregates(t *testing.T) {
	// Test: cancellation returns a well-formed partial result and the error
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	started := make(chan struct{}, 4)
	gate := make(chan struct{})
	stub := &stubExtractor{language: "zig", patterns: []string{"*.zig"}}
	stub.extract = func(ctx context.Context, path string, content []byte) (*language.RawExtraction, error) {
		started <- struct{}{}
		<-gate
		return &language.RawExtraction{}, nil
	}

	files := []FileInput{
		{Path: "a.zig", Content: []byte("a")},
		{Path: "b.zig", Content: []byte("b")},
		{Path: "c.zig", Content: []byte("c")},
	}

	d := NewDistiller(1, language.ProcessingOptions{}, WithRegistryFactory(func() *language.Registry {
		r := language.NewEmptyRegistry()
		r.Register(stub)
		return r
	}))

	done := make(chan struct{})
	var result *Result
	var err error
	go func() {
		defer close(done)
		result, err = d.Distill(ctx, files)
	}()

	// The single worker holds the first file; the submitter is stuck on the
	// second. Cancelling now stops submission, then the gate lets the
	// in-flight file drain.
	<-started
	cancel()
	time.Sleep(50 * time.Millisecond)
	close(gate)
	<-done

	assert.ErrorIs(t, err, context.Canceled)
	require.NotNil(t, result)
	assert.NotEmpty(t, result.RunID)
	assert.Less(t, result.Structure.FileCount, len(files))
}
