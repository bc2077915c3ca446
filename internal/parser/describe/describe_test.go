package describe

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/griffnb/ts-swag/internal/domain"
)

// fieldSpan locates a marker string inside source text and returns its
// extent, so tests read like the schemas they exercise.
func fieldSpan(t *testing.T, src, marker string) domain.Span {
	t.Helper()

	start := strings.Index(src, marker)
	if start < 0 {
		t.Fatalf("marker %q not found", marker)
	}
	return domain.Span{Start: start, End: start + len(marker)}
}

func TestResolve(t *testing.T) {
	t.Run("explicit wins over comments", func(t *testing.T) {
		src := `
/** The user's email address */
email: z.string().email(), // contact address
`
		span := fieldSpan(t, src, "email: z.string().email(),")
		got := Resolve([]byte(src), span, "Primary email")
		assert.Equal(t, "Primary email", got)
	})

	t.Run("doc comment", func(t *testing.T) {
		src := `
/** The user's email address */
email: z.string().email(),
`
		span := fieldSpan(t, src, "email: z.string().email(),")
		got := Resolve([]byte(src), span, "")
		assert.Equal(t, "The user's email address", got)
	})

	t.Run("multi line doc comment joins lines", func(t *testing.T) {
		src := `
/**
 * Number of results
 * per page.
 */
limit: z.number(),
`
		span := fieldSpan(t, src, "limit: z.number(),")
		got := Resolve([]byte(src), span, "")
		assert.Equal(t, "Number of results per page.", got)
	})

	t.Run("plain block comment", func(t *testing.T) {
		src := `
/* soft limit only */
limit: z.number(),
`
		span := fieldSpan(t, src, "limit: z.number(),")
		got := Resolve([]byte(src), span, "")
		assert.Equal(t, "soft limit only", got)
	})

	t.Run("trailing line comment", func(t *testing.T) {
		src := `
name: z.string(), // display name
age: z.number(),
`
		span := fieldSpan(t, src, "name: z.string(),")
		got := Resolve([]byte(src), span, "")
		assert.Equal(t, "display name", got)
	})

	t.Run("preceding comment beats trailing comment", func(t *testing.T) {
		src := `
/** from above */
name: z.string(), // from the side
`
		span := fieldSpan(t, src, "name: z.string(),")
		got := Resolve([]byte(src), span, "")
		assert.Equal(t, "from above", got)
	})

	t.Run("comment separated by code does not attach", func(t *testing.T) {
		src := `
/** belongs to name */
name: z.string(),
age: z.number(),
`
		span := fieldSpan(t, src, "age: z.number(),")
		got := Resolve([]byte(src), span, "")
		assert.Equal(t, "", got)
	})

	t.Run("no comment at all", func(t *testing.T) {
		src := `
name: z.string(),
`
		span := fieldSpan(t, src, "name: z.string(),")
		got := Resolve([]byte(src), span, "")
		assert.Equal(t, "", got)
	})
}

func TestStripQuotes(t *testing.T) {
	assert.Equal(t, "hello", StripQuotes(`"hello"`))
	assert.Equal(t, "hello", StripQuotes(`'hello'`))
	assert.Equal(t, "hello", StripQuotes("`hello`"))
	assert.Equal(t, "plain", StripQuotes("plain"))
	assert.Equal(t, `"mismatched'`, StripQuotes(`"mismatched'`))
}
