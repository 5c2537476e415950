package dialog

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRecognizeDateTime(t *testing.T) {
	t.Run("iso literal", func(t *testing.T) {
		got := RecognizeDateTime("2026-09-15")
		require.Len(t, got, 1)
		assert.Equal(t, "2026-09-15", got[0].Value)
	})

	t.Run("ambiguous day and month yields both readings", func(t *testing.T) {
		got := RecognizeDateTime("03/04/2026")
		require.Len(t, got, 2)
		assert.Equal(t, "2026-03-04", got[0].Value, "month-first reading comes first")
		assert.Equal(t, "2026-04-03", got[1].Value)
	})

	t.Run("unambiguous slash literal yields one reading", func(t *testing.T) {
		got := RecognizeDateTime("15/04/2026")
		require.Len(t, got, 1)
		assert.Equal(t, "2026-04-15", got[0].Value)
	})

	t.Run("unparseable input yields none", func(t *testing.T) {
		assert.Empty(t, RecognizeDateTime("next blue moon please"))
	})

	t.Run("blank input yields none", func(t *testing.T) {
		assert.Empty(t, RecognizeDateTime("   "))
	})
}
