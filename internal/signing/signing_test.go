package signing

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSign(t *testing.T) {
	t.Run("known vectors", func(t *testing.T) {
		assert.Equal(t, "3343a5214433422faa3ddc67cfec59f9fdf61ca5", Sign("salt", "token", "secret"))
		assert.Equal(t, "dafa73d864cfa9228e6764d281ce5727ad952216", Sign("1700000000000", "T", "S"))
	})

	t.Run("deterministic", func(t *testing.T) {
		first := Sign("1700000000000", "T", "S")
		second := Sign("1700000000000", "T", "S")
		assert.Equal(t, first, second)
	})

	t.Run("changing any input changes the digest", func(t *testing.T) {
		base := Sign("1700000000000", "T", "S")
		assert.NotEqual(t, base, Sign("1700000000001", "T", "S"))
		assert.NotEqual(t, base, Sign("1700000000000", "T2", "S"))
		assert.NotEqual(t, base, Sign("1700000000000", "T", "S2"))
	})

	t.Run("lowercase hex", func(t *testing.T) {
		sig := Sign("a", "b", "c")
		require.Len(t, sig, 40)
		for _, r := range sig {
			assert.True(t, (r >= '0' && r <= '9') || (r >= 'a' && r <= 'f'))
		}
	})
}

func TestSaltSource_Next(t *testing.T) {
	t.Run("consecutive salts differ", func(t *testing.T) {
		var src SaltSource
		seen := make(map[string]bool)
		for range 1000 {
			salt := src.Next()
			require.False(t, seen[salt], "salt %s issued twice", salt)
			seen[salt] = true
		}
	})

	t.Run("unique under concurrency", func(t *testing.T) {
		var src SaltSource
		var mu sync.Mutex
		seen := make(map[string]bool)

		var wg sync.WaitGroup
		for range 8 {
			wg.Add(1)
			go func() {
				defer wg.Done()
				for range 200 {
					salt := src.Next()
					mu.Lock()
					if seen[salt] {
						mu.Unlock()
						t.Errorf("salt %s issued twice", salt)
						return
					}
					seen[salt] = true
					mu.Unlock()
				}
			}()
		}
		wg.Wait()
	})
}
