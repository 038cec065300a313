package languages

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMatcherCachesHitsAndMisses(t *testing.T) {
	t.Parallel()

	matcher, err := NewMatcher(NewRegistry(), 8)
	require.NoError(t, err)

	language, ok := matcher.Match("a/b/main.go")
	require.True(t, ok)
	assert.Equal(t, "Go", language.Name)

	// 不同目录下的同名文件命中同一个缓存项。
	language, ok = matcher.Match("other/main.go")
	require.True(t, ok)
	assert.Equal(t, "Go", language.Name)

	_, ok = matcher.Match("notes.txt")
	assert.False(t, ok)
	_, ok = matcher.Match("again/notes.txt")
	assert.False(t, ok)

	assert.Equal(t, 2, matcher.cache.Len())
}

func TestMatcherConcurrentUse(t *testing.T) {
	t.Parallel()

	matcher, err := NewMatcher(NewRegistry(), 0)
	require.NoError(t, err)

	paths := []string{"a.go", "b.py", "c.rs", "Makefile", "d.unknown"}

	var group sync.WaitGroup
	for i := 0; i < 16; i++ {
		group.Add(1)
		go func() {
			defer group.Done()
			for _, path := range paths {
				matcher.Match(path)
			}
		}()
	}
	group.Wait()

	language, ok := matcher.Match("Makefile")
	require.True(t, ok)
	assert.Equal(t, "Makefile", language.Name)
}
