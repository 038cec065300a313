package languages

import (
	"fmt"
	"path/filepath"

	lru "github.com/hashicorp/golang-lru/v2"
)

// DefaultMatcherCacheSize 是匹配器缓存的默认容量。
const DefaultMatcherCacheSize = 4096

// Matcher 把文件路径映射到零个或一个语言。
// 查找结果只取决于文件名，因此按 base name 缓存，未命中（nil）同样缓存。
// Matcher 可以被多个 goroutine 并发使用。
type Matcher struct {
	registry *Registry
	cache    *lru.Cache[string, *Language]
}

// NewMatcher 创建匹配器，size <= 0 时使用默认容量。
func NewMatcher(registry *Registry, size int) (*Matcher, error) {
	if size <= 0 {
		size = DefaultMatcherCacheSize
	}
	cache, err := lru.New[string, *Language](size)
	if err != nil {
		return nil, fmt.Errorf("create matcher cache: %w", err)
	}
	return &Matcher{registry: registry, cache: cache}, nil
}

// Match 返回路径对应的语言。
func (m *Matcher) Match(path string) (*Language, bool) {
	base := filepath.Base(path)
	if language, ok := m.cache.Get(base); ok {
		return language, language != nil
	}

	language, ok := m.registry.Lookup(base)
	if !ok {
		language = nil
	}
	m.cache.Add(base, language)
	return language, ok
}

// Registry 返回底层注册中心。
func (m *Matcher) Registry() *Registry {
	return m.registry
}
