// Package languages 提供内置语言表、按路径查找语言的注册中心以及带缓存的匹配器。
package languages

import (
	"path/filepath"
	"sort"
	"strings"
)

// LanguageDescriptor 用于对外展示语言、文件名、后缀与注释语法。
type LanguageDescriptor struct {
	Name       string
	Filenames  []string
	Extensions []string
	Comments   string
}

// Registry 管理语言注册与文件名/后缀映射。
// 构建完成后只读，无需加锁。
type Registry struct {
	languages   []*Language
	byName      map[string]*Language
	byFilename  map[string]*Language
	byExtension map[string]*Language
	// byFoldedExt 只收录声明了 CaseInsensitive 的语言，键为小写后缀。
	byFoldedExt map[string]*Language
}

// NewRegistry 使用内置语言表创建注册中心。
func NewRegistry() *Registry {
	return NewRegistryFrom(definitions)
}

// NewRegistryFrom 使用给定的语言表创建注册中心。
// 同一个文件名或后缀被多个语言声明时，先注册的语言生效。
func NewRegistryFrom(defs []Language) *Registry {
	registry := &Registry{
		languages:   make([]*Language, 0, len(defs)),
		byName:      make(map[string]*Language, len(defs)),
		byFilename:  make(map[string]*Language),
		byExtension: make(map[string]*Language),
		byFoldedExt: make(map[string]*Language),
	}

	for i := range defs {
		language := &defs[i]
		if _, exists := registry.byName[language.Name]; exists {
			continue
		}
		registry.languages = append(registry.languages, language)
		registry.byName[language.Name] = language

		for _, name := range language.Filenames {
			if _, taken := registry.byFilename[name]; !taken {
				registry.byFilename[name] = language
			}
		}
		for _, ext := range language.Extensions {
			if _, taken := registry.byExtension[ext]; !taken {
				registry.byExtension[ext] = language
			}
			if language.CaseInsensitive {
				folded := strings.ToLower(ext)
				if _, taken := registry.byFoldedExt[folded]; !taken {
					registry.byFoldedExt[folded] = language
				}
			}
		}
	}

	return registry
}

// Lookup 根据路径查找语言。
// 精确文件名优先于后缀；后缀默认区分大小写。
// 未识别的文件返回 false，调用方应静默跳过它。
func (r *Registry) Lookup(path string) (*Language, bool) {
	base := filepath.Base(path)
	if language, ok := r.byFilename[base]; ok {
		return language, true
	}

	ext := filepath.Ext(base)
	if ext == "" {
		return nil, false
	}
	if language, ok := r.byExtension[ext]; ok {
		return language, true
	}
	language, ok := r.byFoldedExt[strings.ToLower(ext)]
	return language, ok
}

// ByName 按语言名称查找。
func (r *Registry) ByName(name string) (*Language, bool) {
	language, ok := r.byName[name]
	return language, ok
}

// Len 返回已注册语言数量。
func (r *Registry) Len() int {
	return len(r.languages)
}

// Languages 返回已注册语言清单，按名称排序。
func (r *Registry) Languages() []LanguageDescriptor {
	result := make([]LanguageDescriptor, 0, len(r.languages))
	for _, language := range r.languages {
		filenames := append([]string(nil), language.Filenames...)
		extensions := append([]string(nil), language.Extensions...)
		sort.Strings(filenames)
		sort.Strings(extensions)
		result = append(result, LanguageDescriptor{
			Name:       language.Name,
			Filenames:  filenames,
			Extensions: extensions,
			Comments:   language.CommentSyntax(),
		})
	}

	sort.Slice(result, func(i int, j int) bool {
		return result[i].Name < result[j].Name
	})

	return result
}
