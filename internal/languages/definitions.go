package languages

// 常用的语法片段，多个语言共享。
var (
	cBlock       = []Delimiter{{Open: "/*", Close: "*/"}}
	xmlBlock     = []Delimiter{{Open: "<!--", Close: "-->"}}
	doubleQuoted = Quote{Open: `"`, Close: `"`, Escape: '\\'}
	singleQuoted = Quote{Open: "'", Close: "'", Escape: '\\'}
	cQuotes      = []Quote{doubleQuoted, singleQuoted}
	shellQuotes  = []Quote{doubleQuoted, {Open: "'", Close: "'"}}
)

// definitions 是内置语言表，进程启动时构建一次，之后只读。
// 新增语言只需要在这里追加数据。
var definitions = []Language{
	{
		Name:            "Batch",
		Extensions:      []string{".bat", ".cmd"},
		CaseInsensitive: true,
		LineComments:    []string{"REM", "@REM", "::"},
	},
	{
		Name:          "C",
		Extensions:    []string{".c"},
		LineComments:  []string{"//"},
		BlockComments: cBlock,
		Quotes:        cQuotes,
	},
	{
		Name:          "C Header",
		Extensions:    []string{".h"},
		LineComments:  []string{"//"},
		BlockComments: cBlock,
		Quotes:        cQuotes,
	},
	{
		Name:          "C#",
		Extensions:    []string{".cs", ".csx"},
		LineComments:  []string{"//"},
		BlockComments: cBlock,
		Quotes:        []Quote{{Open: `@"`, Close: `"`}, doubleQuoted, singleQuoted},
	},
	{
		Name:          "C++",
		Extensions:    []string{".cc", ".cpp", ".cxx", ".c++"},
		LineComments:  []string{"//"},
		BlockComments: cBlock,
		Quotes:        cQuotes,
	},
	{
		Name:          "C++ Header",
		Extensions:    []string{".hh", ".hpp", ".hxx", ".inl"},
		LineComments:  []string{"//"},
		BlockComments: cBlock,
		Quotes:        cQuotes,
	},
	{
		Name:         "CMake",
		Filenames:    []string{"CMakeLists.txt"},
		Extensions:   []string{".cmake"},
		LineComments: []string{"#"},
		Quotes:       []Quote{doubleQuoted},
	},
	{
		Name:          "CSS",
		Extensions:    []string{".css"},
		BlockComments: cBlock,
		Quotes:        cQuotes,
	},
	{
		Name:          "Dart",
		Extensions:    []string{".dart"},
		LineComments:  []string{"//"},
		BlockComments: cBlock,
		Nested:        true,
		Quotes: []Quote{
			{Open: `"""`, Close: `"""`, Escape: '\\'},
			{Open: "'''", Close: "'''", Escape: '\\'},
			doubleQuoted,
			singleQuoted,
		},
	},
	{
		Name:         "Dockerfile",
		Filenames:    []string{"Dockerfile", "dockerfile", "Containerfile"},
		Extensions:   []string{".dockerfile"},
		LineComments: []string{"#"},
		Quotes:       []Quote{doubleQuoted},
	},
	{
		Name:         "Elixir",
		Extensions:   []string{".ex", ".exs"},
		LineComments: []string{"#"},
		Quotes: []Quote{
			{Open: `"""`, Close: `"""`, Escape: '\\'},
			doubleQuoted,
		},
	},
	{
		Name:         "Erlang",
		Extensions:   []string{".erl", ".hrl"},
		LineComments: []string{"%"},
		Quotes:       []Quote{doubleQuoted},
	},
	{
		Name:          "Go",
		Extensions:    []string{".go"},
		LineComments:  []string{"//"},
		BlockComments: cBlock,
		Quotes:        []Quote{doubleQuoted, singleQuoted, {Open: "`", Close: "`"}},
	},
	{
		Name:          "Groovy",
		Filenames:     []string{"Jenkinsfile"},
		Extensions:    []string{".groovy", ".gradle"},
		LineComments:  []string{"//"},
		BlockComments: cBlock,
		Quotes:        cQuotes,
	},
	{
		Name:          "HCL",
		Extensions:    []string{".hcl", ".tf", ".tfvars"},
		LineComments:  []string{"#", "//"},
		BlockComments: cBlock,
		Quotes:        []Quote{doubleQuoted},
	},
	{
		Name:          "HTML",
		Extensions:    []string{".html", ".htm"},
		BlockComments: xmlBlock,
	},
	{
		Name:          "Haskell",
		Extensions:    []string{".hs"},
		LineComments:  []string{"--"},
		BlockComments: []Delimiter{{Open: "{-", Close: "-}"}},
		Nested:        true,
		Quotes:        []Quote{doubleQuoted},
	},
	{
		Name:          "Java",
		Extensions:    []string{".java"},
		LineComments:  []string{"//"},
		BlockComments: cBlock,
		Quotes: []Quote{
			{Open: `"""`, Close: `"""`, Escape: '\\'},
			doubleQuoted,
			singleQuoted,
		},
	},
	{
		Name:          "JavaScript",
		Extensions:    []string{".js", ".mjs", ".cjs", ".jsx"},
		LineComments:  []string{"//"},
		BlockComments: cBlock,
		Quotes:        []Quote{doubleQuoted, singleQuoted, {Open: "`", Close: "`", Escape: '\\'}},
	},
	{
		Name:       "JSON",
		Extensions: []string{".json"},
		Quotes:     []Quote{doubleQuoted},
	},
	{
		Name:          "Kotlin",
		Extensions:    []string{".kt", ".kts"},
		LineComments:  []string{"//"},
		BlockComments: cBlock,
		Nested:        true,
		Quotes: []Quote{
			{Open: `"""`, Close: `"""`},
			doubleQuoted,
			singleQuoted,
		},
	},
	{
		Name:          "Lua",
		Extensions:    []string{".lua"},
		LineComments:  []string{"--"},
		BlockComments: []Delimiter{{Open: "--[[", Close: "]]"}},
		Quotes:        []Quote{doubleQuoted, singleQuoted, {Open: "[[", Close: "]]"}},
	},
	{
		Name:         "Makefile",
		Filenames:    []string{"Makefile", "makefile", "GNUmakefile"},
		Extensions:   []string{".mk", ".mak"},
		LineComments: []string{"#"},
	},
	{
		Name:       "Markdown",
		Extensions: []string{".md", ".markdown"},
		Prose:      true,
	},
	{
		Name:          "OCaml",
		Extensions:    []string{".ml", ".mli"},
		BlockComments: []Delimiter{{Open: "(*", Close: "*)"}},
		Nested:        true,
		Quotes:        []Quote{doubleQuoted},
	},
	{
		Name:          "PHP",
		Extensions:    []string{".php"},
		LineComments:  []string{"//", "#"},
		BlockComments: cBlock,
		Quotes:        cQuotes,
	},
	{
		Name:          "Perl",
		Extensions:    []string{".pl", ".pm"},
		LineComments:  []string{"#"},
		BlockComments: []Delimiter{{Open: "=pod", Close: "=cut"}},
		Quotes:        cQuotes,
	},
	{
		Name:            "PowerShell",
		Extensions:      []string{".ps1", ".psm1", ".psd1"},
		CaseInsensitive: true,
		LineComments:    []string{"#"},
		BlockComments:   []Delimiter{{Open: "<#", Close: "#>"}},
		Quotes:          []Quote{{Open: `"`, Close: `"`, Escape: '`'}, {Open: "'", Close: "'"}},
	},
	{
		Name:          "Protocol Buffers",
		Extensions:    []string{".proto"},
		LineComments:  []string{"//"},
		BlockComments: cBlock,
		Quotes:        cQuotes,
	},
	{
		Name:         "Python",
		Extensions:   []string{".py", ".pyi", ".pyw"},
		LineComments: []string{"#"},
		Quotes: []Quote{
			{Open: `"""`, Close: `"""`, Escape: '\\'},
			{Open: "'''", Close: "'''", Escape: '\\'},
			doubleQuoted,
			singleQuoted,
		},
	},
	{
		Name:         "R",
		Extensions:   []string{".r", ".R"},
		LineComments: []string{"#"},
		Quotes:       cQuotes,
	},
	{
		Name:          "Ruby",
		Filenames:     []string{"Rakefile", "Gemfile"},
		Extensions:    []string{".rb", ".rake", ".gemspec"},
		LineComments:  []string{"#"},
		BlockComments: []Delimiter{{Open: "=begin", Close: "=end"}},
		Quotes:        cQuotes,
	},
	{
		// 不登记 ' 引号：生命周期标注（'a）会被误认为字符字面量的开头。
		Name:          "Rust",
		Extensions:    []string{".rs"},
		LineComments:  []string{"//"},
		BlockComments: cBlock,
		Nested:        true,
		Quotes: []Quote{
			{Open: `r#"`, Close: `"#`},
			doubleQuoted,
		},
	},
	{
		Name:            "SQL",
		Extensions:      []string{".sql"},
		CaseInsensitive: true,
		LineComments:    []string{"--"},
		BlockComments:   cBlock,
		Nested:          true,
		Quotes:          []Quote{{Open: "'", Close: "'"}, {Open: `"`, Close: `"`}},
	},
	{
		Name:          "Sass",
		Extensions:    []string{".scss", ".sass"},
		LineComments:  []string{"//"},
		BlockComments: cBlock,
		Quotes:        cQuotes,
	},
	{
		Name:          "Scala",
		Extensions:    []string{".scala", ".sc"},
		LineComments:  []string{"//"},
		BlockComments: cBlock,
		Nested:        true,
		Quotes: []Quote{
			{Open: `"""`, Close: `"""`},
			doubleQuoted,
		},
	},
	{
		Name:         "Shell",
		Extensions:   []string{".sh", ".bash", ".zsh", ".ksh"},
		LineComments: []string{"#"},
		Quotes:       shellQuotes,
	},
	{
		Name:          "Swift",
		Extensions:    []string{".swift"},
		LineComments:  []string{"//"},
		BlockComments: cBlock,
		Nested:        true,
		Quotes: []Quote{
			{Open: `"""`, Close: `"""`, Escape: '\\'},
			doubleQuoted,
		},
	},
	{
		Name:         "TOML",
		Extensions:   []string{".toml"},
		LineComments: []string{"#"},
		Quotes: []Quote{
			{Open: `"""`, Close: `"""`, Escape: '\\'},
			{Open: "'''", Close: "'''"},
			doubleQuoted,
			{Open: "'", Close: "'"},
		},
	},
	{
		Name:          "TypeScript",
		Extensions:    []string{".ts", ".tsx", ".mts", ".cts"},
		LineComments:  []string{"//"},
		BlockComments: cBlock,
		Quotes:        []Quote{doubleQuoted, singleQuoted, {Open: "`", Close: "`", Escape: '\\'}},
	},
	{
		Name:          "XML",
		Extensions:    []string{".xml", ".xsd", ".xsl", ".svg"},
		BlockComments: xmlBlock,
	},
	{
		Name:         "YAML",
		Extensions:   []string{".yaml", ".yml"},
		LineComments: []string{"#"},
		Quotes:       []Quote{doubleQuoted, {Open: "'", Close: "'"}},
	},
	{
		Name:         "Zig",
		Extensions:   []string{".zig"},
		LineComments: []string{"//"},
		Quotes:       cQuotes,
	},
}
