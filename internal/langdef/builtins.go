package langdef

import "hilite/internal/syntax"

var lineEndings = []string{"\r", "\n"}

func cStyle(name string) Definition {
	return Definition{
		Name:                     name,
		StringStart:              `"`,
		StringEnd:                `"`,
		StringEscape:             `\`,
		CommentSingleLineStart:   "//",
		CommentSingleLineEndings: lineEndings,
		CommentMultiLineStart:    "/*",
		CommentMultiLineEnd:      "*/",
		FunctionInvocationStart:  "(",
		FunctionInvocationEnd:    ")",
		MemberAccessToken:        ".",
	}
}

func cPreprocessor() *Preprocessor {
	return &Preprocessor{
		TransitionSubstring: "#",
		DeliminationExtendedSyntaxes: []ExtendedSyntax{
			{SyntaxStart: "<", SyntaxEnd: ">", Decoration: syntax.StringLiteral},
			{SyntaxStart: `"`, SyntaxEnd: `"`, Decoration: syntax.StringLiteral},
		},
	}
}

var cKeywords = []string{
	"auto", "break", "case", "char", "const", "continue", "default", "do",
	"double", "else", "enum", "extern", "float", "for", "goto", "if", "inline",
	"int", "long", "register", "restrict", "return", "short", "signed",
	"sizeof", "static", "struct", "switch", "typedef", "union", "unsigned",
	"void", "volatile", "while", "_Bool", "_Alignas", "_Alignof", "_Atomic",
	"_Generic", "_Noreturn", "_Static_assert", "_Thread_local",
}

var cppExtraKeywords = []string{
	"alignas", "alignof", "bool", "catch", "class", "concept", "consteval",
	"constexpr", "constinit", "co_await", "co_return", "co_yield",
	"decltype", "delete", "dynamic_cast", "explicit", "export", "false",
	"friend", "mutable", "namespace", "new", "noexcept", "nullptr",
	"operator", "private", "protected", "public", "reinterpret_cast",
	"requires", "static_assert", "static_cast", "template", "this",
	"thread_local", "throw", "true", "try", "typeid", "typename", "using",
	"virtual", "wchar_t", "override", "final",
}

func builtinC() Definition {
	d := cStyle("c")
	d.Extensions = []string{".c", ".h"}
	d.Keywords = cKeywords
	d.Preprocessor = cPreprocessor()
	return d
}

func builtinCPP() Definition {
	d := cStyle("cpp")
	d.Aliases = []string{"c++", "cxx"}
	d.Extensions = []string{".cpp", ".cc", ".cxx", ".hpp", ".hh", ".hxx"}
	d.Keywords = append(append([]string{}, cKeywords...), cppExtraKeywords...)
	d.Preprocessor = cPreprocessor()
	return d
}

func builtinCSharp() Definition {
	d := cStyle("csharp")
	d.Aliases = []string{"c#", "cs"}
	d.Extensions = []string{".cs"}
	d.Keywords = []string{
		"abstract", "as", "base", "bool", "break", "byte", "case", "catch",
		"char", "checked", "class", "const", "continue", "decimal", "default",
		"delegate", "do", "double", "else", "enum", "event", "explicit",
		"extern", "false", "finally", "fixed", "float", "for", "foreach",
		"goto", "if", "implicit", "in", "int", "interface", "internal", "is",
		"lock", "long", "namespace", "new", "null", "object", "operator",
		"out", "override", "params", "private", "protected", "public",
		"readonly", "record", "ref", "return", "sbyte", "sealed", "short",
		"sizeof", "stackalloc", "static", "string", "struct", "switch",
		"this", "throw", "true", "try", "typeof", "uint", "ulong",
		"unchecked", "unsafe", "ushort", "using", "var", "virtual", "void",
		"volatile", "while", "async", "await", "get", "set", "init", "yield",
	}
	d.Preprocessor = &Preprocessor{TransitionSubstring: "#"}
	return d
}

func builtinGo() Definition {
	d := cStyle("go")
	d.Aliases = []string{"golang"}
	d.Extensions = []string{".go"}
	d.Keywords = []string{
		"break", "case", "chan", "const", "continue", "default", "defer",
		"else", "fallthrough", "for", "func", "go", "goto", "if", "import",
		"interface", "map", "package", "range", "return", "select", "struct",
		"switch", "type", "var", "nil", "true", "false", "iota",
	}
	return d
}

func builtinJava() Definition {
	d := cStyle("java")
	d.Extensions = []string{".java"}
	d.Keywords = []string{
		"abstract", "assert", "boolean", "break", "byte", "case", "catch",
		"char", "class", "const", "continue", "default", "do", "double",
		"else", "enum", "extends", "final", "finally", "float", "for", "goto",
		"if", "implements", "import", "instanceof", "int", "interface",
		"long", "native", "new", "package", "private", "protected", "public",
		"record", "return", "sealed", "short", "static", "strictfp", "super",
		"switch", "synchronized", "this", "throw", "throws", "transient",
		"try", "var", "void", "volatile", "while", "yield", "true", "false",
		"null",
	}
	return d
}

func builtinJavaScript() Definition {
	d := cStyle("javascript")
	d.Aliases = []string{"js"}
	d.Extensions = []string{".js", ".mjs", ".cjs"}
	d.Keywords = []string{
		"async", "await", "break", "case", "catch", "class", "const",
		"continue", "debugger", "default", "delete", "do", "else", "export",
		"extends", "false", "finally", "for", "function", "if", "import", "in",
		"instanceof", "let", "new", "null", "of", "return", "static", "super",
		"switch", "this", "throw", "true", "try", "typeof", "undefined", "var",
		"void", "while", "with", "yield",
	}
	return d
}

func builtinPython() Definition {
	return Definition{
		Name:                           "python",
		Aliases:                        []string{"py"},
		Extensions:                     []string{".py", ".pyi"},
		StringStart:                    `"`,
		StringEnd:                      `"`,
		StringEscape:                   `\`,
		CommentSingleLineStart:         "#",
		CommentSingleLineEndings:       lineEndings,
		CommentSingleLineEOFTerminates: true,
		FunctionInvocationStart:        "(",
		FunctionInvocationEnd:          ")",
		MemberAccessToken:              ".",
		Keywords: []string{
			"False", "None", "True", "and", "as", "assert", "async", "await",
			"break", "class", "continue", "def", "del", "elif", "else",
			"except", "finally", "for", "from", "global", "if", "import", "in",
			"is", "lambda", "nonlocal", "not", "or", "pass", "raise", "return",
			"try", "while", "with", "yield",
		},
	}
}

var builtinSources = []func() Definition{
	builtinC,
	builtinCPP,
	builtinCSharp,
	builtinGo,
	builtinJava,
	builtinJavaScript,
	builtinPython,
}

// Builtin returns the built-in definition called name (or one of its aliases).
func Builtin(name string) (*Definition, error) {
	return Builtins().Lookup(name)
}

// Builtins returns a fresh registry holding every built-in definition.
func Builtins() *Registry {
	r := NewRegistry()
	for _, src := range builtinSources {
		if err := r.Register(MustNew(src())); err != nil {
			panic(err)
		}
	}
	return r
}
