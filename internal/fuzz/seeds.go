package fuzztests

import (
	"io/fs"
	"os"
	"path/filepath"
	"testing"

	"hilite/internal/langdef"
)

const (
	maxSeedBytes = 64 << 10 // 64 KiB - ограничение для тестового корпуса
)

func addCorpusSeeds(f *testing.F) {
	addTestdataSeeds(f)
	addSnippetSeeds(f)
}

func addTestdataSeeds(f *testing.F) {
	root := filepath.Join("..", "..", "testdata")
	if _, err := os.Stat(root); err != nil {
		return
	}
	reg := langdef.Builtins()
	// проходим по дереву testdata, добавляем файлы известных языков
	_ = filepath.WalkDir(root, func(path string, d fs.DirEntry, walkErr error) error {
		if walkErr != nil || d.IsDir() {
			return nil
		}
		if _, err := reg.ForPath(path); err != nil {
			return nil
		}
		// #nosec G304 -- path comes from repository testdata walk
		src, err := os.ReadFile(path)
		if err != nil {
			return nil
		}
		f.Add(clampSeed(src))
		return nil
	})
}

// addSnippetSeeds добавляет граничные случаи, которые легко потерять
func addSnippetSeeds(f *testing.F) {
	for _, s := range []string{
		"",
		"\"",
		"\"abc",
		"\"a\\\"b\"",
		"// x",
		"/*/",
		"/* a */ */",
		"#",
		"# include <",
		"#include \"x\" <y>",
		"foo(x) . bar ( )",
		"1x(",
		"a.b.c()",
		"int internal intx",
		"\r\n\t  ",
		"日本語(\"строка\")",
	} {
		f.Add([]byte(s))
	}
}

func clampSeed(src []byte) []byte {
	if len(src) <= maxSeedBytes {
		return src
	}
	return append([]byte(nil), src[:maxSeedBytes]...)
}
