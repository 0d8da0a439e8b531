// Package wordlist loads, imports and writes word lists.
package wordlist

import (
	"bufio"
	"bytes"
	_ "embed"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

//go:embed words_en.txt
var builtinEnglish []byte

// LoadWords reads one word per line from the provided file path.
func LoadWords(path string) ([]string, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer func() {
		if cerr := file.Close(); cerr != nil {
			// Best-effort close for read-only word list.
			_ = cerr
		}
	}()
	return scanWords(bufio.NewScanner(file))
}

func scanWords(scanner *bufio.Scanner) ([]string, error) {
	var words []string
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		words = append(words, line)
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	if len(words) == 0 {
		return nil, fmt.Errorf("word list is empty")
	}
	return words, nil
}

// Builtin returns the embedded list for lang, if one ships with the binary.
func Builtin(lang string) ([]string, bool) {
	if strings.ToLower(lang) != "en" {
		return nil, false
	}
	words, err := scanWords(bufio.NewScanner(bytes.NewReader(builtinEnglish)))
	if err != nil {
		return nil, false
	}
	return words, true
}

// Resolve loads the list at path, falling back to the builtin list for lang
// when the file does not exist. The returned source names where the words
// came from.
func Resolve(path, lang string) (words []string, source string, err error) {
	words, err = LoadWords(path)
	if err == nil {
		return words, path, nil
	}
	if !errors.Is(err, os.ErrNotExist) {
		return nil, "", fmt.Errorf("failed to load word list %s: %w", path, err)
	}
	if builtin, ok := Builtin(lang); ok {
		return builtin, "builtin:" + strings.ToLower(lang), nil
	}
	return nil, "", fmt.Errorf("no word list for %q at %s", lang, path)
}

// Import reads src, keeps the words accepted by the language filter,
// removes duplicates and writes the result to dst. It returns the number of
// words written.
func Import(src, dst, lang string) (int, error) {
	words, err := LoadWords(src)
	if err != nil {
		return 0, fmt.Errorf("failed to read %s: %w", src, err)
	}
	keep := FilterForLang(lang)
	seen := make(map[string]struct{}, len(words))
	out := make([]string, 0, len(words))
	for _, w := range words {
		w = strings.ToLower(w)
		if !keep(w) {
			continue
		}
		if _, ok := seen[w]; ok {
			continue
		}
		seen[w] = struct{}{}
		out = append(out, w)
	}
	if len(out) == 0 {
		return 0, fmt.Errorf("no usable words in %s for %q", src, lang)
	}
	if err := Write(dst, out); err != nil {
		return 0, err
	}
	return len(out), nil
}

// Write atomically replaces path with one word per line.
func Write(path string, words []string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create word list dir: %w", err)
	}
	tmpFile, err := os.CreateTemp(filepath.Dir(path), "wordlist-*.txt")
	if err != nil {
		return fmt.Errorf("failed to create temp word list: %w", err)
	}
	tmpPath := tmpFile.Name()
	defer func() {
		_ = tmpFile.Close()
		_ = os.Remove(tmpPath)
	}()

	writer := bufio.NewWriter(tmpFile)
	for _, word := range words {
		if _, err := fmt.Fprintln(writer, word); err != nil {
			return fmt.Errorf("failed to write word list: %w", err)
		}
	}
	if err := writer.Flush(); err != nil {
		return fmt.Errorf("failed to flush word list: %w", err)
	}
	if err := tmpFile.Close(); err != nil {
		return fmt.Errorf("failed to close word list: %w", err)
	}
	if err := os.Rename(tmpPath, path); err != nil {
		return fmt.Errorf("failed to write word list: %w", err)
	}
	return nil
}

// Langs lists the languages with a word list in dir, plus builtin ones.
func Langs(dir string) ([]string, error) {
	set := map[string]struct{}{"en": {}}
	entries, err := os.ReadDir(dir)
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("failed to read wordlist directory: %w", err)
	}
	for _, entry := range entries {
		name := entry.Name()
		if entry.IsDir() || !strings.HasSuffix(name, ".txt") {
			continue
		}
		set[strings.TrimSuffix(name, ".txt")] = struct{}{}
	}
	langs := make([]string, 0, len(set))
	for l := range set {
		langs = append(langs, l)
	}
	sort.Strings(langs)
	return langs, nil
}
