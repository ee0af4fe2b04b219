package las

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strings"
	"sync"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/charlievieth/fastwalk"
	ignore "github.com/sabhiram/go-gitignore"
)

// TokenSet is a set of class tokens
type TokenSet map[string]struct{}

// Sorted returns the tokens in lexical order
func (s TokenSet) Sorted() []string {
	tokens := make([]string, 0, len(s))
	for t := range s {
		tokens = append(tokens, t)
	}
	sort.Strings(tokens)
	return tokens
}

// Merge adds every token of other and returns how many were new
func (s TokenSet) Merge(other TokenSet) int {
	added := 0
	for t := range other {
		if _, ok := s[t]; !ok {
			s[t] = struct{}{}
			added++
		}
	}
	return added
}

// ClassReference is one token found in a source file
type ClassReference struct {
	Token          string       // "md:flex"
	FullClassValue string       // Full attribute: "md:flex p-4"
	Location       FileLocation // Where it was found
}

// FileLocation tracks where a class reference was found
type FileLocation struct {
	File   string
	Line   int
	Column int    // 1-based column (exact start of the token)
	Text   string // Full line content for source display
}

var (
	// class="..." / className='...'
	classAttrPattern = regexp.MustCompile(`class(?:Name)?=["']([^"']+)["']`)
	// className={"..."} / class={'...'}
	classExprPattern = regexp.MustCompile(`class(?:Name)?=\{['"]([^'"]+)['"]\}`)

	classPatterns = []*regexp.Regexp{classAttrPattern, classExprPattern}

	// Directories never descended into below a scan root
	skipDirs = map[string]bool{
		"node_modules": true,
		"dist":         true,
		".git":         true,
		"build":        true,
	}
)

// ExtractTokens returns every whitespace-separated token inside class and
// className attribute values of text
func ExtractTokens(text string) TokenSet {
	tokens := make(TokenSet)
	for _, pattern := range classPatterns {
		for _, match := range pattern.FindAllStringSubmatch(text, -1) {
			for _, token := range strings.Fields(match[1]) {
				tokens[token] = struct{}{}
			}
		}
	}
	return tokens
}

// ScanFile reads path and extracts its tokens
func ScanFile(path string) (TokenSet, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	return ExtractTokens(string(content)), nil
}

// ScanOption customizes tree walks
type ScanOption func(*scanOptions)

type scanOptions struct {
	ignore    []string
	gitignore bool
}

// WithIgnore skips files and directories whose root-relative, slash-separated
// path matches one of the doublestar globs
func WithIgnore(globs ...string) ScanOption {
	return func(o *scanOptions) {
		o.ignore = append(o.ignore, globs...)
	}
}

// WithGitIgnore skips paths matched by the .gitignore at the scan root.
// A missing .gitignore is not an error.
func WithGitIgnore() ScanOption {
	return func(o *scanOptions) {
		o.gitignore = true
	}
}

// treeFilter decides which paths below root are visited
type treeFilter struct {
	root       string
	extensions []string
	ignore     []string
	gitIgnore  *ignore.GitIgnore
}

func newTreeFilter(root string, extensions []string, opts []ScanOption) (*treeFilter, error) {
	var o scanOptions
	for _, opt := range opts {
		opt(&o)
	}

	for _, glob := range o.ignore {
		if !doublestar.ValidatePattern(glob) {
			return nil, fmt.Errorf("invalid ignore pattern %q", glob)
		}
	}

	f := &treeFilter{root: root, extensions: extensions, ignore: o.ignore}
	if o.gitignore {
		// Gracefully degrade - no .gitignore is fine
		if gi, err := ignore.CompileIgnoreFile(filepath.Join(root, ".gitignore")); err == nil {
			f.gitIgnore = gi
		}
	}
	return f, nil
}

// skipDir reports whether a directory below the root is pruned
func (f *treeFilter) skipDir(path string) bool {
	if skipDirs[filepath.Base(path)] {
		return true
	}
	return f.ignored(path)
}

// wantFile reports whether a regular file is scanned
func (f *treeFilter) wantFile(path string) bool {
	if !hasExtension(path, f.extensions) {
		return false
	}
	return !f.ignored(path)
}

func (f *treeFilter) ignored(path string) bool {
	rel, err := filepath.Rel(f.root, path)
	if err != nil {
		return false
	}
	rel = filepath.ToSlash(rel)

	for _, glob := range f.ignore {
		if ok, _ := doublestar.Match(glob, rel); ok {
			return true
		}
	}

	return f.gitIgnore != nil && f.gitIgnore.MatchesPath(rel)
}

func hasExtension(path string, extensions []string) bool {
	for _, ext := range extensions {
		if strings.HasSuffix(path, ext) {
			return true
		}
	}
	return false
}

// walkTree calls visit for every wanted file below root. visit runs
// concurrently and must synchronize its own state.
func walkTree(root string, extensions []string, opts []ScanOption, visit func(path string) error) error {
	filter, err := newTreeFilter(root, extensions, opts)
	if err != nil {
		return err
	}

	conf := fastwalk.Config{Follow: false}
	err = fastwalk.Walk(&conf, root, func(p string, d os.DirEntry, err error) error {
		if err != nil {
			return err
		}

		if d.IsDir() {
			if filepath.Clean(p) != filepath.Clean(root) && filter.skipDir(p) {
				return filepath.SkipDir
			}
			return nil
		}

		if !d.Type().IsRegular() || !filter.wantFile(p) {
			return nil
		}
		return visit(p)
	})
	if err != nil {
		return fmt.Errorf("walk %s: %w", root, err)
	}
	return nil
}

// ScanTree walks root in parallel and returns the union of tokens found in
// files ending with one of extensions. Walk and read errors abort the scan.
func ScanTree(root string, extensions []string, opts ...ScanOption) (TokenSet, error) {
	var mu sync.Mutex
	tokens := make(TokenSet)

	err := walkTree(root, extensions, opts, func(path string) error {
		found, err := ScanFile(path)
		if err != nil {
			return err
		}
		mu.Lock()
		tokens.Merge(found)
		mu.Unlock()
		return nil
	})
	if err != nil {
		return nil, err
	}

	return tokens, nil
}

// ListFiles returns the files ScanTree would read, sorted
func ListFiles(root string, extensions []string, opts ...ScanOption) ([]string, error) {
	var mu sync.Mutex
	var files []string

	err := walkTree(root, extensions, opts, func(path string) error {
		mu.Lock()
		files = append(files, path)
		mu.Unlock()
		return nil
	})
	if err != nil {
		return nil, err
	}

	sort.Strings(files)
	return files, nil
}

// ScanRefs returns every token of path with its line and column. Class
// values spanning several lines are not located.
func ScanRefs(path string) ([]ClassReference, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer file.Close()

	var refs []ClassReference
	scanner := bufio.NewScanner(file)
	scanner.Buffer(make([]byte, 0, 64*1024), 8*1024*1024)
	lineNum := 0

	for scanner.Scan() {
		lineNum++
		refs = append(refs, extractRefsFromLine(scanner.Text(), lineNum, path)...)
	}

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("scan %s: %w", path, err)
	}

	return refs, nil
}

// extractRefsFromLine locates each token of each class value on a line
func extractRefsFromLine(line string, lineNum int, file string) []ClassReference {
	var refs []ClassReference

	for _, pattern := range classPatterns {
		for _, match := range pattern.FindAllStringSubmatchIndex(line, -1) {
			if len(match) < 4 {
				continue
			}

			value := line[match[2]:match[3]]
			for _, field := range fieldSpans(value) {
				refs = append(refs, ClassReference{
					Token:          field.text,
					FullClassValue: value,
					Location: FileLocation{
						File:   file,
						Line:   lineNum,
						Column: match[2] + field.offset + 1, // 1-based
						Text:   line,
					},
				})
			}
		}
	}

	return refs
}

type fieldSpan struct {
	text   string
	offset int
}

// fieldSpans is strings.Fields that also reports byte offsets
func fieldSpans(s string) []fieldSpan {
	var spans []fieldSpan
	start := -1
	for i, r := range s {
		space := r == ' ' || r == '\t' || r == '\n' || r == '\r' || r == '\f' || r == '\v'
		switch {
		case space && start >= 0:
			spans = append(spans, fieldSpan{text: s[start:i], offset: start})
			start = -1
		case !space && start < 0:
			start = i
		}
	}
	if start >= 0 {
		spans = append(spans, fieldSpan{text: s[start:], offset: start})
	}
	return spans
}

// GetRelativePath returns a relative path from the current working directory
func GetRelativePath(absPath string) string {
	cwd, err := os.Getwd()
	if err != nil {
		return absPath
	}

	rel, err := filepath.Rel(cwd, absPath)
	if err != nil {
		return absPath
	}

	return rel
}
