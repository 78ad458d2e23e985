// Package scan finds utility class tokens in source files: HTML and JSX
// class attributes, templ class expressions, and templ.Classes/templ.KV
// calls.
package scan

import (
	"bufio"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	ignore "github.com/sabhiram/go-gitignore"
	"go.uber.org/zap"
)

// Token is one class token found in a source file.
type Token struct {
	Value    string   // "hover:bg-red-500"
	Location Location // Where it was found
}

// Location tracks where a token was found.
type Location struct {
	File   string
	Line   int
	Column int    // 1-based column of the token's first byte
	Text   string // Full line as written, so columns index into it
}

// Stats tracks file scanning statistics.
type Stats struct {
	FilesDiscovered int // Total files found by glob patterns
	FilesScanned    int // Files actually scanned (after filtering)
	FilesSkipped    int // Files skipped as generated or gitignored
	Tokens          int // Token occurrences found
}

var (
	// Attribute patterns. The capture is the raw class list.
	attrPatterns = []*regexp.Regexp{
		regexp.MustCompile(`\bclass(?:Name)?="([^"]*)"`),
		regexp.MustCompile(`\bclass(?:Name)?='([^']*)'`),
		regexp.MustCompile(`\bclass(?:Name)?=\{\s*"([^"]*)"`),
		regexp.MustCompile("\\bclass(?:Name)?=\\{\\s*`([^`]*)`"),
	}

	templCall = regexp.MustCompile(`templ\.(Classes|KV)\(`)

	commentPattern = regexp.MustCompile(`^\s*//`)
)

// Option configures a Scanner.
type Option func(*Scanner)

// WithLogger sets the logger. A nil logger disables logging.
func WithLogger(log *zap.Logger) Option {
	return func(s *Scanner) {
		if log == nil {
			log = zap.NewNop()
		}
		s.log = log.Named("scan")
	}
}

// WithGitignore loads ignore rules from path. An empty path disables
// gitignore filtering. A missing file is not an error.
func WithGitignore(path string) Option {
	return func(s *Scanner) { s.gitignorePath = path }
}

// Scanner expands globs and extracts tokens from the matched files.
type Scanner struct {
	log           *zap.Logger
	gitignorePath string
	gitignore     *ignore.GitIgnore
}

// New returns a Scanner that honours ./.gitignore unless configured otherwise.
func New(opts ...Option) *Scanner {
	s := &Scanner{log: zap.NewNop(), gitignorePath: ".gitignore"}
	for _, opt := range opts {
		opt(s)
	}
	if s.gitignorePath != "" {
		gi, err := ignore.CompileIgnoreFile(s.gitignorePath)
		if err != nil {
			s.log.Debug("no gitignore", zap.String("path", s.gitignorePath))
		} else {
			s.gitignore = gi
		}
	}
	return s
}

// isTemplGenerated checks if a file is a templ-generated Go file.
// Handles both _templ.go and .templ.go suffix variations.
func isTemplGenerated(path string) bool {
	return strings.HasSuffix(path, "_templ.go") ||
		strings.HasSuffix(path, ".templ.go")
}

// shouldSkip reports whether path is generated or gitignored. Gitignore
// rules only apply to relative paths; absolute paths are outside the
// project the rules describe.
func (s *Scanner) shouldSkip(path string) bool {
	if isTemplGenerated(path) {
		return true
	}
	if s.gitignore != nil && !filepath.IsAbs(path) {
		return s.gitignore.MatchesPath(path)
	}
	return false
}

// Files expands glob patterns to the files that will be scanned.
func (s *Scanner) Files(patterns []string) ([]string, Stats, error) {
	var files []string
	seen := make(map[string]bool)
	stats := Stats{}

	for _, pattern := range patterns {
		matches, err := doublestar.FilepathGlob(pattern)
		if err != nil {
			return nil, stats, err
		}

		for _, match := range matches {
			if seen[match] {
				continue
			}
			seen[match] = true

			info, err := os.Stat(match)
			if err != nil || info.IsDir() {
				continue
			}
			stats.FilesDiscovered++

			if s.shouldSkip(match) {
				stats.FilesSkipped++
				s.log.Debug("skipping file", zap.String("file", match))
				continue
			}
			files = append(files, match)
			stats.FilesScanned++
		}
	}

	return files, stats, nil
}

// Scan extracts tokens from every file matching patterns. Unreadable files
// are logged and skipped.
func (s *Scanner) Scan(patterns []string) ([]Token, Stats, error) {
	files, stats, err := s.Files(patterns)
	if err != nil {
		return nil, stats, err
	}

	var all []Token
	for _, file := range files {
		toks, err := ScanFile(file)
		if err != nil {
			s.log.Warn("cannot scan file", zap.String("file", file), zap.Error(err))
			continue
		}
		all = append(all, toks...)
	}
	stats.Tokens = len(all)

	s.log.Debug("scan complete",
		zap.Int("files", stats.FilesScanned),
		zap.Int("skipped", stats.FilesSkipped),
		zap.Int("tokens", stats.Tokens))
	return all, stats, nil
}

// ScanFile extracts tokens from a single file.
func ScanFile(path string) ([]Token, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	var toks []Token
	scanner := bufio.NewScanner(file)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	lineNum := 0

	for scanner.Scan() {
		lineNum++
		toks = append(toks, ExtractLine(scanner.Text(), lineNum, path)...)
	}

	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return toks, nil
}

// ExtractLine extracts tokens from one line of source.
func ExtractLine(line string, lineNum int, file string) []Token {
	if commentPattern.MatchString(line) {
		return nil
	}

	loc := Location{File: file, Line: lineNum, Text: line}
	var toks []Token

	// templ calls are handled by their own parser so string arguments are
	// not picked up twice.
	if calls := templCall.FindAllStringSubmatchIndex(line, -1); calls != nil {
		for _, call := range calls {
			kvOnly := line[call[2]:call[3]] == "KV"
			args := splitArgs(line, call[1])
			if kvOnly && len(args) > 1 {
				args = args[:1]
			}
			for _, a := range args {
				toks = append(toks, fields(line, a.start, a.end, loc)...)
			}
		}
		return toks
	}

	for _, re := range attrPatterns {
		for _, m := range re.FindAllStringSubmatchIndex(line, -1) {
			toks = append(toks, fields(line, m[2], m[3], loc)...)
		}
	}
	return toks
}

// span is a byte range of a string literal's contents within a line.
type span struct {
	start, end int
}

// splitArgs walks the argument list starting at offset i (just past the
// opening paren) and returns the contents of every top-level string
// literal argument. Non-literal arguments are ignored; parentheses inside
// literals do not count towards nesting.
func splitArgs(line string, i int) []span {
	var out []span
	depth := 0
	argLiteral := true // the current argument is still a bare literal
	var pending *span

	for ; i < len(line); i++ {
		switch c := line[i]; c {
		case '"', '`':
			end := literalEnd(line, i)
			if depth == 0 && argLiteral && pending == nil {
				pending = &span{start: i + 1, end: end - 1}
			} else {
				argLiteral = false
			}
			i = end - 1
		case '(':
			depth++
			argLiteral = false
		case ')':
			if depth == 0 {
				if pending != nil && argLiteral {
					out = append(out, *pending)
				}
				return out
			}
			depth--
		case ',':
			if depth == 0 {
				if pending != nil && argLiteral {
					out = append(out, *pending)
				}
				pending = nil
				argLiteral = true
			}
		case ' ', '\t':
		default:
			if depth == 0 {
				argLiteral = false
			}
		}
	}
	return out
}

// literalEnd returns the offset just past the literal opening at i.
func literalEnd(line string, i int) int {
	quote := line[i]
	for j := i + 1; j < len(line); j++ {
		if quote == '"' && line[j] == '\\' {
			j++
			continue
		}
		if line[j] == quote {
			return j + 1
		}
	}
	return len(line)
}

// fields splits line[start:end] on whitespace into tokens with columns.
func fields(line string, start, end int, loc Location) []Token {
	var toks []Token
	i := start
	for i < end {
		for i < end && isSpace(line[i]) {
			i++
		}
		j := i
		for j < end && !isSpace(line[j]) {
			j++
		}
		if j > i {
			l := loc
			l.Column = i + 1
			toks = append(toks, Token{Value: line[i:j], Location: l})
		}
		i = j
	}
	return toks
}

func isSpace(c byte) bool {
	return c == ' ' || c == '\t' || c == '\n' || c == '\r' || c == '\f'
}

// Values returns the distinct token values in first-seen order.
func Values(toks []Token) []string {
	seen := make(map[string]bool, len(toks))
	out := make([]string, 0, len(toks))
	for _, t := range toks {
		if !seen[t.Value] {
			seen[t.Value] = true
			out = append(out, t.Value)
		}
	}
	return out
}

// Index maps each distinct value to its first occurrence.
func Index(toks []Token) map[string]Location {
	idx := make(map[string]Location, len(toks))
	for _, t := range toks {
		if _, ok := idx[t.Value]; !ok {
			idx[t.Value] = t.Location
		}
	}
	return idx
}

// RelativePath returns path relative to the working directory when possible.
func RelativePath(path string) string {
	cwd, err := os.Getwd()
	if err != nil {
		return path
	}
	rel, err := filepath.Rel(cwd, path)
	if err != nil {
		return path
	}
	return rel
}
