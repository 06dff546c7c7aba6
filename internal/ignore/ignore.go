// Package ignore provides the CLI's default worktree.IgnoreOracle: a
// .gitignore-style pattern matcher reading ".magicreposignore" from a
// repository's working-tree root. Pattern parsing itself is external to the
// version-control core, which only ever consumes the IsIgnored contract.
package ignore

import (
	"bufio"
	"os"
	"path/filepath"
	"regexp"
	"strings"
)

// Checker matches working-tree paths against .magicreposignore patterns. It
// always reports the control directory as ignored, satisfying the oracle
// contract regardless of what the ignore file says.
type Checker struct {
	controlDir string
	patterns   []pattern

	dirPrefixPatterns   map[string][]int
	exactBasePatterns   map[string][]int
	exactPathPatterns   map[string][]int
	wildcardBasePattern []int
	wildcardPathPattern []int
}

type pattern struct {
	text     string
	negated  bool
	dirOnly  bool
	hasSlash bool
	regex    *regexp.Regexp
}

// NewChecker builds a Checker for a working-tree rooted at repoRoot, whose
// control directory name is controlDir (e.g. ".magicrepos").
func NewChecker(repoRoot, controlDir string) *Checker {
	c := &Checker{controlDir: controlDir}
	c.patterns = append(c.patterns, pattern{text: controlDir, dirOnly: true})

	f, err := os.Open(filepath.Join(repoRoot, ".magicreposignore"))
	if err == nil {
		defer f.Close()
		scanner := bufio.NewScanner(f)
		for scanner.Scan() {
			if p := parseLine(scanner.Text()); p != nil {
				c.patterns = append(c.patterns, *p)
			}
		}
	}

	c.compile()
	return c
}

func parseLine(line string) *pattern {
	line = strings.TrimRight(line, " \t")
	if line == "" || strings.HasPrefix(line, "#") {
		return nil
	}

	p := &pattern{}
	if strings.HasPrefix(line, "!") {
		p.negated = true
		line = line[1:]
	}
	if strings.HasSuffix(line, "/") {
		p.dirOnly = true
		line = strings.TrimRight(line, "/")
	}
	p.hasSlash = strings.Contains(line, "/")
	p.text = line
	if strings.Contains(line, "**") {
		if re, err := regexp.Compile(globToRegex(line)); err == nil {
			p.regex = re
		}
	}
	return p
}

// IsIgnored implements worktree.IgnoreOracle. isDir is unused beyond
// resolving dirOnly patterns, which are matched by path prefix regardless.
func (c *Checker) IsIgnored(relPath string, isDir bool) bool {
	relPath = filepath.ToSlash(relPath)
	if relPath == c.controlDir || strings.HasPrefix(relPath, c.controlDir+"/") {
		return true
	}

	base := filepath.Base(relPath)
	lastMatch := -1
	ignored := false
	apply := func(idx int) {
		if idx > lastMatch {
			lastMatch = idx
			ignored = !c.patterns[idx].negated
		}
	}
	applyAll := func(idxs []int) {
		for _, idx := range idxs {
			apply(idx)
		}
	}

	if idxs, ok := c.dirPrefixPatterns[relPath]; ok {
		applyAll(idxs)
	}
	for i := 0; i < len(relPath); i++ {
		if relPath[i] == '/' {
			if idxs, ok := c.dirPrefixPatterns[relPath[:i]]; ok {
				applyAll(idxs)
			}
		}
	}
	if idxs, ok := c.exactPathPatterns[relPath]; ok {
		applyAll(idxs)
	}
	if idxs, ok := c.exactBasePatterns[base]; ok {
		applyAll(idxs)
	}
	for _, idx := range c.wildcardPathPattern {
		if c.patterns[idx].match(relPath) {
			apply(idx)
		}
	}
	for _, idx := range c.wildcardBasePattern {
		if c.patterns[idx].match(base) {
			apply(idx)
		}
	}

	return ignored
}

func (c *Checker) compile() {
	c.dirPrefixPatterns = make(map[string][]int)
	c.exactBasePatterns = make(map[string][]int)
	c.exactPathPatterns = make(map[string][]int)

	for idx := range c.patterns {
		p := c.patterns[idx]
		if p.dirOnly {
			c.dirPrefixPatterns[p.text] = append(c.dirPrefixPatterns[p.text], idx)
			continue
		}
		switch {
		case p.regex != nil:
			if p.hasSlash {
				c.wildcardPathPattern = append(c.wildcardPathPattern, idx)
			} else {
				c.wildcardBasePattern = append(c.wildcardBasePattern, idx)
			}
		case isLiteralPattern(p.text):
			if p.hasSlash {
				c.exactPathPatterns[p.text] = append(c.exactPathPatterns[p.text], idx)
			} else {
				c.exactBasePatterns[p.text] = append(c.exactBasePatterns[p.text], idx)
			}
		default:
			if p.hasSlash {
				c.wildcardPathPattern = append(c.wildcardPathPattern, idx)
			} else {
				c.wildcardBasePattern = append(c.wildcardBasePattern, idx)
			}
		}
	}
}

func isLiteralPattern(text string) bool {
	return !strings.ContainsAny(text, "*?[")
}

func (p *pattern) match(target string) bool {
	if p.regex != nil {
		return p.regex.MatchString(target)
	}
	matched, _ := filepath.Match(p.text, target)
	return matched
}

func globToRegex(text string) string {
	var b strings.Builder
	b.WriteString("^")
	for i := 0; i < len(text); i++ {
		ch := text[i]
		if ch == '*' {
			if i+1 < len(text) && text[i+1] == '*' {
				if i+2 < len(text) && text[i+2] == '/' {
					b.WriteString("(?:.*/)?")
					i += 2
				} else {
					b.WriteString(".*")
					i++
				}
				continue
			}
			b.WriteString("[^/]*")
			continue
		}
		if ch == '?' {
			b.WriteString("[^/]")
			continue
		}
		if strings.ContainsRune(`.+()|[]{}^$\`, rune(ch)) {
			b.WriteByte('\\')
		}
		b.WriteByte(ch)
	}
	b.WriteString("$")
	return b.String()
}
