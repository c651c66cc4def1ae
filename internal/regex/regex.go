// Package regex provides the search matcher. A pattern is either a literal
// substring or, when prefixed with RegexPrefix, a regular expression. The
// matcher is compiled once and reused for every line.
package regex

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/ricat/ricat/internal/errors"
)

// RegexPrefix marks a search text as regular expression.
const RegexPrefix = "reg:"

// Regex for filtering lines.
type Regex struct {
	// The search text as given, including any prefix
	regexStr string
	// The Golang regexp object, nil for the literal fast path
	re   *regexp.Regexp
	flag Flag
	// Fields for literal string matching
	isLiteral  bool
	literalStr string
}

func (r Regex) String() string {
	return fmt.Sprintf("Regex(regexStr:%s,flag:%s,re==nil:%t,isLiteral:%t)",
		r.regexStr, r.flag, r.re == nil, r.isLiteral)
}

// NewNoop is a noop regex (matching everything).
func NewNoop() Regex {
	return Regex{flag: Noop}
}

// New returns a new matcher for the given search text. It fails with
// errors.ErrPattern if the regular expression does not compile.
func New(searchText string, flag Flag) (Regex, error) {
	pattern, isRegex := strings.CutPrefix(searchText, RegexPrefix)
	if pattern == "" {
		r := NewNoop()
		r.regexStr = searchText
		return r, nil
	}

	r := Regex{
		regexStr: searchText,
		flag:     flag,
	}

	if !isRegex {
		r.isLiteral = true
		r.literalStr = pattern
		if flag != IgnoreCase {
			return r, nil
		}
		// Case folding is delegated to the regexp engine, which folds
		// Unicode properly.
		pattern = regexp.QuoteMeta(pattern)
	}

	if flag == IgnoreCase {
		pattern = "(?i)" + pattern
	}
	re, err := regexp.Compile(pattern)
	if err != nil {
		return Regex{}, errors.Wrapf(errors.Classify(errors.ErrPattern, err),
			"compiling %q", searchText)
	}
	r.re = re
	return r, nil
}

// MatchString matches a string.
func (r Regex) MatchString(str string) bool {
	switch r.flag {
	case Noop:
		return true
	case Default:
		if r.isLiteral {
			return strings.Contains(str, r.literalStr)
		}
		return r.re.MatchString(str)
	case IgnoreCase:
		return r.re.MatchString(str)
	default:
		return false
	}
}

// IsLiteral returns true if this regex is using literal string matching
func (r Regex) IsLiteral() bool {
	return r.isLiteral
}

// Pattern returns the original search text
func (r Regex) Pattern() string {
	return r.regexStr
}

// Flag returns the match flag.
func (r Regex) Flag() Flag {
	return r.flag
}
