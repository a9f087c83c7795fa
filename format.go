package linguist

import (
	"fmt"
	"strconv"
	"strings"
)

// Format substitutes positional placeholders in s.
//
// "{N}" is replaced by args[N] and "{}" by the next argument in order;
// "{{" and "}}" stand for literal braces. Placeholders without a
// matching argument, and named ones such as "{name}", are left as they
// are, and surplus arguments are ignored. Without arguments s is
// returned unchanged.
func Format(s string, args ...interface{}) string {
	if len(args) == 0 || !strings.ContainsAny(s, "{}") {
		return s
	}

	var b strings.Builder
	b.Grow(len(s))
	auto := 0
	for i := 0; i < len(s); {
		c := s[i]
		switch {
		case c == '{' && i+1 < len(s) && s[i+1] == '{':
			b.WriteByte('{')
			i += 2
		case c == '}' && i+1 < len(s) && s[i+1] == '}':
			b.WriteByte('}')
			i += 2
		case c == '{':
			end := strings.IndexByte(s[i+1:], '}')
			if end < 0 {
				b.WriteString(s[i:])
				return b.String()
			}
			field := s[i+1 : i+1+end]
			if inner := strings.IndexByte(field, '{'); inner >= 0 {
				// the field starts again at the inner brace
				b.WriteString(s[i : i+1+inner])
				i += 1 + inner
				continue
			}
			placeholder := s[i : i+2+end]
			i += 2 + end

			idx := -1
			if field == "" {
				idx = auto
				auto++
			} else if n, err := strconv.Atoi(field); err == nil && n >= 0 {
				idx = n
			}
			if idx < 0 || idx >= len(args) {
				b.WriteString(placeholder)
				continue
			}
			b.WriteString(fmt.Sprint(args[idx]))
		default:
			b.WriteByte(c)
			i++
		}
	}
	return b.String()
}

// placeholders returns the set of positional placeholder indexes used
// in s. Automatic "{}" fields are numbered in order of appearance.
func placeholders(s string) map[int]bool {
	set := make(map[int]bool)
	auto := 0
	for i := 0; i < len(s); i++ {
		if s[i] != '{' {
			continue
		}
		if i+1 < len(s) && s[i+1] == '{' {
			i++
			continue
		}
		end := strings.IndexByte(s[i+1:], '}')
		if end < 0 {
			break
		}
		field := s[i+1 : i+1+end]
		if inner := strings.IndexByte(field, '{'); inner >= 0 {
			i += inner
			continue
		}
		if field == "" {
			set[auto] = true
			auto++
		} else if n, err := strconv.Atoi(field); err == nil && n >= 0 {
			set[n] = true
		}
		i += 1 + end
	}
	return set
}
