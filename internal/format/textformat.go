package format

import (
	"strings"

	"github.com/accessexpr/accessexpr/internal/value"
)

// textElement is one parsed element of a custom text format section.
type textElement struct {
	literal       string
	required      bool // '@' (required) vs '&' (optional)
	isPlaceholder bool
}

type textSection struct {
	elems      []textElement
	forceLower bool
	forceUpper bool
	leftAlign  bool // '!' flips the default right alignment to left
}

type textPattern struct {
	normal *textSection
	empty  *textSection // second section, used for "" and Null
}

func parseTextPattern(pattern string) (*textPattern, error) {
	parts := splitSections(pattern)
	tp := &textPattern{}
	sec, err := parseTextSection(parts[0])
	if err != nil {
		return nil, err
	}
	tp.normal = sec
	if len(parts) > 1 {
		sec2, err := parseTextSection(parts[1])
		if err != nil {
			return nil, err
		}
		tp.empty = sec2
	}
	return tp, nil
}

func parseTextSection(pattern string) (*textSection, error) {
	sec := &textSection{}
	runes := []rune(pattern)
	for i := 0; i < len(runes); i++ {
		switch runes[i] {
		case '\\':
			if i+1 < len(runes) {
				i++
				sec.elems = append(sec.elems, textElement{literal: string(runes[i])})
			}
		case '"':
			j := i + 1
			for j < len(runes) && runes[j] != '"' {
				j++
			}
			sec.elems = append(sec.elems, textElement{literal: string(runes[i+1 : j])})
			i = j
		case '@':
			sec.elems = append(sec.elems, textElement{isPlaceholder: true, required: true})
		case '&':
			sec.elems = append(sec.elems, textElement{isPlaceholder: true, required: false})
		case '<':
			sec.forceLower = true
		case '>':
			sec.forceUpper = true
		case '!':
			sec.leftAlign = true
		default:
			sec.elems = append(sec.elems, textElement{literal: string(runes[i])})
		}
	}
	// '<' and '>' mutually cancel when both given.
	if sec.forceLower && sec.forceUpper {
		sec.forceLower = false
		sec.forceUpper = false
	}
	return sec, nil
}

func renderText(v value.Value, tp *textPattern) string {
	s := value.AsString(v)
	sec := tp.normal
	if (v.IsNull() || s == "") && tp.empty != nil {
		sec = tp.empty
	}

	placeholderCount := 0
	for _, e := range sec.elems {
		if e.isPlaceholder {
			placeholderCount++
		}
	}

	src := []rune(s)
	pos := 0
	if sec.leftAlign {
		pos = 0 // consume left to right, pad on the right
	} else {
		// default alignment is right: if source is shorter than the
		// placeholder count, skip leading placeholders so the source
		// lines up against the rightmost placeholders.
		deficit := placeholderCount - len(src)
		if deficit > 0 {
			pos = -deficit
		}
	}

	var b strings.Builder
	srcIdx := 0
	for _, e := range sec.elems {
		if !e.isPlaceholder {
			b.WriteString(e.literal)
			continue
		}
		if pos < 0 {
			// this placeholder has no corresponding source character;
			// required placeholders render blank, optional render nothing.
			if e.required {
				b.WriteByte(' ')
			}
			pos++
			continue
		}
		if srcIdx < len(src) {
			b.WriteRune(src[srcIdx])
			srcIdx++
		} else if e.required {
			b.WriteByte(' ')
		}
		pos++
	}
	if srcIdx < len(src) {
		b.WriteString(string(src[srcIdx:]))
	}

	out := b.String()
	switch {
	case sec.forceLower:
		out = strings.ToLower(out)
	case sec.forceUpper:
		out = strings.ToUpper(out)
	}
	return out
}
