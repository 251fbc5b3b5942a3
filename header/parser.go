package header

import (
	"bytes"
	"strconv"
	"strings"

	"github.com/plyio/ply/errs"
	"github.com/plyio/ply/format"
)

// TryParse attempts to parse a PLY header from the start of data.
//
// It returns (header, bytesConsumed, nil) once data contains a complete,
// well-formed header terminated by "end_header" followed by a line
// terminator. It returns (nil, 0, nil) if data does not yet contain enough
// bytes to make that determination — the caller should feed more bytes and
// retry. It returns (nil, 0, err) as soon as a present-but-unparseable line
// is found.
//
// Line terminators \n and \r\n are both accepted on input.
func TryParse(data []byte) (*Header, int, error) {
	h := &Header{}
	pos := 0
	lineNo := 0
	sawFormat := false
	currentElementIdx := -1

	for {
		nl := bytes.IndexByte(data[pos:], '\n')
		if nl == -1 {
			return nil, 0, nil
		}

		lineEnd := pos + nl
		line := data[pos:lineEnd]
		if n := len(line); n > 0 && line[n-1] == '\r' {
			line = line[:n-1]
		}
		consumed := lineEnd + 1
		lineNo++
		text := string(line)

		if len(text) > 0 && (text[0] == ' ' || text[0] == '\t') {
			return nil, 0, &errs.MalformedHeader{Reason: "leading whitespace is not permitted", Line: lineNo}
		}

		switch {
		case lineNo == 1:
			if text != "ply" {
				return nil, 0, &errs.MalformedHeader{Reason: "first line must be 'ply'", Line: lineNo}
			}

		case lineNo == 2:
			rest, ok := cutPrefix(text, "format ")
			if !ok {
				return nil, 0, &errs.MalformedHeader{Reason: "second line must be 'format <keyword> <version>'", Line: lineNo}
			}

			fields := strings.Fields(rest)
			if len(fields) != 2 {
				return nil, 0, &errs.MalformedHeader{Reason: "format line needs exactly keyword and version", Line: lineNo}
			}

			f, ok := format.ParseFormat(fields[0])
			if !ok {
				return nil, 0, &errs.MalformedHeader{Reason: "unrecognized format keyword " + strconv.Quote(fields[0]), Line: lineNo}
			}

			h.Format = f
			h.Version = fields[1]
			sawFormat = true

		case text == "end_header":
			return h, consumed, nil

		case text == "comment" || strings.HasPrefix(text, "comment "):
			h.Comments = append(h.Comments, strings.TrimPrefix(strings.TrimPrefix(text, "comment"), " "))

		case text == "obj_info" || strings.HasPrefix(text, "obj_info "):
			h.ObjInfo = append(h.ObjInfo, strings.TrimPrefix(strings.TrimPrefix(text, "obj_info"), " "))

		case strings.HasPrefix(text, "element "):
			if !sawFormat {
				return nil, 0, &errs.MalformedHeader{Reason: "element line before format", Line: lineNo}
			}

			fields := strings.Fields(strings.TrimPrefix(text, "element "))
			if len(fields) != 2 {
				return nil, 0, &errs.MalformedHeader{Reason: "element line needs exactly name and count", Line: lineNo}
			}

			count, err := strconv.ParseUint(fields[1], 10, 64)
			if err != nil {
				return nil, 0, &errs.MalformedHeader{Reason: "element count must be a non-negative integer", Line: lineNo}
			}

			h.Elements = append(h.Elements, Element{Name: fields[0], Count: count})
			currentElementIdx = len(h.Elements) - 1

		case strings.HasPrefix(text, "property "):
			if !sawFormat {
				return nil, 0, &errs.MalformedHeader{Reason: "property line before format", Line: lineNo}
			}
			if currentElementIdx < 0 {
				return nil, 0, &errs.MalformedHeader{Reason: "property line with no enclosing element", Line: lineNo}
			}

			prop, err := parseProperty(strings.TrimPrefix(text, "property "), lineNo)
			if err != nil {
				return nil, 0, err
			}

			elem := &h.Elements[currentElementIdx]
			if elem.PropertyIndex(prop.Name) != -1 {
				return nil, 0, &errs.MalformedHeader{
					Reason: "duplicate property name " + strconv.Quote(prop.Name) + " in element " + strconv.Quote(elem.Name),
					Line:   lineNo,
				}
			}

			elem.Properties = append(elem.Properties, prop)

		default:
			return nil, 0, &errs.MalformedHeader{Reason: "unrecognized header line " + strconv.Quote(text), Line: lineNo}
		}

		pos = consumed
	}
}

func parseProperty(rest string, lineNo int) (Property, error) {
	fields := strings.Fields(rest)

	if len(fields) >= 1 && fields[0] == "list" {
		if len(fields) != 4 {
			return Property{}, &errs.MalformedHeader{Reason: "property list needs count-kind, item-kind, and name", Line: lineNo}
		}

		countKind, ok := format.ParseScalarKind(fields[1])
		if !ok {
			return Property{}, &errs.MalformedHeader{Reason: "unrecognized list count kind " + strconv.Quote(fields[1]), Line: lineNo}
		}
		if !countKind.IsUnsignedInteger() {
			return Property{}, &errs.MalformedHeader{Reason: "list count kind must be an unsigned integer kind", Line: lineNo}
		}

		itemKind, ok := format.ParseScalarKind(fields[2])
		if !ok {
			return Property{}, &errs.MalformedHeader{Reason: "unrecognized list item kind " + strconv.Quote(fields[2]), Line: lineNo}
		}

		return List(fields[3], countKind, itemKind), nil
	}

	if len(fields) != 2 {
		return Property{}, &errs.MalformedHeader{Reason: "property line needs exactly type and name", Line: lineNo}
	}

	kind, ok := format.ParseScalarKind(fields[0])
	if !ok {
		return Property{}, &errs.MalformedHeader{Reason: "unrecognized scalar kind " + strconv.Quote(fields[0]), Line: lineNo}
	}

	return Scalar(fields[1], kind), nil
}

// cutPrefix is strings.CutPrefix, spelled out for readability at call sites
// that immediately check the prefix keyword.
func cutPrefix(s, prefix string) (string, bool) {
	if !strings.HasPrefix(s, prefix) {
		return "", false
	}

	return s[len(prefix):], true
}
