package header

import (
	"strconv"
	"strings"

	"github.com/plyio/ply/errs"
	"github.com/plyio/ply/format"
)

// Validate checks the invariants a Header must satisfy before it is
// emitted: a recognized Format, and property names unique within each
// element. Bytes calls this internally; exported so a writer can fail fast
// before accumulating any output.
func (h *Header) Validate() error {
	switch h.Format {
	case format.ASCII, format.BinaryLittleEndian, format.BinaryBigEndian:
	default:
		return &errs.MalformedHeader{Reason: "header has no recognized format", Line: 0}
	}

	for _, e := range h.Elements {
		seen := make(map[string]struct{}, len(e.Properties))
		for _, p := range e.Properties {
			if _, dup := seen[p.Name]; dup {
				return &errs.MalformedHeader{
					Reason: "duplicate property name " + strconv.Quote(p.Name) + " in element " + strconv.Quote(e.Name),
				}
			}
			seen[p.Name] = struct{}{}

			if p.IsList && !p.CountKind.IsUnsignedInteger() {
				return &errs.MalformedHeader{
					Reason: "list property " + strconv.Quote(p.Name) + " has a non-unsigned count kind",
				}
			}
		}
	}

	return nil
}

// Bytes serializes h into the canonical ASCII header text, terminated by
// "end_header\n". Output always uses \n, even if the source was parsed from
// a \r\n file.
func (h *Header) Bytes() ([]byte, error) {
	if err := h.Validate(); err != nil {
		return nil, err
	}

	var b strings.Builder
	b.WriteString("ply\n")
	b.WriteString("format ")
	b.WriteString(h.Format.String())
	b.WriteByte(' ')
	b.WriteString(h.Version)
	b.WriteByte('\n')

	for _, c := range h.Comments {
		b.WriteString("comment ")
		b.WriteString(c)
		b.WriteByte('\n')
	}

	for _, o := range h.ObjInfo {
		b.WriteString("obj_info ")
		b.WriteString(o)
		b.WriteByte('\n')
	}

	for _, e := range h.Elements {
		b.WriteString("element ")
		b.WriteString(e.Name)
		b.WriteByte(' ')
		b.WriteString(strconv.FormatUint(e.Count, 10))
		b.WriteByte('\n')

		for _, p := range e.Properties {
			b.WriteString("property ")
			if p.IsList {
				b.WriteString("list ")
				b.WriteString(p.CountKind.String())
				b.WriteByte(' ')
				b.WriteString(p.ItemKind.String())
			} else {
				b.WriteString(p.Kind.String())
			}
			b.WriteByte(' ')
			b.WriteString(p.Name)
			b.WriteByte('\n')
		}
	}

	b.WriteString("end_header\n")

	return []byte(b.String()), nil
}
