package ply_test

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/plyio/ply"
	"github.com/plyio/ply/compress"
	"github.com/plyio/ply/format"
	"github.com/plyio/ply/header"
	"github.com/plyio/ply/schema"
	"github.com/plyio/ply/writer"
)

type fixedShape []schema.FieldTarget

func (s fixedShape) Fields() []schema.FieldTarget { return s }

type mapVisitor struct {
	rows *[]map[string]schema.Value
	cur  map[string]schema.Value
}

func (v *mapVisitor) Deliver(target string, _ format.ScalarKind, value schema.Value) error {
	v.cur[target] = value
	return nil
}
func (v *mapVisitor) Absent(string) error     { return nil }
func (v *mapVisitor) UseDefault(string) error { return nil }
func (v *mapVisitor) Close() error {
	*v.rows = append(*v.rows, v.cur)
	return nil
}

func vertexHeader() *header.Header {
	return &header.Header{
		Format:  format.ASCII,
		Version: "1.0",
		Elements: []header.Element{
			{
				Name:  "vertex",
				Count: 2,
				Properties: []header.Property{
					header.Scalar("x", format.F32),
					header.Scalar("y", format.F32),
					header.Scalar("z", format.F32),
				},
			},
		},
	}
}

type vertexEmitter struct{ x, y, z float32 }

func (e vertexEmitter) Value(target string, _ format.ScalarKind, _ bool) (schema.Value, error) {
	switch target {
	case "x":
		return e.x, nil
	case "y":
		return e.y, nil
	default:
		return e.z, nil
	}
}

func TestReadAll_WriteAll_RoundTrip(t *testing.T) {
	h := vertexHeader()
	vertices := []vertexEmitter{{0, 0, 0}, {1, 0, 0}}

	var out bytes.Buffer
	w, err := ply.WriteAll(&out, h)
	require.NoError(t, err)

	shape := fixedShape{{PrimaryName: "x"}, {PrimaryName: "y"}, {PrimaryName: "z"}}
	err = w.WriteElement(shape, len(vertices), func(i int) schema.RecordEmitter { return vertices[i] })
	require.NoError(t, err)
	require.NoError(t, w.Close())

	var rows []map[string]schema.Value
	binder := func(string, int) (schema.RecordShape, schema.VisitorFactory, error) {
		return shape, func() schema.RecordVisitor { return &mapVisitor{rows: &rows} }, nil
	}

	readHeader, err := ply.ReadAll(bytes.NewReader(out.Bytes()), binder)
	require.NoError(t, err)
	require.Equal(t, format.ASCII, readHeader.Format)
	require.Len(t, rows, 2)
	require.Equal(t, float32(1), rows[1]["x"])
}

func TestWriteCompressed_ReadCompressed_RoundTrip(t *testing.T) {
	h := vertexHeader()
	vertices := []vertexEmitter{{0, 0, 0}, {1, 0, 0}}
	shape := fixedShape{{PrimaryName: "x"}, {PrimaryName: "y"}, {PrimaryName: "z"}}

	var out bytes.Buffer
	err := ply.WriteCompressed(&out, compress.Zstd, h, func(w *writer.Writer) error {
		return w.WriteElement(shape, len(vertices), func(i int) schema.RecordEmitter { return vertices[i] })
	})
	require.NoError(t, err)

	var rows []map[string]schema.Value
	binder := func(string, int) (schema.RecordShape, schema.VisitorFactory, error) {
		return shape, func() schema.RecordVisitor { return &mapVisitor{rows: &rows} }, nil
	}

	readHeader, err := ply.ReadCompressed(bytes.NewReader(out.Bytes()), compress.Zstd, binder)
	require.NoError(t, err)
	require.Equal(t, format.ASCII, readHeader.Format)
	require.Len(t, rows, 2)
	require.Equal(t, float32(1), rows[1]["x"])
}
