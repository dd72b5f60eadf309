package mesh

import (
	"encoding/binary"
	"encoding/json"
	"errors"
	"fmt"
	gomath "math"
	"os"
)

// GLBSource loads mesh geometry from a binary glTF (.glb) asset. Only the
// first primitive's positions, normals and indices are read; materials,
// skins and animations are ignored since the overlay supplies its own shading.
type GLBSource struct {
	Path string
}

// Name identifies the source for logs.
func (g GLBSource) Name() string { return "glb:" + g.Path }

// GLB container constants.
// Reference: https://registry.khronos.org/glTF/specs/2.0/glTF-2.0.html#glb-file-format-specification
const (
	glbMagic     = 0x46546C67 // "glTF"
	glbChunkJSON = 0x4E4F534A // "JSON"
	glbChunkBIN  = 0x004E4942 // "BIN\0"
)

// glTF accessor component types.
const (
	componentUByte  = 5121
	componentUShort = 5123
	componentUInt   = 5125
	componentFloat  = 5126
)

var (
	errBadMagic     = errors.New("not a GLB file (bad magic)")
	errBadVersion   = errors.New("unsupported GLB version")
	errNoJSONChunk  = errors.New("GLB missing JSON chunk")
	errNoGeometry   = errors.New("GLB contains no triangle geometry")
	errNoBinaryData = errors.New("GLB accessor references missing binary chunk")
)

type glbAccessor struct {
	BufferView    *int   `json:"bufferView"`
	ByteOffset    int    `json:"byteOffset"`
	ComponentType int    `json:"componentType"`
	Count         int    `json:"count"`
	Type          string `json:"type"`
}

type glbBufferView struct {
	Buffer     int `json:"buffer"`
	ByteOffset int `json:"byteOffset"`
	ByteLength int `json:"byteLength"`
	ByteStride int `json:"byteStride"`
}

type glbDocument struct {
	Meshes []struct {
		Primitives []struct {
			Attributes map[string]int `json:"attributes"`
			Indices    *int           `json:"indices"`
		} `json:"primitives"`
	} `json:"meshes"`
	Accessors   []glbAccessor   `json:"accessors"`
	BufferViews []glbBufferView `json:"bufferViews"`
}

// Load reads and decodes the GLB file.
func (g GLBSource) Load() (*Mesh, error) {
	data, err := os.ReadFile(g.Path)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", g.Path, err)
	}
	m, err := decodeGLB(data)
	if err != nil {
		return nil, fmt.Errorf("decoding %s: %w", g.Path, err)
	}
	return m, nil
}

// decodeGLB parses the GLB container and extracts the first primitive.
func decodeGLB(data []byte) (*Mesh, error) {
	if len(data) < 12 {
		return nil, errBadMagic
	}
	if binary.LittleEndian.Uint32(data[0:4]) != glbMagic {
		return nil, errBadMagic
	}
	if binary.LittleEndian.Uint32(data[4:8]) != 2 {
		return nil, errBadVersion
	}

	var jsonChunk, binChunk []byte
	for off := 12; off+8 <= len(data); {
		length := int(binary.LittleEndian.Uint32(data[off : off+4]))
		ctype := binary.LittleEndian.Uint32(data[off+4 : off+8])
		off += 8
		if off+length > len(data) {
			return nil, fmt.Errorf("truncated GLB chunk at offset %d", off)
		}
		switch ctype {
		case glbChunkJSON:
			jsonChunk = data[off : off+length]
		case glbChunkBIN:
			binChunk = data[off : off+length]
		}
		off += length
	}
	if jsonChunk == nil {
		return nil, errNoJSONChunk
	}

	var doc glbDocument
	if err := json.Unmarshal(jsonChunk, &doc); err != nil {
		return nil, fmt.Errorf("glTF JSON: %w", err)
	}
	return extractPrimitive(&doc, binChunk)
}

func extractPrimitive(doc *glbDocument, bin []byte) (*Mesh, error) {
	for _, gm := range doc.Meshes {
		for _, prim := range gm.Primitives {
			posIdx, ok := prim.Attributes["POSITION"]
			if !ok || prim.Indices == nil {
				continue
			}

			positions, err := readVec3Accessor(doc, bin, posIdx)
			if err != nil {
				return nil, err
			}
			indices, err := readIndexAccessor(doc, bin, *prim.Indices)
			if err != nil {
				return nil, err
			}

			m := &Mesh{Positions: positions, Indices: indices}
			if normIdx, ok := prim.Attributes["NORMAL"]; ok {
				if normals, err := readVec3Accessor(doc, bin, normIdx); err == nil && len(normals) == len(positions) {
					m.Normals = normals
				}
			}
			if m.Normals == nil {
				m.Normals = ComputeNormals(positions, indices)
			}
			m.Bounds = computeBounds(positions)
			return m, nil
		}
	}
	return nil, errNoGeometry
}

// accessorAt bounds-checks an accessor reference. Primitive attribute and
// index fields are untrusted input; every lookup goes through here before any
// dereference.
func accessorAt(doc *glbDocument, accIdx int) (glbAccessor, error) {
	if accIdx < 0 || accIdx >= len(doc.Accessors) {
		return glbAccessor{}, fmt.Errorf("accessor %d out of range (%d accessors)", accIdx, len(doc.Accessors))
	}
	return doc.Accessors[accIdx], nil
}

// accessorBytes resolves an accessor to its raw bytes and element stride.
func accessorBytes(doc *glbDocument, bin []byte, accIdx, elemSize int) ([]byte, int, int, error) {
	acc, err := accessorAt(doc, accIdx)
	if err != nil {
		return nil, 0, 0, err
	}
	if acc.BufferView == nil {
		return nil, 0, 0, fmt.Errorf("accessor %d has no buffer view", accIdx)
	}
	if *acc.BufferView < 0 || *acc.BufferView >= len(doc.BufferViews) {
		return nil, 0, 0, fmt.Errorf("buffer view %d out of range", *acc.BufferView)
	}
	view := doc.BufferViews[*acc.BufferView]
	if bin == nil {
		return nil, 0, 0, errNoBinaryData
	}
	if acc.Count < 0 || acc.ByteOffset < 0 || view.ByteOffset < 0 || view.ByteStride < 0 {
		return nil, 0, 0, fmt.Errorf("accessor %d has negative offset, stride or count", accIdx)
	}

	stride := view.ByteStride
	if stride == 0 {
		stride = elemSize
	}
	start := view.ByteOffset + acc.ByteOffset
	need := start + (acc.Count-1)*stride + elemSize
	if acc.Count > 0 && need > len(bin) {
		return nil, 0, 0, fmt.Errorf("accessor %d overruns binary chunk (%d > %d)", accIdx, need, len(bin))
	}
	return bin[start:], stride, acc.Count, nil
}

func readVec3Accessor(doc *glbDocument, bin []byte, accIdx int) ([][3]float32, error) {
	acc, err := accessorAt(doc, accIdx)
	if err != nil {
		return nil, err
	}
	if acc.Type != "VEC3" || acc.ComponentType != componentFloat {
		return nil, fmt.Errorf("accessor %d: expected float VEC3, got %s/%d", accIdx, acc.Type, acc.ComponentType)
	}
	raw, stride, count, err := accessorBytes(doc, bin, accIdx, 12)
	if err != nil {
		return nil, err
	}
	out := make([][3]float32, count)
	for i := 0; i < count; i++ {
		base := i * stride
		for a := 0; a < 3; a++ {
			bits := binary.LittleEndian.Uint32(raw[base+a*4 : base+a*4+4])
			out[i][a] = gomath.Float32frombits(bits)
		}
	}
	return out, nil
}

func readIndexAccessor(doc *glbDocument, bin []byte, accIdx int) ([]uint32, error) {
	acc, err := accessorAt(doc, accIdx)
	if err != nil {
		return nil, err
	}
	if acc.Type != "SCALAR" {
		return nil, fmt.Errorf("accessor %d: expected SCALAR indices, got %s", accIdx, acc.Type)
	}

	var elemSize int
	switch acc.ComponentType {
	case componentUByte:
		elemSize = 1
	case componentUShort:
		elemSize = 2
	case componentUInt:
		elemSize = 4
	default:
		return nil, fmt.Errorf("accessor %d: unsupported index component type %d", accIdx, acc.ComponentType)
	}

	raw, stride, count, err := accessorBytes(doc, bin, accIdx, elemSize)
	if err != nil {
		return nil, err
	}
	out := make([]uint32, count)
	for i := 0; i < count; i++ {
		base := i * stride
		switch elemSize {
		case 1:
			out[i] = uint32(raw[base])
		case 2:
			out[i] = uint32(binary.LittleEndian.Uint16(raw[base : base+2]))
		case 4:
			out[i] = binary.LittleEndian.Uint32(raw[base : base+4])
		}
	}
	return out, nil
}
