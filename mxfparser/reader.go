package mxfparser

import (
	"bytes"
	"io"
	"regexp"

	"github.com/smartjog/go-mxf/avid"
	"github.com/smartjog/go-mxf/dataset"
	"github.com/smartjog/go-mxf/errs"
	"github.com/smartjog/go-mxf/graph"
	"github.com/smartjog/go-mxf/klv"
	"github.com/smartjog/go-mxf/partition"
	"github.com/smartjog/go-mxf/primer"
)

// runInSearchWindow bounds how far SMPTE 377M allows a reader to search
// for the first Partition Pack key, accommodating an arbitrary run-in
// sequence ahead of the real MXF stream.
const runInSearchWindow = 65536

var partitionPackPrefix = []byte{0x06, 0x0e, 0x2b, 0x34, 0x02, 0x05, 0x01, 0x01, 0x0d, 0x01, 0x02, 0x01}

// OperationalPattern selects which header-metadata walker a file uses.
type OperationalPattern int

const (
	OPUnknown OperationalPattern = iota
	OPAvid
	OPOP1a
)

var (
	avidOPKey     = mustUL("060e2b34040101030e04020110000000")
	op1aOPPattern = regexp.MustCompile(`^060e2b34040101010d0102010101..00$`)
)

func mustUL(hexStr string) klv.UL {
	ul, err := klv.ULFromHex(hexStr)
	if err != nil {
		panic(err)
	}

	return ul
}

func detectOP(op klv.UL) OperationalPattern {
	if op == avidOPKey {
		return OPAvid
	}
	if op1aOPPattern.MatchString(op.String()) {
		return OPOP1a
	}

	return OPUnknown
}

// knownAAFDefinitionKeys are the dark-dataset keys an Avid export
// carries for its own metadata dictionary description (AAF definitions
// of compound/simple types and their properties).
var knownAAFDefinitionKeys = map[klv.UL]bool{
	mustUL("060e2b34025301010d01010102010000"): true,
	mustUL("060e2b34025301010d01010102020000"): true,
	mustUL("060e2b34025301010d01010102040000"): true,
	mustUL("060e2b34025301010d01010102050000"): true,
	mustUL("060e2b34025301010d01010102060000"): true,
	mustUL("060e2b34025301010d01010102070000"): true,
	mustUL("060e2b34025301010d01010102080000"): true,
	mustUL("060e2b34025301010d01010102090000"): true,
	mustUL("060e2b34025301010d010101020a0000"): true,
	mustUL("060e2b34025301010d010101020b0000"): true,
	mustUL("060e2b34025301010d010101020c0000"): true,
	mustUL("060e2b34025301010d010101020d0000"): true,
	mustUL("060e2b34025301010d010101020e0000"): true,
	mustUL("060e2b34025301010d01010102200000"): true,
	mustUL("060e2b34025301010d01010102210000"): true,
	mustUL("060e2b34025301010d01010102220000"): true,
	mustUL("060e2b34025301010d01010102250000"): true,
	mustUL("060e2b34025301010d01010101011b00"): true,
	mustUL("060e2b34025301010d01010101011f00"): true,
	mustUL("060e2b34025301010d01010101012000"): true,
	mustUL("060e2b34025301010d01010101012200"): true,
}

// knownAvidDataSetKeys carries structural sets an Avid export encodes
// with its own ProductVersion-incompatible field set (decoded via the
// avid.PrimerForDataSet customization).
var knownAvidDataSetKeys = map[klv.UL]bool{
	mustUL("060e2b34025301010d01010101012800"): true, // CDCIEssenceDescriptor
	mustUL("060e2b34025301010d01010101013000"): true, // Identification
	mustUL("060e2b34025301010d01010101013600"): true, // MaterialPackage
	mustUL("060e2b34025301010d01010101013f00"): true, // TaggedValue
}

// knownStructuralKeys are structural sets decoded with a plain
// (non-Avid-customized) Primer under either operational pattern.
var knownStructuralKeys = map[klv.UL]bool{
	mustUL("060e2b34025301010d01010101010900"): true, // Filler
	mustUL("060e2b34025301010d01010101010f00"): true, // Sequence
	mustUL("060e2b34025301010d01010101011100"): true, // SourceClip
	mustUL("060e2b34025301010d01010101011400"): true, // TimecodeComponent
	mustUL("060e2b34025301010d01010101011800"): true, // ContentStorage
	mustUL("060e2b34025301010d01010101013700"): true, // SourcePackage
	mustUL("060e2b34025301010d01010101013b00"): true, // TimelineTrack
	mustUL("060e2b34025301010d01010101012300"): true, // EssenceContainerData
	mustUL("060e2b34025301010d01010101014200"): true, // GenericSoundEssenceDescriptor
	mustUL("060e2b34025301010d01010101014400"): true, // MultipleDescriptor
	mustUL("060e2b34025301010d01010101014700"): true, // AES3PCMDescriptor
	mustUL("060e2b34025301010d01010101014800"): true, // WaveAudioDescriptor
	mustUL("060e2b34025301010d01010101015100"): true, // MPEG2VideoDescriptor
}

var prefaceKey = mustUL("060e2b34025301010d01010101012f00")

// File is a fully decoded MXF stream: the header and footer partitions,
// their metadata elements in file order, and the addressable object
// graph built from every dataset carrying an InstanceUID.
type File struct {
	OP OperationalPattern

	HeaderPartition *partition.Pack
	HeaderPrimer    *primer.Primer
	Preface         *dataset.DataSet
	AvidPreface     *dataset.DataSet
	HeaderElements  []*Element

	// Body carries the raw bytes between the end of header metadata and
	// the Footer Partition Pack key, verbatim, so Write can reproduce
	// essence and index data it never decodes.
	Body []byte

	FooterPartition *partition.Pack
	FooterElements  []*Element
	RandomIndex     *partition.RandomIndex

	Graph *graph.Graph
}

// Read parses a complete MXF stream from r, which must be positioned at
// or before the start of any run-in sequence preceding the first
// Partition Pack.
func Read(r io.ReadSeeker, opts ...Option) (*File, error) {
	cfg, err := newConfig(opts...)
	if err != nil {
		return nil, err
	}

	if err := skipRunIn(r); err != nil {
		return nil, err
	}

	f := &File{Graph: graph.New()}

	if err := f.readHeaderPartition(r); err != nil {
		return nil, err
	}

	headerMetadataStart, err := currentPos(r)
	if err != nil {
		return nil, err
	}
	headerEnd := headerMetadataStart + int64(f.HeaderPartition.HeaderByteCount)

	f.OP = detectOP(f.HeaderPartition.OperationalPattern)

	if f.OP == OPAvid {
		err = f.readAvidHeaderMetadata(r, headerEnd, cfg)
	} else {
		err = f.readOP1aHeaderMetadata(r, headerEnd, cfg)
	}
	if err != nil {
		return nil, err
	}

	if err := f.skipBody(r); err != nil {
		return nil, err
	}

	if err := f.readFooterPartition(r); err != nil {
		return nil, err
	}

	if err := f.readFooterExtra(r); err != nil {
		return nil, err
	}

	f.buildGraph()

	if err := cfg.checkStrict(f); err != nil {
		return nil, err
	}

	return f, nil
}

func skipRunIn(r io.ReadSeeker) error {
	start, err := r.Seek(0, io.SeekCurrent)
	if err != nil {
		return err
	}

	buf := make([]byte, runInSearchWindow)
	n, err := io.ReadFull(r, buf)
	if err != nil && err != io.ErrUnexpectedEOF {
		return err
	}
	buf = buf[:n]

	idx := bytes.Index(buf, partitionPackPrefix)
	if idx == -1 {
		return errs.ErrNotMXF
	}

	_, err = r.Seek(start+int64(idx), io.SeekStart)

	return err
}

func currentPos(r io.ReadSeeker) (int64, error) {
	return r.Seek(0, io.SeekCurrent)
}

// readHeaderPartition reads the Header Partition Pack and, per SMPTE
// 377M, the optional KLV-Fill immediately behind it. That Fill pads the
// partition out to its KAG boundary and is not counted in
// header_byte_count, so it must be consumed here, before the caller
// measures where the header metadata (and therefore header_byte_count)
// actually starts.
func (f *File) readHeaderPartition(r io.ReadSeeker) error {
	t, err := klv.OpenKLV(r)
	if err != nil {
		return err
	}

	value, err := klv.ReadValue(r, t)
	if err != nil {
		return err
	}

	p, err := partition.Decode(t.Key, t.Pos, t.BytesNum, value)
	if err != nil {
		return err
	}
	if p.Kind != partition.Header {
		return errs.ErrBadPartition
	}

	f.HeaderPartition = p

	key, err := klv.PeekKey(r)
	if err != nil {
		return err
	}
	if partition.IsFillKey(key) {
		ft, fv, err := readElement(r)
		if err != nil {
			return err
		}
		f.HeaderElements = append(f.HeaderElements, &Element{Kind: KindFill, Key: ft.Key, Pos: ft.Pos, Raw: fv})
	}

	return nil
}

// readElement reads one top-level KLV and classifies it, but does not
// decode DataSet-shaped values: callers that recognize the key do that
// themselves with the right Primer customization.
func readElement(r io.ReadSeeker) (klv.Triplet, []byte, error) {
	t, err := klv.OpenKLV(r)
	if err != nil {
		return klv.Triplet{}, nil, err
	}

	value, err := klv.ReadValue(r, t)
	if err != nil {
		return klv.Triplet{}, nil, err
	}

	return t, value, nil
}

func (f *File) readAvidHeaderMetadata(r io.ReadSeeker, headerEnd int64, cfg *config) error {
	for {
		pos, err := currentPos(r)
		if err != nil {
			return err
		}
		if pos >= headerEnd {
			break
		}

		t, value, err := readElement(r)
		if err != nil {
			return err
		}

		switch {
		case partition.IsFillKey(t.Key):
			f.HeaderElements = append(f.HeaderElements, &Element{Kind: KindFill, Key: t.Key, Pos: t.Pos, Raw: value})

		case t.Key == primer.PrimerPackKey:
			p, err := primer.Decode(cfg.dict, value)
			if err != nil {
				return err
			}
			f.HeaderPrimer = p
			f.HeaderElements = append(f.HeaderElements, &Element{Kind: KindPrimer, Key: t.Key, Pos: t.Pos, Primer: p})

		case t.Key == prefaceKey:
			ds, err := dataset.Decode(t.Key, t.Pos, value, f.HeaderPrimer)
			if err != nil {
				return err
			}
			f.Preface = ds
			f.HeaderElements = append(f.HeaderElements, &Element{Kind: KindDataSet, Key: t.Key, Pos: t.Pos, Set: ds})

		case t.Key == avid.AAFMetadataPrefaceKey:
			ds, err := dataset.Decode(t.Key, t.Pos, value, avid.PrimerForMetadataPreface(f.HeaderPrimer))
			if err != nil {
				return err
			}
			f.AvidPreface = ds
			f.HeaderElements = append(f.HeaderElements, &Element{Kind: KindDataSet, Key: t.Key, Pos: t.Pos, Set: ds})

		case knownAAFDefinitionKeys[t.Key]:
			ds, err := dataset.Decode(t.Key, t.Pos, value, avid.PrimerForAAFDefinition(f.HeaderPrimer))
			if err != nil {
				return err
			}
			f.HeaderElements = append(f.HeaderElements, &Element{Kind: KindDataSet, Key: t.Key, Pos: t.Pos, Set: ds})

		case knownStructuralKeys[t.Key]:
			ds, err := dataset.Decode(t.Key, t.Pos, value, f.HeaderPrimer)
			if err != nil {
				return err
			}
			f.HeaderElements = append(f.HeaderElements, &Element{Kind: KindDataSet, Key: t.Key, Pos: t.Pos, Set: ds})

		case knownAvidDataSetKeys[t.Key]:
			ds, err := dataset.Decode(t.Key, t.Pos, value, avid.PrimerForDataSet(f.HeaderPrimer))
			if err != nil {
				return err
			}
			f.HeaderElements = append(f.HeaderElements, &Element{Kind: KindDataSet, Key: t.Key, Pos: t.Pos, Set: ds})

		case t.Key == avid.ObjectDirectoryKey:
			od, err := avid.DecodeObjectDirectory(t.Pos, value)
			if err != nil {
				return err
			}
			f.HeaderElements = append(f.HeaderElements, &Element{Kind: KindObjectDirectory, Key: t.Key, Pos: t.Pos, OD: od})

		default:
			f.HeaderElements = append(f.HeaderElements, &Element{Kind: KindDark, Key: t.Key, Pos: t.Pos, Raw: value})
		}
	}

	return nil
}

func (f *File) readOP1aHeaderMetadata(r io.ReadSeeker, headerEnd int64, cfg *config) error {
	for {
		pos, err := currentPos(r)
		if err != nil {
			return err
		}
		if pos >= headerEnd {
			break
		}

		t, value, err := readElement(r)
		if err != nil {
			return err
		}

		switch {
		case partition.IsFillKey(t.Key):
			f.HeaderElements = append(f.HeaderElements, &Element{Kind: KindFill, Key: t.Key, Pos: t.Pos, Raw: value})

		case t.Key == primer.PrimerPackKey:
			p, err := primer.Decode(cfg.dict, value)
			if err != nil {
				return err
			}
			f.HeaderPrimer = p
			f.HeaderElements = append(f.HeaderElements, &Element{Kind: KindPrimer, Key: t.Key, Pos: t.Pos, Primer: p})

		case t.Key == prefaceKey:
			ds, err := dataset.Decode(t.Key, t.Pos, value, f.HeaderPrimer)
			if err != nil {
				return err
			}
			f.Preface = ds
			f.HeaderElements = append(f.HeaderElements, &Element{Kind: KindDataSet, Key: t.Key, Pos: t.Pos, Set: ds})

		case knownStructuralKeys[t.Key], knownAvidDataSetKeys[t.Key]:
			ds, err := dataset.Decode(t.Key, t.Pos, value, f.HeaderPrimer)
			if err != nil {
				return err
			}
			f.HeaderElements = append(f.HeaderElements, &Element{Kind: KindDataSet, Key: t.Key, Pos: t.Pos, Set: ds})

		default:
			f.HeaderElements = append(f.HeaderElements, &Element{Kind: KindDark, Key: t.Key, Pos: t.Pos, Raw: value})
		}
	}

	return nil
}

var footerPartitionKey = mustUL("060e2b34020501010d01020101040400")

// skipBody consumes every KLV between the end of header metadata and
// the Footer Partition Pack key without decoding it, matching the
// original parser's structural skip of body essence/index data.
func (f *File) skipBody(r io.ReadSeeker) error {
	start, err := currentPos(r)
	if err != nil {
		return err
	}

	for {
		key, err := klv.PeekKey(r)
		if err != nil {
			return err
		}
		if key == footerPartitionKey {
			break
		}

		t, err := klv.OpenKLV(r)
		if err != nil {
			return err
		}
		if err := klv.Skip(r, t); err != nil {
			return err
		}
	}

	end, err := currentPos(r)
	if err != nil {
		return err
	}

	if _, err := r.Seek(start, io.SeekStart); err != nil {
		return err
	}
	body := make([]byte, end-start)
	if _, err := io.ReadFull(r, body); err != nil {
		return err
	}
	f.Body = body

	return nil
}

func (f *File) readFooterPartition(r io.ReadSeeker) error {
	t, value, err := readElement(r)
	if err != nil {
		return err
	}

	p, err := partition.Decode(t.Key, t.Pos, t.BytesNum, value)
	if err != nil {
		return err
	}
	if p.Kind != partition.Footer {
		return errs.ErrBadPartition
	}

	f.FooterPartition = p

	return nil
}

var randomIndexPackKey = partition.RandomIndexPackKey

// readFooterExtra consumes the footer's optional fill and dark items
// (such as an Index Table Segment) up to the trailing Random Index
// Pack, then decodes it.
func (f *File) readFooterExtra(r io.ReadSeeker) error {
	for {
		key, err := klv.PeekKey(r)
		if err != nil {
			return err
		}

		if key == randomIndexPackKey {
			t, value, err := readElement(r)
			if err != nil {
				return err
			}

			ri, err := partition.DecodeRandomIndex(t.Pos, t.BytesNum, value)
			if err != nil {
				return err
			}
			f.RandomIndex = ri

			return nil
		}

		t, value, err := readElement(r)
		if err != nil {
			return err
		}

		if partition.IsFillKey(t.Key) {
			f.FooterElements = append(f.FooterElements, &Element{Kind: KindFill, Key: t.Key, Pos: t.Pos, Raw: value})
		} else {
			f.FooterElements = append(f.FooterElements, &Element{Kind: KindDark, Key: t.Key, Pos: t.Pos, Raw: value})
		}
	}
}

// buildGraph indexes every decoded DataSet into the object graph.
func (f *File) buildGraph() {
	for _, e := range f.HeaderElements {
		if e.Kind == KindDataSet {
			f.Graph.Add(e.Set)
		}
	}
}

// Stats reports how heavily this file's header Primer leans on
// Avid-only or otherwise non-SMPTE local-tag mappings, by counting
// mappings whose UL doesn't start with the SMPTE root prefix. A stock
// file maps every local tag to a published UL; a large count marks a
// heavily Avid-customized one.
func (f *File) Stats() (customEncodings int, ok bool) {
	if f.HeaderPrimer == nil {
		return 0, false
	}

	return f.HeaderPrimer.CustomEncodingCount(), true
}
