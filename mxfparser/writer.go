package mxfparser

import (
	"io"

	"github.com/smartjog/go-mxf/avid"
	"github.com/smartjog/go-mxf/codec"
	"github.com/smartjog/go-mxf/klv"
	"github.com/smartjog/go-mxf/partition"
)

// truncater is satisfied by *os.File and any other sink that can shed
// trailing bytes left over from a shorter rewrite.
type truncater interface {
	Truncate(size int64) error
}

// Write serializes f back to w from the current cursor position,
// reproducing every header and footer element in file order. The Avid
// Object Directory is rebuilt during that pass from the datasets written
// ahead of it. Write then back-patches the fields that depend on final
// byte positions: the Avid pseudo-Preface's pointer to the directory,
// the header and footer partition self-references, and the trailing
// Random Index Pack.
func Write(w io.WriteSeeker, f *File) error {
	var objectDirectoryEntries []avid.ObjectDirectoryEntry
	var avidPrefaceEl, objectDirectoryEl *Element

	headerPos, err := klv.WriteTriplet(w, f.HeaderPartition.Key, f.HeaderPartition.Encode())
	if err != nil {
		return err
	}
	f.HeaderPartition.Pos = headerPos

	for _, e := range f.HeaderElements {
		if e.Kind == KindObjectDirectory {
			e.OD.Entries = append([]avid.ObjectDirectoryEntry(nil), objectDirectoryEntries...)
		}

		pos, err := writeElement(w, e)
		if err != nil {
			return err
		}

		switch e.Kind {
		case KindDataSet:
			if id, ok := e.Set.InstanceUID(); ok {
				objectDirectoryEntries = append(objectDirectoryEntries, avid.ObjectDirectoryEntry{
					Key:    [16]byte(id),
					Offset: uint64(pos),
				})
			}
			if e.Key == avid.AAFMetadataPrefaceKey {
				avidPrefaceEl = e
			}
		case KindObjectDirectory:
			e.OD.Pos = pos
			objectDirectoryEl = e
		}
	}

	if len(f.Body) > 0 {
		if _, err := w.Write(f.Body); err != nil {
			return err
		}
	}

	footerPos, err := klv.WriteTriplet(w, f.FooterPartition.Key, f.FooterPartition.Encode())
	if err != nil {
		return err
	}
	f.FooterPartition.Pos = footerPos

	for _, e := range f.FooterElements {
		if _, err := writeElement(w, e); err != nil {
			return err
		}
	}

	if f.RandomIndex != nil {
		pos, err := klv.WriteTriplet(w, partition.RandomIndexPackKey, f.RandomIndex.Encode())
		if err != nil {
			return err
		}
		f.RandomIndex.Pos = pos
	}

	if f.OP == OPAvid && avidPrefaceEl != nil && objectDirectoryEl != nil {
		if err := patchAvidPreface(w, avidPrefaceEl, objectDirectoryEl.OD.Pos); err != nil {
			return err
		}
	}

	if err := patchHeaderPartition(w, f); err != nil {
		return err
	}
	if err := patchFooterPartition(w, f); err != nil {
		return err
	}
	if err := patchRandomIndex(w, f); err != nil {
		return err
	}

	end, err := w.Seek(0, io.SeekCurrent)
	if err != nil {
		return err
	}
	if t, ok := w.(truncater); ok {
		return t.Truncate(end)
	}

	return nil
}

// writeElement frames and writes one element, recording the file
// position its key landed at.
func writeElement(w io.WriteSeeker, e *Element) (int64, error) {
	encoded, err := e.Encode()
	if err != nil {
		return 0, err
	}

	pos, err := klv.WriteTriplet(w, e.Key, encoded)
	if err != nil {
		return 0, err
	}
	e.Pos = pos

	return pos, nil
}

// patchAvidPreface rewrites the Avid pseudo-Preface's object_directory
// field with the Object Directory's final position, in place: the field
// already decoded as a fixed-width AvidOffset, so the rewritten element
// occupies exactly the bytes it did on the first pass.
func patchAvidPreface(w io.WriteSeeker, avidPrefaceEl *Element, objectDirectoryPos int64) error {
	if !avidPrefaceEl.Set.SetElement("object_directory", codec.Value{Kind: codec.KindUintValue, Uint: uint64(objectDirectoryPos)}) {
		return nil
	}

	if _, err := w.Seek(avidPrefaceEl.Pos, io.SeekStart); err != nil {
		return err
	}

	_, err := writeElement(w, avidPrefaceEl)
	return err
}

// patchHeaderPartition rewrites the header Partition Pack in place with
// the footer's final position and the recomputed header_byte_count: the
// framed size of every header element, leaving out a leading Fill (the
// one read right behind the Header Partition Pack). Without such a Fill
// the Primer Pack and everything after it are counted.
func patchHeaderPartition(w io.WriteSeeker, f *File) error {
	f.HeaderPartition.FooterPartition = uint64(f.FooterPartition.Pos)

	var sum uint64
	elems := f.HeaderElements
	if len(elems) > 0 && elems[0].Kind == KindFill {
		elems = elems[1:]
	}
	for _, e := range elems {
		encoded, err := e.Encode()
		if err != nil {
			return err
		}
		sum += uint64(klv.KeySize + 9 + len(encoded))
	}
	f.HeaderPartition.HeaderByteCount = sum

	if _, err := w.Seek(f.HeaderPartition.Pos, io.SeekStart); err != nil {
		return err
	}
	_, err := klv.WriteTriplet(w, f.HeaderPartition.Key, f.HeaderPartition.Encode())

	return err
}

// patchFooterPartition rewrites the footer Partition Pack in place with
// its own position in both self-referencing fields.
func patchFooterPartition(w io.WriteSeeker, f *File) error {
	f.FooterPartition.FooterPartition = uint64(f.FooterPartition.Pos)
	f.FooterPartition.ThisPartition = uint64(f.FooterPartition.Pos)

	if _, err := w.Seek(f.FooterPartition.Pos, io.SeekStart); err != nil {
		return err
	}
	_, err := klv.WriteTriplet(w, f.FooterPartition.Key, f.FooterPartition.Encode())

	return err
}

// patchRandomIndex rewrites the trailing Random Index Pack in place,
// replacing whatever entries it held on read with exactly two: the
// header partition and the footer partition, the only two this writer
// ever produces.
func patchRandomIndex(w io.WriteSeeker, f *File) error {
	if f.RandomIndex == nil {
		return nil
	}

	f.RandomIndex.Entries = []partition.RandomIndexEntry{
		{BodySID: 0, ByteOffset: uint64(f.HeaderPartition.Pos)},
		{BodySID: 1, ByteOffset: uint64(f.FooterPartition.Pos)},
	}

	if _, err := w.Seek(f.RandomIndex.Pos, io.SeekStart); err != nil {
		return err
	}
	_, err := klv.WriteTriplet(w, partition.RandomIndexPackKey, f.RandomIndex.Encode())

	return err
}
