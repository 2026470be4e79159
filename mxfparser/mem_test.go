package mxfparser

import "io"

// memSeeker is a minimal in-memory io.ReadWriteSeeker (with Truncate)
// standing in for a file, so reader/writer tests never touch disk.
type memSeeker struct {
	buf []byte
	pos int64
}

func (m *memSeeker) Read(p []byte) (int, error) {
	if m.pos >= int64(len(m.buf)) {
		return 0, io.EOF
	}
	n := copy(p, m.buf[m.pos:])
	m.pos += int64(n)
	return n, nil
}

func (m *memSeeker) Write(p []byte) (int, error) {
	end := m.pos + int64(len(p))
	if end > int64(len(m.buf)) {
		grown := make([]byte, end)
		copy(grown, m.buf)
		m.buf = grown
	}
	n := copy(m.buf[m.pos:end], p)
	m.pos = end

	return n, nil
}

func (m *memSeeker) Seek(offset int64, whence int) (int64, error) {
	var newPos int64
	switch whence {
	case io.SeekStart:
		newPos = offset
	case io.SeekCurrent:
		newPos = m.pos + offset
	case io.SeekEnd:
		newPos = int64(len(m.buf)) + offset
	}
	m.pos = newPos

	return newPos, nil
}

func (m *memSeeker) Truncate(size int64) error {
	if size <= int64(len(m.buf)) {
		m.buf = m.buf[:size]
		return nil
	}

	grown := make([]byte, size)
	copy(grown, m.buf)
	m.buf = grown

	return nil
}
