package crsf

import "bytes"

// Framer recovers frame boundaries from an unstructured serial byte
// stream. One Framer owns one link: it keeps a single accumulator across
// reads and must not be shared between goroutines.
type Framer struct {
	sync byte
	buf  []byte
}

// NewFramer creates a Framer that synchronizes on frames addressed with
// the given sync byte.
func NewFramer(sync byte) *Framer {
	return &Framer{sync: sync}
}

// Feed appends a chunk of received bytes and extracts every complete,
// CRC-valid frame buffered so far. It returns the type+payload bytes of
// each valid frame (copies, safe to retain) and the number of frames
// discarded for CRC mismatch.
//
// Recovery rules:
//   - Bytes before the first sync byte are garbage and are trimmed.
//   - If no sync byte is present at all, the whole buffer is dropped.
//     This can lose the head of a frame whose sync byte has not arrived
//     yet when garbage shares the buffer; kept for compatibility with
//     the sync byte being the only frame marker.
//   - A length byte implying a frame above MaxFrameSize is treated as
//     corrupt: only the sync byte is skipped, so a later valid frame in
//     the same buffer is still recovered.
//   - A frame failing its CRC is drained without being emitted.
func (f *Framer) Feed(chunk []byte) (payloads [][]byte, crcErrs int) {
	f.buf = append(f.buf, chunk...)
	for {
		pos := bytes.IndexByte(f.buf, f.sync)
		if pos < 0 {
			f.buf = f.buf[:0]
			return
		}
		if pos > 0 {
			f.buf = f.buf[pos:]
		}
		if len(f.buf) < 2 {
			return // need the length byte
		}
		total := int(f.buf[1]) + 2
		if total > MaxFrameSize || total < 4 {
			// Corrupt length byte. Skip the sync byte and rescan.
			f.buf = f.buf[1:]
			continue
		}
		if len(f.buf) < total {
			return // partial frame
		}
		payload := f.buf[2 : total-1]
		if CRC8(payload) == f.buf[total-1] {
			payloads = append(payloads, append([]byte(nil), payload...))
		} else {
			crcErrs++
		}
		f.buf = f.buf[total:]
	}
}

// Pending reports the number of buffered bytes awaiting more data.
func (f *Framer) Pending() int {
	return len(f.buf)
}
