package wire

import (
	"encoding/binary"
	"errors"
	"fmt"
	"io"
)

// MessageType identifies the kind of frame on the wire.
type MessageType byte

const (
	NegotiateRequest  MessageType = 1
	NegotiateResponse MessageType = 2
	RefAdvertisement  MessageType = 3
	RefUpdate         MessageType = 4
	RefWanted         MessageType = 5
	PackData          MessageType = 6
	PackComplete      MessageType = 7
	Ok                MessageType = 8
	ErrorMsg          MessageType = 9
)

func (t MessageType) String() string {
	switch t {
	case NegotiateRequest:
		return "NegotiateRequest"
	case NegotiateResponse:
		return "NegotiateResponse"
	case RefAdvertisement:
		return "RefAdvertisement"
	case RefUpdate:
		return "RefUpdate"
	case RefWanted:
		return "RefWanted"
	case PackData:
		return "PackData"
	case PackComplete:
		return "PackComplete"
	case Ok:
		return "Ok"
	case ErrorMsg:
		return "Error"
	default:
		return fmt.Sprintf("MessageType(%d)", byte(t))
	}
}

// ErrProtocolViolation covers a wrong first message, an unexpected message
// type for the current state, or an unsupported version.
var ErrProtocolViolation = errors.New("wire: protocol violation")

// ErrUnexpectedEOF is raised when the transport ends before a frame in
// progress is fully read.
var ErrUnexpectedEOF = errors.New("wire: unexpected eof")

// ProtocolVersion is the version string exchanged in NegotiateResponse.
const ProtocolVersion = "v1"

// maxFrameLength guards against a hostile or corrupt length field driving an
// unbounded allocation; no legitimate object or ref listing approaches it.
const maxFrameLength = 1 << 30

// WriteFrame writes length (4-byte big-endian, payload length only) followed
// by the type byte and the payload itself.
func WriteFrame(w io.Writer, typ MessageType, payload []byte) error {
	var header [5]byte
	binary.BigEndian.PutUint32(header[:4], uint32(len(payload)))
	header[4] = byte(typ)
	if _, err := w.Write(header[:]); err != nil {
		return fmt.Errorf("wire: write frame header: %w", err)
	}
	if len(payload) > 0 {
		if _, err := w.Write(payload); err != nil {
			return fmt.Errorf("wire: write frame payload: %w", err)
		}
	}
	return nil
}

// ReadFrame reads one frame. A clean EOF before any byte of a new frame has
// arrived is returned as io.EOF; any other short read is ErrUnexpectedEOF,
// per spec: "a short read returning zero bytes before the full frame is
// consumed is a fatal UnexpectedEof."
func ReadFrame(r io.Reader) (MessageType, []byte, error) {
	var lenBuf [4]byte
	if _, err := io.ReadFull(r, lenBuf[:]); err != nil {
		if errors.Is(err, io.EOF) {
			return 0, nil, io.EOF
		}
		return 0, nil, fmt.Errorf("%w: frame length: %v", ErrUnexpectedEOF, err)
	}
	length := binary.BigEndian.Uint32(lenBuf[:])
	if length > maxFrameLength {
		return 0, nil, fmt.Errorf("%w: frame length %d exceeds maximum", ErrProtocolViolation, length)
	}

	var typBuf [1]byte
	if _, err := io.ReadFull(r, typBuf[:]); err != nil {
		return 0, nil, fmt.Errorf("%w: frame type: %v", ErrUnexpectedEOF, err)
	}

	payload := make([]byte, length)
	if length > 0 {
		if _, err := io.ReadFull(r, payload); err != nil {
			return 0, nil, fmt.Errorf("%w: frame payload: %v", ErrUnexpectedEOF, err)
		}
	}
	return MessageType(typBuf[0]), payload, nil
}
