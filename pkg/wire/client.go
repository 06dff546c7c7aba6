package wire

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/brinevcs/magicrepos/pkg/object"
	"github.com/brinevcs/magicrepos/pkg/refs"
)

// PushFailed wraps the Error payload text a server returned in response to
// a push.
type PushFailed struct{ Message string }

func (e *PushFailed) Error() string { return "wire: push failed: " + e.Message }

// PullFailed wraps the Error payload text a server returned in response to
// a pull.
type PullFailed struct{ Message string }

func (e *PullFailed) Error() string { return "wire: pull failed: " + e.Message }

// Push runs the client side of a push session over stream. It sends every
// local branch tip and the full reachable closure of each tip, not
// subtracted against what the remote already advertised.
func Push(stream io.ReadWriter, store *object.Store, refStore *refs.Store, owner, repo string) error {
	if err := WriteFrame(stream, NegotiateRequest, EncodeNegotiateRequest(OpPush, owner, repo)); err != nil {
		return fmt.Errorf("wire: push: %w", err)
	}
	if err := expectNegotiateResponse(stream); err != nil {
		return fmt.Errorf("wire: push: %w", err)
	}
	if _, err := readRefAdvertisement(stream); err != nil {
		return fmt.Errorf("wire: push: %w", err)
	}

	branches, err := refStore.ListBranches()
	if err != nil {
		return fmt.Errorf("wire: push: %w", err)
	}

	type update struct {
		refname string
		id      object.Hash
	}
	var updates []update
	sendSet := make(map[object.Hash]struct{})
	for _, name := range branches {
		id, ok, err := refStore.ResolveBranch(name)
		if err != nil {
			return fmt.Errorf("wire: push: %w", err)
		}
		if !ok {
			continue
		}
		updates = append(updates, update{refname: "refs/heads/" + name, id: id})
		if err := store.Collect(id, sendSet); err != nil {
			return fmt.Errorf("wire: push: %w", err)
		}
	}

	for _, u := range updates {
		if err := WriteFrame(stream, RefUpdate, EncodeRefUpdate(u.refname, u.id)); err != nil {
			return fmt.Errorf("wire: push: %w", err)
		}
	}
	for id := range sendSet {
		if err := sendObject(stream, store, id); err != nil {
			return fmt.Errorf("wire: push: %w", err)
		}
	}
	if err := WriteFrame(stream, PackComplete, nil); err != nil {
		return fmt.Errorf("wire: push: %w", err)
	}

	typ, payload, err := ReadFrame(stream)
	if err != nil {
		return fmt.Errorf("wire: push: %w", err)
	}
	switch typ {
	case Ok:
		return nil
	case ErrorMsg:
		return &PushFailed{Message: string(payload)}
	default:
		return fmt.Errorf("wire: push: %w: unexpected reply %s", ErrProtocolViolation, typ)
	}
}

// Pull runs the client side of a pull session, writing every received
// object into store and recording the remote's branch tips under
// refs/remotes/{remoteName}/{branch}.
func Pull(stream io.ReadWriter, store *object.Store, refStore *refs.Store, owner, repo, remoteName string) (map[string]object.Hash, error) {
	if err := WriteFrame(stream, NegotiateRequest, EncodeNegotiateRequest(OpPull, owner, repo)); err != nil {
		return nil, fmt.Errorf("wire: pull: %w", err)
	}
	if err := expectNegotiateResponse(stream); err != nil {
		return nil, fmt.Errorf("wire: pull: %w", err)
	}

	advertised, err := readRefAdvertisement(stream)
	if err != nil {
		return nil, fmt.Errorf("wire: pull: %w", err)
	}

	if len(advertised) == 0 {
		if err := WriteFrame(stream, RefWanted, EncodeRefWanted(nil)); err != nil {
			return nil, fmt.Errorf("wire: pull: %w", err)
		}
		typ, _, err := ReadFrame(stream)
		if err != nil {
			return nil, fmt.Errorf("wire: pull: %w", err)
		}
		if typ != PackComplete {
			return nil, fmt.Errorf("wire: pull: %w: expected PackComplete, got %s", ErrProtocolViolation, typ)
		}
		return advertised, nil
	}

	names := make([]string, 0, len(advertised))
	for name := range advertised {
		names = append(names, name)
	}
	if err := WriteFrame(stream, RefWanted, EncodeRefWanted(names)); err != nil {
		return nil, fmt.Errorf("wire: pull: %w", err)
	}

receiveLoop:
	for {
		typ, payload, err := ReadFrame(stream)
		if err != nil {
			return nil, fmt.Errorf("wire: pull: %w", err)
		}
		switch typ {
		case PackData:
			id, compressed, err := DecodePackData(payload)
			if err != nil {
				return nil, fmt.Errorf("wire: pull: %w", err)
			}
			if err := store.WriteRaw(id, compressed); err != nil {
				return nil, fmt.Errorf("wire: pull: %w", err)
			}
		case PackComplete:
			break receiveLoop
		case ErrorMsg:
			return nil, &PullFailed{Message: string(payload)}
		default:
			return nil, fmt.Errorf("wire: pull: %w: unexpected message %s", ErrProtocolViolation, typ)
		}
	}

	for refname, id := range advertised {
		branch, ok := strings.CutPrefix(refname, "refs/heads/")
		if !ok {
			continue
		}
		if err := refStore.WriteRef("refs/remotes/"+remoteName+"/"+branch, id); err != nil {
			return nil, fmt.Errorf("wire: pull: %w", err)
		}
	}
	return advertised, nil
}

func expectNegotiateResponse(stream io.ReadWriter) error {
	typ, payload, err := ReadFrame(stream)
	if err != nil {
		return err
	}
	if typ != NegotiateResponse {
		return fmt.Errorf("%w: expected NegotiateResponse, got %s", ErrProtocolViolation, typ)
	}
	if string(payload) != ProtocolVersion {
		return fmt.Errorf("%w: server protocol version %q, want %q", ErrProtocolViolation, payload, ProtocolVersion)
	}
	return nil
}

func readRefAdvertisement(stream io.ReadWriter) (map[string]object.Hash, error) {
	typ, payload, err := ReadFrame(stream)
	if err != nil {
		return nil, err
	}
	if typ != RefAdvertisement {
		return nil, fmt.Errorf("%w: expected RefAdvertisement, got %s", ErrProtocolViolation, typ)
	}
	return DecodeRefAdvertisement(payload)
}

func sendObject(stream io.ReadWriter, store *object.Store, id object.Hash) error {
	compressed, err := store.ReadRaw(id)
	if err != nil {
		if errors.Is(err, object.ErrNotFound) {
			return nil
		}
		return err
	}
	return WriteFrame(stream, PackData, EncodePackData(id, compressed))
}
