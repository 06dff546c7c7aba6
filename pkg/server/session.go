package server

import (
	"fmt"
	"io"

	"github.com/brinevcs/magicrepos/pkg/object"
	"github.com/brinevcs/magicrepos/pkg/repo"
	"github.com/brinevcs/magicrepos/pkg/wire"
)

// Serve runs one sequential session on stream for identity, the caller
// already authenticated by the transport. It reads exactly one
// NegotiateRequest and dispatches to the push, pull, or pr state machine.
// No pipelining: the session is done after one operation.
func Serve(stream io.ReadWriter, identity string, root *Root, auth AuthOracle) error {
	typ, payload, err := wire.ReadFrame(stream)
	if err != nil {
		return fmt.Errorf("server: %w", err)
	}
	if typ != wire.NegotiateRequest {
		replyError(stream, "expected NegotiateRequest")
		return fmt.Errorf("server: %w: expected NegotiateRequest, got %s", wire.ErrProtocolViolation, typ)
	}
	op, owner, name, err := wire.DecodeNegotiateRequest(payload)
	if err != nil {
		replyError(stream, err.Error())
		return fmt.Errorf("server: %w", err)
	}

	switch op {
	case wire.OpPush:
		if !auth.CanWrite(identity, owner, name) {
			replyError(stream, "write access denied")
			return fmt.Errorf("server: push %s/%s: %w", owner, name, ErrUnauthorized)
		}
	case wire.OpPull, wire.OpPr:
		if !auth.CanRead(identity) {
			replyError(stream, "read access denied")
			return fmt.Errorf("server: %s/%s: %w", owner, name, ErrUnauthorized)
		}
	default:
		replyError(stream, fmt.Sprintf("unknown operation %q", op))
		return fmt.Errorf("server: %w: unknown operation %q", wire.ErrProtocolViolation, op)
	}

	r, existed, err := root.Open(owner, name)
	if err != nil {
		replyError(stream, err.Error())
		return fmt.Errorf("server: %w", err)
	}
	if !existed {
		if op != wire.OpPush {
			replyError(stream, "repository does not exist")
			return fmt.Errorf("server: %s/%s: %w", owner, name, ErrRepositoryNotFound)
		}
		r, err = root.Create(owner, name)
		if err != nil {
			replyError(stream, err.Error())
			return fmt.Errorf("server: %w", err)
		}
	}

	if err := wire.WriteFrame(stream, wire.NegotiateResponse, []byte(wire.ProtocolVersion)); err != nil {
		return fmt.Errorf("server: %w", err)
	}

	switch op {
	case wire.OpPush:
		return servePush(stream, r)
	case wire.OpPull:
		return servePull(stream, r)
	default:
		replyError(stream, "pr operations are not supported")
		return nil
	}
}

func servePush(stream io.ReadWriter, r *repo.Repo) error {
	if err := sendRefAdvertisement(stream, r); err != nil {
		return fmt.Errorf("server: push: %w", err)
	}

	type refUpdate struct {
		refname string
		id      object.Hash
	}
	var updates []refUpdate

pushLoop:
	for {
		typ, payload, err := wire.ReadFrame(stream)
		if err != nil {
			return fmt.Errorf("server: push: %w", err)
		}
		switch typ {
		case wire.RefUpdate:
			refname, id, err := wire.DecodeRefUpdate(payload)
			if err != nil {
				replyError(stream, err.Error())
				return fmt.Errorf("server: push: %w", err)
			}
			updates = append(updates, refUpdate{refname: refname, id: id})
		case wire.PackData:
			id, compressed, err := wire.DecodePackData(payload)
			if err != nil {
				replyError(stream, err.Error())
				return fmt.Errorf("server: push: %w", err)
			}
			// The embedded id is trusted as-is; the store does not re-verify
			// sha256(decompress(bytes)) == id.
			if err := r.Store.WriteRaw(id, compressed); err != nil {
				replyError(stream, err.Error())
				return fmt.Errorf("server: push: %w", err)
			}
		case wire.PackComplete:
			break pushLoop
		default:
			replyError(stream, fmt.Sprintf("unexpected message %s", typ))
			return fmt.Errorf("server: push: %w: unexpected message %s", wire.ErrProtocolViolation, typ)
		}
	}

	// Applied only after the whole loop completes: a push either commits
	// every ref update or, on an earlier wire error, none of them.
	for _, u := range updates {
		if err := r.Refs.WriteRef(u.refname, u.id); err != nil {
			replyError(stream, err.Error())
			return fmt.Errorf("server: push: %w", err)
		}
	}

	return wire.WriteFrame(stream, wire.Ok, []byte("push complete"))
}

func servePull(stream io.ReadWriter, r *repo.Repo) error {
	if err := sendRefAdvertisement(stream, r); err != nil {
		return fmt.Errorf("server: pull: %w", err)
	}

	typ, payload, err := wire.ReadFrame(stream)
	if err != nil {
		return fmt.Errorf("server: pull: %w", err)
	}
	if typ != wire.RefWanted {
		replyError(stream, fmt.Sprintf("expected RefWanted, got %s", typ))
		return fmt.Errorf("server: pull: %w: expected RefWanted, got %s", wire.ErrProtocolViolation, typ)
	}
	wanted := wire.DecodeRefWanted(payload)

	roots := make([]object.Hash, 0, len(wanted))
	for _, name := range wanted {
		id, ok, err := r.Refs.Resolve(name)
		if err != nil {
			replyError(stream, err.Error())
			return fmt.Errorf("server: pull: %w", err)
		}
		if ok {
			roots = append(roots, id)
		}
	}

	set, err := r.Store.ReachableSet(roots)
	if err != nil {
		replyError(stream, err.Error())
		return fmt.Errorf("server: pull: %w", err)
	}

	for id := range set {
		compressed, err := r.Store.ReadRaw(id)
		if err != nil {
			replyError(stream, err.Error())
			return fmt.Errorf("server: pull: %w", err)
		}
		if err := wire.WriteFrame(stream, wire.PackData, wire.EncodePackData(id, compressed)); err != nil {
			return fmt.Errorf("server: pull: %w", err)
		}
	}
	return wire.WriteFrame(stream, wire.PackComplete, nil)
}

func sendRefAdvertisement(stream io.ReadWriter, r *repo.Repo) error {
	ads := make(map[string]object.Hash)
	if head, ok, err := r.Refs.ResolveHead(); err != nil {
		return err
	} else if ok {
		ads["HEAD"] = head
	}
	branches, err := r.Refs.ListBranches()
	if err != nil {
		return err
	}
	for _, b := range branches {
		if id, ok, err := r.Refs.ResolveBranch(b); err != nil {
			return err
		} else if ok {
			ads["refs/heads/"+b] = id
		}
	}
	return wire.WriteFrame(stream, wire.RefAdvertisement, wire.EncodeRefAdvertisement(ads))
}

func replyError(stream io.ReadWriter, msg string) {
	_ = wire.WriteFrame(stream, wire.ErrorMsg, []byte(msg))
}
