package main

import (
	"fmt"
	"io"
	"net"
	"os"
	"path/filepath"
	"strings"
	"time"

	"golang.org/x/crypto/ssh"
)

// sshStream wraps an *ssh.Session's stdin/stdout pipes plus the underlying
// session and client, so callers get a single io.ReadWriteCloser matching
// the transport oracle's contract of two opaque byte streams to an
// already-authenticated remote process.
type sshStream struct {
	session *ssh.Session
	client  *ssh.Client
	stdin   io.WriteCloser
	stdout  io.Reader
}

func (s *sshStream) Read(p []byte) (int, error)  { return s.stdout.Read(p) }
func (s *sshStream) Write(p []byte) (int, error) { return s.stdin.Write(p) }

func (s *sshStream) Close() error {
	s.session.Close()
	return s.client.Close()
}

// dialSSH is the default transport: it dials host as user, authenticated
// via a private key under ~/.ssh, and starts a remote "magicrepos serve"
// session scoped to owner/repo. Its stdin/stdout become the two opaque
// byte streams the wire protocol consumes.
func dialSSH(u *RemoteURL) (*sshStream, error) {
	signer, err := defaultSSHSigner()
	if err != nil {
		return nil, fmt.Errorf("ssh transport: %w", err)
	}

	config := &ssh.ClientConfig{
		User:            u.User,
		Auth:            []ssh.AuthMethod{ssh.PublicKeys(signer)},
		HostKeyCallback: ssh.InsecureIgnoreHostKey(),
		Timeout:         10 * time.Second,
	}

	addr := u.Host
	if !strings.Contains(addr, ":") {
		addr = net.JoinHostPort(addr, "22")
	}
	client, err := ssh.Dial("tcp", addr, config)
	if err != nil {
		return nil, fmt.Errorf("ssh transport: dial %s: %w", addr, err)
	}

	session, err := client.NewSession()
	if err != nil {
		client.Close()
		return nil, fmt.Errorf("ssh transport: session: %w", err)
	}
	stdin, err := session.StdinPipe()
	if err != nil {
		session.Close()
		client.Close()
		return nil, fmt.Errorf("ssh transport: stdin pipe: %w", err)
	}
	stdout, err := session.StdoutPipe()
	if err != nil {
		session.Close()
		client.Close()
		return nil, fmt.Errorf("ssh transport: stdout pipe: %w", err)
	}

	cmdLine := fmt.Sprintf("magicrepos serve %s/%s", u.Owner, u.Repo)
	if err := session.Start(cmdLine); err != nil {
		session.Close()
		client.Close()
		return nil, fmt.Errorf("ssh transport: start %q: %w", cmdLine, err)
	}

	return &sshStream{session: session, client: client, stdin: stdin, stdout: stdout}, nil
}

func defaultSSHSigner() (ssh.Signer, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return nil, fmt.Errorf("resolve home dir: %w", err)
	}
	candidates := []string{
		filepath.Join(home, ".ssh", "id_ed25519"),
		filepath.Join(home, ".ssh", "id_ecdsa"),
		filepath.Join(home, ".ssh", "id_rsa"),
	}
	for _, candidate := range candidates {
		raw, err := os.ReadFile(candidate)
		if err != nil {
			continue
		}
		signer, err := ssh.ParsePrivateKey(raw)
		if err != nil {
			continue
		}
		return signer, nil
	}
	return nil, fmt.Errorf("no usable SSH private key found in ~/.ssh (id_ed25519, id_ecdsa, id_rsa)")
}
