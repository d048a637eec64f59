package heartbeat

import (
	"net"
)

// Sender pushes fire-and-forget UDP datagrams to a single peer, the way
// a lab host nudges an ESP32 GPIO pin. No acknowledgment is expected.
type Sender struct {
	conn *net.UDPConn
	peer string
}

// NewSender resolves the peer address and opens the socket.
func NewSender(peerAddr string) (*Sender, error) {
	addr, err := net.ResolveUDPAddr("udp", peerAddr)
	if err != nil {
		return nil, err
	}
	conn, err := net.DialUDP("udp", nil, addr)
	if err != nil {
		return nil, err
	}
	return &Sender{conn: conn, peer: peerAddr}, nil
}

// Peer returns the configured peer address.
func (s *Sender) Peer() string {
	return s.peer
}

// Send writes one datagram. Delivery is best-effort.
func (s *Sender) Send(payload []byte) error {
	_, err := s.conn.Write(payload)
	return err
}

// Close releases the socket.
func (s *Sender) Close() error {
	return s.conn.Close()
}
