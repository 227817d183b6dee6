package transport

import (
	"crypto/ed25519"
	"encoding/binary"

	"github.com/miekg/dns"

	cclinkerrors "github.com/johnzilla/cclink/internal/errors"
)

const (
	// recordLabel is the single resource-record name every handoff packet
	// carries its record JSON under.
	recordLabel = "_cclink."
	packetTTL   = 86400
	// txtChunkSize keeps each TXT character-string under the 255-byte
	// limit DNS rdata imposes; longer payloads are reassembled on read.
	txtChunkSize = 255
)

// buildPacket constructs the DNS message for a packet. A nil or empty
// payload produces a packet with no resource records, the revocation
// signal.
func buildPacket(payload []byte) *dns.Msg {
	msg := new(dns.Msg)
	if len(payload) == 0 {
		return msg
	}
	rr := &dns.TXT{
		Hdr: dns.RR_Header{
			Name:   recordLabel,
			Rrtype: dns.TypeTXT,
			Class:  dns.ClassINET,
			Ttl:    packetTTL,
		},
		Txt: chunkString(string(payload), txtChunkSize),
	}
	msg.Answer = []dns.RR{rr}
	return msg
}

func chunkString(s string, size int) []string {
	if s == "" {
		return nil
	}
	var chunks []string
	for len(s) > size {
		chunks = append(chunks, s[:size])
		s = s[size:]
	}
	chunks = append(chunks, s)
	return chunks
}

// extractPayload reassembles the record JSON from the first _cclink TXT
// record in msg. A missing label is reported as ErrRecordNotFound, the
// same signal as an absent or expired packet.
func extractPayload(msg *dns.Msg) ([]byte, error) {
	for _, rr := range msg.Answer {
		txt, ok := rr.(*dns.TXT)
		if !ok || txt.Hdr.Name != recordLabel {
			continue
		}
		joined := ""
		for _, part := range txt.Txt {
			joined += part
		}
		return []byte(joined), nil
	}
	return nil, cclinkerrors.ErrRecordNotFound
}

// signPayload signs the CAS timestamp together with the packet's wire
// bytes, binding the sequence number into the signature so a replayed
// older packet cannot be passed off as current.
func signPayload(priv ed25519.PrivateKey, timestamp uint64, wire []byte) []byte {
	buf := make([]byte, 8+len(wire))
	binary.BigEndian.PutUint64(buf[:8], timestamp)
	copy(buf[8:], wire)
	return ed25519.Sign(priv, buf)
}

func verifyPayload(pub ed25519.PublicKey, timestamp uint64, wire, sig []byte) bool {
	buf := make([]byte, 8+len(wire))
	binary.BigEndian.PutUint64(buf[:8], timestamp)
	copy(buf[8:], wire)
	return ed25519.Verify(pub, buf, sig)
}
