package opreturn

import (
	"bytes"
	"encoding/hex"
	"fmt"
	"strings"

	"github.com/bsv-blockchain/go-sdk/script"
)

// SegmentKind is the role of one push within a payload.
type SegmentKind int

const (
	Opaque SegmentKind = iota
	AppPrefix
	AirdropTokenID
	Message
	EncryptedMessage
	TokenField
	AliasField
)

func (k SegmentKind) String() string {
	switch k {
	case AppPrefix:
		return "prefix"
	case AirdropTokenID:
		return "airdrop-token-id"
	case Message:
		return "message"
	case EncryptedMessage:
		return "encrypted"
	case TokenField:
		return "token-field"
	case AliasField:
		return "alias-field"
	default:
		return "opaque"
	}
}

// Segment is one data push.
type Segment struct {
	Kind SegmentKind
	Data []byte
}

// Hex returns the segment data as lowercase hex.
func (s Segment) Hex() string { return hex.EncodeToString(s.Data) }

// Payload is a decoded OP_RETURN script.
type Payload struct {
	Protocol Protocol
	Segments []Segment

	// AirdropTokenID is the hex token id of an airdrop payload.
	AirdropTokenID string
}

// Parse decodes a hex encoded OP_RETURN script.
func Parse(rawHex string) (*Payload, error) {
	raw, err := hex.DecodeString(strings.TrimSpace(rawHex))
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrMalformedScript, err)
	}
	return ParseScript(raw)
}

// ParseScript decodes a raw OP_RETURN script. Pushes that follow an
// unknown prefix are returned as opaque segments.
func ParseScript(raw []byte) (*Payload, error) {
	if len(raw) == 0 || raw[0] != OpReturn {
		return nil, ErrNotOpReturn
	}
	pushes, err := splitPushes(raw[1:])
	if err != nil {
		return nil, err
	}
	return classify(pushes), nil
}

func classify(pushes [][]byte) *Payload {
	p := &Payload{Protocol: External}
	if len(pushes) == 0 {
		return p
	}

	rest := pushes
	if bytes.Equal(rest[0], AirdropPrefix) && len(rest) >= 2 && len(rest[1]) == TokenIDLen {
		p.Protocol = Airdrop
		p.AirdropTokenID = hex.EncodeToString(rest[1])
		p.Segments = append(p.Segments,
			Segment{Kind: AppPrefix, Data: rest[0]},
			Segment{Kind: AirdropTokenID, Data: rest[1]},
		)
		rest = rest[2:]
		if len(rest) == 0 {
			return p
		}
	}

	kind := Opaque
	switch {
	case bytes.Equal(rest[0], CashtabPrefix):
		kind = Message
		if p.Protocol == External {
			p.Protocol = Cashtab
		}
	case bytes.Equal(rest[0], EncryptedPrefix):
		kind = EncryptedMessage
		if p.Protocol == External {
			p.Protocol = Encrypted
		}
	case bytes.Equal(rest[0], TokenPrefix) && p.Protocol == External:
		kind = TokenField
		p.Protocol = Token
	case bytes.Equal(rest[0], AliasPrefix) && p.Protocol == External:
		kind = AliasField
		p.Protocol = Alias
	case p.Protocol == Airdrop:
		// Airdrop followed by a bare message with no app prefix.
		for _, push := range rest {
			p.Segments = append(p.Segments, Segment{Kind: Message, Data: push})
		}
		return p
	default:
		for _, push := range rest {
			p.Segments = append(p.Segments, Segment{Kind: Opaque, Data: push})
		}
		return p
	}

	p.Segments = append(p.Segments, Segment{Kind: AppPrefix, Data: rest[0]})
	for _, push := range rest[1:] {
		p.Segments = append(p.Segments, Segment{Kind: kind, Data: push})
	}
	return p
}

// Message reassembles the message carried by the payload by concatenating
// its message segments in order. External payloads concatenate all their
// opaque pushes. Encrypted payloads return the ciphertext.
func (p *Payload) Message() []byte {
	want := Message
	switch p.Protocol {
	case External:
		want = Opaque
	case Encrypted:
		want = EncryptedMessage
	}
	var out []byte
	for _, s := range p.Segments {
		if s.Kind == want || (p.Protocol == Airdrop && s.Kind == EncryptedMessage) {
			out = append(out, s.Data...)
		}
	}
	return out
}

// HexSegments returns every segment as hex, in script order.
func (p *Payload) HexSegments() []string {
	out := make([]string, len(p.Segments))
	for i, s := range p.Segments {
		out[i] = s.Hex()
	}
	return out
}

// Fields returns the data of every segment of the given kind.
func (p *Payload) Fields(kind SegmentKind) [][]byte {
	var out [][]byte
	for _, s := range p.Segments {
		if s.Kind == kind {
			out = append(out, s.Data)
		}
	}
	return out
}

// splitPushes reads consecutive data pushes. OP_0 yields an empty push.
func splitPushes(b []byte) ([][]byte, error) {
	chunks, err := script.NewFromBytes(b).Chunks()
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrMalformedScript, err)
	}
	pushes := make([][]byte, 0, len(chunks))
	for i, c := range chunks {
		switch {
		case c.Op == script.Op0:
			pushes = append(pushes, []byte{})
		case c.Op <= script.OpPUSHDATA4:
			pushes = append(pushes, c.Data)
		default:
			return nil, fmt.Errorf("%w: non-push opcode 0x%02x at chunk %d", ErrMalformedScript, c.Op, i)
		}
	}
	return pushes, nil
}
