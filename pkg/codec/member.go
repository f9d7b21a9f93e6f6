package codec

import "time"

// Member field widths.
const (
	memberNameWidth  = 50
	memberEmailWidth = 50
	memberPhoneWidth = 15

	// MemberSize is the fixed slot width of a member record.
	MemberSize = IDWidth + memberNameWidth + memberEmailWidth + memberPhoneWidth + DateWidth + 1 + DateWidth + 1
)

// MemberStatus is the eligibility flag stored in a member record.
type MemberStatus byte

const (
	MemberActive    MemberStatus = 'A'
	MemberSuspended MemberStatus = 'S'
)

// Member is a directory record. A suspended member with a zero BanUntil is
// suspended indefinitely (an overdue book has not come back yet); a future
// BanUntil is a time-bound penalty after a late return.
type Member struct {
	ID       string
	Name     string
	Email    string
	Phone    string
	JoinDate time.Time
	Status   MemberStatus
	BanUntil time.Time
	Deleted  bool
}

// MemberCodec converts members to and from their fixed-width binary layout:
// ID(4) Name(50) Email(50) Phone(15) JoinDate(10) Status(1) BanUntil(10) Deleted(1).
type MemberCodec struct{}

// NewMemberCodec creates a new member codec instance.
func NewMemberCodec() *MemberCodec {
	return &MemberCodec{}
}

// Encode serializes a member into a MemberSize slot. The returned bool
// reports whether any field value was truncated to fit its width.
func (c *MemberCodec) Encode(m *Member) ([]byte, bool) {
	buf := make([]byte, MemberSize)
	truncated := false
	off := 0
	put := func(text string, width int) {
		if EncodeField(buf[off:off+width], text) {
			truncated = true
		}
		off += width
	}
	put(m.ID, IDWidth)
	put(m.Name, memberNameWidth)
	put(m.Email, memberEmailWidth)
	put(m.Phone, memberPhoneWidth)
	encodeDate(buf[off:off+DateWidth], m.JoinDate)
	off += DateWidth
	buf[off] = byte(m.Status)
	off++
	encodeDate(buf[off:off+DateWidth], m.BanUntil)
	off += DateWidth
	buf[off] = encodeDeleted(m.Deleted)
	return buf, truncated
}

// Decode deserializes a MemberSize slot back into a member.
func (c *MemberCodec) Decode(data []byte) (*Member, error) {
	if len(data) != MemberSize {
		return nil, ErrMalformedRecord
	}
	m := &Member{}
	var err error
	off := 0
	get := func(width int) string {
		if err != nil {
			return ""
		}
		var s string
		s, err = DecodeField(data[off : off+width])
		off += width
		return s
	}
	m.ID = get(IDWidth)
	m.Name = get(memberNameWidth)
	m.Email = get(memberEmailWidth)
	m.Phone = get(memberPhoneWidth)
	if err != nil {
		return nil, err
	}
	if m.JoinDate, err = decodeDate(data[off : off+DateWidth]); err != nil {
		return nil, err
	}
	off += DateWidth
	switch MemberStatus(data[off]) {
	case MemberActive, MemberSuspended:
		m.Status = MemberStatus(data[off])
	default:
		return nil, ErrMalformedRecord
	}
	off++
	if m.BanUntil, err = decodeDate(data[off : off+DateWidth]); err != nil {
		return nil, err
	}
	off += DateWidth
	m.Deleted, err = decodeDeleted(data[off])
	if err != nil {
		return nil, err
	}
	return m, nil
}
