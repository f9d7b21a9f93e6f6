package library

import (
	"strings"
	"time"

	"github.com/ssargent/shelfdb/pkg/codec"
	"github.com/ssargent/shelfdb/pkg/store"
)

// BorrowCounter reports how many active borrows reference a member. The
// ledger satisfies this; the directory needs it only for the delete rule.
type BorrowCounter interface {
	CountActiveByMember(memberID string) (int, error)
}

// BanStatus is the result of a ban check. Until is zero for an indefinite
// suspension (overdue book not yet returned).
type BanStatus struct {
	Banned bool
	Reason string
	Until  time.Time
}

// MemberDirectory provides CRUD and suspension state over member records,
// layered on a fixed-slot record store.
type MemberDirectory struct {
	store   *store.RecordStore
	seq     *store.Sequence
	codec   *codec.MemberCodec
	borrows BorrowCounter
	clock   Clock
	log     Logger
}

// NewMemberDirectory creates a directory over the given record store.
func NewMemberDirectory(rs *store.RecordStore, borrows BorrowCounter, clock Clock, log Logger) *MemberDirectory {
	return &MemberDirectory{
		store:   rs,
		seq:     store.NewSequence(rs, store.SequenceConfig{Width: codec.IDWidth, Start: 1}),
		codec:   codec.NewMemberCodec(),
		borrows: borrows,
		clock:   clock,
		log:     log,
	}
}

// Add registers a new active member with a freshly allocated ID and the
// current date as join date. Name is required; email and phone are optional.
func (d *MemberDirectory) Add(name, email, phone string) (*AddResult, error) {
	if strings.TrimSpace(name) == "" {
		return nil, &ValidationError{"name"}
	}
	id, err := d.seq.Next()
	if err != nil {
		return nil, err
	}
	rec, truncated := d.codec.Encode(&codec.Member{
		ID:       id,
		Name:     name,
		Email:    email,
		Phone:    phone,
		JoinDate: dateOnly(d.clock.Now()),
		Status:   codec.MemberActive,
	})
	if _, err := d.store.Append(rec); err != nil {
		return nil, err
	}
	d.log.Debug("member added", "id", id, "name", name)
	return &AddResult{ID: id, Truncated: truncated}, nil
}

// FindByID returns the live member with the given ID.
func (d *MemberDirectory) FindByID(id string) (*codec.Member, error) {
	_, m, err := d.findIndex(id)
	return m, err
}

// Search returns live members whose name contains the keyword,
// case-insensitively.
func (d *MemberDirectory) Search(keyword string) ([]*codec.Member, error) {
	keyword = strings.ToLower(strings.TrimSpace(keyword))
	var out []*codec.Member
	err := d.scan(func(_ int64, m *codec.Member) bool {
		if strings.Contains(strings.ToLower(m.Name), keyword) {
			out = append(out, m)
		}
		return true
	})
	return out, err
}

// List returns all live members in store order.
func (d *MemberDirectory) List() ([]*codec.Member, error) {
	var out []*codec.Member
	err := d.scan(func(_ int64, m *codec.Member) bool {
		out = append(out, m)
		return true
	})
	return out, err
}

// Update rewrites the member's contact fields in place. ID, join date,
// status, ban date and the deleted flag are preserved; empty inputs fall
// back to the current value.
func (d *MemberDirectory) Update(id, name, email, phone string) (bool, error) {
	ordinal, m, err := d.findIndex(id)
	if err != nil {
		return false, err
	}
	if strings.TrimSpace(name) != "" {
		m.Name = name
	}
	if strings.TrimSpace(email) != "" {
		m.Email = email
	}
	if strings.TrimSpace(phone) != "" {
		m.Phone = phone
	}
	rec, truncated := d.codec.Encode(m)
	if err := d.store.WriteAt(ordinal, rec); err != nil {
		return false, err
	}
	return truncated, nil
}

// SoftDelete flips the member's deleted flag. A member still holding active
// borrows cannot be deleted.
func (d *MemberDirectory) SoftDelete(id string) error {
	ordinal, m, err := d.findIndex(id)
	if err != nil {
		return err
	}
	if d.borrows != nil {
		n, err := d.borrows.CountActiveByMember(id)
		if err != nil {
			return err
		}
		if n > 0 {
			return ErrMemberHasActiveBorrows
		}
	}
	m.Deleted = true
	rec, _ := d.codec.Encode(m)
	if err := d.store.WriteAt(ordinal, rec); err != nil {
		return err
	}
	d.log.Debug("member deleted", "id", id)
	return nil
}

// CheckBanStatus reports whether the member may borrow right now.
//
// A suspended member with no ban date is banned until a return clears it.
// A ban date in the future is a running penalty. A ban date that has passed
// is cleared here as a side effect: the member is written back as active
// and reported not banned.
func (d *MemberDirectory) CheckBanStatus(id string) (*BanStatus, error) {
	ordinal, m, err := d.findIndex(id)
	if err != nil {
		return nil, err
	}
	if m.Status != codec.MemberSuspended {
		return &BanStatus{}, nil
	}
	if m.BanUntil.IsZero() {
		return &BanStatus{Banned: true, Reason: "overdue book not yet returned"}, nil
	}
	today := dateOnly(d.clock.Now())
	if today.Before(m.BanUntil) {
		return &BanStatus{Banned: true, Reason: "late return penalty", Until: m.BanUntil}, nil
	}
	// Penalty expired: auto-clear.
	m.Status = codec.MemberActive
	m.BanUntil = time.Time{}
	rec, _ := d.codec.Encode(m)
	if err := d.store.WriteAt(ordinal, rec); err != nil {
		return nil, err
	}
	d.log.Info("member suspension expired", "id", id)
	return &BanStatus{}, nil
}

// SuspendIndefinitely marks the member suspended with no expiry. Used when
// a borrow goes overdue while still out. Idempotent.
func (d *MemberDirectory) SuspendIndefinitely(id string) error {
	return d.setStatus(id, codec.MemberSuspended, time.Time{})
}

// SuspendUntil marks the member suspended until the given date. Used after
// a late return.
func (d *MemberDirectory) SuspendUntil(id string, until time.Time) error {
	return d.setStatus(id, codec.MemberSuspended, dateOnly(until))
}

// Reactivate clears the member's suspension.
func (d *MemberDirectory) Reactivate(id string) error {
	return d.setStatus(id, codec.MemberActive, time.Time{})
}

func (d *MemberDirectory) setStatus(id string, status codec.MemberStatus, banUntil time.Time) error {
	ordinal, m, err := d.findIndex(id)
	if err != nil {
		return err
	}
	m.Status = status
	m.BanUntil = banUntil
	rec, _ := d.codec.Encode(m)
	return d.store.WriteAt(ordinal, rec)
}

func (d *MemberDirectory) findIndex(id string) (int64, *codec.Member, error) {
	var (
		found   *codec.Member
		ordinal int64
	)
	err := d.scan(func(ord int64, m *codec.Member) bool {
		if m.ID == id {
			found, ordinal = m, ord
			return false
		}
		return true
	})
	if err != nil {
		return 0, nil, err
	}
	if found == nil {
		return 0, nil, ErrMemberNotFound
	}
	return ordinal, found, nil
}

func (d *MemberDirectory) scan(fn func(ordinal int64, m *codec.Member) bool) error {
	it, err := d.store.Scan()
	if err != nil {
		return err
	}
	defer it.Close()
	for it.Next() {
		m, err := d.codec.Decode(it.Slot())
		if err != nil {
			return err
		}
		if m.Deleted {
			continue
		}
		if !fn(it.Ordinal(), m) {
			break
		}
	}
	return it.Err()
}
