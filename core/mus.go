package core

import (
	"time"

	"github.com/mus-format/mus-go/ord"
	"github.com/mus-format/mus-go/varint"
)

// MUS serializers for the types persisted in storage. These are written by
// hand rather than generated: only two small structs cross the storage
// boundary and their layouts change rarely. Field order is part of the
// stored format and must not be reordered.

// IDMUS serializes an ID.
var IDMUS = idMUS{}

type idMUS struct{}

func (s idMUS) Marshal(v ID, bs []byte) (n int) {
	return varint.Uint64.Marshal(uint64(v), bs)
}

func (s idMUS) Unmarshal(bs []byte) (v ID, n int, err error) {
	num, n, err := varint.Uint64.Unmarshal(bs)
	return ID(num), n, err
}

func (s idMUS) Size(v ID) (size int) {
	return varint.Uint64.Size(uint64(v))
}

func (s idMUS) Skip(bs []byte) (n int, err error) {
	return varint.Uint64.Skip(bs)
}

// RoleMUS serializes a Role.
var RoleMUS = roleMUS{}

type roleMUS struct{}

func (s roleMUS) Marshal(v Role, bs []byte) (n int) {
	return varint.Int.Marshal(int(v), bs)
}

func (s roleMUS) Unmarshal(bs []byte) (v Role, n int, err error) {
	num, n, err := varint.Int.Unmarshal(bs)
	return Role(num), n, err
}

func (s roleMUS) Size(v Role) (size int) {
	return varint.Int.Size(int(v))
}

func (s roleMUS) Skip(bs []byte) (n int, err error) {
	return varint.Int.Skip(bs)
}

// SessionKindMUS serializes a SessionKind.
var SessionKindMUS = sessionKindMUS{}

type sessionKindMUS struct{}

func (s sessionKindMUS) Marshal(v SessionKind, bs []byte) (n int) {
	return varint.Int.Marshal(int(v), bs)
}

func (s sessionKindMUS) Unmarshal(bs []byte) (v SessionKind, n int, err error) {
	num, n, err := varint.Int.Unmarshal(bs)
	return SessionKind(num), n, err
}

func (s sessionKindMUS) Size(v SessionKind) (size int) {
	return varint.Int.Size(int(v))
}

func (s sessionKindMUS) Skip(bs []byte) (n int, err error) {
	return varint.Int.Skip(bs)
}

// Timestamps are stored as Unix microseconds.
var timeMUS = timeMUSSer{}

type timeMUSSer struct{}

func (s timeMUSSer) Marshal(v time.Time, bs []byte) (n int) {
	return varint.Int64.Marshal(v.UnixMicro(), bs)
}

func (s timeMUSSer) Unmarshal(bs []byte) (v time.Time, n int, err error) {
	micros, n, err := varint.Int64.Unmarshal(bs)
	if err != nil {
		return time.Time{}, n, err
	}
	return time.UnixMicro(micros).UTC(), n, nil
}

func (s timeMUSSer) Size(v time.Time) (size int) {
	return varint.Int64.Size(v.UnixMicro())
}

func (s timeMUSSer) Skip(bs []byte) (n int, err error) {
	return varint.Int64.Skip(bs)
}

// SessionMUS serializes a Session.
var SessionMUS = sessionMUS{}

type sessionMUS struct{}

func (s sessionMUS) Marshal(v Session, bs []byte) (n int) {
	n = IDMUS.Marshal(v.Id, bs)
	n += ord.String.Marshal(v.Title, bs[n:])
	n += SessionKindMUS.Marshal(v.Kind, bs[n:])
	n += timeMUS.Marshal(v.CreatedAt, bs[n:])
	n += timeMUS.Marshal(v.UpdatedAt, bs[n:])
	return n
}

func (s sessionMUS) Unmarshal(bs []byte) (v Session, n int, err error) {
	var n1 int
	v.Id, n, err = IDMUS.Unmarshal(bs)
	if err != nil {
		return v, n, err
	}
	v.Title, n1, err = ord.String.Unmarshal(bs[n:])
	n += n1
	if err != nil {
		return v, n, err
	}
	v.Kind, n1, err = SessionKindMUS.Unmarshal(bs[n:])
	n += n1
	if err != nil {
		return v, n, err
	}
	v.CreatedAt, n1, err = timeMUS.Unmarshal(bs[n:])
	n += n1
	if err != nil {
		return v, n, err
	}
	v.UpdatedAt, n1, err = timeMUS.Unmarshal(bs[n:])
	n += n1
	return v, n, err
}

func (s sessionMUS) Size(v Session) (size int) {
	size = IDMUS.Size(v.Id)
	size += ord.String.Size(v.Title)
	size += SessionKindMUS.Size(v.Kind)
	size += timeMUS.Size(v.CreatedAt)
	size += timeMUS.Size(v.UpdatedAt)
	return size
}

// MessageMUS serializes a Message.
var MessageMUS = messageMUS{}

type messageMUS struct{}

func (s messageMUS) Marshal(v Message, bs []byte) (n int) {
	n = IDMUS.Marshal(v.Id, bs)
	n += IDMUS.Marshal(v.SessionId, bs[n:])
	n += RoleMUS.Marshal(v.Role, bs[n:])
	n += ord.String.Marshal(v.Contents, bs[n:])
	n += timeMUS.Marshal(v.CreatedAt, bs[n:])
	return n
}

func (s messageMUS) Unmarshal(bs []byte) (v Message, n int, err error) {
	var n1 int
	v.Id, n, err = IDMUS.Unmarshal(bs)
	if err != nil {
		return v, n, err
	}
	v.SessionId, n1, err = IDMUS.Unmarshal(bs[n:])
	n += n1
	if err != nil {
		return v, n, err
	}
	v.Role, n1, err = RoleMUS.Unmarshal(bs[n:])
	n += n1
	if err != nil {
		return v, n, err
	}
	v.Contents, n1, err = ord.String.Unmarshal(bs[n:])
	n += n1
	if err != nil {
		return v, n, err
	}
	v.CreatedAt, n1, err = timeMUS.Unmarshal(bs[n:])
	n += n1
	return v, n, err
}

func (s messageMUS) Size(v Message) (size int) {
	size = IDMUS.Size(v.Id)
	size += IDMUS.Size(v.SessionId)
	size += RoleMUS.Size(v.Role)
	size += ord.String.Size(v.Contents)
	size += timeMUS.Size(v.CreatedAt)
	return size
}
