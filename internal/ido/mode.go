package ido

import "strconv"

// Mode is the operation requested from the IDO. The numeric values double as
// the change-set Action codes.
type Mode int

const (
	ModeRead   Mode = 0
	ModeInsert Mode = 1
	ModeUpdate Mode = 2
	ModeDelete Mode = 4
)

func (m Mode) Valid() bool {
	switch m {
	case ModeRead, ModeInsert, ModeUpdate, ModeDelete:
		return true
	}
	return false
}

func (m Mode) IsWrite() bool {
	return m.Valid() && m != ModeRead
}

func (m Mode) String() string {
	switch m {
	case ModeRead:
		return "read"
	case ModeInsert:
		return "insert"
	case ModeUpdate:
		return "update"
	case ModeDelete:
		return "delete"
	}
	return "mode(" + strconv.Itoa(int(m)) + ")"
}
