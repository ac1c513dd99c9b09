package ido

import (
	"fmt"
	"strconv"
	"time"

	"github.com/TWRT/arrival-location/internal/models"
)

// Role groups IDO properties by how they take part in a request.
type Role int

const (
	RoleBusiness Role = iota
	RoleKey
	RoleIdentity
	RoleAudit
)

// Audit stamps read "2006/01/02 H:mm:ss": 24-hour clock, hour not padded.
const (
	auditDateLayout   = "2006/01/02"
	auditMinSecLayout = "04:05"
)

// FieldSpec describes one IDO property. Variable names the caller variable
// that supplies the value on writes; it is empty for properties stamped by
// the adapter or never written.
type FieldSpec struct {
	Name     string
	Role     Role
	Variable string
}

var (
	FieldItem           = FieldSpec{Name: "Item", Role: RoleBusiness}
	FieldDescription    = FieldSpec{Name: "Description", Role: RoleBusiness}
	FieldQtyOrderedConv = FieldSpec{Name: "QtyOrderedConv", Role: RoleBusiness}
	FieldQtyShipped     = FieldSpec{Name: "QtyShipped", Role: RoleBusiness}

	FieldCoNum     = FieldSpec{Name: "CoNum", Role: RoleKey, Variable: "selectCoNum"}
	FieldCoLine    = FieldSpec{Name: "CoLine", Role: RoleKey, Variable: "selectCoLine"}
	FieldCoRelease = FieldSpec{Name: "CoRelease", Role: RoleKey, Variable: "selectCoRelease"}

	FieldRecordDate = FieldSpec{Name: "RecordDate", Role: RoleIdentity, Variable: "selectRecordDate"}
	FieldRowPointer = FieldSpec{Name: "RowPointer", Role: RoleIdentity, Variable: "selectRowPointer"}
	FieldItemId     = FieldSpec{Name: "_ItemId", Role: RoleIdentity, Variable: "selectItemId"}

	FieldUpdateTime = FieldSpec{Name: "ue_Uf_update_time_from_mongoose", Role: RoleAudit}
	FieldUpdator    = FieldSpec{Name: "ue_Uf_updator_from_mongoose", Role: RoleAudit, Variable: "User"}
)

// property order sent to the backend
var (
	readLayout = []FieldSpec{
		FieldItem, FieldDescription, FieldQtyOrderedConv, FieldQtyShipped,
		FieldCoNum,
		FieldUpdateTime, FieldUpdator,
		FieldRecordDate, FieldRowPointer, FieldItemId,
		FieldCoLine, FieldCoRelease,
	}
	writeLayout = []FieldSpec{
		FieldUpdateTime, FieldUpdator,
		FieldCoNum, FieldCoLine, FieldCoRelease,
		FieldRecordDate, FieldRowPointer, FieldItemId,
	}
)

type roleRule struct {
	include  bool
	modified bool
}

// modeRules decides, per mode, which roles are sent and whether they carry
// values (modified) or locate the record (unmodified).
var modeRules = map[Mode]map[Role]roleRule{
	ModeRead: {
		RoleBusiness: {include: true, modified: true},
		RoleKey:      {include: true, modified: false},
		RoleIdentity: {include: true, modified: true},
		RoleAudit:    {include: true, modified: true},
	},
	ModeInsert: {
		RoleKey:   {include: true, modified: true},
		RoleAudit: {include: true, modified: true},
	},
	ModeUpdate: {
		RoleKey:      {include: true, modified: false},
		RoleIdentity: {include: true, modified: true},
		RoleAudit:    {include: true, modified: true},
	},
	ModeDelete: {
		RoleKey:      {include: true, modified: false},
		RoleIdentity: {include: true, modified: true},
		RoleAudit:    {include: true, modified: true},
	},
}

// Fields returns the property list for mode. values is keyed by property name
// and ignored for reads, which always send empty values.
func Fields(mode Mode, values map[string]string) ([]models.Property, error) {
	rules, ok := modeRules[mode]
	if !ok {
		return nil, fmt.Errorf("%w: %d", ErrUnsupportedMode, int(mode))
	}

	layout := writeLayout
	if mode == ModeRead {
		layout = readLayout
	}

	props := make([]models.Property, 0, len(layout))
	for _, f := range layout {
		rule := rules[f.Role]
		if !rule.include {
			continue
		}
		p := models.Property{Name: f.Name, Modified: rule.modified}
		if mode != ModeRead {
			p.Value = values[f.Name]
		}
		props = append(props, p)
	}
	return props, nil
}

// Lookup is anything that hands out named string values.
type Lookup interface {
	Get(name string) string
}

// WriteValues collects the values of every writable property from vars and
// stamps the audit time.
func WriteValues(vars Lookup, stamp string) map[string]string {
	values := make(map[string]string, len(writeLayout))
	for _, f := range writeLayout {
		if f.Variable != "" {
			values[f.Name] = vars.Get(f.Variable)
		}
	}
	values[FieldUpdateTime.Name] = stamp
	return values
}

// AuditStamp renders now in loc the way the audit property expects it.
func AuditStamp(now time.Time, loc *time.Location) string {
	if loc == nil {
		loc = time.UTC
	}
	t := now.In(loc)
	return t.Format(auditDateLayout) + " " + strconv.Itoa(t.Hour()) + ":" + t.Format(auditMinSecLayout)
}
