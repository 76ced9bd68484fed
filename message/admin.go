package message

import (
	"encoding/binary"
	"fmt"
)

// AdminCommand identifies the administrative action an admin body requests.
type AdminCommand uint8

const (
	AdminAuthenticate    AdminCommand = 0
	AdminCreateUser      AdminCommand = 1
	AdminDropUser        AdminCommand = 2
	AdminSetPassword     AdminCommand = 3
	AdminChangePassword  AdminCommand = 4
	AdminGrantRoles      AdminCommand = 5
	AdminRevokeRoles     AdminCommand = 6
	AdminQueryUsers      AdminCommand = 9
	AdminCreateRole      AdminCommand = 10
	AdminDropRole        AdminCommand = 11
	AdminGrantPrivileges AdminCommand = 12
	AdminRevokePrivileges AdminCommand = 13
	AdminSetWhitelist    AdminCommand = 14
	AdminQueryRoles      AdminCommand = 16
	AdminLogin           AdminCommand = 20
)

// AdminFieldType identifies the kind of data an admin field carries.
// This is a distinct enum from codec.FieldType even though the two
// share the same on-wire field shape (length-prefixed type+payload).
type AdminFieldType uint8

const (
	AdminFieldUser          AdminFieldType = 0
	AdminFieldPassword      AdminFieldType = 1
	AdminFieldOldPassword   AdminFieldType = 2
	AdminFieldCredential    AdminFieldType = 3
	AdminFieldClearPassword AdminFieldType = 4
	AdminFieldSessionToken  AdminFieldType = 5
	AdminFieldSessionTTL    AdminFieldType = 6
	AdminFieldRoles         AdminFieldType = 10
	AdminFieldRole          AdminFieldType = 11
	AdminFieldPrivileges    AdminFieldType = 12
	AdminFieldWhitelist     AdminFieldType = 13
)

var adminFieldTypeNames = map[AdminFieldType]string{
	AdminFieldUser:          "user",
	AdminFieldPassword:      "password",
	AdminFieldOldPassword:   "old-password",
	AdminFieldCredential:    "credential",
	AdminFieldClearPassword: "clear-password",
	AdminFieldSessionToken:  "session-token",
	AdminFieldSessionTTL:    "session-ttl",
	AdminFieldRoles:         "roles",
	AdminFieldRole:          "role",
	AdminFieldPrivileges:    "privileges",
	AdminFieldWhitelist:     "whitelist",
}

// AdminField is a typed metadata item carried by an admin body. Its wire
// shape is identical to codec.Field: length(4B BE, inclusive of the type
// byte) || type(1B) || payload.
type AdminField struct {
	Type AdminFieldType
	Data []byte
}

func (f AdminField) Pack() []byte {
	buf := make([]byte, 5+len(f.Data))
	binary.BigEndian.PutUint32(buf[0:4], uint32(len(f.Data)+1))
	buf[4] = byte(f.Type)
	copy(buf[5:], f.Data)
	return buf
}

func parseAdminField(data []byte) (AdminField, int, error) {
	if len(data) < 4 {
		return AdminField{}, 0, fmt.Errorf("message: truncated admin field length prefix: got %d bytes", len(data))
	}
	length := binary.BigEndian.Uint32(data[0:4])
	if length < 1 {
		return AdminField{}, 0, fmt.Errorf("message: invalid admin field length %d: must be at least 1", length)
	}
	total := 4 + int(length)
	if len(data) < total {
		return AdminField{}, 0, fmt.Errorf("message: truncated admin field payload: want %d bytes, got %d", total, len(data))
	}
	fieldType := AdminFieldType(data[4])
	if _, ok := adminFieldTypeNames[fieldType]; !ok {
		return AdminField{}, 0, fmt.Errorf("message: unknown admin field type %d", uint8(fieldType))
	}
	payload := make([]byte, length-1)
	copy(payload, data[5:total])
	return AdminField{Type: fieldType, Data: payload}, total, nil
}

// AdminPreludeSize is the fixed size of the admin body's header: 16
// reserved zero bytes, a command byte, and a field-count byte.
const AdminPreludeSize = 18

// AdminBody is the alternative payload used for login/user/role
// administration: 16 reserved bytes, command, field count (a single
// byte — admin bodies never carry more than 255 fields), then fields.
type AdminBody struct {
	Command AdminCommand
	Fields  []AdminField
}

func (b AdminBody) Pack() []byte {
	buf := make([]byte, AdminPreludeSize)
	// buf[0:16] is the reserved pad, left zero.
	buf[16] = byte(b.Command)
	buf[17] = byte(len(b.Fields))
	for _, f := range b.Fields {
		buf = append(buf, f.Pack()...)
	}
	return buf
}

// ParseAdminBody reads the prelude, then iterates field_count times
// parsing fields, advancing a single running cursor by each field's
// total on-wire length.
func ParseAdminBody(data []byte) (AdminBody, error) {
	if len(data) < AdminPreludeSize {
		return AdminBody{}, fmt.Errorf("message: truncated admin body prelude: got %d bytes", len(data))
	}
	b := AdminBody{Command: AdminCommand(data[16])}
	fieldsCount := int(data[17])

	rest := data[AdminPreludeSize:]
	b.Fields = make([]AdminField, 0, fieldsCount)
	for i := 0; i < fieldsCount; i++ {
		f, n, err := parseAdminField(rest)
		if err != nil {
			return AdminBody{}, fmt.Errorf("message: admin field %d: %w", i, err)
		}
		b.Fields = append(b.Fields, f)
		rest = rest[n:]
	}
	return b, nil
}
