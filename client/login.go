package client

import (
	"context"

	"aerowire/message"
)

// loginPasswordSalt is the fixed bcrypt salt the server expects every
// client to hash passwords with before sending them over the wire.
const loginPasswordSalt = "$2a$10$7EqJtq98hPqEX7fNZaFWoO"

// hashPassword bcrypt-hashes password against the fixed server salt.
func hashPassword(password string) ([]byte, error) {
	return hashPasswordWithFixedSalt([]byte(password), loginPasswordSalt)
}

// Login performs the admin authentication handshake: a User field and a
// bcrypt-hashed Password field, sent as an Admin-kind frame. The
// response's session-token field, if present, is returned for the
// caller to retain; this client does not itself reattach it to later
// exchanges.
func (c *Connection) Login(ctx context.Context, user, password string) (sessionToken []byte, err error) {
	hashed, err := hashPassword(password)
	if err != nil {
		return nil, err
	}

	req := message.AdminBody{
		Command: message.AdminLogin,
		Fields: []message.AdminField{
			{Type: message.AdminFieldUser, Data: []byte(user)},
			{Type: message.AdminFieldPassword, Data: hashed},
		},
	}

	resp, err := c.exchangeAdmin(ctx, req)
	if err != nil {
		return nil, err
	}

	for _, f := range resp.Fields {
		if f.Type == message.AdminFieldSessionToken {
			return f.Data, nil
		}
	}
	return nil, nil
}
