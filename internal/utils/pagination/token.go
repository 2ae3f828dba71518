package pagination

import (
	"encoding/base64"
	"fmt"
	"strconv"
	"strings"
)

// Cursor identifies the last row of a page ordered by (At, ID).
// At is a Unix millisecond timestamp as stored.
type Cursor struct {
	At int64
	ID string
}

// EncodeCursor creates an opaque, URL-safe token for the row after which the next page starts.
func EncodeCursor(c Cursor) string {
	return EncodeMultiFieldToken(strconv.FormatInt(c.At, 10), c.ID)
}

// DecodeCursor parses a token produced by EncodeCursor.
func DecodeCursor(token string) (Cursor, error) {
	fields, err := DecodeMultiFieldToken(token)
	if err != nil {
		return Cursor{}, err
	}
	if len(fields) != 2 {
		return Cursor{}, fmt.Errorf("invalid pagination token format (expected 2 fields, got %d)", len(fields))
	}
	at, err := strconv.ParseInt(fields[0], 10, 64)
	if err != nil {
		return Cursor{}, fmt.Errorf("invalid pagination token format (timestamp parse): %w", err)
	}
	return Cursor{At: at, ID: fields[1]}, nil
}

// EncodeMultiFieldToken creates a token with any number of string fields.
// Fields must not contain '|'.
func EncodeMultiFieldToken(fields ...string) string {
	tokenStr := strings.Join(fields, "|")
	return base64.URLEncoding.EncodeToString([]byte(tokenStr))
}

// DecodeMultiFieldToken decodes a token into its component fields
func DecodeMultiFieldToken(token string) ([]string, error) {
	decodedBytes, err := base64.URLEncoding.DecodeString(token)
	if err != nil {
		return nil, fmt.Errorf("invalid pagination token format (base64 decode): %w", err)
	}
	return strings.Split(string(decodedBytes), "|"), nil
}
