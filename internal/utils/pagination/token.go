package pagination

import (
	"encoding/base64"
	"fmt"
	"strings"
)

// Cursor tokens are opaque base64 strings handed to clients. For booking
// pagination the payload is "date|bookingID" of the last row of the page: the
// id resolves the position in the materialized, sorted range and the date is
// kept for debuggability.

// EncodeBookingCursor creates a pagination token from the last returned row.
func EncodeBookingCursor(date, bookingID string) string {
	return base64.StdEncoding.EncodeToString([]byte(date + "|" + bookingID))
}

// DecodeBookingCursor parses a token back into its date and booking id parts.
func DecodeBookingCursor(token string) (date, bookingID string, err error) {
	decoded, err := base64.StdEncoding.DecodeString(token)
	if err != nil {
		return "", "", fmt.Errorf("invalid pagination token format (base64 decode): %w", err)
	}
	parts := strings.SplitN(string(decoded), "|", 2)
	if len(parts) != 2 || parts[0] == "" || parts[1] == "" {
		return "", "", fmt.Errorf("invalid pagination token format (split)")
	}
	return parts[0], parts[1], nil
}
