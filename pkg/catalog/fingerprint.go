package catalog

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"strconv"
	"strings"
)

// fingerprintLen is the encoded length of a fingerprint: 16 digest bytes as
// lowercase hex. 128 bits keeps accidental collisions out of reach while
// staying short enough to live comfortably in a hand-edited config file.
const fingerprintLen = 32

// Fingerprint derives the content fingerprint of an entry: a deterministic
// digest over the fields that affect its remote representation (remote id,
// name, description, price, image id). The stored fingerprint itself is
// excluded.
//
// The canonical form writes fields in fixed key order with an explicit
// absent marker, so the result is independent of how the entry was
// declared or populated, and price 0 never collides with price absent.
func Fingerprint(e *Entry) string {
	var b strings.Builder
	writeField(&b, "description", e.Description != nil, e.DescriptionValue())
	writeInt(&b, "image_id", e.ImageID)
	writeField(&b, "name", true, e.Name)
	writeInt(&b, "price", e.Price)
	writeInt(&b, "remote_id", e.RemoteID)

	sum := sha256.Sum256([]byte(b.String()))
	return hex.EncodeToString(sum[:fingerprintLen/2])
}

// UpToDate reports whether the entry's stored fingerprint matches its
// current content. An entry with no stored fingerprint is never up to date.
func (e *Entry) UpToDate() bool {
	return e.Fingerprint != nil && *e.Fingerprint == Fingerprint(e)
}

// writeField appends one canonical fingerprint line. The value is quoted so
// embedded newlines or separators cannot bleed into neighboring fields.
func writeField(b *strings.Builder, key string, present bool, value string) {
	if present {
		fmt.Fprintf(b, "%s=%q\n", key, value)
	} else {
		b.WriteString(key)
		b.WriteString("#absent\n")
	}
}

func writeInt(b *strings.Builder, key string, v *int64) {
	if v == nil {
		writeField(b, key, false, "")
		return
	}
	writeField(b, key, true, strconv.FormatInt(*v, 10))
}
