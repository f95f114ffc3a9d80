// Package gravatar derives deterministic avatar URLs from email
// addresses following the Gravatar URL convention.
package gravatar

import (
	"crypto/md5"
	"encoding/hex"
	"fmt"
	"strings"
)

const (
	baseURL = "https://www.gravatar.com/avatar"

	size   = "200"
	rating = "pg"
	defImg = "mm"
)

// URL returns the avatar URL for an email. Pure function: the same
// email always yields the same URL. Gravatar hashes the trimmed,
// lowercased address.
func URL(email string) string {
	normalized := strings.ToLower(strings.TrimSpace(email))
	sum := md5.Sum([]byte(normalized))
	return fmt.Sprintf("%s/%s?s=%s&r=%s&d=%s", baseURL, hex.EncodeToString(sum[:]), size, rating, defImg)
}
