package app

import "crypto/rand"

// playerIcons is the emoji pool for joining players, handed out
// round-robin so a small group always gets distinct icons.
var playerIcons = []string{
	"🦊", "🐼", "🐸", "🦁", "🐙", "🦄", "🐯", "🐵", "🐺", "🐱",
	"🐶", "🐨", "🐰", "🦉", "🐢", "🦖",
}

// NewRoomCode generates a numeric room PIN of the given length using
// crypto/rand with rejection sampling to keep digits uniform.
func NewRoomCode(n int) string {
	const digits = "0123456789"
	const max = byte(255 - (256 % 10))

	out := make([]byte, 0, n)
	buf := make([]byte, n*2)

	for {
		if _, err := rand.Read(buf); err != nil {
			panic("crypto/rand failure: " + err.Error())
		}
		for _, b := range buf {
			if b <= max {
				out = append(out, digits[int(b)%10])
				if len(out) == n {
					return string(out)
				}
			}
		}
	}
}
