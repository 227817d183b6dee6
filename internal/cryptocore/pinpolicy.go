package cryptocore

import (
	"fmt"
	"strings"

	"github.com/Picocrypt/zxcvbn-go"
)

// MinPINLength is the shortest PIN the publish path will accept.
const MinPINLength = 8

// MinZxcvbnScore is the lowest zxcvbn strength score (0-4) accepted once a
// PIN has passed the explicit structural checks below.
const MinZxcvbnScore = 1

// pinBlocklist rejects common weak patterns regardless of zxcvbn score.
// Case-insensitive.
var pinBlocklist = []string{
	"password", "letmein", "changeme", "123123", "qwerty", "qwertyui",
}

// CheckPINStrength applies the publish-path PIN policy: reject a PIN
// shorter than MinPINLength, an all-same-character PIN, a strictly
// monotonic ascending/descending character sequence, or a blocklisted
// word, then fall back to zxcvbn scoring against minScore for anything
// else. minScore is normally MinZxcvbnScore; callers with a stricter
// configured policy may pass a higher score. Returns a user-facing reason
// on rejection.
func CheckPINStrength(pin string, minScore int) error {
	if len(pin) < MinPINLength {
		return fmt.Errorf("PIN must be at least %d characters", MinPINLength)
	}
	if isAllSameChar(pin) {
		return fmt.Errorf("PIN must not be a single repeated character")
	}
	if isMonotonicSequence(pin) {
		return fmt.Errorf("PIN must not be a simple sequential pattern")
	}
	if isBlocklisted(pin) {
		return fmt.Errorf("PIN is too common")
	}

	if result := zxcvbn.PasswordStrength(pin, nil); result.Score < minScore {
		return fmt.Errorf("PIN is too weak")
	}

	return nil
}

func isAllSameChar(s string) bool {
	for i := 1; i < len(s); i++ {
		if s[i] != s[0] {
			return false
		}
	}
	return true
}

// isMonotonicSequence detects a sequence where every character's byte value
// steps by exactly +1 or exactly -1 from its predecessor, e.g. "12345678",
// "87654321", "abcdefgh".
func isMonotonicSequence(s string) bool {
	if len(s) < 2 {
		return false
	}
	step := int(s[1]) - int(s[0])
	if step != 1 && step != -1 {
		return false
	}
	for i := 1; i < len(s); i++ {
		if int(s[i])-int(s[i-1]) != step {
			return false
		}
	}
	return true
}

func isBlocklisted(s string) bool {
	lower := strings.ToLower(s)
	for _, bad := range pinBlocklist {
		if lower == bad {
			return true
		}
	}
	return false
}
