// Package action injects keyboard and mouse input and plays audio cues.
package action

import (
	"strings"
	"time"
)

// Options sets the human-like timing of injected input.
type Options struct {
	KeyHold    time.Duration // between key down and key up
	PostAction time.Duration // after every key tap
	ClickDelay time.Duration // after every click
}

// ParseVK converts a key token (e.g. "F8", "e", "2") into a Windows
// virtual-key code. Recognizes F1..F24, letters, digits, space, escape and
// tab. ok is false for unknown tokens.
func ParseVK(key string) (vk byte, ok bool) {
	k := strings.ToUpper(strings.TrimSpace(key))
	switch k {
	case "SPACE":
		return 0x20, true
	case "ESC", "ESCAPE":
		return 0x1B, true
	case "TAB":
		return 0x09, true
	case "ENTER":
		return 0x0D, true
	}
	if k == "" {
		return 0, false
	}
	if len(k) == 1 {
		c := k[0]
		if (c >= 'A' && c <= 'Z') || (c >= '0' && c <= '9') {
			return c, true // VK codes equal ASCII for these
		}
		return 0, false
	}
	if k[0] == 'F' && len(k) <= 3 {
		n := 0
		for _, c := range k[1:] {
			if c < '0' || c > '9' {
				return 0, false
			}
			n = n*10 + int(c-'0')
		}
		if n >= 1 && n <= 24 {
			return byte(0x70 + n - 1), true // VK_F1=0x70
		}
	}
	return 0, false
}
