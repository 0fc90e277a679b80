// Package hotkey registers a global key combination via gohook and fires
// a callback when every key in the combination is held at once.
package hotkey

import (
	"log"
	"strings"
	"sync"

	gohook "github.com/robotn/gohook"
)

// Listen registers combo (e.g. "Ctrl+Alt+X") and invokes callback on
// each activation. The listener runs on its own goroutine; callback must
// not block for long.
func Listen(combo string, callback func()) {
	keys := parseCombo(combo)

	type keyState struct {
		name     string
		rawcodes []uint16
		pressed  bool
	}

	var states []keyState
	for _, name := range keys {
		codes := rawcodesFor(name)
		if len(codes) == 0 {
			log.Printf("Cannot map key %q to rawcodes, hotkey may not work", name)
			continue
		}
		states = append(states, keyState{name: name, rawcodes: codes})
	}
	if len(states) == 0 {
		log.Printf("No valid keys in hotkey %q", combo)
		return
	}
	log.Printf("Hotkey listener configured for: %s", combo)

	go func() {
		defer func() {
			if r := recover(); r != nil {
				log.Printf("PANIC in hotkey goroutine: %v", r)
			}
		}()

		evChan := gohook.Start()
		if evChan == nil {
			log.Printf("gohook.Start() returned nil channel")
			return
		}

		var mu sync.Mutex
		matches := func(s *keyState, raw uint16) bool {
			for _, code := range s.rawcodes {
				if code == raw {
					return true
				}
			}
			return false
		}

		for ev := range evChan {
			switch ev.Kind {
			case gohook.KeyDown:
				mu.Lock()
				for i := range states {
					if matches(&states[i], ev.Rawcode) {
						states[i].pressed = true
					}
				}
				all := true
				for i := range states {
					if !states[i].pressed {
						all = false
						break
					}
				}
				if all {
					for i := range states {
						states[i].pressed = false
					}
					mu.Unlock()
					log.Printf("Hotkey activated: %s", combo)
					if callback != nil {
						callback()
					}
					continue
				}
				mu.Unlock()
			case gohook.KeyUp:
				mu.Lock()
				for i := range states {
					if matches(&states[i], ev.Rawcode) {
						states[i].pressed = false
					}
				}
				mu.Unlock()
			}
		}
		log.Printf("Hotkey event channel closed")
	}()
}

// parseCombo splits "Ctrl+Alt+q" into normalized lowercase key names.
func parseCombo(combo string) []string {
	parts := strings.Split(strings.ToLower(combo), "+")
	var keys []string
	for _, part := range parts {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		switch part {
		case "win", "cmd", "super":
			keys = append(keys, "cmd")
		default:
			keys = append(keys, part)
		}
	}
	return keys
}

// rawcodesFor maps a key name to its virtual key codes. Modifiers map to
// both their left and right variants.
func rawcodesFor(name string) []uint16 {
	name = strings.ToLower(strings.TrimSpace(name))
	switch name {
	case "ctrl":
		return []uint16{162, 163} // VK_LCONTROL, VK_RCONTROL
	case "alt":
		return []uint16{164, 165} // VK_LMENU, VK_RMENU
	case "shift":
		return []uint16{160, 161} // VK_LSHIFT, VK_RSHIFT
	case "cmd":
		return []uint16{91, 92} // VK_LWIN, VK_RWIN
	}
	if len(name) == 1 {
		c := name[0]
		switch {
		case c >= 'a' && c <= 'z':
			return []uint16{uint16(c - 'a' + 65)} // VK_A..VK_Z
		case c >= '0' && c <= '9':
			return []uint16{uint16(c - '0' + 48)} // VK_0..VK_9
		}
	}
	// Function keys F1-F12: VK codes 112-123
	if strings.HasPrefix(name, "f") && len(name) <= 3 {
		n := 0
		for _, r := range name[1:] {
			if r < '0' || r > '9' {
				return nil
			}
			n = n*10 + int(r-'0')
		}
		if n >= 1 && n <= 12 {
			return []uint16{uint16(111 + n)}
		}
	}
	return nil
}
