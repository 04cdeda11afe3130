package render

import "github.com/gdamore/tcell"

// KeyCommand - что сделать по нажатию клавиши в терминальном режиме
type KeyCommand struct {
	Quit          bool
	MaxDelta      int
	IntervalDelta int
}

// ParseKey: +/- меняют лимит, ]/[ интервал, q и Esc выходят
func ParseKey(ev *tcell.EventKey) (KeyCommand, bool) {
	switch ev.Key() {
	case tcell.KeyEscape, tcell.KeyCtrlC:
		return KeyCommand{Quit: true}, true
	case tcell.KeyRune:
		switch ev.Rune() {
		case 'q', 'Q':
			return KeyCommand{Quit: true}, true
		case '+', '=':
			return KeyCommand{MaxDelta: 1}, true
		case '-', '_':
			return KeyCommand{MaxDelta: -1}, true
		case ']':
			return KeyCommand{IntervalDelta: 1}, true
		case '[':
			return KeyCommand{IntervalDelta: -1}, true
		}
	}
	return KeyCommand{}, false
}
