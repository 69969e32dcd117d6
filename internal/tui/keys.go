package tui

// Key bindings.
const (
	keyQuit       = "q"
	keyCtrlC      = "ctrl+c"
	keyEnter      = "enter"
	keyEsc        = "esc"
	keySlash      = "/"
	keyNext       = "n"
	keyRight      = "right"
	keyPrev       = "p"
	keyLeft       = "left"
	keySort       = "s"
	keyOrder      = "o"
	keyClearSort  = "c"
	keyReset      = "r"
	keyRefresh    = "g"
	keyPageSize   = "z"
	keyFilterBase = '1'
)
