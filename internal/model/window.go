package model

// Window is one host window offered to a capture.
type Window struct {
	App    string // Application identifier, e.g. "com.tencent.mobileqq"
	Active bool   // Input focus is in this window
	Root   Node   // Root element; nil when the host could not provide one
}

// SelectWindow picks the window a capture should read. The active window
// wins unless its root is missing or empty; otherwise the last window whose
// root has children is used. ok is false when no window is usable.
func SelectWindow(windows []Window) (w Window, ok bool) {
	for _, win := range windows {
		if win.Active && win.Root != nil && !IsEmptyRoot(win.Root) {
			return win, true
		}
	}
	for _, win := range windows {
		if win.Root != nil && win.Root.ChildCount() > 0 {
			w, ok = win, true
		}
	}
	return w, ok
}
