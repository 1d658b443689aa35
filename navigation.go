package main

func (m *model) handleNavigation(key string) {
	speed := 1
	switch key {
	case "H", "L", "shift+left", "shift+right":
		speed = 2
	}
	m.handlePan(key, speed*panStep)
	m.refresh()
}

// handlePan scrolls the preview sideways; vertical scrolling belongs to the viewport.
func (m *model) handlePan(key string, speed int) {
	switch key {
	case "h", "left", "H", "shift+left":
		m.panX -= speed
	case "l", "right", "L", "shift+right":
		m.panX += speed
	case "0", "home":
		m.panX = 0
	}
	m.ensurePanInBounds()
}

func (m *model) maxPanX() int {
	if len(m.cells) == 0 {
		return 0
	}
	if over := len(m.cells[0]) - m.width; over > 0 {
		return over
	}
	return 0
}

func (m *model) ensurePanInBounds() {
	if m.panX > m.maxPanX() {
		m.panX = m.maxPanX()
	}
	if m.panX < 0 {
		m.panX = 0
	}
}
