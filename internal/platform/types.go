package platform

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/mj1618/chatscribe/internal/model"
)

// Frame is everything a capture can see at one instant.
type Frame struct {
	Windows      []model.Window
	ScreenWidth  int
	ScreenHeight int
}

// Swipe describes a single-stroke touch gesture in screen pixels.
type Swipe struct {
	FromX, FromY int
	ToX, ToY     int
	Duration     time.Duration
}

// BackwardSwipe returns the stroke used to reveal older chat content:
// a downward drag along the horizontal centre from 30% to 70% of the
// screen height, lasting 300ms.
func BackwardSwipe(screenWidth, screenHeight int) Swipe {
	x := screenWidth / 2
	return Swipe{
		FromX:    x,
		FromY:    int(float64(screenHeight) * 0.3),
		ToX:      x,
		ToY:      int(float64(screenHeight) * 0.7),
		Duration: 300 * time.Millisecond,
	}
}

// ParseScreenSize parses a "WIDTHxHEIGHT" string such as "1080x2400".
func ParseScreenSize(s string) (width, height int, err error) {
	parts := strings.Split(strings.ToLower(s), "x")
	if len(parts) != 2 {
		return 0, 0, fmt.Errorf("invalid screen size %q: expected WIDTHxHEIGHT", s)
	}
	width, err = strconv.Atoi(strings.TrimSpace(parts[0]))
	if err != nil {
		return 0, 0, fmt.Errorf("invalid screen size %q: %w", s, err)
	}
	height, err = strconv.Atoi(strings.TrimSpace(parts[1]))
	if err != nil {
		return 0, 0, fmt.Errorf("invalid screen size %q: %w", s, err)
	}
	if width <= 0 || height <= 0 {
		return 0, 0, fmt.Errorf("invalid screen size %q: dimensions must be positive", s)
	}
	return width, height, nil
}
