package ui

import (
	"sync"
	"time"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/driver/mobile"
	"fyne.io/fyne/v2/widget"
)

// GestureType represents different types of gestures
type GestureType int

const (
	GestureTap GestureType = iota
	GestureSwipeLeft
	GestureSwipeRight
	GestureSwipeUp
	GestureSwipeDown
	GestureLongPress
)

// Gesture thresholds constants
const (
	DefaultSwipeThreshold    float32 = 50.0
	DefaultLongPressDuration         = 500 * time.Millisecond
)

// ClassifyGesture maps a touch from start to end lasting d onto a gesture
func ClassifyGesture(start, end fyne.Position, d time.Duration) GestureType {
	dx := end.X - start.X
	dy := end.Y - start.Y
	moved := dx*dx+dy*dy >= DefaultSwipeThreshold*DefaultSwipeThreshold

	switch {
	case moved:
		return swipeDirection(dx, dy)
	case d >= DefaultLongPressDuration:
		return GestureLongPress
	default:
		return GestureTap
	}
}

func swipeDirection(dx, dy float32) GestureType {
	absDx, absDy := dx, dy
	if absDx < 0 {
		absDx = -absDx
	}
	if absDy < 0 {
		absDy = -absDy
	}

	if absDx > absDy {
		if dx > 0 {
			return GestureSwipeRight
		}
		return GestureSwipeLeft
	}
	if dy > 0 {
		return GestureSwipeDown
	}
	return GestureSwipeUp
}

// GestureHandler handles mobile gestures
type GestureHandler struct {
	onGesture func(GestureType)

	touchStartTime time.Time
	touchStartPos  fyne.Position
}

// NewGestureHandler creates a new gesture handler
func NewGestureHandler(onGesture func(GestureType)) *GestureHandler {
	return &GestureHandler{onGesture: onGesture}
}

// TouchDown handles touch down events for gesture detection
func (gh *GestureHandler) TouchDown(event *mobile.TouchEvent) {
	gh.touchStartTime = time.Now()
	gh.touchStartPos = event.Position
}

// TouchUp handles touch up events for gesture detection
func (gh *GestureHandler) TouchUp(event *mobile.TouchEvent) {
	if gh.touchStartTime.IsZero() {
		return
	}
	gesture := ClassifyGesture(gh.touchStartPos, event.Position, time.Since(gh.touchStartTime))
	gh.touchStartTime = time.Time{}
	if gh.onGesture != nil {
		gh.onGesture(gesture)
	}
}

// TouchCancel handles touch cancel events
func (gh *GestureHandler) TouchCancel(*mobile.TouchEvent) {
	gh.touchStartTime = time.Time{}
}

// PullToRefresh wraps a listing and refreshes it on a downward swipe
type PullToRefresh struct {
	widget.BaseWidget

	content        fyne.CanvasObject
	gestureHandler *GestureHandler
	onRefresh      func()

	mu          sync.Mutex
	lastRefresh time.Time
	now         func() time.Time
}

// NewPullToRefresh creates a pull-to-refresh wrapper around content
func NewPullToRefresh(content fyne.CanvasObject, onRefresh func()) *PullToRefresh {
	p := &PullToRefresh{
		content:   content,
		onRefresh: onRefresh,
		now:       time.Now,
	}
	p.gestureHandler = NewGestureHandler(p.handleGesture)
	p.ExtendBaseWidget(p)
	return p
}

// CreateRenderer creates the widget renderer
func (p *PullToRefresh) CreateRenderer() fyne.WidgetRenderer {
	return widget.NewSimpleRenderer(p.content)
}

func (p *PullToRefresh) handleGesture(gesture GestureType) {
	if gesture == GestureSwipeDown {
		p.Trigger()
	}
}

// Trigger runs the refresh callback unless one ran within RefreshCooldown
func (p *PullToRefresh) Trigger() bool {
	p.mu.Lock()
	now := p.now()
	if !p.lastRefresh.IsZero() && now.Sub(p.lastRefresh) < RefreshCooldown {
		p.mu.Unlock()
		return false
	}
	p.lastRefresh = now
	p.mu.Unlock()

	if p.onRefresh != nil {
		p.onRefresh()
	}
	return true
}

// TouchDown handles touch down events
func (p *PullToRefresh) TouchDown(event *mobile.TouchEvent) {
	p.gestureHandler.TouchDown(event)
}

// TouchUp handles touch up events
func (p *PullToRefresh) TouchUp(event *mobile.TouchEvent) {
	p.gestureHandler.TouchUp(event)
}

// TouchCancel handles touch cancel events
func (p *PullToRefresh) TouchCancel(event *mobile.TouchEvent) {
	p.gestureHandler.TouchCancel(event)
}
