package preview

import (
	"github.com/peek-cli/peek/catalog"
	"github.com/peek-cli/peek/log"
)

// Listener receives lifecycle notifications from a Controller.
// Calls happen outside the session lock, so a listener may call back into the controller.
type Listener interface {
	OnStart()
	OnEnded()
	OnResumed()
	OnSeeked(seconds float64)
}

// NopListener ignores every notification.
type NopListener struct{}

func (NopListener) OnStart()         {}
func (NopListener) OnEnded()         {}
func (NopListener) OnResumed()       {}
func (NopListener) OnSeeked(float64) {}

// ListenerFuncs adapts optional functions to Listener. Nil fields are skipped.
type ListenerFuncs struct {
	Start   func()
	Ended   func()
	Resumed func()
	Seeked  func(seconds float64)
}

func (l ListenerFuncs) OnStart() {
	if l.Start != nil {
		l.Start()
	}
}

func (l ListenerFuncs) OnEnded() {
	if l.Ended != nil {
		l.Ended()
	}
}

func (l ListenerFuncs) OnResumed() {
	if l.Resumed != nil {
		l.Resumed()
	}
}

func (l ListenerFuncs) OnSeeked(seconds float64) {
	if l.Seeked != nil {
		l.Seeked(seconds)
	}
}

// LogListener writes every notification to the application log.
type LogListener struct {
	Item *catalog.Item
}

func (l LogListener) entry() log.Entry {
	if l.Item == nil {
		return log.With(log.Fields{})
	}
	return log.With(log.Fields{"id": l.Item.ID, "title": l.Item.Title})
}

func (l LogListener) OnStart()   { l.entry().Infof("Video started") }
func (l LogListener) OnEnded()   { l.entry().Infof("Video ended") }
func (l LogListener) OnResumed() { l.entry().Infof("Video resumed") }

func (l LogListener) OnSeeked(seconds float64) {
	l.entry().Infof("Video seeked to %.2f", seconds)
}

type multiListener []Listener

// Multi fans every notification out to ls in order.
func Multi(ls ...Listener) Listener {
	return multiListener(ls)
}

func (m multiListener) OnStart() {
	for _, l := range m {
		l.OnStart()
	}
}

func (m multiListener) OnEnded() {
	for _, l := range m {
		l.OnEnded()
	}
}

func (m multiListener) OnResumed() {
	for _, l := range m {
		l.OnResumed()
	}
}

func (m multiListener) OnSeeked(seconds float64) {
	for _, l := range m {
		l.OnSeeked(seconds)
	}
}
