package session

import "media-gallery/internal/media"

// Observer receives session lifecycle events. Calls are made without any
// session lock held, so an observer may call back into the session.
type Observer interface {
	OnUpload(rootName string, stats media.Stats)
	OnNavigateHome()
	OnShowCarousel(position int)
	OnCloseCarousel()
}

// NopObserver is an Observer that does nothing.
type NopObserver struct{}

func (NopObserver) OnUpload(string, media.Stats) {}
func (NopObserver) OnNavigateHome()              {}
func (NopObserver) OnShowCarousel(int)           {}
func (NopObserver) OnCloseCarousel()             {}
