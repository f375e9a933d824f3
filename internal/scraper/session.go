package scraper

import (
	"github.com/marketpeek/amazon-competitor-scraper/internal/browser"
)

// browserOpener adapts a browser.Session to the PageOpener interface.
type browserOpener struct {
	session *browser.Session
}

// NewBrowserOpener wraps a session manager so the acquisition loop can pull
// fresh tabs from it.
func NewBrowserOpener(session *browser.Session) PageOpener {
	return browserOpener{session: session}
}

func (b browserOpener) NewPage() (Page, error) {
	return b.session.NewPage()
}
