package scraper

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const challengedHTML = `<html><body>
<form action="/errors/validateCaptcha">
<h4>Type the characters you see in this image</h4>
<input id="captchacharacters" type="text">
</form>
</body></html>`

const cleanHTML = `<html><body><span id="productTitle">Stainless Kettle</span></body></html>`

// fakePage serves one canned response per instance.
type fakePage struct {
	html    string
	navErr  error
	navs    int
	closed  bool
	closeFn func()
}

func (p *fakePage) Navigate(ctx context.Context, url string) error {
	p.navs++
	return p.navErr
}

func (p *fakePage) Content() (string, error) {
	if p.html == "" {
		return "", errors.New("page crashed")
	}
	return p.html, nil
}

func (p *fakePage) Close() error {
	p.closed = true
	if p.closeFn != nil {
		p.closeFn()
	}
	return nil
}

// fakeOpener hands out its pages in order, so a test can script the outcome
// of each successive tab.
type fakeOpener struct {
	pages  []*fakePage
	opened int
}

func (o *fakeOpener) NewPage() (Page, error) {
	if o.opened >= len(o.pages) {
		return nil, errors.New("no more pages scripted")
	}
	p := o.pages[o.opened]
	o.opened++
	return p, nil
}

func fastOptions() Options {
	return Options{MaxAttempts: 5}
}

func TestAcquireCleanFirstAttempt(t *testing.T) {
	opener := &fakeOpener{pages: []*fakePage{{html: cleanHTML}}}
	a := NewAcquirer(opener, fastOptions())

	html, err := a.Acquire(context.Background(), "https://www.amazon.com/dp/B0TESTASIN")

	require.NoError(t, err)
	assert.Equal(t, cleanHTML, html)
	assert.Equal(t, 1, opener.opened)
	assert.True(t, opener.pages[0].closed)
}

func TestAcquireRecoversAfterTwoChallenges(t *testing.T) {
	opener := &fakeOpener{pages: []*fakePage{
		{html: challengedHTML},
		{html: challengedHTML},
		{html: cleanHTML},
	}}
	a := NewAcquirer(opener, fastOptions())

	html, err := a.Acquire(context.Background(), "https://www.amazon.com/dp/B0TESTASIN")

	require.NoError(t, err)
	assert.Equal(t, cleanHTML, html)
	assert.Equal(t, 3, opener.opened, "two challenged tabs plus the clean one")
	for i, p := range opener.pages {
		assert.True(t, p.closed, "page %d left open", i)
	}
}

func TestAcquireExhaustsOnPersistentChallenge(t *testing.T) {
	pages := make([]*fakePage, 5)
	for i := range pages {
		pages[i] = &fakePage{html: challengedHTML}
	}
	opener := &fakeOpener{pages: pages}
	a := NewAcquirer(opener, fastOptions())

	_, err := a.Acquire(context.Background(), "https://www.amazon.com/dp/B0TESTASIN")

	require.Error(t, err)
	assert.ErrorIs(t, err, ErrChallengeExhausted)
	assert.Equal(t, 5, opener.opened)
	for i, p := range pages {
		assert.True(t, p.closed, "page %d left open", i)
	}
}

func TestAcquireRetriesNavigationError(t *testing.T) {
	opener := &fakeOpener{pages: []*fakePage{
		{html: cleanHTML, navErr: errors.New("net::ERR_CONNECTION_RESET")},
		{html: cleanHTML},
	}}
	a := NewAcquirer(opener, fastOptions())

	html, err := a.Acquire(context.Background(), "https://www.amazon.com/dp/B0TESTASIN")

	require.NoError(t, err)
	assert.Equal(t, cleanHTML, html)
	assert.Equal(t, 2, opener.opened)
}

func TestAcquireRetriesContentError(t *testing.T) {
	opener := &fakeOpener{pages: []*fakePage{
		{html: ""},
		{html: cleanHTML},
	}}
	a := NewAcquirer(opener, fastOptions())

	html, err := a.Acquire(context.Background(), "https://www.amazon.com/dp/B0TESTASIN")

	require.NoError(t, err)
	assert.Equal(t, cleanHTML, html)
}

func TestAcquireHonorsContextCancellation(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	opener := &fakeOpener{pages: []*fakePage{
		{html: challengedHTML, closeFn: cancel},
		{html: challengedHTML},
	}}
	a := NewAcquirer(opener, Options{MaxAttempts: 5, RetryDelay: time.Minute})

	_, err := a.Acquire(ctx, "https://www.amazon.com/dp/B0TESTASIN")

	require.Error(t, err)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestAcquireFailsWhenPageCannotOpen(t *testing.T) {
	opener := &fakeOpener{}
	a := NewAcquirer(opener, fastOptions())

	_, err := a.Acquire(context.Background(), "https://www.amazon.com/dp/B0TESTASIN")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to open page")
}
