package querierfakes

import (
	"context"
	"sync"

	"github.com/seolab/gapscout/searchdata"
	"github.com/seolab/gapscout/session"
)

var _ searchdata.PageQuerier = (*FakeQuerier)(nil)

// Response is one scripted reply: a page or an error.
type Response struct {
	Page *searchdata.Page
	Err  error
}

// Call records the arguments of one QueryPage invocation.
type Call struct {
	SiteURL  string
	StartRow int64
	RowLimit int64
}

// FakeQuerier replays a scripted sequence of pages and errors, recording every
// call. Once the script is exhausted it returns empty pages.
type FakeQuerier struct {
	lock   sync.Mutex
	script []Response
	calls  []Call
}

func NewFakeQuerier(script ...Response) *FakeQuerier {
	return &FakeQuerier{script: script}
}

func (q *FakeQuerier) QueryPage(_ context.Context, _ *session.Session, siteURL string, _ searchdata.QueryFilter, startRow, rowLimit int64) (*searchdata.Page, error) {
	q.lock.Lock()
	defer q.lock.Unlock()

	q.calls = append(q.calls, Call{SiteURL: siteURL, StartRow: startRow, RowLimit: rowLimit})

	if len(q.script) == 0 {
		return &searchdata.Page{}, nil
	}
	next := q.script[0]
	q.script = q.script[1:]
	if next.Err != nil {
		return nil, next.Err
	}
	return next.Page, nil
}

// Calls returns a copy of the recorded invocations.
func (q *FakeQuerier) Calls() []Call {
	q.lock.Lock()
	defer q.lock.Unlock()
	return append([]Call{}, q.calls...)
}

// CallCount returns how many page requests were issued.
func (q *FakeQuerier) CallCount() int {
	q.lock.Lock()
	defer q.lock.Unlock()
	return len(q.calls)
}
