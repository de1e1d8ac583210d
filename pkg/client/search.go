package client

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/anonto42/socialite/backend/internal/models"
	"github.com/sirupsen/logrus"
)

// SearchFunc looks users up by query.
type SearchFunc func(ctx context.Context, query string) ([]models.UserCompact, error)

// SearchBox is a debounced user search. Results are delivered through
// onResults; failed searches are logged and leave the results unchanged.
type SearchBox struct {
	search    SearchFunc
	debouncer *Debouncer
	onResults func([]models.UserCompact)
	log       *logrus.Entry
	timeout   time.Duration

	mu      sync.Mutex
	seq     uint64
	results []models.UserCompact
}

func NewSearchBox(search SearchFunc, delay time.Duration, onResults func([]models.UserCompact), log *logrus.Entry) *SearchBox {
	if onResults == nil {
		onResults = func([]models.UserCompact) {}
	}
	return &SearchBox{
		search:    search,
		debouncer: NewDebouncer(delay),
		onResults: onResults,
		log:       log,
		timeout:   5 * time.Second,
	}
}

// SetQuery is called on every keystroke. An empty query clears the
// results at once without a search.
func (b *SearchBox) SetQuery(query string) {
	query = strings.TrimSpace(query)

	b.mu.Lock()
	b.seq++
	seq := b.seq
	b.mu.Unlock()

	if query == "" {
		b.debouncer.Stop()
		b.publish(seq, nil)
		return
	}
	b.debouncer.Trigger(func() { b.run(seq, query) })
}

func (b *SearchBox) run(seq uint64, query string) {
	ctx, cancel := context.WithTimeout(context.Background(), b.timeout)
	defer cancel()

	users, err := b.search(ctx, query)
	if err != nil {
		b.log.WithError(err).WithField("query", query).Warn("search failed")
		return
	}
	b.publish(seq, users)
}

// publish drops answers for queries that have since been replaced.
func (b *SearchBox) publish(seq uint64, users []models.UserCompact) {
	b.mu.Lock()
	if seq != b.seq {
		b.mu.Unlock()
		return
	}
	b.results = users
	b.mu.Unlock()
	b.onResults(users)
}

func (b *SearchBox) Results() []models.UserCompact {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.results
}

// Close cancels a pending search.
func (b *SearchBox) Close() {
	b.debouncer.Stop()
}
