package tasklist

import (
	"context"
	"errors"
	"fmt"
	"sync"

	log "github.com/sirupsen/logrus"

	"taskgenie/internal/logging"
	"taskgenie/internal/service"
)

// ErrPageOutOfRange is returned by SetPage for pages without a control.
var ErrPageOutOfRange = errors.New("page out of range")

// Backend is the subset of service.Service the presenter calls.
type Backend interface {
	GetAllTasks(ctx context.Context) ([]service.Task, error)
	DeleteTask(ctx context.Context, id string) (service.Confirmation, error)
	SaveTask(ctx context.Context, task service.Task) (service.Task, error)
}

// View is a snapshot of everything a renderer needs.
type View struct {
	Filter     Filter
	Page       int
	TotalPages int
	Pages      []int
	Tasks      []service.Task // the visible page
	Filtered   int            // length of the filtered sequence
	Total      int            // length of the unfiltered collection

	// Empty is true when the unfiltered collection is empty. A filter that
	// excludes every task leaves Empty false with zero pages.
	Empty bool

	Editing  bool
	Selected service.Task
}

// FilteredEmpty reports a non-empty collection fully excluded by the filter.
func (v View) FilteredEmpty() bool {
	return !v.Empty && v.Filtered == 0
}

// Presenter owns list view-state and orchestrates delete/edit/refresh
// cycles. It is safe for concurrent use; backend calls run without holding
// the state lock.
type Presenter struct {
	backend  Backend
	store    *Store
	notifier Notifier
	log      *log.Entry

	mu          sync.Mutex
	currentPage int
	filter      Filter
	selected    *service.Task
	showModal   bool
}

// Option configures a Presenter.
type Option func(*Presenter)

// WithNotifier sets where success/error notifications go.
func WithNotifier(n Notifier) Option {
	return func(p *Presenter) { p.notifier = n }
}

// WithLogger sets the developer log.
func WithLogger(l *log.Entry) Option {
	return func(p *Presenter) { p.log = l }
}

// WithFilter sets the starting filter.
func WithFilter(f Filter) Option {
	return func(p *Presenter) { p.filter = f }
}

// New creates a presenter with default view-state: page 1, newest first,
// modal closed.
func New(backend Backend, store *Store, opts ...Option) *Presenter {
	p := &Presenter{
		backend:     backend,
		store:       store,
		notifier:    discardNotifier{},
		log:         logging.Discard(),
		currentPage: 1,
		filter:      DefaultFilter,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Store returns the task store the presenter reads from.
func (p *Presenter) Store() *Store {
	return p.store
}

// Refresh fetches the complete collection and replaces the store contents.
// A failure is logged and leaves the last good collection in place; the
// error is returned for callers that need an exit status.
//
// The ticket is taken before the request goes out, so a refresh that fails
// still supersedes older ones in flight: their late results are discarded and
// the collection stays as it was before both.
func (p *Presenter) Refresh(ctx context.Context) error {
	gen := p.store.Begin()
	tasks, err := p.backend.GetAllTasks(ctx)
	if err != nil {
		p.log.WithError(err).Warn("refresh failed")
		return fmt.Errorf("refresh: %w", err)
	}
	if !p.store.Commit(gen, tasks) {
		p.log.WithField("generation", gen).Debug("discarded stale refresh")
	}
	return nil
}

// Delete removes a task on the backend, then refreshes. The task stays
// visible until that refresh lands; nothing is removed optimistically.
func (p *Presenter) Delete(ctx context.Context, id string) error {
	if _, err := p.backend.DeleteTask(ctx, id); err != nil {
		p.notifier.Notify(Notification{Level: LevelError, Message: MsgDeleteFailed})
		p.log.WithError(err).WithField("task", id).Error("delete failed")
		return err
	}
	p.notifier.Notify(Notification{Level: LevelSuccess, Message: MsgDeleted})
	_ = p.Refresh(ctx)
	return nil
}

// RequestEdit opens the edit modal on a copy of task.
func (p *Presenter) RequestEdit(task service.Task) {
	p.mu.Lock()
	defer p.mu.Unlock()
	t := task
	p.selected = &t
	p.showModal = true
}

// CancelEdit closes the modal and drops the selection.
func (p *Presenter) CancelEdit() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.closeModalLocked()
}

// Selected returns the task open in the modal.
func (p *Presenter) Selected() (service.Task, bool) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.selected == nil {
		return service.Task{}, false
	}
	return *p.selected, true
}

// SubmitEdit sends the full edited record, then refreshes. The modal closes
// before the request is made, so pending edits are dropped from view-state
// whatever the outcome.
func (p *Presenter) SubmitEdit(ctx context.Context, updated service.Task) error {
	p.mu.Lock()
	p.closeModalLocked()
	p.mu.Unlock()

	if _, err := p.backend.SaveTask(ctx, updated); err != nil {
		p.notifier.Notify(Notification{Level: LevelError, Message: MsgUpdateFailed})
		p.log.WithError(err).WithField("task", updated.ID).Error("update failed")
		return err
	}
	p.notifier.Notify(Notification{Level: LevelSuccess, Message: MsgUpdated})
	_ = p.Refresh(ctx)
	return nil
}

// SetFilter changes the filter and returns to page 1.
func (p *Presenter) SetFilter(f Filter) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.filter = f
	p.currentPage = 1
}

// Filter returns the active filter.
func (p *Presenter) Filter() Filter {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.filter
}

// SetPage selects page n. Only pages with a rendered control, 1 through
// the current page count, are accepted.
func (p *Presenter) SetPage(n int) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	total := TotalPages(len(Apply(p.store.Tasks(), p.filter)))
	if n < 1 || n > total {
		return fmt.Errorf("%w: %d (have %d)", ErrPageOutOfRange, n, total)
	}
	p.currentPage = n
	return nil
}

// Page returns the current page number. It is not clamped: shrinking the
// collection under a fixed filter can leave it past the last page.
func (p *Presenter) Page() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.currentPage
}

// Ordered returns the whole filtered sequence for the active filter.
func (p *Presenter) Ordered() []service.Task {
	return Apply(p.store.Tasks(), p.Filter())
}

// View derives the current view from the store and view-state.
func (p *Presenter) View() View {
	p.mu.Lock()
	defer p.mu.Unlock()

	all := p.store.Tasks()
	filtered := Apply(all, p.filter)
	total := TotalPages(len(filtered))

	v := View{
		Filter:     p.filter,
		Page:       p.currentPage,
		TotalPages: total,
		Pages:      PageNumbers(total),
		Tasks:      PageSlice(filtered, p.currentPage),
		Filtered:   len(filtered),
		Total:      len(all),
		Empty:      len(all) == 0,
		Editing:    p.showModal,
	}
	if p.selected != nil {
		v.Selected = *p.selected
	}
	return v
}

func (p *Presenter) closeModalLocked() {
	p.showModal = false
	p.selected = nil
}
