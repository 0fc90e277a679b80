// Package overlay implements the floating result window and the
// thread-safe command queue that feeds it. Background goroutines never
// touch the window; they post Commands, and the UI tick drains them.
package overlay

// Kind tags an update command.
type Kind int

const (
	Show Kind = iota
	Hide
	Loading
	Content
	Error
)

func (k Kind) String() string {
	switch k {
	case Show:
		return "show"
	case Hide:
		return "hide"
	case Loading:
		return "loading"
	case Content:
		return "content"
	case Error:
		return "error"
	}
	return "unknown"
}

// Command is one UI update. Text carries the payload for Content and
// Error; it is empty otherwise.
type Command struct {
	Kind Kind
	Text string
}

// Queue is a multi-producer single-consumer FIFO of Commands. Insertion
// order is preserved: a Loading posted before its Content is always
// applied first.
type Queue struct {
	ch chan Command
}

const queueDepth = 64

func NewQueue() *Queue {
	return &Queue{ch: make(chan Command, queueDepth)}
}

// Post enqueues a command. It blocks if the queue is full rather than
// dropping: dropping would break the Loading/Content ordering contract.
// In practice the consumer drains every 50ms and the queue never fills.
func (q *Queue) Post(cmd Command) {
	q.ch <- cmd
}

// TryNext dequeues without blocking. ok=false means momentarily empty,
// which is the consumer's signal to stop draining this tick.
func (q *Queue) TryNext() (Command, bool) {
	select {
	case cmd := <-q.ch:
		return cmd, true
	default:
		return Command{}, false
	}
}
