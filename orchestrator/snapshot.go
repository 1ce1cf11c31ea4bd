package orchestrator

import "github.com/bassamadnan/mailbrief/summarize"

type Entry struct {
	Sender  string
	Summary summarize.Summary
}

// Snapshot maps each sender to the summary of their last processed
// message. Senders keep the order in which they were first seen.
type Snapshot struct {
	order      []string
	entries    map[string]summarize.Summary
	overwrites int
}

func NewSnapshot() *Snapshot {
	return &Snapshot{entries: make(map[string]summarize.Summary)}
}

// Put records s for sender and reports whether it replaced an earlier
// summary from the same sender.
func (s *Snapshot) Put(sender string, summary summarize.Summary) bool {
	_, replaced := s.entries[sender]
	if replaced {
		s.overwrites++
	} else {
		s.order = append(s.order, sender)
	}
	s.entries[sender] = summary
	return replaced
}

func (s *Snapshot) Get(sender string) (summarize.Summary, bool) {
	summary, ok := s.entries[sender]
	return summary, ok
}

func (s *Snapshot) Len() int { return len(s.order) }

// Overwrites counts summaries dropped because a later message from the
// same sender replaced them.
func (s *Snapshot) Overwrites() int { return s.overwrites }

func (s *Snapshot) Entries() []Entry {
	out := make([]Entry, 0, len(s.order))
	for _, sender := range s.order {
		out = append(out, Entry{Sender: sender, Summary: s.entries[sender]})
	}
	return out
}
