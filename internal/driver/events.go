package driver

import "time"

// Stage names a step of formatting one file.
type Stage string

const (
	// StageRead loads the file from disk.
	StageRead Stage = "read"
	// StageFormat parses, normalizes and prints the file.
	StageFormat Stage = "format"
	// StageVerify re-parses the output in safe mode.
	StageVerify Stage = "verify"
	// StageWrite stores the result.
	StageWrite Stage = "write"
)

// Status reports where a file is in its run.
type Status string

const (
	StatusQueued  Status = "queued"
	StatusWorking Status = "working"
	StatusDone    Status = "done"
	StatusError   Status = "error"
)

// Event reports progress for a file (or for the whole run when File is empty).
type Event struct {
	File   string
	Stage  Stage
	Status Status
	Err    error
	// Changed is set on the final event of a file whose text changed.
	Changed bool
	Elapsed time.Duration
}

// ProgressSink consumes progress events. Calls may come from several
// goroutines at once.
type ProgressSink interface {
	OnEvent(Event)
}

// ChannelSink forwards events into a channel.
type ChannelSink struct {
	Ch chan<- Event
}

func (s ChannelSink) OnEvent(evt Event) {
	if s.Ch == nil {
		return
	}
	s.Ch <- evt
}

func emit(sink ProgressSink, evt Event) {
	if sink != nil {
		sink.OnEvent(evt)
	}
}
