package tui

import "github.com/vovakirdan/tui-survivors/internal/core"

//go:generate go tool mockgen -destination=./mocks/run_sink_mock.go -package=mocks . RunSink

// RunSink stores finished runs. *storage.Store implements it.
type RunSink interface {
	SaveRun(sum core.RunSummary) error
}

// FramePublisher receives spectator frames. *spectate.Hub implements it.
type FramePublisher interface {
	Publish(frame any)
}
