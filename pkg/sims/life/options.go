package life

import (
	"strings"

	"github.com/pkg/errors"

	"life-torus/pkg/core"
	"life-torus/pkg/grid/bytegrid"
	"life-torus/pkg/profile"
)

// Init selects how a new or reset grid is filled.
type Init uint8

const (
	// InitRandom makes each cell alive independently with probability 0.5.
	InitRandom Init = iota
	// InitEmpty starts with every cell dead.
	InitEmpty
	// InitStripes marks linear indices divisible by 2 or 7 alive.
	InitStripes
)

var initNames = map[Init]string{
	InitRandom:  "random",
	InitEmpty:   "empty",
	InitStripes: "stripes",
}

func (i Init) String() string {
	if name, ok := initNames[i]; ok {
		return name
	}
	return "unknown"
}

// ErrUnknownInit is returned by ParseInit for unrecognized policy names.
var ErrUnknownInit = errors.New("unknown init policy")

// ParseInit maps a policy name to its Init value.
func ParseInit(s string) (Init, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	for k, v := range initNames {
		if v == s {
			return k, nil
		}
	}
	return 0, errors.Wrapf(ErrUnknownInit, "%q", s)
}

type options struct {
	store      string
	trackDirty bool
	init       Init
	seed       int64
	seeded     bool
	live       []core.Coord
	profiler   profile.Sink
}

func defaultOptions() options {
	return options{
		store:    bytegrid.Name,
		init:     InitRandom,
		profiler: profile.Nop{},
	}
}

// Option configures a Life at construction.
type Option func(*options)

// WithStore selects a registered storage strategy by name.
func WithStore(name string) Option {
	return func(o *options) { o.store = name }
}

// WithDirtyTracking enables recording of the cells changed by each tick.
func WithDirtyTracking(on bool) Option {
	return func(o *options) { o.trackDirty = on }
}

// WithSeed fixes the random fill so that construction is deterministic.
func WithSeed(seed int64) Option {
	return func(o *options) {
		o.seed = seed
		o.seeded = true
	}
}

// WithInit selects the fill policy.
func WithInit(init Init) Option {
	return func(o *options) { o.init = init }
}

// WithLiveCells starts from an all-dead grid and marks cells alive. It
// overrides any fill policy.
func WithLiveCells(cells []core.Coord) Option {
	return func(o *options) {
		o.init = InitEmpty
		o.live = append(o.live[:0:0], cells...)
	}
}

// WithProfiler reports tick phases to sink. nil restores the no-op sink.
func WithProfiler(sink profile.Sink) Option {
	return func(o *options) {
		if sink == nil {
			sink = profile.Nop{}
		}
		o.profiler = sink
	}
}
